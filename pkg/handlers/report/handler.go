package report

import (
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/de-tools/pbi-atlas/pkg/adapters"
	"github.com/de-tools/pbi-atlas/pkg/models/api"
	"github.com/de-tools/pbi-atlas/pkg/services/reports"
	"github.com/de-tools/pbi-atlas/pkg/store/duckdb/catalog"
)

const defaultSearchLimit = 20

type Handler struct {
	explorer reports.Explorer
	catalog  catalog.Store
}

func NewHandler(explorer reports.Explorer, cat catalog.Store) *Handler {
	return &Handler{
		explorer: explorer,
		catalog:  cat,
	}
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	parsed, err := h.explorer.ListReports(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list reports")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := make([]api.ReportSummary, 0, len(parsed))
	for _, rep := range parsed {
		response = append(response, adapters.MapReportToSummary(rep))
	}

	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode reports")
	}
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	name := chi.URLParam(r, "report")

	rep, err := h.explorer.GetReport(ctx, name)
	if err != nil {
		logger.Error().Err(err).Str("report", name).Msg("report not found")
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	err = json.NewEncoder(w).Encode(adapters.MapReportToSummary(rep))
	if err != nil {
		logger.Error().
			Err(err).
			Str("report", name).
			Msg("failed to encode report")
	}
}

func (h *Handler) ListMeasures(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	name := chi.URLParam(r, "report")
	state := r.URL.Query().Get("state")

	rep, err := h.explorer.GetReport(ctx, name)
	if err != nil {
		logger.Error().Err(err).Str("report", name).Msg("report not found")
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	response := make([]api.Measure, 0, len(rep.Measures))
	for _, m := range rep.Measures {
		if state != "" && string(m.UsageState) != state {
			continue
		}
		response = append(response, adapters.MapMeasureToAPI(m))
	}

	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		logger.Error().
			Err(err).
			Str("report", name).
			Msg("failed to encode measures")
	}
}

func (h *Handler) ListPages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	name := chi.URLParam(r, "report")

	rep, err := h.explorer.GetReport(ctx, name)
	if err != nil {
		logger.Error().Err(err).Str("report", name).Msg("report not found")
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	response := make([]api.Page, 0, len(rep.Pages))
	for _, p := range rep.Pages {
		response = append(response, adapters.MapPageToAPI(p))
	}

	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		logger.Error().
			Err(err).
			Str("report", name).
			Msg("failed to encode pages")
	}
}

func (h *Handler) SearchMeasures(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	query := r.URL.Query().Get("q")

	records, err := h.catalog.SearchMeasures(ctx, query, searchLimit(r))
	if err != nil {
		logger.Error().Err(err).Str("query", query).Msg("measure search failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	err = json.NewEncoder(w).Encode(records)
	if err != nil {
		logger.Error().
			Err(err).
			Str("query", query).
			Msg("failed to encode search results")
	}
}

func (h *Handler) SearchPages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	query := r.URL.Query().Get("q")

	records, err := h.catalog.SearchPages(ctx, query, searchLimit(r))
	if err != nil {
		logger.Error().Err(err).Str("query", query).Msg("page search failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	err = json.NewEncoder(w).Encode(records)
	if err != nil {
		logger.Error().
			Err(err).
			Str("query", query).
			Msg("failed to encode search results")
	}
}

func searchLimit(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultSearchLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return defaultSearchLimit
	}
	return limit
}
