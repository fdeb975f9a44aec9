package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/pbi-atlas/pkg/models/api"
	"github.com/de-tools/pbi-atlas/pkg/models/domain"
	"github.com/de-tools/pbi-atlas/pkg/models/export"
)

type mockExplorer struct {
	mock.Mock
}

func (m *mockExplorer) ListReports(ctx context.Context) ([]*domain.Report, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.Report), args.Error(1)
}

func (m *mockExplorer) GetReport(ctx context.Context, name string) (*domain.Report, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) AddMeasures(ctx context.Context, records []export.MeasureRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *mockCatalog) AddPages(ctx context.Context, records []export.PageRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *mockCatalog) SearchMeasures(ctx context.Context, query string, limit int) ([]export.MeasureRecord, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]export.MeasureRecord), args.Error(1)
}

func (m *mockCatalog) SearchPages(ctx context.Context, query string, limit int) ([]export.PageRecord, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]export.PageRecord), args.Error(1)
}

func newTestRouter(h *Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Get("/reports/{report}/measures", h.ListMeasures)
	router.Get("/catalog/measures", h.SearchMeasures)
	return router
}

func TestListMeasures_StateFilter(t *testing.T) {
	report := &domain.Report{Name: "Finance", Measures: map[string]*domain.Measure{}}

	direct := domain.NewMeasure("Revenue", "Sales", "SUM(Sales[Amount])", report)
	direct.UsageState = domain.DirectlyUsed
	report.Measures[direct.FullName()] = direct

	unused := domain.NewMeasure("Old Metric", "Sales", "1", report)
	report.Measures[unused.FullName()] = unused

	mockExp := new(mockExplorer)
	mockExp.On("GetReport", mock.Anything, "Finance").Return(report, nil)

	router := newTestRouter(NewHandler(mockExp, new(mockCatalog)))

	req := httptest.NewRequest(http.MethodGet, "/reports/Finance/measures?state=Directly%20Used", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var measures []api.Measure
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &measures))
	require.Len(t, measures, 1)
	assert.Equal(t, "Sales[Revenue]", measures[0].FullName)
	assert.Equal(t, string(domain.DirectlyUsed), measures[0].UsageState)
}

func TestSearchMeasures_InvalidLimitFallsBack(t *testing.T) {
	mockCat := new(mockCatalog)
	mockCat.On("SearchMeasures", mock.Anything, "margin", defaultSearchLimit).
		Return([]export.MeasureRecord{}, nil)

	router := newTestRouter(NewHandler(new(mockExplorer), mockCat))

	req := httptest.NewRequest(http.MethodGet, "/catalog/measures?q=margin&limit=abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	mockCat.AssertExpectations(t)
}
