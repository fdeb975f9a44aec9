package reports

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/de-tools/pbi-atlas/pkg/models/domain"
	"github.com/de-tools/pbi-atlas/pkg/services/layout"
	"github.com/de-tools/pbi-atlas/pkg/store/pbix"
)

// Explorer exposes a set of parsed reports for querying.
type Explorer interface {
	ListReports(ctx context.Context) ([]*domain.Report, error)
	GetReport(ctx context.Context, name string) (*domain.Report, error)
}

type reportExplorer struct {
	byName map[string]*domain.Report
	order  []string
}

func NewExplorer(parsed []*domain.Report) Explorer {
	explorer := &reportExplorer{byName: map[string]*domain.Report{}}
	for _, report := range parsed {
		if _, exists := explorer.byName[report.Name]; !exists {
			explorer.order = append(explorer.order, report.Name)
		}
		explorer.byName[report.Name] = report
	}
	sort.Strings(explorer.order)
	return explorer
}

func (e *reportExplorer) ListReports(_ context.Context) ([]*domain.Report, error) {
	result := make([]*domain.Report, 0, len(e.order))
	for _, name := range e.order {
		result = append(result, e.byName[name])
	}
	return result, nil
}

func (e *reportExplorer) GetReport(_ context.Context, name string) (*domain.Report, error) {
	report, ok := e.byName[name]
	if !ok {
		return nil, fmt.Errorf("report %q not found", name)
	}
	return report, nil
}

// ParseAll builds a report model for every extracted report folder under
// root. A report that fails to load or decode is logged and skipped; it
// never aborts the batch.
func ParseAll(ctx context.Context, root string) ([]*domain.Report, error) {
	logger := zerolog.Ctx(ctx)

	dirs, err := pbix.DiscoverReports(root)
	if err != nil {
		return nil, err
	}

	var parsed []*domain.Report
	for _, dir := range dirs {
		name := filepath.Base(dir)

		doc, err := pbix.LoadLayout(dir)
		if err != nil {
			logger.Error().Err(err).Str("report", name).Msg("could not load report layout")
			continue
		}

		report, err := layout.BuildReport(ctx, name, doc)
		if err != nil {
			logger.Error().Err(err).Str("report", name).Msg("could not parse report")
			continue
		}

		logger.Info().
			Str("report", name).
			Int("pages", len(report.Pages)).
			Int("measures", len(report.Measures)).
			Msg("parsed report")
		parsed = append(parsed, report)
	}
	return parsed, nil
}
