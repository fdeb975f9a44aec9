package describe

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/de-tools/pbi-atlas/pkg/models/domain"
)

// MeasureInput is one measure submitted for description generation.
type MeasureInput struct {
	Name       string `json:"name"`
	Expression string `json:"expression"`
}

// PageInput is one page submitted for description generation.
type PageInput struct {
	Name         string `json:"name"`
	VisualTitles string `json:"visual_titles"`
	UsedFields   string `json:"used_fields"`
	Measures     string `json:"measures"`
}

// Describer turns measure expressions and page contents into natural
// language descriptions, keyed by input name.
type Describer interface {
	DescribeMeasures(ctx context.Context, measures []MeasureInput) (map[string]string, error)
	DescribePages(ctx context.Context, pages []PageInput) (map[string]string, error)
}

// ApplyMeasureDescriptions generates descriptions for every measure that has
// none and back-fills them onto the model. Measures that already carry a
// hand-written description are left alone.
func ApplyMeasureDescriptions(ctx context.Context, d Describer, report *domain.Report, batchSize int) error {
	logger := zerolog.Ctx(ctx)
	if batchSize <= 0 {
		batchSize = 20
	}

	var pending []MeasureInput
	for _, m := range report.Measures {
		if m.Description == "" {
			pending = append(pending, MeasureInput{Name: m.FullName(), Expression: m.Expression})
		}
	}
	if len(pending) == 0 {
		logger.Info().Str("report", report.Name).Msg("no measures need a description")
		return nil
	}
	logger.Info().Str("report", report.Name).Int("count", len(pending)).Msg("describing measures")

	for start := 0; start < len(pending); start += batchSize {
		end := min(start+batchSize, len(pending))
		descriptions, err := d.DescribeMeasures(ctx, pending[start:end])
		if err != nil {
			return fmt.Errorf("describe measures for report %q: %w", report.Name, err)
		}
		for name, description := range descriptions {
			if m, ok := report.Measures[name]; ok {
				m.Description = description
			}
		}
	}
	return nil
}

// ApplyPageDescriptions generates and back-fills a description for every
// page of the report.
func ApplyPageDescriptions(ctx context.Context, d Describer, report *domain.Report) error {
	if len(report.Pages) == 0 {
		return nil
	}

	inputs := make([]PageInput, 0, len(report.Pages))
	for _, p := range report.Pages {
		inputs = append(inputs, PageInput{
			Name:         p.Name,
			VisualTitles: joined(p.VisualTitles),
			UsedFields:   joinedSet(p.UsedFields),
			Measures:     joinedMeasures(p.UsedMeasures),
		})
	}

	descriptions, err := d.DescribePages(ctx, inputs)
	if err != nil {
		return fmt.Errorf("describe pages for report %q: %w", report.Name, err)
	}
	for _, p := range report.Pages {
		if description, ok := descriptions[p.Name]; ok {
			p.Description = description
		}
	}
	return nil
}

func joined(values []string) string {
	sorted := append([]string(nil), values...)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}

func joinedSet(set map[string]struct{}) string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	return joined(values)
}

func joinedMeasures(measures map[string]*domain.Measure) string {
	values := make([]string, 0, len(measures))
	for name := range measures {
		values = append(values, name)
	}
	return joined(values)
}
