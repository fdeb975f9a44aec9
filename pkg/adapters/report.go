package adapters

import (
	"sort"
	"strings"

	"github.com/de-tools/pbi-atlas/pkg/models/api"
	"github.com/de-tools/pbi-atlas/pkg/models/domain"
	"github.com/de-tools/pbi-atlas/pkg/models/export"
)

// MapMeasureToRecord flattens a measure into its export row. All joined
// columns sort lexicographically before joining with ", ".
func MapMeasureToRecord(reportName string, m *domain.Measure) export.MeasureRecord {
	return export.MeasureRecord{
		Report:             reportName,
		Table:              m.EntityName,
		Name:               m.Name,
		UsageState:         string(m.UsageState),
		Expression:         m.Expression,
		ReferencedMeasures: joinSorted(referencedMeasureNames(m)),
		ReferencedBy:       joinSorted(referencedByNames(m)),
		UsedInPages:        joinSorted(usedInPageNames(m)),
		Author:             m.Author,
		Description:        m.Description,
		LastChange:         m.LastChange,
	}
}

// MapPageToRecord flattens a page into its export row.
func MapPageToRecord(reportName string, p *domain.Page) export.PageRecord {
	return export.PageRecord{
		Report:       reportName,
		Name:         p.Name,
		Visible:      p.Visible,
		VisualCount:  len(p.Visuals),
		UsedMeasures: joinSorted(sortedKeys(p.UsedMeasures)),
		UsedFields:   joinSorted(setValues(p.UsedFields)),
		VisualTitles: joinSorted(append([]string(nil), p.VisualTitles...)),
		Description:  p.Description,
	}
}

// MapReportToSummary produces the API list view of a report.
func MapReportToSummary(r *domain.Report) api.ReportSummary {
	return api.ReportSummary{
		Name:         r.Name,
		PageCount:    len(r.Pages),
		MeasureCount: len(r.Measures),
	}
}

// MapMeasureToAPI produces the API detail view of a measure.
func MapMeasureToAPI(m *domain.Measure) api.Measure {
	return api.Measure{
		Table:              m.EntityName,
		Name:               m.Name,
		FullName:           m.FullName(),
		UsageState:         string(m.UsageState),
		Expression:         m.Expression,
		ReferencedMeasures: sorted(referencedMeasureNames(m)),
		ReferencedBy:       sorted(referencedByNames(m)),
		UsedInPages:        sorted(usedInPageNames(m)),
		Author:             m.Author,
		Description:        m.Description,
		LastChange:         m.LastChange,
	}
}

// MapPageToAPI produces the API detail view of a page.
func MapPageToAPI(p *domain.Page) api.Page {
	return api.Page{
		Name:         p.Name,
		Ordinal:      p.Ordinal,
		Visible:      p.Visible,
		VisualCount:  len(p.Visuals),
		UsedMeasures: sorted(sortedKeys(p.UsedMeasures)),
		UsedFields:   sorted(setValues(p.UsedFields)),
		VisualTitles: append([]string(nil), p.VisualTitles...),
		Description:  p.Description,
	}
}

func referencedMeasureNames(m *domain.Measure) []string {
	return setValues(m.ReferencedMeasures)
}

func referencedByNames(m *domain.Measure) []string {
	names := make([]string, 0, len(m.ReferencedBy))
	for name := range m.ReferencedBy {
		names = append(names, name)
	}
	return names
}

func usedInPageNames(m *domain.Measure) []string {
	names := make([]string, 0, len(m.UsedInPages))
	for _, page := range m.UsedInPages {
		names = append(names, page.Name)
	}
	return names
}

func setValues(set map[string]struct{}) []string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	return values
}

func sortedKeys(measures map[string]*domain.Measure) []string {
	keys := make([]string, 0, len(measures))
	for k := range measures {
		keys = append(keys, k)
	}
	return keys
}

func sorted(values []string) []string {
	sort.Strings(values)
	return values
}

func joinSorted(values []string) string {
	sort.Strings(values)
	return strings.Join(values, ", ")
}
