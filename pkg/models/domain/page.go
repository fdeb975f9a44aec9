package domain

// PageKey is a page's identity within its report: the (ordinal, name) pair.
type PageKey struct {
	Ordinal int
	Name    string
}

// Page is one section of a report.
type Page struct {
	ID      string
	Name    string
	Ordinal int
	Visible bool
	Width   float64
	Height  float64

	// Description may be back-filled by a description service after the
	// report has been built.
	Description string

	// Config is the decoded page-level configuration, kept opaque.
	Config map[string]any

	// Visuals in document order.
	Visuals []*Visual

	// Filters is the decoded page-level filter list.
	Filters []any

	// UsedFields holds the page's referenced fields in normalized
	// `Entity[Property]` form, aggregated over visuals and page filters.
	UsedFields map[string]struct{}

	// UsedMeasures maps full names to the measures this page uses directly.
	// Populated by the report builder's usage resolution, not by the page.
	UsedMeasures map[string]*Measure

	// VisualTitles lists the non-empty visual titles in document order.
	VisualTitles []string

	// Report is a non-owning back-reference to the owning report.
	Report *Report
}

// Key returns the page's identity pair.
func (p *Page) Key() PageKey {
	return PageKey{Ordinal: p.Ordinal, Name: p.Name}
}
