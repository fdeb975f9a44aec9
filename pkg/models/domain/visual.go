package domain

// Visual is one chart or control placed on a page.
type Visual struct {
	X      float64
	Y      float64
	Z      float64
	Width  float64
	Height float64

	// Type is the visual's type tag, "Unknown" when absent.
	Type string

	// Title is the visual's display title, empty when it has none.
	Title string

	// Config is the decoded configuration substructure; kept opaque apart
	// from the singleVisual object the builder inspects.
	Config map[string]any

	// Filters is the decoded visual-level filter list.
	Filters []any

	// DataTransforms is the decoded data-transform substructure.
	DataTransforms map[string]any

	// UsedFields holds the raw `Entity.Property` references discovered in
	// the visual's filters, transforms and singleVisual config. Entries are
	// reformatted to `Entity[Property]` at the page level, not here.
	UsedFields map[string]struct{}

	// Page is a non-owning back-reference to the owning page.
	Page *Page
}
