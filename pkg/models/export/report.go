package export

// MeasureRecord is the flat, export-ready row for one measure. The joined
// columns are lexicographically sorted and comma-and-space separated so the
// output is stable across runs.
type MeasureRecord struct {
	Report             string
	Table              string
	Name               string
	UsageState         string
	Expression         string
	ReferencedMeasures string
	ReferencedBy       string
	UsedInPages        string
	Author             string
	Description        string
	LastChange         string
}

// PageRecord is the flat, export-ready row for one page.
type PageRecord struct {
	Report       string
	Name         string
	Visible      bool
	VisualCount  int
	UsedMeasures string
	UsedFields   string
	VisualTitles string
	Description  string
}
