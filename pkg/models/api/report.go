package api

// ReportSummary is the list-endpoint view of a parsed report.
type ReportSummary struct {
	Name         string `json:"name"`
	PageCount    int    `json:"page_count"`
	MeasureCount int    `json:"measure_count"`
}

// Measure is the API view of one measure.
type Measure struct {
	Table              string   `json:"table"`
	Name               string   `json:"name"`
	FullName           string   `json:"full_name"`
	UsageState         string   `json:"usage_state"`
	Expression         string   `json:"expression"`
	ReferencedMeasures []string `json:"referenced_measures,omitempty"`
	ReferencedBy       []string `json:"referenced_by,omitempty"`
	UsedInPages        []string `json:"used_in_pages,omitempty"`
	Author             string   `json:"author,omitempty"`
	Description        string   `json:"description,omitempty"`
	LastChange         string   `json:"last_change,omitempty"`
}

// Page is the API view of one report page.
type Page struct {
	Name         string   `json:"name"`
	Ordinal      int      `json:"ordinal"`
	Visible      bool     `json:"visible"`
	VisualCount  int      `json:"visual_count"`
	UsedMeasures []string `json:"used_measures,omitempty"`
	UsedFields   []string `json:"used_fields,omitempty"`
	VisualTitles []string `json:"visual_titles,omitempty"`
	Description  string   `json:"description,omitempty"`
}
