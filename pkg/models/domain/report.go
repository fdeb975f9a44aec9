package domain

// Report is the parsed model of one report layout document.
type Report struct {
	Name string

	// Pages in document order.
	Pages []*Page

	// Measures keyed by full name `Entity[Name]`. Keys are unique within a
	// report; on a duplicate full name the last definition wins and a
	// DuplicateMeasure diagnostic is recorded.
	Measures map[string]*Measure

	// GlobalFilters is the decoded report-level filter list. The model keeps
	// it opaque; only visual/page filters feed field extraction.
	GlobalFilters []any

	// Diagnostics collects the non-fatal conditions observed while the
	// report was built.
	Diagnostics []Diagnostic
}

// DiagnosticKind identifies a class of non-fatal parse condition.
type DiagnosticKind string

const (
	// BadFieldFormat flags a used-field string without the expected
	// `Entity.Property` separator; the field is dropped from the page set.
	BadFieldFormat DiagnosticKind = "bad_field_format"

	// DuplicateMeasure flags a full-name collision in the measures map.
	DuplicateMeasure DiagnosticKind = "duplicate_measure"
)

// Diagnostic is one non-fatal condition recorded during report construction.
type Diagnostic struct {
	Kind    DiagnosticKind
	Subject string
	Detail  string
}
