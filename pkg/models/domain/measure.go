package domain

// UsageState classifies how a measure is consumed within its report.
type UsageState string

const (
	// DirectlyUsed means at least one page or visual references the measure.
	DirectlyUsed UsageState = "Directly Used"

	// IndirectlyUsed means the measure is reachable through the dependency
	// graph from a directly used measure, without being used itself.
	IndirectlyUsed UsageState = "Indirectly Used"

	// Unreferenced means nothing points at the measure.
	Unreferenced UsageState = "Unreferenced"

	// Dangling means the measure is referenced only by measures that are
	// themselves unused: a dead sub-graph.
	Dangling UsageState = "Dangling"
)

// Measure is a single DAX measure attached to an entity (table).
// Identity is the (entity, name) pair; FullName is the canonical lookup key.
type Measure struct {
	Name       string
	EntityName string
	Expression string

	// Optional metadata, parsed from an embedded comment block or filled in
	// after construction by a description service.
	Author      string
	Description string
	LastChange  string

	UsageState UsageState

	// ReferencedMeasures holds raw `Entity[Name]` strings found in the
	// expression; they are resolved against the report's measure map, never
	// stored as object links.
	ReferencedMeasures map[string]struct{}

	// ReferencedBy maps full names to the measures whose expressions
	// reference this one.
	ReferencedBy map[string]*Measure

	// UsedInPages maps page keys to the pages that use this measure directly.
	UsedInPages map[PageKey]*Page

	// Report is a non-owning back-reference to the owning report.
	Report *Report
}

// NewMeasure returns a measure in its initial Unreferenced state.
func NewMeasure(name, entityName, expression string, report *Report) *Measure {
	return &Measure{
		Name:               name,
		EntityName:         entityName,
		Expression:         expression,
		UsageState:         Unreferenced,
		ReferencedMeasures: map[string]struct{}{},
		ReferencedBy:       map[string]*Measure{},
		UsedInPages:        map[PageKey]*Page{},
		Report:             report,
	}
}

// FullName returns the canonical `Entity[Name]` key, e.g. "Sales[Revenue]".
func (m *Measure) FullName() string {
	return m.EntityName + "[" + m.Name + "]"
}
