package layout

import "github.com/de-tools/pbi-atlas/pkg/models/domain"

// resolveMeasureDependencies builds the reverse edges of the measure graph:
// for every raw reference that resolves to a measure in this report, the
// referencing measure is recorded on the target's ReferencedBy set. Raw
// names that resolve to nothing create no edge.
func resolveMeasureDependencies(report *domain.Report) {
	for _, measure := range report.Measures {
		for name := range measure.ReferencedMeasures {
			if target, ok := report.Measures[name]; ok {
				target.ReferencedBy[measure.FullName()] = measure
			}
		}
	}
}

// resolvePageUsage links pages to the measures their used fields resolve to
// and marks those measures directly used. This runs before propagation, so a
// direct hit always wins over anything inferred from graph structure.
func resolvePageUsage(report *domain.Report) {
	for _, page := range report.Pages {
		for field := range page.UsedFields {
			measure, ok := report.Measures[field]
			if !ok {
				continue
			}
			page.UsedMeasures[measure.FullName()] = measure
			measure.UsedInPages[page.Key()] = page
			measure.UsageState = domain.DirectlyUsed
		}
	}
}

// propagateIndirectUsage walks the dependency edges of every directly used
// measure depth-first and upgrades reachable Unreferenced measures to
// IndirectlyUsed. Measures already in a used state are never revisited; the
// visited set additionally terminates dependency cycles reachable from a
// directly used measure.
func propagateIndirectUsage(report *domain.Report) {
	visited := map[string]struct{}{}
	for _, measure := range report.Measures {
		if measure.UsageState == domain.DirectlyUsed {
			propagateFrom(report, measure, visited)
		}
	}
}

func propagateFrom(report *domain.Report, measure *domain.Measure, visited map[string]struct{}) {
	for name := range measure.ReferencedMeasures {
		target, ok := report.Measures[name]
		if !ok {
			continue
		}
		if _, seen := visited[target.FullName()]; seen {
			continue
		}
		visited[target.FullName()] = struct{}{}
		if target.UsageState == domain.Unreferenced {
			target.UsageState = domain.IndirectlyUsed
			propagateFrom(report, target, visited)
		}
	}
}

// classifyDangling is the final pass: a measure still Unreferenced after
// propagation but with incoming dependency edges sits in a dead sub-graph.
func classifyDangling(report *domain.Report) {
	for _, measure := range report.Measures {
		if measure.UsageState == domain.Unreferenced && len(measure.ReferencedBy) > 0 {
			measure.UsageState = domain.Dangling
		}
	}
}
