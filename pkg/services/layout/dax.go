package layout

import (
	"regexp"
	"strings"
)

// wrapperPattern finds the first `identifier(` token in a query reference.
var wrapperPattern = regexp.MustCompile(`\b(\w+)\(`)

// simpleWrappers are aggregation functions whose single argument is the base
// field: the content between the first '(' and the last ')'.
var simpleWrappers = map[string]struct{}{
	"Avg":               {},
	"Count":             {},
	"CountNonNull":      {},
	"Max":               {},
	"Median":            {},
	"Min":               {},
	"StandardDeviation": {},
	"Sum":               {},
}

// recursiveWrappers take multiple sub-expressions that must each be
// normalized in turn.
var recursiveWrappers = map[string]struct{}{
	"Divide":     {},
	"ScopedEval": {},
}

// NormalizeQueryRef strips known DAX wrapper functions from a query
// reference and returns the base field identifiers it denotes. A reference
// without a recognized wrapper, including one wrapped in an unknown
// function, is returned unchanged as a singleton set.
func NormalizeQueryRef(query string) map[string]struct{} {
	fields := map[string]struct{}{}
	normalizeQueryRef(query, fields)
	return fields
}

func normalizeQueryRef(query string, out map[string]struct{}) {
	match := wrapperPattern.FindStringSubmatch(query)
	if match == nil {
		out[query] = struct{}{}
		return
	}
	name := match[1]

	if _, ok := recursiveWrappers[name]; ok {
		open := strings.Index(query, "(")
		close := strings.LastIndex(query, ")")
		if open == -1 || close <= open {
			out[query] = struct{}{}
			return
		}
		// The split is a plain comma split: a comma inside a nested call's
		// own argument list splits too early. Kept as-is; see DESIGN.md.
		for _, sub := range strings.Split(query[open+1:close], ",") {
			normalizeQueryRef(sub, out)
		}
		return
	}

	if _, ok := simpleWrappers[name]; ok {
		open := strings.Index(query, "(")
		close := strings.LastIndex(query, ")")
		if open == -1 || close <= open {
			out[query] = struct{}{}
			return
		}
		out[query[open+1:close]] = struct{}{}
		return
	}

	// Unknown function names are not stripped.
	out[query] = struct{}{}
}
