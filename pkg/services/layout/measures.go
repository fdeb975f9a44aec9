package layout

import (
	"regexp"
	"strings"

	"github.com/de-tools/pbi-atlas/pkg/models/domain"
)

// Measures may carry an embedded documentation block of the form
//
//	/*
//	* Author: John Doe
//	* Description: Calculates the sales per month
//	* Last change: 2025/10/23
//	*/
//
// Each field is optional and extracted independently.
var (
	commentPattern    = regexp.MustCompile(`(?s)/\*.*? Author:.*?\*/`)
	authorPattern     = regexp.MustCompile(`Author: ([a-zA-Z ]*)`)
	descPattern       = regexp.MustCompile(`Description: ([a-zA-Z0-9 .\-"]*)`)
	lastChangePattern = regexp.MustCompile(`Last change: ([0-9./-]*)`)

	// referencePattern matches `Entity[Name]` style measure references
	// inside a DAX expression. Names may contain Latin and Greek letters,
	// digits, underscores, spaces and ampersands.
	referencePattern = regexp.MustCompile(`[a-zA-Z0-9_ '"]+\[[a-zA-ZΑ-Ωα-ω0-9_ &]*\]`)
)

// parseCommentMetadata fills the measure's author, description and
// last-change fields from the documentation block, when one is present.
func parseCommentMetadata(m *domain.Measure) {
	comment := commentPattern.FindString(m.Expression)
	if comment == "" {
		return
	}
	if match := authorPattern.FindStringSubmatch(comment); match != nil {
		m.Author = match[1]
	}
	if match := descPattern.FindStringSubmatch(comment); match != nil {
		m.Description = match[1]
	}
	if match := lastChangePattern.FindStringSubmatch(comment); match != nil {
		m.LastChange = match[1]
	}
}

// extractReferences returns the raw `Entity[Name]` strings referenced by a
// DAX expression.
func extractReferences(expression string) map[string]struct{} {
	refs := map[string]struct{}{}
	for _, match := range referencePattern.FindAllString(expression, -1) {
		refs[strings.TrimSpace(match)] = struct{}{}
	}
	return refs
}

// structuredReferences collects `Entity[Name]` keys from a measure record's
// explicit references.measures list. Expressions like
// DIVIDE([Measure 1], [Measure 2]) omit the entity in the text; the
// structured list keeps the real names.
func structuredReferences(record map[string]any) []string {
	references, ok := record["references"].(map[string]any)
	if !ok {
		return nil
	}
	measures, ok := references["measures"].([]any)
	if !ok {
		return nil
	}
	var names []string
	for _, entry := range measures {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		entity, _ := obj["entity"].(string)
		name, _ := obj["name"].(string)
		names = append(names, entity+"["+name+"]")
	}
	return names
}
