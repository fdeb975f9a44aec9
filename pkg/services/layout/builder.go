package layout

import (
	"context"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/de-tools/pbi-atlas/pkg/models/domain"
)

// BuildReport constructs the full report model from a decoded layout
// document: pages and visuals in document order, measures from the model
// extension section, then the measure dependency graph and usage states.
//
// A structurally undecodable document aborts this report only; callers
// processing several reports are expected to continue with the rest.
func BuildReport(ctx context.Context, name string, layout map[string]any) (*domain.Report, error) {
	report := &domain.Report{
		Name:     name,
		Measures: map[string]*domain.Measure{},
	}

	config, err := decodeObjectString(layout["config"])
	if err != nil {
		return nil, fmt.Errorf("report %q: decode config: %w", name, err)
	}

	report.GlobalFilters, err = decodeListString(layout["filters"])
	if err != nil {
		return nil, fmt.Errorf("report %q: decode filters: %w", name, err)
	}

	if err := loadPages(ctx, report, layout); err != nil {
		return nil, fmt.Errorf("report %q: %w", name, err)
	}

	if err := loadMeasures(report, config); err != nil {
		return nil, fmt.Errorf("report %q: %w", name, err)
	}

	resolveMeasureDependencies(report)
	resolvePageUsage(report)
	propagateIndirectUsage(report)
	classifyDangling(report)

	return report, nil
}

func loadPages(ctx context.Context, report *domain.Report, layout map[string]any) error {
	sections, _ := layout["sections"].([]any)
	for i, entry := range sections {
		section, ok := entry.(map[string]any)
		if !ok {
			return fmt.Errorf("section %d: not an object", i)
		}
		page, err := loadPage(ctx, report, section)
		if err != nil {
			return fmt.Errorf("section %d: %w", i, err)
		}
		report.Pages = append(report.Pages, page)
	}
	return nil
}

func loadPage(ctx context.Context, report *domain.Report, section map[string]any) (*domain.Page, error) {
	page := &domain.Page{
		ID:           stringOr(section["name"], ""),
		Name:         stringOr(section["displayName"], "Untitled Page"),
		Ordinal:      intOr(section["ordinal"]),
		Visible:      numberEquals(section["displayOption"], 1),
		Width:        floatOr(section["width"]),
		Height:       floatOr(section["height"]),
		UsedFields:   map[string]struct{}{},
		UsedMeasures: map[string]*domain.Measure{},
		Report:       report,
	}

	pageConfig, err := decodeObjectString(section["config"])
	if err != nil {
		return nil, fmt.Errorf("page %q: decode config: %w", page.Name, err)
	}
	page.Config = pageConfig

	filters, err := decodeListString(section["filters"])
	if err != nil {
		return nil, fmt.Errorf("page %q: decode filters: %w", page.Name, err)
	}
	page.Filters = filters

	containers, _ := section["visualContainers"].([]any)
	for i, entry := range containers {
		container, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("page %q: visual %d: not an object", page.Name, i)
		}
		visual, err := loadVisual(page, container)
		if err != nil {
			return nil, fmt.Errorf("page %q: visual %d: %w", page.Name, i, err)
		}
		page.Visuals = append(page.Visuals, visual)
		if visual.Title != "" {
			page.VisualTitles = append(page.VisualTitles, visual.Title)
		}
	}

	// Raw Entity.Property fields from every visual plus the page's own
	// filters, then reformatted to the Entity[Property] lookup form.
	raw := map[string]struct{}{}
	for _, visual := range page.Visuals {
		for field := range visual.UsedFields {
			raw[field] = struct{}{}
		}
	}
	if len(page.Filters) > 0 {
		for field := range FindFields(page.Filters) {
			raw[field] = struct{}{}
		}
	}
	reformatUsedFields(ctx, report, page, raw)

	return page, nil
}

// reformatUsedFields converts raw `Entity.Property` entries into the
// `Entity[Property]` form used as the measure lookup key, splitting on the
// first dot. Entries without a dot are dropped with a diagnostic.
func reformatUsedFields(ctx context.Context, report *domain.Report, page *domain.Page, raw map[string]struct{}) {
	logger := zerolog.Ctx(ctx)
	for field := range raw {
		entity, property, found := strings.Cut(field, ".")
		if !found {
			logger.Warn().
				Str("report", report.Name).
				Str("page", page.Name).
				Str("field", field).
				Msg("used field has no entity separator, dropping")
			report.Diagnostics = append(report.Diagnostics, domain.Diagnostic{
				Kind:    domain.BadFieldFormat,
				Subject: page.Name,
				Detail:  field,
			})
			continue
		}
		page.UsedFields[entity+"["+property+"]"] = struct{}{}
	}
}

func loadVisual(page *domain.Page, container map[string]any) (*domain.Visual, error) {
	visual := &domain.Visual{
		X:          floatOr(container["x"]),
		Y:          floatOr(container["y"]),
		Z:          floatOr(container["z"]),
		Width:      floatOr(container["width"]),
		Height:     floatOr(container["height"]),
		UsedFields: map[string]struct{}{},
		Page:       page,
	}

	config, err := decodeObjectString(container["config"])
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	visual.Config = config

	visual.Filters, err = decodeListString(container["filters"])
	if err != nil {
		return nil, fmt.Errorf("decode filters: %w", err)
	}

	visual.DataTransforms, err = decodeObjectString(container["dataTransforms"])
	if err != nil {
		return nil, fmt.Errorf("decode dataTransforms: %w", err)
	}

	singleVisual, _ := config["singleVisual"].(map[string]any)
	visual.Type = stringOr(singleVisual["visualType"], "Unknown")
	visual.Title = visualTitle(singleVisual)

	for field := range FindFields(visual.Filters) {
		visual.UsedFields[field] = struct{}{}
	}
	for field := range FindFields(visual.DataTransforms) {
		visual.UsedFields[field] = struct{}{}
	}
	for field := range FindFields(singleVisual) {
		visual.UsedFields[field] = struct{}{}
	}

	return visual, nil
}

// visualTitle reads the literal title text from the singleVisual's vcObjects
// block. Title literals are quoted strings, e.g. 'Sales by region'.
func visualTitle(singleVisual map[string]any) string {
	vcObjects, _ := singleVisual["vcObjects"].(map[string]any)
	titles, _ := vcObjects["title"].([]any)
	if len(titles) == 0 {
		return ""
	}
	entry, _ := titles[0].(map[string]any)
	properties, _ := entry["properties"].(map[string]any)
	text, _ := properties["text"].(map[string]any)
	expr, _ := text["expr"].(map[string]any)
	literal, _ := expr["Literal"].(map[string]any)
	value, _ := literal["Value"].(string)
	return strings.Trim(value, "'")
}

func loadMeasures(report *domain.Report, config map[string]any) error {
	extensions, _ := config["modelExtensions"].([]any)
	if len(extensions) == 0 {
		return nil
	}
	extension, ok := extensions[0].(map[string]any)
	if !ok {
		return fmt.Errorf("model extension: not an object")
	}
	entities, _ := extension["entities"].([]any)

	for _, entry := range entities {
		entity, ok := entry.(map[string]any)
		if !ok {
			return fmt.Errorf("model extension entity: not an object")
		}
		entityName := stringOr(entity["name"], "Unknown")
		records, _ := entity["measures"].([]any)

		for _, item := range records {
			record, ok := item.(map[string]any)
			if !ok {
				return fmt.Errorf("entity %q: measure is not an object", entityName)
			}
			name, ok := record["name"].(string)
			if !ok {
				return fmt.Errorf("entity %q: measure without a name", entityName)
			}
			expression, ok := record["expression"].(string)
			if !ok {
				return fmt.Errorf("entity %q: measure %q without an expression", entityName, name)
			}

			measure := domain.NewMeasure(name, entityName, expression, report)
			parseCommentMetadata(measure)
			measure.ReferencedMeasures = extractReferences(expression)
			for _, ref := range structuredReferences(record) {
				measure.ReferencedMeasures[ref] = struct{}{}
			}

			// Last write wins on a full-name collision; the diagnostic makes
			// the shadowed definition visible to callers.
			if _, exists := report.Measures[measure.FullName()]; exists {
				report.Diagnostics = append(report.Diagnostics, domain.Diagnostic{
					Kind:    domain.DuplicateMeasure,
					Subject: measure.FullName(),
					Detail:  "duplicate definition replaces the earlier one",
				})
			}
			report.Measures[measure.FullName()] = measure
		}
	}
	return nil
}

// decodeObjectString parses a JSON-encoded-as-string object field. Absent or
// empty fields yield an empty object, never an error.
func decodeObjectString(raw any) (map[string]any, error) {
	s, ok := raw.(string)
	if !ok || s == "" {
		return map[string]any{}, nil
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// decodeListString parses a JSON-encoded-as-string list field with the same
// absent-means-empty rule.
func decodeListString(raw any) ([]any, error) {
	s, ok := raw.(string)
	if !ok || s == "" {
		return []any{}, nil
	}
	var list []any
	if err := json.Unmarshal([]byte(s), &list); err != nil {
		return nil, err
	}
	return list, nil
}

func stringOr(raw any, fallback string) string {
	if s, ok := raw.(string); ok && s != "" {
		return s
	}
	return fallback
}

func floatOr(raw any) float64 {
	f, _ := raw.(float64)
	return f
}

func intOr(raw any) int {
	f, _ := raw.(float64)
	return int(f)
}

func numberEquals(raw any, want float64) bool {
	f, ok := raw.(float64)
	return ok && f == want
}
