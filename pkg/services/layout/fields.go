package layout

// FindFields walks an arbitrary decoded JSON value and returns every field
// reference reachable from it, in raw `Entity.Property` form.
//
// Objects are matched against a fixed set of shapes in priority order:
// projections, filter expressions, query metadata selects, and the generic
// Property/Expression leaf. The first four shapes short-circuit; the leaf
// check is additive and generic recursion into every child value still runs.
func FindFields(node any) map[string]struct{} {
	fields := map[string]struct{}{}
	collectFields(node, fields)
	return fields
}

func collectFields(node any, out map[string]struct{}) {
	switch v := node.(type) {
	case map[string]any:
		// singleVisual objects carry their field bindings under projections.
		if proj, ok := v["projections"]; ok {
			projectionFields(proj, out)
			return
		}

		// Filter definitions nest the real content under an expression key.
		if expr, ok := v["expression"]; ok {
			collectFields(expr, out)
			return
		}

		// dataTransform objects: a populated queryMetadata carries a Select
		// list; a null queryMetadata falls back to the selects list.
		if qm, present := v["queryMetadata"]; present {
			if qmObj, ok := qm.(map[string]any); ok {
				if _, hasSelect := qmObj["Select"]; hasSelect {
					selectNames(qmObj, out)
					return
				}
			} else if qm == nil {
				if selects, ok := v["selects"]; ok {
					queryNames(selects, out)
					return
				}
			}
		}

		// Generic leaf: Property plus Expression.SourceRef.Entity identifies
		// a field. The surrounding object may still hold more references, so
		// recursion into every value continues regardless of a match here.
		if prop, ok := v["Property"].(string); ok && prop != "" {
			if _, hasExpr := v["Expression"]; hasExpr {
				if expr, ok := v["Expression"].(map[string]any); ok {
					if src, ok := expr["SourceRef"].(map[string]any); ok {
						if entity, ok := src["Entity"].(string); ok && entity != "" {
							out[entity+"."+prop] = struct{}{}
						}
					}
				}
			}
		}

		for _, child := range v {
			collectFields(child, out)
		}

	case []any:
		for _, item := range v {
			collectFields(item, out)
		}
	}
}

// projectionFields extracts fields from a projections object: a map from a
// projection role ("Values", "Category", ...) to entries carrying a queryRef
// string. Each queryRef is normalized down to its base field(s).
func projectionFields(node any, out map[string]struct{}) {
	roles, ok := node.(map[string]any)
	if !ok {
		return
	}
	for _, entries := range roles {
		list, ok := entries.([]any)
		if !ok {
			continue
		}
		for _, entry := range list {
			obj, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			ref, ok := obj["queryRef"].(string)
			if !ok {
				continue
			}
			for field := range NormalizeQueryRef(ref) {
				out[field] = struct{}{}
			}
		}
	}
}

// selectNames collects the Name of every entry in queryMetadata.Select.
// An entry without a Name contributes an empty string; the matching selects
// variant skips such entries instead. The asymmetry is intentional.
func selectNames(queryMetadata map[string]any, out map[string]struct{}) {
	list, _ := queryMetadata["Select"].([]any)
	for _, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		name, _ := obj["Name"].(string)
		out[name] = struct{}{}
	}
}

// queryNames collects the queryName of every entry in a selects list,
// skipping entries that have none.
func queryNames(node any, out map[string]struct{}) {
	list, ok := node.([]any)
	if !ok {
		return
	}
	for _, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if name, ok := obj["queryName"].(string); ok {
			out[name] = struct{}{}
		}
	}
}
