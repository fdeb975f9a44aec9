package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fieldLeaf(entity, property string) map[string]any {
	return map[string]any{
		"Property": property,
		"Expression": map[string]any{
			"SourceRef": map[string]any{"Entity": entity},
		},
	}
}

func TestFindFields_Projections(t *testing.T) {
	node := map[string]any{
		"projections": map[string]any{
			"Values": []any{
				map[string]any{"queryRef": "Sum(Sales.Revenue)"},
				map[string]any{"queryRef": "Orders.Count"},
			},
			"Category": []any{
				map[string]any{"queryRef": "Date.Month"},
			},
		},
		// A projections match short-circuits; this sibling is not visited.
		"other": fieldLeaf("Hidden", "Field"),
	}

	fields := FindFields(node)
	assert.Equal(t, map[string]struct{}{
		"Sales.Revenue": {},
		"Orders.Count":  {},
		"Date.Month":    {},
	}, fields)
}

func TestFindFields_FilterExpression(t *testing.T) {
	node := map[string]any{
		"expression": fieldLeaf("Sales", "Region"),
		"sibling":    fieldLeaf("Hidden", "Field"),
	}

	fields := FindFields(node)
	assert.Equal(t, map[string]struct{}{"Sales.Region": {}}, fields)
}

func TestFindFields_QueryMetadataSelect(t *testing.T) {
	node := map[string]any{
		"queryMetadata": map[string]any{
			"Select": []any{
				map[string]any{"Name": "Sales.Revenue"},
				map[string]any{}, // no Name contributes an empty string
			},
		},
	}

	fields := FindFields(node)
	assert.Equal(t, map[string]struct{}{
		"Sales.Revenue": {},
		"":              {},
	}, fields)
}

func TestFindFields_NullQueryMetadataSelects(t *testing.T) {
	node := map[string]any{
		"queryMetadata": nil,
		"selects": []any{
			map[string]any{"queryName": "Sales.Revenue"},
			map[string]any{}, // no queryName is skipped, not empty-stringed
		},
	}

	fields := FindFields(node)
	assert.Equal(t, map[string]struct{}{"Sales.Revenue": {}}, fields)
}

func TestFindFields_QueryMetadataWithoutSelectFallsThrough(t *testing.T) {
	node := map[string]any{
		"queryMetadata": map[string]any{"note": "no Select list"},
		"leaf":          fieldLeaf("Sales", "Revenue"),
	}

	fields := FindFields(node)
	assert.Equal(t, map[string]struct{}{"Sales.Revenue": {}}, fields)
}

func TestFindFields_LeafIsAdditiveWithRecursion(t *testing.T) {
	// The object is itself a leaf match and also contains a nested leaf;
	// both must be found.
	node := map[string]any{
		"Property": "Revenue",
		"Expression": map[string]any{
			"SourceRef": map[string]any{"Entity": "Sales"},
		},
		"nested": fieldLeaf("Orders", "ID"),
	}

	fields := FindFields(node)
	assert.Equal(t, map[string]struct{}{
		"Sales.Revenue": {},
		"Orders.ID":     {},
	}, fields)
}

func TestFindFields_LeafRequiresEntityAndProperty(t *testing.T) {
	missingEntity := map[string]any{
		"Property":   "Revenue",
		"Expression": map[string]any{"SourceRef": map[string]any{}},
	}
	assert.Empty(t, FindFields(missingEntity))

	emptyProperty := fieldLeaf("Sales", "")
	assert.Empty(t, FindFields(emptyProperty))
}

func TestFindFields_ArraysAndScalars(t *testing.T) {
	node := []any{
		fieldLeaf("Sales", "Revenue"),
		"a scalar",
		float64(42),
		nil,
		[]any{fieldLeaf("Orders", "ID")},
	}

	fields := FindFields(node)
	assert.Equal(t, map[string]struct{}{
		"Sales.Revenue": {},
		"Orders.ID":     {},
	}, fields)
}

func TestFindFields_Idempotent(t *testing.T) {
	node := map[string]any{
		"filters": []any{
			map[string]any{"expression": fieldLeaf("Sales", "Region")},
		},
		"leaf": fieldLeaf("Sales", "Revenue"),
	}

	first := FindFields(node)
	second := FindFields(node)
	assert.Equal(t, first, second)
}
