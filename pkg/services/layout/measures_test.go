package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/de-tools/pbi-atlas/pkg/models/domain"
)

const documentedExpression = `/*
* Author: Jane Doe
* Description: Calculates the sales per month
* Last change: 2025/10/23
*/
SUM(Sales[Amount])`

func TestParseCommentMetadata(t *testing.T) {
	m := domain.NewMeasure("Sales per Month", "Sales", documentedExpression, nil)
	parseCommentMetadata(m)

	assert.Equal(t, "Jane Doe", m.Author)
	assert.Equal(t, "Calculates the sales per month", m.Description)
	assert.Equal(t, "2025/10/23", m.LastChange)
}

func TestParseCommentMetadata_FieldsAreIndependent(t *testing.T) {
	m := domain.NewMeasure("x", "t", "/* Author: Bob */ 1+1", nil)
	parseCommentMetadata(m)

	assert.Equal(t, "Bob ", m.Author)
	assert.Empty(t, m.Description)
	assert.Empty(t, m.LastChange)
}

func TestParseCommentMetadata_NoCommentBlock(t *testing.T) {
	m := domain.NewMeasure("x", "t", "SUM(Sales[Amount])", nil)
	parseCommentMetadata(m)

	assert.Empty(t, m.Author)
	assert.Empty(t, m.Description)
	assert.Empty(t, m.LastChange)
}

func TestExtractReferences(t *testing.T) {
	refs := extractReferences("DIVIDE(Sales[Total Amount], Sales[Order Count])")

	assert.Contains(t, refs, "Sales[Total Amount]")
	assert.Contains(t, refs, "Sales[Order Count]")
}

func TestExtractReferences_GreekAndSymbols(t *testing.T) {
	refs := extractReferences("Sales[Δ Revenue] + Orders[P&L]")

	assert.Contains(t, refs, "Sales[Δ Revenue]")
	assert.Contains(t, refs, "Orders[P&L]")
}

func TestExtractReferences_None(t *testing.T) {
	assert.Empty(t, extractReferences("1 + 1"))
}

func TestStructuredReferences(t *testing.T) {
	record := map[string]any{
		"references": map[string]any{
			"measures": []any{
				map[string]any{"entity": "Sales", "name": "Total"},
				map[string]any{"entity": "Orders", "name": "Count"},
			},
		},
	}

	assert.Equal(t, []string{"Sales[Total]", "Orders[Count]"}, structuredReferences(record))
}

func TestStructuredReferences_Absent(t *testing.T) {
	assert.Nil(t, structuredReferences(map[string]any{"name": "x"}))
	assert.Nil(t, structuredReferences(map[string]any{"references": map[string]any{}}))
}
