package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exportmodels "github.com/de-tools/pbi-atlas/pkg/models/export"
)

func TestWriteMeasureReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "measures.csv")

	records := []exportmodels.MeasureRecord{
		{
			Report:             "Finance",
			Table:              "Sales",
			Name:               "Total Revenue",
			UsageState:         "Directly Used",
			Expression:         "SUM(Sales[Amount])",
			ReferencedMeasures: "Sales[Net Revenue], Sales[Tax]",
			UsedInPages:        "Overview",
			Author:             "Jane Doe",
		},
	}

	require.NoError(t, WriteMeasureReport(path, records))

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, measureHeader, rows[0])
	assert.Equal(t, []string{
		"Finance", "Sales", "Total Revenue", "Directly Used", "SUM(Sales[Amount])",
		"Sales[Net Revenue], Sales[Tax]", "", "Overview", "Jane Doe", "", "",
	}, rows[1])
}

func TestWritePageReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pages.csv")

	records := []exportmodels.PageRecord{
		{
			Report:       "Finance",
			Name:         "Overview",
			Visible:      true,
			VisualCount:  3,
			UsedMeasures: "Sales[Total Revenue]",
			UsedFields:   "Sales.Amount, Sales.Region",
			VisualTitles: "Revenue by Region",
		},
	}

	require.NoError(t, WritePageReport(path, records))

	rows := readCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, pageHeader, rows[0])
	assert.Equal(t, []string{
		"Finance", "Overview", "true", "3",
		"Sales[Total Revenue]", "Sales.Amount, Sales.Region", "Revenue by Region", "",
	}, rows[1])
}

func TestWriteMeasureReport_EmptyStillWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "measures.csv")

	require.NoError(t, WriteMeasureReport(path, nil))

	rows := readCSV(t, path)
	require.Len(t, rows, 1)
	assert.Equal(t, measureHeader, rows[0])
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	return rows
}
