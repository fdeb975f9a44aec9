package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	exportmodels "github.com/de-tools/pbi-atlas/pkg/models/export"
)

var measureHeader = []string{
	"Report", "Table", "Measure Name", "Usage State", "Expression",
	"Referenced Measures (Raw)", "Referenced By", "Used In Pages",
	"Author", "Description", "Last Change",
}

var pageHeader = []string{
	"Report", "Page Name", "Is Visible", "Number of Visuals",
	"Used Measures", "All Used Fields (Raw)", "All Visual Titles", "Description",
}

// WriteMeasureReport writes one CSV row per measure record to path.
func WriteMeasureReport(path string, records []exportmodels.MeasureRecord) error {
	return writeCSV(path, measureHeader, len(records), func(i int) []string {
		r := records[i]
		return []string{
			r.Report, r.Table, r.Name, r.UsageState, r.Expression,
			r.ReferencedMeasures, r.ReferencedBy, r.UsedInPages,
			r.Author, r.Description, r.LastChange,
		}
	})
}

// WritePageReport writes one CSV row per page record to path.
func WritePageReport(path string, records []exportmodels.PageRecord) error {
	return writeCSV(path, pageHeader, len(records), func(i int) []string {
		r := records[i]
		return []string{
			r.Report, r.Name, strconv.FormatBool(r.Visible), strconv.Itoa(r.VisualCount),
			r.UsedMeasures, r.UsedFields, r.VisualTitles, r.Description,
		}
	})
}

func writeCSV(path string, header []string, count int, row func(int) []string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	if err := writeRows(file, header, count, row); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeRows(w io.Writer, header []string, count int, row func(int) []string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		if err := writer.Write(row(i)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
