package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/pbi-atlas/pkg/models/domain"
)

// Reporter prints a parsed report summary to the console
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(report *domain.Report) error {
	tmpl := `
{{.Name}} ({{len .Pages}} pages, {{len .Measures}} measures)
{{range .Pages}}
=== {{.Name}} ===
Visible: {{.Visible}}
Visuals: {{len .Visuals}}
Used measures: {{len .UsedMeasures}}
{{end}}
{{if .Diagnostics}}
Diagnostics:
{{range .Diagnostics}}
- [{{.Kind}}] {{.Subject}}: {{.Detail}}
{{end}}
{{end}}
`
	t, err := template.New("report").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}
