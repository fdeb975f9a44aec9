package reports

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/de-tools/pbi-atlas/pkg/models/domain"
)

func TestExplorer(t *testing.T) {
	beta := &domain.Report{Name: "Beta"}
	alpha := &domain.Report{Name: "Alpha"}
	explorer := NewExplorer([]*domain.Report{beta, alpha})

	listed, err := explorer.ListReports(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Alpha", listed[0].Name)
	assert.Equal(t, "Beta", listed[1].Name)

	got, err := explorer.GetReport(context.Background(), "Beta")
	require.NoError(t, err)
	assert.Same(t, beta, got)

	_, err = explorer.GetReport(context.Background(), "Gamma")
	assert.Error(t, err)
}

func TestParseAll_SkipsBrokenReports(t *testing.T) {
	root := t.TempDir()
	writeReport(t, filepath.Join(root, "Good"), `{"sections": [], "config": "{}"}`)
	writeReport(t, filepath.Join(root, "Broken"), `{"config": "{nope"}`)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "NoLayout"), 0o755))

	parsed, err := ParseAll(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, "Good", parsed[0].Name)
}

func writeReport(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Report"), 0o755))
	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).
		NewEncoder().Bytes([]byte(content))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Report", "Layout"), encoded, 0o644))
}
