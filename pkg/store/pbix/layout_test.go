package pbix

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func writeLayout(t *testing.T, reportDir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(reportDir, "Report"), 0o755))

	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).
		NewEncoder().Bytes([]byte(content))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(reportDir, "Report", "Layout"), encoded, 0o644))
}

func TestLoadLayout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "SalesReport")
	writeLayout(t, dir, `{"sections": [], "config": "{}"}`)

	layout, err := LoadLayout(dir)
	require.NoError(t, err)
	assert.Equal(t, "{}", layout["config"])
	assert.Equal(t, []any{}, layout["sections"])
}

func TestLoadLayout_Missing(t *testing.T) {
	_, err := LoadLayout(filepath.Join(t.TempDir(), "Empty"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "layout not found")
}

func TestLoadLayout_InvalidJSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Broken")
	writeLayout(t, dir, `{"sections": `)

	_, err := LoadLayout(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse layout")
}

func TestDiscoverReports(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Beta"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Alpha"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray.txt"), nil, 0o644))

	dirs, err := DiscoverReports(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "Alpha"),
		filepath.Join(root, "Beta"),
	}, dirs)
}
