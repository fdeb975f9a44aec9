package pbix

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	json "github.com/goccy/go-json"
	"golang.org/x/text/encoding/unicode"
)

// Layout files inside a .pbix archive are UTF-16LE encoded JSON.
var layoutEncoding = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)

// DiscoverReports lists the extracted report folders under root, sorted by
// name.
func DiscoverReports(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read reports directory: %w", err)
	}
	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(root, entry.Name()))
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// LoadLayout reads and decodes the layout document of one extracted report
// folder into a generic JSON tree. A missing layout file and an undecodable
// document are both fatal for that report; batch callers catch the error per
// report and continue.
func LoadLayout(reportDir string) (map[string]any, error) {
	name := filepath.Base(reportDir)
	path := filepath.Join(reportDir, "Report", "Layout")

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("layout not found for report %q at %s", name, path)
		}
		return nil, fmt.Errorf("read layout for report %q: %w", name, err)
	}

	decoded, err := layoutEncoding.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("decode layout encoding for report %q: %w", name, err)
	}

	var layout map[string]any
	if err := json.Unmarshal(decoded, &layout); err != nil {
		return nil, fmt.Errorf("parse layout for report %q: %w", name, err)
	}
	return layout, nil
}
