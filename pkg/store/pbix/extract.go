package pbix

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Extractor unpacks .pbix archives from a source directory into per-report
// folders under a destination directory.
type Extractor struct {
	sourceDir string
	destDir   string
}

func NewExtractor(sourceDir, destDir string) (*Extractor, error) {
	if info, err := os.Stat(sourceDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("source directory does not exist: %s", sourceDir)
	}
	if info, err := os.Stat(destDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("destination directory does not exist: %s", destDir)
	}
	return &Extractor{sourceDir: sourceDir, destDir: destDir}, nil
}

// ExtractAll unpacks every .pbix file in the source directory. A corrupt
// archive is logged and skipped; it never aborts the batch.
func (e *Extractor) ExtractAll(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	archives, err := filepath.Glob(filepath.Join(e.sourceDir, "*.pbix"))
	if err != nil {
		return fmt.Errorf("scan source directory: %w", err)
	}
	if len(archives) == 0 {
		logger.Warn().Str("dir", e.sourceDir).Msg("no .pbix files found")
		return nil
	}

	for _, archive := range archives {
		if err := e.ExtractOne(ctx, archive); err != nil {
			logger.Error().Err(err).Str("file", filepath.Base(archive)).Msg("could not extract archive")
		}
	}
	return nil
}

// ExtractOne unpacks a single .pbix file into a folder named after it.
func (e *Extractor) ExtractOne(ctx context.Context, path string) error {
	logger := zerolog.Ctx(ctx)

	if filepath.Ext(path) != ".pbix" {
		logger.Warn().Str("file", filepath.Base(path)).Msg("skipping non-pbix file")
		return nil
	}

	name := strings.TrimSuffix(filepath.Base(path), ".pbix")
	target := filepath.Join(e.destDir, name)
	logger.Info().Str("file", filepath.Base(path)).Str("target", target).Msg("extracting archive")

	reader, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		if err := extractFile(target, file); err != nil {
			return fmt.Errorf("extract %s: %w", file.Name, err)
		}
	}
	return nil
}

func extractFile(target string, file *zip.File) error {
	dest := filepath.Join(target, filepath.FromSlash(file.Name))

	// Reject entries that would escape the target directory.
	if !strings.HasPrefix(dest, filepath.Clean(target)+string(os.PathSeparator)) {
		return fmt.Errorf("illegal path %q", file.Name)
	}

	if file.FileInfo().IsDir() {
		return os.MkdirAll(dest, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}
