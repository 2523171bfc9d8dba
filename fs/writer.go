package fs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/xwalk"
)

// OutputPath converts a page file name to the name of its mapped output.
// Example: pages/en/index.html, .json → index.json
func OutputPath(page, ext string) (string, error) {
	base := filepath.Base(filepath.Clean(page))
	if page == "" || base == "." || base == string(filepath.Separator) {
		return "", xwalk.Errorf(xwalk.EINVALID, "page name required")
	}
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" {
		name = "index"
	}
	return name + ext, nil
}

// Writer writes encoded pages to a directory.
type Writer struct {
	baseDir string
	encoder xwalk.Encoder
	ext     string
}

// NewWriter creates a new Writer that encodes with enc and writes files with
// extension ext to the given base directory.
func NewWriter(baseDir string, enc xwalk.Encoder, ext string) *Writer {
	return &Writer{baseDir: baseDir, encoder: enc, ext: ext}
}

// WritePage encodes the blocks mapped from page and writes them to disk.
// It returns the path of the output file and whether it was written. The
// file is only replaced once encoding succeeded, and is left untouched when
// its content would not change.
func (w *Writer) WritePage(ctx context.Context, page string, blocks []*xwalk.MappedBlock) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	relPath, err := OutputPath(page, w.ext)
	if err != nil {
		return "", false, err
	}

	var buf bytes.Buffer
	if err := w.encoder.Encode(&buf, blocks); err != nil {
		return "", false, err
	}

	fullPath := filepath.Join(w.baseDir, relPath)
	if existing, err := os.ReadFile(fullPath); err == nil && xxhash.Sum64(existing) == xxhash.Sum64(buf.Bytes()) {
		return fullPath, false, nil
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", false, err
	}

	tmp, err := os.CreateTemp(w.baseDir, "."+relPath+".*")
	if err != nil {
		return "", false, err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return "", false, err
	}
	if err := tmp.Close(); err != nil {
		return "", false, err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", false, err
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return "", false, err
	}
	return fullPath, true, nil
}
