package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/eugenenazirov/regex-filter/internal/textcodec"
)

const (
	defaultDirMode  os.FileMode = 0o755
	defaultFileMode os.FileMode = 0o644
)

// Writer stores filtered entries in a single output directory.
type Writer struct {
	dir   string
	codec *textcodec.Codec
}

// NewWriter creates a Writer targeting dir. The directory is created lazily.
func NewWriter(dir string, codec *textcodec.Codec) *Writer {
	return &Writer{dir: dir, codec: codec}
}

// Dir returns the output directory path.
func (w *Writer) Dir() string {
	return w.dir
}

// Prepare creates the output directory if it does not exist yet.
func (w *Writer) Prepare() error {
	if err := os.MkdirAll(w.dir, defaultDirMode); err != nil {
		return fmt.Errorf("%w: create output directory %s: %v", ErrIO, w.dir, err)
	}
	return nil
}

// Write encodes entry and stores it under its name, replacing any existing file.
func (w *Writer) Write(entry FileEntry) error {
	if err := w.Prepare(); err != nil {
		return err
	}

	data, err := w.codec.Encode(entry.Content)
	if err != nil {
		return fmt.Errorf("file %s: %w", entry.Name, err)
	}
	if entry.Gzipped {
		data, err = gzipBytes(data)
		if err != nil {
			return fmt.Errorf("%w: compress %s: %v", ErrIO, entry.Name, err)
		}
	}

	// Owner write is kept so a later run can overwrite the file.
	mode := entry.Mode | 0o200
	if entry.Mode == 0 {
		mode = defaultFileMode
	}

	path := filepath.Join(w.dir, entry.Name)
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrIO, path, err)
	}
	return nil
}
