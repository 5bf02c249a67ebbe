package storage

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"github.com/eugenenazirov/regex-filter/internal/textcodec"
)

// Walker lists and reads the regular files directly inside a directory.
type Walker struct {
	codec *textcodec.Codec
}

// NewWalker creates a Walker that decodes file content with codec.
func NewWalker(codec *textcodec.Codec) *Walker {
	return &Walker{codec: codec}
}

// Files verifies dir and returns a lazy sequence over its regular files in
// name order. Subdirectories and special files are skipped. A file that
// cannot be read or decoded yields an entry carrying only its name together
// with the error; iteration then continues with the next file.
func (w *Walker) Files(dir string) (iter.Seq2[FileEntry, error], error) {
	entries, err := listDir(dir)
	if err != nil {
		return nil, err
	}

	return func(yield func(FileEntry, error) bool) {
		for _, de := range entries {
			path := filepath.Join(dir, de.Name())
			info, err := os.Stat(path)
			if err != nil {
				if !yield(FileEntry{Name: de.Name()}, fmt.Errorf("%w: stat %s: %v", ErrIO, de.Name(), err)) {
					return
				}
				continue
			}
			if !info.Mode().IsRegular() {
				continue
			}

			entry, err := w.read(path, info)
			if !yield(entry, err) {
				return
			}
		}
	}, nil
}

// Names returns the names of the regular files directly inside dir without
// reading their content. Entries that cannot be stat'ed are left out.
func (w *Walker) Names(dir string) ([]string, error) {
	entries, err := listDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, de := range entries {
		info, err := os.Stat(filepath.Join(dir, de.Name()))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		names = append(names, de.Name())
	}
	return names, nil
}

func listDir(dir string) ([]os.DirEntry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, dir)
		}
		return nil, fmt.Errorf("%w: stat %s: %v", ErrNotFound, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNotFound, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %v", ErrIO, dir, err)
	}
	return entries, nil
}

func (w *Walker) read(path string, info os.FileInfo) (FileEntry, error) {
	entry := FileEntry{Name: info.Name(), Mode: info.Mode().Perm()}

	data, err := os.ReadFile(path)
	if err != nil {
		return entry, fmt.Errorf("%w: read %s: %v", ErrIO, entry.Name, err)
	}

	// Content that only looks like gzip is decoded as plain text.
	var gzipErr error
	if isGzip(data) {
		plain, err := gunzip(data)
		if err == nil {
			data = plain
			entry.Gzipped = true
		} else {
			gzipErr = err
		}
	}

	text, err := w.codec.Decode(data)
	if err != nil {
		if gzipErr != nil {
			return entry, fmt.Errorf("file %s: not a valid gzip stream (%v): %w", entry.Name, gzipErr, err)
		}
		return entry, fmt.Errorf("file %s: %w", entry.Name, err)
	}
	entry.Content = text
	return entry, nil
}
