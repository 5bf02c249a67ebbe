package storage

import "errors"

var (
	// ErrNotFound is returned when the input directory is missing or is not a directory.
	ErrNotFound = errors.New("input directory not found")
	// ErrIO is returned when a file cannot be read or written, or the output directory cannot be created.
	ErrIO = errors.New("file I/O error")
)
