package storage

import "io/fs"

// FileEntry is one input file held in memory between read and write.
type FileEntry struct {
	Name    string
	Content string
	Mode    fs.FileMode
	Gzipped bool
}
