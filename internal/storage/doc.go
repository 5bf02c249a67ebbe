// Package storage reads input files from a flat directory and writes their
// filtered versions to an output directory. Content passes through a
// textcodec.Codec in both directions; gzip-compressed files are transparently
// decompressed on read and recompressed on write.
package storage
