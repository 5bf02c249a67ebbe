package textcodec

import "errors"

var (
	// ErrEncoding is returned when bytes cannot be decoded to text, or text cannot be encoded back.
	ErrEncoding = errors.New("text encoding error")
	// ErrUnknownEncoding is returned when an encoding label is not recognised.
	ErrUnknownEncoding = errors.New("unknown text encoding")
)
