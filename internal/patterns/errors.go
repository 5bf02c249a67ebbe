package patterns

import "errors"

var (
	// ErrConfiguration is returned when a filter file is missing, malformed, or holds an invalid pattern.
	ErrConfiguration = errors.New("invalid filter configuration")
)
