package patterns

import "regexp"

// Pair is an uncompiled pattern/replacement entry as declared in a filter file.
type Pair struct {
	Expr        string
	Replacement string
}

// Pattern is a compiled filter entry.
type Pattern struct {
	Expr        string
	Replacement string

	re *regexp.Regexp
}

// Regexp returns the compiled expression.
func (p Pattern) Regexp() *regexp.Regexp {
	return p.re
}

// Set is an ordered, compiled collection of patterns.
type Set struct {
	patterns []Pattern
}

// Len reports the number of patterns in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.patterns)
}

// Patterns returns a copy of the patterns in application order.
func (s *Set) Patterns() []Pattern {
	if s == nil {
		return nil
	}
	out := make([]Pattern, len(s.patterns))
	copy(out, s.patterns)
	return out
}

// Option configures how patterns are compiled.
type Option func(*options)

type options struct {
	ignoreCase bool
}

// WithIgnoreCase compiles every pattern case-insensitively.
func WithIgnoreCase(enabled bool) Option {
	return func(o *options) {
		o.ignoreCase = enabled
	}
}
