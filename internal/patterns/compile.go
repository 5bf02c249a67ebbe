package patterns

import (
	"fmt"
	"regexp"
)

// Compile validates and compiles pairs into a Set, preserving their order.
// Expressions must be unique and valid in Go's RE2 syntax.
func Compile(pairs []Pair, opts ...Option) (*Set, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	seen := make(map[string]struct{}, len(pairs))
	set := &Set{patterns: make([]Pattern, 0, len(pairs))}
	for _, pair := range pairs {
		if _, dup := seen[pair.Expr]; dup {
			return nil, fmt.Errorf("%w: duplicate pattern %q", ErrConfiguration, pair.Expr)
		}
		seen[pair.Expr] = struct{}{}

		expr := pair.Expr
		if o.ignoreCase {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: pattern %q: %v", ErrConfiguration, pair.Expr, err)
		}

		set.patterns = append(set.patterns, Pattern{
			Expr:        pair.Expr,
			Replacement: pair.Replacement,
			re:          re,
		})
	}
	return set, nil
}
