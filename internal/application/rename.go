package application

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/eugenenazirov/regex-filter/internal/patterns"
	"github.com/eugenenazirov/regex-filter/internal/storage"
	"github.com/eugenenazirov/regex-filter/internal/substitution"
)

const prefixAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomPrefix() string {
	var b strings.Builder
	for i := 0; i < 5; i++ {
		b.WriteByte(prefixAlphabet[rand.IntN(len(prefixAlphabet))])
	}
	b.WriteByte('_')
	return b.String()
}

// outputName filters name through set. A name the filter leaves unchanged is
// kept; a renamed file that lands on a reserved or already written name gets
// a random prefix instead.
func outputName(name string, set *patterns.Set, used map[string]struct{}, prefix func() string) (string, error) {
	renamed := substitution.Apply(name, set)
	if renamed == "" || renamed == "." || renamed == ".." || strings.ContainsAny(renamed, `/\`) {
		return "", fmt.Errorf("%w: file %s renames to invalid name %q", storage.ErrIO, name, renamed)
	}
	if renamed == name {
		return name, nil
	}
	for {
		if _, taken := used[renamed]; !taken {
			return renamed, nil
		}
		renamed = prefix() + renamed
	}
}
