package substitution

import (
	"testing"

	"github.com/eugenenazirov/regex-filter/internal/patterns"
)

func mustCompile(t testing.TB, pairs ...patterns.Pair) *patterns.Set {
	t.Helper()
	set, err := patterns.Compile(pairs)
	if err != nil {
		t.Fatalf("compile patterns: %v", err)
	}
	return set
}

const ipPattern = `(\d{1,3}\.){3}\d{1,3}`

func TestApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		pairs []patterns.Pair
		want  string
		count int
	}{
		{
			name:  "MaskIPAddress",
			text:  "Server IP: 192.168.1.1 connected.",
			pairs: []patterns.Pair{{Expr: ipPattern, Replacement: "x.x.x.x"}},
			want:  "Server IP: x.x.x.x connected.",
			count: 1,
		},
		{
			name:  "ReplacesAllMatches",
			text:  "10.0.0.1 -> 10.0.0.2",
			pairs: []patterns.Pair{{Expr: ipPattern, Replacement: "x.x.x.x"}},
			want:  "x.x.x.x -> x.x.x.x",
			count: 2,
		},
		{
			name:  "Backreference",
			text:  "user=alice user=bob",
			pairs: []patterns.Pair{{Expr: `user=(\w+)`, Replacement: "user=<${1}-hidden>"}},
			want:  "user=<alice-hidden> user=<bob-hidden>",
			count: 2,
		},
		{
			name:  "NoMatch",
			text:  "nothing to see",
			pairs: []patterns.Pair{{Expr: ipPattern, Replacement: "x.x.x.x"}},
			want:  "nothing to see",
			count: 0,
		},
		{
			name: "ChainedReplacement",
			text: "token abc",
			pairs: []patterns.Pair{
				{Expr: "abc", Replacement: "SECRET"},
				{Expr: "SECRET", Replacement: "***"},
			},
			want:  "token ***",
			count: 2,
		},
		{
			name:  "CaseSensitiveByDefault",
			text:  "Password password",
			pairs: []patterns.Pair{{Expr: "password", Replacement: "***"}},
			want:  "Password ***",
			count: 1,
		},
		{
			name:  "EmptySet",
			text:  "unchanged",
			want:  "unchanged",
			count: 0,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			set := mustCompile(t, tc.pairs...)

			got, count := ApplyCount(tc.text, set)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
			if count != tc.count {
				t.Fatalf("expected %d substitutions, got %d", tc.count, count)
			}
			if plain := Apply(tc.text, set); plain != got {
				t.Fatalf("Apply and ApplyCount disagree: %q vs %q", plain, got)
			}
		})
	}
}

func TestApplyIsIdempotentWhenReplacementDoesNotMatch(t *testing.T) {
	t.Parallel()

	set := mustCompile(t, patterns.Pair{Expr: ipPattern, Replacement: "x.x.x.x"})
	text := "a 1.2.3.4 b 255.255.255.0 c"

	once := Apply(text, set)
	twice := Apply(once, set)
	if once != twice {
		t.Fatalf("expected idempotent result, once=%q twice=%q", once, twice)
	}
}

func TestApplyHonoursDeclaredOrder(t *testing.T) {
	t.Parallel()

	first := patterns.Pair{Expr: "cat", Replacement: "dog"}
	second := patterns.Pair{Expr: "dog", Replacement: "bird"}
	text := "cat and dog"

	forward := Apply(text, mustCompile(t, first, second))
	reverse := Apply(text, mustCompile(t, second, first))

	if forward != "bird and bird" {
		t.Fatalf("unexpected forward result %q", forward)
	}
	if reverse != "dog and bird" {
		t.Fatalf("unexpected reverse result %q", reverse)
	}
}

func BenchmarkApplyCount(b *testing.B) {
	set := mustCompile(b,
		patterns.Pair{Expr: ipPattern, Replacement: "x.x.x.x"},
		patterns.Pair{Expr: `[\w.]+@[\w.]+`, Replacement: "<email>"},
	)
	text := "conn from 10.1.2.3 by ops@example.com; retry 10.1.2.4\n"
	for i := 0; i < b.N; i++ {
		ApplyCount(text, set)
	}
}
