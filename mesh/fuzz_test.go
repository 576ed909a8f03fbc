package mesh

import (
	"context"
	"strings"
	"testing"
)

// FuzzParseString checks that arbitrary input never panics the parser and
// that anything which parses successfully also formats and reparses cleanly.
func FuzzParseString(f *testing.F) {
	seeds := []string{
		unitSquare,
		"a = 1",
		"a = { 1, 2, { 3 } }",
		"a = 2^3^2 + cos(pi/4)",
		"a = -1.5e-3 * atan2(1, 2)",
		"curves = {}",
		"# comment\na = 1 ; b = 2",
		"a = (((((1)))))",
		"a = { , }",
		"a = 1e",
		"= 1",
		"{",
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		doc, err := ParseString(context.Background(), input, WithMaxDepth(32))
		if err != nil {
			return
		}

		var buf strings.Builder
		if err := doc.Format(context.Background(), &buf, 2); err != nil {
			t.Fatalf("Format failed on parseable input %q: %v", input, err)
		}

		if _, err := ParseString(
			context.Background(), buf.String(), WithMaxDepth(64),
		); err != nil {
			t.Fatalf("reparse of formatted output failed: %v\ninput: %q\nformatted: %q",
				err, input, buf.String())
		}
	})
}

// FuzzEval checks that expression evaluation never panics.
func FuzzEval(f *testing.F) {
	seeds := []string{
		"1 + 2*3",
		"2^3^2",
		"cos(pi)",
		"atan2(1, 2)",
		"-inf",
		"1/0",
		"sqrt(-1)",
		"bogus(1, 2, 3)",
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(_ *testing.T, input string) {
		_, _ = Eval(input, Builtin())
	})
}
