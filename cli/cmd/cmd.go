package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/meshdef/mesh"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

// stdout returns the output writer configured on the kong.Context carried
// by ctx, falling back to os.Stdout when none is present.
func stdout(ctx context.Context) io.Writer {
	if ktx, ok := ctx.Value(contextKey{}).(*kong.Context); ok && ktx != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stderr returns the error writer configured on the kong.Context carried
// by ctx, falling back to os.Stderr when none is present.
func stderr(ctx context.Context) io.Writer {
	if ktx, ok := ctx.Value(contextKey{}).(*kong.Context); ok && ktx != nil {
		return ktx.Stderr
	}

	return os.Stderr
}

// printSnippet writes the caret-marked source line for err to w when err
// carries a position within source.
func printSnippet(w io.Writer, err error, source string) {
	var merr *mesh.Error
	if !errors.As(err, &merr) {
		return
	}

	if snip := merr.Snippet(source); snip != "" {
		fmt.Fprint(w, snip)
	}
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// openSource opens the named source file, or returns stdin for "-".
// The returned closer is a no-op for stdin.
func openSource(path string) (io.ReadCloser, error) {
	if path == stdinSource {
		return io.NopCloser(os.Stdin), nil
	}

	return os.Open(path)
}
