package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/meshdef/log"
	"github.com/ardnew/meshdef/mesh"
)

// Check parses a mesh description and reports whether it is well-formed.
// With --complete, the description is also evaluated and its required
// sections verified.
type Check struct {
	Complete bool `help:"Also evaluate bindings and verify required sections" negatable:""`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin" name:"source"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	file, err := openSource(c.Source)
	if err != nil {
		return ErrOpenSource.Wrap(err).
			With(slog.String("source", c.Source))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return ErrOpenSource.Wrap(err).
			With(slog.String("source", c.Source))
	}

	doc, err := mesh.ParseString(
		ctx, string(data), mesh.WithLogger(log.Default()),
	)
	if err != nil {
		printSnippet(stderr(ctx), err, string(data))

		return mesh.WrapError(err).
			With(slog.String("command", "check"))
	}

	if c.Complete {
		_, err = doc.Mesh(ctx)
		if err != nil {
			return mesh.WrapError(err).
				With(slog.String("command", "check"))
		}
	}

	count := 0
	for range doc.All() {
		count++
	}

	fmt.Fprintf(stdout(ctx), "%s: ok (%d bindings)\n", c.Source, count)

	return nil
}
