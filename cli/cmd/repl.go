package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/meshdef/cli/cmd/repl"
	"github.com/ardnew/meshdef/log"
	"github.com/ardnew/meshdef/mesh"
)

// Repl starts an interactive expression evaluator. When a source file is
// given, its scalar bindings become named values in the session.
type Repl struct {
	Cache string `default:"${cache}" help:"Directory for persistent history" type:"path"`

	Source string `arg:"" help:"Mesh description providing named values" name:"source" optional:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	ns := mesh.Builtin()

	if r.Source != "" {
		file, err := openSource(r.Source)
		if err != nil {
			return ErrOpenSource.Wrap(err).
				With(slog.String("source", r.Source))
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return ErrOpenSource.Wrap(err).
				With(slog.String("source", r.Source))
		}

		doc, err := mesh.ParseString(
			ctx, string(data), mesh.WithLogger(log.Default()),
		)
		if err != nil {
			printSnippet(stderr(ctx), err, string(data))

			return mesh.WrapError(err).
				With(slog.String("command", "repl"))
		}

		resolved, err := doc.Evaluate(ctx)
		if err != nil {
			return mesh.WrapError(err).
				With(slog.String("command", "repl"))
		}

		// Tuples have no scalar value to bind; only scalars carry over.
		for name, value := range resolved {
			if f, ok := value.Float(); ok {
				ns = ns.WithConstant(name, f)
			}
		}
	}

	return repl.Run(ctx, ns, r.Cache, log.Default())
}
