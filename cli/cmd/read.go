package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/meshdef/log"
	"github.com/ardnew/meshdef/mesh"
)

// Read parses and evaluates a mesh description, printing the resolved
// sections in the chosen output format.
type Read struct {
	Output   string             `default:"native" enum:"native,json,yaml" help:"Output format"                          short:"o"`
	Indent   int                `default:"2"                              help:"Indent width for structured output"     short:"i"`
	Define   map[string]float64 `                                         help:"Define additional named constants"      short:"D"`
	MaxDepth int                `default:"100"                            help:"Maximum expression and list nesting"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin" name:"source"`
}

// Run executes the read command.
func (r *Read) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	file, err := openSource(r.Source)
	if err != nil {
		return ErrOpenSource.Wrap(err).
			With(slog.String("source", r.Source))
	}
	defer file.Close()

	m, err := mesh.ReadReader(ctx, file, r.options()...)
	if err != nil {
		return mesh.WrapError(err).
			With(slog.String("command", "read"))
	}

	switch r.Output {
	case "json":
		return m.FormatJSON(ctx, stdout(ctx), r.Indent)

	case "yaml":
		return m.FormatYAML(ctx, stdout(ctx), r.Indent)

	case "native":
		return m.Format(ctx, stdout(ctx))

	default:
		return ErrInvalidFormat.
			With(slog.String("format", r.Output))
	}
}

// options converts the command flags to mesh parse options.
func (r *Read) options() []mesh.Option {
	opts := []mesh.Option{
		mesh.WithMaxDepth(r.MaxDepth),
		mesh.WithLogger(log.Default()),
	}

	for name, value := range r.Define {
		opts = append(opts, mesh.WithConstant(name, value))
	}

	return opts
}
