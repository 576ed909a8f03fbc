package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/meshdef/mesh"
)

// Eval evaluates a single arithmetic expression and prints the result.
type Eval struct {
	Define []string `help:"Define a named constant as name=value" short:"D"`

	Expr []string `arg:"" help:"Expression to evaluate" name:"expr"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) error {
	// Allow the expression to be split across multiple shell words.
	expr := strings.TrimSpace(strings.Join(e.Expr, " "))
	if expr == "" {
		return ErrEmptyExpression
	}

	ns := mesh.Builtin()

	for _, def := range e.Define {
		name, value, ok := strings.Cut(def, "=")
		if !ok {
			return ErrInvalidConstant.
				With(slog.String("definition", def))
		}

		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return ErrInvalidConstant.Wrap(err).
				With(slog.String("definition", def))
		}

		ns = ns.WithConstant(strings.TrimSpace(name), f)
	}

	result, err := mesh.Eval(expr, ns)
	if err != nil {
		return mesh.WrapError(err).
			With(
				slog.String("command", "eval"),
				slog.String("expression", expr),
			)
	}

	fmt.Fprintln(stdout(ctx), strconv.FormatFloat(result, 'g', -1, 64))

	return nil
}
