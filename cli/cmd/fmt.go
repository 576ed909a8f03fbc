package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/meshdef/log"
	"github.com/ardnew/meshdef/mesh"
)

// Fmt parses a mesh description and reformats it in the chosen format.
// The description is not evaluated: expressions are preserved as written.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as native mesh syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	AST    AST    `cmd:""                    help:"Format as abstract syntax tree."`
}

// parseSource opens and parses the named source file.
func parseSource(ctx context.Context, source string) (*mesh.Document, error) {
	file, err := openSource(source)
	if err != nil {
		return nil, ErrOpenSource.Wrap(err).
			With(slog.String("source", source))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, ErrOpenSource.Wrap(err).
			With(slog.String("source", source))
	}

	doc, err := mesh.ParseString(
		ctx, string(data), mesh.WithLogger(log.Default()),
	)
	if err != nil {
		printSnippet(stderr(ctx), err, string(data))

		return nil, err
	}

	return doc, nil
}

// Native formats input as native mesh syntax.
type Native struct {
	Indent int `default:"2" help:"Indent width for formatted output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the fmt native command.
func (f *Native) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	doc, err := parseSource(ctx, f.Source)
	if err != nil {
		return mesh.WrapError(err).
			With(slog.String("format", "native"))
	}

	return doc.Format(ctx, stdout(ctx), f.Indent)
}

// JSON formats input as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the fmt json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	doc, err := parseSource(ctx, j.Source)
	if err != nil {
		return mesh.WrapError(err).
			With(slog.String("format", "json"))
	}

	return doc.FormatJSON(ctx, stdout(ctx), j.Indent)
}

// YAML formats input as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the fmt yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	doc, err := parseSource(ctx, y.Source)
	if err != nil {
		return mesh.WrapError(err).
			With(slog.String("format", "yaml"))
	}

	return doc.FormatYAML(ctx, stdout(ctx), y.Indent)
}

// AST formats input as an abstract syntax tree representation.
type AST struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the fmt ast command.
func (a *AST) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	doc, err := parseSource(ctx, a.Source)
	if err != nil {
		return mesh.WrapError(err).
			With(slog.String("format", "ast"))
	}

	return doc.Print(stdout(ctx))
}
