package mesh

import (
	"context"
	"log/slog"
	"unicode"
	"unicode/utf8"

	"github.com/ardnew/meshdef/log"
)

// ParseString parses a mesh description and returns its Document.
// Options can be provided to customize parsing behavior.
// The result is cached for efficient repeated parsing of the same content
// when default options are used.
func ParseString(
	ctx context.Context,
	input string,
	opts ...Option,
) (*Document, error) {
	if len(opts) == 0 {
		return parseStringCached(ctx, input)
	}

	return parse(ctx, input, opts...)
}

// parse is the internal parsing implementation.
func parse(ctx context.Context, input string, opts ...Option) (*Document, error) {
	doc := new(Document)

	applyDefaults(doc)
	applyOptions(doc, opts...)

	doc.logger.TraceContext(
		ctx,
		"parse start",
		slog.Int("source_length", len(input)),
	)

	p := &parser{
		input:    []byte(input),
		pos:      0,
		line:     1,
		col:      1,
		maxDepth: doc.opts.maxDepth,
		logger:   doc.logger,
	}

	bindings, err := p.parseDocument(ctx)
	if err != nil {
		return nil, err
	}

	doc.Bindings = bindings

	doc.logger.TraceContext(
		ctx,
		"parse complete",
		slog.Int("binding_count", len(doc.Bindings)),
	)

	return doc, nil
}

// parser holds the parser state.
type parser struct {
	input    []byte
	pos      int
	line     int
	col      int
	depth    int // current list/paren nesting depth
	maxDepth int
	logger   log.Logger
}

// parseDocument parses the entire input as a sequence of bindings.
func (p *parser) parseDocument(ctx context.Context) ([]*Binding, error) {
	bindings := make([]*Binding, 0)

	for {
		p.skipWhitespaceAndComments()

		if p.eof() {
			break
		}

		b, err := p.parseBinding(ctx)
		if err != nil {
			return nil, err
		}

		bindings = append(bindings, b)

		// Optional terminator after a binding
		p.skipWhitespaceAndComments()

		if p.peek() == ';' {
			p.advance()
		}
	}

	if len(bindings) == 0 {
		return nil, ErrSyntax.WithPosition(p.position()).
			With(slog.String("expected", "binding"))
	}

	return bindings, nil
}

// parseBinding parses: identifier '=' item [';'].
func (p *parser) parseBinding(ctx context.Context) (*Binding, error) {
	pos := p.position()

	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	p.skipWhitespaceAndComments()

	if !p.expect('=') {
		return nil, ErrSyntax.WithPosition(p.position()).
			With(slog.String("expected", "=")).
			With(slog.String("binding", name))
	}

	p.skipWhitespaceAndComments()

	value, err := p.parseItem()
	if err != nil {
		return nil, err
	}

	p.logger.TraceContext(
		ctx,
		"parsed binding",
		slog.String("name", name),
		slog.String("kind", value.Kind.String()),
	)

	return &Binding{
		Name:  name,
		Value: value,
		Pos:   pos,
	}, nil
}

// parseItem parses a binding or list item: a nested list or an expression.
func (p *parser) parseItem() (*Node, error) {
	p.skipWhitespaceAndComments()

	if p.peek() == '{' {
		return p.parseList()
	}

	return p.parseExpr()
}

// parseList parses: '{' item (',' item)* '}'.
func (p *parser) parseList() (*Node, error) {
	pos := p.position()

	if !p.expect('{') {
		return nil, ErrSyntax.WithPosition(pos).
			With(slog.String("expected", "{"))
	}

	if err := p.push(pos); err != nil {
		return nil, err
	}
	defer p.pop()

	items := make([]*Node, 0)

	p.skipWhitespaceAndComments()

	if p.peek() == '}' {
		p.advance()

		return &Node{Kind: KindList, Pos: pos, Args: items}, nil
	}

	for {
		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}

		items = append(items, item)

		p.skipWhitespaceAndComments()

		switch p.peek() {
		case ',':
			p.advance()

		case '}':
			p.advance()

			return &Node{Kind: KindList, Pos: pos, Args: items}, nil

		default:
			if p.eof() {
				return nil, ErrSyntax.WithPosition(p.position()).
					With(slog.String("expected", "}")).
					With(slog.String("detail", "unterminated list"))
			}

			return nil, ErrSyntax.WithPosition(p.position()).
				With(slog.String("expected", ", or }"))
		}
	}
}

// parseIdentifier parses an identifier token: [A-Za-z_][A-Za-z0-9_]*.
func (p *parser) parseIdentifier() (string, error) {
	start := p.pos

	if !isIdentifierStart(p.peek()) {
		return "", ErrSyntax.WithPosition(p.position()).
			With(slog.String("expected", "identifier"))
	}

	p.advance()

	for !p.eof() && isIdentifierContinue(p.peek()) {
		p.advance()
	}

	return string(p.input[start:p.pos]), nil
}

// push enters a nesting level, enforcing the configured maximum depth.
func (p *parser) push(pos Position) error {
	p.depth++
	if p.depth > p.maxDepth {
		return ErrMaxDepthExceeded.WithPosition(pos).
			With(slog.Int("max_depth", p.maxDepth))
	}

	return nil
}

// pop leaves a nesting level.
func (p *parser) pop() { p.depth-- }

// Helper methods

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(p.input[p.pos:])

	return r
}

func (p *parser) advance() {
	if p.eof() {
		return
	}

	r, size := utf8.DecodeRune(p.input[p.pos:])

	p.pos += size
	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
}

func (p *parser) expect(ch rune) bool {
	if p.peek() == ch {
		p.advance()

		return true
	}

	return false
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) position() Position {
	return Position{
		Offset: p.pos,
		Line:   p.line,
		Column: p.col,
	}
}

// skipWhitespaceAndComments consumes whitespace and '#' line comments.
// Comments are ignored everywhere in the grammar, including inside lists.
func (p *parser) skipWhitespaceAndComments() {
	for {
		for !p.eof() && unicode.IsSpace(p.peek()) {
			p.advance()
		}

		if p.peek() == '#' {
			p.skipLineComment()

			continue
		}

		return
	}
}

func (p *parser) skipLineComment() {
	for !p.eof() && p.peek() != '\n' {
		p.advance()
	}

	if !p.eof() {
		p.advance() // skip '\n'
	}
}

// Character classification

func isIdentifierStart(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z')
}

func isIdentifierContinue(r rune) bool {
	return isIdentifierStart(r) || (r >= '0' && r <= '9')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
