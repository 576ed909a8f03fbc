package mesh

import (
	"log/slog"
	"strconv"
	"strings"
)

// ParseExpr parses a single arithmetic expression from a string.
// The expression must consume the entire input.
func ParseExpr(input string, opts ...Option) (*Node, error) {
	var temp Document

	applyDefaults(&temp)
	applyOptions(&temp, opts...)

	p := &parser{
		input:    []byte(input),
		pos:      0,
		line:     1,
		col:      1,
		maxDepth: temp.opts.maxDepth,
		logger:   temp.logger,
	}

	p.skipWhitespaceAndComments()

	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	p.skipWhitespaceAndComments()

	if !p.eof() {
		return nil, ErrSyntax.WithPosition(p.position()).
			With(slog.String("expected", "end of expression"))
	}

	return n, nil
}

// parseExpr parses: term (('+' | '-') term)*.
// Addition and subtraction associate left to right.
func (p *parser) parseExpr() (*Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for {
		p.skipWhitespaceAndComments()

		op := p.peek()
		if op != '+' && op != '-' {
			return left, nil
		}

		pos := p.position()
		p.advance()
		p.skipWhitespaceAndComments()

		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}

		left = &Node{
			Kind: KindBinary,
			Pos:  pos,
			Op:   byte(op),
			Args: []*Node{left, right},
		}
	}
}

// parseTerm parses: factor (('*' | '/') factor)*.
func (p *parser) parseTerm() (*Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for {
		p.skipWhitespaceAndComments()

		op := p.peek()
		if op != '*' && op != '/' {
			return left, nil
		}

		pos := p.position()
		p.advance()
		p.skipWhitespaceAndComments()

		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}

		left = &Node{
			Kind: KindBinary,
			Pos:  pos,
			Op:   byte(op),
			Args: []*Node{left, right},
		}
	}
}

// parseFactor parses: atom ('^' factor)?.
// Defining the right operand as a factor instead of an atom makes
// exponentiation right-associative: 2^3^2 is 2^(3^2), not (2^3)^2.
func (p *parser) parseFactor() (*Node, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	p.skipWhitespaceAndComments()

	if p.peek() != '^' {
		return base, nil
	}

	pos := p.position()
	p.advance()
	p.skipWhitespaceAndComments()

	if err := p.push(pos); err != nil {
		return nil, err
	}
	defer p.pop()

	exp, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	return &Node{
		Kind: KindBinary,
		Pos:  pos,
		Op:   '^',
		Args: []*Node{base, exp},
	}, nil
}

// parseAtom parses the highest-precedence unit: an optional unary minus
// followed by a number, the constant pi, a function call, a bare identifier,
// or a parenthesized sub-expression.
func (p *parser) parseAtom() (*Node, error) {
	p.skipWhitespaceAndComments()

	pos := p.position()

	switch ch := p.peek(); {
	case ch == '-' || ch == '+':
		p.advance()
		p.skipWhitespaceAndComments()

		if err := p.push(pos); err != nil {
			return nil, err
		}
		defer p.pop()

		operand, err := p.parseAtom()
		if err != nil {
			return nil, err
		}

		if ch == '+' {
			// Unary plus is the identity
			return operand, nil
		}

		return &Node{
			Kind: KindUnary,
			Pos:  pos,
			Op:   '-',
			Args: []*Node{operand},
		}, nil

	case ch == '(':
		p.advance()

		if err := p.push(pos); err != nil {
			return nil, err
		}
		defer p.pop()

		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		p.skipWhitespaceAndComments()

		if !p.expect(')') {
			return nil, ErrSyntax.WithPosition(p.position()).
				With(slog.String("expected", ")"))
		}

		return inner, nil

	case isDigit(ch) || ch == '.':
		return p.parseNumber()

	case isIdentifierStart(ch):
		return p.parseNameOrCall(pos)

	default:
		return nil, ErrSyntax.WithPosition(pos).
			With(slog.String("expected", "expression"))
	}
}

// parseNameOrCall parses an identifier and, when immediately followed by an
// opening parenthesis, its call arguments.
func (p *parser) parseNameOrCall(pos Position) (*Node, error) {
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	// The constant pi is the one case-insensitive name in the grammar.
	if strings.EqualFold(name, "pi") {
		return &Node{Kind: KindConstant, Pos: pos, Name: "pi"}, nil
	}

	p.skipWhitespaceAndComments()

	if p.peek() != '(' {
		return &Node{Kind: KindRef, Pos: pos, Name: name}, nil
	}

	p.advance()

	if err := p.push(pos); err != nil {
		return nil, err
	}
	defer p.pop()

	args := make([]*Node, 0, 1)

	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		p.skipWhitespaceAndComments()

		switch p.peek() {
		case ',':
			p.advance()

		case ')':
			p.advance()

			return &Node{Kind: KindCall, Pos: pos, Name: name, Args: args}, nil

		default:
			return nil, ErrSyntax.WithPosition(p.position()).
				With(slog.String("expected", ", or )")).
				With(slog.String("call", name))
		}
	}
}

// parseNumber scans a numeric literal: digits, optional fractional part,
// optional exponent.
func (p *parser) parseNumber() (*Node, error) {
	pos := p.position()
	start := p.pos

	for !p.eof() && isDigit(p.peek()) {
		p.advance()
	}

	if p.peek() == '.' {
		p.advance()

		for !p.eof() && isDigit(p.peek()) {
			p.advance()
		}
	}

	if ch := p.peek(); ch == 'e' || ch == 'E' {
		p.advance()

		if ch := p.peek(); ch == '+' || ch == '-' {
			p.advance()
		}

		if !isDigit(p.peek()) {
			return nil, ErrInvalidNumber.WithPosition(p.position()).
				With(slog.String("literal", string(p.input[start:p.pos])))
		}

		for !p.eof() && isDigit(p.peek()) {
			p.advance()
		}
	}

	lit := string(p.input[start:p.pos])

	num, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, ErrInvalidNumber.WithPosition(pos).Wrap(err).
			With(slog.String("literal", lit))
	}

	return &Node{Kind: KindNumber, Pos: pos, Num: num, Lit: lit}, nil
}
