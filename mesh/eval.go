package mesh

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// Eval resolves an arithmetic expression against a namespace and returns its
// numeric value. The expression may reference only names defined in ns.
func Eval(expression string, ns Namespace) (float64, error) {
	node, err := ParseExpr(expression)
	if err != nil {
		return 0, err
	}

	ec := &evalContext{ns: ns}

	return ec.evalScalar(node)
}

// Evaluate resolves every binding in declaration order and returns the
// resolved values keyed by binding name. A binding may reference any scalar
// binding declared before it; forward references are an error.
func (d *Document) Evaluate(ctx context.Context) (map[string]Value, error) {
	ec := &evalContext{
		ns:    d.namespace(),
		bound: make(map[string]Value, len(d.Bindings)),
	}

	resolved := make(map[string]Value, len(d.Bindings))

	for _, b := range d.Bindings {
		v, err := ec.evalNode(b.Value)
		if err != nil {
			return nil, WrapError(err).
				With(slog.String("binding", b.Name))
		}

		d.logger.TraceContext(
			ctx,
			"binding resolved",
			slog.String("name", b.Name),
			slog.String("kind", v.Kind.String()),
		)

		ec.bound[b.Name] = v
		resolved[b.Name] = v
	}

	return resolved, nil
}

// namespace builds the evaluation namespace for the document: the builtin
// math table extended with any caller-supplied constants.
func (d *Document) namespace() Namespace {
	ns := Builtin()

	for _, entry := range d.opts.consts {
		name, lit, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}

		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			continue
		}

		ns = ns.WithConstant(name, f)
	}

	return ns
}

// evalContext holds the state for recursive evaluation.
type evalContext struct {
	ns    Namespace
	bound map[string]Value // bindings resolved so far, declaration order
}

// evalNode resolves a parse-tree node to a Value. Lists recurse into nested
// tuples preserving order; everything else resolves to a scalar.
func (ec *evalContext) evalNode(n *Node) (Value, error) {
	if n.Kind == KindList {
		items := make([]Value, len(n.Args))

		for i, arg := range n.Args {
			v, err := ec.evalNode(arg)
			if err != nil {
				return Value{}, err
			}

			items[i] = v
		}

		return Tuple(items...), nil
	}

	f, err := ec.evalScalar(n)
	if err != nil {
		return Value{}, err
	}

	return Scalar(f), nil
}

// evalScalar resolves an expression node to a float64.
func (ec *evalContext) evalScalar(n *Node) (float64, error) {
	switch n.Kind {
	case KindNumber:
		return n.Num, nil

	case KindConstant:
		f, ok := ec.ns.Constant(n.Name)
		if !ok {
			return 0, ec.errorf(n, "unknown constant")
		}

		return f, nil

	case KindRef:
		return ec.resolveRef(n)

	case KindCall:
		return ec.call(n)

	case KindUnary:
		operand, err := ec.evalScalar(n.Args[0])
		if err != nil {
			return 0, err
		}

		return -operand, nil

	case KindBinary:
		return ec.binary(n)

	case KindList:
		return 0, ec.errorf(n, "list in scalar context")

	default:
		return 0, ec.errorf(n, "invalid node kind "+n.Kind.String())
	}
}

// resolveRef resolves a bare identifier: a previously declared scalar
// binding shadows a namespace constant of the same name.
func (ec *evalContext) resolveRef(n *Node) (float64, error) {
	if v, ok := ec.bound[n.Name]; ok {
		f, ok := v.Float()
		if !ok {
			return 0, ec.errorf(n, "binding "+strconv.Quote(n.Name)+" is not a scalar")
		}

		return f, nil
	}

	if f, ok := ec.ns.Constant(n.Name); ok {
		return f, nil
	}

	return 0, ec.errorf(n, "unknown identifier "+strconv.Quote(n.Name))
}

// call dispatches a function call against the namespace, checking arity.
func (ec *evalContext) call(n *Node) (float64, error) {
	args := make([]float64, len(n.Args))

	for i, arg := range n.Args {
		f, err := ec.evalScalar(arg)
		if err != nil {
			return 0, err
		}

		args[i] = f
	}

	if fn, ok := ec.ns.Unary(n.Name); ok {
		if len(args) != 1 {
			return 0, ec.arity(n, 1, len(args))
		}

		return fn(args[0]), nil
	}

	if fn, ok := ec.ns.Binary(n.Name); ok {
		if len(args) != 2 {
			return 0, ec.arity(n, 2, len(args))
		}

		return fn(args[0], args[1]), nil
	}

	return 0, ec.errorf(n, "unknown function "+strconv.Quote(n.Name))
}

// binary applies a binary arithmetic operator. Division and exponentiation
// follow IEEE 754 semantics (1/0 is +Inf, 0^0 is 1).
func (ec *evalContext) binary(n *Node) (float64, error) {
	left, err := ec.evalScalar(n.Args[0])
	if err != nil {
		return 0, err
	}

	right, err := ec.evalScalar(n.Args[1])
	if err != nil {
		return 0, err
	}

	switch n.Op {
	case '+':
		return left + right, nil
	case '-':
		return left - right, nil
	case '*':
		return left * right, nil
	case '/':
		return left / right, nil
	case '^':
		return math.Pow(left, right), nil
	default:
		return 0, ec.errorf(n, "invalid operator "+string(n.Op))
	}
}

// errorf builds an evaluation error carrying the offending expression text.
func (ec *evalContext) errorf(n *Node, reason string) *Error {
	return ErrEvaluate.WithPosition(n.Pos).
		With(slog.String("expression", n.String())).
		With(slog.String("reason", reason))
}

// arity builds a wrong-argument-count error for a function call.
func (ec *evalContext) arity(n *Node, want, got int) *Error {
	return ErrEvaluate.WithPosition(n.Pos).
		With(slog.String("expression", n.String())).
		With(slog.String("function", n.Name)).
		With(slog.Int("want_args", want)).
		With(slog.Int("got_args", got))
}
