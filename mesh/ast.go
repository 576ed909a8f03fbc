package mesh

import (
	"iter"
	"strconv"

	"github.com/ardnew/meshdef/log"
)

// Section names with assigned meaning in a mesh document.
const (
	SectionVertices   = "vertices"
	SectionElements   = "elements"
	SectionBoundaries = "boundaries"
	SectionCurves     = "curves"
)

// Position locates a token within the source text.
type Position struct {
	Offset int // byte offset, starting at 0
	Line   int // line number, starting at 1
	Column int // column number in runes, starting at 1
}

// String returns the position in "line:column" form.
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Document is the parse tree of a mesh description: an ordered sequence of
// named bindings. Binding order is significant for identifier resolution.
type Document struct {
	Bindings []*Binding
	opts     optionsKey // configuration options
	logger   log.Logger // structured logger (excluded from cache key)
}

// Binding represents a top-level assignment: identifier '=' value [';'].
type Binding struct {
	Name  string
	Value *Node
	Pos   Position
}

// Node is a tagged parse-tree node for binding values. Exactly the fields
// relevant to Kind are set.
type Node struct {
	Kind Kind
	Pos  Position

	Num  float64 // KindNumber: parsed literal value
	Lit  string  // KindNumber: literal source text
	Name string  // KindConstant, KindRef, KindCall
	Op   byte    // KindUnary ('-'), KindBinary ('+' '-' '*' '/' '^')

	// Children: one operand for KindUnary, two for KindBinary, the argument
	// list for KindCall, the items for KindList.
	Args []*Node
}

// Kind indicates the type of a parse-tree node.
type Kind int

const (
	// KindNumber is a numeric literal.
	KindNumber Kind = iota

	// KindConstant is a named constant from the math namespace.
	KindConstant

	// KindRef is an identifier referencing an earlier binding.
	KindRef

	// KindCall is a function call with one or more arguments.
	KindCall

	// KindUnary is a unary negation.
	KindUnary

	// KindBinary is a binary arithmetic operation.
	KindBinary

	// KindList is a brace-delimited list of items.
	KindList
)

// String returns a string representation of the node kind.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "Number"
	case KindConstant:
		return "Constant"
	case KindRef:
		return "Ref"
	case KindCall:
		return "Call"
	case KindUnary:
		return "Unary"
	case KindBinary:
		return "Binary"
	case KindList:
		return "List"
	default:
		return "Unknown"
	}
}

// Get retrieves a binding by name. Returns (nil, false) if absent.
func (d *Document) Get(name string) (*Binding, bool) {
	for _, b := range d.Bindings {
		if b.Name == name {
			return b, true
		}
	}

	return nil, false
}

// All returns an iterator over the document's bindings in declaration order.
func (d *Document) All() iter.Seq[*Binding] {
	return func(yield func(*Binding) bool) {
		for _, b := range d.Bindings {
			if !yield(b) {
				return
			}
		}
	}
}

// DefaultMaxDepth is the default maximum nesting depth for lists and
// parenthesized expressions. Users may modify this before parsing to change
// the default.
var DefaultMaxDepth = 100

// optionsKey holds Document configuration options.
// This type is gob-encodable for cache key hashing.
type optionsKey struct {
	maxDepth int
	consts   []string // extra constants as "name=value", sorted
}

// Option configures parsing or evaluation behavior.
type Option func(*Document)

// WithMaxDepth sets the maximum nesting depth for lists and parenthesized
// sub-expressions.
func WithMaxDepth(depth int) Option {
	return func(d *Document) {
		d.opts.maxDepth = depth
	}
}

// WithConstant adds a named constant to the evaluation namespace for this
// document. Builtin names of the same spelling are shadowed.
func WithConstant(name string, value float64) Option {
	return func(d *Document) {
		entry := name + "=" + strconv.FormatFloat(value, 'g', -1, 64)
		d.opts.consts = insertSorted(d.opts.consts, entry)
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(d *Document) {
		d.logger = logger
	}
}

// applyDefaults sets default option values on a Document.
func applyDefaults(d *Document) {
	d.opts.maxDepth = DefaultMaxDepth
}

// applyOptions applies functional options to a Document.
func applyOptions(d *Document, opts ...Option) {
	for _, opt := range opts {
		opt(d)
	}
}

// insertSorted inserts s into a sorted slice, preserving order.
func insertSorted(list []string, s string) []string {
	i := 0
	for i < len(list) && list[i] < s {
		i++
	}

	list = append(list, "")
	copy(list[i+1:], list[i:])
	list[i] = s

	return list
}
