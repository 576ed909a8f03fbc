package mesh

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
)

// Value is the resolved form of a binding: a numeric scalar or an ordered,
// arbitrarily nested tuple of Values. Values are immutable by convention;
// none of the methods mutate the receiver, and callers must not modify the
// Items slice.
type Value struct {
	Kind  ValueKind
	Num   float64 // ValueScalar
	Items []Value // ValueTuple
}

// ValueKind indicates the type of a resolved value.
type ValueKind int

const (
	// ValueScalar is a numeric scalar.
	ValueScalar ValueKind = iota

	// ValueTuple is an ordered tuple of values.
	ValueTuple
)

// String returns a string representation of the value kind.
func (k ValueKind) String() string {
	switch k {
	case ValueScalar:
		return "Scalar"
	case ValueTuple:
		return "Tuple"
	default:
		return "Unknown"
	}
}

// Scalar returns a scalar Value.
func Scalar(f float64) Value {
	return Value{Kind: ValueScalar, Num: f}
}

// Tuple returns a tuple Value of the given items.
// Tuple() with no arguments is the empty tuple.
func Tuple(items ...Value) Value {
	return Value{Kind: ValueTuple, Items: items}
}

// IsTuple reports whether the value is a tuple.
func (v Value) IsTuple() bool { return v.Kind == ValueTuple }

// Len returns the number of items in a tuple, or 0 for a scalar.
func (v Value) Len() int { return len(v.Items) }

// At returns the i-th item of a tuple.
// It panics when the receiver is a scalar or i is out of range, matching
// slice indexing semantics.
func (v Value) At(i int) Value { return v.Items[i] }

// Float returns the scalar value.
// Returns false when the receiver is a tuple.
func (v Value) Float() (float64, bool) {
	if v.Kind != ValueScalar {
		return 0, false
	}

	return v.Num, true
}

// Floats converts a tuple of scalars to a float64 slice.
func (v Value) Floats() ([]float64, error) {
	if v.Kind != ValueTuple {
		return nil, ErrEvaluate.
			With(slog.String("want", "tuple of scalars")).
			With(slog.String("got", v.Kind.String()))
	}

	out := make([]float64, len(v.Items))

	for i, item := range v.Items {
		f, ok := item.Float()
		if !ok {
			return nil, ErrEvaluate.
				With(slog.String("want", "scalar")).
				With(slog.Int("index", i))
		}

		out[i] = f
	}

	return out, nil
}

// Ints converts a tuple of integral scalars to an int slice.
// A scalar with a fractional part is an error.
func (v Value) Ints() ([]int, error) {
	fs, err := v.Floats()
	if err != nil {
		return nil, err
	}

	out := make([]int, len(fs))

	for i, f := range fs {
		n := int(f)
		if float64(n) != f {
			return nil, ErrEvaluate.
				With(slog.String("want", "integer")).
				With(slog.String("got", formatFloat(f)))
		}

		out[i] = n
	}

	return out, nil
}

// Equal reports whether two values are structurally identical.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}

	if v.Kind == ValueScalar {
		return v.Num == other.Num
	}

	if len(v.Items) != len(other.Items) {
		return false
	}

	for i := range v.Items {
		if !v.Items[i].Equal(other.Items[i]) {
			return false
		}
	}

	return true
}

// String renders the value in native mesh syntax: scalars as numeric
// literals, tuples as brace-delimited lists.
func (v Value) String() string {
	if v.Kind == ValueScalar {
		return formatFloat(v.Num)
	}

	if len(v.Items) == 0 {
		return "{}"
	}

	parts := make([]string, len(v.Items))
	for i, item := range v.Items {
		parts[i] = item.String()
	}

	return "{ " + strings.Join(parts, ", ") + " }"
}

// ToNative converts the value to its native Go representation: float64 for
// scalars, []any for tuples.
func (v Value) ToNative() any {
	if v.Kind == ValueScalar {
		return v.Num
	}

	out := make([]any, len(v.Items))
	for i, item := range v.Items {
		out[i] = item.ToNative()
	}

	return out
}

// MarshalJSON implements json.Marshaler: scalars encode as numbers, tuples
// as arrays.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.ToNative())
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
