package mesh

// This file defines the fixed math namespace available to mesh expressions.
// The namespace is lazily initialized once per process and shared read-only;
// derived namespaces clone the constant table before mutating it.

import (
	"maps"
	"math"
	"slices"
	"sync"
)

// Namespace is an immutable lookup table of named constants and functions
// used to resolve expression identifiers. The zero value is empty; use
// [Builtin] for the standard math namespace.
type Namespace struct {
	consts map[string]float64
	unary  map[string]func(float64) float64
	binary map[string]func(float64, float64) float64
}

// Private singleton for the builtin tables.
//
//nolint:gochecknoglobals
var (
	builtinOnce sync.Once
	builtin     Namespace
)

// Builtin returns the standard math namespace shared by all evaluations.
// Callers must not mutate it; derive from it with [Namespace.WithConstant].
func Builtin() Namespace {
	builtinOnce.Do(func() {
		builtin = Namespace{
			consts: map[string]float64{
				"pi":  math.Pi,
				"e":   math.E,
				"tau": 2 * math.Pi,
				"inf": math.Inf(1),
			},
			unary: map[string]func(float64) float64{
				"sin":   math.Sin,
				"cos":   math.Cos,
				"tan":   math.Tan,
				"asin":  math.Asin,
				"acos":  math.Acos,
				"atan":  math.Atan,
				"sinh":  math.Sinh,
				"cosh":  math.Cosh,
				"tanh":  math.Tanh,
				"asinh": math.Asinh,
				"acosh": math.Acosh,
				"atanh": math.Atanh,
				"exp":   math.Exp,
				"log":   math.Log,
				"log2":  math.Log2,
				"log10": math.Log10,
				"sqrt":  math.Sqrt,
				"cbrt":  math.Cbrt,
				"abs":   math.Abs,
				"floor": math.Floor,
				"ceil":  math.Ceil,
				"round": math.Round,
				"trunc": math.Trunc,
				"gamma": math.Gamma,
				"erf":   math.Erf,
				"degrees": func(x float64) float64 {
					return x * 180 / math.Pi
				},
				"radians": func(x float64) float64 {
					return x * math.Pi / 180
				},
			},
			binary: map[string]func(float64, float64) float64{
				"atan2":    math.Atan2,
				"pow":      math.Pow,
				"fmod":     math.Mod,
				"hypot":    math.Hypot,
				"min":      math.Min,
				"max":      math.Max,
				"copysign": math.Copysign,
			},
		}
	})

	return builtin
}

// WithConstant returns a namespace extending the receiver with one constant.
// The receiver is not modified; its function tables are shared.
func (ns Namespace) WithConstant(name string, value float64) Namespace {
	consts := maps.Clone(ns.consts)
	if consts == nil {
		consts = make(map[string]float64, 1)
	}

	consts[name] = value

	return Namespace{
		consts: consts,
		unary:  ns.unary,
		binary: ns.binary,
	}
}

// Constant looks up a named constant.
func (ns Namespace) Constant(name string) (float64, bool) {
	f, ok := ns.consts[name]

	return f, ok
}

// Unary looks up a single-argument function.
func (ns Namespace) Unary(name string) (func(float64) float64, bool) {
	fn, ok := ns.unary[name]

	return fn, ok
}

// Binary looks up a two-argument function.
func (ns Namespace) Binary(name string) (func(float64, float64) float64, bool) {
	fn, ok := ns.binary[name]

	return fn, ok
}

// Names returns all names defined in the namespace, sorted.
// This is useful for diagnostics and interactive completion.
func (ns Namespace) Names() []string {
	names := make([]string, 0, len(ns.consts)+len(ns.unary)+len(ns.binary))

	for name := range ns.consts {
		names = append(names, name)
	}

	for name := range ns.unary {
		names = append(names, name)
	}

	for name := range ns.binary {
		names = append(names, name)
	}

	slices.Sort(names)

	return slices.Compact(names)
}
