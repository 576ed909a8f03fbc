package mesh

import (
	"math"
	"slices"
	"testing"
)

func TestBuiltin_Constants(t *testing.T) {
	ns := Builtin()

	tests := []struct {
		name string
		want float64
	}{
		{"pi", math.Pi},
		{"e", math.E},
		{"tau", 2 * math.Pi},
	}

	for _, tt := range tests {
		f, ok := ns.Constant(tt.name)
		if !ok || f != tt.want {
			t.Errorf("Constant(%q) = %v, %v, want %v", tt.name, f, ok, tt.want)
		}
	}

	if f, ok := ns.Constant("inf"); !ok || !math.IsInf(f, 1) {
		t.Errorf("Constant(inf) = %v, %v", f, ok)
	}

	if _, ok := ns.Constant("bogus"); ok {
		t.Error("Constant(bogus) reported ok")
	}
}

func TestBuiltin_Functions(t *testing.T) {
	ns := Builtin()

	for _, name := range []string{"sin", "sqrt", "degrees", "radians", "erf"} {
		if _, ok := ns.Unary(name); !ok {
			t.Errorf("Unary(%q) missing", name)
		}
	}

	for _, name := range []string{"atan2", "pow", "hypot", "copysign"} {
		if _, ok := ns.Binary(name); !ok {
			t.Errorf("Binary(%q) missing", name)
		}
	}

	// Arity tables are disjoint from each other.
	if _, ok := ns.Binary("sin"); ok {
		t.Error("sin found in binary table")
	}

	if _, ok := ns.Unary("atan2"); ok {
		t.Error("atan2 found in unary table")
	}
}

func TestNamespace_WithConstant(t *testing.T) {
	base := Builtin()
	derived := base.WithConstant("width", 3)

	if f, ok := derived.Constant("width"); !ok || f != 3 {
		t.Errorf("derived Constant(width) = %v, %v", f, ok)
	}

	if _, ok := base.Constant("width"); ok {
		t.Error("WithConstant mutated the base namespace")
	}

	// Builtins survive derivation.
	if f, ok := derived.Constant("pi"); !ok || f != math.Pi {
		t.Errorf("derived Constant(pi) = %v, %v", f, ok)
	}

	// Shadowing replaces the value only in the derived namespace.
	shadowed := base.WithConstant("pi", 3)

	if f, _ := shadowed.Constant("pi"); f != 3 {
		t.Errorf("shadowed pi = %v, want 3", f)
	}

	if f, _ := base.Constant("pi"); f != math.Pi {
		t.Errorf("base pi = %v after shadowing", f)
	}
}

func TestNamespace_WithConstant_ZeroValue(t *testing.T) {
	var ns Namespace

	derived := ns.WithConstant("x", 1)

	if f, ok := derived.Constant("x"); !ok || f != 1 {
		t.Errorf("Constant(x) = %v, %v", f, ok)
	}
}

func TestNamespace_Names(t *testing.T) {
	names := Builtin().Names()

	if !slices.IsSorted(names) {
		t.Error("Names() is not sorted")
	}

	for _, want := range []string{"pi", "e", "sin", "atan2", "max"} {
		if !slices.Contains(names, want) {
			t.Errorf("Names() missing %q", want)
		}
	}

	// No duplicates.
	if len(slices.Compact(slices.Clone(names))) != len(names) {
		t.Error("Names() contains duplicates")
	}
}
