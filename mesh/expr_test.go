package mesh

import (
	"errors"
	"testing"
)

func TestParseExpr_Structure(t *testing.T) {
	tests := []struct {
		name  string
		input string
		// want describes the expected tree via the fully-parenthesized
		// rendering of Node.String.
		want string
	}{
		{"number", "42", "42"},
		{"leading dot number", ".5", ".5"},
		{"exponent number", "1.5e3", "1.5e3"},
		{"addition is left associative", "1 - 2 - 3", "((1 - 2) - 3)"},
		{"multiplication binds tighter", "1 + 2*3", "(1 + (2 * 3))"},
		{"division is left associative", "8 / 4 / 2", "((8 / 4) / 2)"},
		{"power is right associative", "2^3^2", "(2 ^ (3 ^ 2))"},
		{"parens override precedence", "(1 + 2) * 3", "((1 + 2) * 3)"},
		{"unary minus", "-x", "-x"},
		{"unary plus is identity", "+x", "x"},
		{"double negation", "--3", "--3"},
		{"unary binds tighter than power", "-2^2", "(-2 ^ 2)"},
		{"negative exponent", "2^-3", "(2 ^ -3)"},
		{"constant pi", "pi", "pi"},
		{"constant pi uppercase", "PI", "pi"},
		{"constant pi mixed case", "Pi", "pi"},
		{"e is a plain reference", "e", "e"},
		{"call one argument", "cos(pi)", "cos(pi)"},
		{"call two arguments", "atan2(1, 2)", "atan2(1, 2)"},
		{"nested calls", "sqrt(abs(-4))", "sqrt(abs(-4))"},
		{"call in expression", "2*sin(pi/6)", "(2 * sin((pi / 6)))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ParseExpr(tt.input)
			if err != nil {
				t.Fatalf("ParseExpr(%q) failed: %v", tt.input, err)
			}

			if got := n.String(); got != tt.want {
				t.Errorf("ParseExpr(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseExpr_Kinds(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"3.14", KindNumber},
		{"pi", KindConstant},
		{"PI", KindConstant},
		{"e", KindRef},
		{"width", KindRef},
		{"sin(1)", KindCall},
		{"-1", KindUnary},
		{"1 + 1", KindBinary},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, err := ParseExpr(tt.input)
			if err != nil {
				t.Fatalf("ParseExpr(%q) failed: %v", tt.input, err)
			}

			if n.Kind != tt.want {
				t.Errorf("ParseExpr(%q).Kind = %v, want %v", tt.input, n.Kind, tt.want)
			}
		})
	}
}

func TestParseExpr_WholeInput(t *testing.T) {
	tests := []string{
		"1 2",
		"1; 2",
		"cos(0))",
		"1 + 2 }",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := ParseExpr(input)
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("ParseExpr(%q) error = %v, want ErrSyntax", input, err)
			}
		})
	}
}

func TestParseExpr_MaxDepth(t *testing.T) {
	input := "((((1))))"

	_, err := ParseExpr(input, WithMaxDepth(3))
	if !errors.Is(err, ErrMaxDepthExceeded) {
		t.Errorf("error = %v, want ErrMaxDepthExceeded", err)
	}

	if _, err := ParseExpr(input, WithMaxDepth(4)); err != nil {
		t.Errorf("parse within depth limit failed: %v", err)
	}
}
