package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/meshdef/mesh"
)

func TestEval_Run(t *testing.T) {
	tests := []struct {
		name   string
		expr   []string
		define []string
		want   string
	}{
		{"literal", []string{"42"}, nil, "42"},
		{"power right associative", []string{"2^3^2"}, nil, "512"},
		{"multiple shell words", []string{"1", "+", "2*3"}, nil, "7"},
		{"defined constant", []string{"width*2"}, []string{"width=2.5"}, "5"},
		{
			"definition shadows builtin",
			[]string{"e"},
			[]string{"e=1"},
			"1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut strings.Builder

			e := &Eval{Define: tt.define, Expr: tt.expr}
			if err := e.Run(testContext(&out, &errOut)); err != nil {
				t.Fatalf("Run failed: %v", err)
			}

			if got := strings.TrimSpace(out.String()); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEval_Run_Errors(t *testing.T) {
	tests := []struct {
		name   string
		expr   []string
		define []string
		want   error
	}{
		{"no expression", nil, nil, ErrEmptyExpression},
		{"blank expression", []string{"  "}, nil, ErrEmptyExpression},
		{"definition missing value", []string{"1"}, []string{"width"}, ErrInvalidConstant},
		{"definition not numeric", []string{"1"}, []string{"width=wide"}, ErrInvalidConstant},
		{"malformed expression", []string{"1 +"}, nil, mesh.ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut strings.Builder

			e := &Eval{Define: tt.define, Expr: tt.expr}

			err := e.Run(testContext(&out, &errOut))
			if !errors.Is(err, tt.want) {
				t.Errorf("Run error = %v, want %v", err, tt.want)
			}
		})
	}
}
