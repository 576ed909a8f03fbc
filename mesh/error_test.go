package mesh

import (
	"context"
	"errors"
	"testing"
)

func TestError_Snippet(t *testing.T) {
	source := "a = 1\nb { 2 }"

	_, err := ParseString(context.Background(), source)
	if err == nil {
		t.Fatal("expected parse error")
	}

	var merr *Error
	if !errors.As(err, &merr) {
		t.Fatalf("error type = %T, want *Error", err)
	}

	want := "  2 | b { 2 }\n        ^\n"
	if got := merr.Snippet(source); got != want {
		t.Errorf("Snippet = %q, want %q", got, want)
	}
}

func TestError_Snippet_NoPosition(t *testing.T) {
	if got := NewError("boom").Snippet("a = 1"); got != "" {
		t.Errorf("Snippet without position = %q, want empty", got)
	}
}

func TestError_Snippet_OutOfBounds(t *testing.T) {
	err := NewError("boom").WithPosition(Position{Line: 9, Column: 1})

	if got := err.Snippet("a = 1"); got != "" {
		t.Errorf("Snippet out of bounds = %q, want empty", got)
	}
}
