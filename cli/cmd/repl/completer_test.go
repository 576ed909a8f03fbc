package repl

import "testing"

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"empty input", "", 0, "", 0, 0},
		{"single word", "cos", 3, "cos", 0, 3},
		{"cursor mid-word", "sqrt", 2, "sqrt", 0, 4},
		{"after operator", "2*si", 4, "si", 2, 4},
		{"cursor on boundary", "2 + ", 4, "", 4, 4},
		{"inside call", "cos(pi", 6, "pi", 4, 6},
		{"cursor clamped past end", "pi", 10, "pi", 0, 2},
		{"between operators", "a+b*c", 3, "b", 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf(
					"wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor,
					word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd,
				)
			}
		})
	}
}

func TestIsNumeric(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"2", true},
		{"3.14", true},
		{"1e5", true},
		{"pi", false},
		{"x2", false},
		{"_tmp", false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := isNumeric(tt.word); got != tt.want {
				t.Errorf("isNumeric(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}
