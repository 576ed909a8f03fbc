package repl

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistory_WriteAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)

	for _, entry := range []string{"2+2", "cos(pi)", "a = sqrt(2)"} {
		if _, err := h.Write(entry); err != nil {
			t.Fatalf("Write(%q) failed: %v", entry, err)
		}
	}

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}

	// Reload from disk into a fresh instance.
	h2 := NewHistory(path)
	if err := h2.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	want := []string{"2+2", "cos(pi)", "a = sqrt(2)"}
	if got := h2.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
}

func TestHistory_DeduplicatesRepeatedEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)

	for _, entry := range []string{"1+1", "2+2", "1+1"} {
		if _, err := h.Write(entry); err != nil {
			t.Fatalf("Write(%q) failed: %v", entry, err)
		}
	}

	want := []string{"2+2", "1+1"}
	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}

	// Dedup must survive a round-trip through the file.
	h2 := NewHistory(path)
	if err := h2.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if got := h2.Entries(); !slices.Equal(got, want) {
		t.Errorf("reloaded Entries() = %v, want %v", got, want)
	}
}

func TestHistory_SkipsBlankAndConsecutiveDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)

	for _, entry := range []string{"", "  ", "tau/2", "tau/2"} {
		if _, err := h.Write(entry); err != nil {
			t.Fatalf("Write(%q) failed: %v", entry, err)
		}
	}

	if h.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.Len())
	}
}

func TestHistory_LoadMissingFile(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "does-not-exist"))

	if err := h.Load(); err != nil {
		t.Errorf("Load() on missing file = %v, want nil", err)
	}
}

func TestHistory_GetLineOutOfBounds(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	_, err := h.GetLine(0)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("GetLine(0) error = %v, want ErrOutOfBounds", err)
	}
}
