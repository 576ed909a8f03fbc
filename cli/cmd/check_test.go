package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/meshdef/mesh"
)

// testContext returns a context carrying a kong.Context whose output
// writers are the given builders.
func testContext(out, errOut *strings.Builder) context.Context {
	ktx := &kong.Context{Kong: &kong.Kong{Stdout: out, Stderr: errOut}}

	return WithContext(context.Background(), ktx)
}

func writeSource(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input.mesh")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestCheck_Run(t *testing.T) {
	path := writeSource(t, "a = 1\nb = { 1, 2 }\n")

	var out, errOut strings.Builder

	c := &Check{Source: path}
	if err := c.Run(testContext(&out, &errOut)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !strings.Contains(out.String(), "ok (2 bindings)") {
		t.Errorf("output = %q", out.String())
	}
}

func TestCheck_Run_SyntaxErrorSnippet(t *testing.T) {
	path := writeSource(t, "vertices { 0 }\n")

	var out, errOut strings.Builder

	c := &Check{Source: path}

	err := c.Run(testContext(&out, &errOut))
	if !errors.Is(err, mesh.ErrSyntax) {
		t.Fatalf("Run error = %v, want ErrSyntax", err)
	}

	// The offending line is echoed with a caret under the bad token.
	diag := errOut.String()

	if !strings.Contains(diag, "1 | vertices { 0 }") {
		t.Errorf("diagnostic missing source line:\n%s", diag)
	}

	if !strings.Contains(diag, "^") {
		t.Errorf("diagnostic missing caret marker:\n%s", diag)
	}
}

func TestCheck_Run_CompleteMissingSection(t *testing.T) {
	path := writeSource(t, "vertices = { { 0, 0 } }\nelements = { { 0 } }\n")

	var out, errOut strings.Builder

	c := &Check{Source: path, Complete: true}

	err := c.Run(testContext(&out, &errOut))
	if !errors.Is(err, mesh.ErrMissingSection) {
		t.Errorf("Run error = %v, want ErrMissingSection", err)
	}
}

func TestCheck_Run_MissingFile(t *testing.T) {
	var out, errOut strings.Builder

	c := &Check{Source: filepath.Join(t.TempDir(), "absent.mesh")}

	err := c.Run(testContext(&out, &errOut))
	if !errors.Is(err, ErrOpenSource) {
		t.Errorf("Run error = %v, want ErrOpenSource", err)
	}
}
