package mesh

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
)

func TestDocument_Format_RoundTrip(t *testing.T) {
	doc, err := ParseString(context.Background(), unitSquare)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}

	var buf strings.Builder
	if err := doc.Format(context.Background(), &buf, 2); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	// The rendering must itself be a valid document with the same content.
	again, err := ParseString(context.Background(), buf.String())
	if err != nil {
		t.Fatalf("reparse of formatted output failed: %v\n%s", err, buf.String())
	}

	if len(again.Bindings) != len(doc.Bindings) {
		t.Fatalf("reparse has %d bindings, want %d",
			len(again.Bindings), len(doc.Bindings))
	}

	first, err := doc.Evaluate(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	second, err := again.Evaluate(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	for name, v := range first {
		if !v.Equal(second[name]) {
			t.Errorf("binding %q changed across round trip", name)
		}
	}
}

func TestDocument_Format_Indent(t *testing.T) {
	doc, err := ParseString(context.Background(), "a = { 1, 2 }")
	if err != nil {
		t.Fatal(err)
	}

	var multi strings.Builder
	if err := doc.Format(context.Background(), &multi, 2); err != nil {
		t.Fatal(err)
	}

	if got := multi.String(); got != "a = {\n  1,\n  2\n}\n" {
		t.Errorf("indented Format = %q", got)
	}

	var single strings.Builder
	if err := doc.Format(context.Background(), &single, 0); err != nil {
		t.Fatal(err)
	}

	if got := single.String(); got != "a = { 1, 2 }\n" {
		t.Errorf("flat Format = %q", got)
	}
}

func TestDocument_FormatJSON(t *testing.T) {
	doc, err := ParseString(context.Background(), "a = { 1, 2 }\nb = 1 + 2")
	if err != nil {
		t.Fatal(err)
	}

	var buf strings.Builder
	if err := doc.FormatJSON(context.Background(), &buf, 0); err != nil {
		t.Fatalf("FormatJSON failed: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(buf.String()), &m); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	a, ok := m["a"].([]any)
	if !ok || len(a) != 2 {
		t.Errorf("a = %v, want 2-element array", m["a"])
	}

	// Unevaluated expressions keep their source rendering.
	if b, ok := m["b"].(string); !ok || b != "(1 + 2)" {
		t.Errorf("b = %v, want \"(1 + 2)\"", m["b"])
	}
}

func TestDocument_FormatYAML(t *testing.T) {
	doc, err := ParseString(context.Background(), "a = { 1, 2 }")
	if err != nil {
		t.Fatal(err)
	}

	var buf strings.Builder
	if err := doc.FormatYAML(context.Background(), &buf, 2); err != nil {
		t.Fatalf("FormatYAML failed: %v", err)
	}

	var m map[string]any
	if err := yaml.Unmarshal([]byte(buf.String()), &m); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}

	if _, ok := m["a"]; !ok {
		t.Errorf("YAML output missing binding a: %q", buf.String())
	}
}

func TestMesh_Format(t *testing.T) {
	m, err := Read(context.Background(), unitSquare)
	if err != nil {
		t.Fatal(err)
	}

	var buf strings.Builder
	if err := m.Format(context.Background(), &buf); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	out := buf.String()

	for _, want := range []string{
		"vertices = { { 0, 0 }, { 1, 0 }, { 1, 1 }, { 0, 1 } }",
		"elements = { { 0, 1, 2, 3, 0 } }",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format output missing %q:\n%s", want, out)
		}
	}

	// Empty curves are omitted.
	if strings.Contains(out, "curves") {
		t.Errorf("Format output includes empty curves:\n%s", out)
	}
}

func TestMesh_FormatJSON(t *testing.T) {
	m, err := Read(context.Background(), unitSquare)
	if err != nil {
		t.Fatal(err)
	}

	var buf strings.Builder
	if err := m.FormatJSON(context.Background(), &buf, 0); err != nil {
		t.Fatalf("FormatJSON failed: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(buf.String()), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	curves, ok := out["curves"].([]any)
	if !ok || len(curves) != 0 {
		t.Errorf("curves = %v, want empty array", out["curves"])
	}
}

func TestDocument_Print(t *testing.T) {
	doc, err := ParseString(context.Background(), "a = { 1, -2 }")
	if err != nil {
		t.Fatal(err)
	}

	var buf strings.Builder
	if err := doc.Print(&buf); err != nil {
		t.Fatalf("Print failed: %v", err)
	}

	out := buf.String()

	for _, want := range []string{"Binding a", "List [2]", "Number 1", "Unary -"} {
		if !strings.Contains(out, want) {
			t.Errorf("Print output missing %q:\n%s", want, out)
		}
	}
}

func TestNode_String_Parenthesization(t *testing.T) {
	n, err := ParseExpr("1 + 2*3^-4")
	if err != nil {
		t.Fatal(err)
	}

	if got := n.String(); got != "(1 + (2 * (3 ^ -4)))" {
		t.Errorf("String = %q", got)
	}
}
