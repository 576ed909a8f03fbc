package mesh

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead_UnitSquare(t *testing.T) {
	m, err := Read(context.Background(), unitSquare)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	points, err := m.Points()
	if err != nil {
		t.Fatalf("Points failed: %v", err)
	}

	wantPoints := [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	if !reflect.DeepEqual(points, wantPoints) {
		t.Errorf("Points = %v, want %v", points, wantPoints)
	}

	elems, err := m.Elems()
	if err != nil {
		t.Fatalf("Elems failed: %v", err)
	}

	wantElems := [][]int{{0, 1, 2, 3, 0}}
	if !reflect.DeepEqual(elems, wantElems) {
		t.Errorf("Elems = %v, want %v", elems, wantElems)
	}

	edges, err := m.Edges()
	if err != nil {
		t.Fatalf("Edges failed: %v", err)
	}

	wantEdges := [][]int{{0, 1, 1}, {1, 2, 1}, {2, 3, 1}, {3, 0, 1}}
	if !reflect.DeepEqual(edges, wantEdges) {
		t.Errorf("Edges = %v, want %v", edges, wantEdges)
	}

	if m.Curves.Len() != 0 || !m.Curves.IsTuple() {
		t.Errorf("Curves = %v, want empty tuple", m.Curves)
	}
}

func TestRead_ExpressionsInSections(t *testing.T) {
	input := `
scale = 2
vertices = {
  { 0, 0 },
  { scale, 0 },
  { scale*cos(pi/3), scale*sin(pi/3) }
}
elements = { { 0, 1, 2, 0 } }
boundaries = { { 0, 1, 1 }, { 1, 2, 1 }, { 2, 0, 1 } }
`

	m, err := Read(context.Background(), input)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	points, err := m.Points()
	if err != nil {
		t.Fatalf("Points failed: %v", err)
	}

	if got := points[1][0]; got != 2 {
		t.Errorf("points[1][0] = %v, want 2", got)
	}

	// 2*cos(pi/3) == 1 within rounding
	if got := points[2][0]; got < 0.999999999 || got > 1.000000001 {
		t.Errorf("points[2][0] = %v, want ~1", got)
	}
}

func TestRead_MissingSection(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no vertices", "elements = { { 0 } }\nboundaries = { { 0 } }"},
		{"no elements", "vertices = { { 0, 0 } }\nboundaries = { { 0 } }"},
		{"no boundaries", "vertices = { { 0, 0 } }\nelements = { { 0 } }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(context.Background(), tt.input)
			if !errors.Is(err, ErrMissingSection) {
				t.Errorf("Read error = %v, want ErrMissingSection", err)
			}
		})
	}
}

func TestRead_CurvesPresent(t *testing.T) {
	input := unitSquare + `
curves = {
  { 0, 1, 90 }
}
`

	m, err := Read(context.Background(), input)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if m.Curves.Len() != 1 {
		t.Fatalf("Curves.Len = %d, want 1", m.Curves.Len())
	}

	row, err := m.Curves.At(0).Floats()
	if err != nil {
		t.Fatalf("Floats failed: %v", err)
	}

	if !reflect.DeepEqual(row, []float64{0, 1, 90}) {
		t.Errorf("curve row = %v, want [0 1 90]", row)
	}
}

func TestRead_FractionalIndexRejected(t *testing.T) {
	input := `
vertices = { { 0, 0 }, { 1, 0 } }
elements = { { 0, 1.5, 0 } }
boundaries = { { 0, 1, 1 } }
`

	m, err := Read(context.Background(), input)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if _, err := m.Elems(); !errors.Is(err, ErrEvaluate) {
		t.Errorf("Elems error = %v, want ErrEvaluate", err)
	}
}

func TestRead_Deterministic(t *testing.T) {
	first, err := Read(context.Background(), unitSquare)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	second, err := Read(context.Background(), unitSquare)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if !first.Nodes.Equal(second.Nodes) ||
		!first.Elements.Equal(second.Elements) ||
		!first.Boundary.Equal(second.Boundary) ||
		!first.Curves.Equal(second.Curves) {
		t.Error("repeated reads of the same input differ")
	}
}

func TestReadReader(t *testing.T) {
	m, err := ReadReader(context.Background(), strings.NewReader(unitSquare))
	if err != nil {
		t.Fatalf("ReadReader failed: %v", err)
	}

	if m.Nodes.Len() != 4 {
		t.Errorf("Nodes.Len = %d, want 4", m.Nodes.Len())
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.mesh")
	if err := os.WriteFile(path, []byte(unitSquare), 0o600); err != nil {
		t.Fatal(err)
	}

	m, err := ReadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if m.Elements.Len() != 1 {
		t.Errorf("Elements.Len = %d, want 1", m.Elements.Len())
	}
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(
		context.Background(),
		filepath.Join(t.TempDir(), "absent.mesh"),
	)
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("ReadFile error = %v, want ErrReadInput", err)
	}
}
