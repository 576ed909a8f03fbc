package mesh

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/klauspost/readahead"
)

// Mesh holds the four resolved sections of a mesh description. Nodes,
// Elements, and Boundary are always tuples; Curves is the empty tuple when
// the document has no curves binding.
type Mesh struct {
	// Nodes is the ordered sequence of vertex coordinate tuples.
	Nodes Value

	// Elements is the ordered sequence of element tuples: vertex indices
	// followed by a material marker.
	Elements Value

	// Boundary is the ordered sequence of boundary edge tuples: two vertex
	// indices followed by a boundary marker.
	Boundary Value

	// Curves is the ordered sequence of NURBS curve descriptors, possibly
	// empty.
	Curves Value
}

// Read parses and evaluates a mesh description.
//
// The three sections vertices, elements, and boundaries must be present;
// curves is optional. Read is pure: it retains no state between calls, and
// the same input always yields the same Mesh.
func Read(ctx context.Context, input string, opts ...Option) (*Mesh, error) {
	doc, err := ParseString(ctx, input, opts...)
	if err != nil {
		return nil, err
	}

	return doc.Mesh(ctx)
}

// ReadFile parses and evaluates a mesh description from a file.
func ReadFile(ctx context.Context, path string, opts ...Option) (*Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("path", path))
	}

	return Read(ctx, string(data), opts...)
}

// ReadReader parses and evaluates a mesh description from an io.Reader.
func ReadReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Mesh, error) {
	// Wrap reader with async read-ahead for concurrent I/O.
	// This allows data to be pre-fetched while we process previous chunks.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return Read(ctx, string(data), opts...)
}

// Mesh evaluates the document and extracts the four sections.
func (d *Document) Mesh(ctx context.Context) (*Mesh, error) {
	resolved, err := d.Evaluate(ctx)
	if err != nil {
		return nil, err
	}

	m := new(Mesh)

	for _, section := range []struct {
		name     string
		dst      *Value
		required bool
	}{
		{SectionVertices, &m.Nodes, true},
		{SectionElements, &m.Elements, true},
		{SectionBoundaries, &m.Boundary, true},
		{SectionCurves, &m.Curves, false},
	} {
		v, ok := resolved[section.name]
		if !ok {
			if section.required {
				return nil, ErrMissingSection.
					With(slog.String("section", section.name))
			}

			v = Tuple()
		}

		*section.dst = v
	}

	d.logger.TraceContext(
		ctx,
		"mesh resolved",
		slog.Int("node_count", m.Nodes.Len()),
		slog.Int("element_count", m.Elements.Len()),
		slog.Int("boundary_count", m.Boundary.Len()),
		slog.Int("curve_count", m.Curves.Len()),
	)

	return m, nil
}

// Points converts the Nodes section to coordinate rows.
func (m *Mesh) Points() ([][]float64, error) {
	return floatRows(m.Nodes)
}

// Elems converts the Elements section to index rows. Each row is the element
// vertex indices followed by its marker.
func (m *Mesh) Elems() ([][]int, error) {
	return intRows(m.Elements)
}

// Edges converts the Boundary section to index rows. Each row is two vertex
// indices followed by the boundary marker.
func (m *Mesh) Edges() ([][]int, error) {
	return intRows(m.Boundary)
}

func floatRows(v Value) ([][]float64, error) {
	if !v.IsTuple() {
		return nil, ErrEvaluate.
			With(slog.String("want", "tuple of rows"))
	}

	rows := make([][]float64, v.Len())

	for i := range v.Len() {
		row, err := v.At(i).Floats()
		if err != nil {
			return nil, WrapError(err).With(slog.Int("row", i))
		}

		rows[i] = row
	}

	return rows, nil
}

func intRows(v Value) ([][]int, error) {
	if !v.IsTuple() {
		return nil, ErrEvaluate.
			With(slog.String("want", "tuple of rows"))
	}

	rows := make([][]int, v.Len())

	for i := range v.Len() {
		row, err := v.At(i).Ints()
		if err != nil {
			return nil, WrapError(err).With(slog.Int("row", i))
		}

		rows[i] = row
	}

	return rows, nil
}
