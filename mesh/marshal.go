package mesh

import (
	"encoding/json"
)

// MarshalJSON implements json.Marshaler for Document.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ToMap())
}

// ToMap converts the unevaluated document to a native Go map keyed by
// binding name. Lists become nested []any; expression leaves appear as
// float64 for plain literals and as their source rendering otherwise.
func (d *Document) ToMap() map[string]any {
	result := make(map[string]any, len(d.Bindings))

	for _, b := range d.Bindings {
		result[b.Name] = b.Value.ToNative()
	}

	return result
}

// ToNative converts a parse-tree node to its native Go representation
// without evaluating it.
func (n *Node) ToNative() any {
	switch n.Kind {
	case KindNumber:
		return n.Num

	case KindList:
		out := make([]any, len(n.Args))
		for i, arg := range n.Args {
			out[i] = arg.ToNative()
		}

		return out

	default:
		// Unevaluated expressions keep their source form
		return n.String()
	}
}

// MarshalJSON implements json.Marshaler for Mesh.
func (m *Mesh) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.ToMap())
}

// ToMap converts the resolved mesh to a native Go map using the section
// names of the input format as keys.
func (m *Mesh) ToMap() map[string]any {
	return map[string]any{
		SectionVertices:   m.Nodes.ToNative(),
		SectionElements:   m.Elements.ToNative(),
		SectionBoundaries: m.Boundary.ToNative(),
		SectionCurves:     m.Curves.ToNative(),
	}
}
