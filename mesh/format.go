package mesh

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// String renders a parse-tree node in native mesh syntax. Binary operations
// are fully parenthesized so the rendering round-trips through the grammar
// without relying on precedence.
func (n *Node) String() string {
	switch n.Kind {
	case KindNumber:
		if n.Lit != "" {
			return n.Lit
		}

		return formatFloat(n.Num)

	case KindConstant, KindRef:
		return n.Name

	case KindCall:
		parts := make([]string, len(n.Args))
		for i, arg := range n.Args {
			parts[i] = arg.String()
		}

		return n.Name + "(" + strings.Join(parts, ", ") + ")"

	case KindUnary:
		return "-" + n.Args[0].String()

	case KindBinary:
		return "(" + n.Args[0].String() + " " + string(n.Op) + " " +
			n.Args[1].String() + ")"

	case KindList:
		if len(n.Args) == 0 {
			return "{}"
		}

		parts := make([]string, len(n.Args))
		for i, arg := range n.Args {
			parts[i] = arg.String()
		}

		return "{ " + strings.Join(parts, ", ") + " }"

	default:
		return "<unknown>"
	}
}

// Format writes the document in native mesh syntax to the writer.
// When indent is positive, list rows are written one per line; otherwise the
// whole binding stays on a single line.
func (d *Document) Format(_ context.Context, w io.Writer, indent int) error {
	for _, b := range d.Bindings {
		if _, err := fmt.Fprint(w, b.Name, " = "); err != nil {
			return err
		}

		err := formatNode(b.Value, w, indent, 0)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes the document as JSON to the writer.
func (d *Document) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(d, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(d)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes the document as YAML to the writer.
func (d *Document) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, d.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}

// formatNode writes a node in native syntax, breaking top-level list items
// onto separate lines when indent is positive.
func formatNode(n *Node, w io.Writer, indent, depth int) error {
	if n.Kind != KindList || indent == 0 || depth > 0 {
		_, err := fmt.Fprint(w, n.String())

		return err
	}

	if len(n.Args) == 0 {
		_, err := fmt.Fprint(w, "{}")

		return err
	}

	if _, err := fmt.Fprintln(w, "{"); err != nil {
		return err
	}

	pad := strings.Repeat(" ", indent)

	for i, arg := range n.Args {
		if _, err := fmt.Fprint(w, pad); err != nil {
			return err
		}

		err := formatNode(arg, w, indent, depth+1)
		if err != nil {
			return err
		}

		if i < len(n.Args)-1 {
			if _, err := fmt.Fprint(w, ","); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	_, err := fmt.Fprint(w, "}")

	return err
}

// Print writes an indented dump of the parse tree to the writer.
// Each line shows the node kind, its position, and any literal payload.
func (d *Document) Print(w io.Writer) error {
	for _, b := range d.Bindings {
		_, err := fmt.Fprintf(w, "Binding %s @ %s\n", b.Name, b.Pos)
		if err != nil {
			return err
		}

		err = printNode(w, b.Value, 1)
		if err != nil {
			return err
		}
	}

	return nil
}

func printNode(w io.Writer, n *Node, depth int) error {
	pad := strings.Repeat("  ", depth)

	label := n.Kind.String()

	switch n.Kind {
	case KindNumber:
		label += " " + n.String()
	case KindConstant, KindRef, KindCall:
		label += " " + n.Name
	case KindUnary, KindBinary:
		label += " " + string(n.Op)
	case KindList:
		label += " [" + strconv.Itoa(len(n.Args)) + "]"
	}

	_, err := fmt.Fprintf(w, "%s%s @ %s\n", pad, label, n.Pos)
	if err != nil {
		return err
	}

	for _, arg := range n.Args {
		err = printNode(w, arg, depth+1)
		if err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes the resolved mesh as JSON to the writer.
func (m *Mesh) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(m.ToMap(), "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(m.ToMap())
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes the resolved mesh as YAML to the writer.
func (m *Mesh) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, m.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}

// Format writes the resolved mesh in native mesh syntax to the writer.
func (m *Mesh) Format(_ context.Context, w io.Writer) error {
	for _, section := range []struct {
		name  string
		value Value
	}{
		{SectionVertices, m.Nodes},
		{SectionElements, m.Elements},
		{SectionBoundaries, m.Boundary},
		{SectionCurves, m.Curves},
	} {
		if section.name == SectionCurves && section.value.Len() == 0 {
			continue
		}

		_, err := fmt.Fprintln(w, section.name, "=", section.value.String())
		if err != nil {
			return err
		}
	}

	return nil
}
