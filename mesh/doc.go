// Package mesh reads 2D finite-element mesh descriptions written in the
// Hermes text format. A mesh file is an ordered sequence of named bindings
// whose values are arithmetic expressions or brace-delimited nested lists:
//
//	# unit square with one quad element
//	vertices = { {0, 0}, {1, 0}, {1, 1}, {0, 1} }
//	elements = { {0, 1, 2, 3, 0} }
//	boundaries = { {0, 1, 1}, {1, 2, 1}, {2, 3, 1}, {3, 0, 1} }
//
// Three bindings are required: vertices, elements, and boundaries. A fourth,
// curves, is optional and describes curved (NURBS) boundary edges.
//
// # Grammar
//
// Informal EBNF:
//
//	Document  → Binding+ EOF
//	Binding   → Identifier '=' Item ';'?
//	Item      → List | Expr
//	List      → '{' (Item (',' Item)*)? '}'
//	Expr      → Term (('+' | '-') Term)*
//	Term      → Factor (('*' | '/') Factor)*
//	Factor    → Atom ('^' Factor)?           // right-associative
//	Atom      → '-'? (Number | 'pi' | Call | Identifier | '(' Expr ')')
//	Call      → Identifier '(' Expr (',' Expr)* ')'
//
// Comments run from '#' to end of line and are ignored everywhere, including
// inside lists. Exponentiation binds right to left: 2^3^2 is 2^(3^2) = 512.
//
// # Evaluation
//
// Expressions are resolved by a closed arithmetic interpreter over a fixed,
// read-only namespace of math constants and functions (see [Builtin]). There
// is no general-purpose code evaluation: an expression can only perform
// arithmetic against that namespace and against scalar bindings declared
// earlier in the same document. Bindings resolve in declaration order;
// forward references are an error.
//
// # Reading
//
// [Read] parses and evaluates a document in one call:
//
//	m, err := mesh.Read(ctx, src)
//	if err != nil { ... }
//	pts, _ := m.Points() // [][]float64 vertex coordinates
//
// Read is pure: the same text yields the same [Mesh] on every call, so parse
// results are cached per source hash.
package mesh
