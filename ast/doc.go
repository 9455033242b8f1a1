// Package ast defines the tree the linker operates on.
//
// A parsed source file is a single root Node named "module" at depth 0.
// Every Node holds an ordered list of Items, each of which is one of:
//
//	*Node       a nested parenthesised form
//	*Attribute  an opaque token or quoted string literal, kept verbatim
//	Nothing     a tombstone left behind by Take, never serialized
//
// Node.String produces the canonical single-line form:
//
//	(module (func $a (param i32)) (data (i32.const 0) "\00"))
//
// # Depth
//
// Depth is the nesting level from the document root and must always equal
// the structural depth. Use AppendNode (or Append) to splice subtrees into
// a new parent; it rewrites the depth of the whole subtree.
//
// # Traversal
//
//	ChildNodes / Attributes  direct children of one variant, in order
//	Nodes                    lazy pre-order walk for reading
//	NodesMut                 pre-order walk that tolerates mutation of the
//	                         node just yielded (children are read after the
//	                         yield returns)
//	Walk                     pre-order walk calling a Visitor for nodes and
//	                         their attributes
package ast
