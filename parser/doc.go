// Package parser turns module source text into an ast.Node tree.
//
// The grammar is a parenthesised S-expression language:
//
//	form  = "(" ident item* ")"
//	item  = form | string | token
//
// Line comments start with ";;" and run to the end of the line. Block
// comments are delimited by "(;" and ";)" and do not nest. Both count as
// whitespace. A bare token runs until whitespace, ")" or a comment start;
// parenthesised groups directly inside a token (offset=(...)) are kept in
// the token verbatim. Escapes in string literals are not interpreted.
package parser
