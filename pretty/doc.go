// Package pretty reformats module text.
//
// The formatter works on its own token tree rather than on ast.Node, so it
// accepts unlinked sources and keeps comments. Layout rules, first match
// wins:
//
//   - forms headed by param, local, export, table, memory, import or global,
//     and forms with at most one plain identifier or string after the
//     head, stay on one line;
//   - func keeps its $name, export and import on the opening line and puts
//     every other child on its own line; sibling funcs are separated by a
//     blank line;
//   - component puts every child on its own line, separated by blank lines;
//   - anything else keeps the head and the identifiers that directly follow
//     it on the opening line and puts the rest one per line.
//
// Nesting is indented with one tab. Formatting is a fixed point: formatting
// formatted text returns it unchanged.
package pretty
