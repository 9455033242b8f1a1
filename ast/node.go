package ast

import (
	"fmt"
	"strings"
)

// Item is one entry of a Node's item list: *Node, *Attribute or Nothing.
type Item interface {
	fmt.Stringer
	isItem()
}

// Nothing is the tombstone left after an item is moved out of a node.
type Nothing struct{}

func (Nothing) isItem() {}

// String returns the empty string; tombstones are skipped by Node.String.
func (Nothing) String() string { return "" }

// Attribute is a bare token or a quoted string literal, stored verbatim
// including quotes and escapes.
type Attribute struct {
	Text string
}

// Attr creates an attribute item.
func Attr(text string) *Attribute {
	return &Attribute{Text: text}
}

func (*Attribute) isItem() {}

func (a *Attribute) String() string { return a.Text }

// Node is a parenthesised form: a name followed by items.
type Node struct {
	Name  string
	Items []Item
	Depth int
}

func (*Node) isItem() {}

// New creates a node at depth 0. Items that are nodes are rebased below it.
func New(name string, items ...Item) *Node {
	n := &Node{Name: name}
	n.Append(items...)
	return n
}

// NewModule creates an empty top-level module.
func NewModule() *Node {
	return &Node{Name: "module"}
}

// String returns the canonical serialization of the subtree.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	b.WriteByte('(')
	b.WriteString(n.Name)
	for _, it := range n.Items {
		switch v := it.(type) {
		case Nothing:
			continue
		case *Node:
			b.WriteByte(' ')
			v.write(b)
		default:
			b.WriteByte(' ')
			b.WriteString(v.String())
		}
	}
	b.WriteByte(')')
}

// AsNode returns the node held by it, if any.
func AsNode(it Item) (*Node, bool) {
	n, ok := it.(*Node)
	return n, ok
}

// AsAttribute returns the attribute held by it, if any.
func AsAttribute(it Item) (*Attribute, bool) {
	a, ok := it.(*Attribute)
	return a, ok
}

// IntoNode unwraps an item already known to be a node.
// It panics otherwise: callers must have checked the shape first.
func IntoNode(it Item) *Node {
	n, ok := it.(*Node)
	if !ok {
		panic(fmt.Sprintf("ast: IntoNode called on %T", it))
	}
	return n
}

// Take moves the item at index i out of the node, leaving Nothing in its
// place so indices of the remaining items stay valid.
func (n *Node) Take(i int) Item {
	it := n.Items[i]
	n.Items[i] = Nothing{}
	return it
}

// Compact drops tombstones from the item list.
func (n *Node) Compact() {
	out := n.Items[:0]
	for _, it := range n.Items {
		if _, ok := it.(Nothing); ok {
			continue
		}
		out = append(out, it)
	}
	for i := len(out); i < len(n.Items); i++ {
		n.Items[i] = nil
	}
	n.Items = out
}

// AppendNode appends child as the last item, first shifting the depth of
// child's whole subtree so that child sits one level below n.
func (n *Node) AppendNode(child *Node) {
	child.shiftDepth(n.Depth + 1 - child.Depth)
	n.Items = append(n.Items, child)
}

// AppendAttribute appends a bare attribute.
func (n *Node) AppendAttribute(text string) {
	n.Items = append(n.Items, Attr(text))
}

// Append appends items in order. Nodes go through AppendNode, tombstones
// are dropped.
func (n *Node) Append(items ...Item) {
	for _, it := range items {
		switch v := it.(type) {
		case *Node:
			n.AppendNode(v)
		case Nothing, nil:
		default:
			n.Items = append(n.Items, v)
		}
	}
}

func (n *Node) shiftDepth(delta int) {
	if delta == 0 {
		return
	}
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cur.Depth += delta
		for _, it := range cur.Items {
			if c, ok := it.(*Node); ok {
				stack = append(stack, c)
			}
		}
	}
}

// Clone returns a deep copy of the subtree. Tombstones are not copied.
func (n *Node) Clone() *Node {
	c := &Node{Name: n.Name, Depth: n.Depth, Items: make([]Item, 0, len(n.Items))}
	for _, it := range n.Items {
		switch v := it.(type) {
		case *Node:
			c.Items = append(c.Items, v.Clone())
		case *Attribute:
			c.Items = append(c.Items, Attr(v.Text))
		}
	}
	return c
}
