package ast

import "iter"

// ChildNodes yields the direct child nodes with their item index.
func (n *Node) ChildNodes() iter.Seq2[int, *Node] {
	return func(yield func(int, *Node) bool) {
		for i, it := range n.Items {
			if c, ok := it.(*Node); ok {
				if !yield(i, c) {
					return
				}
			}
		}
	}
}

// ChildNodesBackward is ChildNodes in reverse order.
func (n *Node) ChildNodesBackward() iter.Seq2[int, *Node] {
	return func(yield func(int, *Node) bool) {
		for i := len(n.Items) - 1; i >= 0; i-- {
			if c, ok := n.Items[i].(*Node); ok {
				if !yield(i, c) {
					return
				}
			}
		}
	}
}

// Attributes yields the direct attributes with their item index.
// Assigning to the yielded Attribute's Text rewrites it in place.
func (n *Node) Attributes() iter.Seq2[int, *Attribute] {
	return func(yield func(int, *Attribute) bool) {
		for i, it := range n.Items {
			if a, ok := it.(*Attribute); ok {
				if !yield(i, a) {
					return
				}
			}
		}
	}
}

// AttributesBackward is Attributes in reverse order.
func (n *Node) AttributesBackward() iter.Seq2[int, *Attribute] {
	return func(yield func(int, *Attribute) bool) {
		for i := len(n.Items) - 1; i >= 0; i-- {
			if a, ok := n.Items[i].(*Attribute); ok {
				if !yield(i, a) {
					return
				}
			}
		}
	}
}

// FindChild returns the first direct child node named name.
func (n *Node) FindChild(name string) (*Node, bool) {
	for _, c := range n.ChildNodes() {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Nodes yields n and then every descendant node in pre-order, depth-first
// and left to right. Each call to the returned sequence restarts the walk.
func (n *Node) Nodes() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.preorder(yield)
	}
}

func (n *Node) preorder(yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	for _, it := range n.Items {
		if c, ok := it.(*Node); ok {
			if !c.preorder(yield) {
				return false
			}
		}
	}
	return true
}

// NodesMut yields nodes in the same order as Nodes, but reads a node's
// children only after the yield for that node returns. The consumer may
// rename the node or replace its items; the walk then continues into the
// new items. Nodes outside the yielded one must not be modified.
func (n *Node) NodesMut() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		stack := []*Node{n}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(cur) {
				return
			}
			for i := len(cur.Items) - 1; i >= 0; i-- {
				if c, ok := cur.Items[i].(*Node); ok {
					stack = append(stack, c)
				}
			}
		}
	}
}

// Any reports whether any node in the subtree, n included, satisfies pred.
func (n *Node) Any(pred func(*Node) bool) bool {
	for c := range n.Nodes() {
		if pred(c) {
			return true
		}
	}
	return false
}
