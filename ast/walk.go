package ast

// Visitor receives callbacks from Walk.
type Visitor interface {
	// VisitNode is called once per node, before its items.
	VisitNode(n *Node) error
	// VisitAttribute is called once per direct attribute of parent, in item
	// order, interleaved with descent into sibling nodes.
	VisitAttribute(parent *Node, attr *Attribute) error
}

// NopVisitor implements Visitor with no-op hooks. Embed it to override one.
type NopVisitor struct{}

func (NopVisitor) VisitNode(*Node) error                  { return nil }
func (NopVisitor) VisitAttribute(*Node, *Attribute) error { return nil }

// VisitorFuncs adapts two optional functions to Visitor.
type VisitorFuncs struct {
	Node      func(n *Node) error
	Attribute func(parent *Node, attr *Attribute) error
}

func (v VisitorFuncs) VisitNode(n *Node) error {
	if v.Node == nil {
		return nil
	}
	return v.Node(n)
}

func (v VisitorFuncs) VisitAttribute(parent *Node, attr *Attribute) error {
	if v.Attribute == nil {
		return nil
	}
	return v.Attribute(parent, attr)
}

// Walk traverses the subtree depth-first in pre-order. The first error
// returned by the visitor stops the walk and is returned.
func Walk(n *Node, v Visitor) error {
	if err := v.VisitNode(n); err != nil {
		return err
	}
	for _, it := range n.Items {
		switch c := it.(type) {
		case *Attribute:
			if err := v.VisitAttribute(n, c); err != nil {
				return err
			}
		case *Node:
			if err := Walk(c, v); err != nil {
				return err
			}
		}
	}
	return nil
}
