package ast

import (
	"testing"
)

func sample() *Node {
	// (module (func $a (param i32) (call $b)) (data "x"))
	return New("module",
		New("func", Attr("$a"),
			New("param", Attr("i32")),
			New("call", Attr("$b")),
		),
		New("data", Attr(`"x"`)),
	)
}

func TestNode_String(t *testing.T) {
	n := sample()
	want := `(module (func $a (param i32) (call $b)) (data "x"))`
	if got := n.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNode_TakeLeavesTombstone(t *testing.T) {
	n := sample()
	it := n.Take(0)
	if c, ok := AsNode(it); !ok || c.Name != "func" {
		t.Fatalf("Take(0) = %v, want func node", it)
	}
	if len(n.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(n.Items))
	}
	if _, ok := n.Items[0].(Nothing); !ok {
		t.Errorf("Items[0] = %T, want Nothing", n.Items[0])
	}
	if got, want := n.String(), `(module (data "x"))`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	n.Compact()
	if len(n.Items) != 1 {
		t.Errorf("after Compact len(Items) = %d, want 1", len(n.Items))
	}
}

func TestNode_AppendNodeRebasesDepth(t *testing.T) {
	parent := New("module", New("func"))
	fn, _ := parent.FindChild("func")

	child := New("block", New("call", Attr("$x")))
	fn.AppendNode(child)

	tests := []struct {
		name  string
		node  *Node
		depth int
	}{
		{"module", parent, 0},
		{"func", fn, 1},
		{"block", child, 2},
		{"call", IntoNode(child.Items[0]), 3},
	}
	for _, tt := range tests {
		if tt.node.Depth != tt.depth {
			t.Errorf("%s depth = %d, want %d", tt.name, tt.node.Depth, tt.depth)
		}
	}
}

func TestNode_DepthInvariantAfterNew(t *testing.T) {
	n := sample()
	var check func(n *Node, depth int)
	check = func(n *Node, depth int) {
		if n.Depth != depth {
			t.Errorf("%s depth = %d, want %d", n.Name, n.Depth, depth)
		}
		for _, c := range n.ChildNodes() {
			check(c, depth+1)
		}
	}
	check(n, 0)
}

func TestIntoNode_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("IntoNode on attribute did not panic")
		}
	}()
	IntoNode(Attr("x"))
}

func TestNode_Clone(t *testing.T) {
	n := sample()
	c := n.Clone()
	IntoNode(c.Items[0]).Name = "renamed"
	if n.String() == c.String() {
		t.Error("clone shares structure with original")
	}
}

func TestNode_Nodes(t *testing.T) {
	var got []string
	for c := range sample().Nodes() {
		got = append(got, c.Name)
	}
	want := []string{"module", "func", "param", "call", "data"}
	if len(got) != len(want) {
		t.Fatalf("Nodes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Nodes()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNode_NodesEarlyStop(t *testing.T) {
	count := 0
	for range sample().Nodes() {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestNode_NodesMutReplacesItems(t *testing.T) {
	n := sample()
	var visited []string
	for c := range n.NodesMut() {
		visited = append(visited, c.Name)
		if c.Name == "func" {
			c.Items = []Item{Attr("$a"), New("nop")}
			c.Items[1].(*Node).Depth = c.Depth + 1
		}
	}
	want := []string{"module", "func", "nop", "data"}
	if len(visited) != len(want) {
		t.Fatalf("visited = %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visited[%d] = %q, want %q", i, visited[i], want[i])
		}
	}
}

func TestNode_ChildIterators(t *testing.T) {
	n := New("memory", Attr("$m"), New("export", Attr(`"mem"`)), Attr("1"))

	var fwd, back []int
	for i := range n.Attributes() {
		fwd = append(fwd, i)
	}
	for i := range n.AttributesBackward() {
		back = append(back, i)
	}
	if len(fwd) != 2 || fwd[0] != 0 || fwd[1] != 2 {
		t.Errorf("Attributes indices = %v, want [0 2]", fwd)
	}
	if len(back) != 2 || back[0] != 2 || back[1] != 0 {
		t.Errorf("AttributesBackward indices = %v, want [2 0]", back)
	}

	for i, c := range n.ChildNodesBackward() {
		if i != 1 || c.Name != "export" {
			t.Errorf("ChildNodesBackward yielded %d %s", i, c.Name)
		}
	}
}

func TestNode_Any(t *testing.T) {
	n := sample()
	if !n.Any(func(c *Node) bool { return c.Name == "call" }) {
		t.Error("Any(call) = false, want true")
	}
	if n.Any(func(c *Node) bool { return c.Name == "import" }) {
		t.Error("Any(import) = true, want false")
	}
}
