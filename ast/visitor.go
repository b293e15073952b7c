package ast

// Visitor is implemented by tree consumers. Visit returns whether Walk
// should descend into the node's children.
type Visitor interface {
	Visit(node Node) bool
}

// Walk performs a pre-order traversal, visiting a node before any of its
// children and skipping the subtree entirely when Visit returns false.
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	if v.Visit(node) {
		for _, child := range node.GetChildren() {
			Walk(v, child)
		}
	}
}

// inspector adapts a plain func into a Visitor for Inspect.
type inspector func(Node) bool

func (f inspector) Visit(n Node) bool { return f(n) }

// Inspect walks node calling fn for every node in pre-order; fn returns
// whether to descend into that node's children, mirroring go/ast.Inspect.
func Inspect(node Node, fn func(Node) bool) {
	Walk(inspector(fn), node)
}
