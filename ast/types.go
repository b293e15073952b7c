package ast

// SimpleKind enumerates the keyword and reference type forms that need no
// further structure. Identifier types (class/interface names) are also
// SimpleType values, with Name set and SimpleKind left at KSimpleIdentifier.
type SimpleKind int

const (
	KSimpleIdentifier SimpleKind = iota
	KSimpleArray
	KSimpleCallable
	KSimpleNull
	KSimpleTrue
	KSimpleFalse
	KSimpleVoid
	KSimpleNever
	KSimpleFloat
	KSimpleBool
	KSimpleInt
	KSimpleString
	KSimpleObject
	KSimpleMixed
	KSimpleIterable
	KSimpleSelf
	KSimpleStatic
	KSimpleParent
)

// standaloneKinds mirrors spec.md §3: Never, Void, and Mixed may never
// combine with other types via union or intersection. Nullable is
// standalone regardless of its inner kind (see NullableType.Standalone).
var standaloneKinds = map[SimpleKind]bool{
	KSimpleVoid:  true,
	KSimpleNever: true,
	KSimpleMixed: true,
}

// SimpleType is a keyword type, a bare/qualified class-name identifier, or
// one of self/static/parent.
type SimpleType struct {
	BaseNode
	SimpleKind SimpleKind
	Name       string // set when SimpleKind == KSimpleIdentifier
}

func (*SimpleType) typeNode() {}
func (t *SimpleType) Standalone() bool { return standaloneKinds[t.SimpleKind] }

// NullableType is `?T`; always standalone regardless of T.
type NullableType struct {
	BaseNode
	Inner Type
}

func (*NullableType) typeNode()        {}
func (*NullableType) Standalone() bool { return true }
func (n *NullableType) GetChildren() []Node { return []Node{n.Inner} }

// UnionType is `A|B|...`; per invariant, at least 2 members, none standalone.
// A member that is itself an IntersectionType marks this union as DNF.
type UnionType struct {
	BaseNode
	Members []Type
}

func (*UnionType) typeNode()        {}
func (*UnionType) Standalone() bool { return false }
func (n *UnionType) GetChildren() []Node {
	out := make([]Node, len(n.Members))
	for i, m := range n.Members {
		out[i] = m
	}
	return out
}

// IntersectionType is `A&B&...`; per invariant, at least 2 members, none
// standalone. A DNF union member is an IntersectionType whose own members
// are required to be simple (never themselves nested).
type IntersectionType struct {
	BaseNode
	Members []Type
}

func (*IntersectionType) typeNode()        {}
func (*IntersectionType) Standalone() bool { return false }
func (n *IntersectionType) GetChildren() []Node {
	out := make([]Node, len(n.Members))
	for i, m := range n.Members {
		out[i] = m
	}
	return out
}
