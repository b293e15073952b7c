// Package ast defines the syntax tree produced by package parser: a Program
// of Statements built from Expressions, Types, and the small shared node
// families (parameters, attributes, modifiers) spec.md §3 names.
package ast

import (
	"encoding/json"

	"github.com/gophlex/phpparser/source"
)

// Node is implemented by every tree element. GetChildren backs the
// pre-order Walk in visitor.go; it is intentionally shallow (direct
// children only, never transitive).
type Node interface {
	GetKind() Kind
	GetSpan() source.Span
	GetChildren() []Node
	Accept(v Visitor)
}

// Statement is implemented by every node valid in statement position.
type Statement interface {
	Node
	statementNode()
}

// Expression is implemented by every node valid in expression position.
type Expression interface {
	Node
	expressionNode()
}

// Type is implemented by every node in type position (§4.6).
type Type interface {
	Node
	typeNode()
	// Standalone reports whether this type may not participate in a union
	// or intersection: Never, Void, Mixed, and any Nullable.
	Standalone() bool
}

// BaseNode carries the span every node needs; embedded by every concrete
// node type below, matching the teacher's BaseNode composition.
type BaseNode struct {
	Kind Kind
	Span source.Span
}

func (b *BaseNode) GetKind() Kind           { return b.Kind }
func (b *BaseNode) GetSpan() source.Span    { return b.Span }
func (b *BaseNode) GetChildren() []Node     { return nil }
func (b *BaseNode) Accept(v Visitor)        { v.Visit(b) }

// ToJSON renders any node as indented JSON; the schema falls directly out
// of each node's exported field names, matching spec.md §6's "derived
// mechanically from variant and field names" requirement.
func ToJSON(n Node) ([]byte, error) {
	return json.MarshalIndent(n, "", "  ")
}

// ---------------------------------------------------------------- Program --

// Program is the root node: an ordered sequence of top-level statements.
type Program struct {
	BaseNode
	Statements []Statement
}

func NewProgram(span source.Span, stmts []Statement) *Program {
	return &Program{BaseNode: BaseNode{Kind: KindProgram, Span: span}, Statements: stmts}
}

func (p *Program) GetChildren() []Node {
	out := make([]Node, len(p.Statements))
	for i, s := range p.Statements {
		out[i] = s
	}
	return out
}
func (p *Program) Accept(v Visitor) {
	if v.Visit(p) {
		for _, s := range p.Statements {
			s.Accept(v)
		}
	}
}

// ------------------------------------------------------------- Literals ---

type IntLiteral struct {
	BaseNode
	Raw   []byte
	Value int64
}

func (*IntLiteral) expressionNode() {}

type FloatLiteral struct {
	BaseNode
	Raw   []byte
	Value float64
}

func (*FloatLiteral) expressionNode() {}

// StringLiteral is a single-quoted (or otherwise non-interpolated)
// string literal, already unescaped.
type StringLiteral struct {
	BaseNode
	Value []byte
}

func (*StringLiteral) expressionNode() {}

// InterpolatedString rebuilds a double-quoted or heredoc string into one
// expression node: a sequence of literal-fragment and expression parts, in
// source order, per spec.md §4.5's interpolation contract.
type InterpolatedString struct {
	BaseNode
	Parts []Expression // each part is *StringLiteral or any Expression
}

func (*InterpolatedString) expressionNode() {}
func (n *InterpolatedString) GetChildren() []Node {
	out := make([]Node, len(n.Parts))
	for i, p := range n.Parts {
		out[i] = p
	}
	return out
}
func (n *InterpolatedString) Accept(v Visitor) {
	if v.Visit(n) {
		for _, p := range n.Parts {
			p.Accept(v)
		}
	}
}

// ShellExecExpr is a backtick-quoted shell-exec string, structurally
// identical to InterpolatedString.
type ShellExecExpr struct {
	BaseNode
	Parts []Expression
}

func (*ShellExecExpr) expressionNode() {}

type MagicConstExpr struct {
	BaseNode
	Name string // __LINE__, __FILE__, __DIR__, __FUNCTION__, __CLASS__, __METHOD__, __NAMESPACE__, __TRAIT__
}

func (*MagicConstExpr) expressionNode() {}

// --------------------------------------------------------------- Names ----

// NameExpr is a bare, qualified, fully-qualified, or relative identifier
// used in expression position (a constant reference, function name, or
// class name before further postfix parsing disambiguates it).
type NameExpr struct {
	BaseNode
	Name          string
	Qualified     bool
	FullyQualified bool
	Relative      bool
}

func (*NameExpr) expressionNode() {}

// ----------------------------------------------------------- Variables ----

type Variable struct {
	BaseNode
	Name string // without leading $
}

func (*Variable) expressionNode() {}

// VariableVariable is $$name or ${expr}.
type VariableVariable struct {
	BaseNode
	Inner Expression
}

func (*VariableVariable) expressionNode() {}
func (n *VariableVariable) GetChildren() []Node { return []Node{n.Inner} }
func (n *VariableVariable) Accept(v Visitor) {
	if v.Visit(n) {
		n.Inner.Accept(v)
	}
}

// -------------------------------------------------------------- Arrays ----

type ArrayItem struct {
	BaseNode
	Key      Expression // nil if unkeyed
	Value    Expression
	ByRef    bool
	Spread   bool // "..." unpack
}

func (*ArrayItem) expressionNode() {}
func (n *ArrayItem) GetChildren() []Node {
	if n.Key != nil {
		return []Node{n.Key, n.Value}
	}
	return []Node{n.Value}
}
func (n *ArrayItem) Accept(v Visitor) {
	if v.Visit(n) {
		if n.Key != nil {
			n.Key.Accept(v)
		}
		n.Value.Accept(v)
	}
}

// ArrayLiteral covers both `[...]` and `array(...)`; ShortSyntax records
// which form the source used, for faithful re-rendering.
type ArrayLiteral struct {
	BaseNode
	Items       []*ArrayItem
	ShortSyntax bool
}

func (*ArrayLiteral) expressionNode() {}
func (n *ArrayLiteral) GetChildren() []Node {
	out := make([]Node, len(n.Items))
	for i, it := range n.Items {
		out[i] = it
	}
	return out
}
func (n *ArrayLiteral) Accept(v Visitor) {
	if v.Visit(n) {
		for _, it := range n.Items {
			it.Accept(v)
		}
	}
}

// ListExpression is `list(...)` or `[...]` used as an assignment target.
type ListExpression struct {
	BaseNode
	Items []*ArrayItem // an entry is nil for a skipped slot: list($a, , $c)
}

func (*ListExpression) expressionNode() {}
func (n *ListExpression) GetChildren() []Node {
	out := make([]Node, 0, len(n.Items))
	for _, it := range n.Items {
		if it != nil {
			out = append(out, it)
		}
	}
	return out
}

// ------------------------------------------------------------ Operators --

type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpConcat
	OpShl
	OpShr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpBooleanAnd
	OpBooleanOr
	OpLogicalAnd
	OpLogicalOr
	OpLogicalXor
	OpEqual
	OpNotEqual
	OpIdentical
	OpNotIdentical
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpSpaceship
	OpCoalesce
)

type BinaryExpr struct {
	BaseNode
	Op          BinaryOp
	Left, Right Expression
}

func (*BinaryExpr) expressionNode() {}
func (n *BinaryExpr) GetChildren() []Node { return []Node{n.Left, n.Right} }
func (n *BinaryExpr) Accept(v Visitor) {
	if v.Visit(n) {
		n.Left.Accept(v)
		n.Right.Accept(v)
	}
}

type UnaryOp int

const (
	OpUnaryPlus UnaryOp = iota
	OpUnaryMinus
	OpBooleanNot
	OpBitNot
	OpSuppress // @
)

type UnaryExpr struct {
	BaseNode
	Op      UnaryOp
	Operand Expression
}

func (*UnaryExpr) expressionNode() {}
func (n *UnaryExpr) GetChildren() []Node { return []Node{n.Operand} }
func (n *UnaryExpr) Accept(v Visitor) {
	if v.Visit(n) {
		n.Operand.Accept(v)
	}
}

type AssignOp int

const (
	AssignPlain AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignMod
	AssignPow
	AssignConcat
	AssignShl
	AssignShr
	AssignBitAnd
	AssignBitOr
	AssignBitXor
	AssignCoalesce
)

type AssignExpr struct {
	BaseNode
	Op          AssignOp
	Target, Value Expression
}

func (*AssignExpr) expressionNode() {}
func (n *AssignExpr) GetChildren() []Node { return []Node{n.Target, n.Value} }
func (n *AssignExpr) Accept(v Visitor) {
	if v.Visit(n) {
		n.Target.Accept(v)
		n.Value.Accept(v)
	}
}

// AssignRefExpr is `$a =& $b`.
type AssignRefExpr struct {
	BaseNode
	Target, Value Expression
}

func (*AssignRefExpr) expressionNode() {}
func (n *AssignRefExpr) GetChildren() []Node { return []Node{n.Target, n.Value} }

type IncDecOp int

const (
	OpPreInc IncDecOp = iota
	OpPreDec
	OpPostInc
	OpPostDec
)

type IncDecExpr struct {
	BaseNode
	Op      IncDecOp
	Operand Expression
}

func (*IncDecExpr) expressionNode() {}
func (n *IncDecExpr) GetChildren() []Node { return []Node{n.Operand} }

type InstanceofExpr struct {
	BaseNode
	Subject Expression
	Class   Expression // NameExpr or arbitrary expression (dynamic class)
}

func (*InstanceofExpr) expressionNode() {}
func (n *InstanceofExpr) GetChildren() []Node { return []Node{n.Subject, n.Class} }

type TernaryExpr struct {
	BaseNode
	Cond, Then, Else Expression // Then is nil for the Elvis form `a ?: b`
}

func (*TernaryExpr) expressionNode() {}
func (n *TernaryExpr) GetChildren() []Node {
	if n.Then == nil {
		return []Node{n.Cond, n.Else}
	}
	return []Node{n.Cond, n.Then, n.Else}
}

// ------------------------------------------------------------- Postfix ----

type Argument struct {
	BaseNode
	Name   string // named argument; empty when positional
	Value  Expression
	Spread bool
}

func (*Argument) expressionNode() {}
func (n *Argument) GetChildren() []Node { return []Node{n.Value} }

type CallExpr struct {
	BaseNode
	Callee Expression
	Args   []*Argument
}

func (*CallExpr) expressionNode() {}
func (n *CallExpr) GetChildren() []Node {
	out := make([]Node, 0, 1+len(n.Args))
	out = append(out, n.Callee)
	for _, a := range n.Args {
		out = append(out, a)
	}
	return out
}

// FirstClassCallableExpr is `strlen(...)` / `$obj->method(...)`: it carries
// no argument list, the `...` token itself is the marker.
type FirstClassCallableExpr struct {
	BaseNode
	Callee Expression
}

func (*FirstClassCallableExpr) expressionNode() {}
func (n *FirstClassCallableExpr) GetChildren() []Node { return []Node{n.Callee} }

type MethodCallExpr struct {
	BaseNode
	Object   Expression
	Method   Expression // NameExpr for a literal name, else a dynamic expression
	Args     []*Argument
	Nullsafe bool
}

func (*MethodCallExpr) expressionNode() {}
func (n *MethodCallExpr) GetChildren() []Node {
	out := []Node{n.Object, n.Method}
	for _, a := range n.Args {
		out = append(out, a)
	}
	return out
}

type StaticCallExpr struct {
	BaseNode
	Class  Expression
	Method Expression
	Args   []*Argument
}

func (*StaticCallExpr) expressionNode() {}
func (n *StaticCallExpr) GetChildren() []Node {
	out := []Node{n.Class, n.Method}
	for _, a := range n.Args {
		out = append(out, a)
	}
	return out
}

type PropertyFetchExpr struct {
	BaseNode
	Object   Expression
	Property Expression
	Nullsafe bool
}

func (*PropertyFetchExpr) expressionNode() {}
func (n *PropertyFetchExpr) GetChildren() []Node { return []Node{n.Object, n.Property} }

type StaticPropertyFetchExpr struct {
	BaseNode
	Class    Expression
	Property Expression
}

func (*StaticPropertyFetchExpr) expressionNode() {}
func (n *StaticPropertyFetchExpr) GetChildren() []Node { return []Node{n.Class, n.Property} }

type ClassConstFetchExpr struct {
	BaseNode
	Class Expression
	Name  string // may be "class" for ::class
}

func (*ClassConstFetchExpr) expressionNode() {}
func (n *ClassConstFetchExpr) GetChildren() []Node { return []Node{n.Class} }

// IndexExpr is `$a[$b]`; Index is nil for the append form `$a[] = ...`.
type IndexExpr struct {
	BaseNode
	Subject Expression
	Index   Expression
}

func (*IndexExpr) expressionNode() {}
func (n *IndexExpr) GetChildren() []Node {
	if n.Index == nil {
		return []Node{n.Subject}
	}
	return []Node{n.Subject, n.Index}
}

// ---------------------------------------------------------------- new -----

type NewExpr struct {
	BaseNode
	Class Expression // NameExpr or dynamic expression; `new class` yields an *AnonClassExpr instead of a NewExpr
	Args  []*Argument
}

func (*NewExpr) expressionNode() {}
func (n *NewExpr) GetChildren() []Node {
	out := []Node{n.Class}
	for _, a := range n.Args {
		out = append(out, a)
	}
	return out
}

type AnonClassExpr struct {
	BaseNode
	Args       []*Argument
	Extends    Expression // NameExpr or nil
	Implements []Expression
	Body       *ClassDeclaration // reuses the declaration body shape
}

func (*AnonClassExpr) expressionNode() {}
func (n *AnonClassExpr) GetChildren() []Node {
	out := make([]Node, 0, len(n.Args)+2)
	for _, a := range n.Args {
		out = append(out, a)
	}
	if n.Extends != nil {
		out = append(out, n.Extends)
	}
	out = append(out, n.Body)
	return out
}

// -------------------------------------------------------- Cast / suppress --

type CastKind int

const (
	CastInt CastKind = iota
	CastFloat
	CastString
	CastArray
	CastObject
	CastBool
	CastUnset
)

type CastExpr struct {
	BaseNode
	Cast    CastKind
	Operand Expression
}

func (*CastExpr) expressionNode() {}
func (n *CastExpr) GetChildren() []Node { return []Node{n.Operand} }

type ErrorSuppressExpr struct {
	BaseNode
	Operand Expression
}

func (*ErrorSuppressExpr) expressionNode() {}
func (n *ErrorSuppressExpr) GetChildren() []Node { return []Node{n.Operand} }

type CloneExpr struct {
	BaseNode
	Operand Expression
}

func (*CloneExpr) expressionNode() {}
func (n *CloneExpr) GetChildren() []Node { return []Node{n.Operand} }

type PrintExpr struct {
	BaseNode
	Operand Expression
}

func (*PrintExpr) expressionNode() {}
func (n *PrintExpr) GetChildren() []Node { return []Node{n.Operand} }

type ThrowExpr struct {
	BaseNode
	Operand Expression
}

func (*ThrowExpr) expressionNode() {}
func (n *ThrowExpr) GetChildren() []Node { return []Node{n.Operand} }

type IncludeKind int

const (
	IncludeInclude IncludeKind = iota
	IncludeIncludeOnce
	IncludeRequire
	IncludeRequireOnce
	IncludeEval
)

type IncludeExpr struct {
	BaseNode
	Form     IncludeKind
	Operand  Expression
}

func (*IncludeExpr) expressionNode() {}
func (n *IncludeExpr) GetChildren() []Node { return []Node{n.Operand} }

type EmptyExpr struct {
	BaseNode
	Operand Expression
}

func (*EmptyExpr) expressionNode() {}
func (n *EmptyExpr) GetChildren() []Node { return []Node{n.Operand} }

type IssetExpr struct {
	BaseNode
	Operands []Expression
}

func (*IssetExpr) expressionNode() {}
func (n *IssetExpr) GetChildren() []Node {
	out := make([]Node, len(n.Operands))
	for i, o := range n.Operands {
		out[i] = o
	}
	return out
}

// --------------------------------------------------------- yield / match --

type YieldExpr struct {
	BaseNode
	Key   Expression // nil when not `key => value`
	Value Expression // nil for bare `yield`
}

func (*YieldExpr) expressionNode() {}
func (n *YieldExpr) GetChildren() []Node {
	var out []Node
	if n.Key != nil {
		out = append(out, n.Key)
	}
	if n.Value != nil {
		out = append(out, n.Value)
	}
	return out
}

type YieldFromExpr struct {
	BaseNode
	Operand Expression
}

func (*YieldFromExpr) expressionNode() {}
func (n *YieldFromExpr) GetChildren() []Node { return []Node{n.Operand} }

type MatchArm struct {
	BaseNode
	Conditions []Expression // nil/empty means `default`
	IsDefault  bool
	Body       Expression
}

func (*MatchArm) statementNode() {} // shares positioning helpers; not part of Program
func (n *MatchArm) GetChildren() []Node {
	out := make([]Node, 0, len(n.Conditions)+1)
	for _, c := range n.Conditions {
		out = append(out, c)
	}
	out = append(out, n.Body)
	return out
}

type MatchExpr struct {
	BaseNode
	Subject Expression
	Arms    []*MatchArm
}

func (*MatchExpr) expressionNode() {}
func (n *MatchExpr) GetChildren() []Node {
	out := make([]Node, 0, 1+len(n.Arms))
	out = append(out, n.Subject)
	for _, a := range n.Arms {
		out = append(out, a)
	}
	return out
}

// ---------------------------------------------------- closures / arrows ---

// ClosureUseVariable is one entry of a closure's `use (...)` clause.
type ClosureUseVariable struct {
	BaseNode
	Name  string
	ByRef bool
}

func (*ClosureUseVariable) expressionNode() {}

type ClosureExpr struct {
	BaseNode
	Static     bool
	ByRef      bool
	Params     []*Parameter
	Uses       []*ClosureUseVariable
	ReturnType Type
	Body       []Statement
}

func (*ClosureExpr) expressionNode() {}
func (n *ClosureExpr) GetChildren() []Node {
	var out []Node
	for _, p := range n.Params {
		out = append(out, p)
	}
	for _, u := range n.Uses {
		out = append(out, u)
	}
	if n.ReturnType != nil {
		out = append(out, n.ReturnType)
	}
	for _, s := range n.Body {
		out = append(out, s)
	}
	return out
}

type ArrowFunctionExpr struct {
	BaseNode
	Static     bool
	ByRef      bool
	Params     []*Parameter
	ReturnType Type
	Body       Expression
}

func (*ArrowFunctionExpr) expressionNode() {}
func (n *ArrowFunctionExpr) GetChildren() []Node {
	var out []Node
	for _, p := range n.Params {
		out = append(out, p)
	}
	if n.ReturnType != nil {
		out = append(out, n.ReturnType)
	}
	out = append(out, n.Body)
	return out
}
