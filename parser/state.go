package parser

import (
	"github.com/gophlex/phpparser/ast"
	"github.com/gophlex/phpparser/source"
)

// ScopeKind identifies one frame of the parser's scope stack.
type ScopeKind int

const (
	ScopeNamespace ScopeKind = iota
	ScopeBracedNamespace
	ScopeClass
	ScopeInterface
	ScopeTrait
	ScopeEnum
	ScopeAnonymousClass
	ScopeMethod
)

// Scope is one frame of the inner-to-outer scope stack the statement and
// expression parsers consult to validate things like "self/static/parent
// require an enclosing class" and "readonly requires a class member".
type Scope struct {
	Kind      ScopeKind
	Name      string
	Span      source.Span         // declaring keyword's span, when Kind == ScopeBracedNamespace
	Flags     *ast.ModifierGroup // class flags, when Kind == ScopeClass
	HasParent bool                // class/anonymous-class extends something
	Backed    bool                // enum is backed
}

// NamespaceStyle records which of the two mutually-exclusive namespace
// spellings a file has committed to.
type NamespaceStyle int

const (
	NamespaceStyleNone NamespaceStyle = iota
	NamespaceStyleBraced
	NamespaceStyleUnbraced
)

// state carries everything the statement/expression/type parsers share
// beyond the token stream itself: the scope stack, namespace bookkeeping,
// and attribute groups awaiting the next declaration.
type state struct {
	scopes []Scope

	style           NamespaceStyle
	firstNamespace  *struct{ line, col int }
	currentNamespace string

	pendingAttributes []*ast.AttributeGroup
}

func newState() *state {
	return &state{}
}

func (s *state) pushScope(sc Scope) { s.scopes = append(s.scopes, sc) }

func (s *state) popScope() {
	if len(s.scopes) > 0 {
		s.scopes = s.scopes[:len(s.scopes)-1]
	}
}

func (s *state) currentScope() (Scope, bool) {
	if len(s.scopes) == 0 {
		return Scope{}, false
	}
	return s.scopes[len(s.scopes)-1], true
}

func (s *state) parentScope() (Scope, bool) {
	if len(s.scopes) < 2 {
		return Scope{}, false
	}
	return s.scopes[len(s.scopes)-2], true
}

func (s *state) inClass() bool {
	sc, ok := s.currentScope()
	if !ok {
		return false
	}
	switch sc.Kind {
	case ScopeClass, ScopeInterface, ScopeTrait, ScopeEnum, ScopeAnonymousClass:
		return true
	}
	return false
}

func (s *state) inMethod() bool {
	sc, ok := s.currentScope()
	return ok && sc.Kind == ScopeMethod
}

// qualified prepends the active namespace to name, matching PHP's own
// "current namespace + \ + name" resolution for declarations.
func (s *state) qualified(name string) string {
	if s.currentNamespace == "" {
		return name
	}
	return s.currentNamespace + "\\" + name
}

func (s *state) takeAttributes() []*ast.AttributeGroup {
	a := s.pendingAttributes
	s.pendingAttributes = nil
	return a
}

func (s *state) hasPendingAttributes() bool { return len(s.pendingAttributes) > 0 }
