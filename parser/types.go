package parser

import (
	"strings"

	"github.com/gophlex/phpparser/ast"
	"github.com/gophlex/phpparser/diagnostic"
	"github.com/gophlex/phpparser/lexer"
)

var simpleTypeKeywords = map[lexer.Kind]ast.SimpleKind{
	lexer.KwArray:      ast.KSimpleArray,
	lexer.KwCallable:   ast.KSimpleCallable,
	lexer.KwNull:       ast.KSimpleNull,
	lexer.KwTrue:       ast.KSimpleTrue,
	lexer.KwFalse:      ast.KSimpleFalse,
	lexer.KwVoid:       ast.KSimpleVoid,
	lexer.KwNever:      ast.KSimpleNever,
	lexer.KwMixed:      ast.KSimpleMixed,
	lexer.KwIterable:   ast.KSimpleIterable,
	lexer.KwObjectType: ast.KSimpleObject,
	lexer.KwSelf:       ast.KSimpleSelf,
	lexer.KwStatic:     ast.KSimpleStatic,
	lexer.KwParent:     ast.KSimpleParent,
}

// parseType implements the grammar in spec.md §4.6:
//
//	type := '?' simple | dnf | simple ('|' simple)* | simple ('&' simple)* | simple
func (p *Parser) parseType() ast.Type {
	if p.stream.Current().Kind == lexer.Question {
		qSpan := p.span(p.stream.Advance())
		inner := p.parseSimpleType()
		if inner != nil && inner.Standalone() {
			p.bag.Add(diagnostic.StandaloneTypeInCombination(typeString(inner), "nullable type", qSpan))
		}
		return &ast.NullableType{BaseNode: ast.BaseNode{Kind: ast.KindNullableType, Span: qSpan}, Inner: inner}
	}

	if p.stream.Current().Kind == lexer.LParen {
		return p.parseDNFType()
	}

	first := p.parseSimpleType()
	if first == nil {
		return nil
	}

	switch p.stream.Current().Kind {
	case lexer.VBar:
		return p.parseUnionFrom(first)
	case lexer.Amp:
		return p.parseIntersectionFrom(first)
	default:
		return first
	}
}

func (p *Parser) parseUnionFrom(first ast.Type) ast.Type {
	members := []ast.Type{first}
	span := first.GetSpan()
	for p.stream.Current().Kind == lexer.VBar {
		p.stream.Advance()
		var member ast.Type
		if p.stream.Current().Kind == lexer.LParen {
			member = p.parseIntersectionGroup()
		} else {
			member = p.parseSimpleType()
		}
		if member == nil {
			break
		}
		if len(members) == 1 && first.Standalone() {
			p.bag.Add(diagnostic.StandaloneTypeInCombination(typeString(first), "union", first.GetSpan()))
		}
		if member.Standalone() {
			p.bag.Add(diagnostic.StandaloneTypeInCombination(typeString(member), "union", member.GetSpan()))
		}
		members = append(members, member)
		span.Length = member.GetSpan().End() - span.Position
	}
	return &ast.UnionType{BaseNode: ast.BaseNode{Kind: ast.KindUnionType, Span: span}, Members: members}
}

func (p *Parser) parseIntersectionFrom(first ast.Type) ast.Type {
	members := []ast.Type{first}
	span := first.GetSpan()
	for p.stream.Current().Kind == lexer.Amp && p.stream.Peek().Kind != lexer.Ellipsis {
		p.stream.Advance()
		member := p.parseSimpleType()
		if member == nil {
			break
		}
		if len(members) == 1 && first.Standalone() {
			p.bag.Add(diagnostic.StandaloneTypeInCombination(typeString(first), "intersection", first.GetSpan()))
		}
		if member.Standalone() {
			p.bag.Add(diagnostic.StandaloneTypeInCombination(typeString(member), "intersection", member.GetSpan()))
		}
		members = append(members, member)
		span.Length = member.GetSpan().End() - span.Position
	}
	return &ast.IntersectionType{BaseNode: ast.BaseNode{Kind: ast.KindIntersectionType, Span: span}, Members: members}
}

// parseIntersectionGroup parses the parenthesised `(A&B)` clause inside a
// DNF union member; rejects any further parenthesis nesting (E041).
func (p *Parser) parseIntersectionGroup() ast.Type {
	open := p.span(p.stream.Advance()) // (
	first := p.parseSimpleType()
	var members []ast.Type
	if first != nil {
		members = append(members, first)
	}
	for p.stream.Current().Kind == lexer.Amp {
		p.stream.Advance()
		if p.stream.Current().Kind == lexer.LParen {
			p.bag.Add(diagnostic.NestedDNFParens(p.span(p.stream.Current())))
		}
		m := p.parseSimpleType()
		if m != nil {
			members = append(members, m)
		}
	}
	closeSpan := p.span(p.stream.Current())
	p.expect(lexer.RParen, "`)`")
	span := open
	span.Length = closeSpan.End() - open.Position
	return &ast.IntersectionType{BaseNode: ast.BaseNode{Kind: ast.KindIntersectionType, Span: span}, Members: members}
}

// parseDNFType handles the two DNF shapes spec.md §4.6 names:
// `(A|B)&C...` and `(A&B)|C...`.
func (p *Parser) parseDNFType() ast.Type {
	group := p.parseParenGroup()
	switch p.stream.Current().Kind {
	case lexer.Amp:
		return p.parseIntersectionFrom(group)
	case lexer.VBar:
		return p.parseUnionFrom(group)
	default:
		return group
	}
}

// parseParenGroup parses a `(A|B)` or `(A&B)` clause and rejects nested
// parentheses inside it (E041), matching the "never nested further"
// invariant.
func (p *Parser) parseParenGroup() ast.Type {
	open := p.span(p.stream.Advance()) // (
	first := p.parseSimpleType()
	var members []ast.Type
	if first != nil {
		members = append(members, first)
	}
	isUnion := false
	for p.stream.Current().Kind == lexer.VBar || p.stream.Current().Kind == lexer.Amp {
		if p.stream.Current().Kind == lexer.VBar {
			isUnion = true
		}
		p.stream.Advance()
		if p.stream.Current().Kind == lexer.LParen {
			p.bag.Add(diagnostic.NestedDNFParens(p.span(p.stream.Current())))
		}
		m := p.parseSimpleType()
		if m != nil {
			members = append(members, m)
		}
	}
	closeSpan := p.span(p.stream.Current())
	p.expect(lexer.RParen, "`)`")
	span := open
	span.Length = closeSpan.End() - open.Position
	if isUnion {
		return &ast.UnionType{BaseNode: ast.BaseNode{Kind: ast.KindUnionType, Span: span}, Members: members}
	}
	return &ast.IntersectionType{BaseNode: ast.BaseNode{Kind: ast.KindIntersectionType, Span: span}, Members: members}
}

func (p *Parser) parseSimpleType() ast.Type {
	tok := p.stream.Current()
	span := p.span(tok)

	if sk, ok := simpleTypeKeywords[tok.Kind]; ok {
		p.stream.Advance()
		if sk == ast.KSimpleSelf || sk == ast.KSimpleStatic || sk == ast.KSimpleParent {
			if !p.state.inClass() {
				p.bag.Add(diagnostic.TypeRequiresClassScope(strings.ToLower(string(tok.Value)), span))
			}
		}
		return &ast.SimpleType{BaseNode: ast.BaseNode{Kind: ast.KindSimpleType, Span: span}, SimpleKind: sk}
	}

	if tok.Kind == lexer.Ident {
		scalars := map[string]ast.SimpleKind{"int": ast.KSimpleInt, "float": ast.KSimpleFloat, "bool": ast.KSimpleBool, "string": ast.KSimpleString}
		if sk, ok := scalars[strings.ToLower(string(tok.Value))]; ok {
			p.stream.Advance()
			return &ast.SimpleType{BaseNode: ast.BaseNode{Kind: ast.KindSimpleType, Span: span}, SimpleKind: sk}
		}
	}

	switch tok.Kind {
	case lexer.Ident, lexer.QualifiedIdent, lexer.FullyQualifiedIdent, lexer.RelativeIdent, lexer.NsSeparator:
		name := p.parseQualifiedName()
		return &ast.SimpleType{BaseNode: ast.BaseNode{Kind: ast.KindSimpleType, Span: span}, SimpleKind: ast.KSimpleIdentifier, Name: name}
	default:
		p.bag.Add(diagnostic.UnexpectedToken(tok.Kind.String(), "a type", span))
		return nil
	}
}

// typeString renders a Type for use inside a diagnostic message.
func typeString(t ast.Type) string {
	st, ok := t.(*ast.SimpleType)
	if !ok {
		return "type"
	}
	if st.SimpleKind == ast.KSimpleIdentifier {
		return st.Name
	}
	names := map[ast.SimpleKind]string{
		ast.KSimpleArray: "array", ast.KSimpleCallable: "callable", ast.KSimpleNull: "null",
		ast.KSimpleTrue: "true", ast.KSimpleFalse: "false", ast.KSimpleVoid: "void",
		ast.KSimpleNever: "never", ast.KSimpleFloat: "float", ast.KSimpleBool: "bool",
		ast.KSimpleInt: "int", ast.KSimpleString: "string", ast.KSimpleObject: "object",
		ast.KSimpleMixed: "mixed", ast.KSimpleIterable: "iterable", ast.KSimpleSelf: "self",
		ast.KSimpleStatic: "static", ast.KSimpleParent: "parent",
	}
	return names[st.SimpleKind]
}
