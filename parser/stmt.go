package parser

import (
	"strings"

	"github.com/gophlex/phpparser/ast"
	"github.com/gophlex/phpparser/diagnostic"
	"github.com/gophlex/phpparser/lexer"
)

// parseStatement dispatches on the current token to the statement or
// declaration parser that owns it, per spec.md §4.4's statement grammar.
func (p *Parser) parseStatement() ast.Statement {
	doc := p.stream.TakeDoc()
	attrs := p.parseLeadingAttributes()

	tok := p.stream.Current()
	switch tok.Kind {
	case lexer.Semicolon:
		span := p.span(p.stream.Advance())
		return &ast.NoopStatement{BaseNode: ast.BaseNode{Kind: ast.KindNoopStatement, Span: span}}
	case lexer.InlineHTML:
		p.stream.Advance()
		return &ast.InlineHTMLStatement{BaseNode: ast.BaseNode{Kind: ast.KindInlineHTMLStatement, Span: p.span(tok)}, Value: tok.Value}
	case lexer.LBrace:
		span := p.span(p.stream.Current())
		body := p.parseBlockBody()
		return &ast.BlockStatement{BaseNode: ast.BaseNode{Kind: ast.KindBlockStatement, Span: span}, Statements: body}
	case lexer.KwNamespace:
		return p.parseNamespaceStatement()
	case lexer.KwUse:
		return p.parseUseStatement()
	case lexer.KwFunction:
		if isClosureLookahead(p) {
			break
		}
		return p.parseFunctionDeclaration(attrs, doc)
	case lexer.KwAbstract, lexer.KwFinal, lexer.KwReadonly:
		mods := p.parseModifiers()
		if p.stream.Current().Kind == lexer.KwClass {
			return p.parseClassDeclaration(attrs, doc, mods)
		}
		p.bag.Add(diagnostic.UnexpectedToken(p.stream.Current().Kind.String(), "`class`", p.span(p.stream.Current())))
		return nil
	case lexer.KwClass:
		return p.parseClassDeclaration(attrs, doc, nil)
	case lexer.KwInterface:
		return p.parseInterfaceDeclaration(doc)
	case lexer.KwTrait:
		return p.parseTraitDeclaration(doc)
	case lexer.KwEnum:
		if !isEnumDeclarationLookahead(p) {
			break
		}
		return p.parseEnumDeclaration(attrs, doc)
	case lexer.KwIf:
		return p.parseIfStatement()
	case lexer.KwWhile:
		return p.parseWhileStatement()
	case lexer.KwDo:
		return p.parseDoWhileStatement()
	case lexer.KwFor:
		return p.parseForStatement()
	case lexer.KwForeach:
		return p.parseForeachStatement()
	case lexer.KwSwitch:
		return p.parseSwitchStatement()
	case lexer.KwTry:
		return p.parseTryStatement()
	case lexer.KwReturn:
		return p.parseReturnStatement()
	case lexer.KwBreak:
		return p.parseBreakOrContinue(true)
	case lexer.KwContinue:
		return p.parseBreakOrContinue(false)
	case lexer.KwThrow:
		span := p.span(p.stream.Advance())
		val := p.parseExpression(LOWEST + 1)
		p.expectSemicolon()
		return &ast.ThrowStatement{BaseNode: ast.BaseNode{Kind: ast.KindThrowStatement, Span: span}, Value: val}
	case lexer.KwGoto:
		span := p.span(p.stream.Advance())
		label := p.expectNonReservedName("a label", "goto label")
		p.expectSemicolon()
		return &ast.GotoStatement{BaseNode: ast.BaseNode{Kind: ast.KindGotoStatement, Span: span}, Label: label}
	case lexer.KwGlobal:
		return p.parseGlobalStatement()
	case lexer.KwStatic:
		if p.stream.Peek().Kind == lexer.Variable {
			return p.parseStaticVarStatement()
		}
	case lexer.KwEcho:
		return p.parseEchoStatement()
	case lexer.KwDeclare:
		return p.parseDeclareStatement()
	case lexer.KwConst:
		return p.parseConstStatement()
	case lexer.KwHaltCompiler:
		span := p.span(p.stream.Advance())
		p.expect(lexer.LParen, "`(`")
		p.expect(lexer.RParen, "`)`")
		p.expectSemicolon()
		return &ast.HaltCompilerStatement{BaseNode: ast.BaseNode{Kind: ast.KindHaltCompilerStatement, Span: span}}
	case lexer.Ident:
		if p.stream.Peek().Kind == lexer.Colon && !IsReserved(strings.ToLower(string(tok.Value))) {
			p.stream.Advance()
			p.stream.Advance()
			return &ast.LabelStatement{BaseNode: ast.BaseNode{Kind: ast.KindLabelStatement, Span: p.span(tok)}, Name: string(tok.Value)}
		}
	}

	return p.parseExpressionStatement()
}

// isClosureLookahead reports whether `function` opens a closure expression
// (`function(` or `function &(`) rather than a named declaration, so the
// statement dispatcher can fall through to expression-statement parsing.
func isClosureLookahead(p *Parser) bool {
	n := p.stream.Peek()
	if n.Kind == lexer.LParen {
		return true
	}
	return n.Kind == lexer.Amp && p.stream.PeekNth(2).Kind == lexer.LParen
}

// isEnumDeclarationLookahead distinguishes `enum Name` from `enum` used as
// an ordinary identifier (`enum` is a soft keyword).
func isEnumDeclarationLookahead(p *Parser) bool {
	return isNameToken(p.stream.Peek().Kind)
}

func (p *Parser) expectSemicolon() {
	if p.stream.Current().Kind == lexer.CloseTag {
		return
	}
	p.expect(lexer.Semicolon, "`;`")
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	span := p.span(p.stream.Current())
	expr := p.parseExpression(LOWEST + 1)
	p.expectSemicolon()
	if expr == nil {
		return nil
	}
	return &ast.ExpressionStatement{BaseNode: ast.BaseNode{Kind: ast.KindExpressionStatement, Span: span}, Expr: expr}
}

// parseLeadingAttributes consumes zero or more `#[...]` groups preceding a
// declaration and returns them.
func (p *Parser) parseLeadingAttributes() []*ast.AttributeGroup {
	var groups []*ast.AttributeGroup
	for p.stream.Current().Kind == lexer.Attribute {
		groups = append(groups, p.parseOneAttributeGroup())
	}
	return groups
}

func (p *Parser) parseOneAttributeGroup() *ast.AttributeGroup {
	span := p.span(p.stream.Advance()) // #[
	var attrs []*ast.Attribute
	for p.stream.Current().Kind != lexer.RBracket && !p.stream.IsEOF() {
		attrSpan := p.span(p.stream.Current())
		name := p.parseQualifiedName()
		var args []*ast.Argument
		if p.stream.Current().Kind == lexer.LParen {
			args = p.parseArgumentList()
		}
		attrs = append(attrs, &ast.Attribute{BaseNode: ast.BaseNode{Kind: ast.KindAttribute, Span: attrSpan}, Name: name, Args: args})
		if p.stream.Current().Kind != lexer.Comma {
			break
		}
		p.stream.Advance()
	}
	p.expect(lexer.RBracket, "`]`")
	return &ast.AttributeGroup{BaseNode: ast.BaseNode{Kind: ast.KindAttributeGroup, Span: span}, Attributes: attrs}
}

// parseAttributeGroups is the expression-position entry point (attributes
// on a closure/arrow-function parameter or literal); the groups are parsed
// but, like the teacher's own expression-level attribute handling, not
// retained on the node since PHP attributes only have declaration-level
// reflection meaning.
func (p *Parser) parseAttributeGroups() {
	p.parseLeadingAttributes()
}

// ----------------------------------------------------------- namespaces --

func (p *Parser) parseNamespaceStatement() ast.Statement {
	span := p.span(p.stream.Advance()) // namespace
	name := ""
	if isNameToken(p.stream.Current().Kind) {
		name = p.parseQualifiedName()
	}
	if p.state.firstNamespace == nil {
		p.state.firstNamespace = &struct{ line, col int }{span.Line, span.Column}
	}
	if p.stream.Current().Kind == lexer.LBrace {
		if p.state.style == NamespaceStyleUnbraced {
			p.bag.Add(diagnostic.MixedNamespaceStyle(span, span))
		}
		if outer, ok := p.state.currentScope(); ok && outer.Kind == ScopeBracedNamespace {
			p.bag.Add(diagnostic.NestedNamespace(outer.Span, span))
		}
		p.state.style = NamespaceStyleBraced
		prevNS := p.state.currentNamespace
		p.state.currentNamespace = name
		p.state.pushScope(Scope{Kind: ScopeBracedNamespace, Name: name, Span: span})
		body := p.parseBlockBody()
		p.state.popScope()
		p.state.currentNamespace = prevNS
		return &ast.NamespaceStatement{BaseNode: ast.BaseNode{Kind: ast.KindNamespaceStatement, Span: span}, Name: name, Braced: true, Body: body}
	}
	if p.state.style == NamespaceStyleBraced {
		p.bag.Add(diagnostic.MixedNamespaceStyle(span, span))
	}
	p.state.style = NamespaceStyleUnbraced
	p.state.currentNamespace = name
	p.expectSemicolon()
	return &ast.NamespaceStatement{BaseNode: ast.BaseNode{Kind: ast.KindNamespaceStatement, Span: span}, Name: name, Braced: false}
}

func (p *Parser) parseUseStatement() ast.Statement {
	span := p.span(p.stream.Advance()) // use
	kind := ast.UseNormal
	switch p.stream.Current().Kind {
	case lexer.KwFunction:
		kind = ast.UseFunction
		p.stream.Advance()
	case lexer.KwConst:
		kind = ast.UseConst
		p.stream.Advance()
	}
	name := p.parseQualifiedName()
	if p.stream.Current().Kind == lexer.LBrace {
		p.stream.Advance()
		var items []ast.UseItem
		for p.stream.Current().Kind != lexer.RBrace && !p.stream.IsEOF() {
			itemKind := kind
			switch p.stream.Current().Kind {
			case lexer.KwFunction:
				itemKind = ast.UseFunction
				p.stream.Advance()
			case lexer.KwConst:
				itemKind = ast.UseConst
				p.stream.Advance()
			}
			itemName := p.parseQualifiedName()
			alias := ""
			if p.stream.Current().Kind == lexer.KwAs {
				p.stream.Advance()
				alias = p.expectName("an alias")
			}
			items = append(items, ast.UseItem{Name: itemName, Alias: alias, Kind: itemKind})
			if p.stream.Current().Kind != lexer.Comma {
				break
			}
			p.stream.Advance()
		}
		p.expect(lexer.RBrace, "`}`")
		p.expectSemicolon()
		return &ast.UseGroupStatement{BaseNode: ast.BaseNode{Kind: ast.KindUseGroupStatement, Span: span}, Prefix: name, Kind: kind, Items: items}
	}

	items := []ast.UseItem{p.parseUseTail(name, kind)}
	for p.stream.Current().Kind == lexer.Comma {
		p.stream.Advance()
		next := p.parseQualifiedName()
		items = append(items, p.parseUseTail(next, kind))
	}
	p.expectSemicolon()
	return &ast.UseStatement{BaseNode: ast.BaseNode{Kind: ast.KindUseStatement, Span: span}, Items: items}
}

func (p *Parser) parseUseTail(name string, kind ast.UseKind) ast.UseItem {
	alias := ""
	if p.stream.Current().Kind == lexer.KwAs {
		p.stream.Advance()
		alias = p.expectName("an alias")
	}
	return ast.UseItem{Name: name, Alias: alias, Kind: kind}
}

// --------------------------------------------------------------- blocks --

func (p *Parser) parseBlockBody() []ast.Statement {
	p.expect(lexer.LBrace, "`{`")
	var out []ast.Statement
	for p.stream.Current().Kind != lexer.RBrace && !p.stream.IsEOF() {
		before := p.stream.Mark()
		s := p.parseStatement()
		if s != nil {
			out = append(out, s)
		}
		if p.stream.Mark() == before {
			p.stream.Advance()
		}
	}
	p.expect(lexer.RBrace, "`}`")
	return out
}

// parseAltBody parses the `:` ... `endX` form shared by if/while/for/
// foreach/switch, stopping at any of enders without consuming it.
func (p *Parser) parseAltBody(enders ...lexer.Kind) []ast.Statement {
	p.expect(lexer.Colon, "`:`")
	var out []ast.Statement
	for !p.stream.IsEOF() {
		cur := p.stream.Current().Kind
		for _, e := range enders {
			if cur == e {
				return out
			}
		}
		before := p.stream.Mark()
		s := p.parseStatement()
		if s != nil {
			out = append(out, s)
		}
		if p.stream.Mark() == before {
			p.stream.Advance()
		}
	}
	return out
}

// parseBodyAuto picks between `{ ... }`, the alt `:` form (ended by any of
// altEnders, consumed here), and a bare single statement.
func (p *Parser) parseBodyAuto(altEnders ...lexer.Kind) ([]ast.Statement, bool) {
	switch p.stream.Current().Kind {
	case lexer.LBrace:
		return p.parseBlockBody(), false
	case lexer.Colon:
		body := p.parseAltBody(altEnders...)
		p.stream.Advance() // ender keyword
		p.expectSemicolon()
		return body, true
	default:
		s := p.parseStatement()
		if s == nil {
			return nil, false
		}
		return []ast.Statement{s}, false
	}
}

// ------------------------------------------------------------- if/loops --

func (p *Parser) parseIfStatement() ast.Statement {
	span := p.span(p.stream.Advance()) // if
	var branches []ast.IfBranch
	alt := false
	cond := p.parseParenExpr()
	body, isAlt := p.parseBodyAutoIf()
	alt = alt || isAlt
	branches = append(branches, ast.IfBranch{Cond: cond, Body: body})

	for p.stream.Current().Kind == lexer.KwElseif || (p.stream.Current().Kind == lexer.KwElse && p.stream.Peek().Kind == lexer.KwIf) {
		if p.stream.Current().Kind == lexer.KwElse {
			p.stream.Advance()
		}
		p.stream.Advance() // elseif/if
		c := p.parseParenExpr()
		b, isAlt := p.parseBodyAutoIf()
		alt = alt || isAlt
		branches = append(branches, ast.IfBranch{Cond: c, Body: b})
	}
	if p.stream.Current().Kind == lexer.KwElse {
		p.stream.Advance()
		b, isAlt := p.parseBodyAutoIf()
		alt = alt || isAlt
		branches = append(branches, ast.IfBranch{Body: b})
	}
	return &ast.IfStatement{BaseNode: ast.BaseNode{Kind: ast.KindIfStatement, Span: span}, Branches: branches, Alt: alt}
}

// parseBodyAutoIf is like parseBodyAuto but the alt form is ended by
// elseif/else/endif. elseif and else are left for the if-statement loop
// above; endif and its semicolon are consumed here.
func (p *Parser) parseBodyAutoIf() ([]ast.Statement, bool) {
	if p.stream.Current().Kind != lexer.Colon {
		return p.parseBodyAuto()
	}
	body := p.parseAltBody(lexer.KwElseif, lexer.KwElse, lexer.KwEndif)
	if p.stream.Current().Kind == lexer.KwEndif {
		p.stream.Advance()
		p.expectSemicolon()
	}
	return body, true
}

func (p *Parser) parseParenExpr() ast.Expression {
	p.expect(lexer.LParen, "`(`")
	e := p.parseExpression(LOWEST + 1)
	p.expect(lexer.RParen, "`)`")
	return e
}

func (p *Parser) parseWhileStatement() ast.Statement {
	span := p.span(p.stream.Advance()) // while
	cond := p.parseParenExpr()
	body, alt := p.parseBodyAuto(lexer.KwEndwhile)
	return &ast.WhileStatement{BaseNode: ast.BaseNode{Kind: ast.KindWhileStatement, Span: span}, Cond: cond, Body: body, Alt: alt}
}

func (p *Parser) parseDoWhileStatement() ast.Statement {
	span := p.span(p.stream.Advance()) // do
	body, _ := p.parseBodyAuto()
	p.expect(lexer.KwWhile, "`while`")
	cond := p.parseParenExpr()
	p.expectSemicolon()
	return &ast.DoWhileStatement{BaseNode: ast.BaseNode{Kind: ast.KindDoWhileStatement, Span: span}, Body: body, Cond: cond}
}

func (p *Parser) parseForStatement() ast.Statement {
	span := p.span(p.stream.Advance()) // for
	p.expect(lexer.LParen, "`(`")
	init := p.parseExprListUntil(lexer.Semicolon)
	p.expect(lexer.Semicolon, "`;`")
	cond := p.parseExprListUntil(lexer.Semicolon)
	p.expect(lexer.Semicolon, "`;`")
	loop := p.parseExprListUntil(lexer.RParen)
	p.expect(lexer.RParen, "`)`")
	body, alt := p.parseBodyAuto(lexer.KwEndfor)
	return &ast.ForStatement{BaseNode: ast.BaseNode{Kind: ast.KindForStatement, Span: span}, Init: init, Cond: cond, Loop: loop, Body: body, Alt: alt}
}

func (p *Parser) parseExprListUntil(end lexer.Kind) []ast.Expression {
	var out []ast.Expression
	for p.stream.Current().Kind != end && !p.stream.IsEOF() {
		out = append(out, p.parseExpression(LOWEST+1))
		if p.stream.Current().Kind != lexer.Comma {
			break
		}
		p.stream.Advance()
	}
	return out
}

func (p *Parser) parseForeachStatement() ast.Statement {
	span := p.span(p.stream.Advance()) // foreach
	p.expect(lexer.LParen, "`(`")
	subject := p.parseExpression(LOWEST + 1)
	p.expect(lexer.KwAs, "`as`")
	byRef := false
	if p.stream.Current().Kind == lexer.Amp {
		byRef = true
		p.stream.Advance()
	}
	first := p.parseExpression(LOWEST + 1)
	var key, value ast.Expression
	if p.stream.Current().Kind == lexer.DoubleArrow {
		p.stream.Advance()
		key = first
		if p.stream.Current().Kind == lexer.Amp {
			byRef = true
			p.stream.Advance()
		}
		value = p.parseExpression(LOWEST + 1)
	} else {
		value = first
	}
	p.expect(lexer.RParen, "`)`")
	body, alt := p.parseBodyAuto(lexer.KwEndforeach)
	return &ast.ForeachStatement{BaseNode: ast.BaseNode{Kind: ast.KindForeachStatement, Span: span}, Subject: subject, KeyVar: key, ValueVar: value, ByRef: byRef, Body: body, Alt: alt}
}

func (p *Parser) parseSwitchStatement() ast.Statement {
	span := p.span(p.stream.Advance()) // switch
	subject := p.parseParenExpr()
	alt := false
	if p.stream.Current().Kind == lexer.Colon {
		p.stream.Advance()
		alt = true
	} else {
		p.expect(lexer.LBrace, "`{` or `:`")
	}
	if p.stream.Current().Kind == lexer.Semicolon {
		p.stream.Advance()
	}
	var cases []*ast.SwitchCase
	closer := lexer.RBrace
	if alt {
		closer = lexer.KwEndswitch
	}
	for p.stream.Current().Kind != closer && !p.stream.IsEOF() {
		caseSpan := p.span(p.stream.Current())
		var cond ast.Expression
		switch p.stream.Current().Kind {
		case lexer.KwCase:
			p.stream.Advance()
			cond = p.parseExpression(LOWEST + 1)
		case lexer.KwDefault:
			p.stream.Advance()
		default:
			p.bag.Add(diagnostic.UnexpectedToken(p.stream.Current().Kind.String(), "`case` or `default`", caseSpan))
			p.stream.Advance()
			continue
		}
		if p.stream.Current().Kind == lexer.Colon || p.stream.Current().Kind == lexer.Semicolon {
			p.stream.Advance()
		}
		var body []ast.Statement
		for {
			cur := p.stream.Current().Kind
			if cur == lexer.KwCase || cur == lexer.KwDefault || cur == closer || p.stream.IsEOF() {
				break
			}
			before := p.stream.Mark()
			s := p.parseStatement()
			if s != nil {
				body = append(body, s)
			}
			if p.stream.Mark() == before {
				p.stream.Advance()
			}
		}
		cases = append(cases, &ast.SwitchCase{BaseNode: ast.BaseNode{Kind: ast.KindSwitchCase, Span: caseSpan}, Cond: cond, Body: body})
	}
	p.stream.Advance() // } or endswitch
	if alt {
		p.expectSemicolon()
	}
	return &ast.SwitchStatement{BaseNode: ast.BaseNode{Kind: ast.KindSwitchStatement, Span: span}, Subject: subject, Cases: cases, Alt: alt}
}

func (p *Parser) parseTryStatement() ast.Statement {
	span := p.span(p.stream.Advance()) // try
	body := p.parseBlockBody()
	var catches []*ast.CatchClause
	for p.stream.Current().Kind == lexer.KwCatch {
		catchSpan := p.span(p.stream.Advance())
		p.expect(lexer.LParen, "`(`")
		var types []string
		types = append(types, p.parseQualifiedName())
		for p.stream.Current().Kind == lexer.VBar {
			p.stream.Advance()
			types = append(types, p.parseQualifiedName())
		}
		varname := ""
		if p.stream.Current().Kind == lexer.Variable {
			varname = string(p.stream.Advance().Value[1:])
		}
		p.expect(lexer.RParen, "`)`")
		cbody := p.parseBlockBody()
		catches = append(catches, &ast.CatchClause{BaseNode: ast.BaseNode{Kind: ast.KindCatchClause, Span: catchSpan}, Types: types, Varname: varname, Body: cbody})
	}
	var finally []ast.Statement
	hasFinally := false
	if p.stream.Current().Kind == lexer.KwFinally {
		p.stream.Advance()
		finally = p.parseBlockBody()
		hasFinally = true
	}
	if len(catches) == 0 && !hasFinally {
		p.bag.Add(diagnostic.TryWithoutCatchOrFinally(span))
	}
	return &ast.TryStatement{BaseNode: ast.BaseNode{Kind: ast.KindTryStatement, Span: span}, Body: body, Catches: catches, Finally: finally}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	span := p.span(p.stream.Advance()) // return
	var val ast.Expression
	if p.stream.Current().Kind != lexer.Semicolon && p.stream.Current().Kind != lexer.CloseTag {
		val = p.parseExpression(LOWEST + 1)
	}
	p.expectSemicolon()
	return &ast.ReturnStatement{BaseNode: ast.BaseNode{Kind: ast.KindReturnStatement, Span: span}, Value: val}
}

func (p *Parser) parseBreakOrContinue(isBreak bool) ast.Statement {
	span := p.span(p.stream.Advance())
	var level ast.Expression
	if p.stream.Current().Kind != lexer.Semicolon && p.stream.Current().Kind != lexer.CloseTag {
		level = p.parseExpression(LOWEST + 1)
	}
	p.expectSemicolon()
	if isBreak {
		return &ast.BreakStatement{BaseNode: ast.BaseNode{Kind: ast.KindBreakStatement, Span: span}, Level: level}
	}
	return &ast.ContinueStatement{BaseNode: ast.BaseNode{Kind: ast.KindContinueStatement, Span: span}, Level: level}
}

func (p *Parser) parseGlobalStatement() ast.Statement {
	span := p.span(p.stream.Advance())
	var names []string
	for {
		tok := p.expect(lexer.Variable, "a variable")
		if len(tok.Value) > 0 {
			names = append(names, string(tok.Value[1:]))
		}
		if p.stream.Current().Kind != lexer.Comma {
			break
		}
		p.stream.Advance()
	}
	p.expectSemicolon()
	return &ast.GlobalStatement{BaseNode: ast.BaseNode{Kind: ast.KindGlobalStatement, Span: span}, Names: names}
}

func (p *Parser) parseStaticVarStatement() ast.Statement {
	span := p.span(p.stream.Advance()) // static
	var vars []ast.StaticVar
	for {
		tok := p.expect(lexer.Variable, "a variable")
		name := ""
		if len(tok.Value) > 0 {
			name = string(tok.Value[1:])
		}
		var def ast.Expression
		if p.stream.Current().Kind == lexer.Eq {
			p.stream.Advance()
			def = p.parseExpression(LOWEST + 1)
		}
		vars = append(vars, ast.StaticVar{Name: name, Default: def})
		if p.stream.Current().Kind != lexer.Comma {
			break
		}
		p.stream.Advance()
	}
	p.expectSemicolon()
	return &ast.StaticVarStatement{BaseNode: ast.BaseNode{Kind: ast.KindStaticVarStatement, Span: span}, Vars: vars}
}

func (p *Parser) parseEchoStatement() ast.Statement {
	span := p.span(p.stream.Advance())
	var values []ast.Expression
	for {
		values = append(values, p.parseExpression(LOWEST+1))
		if p.stream.Current().Kind != lexer.Comma {
			break
		}
		p.stream.Advance()
	}
	p.expectSemicolon()
	return &ast.EchoStatement{BaseNode: ast.BaseNode{Kind: ast.KindEchoStatement, Span: span}, Values: values}
}

func (p *Parser) parseDeclareStatement() ast.Statement {
	span := p.span(p.stream.Advance())
	p.expect(lexer.LParen, "`(`")
	var directives []ast.DeclareDirective
	for {
		name := p.expectName("a directive name")
		p.expect(lexer.Eq, "`=`")
		value := p.parseExpression(LOWEST + 1)
		directives = append(directives, ast.DeclareDirective{Name: name, Value: value})
		if p.stream.Current().Kind != lexer.Comma {
			break
		}
		p.stream.Advance()
	}
	p.expect(lexer.RParen, "`)`")
	var body []ast.Statement
	switch p.stream.Current().Kind {
	case lexer.LBrace:
		body = p.parseBlockBody()
	case lexer.Colon:
		body = p.parseAltBody(lexer.KwEnddeclare)
		p.stream.Advance()
		p.expectSemicolon()
	default:
		p.expectSemicolon()
	}
	return &ast.DeclareStatement{BaseNode: ast.BaseNode{Kind: ast.KindDeclareStatement, Span: span}, Directives: directives, Body: body}
}

func (p *Parser) parseConstStatement() ast.Statement {
	span := p.span(p.stream.Advance())
	var decls []ast.ConstDeclarator
	for {
		name := p.expectNonReservedName("a constant name", "constant")
		p.expect(lexer.Eq, "`=`")
		value := p.parseExpression(LOWEST + 1)
		decls = append(decls, ast.ConstDeclarator{Name: name, Value: value})
		if p.stream.Current().Kind != lexer.Comma {
			break
		}
		p.stream.Advance()
	}
	p.expectSemicolon()
	return &ast.ConstStatement{BaseNode: ast.BaseNode{Kind: ast.KindConstStatement, Span: span}, Declarators: decls}
}

// ---------------------------------------------------------------- funcs --

func (p *Parser) parseParameterList() []*ast.Parameter {
	p.expect(lexer.LParen, "`(`")
	var params []*ast.Parameter
	for p.stream.Current().Kind != lexer.RParen && !p.stream.IsEOF() {
		pSpan := p.span(p.stream.Current())
		attrs := p.parseLeadingAttributes()
		var promotion *ast.ModifierGroup
		if isPromotionModifier(p.stream.Current().Kind) {
			promotion = p.parseModifiers()
		}
		var typ ast.Type
		if !isParamEnd(p.stream.Current().Kind) {
			typ = p.parseType()
		}
		byRef := false
		if p.stream.Current().Kind == lexer.Amp {
			byRef = true
			p.stream.Advance()
		}
		variadic := false
		if p.stream.Current().Kind == lexer.Ellipsis {
			variadic = true
			p.stream.Advance()
		}
		nameTok := p.expect(lexer.Variable, "a parameter name")
		name := ""
		if len(nameTok.Value) > 0 {
			name = string(nameTok.Value[1:])
		}
		var def ast.Expression
		if p.stream.Current().Kind == lexer.Eq {
			p.stream.Advance()
			def = p.parseExpression(LOWEST + 1)
		}
		if variadic && promotion != nil {
			p.bag.Add(diagnostic.VariadicPromotedParameter(promotion.Span, pSpan))
		}
		if promotion != nil {
			validateModifiers(promotion, memberPromotedProperty, p.bag)
			if st, ok := typ.(*ast.SimpleType); ok && st.SimpleKind == ast.KSimpleCallable {
				p.bag.Add(diagnostic.CallablePromotedParameter(st.Span, pSpan))
			}
		}
		params = append(params, &ast.Parameter{
			BaseNode: ast.BaseNode{Kind: ast.KindParameter, Span: pSpan}, Name: name, Type: typ,
			Default: def, ByRef: byRef, Variadic: variadic, Promotion: promotion, Attributes: attrs,
		})
		if p.stream.Current().Kind != lexer.Comma {
			break
		}
		p.stream.Advance()
	}
	p.expect(lexer.RParen, "`)`")
	return params
}

func isPromotionModifier(k lexer.Kind) bool {
	switch k {
	case lexer.KwPublic, lexer.KwProtected, lexer.KwPrivate, lexer.KwReadonly:
		return true
	}
	return false
}

func isParamEnd(k lexer.Kind) bool {
	switch k {
	case lexer.Variable, lexer.Amp, lexer.Ellipsis:
		return true
	}
	return false
}

func (p *Parser) parseFunctionDeclaration(attrs []*ast.AttributeGroup, doc string) ast.Statement {
	span := p.span(p.stream.Advance()) // function
	byRef := false
	if p.stream.Current().Kind == lexer.Amp {
		byRef = true
		p.stream.Advance()
	}
	name := p.expectNonReservedName("a function name", "function")
	params := p.parseParameterList()
	var ret ast.Type
	if p.stream.Current().Kind == lexer.Colon {
		p.stream.Advance()
		ret = p.parseType()
	}
	p.state.pushScope(Scope{Kind: ScopeMethod, Name: name})
	body := p.parseBlockBody()
	p.state.popScope()
	return &ast.FunctionDeclaration{
		BaseNode: ast.BaseNode{Kind: ast.KindFunctionDeclaration, Span: span}, Name: p.state.qualified(name),
		ByRef: byRef, Params: params, ReturnType: ret, Body: body, Attributes: attrs, DocComment: doc,
	}
}

func (p *Parser) parseModifiers() *ast.ModifierGroup {
	span := p.span(p.stream.Current())
	var entries []ast.ModifierEntry
	for {
		m, ok := modifierFor(p.stream.Current().Kind)
		if !ok {
			break
		}
		entries = append(entries, ast.ModifierEntry{Modifier: m, Span: p.span(p.stream.Current())})
		p.stream.Advance()
	}
	return &ast.ModifierGroup{BaseNode: ast.BaseNode{Kind: ast.KindModifierGroup, Span: span}, Entries: entries}
}

func modifierFor(k lexer.Kind) (ast.Modifier, bool) {
	switch k {
	case lexer.KwPublic:
		return ast.ModPublic, true
	case lexer.KwProtected:
		return ast.ModProtected, true
	case lexer.KwPrivate:
		return ast.ModPrivate, true
	case lexer.KwStatic:
		return ast.ModStatic, true
	case lexer.KwReadonly:
		return ast.ModReadonly, true
	case lexer.KwFinal:
		return ast.ModFinal, true
	case lexer.KwAbstract:
		return ast.ModAbstract, true
	}
	return 0, false
}

// -------------------------------------------------------- class bodies --

func (p *Parser) parseClassDeclaration(attrs []*ast.AttributeGroup, doc string, mods *ast.ModifierGroup) ast.Statement {
	span := p.span(p.stream.Advance()) // class
	if mods == nil {
		mods = &ast.ModifierGroup{BaseNode: ast.BaseNode{Kind: ast.KindModifierGroup, Span: span}}
	}
	validateModifiers(mods, memberClass, p.bag)
	name := p.expectNonReservedName("a class name", "class")
	extends := ""
	if p.stream.Current().Kind == lexer.KwExtends {
		p.stream.Advance()
		extends = p.parseQualifiedName()
	}
	var implements []string
	if p.stream.Current().Kind == lexer.KwImplements {
		p.stream.Advance()
		implements = p.parseNameList()
	}
	p.state.pushScope(Scope{Kind: ScopeClass, Name: name, Flags: mods, HasParent: extends != ""})
	members := p.parseClassBody(memberClassConst, memberProperty, memberMethod)
	p.state.popScope()
	return &ast.ClassDeclaration{
		BaseNode: ast.BaseNode{Kind: ast.KindClassDeclaration, Span: span}, Name: p.state.qualified(name),
		Modifiers: mods, Extends: extends, Implements: implements, Members: members, Attributes: attrs, DocComment: doc,
	}
}

func (p *Parser) parseNameList() []string {
	var out []string
	out = append(out, p.parseQualifiedName())
	for p.stream.Current().Kind == lexer.Comma {
		p.stream.Advance()
		out = append(out, p.parseQualifiedName())
	}
	return out
}

func (p *Parser) parseInterfaceDeclaration(doc string) ast.Statement {
	span := p.span(p.stream.Advance()) // interface
	name := p.expectNonReservedName("an interface name", "interface")
	var extends []string
	if p.stream.Current().Kind == lexer.KwExtends {
		p.stream.Advance()
		extends = p.parseNameList()
	}
	p.state.pushScope(Scope{Kind: ScopeInterface, Name: name})
	members := p.parseClassBody(memberInterfaceConst, memberProperty, memberInterfaceMethod)
	p.state.popScope()
	return &ast.InterfaceDeclaration{BaseNode: ast.BaseNode{Kind: ast.KindInterfaceDeclaration, Span: span}, Name: p.state.qualified(name), Extends: extends, Members: members}
}

func (p *Parser) parseTraitDeclaration(doc string) ast.Statement {
	span := p.span(p.stream.Advance()) // trait
	name := p.expectNonReservedName("a trait name", "trait")
	p.state.pushScope(Scope{Kind: ScopeTrait, Name: name})
	members := p.parseClassBody(memberClassConst, memberProperty, memberMethod)
	p.state.popScope()
	return &ast.TraitDeclaration{BaseNode: ast.BaseNode{Kind: ast.KindTraitDeclaration, Span: span}, Name: p.state.qualified(name), Members: members}
}

func (p *Parser) parseEnumDeclaration(attrs []*ast.AttributeGroup, doc string) ast.Statement {
	span := p.span(p.stream.Advance()) // enum
	name := p.expectNonReservedName("an enum name", "enum")
	var backed ast.Type
	if p.stream.Current().Kind == lexer.Colon {
		p.stream.Advance()
		backed = p.parseType()
	}
	var implements []string
	if p.stream.Current().Kind == lexer.KwImplements {
		p.stream.Advance()
		implements = p.parseNameList()
	}
	p.state.pushScope(Scope{Kind: ScopeEnum, Name: name, Backed: backed != nil})
	members := p.parseClassBody(memberClassConst, memberProperty, memberEnumMethod)
	p.state.popScope()
	for _, m := range members {
		if c, ok := m.(*ast.EnumCase); ok {
			if backed != nil && c.Value == nil {
				p.bag.Add(diagnostic.BackedEnumCaseWithoutValue(name, c.Span, span))
			}
			if backed == nil && c.Value != nil {
				p.bag.Add(diagnostic.UnitEnumCaseWithValue(name, c.Span, span))
			}
		}
	}
	return &ast.EnumDeclaration{BaseNode: ast.BaseNode{Kind: ast.KindEnumDeclaration, Span: span}, Name: p.state.qualified(name), BackedType: backed, Implements: implements, Members: members}
}

// parseClassBody parses the `{ ... }` member list shared by
// class/interface/trait/enum declarations. constKind/propKind/methodKind
// select which modifier-validation table applies, since interfaces and
// enums allow a narrower set than ordinary classes.
func (p *Parser) parseClassBody(constKind, propKind, methodKind memberKind) []ast.Statement {
	p.expect(lexer.LBrace, "`{`")
	var members []ast.Statement
	for p.stream.Current().Kind != lexer.RBrace && !p.stream.IsEOF() {
		before := p.stream.Mark()
		m := p.parseClassMember(constKind, propKind, methodKind)
		if m != nil {
			members = append(members, m)
		}
		if p.stream.Mark() == before {
			p.stream.Advance()
		}
	}
	p.expect(lexer.RBrace, "`}`")
	return members
}

func (p *Parser) parseClassMember(constKind, propKind, methodKind memberKind) ast.Statement {
	doc := p.stream.TakeDoc()
	attrs := p.parseLeadingAttributes()
	if len(attrs) > 0 && p.stream.IsEOF() {
		p.bag.Add(diagnostic.MissingDeclarationAfterAttributes(p.span(p.stream.Current())))
		return nil
	}

	if p.stream.Current().Kind == lexer.KwUse {
		return p.parseTraitUseStatement()
	}
	if p.stream.Current().Kind == lexer.KwCase {
		return p.parseEnumCase()
	}

	mods := p.parseModifiers()
	if p.stream.Current().Kind == lexer.KwConst {
		return p.parseClassConstDeclaration(attrs, mods, constKind)
	}
	if p.stream.Current().Kind == lexer.KwFunction {
		return p.parseMethodDeclaration(attrs, doc, mods, methodKind)
	}
	if p.stream.Current().Kind == lexer.KwVar {
		p.stream.Advance()
		return p.parsePropertyDeclaration(attrs, doc, mods, propKind)
	}
	return p.parsePropertyDeclaration(attrs, doc, mods, propKind)
}

func (p *Parser) parseTraitUseStatement() ast.Statement {
	span := p.span(p.stream.Advance()) // use
	traits := p.parseNameList()
	var adaptations []ast.TraitUseAdaptation
	if p.stream.Current().Kind == lexer.LBrace {
		p.stream.Advance()
		for p.stream.Current().Kind != lexer.RBrace && !p.stream.IsEOF() {
			adaptations = append(adaptations, p.parseTraitAdaptation())
		}
		p.expect(lexer.RBrace, "`}`")
	} else {
		p.expectSemicolon()
	}
	return &ast.TraitUseStatement{BaseNode: ast.BaseNode{Kind: ast.KindTraitUseStatement, Span: span}, Traits: traits, Adaptations: adaptations}
}

func (p *Parser) parseTraitAdaptation() ast.TraitUseAdaptation {
	first := p.parseQualifiedName()
	trait, method := "", first
	if p.stream.Current().Kind == lexer.DoubleColon {
		p.stream.Advance()
		trait = first
		method = p.expectName("a method name")
	}
	var adapt ast.TraitUseAdaptation
	adapt.Trait, adapt.Method = trait, method
	switch p.stream.Current().Kind {
	case lexer.KwInsteadof:
		p.stream.Advance()
		adapt.InsteadofOf = p.parseNameList()
	case lexer.KwAs:
		p.stream.Advance()
		if m, ok := modifierFor(p.stream.Current().Kind); ok {
			adapt.AliasModifier = m
			adapt.HasModifier = true
			p.stream.Advance()
		}
		if isNameToken(p.stream.Current().Kind) {
			adapt.AliasName = p.expectName("an alias")
		}
	}
	p.expectSemicolon()
	return adapt
}

func (p *Parser) parseEnumCase() ast.Statement {
	span := p.span(p.stream.Advance()) // case
	name := p.expectName("a case name")
	var value ast.Expression
	if p.stream.Current().Kind == lexer.Eq {
		p.stream.Advance()
		value = p.parseExpression(LOWEST + 1)
	}
	p.expectSemicolon()
	return &ast.EnumCase{BaseNode: ast.BaseNode{Kind: ast.KindEnumCase, Span: span}, Name: name, Value: value}
}

func (p *Parser) parseClassConstDeclaration(attrs []*ast.AttributeGroup, mods *ast.ModifierGroup, kind memberKind) ast.Statement {
	span := p.span(p.stream.Advance()) // const
	validateModifiers(mods, kind, p.bag)
	var typ ast.Type
	if !isConstNameNext(p) {
		typ = p.parseType()
	}
	var names []string
	var values []ast.Expression
	for {
		names = append(names, p.expectNonReservedName("a constant name", "constant"))
		p.expect(lexer.Eq, "`=`")
		values = append(values, p.parseExpression(LOWEST+1))
		if p.stream.Current().Kind != lexer.Comma {
			break
		}
		p.stream.Advance()
	}
	p.expectSemicolon()
	return &ast.ClassConstDeclaration{BaseNode: ast.BaseNode{Kind: ast.KindClassConstDeclaration, Span: span}, Modifiers: mods, Type: typ, Names: names, Values: values}
}

// isConstNameNext reports whether the current name token is immediately
// followed by `=`, meaning there is no type between `const` and the name.
func isConstNameNext(p *Parser) bool {
	return isNameToken(p.stream.Current().Kind) && p.stream.Peek().Kind == lexer.Eq
}

func (p *Parser) parseMethodDeclaration(attrs []*ast.AttributeGroup, doc string, mods *ast.ModifierGroup, kind memberKind) ast.Statement {
	span := p.span(p.stream.Advance()) // function
	validateModifiers(mods, kind, p.bag)
	byRef := false
	if p.stream.Current().Kind == lexer.Amp {
		byRef = true
		p.stream.Advance()
	}
	name := p.expectName("a method name")
	params := p.parseParameterList()
	var ret ast.Type
	if p.stream.Current().Kind == lexer.Colon {
		p.stream.Advance()
		ret = p.parseType()
	}
	if sc, ok := p.state.currentScope(); ok && sc.Kind == ScopeEnum {
		switch {
		case strings.EqualFold(name, "__construct"):
			p.bag.Add(diagnostic.ConstructorOnEnum(sc.Name, span, span))
		case strings.EqualFold(name, "__destruct") || strings.EqualFold(name, "__clone"):
			p.bag.Add(diagnostic.MagicMethodOnEnum(sc.Name, name, span, span))
		}
	}
	var body []ast.Statement
	if p.stream.Current().Kind == lexer.LBrace {
		if mods.Has(ast.ModAbstract) {
			if sc, ok := p.state.currentScope(); ok && sc.Kind == ScopeClass && !sc.Flags.Has(ast.ModAbstract) {
				p.bag.Add(diagnostic.AbstractMethodOnNonAbstractClass(sc.Name, span, span))
			}
		}
		p.state.pushScope(Scope{Kind: ScopeMethod, Name: name})
		body = p.parseBlockBody()
		p.state.popScope()
	} else {
		p.expectSemicolon()
	}
	return &ast.MethodDeclaration{
		BaseNode: ast.BaseNode{Kind: ast.KindMethodDeclaration, Span: span}, Name: name, Modifiers: mods,
		ByRef: byRef, Params: params, ReturnType: ret, Body: body, Attributes: attrs, DocComment: doc,
	}
}

func (p *Parser) parsePropertyDeclaration(attrs []*ast.AttributeGroup, doc string, mods *ast.ModifierGroup, kind memberKind) ast.Statement {
	span := p.span(p.stream.Current())
	validateModifiers(mods, kind, p.bag)
	var typ ast.Type
	if p.stream.Current().Kind != lexer.Variable {
		typ = p.parseType()
	}
	if st, ok := typ.(*ast.SimpleType); ok {
		switch st.SimpleKind {
		case ast.KSimpleVoid, ast.KSimpleNever, ast.KSimpleCallable:
			p.bag.Add(diagnostic.PropertyTypeNotAllowed(typeString(st), st.Span))
		}
	}
	var names []string
	var defaults []ast.Expression
	for {
		tok := p.expect(lexer.Variable, "a property name")
		name := ""
		if len(tok.Value) > 0 {
			name = string(tok.Value[1:])
		}
		names = append(names, name)
		var def ast.Expression
		if p.stream.Current().Kind == lexer.Eq {
			p.stream.Advance()
			def = p.parseExpression(LOWEST + 1)
			if mods.Has(ast.ModReadonly) {
				p.bag.Add(diagnostic.ReadonlyPropertyWithDefault(span, def.GetSpan()))
			}
		}
		defaults = append(defaults, def)
		if p.stream.Current().Kind != lexer.Comma {
			break
		}
		p.stream.Advance()
	}
	if mods.Has(ast.ModReadonly) && typ == nil {
		p.bag.Add(diagnostic.ReadonlyPropertyWithoutType(span, span))
	}
	p.expectSemicolon()
	return &ast.PropertyDeclaration{
		BaseNode: ast.BaseNode{Kind: ast.KindPropertyDeclaration, Span: span}, Modifiers: mods, Type: typ,
		Names: names, Defaults: defaults, Attributes: attrs, DocComment: doc,
	}
}
