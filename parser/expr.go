package parser

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/gophlex/phpparser/ast"
	"github.com/gophlex/phpparser/diagnostic"
	"github.com/gophlex/phpparser/lexer"
	"github.com/gophlex/phpparser/source"
)

// parseExpression is the Pratt loop spec.md §4.5 describes: parse a prefix
// with the operator's prefix binding, then repeatedly fold in infix/postfix
// operators whose left binding meets min.
func (p *Parser) parseExpression(min Precedence) ast.Expression {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}
	return p.parseInfixLoop(left, min)
}

func (p *Parser) parseInfixLoop(left ast.Expression, min Precedence) ast.Expression {
	for {
		tok := p.stream.Current()
		if tok.Kind == lexer.Semicolon || tok.Kind == lexer.EOF || tok.Kind == lexer.CloseTag {
			return left
		}
		prec := precedenceOf(tok.Kind)
		if prec < min {
			return left
		}
		switch tok.Kind {
		case lexer.Arrow, lexer.NullsafeArrow:
			left = p.parsePropertyOrMethod(left, tok.Kind == lexer.NullsafeArrow)
		case lexer.DoubleColon:
			left = p.parseStaticAccess(left)
		case lexer.LParen:
			left = p.parseCall(left)
		case lexer.LBracket:
			left = p.parseIndex(left)
		case lexer.Inc, lexer.Dec:
			op := ast.OpPostInc
			if tok.Kind == lexer.Dec {
				op = ast.OpPostDec
			}
			p.stream.Advance()
			left = &ast.IncDecExpr{BaseNode: ast.BaseNode{Kind: ast.KindIncDecExpr, Span: left.GetSpan()}, Op: op, Operand: left}
		case lexer.KwInstanceof:
			p.stream.Advance()
			class := p.parsePrefix()
			left = &ast.InstanceofExpr{BaseNode: ast.BaseNode{Kind: ast.KindInstanceofExpr, Span: left.GetSpan()}, Subject: left, Class: class}
		case lexer.Question:
			left = p.parseTernary(left)
		case lexer.Eq:
			left = p.parseAssignment(left, tok)
		default:
			if op, ok := assignOps[tok.Kind]; ok {
				p.stream.Advance()
				right := p.parseExpression(prec)
				left = &ast.AssignExpr{BaseNode: ast.BaseNode{Kind: ast.KindAssignExpr, Span: left.GetSpan()}, Op: op, Target: left, Value: right}
				continue
			}
			if bop, ok := binaryOps[tok.Kind]; ok {
				p.stream.Advance()
				nextMin := prec + 1
				if rightAssoc[tok.Kind] {
					nextMin = prec
				}
				right := p.parseExpression(nextMin)
				if next := p.stream.Current(); nonAssoc[tok.Kind] && nonAssoc[next.Kind] && precedenceOf(next.Kind) == prec {
					p.bag.Add(diagnostic.UnexpectedToken(next.Kind.String(), "parentheses around the chained comparison", p.span(next)))
				}
				left = &ast.BinaryExpr{BaseNode: ast.BaseNode{Kind: ast.KindBinaryExpr, Span: left.GetSpan()}, Op: bop, Left: left, Right: right}
				continue
			}
			return left
		}
	}
}

var assignOps = map[lexer.Kind]ast.AssignOp{
	lexer.PlusEqual: ast.AssignAdd, lexer.MinusEqual: ast.AssignSub,
	lexer.MulEqual: ast.AssignMul, lexer.DivEqual: ast.AssignDiv,
	lexer.ModEqual: ast.AssignMod, lexer.PowEqual: ast.AssignPow,
	lexer.ConcatEqual: ast.AssignConcat, lexer.ShlEqual: ast.AssignShl,
	lexer.ShrEqual: ast.AssignShr, lexer.AndEqual: ast.AssignBitAnd,
	lexer.OrEqual: ast.AssignBitOr, lexer.XorEqual: ast.AssignBitXor,
	lexer.CoalesceEqual: ast.AssignCoalesce,
}

var binaryOps = map[lexer.Kind]ast.BinaryOp{
	lexer.Plus: ast.OpAdd, lexer.Minus: ast.OpSub, lexer.Star: ast.OpMul,
	lexer.Slash: ast.OpDiv, lexer.Percent: ast.OpMod, lexer.Pow: ast.OpPow,
	lexer.Dot: ast.OpConcat, lexer.Shl: ast.OpShl, lexer.Shr: ast.OpShr,
	lexer.Amp: ast.OpBitAnd, lexer.VBar: ast.OpBitOr, lexer.Caret: ast.OpBitXor,
	lexer.BooleanAnd: ast.OpBooleanAnd, lexer.BooleanOr: ast.OpBooleanOr,
	lexer.KwLogicalAnd: ast.OpLogicalAnd, lexer.KwLogicalOr: ast.OpLogicalOr,
	lexer.KwLogicalXor: ast.OpLogicalXor,
	lexer.IsEqual: ast.OpEqual, lexer.IsNotEqual: ast.OpNotEqual,
	lexer.IsIdentical: ast.OpIdentical, lexer.IsNotIdentical: ast.OpNotIdentical,
	lexer.Lt: ast.OpLess, lexer.LessEqual: ast.OpLessEqual,
	lexer.Gt: ast.OpGreater, lexer.GreaterEqual: ast.OpGreaterEqual,
	lexer.Spaceship: ast.OpSpaceship, lexer.Coalesce: ast.OpCoalesce,
}

func (p *Parser) parseAssignment(left ast.Expression, tok lexer.Token) ast.Expression {
	p.stream.Advance() // =
	if p.stream.Current().Kind == lexer.Amp {
		p.stream.Advance()
		right := p.parseExpression(PrecAssignment)
		if right != nil && !isReferencable(right) {
			p.bag.Add(diagnostic.NotReferencable(right.GetSpan()))
		}
		return &ast.AssignRefExpr{BaseNode: ast.BaseNode{Kind: ast.KindAssignRefExpr, Span: left.GetSpan()}, Target: left, Value: right}
	}
	if arr, ok := left.(*ast.ArrayLiteral); ok && arr.ShortSyntax {
		left = &ast.ListExpression{BaseNode: ast.BaseNode{Kind: ast.KindListExpression, Span: arr.Span}, Items: arr.Items}
	}
	right := p.parseExpression(PrecAssignment)
	return &ast.AssignExpr{BaseNode: ast.BaseNode{Kind: ast.KindAssignExpr, Span: left.GetSpan()}, Op: ast.AssignPlain, Target: left, Value: right}
}

// isReferencable reports whether an expression denotes a storage location
// PHP can bind a reference to, rather than a transient value. Mirrors the
// set `=&` accepts on its right-hand side: variables, array/property
// accesses, and calls/news (PHP allows `$a =& new Foo()` and `$a =&
// func()`, treating the returned value's temporary as referencable).
func isReferencable(e ast.Expression) bool {
	switch e.GetKind() {
	case ast.KindVariable, ast.KindVariableVariable, ast.KindIndexExpr,
		ast.KindPropertyFetchExpr, ast.KindNullsafePropertyFetchExpr,
		ast.KindStaticPropertyFetchExpr, ast.KindCallExpr, ast.KindMethodCallExpr,
		ast.KindNullsafeMethodCallExpr, ast.KindStaticCallExpr, ast.KindNewExpr,
		ast.KindAnonClassExpr:
		return true
	}
	return false
}

func (p *Parser) parseTernary(cond ast.Expression) ast.Expression {
	qSpan := p.span(p.stream.Advance()) // ?
	if p.stream.Current().Kind == lexer.Colon {
		p.stream.Advance()
		elseExpr := p.parseExpression(PrecTernary)
		return &ast.TernaryExpr{BaseNode: ast.BaseNode{Kind: ast.KindTernaryExpr, Span: qSpan}, Cond: cond, Else: elseExpr}
	}
	then := p.parseExpression(LOWEST + 1)
	p.expect(lexer.Colon, "`:`")
	elseExpr := p.parseExpression(PrecTernary)
	return &ast.TernaryExpr{BaseNode: ast.BaseNode{Kind: ast.KindTernaryExpr, Span: qSpan}, Cond: cond, Then: then, Else: elseExpr}
}

// parsePrefix dispatches on the current token for the operator's prefix
// binding: unary operators and every expression-opening form spec.md §4.5
// lists.
func (p *Parser) parsePrefix() ast.Expression {
	tok := p.stream.Current()
	span := p.span(tok)

	switch tok.Kind {
	case lexer.Int:
		p.stream.Advance()
		if v, ok := parseIntLiteral(tok.Value); ok {
			return &ast.IntLiteral{BaseNode: ast.BaseNode{Kind: ast.KindIntLiteral, Span: span}, Raw: tok.Value, Value: v}
		}
		return &ast.FloatLiteral{BaseNode: ast.BaseNode{Kind: ast.KindFloatLiteral, Span: span}, Raw: tok.Value, Value: floatFromIntLiteral(tok.Value)}
	case lexer.Float:
		p.stream.Advance()
		v, _ := strconv.ParseFloat(strings.ReplaceAll(string(tok.Value), "_", ""), 64)
		return &ast.FloatLiteral{BaseNode: ast.BaseNode{Kind: ast.KindFloatLiteral, Span: span}, Raw: tok.Value, Value: v}
	case lexer.StringLiteral:
		p.stream.Advance()
		return &ast.StringLiteral{BaseNode: ast.BaseNode{Kind: ast.KindStringLiteral, Span: span}, Value: unescapeSingleQuoted(tok.Value)}
	case lexer.Variable:
		p.stream.Advance()
		return &ast.Variable{BaseNode: ast.BaseNode{Kind: ast.KindVariable, Span: span}, Name: string(tok.Value[1:])}
	case lexer.Dollar:
		return p.parseVariableVariable()
	case lexer.KwNull, lexer.KwTrue, lexer.KwFalse:
		p.stream.Advance()
		return &ast.NameExpr{BaseNode: ast.BaseNode{Kind: ast.KindNameExpr, Span: span}, Name: string(tok.Value)}
	case lexer.KwLineC, lexer.KwFileC, lexer.KwDirC, lexer.KwFuncC, lexer.KwClassC, lexer.KwMethodC, lexer.KwTraitC, lexer.KwNsC:
		p.stream.Advance()
		return &ast.MagicConstExpr{BaseNode: ast.BaseNode{Kind: ast.KindMagicConstExpr, Span: span}, Name: string(tok.Value)}
	case lexer.Ident, lexer.QualifiedIdent, lexer.FullyQualifiedIdent, lexer.RelativeIdent, lexer.NsSeparator:
		name := p.parseQualifiedName()
		return &ast.NameExpr{BaseNode: ast.BaseNode{Kind: ast.KindNameExpr, Span: span}, Name: name,
			Qualified: strings.Contains(name, "\\"), FullyQualified: tok.Kind == lexer.FullyQualifiedIdent, Relative: tok.Kind == lexer.RelativeIdent}
	case lexer.KwSelf, lexer.KwStatic, lexer.KwParent:
		p.stream.Advance()
		return &ast.NameExpr{BaseNode: ast.BaseNode{Kind: ast.KindNameExpr, Span: span}, Name: string(tok.Value)}
	case lexer.Bang:
		p.stream.Advance()
		return &ast.UnaryExpr{BaseNode: ast.BaseNode{Kind: ast.KindUnaryExpr, Span: span}, Op: ast.OpBooleanNot, Operand: p.parseExpression(PrecInstanceof)}
	case lexer.Tilde:
		p.stream.Advance()
		return &ast.UnaryExpr{BaseNode: ast.BaseNode{Kind: ast.KindUnaryExpr, Span: span}, Op: ast.OpBitNot, Operand: p.parseExpression(PrecUnary)}
	case lexer.Plus:
		p.stream.Advance()
		return &ast.UnaryExpr{BaseNode: ast.BaseNode{Kind: ast.KindUnaryExpr, Span: span}, Op: ast.OpUnaryPlus, Operand: p.parseExpression(PrecUnary)}
	case lexer.Minus:
		p.stream.Advance()
		return &ast.UnaryExpr{BaseNode: ast.BaseNode{Kind: ast.KindUnaryExpr, Span: span}, Op: ast.OpUnaryMinus, Operand: p.parseExpression(PrecUnary)}
	case lexer.At:
		p.stream.Advance()
		return &ast.ErrorSuppressExpr{BaseNode: ast.BaseNode{Kind: ast.KindErrorSuppressExpr, Span: span}, Operand: p.parseExpression(PrecUnary)}
	case lexer.Inc, lexer.Dec:
		p.stream.Advance()
		op := ast.OpPreInc
		if tok.Kind == lexer.Dec {
			op = ast.OpPreDec
		}
		return &ast.IncDecExpr{BaseNode: ast.BaseNode{Kind: ast.KindIncDecExpr, Span: span}, Op: op, Operand: p.parseExpression(PrecUnary)}
	case lexer.IntCast, lexer.DoubleCast, lexer.StringCast, lexer.ArrayCast, lexer.ObjectCast, lexer.BoolCast, lexer.UnsetCast:
		p.stream.Advance()
		return &ast.CastExpr{BaseNode: ast.BaseNode{Kind: ast.KindCastExpr, Span: span}, Cast: castKinds[tok.Kind], Operand: p.parseExpression(PrecUnary)}
	case lexer.KwClone:
		p.stream.Advance()
		return &ast.CloneExpr{BaseNode: ast.BaseNode{Kind: ast.KindCloneExpr, Span: span}, Operand: p.parseExpression(PrecNewClone)}
	case lexer.KwNew:
		return p.parseNew()
	case lexer.KwPrint:
		p.stream.Advance()
		return &ast.PrintExpr{BaseNode: ast.BaseNode{Kind: ast.KindPrintExpr, Span: span}, Operand: p.parseExpression(PrecPrint)}
	case lexer.KwThrow:
		p.stream.Advance()
		return &ast.ThrowExpr{BaseNode: ast.BaseNode{Kind: ast.KindThrowExpr, Span: span}, Operand: p.parseExpression(LOWEST + 1)}
	case lexer.KwYield:
		return p.parseYield()
	case lexer.KwInclude, lexer.KwIncludeOnce, lexer.KwRequire, lexer.KwRequireOnce, lexer.KwEval:
		p.stream.Advance()
		return &ast.IncludeExpr{BaseNode: ast.BaseNode{Kind: ast.KindIncludeExpr, Span: span}, Form: includeKinds[tok.Kind], Operand: p.parseExpression(LOWEST + 1)}
	case lexer.KwEmpty:
		p.stream.Advance()
		p.expect(lexer.LParen, "`(`")
		inner := p.parseExpression(LOWEST + 1)
		p.expect(lexer.RParen, "`)`")
		return &ast.EmptyExpr{BaseNode: ast.BaseNode{Kind: ast.KindEmptyExpr, Span: span}, Operand: inner}
	case lexer.KwIsset:
		p.stream.Advance()
		p.expect(lexer.LParen, "`(`")
		var ops []ast.Expression
		for {
			ops = append(ops, p.parseExpression(LOWEST+1))
			if p.stream.Current().Kind != lexer.Comma {
				break
			}
			p.stream.Advance()
		}
		p.expect(lexer.RParen, "`)`")
		return &ast.IssetExpr{BaseNode: ast.BaseNode{Kind: ast.KindIssetExpr, Span: span}, Operands: ops}
	case lexer.KwList:
		return p.parseListExpression()
	case lexer.LBracket:
		return p.parseArrayLiteral(true)
	case lexer.KwArray:
		if p.stream.Peek().Kind == lexer.LParen {
			return p.parseArrayLiteral(false)
		}
	case lexer.LParen:
		p.stream.Advance()
		inner := p.parseExpression(LOWEST + 1)
		p.expect(lexer.RParen, "`)`")
		return inner
	case lexer.KwFunction:
		return p.parseClosure(false)
	case lexer.KwFn:
		return p.parseArrowFunction(false)
	case lexer.KwMatch:
		return p.parseMatch()
	case lexer.Attribute:
		p.parseAttributeGroups()
		return p.parsePrefix()
	case lexer.DollarOpenCurly, lexer.CurlyOpen:
		return p.parseInterpolationBoundary()
	}

	if tok.Kind == lexer.KwStatic {
		if p.stream.Peek().Kind == lexer.KwFunction {
			p.stream.Advance()
			return p.parseClosure(true)
		}
		if p.stream.Peek().Kind == lexer.KwFn {
			p.stream.Advance()
			return p.parseArrowFunction(true)
		}
		p.stream.Advance()
		return &ast.NameExpr{BaseNode: ast.BaseNode{Kind: ast.KindNameExpr, Span: span}, Name: "static"}
	}

	p.bag.Add(diagnostic.UnexpectedToken(tok.Kind.String(), "an expression", span))
	p.stream.Advance()
	return nil
}

var castKinds = map[lexer.Kind]ast.CastKind{
	lexer.IntCast: ast.CastInt, lexer.DoubleCast: ast.CastFloat, lexer.StringCast: ast.CastString,
	lexer.ArrayCast: ast.CastArray, lexer.ObjectCast: ast.CastObject, lexer.BoolCast: ast.CastBool,
	lexer.UnsetCast: ast.CastUnset,
}

var includeKinds = map[lexer.Kind]ast.IncludeKind{
	lexer.KwInclude: ast.IncludeInclude, lexer.KwIncludeOnce: ast.IncludeIncludeOnce,
	lexer.KwRequire: ast.IncludeRequire, lexer.KwRequireOnce: ast.IncludeRequireOnce,
	lexer.KwEval: ast.IncludeEval,
}

func (p *Parser) parseVariableVariable() ast.Expression {
	span := p.span(p.stream.Advance()) // $
	inner := p.parsePrefix()
	return &ast.VariableVariable{BaseNode: ast.BaseNode{Kind: ast.KindVariableVariable, Span: span}, Inner: inner}
}

// parseInterpolationBoundary handles a `${name}` or `{$expr}` boundary the
// lexer surfaces mid-string; the token stream carries an inner Scripting
// frame whose content is one expression terminated by the matching `}`.
func (p *Parser) parseInterpolationBoundary() ast.Expression {
	opening := p.stream.Advance() // ${ or {$
	if opening.Kind == lexer.CurlyOpen {
		expr := p.parseExpression(LOWEST + 1)
		p.expect(lexer.RBrace, "`}`")
		return expr
	}
	// DollarOpenCurly: either ${name} or ${expr}.
	nameTok := p.stream.Current()
	if nameTok.Kind == lexer.VarName {
		p.stream.Advance()
		v := &ast.Variable{BaseNode: ast.BaseNode{Kind: ast.KindVariable, Span: p.span(nameTok)}, Name: string(nameTok.Value)}
		p.expect(lexer.RBrace, "`}`")
		return v
	}
	expr := p.parseExpression(LOWEST + 1)
	p.expect(lexer.RBrace, "`}`")
	return expr
}

// parseQualifiedName consumes a (possibly backslash-joined) name already
// classified by the lexer and returns its text.
func (p *Parser) parseQualifiedName() string {
	tok := p.stream.Advance()
	return string(tok.Value)
}

func (p *Parser) parsePropertyOrMethod(object ast.Expression, nullsafe bool) ast.Expression {
	span := p.span(p.stream.Advance()) // -> or ?->
	var member ast.Expression
	switch p.stream.Current().Kind {
	case lexer.LBrace:
		p.stream.Advance()
		member = p.parseExpression(LOWEST + 1)
		p.expect(lexer.RBrace, "`}`")
	case lexer.Variable:
		member = p.parsePrefix()
	default:
		tok := p.stream.Advance()
		member = &ast.NameExpr{BaseNode: ast.BaseNode{Kind: ast.KindNameExpr, Span: p.span(tok)}, Name: string(tok.Value)}
	}
	if p.stream.Current().Kind == lexer.LParen {
		if p.stream.Peek().Kind == lexer.Ellipsis && p.stream.PeekNth(2).Kind == lexer.RParen {
			p.stream.Advance()
			p.stream.Advance()
			p.stream.Advance()
			return &ast.FirstClassCallableExpr{BaseNode: ast.BaseNode{Kind: ast.KindFirstClassCallableExpr, Span: span},
				Callee: &ast.MethodCallExpr{BaseNode: ast.BaseNode{Kind: ast.KindMethodCallExpr, Span: span}, Object: object, Method: member, Nullsafe: nullsafe}}
		}
		args := p.parseArgumentList()
		return &ast.MethodCallExpr{BaseNode: ast.BaseNode{Kind: ast.KindMethodCallExpr, Span: span}, Object: object, Method: member, Args: args, Nullsafe: nullsafe}
	}
	return &ast.PropertyFetchExpr{BaseNode: ast.BaseNode{Kind: ast.KindPropertyFetchExpr, Span: span}, Object: object, Property: member, Nullsafe: nullsafe}
}

func (p *Parser) parseStaticAccess(class ast.Expression) ast.Expression {
	span := p.span(p.stream.Advance()) // ::
	switch p.stream.Current().Kind {
	case lexer.Variable:
		prop := p.parsePrefix()
		return &ast.StaticPropertyFetchExpr{BaseNode: ast.BaseNode{Kind: ast.KindStaticPropertyFetchExpr, Span: span}, Class: class, Property: prop}
	case lexer.KwClass:
		p.stream.Advance()
		return &ast.ClassConstFetchExpr{BaseNode: ast.BaseNode{Kind: ast.KindClassConstFetchExpr, Span: span}, Class: class, Name: "class"}
	case lexer.LBrace:
		p.stream.Advance()
		member := p.parseExpression(LOWEST + 1)
		p.expect(lexer.RBrace, "`}`")
		if p.stream.Current().Kind == lexer.LParen {
			args := p.parseArgumentList()
			return &ast.StaticCallExpr{BaseNode: ast.BaseNode{Kind: ast.KindStaticCallExpr, Span: span}, Class: class, Method: member, Args: args}
		}
		return &ast.StaticPropertyFetchExpr{BaseNode: ast.BaseNode{Kind: ast.KindStaticPropertyFetchExpr, Span: span}, Class: class, Property: member}
	default:
		tok := p.stream.Advance()
		name := &ast.NameExpr{BaseNode: ast.BaseNode{Kind: ast.KindNameExpr, Span: p.span(tok)}, Name: string(tok.Value)}
		if p.stream.Current().Kind == lexer.LParen {
			if p.stream.Peek().Kind == lexer.Ellipsis && p.stream.PeekNth(2).Kind == lexer.RParen {
				p.stream.Advance()
				p.stream.Advance()
				p.stream.Advance()
				return &ast.FirstClassCallableExpr{BaseNode: ast.BaseNode{Kind: ast.KindFirstClassCallableExpr, Span: span},
					Callee: &ast.StaticCallExpr{BaseNode: ast.BaseNode{Kind: ast.KindStaticCallExpr, Span: span}, Class: class, Method: name}}
			}
			args := p.parseArgumentList()
			return &ast.StaticCallExpr{BaseNode: ast.BaseNode{Kind: ast.KindStaticCallExpr, Span: span}, Class: class, Method: name, Args: args}
		}
		return &ast.ClassConstFetchExpr{BaseNode: ast.BaseNode{Kind: ast.KindClassConstFetchExpr, Span: span}, Class: class, Name: name.Name}
	}
}

func (p *Parser) parseCall(callee ast.Expression) ast.Expression {
	span := callee.GetSpan()
	if p.stream.Peek().Kind == lexer.Ellipsis && p.stream.PeekNth(2).Kind == lexer.RParen {
		p.stream.Advance()
		p.stream.Advance()
		p.stream.Advance()
		return &ast.FirstClassCallableExpr{BaseNode: ast.BaseNode{Kind: ast.KindFirstClassCallableExpr, Span: span}, Callee: callee}
	}
	args := p.parseArgumentList()
	return &ast.CallExpr{BaseNode: ast.BaseNode{Kind: ast.KindCallExpr, Span: span}, Callee: callee, Args: args}
}

// parseArgumentList parses `(args)`, enforcing that no positional argument
// follows a named one (E048).
func (p *Parser) parseArgumentList() []*ast.Argument {
	p.stream.Advance() // (
	var args []*ast.Argument
	var lastNamed *ast.Argument
	for p.stream.Current().Kind != lexer.RParen && !p.stream.IsEOF() {
		span := p.span(p.stream.Current())
		spread := false
		if p.stream.Current().Kind == lexer.Ellipsis {
			spread = true
			p.stream.Advance()
		}
		name := ""
		if !spread && isNameToken(p.stream.Current().Kind) && p.stream.Peek().Kind == lexer.Colon && p.stream.PeekNth(2).Kind != lexer.Colon {
			name = string(p.stream.Advance().Value)
			p.stream.Advance() // :
		}
		value := p.parseExpression(LOWEST + 1)
		arg := &ast.Argument{BaseNode: ast.BaseNode{Kind: ast.KindArgument, Span: span}, Name: name, Value: value, Spread: spread}
		if name != "" {
			lastNamed = arg
		} else if lastNamed != nil && !spread {
			p.bag.Add(diagnostic.PositionalAfterNamed(lastNamed.GetSpan(), span))
		}
		args = append(args, arg)
		if p.stream.Current().Kind != lexer.Comma {
			break
		}
		p.stream.Advance()
	}
	p.expect(lexer.RParen, "`)`")
	return args
}

func isNameToken(k lexer.Kind) bool {
	switch k {
	case lexer.Ident, lexer.QualifiedIdent:
		return true
	default:
		_, isKeyword := keywordText[k]
		return isKeyword
	}
}

// keywordText lets a keyword double as a named-argument label, matching
// PHP's grammar where any reserved word is still a legal parameter name.
var keywordText = func() map[lexer.Kind]bool {
	m := map[lexer.Kind]bool{}
	for _, k := range lexer.Keywords {
		m[k] = true
	}
	return m
}()

func (p *Parser) parseIndex(subject ast.Expression) ast.Expression {
	span := p.span(p.stream.Advance()) // [
	if p.stream.Current().Kind == lexer.RBracket {
		p.stream.Advance()
		return &ast.IndexExpr{BaseNode: ast.BaseNode{Kind: ast.KindIndexExpr, Span: span}, Subject: subject}
	}
	idx := p.parseExpression(LOWEST + 1)
	p.expect(lexer.RBracket, "`]`")
	return &ast.IndexExpr{BaseNode: ast.BaseNode{Kind: ast.KindIndexExpr, Span: span}, Subject: subject, Index: idx}
}

func (p *Parser) parseNew() ast.Expression {
	span := p.span(p.stream.Advance()) // new
	if p.stream.Current().Kind == lexer.KwClass {
		return p.parseAnonClass(span)
	}
	var class ast.Expression
	if p.stream.Current().Kind == lexer.LParen {
		p.stream.Advance()
		class = p.parseExpression(LOWEST + 1)
		p.expect(lexer.RParen, "`)`")
	} else {
		class = p.parseExpression(PrecMemberAccess)
		if ce, ok := class.(*ast.CallExpr); ok {
			// `new X(...)` parsed Ce as a call during the postfix loop;
			// unwrap it back into the new-expression's own arg list.
			return &ast.NewExpr{BaseNode: ast.BaseNode{Kind: ast.KindNewExpr, Span: span}, Class: ce.Callee, Args: ce.Args}
		}
	}
	var args []*ast.Argument
	if p.stream.Current().Kind == lexer.LParen {
		args = p.parseArgumentList()
	}
	return &ast.NewExpr{BaseNode: ast.BaseNode{Kind: ast.KindNewExpr, Span: span}, Class: class, Args: args}
}

func (p *Parser) parseAnonClass(span source.Span) ast.Expression {
	p.stream.Advance() // class
	var args []*ast.Argument
	if p.stream.Current().Kind == lexer.LParen {
		args = p.parseArgumentList()
	}
	var extends ast.Expression
	if p.stream.Current().Kind == lexer.KwExtends {
		p.stream.Advance()
		tok := p.stream.Advance()
		extends = &ast.NameExpr{BaseNode: ast.BaseNode{Kind: ast.KindNameExpr, Span: p.span(tok)}, Name: string(tok.Value)}
	}
	var implements []ast.Expression
	if p.stream.Current().Kind == lexer.KwImplements {
		p.stream.Advance()
		for {
			tok := p.stream.Advance()
			implements = append(implements, &ast.NameExpr{BaseNode: ast.BaseNode{Kind: ast.KindNameExpr, Span: p.span(tok)}, Name: string(tok.Value)})
			if p.stream.Current().Kind != lexer.Comma {
				break
			}
			p.stream.Advance()
		}
	}
	p.state.pushScope(Scope{Kind: ScopeAnonymousClass, HasParent: extends != nil})
	members := p.parseClassBody(memberClassConst, memberProperty, memberMethod)
	p.state.popScope()
	body := &ast.ClassDeclaration{BaseNode: ast.BaseNode{Kind: ast.KindClassDeclaration, Span: span}, Members: members}
	return &ast.AnonClassExpr{BaseNode: ast.BaseNode{Kind: ast.KindAnonClassExpr, Span: span}, Args: args, Extends: extends, Implements: implements, Body: body}
}

func (p *Parser) parseYield() ast.Expression {
	span := p.span(p.stream.Advance()) // yield
	if p.stream.Current().Kind == lexer.Ident && strings.EqualFold(string(p.stream.Current().Value), "from") {
		p.stream.Advance()
		return &ast.YieldFromExpr{BaseNode: ast.BaseNode{Kind: ast.KindYieldFromExpr, Span: span}, Operand: p.parseExpression(PrecYieldFrom)}
	}
	switch p.stream.Current().Kind {
	case lexer.Semicolon, lexer.RParen, lexer.RBracket, lexer.Comma, lexer.EOF:
		return &ast.YieldExpr{BaseNode: ast.BaseNode{Kind: ast.KindYieldExpr, Span: span}}
	}
	first := p.parseExpression(PrecYield)
	if p.stream.Current().Kind == lexer.DoubleArrow {
		p.stream.Advance()
		value := p.parseExpression(PrecYield)
		return &ast.YieldExpr{BaseNode: ast.BaseNode{Kind: ast.KindYieldExpr, Span: span}, Key: first, Value: value}
	}
	return &ast.YieldExpr{BaseNode: ast.BaseNode{Kind: ast.KindYieldExpr, Span: span}, Value: first}
}

// parseListExpression parses `list(...)`, the legacy destructuring form
// (the modern `[...]` form is parsed as an ArrayLiteral and reinterpreted
// as a ListExpression by parseAssignment when it appears on the left of
// `=`).
func (p *Parser) parseListExpression() ast.Expression {
	span := p.span(p.stream.Advance()) // list
	p.expect(lexer.LParen, "`(`")
	var items []*ast.ArrayItem
	keyed, unkeyed := false, false
	for p.stream.Current().Kind != lexer.RParen && !p.stream.IsEOF() {
		if p.stream.Current().Kind == lexer.Comma {
			items = append(items, nil)
			p.stream.Advance()
			continue
		}
		itemSpan := p.span(p.stream.Current())
		if p.stream.Current().Kind == lexer.Ellipsis {
			p.bag.Add(diagnostic.SpreadNotAllowed("a list() destructuring pattern", itemSpan))
			p.stream.Advance()
		}
		first := p.parseExpression(LOWEST + 1)
		var key, value ast.Expression
		if p.stream.Current().Kind == lexer.DoubleArrow {
			p.stream.Advance()
			key = first
			value = p.parseExpression(LOWEST + 1)
			keyed = true
		} else {
			value = first
			unkeyed = true
		}
		items = append(items, &ast.ArrayItem{BaseNode: ast.BaseNode{Kind: ast.KindArrayItem, Span: itemSpan}, Key: key, Value: value})
		if p.stream.Current().Kind != lexer.Comma {
			break
		}
		p.stream.Advance()
	}
	p.expect(lexer.RParen, "`)`")
	if keyed && unkeyed {
		p.bag.Add(diagnostic.MixedKeyedUnkeyedList(span))
	}
	return &ast.ListExpression{BaseNode: ast.BaseNode{Kind: ast.KindListExpression, Span: span}, Items: items}
}

func (p *Parser) parseArrayLiteral(short bool) ast.Expression {
	open := p.stream.Advance()
	closeKind := lexer.RBracket
	if !short {
		p.expect(lexer.LParen, "`(`")
		closeKind = lexer.RParen
	}
	span := p.span(open)
	var items []*ast.ArrayItem
	for p.stream.Current().Kind != closeKind && !p.stream.IsEOF() {
		itemSpan := p.span(p.stream.Current())
		byRef := false
		spread := false
		if p.stream.Current().Kind == lexer.Ellipsis {
			spread = true
			p.stream.Advance()
		}
		if p.stream.Current().Kind == lexer.Amp {
			byRef = true
			p.stream.Advance()
		}
		first := p.parseExpression(LOWEST + 1)
		var key, value ast.Expression
		if !spread && p.stream.Current().Kind == lexer.DoubleArrow {
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
		items = append(items, &ast.ArrayItem{BaseNode: ast.BaseNode{Kind: ast.KindArrayItem, Span: itemSpan}, Key: key, Value: value, ByRef: byRef, Spread: spread})
		if p.stream.Current().Kind != lexer.Comma {
			break
		}
		p.stream.Advance()
	}
	closeSpan := p.span(p.stream.Current())
	p.expect(closeKind, "closing bracket")
	span.Length = closeSpan.End() - span.Position
	return &ast.ArrayLiteral{BaseNode: ast.BaseNode{Kind: ast.KindArrayLiteral, Span: span}, Items: items, ShortSyntax: short}
}

func (p *Parser) parseMatch() ast.Expression {
	span := p.span(p.stream.Advance()) // match
	p.expect(lexer.LParen, "`(`")
	subject := p.parseExpression(LOWEST + 1)
	p.expect(lexer.RParen, "`)`")
	p.expect(lexer.LBrace, "`{`")
	var arms []*ast.MatchArm
	var firstDefault source.Span
	haveDefault := false
	for p.stream.Current().Kind != lexer.RBrace && !p.stream.IsEOF() {
		armSpan := p.span(p.stream.Current())
		var conds []ast.Expression
		isDefault := false
		if p.stream.Current().Kind == lexer.KwDefault {
			p.stream.Advance()
			isDefault = true
			if haveDefault {
				p.bag.Add(diagnostic.DuplicateMatchDefault(firstDefault, armSpan))
			} else {
				haveDefault = true
				firstDefault = armSpan
			}
		} else {
			for {
				conds = append(conds, p.parseExpression(LOWEST+1))
				if p.stream.Current().Kind != lexer.Comma || p.stream.Peek().Kind == lexer.DoubleArrow {
					break
				}
				p.stream.Advance()
			}
		}
		p.expect(lexer.DoubleArrow, "`=>`")
		body := p.parseExpression(LOWEST + 1)
		arms = append(arms, &ast.MatchArm{BaseNode: ast.BaseNode{Kind: ast.KindMatchArm, Span: armSpan}, Conditions: conds, IsDefault: isDefault, Body: body})
		if p.stream.Current().Kind != lexer.Comma {
			break
		}
		p.stream.Advance()
	}
	p.expect(lexer.RBrace, "`}`")
	return &ast.MatchExpr{BaseNode: ast.BaseNode{Kind: ast.KindMatchExpr, Span: span}, Subject: subject, Arms: arms}
}

func (p *Parser) parseClosure(static bool) ast.Expression {
	span := p.span(p.stream.Advance()) // function
	byRef := false
	if p.stream.Current().Kind == lexer.Amp {
		byRef = true
		p.stream.Advance()
	}
	params := p.parseParameterList()
	var uses []*ast.ClosureUseVariable
	if p.stream.Current().Kind == lexer.KwUse {
		p.stream.Advance()
		p.expect(lexer.LParen, "`(`")
		for p.stream.Current().Kind != lexer.RParen && !p.stream.IsEOF() {
			useSpan := p.span(p.stream.Current())
			ref := false
			if p.stream.Current().Kind == lexer.Amp {
				ref = true
				p.stream.Advance()
			}
			v := p.stream.Advance()
			uses = append(uses, &ast.ClosureUseVariable{BaseNode: ast.BaseNode{Kind: ast.KindClosureUseVariable, Span: useSpan}, Name: string(v.Value[1:]), ByRef: ref})
			if p.stream.Current().Kind != lexer.Comma {
				break
			}
			p.stream.Advance()
		}
		p.expect(lexer.RParen, "`)`")
	}
	var ret ast.Type
	if p.stream.Current().Kind == lexer.Colon {
		p.stream.Advance()
		ret = p.parseType()
	}
	body := p.parseBlockBody()
	return &ast.ClosureExpr{BaseNode: ast.BaseNode{Kind: ast.KindClosureExpr, Span: span}, Static: static, ByRef: byRef, Params: params, Uses: uses, ReturnType: ret, Body: body}
}

func (p *Parser) parseArrowFunction(static bool) ast.Expression {
	span := p.span(p.stream.Advance()) // fn
	byRef := false
	if p.stream.Current().Kind == lexer.Amp {
		byRef = true
		p.stream.Advance()
	}
	params := p.parseParameterList()
	var ret ast.Type
	if p.stream.Current().Kind == lexer.Colon {
		p.stream.Advance()
		ret = p.parseType()
	}
	p.expect(lexer.DoubleArrow, "`=>`")
	body := p.parseExpression(LOWEST + 1)
	return &ast.ArrowFunctionExpr{BaseNode: ast.BaseNode{Kind: ast.KindArrowFunctionExpr, Span: span}, Static: static, ByRef: byRef, Params: params, ReturnType: ret, Body: body}
}

// parseIntLiteral recognises PHP's decimal/hex/octal/binary forms, strips
// underscore separators, and reports overflow by returning ok=false (the
// caller falls back to floatFromIntLiteral, matching PHP's int→float
// promotion).
func parseIntLiteral(raw []byte) (int64, bool) {
	base, digits := intLiteralBaseAndDigits(raw)
	v, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// floatFromIntLiteral re-parses an integer literal that overflowed int64 as
// a float64. big.Int is used rather than strconv.ParseFloat because the
// literal's digits are only meaningful under their own base (hex/octal/
// binary strings aren't valid float syntax); PHP promotes every base the
// same way on overflow.
func floatFromIntLiteral(raw []byte) float64 {
	base, digits := intLiteralBaseAndDigits(raw)
	bi, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return 0
	}
	f, _ := new(big.Float).SetInt(bi).Float64()
	return f
}

// intLiteralBaseAndDigits strips underscore separators and any base prefix
// from an integer literal's raw text, returning the base to parse the
// remaining digits under.
func intLiteralBaseAndDigits(raw []byte) (int, string) {
	s := strings.ReplaceAll(string(raw), "_", "")
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		return 16, s[2:]
	case strings.HasPrefix(s, "0b") || strings.HasPrefix(s, "0B"):
		return 2, s[2:]
	case strings.HasPrefix(s, "0o") || strings.HasPrefix(s, "0O"):
		return 8, s[2:]
	case len(s) > 1 && s[0] == '0':
		return 8, s[1:]
	}
	return 10, s
}

// unescapeSingleQuoted resolves the only two escapes PHP recognises inside
// '...': \\ and \'.
func unescapeSingleQuoted(raw []byte) []byte {
	if len(raw) < 2 {
		return raw
	}
	body := raw[1 : len(raw)-1]
	out := make([]byte, 0, len(body))
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) && (body[i+1] == '\\' || body[i+1] == '\'') {
			out = append(out, body[i+1])
			i++
			continue
		}
		out = append(out, body[i])
	}
	return out
}
