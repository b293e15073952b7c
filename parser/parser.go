// Package parser turns a PHP source file into an *ast.Program, following
// the phases spec.md §4 lays out: tokenize, construct, and on error recover
// at the next statement boundary so a single bag of diagnostics can report
// everything wrong with the file.
package parser

import (
	"strings"

	"github.com/gophlex/phpparser/ast"
	"github.com/gophlex/phpparser/diagnostic"
	"github.com/gophlex/phpparser/lexer"
	"github.com/gophlex/phpparser/source"
)

// Parser holds everything the statement, expression, and type parsers share:
// the token stream, the scope/namespace state, the source (for span
// derivation) and the diagnostic bag they all append to.
type Parser struct {
	stream *Stream
	state  *state
	src    *source.Source
	bag    *diagnostic.Bag
}

func newParser(src *source.Source, tokens []lexer.Token) *Parser {
	return &Parser{
		stream: NewStream(tokens),
		state:  newState(),
		src:    src,
		bag:    &diagnostic.Bag{},
	}
}

// Tokenize runs the lexer to completion, matching spec.md §6's
// tokenize(bytes) -> Result<Tokens, LexError> entry point.
func Tokenize(data []byte) ([]lexer.Token, error) {
	return lexer.New(data).Tokens()
}

// Construct builds a Program from an already-lexed token slice, matching
// spec.md §6's construct(tokens) -> Result<Program, Diagnostics> entry
// point. name is used only for diagnostic rendering.
func Construct(name string, data []byte, tokens []lexer.Token) (*ast.Program, *diagnostic.Bag) {
	p := newParser(source.New(name, data), tokens)
	prog := p.parseProgram()
	return prog, p.bag
}

// Parse runs both phases: tokenize then construct. A lex error (an
// unterminated string, heredoc, or comment) short-circuits with no partial
// tree, matching spec.md §6's "one function parse(bytes)" contract.
func Parse(name string, data []byte) (*ast.Program, *diagnostic.Bag) {
	tokens, err := Tokenize(data)
	if err != nil {
		bag := &diagnostic.Bag{}
		if lexErr, ok := err.(*lexer.Error); ok {
			bag.Add(diagnostic.UnterminatedInput(lexErr.Message, source.New(name, data).Span(lexErr.Pos.Offset, 1)))
		} else {
			bag.Add(diagnostic.UnterminatedInput(err.Error(), source.Span{}))
		}
		return nil, bag
	}
	return Construct(name, data, tokens)
}

// span derives a source.Span for a token's full extent.
func (p *Parser) span(tok lexer.Token) source.Span {
	return p.src.Span(tok.Pos.Offset, len(tok.Value))
}

// expect consumes the current token if it matches kind, otherwise records a
// diagnostic and leaves the stream positioned where it is (the caller's
// recovery logic decides what happens next). wanted is the human-readable
// description used in the diagnostic message.
func (p *Parser) expect(kind lexer.Kind, wanted string) lexer.Token {
	tok := p.stream.Current()
	if tok.Kind != kind {
		if tok.Kind == lexer.EOF {
			p.bag.Add(diagnostic.UnexpectedEOF(wanted, p.span(tok)))
			return tok
		}
		p.bag.Add(diagnostic.UnexpectedToken(tok.Kind.String(), wanted, p.span(tok)))
		return tok
	}
	return p.stream.Advance()
}

// expectName consumes any token that can stand in for a name (identifier
// or keyword used as a name) and returns its text, or records E004.
func (p *Parser) expectName(context string) string {
	tok := p.stream.Current()
	switch tok.Kind {
	case lexer.Ident, lexer.QualifiedIdent, lexer.FullyQualifiedIdent, lexer.RelativeIdent:
		p.stream.Advance()
		return string(tok.Value)
	}
	if isNameToken(tok.Kind) {
		p.stream.Advance()
		return string(tok.Value)
	}
	p.bag.Add(diagnostic.UnexpectedIdentifier(tok.Kind.String(), context, p.span(tok)))
	return ""
}

// expectNonReservedName is expectName for the positions PHP actually
// restricts (class/function/constant names, goto labels): it additionally
// rejects a hard reserved keyword via reserved.go's IsReserved, recording
// E005. position names the grammatical slot in the diagnostic message
// ("class", "goto label", ...).
func (p *Parser) expectNonReservedName(context, position string) string {
	tok := p.stream.Current()
	span := p.span(tok)
	name := p.expectName(context)
	if name != "" && IsReserved(strings.ToLower(name)) {
		p.bag.Add(diagnostic.ReservedWordUsedAsName(name, position, span))
	}
	return name
}

// synchronize discards tokens until a statement boundary so one syntax
// error doesn't cascade into a wall of follow-on diagnostics.
func (p *Parser) synchronize() {
	for !p.stream.IsEOF() {
		tok := p.stream.Current()
		if tok.Kind == lexer.Semicolon {
			p.stream.Advance()
			return
		}
		switch tok.Kind {
		case lexer.RBrace, lexer.KwFunction, lexer.KwClass, lexer.KwInterface,
			lexer.KwTrait, lexer.KwEnum, lexer.KwNamespace, lexer.KwIf, lexer.KwWhile,
			lexer.KwFor, lexer.KwForeach, lexer.KwReturn, lexer.KwEcho, lexer.KwSwitch:
			return
		}
		p.stream.Advance()
	}
}

func (p *Parser) parseProgram() *ast.Program {
	start := p.span(p.stream.Current())
	var stmts []ast.Statement
	for !p.stream.IsEOF() {
		before := p.stream.Mark()
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		if p.stream.Mark() == before {
			// parseStatement made no progress; force one and resync so
			// we never spin on a single bad token.
			p.stream.Advance()
			p.synchronize()
		}
	}
	span := start
	if len(stmts) > 0 {
		span.Length = stmts[len(stmts)-1].GetSpan().End() - span.Position
	}
	return ast.NewProgram(span, stmts)
}
