package parser

import "github.com/gophlex/phpparser/lexer"

// eofToken is returned once the buffer is exhausted; every further call
// echoes it back so callers never index past the end of tokens.
func eofToken(pos lexer.Position) lexer.Token {
	return lexer.Token{Kind: lexer.EOF, Pos: pos}
}

// Stream is a random-access buffer over a complete token slice. It hides
// Comment/DocComment tokens from callers by default (skip_comments in
// spec.md §4.2), remembering the most recently seen doc-comment so the
// statement parser can attach it to the next declaration.
type Stream struct {
	tokens []lexer.Token
	pos    int

	pendingDoc string
}

// NewStream indexes a finished token slice; the cursor (pos) starts at the
// first syntactic token.
func NewStream(tokens []lexer.Token) *Stream {
	s := &Stream{tokens: tokens}
	s.skipComments()
	return s
}

func (s *Stream) at(i int) lexer.Token {
	if i < 0 || i >= len(s.tokens) {
		if len(s.tokens) == 0 {
			return eofToken(lexer.Position{})
		}
		return eofToken(s.tokens[len(s.tokens)-1].Pos)
	}
	return s.tokens[i]
}

// skipComments advances past consecutive Comment/DocComment tokens,
// recording the text of the last doc-comment encountered.
func (s *Stream) skipComments() {
	for {
		t := s.at(s.pos)
		switch t.Kind {
		case lexer.DocComment:
			s.pendingDoc = string(t.Value)
			s.pos++
		case lexer.Comment:
			s.pos++
		default:
			return
		}
	}
}

// Current returns the token at the cursor.
func (s *Stream) Current() lexer.Token { return s.at(s.pos) }

// Peek returns the next syntactic token after the cursor without consuming
// it.
func (s *Stream) Peek() lexer.Token { return s.PeekNth(1) }

// PeekNth returns the nth syntactic token ahead (1 = Peek); comment tokens
// anywhere in between are skipped and do not count.
func (s *Stream) PeekNth(n int) lexer.Token {
	i := s.pos
	seen := 0
	for {
		i++
		t := s.at(i)
		switch t.Kind {
		case lexer.Comment, lexer.DocComment:
			continue
		}
		seen++
		if seen == n || t.Kind == lexer.EOF {
			return t
		}
	}
}

// Advance consumes the current token and returns it, moving the cursor to
// the next syntactic token.
func (s *Stream) Advance() lexer.Token {
	t := s.at(s.pos)
	if t.Kind != lexer.EOF {
		s.pos++
	}
	s.skipComments()
	return t
}

// IsEOF reports whether the cursor sits on the sentinel EOF token.
func (s *Stream) IsEOF() bool { return s.Current().Kind == lexer.EOF }

// TakeDoc returns and clears the most recently seen doc-comment text, for a
// declaration parser to attach to the node it is about to build.
func (s *Stream) TakeDoc() string {
	doc := s.pendingDoc
	s.pendingDoc = ""
	return doc
}

// Mark/Reset let a parser routine speculatively scan ahead (e.g. to
// disambiguate a cast from a parenthesised expression) and rewind if the
// lookahead doesn't pan out.
func (s *Stream) Mark() int { return s.pos }

func (s *Stream) Reset(mark int) {
	s.pos = mark
	s.pendingDoc = ""
}
