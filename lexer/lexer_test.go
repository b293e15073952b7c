package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(t *testing.T, src string) []Kind {
	t.Helper()
	toks, err := New([]byte(src)).Tokens()
	require.NoError(t, err)
	var ks []Kind
	for _, tok := range toks {
		ks = append(ks, tok.Kind)
	}
	return ks
}

func TestLexer_InlineHTMLBeforeOpenTag(t *testing.T) {
	toks, err := New([]byte("hello <?php echo 1;")).Tokens()
	require.NoError(t, err)
	require.NotEmpty(t, toks)
	assert.Equal(t, InlineHTML, toks[0].Kind)
	assert.Equal(t, "hello ", string(toks[0].Value))
}

func TestLexer_ScriptingKeywordsAndPunctuation(t *testing.T) {
	ks := kinds(t, "<?php echo 1;")
	assert.Contains(t, ks, KwEcho)
	assert.Contains(t, ks, Int)
	assert.Contains(t, ks, Semicolon)
	assert.Equal(t, EOF, ks[len(ks)-1])
}

func TestLexer_VariableAndIdentifier(t *testing.T) {
	toks, err := New([]byte("<?php $foo; Bar::baz();")).Tokens()
	require.NoError(t, err)
	var variable, ident bool
	for _, tok := range toks {
		if tok.Kind == Variable && string(tok.Value) == "$foo" {
			variable = true
		}
		if tok.Kind == Ident && string(tok.Value) == "Bar" {
			ident = true
		}
	}
	assert.True(t, variable, "expected a $foo variable token")
	assert.True(t, ident, "expected a Bar identifier token")
}

func TestLexer_Numbers(t *testing.T) {
	cases := map[string]Kind{
		"<?php 42;":    Int,
		"<?php 0x1A;":  Int,
		"<?php 0b101;": Int,
		"<?php 3.14;":  Float,
		"<?php 1_000;": Int,
	}
	for src, want := range cases {
		toks, err := New([]byte(src)).Tokens()
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(toks), 2)
		assert.Equal(t, want, toks[1].Kind, "source: %s", src)
	}
}

func TestLexer_SingleQuotedString(t *testing.T) {
	toks, err := New([]byte(`<?php 'it\'s a \\test';`)).Tokens()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(toks), 2)
	assert.Equal(t, StringLiteral, toks[1].Kind)
}

func TestLexer_UnterminatedStringIsAnError(t *testing.T) {
	_, err := New([]byte(`<?php $x = "unterminated`)).Tokens()
	require.Error(t, err)
	var lexErr *Error
	require.ErrorAs(t, err, &lexErr)
	assert.NotEmpty(t, lexErr.Message)
}

func TestLexer_UnterminatedHeredocIsAnError(t *testing.T) {
	_, err := New([]byte("<?php $x = <<<EOT\nhello\n")).Tokens()
	require.Error(t, err)
}

func TestLexer_HeredocIndentStripping(t *testing.T) {
	src := "<?php $x = <<<EOT\n    hello\n    EOT;\n"
	toks, err := New([]byte(src)).Tokens()
	require.NoError(t, err)
	var body string
	for _, tok := range toks {
		if tok.Kind == EncapsedAndWhitespace {
			body += string(tok.Value)
		}
	}
	assert.Equal(t, "hello\n", body, "the closing label's own indentation must be stripped from each body line")
}

func TestLexer_HeredocContentIndentedLessThanLabelIsAnError(t *testing.T) {
	_, err := New([]byte("<?php $x = <<<EOT\nhello\n  EOT;\n")).Tokens()
	require.Error(t, err, "a content line indented less than the closing label must be rejected")
}

func TestLexer_LineAndBlockComments(t *testing.T) {
	ks := kinds(t, "<?php // line comment\n/* block\ncomment */ echo 1;")
	assert.Contains(t, ks, KwEcho)
}

func TestLexer_CastTokensAreRecognizedAsOneUnit(t *testing.T) {
	toks, err := New([]byte("<?php (int)$x;")).Tokens()
	require.NoError(t, err)
	assert.Equal(t, IntCast, toks[1].Kind)
}
