package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lennart-voss/mpy8/internal/token"
)

func TestTokenizeAssignment(t *testing.T) {
	tokens, err := Tokenize("v0 = 10\n")
	require.NoError(t, err)

	kinds := kindsOf(tokens)
	require.Equal(t, []token.Kind{
		token.Identifier, token.Assign, token.Number, token.Newline, token.EOF,
	}, kinds)
	require.Equal(t, "v0", tokens[0].Ident)
	require.EqualValues(t, 10, tokens[2].NumberValue)
}

func TestTokenizeHexAndBinaryAndUnderscoreNumbers(t *testing.T) {
	tokens, err := Tokenize("0x2A 0b101 1_000")
	require.NoError(t, err)

	require.EqualValues(t, 0x2A, tokens[0].NumberValue)
	require.EqualValues(t, 0b101, tokens[1].NumberValue)
	require.EqualValues(t, 1000, tokens[2].NumberValue)
}

func TestTokenizeKeywordsAndComparisons(t *testing.T) {
	tokens, err := Tokenize("while v0 != 5:")
	require.NoError(t, err)

	kinds := kindsOf(tokens)
	require.Equal(t, []token.Kind{
		token.While, token.Identifier, token.NotEqual, token.Number, token.Colon, token.EOF,
	}, kinds)
}

func TestTokenizeCharLiteralWithEscape(t *testing.T) {
	tokens, err := Tokenize(`print(v0, v1, '\n')`)
	require.NoError(t, err)

	var found bool
	for _, tok := range tokens {
		if tok.Kind == token.CharLiteral {
			found = true
			if tok.CharValue != '\n' {
				t.Errorf("expected decoded escape '\\n', got %q", tok.CharValue)
			}
		}
	}
	if !found {
		t.Fatal("expected a CharLiteral token")
	}
}

func TestTokenizeComment(t *testing.T) {
	tokens, err := Tokenize("v0 = 1 # a trailing comment\n")
	require.NoError(t, err)

	for _, tok := range tokens {
		if tok.Kind == token.Identifier && tok.Ident == "a" {
			t.Fatal("comment text should not be tokenized")
		}
	}
}

func TestTokenizeUnexpectedCharacter(t *testing.T) {
	_, err := Tokenize("v0 = 1 $")
	if err == nil {
		t.Fatal("expected an error for an unexpected character")
	}
}

func TestTokenizeUnclosedCharLiteral(t *testing.T) {
	_, err := Tokenize("print(v0, v1, 'A)")
	if err == nil {
		t.Fatal("expected an error for an unclosed char literal")
	}
}

func kindsOf(tokens []token.Token) []token.Kind {
	kinds := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}
