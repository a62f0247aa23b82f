// Package token defines the lexical tokens the compiler front end
// produces, grounded in the original implementation's lexer token
// taxonomy (keywords, operators, punctuation, literals).
package token

import "fmt"

// Kind classifies a Token.
type Kind int

const (
	// Keywords.
	If Kind = iota
	Else
	While
	For
	Def
	Return
	True
	False
	None
	Pass
	Not
	In

	// Operators.
	Assign   // =
	Plus     // +
	Minus    // -
	Equal    // ==
	NotEqual // !=
	Greater  // >
	Less     // <
	Star     // *
	Slash    // /

	// Punctuation.
	LParen // (
	RParen // )
	Colon  // :
	Comma  // ,

	// Literals.
	Identifier
	Number
	CharLiteral
	StringLiteral

	// Structural. Indent/Dedent are carried for taxonomy parity with
	// the original lexer's TokenKind, but nothing ever produces them:
	// block structure is inferred by keyword lookahead in the parser.
	Newline
	Indent
	Dedent
	EOF
)

var names = map[Kind]string{
	If: "if", Else: "else", While: "while", For: "for", Def: "def",
	Return: "return", True: "True", False: "False", None: "None",
	Pass: "pass", Not: "not", In: "in",
	Assign: "=", Plus: "+", Minus: "-", Equal: "==", NotEqual: "!=",
	Greater: ">", Less: "<", Star: "*", Slash: "/",
	LParen: "(", RParen: ")", Colon: ":", Comma: ",",
	Identifier: "identifier", Number: "number", CharLiteral: "char literal",
	StringLiteral: "string literal",
	Newline:       "newline", Indent: "indent", Dedent: "dedent", EOF: "eof",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Position is a 1-based line/column plus a byte offset range into the
// source, mirroring the original lexer's Span.
type Position struct {
	Line, Column int
	Start, End   int
}

// Token is one lexical unit. Ident carries the identifier text,
// NumberValue the parsed literal, CharValue the decoded character;
// only the field matching Kind is meaningful.
type Token struct {
	Kind        Kind
	Pos         Position
	Ident       string
	NumberValue uint16
	CharValue   rune
	StringValue string
}

func (t Token) String() string {
	switch t.Kind {
	case Identifier:
		return fmt.Sprintf("Identifier(%s)", t.Ident)
	case Number:
		return fmt.Sprintf("Number(%d)", t.NumberValue)
	case CharLiteral:
		return fmt.Sprintf("CharLiteral(%q)", t.CharValue)
	case StringLiteral:
		return fmt.Sprintf("StringLiteral(%q)", t.StringValue)
	default:
		return t.Kind.String()
	}
}

// Keywords maps reserved identifiers to their keyword Kind.
var Keywords = map[string]Kind{
	"if": If, "else": Else, "while": While, "for": For, "def": Def,
	"return": Return, "True": True, "False": False, "None": None,
	"pass": Pass, "not": Not, "in": In,
}
