// Package compileerr defines the compile-time error taxonomy shared by
// the lexer, parser, and codegen packages. It plays the role the
// original implementation's thiserror CompileError/LexerError/ParseError
// enums play, collapsed into one tagged struct in the Go idiom.
package compileerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a compile-time Error.
type Kind int

const (
	KindLexer Kind = iota
	KindSyntax
	KindUnknownRegister
	KindBackend
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindLexer:
		return "lexer error"
	case KindSyntax:
		return "syntax error"
	case KindUnknownRegister:
		return "unknown register"
	case KindBackend:
		return "backend error"
	case KindIO:
		return "io error"
	default:
		return "error"
	}
}

// Error is a single compile-time diagnostic. Line/Column are 1-based
// and zero when not applicable (e.g. IO errors).
type Error struct {
	Kind    Kind
	Message string
	Line    int
	Column  int
	cause   error
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at %d:%d: %s", e.Kind, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes a wrapped lower-layer error, if any, to errors.Is/As.
func (e *Error) Unwrap() error {
	return e.cause
}

// Cause satisfies github.com/pkg/errors's Causer interface.
func (e *Error) Cause() error {
	return e.cause
}

// New builds a positionless Error, typically for IO or backend errors.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// At builds an Error carrying a source position, for lexer/parser diagnostics.
func At(kind Kind, line, column int, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Line: line, Column: column}
}

// Wrap attaches cause to a new Error via github.com/pkg/errors so callers
// can recover it with errors.Cause/errors.Unwrap, standing in for the
// original's #[from] conversions.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	wrapped := errors.Wrap(cause, fmt.Sprintf(format, args...))
	return &Error{Kind: kind, Message: wrapped.Error(), cause: cause}
}
