package selector

import (
	"fmt"

	"github.com/benbjohnson/cssselect/ast"
	"github.com/benbjohnson/cssselect/token"
)

// ErrorCode identifies which part of the selector grammar was violated.
// An ErrorCode can be used as an errors.Is target.
type ErrorCode int

const (
	ErrUnexpectedToken ErrorCode = iota + 1
	ErrEmptyCompoundSelector
	ErrUndefinedNamespacePrefix
	ErrExpectedLocalName
	ErrExpectedIdent
	ErrExpectedAttributeName
	ErrExpectedOperator
	ErrExpectedAttributeValue
	ErrExpectedClosingBracket
	ErrNestedNegation
	ErrInvalidNegationArgument
)

var errorCodes = [...]string{
	ErrUnexpectedToken:          "unexpected token",
	ErrEmptyCompoundSelector:    "empty compound selector",
	ErrUndefinedNamespacePrefix: "undefined namespace prefix",
	ErrExpectedLocalName:        "expected local name",
	ErrExpectedIdent:            "expected ident",
	ErrExpectedAttributeName:    "expected attribute name",
	ErrExpectedOperator:         "expected attribute operator",
	ErrExpectedAttributeValue:   "expected attribute value",
	ErrExpectedClosingBracket:   "expected closing bracket",
	ErrNestedNegation:           "nested negation",
	ErrInvalidNegationArgument:  "invalid negation argument",
}

func (c ErrorCode) String() string {
	if c > 0 && int(c) < len(errorCodes) {
		return errorCodes[c]
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

func (c ErrorCode) Error() string { return c.String() }

// Error represents an invalid selector.
type Error struct {
	Code    ErrorCode
	Message string

	// Token is the offending token. It is nil at the end of input.
	Token token.Token
	Pos   token.Pos
}

// Error returns the formatted string error message.
func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is the error's code.
func (e *Error) Is(target error) bool {
	c, ok := target.(ErrorCode)
	return ok && c == e.Code
}

// errorf returns an error for the value v. A nil v means the stream s was
// exhausted.
func errorf(code ErrorCode, s *stream, v ast.ComponentValue, format string, args ...any) *Error {
	e := &Error{Code: code, Message: fmt.Sprintf(format, args...), Token: tokenOf(v)}
	if v != nil {
		e.Pos = ast.Position(v)
	} else if s != nil {
		e.Pos = s.pos
	}
	return e
}
