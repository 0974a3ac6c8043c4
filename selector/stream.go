package selector

import (
	"github.com/benbjohnson/cssselect/ast"
	"github.com/benbjohnson/cssselect/token"
)

// stream is a cursor over a list of component values with one value of
// lookahead. A nil value marks the end of the list.
type stream struct {
	values ast.ComponentValues
	i      int

	// pos is where the last consumed value started. Errors at the end of
	// the stream are reported there.
	pos token.Pos
}

func newStream(values ast.ComponentValues, pos token.Pos) *stream {
	return &stream{values: values, pos: pos}
}

// peek returns the next value without consuming it.
func (s *stream) peek() ast.ComponentValue {
	if s.i >= len(s.values) {
		return nil
	}
	return s.values[s.i]
}

// next consumes and returns the next value.
func (s *stream) next() ast.ComponentValue {
	v := s.peek()
	if v != nil {
		s.i++
		s.pos = ast.Position(v)
	}
	return v
}

// skipWhitespace consumes whitespace tokens.
// Returns true if at least one was consumed.
func (s *stream) skipWhitespace() bool {
	var skipped bool
	for isWhitespace(s.peek()) {
		s.next()
		skipped = true
	}
	return skipped
}

func isWhitespace(v ast.ComponentValue) bool {
	if v, ok := v.(*ast.Token); ok {
		_, ok := v.Token.(*token.Whitespace)
		return ok
	}
	return false
}

// literal returns the text of delimiter-like tokens and "" for anything
// else. Comparing against it is how the grammar matches ">", ".", "|"...
func literal(v ast.ComponentValue) string {
	tok, ok := v.(*ast.Token)
	if !ok {
		return ""
	}
	switch tok := tok.Token.(type) {
	case *token.Delim:
		return tok.Value
	case *token.Colon, *token.Comma,
		*token.IncludeMatch, *token.DashMatch, *token.PrefixMatch,
		*token.SuffixMatch, *token.SubstringMatch, *token.Column:
		return tok.String()
	}
	return ""
}

// ident returns the value of an identifier token.
func ident(v ast.ComponentValue) (string, bool) {
	if tok, ok := v.(*ast.Token); ok {
		if tok, ok := tok.Token.(*token.Ident); ok {
			return tok.Value, true
		}
	}
	return "", false
}

// kind names a component value in error messages.
func kind(v ast.ComponentValue) string {
	switch v := v.(type) {
	case nil:
		return "EOF"
	case *ast.SimpleBlock:
		return token.Kind(v.Token) + closing(v.Token) + " block"
	case *ast.Function:
		return "function"
	case *ast.Token:
		return token.Kind(v.Token)
	}
	return "unknown"
}

func closing(tok token.Token) string {
	switch tok.(type) {
	case *token.LBrack:
		return "]"
	case *token.LParen:
		return ")"
	case *token.LBrace:
		return "}"
	}
	return ""
}

// tokenOf returns the token that starts v. Blocks are represented by their
// opening bracket and functions by their name token.
func tokenOf(v ast.ComponentValue) token.Token {
	switch v := v.(type) {
	case *ast.SimpleBlock:
		return v.Token
	case *ast.Function:
		return &token.Function{Value: v.Name, Pos: v.Pos}
	case *ast.Token:
		return v.Token
	}
	return nil
}

// asciiLower lower-cases s in the ASCII range only.
func asciiLower(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}
