package parser

import (
	"fmt"

	"github.com/benbjohnson/cssselect/ast"
	"github.com/benbjohnson/cssselect/token"
)

// parser represents a CSS3 parser.
type parser struct {
	errors ErrorList
}

// ParseStyleSheet parses an input stream into a stylesheet.
func ParseStyleSheet(s Scanner) (*ast.StyleSheet, error) {
	var p parser
	ss := &ast.StyleSheet{}
	ss.Rules = p.consumeRules(s, true)
	return ss, p.error()
}

// ParseRules parses a list of rules.
func ParseRules(s Scanner) (ast.Rules, error) {
	var p parser
	a := p.consumeRules(s, false)
	return a, p.error()
}

// ParseComponentValues parses a list of component values.
// This is the form selector lists are handed to the selector parser in.
func ParseComponentValues(s Scanner) (ast.ComponentValues, error) {
	var a ast.ComponentValues

	// Repeatedly consume a component value until EOF.
	var p parser
	for {
		v := p.consumeComponentValue(s)

		// If the value is an EOF, then exit.
		if v, ok := v.(*ast.Token); ok {
			if _, ok := v.Token.(*token.EOF); ok {
				break
			}
		}

		// Otherwise append to list of component values.
		a = append(a, v)
	}

	return a, nil
}

// Errors returns the error on the parser.
// Returns nil if there are no errors.
func (p *parser) error() error {
	if len(p.errors) == 0 {
		return nil
	}
	return p.errors
}

// consumeRules consumes a list of rules from a token stream. (§5.4.1)
func (p *parser) consumeRules(s Scanner, toplevel bool) ast.Rules {
	var a ast.Rules
	for {
		tok := s.Scan()
		switch tok.(type) {
		case *token.Whitespace:
			// nop
		case *token.EOF:
			return a
		case *token.CDO, *token.CDC:
			if !toplevel {
				s.Unscan()
				if r := p.consumeQualifiedRule(s); r != nil {
					a = append(a, r)
				}
			}
		case *token.AtKeyword:
			a = append(a, p.consumeAtRule(s))
		default:
			s.Unscan()
			if r := p.consumeQualifiedRule(s); r != nil {
				a = append(a, r)
			}
		}
	}
}

// consumeAtRule consumes a single at-rule. (§5.4.2)
// The current token must be the at-keyword.
func (p *parser) consumeAtRule(s Scanner) *ast.AtRule {
	r := &ast.AtRule{}

	// Set the name to the value of the current token.
	r.Name = s.Current().(*token.AtKeyword).Value

	// Repeatedly consume the next token.
	for {
		tok := s.Scan()
		switch tok.(type) {
		case *token.Semicolon, *token.EOF:
			return r
		case *token.LBrace:
			r.Block = p.consumeSimpleBlock(s)
			return r
		default:
			s.Unscan()
			r.Prelude = append(r.Prelude, p.consumeComponentValue(s))
		}
	}
}

// consumeQualifiedRule consumes a single qualified rule. (§5.4.3)
func (p *parser) consumeQualifiedRule(s Scanner) *ast.QualifiedRule {
	r := &ast.QualifiedRule{}

	// Repeatedly consume the next token.
	for {
		tok := s.Scan()
		switch tok := tok.(type) {
		case *token.EOF:
			p.errors = append(p.errors, &Error{Message: "unexpected EOF", Pos: tok.Pos})
			return nil
		case *token.LBrace:
			r.Block = p.consumeSimpleBlock(s)
			return r
		default:
			s.Unscan()
			r.Prelude = append(r.Prelude, p.consumeComponentValue(s))
		}
	}
}

// consumeComponentValue consumes a single component value. (§5.4.6)
func (p *parser) consumeComponentValue(s Scanner) ast.ComponentValue {
	tok := s.Scan()
	switch tok.(type) {
	case *token.LBrace, *token.LBrack, *token.LParen:
		return p.consumeSimpleBlock(s)
	case *token.Function:
		return p.consumeFunction(s)
	default:
		return &ast.Token{Token: tok}
	}
}

// consumeSimpleBlock consumes a simple block. (§5.4.7)
// The current token must be the opening bracket.
func (p *parser) consumeSimpleBlock(s Scanner) *ast.SimpleBlock {
	b := &ast.SimpleBlock{}

	// Set the block's associated token to the current token.
	b.Token = s.Current()

	for {
		tok := s.Scan()

		// If this token is EOF or the mirror of the starting token then return.
		switch tok.(type) {
		case *token.EOF:
			return b
		case *token.RBrack:
			if _, ok := b.Token.(*token.LBrack); ok {
				return b
			}
		case *token.RBrace:
			if _, ok := b.Token.(*token.LBrace); ok {
				return b
			}
		case *token.RParen:
			if _, ok := b.Token.(*token.LParen); ok {
				return b
			}
		}

		// Otherwise consume a component value.
		s.Unscan()
		b.Values = append(b.Values, p.consumeComponentValue(s))
	}
}

// consumeFunction consumes a function. (§5.4.8)
// The current token must be the function token.
func (p *parser) consumeFunction(s Scanner) *ast.Function {
	f := &ast.Function{}

	// Set the name to the first token.
	tok := s.Current().(*token.Function)
	f.Name, f.Pos = tok.Value, tok.Pos

	for {
		tok := s.Scan()

		// If this token is EOF or the mirror of the starting token then return.
		switch tok.(type) {
		case *token.EOF, *token.RParen:
			return f
		}

		// Otherwise consume a component value.
		s.Unscan()
		f.Values = append(f.Values, p.consumeComponentValue(s))
	}
}

// Scanner represents a type that can retrieve the next token.
type Scanner interface {
	Current() token.Token
	Scan() token.Token
	Unscan()
}

// TokenScanner represents a scanner for a fixed list of tokens.
type TokenScanner struct {
	i      int
	tokens []token.Token
}

// NewTokenScanner returns a new instance of TokenScanner.
func NewTokenScanner(tokens []token.Token) *TokenScanner {
	return &TokenScanner{i: -1, tokens: tokens}
}

// Current returns the current token.
func (s *TokenScanner) Current() token.Token {
	if s.i < 0 || s.i >= len(s.tokens) {
		return &token.EOF{}
	}
	return s.tokens[s.i]
}

// Scan returns the next token.
func (s *TokenScanner) Scan() token.Token {
	if s.i < len(s.tokens) {
		s.i++
	}
	return s.Current()
}

// Unscan moves back one token.
func (s *TokenScanner) Unscan() {
	if s.i > -1 {
		s.i--
	}
}

// Error represents a syntax error.
type Error struct {
	Message string
	Pos     token.Pos
}

// Error returns the formatted string error message.
func (e *Error) Error() string {
	return e.Message
}

// ErrorList represents a list of syntax errors.
type ErrorList []error

// Error returns the formatted string error message.
func (a ErrorList) Error() string {
	switch len(a) {
	case 0:
		return "no errors"
	case 1:
		return a[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", a[0], len(a)-1)
}
