package ast

import (
	"strings"

	"github.com/benbjohnson/cssselect/token"
)

// Node represents a node in the CSS3 abstract syntax tree.
type Node interface {
	node()
	String() string
}

func (_ *StyleSheet) node()     {}
func (_ Rules) node()           {}
func (_ *AtRule) node()         {}
func (_ *QualifiedRule) node()  {}
func (_ ComponentValues) node() {}
func (_ *SimpleBlock) node()    {}
func (_ *Function) node()       {}
func (_ *Token) node()          {}

// StyleSheet represents a top-level CSS3 stylesheet.
type StyleSheet struct {
	Rules Rules
}

func (s *StyleSheet) String() string {
	var buf strings.Builder
	for _, r := range s.Rules {
		buf.WriteString(r.String())
		buf.WriteString("\n")
	}
	return buf.String()
}

// Rules represents a list of rules.
type Rules []Rule

func (a Rules) String() string {
	var buf strings.Builder
	for i, r := range a {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(r.String())
	}
	return buf.String()
}

// Rule represents a qualified rule or at-rule.
type Rule interface {
	Node
	rule()
}

func (_ *AtRule) rule()        {}
func (_ *QualifiedRule) rule() {}

// AtRule represents a rule starting with an "@" symbol.
type AtRule struct {
	Name    string
	Prelude ComponentValues
	Block   *SimpleBlock
}

func (r *AtRule) String() string {
	var buf strings.Builder
	buf.WriteString("@" + r.Name)
	buf.WriteString(r.Prelude.String())
	if r.Block != nil {
		buf.WriteString(r.Block.String())
	} else {
		buf.WriteString(";")
	}
	return buf.String()
}

// QualifiedRule represents an unnamed rule that includes a prelude and block.
// For style rules the prelude is the selector list.
type QualifiedRule struct {
	Prelude ComponentValues
	Block   *SimpleBlock
}

func (r *QualifiedRule) String() string {
	s := r.Prelude.String()
	if r.Block != nil {
		s += r.Block.String()
	}
	return s
}

// ComponentValues represents a list of component values.
type ComponentValues []ComponentValue

func (a ComponentValues) String() string {
	var buf strings.Builder
	for _, v := range a {
		buf.WriteString(v.String())
	}
	return buf.String()
}

// Tokens flattens the values back into the tokens they were built from, so
// they can be consumed again by a parser without scanning text.
func (a ComponentValues) Tokens() []token.Token {
	var toks []token.Token
	for _, v := range a {
		switch v := v.(type) {
		case *Token:
			toks = append(toks, v.Token)
		case *SimpleBlock:
			toks = append(toks, v.Token)
			toks = append(toks, v.Values.Tokens()...)
			switch v.Token.(type) {
			case *token.LBrace:
				toks = append(toks, &token.RBrace{})
			case *token.LBrack:
				toks = append(toks, &token.RBrack{})
			case *token.LParen:
				toks = append(toks, &token.RParen{})
			}
		case *Function:
			toks = append(toks, &token.Function{Value: v.Name, Pos: v.Pos})
			toks = append(toks, v.Values.Tokens()...)
			toks = append(toks, &token.RParen{})
		}
	}
	return toks
}

// ComponentValue represents a component value.
type ComponentValue interface {
	Node
	componentValue()
}

func (_ *SimpleBlock) componentValue() {}
func (_ *Function) componentValue()    {}
func (_ *Token) componentValue()       {}

// SimpleBlock represents a {-block, [-block, or (-block.
// Token is the opening bracket token.
type SimpleBlock struct {
	Token  token.Token
	Values ComponentValues
}

func (b *SimpleBlock) String() string {
	switch b.Token.(type) {
	case *token.LBrace:
		return "{" + b.Values.String() + "}"
	case *token.LBrack:
		return "[" + b.Values.String() + "]"
	case *token.LParen:
		return "(" + b.Values.String() + ")"
	}
	return "<>"
}

// Function represents a function call with a list of arguments.
// Name is kept as written; callers compare it case-insensitively.
type Function struct {
	Name   string
	Values ComponentValues
	Pos    token.Pos
}

func (f *Function) String() string {
	return f.Name + "(" + f.Values.String() + ")"
}

// Token represents a single token in the AST.
type Token struct {
	token.Token
}

func (t *Token) String() string {
	return t.Token.String()
}

// Position returns the position where the component value starts.
func Position(v ComponentValue) token.Pos {
	switch v := v.(type) {
	case *SimpleBlock:
		if v.Token != nil {
			return v.Token.Position()
		}
	case *Function:
		return v.Pos
	case *Token:
		if v.Token != nil {
			return v.Token.Position()
		}
	}
	return token.Pos{}
}
