package token

import (
	"strings"
)

// Token represents a lexical token.
//
// Every token carries the position where it starts. String returns the
// token as CSS text.
type Token interface {
	Position() Pos
	String() string
	token()
}

func (_ *Ident) token()          {}
func (_ *Function) token()       {}
func (_ *AtKeyword) token()      {}
func (_ *Hash) token()           {}
func (_ *String) token()         {}
func (_ *BadString) token()      {}
func (_ *URL) token()            {}
func (_ *BadURL) token()         {}
func (_ *Delim) token()          {}
func (_ *Number) token()         {}
func (_ *Percentage) token()     {}
func (_ *Dimension) token()      {}
func (_ *IncludeMatch) token()   {}
func (_ *DashMatch) token()      {}
func (_ *PrefixMatch) token()    {}
func (_ *SuffixMatch) token()    {}
func (_ *SubstringMatch) token() {}
func (_ *Column) token()         {}
func (_ *Whitespace) token()     {}
func (_ *CDO) token()            {}
func (_ *CDC) token()            {}
func (_ *Colon) token()          {}
func (_ *Semicolon) token()      {}
func (_ *Comma) token()          {}
func (_ *LBrack) token()         {}
func (_ *RBrack) token()         {}
func (_ *LParen) token()         {}
func (_ *RParen) token()         {}
func (_ *LBrace) token()         {}
func (_ *RBrace) token()         {}
func (_ *EOF) token()            {}

// Ident is an identifier with escapes already resolved.
type Ident struct {
	Value string
	Pos
}

func (t *Ident) String() string { return t.Value }

// Function is an identifier immediately followed by "(".
// Value holds the name without the parenthesis.
type Function struct {
	Value string
	Pos
}

func (t *Function) String() string { return t.Value + "(" }

type AtKeyword struct {
	Value string
	Pos
}

func (t *AtKeyword) String() string { return "@" + t.Value }

// Hash is a "#" followed by a name. Type is "id" when the name is a valid
// identifier and "unrestricted" otherwise.
type Hash struct {
	Type  string
	Value string
	Pos
}

func (t *Hash) String() string { return "#" + t.Value }

// IsIdent returns true if the hash value is a valid identifier.
func (t *Hash) IsIdent() bool { return t.Type == "id" }

type String struct {
	Ending rune
	Value  string
	Pos
}

func (t *String) String() string {
	ending := t.Ending
	if ending == 0 {
		ending = '"'
	}
	q := string(ending)
	v := strings.ReplaceAll(t.Value, `\`, `\\`)
	v = strings.ReplaceAll(v, q, `\`+q)
	return q + v + q
}

type BadString struct {
	Pos
}

func (t *BadString) String() string { return "''" }

type URL struct {
	Value string
	Pos
}

func (t *URL) String() string { return "url(" + t.Value + ")" }

type BadURL struct {
	Pos
}

func (t *BadURL) String() string { return "url()" }

// Delim is any single code point that does not start another token.
type Delim struct {
	Value string
	Pos
}

func (t *Delim) String() string { return t.Value }

// Number is a numeric token. Type is either "integer" or "number".
type Number struct {
	Type   string
	Number float64
	Value  string
	Pos
}

func (t *Number) String() string { return t.Value }

type Percentage struct {
	Type   string
	Number float64
	Value  string
	Pos
}

func (t *Percentage) String() string { return t.Value }

type Dimension struct {
	Type   string
	Number float64
	Unit   string
	Value  string
	Pos
}

func (t *Dimension) String() string { return t.Value }

type IncludeMatch struct{ Pos }
type DashMatch struct{ Pos }
type PrefixMatch struct{ Pos }
type SuffixMatch struct{ Pos }
type SubstringMatch struct{ Pos }
type Column struct{ Pos }

func (t *IncludeMatch) String() string   { return "~=" }
func (t *DashMatch) String() string      { return "|=" }
func (t *PrefixMatch) String() string    { return "^=" }
func (t *SuffixMatch) String() string    { return "$=" }
func (t *SubstringMatch) String() string { return "*=" }
func (t *Column) String() string         { return "||" }

type Whitespace struct {
	Value string
	Pos
}

func (t *Whitespace) String() string {
	if t.Value == "" {
		return " "
	}
	return t.Value
}

type CDO struct{ Pos }
type CDC struct{ Pos }

func (t *CDO) String() string { return "<!--" }
func (t *CDC) String() string { return "-->" }

type Colon struct{ Pos }
type Semicolon struct{ Pos }
type Comma struct{ Pos }
type LBrack struct{ Pos }
type RBrack struct{ Pos }
type LParen struct{ Pos }
type RParen struct{ Pos }
type LBrace struct{ Pos }
type RBrace struct{ Pos }

func (t *Colon) String() string     { return ":" }
func (t *Semicolon) String() string { return ";" }
func (t *Comma) String() string     { return "," }
func (t *LBrack) String() string    { return "[" }
func (t *RBrack) String() string    { return "]" }
func (t *LParen) String() string    { return "(" }
func (t *RParen) String() string    { return ")" }
func (t *LBrace) String() string    { return "{" }
func (t *RBrace) String() string    { return "}" }

// EOF marks the end of the token stream.
type EOF struct{ Pos }

func (t *EOF) String() string { return "EOF" }

// Pos specifies the line and character position of a token.
// The Char and Line are both zero-based indexes.
type Pos struct {
	Char int
	Line int
}

// Position returns the position itself so that tokens embedding Pos
// satisfy the Token interface.
func (p Pos) Position() Pos { return p }

// Kind returns the CSS Syntax name of the token's type, e.g. "ident" or
// "whitespace". Bracket tokens are named by their code point.
func Kind(tok Token) string {
	switch tok.(type) {
	case *Ident:
		return "ident"
	case *Function:
		return "function"
	case *AtKeyword:
		return "at-keyword"
	case *Hash:
		return "hash"
	case *String:
		return "string"
	case *BadString:
		return "bad-string"
	case *URL:
		return "url"
	case *BadURL:
		return "bad-url"
	case *Delim:
		return "delim"
	case *Number:
		return "number"
	case *Percentage:
		return "percentage"
	case *Dimension:
		return "dimension"
	case *IncludeMatch:
		return "include-match"
	case *DashMatch:
		return "dash-match"
	case *PrefixMatch:
		return "prefix-match"
	case *SuffixMatch:
		return "suffix-match"
	case *SubstringMatch:
		return "substring-match"
	case *Column:
		return "column"
	case *Whitespace:
		return "whitespace"
	case *CDO:
		return "CDO"
	case *CDC:
		return "CDC"
	case *Colon:
		return "colon"
	case *Semicolon:
		return "semicolon"
	case *Comma:
		return "comma"
	case *LBrack:
		return "["
	case *RBrack:
		return "]"
	case *LParen:
		return "("
	case *RParen:
		return ")"
	case *LBrace:
		return "{"
	case *RBrace:
		return "}"
	case *EOF, nil:
		return "EOF"
	}
	return "unknown"
}
