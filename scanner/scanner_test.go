package scanner_test

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/benbjohnson/cssselect/scanner"
	"github.com/benbjohnson/cssselect/token"
)

// Ensure than the scanner returns appropriate tokens and literals.
func TestScanner_Scan(t *testing.T) {
	var tests = []struct {
		s   string
		tok token.Token
	}{
		{s: ``, tok: &token.EOF{}},
		{s: `   `, tok: &token.Whitespace{Value: `   `}},

		{s: `""`, tok: &token.String{Value: ``, Ending: '"'}},
		{s: `"foo`, tok: &token.String{Value: `foo`, Ending: '"'}},
		{s: `"hello world"`, tok: &token.String{Value: `hello world`, Ending: '"'}},
		{s: `'hello world'`, tok: &token.String{Value: `hello world`, Ending: '\''}},
		{s: `'foo\ bar'`, tok: &token.String{Value: `foo bar`, Ending: '\''}},
		{s: `'foo\\bar'`, tok: &token.String{Value: `foo\bar`, Ending: '\''}},
		{s: `'frosty the \2603'`, tok: &token.String{Value: `frosty the ☃`, Ending: '\''}},
		{s: `"say \"hi\""`, tok: &token.String{Value: `say "hi"`, Ending: '"'}},

		{s: `0`, tok: &token.Number{Type: "integer", Value: `0`, Number: 0.0}},
		{s: `1.5`, tok: &token.Number{Type: "number", Value: `1.5`, Number: 1.5}},
		{s: `-100`, tok: &token.Number{Type: "integer", Value: `-100`, Number: -100}},
		{s: `50%`, tok: &token.Percentage{Type: "integer", Value: `50%`, Number: 50}},
		{s: `10px`, tok: &token.Dimension{Type: "integer", Value: `10px`, Number: 10, Unit: "px"}},
		{s: `1.5em`, tok: &token.Dimension{Type: "number", Value: `1.5em`, Number: 1.5, Unit: "em"}},

		{s: `myIdent`, tok: &token.Ident{Value: `myIdent`}},
		{s: `my\2603`, tok: &token.Ident{Value: `my☃`}},
		{s: `\41 bc`, tok: &token.Ident{Value: `Abc`}},
		{s: `-foo`, tok: &token.Ident{Value: `-foo`}},
		{s: `--foo`, tok: &token.Ident{Value: `--foo`}},
		{s: `--a\:b`, tok: &token.Ident{Value: `--a:b`}},
		{s: `u+a`, tok: &token.Ident{Value: `u`}},
		{s: `/* comment */foo`, tok: &token.Ident{Value: `foo`, Pos: token.Pos{Char: 13}}},

		{s: `nth-child(`, tok: &token.Function{Value: `nth-child`}},
		{s: `@media`, tok: &token.AtKeyword{Value: `media`}},
		{s: `url(foo)`, tok: &token.URL{Value: `foo`}},

		{s: `#foo`, tok: &token.Hash{Type: "id", Value: `foo`}},
		{s: `#-foo`, tok: &token.Hash{Type: "id", Value: `-foo`}},
		{s: `#123`, tok: &token.Hash{Type: "unrestricted", Value: `123`}},
		{s: `#`, tok: &token.Delim{Value: `#`}},

		{s: `.`, tok: &token.Delim{Value: `.`}},
		{s: `>`, tok: &token.Delim{Value: `>`}},
		{s: `*`, tok: &token.Delim{Value: `*`}},
		{s: `|`, tok: &token.Delim{Value: `|`}},
		{s: `~=`, tok: &token.IncludeMatch{}},
		{s: `|=`, tok: &token.DashMatch{}},
		{s: `^=`, tok: &token.PrefixMatch{}},
		{s: `$=`, tok: &token.SuffixMatch{}},
		{s: `*=`, tok: &token.SubstringMatch{}},
		{s: `||`, tok: &token.Column{}},

		{s: `:`, tok: &token.Colon{}},
		{s: `;`, tok: &token.Semicolon{}},
		{s: `,`, tok: &token.Comma{}},
		{s: `[`, tok: &token.LBrack{}},
		{s: `]`, tok: &token.RBrack{}},
		{s: `(`, tok: &token.LParen{}},
		{s: `)`, tok: &token.RParen{}},
		{s: `{`, tok: &token.LBrace{}},
		{s: `}`, tok: &token.RBrace{}},
		{s: `<!--`, tok: &token.CDO{}},
		{s: `-->`, tok: &token.CDC{}},
	}

	for i, tt := range tests {
		s := scanner.New(strings.NewReader(tt.s))
		tok := s.Scan()
		if !reflect.DeepEqual(tt.tok, tok) {
			t.Errorf("%d. <%q> token mismatch:\n\nexp=%#v\n\ngot=%#v", i, tt.s, tt.tok, tok)
		}
	}
}

// Ensure that token positions are tracked across lines.
func TestScanner_Scan_Pos(t *testing.T) {
	s := scanner.New(strings.NewReader("a\n  b\r\nc"))

	var got []token.Pos
	for {
		tok := s.Scan()
		if _, ok := tok.(*token.EOF); ok {
			break
		}
		if _, ok := tok.(*token.Ident); ok {
			got = append(got, tok.Position())
		}
	}

	exp := []token.Pos{{Char: 0, Line: 0}, {Char: 2, Line: 1}, {Char: 0, Line: 2}}
	if !reflect.DeepEqual(exp, got) {
		t.Fatalf("unexpected positions: exp=%v, got=%v", exp, got)
	}
}

// Ensure that what looks like a unicode range is scanned as an ident, a plus
// sign and whatever follows.
func TestScanner_Scan_UnicodeRange(t *testing.T) {
	var tests = []struct {
		s    string
		toks []string
	}{
		{s: `u+a`, toks: []string{"ident:u@0", "delim:+@1", "ident:a@2"}},
		{s: `U+abbr`, toks: []string{"ident:U@0", "delim:+@1", "ident:abbr@2"}},
		{s: `a u+b c`, toks: []string{"ident:a@0", "whitespace: @1", "ident:u@2", "delim:+@3", "ident:b@4", "whitespace: @5", "ident:c@6"}},
		{s: `U+0-7F`, toks: []string{"ident:U@0", "delim:+@1", "number:0@2", "dimension:-7F@3"}},
		{s: `u+4??`, toks: []string{"ident:u@0", "delim:+@1", "number:4@2", "delim:?@3", "delim:?@4"}},
	}

	for i, tt := range tests {
		s := scanner.New(strings.NewReader(tt.s))

		var got []string
		for {
			tok := s.Scan()
			if _, ok := tok.(*token.EOF); ok {
				break
			}
			got = append(got, fmt.Sprintf("%s:%s@%d", token.Kind(tok), tok, tok.Position().Char))
		}
		if !reflect.DeepEqual(tt.toks, got) {
			t.Errorf("%d. <%q> tokens mismatch:\n\nexp=%v\n\ngot=%v", i, tt.s, tt.toks, got)
		}
	}
}

// Ensure that a scanned token can be pushed back and read again.
func TestScanner_Unscan(t *testing.T) {
	s := scanner.New(strings.NewReader(`foo bar`))

	if tok := s.Scan(); tok.String() != "foo" {
		t.Fatalf("unexpected token: %s", tok)
	}
	if tok := s.Scan(); token.Kind(tok) != "whitespace" {
		t.Fatalf("unexpected token: %s", token.Kind(tok))
	}
	s.Unscan()
	if tok := s.Current(); tok.String() != "foo" {
		t.Fatalf("unexpected current token: %s", tok)
	}
	if tok := s.Scan(); token.Kind(tok) != "whitespace" {
		t.Fatalf("unexpected rescanned token: %s", token.Kind(tok))
	}
	if tok := s.Scan(); tok.String() != "bar" {
		t.Fatalf("unexpected token: %s", tok)
	}
	if tok := s.Scan(); token.Kind(tok) != "EOF" {
		t.Fatalf("expected EOF, got %s", token.Kind(tok))
	}
	if tok := s.Scan(); token.Kind(tok) != "EOF" {
		t.Fatalf("expected repeated EOF, got %s", token.Kind(tok))
	}
}
