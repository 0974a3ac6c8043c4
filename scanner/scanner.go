package scanner

import (
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"github.com/benbjohnson/cssselect/token"
)

// Scanner implements a CSS3 standard compliant scanner.
//
// Lexing is done by tdewolff's CSS lexer. The scanner converts its raw
// output into tokens: escapes are resolved, hash tokens are flagged as
// identifiers, numbers are parsed and comments are dropped. Positions are
// tracked by the scanner itself.
type Scanner struct {
	// Errors contains a list of all errors that occur during scanning.
	Errors []*Error

	input   *parse.Input
	lexer   *css.Lexer
	pending token.Token // split off a unicode range, returned next
	pos     token.Pos
	cr      bool // last code point was a carriage return

	buf  [4]token.Token // circular buffer for tokens
	bufi int            // circular buffer index
	bufn int            // number of buffered tokens
}

// New returns a new instance of Scanner.
func New(r io.Reader) *Scanner {
	s := &Scanner{}
	s.reset(parse.NewInput(r))
	return s
}

// reset makes the scanner read from input.
func (s *Scanner) reset(input *parse.Input) {
	s.input = input
	s.lexer = css.NewLexer(input)
}

// Scan returns the next token.
// Once the input is exhausted every call returns an EOF token.
func (s *Scanner) Scan() token.Token {
	// If we have tokens on our internal lookahead buffer then return those.
	if s.bufn > 0 {
		s.bufi = ((s.bufi + 1) % len(s.buf))
		s.bufn--
		return s.buf[s.bufi]
	}

	// Otherwise read from the lexer.
	tok := s.scan()

	// Add to circular buffer.
	s.bufi = ((s.bufi + 1) % len(s.buf))
	s.buf[s.bufi] = tok
	return tok
}

// Unscan pushes the previously scanned token back onto the buffer.
func (s *Scanner) Unscan() {
	s.bufi = ((s.bufi + len(s.buf) - 1) % len(s.buf))
	s.bufn++
}

// Current returns the last scanned token.
func (s *Scanner) Current() token.Token {
	if tok := s.buf[s.bufi]; tok != nil {
		return tok
	}
	return &token.EOF{Pos: s.pos}
}

// scan converts the next lexer token.
func (s *Scanner) scan() token.Token {
	if tok := s.pending; tok != nil {
		s.pending = nil
		return tok
	}

	for {
		tt, data := s.lexer.Next()
		pos := s.pos
		s.advance(data)

		switch tt {
		case css.ErrorToken:
			if err := s.lexer.Err(); err != nil && err != io.EOF {
				s.Errors = append(s.Errors, &Error{Message: err.Error(), Pos: pos})
			}
			return &token.EOF{Pos: pos}
		case css.CommentToken:
			// Comments are ignored by the scanner.
			continue
		case css.IdentToken:
			return &token.Ident{Value: unescape(data), Pos: pos}
		case css.FunctionToken:
			return &token.Function{Value: unescape(data[:len(data)-1]), Pos: pos}
		case css.AtKeywordToken:
			return &token.AtKeyword{Value: unescape(data[1:]), Pos: pos}
		case css.HashToken:
			typ := "unrestricted"
			if startsIdent(data[1:]) {
				typ = "id"
			}
			return &token.Hash{Type: typ, Value: unescape(data[1:]), Pos: pos}
		case css.StringToken:
			return scanString(data, pos)
		case css.BadStringToken:
			s.Errors = append(s.Errors, &Error{Message: "unterminated string", Pos: pos})
			return &token.BadString{Pos: pos}
		case css.URLToken:
			return &token.URL{Value: scanURL(data), Pos: pos}
		case css.BadURLToken:
			s.Errors = append(s.Errors, &Error{Message: "invalid url", Pos: pos})
			return &token.BadURL{Pos: pos}
		case css.NumberToken:
			num, typ := scanNumber(data)
			return &token.Number{Type: typ, Number: num, Value: string(data), Pos: pos}
		case css.PercentageToken:
			num, typ := scanNumber(data[:len(data)-1])
			return &token.Percentage{Type: typ, Number: num, Value: string(data), Pos: pos}
		case css.DimensionToken:
			n := numberLen(data)
			num, typ := scanNumber(data[:n])
			return &token.Dimension{Type: typ, Number: num, Unit: unescape(data[n:]), Value: string(data), Pos: pos}
		case css.UnicodeRangeToken:
			// There are no unicode-range tokens, "u+a" is an ident and a
			// delim. Lexing restarts after the plus sign so that "u+abbr"
			// continues with the ident "abbr".
			s.splitUnicodeRange(data, pos)
			return &token.Ident{Value: string(data[:1]), Pos: pos}
		case css.CustomPropertyNameToken:
			return &token.Ident{Value: unescape(data), Pos: pos}
		case css.IncludeMatchToken:
			return &token.IncludeMatch{Pos: pos}
		case css.DashMatchToken:
			return &token.DashMatch{Pos: pos}
		case css.PrefixMatchToken:
			return &token.PrefixMatch{Pos: pos}
		case css.SuffixMatchToken:
			return &token.SuffixMatch{Pos: pos}
		case css.SubstringMatchToken:
			return &token.SubstringMatch{Pos: pos}
		case css.ColumnToken:
			return &token.Column{Pos: pos}
		case css.WhitespaceToken:
			return &token.Whitespace{Value: string(data), Pos: pos}
		case css.CDOToken:
			return &token.CDO{Pos: pos}
		case css.CDCToken:
			return &token.CDC{Pos: pos}
		case css.ColonToken:
			return &token.Colon{Pos: pos}
		case css.SemicolonToken:
			return &token.Semicolon{Pos: pos}
		case css.CommaToken:
			return &token.Comma{Pos: pos}
		case css.LeftBracketToken:
			return &token.LBrack{Pos: pos}
		case css.RightBracketToken:
			return &token.RBrack{Pos: pos}
		case css.LeftParenthesisToken:
			return &token.LParen{Pos: pos}
		case css.RightParenthesisToken:
			return &token.RParen{Pos: pos}
		case css.LeftBraceToken:
			return &token.LBrace{Pos: pos}
		case css.RightBraceToken:
			return &token.RBrace{Pos: pos}
		default:
			// Everything else, including a lone backslash, is a DELIM.
			return &token.Delim{Value: string(data), Pos: pos}
		}
	}
}

// splitUnicodeRange queues the plus sign of a unicode range read at pos and
// rewinds the input to just after it.
func (s *Scanner) splitUnicodeRange(data []byte, pos token.Pos) {
	buf := s.input.Bytes()
	rest := buf[s.input.Offset()-len(data)+2:]
	s.reset(parse.NewInputBytes(rest))

	s.pos, s.cr = pos, false
	s.advance(data[:1])
	s.pending = &token.Delim{Value: "+", Pos: s.pos}
	s.advance(data[1:2])
}

// advance moves the scanner position past data.
// CR, CRLF and FF each count as a single newline. (§3.3)
func (s *Scanner) advance(data []byte) {
	for len(data) > 0 {
		ch, size := utf8.DecodeRune(data)
		data = data[size:]

		switch {
		case ch == '\n' && s.cr:
			// second half of CRLF
		case ch == '\n' || ch == '\r' || ch == '\f':
			s.pos.Line++
			s.pos.Char = 0
		default:
			s.pos.Char++
		}
		s.cr = ch == '\r'
	}
}

// scanString converts a quoted string token.
// An EOF closes out a string so the closing quote may be missing.
func scanString(data []byte, pos token.Pos) token.Token {
	ending := rune(data[0])
	body := data[1:]
	if n := len(body); n > 0 && rune(body[n-1]) == ending && !escaped(body, n-1) {
		body = body[:n-1]
	}
	return &token.String{Ending: ending, Value: unescape(body), Pos: pos}
}

// escaped returns true if the byte at i is preceded by an odd number of
// backslashes.
func escaped(b []byte, i int) bool {
	n := 0
	for i--; i >= 0 && b[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// scanURL extracts the value of a url(...) token, quoted or not.
func scanURL(data []byte) string {
	s := string(data)
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(s, ")")
	s = strings.Trim(s, " \t\n\r\f")
	if n := len(s); n >= 2 && (s[0] == '"' || s[0] == '\'') && s[n-1] == s[0] {
		s = s[1 : n-1]
	}
	return unescape([]byte(s))
}

// scanNumber parses a number and reports its type flag.
func scanNumber(data []byte) (float64, string) {
	typ := "integer"
	if strings.ContainsAny(string(data), ".eE") {
		typ = "number"
	}
	num, _ := strconv.ParseFloat(string(data), 64)
	return num, typ
}

// numberLen returns the length of the number at the start of data.
func numberLen(data []byte) int {
	i := 0
	if i < len(data) && (data[i] == '+' || data[i] == '-') {
		i++
	}
	i += digits(data[i:])

	// A full stop is only part of the number if a digit follows.
	if i+1 < len(data) && data[i] == '.' && isDigit(rune(data[i+1])) {
		i++
		i += digits(data[i:])
	}

	// Scientific notation (e0, e+0, e-0, E0, E+0, E-0).
	if i < len(data) && (data[i] == 'e' || data[i] == 'E') {
		j := i + 1
		if j < len(data) && (data[j] == '+' || data[j] == '-') {
			j++
		}
		if n := digits(data[j:]); n > 0 {
			i = j + n
		}
	}
	return i
}

// digits returns the number of leading digits in data.
func digits(data []byte) int {
	n := 0
	for n < len(data) && isDigit(rune(data[n])) {
		n++
	}
	return n
}

// unescape resolves CSS escapes in a name or string body.
// An escaped newline is removed, which only happens inside strings.
func unescape(data []byte) string {
	if !strings.ContainsRune(string(data), '\\') {
		return string(data)
	}

	var buf strings.Builder
	for i := 0; i < len(data); {
		ch, size := utf8.DecodeRune(data[i:])
		i += size
		if ch != '\\' {
			_, _ = buf.WriteRune(ch)
			continue
		}

		// A trailing backslash becomes the replacement character.
		if i >= len(data) {
			_, _ = buf.WriteRune('\uFFFD')
			break
		}

		next, size := utf8.DecodeRune(data[i:])
		if next == '\n' || next == '\f' {
			i += size
			continue
		} else if next == '\r' {
			i += size
			if i < len(data) && data[i] == '\n' {
				i++
			}
			continue
		} else if !isHexDigit(next) {
			_, _ = buf.WriteRune(next)
			i += size
			continue
		}

		// Consume up to 6 hex digits and one trailing whitespace.
		j := i
		for j < len(data) && j-i < 6 && isHexDigit(rune(data[j])) {
			j++
		}
		v, _ := strconv.ParseInt(string(data[i:j]), 16, 32)
		i = j
		if i < len(data) && isWhitespace(rune(data[i])) {
			if data[i] == '\r' && i+1 < len(data) && data[i+1] == '\n' {
				i++
			}
			i++
		}

		r := rune(v)
		if r == 0 || r > utf8.MaxRune || (r >= 0xD800 && r <= 0xDFFF) {
			r = '\uFFFD'
		}
		_, _ = buf.WriteRune(r)
	}
	return buf.String()
}

// startsIdent returns true if the code points would start an identifier.
func startsIdent(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	ch, size := utf8.DecodeRune(data)
	switch {
	case ch == '-':
		if len(data) == size {
			return false
		}
		next, _ := utf8.DecodeRune(data[size:])
		return isNameStart(next) || next == '-' || (next == '\\' && validEscape(data[size:]))
	case ch == '\\':
		return validEscape(data)
	default:
		return isNameStart(ch)
	}
}

// validEscape checks if data starts with a backslash not followed by a newline.
func validEscape(data []byte) bool {
	return len(data) >= 2 && data[0] == '\\' && data[1] != '\n' && data[1] != '\r' && data[1] != '\f'
}

// isWhitespace returns true if the rune is a space, tab, or newline.
func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f'
}

// isLetter returns true if the rune is a letter.
func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// isDigit returns true if the rune is a digit.
func isDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9')
}

// isHexDigit returns true if the rune is a hex digit.
func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// isNonASCII returns true if the rune is greater than U+0080.
func isNonASCII(ch rune) bool {
	return ch >= '\u0080'
}

// isNameStart returns true if the rune can start a name.
func isNameStart(ch rune) bool {
	return isLetter(ch) || isNonASCII(ch) || ch == '_'
}

// Error represents a scan error.
type Error struct {
	Message string
	Pos     token.Pos
}

// Error returns the formatted string error message.
func (e *Error) Error() string {
	return e.Message
}
