package selector

import (
	"io"
	"iter"
	"strings"

	"go.uber.org/zap"

	"github.com/benbjohnson/cssselect/ast"
	"github.com/benbjohnson/cssselect/parser"
	"github.com/benbjohnson/cssselect/scanner"
	"github.com/benbjohnson/cssselect/token"
)

// Parser parses selector lists.
type Parser struct {
	log *zap.Logger
}

// NewParser returns a new selector parser. A nil logger disables logging.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("selector")}
}

// Parse tokenizes text and returns the lazy list of its selectors.
func (p *Parser) Parse(text string, ns Namespaces) *List {
	s := scanner.New(strings.NewReader(text))
	values, err := parser.ParseComponentValues(s)
	for _, e := range s.Errors {
		p.log.Debug("Tokenizer error", zap.String("input", text), zap.Int("line", e.Pos.Line), zap.Int("char", e.Pos.Char), zap.Error(e))
	}

	l := p.ParseValues(values, ns)
	if err != nil {
		l.err = err
	}
	return l
}

// ParseValues returns the lazy list of selectors in already tokenized
// component values, such as the prelude of a qualified rule.
func (p *Parser) ParseValues(values ast.ComponentValues, ns Namespaces) *List {
	var pos token.Pos
	if len(values) > 0 {
		pos = ast.Position(values[0])
	}
	return &List{log: p.log, s: newStream(values, pos), ns: ns}
}

// ParseAll parses text and returns every selector in it.
func (p *Parser) ParseAll(text string, ns Namespaces) ([]*Selector, error) {
	return p.Parse(text, ns).Collect()
}

// Parse returns the lazy list of selectors in text without logging.
func Parse(text string, ns Namespaces) *List {
	return NewParser(nil).Parse(text, ns)
}

// ParseAll parses text and returns every selector in it.
func ParseAll(text string, ns Namespaces) ([]*Selector, error) {
	return NewParser(nil).ParseAll(text, ns)
}

// List is a forward-only sequence of the selectors of a selector list.
// Each selector is parsed when it is requested.
type List struct {
	log     *zap.Logger
	s       *stream
	ns      Namespaces
	started bool
	err     error
}

// Next parses and returns the next selector. It returns io.EOF once the
// list is exhausted. After any error, every later call returns that same
// error.
func (l *List) Next() (*Selector, error) {
	if l.err != nil {
		return nil, l.err
	}

	// Every selector after the first must follow a comma.
	if l.started {
		v := l.s.next()
		if v == nil {
			l.err = io.EOF
			return nil, l.err
		} else if literal(v) != "," {
			return nil, l.fail(errorf(ErrUnexpectedToken, l.s, v, "unexpected %s token", kind(v)))
		}
	}
	l.started = true

	sel, err := parseSelector(l.s, l.ns)
	if err != nil {
		return nil, l.fail(err)
	}
	l.log.Debug("Parsed selector", zap.Stringer("selector", sel), zap.Stringer("specificity", sel.Specificity()))
	return sel, nil
}

// All returns an iterator over the remaining selectors. Iteration stops
// after the first error, which is yielded with a nil selector.
func (l *List) All() iter.Seq2[*Selector, error] {
	return func(yield func(*Selector, error) bool) {
		for {
			sel, err := l.Next()
			if err == io.EOF {
				return
			} else if !yield(sel, err) || err != nil {
				return
			}
		}
	}
}

// Collect returns all remaining selectors. Nothing is returned if any
// selector is invalid.
func (l *List) Collect() ([]*Selector, error) {
	var a []*Selector
	for sel, err := range l.All() {
		if err != nil {
			return nil, err
		}
		a = append(a, sel)
	}
	return a, nil
}

func (l *List) fail(err error) error {
	l.err = err
	l.log.Debug("Invalid selector list", zap.Error(err))
	return err
}

// parseSelector parses a chain of compound selectors joined by combinators.
// Whitespace followed by a comma or the end of input closes the selector
// rather than starting a descendant combinator, so "a , b" is two selectors.
func parseSelector(s *stream, ns Namespaces) (*Selector, error) {
	compound, pseudoElement, err := parseCompoundSelector(s, ns)
	if err != nil {
		return nil, err
	}

	var tree Tree = compound
	for {
		whitespace := s.skipWhitespace()

		// A pseudo-element ends the selector.
		if pseudoElement != "" {
			break
		}

		peek := s.peek()
		if peek == nil || literal(peek) == "," {
			break
		}

		c, ok := combinators[literal(peek)]
		if ok {
			s.next()
		} else if whitespace {
			c = Descendant
		} else {
			break
		}

		if compound, pseudoElement, err = parseCompoundSelector(s, ns); err != nil {
			return nil, err
		}
		tree = NewCombinedSelector(tree, c, compound)
	}
	return NewSelector(tree, pseudoElement), nil
}

// parseCompoundSelector parses an optional type selector followed by simple
// selectors. A pseudo-element ends the compound selector but does not count
// towards it: "::before" alone is empty.
func parseCompoundSelector(s *stream, ns Namespaces) (*CompoundSelector, string, error) {
	a, typed, err := parseTypeSelector(s, ns)
	if err != nil {
		return nil, "", err
	}
	start := s.peek()

	var pseudoElement string
	for {
		sel, pe, err := parseSimpleSelector(s, ns, false)
		if err != nil {
			return nil, "", err
		} else if pe != "" {
			pseudoElement = pe
			break
		} else if sel == nil {
			break
		}
		a = append(a, sel)
	}

	if len(a) == 0 && !typed {
		return nil, "", errorf(ErrEmptyCompoundSelector, s, start, "expected a compound selector, got %s", kind(start))
	}
	return NewCompoundSelector(a...), pseudoElement, nil
}

// parseTypeSelector parses an element name or wildcard. The selectors are
// returned namespace first. A wildcard in any namespace yields no selectors
// but still reports true.
func parseTypeSelector(s *stream, ns Namespaces) ([]Simple, bool, error) {
	s.skipWhitespace()

	name, ok, err := parseQualifiedName(s, ns, false)
	if err != nil || !ok {
		return nil, false, err
	}

	var a []Simple
	if !name.AnyNamespace {
		a = append(a, &NamespaceSelector{URI: name.Namespace})
	}
	if !name.AnyLocalName {
		a = append(a, &LocalNameSelector{Name: name.LocalName})
	}
	return a, true, nil
}
