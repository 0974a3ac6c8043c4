package selector

import (
	"github.com/benbjohnson/cssselect/ast"
	"github.com/benbjohnson/cssselect/token"
)

// pseudoElements lists the pseudo-elements that may be written with a
// single colon.
var pseudoElements = map[string]bool{
	"before":       true,
	"after":        true,
	"first-line":   true,
	"first-letter": true,
}

var attributeOperators = map[string]bool{
	"=":  true,
	"~=": true,
	"|=": true,
	"^=": true,
	"$=": true,
	"*=": true,
}

// qualifiedName is a resolved, optionally prefixed name.
type qualifiedName struct {
	Namespace    string
	AnyNamespace bool
	LocalName    string
	AnyLocalName bool
}

// parseSimpleSelector parses one simple selector or a pseudo-element.
// It returns a nil selector and an empty pseudo-element when nothing at
// the cursor starts a simple selector; nothing is consumed in that case.
func parseSimpleSelector(s *stream, ns Namespaces, inNegation bool) (Simple, string, error) {
	peek := s.peek()
	switch v := peek.(type) {
	case nil:
		return nil, "", nil

	case *ast.SimpleBlock:
		if _, ok := v.Token.(*token.LBrack); !ok {
			return nil, "", nil
		}
		s.next()
		sel, err := parseAttributeSelector(newStream(v.Values, ast.Position(v)), ns)
		if err != nil {
			return nil, "", err
		}
		return sel, "", nil

	case *ast.Token:
		if hash, ok := v.Token.(*token.Hash); ok {
			if !hash.IsIdent() {
				return nil, "", nil
			}
			s.next()
			return &IDSelector{ID: hash.Value}, "", nil
		}
	}

	switch literal(peek) {
	case ".":
		s.next()
		next := s.next()
		name, ok := ident(next)
		if !ok {
			return nil, "", errorf(ErrExpectedIdent, s, next, "expected ident, got %s", kind(next))
		}
		return &ClassSelector{Name: name}, "", nil
	case ":":
		s.next()
		return parsePseudo(s, ns, inNegation)
	}
	return nil, "", nil
}

// parsePseudo parses what follows a colon: a pseudo-element, a pseudo-class,
// a functional pseudo-class or a negation.
func parsePseudo(s *stream, ns Namespaces, inNegation bool) (Simple, string, error) {
	next := s.next()

	if literal(next) == ":" {
		v := s.next()
		name, ok := ident(v)
		if !ok {
			return nil, "", errorf(ErrExpectedIdent, s, v, "expected ident, got %s", kind(v))
		}
		return nil, asciiLower(name), nil
	}

	switch v := next.(type) {
	case *ast.Token:
		if name, ok := ident(v); ok {
			name = asciiLower(name)
			if pseudoElements[name] {
				return nil, name, nil
			}
			return &PseudoClassSelector{Name: name}, "", nil
		}

	case *ast.Function:
		name := asciiLower(v.Name)
		if name != "not" {
			return &FunctionalPseudoClassSelector{Name: name, Arguments: v.Values}, "", nil
		}
		if inNegation {
			return nil, "", errorf(ErrNestedNegation, s, v, "nested :not()")
		}
		sel, err := parseNegation(v, ns)
		if err != nil {
			return nil, "", err
		}
		return sel, "", nil
	}

	return nil, "", errorf(ErrUnexpectedToken, s, next, "unexpected %s token", kind(next))
}

// parseNegation parses the arguments of :not(). The argument is either a
// type selector or exactly one simple selector.
func parseNegation(fn *ast.Function, ns Namespaces) (*NegationSelector, error) {
	s := newStream(fn.Values, fn.Pos)

	a, ok, err := parseTypeSelector(s, ns)
	if err != nil {
		return nil, err
	} else if !ok {
		sel, pseudoElement, err := parseSimpleSelector(s, ns, true)
		if err != nil {
			return nil, err
		} else if sel == nil || pseudoElement != "" {
			return nil, errorf(ErrInvalidNegationArgument, s, fn, ":not() only accepts a simple selector")
		}
		a = []Simple{sel}
	}

	s.skipWhitespace()
	if s.next() != nil {
		return nil, errorf(ErrInvalidNegationArgument, s, fn, ":not() only accepts a simple selector")
	}
	return NewNegationSelector(a...), nil
}

// parseAttributeSelector parses the contents of a [] block.
func parseAttributeSelector(s *stream, ns Namespaces) (*AttributeSelector, error) {
	s.skipWhitespace()

	start := s.peek()
	name, ok, err := parseQualifiedName(s, ns, true)
	if err != nil {
		return nil, err
	} else if !ok {
		v := s.next()
		return nil, errorf(ErrExpectedAttributeName, s, v, "expected attribute name, got %s", kind(v))
	} else if name.AnyLocalName {
		return nil, errorf(ErrExpectedAttributeName, s, start, "expected attribute name, got %s", kind(start))
	}

	sel := &AttributeSelector{
		Namespace:    name.Namespace,
		AnyNamespace: name.AnyNamespace,
		Name:         name.LocalName,
	}

	s.skipWhitespace()
	if peek := s.peek(); peek != nil {
		op := literal(peek)
		if !attributeOperators[op] {
			return nil, errorf(ErrExpectedOperator, s, peek, "expected attribute selector operator, got %s", kind(peek))
		}
		s.next()
		s.skipWhitespace()

		v := s.next()
		value, ok := attributeValue(v)
		if !ok {
			return nil, errorf(ErrExpectedAttributeValue, s, v, "expected attribute value, got %s", kind(v))
		}
		sel.Operator, sel.Value = op, value
	}

	s.skipWhitespace()
	if v := s.next(); v != nil {
		return nil, errorf(ErrExpectedClosingBracket, s, v, "expected ], got %s", kind(v))
	}
	return sel, nil
}

// attributeValue returns the value of an ident or string token.
func attributeValue(v ast.ComponentValue) (string, bool) {
	if tok, ok := v.(*ast.Token); ok {
		switch tok := tok.Token.(type) {
		case *token.Ident:
			return tok.Value, true
		case *token.String:
			return tok.Value, true
		}
	}
	return "", false
}

// parseQualifiedName parses "name", "prefix|name", "|name", "*|name" and
// the "*" wildcard forms. It returns false without consuming anything if
// the cursor is not at a qualified name.
//
// Without a prefix, element names are in the default namespace (or any
// namespace if there is none) while attribute names are in no namespace.
func parseQualifiedName(s *stream, ns Namespaces, attribute bool) (qualifiedName, bool, error) {
	var name qualifiedName

	peek := s.peek()
	if prefix, ok := ident(peek); ok {
		s.next()
		if literal(s.peek()) != "|" {
			name = defaultNamespace(ns, attribute)
			name.LocalName = prefix
			return name, true, nil
		}
		s.next()

		uri, ok := ns[prefix]
		if !ok {
			return qualifiedName{}, false, errorf(ErrUndefinedNamespacePrefix, s, peek, "undefined namespace prefix: %s", prefix)
		}
		name.Namespace = uri
	} else {
		switch literal(peek) {
		case "*":
			s.next()
			if literal(s.peek()) != "|" {
				name = defaultNamespace(ns, attribute)
				name.AnyLocalName = true
				return name, true, nil
			}
			s.next()
			name.AnyNamespace = true
		case "|":
			s.next()
		default:
			return qualifiedName{}, false, nil
		}
	}

	// A "|" was just consumed so a local name is required.
	next := s.next()
	if local, ok := ident(next); ok {
		name.LocalName = local
		return name, true, nil
	} else if literal(next) == "*" && !attribute {
		name.AnyLocalName = true
		return name, true, nil
	}
	return qualifiedName{}, false, errorf(ErrExpectedLocalName, s, next, "expected local name, got %s", kind(next))
}

func defaultNamespace(ns Namespaces, attribute bool) qualifiedName {
	if attribute {
		return qualifiedName{}
	}
	if uri, ok := ns[""]; ok {
		return qualifiedName{Namespace: uri}
	}
	return qualifiedName{AnyNamespace: true}
}
