package selector

import (
	"strconv"

	"github.com/benbjohnson/cssselect/ast"
)

// Specificity is the (id, class-like, type) triple used to rank selectors.
type Specificity [3]int

// Add returns the component-wise sum of two specificities.
func (s Specificity) Add(other Specificity) Specificity {
	for i, v := range other {
		s[i] += v
	}
	return s
}

// Compare compares two specificities lexicographically.
// It returns -1, 0 or +1.
func (s Specificity) Compare(other Specificity) int {
	for i := range s {
		switch {
		case s[i] < other[i]:
			return -1
		case s[i] > other[i]:
			return 1
		}
	}
	return 0
}

// Less returns true if s ranks strictly below other.
func (s Specificity) Less(other Specificity) bool {
	return s.Compare(other) < 0
}

func (s Specificity) String() string {
	return "(" + strconv.Itoa(s[0]) + "," + strconv.Itoa(s[1]) + "," + strconv.Itoa(s[2]) + ")"
}

// Namespaces maps namespace prefixes to URIs.
// The empty key holds the default namespace.
type Namespaces map[string]string

// Node represents a node in the selector tree.
type Node interface {
	Specificity() Specificity
	String() string
	node()
}

func (_ *Selector) node()                      {}
func (_ *CombinedSelector) node()              {}
func (_ *CompoundSelector) node()              {}
func (_ *LocalNameSelector) node()             {}
func (_ *NamespaceSelector) node()             {}
func (_ *IDSelector) node()                    {}
func (_ *ClassSelector) node()                 {}
func (_ *AttributeSelector) node()             {}
func (_ *PseudoClassSelector) node()           {}
func (_ *FunctionalPseudoClassSelector) node() {}
func (_ *NegationSelector) node()              {}

// Tree is the root of a parsed selector chain: either a combined or a
// compound selector.
type Tree interface {
	Node
	tree()
}

func (_ *CombinedSelector) tree() {}
func (_ *CompoundSelector) tree() {}

// Simple represents a single simple selector inside a compound selector.
type Simple interface {
	Node
	simple()
}

func (_ *LocalNameSelector) simple()             {}
func (_ *NamespaceSelector) simple()             {}
func (_ *IDSelector) simple()                    {}
func (_ *ClassSelector) simple()                 {}
func (_ *AttributeSelector) simple()             {}
func (_ *PseudoClassSelector) simple()           {}
func (_ *FunctionalPseudoClassSelector) simple() {}
func (_ *NegationSelector) simple()              {}

// Selector is one complete selector of a selector list.
type Selector struct {
	Tree Tree

	// PseudoElement is the lower-cased pseudo-element name, if any.
	PseudoElement string

	spec Specificity
}

// NewSelector returns a selector for tree with an optional pseudo-element.
func NewSelector(tree Tree, pseudoElement string) *Selector {
	spec := tree.Specificity()
	if pseudoElement != "" {
		spec[2]++
	}
	return &Selector{Tree: tree, PseudoElement: pseudoElement, spec: spec}
}

func (s *Selector) Specificity() Specificity { return s.spec }
func (s *Selector) String() string           { return print(s) }

// Combinator joins two compound selectors.
type Combinator int

const (
	Descendant Combinator = iota
	Child
	NextSibling
	SubsequentSibling
)

// String returns the combinator as written in CSS.
func (c Combinator) String() string {
	switch c {
	case Child:
		return ">"
	case NextSibling:
		return "+"
	case SubsequentSibling:
		return "~"
	}
	return " "
}

// combinators maps delimiter text to explicit combinators.
var combinators = map[string]Combinator{
	">": Child,
	"+": NextSibling,
	"~": SubsequentSibling,
}

// CombinedSelector matches a relationship between two elements.
type CombinedSelector struct {
	Left       Tree
	Combinator Combinator
	Right      *CompoundSelector

	spec Specificity
}

// NewCombinedSelector returns left and right joined by a combinator.
func NewCombinedSelector(left Tree, c Combinator, right *CompoundSelector) *CombinedSelector {
	return &CombinedSelector{
		Left:       left,
		Combinator: c,
		Right:      right,
		spec:       left.Specificity().Add(right.Specificity()),
	}
}

func (s *CombinedSelector) Specificity() Specificity { return s.spec }
func (s *CombinedSelector) String() string           { return print(s) }

// CompoundSelector is a sequence of simple selectors matching one element.
// An empty compound selector matches any element.
type CompoundSelector struct {
	Selectors []Simple

	spec Specificity
}

// NewCompoundSelector returns a compound selector over a, in order.
func NewCompoundSelector(a ...Simple) *CompoundSelector {
	return &CompoundSelector{Selectors: a, spec: sum(a)}
}

func (s *CompoundSelector) Specificity() Specificity { return s.spec }
func (s *CompoundSelector) String() string           { return print(s) }

// LocalNameSelector matches an element's local name.
type LocalNameSelector struct {
	Name string
}

func (s *LocalNameSelector) Specificity() Specificity { return Specificity{0, 0, 1} }
func (s *LocalNameSelector) String() string           { return print(s) }

// NamespaceSelector matches an element's namespace URI.
// An empty URI means the element has no namespace.
type NamespaceSelector struct {
	URI string
}

func (s *NamespaceSelector) Specificity() Specificity { return Specificity{} }
func (s *NamespaceSelector) String() string           { return print(s) }

type IDSelector struct {
	ID string
}

func (s *IDSelector) Specificity() Specificity { return Specificity{1, 0, 0} }
func (s *IDSelector) String() string           { return print(s) }

type ClassSelector struct {
	Name string
}

func (s *ClassSelector) Specificity() Specificity { return Specificity{0, 1, 0} }
func (s *ClassSelector) String() string           { return print(s) }

// AttributeSelector matches an attribute's presence or value.
type AttributeSelector struct {
	// Namespace is the attribute namespace URI. An empty namespace means no
	// namespace unless AnyNamespace is set.
	Namespace    string
	AnyNamespace bool
	Name         string

	// Operator is one of "=", "~=", "|=", "^=", "$=" or "*=".
	// It is empty for a presence check, in which case Value is empty too.
	Operator string
	Value    string
}

func (s *AttributeSelector) Specificity() Specificity { return Specificity{0, 1, 0} }
func (s *AttributeSelector) String() string           { return print(s) }

type PseudoClassSelector struct {
	Name string
}

func (s *PseudoClassSelector) Specificity() Specificity { return Specificity{0, 1, 0} }
func (s *PseudoClassSelector) String() string           { return print(s) }

// FunctionalPseudoClassSelector is a pseudo-class written as a function,
// such as :nth-child(2n+1). Arguments are kept as raw component values.
type FunctionalPseudoClassSelector struct {
	Name      string
	Arguments ast.ComponentValues
}

func (s *FunctionalPseudoClassSelector) Specificity() Specificity { return Specificity{0, 1, 0} }
func (s *FunctionalPseudoClassSelector) String() string           { return print(s) }

// NegationSelector is :not() over a type selector or one simple selector.
type NegationSelector struct {
	Selectors []Simple

	spec Specificity
}

// NewNegationSelector returns a negation of a.
func NewNegationSelector(a ...Simple) *NegationSelector {
	return &NegationSelector{Selectors: a, spec: sum(a)}
}

func (s *NegationSelector) Specificity() Specificity { return s.spec }
func (s *NegationSelector) String() string           { return print(s) }

// MaxSpecificity returns the highest specificity in a.
// It returns a zero specificity for an empty list.
func MaxSpecificity(a []*Selector) Specificity {
	var hi Specificity
	for _, s := range a {
		if hi.Less(s.Specificity()) {
			hi = s.Specificity()
		}
	}
	return hi
}

func sum(a []Simple) Specificity {
	var spec Specificity
	for _, s := range a {
		spec = spec.Add(s.Specificity())
	}
	return spec
}
