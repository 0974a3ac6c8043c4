/*
Package selector implements a parser for CSS selector lists. It turns
tokenized selector text into a tree of selector nodes annotated with their
specificity, for use by a matching engine.

# Basics

Selector parsing builds on the lower level packages. The scanner breaks
selector text into tokens and the parser groups them into component values
such as [...] blocks and :not(...) functions. This package walks those
component values with one value of lookahead.

Selectors can be parsed from raw text or from component values that were
already parsed, for example the prelude of a qualified rule:

	p := selector.NewParser(log)
	list := p.ParseValues(rule.Prelude, ns)
	for sel, err := range list.All() {
		...
	}

A List is lazy: each call to Next parses one more selector. A selector list
is all-or-nothing, so the first invalid selector ends the list with an
*Error and no further selectors are produced.

# Selector Tree

Each Selector owns a Tree which is either a CompoundSelector or a
CombinedSelector. A CombinedSelector joins a tree on the left to a compound
selector on the right with a Combinator. A CompoundSelector is a list of
simple selectors: local names, namespaces, IDs, classes, attributes,
pseudo-classes and negations. A pseudo-element is only allowed at the end
of a selector and is stored on the Selector itself.

Type selectors resolve namespace prefixes through a Namespaces map. An
element name without a prefix is in the default namespace (the "" key) or
in any namespace if there is no default. An attribute name without a prefix
is never in a namespace.

# Specificity

Every node reports a Specificity of (ids, classes, types). Composite nodes
sum their children and a pseudo-element adds one to the type count.
Arguments of functional pseudo-classes are kept as raw component values and
do not add to the specificity.
*/
package selector
