package selector

import (
	"bytes"
	"io"
	"strconv"
	"strings"
)

// Printer writes the debug representation of selector nodes.
//
// The output is meant for inspection. It re-parses to a selector with the
// same specificity but namespace URIs are written as "{uri}", which is not
// valid selector syntax.
type Printer struct{}

// Print writes n to w.
func (p *Printer) Print(w io.Writer, n Node) (err error) {
	switch n := n.(type) {
	case *Selector:
		if n == nil {
			return nil
		}
		err = p.Print(w, n.Tree)
		if n.PseudoElement != "" {
			_, err = io.WriteString(w, "::"+escapeIdent(n.PseudoElement))
		}

	case *CombinedSelector:
		if n == nil {
			return nil
		}
		_ = p.Print(w, n.Left)
		_, _ = io.WriteString(w, n.Combinator.String())
		err = p.Print(w, n.Right)

	case *CompoundSelector:
		if n == nil {
			return nil
		}
		err = p.printSimples(w, n.Selectors)

	case *LocalNameSelector:
		if n == nil {
			return nil
		}
		_, err = io.WriteString(w, escapeIdent(n.Name))

	case *NamespaceSelector:
		if n == nil {
			return nil
		}
		if n.URI != "" {
			_, _ = io.WriteString(w, "{"+n.URI+"}")
		}
		_, err = w.Write([]byte{'|'})

	case *IDSelector:
		if n == nil {
			return nil
		}
		_, err = io.WriteString(w, "#"+escapeIdent(n.ID))

	case *ClassSelector:
		if n == nil {
			return nil
		}
		_, err = io.WriteString(w, "."+escapeIdent(n.Name))

	case *AttributeSelector:
		if n == nil {
			return nil
		}
		_, _ = w.Write([]byte{'['})
		if n.AnyNamespace {
			_, _ = io.WriteString(w, "*|")
		} else if n.Namespace != "" {
			_, _ = io.WriteString(w, "{"+n.Namespace+"}")
		}
		_, _ = io.WriteString(w, escapeIdent(n.Name))
		if n.Operator != "" {
			_, _ = io.WriteString(w, n.Operator+quote(n.Value))
		}
		_, err = w.Write([]byte{']'})

	case *PseudoClassSelector:
		if n == nil {
			return nil
		}
		_, err = io.WriteString(w, ":"+escapeIdent(n.Name))

	case *FunctionalPseudoClassSelector:
		if n == nil {
			return nil
		}
		_, err = io.WriteString(w, ":"+escapeIdent(n.Name)+"("+n.Arguments.String()+")")

	case *NegationSelector:
		if n == nil {
			return nil
		}
		_, _ = io.WriteString(w, ":not(")
		_ = p.printSimples(w, n.Selectors)
		_, err = w.Write([]byte{')'})
	}

	return
}

// printSimples writes a list of simple selectors. A namespace without a
// local name and an empty list both get the "*" wildcard.
func (p *Printer) printSimples(w io.Writer, a []Simple) (err error) {
	if len(a) == 0 {
		_, err = w.Write([]byte{'*'})
		return err
	}
	for i, sel := range a {
		err = p.Print(w, sel)
		if _, ok := sel.(*NamespaceSelector); ok {
			if i+1 == len(a) {
				_, err = w.Write([]byte{'*'})
			} else if _, ok := a[i+1].(*LocalNameSelector); !ok {
				_, err = w.Write([]byte{'*'})
			}
		}
	}
	return err
}

// print returns the debug representation of n.
func print(n Node) string {
	var p Printer
	var buf bytes.Buffer
	_ = p.Print(&buf, n)
	return buf.String()
}

var quoteReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\a `)

// quote returns s as a double-quoted CSS string.
func quote(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}

// escapeIdent escapes s so that it scans back as a single identifier.
func escapeIdent(s string) string {
	var buf strings.Builder
	for i, ch := range s {
		switch {
		case ch == 0:
			buf.WriteRune('\uFFFD')
		case ch >= '0' && ch <= '9' && (i == 0 || (i == 1 && s[0] == '-')):
			buf.WriteString(`\` + strconv.FormatInt(int64(ch), 16) + ` `)
		case ch == '-' && i == 0 && len(s) == 1:
			buf.WriteString(`\-`)
		case ch < 0x20 || ch == 0x7f:
			buf.WriteString(`\` + strconv.FormatInt(int64(ch), 16) + ` `)
		case ch >= 0x80 || ch == '-' || ch == '_' ||
			(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9'):
			buf.WriteRune(ch)
		default:
			buf.WriteString(`\` + string(ch))
		}
	}
	return buf.String()
}
