// SPDX-License-Identifier: MIT

// Package markup holds the HTML node tree every page is assembled from.
// Nodes are plain values; nothing is rendered until Render is called.
package markup

import (
	"fmt"
	"html"
	"io"
	"strings"
)

// Kind tags the variant a Node represents
type Kind int

const (
	KindContainer Kind = iota // any element that wraps children (section, div, main, ...)
	KindHeading               // h1..h6, rank taken from Level
	KindParagraph             // p
	KindLink                  // a
	KindText                  // escaped character data
	KindRaw                   // pre-rendered markup, written verbatim
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindLink:
		return "link"
	case KindText:
		return "text"
	case KindRaw:
		return "raw"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Attr is a single attribute. Attributes keep insertion order so output is stable.
type Attr struct {
	Name  string
	Value string
}

// Node is one element of a markup tree
type Node struct {
	Kind     Kind
	Tag      string // element name for containers
	Level    int    // heading rank for KindHeading
	Attrs    []Attr
	Children []Node
	Text     string // payload for KindText and KindRaw
}

// voidElements never carry children or a closing tag
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// El builds a container element
func El(tag string, attrs []Attr, children ...Node) Node {
	return Node{Kind: KindContainer, Tag: tag, Attrs: attrs, Children: children}
}

// Heading builds an h1..h6 element. Level is not checked here; Render
// refuses ranks outside 1-6.
func Heading(level int, attrs []Attr, children ...Node) Node {
	return Node{Kind: KindHeading, Level: level, Attrs: attrs, Children: children}
}

// Paragraph builds a p element
func Paragraph(children ...Node) Node {
	return Node{Kind: KindParagraph, Children: children}
}

// Link builds an a element pointing at href
func Link(href string, attrs []Attr, children ...Node) Node {
	all := append([]Attr{{Name: "href", Value: href}}, attrs...)
	return Node{Kind: KindLink, Attrs: all, Children: children}
}

// Text builds an escaped text node
func Text(s string) Node {
	return Node{Kind: KindText, Text: s}
}

// Raw wraps markup that has already been rendered or sanitized
func Raw(s string) Node {
	return Node{Kind: KindRaw, Text: s}
}

// A is shorthand for building attribute lists from name/value pairs.
// A trailing name without a value is dropped.
func A(pairs ...string) []Attr {
	attrs := make([]Attr, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		attrs = append(attrs, Attr{Name: pairs[i], Value: pairs[i+1]})
	}
	return attrs
}

// Attr returns the value of the named attribute
func (n Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// TagName resolves the element name for any element kind
func (n Node) TagName() string {
	switch n.Kind {
	case KindHeading:
		return fmt.Sprintf("h%d", n.Level)
	case KindParagraph:
		return "p"
	case KindLink:
		return "a"
	case KindContainer:
		return n.Tag
	default:
		return ""
	}
}

// Render serializes the node and its descendants to w
func (n Node) Render(w io.Writer) error {
	switch n.Kind {
	case KindText:
		_, err := io.WriteString(w, html.EscapeString(n.Text))
		return err
	case KindRaw:
		_, err := io.WriteString(w, n.Text)
		return err
	case KindHeading:
		if n.Level < 1 || n.Level > 6 {
			return fmt.Errorf("heading level %d out of range 1-6", n.Level)
		}
	case KindContainer:
		if n.Tag == "" {
			return fmt.Errorf("container without tag")
		}
	case KindParagraph, KindLink:
	default:
		return fmt.Errorf("unknown node kind: %s", n.Kind)
	}

	tag := n.TagName()
	var open strings.Builder
	open.WriteString("<")
	open.WriteString(tag)
	for _, a := range n.Attrs {
		open.WriteString(" ")
		open.WriteString(a.Name)
		open.WriteString(`="`)
		open.WriteString(html.EscapeString(a.Value))
		open.WriteString(`"`)
	}
	open.WriteString(">")
	if _, err := io.WriteString(w, open.String()); err != nil {
		return err
	}

	if voidElements[tag] {
		if len(n.Children) > 0 {
			return fmt.Errorf("void element <%s> cannot have children", tag)
		}
		return nil
	}

	for _, child := range n.Children {
		if err := child.Render(w); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</"+tag+">")
	return err
}

// String renders the node, returning an HTML comment describing the
// failure instead of the markup when rendering is impossible.
func (n Node) String() string {
	var b strings.Builder
	if err := n.Render(&b); err != nil {
		return "<!-- render error: " + html.EscapeString(err.Error()) + " -->"
	}
	return b.String()
}

// Document writes a full HTML document: doctype followed by root
func Document(w io.Writer, root Node) error {
	if _, err := io.WriteString(w, "<!doctype html>\n"); err != nil {
		return err
	}
	return root.Render(w)
}

// Fragment renders a sequence of sibling nodes
func Fragment(w io.Writer, nodes ...Node) error {
	for _, n := range nodes {
		if err := n.Render(w); err != nil {
			return err
		}
	}
	return nil
}
