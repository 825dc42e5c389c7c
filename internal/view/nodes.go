package view

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Fragment is a sequence of sibling nodes. Its only serialization is
// html.Render, which escapes every text node and attribute value, so
// no user text can reach the output unescaped.
type Fragment []*html.Node

func (f Fragment) String() string {
	var b strings.Builder
	for _, n := range f {
		// Render only fails for void elements with children, which
		// the builders below never produce.
		_ = html.Render(&b, n)
	}
	return b.String()
}

func (f Fragment) Empty() bool { return len(f) == 0 }

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

// marker is a valueless marker attribute.
func marker(key string) html.Attribute {
	return html.Attribute{Key: key}
}

func class(val string) html.Attribute {
	return attr("class", val)
}

func el(a atom.Atom, attrs []html.Attribute, children ...*html.Node) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func attrs(a ...html.Attribute) []html.Attribute { return a }

func button(attrList []html.Attribute, children ...*html.Node) *html.Node {
	return el(atom.Button, append(attrs(attr("type", "button")), attrList...), children...)
}

func icon(src, alt string) *html.Node {
	return el(atom.Img, attrs(attr("src", src), attr("alt", alt)))
}
