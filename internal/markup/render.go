package markup

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ToHTML converts n into an x/net/html tree.
func ToHTML(n *Node) *html.Node {
	if n.IsText() {
		return &html.Node{Type: html.TextNode, Data: n.Text}
	}
	h := &html.Node{Type: html.ElementNode, Data: n.Tag, DataAtom: atom.Lookup([]byte(n.Tag))}
	if n.Class != "" {
		h.Attr = append(h.Attr, html.Attribute{Key: "class", Val: n.Class})
	}
	for _, a := range n.Attrs {
		h.Attr = append(h.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	for _, c := range n.Children {
		h.AppendChild(ToHTML(c))
	}
	return h
}

// FromHTML converts an x/net/html tree into markup nodes. Comments and
// doctypes are dropped.
func FromHTML(h *html.Node) *Node {
	switch h.Type {
	case html.TextNode:
		return Text(h.Data)
	case html.ElementNode:
		n := &Node{Tag: h.Data}
		for _, a := range h.Attr {
			if a.Key == "class" {
				n.Class = a.Val
				continue
			}
			n.Attrs = append(n.Attrs, Attr{Key: a.Key, Val: a.Val})
		}
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			n.Append(FromHTML(c))
		}
		return n
	default:
		return nil
	}
}

// Render serialises n.
func Render(w io.Writer, n *Node) error {
	return html.Render(w, ToHTML(n))
}

// String serialises n, or returns "" for nil.
func String(n *Node) string {
	if n == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// Fragment parses an HTML fragment in a block context.
func Fragment(src string) ([]*Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	parsed, err := html.ParseFragment(strings.NewReader(src), context)
	if err != nil {
		return nil, err
	}
	out := make([]*Node, 0, len(parsed))
	for _, h := range parsed {
		if n := FromHTML(h); n != nil {
			out = append(out, n)
		}
	}
	return out, nil
}

var md = goldmark.New()

// Markdown renders markdown source to markup nodes. Raw HTML in the source is
// not passed through.
func Markdown(src string) ([]*Node, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return nil, err
	}
	return Fragment(buf.String())
}
