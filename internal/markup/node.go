// Package markup is the renderer's output tree and its serialisation.
package markup

import (
	"strings"
)

// Attr is an element attribute. Order is preserved on output.
type Attr struct {
	Key string
	Val string
}

// Node is an element (Tag set) or a text run (Tag empty).
type Node struct {
	Tag      string
	Class    string
	Attrs    []Attr
	Children []*Node
	Text     string
}

// Element returns a new element.
func Element(tag, class string, children ...*Node) *Node {
	n := &Node{Tag: tag, Class: class}
	n.Append(children...)
	return n
}

// Span is Element("span", class, ...).
func Span(class string, children ...*Node) *Node { return Element("span", class, children...) }

// Text returns a text run.
func Text(s string) *Node { return &Node{Text: s} }

// IsText reports whether n is a text run.
func (n *Node) IsText() bool { return n.Tag == "" }

// Append adds the non-nil children.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// SetAttr sets key, replacing an existing value in place.
func (n *Node) SetAttr(key, val string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Val = val
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, Val: val})
	return n
}

// Attr returns the value of key.
func (n *Node) Attr(key string) (string, bool) {
	if key == "class" && n.Class != "" {
		return n.Class, true
	}
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

var contentElements = map[string]bool{"img": true, "audio": true, "video": true, "source": true, "br": true}

// HasContent reports whether n shows anything: non-empty text or a media
// element somewhere below it.
func (n *Node) HasContent() bool {
	if n == nil {
		return false
	}
	if n.IsText() {
		return n.Text != ""
	}
	if contentElements[n.Tag] {
		return true
	}
	for _, c := range n.Children {
		if c.HasContent() {
			return true
		}
	}
	return false
}

// TextContent concatenates the text runs below n.
func (n *Node) TextContent() string {
	var b strings.Builder
	n.walk(func(c *Node) bool {
		if c.IsText() {
			b.WriteString(c.Text)
		}
		return true
	})
	return b.String()
}

// FindAll returns the nodes below and including n matching fn, pre-order.
func (n *Node) FindAll(fn func(*Node) bool) []*Node {
	var out []*Node
	n.walk(func(c *Node) bool {
		if fn(c) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// FindClass returns the elements with class.
func (n *Node) FindClass(class string) []*Node {
	return n.FindAll(func(c *Node) bool { return c.Class == class })
}

// Clone deep-copies n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Tag: n.Tag, Class: n.Class, Text: n.Text}
	if len(n.Attrs) > 0 {
		c.Attrs = append([]Attr(nil), n.Attrs...)
	}
	for _, ch := range n.Children {
		c.Children = append(c.Children, ch.Clone())
	}
	return c
}

func (n *Node) walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn)
	}
}
