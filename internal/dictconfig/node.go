// Package dictconfig models the configuration tree that drives rendering:
// which fields appear, in what order, with which writing systems, numbering
// and list filters.
package dictconfig

import (
	"strings"
)

// Node is one configuration element. The tree is treated as immutable once
// resolved; Parent is set by Resolve.
type Node struct {
	Label string `yaml:"label"`
	// FieldDescription is the field tag bound to this node. Grouping nodes
	// have none.
	FieldDescription string `yaml:"field,omitempty"`
	// SubField dereferences a field of the value bound by FieldDescription.
	SubField             string `yaml:"sub_field,omitempty"`
	CSSClassNameOverride string `yaml:"css_class,omitempty"`
	Disabled             bool   `yaml:"disabled,omitempty"`
	Before               string `yaml:"before,omitempty"`
	Between              string `yaml:"between,omitempty"`
	After                string `yaml:"after,omitempty"`
	// Style holds CSS declarations emitted for this node's class.
	Style string `yaml:"style,omitempty"`
	// LabelSuffix distinguishes a cloned node from the original of the same field.
	LabelSuffix string `yaml:"label_suffix,omitempty"`
	// ReferenceItem names a shared subtree whose children this node adopts.
	ReferenceItem string `yaml:"reference_item,omitempty"`
	IsCustomField bool   `yaml:"custom_field,omitempty"`

	WritingSystems *WritingSystemOptions `yaml:"writing_systems,omitempty"`
	Senses         *SenseOptions         `yaml:"senses,omitempty"`
	ListOptions    *ListOptions          `yaml:"list,omitempty"`
	Paragraph      *ParagraphOptions     `yaml:"paragraph,omitempty"`
	Picture        *PictureOptions       `yaml:"picture,omitempty"`
	Grouping       *GroupingOptions      `yaml:"grouping,omitempty"`

	Children []*Node `yaml:"children,omitempty"`
	Parent   *Node   `yaml:"-"`
}

// IsEnabled reports whether the node takes part in rendering.
func (n *Node) IsEnabled() bool { return n != nil && !n.Disabled }

// IsGroup reports whether the node is a pure wrapper without data binding.
func (n *Node) IsGroup() bool { return n.Grouping != nil && n.FieldDescription == "" }

// IsDuplicate reports whether the node is a labelled clone.
func (n *Node) IsDuplicate() bool { return n.LabelSuffix != "" }

// Name is the label used in diagnostics.
func (n *Node) Name() string {
	name := n.Label
	if name == "" {
		name = n.FieldDescription
	}
	if n.LabelSuffix != "" {
		name += " (" + n.LabelSuffix + ")"
	}
	return name
}

// Path names the node by its ancestry, root first.
func (n *Node) Path() string {
	var parts []string
	for cur := n; cur != nil; cur = cur.Parent {
		parts = append(parts, cur.Name())
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " > ")
}

// EnabledChildren returns the enabled children in order.
func (n *Node) EnabledChildren() []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.IsEnabled() {
			out = append(out, c)
		}
	}
	return out
}

// HasOptions reports whether any options block is set.
func (n *Node) HasOptions() bool {
	return n.WritingSystems != nil || n.Senses != nil || n.ListOptions != nil ||
		n.Paragraph != nil || n.Picture != nil || n.Grouping != nil
}

func (n *Node) shallowCopy() *Node {
	c := *n
	c.Children = nil
	c.Parent = nil
	return &c
}

func (n *Node) adoptOptions(from *Node) {
	n.WritingSystems = from.WritingSystems
	n.Senses = from.Senses
	n.ListOptions = from.ListOptions
	n.Paragraph = from.Paragraph
	n.Picture = from.Picture
	n.Grouping = from.Grouping
}

// Configuration is a named configuration: the top-level parts (main entry
// first, then minor entry parts) and the shared subtrees they may reference.
type Configuration struct {
	Name        string  `yaml:"name"`
	Parts       []*Node `yaml:"parts"`
	SharedItems []*Node `yaml:"shared_items,omitempty"`
}

// MainEntry returns the first part, or nil.
func (c *Configuration) MainEntry() *Node {
	if len(c.Parts) == 0 {
		return nil
	}
	return c.Parts[0]
}

// MinorEntryParts returns the enabled parts after the main entry.
func (c *Configuration) MinorEntryParts() []*Node {
	var out []*Node
	for i, p := range c.Parts {
		if i > 0 && p.IsEnabled() {
			out = append(out, p)
		}
	}
	return out
}

// Walk visits every node depth-first, pre-order, stopping at the first error.
func Walk(n *Node, fn func(*Node) error) error {
	if n == nil {
		return nil
	}
	if err := fn(n); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := Walk(c, fn); err != nil {
			return err
		}
	}
	return nil
}
