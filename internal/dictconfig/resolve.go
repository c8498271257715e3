package dictconfig

import (
	"slices"

	"git.home.luguber.info/inful/lexrender/internal/foundation/errors"
)

// arena holds the shared subtrees, addressed by index.
type arena struct {
	items []*Node
	index map[string]int
}

func newArena(shared []*Node) (*arena, error) {
	a := &arena{items: shared, index: make(map[string]int, len(shared))}
	for i, n := range shared {
		if n.Label == "" {
			return nil, errors.ConfigError("shared item without label").
				WithContext("index", i).
				Build()
		}
		if _, dup := a.index[n.Label]; dup {
			return nil, errors.ConfigError("duplicate shared item").
				WithContext("reference_item", n.Label).
				Build()
		}
		a.index[n.Label] = i
	}
	return a, nil
}

// Resolve returns an effective copy of cfg in which every reference item is
// expanded and every node knows its parent. A reference to an unknown shared
// item, or a chain of references leading back to a shared item already being
// expanded, is a configuration error naming the offending node.
//
// A referencing node keeps its own label, field and decorations; it adopts the
// shared item's children, and its options when it has none of its own.
func Resolve(cfg *Configuration) (*Configuration, error) {
	a, err := newArena(cfg.SharedItems)
	if err != nil {
		return nil, err
	}
	out := &Configuration{Name: cfg.Name, Parts: make([]*Node, 0, len(cfg.Parts))}
	for _, part := range cfg.Parts {
		n, err := a.expand(part, nil, nil)
		if err != nil {
			return nil, err
		}
		out.Parts = append(out.Parts, n)
	}
	return out, nil
}

// expand copies n under parent. path holds the arena indices being expanded
// on the current branch.
func (a *arena) expand(n *Node, parent *Node, path []int) (*Node, error) {
	c := n.shallowCopy()
	c.Parent = parent

	children := n.Children
	for ref := n.ReferenceItem; ref != ""; {
		idx, ok := a.index[ref]
		if !ok {
			return nil, errors.ConfigError("unknown reference item").
				AtNode(c.Path()).
				WithContext("reference_item", ref).
				Build()
		}
		if slices.Contains(path, idx) {
			return nil, errors.ConfigError("reference item cycle").
				AtNode(c.Path()).
				WithContext("reference_item", ref).
				Build()
		}
		path = append(slices.Clone(path), idx)
		shared := a.items[idx]
		children = shared.Children
		if !c.HasOptions() {
			c.adoptOptions(shared)
		}
		ref = shared.ReferenceItem
	}

	for _, child := range children {
		cc, err := a.expand(child, c, path)
		if err != nil {
			return nil, err
		}
		c.Children = append(c.Children, cc)
	}
	return c, nil
}
