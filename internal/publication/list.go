package publication

import (
	"git.home.luguber.info/inful/lexrender/internal/dictconfig"
	"git.home.luguber.info/inful/lexrender/internal/foundation/errors"
	"git.home.luguber.info/inful/lexrender/internal/lexicon"
)

// NoTypeID is the list option id matching references that carry no type.
const NoTypeID = "unspecified"

// ListFilter admits typed list members enabled on a configuration node.
type ListFilter struct {
	items []dictconfig.ListItem
}

// NewListFilter builds the filter for node. A node without list options is a
// configuration error: there is no implicit "show all".
func NewListFilter(node *dictconfig.Node) (*ListFilter, error) {
	if node == nil || node.ListOptions == nil {
		name := ""
		if node != nil {
			name = node.Path()
		}
		return nil, errors.ConfigError("node requires list options").
			AtNode(name).
			Build()
	}
	return &ListFilter{items: node.ListOptions.Items()}, nil
}

// Items returns the enabled items in configured order.
func (f *ListFilter) Items() []dictconfig.ListItem { return f.items }

// Allows reports whether typeID is enabled for dir. An option without a
// direction suffix admits both directions.
func (f *ListFilter) Allows(typeID string, dir dictconfig.Direction) bool {
	for _, it := range f.items {
		if it.TypeID != typeID {
			continue
		}
		if it.Direction == dictconfig.DirectionBoth || dir == dictconfig.DirectionBoth || it.Direction == dir {
			return true
		}
	}
	return false
}

// AllowsRef reports whether any type of ref is enabled for dir.
func (f *ListFilter) AllowsRef(ref *lexicon.EntryRef, dir dictconfig.Direction) bool {
	if len(ref.Types) == 0 {
		return f.Allows(NoTypeID, dir)
	}
	for _, t := range ref.Types {
		if f.Allows(t, dir) {
			return true
		}
	}
	return false
}
