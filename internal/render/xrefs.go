package render

import (
	"git.home.luguber.info/inful/lexrender/internal/dictconfig"
	"git.home.luguber.info/inful/lexrender/internal/fields"
	"git.home.luguber.info/inful/lexrender/internal/lexicon"
	"git.home.luguber.info/inful/lexrender/internal/logfields"
	"git.home.luguber.info/inful/lexrender/internal/markup"
	"git.home.luguber.info/inful/lexrender/internal/publication"
	"git.home.luguber.info/inful/lexrender/internal/xref"
)

// Child fields of a cross-reference node.
const (
	// FieldRelationType labels a group; its children pick Name or Abbreviation.
	FieldRelationType = "OwnerType"
	// FieldTargets lists a group's targets; its children render each target.
	FieldTargets = "Targets"
)

var (
	defaultTypeChildren   = []*dictconfig.Node{{FieldDescription: fields.TagName}}
	defaultTargetChildren = []*dictconfig.Node{{FieldDescription: fields.TagHeadWord}}
	defaultXRefChildren   = []*dictconfig.Node{
		{FieldDescription: FieldRelationType},
		{FieldDescription: FieldTargets},
	}
)

// crossReferences renders the relation groups of obj in the order the
// node's list options name the relation types.
func (w *walker) crossReferences(n *dictconfig.Node, obj lexicon.Object) (*markup.Node, error) {
	lf, err := publication.NewListFilter(n)
	if err != nil {
		return nil, err
	}
	groups := w.r.c.XRefs.Resolve(obj, lf.Items())
	if len(groups) == 0 {
		return nil, nil
	}
	parts := enabledOr(n.Children, defaultXRefChildren)

	tag := itemTag(n)
	items := make([]*markup.Node, 0, len(groups))
	for _, g := range groups {
		var kids []*markup.Node
		for _, p := range parts {
			var el *markup.Node
			switch p.FieldDescription {
			case FieldRelationType:
				el = w.relationType(inherit(p, n), g)
			case FieldTargets:
				el, err = w.targets(n, p, g)
				if err != nil {
					return nil, err
				}
			default:
				w.log.Debug("Unsupported cross-reference field", logfields.Field(p.FieldDescription))
			}
			if el != nil {
				kids = append(kids, el)
			}
		}
		if len(kids) == 0 {
			continue
		}
		items = append(items, markup.Element(tag, ItemClass(n), kids...))
	}
	if len(items) == 0 {
		return nil, nil
	}
	return markup.Element(containerTag(n, false), ClassName(n), items...), nil
}

// relationType renders the direction-aware label of g.
func (w *walker) relationType(p *dictconfig.Node, g xref.Group) *markup.Node {
	var kids []*markup.Node
	for _, c := range enabledOr(p.Children, defaultTypeChildren) {
		names := groupLabel(g, c.FieldDescription)
		if names == nil {
			continue
		}
		if el := w.multi(inherit(c, p), names, nil, false); el != nil {
			kids = append(kids, el)
		}
	}
	if len(kids) == 0 {
		return nil
	}
	return markup.Span(ClassName(p), kids...)
}

// groupLabel picks the name or abbreviation of g, reversed when g is seen
// from the other end of a directed relation.
func groupLabel(g xref.Group, field string) lexicon.MultiString {
	reverse := g.Direction == dictconfig.DirectionReverse
	switch field {
	case fields.TagName:
		if reverse && !g.Type.ReverseName.IsEmpty() {
			return g.Type.ReverseName
		}
		return g.Type.Name
	case fields.TagAbbreviation:
		if reverse && !g.Type.ReverseAbbreviation.IsEmpty() {
			return g.Type.ReverseAbbreviation
		}
		return g.Type.Abbreviation
	default:
		return nil
	}
}

// targets renders each target of g; headwords link to their targets.
func (w *walker) targets(owner, p *dictconfig.Node, g xref.Group) (*markup.Node, error) {
	holder := inherit(p, owner)
	children := enabledOr(p.Children, defaultTargetChildren)
	items := make([]*markup.Node, 0, len(g.Targets))
	for _, t := range g.Targets {
		var kids []*markup.Node
		for _, c := range children {
			el, err := w.node(scope{obj: t.Object, ref: true}, inherit(c, p))
			if err != nil {
				return nil, err
			}
			if el != nil {
				kids = append(kids, el)
			}
		}
		if len(kids) == 0 {
			continue
		}
		items = append(items, markup.Span(ItemClass(holder), kids...))
	}
	if len(items) == 0 {
		return nil, nil
	}
	return markup.Span(ClassName(holder), items...), nil
}

// enabledOr returns the enabled nodes of ns, or fallback when ns is empty.
// Children that exist but are all disabled stay disabled.
func enabledOr(ns, fallback []*dictconfig.Node) []*dictconfig.Node {
	if len(ns) == 0 {
		return fallback
	}
	out := make([]*dictconfig.Node, 0, len(ns))
	for _, n := range ns {
		if n.IsEnabled() {
			out = append(out, n)
		}
	}
	return out
}

// inherit returns n attached to parent when n is one of the built-in
// defaults, so diagnostics see a complete path.
func inherit(n, parent *dictconfig.Node) *dictconfig.Node {
	if n.Parent != nil || parent == nil {
		return n
	}
	c := *n
	c.Parent = parent
	return &c
}
