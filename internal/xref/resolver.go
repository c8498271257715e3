// Package xref computes the typed cross-reference groups shown for an entry
// or sense.
package xref

import (
	"git.home.luguber.info/inful/lexrender/internal/collation"
	"git.home.luguber.info/inful/lexrender/internal/dictconfig"
	"git.home.luguber.info/inful/lexrender/internal/lexicon"
	"git.home.luguber.info/inful/lexrender/internal/publication"
	"git.home.luguber.info/inful/lexrender/internal/util/sets"
)

// Target is one related object.
type Target struct {
	Object lexicon.Object
	// Entry is the target itself or the entry owning it.
	Entry    *lexicon.Entry
	HeadWord string
	// Linkable is false when an anchor to the target would not resolve.
	Linkable bool
}

// Group is the targets of one relation type seen in one direction.
type Group struct {
	Type *lexicon.RelationType
	// Direction is DirectionBoth for symmetric types. For directed types,
	// forward lists the parts (or tail) seen from the whole (or head) and
	// reverse lists the whole seen from a part.
	Direction dictconfig.Direction
	Targets   []Target
}

// Name is the label of the group in ws.
func (g Group) Name(ws ...string) string {
	names := g.Type.Name
	if g.Direction == dictconfig.DirectionReverse && !g.Type.ReverseName.IsEmpty() {
		names = g.Type.ReverseName
	}
	_, s := names.Best(ws...)
	return s
}

// Abbreviation is the abbreviated label of the group in ws.
func (g Group) Abbreviation(ws ...string) string {
	abbr := g.Type.Abbreviation
	if g.Direction == dictconfig.DirectionReverse && !g.Type.ReverseAbbreviation.IsEmpty() {
		abbr = g.Type.ReverseAbbreviation
	}
	_, s := abbr.Best(ws...)
	return s
}

// Resolver computes groups under a publication filter.
type Resolver struct {
	filter   *publication.Filter
	collator collation.Collator
	headword func(*lexicon.Entry) string
}

// New returns a resolver. A nil collator keeps authored order everywhere.
func New(filter *publication.Filter, c collation.Collator, headword func(*lexicon.Entry) string) *Resolver {
	return &Resolver{filter: filter, collator: c, headword: headword}
}

type bucketKey struct {
	typeID string
	dir    dictconfig.Direction
}

// Resolve returns the groups for obj in the order the requested types are
// listed. Each (type, direction) group appears once, each target once per
// group, and groups without visible targets are omitted.
func (r *Resolver) Resolve(obj lexicon.Object, requested []dictconfig.ListItem) []Group {
	store := r.filter.Store()
	byType := make(map[string][]*lexicon.Relation)
	for _, rel := range store.RelationsOf(obj) {
		if !r.filter.IsVisible(rel) {
			continue
		}
		if rt := store.TypeOf(rel); rt != nil {
			byType[rt.GUID()] = append(byType[rt.GUID()], rel)
		}
	}

	emitted := sets.New[bucketKey]()
	var groups []Group
	for _, item := range requested {
		rt, ok := store.RelationType(item.TypeID)
		if !ok {
			continue
		}
		rels := byType[rt.GUID()]
		if len(rels) == 0 {
			continue
		}
		for _, dir := range directions(rt.Mapping, item.Direction) {
			if !emitted.Insert(bucketKey{typeID: rt.GUID(), dir: dir}) {
				continue
			}
			g := Group{Type: rt, Direction: dir, Targets: r.collect(obj, rels, dir)}
			if len(g.Targets) == 0 {
				continue
			}
			if rt.Mapping != lexicon.MappingSequence && r.collator != nil {
				collation.SortStable(r.collator, g.Targets, func(t Target) string { return t.HeadWord })
			}
			groups = append(groups, g)
		}
	}
	return groups
}

// directions lists the buckets a request selects. Symmetric mappings have a
// single bucket whatever the request says.
func directions(m lexicon.Mapping, requested dictconfig.Direction) []dictconfig.Direction {
	if m.Symmetric() {
		return []dictconfig.Direction{dictconfig.DirectionBoth}
	}
	switch requested {
	case dictconfig.DirectionForward:
		return []dictconfig.Direction{dictconfig.DirectionForward}
	case dictconfig.DirectionReverse:
		return []dictconfig.Direction{dictconfig.DirectionReverse}
	default:
		return []dictconfig.Direction{dictconfig.DirectionForward, dictconfig.DirectionReverse}
	}
}

func (r *Resolver) collect(obj lexicon.Object, rels []*lexicon.Relation, dir dictconfig.Direction) []Target {
	store := r.filter.Store()
	self := obj.GUID()
	seen := sets.New(self)
	var out []Target
	for _, rel := range rels {
		for _, id := range related(rel, self, dir) {
			if !seen.Insert(id) {
				continue
			}
			target, ok := store.Object(id)
			if !ok || !r.filter.IsVisible(target) {
				continue
			}
			out = append(out, r.target(target))
		}
	}
	return out
}

// related returns the ids obj relates to through rel in dir. The first
// target of a directed relation is its whole (or head).
func related(rel *lexicon.Relation, self string, dir dictconfig.Direction) []string {
	if len(rel.Targets) == 0 {
		return nil
	}
	switch dir {
	case dictconfig.DirectionForward:
		if rel.Targets[0] != self {
			return nil
		}
		return rel.Targets[1:]
	case dictconfig.DirectionReverse:
		for _, id := range rel.Targets[1:] {
			if id == self {
				return rel.Targets[:1]
			}
		}
		return nil
	default:
		return rel.Targets
	}
}

func (r *Resolver) target(obj lexicon.Object) Target {
	entry, ok := obj.(*lexicon.Entry)
	if !ok {
		entry = lexicon.OwningEntry(r.filter.Store(), obj)
	}
	t := Target{Object: obj, Entry: entry, Linkable: r.filter.IsLinkTarget(obj)}
	if entry != nil && r.headword != nil {
		t.HeadWord = r.headword(entry)
	}
	return t
}
