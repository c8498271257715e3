package publication

import (
	"git.home.luguber.info/inful/lexrender/internal/dictconfig"
	"git.home.luguber.info/inful/lexrender/internal/lexicon"
)

// Field tags of the configuration parts that lay out minor entries.
const (
	PartMinorVariant = "MinorEntryVariant"
	PartMinorComplex = "MinorEntryComplex"
)

type minorPart struct {
	node   *dictconfig.Node
	kind   lexicon.RefKind
	filter *ListFilter
}

// MinorParts selects the minor-entry part of a configuration that lists a
// minor entry. A minor entry no enabled part accepts is not listed.
type MinorParts struct {
	parts []minorPart
}

// NewMinorParts collects the enabled minor-entry parts of cfg.
func NewMinorParts(cfg *dictconfig.Configuration) (*MinorParts, error) {
	mp := &MinorParts{}
	for _, part := range cfg.MinorEntryParts() {
		p := minorPart{node: part}
		switch part.FieldDescription {
		case PartMinorVariant:
			p.kind = lexicon.RefVariant
		case PartMinorComplex:
			p.kind = lexicon.RefComplexForm
		}
		if part.ListOptions != nil {
			lf, err := NewListFilter(part)
			if err != nil {
				return nil, err
			}
			p.filter = lf
		}
		mp.parts = append(mp.parts, p)
	}
	return mp, nil
}

// Match returns the first part accepting one of the entry's own references,
// or nil.
func (m *MinorParts) Match(e *lexicon.Entry) *dictconfig.Node {
	if m == nil || e == nil {
		return nil
	}
	for _, p := range m.parts {
		for _, ref := range e.EntryRefs {
			if p.kind != "" && ref.Kind != p.kind {
				continue
			}
			if p.filter != nil && !p.filter.AllowsRef(ref, dictconfig.DirectionForward) {
				continue
			}
			return p.node
		}
	}
	return nil
}
