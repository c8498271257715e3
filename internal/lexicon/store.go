package lexicon

import (
	"github.com/google/uuid"

	"git.home.luguber.info/inful/lexrender/internal/foundation/errors"
)

// Store is the read-only view of the lexical data store used while rendering.
type Store interface {
	Entry(id string) (*Entry, bool)
	Object(id string) (Object, bool)
	// Entries returns all entries in document order.
	Entries() []*Entry
	// Owner returns the owning object, or nil for top-level objects.
	Owner(obj Object) Object
	EntryType(id string) (*EntryType, bool)
	SemanticDomain(id string) (*SemanticDomain, bool)
	RelationTypes() []*RelationType
	RelationType(id string) (*RelationType, bool)
	// RelationsOf returns the relation instances that include obj as a target.
	RelationsOf(obj Object) []*Relation
	// TypeOf returns the relation type owning rel.
	TypeOf(rel *Relation) *RelationType
	// ReferringEntryRefs returns the entry references whose components include target.
	ReferringEntryRefs(target Object) []*EntryRef
	Publication(id string) (*Publication, bool)
	WritingSystems() []WritingSystem
	// MediaRoot is the directory relative media paths are resolved against.
	MediaRoot() string
}

// Document is the serialisable form of a lexicon.
type Document struct {
	MediaRoot       string            `yaml:"media_root,omitempty" json:"media_root,omitempty"`
	WritingSystems  []WritingSystem   `yaml:"writing_systems,omitempty" json:"writing_systems,omitempty"`
	Publications    []*Publication    `yaml:"publications,omitempty" json:"publications,omitempty"`
	EntryTypes      []*EntryType      `yaml:"entry_types,omitempty" json:"entry_types,omitempty"`
	SemanticDomains []*SemanticDomain `yaml:"semantic_domains,omitempty" json:"semantic_domains,omitempty"`
	RelationTypes   []*RelationType   `yaml:"relation_types,omitempty" json:"relation_types,omitempty"`
	Entries         []*Entry          `yaml:"entries,omitempty" json:"entries,omitempty"`
}

// Lexicon is the in-memory Store built from a Document.
type Lexicon struct {
	doc *Document

	byID      map[string]Object
	entries   map[string]*Entry
	owners    map[string]Object
	relations map[string][]*Relation
	relType   map[*Relation]*RelationType
	backRefs  map[string][]*EntryRef
}

var _ Store = (*Lexicon)(nil)

// New indexes doc. Objects without an id receive a generated one; duplicate
// ids are rejected.
func New(doc *Document) (*Lexicon, error) {
	if doc == nil {
		doc = &Document{}
	}
	l := &Lexicon{
		doc:       doc,
		byID:      make(map[string]Object),
		entries:   make(map[string]*Entry, len(doc.Entries)),
		owners:    make(map[string]Object),
		relations: make(map[string][]*Relation),
		relType:   make(map[*Relation]*RelationType),
		backRefs:  make(map[string][]*EntryRef),
	}
	if err := l.index(); err != nil {
		return nil, err
	}
	return l, nil
}

// Document returns the underlying document.
func (l *Lexicon) Document() *Document { return l.doc }

func (l *Lexicon) index() error {
	for _, p := range l.doc.Publications {
		if err := l.add(p, &p.Base, nil); err != nil {
			return err
		}
	}
	for _, t := range l.doc.EntryTypes {
		if err := l.add(t, &t.Base, nil); err != nil {
			return err
		}
	}
	for _, d := range l.doc.SemanticDomains {
		if err := l.add(d, &d.Base, nil); err != nil {
			return err
		}
	}
	for _, e := range l.doc.Entries {
		if err := l.indexEntry(e); err != nil {
			return err
		}
	}
	for _, rt := range l.doc.RelationTypes {
		if err := l.add(rt, &rt.Base, nil); err != nil {
			return err
		}
		for _, rel := range rt.Relations {
			if err := l.add(rel, &rel.Base, rt); err != nil {
				return err
			}
			l.relType[rel] = rt
			seen := make(map[string]bool, len(rel.Targets))
			for _, target := range rel.Targets {
				if seen[target] {
					continue
				}
				seen[target] = true
				l.relations[target] = append(l.relations[target], rel)
			}
		}
	}
	for _, e := range l.doc.Entries {
		for _, ref := range e.EntryRefs {
			for _, c := range ref.Components {
				l.backRefs[c] = append(l.backRefs[c], ref)
			}
		}
	}
	return nil
}

func (l *Lexicon) indexEntry(e *Entry) error {
	if err := l.add(e, &e.Base, nil); err != nil {
		return err
	}
	l.entries[e.ID] = e
	for _, s := range e.Senses {
		if err := l.indexSense(s, e); err != nil {
			return err
		}
	}
	for _, p := range e.Pronunciations {
		if err := l.add(p, &p.Base, e); err != nil {
			return err
		}
		for _, m := range p.Media {
			if err := l.add(m, &m.Base, p); err != nil {
				return err
			}
		}
	}
	for _, ref := range e.EntryRefs {
		if err := l.add(ref, &ref.Base, e); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lexicon) indexSense(s *Sense, owner Object) error {
	if err := l.add(s, &s.Base, owner); err != nil {
		return err
	}
	if s.Grammar != nil {
		if err := l.add(s.Grammar, &s.Grammar.Base, s); err != nil {
			return err
		}
	}
	for _, ex := range s.Examples {
		if err := l.add(ex, &ex.Base, s); err != nil {
			return err
		}
		for _, tr := range ex.Translations {
			if err := l.add(tr, &tr.Base, ex); err != nil {
				return err
			}
		}
	}
	for _, p := range s.Pictures {
		if err := l.add(p, &p.Base, s); err != nil {
			return err
		}
	}
	for _, sub := range s.Senses {
		if err := l.indexSense(sub, s); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lexicon) add(obj Object, base *Base, owner Object) error {
	if base.ID == "" {
		base.ID = uuid.NewString()
	}
	if _, dup := l.byID[base.ID]; dup {
		return errors.StoreError("duplicate object id").
			WithContext("id", base.ID).
			WithContext("class", obj.Class()).
			Build()
	}
	l.byID[base.ID] = obj
	if owner != nil {
		l.owners[base.ID] = owner
	}
	return nil
}

func (l *Lexicon) Entry(id string) (*Entry, bool) {
	e, ok := l.entries[id]
	return e, ok
}

func (l *Lexicon) Object(id string) (Object, bool) {
	o, ok := l.byID[id]
	return o, ok
}

func (l *Lexicon) Entries() []*Entry { return l.doc.Entries }

func (l *Lexicon) Owner(obj Object) Object {
	if obj == nil {
		return nil
	}
	return l.owners[obj.GUID()]
}

func (l *Lexicon) EntryType(id string) (*EntryType, bool) {
	t, ok := l.byID[id].(*EntryType)
	return t, ok
}

func (l *Lexicon) SemanticDomain(id string) (*SemanticDomain, bool) {
	d, ok := l.byID[id].(*SemanticDomain)
	return d, ok
}

func (l *Lexicon) RelationTypes() []*RelationType { return l.doc.RelationTypes }

func (l *Lexicon) RelationType(id string) (*RelationType, bool) {
	t, ok := l.byID[id].(*RelationType)
	return t, ok
}

func (l *Lexicon) RelationsOf(obj Object) []*Relation {
	if obj == nil {
		return nil
	}
	return l.relations[obj.GUID()]
}

func (l *Lexicon) TypeOf(rel *Relation) *RelationType { return l.relType[rel] }

func (l *Lexicon) ReferringEntryRefs(target Object) []*EntryRef {
	if target == nil {
		return nil
	}
	return l.backRefs[target.GUID()]
}

func (l *Lexicon) Publication(id string) (*Publication, bool) {
	p, ok := l.byID[id].(*Publication)
	return p, ok
}

func (l *Lexicon) WritingSystems() []WritingSystem { return l.doc.WritingSystems }

func (l *Lexicon) MediaRoot() string { return l.doc.MediaRoot }

// OwningEntry walks the ownership chain of obj up to its entry.
func OwningEntry(s Store, obj Object) *Entry {
	for obj != nil {
		if e, ok := obj.(*Entry); ok {
			return e
		}
		obj = s.Owner(obj)
	}
	return nil
}
