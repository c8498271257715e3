// Package publication decides what a publication may show: per-object
// visibility along the ownership chain, the top-level entry listing, and
// list-membership filters from configuration nodes.
package publication

import (
	"git.home.luguber.info/inful/lexrender/internal/collation"
	"git.home.luguber.info/inful/lexrender/internal/lexicon"
)

// Filter is a visibility decorator over a lexicon store. The zero
// publication id shows everything.
type Filter struct {
	store       lexicon.Store
	publication string
	showMinor   bool
	minorParts  *MinorParts
	collator    collation.Collator
	sortKey     func(*lexicon.Entry) string
}

// Option configures a Filter.
type Option func(*Filter)

// WithMinorEntries lists minor entries (variants and complex forms) as
// entries of their own.
func WithMinorEntries(show bool) Option {
	return func(f *Filter) { f.showMinor = show }
}

// WithMinorParts restricts listed minor entries to those a part of the
// active configuration accepts. Without it every minor entry is listed when
// minor entries are shown.
func WithMinorParts(mp *MinorParts) Option {
	return func(f *Filter) { f.minorParts = mp }
}

// WithOrdering sorts the top-level listing by key under c.
func WithOrdering(c collation.Collator, key func(*lexicon.Entry) string) Option {
	return func(f *Filter) {
		f.collator = c
		f.sortKey = key
	}
}

// New wraps store for publicationID.
func New(store lexicon.Store, publicationID string, opts ...Option) *Filter {
	f := &Filter{store: store, publication: publicationID}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Store returns the wrapped store.
func (f *Filter) Store() lexicon.Store { return f.store }

// Publication returns the active publication id, or "".
func (f *Filter) Publication() string { return f.publication }

// ShowsMinorEntries reports whether minor entries are listed.
func (f *Filter) ShowsMinorEntries() bool { return f.showMinor }

// MinorParts returns the configured minor-entry parts, or nil.
func (f *Filter) MinorParts() *MinorParts {
	if f == nil {
		return nil
	}
	return f.minorParts
}

// IsVisible reports whether obj and every owner above it are published.
// An object hidden by an owner stays hidden whatever its own flags say.
func (f *Filter) IsVisible(obj lexicon.Object) bool {
	if f == nil || f.publication == "" {
		return true
	}
	for cur := obj; cur != nil; cur = f.store.Owner(cur) {
		if p, ok := cur.(lexicon.Publishable); ok && p.ExcludedFrom(f.publication) {
			return false
		}
	}
	return true
}

// IsListed reports whether entry appears as its own top-level entry.
func (f *Filter) IsListed(entry *lexicon.Entry) bool {
	if entry == nil || !f.IsVisible(entry) {
		return false
	}
	if !entry.IsMinor() {
		return true
	}
	if f == nil || !f.showMinor {
		return false
	}
	return f.minorParts == nil || f.minorParts.Match(entry) != nil
}

// IsReferenceable reports whether obj may be linked to. A minor entry flagged
// hidden is still rendered where it is the target of a reference, but is
// never linked.
func (f *Filter) IsReferenceable(obj lexicon.Object) bool {
	if !f.IsVisible(obj) {
		return false
	}
	entry, ok := obj.(*lexicon.Entry)
	if !ok && f != nil {
		entry = lexicon.OwningEntry(f.store, obj)
	}
	if entry == nil {
		return true
	}
	for _, ref := range entry.EntryRefs {
		if ref.HideMinorEntry {
			return false
		}
	}
	return true
}

// IsLinkTarget reports whether an anchor to obj resolves: obj is
// referenceable and its entry is listed.
func (f *Filter) IsLinkTarget(obj lexicon.Object) bool {
	if f == nil {
		return true
	}
	if !f.IsReferenceable(obj) {
		return false
	}
	entry, ok := obj.(*lexicon.Entry)
	if !ok {
		entry = lexicon.OwningEntry(f.store, obj)
	}
	return entry == nil || f.IsListed(entry)
}

// ListTopLevelEntries returns the listed entries, collator ordered when an
// ordering was configured and in store order otherwise.
func (f *Filter) ListTopLevelEntries() []*lexicon.Entry {
	var out []*lexicon.Entry
	for _, e := range f.store.Entries() {
		if f.IsListed(e) {
			out = append(out, e)
		}
	}
	if f.collator != nil && f.sortKey != nil {
		collation.SortStable(f.collator, out, f.sortKey)
	}
	return out
}

// ListTopLevelIDs is ListTopLevelEntries as ids.
func (f *Filter) ListTopLevelIDs() []string {
	entries := f.ListTopLevelEntries()
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.GUID()
	}
	return ids
}
