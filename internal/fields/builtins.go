package fields

import (
	"git.home.luguber.info/inful/lexrender/internal/lexicon"
)

// Field tags with built-in accessors.
const (
	TagGUID            = "Guid"
	TagHeadWord        = "HeadWord"
	TagLexemeForm      = "LexemeForm"
	TagCitationForm    = "CitationForm"
	TagHomographNumber = "HomographNumber"
	TagMorphType       = "MorphType"
	TagSenses          = "Senses"
	TagPronunciations  = "Pronunciations"
	TagEtymology       = "Etymology"
	TagNote            = "Note"
	TagBibliography    = "Bibliography"
	TagPictures        = "Pictures"
	TagMainEntryRefs   = "MainEntryRefs"
	TagVariantForms    = "VariantForms"
	TagComplexForms    = "ComplexForms"
	TagCrossReferences = "CrossReferences"
	TagOwningEntry     = "OwningEntry"

	TagGloss           = "Gloss"
	TagDefinition      = "Definition"
	TagGrammar         = "Grammar"
	TagExamples        = "Examples"
	TagSemanticDomains = "SemanticDomains"
	TagScientificName  = "ScientificName"

	TagPartOfSpeech = "PartOfSpeech"
	TagAbbreviation = "Abbreviation"
	TagFeatures     = "Features"

	TagText         = "Text"
	TagTranslations = "Translations"
	TagReference    = "Reference"
	TagType         = "Type"

	TagForm      = "Form"
	TagCVPattern = "CVPattern"
	TagMedia     = "Media"
	TagFile      = "File"
	TagLabel     = "Label"
	TagCaption   = "Caption"

	TagComponents          = "Components"
	TagTypes               = "Types"
	TagSummary             = "Summary"
	TagName                = "Name"
	TagReverseName         = "ReverseName"
	TagReverseAbbreviation = "ReverseAbbreviation"
)

// Default returns a registry with every built-in field.
func Default() *Registry {
	r := NewRegistry()
	registerEntry(r)
	registerSense(r)
	registerLeaves(r)
	registerRefs(r)
	r.Register(AnyClass, TagGUID, func(_ lexicon.Store, o lexicon.Object) (Value, error) {
		return StringValue(o.GUID()), nil
	})
	return r
}

// entryFn adapts a typed accessor to Accessor. The registry only dispatches
// on the class the accessor was registered for.
func entryFn(f func(lexicon.Store, *lexicon.Entry) Value) Accessor {
	return func(s lexicon.Store, o lexicon.Object) (Value, error) {
		e, ok := o.(*lexicon.Entry)
		if !ok {
			return Empty, ErrNoData
		}
		return f(s, e), nil
	}
}

func senseFn(f func(lexicon.Store, *lexicon.Sense) Value) Accessor {
	return func(s lexicon.Store, o lexicon.Object) (Value, error) {
		sn, ok := o.(*lexicon.Sense)
		if !ok {
			return Empty, ErrNoData
		}
		return f(s, sn), nil
	}
}

func typed[T lexicon.Object](f func(T) Value) Accessor {
	return func(_ lexicon.Store, o lexicon.Object) (Value, error) {
		t, ok := o.(T)
		if !ok {
			return Empty, ErrNoData
		}
		return f(t), nil
	}
}

func registerEntry(r *Registry) {
	c := lexicon.ClassEntry
	r.Register(c, TagHeadWord, entryFn(func(_ lexicon.Store, e *lexicon.Entry) Value {
		return MultiValue(e.HeadWords())
	}))
	r.Register(c, TagLexemeForm, entryFn(func(_ lexicon.Store, e *lexicon.Entry) Value { return MultiValue(e.LexemeForm) }))
	r.Register(c, TagCitationForm, entryFn(func(_ lexicon.Store, e *lexicon.Entry) Value { return MultiValue(e.CitationForm) }))
	r.Register(c, TagHomographNumber, entryFn(func(_ lexicon.Store, e *lexicon.Entry) Value { return IntValue(e.HomographNumber) }))
	r.Register(c, TagMorphType, entryFn(func(_ lexicon.Store, e *lexicon.Entry) Value { return StringValue(e.MorphType) }))
	r.Register(c, TagSenses, entryFn(func(_ lexicon.Store, e *lexicon.Entry) Value { return CollectionValue(e.Senses) }))
	r.Register(c, TagPronunciations, entryFn(func(_ lexicon.Store, e *lexicon.Entry) Value { return CollectionValue(e.Pronunciations) }))
	r.Register(c, TagEtymology, entryFn(func(_ lexicon.Store, e *lexicon.Entry) Value { return MultiValue(e.Etymology) }))
	r.Register(c, TagNote, entryFn(func(_ lexicon.Store, e *lexicon.Entry) Value { return MultiValue(e.Note) }))
	r.Register(c, TagBibliography, entryFn(func(_ lexicon.Store, e *lexicon.Entry) Value { return MultiValue(e.Bibliography) }))
	r.Register(c, TagPictures, entryFn(func(_ lexicon.Store, e *lexicon.Entry) Value {
		var pics []*lexicon.Picture
		var walk func([]*lexicon.Sense)
		walk = func(senses []*lexicon.Sense) {
			for _, s := range senses {
				pics = append(pics, s.Pictures...)
				walk(s.Senses)
			}
		}
		walk(e.Senses)
		return CollectionValue(pics)
	}))
	r.Register(c, TagCrossReferences, relationsOf)
	r.RegisterListFiltered(c, TagMainEntryRefs, entryFn(func(_ lexicon.Store, e *lexicon.Entry) Value {
		return CollectionValue(e.EntryRefs)
	}))
	r.RegisterListFiltered(c, TagVariantForms, backRefs(lexicon.RefVariant))
	r.RegisterListFiltered(c, TagComplexForms, backRefs(lexicon.RefComplexForm))
}

func registerSense(r *Registry) {
	c := lexicon.ClassSense
	r.Register(c, TagGloss, senseFn(func(_ lexicon.Store, s *lexicon.Sense) Value { return MultiValue(s.Gloss) }))
	r.Register(c, TagDefinition, senseFn(func(_ lexicon.Store, s *lexicon.Sense) Value { return MultiValue(s.Definition) }))
	r.Register(c, TagNote, senseFn(func(_ lexicon.Store, s *lexicon.Sense) Value { return MultiValue(s.Note) }))
	r.Register(c, TagGrammar, senseFn(func(_ lexicon.Store, s *lexicon.Sense) Value { return ObjectValue(s.Grammar) }))
	r.Register(c, TagExamples, senseFn(func(_ lexicon.Store, s *lexicon.Sense) Value { return CollectionValue(s.Examples) }))
	r.Register(c, TagSenses, senseFn(func(_ lexicon.Store, s *lexicon.Sense) Value { return CollectionValue(s.Senses) }))
	r.Register(c, TagPictures, senseFn(func(_ lexicon.Store, s *lexicon.Sense) Value { return CollectionValue(s.Pictures) }))
	r.Register(c, TagScientificName, senseFn(func(_ lexicon.Store, s *lexicon.Sense) Value { return StringValue(s.ScientificName) }))
	r.Register(c, TagSemanticDomains, senseFn(func(st lexicon.Store, s *lexicon.Sense) Value {
		var out []*lexicon.SemanticDomain
		for _, id := range s.SemanticDomains {
			if d, ok := st.SemanticDomain(id); ok {
				out = append(out, d)
			}
		}
		return RefCollectionValue(out)
	}))
	r.Register(c, TagHeadWord, senseFn(func(st lexicon.Store, s *lexicon.Sense) Value {
		e := lexicon.OwningEntry(st, s)
		if e == nil {
			return Empty
		}
		v := MultiValue(e.HeadWords())
		v.Reference = v.Kind != KindEmpty
		return v
	}))
	r.Register(c, TagCrossReferences, relationsOf)
	r.RegisterListFiltered(c, TagVariantForms, backRefs(lexicon.RefVariant))
	r.RegisterListFiltered(c, TagComplexForms, backRefs(lexicon.RefComplexForm))

	owning := func(s lexicon.Store, o lexicon.Object) (Value, error) {
		return RefValue(lexicon.OwningEntry(s, s.Owner(o))), nil
	}
	for _, cls := range []string{lexicon.ClassSense, lexicon.ClassExample, lexicon.ClassEntryRef, lexicon.ClassPronunciation} {
		r.Register(cls, TagOwningEntry, owning)
	}
}

func registerLeaves(r *Registry) {
	r.Register(lexicon.ClassGramInfo, TagPartOfSpeech, typed(func(g *lexicon.GramInfo) Value { return MultiValue(g.PartOfSpeech) }))
	r.Register(lexicon.ClassGramInfo, TagAbbreviation, typed(func(g *lexicon.GramInfo) Value { return MultiValue(g.Abbreviation) }))
	r.Register(lexicon.ClassGramInfo, TagFeatures, typed(func(g *lexicon.GramInfo) Value { return StringValue(g.Features) }))

	r.Register(lexicon.ClassExample, TagText, typed(func(x *lexicon.Example) Value { return MultiValue(x.Text) }))
	r.Register(lexicon.ClassExample, TagReference, typed(func(x *lexicon.Example) Value { return MultiValue(x.Reference) }))
	r.Register(lexicon.ClassExample, TagTranslations, typed(func(x *lexicon.Example) Value { return CollectionValue(x.Translations) }))
	r.Register(lexicon.ClassTranslation, TagText, typed(func(x *lexicon.Translation) Value { return MultiValue(x.Text) }))
	r.Register(lexicon.ClassTranslation, TagType, typed(func(x *lexicon.Translation) Value { return StringValue(x.Type) }))

	r.Register(lexicon.ClassPronunciation, TagForm, typed(func(p *lexicon.Pronunciation) Value { return MultiValue(p.Form) }))
	r.Register(lexicon.ClassPronunciation, TagCVPattern, typed(func(p *lexicon.Pronunciation) Value { return StringValue(p.CVPattern) }))
	r.Register(lexicon.ClassPronunciation, TagMedia, typed(func(p *lexicon.Pronunciation) Value { return CollectionValue(p.Media) }))
	r.Register(lexicon.ClassMediaFile, TagFile, typed(func(m *lexicon.MediaFile) Value { return MediaValue(m.File, FolderAudioVisual, m) }))
	r.Register(lexicon.ClassMediaFile, TagLabel, typed(func(m *lexicon.MediaFile) Value { return MultiValue(m.Label) }))
	r.Register(lexicon.ClassPicture, TagFile, typed(func(p *lexicon.Picture) Value { return MediaValue(p.File, FolderPictures, p) }))
	r.Register(lexicon.ClassPicture, TagCaption, typed(func(p *lexicon.Picture) Value { return MultiValue(p.Caption) }))

	r.Register(lexicon.ClassSemanticDomain, TagName, typed(func(d *lexicon.SemanticDomain) Value { return MultiValue(d.Name) }))
	r.Register(lexicon.ClassSemanticDomain, TagAbbreviation, typed(func(d *lexicon.SemanticDomain) Value { return MultiValue(d.Abbreviation) }))

	r.Register(lexicon.ClassEntryType, TagName, typed(func(t *lexicon.EntryType) Value { return MultiValue(t.Name) }))
	r.Register(lexicon.ClassEntryType, TagAbbreviation, typed(func(t *lexicon.EntryType) Value { return MultiValue(t.Abbreviation) }))
	r.Register(lexicon.ClassEntryType, TagReverseName, typed(func(t *lexicon.EntryType) Value { return MultiValue(t.ReverseName) }))
	r.Register(lexicon.ClassEntryType, TagReverseAbbreviation, typed(func(t *lexicon.EntryType) Value { return MultiValue(t.ReverseAbbreviation) }))

	r.Register(lexicon.ClassRelationType, TagName, typed(func(t *lexicon.RelationType) Value { return MultiValue(t.Name) }))
	r.Register(lexicon.ClassRelationType, TagAbbreviation, typed(func(t *lexicon.RelationType) Value { return MultiValue(t.Abbreviation) }))
	r.Register(lexicon.ClassRelationType, TagReverseName, typed(func(t *lexicon.RelationType) Value { return MultiValue(t.ReverseName) }))
	r.Register(lexicon.ClassRelationType, TagReverseAbbreviation, typed(func(t *lexicon.RelationType) Value {
		return MultiValue(t.ReverseAbbreviation)
	}))
}

func registerRefs(r *Registry) {
	c := lexicon.ClassEntryRef
	r.Register(c, TagComponents, func(s lexicon.Store, o lexicon.Object) (Value, error) {
		ref, ok := o.(*lexicon.EntryRef)
		if !ok {
			return Empty, ErrNoData
		}
		var out []lexicon.Object
		for _, id := range ref.Components {
			if obj, ok := s.Object(id); ok {
				out = append(out, obj)
			}
		}
		return RefCollectionValue(out), nil
	})
	r.Register(c, TagTypes, func(s lexicon.Store, o lexicon.Object) (Value, error) {
		ref, ok := o.(*lexicon.EntryRef)
		if !ok {
			return Empty, ErrNoData
		}
		var out []*lexicon.EntryType
		for _, id := range ref.Types {
			if t, ok := s.EntryType(id); ok {
				out = append(out, t)
			}
		}
		return RefCollectionValue(out), nil
	})
	r.Register(c, TagSummary, typed(func(ref *lexicon.EntryRef) Value { return MultiValue(ref.Summary) }))
}

// relationsOf defers to the cross-reference resolver.
func relationsOf(_ lexicon.Store, o lexicon.Object) (Value, error) {
	return Value{Kind: KindRelations, Object: o}, nil
}

// backRefs lists the entry references of kind whose components include the
// object, i.e. the minor entries pointing at it.
func backRefs(kind lexicon.RefKind) Accessor {
	return func(s lexicon.Store, o lexicon.Object) (Value, error) {
		var out []*lexicon.EntryRef
		for _, ref := range s.ReferringEntryRefs(o) {
			if ref.Kind == kind {
				out = append(out, ref)
			}
		}
		return RefCollectionValue(out), nil
	}
}
