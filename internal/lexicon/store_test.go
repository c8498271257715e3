package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/lexrender/internal/foundation/errors"
)

func sampleDocument() *Document {
	return &Document{
		WritingSystems: []WritingSystem{
			{Code: "seh", Vernacular: true},
			{Code: "en"},
		},
		Publications: []*Publication{{Base: Base{ID: "pub-main"}, Name: MultiString{"en": "Main"}}},
		EntryTypes:   []*EntryType{{Base: Base{ID: "vt-spelling"}, Name: MultiString{"en": "Spelling Variant"}}},
		Entries: []*Entry{
			{
				Base:       Base{ID: "e-main"},
				LexemeForm: MultiString{"seh": "mwana"},
				Senses: []*Sense{
					{
						Base:     Base{ID: "s-1"},
						Gloss:    MultiString{"en": "child"},
						Examples: []*Example{{Base: Base{ID: "x-1"}, Text: MultiString{"seh": "mwana wanga"}}},
						Senses:   []*Sense{{Base: Base{ID: "s-1-1"}, Gloss: MultiString{"en": "offspring"}}},
					},
				},
			},
			{
				Base:         Base{ID: "e-var"},
				LexemeForm:   MultiString{"seh": "mwane"},
				CitationForm: MultiString{"seh": "mwanee"},
				EntryRefs: []*EntryRef{
					{Base: Base{ID: "r-1"}, Kind: RefVariant, Components: []string{"e-main"}, Types: []string{"vt-spelling"}},
				},
			},
		},
		RelationTypes: []*RelationType{
			{
				Base:    Base{ID: "rt-syn"},
				Mapping: MappingCollection,
				Relations: []*Relation{
					{Base: Base{ID: "rel-1"}, Targets: []string{"e-main", "s-1-1", "e-main"}},
				},
			},
		},
	}
}

func TestNewIndexesOwnership(t *testing.T) {
	lex, err := New(sampleDocument())
	require.NoError(t, err)

	sub, ok := lex.Object("s-1-1")
	require.True(t, ok)
	assert.Equal(t, ClassSense, sub.Class())

	parent := lex.Owner(sub)
	require.NotNil(t, parent)
	assert.Equal(t, "s-1", parent.GUID())

	entry := OwningEntry(lex, sub)
	require.NotNil(t, entry)
	assert.Equal(t, "e-main", entry.GUID())

	top, _ := lex.Entry("e-main")
	assert.Nil(t, lex.Owner(top))
}

func TestNewIndexesRelationsAndBackReferences(t *testing.T) {
	lex, err := New(sampleDocument())
	require.NoError(t, err)

	main, _ := lex.Entry("e-main")
	rels := lex.RelationsOf(main)
	require.Len(t, rels, 1, "a target listed twice in one relation is indexed once")
	assert.Equal(t, "rt-syn", lex.TypeOf(rels[0]).GUID())

	refs := lex.ReferringEntryRefs(main)
	require.Len(t, refs, 1)
	assert.Equal(t, "r-1", refs[0].GUID())

	vt, ok := lex.EntryType("vt-spelling")
	require.True(t, ok)
	assert.Equal(t, "Spelling Variant", vt.Name.Get("en"))

	_, ok = lex.EntryType("e-main")
	assert.False(t, ok, "typed lookups reject objects of another class")
}

func TestNewGeneratesMissingIDs(t *testing.T) {
	doc := &Document{Entries: []*Entry{{LexemeForm: MultiString{"seh": "nyumba"}}}}
	lex, err := New(doc)
	require.NoError(t, err)

	id := doc.Entries[0].ID
	require.NotEmpty(t, id)
	got, ok := lex.Entry(id)
	require.True(t, ok)
	assert.Equal(t, "nyumba", got.HeadWord("seh"))
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	doc := &Document{Entries: []*Entry{
		{Base: Base{ID: "dup"}},
		{Base: Base{ID: "dup"}},
	}}
	_, err := New(doc)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryStore))
	id, ok := errors.ContextValue(err, "id")
	require.True(t, ok)
	assert.Equal(t, "dup", id)
}

func TestEntryHeadWord(t *testing.T) {
	lex, err := New(sampleDocument())
	require.NoError(t, err)

	v, _ := lex.Entry("e-var")
	assert.Equal(t, "mwanee", v.HeadWord("seh"), "citation form wins")
	assert.True(t, v.IsMinor())

	m, _ := lex.Entry("e-main")
	assert.Equal(t, "mwana", m.HeadWord("seh"))
	assert.False(t, m.IsMinor())
	assert.Equal(t, MultiString{"seh": "mwanee"}, v.HeadWords())
}

func TestMappingSymmetric(t *testing.T) {
	assert.True(t, MappingCollection.Symmetric())
	assert.True(t, MappingSequence.Symmetric())
	assert.True(t, MappingPair.Symmetric())
	assert.False(t, MappingTree.Symmetric())
	assert.False(t, MappingAsymmetricPair.Symmetric())
}
