package publication

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/lexrender/internal/collation"
	"git.home.luguber.info/inful/lexrender/internal/lexicon"
)

func newStore(t *testing.T) *lexicon.Lexicon {
	t.Helper()
	doc := &lexicon.Document{
		Publications: []*lexicon.Publication{
			{Base: lexicon.Base{ID: "P1"}},
			{Base: lexicon.Base{ID: "P2"}},
		},
		Entries: []*lexicon.Entry{
			{
				Base:       lexicon.Base{ID: "zebra"},
				LexemeForm: lexicon.MultiString{"en": "zebra"},
				Senses: []*lexicon.Sense{
					{
						Base: lexicon.Base{ID: "s-hidden", DoNotPublishIn: []string{"P1"}},
						Examples: []*lexicon.Example{
							{Base: lexicon.Base{ID: "x-under-hidden"}},
						},
					},
					{
						Base:     lexicon.Base{ID: "s-shown"},
						Examples: []*lexicon.Example{{Base: lexicon.Base{ID: "x-own", DoNotPublishIn: []string{"P2"}}}},
					},
				},
			},
			{Base: lexicon.Base{ID: "apple"}, LexemeForm: lexicon.MultiString{"en": "apple"}},
			{Base: lexicon.Base{ID: "gone", DoNotPublishIn: []string{"P1", "P2"}}, LexemeForm: lexicon.MultiString{"en": "gone"}},
			{
				Base:       lexicon.Base{ID: "variant"},
				LexemeForm: lexicon.MultiString{"en": "zeebra"},
				EntryRefs:  []*lexicon.EntryRef{{Base: lexicon.Base{ID: "r-1"}, Kind: lexicon.RefVariant, Components: []string{"zebra"}}},
			},
			{
				Base:       lexicon.Base{ID: "hidden-variant"},
				LexemeForm: lexicon.MultiString{"en": "apel"},
				EntryRefs: []*lexicon.EntryRef{
					{Base: lexicon.Base{ID: "r-2"}, Kind: lexicon.RefVariant, Components: []string{"apple"}, HideMinorEntry: true},
				},
			},
		},
	}
	lex, err := lexicon.New(doc)
	require.NoError(t, err)
	return lex
}

func obj(t *testing.T, s lexicon.Store, id string) lexicon.Object {
	t.Helper()
	o, ok := s.Object(id)
	require.True(t, ok, id)
	return o
}

func TestIsVisibleFollowsOwnerChain(t *testing.T) {
	s := newStore(t)

	p1 := New(s, "P1")
	assert.False(t, p1.IsVisible(obj(t, s, "s-hidden")))
	assert.False(t, p1.IsVisible(obj(t, s, "x-under-hidden")), "a hidden owner hides its descendants")
	assert.True(t, p1.IsVisible(obj(t, s, "s-shown")))
	assert.True(t, p1.IsVisible(obj(t, s, "x-own")))

	p2 := New(s, "P2")
	assert.True(t, p2.IsVisible(obj(t, s, "s-hidden")))
	assert.True(t, p2.IsVisible(obj(t, s, "x-under-hidden")))
	assert.False(t, p2.IsVisible(obj(t, s, "x-own")))
}

func TestNoPublicationShowsEverything(t *testing.T) {
	s := newStore(t)
	f := New(s, "")
	assert.True(t, f.IsVisible(obj(t, s, "gone")))
	assert.True(t, f.IsVisible(obj(t, s, "x-own")))

	var nilFilter *Filter
	assert.True(t, nilFilter.IsVisible(obj(t, s, "gone")))
}

func TestListTopLevelEntries(t *testing.T) {
	s := newStore(t)

	assert.Equal(t, []string{"zebra", "apple"}, New(s, "P1").ListTopLevelIDs(),
		"minor entries are not listed by default and store order is kept without a collator")

	c, err := collation.New("en")
	require.NoError(t, err)
	key := func(e *lexicon.Entry) string { return e.HeadWord("en") }

	ordered := New(s, "P1", WithMinorEntries(true), WithOrdering(c, key))
	assert.Equal(t, []string{"hidden-variant", "apple", "zebra", "variant"}, ordered.ListTopLevelIDs())
}

func TestMinorEntryVisibilities(t *testing.T) {
	s := newStore(t)
	variant, _ := s.Entry("variant")
	hidden, _ := s.Entry("hidden-variant")

	listing := New(s, "", WithMinorEntries(false))
	assert.False(t, listing.IsListed(variant))
	assert.True(t, listing.IsReferenceable(variant), "unlisted minor entries remain referenceable")
	assert.False(t, listing.IsLinkTarget(variant), "but anchors to them would dangle")

	withMinor := New(s, "", WithMinorEntries(true))
	assert.True(t, withMinor.IsListed(variant))
	assert.True(t, withMinor.IsLinkTarget(variant))
	assert.True(t, withMinor.IsListed(hidden))
	assert.False(t, withMinor.IsReferenceable(hidden))
	assert.False(t, withMinor.IsLinkTarget(hidden))
	assert.True(t, withMinor.IsVisible(hidden))
}
