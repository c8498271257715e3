package publication

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/lexrender/internal/dictconfig"
	"git.home.luguber.info/inful/lexrender/internal/lexicon"
)

func minorConfig(variantTypes ...string) *dictconfig.Configuration {
	var opts []dictconfig.Option
	for _, id := range variantTypes {
		opts = append(opts, dictconfig.Option{ID: id, Enabled: true})
	}
	return &dictconfig.Configuration{
		Name: "minor",
		Parts: []*dictconfig.Node{
			{Label: "Main Entry", FieldDescription: "LexEntry"},
			{
				Label:            "Minor Entry (Variants)",
				FieldDescription: PartMinorVariant,
				ListOptions:      &dictconfig.ListOptions{Options: opts},
			},
		},
	}
}

func TestMinorPartsMatch(t *testing.T) {
	cfg := minorConfig(NoTypeID)
	mp, err := NewMinorParts(cfg)
	require.NoError(t, err)

	variant := &lexicon.Entry{EntryRefs: []*lexicon.EntryRef{{Kind: lexicon.RefVariant}}}
	assert.Same(t, cfg.Parts[1], mp.Match(variant))

	complexForm := &lexicon.Entry{EntryRefs: []*lexicon.EntryRef{{Kind: lexicon.RefComplexForm}}}
	assert.Nil(t, mp.Match(complexForm), "no complex form part is configured")

	typed := &lexicon.Entry{EntryRefs: []*lexicon.EntryRef{{Kind: lexicon.RefVariant, Types: []string{"vt-dialect"}}}}
	assert.Nil(t, mp.Match(typed), "variant type is not enabled")

	var none *MinorParts
	assert.Nil(t, none.Match(variant))
}

func TestMinorPartsRestrictListing(t *testing.T) {
	s := newStore(t)
	variant, _ := s.Entry("variant")

	admitted, err := NewMinorParts(minorConfig(NoTypeID))
	require.NoError(t, err)
	f := New(s, "", WithMinorEntries(true), WithMinorParts(admitted))
	assert.True(t, f.IsListed(variant))
	assert.Same(t, admitted, f.MinorParts())

	refused, err := NewMinorParts(minorConfig("vt-spelling"))
	require.NoError(t, err)
	f = New(s, "", WithMinorEntries(true), WithMinorParts(refused))
	assert.False(t, f.IsListed(variant))
	assert.False(t, f.IsLinkTarget(variant))
	assert.Equal(t, []string{"zebra", "apple", "gone"}, f.ListTopLevelIDs())

	f = New(s, "", WithMinorEntries(false), WithMinorParts(admitted))
	assert.False(t, f.IsListed(variant), "minor entries stay unlisted unless shown")
}
