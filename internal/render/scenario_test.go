package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/lexrender/internal/assets"
	"git.home.luguber.info/inful/lexrender/internal/dictconfig"
	"git.home.luguber.info/inful/lexrender/internal/fields"
	"git.home.luguber.info/inful/lexrender/internal/lexicon"
	"git.home.luguber.info/inful/lexrender/internal/markup"
	"git.home.luguber.info/inful/lexrender/internal/publication"
)

func numberedSensesConfig() *dictconfig.Node {
	return mainEntry(
		node(fields.TagHeadWord),
		senseList(dictconfig.SenseOptions{NumberingStyle: "%d"}, withWS(node(fields.TagGloss), "en")),
	)
}

func TestScenarioTwoSensesAreNumbered(t *testing.T) {
	doc := &lexicon.Document{Entries: []*lexicon.Entry{{
		Base:       lexicon.Base{ID: "e-1"},
		LexemeForm: vern("munthu"),
		Senses: []*lexicon.Sense{
			{Base: lexicon.Base{ID: "s-1"}, Gloss: en("man")},
			{Base: lexicon.Base{ID: "s-2"}, Gloss: en("second gloss")},
		},
	}}}
	r := newRenderer(t, newStore(t, doc), nil)

	out := renderEntry(t, r, "e-1", numberedSensesConfig())
	senses := out.FindClass("sense")
	require.Len(t, senses, 2)
	assert.Equal(t, []string{"1"}, texts(senses[0], ClassSenseNumber))
	assert.Equal(t, []string{"man"}, texts(senses[0], "gloss"))
	assert.Equal(t, []string{"2"}, texts(senses[1], ClassSenseNumber))
	assert.Equal(t, []string{"second gloss"}, texts(senses[1], "gloss"))
}

func TestScenarioSingleSenseIsNotNumbered(t *testing.T) {
	doc := &lexicon.Document{Entries: []*lexicon.Entry{{
		Base:       lexicon.Base{ID: "e-1"},
		LexemeForm: vern("munthu"),
		Senses:     []*lexicon.Sense{{Base: lexicon.Base{ID: "s-1"}, Gloss: en("man")}},
	}}}
	r := newRenderer(t, newStore(t, doc), nil)

	out := renderEntry(t, r, "e-1", numberedSensesConfig())
	require.NotNil(t, out)
	assert.Empty(t, out.FindClass(ClassSenseNumber))
	assert.Equal(t, []string{"man"}, texts(out, "gloss"))
}

func TestScenarioSenseHiddenInOnePublication(t *testing.T) {
	doc := &lexicon.Document{
		Publications: []*lexicon.Publication{
			{Base: lexicon.Base{ID: "p1"}, Name: en("School")},
			{Base: lexicon.Base{ID: "p2"}, Name: en("Full")},
		},
		Entries: []*lexicon.Entry{{
			Base:       lexicon.Base{ID: "e-1"},
			LexemeForm: vern("munthu"),
			Senses: []*lexicon.Sense{
				{Base: lexicon.Base{ID: "s-1"}, Gloss: en("man")},
				{
					Base:     lexicon.Base{ID: "s-2", DoNotPublishIn: []string{"p1"}},
					Gloss:    en("ancestor"),
					Examples: []*lexicon.Example{{Text: vern("munthu wakale")}},
				},
			},
		}},
	}
	store := newStore(t, doc)
	cfg := mainEntry(senseList(dictconfig.SenseOptions{NumberingStyle: "%d"},
		node(fields.TagGloss),
		node(fields.TagExamples, node(fields.TagText)),
	))

	p1 := renderEntry(t, newRenderer(t, store, nil, WithFilter(publication.New(store, "p1"))), "e-1", cfg)
	html := markup.String(p1)
	assert.NotContains(t, html, "ancestor")
	assert.NotContains(t, html, "wakale")
	assert.Empty(t, p1.FindClass(ClassSenseNumber), "the remaining sense is alone")

	p2 := renderEntry(t, newRenderer(t, store, nil, WithFilter(publication.New(store, "p2"))), "e-1", cfg)
	html = markup.String(p2)
	assert.Contains(t, html, "ancestor")
	assert.Contains(t, html, "wakale")
	assert.Equal(t, []string{"1", "2"}, texts(p2, ClassSenseNumber))
}

func TestScenarioIdenticalMediaCopiedOnce(t *testing.T) {
	media := t.TempDir()
	export := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(media, "a.png"), []byte("same bytes"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(media, "b.png"), []byte("same bytes"), 0o600))

	store := newStore(t, mediaDoc(media, "a.png", "b.png"))
	r := newRenderer(t, store, nil, WithMaterializer(assets.New(export)))

	out := renderEntry(t, r, "e-1", pictureConfig())
	imgs := out.FindAll(func(n *markup.Node) bool { return n.Tag == "img" })
	require.Len(t, imgs, 2)
	first, _ := imgs[0].Attr("src")
	second, _ := imgs[1].Attr("src")
	assert.Equal(t, "pictures/a.png", first)
	assert.Equal(t, first, second)

	written, err := os.ReadDir(filepath.Join(export, "pictures"))
	require.NoError(t, err)
	assert.Len(t, written, 1)
}
