package render

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/lexrender/internal/dictconfig"
	"git.home.luguber.info/inful/lexrender/internal/fields"
	"git.home.luguber.info/inful/lexrender/internal/lexicon"
	"git.home.luguber.info/inful/lexrender/internal/markup"
)

func testWritingSystems() []lexicon.WritingSystem {
	return []lexicon.WritingSystem{
		{Code: "seh", Abbreviation: "Sen", Vernacular: true},
		{Code: "en", Abbreviation: "Eng"},
		{Code: "fr", Abbreviation: "Fra"},
		{Code: "ar", Abbreviation: "Ara", RightToLeft: true},
	}
}

func newStore(t *testing.T, doc *lexicon.Document) *lexicon.Lexicon {
	t.Helper()
	if doc.WritingSystems == nil {
		doc.WritingSystems = testWritingSystems()
	}
	l, err := lexicon.New(doc)
	require.NoError(t, err)
	return l
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newRenderer builds a renderer with default settings, adjusted by tweak.
func newRenderer(t *testing.T, store lexicon.Store, tweak func(*Settings), opts ...ContextOption) *Renderer {
	t.Helper()
	settings := DefaultSettings(store.WritingSystems())
	if tweak != nil {
		tweak(&settings)
	}
	opts = append([]ContextOption{WithLogger(quietLogger())}, opts...)
	return New(NewContext(store, settings, opts...))
}

func renderEntry(t *testing.T, r *Renderer, id string, n *dictconfig.Node) *markup.Node {
	t.Helper()
	e, ok := r.Context().Store.Entry(id)
	require.True(t, ok, "entry %s", id)
	out, err := r.RenderEntry(t.Context(), e, n)
	require.NoError(t, err)
	return out
}

func renderHTML(t *testing.T, r *Renderer, id string, n *dictconfig.Node) string {
	t.Helper()
	out := renderEntry(t, r, id, n)
	if out == nil {
		return ""
	}
	return markup.String(out)
}

func node(tag string, children ...*dictconfig.Node) *dictconfig.Node {
	n := &dictconfig.Node{Label: tag, FieldDescription: tag, Children: children}
	for _, c := range children {
		c.Parent = n
	}
	return n
}

func mainEntry(children ...*dictconfig.Node) *dictconfig.Node {
	n := node("LexEntry", children...)
	n.Label = "Main Entry"
	n.CSSClassNameOverride = "entry"
	return n
}

func senseList(opts dictconfig.SenseOptions, children ...*dictconfig.Node) *dictconfig.Node {
	n := node(fields.TagSenses, children...)
	n.Senses = &opts
	return n
}

func withWS(n *dictconfig.Node, ids ...string) *dictconfig.Node {
	opts := make([]dictconfig.Option, len(ids))
	for i, id := range ids {
		opts[i] = dictconfig.Option{ID: id, Enabled: true}
	}
	n.WritingSystems = &dictconfig.WritingSystemOptions{Options: opts}
	return n
}

func withList(n *dictconfig.Node, ids ...string) *dictconfig.Node {
	opts := make([]dictconfig.Option, len(ids))
	for i, id := range ids {
		opts[i] = dictconfig.Option{ID: id, Enabled: true}
	}
	n.ListOptions = &dictconfig.ListOptions{Options: opts}
	return n
}

func disabled(n *dictconfig.Node) *dictconfig.Node {
	n.Disabled = true
	return n
}

func vern(s string) lexicon.MultiString { return lexicon.MultiString{"seh": s} }

func en(s string) lexicon.MultiString { return lexicon.MultiString{"en": s} }

func texts(n *markup.Node, class string) []string {
	if n == nil {
		return nil
	}
	var out []string
	for _, c := range n.FindClass(class) {
		out = append(out, c.TextContent())
	}
	return out
}
