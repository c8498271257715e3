package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPreservesAttributeOrder(t *testing.T) {
	n := Span("gloss", Text("man & boy"))
	n.SetAttr("lang", "en").SetAttr("dir", "ltr").SetAttr("lang", "fr")

	assert.Equal(t, `<span class="gloss" lang="fr" dir="ltr">man &amp; boy</span>`, String(n))
}

func TestRenderVoidElement(t *testing.T) {
	img := Element("img", "picture")
	img.SetAttr("src", "pictures/cat.png")
	assert.Equal(t, `<img class="picture" src="pictures/cat.png"/>`, String(img))
}

func TestHasContent(t *testing.T) {
	assert.False(t, Span("a", Span("b"), Text("")).HasContent())
	assert.True(t, Span("a", Span("b", Text("x"))).HasContent())
	assert.True(t, Span("a", Element("img", "")).HasContent())

	var missing *Node
	assert.False(t, missing.HasContent())
}

func TestFindAndTextContent(t *testing.T) {
	tree := Element("div", "entry",
		Span("headword", Text("mwana")),
		Span("senses",
			Span("sensenumber", Text("1")),
			Span("sensenumber", Text("2")),
		),
	)
	nums := tree.FindClass("sensenumber")
	require.Len(t, nums, 2)
	assert.Equal(t, "2", nums[1].TextContent())
	assert.Equal(t, "mwana12", tree.TextContent())
}

func TestClone(t *testing.T) {
	orig := Span("a", Text("x"))
	orig.SetAttr("lang", "en")
	c := orig.Clone()
	c.SetAttr("lang", "fr")
	c.Children[0].Text = "y"

	v, _ := orig.Attr("lang")
	assert.Equal(t, "en", v)
	assert.Equal(t, "x", orig.TextContent())
}

func TestMarkdown(t *testing.T) {
	nodes, err := Markdown("Used in *formal* speech.\n\n<script>alert(1)</script>")
	require.NoError(t, err)

	wrapper := Element("div", "usage", nodes...)
	out := String(wrapper)
	assert.Contains(t, out, "<p>Used in <em>formal</em> speech.</p>")
	assert.NotContains(t, out, "<script>")
}

func TestFragmentRoundTrip(t *testing.T) {
	nodes, err := Fragment(`<span class="x" lang="en">a<b>b</b></span>`)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "x", nodes[0].Class)
	assert.Equal(t, `<span class="x" lang="en">a<b>b</b></span>`, String(nodes[0]))
}
