package stylesheet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/lexrender/internal/dictconfig"
	"git.home.luguber.info/inful/lexrender/internal/lexicon"
	"git.home.luguber.info/inful/lexrender/internal/render"
)

func testSettings() render.Settings {
	return render.DefaultSettings([]lexicon.WritingSystem{
		{Code: "seh", Vernacular: true},
		{Code: "en"},
		{Code: "ar", RightToLeft: true},
	})
}

func testConfig() *dictconfig.Configuration {
	gloss := &dictconfig.Node{Label: "Gloss", FieldDescription: "Gloss", Between: "; "}
	senses := &dictconfig.Node{
		Label:            "Senses",
		FieldDescription: "Senses",
		Between:          " ",
		Senses:           &dictconfig.SenseOptions{NumberingStyle: "%d", AfterNumber: ")", NumberStyle: "font-weight: bold"},
		Children:         []*dictconfig.Node{gloss},
	}
	pic := &dictconfig.Node{
		Label:            "Pictures",
		FieldDescription: "Pictures",
		Picture:          &dictconfig.PictureOptions{Alignment: "right", MaximumWidthEm: 7.5},
	}
	hidden := &dictconfig.Node{Label: "Note", FieldDescription: "Note", Before: "never", Disabled: true}
	head := &dictconfig.Node{Label: "Headword", FieldDescription: "HeadWord", After: ` "x"`, Style: "font-weight: bold; Dictionary-Headword"}
	main := &dictconfig.Node{
		Label:                "Main Entry",
		FieldDescription:     "LexEntry",
		CSSClassNameOverride: "entry",
		Children:             []*dictconfig.Node{head, senses, pic, hidden},
	}
	return &dictconfig.Configuration{Name: "test", Parts: []*dictconfig.Node{main}}
}

func TestGenerate(t *testing.T) {
	css := Generate(testConfig(), testSettings()).String()

	assert.Contains(t, css, ".entry .headword::after {\n\tcontent: \" \\\"x\\\"\";\n}")
	assert.Contains(t, css, ".entry .headword {\n\tfont-weight: bold;\n}")
	assert.Contains(t, css, ".entry .senses > .sense + .sense::before {\n\tcontent: \" \";\n}")
	assert.Contains(t, css, ".entry .senses .gloss > span[lang] + span[lang]::before {\n\tcontent: \"; \";\n}")
	assert.Contains(t, css, ".entry .senses .sensenumber::after {\n\tcontent: \")\";\n}")
	assert.Contains(t, css, ".entry .senses .sensenumber {\n\tfont-weight: bold;\n}")
	assert.Contains(t, css, ".entry .pictures {\n\tmax-width: 7.5em;\n\tfloat: right;\n}")
	assert.Contains(t, css, "[lang=\"ar\"] {\n\tdirection: rtl;")
	assert.NotContains(t, css, "never", "disabled nodes emit nothing")
	assert.NotContains(t, css, "body {", "document direction is ltr")
}

func TestGenerateRightToLeftDocument(t *testing.T) {
	settings := testSettings()
	settings.Direction = render.DirRTL
	sheet := Generate(testConfig(), settings)
	require.NotEmpty(t, sheet.Rules())
	assert.Equal(t, "body", sheet.Rules()[0].Selector)
}

func TestSheetDeduplicatesRules(t *testing.T) {
	cfg := testConfig()
	cfg.Parts = append(cfg.Parts, cfg.Parts[0])
	sheet := Generate(cfg, testSettings())

	seen := map[string]int{}
	for _, r := range sheet.Rules() {
		seen[r.String()]++
	}
	for rule, n := range seen {
		assert.Equal(t, 1, n, rule)
	}
	assert.Equal(t, 1, strings.Count(sheet.String(), ".entry .pictures {"))
}

func TestDeclarations(t *testing.T) {
	assert.Equal(t, []string{"color: red", "margin: 0"}, declarations(" color: red ;margin: 0;"))
	assert.Empty(t, declarations("Dictionary-Normal"))
}
