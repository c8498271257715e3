package dictconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/lexrender/internal/foundation/errors"
)

func TestParseListItem(t *testing.T) {
	tests := []struct {
		in   string
		want ListItem
	}{
		{"rt-1", ListItem{TypeID: "rt-1"}},
		{"rt-1:f", ListItem{TypeID: "rt-1", Direction: DirectionForward}},
		{"rt-1:r", ListItem{TypeID: "rt-1", Direction: DirectionReverse}},
		{"rt:odd", ListItem{TypeID: "rt:odd"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseListItem(tt.in), tt.in)
	}
}

func TestListOptionsItemsSkipsDisabled(t *testing.T) {
	opts := &ListOptions{Options: []Option{
		{ID: "b:r", Enabled: true},
		{ID: "c", Enabled: false},
		{ID: "a", Enabled: true},
	}}
	assert.Equal(t, []ListItem{
		{TypeID: "b", Direction: DirectionReverse},
		{TypeID: "a"},
	}, opts.Items())

	var none *ListOptions
	assert.Nil(t, none.Items())
}

func TestNodeHelpers(t *testing.T) {
	parent := &Node{Label: "Senses", FieldDescription: "Senses"}
	dup := &Node{FieldDescription: "Gloss", LabelSuffix: "short", Parent: parent}
	assert.Equal(t, "Gloss (short)", dup.Name())
	assert.Equal(t, "Senses > Gloss (short)", dup.Path())
	assert.True(t, dup.IsDuplicate())

	group := &Node{Label: "Grp", Grouping: &GroupingOptions{}}
	assert.True(t, group.IsGroup())

	parent.Children = []*Node{dup, {Label: "Off", Disabled: true}}
	assert.Equal(t, []*Node{dup}, parent.EnabledChildren())

	var missing *Node
	assert.False(t, missing.IsEnabled())
}

const sampleConfig = `
name: Lexeme-based
parts:
  - label: Main Entry
    field: LexEntry
    children:
      - label: Headword
        field: HeadWord
        writing_systems:
          type: Vernacular
          options:
            - {id: vernacular, enabled: true}
      - label: Senses
        field: Senses
        senses:
          numbering_style: "%d"
          after_number: ") "
  - label: Minor Entry (Variants)
    field: MinorEntryVariant
    disabled: true
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))

	cfg, err := LoadResolved(path)
	require.NoError(t, err)
	assert.Equal(t, "Lexeme-based", cfg.Name)

	main := cfg.MainEntry()
	require.NotNil(t, main)
	hw := main.Children[0]
	assert.Equal(t, WritingSystemsVernacular, hw.WritingSystems.Type)
	assert.Equal(t, []string{DefaultVernacular}, hw.WritingSystems.EnabledIDs())
	assert.Equal(t, ") ", main.Children[1].Senses.AfterNumber)
	assert.Empty(t, cfg.MinorEntryParts(), "disabled parts are skipped")
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("parts:\n  - label: x\n    colour: red\n"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}
