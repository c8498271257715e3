package sensenum

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"git.home.luguber.info/inful/lexrender/internal/dictconfig"
)

func senseNode(children ...*dictconfig.Node) *dictconfig.Node {
	return &dictconfig.Node{Label: "Senses", FieldDescription: "Senses", Children: children}
}

func subsenses(style string, disabled bool) *dictconfig.Node {
	return &dictconfig.Node{
		Label:            "Subsenses",
		FieldDescription: "Senses",
		Disabled:         disabled,
		Senses:           &dictconfig.SenseOptions{NumberingStyle: style},
	}
}

func TestSubsensesNumberedDefaultPolicy(t *testing.T) {
	p := DefaultPolicy

	assert.True(t, p.SubsensesNumbered(senseNode(subsenses("%a", false)), 2))
	assert.False(t, p.SubsensesNumbered(senseNode(subsenses("%a", false)), 0),
		"configured numbering without subsense data does not count")
	assert.False(t, p.SubsensesNumbered(senseNode(subsenses("", false)), 2))
	assert.False(t, p.SubsensesNumbered(senseNode(subsenses("%a", true)), 2),
		"a disabled subsense node with a style does not count")
	assert.False(t, p.SubsensesNumbered(senseNode(), 2))
}

func TestSubsensesNumberedConfigurationOnly(t *testing.T) {
	p := NumberingPolicy{RequireSubsenseData: false, SearchDepth: 1}
	assert.True(t, p.SubsensesNumbered(senseNode(subsenses("%a", false)), 0))
}

func TestSubsensesNumberedSearchDepth(t *testing.T) {
	nested := senseNode(&dictconfig.Node{
		Label:    "Group",
		Grouping: &dictconfig.GroupingOptions{},
		Children: []*dictconfig.Node{subsenses("%a", false)},
	})

	assert.False(t, DefaultPolicy.SubsensesNumbered(nested, 1), "depth 1 sees direct children only")
	deep := NumberingPolicy{RequireSubsenseData: true, SearchDepth: 2}
	assert.True(t, deep.SubsensesNumbered(nested, 1))

	disabledGroup := senseNode(&dictconfig.Node{
		Label:    "Group",
		Disabled: true,
		Grouping: &dictconfig.GroupingOptions{},
		Children: []*dictconfig.Node{subsenses("%a", false)},
	})
	assert.False(t, deep.SubsensesNumbered(disabledGroup, 1), "disabled nodes prune the search")

	conflicting := senseNode(
		subsenses("%a", true),
		&dictconfig.Node{Label: "Group", Grouping: &dictconfig.GroupingOptions{}, Children: []*dictconfig.Node{subsenses("%i", false)}},
	)
	assert.False(t, DefaultPolicy.SubsensesNumbered(conflicting, 1))
	assert.True(t, deep.SubsensesNumbered(conflicting, 1),
		"an enabled deeper sense list wins over a disabled shallower one")

	zero := NumberingPolicy{RequireSubsenseData: true}
	assert.True(t, zero.SubsensesNumbered(senseNode(subsenses("%a", false)), 1), "depth below one means direct children")
}
