package dictconfig

import (
	"strings"

	"git.home.luguber.info/inful/lexrender/internal/foundation/normalization"
)

// WritingSystemType selects which writing-system list a node draws from.
type WritingSystemType string

const (
	WritingSystemsVernacular    WritingSystemType = "vernacular"
	WritingSystemsAnalysis      WritingSystemType = "analysis"
	WritingSystemsBoth          WritingSystemType = "both"
	WritingSystemsPronunciation WritingSystemType = "pronunciation"
)

var wsTypeNormalizer = normalization.NewNormalizer("writing system type", map[string]WritingSystemType{
	"vernacular":    WritingSystemsVernacular,
	"analysis":      WritingSystemsAnalysis,
	"both":          WritingSystemsBoth,
	"pronunciation": WritingSystemsPronunciation,
}, WritingSystemsBoth)

// Special option ids standing for the default writing-system lists.
const (
	DefaultVernacular = "vernacular"
	DefaultAnalysis   = "analysis"
)

// Option is one entry of an ordered, toggleable option list.
type Option struct {
	ID      string `yaml:"id"`
	Enabled bool   `yaml:"enabled"`
}

// WritingSystemOptions choose the writing systems a multilingual field shows.
type WritingSystemOptions struct {
	Type                 WritingSystemType `yaml:"type,omitempty"`
	Options              []Option          `yaml:"options,omitempty"`
	DisplayAbbreviations bool              `yaml:"display_ws_abbreviations,omitempty"`
}

// EnabledIDs returns the enabled option ids in configured order.
func (o *WritingSystemOptions) EnabledIDs() []string {
	if o == nil {
		return nil
	}
	return enabledIDs(o.Options)
}

// SenseOptions control numbering and layout of a sense list.
type SenseOptions struct {
	// NumberingStyle is a counter token: %d, %a, %A, %i, %I or %O. Empty
	// disables numbering at this level.
	NumberingStyle string `yaml:"numbering_style,omitempty"`
	// ParentNumberingStyle is %j (joined), %. (dotted) or empty (none).
	ParentNumberingStyle   string `yaml:"parent_numbering_style,omitempty"`
	BeforeNumber           string `yaml:"before_number,omitempty"`
	AfterNumber            string `yaml:"after_number,omitempty"`
	NumberStyle            string `yaml:"number_style,omitempty"`
	NumberEvenSingle       bool   `yaml:"number_even_single_sense,omitempty"`
	ShowSharedGrammarFirst bool   `yaml:"show_shared_grammar_first,omitempty"`
	DisplayEachInParagraph bool   `yaml:"display_each_in_paragraph,omitempty"`
}

// Direction is the optional suffix of a list option id.
type Direction string

const (
	DirectionBoth    Direction = ""
	DirectionForward Direction = "f"
	DirectionReverse Direction = "r"
)

// ListOptions filter the members of a typed list (variant types, complex
// form types, relation types). Ids may carry a ":f" or ":r" suffix.
type ListOptions struct {
	Options                []Option `yaml:"options,omitempty"`
	DisplayEachInParagraph bool     `yaml:"display_each_in_paragraph,omitempty"`
}

// ListItem is a parsed, enabled list option.
type ListItem struct {
	TypeID    string
	Direction Direction
}

// Items returns the enabled options with their direction suffix split off.
func (o *ListOptions) Items() []ListItem {
	if o == nil {
		return nil
	}
	var out []ListItem
	for _, id := range enabledIDs(o.Options) {
		out = append(out, ParseListItem(id))
	}
	return out
}

// ParseListItem splits "type:f" into its type id and direction.
func ParseListItem(id string) ListItem {
	if i := strings.LastIndexByte(id, ':'); i >= 0 {
		switch Direction(id[i+1:]) {
		case DirectionForward:
			return ListItem{TypeID: id[:i], Direction: DirectionForward}
		case DirectionReverse:
			return ListItem{TypeID: id[:i], Direction: DirectionReverse}
		}
	}
	return ListItem{TypeID: id}
}

// ParagraphOptions style an entry rendered as a paragraph.
type ParagraphOptions struct {
	Style             string `yaml:"style,omitempty"`
	ContinuationStyle string `yaml:"continuation_style,omitempty"`
}

// PictureOptions control picture placement.
type PictureOptions struct {
	Alignment      string  `yaml:"alignment,omitempty"`
	MaximumWidthEm float64 `yaml:"max_width_em,omitempty"`
	StackMultiple  bool    `yaml:"stack_multiple,omitempty"`
}

// GroupingOptions mark a pure wrapper node.
type GroupingOptions struct {
	Description            string `yaml:"description,omitempty"`
	DisplayEachInParagraph bool   `yaml:"display_each_in_paragraph,omitempty"`
}

func enabledIDs(opts []Option) []string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		if o.Enabled {
			out = append(out, o.ID)
		}
	}
	return out
}
