// Package letterhead decides where letter headings fall in a sorted entry
// listing and how they are labelled.
package letterhead

import (
	"git.home.luguber.info/inful/lexrender/internal/foundation/normalization"
	"git.home.luguber.info/inful/lexrender/internal/lexicon"
)

// SortField names the entry form a listing is sorted by.
type SortField string

const (
	SortHeadWord     SortField = "headword"
	SortLexemeForm   SortField = "lexemeform"
	SortCitationForm SortField = "citationform"
)

var sortFieldNormalizer = normalization.NewNormalizer("sort field", map[string]SortField{
	"headword":      SortHeadWord,
	"lexemeform":    SortLexemeForm,
	"lexeme-form":   SortLexemeForm,
	"citationform":  SortCitationForm,
	"citation-form": SortCitationForm,
}, SortHeadWord)

// ParseSortField accepts the configuration spellings of a sort field.
func ParseSortField(raw string) (SortField, error) {
	return sortFieldNormalizer.Parse(raw)
}

// SortPolicy is the active sort key: a form in one writing system.
type SortPolicy struct {
	Field         SortField
	WritingSystem string
}

// Key returns the sort key of e under the policy.
func (p SortPolicy) Key(e *lexicon.Entry) string {
	switch p.Field {
	case SortLexemeForm:
		return e.LexemeForm.Get(p.WritingSystem)
	case SortCitationForm:
		if t := e.CitationForm.Get(p.WritingSystem); t != "" {
			return t
		}
		return e.LexemeForm.Get(p.WritingSystem)
	default:
		return e.HeadWord(p.WritingSystem)
	}
}
