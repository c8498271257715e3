package letterhead

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/apparentlymart/go-textseg/v15/textseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"git.home.luguber.info/inful/lexrender/internal/collation"
	"git.home.luguber.info/inful/lexrender/internal/lexicon"
)

// Cursor is the heading state threaded through a sequential pass.
type Cursor struct {
	// Label is the last heading emitted.
	Label string
	unit  string
}

// Generator computes headings for one writing system.
type Generator struct {
	collator collation.Collator
	policy   SortPolicy
	ws       lexicon.WritingSystem
	tag      language.Tag
}

// New returns a generator. A nil collator yields a generator that never
// emits headings.
func New(c collation.Collator, policy SortPolicy, ws lexicon.WritingSystem) *Generator {
	tag, err := language.Parse(ws.Code)
	if err != nil {
		tag = language.Und
	}
	return &Generator{collator: c, policy: policy, ws: ws, tag: tag}
}

// MaybeHeading returns the heading to place before entry, if its first
// letter starts a new group. cur is updated only when a heading is emitted.
func (g *Generator) MaybeHeading(entry *lexicon.Entry, cur *Cursor) (string, bool) {
	if g == nil || g.collator == nil || entry == nil || cur == nil {
		return "", false
	}
	unit := g.FirstUnit(g.policy.Key(entry))
	if unit == "" {
		return "", false
	}
	if cur.unit != "" && g.collator.PrimaryEqual(unit, cur.unit) {
		return "", false
	}
	label := g.Label(unit)
	cur.unit = unit
	cur.Label = label
	return label, true
}

// FirstUnit returns the lowercased first indexable unit of key: a declared
// multigraph or else the first grapheme cluster, after skipping anything that
// does not start with a letter.
func (g *Generator) FirstUnit(key string) string {
	lower := cases.Lower(g.tag)
	rest := norm.NFC.String(key)
	for rest != "" {
		adv, cluster, err := textseg.ScanGraphemeClusters([]byte(rest), true)
		if err != nil || adv == 0 {
			return ""
		}
		r, _ := utf8.DecodeRune(cluster)
		if !unicode.IsLetter(r) {
			rest = rest[adv:]
			continue
		}
		folded := lower.String(rest)
		for _, mg := range g.ws.Multigraphs {
			m := lower.String(mg)
			if m != "" && strings.HasPrefix(folded, m) {
				return m
			}
		}
		return lower.String(string(cluster))
	}
	return ""
}

// Label is the heading text for unit: "Upper lower", or just the unit for
// caseless scripts. A letter alias replaces the upper-case form.
func (g *Generator) Label(unit string) string {
	upper := cases.Title(g.tag).String(unit)
	if alias, ok := g.ws.LetterAliases[unit]; ok && alias != "" {
		upper = alias
	}
	if upper == unit {
		return unit
	}
	return upper + " " + unit
}
