// Package stylesheet derives the companion CSS of a configuration tree.
//
// Decorations configured on nodes (text before, between and after values,
// sense number punctuation, picture sizing) are not part of the rendered
// markup; they are expressed here as generated content keyed on the same
// classes the renderer emits.
package stylesheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/lexrender/internal/dictconfig"
	"git.home.luguber.info/inful/lexrender/internal/lexicon"
	"git.home.luguber.info/inful/lexrender/internal/render"
	"git.home.luguber.info/inful/lexrender/internal/util/sets"
)

// Letter heading classes shared with the dictionary document.
const (
	ClassLetterHeading = "letHead"
	ClassLetter        = "letter"
	ClassLetterData    = "letData"
)

// Rule is one CSS rule.
type Rule struct {
	Selector     string
	Declarations []string
}

func (r Rule) String() string {
	return r.Selector + " {\n\t" + strings.Join(r.Declarations, ";\n\t") + ";\n}\n"
}

// Sheet is an ordered list of rules without duplicates.
type Sheet struct {
	rules []Rule
	seen  sets.Set[string]
}

// Rules returns the rules in emission order.
func (s *Sheet) Rules() []Rule { return s.rules }

func (s *Sheet) add(selector string, decls ...string) {
	if selector == "" || len(decls) == 0 {
		return
	}
	r := Rule{Selector: selector, Declarations: decls}
	key := r.String()
	if s.seen.Has(key) {
		return
	}
	s.seen.Insert(key)
	s.rules = append(s.rules, r)
}

// WriteTo writes the sheet as CSS text.
func (s *Sheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, r := range s.rules {
		if i > 0 {
			n, err := io.WriteString(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
		n, err := io.WriteString(w, r.String())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (s *Sheet) String() string {
	var b strings.Builder
	_, _ = s.WriteTo(&b)
	return b.String()
}

// Generate builds the stylesheet for every enabled part of cfg. The
// configuration is expected to be resolved.
func Generate(cfg *dictconfig.Configuration, settings render.Settings) *Sheet {
	s := &Sheet{seen: sets.New[string]()}
	s.base(settings)
	for _, part := range cfg.Parts {
		if part.IsEnabled() {
			s.node(part, "")
		}
	}
	return s
}

func (s *Sheet) base(settings render.Settings) {
	if settings.Direction == render.DirRTL {
		s.add("body", "direction: rtl")
	}
	s.add("."+ClassLetterHeading, "text-align: center", "column-span: all")
	s.add("."+ClassLetter, "font-weight: bold", "font-size: 150%")
	s.add("."+render.ClassHomographNumber, "font-size: 60%", "vertical-align: sub")
	s.add("."+render.ClassWritingSystem+"::after", content(" "))
	for _, ws := range settings.WritingSystems {
		s.writingSystem(ws)
	}
}

func (s *Sheet) writingSystem(ws lexicon.WritingSystem) {
	if ws.RightToLeft {
		s.add(fmt.Sprintf("[lang=%s]", strconv.Quote(ws.Code)), "direction: rtl", "unicode-bidi: embed")
	}
}

func (s *Sheet) node(n *dictconfig.Node, parent string) {
	sel := strings.TrimSpace(parent + " ." + render.ClassName(n))

	if d := declarations(n.Style); len(d) > 0 {
		s.add(sel, d...)
	}
	if n.Before != "" {
		s.add(sel+"::before", content(n.Before))
	}
	if n.After != "" {
		s.add(sel+"::after", content(n.After))
	}
	if n.Between != "" {
		s.between(n, sel)
	}
	if n.Senses != nil {
		s.senses(n, sel)
	}
	if n.Picture != nil {
		s.picture(n.Picture, sel)
	}
	if n.Paragraph != nil {
		if d := declarations(n.Paragraph.Style); len(d) > 0 {
			s.add(sel, d...)
		}
		if d := declarations(n.Paragraph.ContinuationStyle); len(d) > 0 {
			s.add(sel+" + "+sel, d...)
		}
	}
	if eachInParagraph(n) {
		s.add(sel+" > ."+render.ItemClass(n), "display: block")
	}

	for _, c := range n.Children {
		if c.IsEnabled() {
			s.node(c, sel)
		}
	}
}

// between separates consecutive members: collection items for nodes with
// children, writing-system runs for text leaves.
func (s *Sheet) between(n *dictconfig.Node, sel string) {
	if len(n.Children) == 0 {
		s.add(sel+" > span[lang] + span[lang]::before", content(n.Between))
		return
	}
	item := "." + render.ItemClass(n)
	s.add(sel+" > "+item+" + "+item+"::before", content(n.Between))
}

func (s *Sheet) senses(n *dictconfig.Node, sel string) {
	o := n.Senses
	num := sel + " ." + render.ClassSenseNumber
	if o.BeforeNumber != "" {
		s.add(num+"::before", content(o.BeforeNumber))
	}
	if o.AfterNumber != "" {
		s.add(num+"::after", content(o.AfterNumber))
	}
	if d := declarations(o.NumberStyle); len(d) > 0 {
		s.add(num, d...)
	}
}

func (s *Sheet) picture(p *dictconfig.PictureOptions, sel string) {
	var decls []string
	if p.MaximumWidthEm > 0 {
		decls = append(decls, "max-width: "+strconv.FormatFloat(p.MaximumWidthEm, 'f', -1, 64)+"em")
	}
	switch strings.ToLower(p.Alignment) {
	case "left", "right":
		decls = append(decls, "float: "+strings.ToLower(p.Alignment))
	case "center", "centre":
		decls = append(decls, "display: block", "margin-left: auto", "margin-right: auto")
	}
	if p.StackMultiple && !strings.EqualFold(p.Alignment, "center") {
		decls = append(decls, "clear: both")
	}
	s.add(sel, decls...)
}

func eachInParagraph(n *dictconfig.Node) bool {
	switch {
	case n.Senses != nil:
		return n.Senses.DisplayEachInParagraph
	case n.ListOptions != nil:
		return n.ListOptions.DisplayEachInParagraph
	case n.Grouping != nil:
		return n.Grouping.DisplayEachInParagraph
	}
	return false
}

// declarations splits a "prop: value; prop: value" style string. Named
// styles without declarations yield nothing.
func declarations(style string) []string {
	var out []string
	for _, d := range strings.Split(style, ";") {
		d = strings.TrimSpace(d)
		if strings.Contains(d, ":") {
			out = append(out, d)
		}
	}
	return out
}

// content is a CSS content declaration for the literal text s.
func content(s string) string {
	var b strings.Builder
	b.WriteString(`content: "`)
	for _, r := range s {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\A `)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteString(`"`)
	return b.String()
}
