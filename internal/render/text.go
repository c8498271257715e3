package render

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"git.home.luguber.info/inful/lexrender/internal/dictconfig"
	"git.home.luguber.info/inful/lexrender/internal/fields"
	"git.home.luguber.info/inful/lexrender/internal/foundation/errors"
	"git.home.luguber.info/inful/lexrender/internal/lexicon"
	"git.home.luguber.info/inful/lexrender/internal/logfields"
	"git.home.luguber.info/inful/lexrender/internal/markup"
)

// ValuePlaceholder is the template token for the text of field in ws.
func ValuePlaceholder(field, ws string) string {
	return "%" + field + ".[lang=" + ws + "].value%"
}

// GUIDPlaceholder is the template token for the object id behind field.
func GUIDPlaceholder(field string) string {
	return "%" + field + ".guid%"
}

// cleanText replaces invalid UTF-8 with U+FFFD and normalises to NFC.
func (w *walker) cleanText(n *dictconfig.Node, s string) string {
	if !utf8.ValidString(s) {
		err := errors.EncodingError("invalid UTF-8 in field text").
			WithContext(logfields.KeyNode, n.Path()).
			Build()
		w.log.Debug("Replaced invalid text", logfields.Error(err))
		s = strings.ToValidUTF8(s, "\uFFFD")
	}
	return norm.NFC.String(s)
}

// leaf renders a single-language value. lang is set only when the value
// declares a writing system the node enables.
func (w *walker) leaf(n *dictconfig.Node, text, lang string) *markup.Node {
	if w.settings().Template {
		text = "%" + n.FieldDescription + ".value%"
	} else {
		text = w.cleanText(n, text)
	}
	el := markup.Span(ClassName(n), markup.Text(text))
	if lang != "" && w.enables(n, lang) {
		el.SetAttr("lang", lang)
		if d := w.settings().RunDirection(lang, text); d != w.dir {
			el.SetAttr("dir", d)
		}
	}
	return el
}

func (w *walker) enables(n *dictconfig.Node, ws string) bool {
	for _, code := range w.settings().EnabledWritingSystems(n.WritingSystems) {
		if code == ws {
			return true
		}
	}
	return false
}

// multi renders one language-tagged run per enabled writing system that has
// text. Headwords of other entries reached through a reference are linked.
func (w *walker) multi(n *dictconfig.Node, m lexicon.MultiString, from lexicon.Object, ref bool) *markup.Node {
	st := w.settings()
	abbreviate := n.WritingSystems != nil && n.WritingSystems.DisplayAbbreviations

	var runs []*markup.Node
	for _, code := range st.EnabledWritingSystems(n.WritingSystems) {
		text := m.Get(code)
		if text == "" {
			continue
		}
		if st.Template {
			text = ValuePlaceholder(n.FieldDescription, code)
		} else {
			text = w.cleanText(n, text)
		}
		if abbreviate {
			abbr := code
			if ws, ok := st.WritingSystem(code); ok && ws.Abbreviation != "" {
				abbr = ws.Abbreviation
			}
			runs = append(runs, markup.Span(ClassWritingSystem, markup.Text(abbr)))
		}
		run := markup.Span("", markup.Text(text))
		run.SetAttr("lang", code)
		if d := st.RunDirection(code, text); d != w.dir {
			run.SetAttr("dir", d)
		}
		runs = append(runs, run)
	}
	if len(runs) == 0 {
		return nil
	}

	if isHeadWord(n) {
		if hn := homographNumber(w.r.c.Store, from); hn > 0 {
			runs = append(runs, markup.Span(ClassHomographNumber, markup.Text(strconv.Itoa(hn))))
		}
		if link := w.link(n, from, ref); link != nil {
			link.Append(runs...)
			runs = []*markup.Node{link}
		}
	}
	return markup.Span(ClassName(n), runs...)
}

func isHeadWord(n *dictconfig.Node) bool {
	if n.SubField != "" {
		return n.SubField == fields.TagHeadWord
	}
	return n.FieldDescription == fields.TagHeadWord
}

// link returns an anchor to from when it is another entry or sense reached by
// reference and an anchor to it would resolve.
func (w *walker) link(n *dictconfig.Node, from lexicon.Object, ref bool) *markup.Node {
	if !ref || from == nil {
		return nil
	}
	switch from.(type) {
	case *lexicon.Entry, *lexicon.Sense:
	default:
		return nil
	}
	if w.entry != nil && from.GUID() == w.entry.GUID() {
		return nil
	}
	if !w.filter().IsLinkTarget(from) {
		return nil
	}
	href := "#" + AnchorID(from.GUID())
	if w.settings().Template {
		href = GUIDPlaceholder(n.FieldDescription)
	}
	return markup.Element("a", "").SetAttr("href", href)
}

func homographNumber(s lexicon.Store, from lexicon.Object) int {
	if from == nil {
		return 0
	}
	if e := lexicon.OwningEntry(s, from); e != nil {
		return e.HomographNumber
	}
	return 0
}

// custom renders a user-defined field value.
func (w *walker) custom(n *dictconfig.Node, v lexicon.CustomValue) *markup.Node {
	switch v.Kind {
	case lexicon.CustomMultiString:
		return w.multi(n, v.Multi, nil, false)
	case lexicon.CustomInteger:
		return w.leaf(n, strconv.Itoa(v.Integer), "")
	case lexicon.CustomList:
		items := make([]*markup.Node, 0, len(v.Items))
		for _, it := range v.Items {
			if it == "" {
				continue
			}
			el := w.leaf(n, it, v.WritingSystem)
			el.Class = ItemClass(n)
			items = append(items, el)
		}
		if len(items) == 0 {
			return nil
		}
		return markup.Element(containerTag(n, false), ClassName(n), items...)
	case lexicon.CustomMarkdown:
		return w.markdown(n, v)
	default:
		return w.leaf(n, v.String, v.WritingSystem)
	}
}

// markdown renders a markdown field into a block of HTML.
func (w *walker) markdown(n *dictconfig.Node, v lexicon.CustomValue) *markup.Node {
	if w.settings().Template {
		return w.leaf(n, v.String, v.WritingSystem)
	}
	nodes, err := markup.Markdown(w.cleanText(n, v.String))
	if err != nil {
		w.log.Debug("Markdown field unreadable", logfields.Node(n.Path()), logfields.Error(err))
		return nil
	}
	el := markup.Element("div", ClassName(n), nodes...)
	if !el.HasContent() {
		return nil
	}
	if v.WritingSystem != "" && w.enables(n, v.WritingSystem) {
		el.SetAttr("lang", v.WritingSystem)
	}
	return el
}
