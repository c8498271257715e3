package dictionary

import (
	"io"

	"git.home.luguber.info/inful/lexrender/internal/markup"
	"git.home.luguber.info/inful/lexrender/internal/stylesheet"
)

const xhtmlNamespace = "http://www.w3.org/1999/xhtml"

// Page describes the document wrapper of a rendered dictionary.
type Page struct {
	Title string
	// Lang is the document language, usually the sort writing system.
	Lang string
	// Dir is set on the body when it is right-to-left.
	Dir string
	// StylesheetHref links an external stylesheet. When empty the sheet, if
	// any, is embedded.
	StylesheetHref string
	Stylesheet     *stylesheet.Sheet
}

// Document wraps the sections of d into an XHTML document tree.
func (d *Dictionary) Document(p Page) *markup.Node {
	head := markup.Element("head", "",
		markup.Element("meta", "").SetAttr("charset", "utf-8"),
		markup.Element("title", "", markup.Text(p.Title)),
	)
	switch {
	case p.StylesheetHref != "":
		head.Append(markup.Element("link", "").
			SetAttr("rel", "stylesheet").
			SetAttr("type", "text/css").
			SetAttr("href", p.StylesheetHref))
	case p.Stylesheet != nil:
		head.Append(markup.Element("style", "", markup.Text(p.Stylesheet.String())).SetAttr("type", "text/css"))
	}

	body := markup.Element("body", "")
	if p.Dir == "rtl" {
		body.SetAttr("dir", p.Dir)
	}
	for _, s := range d.Sections {
		if s.Heading != "" {
			letter := markup.Span(stylesheet.ClassLetter, markup.Text(s.Heading))
			if p.Lang != "" {
				letter.SetAttr("lang", p.Lang)
			}
			body.Append(markup.Element("div", stylesheet.ClassLetterHeading, letter))
		}
		body.Append(markup.Element("div", stylesheet.ClassLetterData, s.Entries...))
	}

	root := markup.Element("html", "", head, body).SetAttr("xmlns", xhtmlNamespace)
	if p.Lang != "" {
		root.SetAttr("lang", p.Lang)
	}
	return root
}

// WriteDocument writes the wrapped document with its doctype.
func (d *Dictionary) WriteDocument(w io.Writer, p Page) error {
	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	return markup.Render(w, d.Document(p))
}
