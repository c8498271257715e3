package render

import (
	"path/filepath"

	"git.home.luguber.info/inful/lexrender/internal/dictconfig"
	"git.home.luguber.info/inful/lexrender/internal/fields"
	"git.home.luguber.info/inful/lexrender/internal/logfields"
	"git.home.luguber.info/inful/lexrender/internal/markup"
)

// media renders a picture or recording. A file that cannot be materialised
// drops the reference and nothing else.
func (w *walker) media(n *dictconfig.Node, v fields.Value) *markup.Node {
	if w.settings().Template {
		return mediaElement(n, v.Folder, GUIDPlaceholder(n.FieldDescription), "")
	}
	src := v.Text
	if !filepath.IsAbs(src) {
		src = filepath.Join(w.r.c.Store.MediaRoot(), filepath.FromSlash(src))
	}
	rec, err := w.r.c.Assets.Resolve(w.ctx, src, v.Folder)
	if err != nil {
		w.log.Warn("Dropping media reference",
			logfields.Asset(src),
			logfields.Folder(v.Folder),
			logfields.Error(err))
		return nil
	}
	return mediaElement(n, v.Folder, filepath.ToSlash(rec.Path), rec.ID)
}

func mediaElement(n *dictconfig.Node, folder, src, id string) *markup.Node {
	var el *markup.Node
	if folder == fields.FolderPictures {
		el = markup.Element("img", ClassName(n))
		el.SetAttr("src", src)
	} else {
		el = markup.Element("audio", ClassName(n), markup.Element("source", "").SetAttr("src", src))
		el.SetAttr("controls", "controls")
	}
	if id != "" {
		el.SetAttr("id", id)
	}
	return el
}
