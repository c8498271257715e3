// Package render walks a configuration tree against the lexical data of one
// entry and produces the markup tree for it.
//
// A node renders only when it is enabled and its field has data; a node whose
// children all render nothing renders nothing itself. Collections are
// filtered member by member through the publication filter, sense lists are
// numbered, cross references are grouped and media is materialised on the
// way. Missing or unreadable data never fails a render; configuration errors
// do.
package render

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strconv"

	"git.home.luguber.info/inful/lexrender/internal/dictconfig"
	"git.home.luguber.info/inful/lexrender/internal/fields"
	"git.home.luguber.info/inful/lexrender/internal/foundation/errors"
	"git.home.luguber.info/inful/lexrender/internal/lexicon"
	"git.home.luguber.info/inful/lexrender/internal/logfields"
	"git.home.luguber.info/inful/lexrender/internal/markup"
	"git.home.luguber.info/inful/lexrender/internal/publication"
	"git.home.luguber.info/inful/lexrender/internal/sensenum"
)

// Renderer renders entries under one Context. It holds no per-call state and
// is safe for concurrent use.
type Renderer struct {
	c *Context
}

// New returns a renderer for c.
func New(c *Context) *Renderer {
	return &Renderer{c: c}
}

// Context returns the render context.
func (r *Renderer) Context() *Context { return r.c }

// RenderEntry renders entry under the entry-level node. It returns nil when
// the entry is hidden, the node is disabled or nothing has data. Errors carry
// the entry id.
func (r *Renderer) RenderEntry(ctx context.Context, entry *lexicon.Entry, node *dictconfig.Node) (out *markup.Node, err error) {
	if entry == nil || !node.IsEnabled() || !r.c.Filter.IsVisible(entry) {
		return nil, nil
	}
	defer r.recoverInto(entry.GUID(), &out, &err)

	w := r.walker(ctx, entry)
	kids, err := w.children(scope{obj: entry}, node, nil)
	if err != nil {
		return nil, r.wrap(err, entry.GUID())
	}
	if len(kids) == 0 {
		return nil, nil
	}
	root := markup.Element(containerTag(node, true), ClassName(node), kids...)
	root.SetAttr("id", AnchorID(entry.GUID()))
	return root, nil
}

// RenderObject renders node against obj, the object whose field the node
// reads. It is the entry point for rendering a single configured field.
func (r *Renderer) RenderObject(ctx context.Context, obj lexicon.Object, node *dictconfig.Node) (out *markup.Node, err error) {
	if obj == nil {
		return nil, nil
	}
	entry := lexicon.OwningEntry(r.c.Store, obj)
	id := obj.GUID()
	if entry != nil {
		id = entry.GUID()
	}
	defer r.recoverInto(id, &out, &err)

	out, err = r.walker(ctx, entry).node(scope{obj: obj}, node)
	if err != nil {
		return nil, r.wrap(err, id)
	}
	return out, nil
}

func (r *Renderer) recoverInto(id string, out **markup.Node, err *error) {
	if p := recover(); p != nil {
		*out = nil
		*err = errors.RenderError("entry render panicked").
			ForEntry(id).
			WithContext("panic", fmt.Sprint(p)).
			Build()
	}
}

// wrap tags err with the entry id. Classified errors keep their category.
func (r *Renderer) wrap(err error, id string) error {
	if ce, ok := errors.AsClassified(err); ok {
		return ce.ForEntry(id)
	}
	return errors.WrapError(err, errors.CategoryRender, "render entry").
		ForEntry(id).
		Build()
}

func (r *Renderer) walker(ctx context.Context, entry *lexicon.Entry) *walker {
	id := ""
	if entry != nil {
		id = entry.GUID()
	}
	return &walker{
		r:     r,
		ctx:   ctx,
		entry: entry,
		dir:   r.c.Settings.documentDirection(),
		log:   r.c.Logger.With(logfields.EntryID(id)),
	}
}

// scope is the object children of a node read from. ref marks objects reached
// by following a reference; their owners are not re-checked.
type scope struct {
	obj lexicon.Object
	ref bool
}

// walker is the state of one render call.
type walker struct {
	r     *Renderer
	ctx   context.Context
	entry *lexicon.Entry
	stack sensenum.Stack
	dir   string
	log   *slog.Logger
}

func (w *walker) settings() Settings { return w.r.c.Settings }

func (w *walker) filter() *publication.Filter { return w.r.c.Filter }

// children renders the enabled children of n against s, skipping skip.
func (w *walker) children(s scope, n *dictconfig.Node, skip *dictconfig.Node) ([]*markup.Node, error) {
	out := make([]*markup.Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c == skip {
			continue
		}
		el, err := w.node(s, c)
		if err != nil {
			return nil, err
		}
		if el != nil {
			out = append(out, el)
		}
	}
	return out, nil
}

// node renders one configuration node against s.
func (w *walker) node(s scope, n *dictconfig.Node) (*markup.Node, error) {
	if !n.IsEnabled() {
		return nil, nil
	}
	if err := w.ctx.Err(); err != nil {
		return nil, err
	}
	if n.IsGroup() {
		return w.group(s, n)
	}

	v, from, err := w.resolve(s, n)
	if err != nil {
		if errors.HasCategory(err, errors.CategoryConfig) {
			return nil, err
		}
		if !stderrors.Is(err, fields.ErrNoData) {
			w.log.Debug("Field unavailable",
				logfields.Node(n.Path()),
				logfields.Field(n.FieldDescription),
				logfields.Error(err))
		}
		return nil, nil
	}
	if v.IsEmpty() {
		return nil, nil
	}
	ref := s.ref || v.Reference

	switch v.Kind {
	case fields.KindString:
		return w.leaf(n, v.Text, ""), nil
	case fields.KindInt:
		return w.leaf(n, strconv.Itoa(v.Int), ""), nil
	case fields.KindMulti:
		return w.multi(n, v.Multi, from, ref), nil
	case fields.KindCustom:
		return w.custom(n, v.Custom), nil
	case fields.KindMedia:
		return w.media(n, v), nil
	case fields.KindRelations:
		return w.crossReferences(n, v.Object)
	case fields.KindObject:
		return w.object(n, v.Object, ref)
	case fields.KindCollection:
		if n.Senses != nil {
			return w.senses(n, v.Items)
		}
		return w.collection(s, n, v, ref)
	default:
		return nil, nil
	}
}

func (w *walker) resolve(s scope, n *dictconfig.Node) (fields.Value, lexicon.Object, error) {
	reg := w.r.c.Fields
	if n.IsCustomField {
		v, err := reg.ResolveCustom(s.obj, n.FieldDescription)
		return v, s.obj, err
	}
	return reg.ResolvePath(w.r.c.Store, s.obj, n.FieldDescription, n.SubField)
}

// group renders a pure wrapper around its children.
func (w *walker) group(s scope, n *dictconfig.Node) (*markup.Node, error) {
	kids, err := w.children(s, n, nil)
	if err != nil || len(kids) == 0 {
		return nil, err
	}
	return markup.Element(containerTag(n, false), ClassName(n), kids...), nil
}

// object renders the children of n against a single object.
func (w *walker) object(n *dictconfig.Node, obj lexicon.Object, ref bool) (*markup.Node, error) {
	if !ref && !w.filter().IsVisible(obj) {
		return nil, nil
	}
	kids, err := w.children(scope{obj: obj, ref: ref}, n, nil)
	if err != nil || len(kids) == 0 {
		return nil, err
	}
	return markup.Element(containerTag(n, false), ClassName(n), kids...), nil
}

// collection renders each visible member of a collection in its own item
// element.
func (w *walker) collection(s scope, n *dictconfig.Node, v fields.Value, ref bool) (*markup.Node, error) {
	var lf *publication.ListFilter
	if !n.IsCustomField {
		if b, ok := w.r.c.Fields.Lookup(s.obj.Class(), n.FieldDescription); ok && b.ListFiltered {
			var err error
			if lf, err = publication.NewListFilter(n); err != nil {
				return nil, err
			}
		}
	}
	dir := refDirection(n.FieldDescription)
	itemTag := itemTag(n)

	items := make([]*markup.Node, 0, len(v.Items))
	for _, it := range v.Items {
		if !w.filter().IsVisible(it) {
			continue
		}
		if lf != nil {
			if er, ok := it.(*lexicon.EntryRef); ok && !lf.AllowsRef(er, dir) {
				continue
			}
		}
		kids, err := w.children(scope{obj: it, ref: ref}, n, nil)
		if err != nil {
			return nil, err
		}
		if len(kids) == 0 {
			continue
		}
		items = append(items, markup.Element(itemTag, ItemClass(n), kids...))
	}
	if len(items) == 0 {
		return nil, nil
	}
	return markup.Element(containerTag(n, false), ClassName(n), items...), nil
}

// refDirection is the direction entry references are seen in: a minor
// entry's own references point forward, back references are seen in reverse.
func refDirection(tag string) dictconfig.Direction {
	if tag == fields.TagMainEntryRefs {
		return dictconfig.DirectionForward
	}
	return dictconfig.DirectionReverse
}

// containerTag is div for entry roots and paragraph-mode nodes, span otherwise.
func containerTag(n *dictconfig.Node, root bool) string {
	if root || n.Paragraph != nil || displayEachInParagraph(n) {
		return "div"
	}
	return "span"
}

// itemTag is the element of one collection member.
func itemTag(n *dictconfig.Node) string {
	if displayEachInParagraph(n) {
		return "div"
	}
	return "span"
}

func displayEachInParagraph(n *dictconfig.Node) bool {
	switch {
	case n.Senses != nil:
		return n.Senses.DisplayEachInParagraph
	case n.ListOptions != nil:
		return n.ListOptions.DisplayEachInParagraph
	case n.Grouping != nil:
		return n.Grouping.DisplayEachInParagraph
	default:
		return false
	}
}
