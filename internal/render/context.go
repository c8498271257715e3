package render

import (
	"log/slog"

	"git.home.luguber.info/inful/lexrender/internal/assets"
	"git.home.luguber.info/inful/lexrender/internal/collation"
	"git.home.luguber.info/inful/lexrender/internal/fields"
	"git.home.luguber.info/inful/lexrender/internal/lexicon"
	"git.home.luguber.info/inful/lexrender/internal/publication"
	"git.home.luguber.info/inful/lexrender/internal/xref"
)

// Context is everything a render call reads besides the entry and the
// configuration: the store, the active publication filter and collator, the
// field registry, the asset table and the settings. It replaces any notion of
// a globally active sort order or list.
type Context struct {
	Store    lexicon.Store
	Filter   *publication.Filter
	Collator collation.Collator
	Fields   *fields.Registry
	Assets   *assets.Materializer
	XRefs    *xref.Resolver
	Settings Settings
	Logger   *slog.Logger
}

// ContextOption customises NewContext.
type ContextOption func(*Context)

func WithFilter(f *publication.Filter) ContextOption {
	return func(c *Context) { c.Filter = f }
}

func WithCollator(col collation.Collator) ContextOption {
	return func(c *Context) { c.Collator = col }
}

func WithRegistry(r *fields.Registry) ContextOption {
	return func(c *Context) { c.Fields = r }
}

func WithMaterializer(m *assets.Materializer) ContextOption {
	return func(c *Context) { c.Assets = m }
}

func WithLogger(l *slog.Logger) ContextOption {
	return func(c *Context) { c.Logger = l }
}

// NewContext builds a Context, filling anything not supplied: an unfiltered
// view, the built-in fields, a materializer for settings.ExportPath and a
// cross-reference resolver ordered by the sort policy.
func NewContext(store lexicon.Store, settings Settings, opts ...ContextOption) *Context {
	c := &Context{Store: store, Settings: settings}
	for _, opt := range opts {
		opt(c)
	}
	if c.Filter == nil {
		c.Filter = publication.New(store, "")
	}
	if c.Fields == nil {
		c.Fields = fields.Default()
	}
	if c.Assets == nil {
		c.Assets = assets.New(settings.ExportPath)
	}
	if c.XRefs == nil {
		c.XRefs = xref.New(c.Filter, c.Collator, settings.Sort.Key)
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
