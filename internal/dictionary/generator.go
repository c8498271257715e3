// Package dictionary renders whole listings: many entries on a worker pool,
// grouped under letter headings and wrapped into a standalone document.
package dictionary

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"git.home.luguber.info/inful/lexrender/internal/dictconfig"
	"git.home.luguber.info/inful/lexrender/internal/foundation/errors"
	"git.home.luguber.info/inful/lexrender/internal/letterhead"
	"git.home.luguber.info/inful/lexrender/internal/lexicon"
	"git.home.luguber.info/inful/lexrender/internal/logfields"
	"git.home.luguber.info/inful/lexrender/internal/markup"
	"git.home.luguber.info/inful/lexrender/internal/metrics"
	"git.home.luguber.info/inful/lexrender/internal/pagination"
	"git.home.luguber.info/inful/lexrender/internal/publication"
	"git.home.luguber.info/inful/lexrender/internal/render"
)

// Field tags of the configuration parts that lay out minor entries.
const (
	PartMinorVariant = publication.PartMinorVariant
	PartMinorComplex = publication.PartMinorComplex
)

const defaultWorkers = 4

// Result is the outcome of rendering one entry. Node is nil when the entry
// rendered nothing or failed.
type Result struct {
	ID       string
	Entry    *lexicon.Entry
	Node     *markup.Node
	Err      error
	Duration time.Duration
}

// Section is a run of rendered entries under one letter heading. The first
// section has no heading when headings are off or the first entries have no
// sortable letter.
type Section struct {
	Heading string
	Entries []*markup.Node
}

// Dictionary is a rendered listing.
type Dictionary struct {
	Sections []Section
	Results  []Result
}

// Rendered counts the entries that produced markup.
func (d *Dictionary) Rendered() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Entries)
	}
	return n
}

// Generator renders listings of one configuration.
type Generator struct {
	r        *render.Renderer
	main     *dictconfig.Node
	minor    *publication.MinorParts
	workers  int
	headings bool
	recorder metrics.Recorder
	log      *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithWorkers sets the size of the render pool.
func WithWorkers(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.workers = n
		}
	}
}

// WithLetterHeadings turns letter headings on or off. They are on by default.
func WithLetterHeadings(on bool) Option {
	return func(g *Generator) { g.headings = on }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(rec metrics.Recorder) Option {
	return func(g *Generator) {
		if rec != nil {
			g.recorder = rec
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// New returns a generator rendering with r under the resolved configuration
// cfg. The configuration must have a main entry part.
func New(r *render.Renderer, cfg *dictconfig.Configuration, opts ...Option) (*Generator, error) {
	main := cfg.MainEntry()
	if main == nil {
		return nil, errors.ConfigError("configuration has no main entry part").
			WithContext("configuration", cfg.Name).
			Build()
	}
	g := &Generator{
		r:        r,
		main:     main,
		workers:  defaultWorkers,
		headings: true,
		recorder: metrics.NoopRecorder{},
		log:      r.Context().Logger,
	}
	for _, o := range opts {
		o(g)
	}
	g.minor = r.Context().Filter.MinorParts()
	if g.minor == nil {
		mp, err := publication.NewMinorParts(cfg)
		if err != nil {
			return nil, err
		}
		g.minor = mp
	}
	return g, nil
}

// PartFor picks the configuration part an entry renders with: the main entry
// part, or for a minor entry the first minor-entry part accepting one of its
// own references. A minor entry no part accepts has no part.
func (g *Generator) PartFor(e *lexicon.Entry) *dictconfig.Node {
	if !e.IsMinor() {
		return g.main
	}
	return g.minor.Match(e)
}

// Listing returns the ids of the entries the active publication lists, in
// sort order. Minor entries no part of the configuration accepts are left
// out.
func (g *Generator) Listing() []string {
	var ids []string
	for _, e := range g.r.Context().Filter.ListTopLevelEntries() {
		if g.PartFor(e) != nil {
			ids = append(ids, e.GUID())
		}
	}
	return ids
}

// Pages splits the listing into windows of pageSize entries.
func (g *Generator) Pages(pageSize int) []pagination.Window {
	return pagination.Windows(len(g.Listing()), pageSize)
}

// Generate renders ids and groups the output under letter headings. Failed
// entries are left out and their errors joined into the returned error; the
// dictionary is returned either way.
func (g *Generator) Generate(ctx context.Context, ids []string) (*Dictionary, error) {
	start := time.Now()
	results := g.RenderEntries(ctx, ids)
	d := &Dictionary{Results: results, Sections: g.sections(results)}

	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	g.recordAssets()
	elapsed := time.Since(start)
	g.recorder.ObserveRunDuration(elapsed)
	g.log.Info("Rendered dictionary",
		logfields.Count(d.Rendered()),
		slog.Int("failed", len(errs)),
		slog.Int("sections", len(d.Sections)),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	return d, stderrors.Join(errs...)
}

// RenderEntries renders ids on the worker pool. Results are in the order of
// ids. Cancelling ctx stops submitting further entries; those are reported
// with the cancellation error.
func (g *Generator) RenderEntries(ctx context.Context, ids []string) []Result {
	results := make([]Result, len(ids))
	for i, id := range ids {
		results[i].ID = id
	}
	workers := min(g.workers, len(ids))
	g.recorder.SetWorkers(workers)

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			for i := range jobs {
				g.renderOne(ctx, name, &results[i])
			}
		}(fmt.Sprintf("worker-%d", w))
	}

	submitted := make([]bool, len(ids))
submit:
	for i := range ids {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break submit
		case jobs <- i:
			submitted[i] = true
		}
	}
	close(jobs)
	wg.Wait()

	for i := range results {
		if submitted[i] {
			continue
		}
		results[i].Err = errors.WrapError(ctx.Err(), errors.CategoryRender, "render canceled").
			ForEntry(results[i].ID).
			Build()
		g.recorder.IncEntryResult(metrics.ResultCanceled)
	}
	return results
}

func (g *Generator) renderOne(ctx context.Context, worker string, res *Result) {
	start := time.Now()
	defer func() {
		res.Duration = time.Since(start)
		g.recorder.ObserveEntryDuration(res.Duration)
	}()

	entry, ok := g.r.Context().Store.Entry(res.ID)
	if !ok {
		res.Err = errors.NotFoundError("entry not found").
			ForEntry(res.ID).
			Build()
		g.recorder.IncEntryResult(metrics.ResultFailed)
		return
	}
	res.Entry = entry

	part := g.PartFor(entry)
	if part == nil {
		g.log.Debug("No part accepts minor entry", logfields.EntryID(res.ID))
		g.recorder.IncEntryResult(metrics.ResultEmpty)
		return
	}
	node, err := g.r.RenderEntry(ctx, entry, part)
	switch {
	case err != nil:
		res.Err = err
		if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
			g.recorder.IncEntryResult(metrics.ResultCanceled)
			return
		}
		g.recorder.IncEntryResult(metrics.ResultFailed)
		g.log.Warn("Entry render failed", logfields.EntryID(res.ID), logfields.Worker(worker), logfields.Error(err))
	case node == nil:
		g.recorder.IncEntryResult(metrics.ResultEmpty)
	default:
		res.Node = node
		g.recorder.IncEntryResult(metrics.ResultRendered)
	}
}

// sections walks the results in listing order and starts a new section
// wherever the letter heading changes.
func (g *Generator) sections(results []Result) []Section {
	c := g.r.Context()
	var gen *letterhead.Generator
	if g.headings {
		gen = letterhead.New(c.Collator, c.Settings.Sort, c.Settings.SortWritingSystem())
	}

	var (
		out      []Section
		cur      letterhead.Cursor
		headings int
	)
	for _, res := range results {
		if res.Node == nil {
			continue
		}
		if label, ok := gen.MaybeHeading(res.Entry, &cur); ok {
			out = append(out, Section{Heading: label})
			headings++
		} else if len(out) == 0 {
			out = append(out, Section{})
		}
		last := &out[len(out)-1]
		last.Entries = append(last.Entries, res.Node)
	}
	g.recorder.SetLetterHeadings(headings)
	return out
}

func (g *Generator) recordAssets() {
	s := g.r.Context().Assets.Stats()
	g.recorder.AddAssets(metrics.AssetCopied, s.Copied)
	g.recorder.AddAssets(metrics.AssetReused, s.Reused)
	g.recorder.AddAssets(metrics.AssetConverted, s.Converted)
	g.recorder.AddAssets(metrics.AssetFailed, s.Failed)
}
