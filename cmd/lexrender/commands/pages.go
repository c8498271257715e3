package commands

import (
	"context"
	"fmt"
	"slices"

	"git.home.luguber.info/inful/lexrender/internal/config"
	"git.home.luguber.info/inful/lexrender/internal/foundation/errors"
	"git.home.luguber.info/inful/lexrender/internal/foundation/normalization"
	"git.home.luguber.info/inful/lexrender/internal/lexicon"
	"git.home.luguber.info/inful/lexrender/internal/pagination"
)

var directionNormalizer = normalization.NewNormalizer("direction", map[string]pagination.Direction{
	"next":     pagination.Forward,
	"forward":  pagination.Forward,
	"previous": pagination.Backward,
	"backward": pagination.Backward,
}, pagination.Forward)

// PagesCmd implements the 'pages' command.
type PagesCmd struct {
	Publication string `short:"p" help:"Publication to list (overrides the configuration)"`
	Size        int    `short:"s" help:"Entries per page (overrides output.page_size)"`
	Expand      int    `help:"Widen this 1-based page toward a neighbour before printing"`
	Toward      string `help:"Neighbour to take entries from when expanding (next|previous)" default:"next"`
	Step        int    `help:"Entries to take when expanding (defaults to the page size)"`
	Locate      string `help:"Report the page holding this entry id"`
}

func (p *PagesCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	logger := root.Logger(cfg)
	s, err := NewSession(context.Background(), cfg, SessionOptions{Publication: p.Publication, Logger: logger})
	if err != nil {
		return err
	}

	size := cfg.Output.PageSize
	if p.Size > 0 {
		size = p.Size
	}
	ids := s.Generator.Listing()
	windows := pagination.Windows(len(ids), size)
	if p.Expand > 0 {
		if p.Expand > len(windows) {
			return errors.ValidationError("page out of range").
				WithContext("page", p.Expand).
				WithContext("pages", len(windows)).
				Build()
		}
		dir, err := directionNormalizer.Parse(p.Toward)
		if err != nil {
			return err
		}
		step := p.Step
		if step <= 0 {
			step = size
		}
		windows = pagination.Expand(windows, p.Expand-1, dir, step)
	}
	if p.Locate != "" {
		page := pagination.Locate(windows, slices.Index(ids, p.Locate))
		if page < 0 {
			return errors.NotFoundError("entry not listed").
				WithContext("entry_id", p.Locate).
				Build()
		}
		_, err := fmt.Fprintf(g.Stdout, "entry %s is on page %d\n", p.Locate, page+1)
		return err
	}
	return PrintPages(g, s.Lexicon, s.Settings.SortWritingSystem().Code, ids, windows)
}

// PrintPages writes one line per window: its entry range and the headwords
// in ws at either end.
func PrintPages(g *Global, lex *lexicon.Lexicon, ws string, ids []string, windows []pagination.Window) error {
	headword := func(id string) string {
		if e, ok := lex.Entry(id); ok {
			return e.HeadWord(ws)
		}
		return id
	}
	for i, w := range windows {
		if _, err := fmt.Fprintf(g.Stdout, "page %d: entries %d-%d (%d) %s .. %s\n",
			i+1, w.Start+1, w.End+1, w.Len(), headword(ids[w.Start]), headword(ids[w.End])); err != nil {
			return err
		}
	}
	if len(windows) == 0 {
		_, err := fmt.Fprintln(g.Stdout, "no entries")
		return err
	}
	return nil
}
