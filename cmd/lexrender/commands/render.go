package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/lexrender/internal/config"
	"git.home.luguber.info/inful/lexrender/internal/dictionary"
	"git.home.luguber.info/inful/lexrender/internal/foundation/errors"
	"git.home.luguber.info/inful/lexrender/internal/logfields"
	"git.home.luguber.info/inful/lexrender/internal/metrics"
	"git.home.luguber.info/inful/lexrender/internal/pagination"
	"git.home.luguber.info/inful/lexrender/internal/stylesheet"
	"git.home.luguber.info/inful/lexrender/internal/watch"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Publication string `short:"p" help:"Publication to render (overrides the configuration)"`
	Page        int    `help:"Render only this 1-based page of the listing"`
	Watch       bool   `short:"w" help:"Re-render whenever the configuration, tree or lexicon change"`
	MetricsFile string `name:"metrics-file" help:"Write a Prometheus textfile snapshot after each run" type:"path"`
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	logger := root.Logger(cfg)
	run := newRenderRun(r, cfg, g.Stdout, logger)
	if !r.Watch {
		return run.once(ctx, cfg)
	}
	return run.watch(ctx, root.Config, cfg)
}

// renderRun carries state that outlives a single render: the metrics
// registry and the output writer.
type renderRun struct {
	cmd      *RenderCmd
	out      io.Writer
	log      *slog.Logger
	reg      *prom.Registry
	recorder metrics.Recorder
	textfile string
}

func newRenderRun(cmd *RenderCmd, cfg *config.Config, out io.Writer, logger *slog.Logger) *renderRun {
	run := &renderRun{cmd: cmd, out: out, log: logger, recorder: metrics.NoopRecorder{}}
	run.textfile = cfg.Monitoring.Metrics.Textfile
	if cmd.MetricsFile != "" {
		run.textfile = cmd.MetricsFile
	}
	if run.textfile != "" || (cmd.Watch && cfg.Monitoring.Metrics.Listen != "") {
		run.reg = prom.NewRegistry()
		run.recorder = metrics.NewPrometheusRecorder(run.reg)
	}
	return run
}

// once renders the dictionary (or one page of it) and writes the document
// and stylesheet. Entry failures do not stop the output from being written;
// they are returned afterwards.
func (run *renderRun) once(ctx context.Context, cfg *config.Config) error {
	if err := prepareOutput(cfg.Output); err != nil {
		return err
	}
	s, err := NewSession(ctx, cfg, SessionOptions{
		Publication: run.cmd.Publication,
		Recorder:    run.recorder,
		Logger:      run.log,
	})
	if err != nil {
		return err
	}

	ids := s.Generator.Listing()
	document := cfg.Output.Document
	if run.cmd.Page > 0 {
		windows := s.Generator.Pages(cfg.Output.PageSize)
		if run.cmd.Page > len(windows) {
			return errors.ValidationError("page out of range").
				WithContext("page", run.cmd.Page).
				WithContext("pages", len(windows)).
				Build()
		}
		ids = pagination.Slice(ids, windows[run.cmd.Page-1])
		document = PageFileName(document, run.cmd.Page)
	}

	d, genErr := s.Generator.Generate(ctx, ids)
	if d == nil {
		return genErr
	}
	path, err := WriteOutput(s, d, document)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(run.out, "Rendered %d of %d entries to %s\n", d.Rendered(), len(ids), path)

	if run.textfile != "" {
		if err := metrics.WriteTextfile(run.reg, run.textfile); err != nil {
			run.log.Warn("Failed to write metrics textfile", logfields.Path(run.textfile), logfields.Error(err))
		}
	}
	return genErr
}

// watch renders once and then again after every change to the inputs named
// by the initial configuration. Each run reloads the configuration file.
func (run *renderRun) watch(ctx context.Context, configPath string, cfg *config.Config) error {
	if err := run.once(ctx, cfg); err != nil {
		run.log.Error("Render failed", logfields.Error(err))
	}
	if listen := cfg.Monitoring.Metrics.Listen; listen != "" && run.reg != nil {
		srv := startMetricsServer(listen, run.reg, run.log)
		defer stopMetricsServer(srv, run.log)
	}

	paths := []string{configPath, cfg.Configuration, cfg.Lexicon.Path, cfg.Lexicon.Archive}
	w, err := watch.New(paths, func(ctx context.Context, changed []string) error {
		run.log.Info("Inputs changed, rendering again", logfields.Count(len(changed)))
		next, err := config.Load(configPath)
		if err != nil {
			return err
		}
		return run.once(ctx, next)
	}, watch.WithLogger(run.log))
	if err != nil {
		return err
	}
	return w.Run(ctx)
}

func prepareOutput(out config.OutputConfig) error {
	dir := filepath.Clean(out.Directory)
	if out.Clean {
		if dir == "." || dir == string(filepath.Separator) {
			return errors.ValidationError("refusing to clean output directory").
				WithContext("path", out.Directory).
				Build()
		}
		if err := os.RemoveAll(dir); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to clean output directory").
				WithContext("path", dir).
				Build()
		}
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
			WithContext("path", dir).
			Build()
	}
	return nil
}

// PageFileName inserts the page number before the extension:
// dictionary.xhtml becomes dictionary-2.xhtml.
func PageFileName(name string, page int) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "-" + strconv.Itoa(page) + ext
}

// WriteOutput writes the document of d, and its stylesheet unless it is
// embedded, into the output directory. It returns the document path.
func WriteOutput(s *Session, d *dictionary.Dictionary, document string) (string, error) {
	out := s.Config.Output
	sheet := stylesheet.Generate(s.Tree, s.Settings)
	page := dictionary.Page{
		Title: out.Title,
		Lang:  s.Settings.SortWritingSystem().Code,
		Dir:   s.Settings.Direction,
	}
	if out.Stylesheet == config.InlineStylesheet {
		page.Stylesheet = sheet
	} else {
		page.StylesheetHref = out.Stylesheet
		if err := writeFile(filepath.Join(out.Directory, out.Stylesheet), func(w io.Writer) error {
			_, err := sheet.WriteTo(w)
			return err
		}); err != nil {
			return "", err
		}
	}

	path := filepath.Join(out.Directory, document)
	if err := writeFile(path, func(w io.Writer) error { return d.WriteDocument(w, page) }); err != nil {
		return "", err
	}
	return path, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	// #nosec G304 -- path is inside the configured output directory.
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create output file").
			WithContext("path", path).
			Build()
	}
	bw := bufio.NewWriter(f)
	werr := write(bw)
	if werr == nil {
		werr = bw.Flush()
	}
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return errors.WrapError(werr, errors.CategoryFileSystem, "failed to write output file").
			WithContext("path", path).
			Build()
	}
	return nil
}
