// Package commands implements the lexrender command line.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/lexrender/internal/assets"
	"git.home.luguber.info/inful/lexrender/internal/collation"
	"git.home.luguber.info/inful/lexrender/internal/config"
	"git.home.luguber.info/inful/lexrender/internal/dictconfig"
	"git.home.luguber.info/inful/lexrender/internal/dictionary"
	"git.home.luguber.info/inful/lexrender/internal/foundation/errors"
	"git.home.luguber.info/inful/lexrender/internal/lexicon"
	"git.home.luguber.info/inful/lexrender/internal/logfields"
	"git.home.luguber.info/inful/lexrender/internal/metrics"
	"git.home.luguber.info/inful/lexrender/internal/publication"
	"git.home.luguber.info/inful/lexrender/internal/render"
	"git.home.luguber.info/inful/lexrender/internal/version"
)

// Global is shared by every command.
type Global struct {
	Stdout io.Writer
	Stderr io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"lexrender.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Render RenderCmd `cmd:"" help:"Render the configured dictionary"`
	Pages  PagesCmd  `cmd:"" help:"Print the pagination windows of the listing"`
	Import ImportCmd `cmd:"" help:"Import a YAML lexicon into a SQLite archive"`
	Check  CheckCmd  `cmd:"" help:"Resolve the configuration tree and report configuration errors"`
	Init   InitCmd   `cmd:"" help:"Initialize a new configuration file"`

	stderr io.Writer `kong:"-"`
}

// AfterApply runs after flag parsing; sets up logging until a configuration
// file says otherwise.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(c.errWriter(), &slog.HandlerOptions{Level: level})))
	return nil
}

func (c *CLI) errWriter() io.Writer {
	if c.stderr != nil {
		return c.stderr
	}
	return os.Stderr
}

// Logger builds the logger configured by cfg; --verbose forces debug level.
func (c *CLI) Logger(cfg *config.Config) *slog.Logger {
	logging := cfg.Monitoring.Logging
	if c.Verbose {
		logging.Level = config.LogLevelDebug
	}
	logger := logging.NewLogger(c.errWriter())
	slog.SetDefault(logger)
	return logger
}

// Execute parses args and runs the selected command, returning the process
// exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	cli := CLI{stderr: stderr}
	parser, err := kong.New(&cli,
		kong.Name("lexrender"),
		kong.Description("Render dictionary entries through a configuration tree."),
		kong.Vars{"version": version.String()},
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		return errors.NewCLIErrorAdapter(false, slog.Default()).Report(stderr, err)
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		parseErr := errors.ValidationError(err.Error()).Build()
		return errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).Report(stderr, parseErr)
	}
	err = kctx.Run(&Global{Stdout: stdout, Stderr: stderr}, &cli)
	return errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).Report(stderr, err)
}

// OpenLexicon loads the lexicon named by lc: a YAML document or a SQLite
// archive.
func OpenLexicon(ctx context.Context, lc config.LexiconConfig) (*lexicon.Lexicon, error) {
	var (
		lex *lexicon.Lexicon
		err error
	)
	if lc.Archive != "" {
		lex, err = loadArchive(ctx, lc.Archive)
	} else {
		lex, err = lexicon.LoadFile(lc.Path)
	}
	if err != nil {
		return nil, err
	}
	if lc.MediaRoot != "" {
		lex.Document().MediaRoot = lc.MediaRoot
	}
	return lex, nil
}

func loadArchive(ctx context.Context, path string) (*lexicon.Lexicon, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.NotFoundError("lexicon archive not found").
			WithContext("path", path).
			Build()
	}
	archive, err := lexicon.OpenSQLiteArchive(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryStore, "failed to open lexicon archive").
			WithContext("path", path).
			Build()
	}
	defer func() {
		_ = archive.Close()
	}()
	doc, err := archive.Load(ctx)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryStore, "failed to read lexicon archive").
			WithContext("path", path).
			Build()
	}
	if doc.MediaRoot == "" {
		doc.MediaRoot = filepath.Dir(path)
	}
	return lexicon.New(doc)
}

// Session is one configured render: the loaded inputs and the generator
// built from them.
type Session struct {
	Config    *config.Config
	Lexicon   *lexicon.Lexicon
	Tree      *dictconfig.Configuration
	Settings  render.Settings
	Assets    *assets.Materializer
	Generator *dictionary.Generator
}

// SessionOptions tune NewSession.
type SessionOptions struct {
	// Publication overrides the configured publication.
	Publication string
	Recorder    metrics.Recorder
	Logger      *slog.Logger
}

// NewSession loads the lexicon and configuration tree of cfg and wires the
// render pipeline.
func NewSession(ctx context.Context, cfg *config.Config, opts SessionOptions) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	lex, err := OpenLexicon(ctx, cfg.Lexicon)
	if err != nil {
		return nil, err
	}
	tree, err := dictconfig.LoadResolved(cfg.Configuration)
	if err != nil {
		return nil, err
	}

	pubID := cfg.Publication
	if opts.Publication != "" {
		pubID = opts.Publication
	}
	if pubID != "" {
		if _, ok := lex.Publication(pubID); !ok {
			return nil, errors.NotFoundError("publication not found").
				WithContext("publication", pubID).
				Build()
		}
	}

	settings := cfg.Settings(lex.WritingSystems())
	col, err := collation.New(cfg.CollationLocale(settings))
	if err != nil {
		return nil, err
	}
	minor, err := publication.NewMinorParts(tree)
	if err != nil {
		return nil, err
	}
	filter := publication.New(lex, pubID,
		publication.WithMinorEntries(cfg.Render.ShowMinorEntries),
		publication.WithMinorParts(minor),
		publication.WithOrdering(col, settings.Sort.Key))
	materializer := assets.New(settings.ExportPath, cfg.MaterializerOptions()...)

	r := render.New(render.NewContext(lex, settings,
		render.WithFilter(filter),
		render.WithCollator(col),
		render.WithMaterializer(materializer),
		render.WithLogger(logger)))

	genOpts := []dictionary.Option{
		dictionary.WithWorkers(cfg.Render.Workers),
		dictionary.WithLetterHeadings(cfg.LetterHeadingsEnabled()),
		dictionary.WithLogger(logger),
	}
	if opts.Recorder != nil {
		genOpts = append(genOpts, dictionary.WithRecorder(opts.Recorder))
	}
	gen, err := dictionary.New(r, tree, genOpts...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Session ready",
		logfields.Publication(pubID),
		logfields.Count(len(lex.Entries())),
		slog.String("tree", tree.Name))

	return &Session{
		Config:    cfg,
		Lexicon:   lex,
		Tree:      tree,
		Settings:  settings,
		Assets:    materializer,
		Generator: gen,
	}, nil
}
