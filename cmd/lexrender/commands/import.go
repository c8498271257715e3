package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/lexrender/internal/config"
	"git.home.luguber.info/inful/lexrender/internal/foundation/errors"
	"git.home.luguber.info/inful/lexrender/internal/lexicon"
)

// ImportCmd implements the 'import' command.
type ImportCmd struct {
	Source  string `arg:"" help:"YAML lexicon document" type:"existingfile"`
	Archive string `arg:"" optional:"" help:"SQLite archive to write (defaults to lexicon.archive of the configuration)" type:"path"`
}

func (i *ImportCmd) Run(g *Global, root *CLI) error {
	target := i.Archive
	if target == "" {
		cfg, err := config.Load(root.Config)
		if err != nil {
			return err
		}
		root.Logger(cfg)
		target = cfg.Lexicon.Archive
	}
	if target == "" {
		return errors.ValidationError("no archive given and none configured").Build()
	}
	n, err := RunImport(context.Background(), i.Source, target)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(g.Stdout, "Imported %d entries into %s\n", n, target)
	return err
}

// RunImport copies the YAML lexicon at source into the archive at target,
// replacing its contents, and returns the number of archived entries.
func RunImport(ctx context.Context, source, target string) (int, error) {
	lex, err := lexicon.LoadFile(source)
	if err != nil {
		return 0, err
	}
	archive, err := lexicon.OpenSQLiteArchive(target)
	if err != nil {
		return 0, errors.WrapError(err, errors.CategoryStore, "failed to open lexicon archive").
			WithContext("path", target).
			Build()
	}
	defer func() {
		_ = archive.Close()
	}()
	if err := archive.Save(ctx, lex.Document()); err != nil {
		return 0, errors.WrapError(err, errors.CategoryStore, "failed to write lexicon archive").
			WithContext("path", target).
			Build()
	}
	n, err := archive.Count(ctx)
	if err != nil {
		return 0, errors.WrapError(err, errors.CategoryStore, "failed to count archived entries").
			WithContext("path", target).
			Build()
	}
	return n, nil
}
