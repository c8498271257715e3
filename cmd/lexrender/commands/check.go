package commands

import (
	"context"
	"errors"
	"fmt"

	"git.home.luguber.info/inful/lexrender/internal/config"
	"git.home.luguber.info/inful/lexrender/internal/dictconfig"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Tree   string `short:"t" help:"Check this configuration tree alone, without a configuration file" type:"existingfile"`
	Sample int    `help:"Render this many listed entries to surface field errors (0 disables)" default:"20"`
}

// TreeStats summarizes a resolved configuration tree.
type TreeStats struct {
	Parts    int
	Nodes    int
	Disabled int
}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	if c.Tree != "" {
		tree, err := dictconfig.LoadResolved(c.Tree)
		if err != nil {
			return err
		}
		return printTree(g, tree)
	}

	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	logger := root.Logger(cfg)
	s, err := NewSession(context.Background(), cfg, SessionOptions{Logger: logger})
	if err != nil {
		return err
	}
	if err := printTree(g, s.Tree); err != nil {
		return err
	}
	if c.Sample <= 0 {
		return nil
	}
	return CheckSample(context.Background(), g, s, c.Sample)
}

// CheckSample renders the first n listed entries and returns their
// failures joined.
func CheckSample(ctx context.Context, g *Global, s *Session, n int) error {
	ids := s.Generator.Listing()
	if n < len(ids) {
		ids = ids[:n]
	}
	var failures []error
	for _, res := range s.Generator.RenderEntries(ctx, ids) {
		if res.Err != nil {
			failures = append(failures, res.Err)
		}
	}
	if _, err := fmt.Fprintf(g.Stdout, "Rendered %d sample entries, %d failed\n", len(ids), len(failures)); err != nil {
		return err
	}
	return errors.Join(failures...)
}

// Stats counts the nodes of a resolved tree.
func Stats(tree *dictconfig.Configuration) TreeStats {
	st := TreeStats{Parts: len(tree.Parts)}
	for _, part := range tree.Parts {
		_ = dictconfig.Walk(part, func(n *dictconfig.Node) error {
			st.Nodes++
			if !n.IsEnabled() {
				st.Disabled++
			}
			return nil
		})
	}
	return st
}

func printTree(g *Global, tree *dictconfig.Configuration) error {
	st := Stats(tree)
	_, err := fmt.Fprintf(g.Stdout, "Configuration %q OK: %d parts, %d nodes (%d disabled)\n",
		tree.Name, st.Parts, st.Nodes, st.Disabled)
	return err
}
