package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"text/tabwriter"

	"github.com/qosasa/qosasa/log"
)

// List prints every snippet found in the packages directories.
type List struct {
	Dirs    bool `help:"Include each snippet's directory." short:"d"`
	Aliases bool `help:"List aliases instead of snippets." short:"a"`
}

// Run executes the list command.
func (l *List) Run(ctx context.Context) error {
	ws, err := workspaceFrom(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(ws.stdout(), 0, 4, 2, ' ', 0)

	if l.Aliases {
		var aliases map[string]string
		if ws.Settings != nil {
			aliases = ws.Settings.Aliases()
		}

		for _, name := range slices.Sorted(maps.Keys(aliases)) {
			fmt.Fprintf(tw, "%s\t%s\n", name, aliases[name])
		}

		return flush(tw)
	}

	r, err := ws.Resolver()
	if err != nil {
		return err
	}

	for _, s := range r.List() {
		if l.Dirs {
			fmt.Fprintf(tw, "%s\t%s\n", s.FullName(), s.Dir)
		} else {
			fmt.Fprintln(tw, s.FullName())
		}
	}

	return flush(tw)
}

func flush(tw *tabwriter.Writer) error {
	if err := tw.Flush(); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// Alias stores a short name for a snippet in the settings file.
type Alias struct {
	Name   string `arg:"" help:"Alias name."`
	Target string `arg:"" help:"Snippet name (package.snippet). Empty removes the alias." optional:""`
	Check  bool   `default:"true" help:"Require the target to resolve." negatable:""`
}

// Run executes the alias command.
func (a *Alias) Run(ctx context.Context) error {
	ws, err := workspaceFrom(ctx)
	if err != nil {
		return err
	}

	if a.Target != "" && a.Check {
		r, err := ws.Resolver()
		if err != nil {
			return err
		}

		if _, err := r.Resolve(a.Target); err != nil {
			return err
		}
	}

	ws.Settings.SetAlias(a.Name, a.Target)

	if err := ws.Settings.Save(); err != nil {
		return err
	}

	log.DebugContext(ctx, "alias updated",
		slog.String("alias", a.Name),
		slog.String("target", a.Target),
	)

	return nil
}
