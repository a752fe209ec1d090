package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/qosasa/qosasa/args"
	"github.com/qosasa/qosasa/log"
)

// Gen renders a snippet's template with the parsed arguments.
type Gen struct {
	Name   string   `arg:"" help:"Snippet name (snippet, package.snippet or alias)."`
	Args   []string `arg:"" help:"Snippet arguments."                                optional:"" passthrough:""`
	Output string   `help:"Write to file instead of stdout."                         short:"o" type:"path"`
}

// Run executes the gen command.
func (g *Gen) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ws, err := workspaceFrom(ctx)
	if err != nil {
		return err
	}

	snip, err := ws.Load(ctx, g.Name)
	if err != nil {
		return err
	}

	tmpl, err := snip.Template()
	if err != nil {
		return err
	}

	result, err := args.Parse(joinArgs(g.Args), snip.Schema,
		args.WithLogger(log.Default()),
		args.WithContext(ctx),
	)
	if err != nil {
		return err
	}

	if g.Output == "" {
		return tmpl.Execute(ws.stdout(), result)
	}

	file, err := os.Create(g.Output)
	if err != nil {
		return ErrWriteOutput.Wrap(err).With(slog.String("file", g.Output))
	}
	defer file.Close()

	if err = tmpl.Execute(file, result); err != nil {
		return err
	}

	log.DebugContext(ctx, "generated snippet",
		slog.String("snippet", snip.FullName()),
		slog.String("file", g.Output),
	)

	return file.Close()
}
