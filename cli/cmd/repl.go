package cmd

import (
	"context"
	"path/filepath"

	"github.com/qosasa/qosasa/cli/cmd/repl"
	"github.com/qosasa/qosasa/log"
)

// Repl tries a snippet interactively.
type Repl struct {
	Name string `arg:"" help:"Snippet name (snippet, package.snippet or alias)."`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ws, err := workspaceFrom(ctx)
	if err != nil {
		return err
	}

	snip, err := ws.Load(ctx, r.Name)
	if err != nil {
		return err
	}

	tmpl, err := snip.TemplateFile()
	if err != nil {
		return err
	}

	format, err := snip.FormatFile()
	if err != nil {
		return err
	}

	cacheDir := ws.CacheDir
	if ktx := kongContextFrom(ctx); cacheDir == "" && ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, repl.Snippet{
		Name:         snip.FullName(),
		FormatFile:   format,
		TemplateFile: tmpl,
	}, filepath.Join(cacheDir, "repl"), log.Default())
}
