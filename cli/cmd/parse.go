package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/qosasa/qosasa/args"
	"github.com/qosasa/qosasa/log"
)

// Encoding selects the encoding of printed values.
type Encoding struct {
	Format string `default:"json" enum:"json,yaml" help:"Output format (${enum})." short:"F"`
}

// write encodes v to w.
func (f Encoding) write(w io.Writer, v any) error {
	var (
		b   []byte
		err error
	)

	switch f.Format {
	case "yaml":
		b, err = yaml.Marshal(v)
	default:
		b, err = json.MarshalIndent(v, "", "  ")
		b = append(b, '\n')
	}

	if err != nil {
		return ErrMarshal.Wrap(err).With(slog.String("format", f.Format))
	}

	if _, err = w.Write(b); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// Parse prints the arguments of a snippet as parsed against its schema.
type Parse struct {
	Encoding `embed:""`

	Name string   `arg:"" help:"Snippet name (snippet, package.snippet or alias)."`
	Args []string `arg:"" help:"Snippet arguments."                                optional:"" passthrough:""`
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ws, err := workspaceFrom(ctx)
	if err != nil {
		return err
	}

	snip, err := ws.Load(ctx, p.Name)
	if err != nil {
		return err
	}

	result, err := args.Parse(joinArgs(p.Args), snip.Schema,
		args.WithLogger(log.Default()),
		args.WithContext(ctx),
	)
	if err != nil {
		return err
	}

	return p.write(ws.stdout(), result)
}

// Show prints the compiled schema of a snippet.
type Show struct {
	Encoding `embed:""`

	Name string `arg:"" help:"Snippet name (snippet, package.snippet or alias)."`
}

// Run executes the show command.
func (s *Show) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ws, err := workspaceFrom(ctx)
	if err != nil {
		return err
	}

	snip, err := ws.Load(ctx, s.Name)
	if err != nil {
		return err
	}

	return s.write(ws.stdout(), snip.Schema)
}
