package repl

import (
	"context"
	"log/slog"
	"os"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/qosasa/qosasa/args"
	"github.com/qosasa/qosasa/format"
	"github.com/qosasa/qosasa/log"
	"github.com/qosasa/qosasa/provider"
	"github.com/qosasa/qosasa/render"
)

// Snippet names the files of the snippet under test.
type Snippet struct {
	Name         string
	FormatFile   string
	TemplateFile string
}

// session reloads a snippet's files on every use, so edits made while the
// REPL runs are picked up. Unchanged format files are compiled once.
type session struct {
	snippet Snippet
	cache   *provider.Cache
	logger  log.Logger
}

func newSession(s Snippet, logger log.Logger) *session {
	return &session{snippet: s, cache: provider.NewCache(), logger: logger}
}

// schema loads the current schema.
func (s *session) schema(ctx context.Context) (*format.Node, error) {
	return s.cache.Load(ctx, s.snippet.FormatFile)
}

// template loads the current template.
func (s *session) template() (*render.Template, error) {
	src, err := os.ReadFile(s.snippet.TemplateFile)
	if err != nil {
		return nil, ErrReadTemplate.Wrap(err).
			With(slog.String("path", s.snippet.TemplateFile))
	}

	return render.Parse(string(src))
}

// parse parses line against the current schema.
func (s *session) parse(ctx context.Context, line string) (args.Result, error) {
	schema, err := s.schema(ctx)
	if err != nil {
		return args.Result{}, err
	}

	return args.Parse(line, schema,
		args.WithLogger(s.logger),
		args.WithContext(ctx),
	)
}

// preview returns the parsed data of line as compact JSON.
func (s *session) preview(ctx context.Context, line string) (string, error) {
	result, err := s.parse(ctx, line)
	if err != nil {
		return "", err
	}

	b, err := json.Marshal(result.Data)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// render renders the template with the arguments in line.
func (s *session) render(ctx context.Context, line string) (string, error) {
	result, err := s.parse(ctx, line)
	if err != nil {
		return "", err
	}

	tmpl, err := s.template()
	if err != nil {
		return "", err
	}

	return tmpl.String(result)
}

// dump encodes v as YAML, or as indented JSON when asJSON is set.
func dump(v any, asJSON bool) (string, error) {
	var (
		b   []byte
		err error
	)

	if asJSON {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = yaml.Marshal(v)
	}

	return string(b), err
}
