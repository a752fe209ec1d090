package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/qosasa/qosasa/format"
	"github.com/qosasa/qosasa/log"
	"github.com/qosasa/qosasa/provider"
	"github.com/qosasa/qosasa/render"
	"github.com/qosasa/qosasa/resolver"
	"github.com/qosasa/qosasa/settings"
)

type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(contextKey{}).(*kong.Context)

	return ktx
}

type workspaceKey struct{}

// Workspace is the environment shared by all commands.
type Workspace struct {
	Settings    *settings.Settings
	PackagesDir string
	CacheDir    string
	Stdout      io.Writer

	// Roots overrides the search path derived from PackagesDir.
	Roots []resolver.Root
}

// WithWorkspace returns a new context.Context containing ws.
func WithWorkspace(ctx context.Context, ws *Workspace) context.Context {
	return context.WithValue(ctx, workspaceKey{}, ws)
}

// workspaceFrom returns the workspace stored in ctx, or one built from the
// default settings file.
func workspaceFrom(ctx context.Context) (*Workspace, error) {
	if ws, ok := ctx.Value(workspaceKey{}).(*Workspace); ok && ws != nil {
		return ws, nil
	}

	s, err := settings.Load(settings.DefaultPath())
	if err != nil {
		return nil, err
	}

	return &Workspace{
		Settings:    s,
		PackagesDir: s.PackagesDir(),
		Stdout:      os.Stdout,
	}, nil
}

func (ws *Workspace) stdout() io.Writer {
	if ws.Stdout == nil {
		return os.Stdout
	}

	return ws.Stdout
}

// Resolver returns a resolver over the workspace's packages.
func (ws *Workspace) Resolver() (*resolver.Resolver, error) {
	roots := ws.Roots
	if roots == nil {
		dir := ws.PackagesDir
		if dir == "" && ws.Settings != nil {
			dir = ws.Settings.PackagesDir()
		}

		roots = resolver.SearchRoots(dir)
	}

	var aliases map[string]string
	if ws.Settings != nil {
		aliases = ws.Settings.Aliases()
	}

	return resolver.New(aliases, roots...)
}

// Snippet is a resolved snippet with its compiled schema.
type Snippet struct {
	resolver.Snippet

	Schema *format.Node
}

// Load resolves name and compiles its format file.
func (ws *Workspace) Load(ctx context.Context, name string) (Snippet, error) {
	r, err := ws.Resolver()
	if err != nil {
		return Snippet{}, err
	}

	s, err := r.Resolve(name)
	if err != nil {
		return Snippet{}, err
	}

	path, err := s.FormatFile()
	if err != nil {
		return Snippet{}, err
	}

	schema, err := provider.Load(ctx, path)
	if err != nil {
		return Snippet{}, err
	}

	log.DebugContext(ctx, "snippet loaded",
		slog.String("name", s.FullName()),
		slog.String("format", path),
	)

	return Snippet{Snippet: s, Schema: schema}, nil
}

// Template reads and compiles the snippet's template.
func (s Snippet) Template() (*render.Template, error) {
	path, err := s.TemplateFile()
	if err != nil {
		return nil, err
	}

	return readTemplate(path)
}

func readTemplate(path string) (*render.Template, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrReadTemplate.Wrap(err).With(slog.String("path", path))
	}

	t, err := render.Parse(string(src))
	if err != nil {
		return nil, pkgError(err).With(slog.String("path", path))
	}

	return t, nil
}

// joinArgs joins command arguments into one argument line.
func joinArgs(args []string) string { return strings.Join(args, " ") }
