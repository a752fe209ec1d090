package resolver

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/qosasa/qosasa/log"
	"github.com/qosasa/qosasa/pkg"
	"github.com/qosasa/qosasa/provider"
)

var (
	ErrSnippetNotFound = pkg.NewError("snippet not found")
	ErrSnippetConflict = pkg.NewError("snippet conflict")
	ErrInvalidName     = pkg.NewError("invalid snippet name")
	ErrNoFormatFile    = pkg.NewError("no format file")
	ErrNoTemplateFile  = pkg.NewError("no template file")
)

// maxSuggestions bounds the "did you mean" list of a not-found error.
const maxSuggestions = 3

// Snippet is a resolved snippet directory.
type Snippet struct {
	Package string
	Name    string
	// Dir is the snippet directory on disk.
	Dir string

	fsys fs.FS
	rel  string
}

// FullName returns "package.snippet".
func (s Snippet) FullName() string { return s.Package + "." + s.Name }

func (s Snippet) String() string { return s.FullName() }

// FS returns the snippet directory as a file system.
func (s Snippet) FS() (fs.FS, error) { return fs.Sub(s.fsys, s.rel) }

// FormatFile returns the path of the snippet's format file, the first of
// format.json, format.yaml and format.yml that exists.
func (s Snippet) FormatFile() (string, error) {
	for _, ext := range provider.Extensions {
		name := "format" + ext
		if fi, err := fs.Stat(s.fsys, path.Join(s.rel, name)); err == nil && !fi.IsDir() {
			return filepath.Join(s.Dir, name), nil
		}
	}

	return "", ErrNoFormatFile.
		Wrap(fmt.Errorf("snippet '%s' has no format file", s.FullName())).
		With(slog.String("dir", s.Dir))
}

// TemplateFile returns the path of the snippet's template, the first file
// named template or template.* in lexical order.
func (s Snippet) TemplateFile() (string, error) {
	entries, err := fs.ReadDir(s.fsys, s.rel)
	if err != nil {
		return "", ErrNoTemplateFile.Wrap(err).With(slog.String("dir", s.Dir))
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			continue
		}

		if name == "template" || strings.HasPrefix(name, "template.") {
			return filepath.Join(s.Dir, name), nil
		}
	}

	return "", ErrNoTemplateFile.
		Wrap(fmt.Errorf("snippet '%s' has no template", s.FullName())).
		With(slog.String("dir", s.Dir))
}

// Resolver finds snippets in a set of roots. It scans the roots once, when
// created, and is safe for concurrent use afterwards.
type Resolver struct {
	aliases map[string]string
	// snippets maps a snippet name to the snippet in each package that
	// provides it, ordered by package.
	snippets map[string][]Snippet
}

// New scans roots and returns a resolver. Roots that do not exist are
// skipped.
func New(aliases map[string]string, roots ...Root) (*Resolver, error) {
	r := &Resolver{
		aliases:  maps.Clone(aliases),
		snippets: make(map[string][]Snippet),
	}

	for _, root := range roots {
		if err := r.scan(root); err != nil {
			return nil, err
		}
	}

	for name := range r.snippets {
		slices.SortFunc(r.snippets[name], func(a, b Snippet) int {
			return strings.Compare(a.Package, b.Package)
		})
	}

	return r, nil
}

func (r *Resolver) scan(root Root) error {
	packages, err := fs.ReadDir(root.FS, ".")
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug("packages root not found", slog.String("root", root.Path))

		return nil
	}

	if err != nil {
		return pkg.WrapError(err).With(slog.String("root", root.Path))
	}

	for _, p := range packages {
		if !p.IsDir() {
			continue
		}

		snippets, err := fs.ReadDir(root.FS, p.Name())
		if err != nil {
			return pkg.WrapError(err).With(slog.String("root", root.Path))
		}

		for _, s := range snippets {
			if !s.IsDir() || r.has(p.Name(), s.Name()) {
				continue
			}

			r.snippets[s.Name()] = append(r.snippets[s.Name()], Snippet{
				Package: p.Name(),
				Name:    s.Name(),
				Dir:     filepath.Join(root.Path, p.Name(), s.Name()),
				fsys:    root.FS,
				rel:     path.Join(p.Name(), s.Name()),
			})
		}
	}

	return nil
}

func (r *Resolver) has(pkgName, name string) bool {
	return slices.ContainsFunc(r.snippets[name], func(s Snippet) bool {
		return s.Package == pkgName
	})
}

// Resolve returns the snippet named name, after alias substitution.
func (r *Resolver) Resolve(name string) (Snippet, error) {
	if target, ok := r.aliases[name]; ok {
		log.Debug("alias", slog.String("name", name), slog.String("target", target))

		name = target
	}

	parts := strings.Split(name, ".")

	switch len(parts) {
	case 1:
		found := r.snippets[name]

		switch len(found) {
		case 0:
			return Snippet{}, r.notFound(name,
				fmt.Errorf("cannot find the snippet '%s'", name))
		case 1:
			return found[0], nil
		default:
			pkgs := make([]string, len(found))
			for i, s := range found {
				pkgs[i] = s.Package
			}

			return Snippet{}, ErrSnippetConflict.
				Wrap(fmt.Errorf("the snippet '%s' exists in multiple packages (%s); specify the package",
					name, strings.Join(pkgs, ", "))).
				With(slog.String("snippet", name))
		}

	case 2:
		pkgName, snippet := parts[0], parts[1]

		for _, s := range r.snippets[snippet] {
			if s.Package == pkgName {
				return s, nil
			}
		}

		return Snippet{}, r.notFound(name,
			fmt.Errorf("cannot find the snippet '%s' on the package '%s'", snippet, pkgName))

	default:
		return Snippet{}, ErrInvalidName.
			Wrap(fmt.Errorf("cannot resolve the name '%s'", name)).
			With(slog.String("name", name))
	}
}

func (r *Resolver) notFound(name string, cause error) error {
	err := ErrSnippetNotFound.Wrap(cause).With(slog.String("name", name))

	if s := r.Suggest(name); len(s) > 0 {
		err = ErrSnippetNotFound.
			Wrap(fmt.Errorf("%w; did you mean %s?", cause, strings.Join(s, ", "))).
			With(slog.String("name", name))
	}

	return err
}

// Suggest returns up to three snippet names that fuzzy-match name, best
// match first.
func (r *Resolver) Suggest(name string) []string {
	var names []string

	for _, s := range r.List() {
		names = append(names, s.FullName())
	}

	matches := fuzzy.Find(name, names)

	out := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}

		out = append(out, m.Str)
	}

	return out
}

// List returns every snippet, sorted by package then name.
func (r *Resolver) List() []Snippet {
	var out []Snippet

	for _, found := range r.snippets {
		out = append(out, found...)
	}

	slices.SortFunc(out, func(a, b Snippet) int {
		if c := strings.Compare(a.Package, b.Package); c != 0 {
			return c
		}

		return strings.Compare(a.Name, b.Name)
	})

	return out
}

// Aliases returns a copy of the alias table.
func (r *Resolver) Aliases() map[string]string {
	return maps.Clone(r.aliases)
}
