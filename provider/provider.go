// Package provider reads raw snippet schemas from format files and compiles
// them.
package provider

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/klauspost/readahead"

	"github.com/qosasa/qosasa/format"
	"github.com/qosasa/qosasa/pkg"
)

var (
	ErrNoProvider   = pkg.NewError("no format provider")
	ErrReadFormat   = pkg.NewError("cannot read format file")
	ErrDecodeFormat = pkg.NewError("cannot decode format file")
)

// Provider supplies a raw schema for [format.Compile].
type Provider interface {
	Format(ctx context.Context) (any, error)
}

// decoder is implemented by providers that decode file contents.
type decoder interface {
	Provider
	path() string
	decode(data []byte) (any, error)
}

// Extensions lists the file extensions with a provider, in lookup order.
var Extensions = []string{".json", ".yaml", ".yml"}

// ForFile returns the provider for path chosen by its extension.
func ForFile(path string) (Provider, error) {
	return forFile(path)
}

func forFile(path string) (decoder, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return JSON{Path: path}, nil
	case ".yaml", ".yml":
		return YAML{Path: path}, nil
	default:
		return nil, ErrNoProvider.
			Wrap(errUnsupported(ext)).
			With(slog.String("path", path))
	}
}

type errUnsupported string

func (e errUnsupported) Error() string {
	if e == "" {
		return "file has no extension"
	}

	return "unsupported extension " + string(e)
}

// Load reads and compiles the format file at path.
func Load(ctx context.Context, path string) (*format.Node, error) {
	p, err := ForFile(path)
	if err != nil {
		return nil, err
	}

	raw, err := p.Format(ctx)
	if err != nil {
		return nil, err
	}

	node, err := format.Compile(raw)
	if err != nil {
		return nil, pkg.WrapError(err).With(slog.String("file", path))
	}

	return node, nil
}

// JSON reads a schema from a JSON file. Numbers decode exactly.
type JSON struct {
	Path string
}

// Format implements [Provider].
func (p JSON) Format(ctx context.Context) (any, error) { return decodeFile(ctx, p) }

func (p JSON) path() string { return p.Path }

func (p JSON) decode(data []byte) (any, error) {
	var raw any

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := dec.Decode(&raw); err != nil {
		return nil, ErrDecodeFormat.Wrap(err).With(slog.String("path", p.Path))
	}

	return format.Normalize(raw), nil
}

// YAML reads a schema from a YAML file.
type YAML struct {
	Path string
}

// Format implements [Provider].
func (p YAML) Format(ctx context.Context) (any, error) { return decodeFile(ctx, p) }

func (p YAML) path() string { return p.Path }

func (p YAML) decode(data []byte) (any, error) {
	var raw any

	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, ErrDecodeFormat.Wrap(err).With(slog.String("path", p.Path))
	}

	return format.Normalize(raw), nil
}

func decodeFile(ctx context.Context, d decoder) (any, error) {
	data, err := read(ctx, d.path())
	if err != nil {
		return nil, err
	}

	return d.decode(data)
}

// read returns the contents of path through a read-ahead reader.
func read(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, ErrReadFormat.Wrap(context.Cause(ctx)).With(slog.String("path", path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, ErrReadFormat.Wrap(err).With(slog.String("path", path))
	}
	defer f.Close()

	ra := readahead.NewReader(f)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadFormat.Wrap(err).With(slog.String("path", path))
	}

	return data, nil
}
