package format

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/qosasa/qosasa/pkg"
)

// ErrInvalidSchema is returned when a raw schema cannot be decoded into a
// node tree.
var ErrInvalidSchema = pkg.NewError("invalid schema")

// Compile compiles a raw schema into a node tree.
//
// raw is a bare name string or a map[string]any with the keys described in
// the package documentation; fields hold a single raw schema (array element)
// or a []any of raw schemas (object fields). Every array and object node
// without an explicit separator receives [Kind.DefaultSeparator].
//
// Compile validates structure only. Node kinds are not checked; an unknown
// kind is reported when input is parsed against it.
func Compile(raw any) (*Node, error) {
	return compile(raw, "$")
}

func compile(raw any, path string) (*Node, error) {
	var (
		n   *Node
		err error
	)

	switch v := raw.(type) {
	case string:
		n, err = compileName(v, path)
	case map[string]any:
		n, err = compileMap(v, path)
	default:
		return nil, invalid(path, "unsupported schema value %T", raw)
	}

	if err != nil {
		return nil, err
	}

	if n.Separator == "" {
		n.Separator = n.Kind.DefaultSeparator()
	}

	return n, nil
}

// compileName compiles a bare name. Brackets declare an array of the
// bracketed kind (string when empty); anything else is a string.
func compileName(s, path string) (*Node, error) {
	name, ok := ParseName(s)
	if !ok {
		return nil, invalid(path, "malformed name %q", s)
	}

	n := &Node{Name: name.Ident, Kind: KindString}

	if name.Brackets {
		elem := &Node{Kind: KindString}
		if name.Type != "" {
			elem.Kind = Kind(name.Type)
		}

		elem.Separator = elem.Kind.DefaultSeparator()

		n.Kind = KindArray
		n.Elem = elem
	}

	return n, nil
}

// compileMap compiles a structured schema. Bracket content in name sets the
// kind itself, and an explicit type overrides it.
func compileMap(m map[string]any, path string) (*Node, error) {
	n := new(Node)

	if v, ok := present(m, "name"); ok {
		s, ok := v.(string)
		if !ok {
			return nil, invalid(path, "name must be a string, not %T", v)
		}

		name, ok := ParseName(s)
		if !ok {
			return nil, invalid(path, "malformed name %q", s)
		}

		n.Name = name.Ident
		n.Kind = Kind(name.Type)
	}

	if v, ok := present(m, "type"); ok {
		s, ok := v.(string)
		if !ok {
			return nil, invalid(path, "type must be a string, not %T", v)
		}

		n.Kind = Kind(s)
	}

	if v, ok := present(m, "default"); ok {
		n.Default = Some(Normalize(v))
	}

	if v, ok := present(m, "separator"); ok {
		s, ok := v.(string)
		if !ok {
			return nil, invalid(path, "separator must be a string, not %T", v)
		}

		if s == "" {
			return nil, invalid(path, "separator must not be empty")
		}

		n.Separator = s
	}

	if v, ok := present(m, "flags"); ok {
		flags, err := compileFlags(v, path)
		if err != nil {
			return nil, err
		}

		n.Flags = flags
	}

	if v, ok := present(m, "fields"); ok {
		if err := compileFields(n, v, path); err != nil {
			return nil, err
		}
	}

	return n, nil
}

func compileFlags(v any, path string) ([]string, error) {
	var list []any

	switch f := v.(type) {
	case []string:
		return append([]string(nil), f...), nil
	case []any:
		list = f
	default:
		return nil, invalid(path, "flags must be a list, not %T", v)
	}

	flags := make([]string, 0, len(list))

	for i, item := range list {
		s, ok := item.(string)
		if !ok || s == "" {
			return nil, invalid(fmt.Sprintf("%s.flags[%d]", path, i),
				"flag must be a non-empty string")
		}

		flags = append(flags, s)
	}

	return flags, nil
}

// compileFields compiles a single raw schema into the element of n, or a
// list of raw schemas into its fields.
func compileFields(n *Node, v any, path string) error {
	list, ok := v.([]any)
	if !ok {
		elem, err := compile(v, path+".fields")
		if err != nil {
			return err
		}

		n.Elem = elem

		return nil
	}

	n.Fields = make([]*Node, 0, len(list))
	seen := make(map[string]struct{}, len(list))

	for i, raw := range list {
		fpath := fmt.Sprintf("%s.fields[%d]", path, i)

		f, err := compile(raw, fpath)
		if err != nil {
			return err
		}

		if f.Name == "" {
			return invalid(fpath, "object field has no name")
		}

		if _, dup := seen[f.Name]; dup {
			return invalid(fpath, "duplicate field %q", f.Name)
		}

		seen[f.Name] = struct{}{}
		n.Fields = append(n.Fields, f)
	}

	return nil
}

// present returns m[key] unless it is missing or null.
func present(m map[string]any, key string) (any, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, false
	}

	return v, true
}

func invalid(path, format string, args ...any) error {
	return ErrInvalidSchema.
		Wrap(fmt.Errorf("%s: "+format, append([]any{path}, args...)...)).
		With(slog.String("path", path))
}

// Normalize converts decoded numbers to int64 or float64 throughout v.
// Lists and maps are copied; other values are returned unchanged.
func Normalize(v any) any {
	switch x := v.(type) {
	case interface {
		Int64() (int64, error)
		Float64() (float64, error)
		String() string
	}:
		if i, err := x.Int64(); err == nil {
			return i
		}

		if f, err := x.Float64(); err == nil {
			return f
		}

		return x.String()
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint:
		return normalizeUint(uint64(x))
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return normalizeUint(x)
	case float32:
		return float64(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = Normalize(e)
		}

		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = Normalize(e)
		}

		return out
	default:
		return v
	}
}

func normalizeUint(u uint64) any {
	if u <= math.MaxInt64 {
		return int64(u)
	}

	f, _ := strconv.ParseFloat(strconv.FormatUint(u, 10), 64)

	return f
}
