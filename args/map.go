package args

import (
	"bytes"
	"iter"
	"maps"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// Map is a map that iterates in insertion order.
type Map[V any] struct {
	keys   []string
	values map[string]V
}

// NewMap returns an empty map with room for n entries.
func NewMap[V any](n int) *Map[V] {
	return &Map[V]{
		keys:   make([]string, 0, n),
		values: make(map[string]V, n),
	}
}

// Set stores v under key. A new key is appended to the iteration order; an
// existing key keeps its position.
func (m *Map[V]) Set(key string, v V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}

	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.values[key] = v
}

// Get returns the value stored under key.
func (m *Map[V]) Get(key string) (V, bool) {
	if m == nil {
		var zero V

		return zero, false
	}

	v, ok := m.values[key]

	return v, ok
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

// Keys iterates over the keys in order.
func (m *Map[V]) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		if m == nil {
			return
		}

		for _, k := range m.keys {
			if !yield(k) {
				return
			}
		}
	}
}

// All iterates over the entries in order.
func (m *Map[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if m == nil {
			return
		}

		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Native returns the entries as a plain map, converting nested maps and
// lists with [Native].
func (m *Map[V]) Native() map[string]any {
	out := make(map[string]any, m.Len())

	for k, v := range m.All() {
		out[k] = Native(v)
	}

	return out
}

// Clone returns a shallow copy of m.
func (m *Map[V]) Clone() *Map[V] {
	if m == nil {
		return nil
	}

	return &Map[V]{
		keys:   append([]string(nil), m.keys...),
		values: maps.Clone(m.values),
	}
}

// MarshalJSON encodes m as a JSON object with keys in order.
func (m *Map[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	i := 0
	for k, v := range m.All() {
		if i > 0 {
			buf.WriteByte(',')
		}

		i++

		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}

		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalYAML encodes m as a YAML mapping with keys in order.
func (m *Map[V]) MarshalYAML() (any, error) {
	ms := make(yaml.MapSlice, 0, m.Len())

	for k, v := range m.All() {
		ms = append(ms, yaml.MapItem{Key: k, Value: v})
	}

	return ms, nil
}

// Native converts parsed data to plain Go values: ordered maps become
// map[string]any and lists are converted element-wise. Other values are
// returned unchanged.
func Native(v any) any {
	switch x := v.(type) {
	case *Map[any]:
		return x.Native()
	case *Map[bool]:
		return x.Native()
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = Native(e)
		}

		return out
	default:
		return v
	}
}
