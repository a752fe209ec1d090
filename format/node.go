package format

import (
	"bytes"
	"slices"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// Node is a compiled schema node.
//
// Nodes are built by [Compile] and must not be modified afterwards; a
// compiled tree can then be shared by any number of concurrent parsers.
type Node struct {
	// Name identifies the node. It is empty at the root and for array
	// elements, and required for object fields.
	Name string
	// Kind is the value type. Compile does not validate it; parsing a node
	// of an unknown kind fails.
	Kind Kind
	// Default makes the node optional when set.
	Default Default
	// Separator splits the input of array and object nodes.
	Separator string
	// Elem is the element schema of an array node.
	Elem *Node
	// Fields are the fields of an object node in declaration order.
	Fields []*Node
	// Flags are the declared command flags. Only the root's are used.
	Flags []string
}

// Required reports whether n has no default.
func (n *Node) Required() bool { return !n.Default.IsSet() }

// Field returns the object field named name.
func (n *Node) Field(name string) (*Node, bool) {
	i := slices.IndexFunc(n.Fields, func(f *Node) bool { return f.Name == name })
	if i < 0 {
		return nil, false
	}

	return n.Fields[i], true
}

// HasFlag reports whether name is a declared flag.
func (n *Node) HasFlag(name string) bool { return slices.Contains(n.Flags, name) }

// Raw returns the canonical raw schema of n. Every setting is explicit, so
// compiling the result yields a tree equal to n.
func (n *Node) Raw() map[string]any {
	raw := make(map[string]any, 6)

	for _, p := range n.pairs() {
		key, _ := p.Key.(string)

		switch v := p.Value.(type) {
		case *Node:
			raw[key] = v.Raw()
		case []*Node:
			fields := make([]any, len(v))
			for i, f := range v {
				fields[i] = f.Raw()
			}

			raw[key] = fields
		case []string:
			flags := make([]any, len(v))
			for i, f := range v {
				flags[i] = f
			}

			raw[key] = flags
		default:
			raw[key] = v
		}
	}

	return raw
}

// pairs returns the settings of n in canonical key order.
func (n *Node) pairs() yaml.MapSlice {
	var ms yaml.MapSlice

	if n.Name != "" {
		ms = append(ms, yaml.MapItem{Key: "name", Value: n.Name})
	}

	if n.Kind != "" {
		ms = append(ms, yaml.MapItem{Key: "type", Value: string(n.Kind)})
	}

	if v, ok := n.Default.Value(); ok {
		ms = append(ms, yaml.MapItem{Key: "default", Value: v})
	}

	if n.Separator != "" {
		ms = append(ms, yaml.MapItem{Key: "separator", Value: n.Separator})
	}

	if len(n.Flags) > 0 {
		ms = append(ms, yaml.MapItem{Key: "flags", Value: slices.Clone(n.Flags)})
	}

	switch {
	case n.Elem != nil:
		ms = append(ms, yaml.MapItem{Key: "fields", Value: n.Elem})
	case len(n.Fields) > 0:
		ms = append(ms, yaml.MapItem{Key: "fields", Value: n.Fields})
	}

	return ms
}

// MarshalJSON encodes the canonical raw schema with keys in declaration
// order.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, p := range n.pairs() {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}

		val, err := json.Marshal(p.Value)
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

// MarshalYAML encodes the canonical raw schema with keys in declaration
// order.
func (n *Node) MarshalYAML() (any, error) {
	return n.pairs(), nil
}
