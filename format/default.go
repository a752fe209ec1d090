package format

import "fmt"

// Default is the optional default value of a schema node.
//
// The zero value is [Unset]: the node has no default and is required. Any
// value wrapped by [Some], including false, 0 and "", makes the node
// optional.
type Default struct {
	value any
	set   bool
}

// Unset is the absent default.
var Unset = Default{}

// Some returns a Default holding v.
func Some(v any) Default { return Default{value: v, set: true} }

// IsSet reports whether d holds a value.
func (d Default) IsSet() bool { return d.set }

// Value returns the held value and whether one is held.
func (d Default) Value() (any, bool) { return d.value, d.set }

func (d Default) String() string {
	if !d.set {
		return "<unset>"
	}

	return fmt.Sprintf("%v", d.value)
}
