package format

// Kind is the value type of a schema node.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
)

// Kinds lists every valid kind.
var Kinds = []Kind{KindString, KindNumber, KindBoolean, KindArray, KindObject}

// Valid reports whether k is one of [Kinds].
func (k Kind) Valid() bool {
	switch k {
	case KindString, KindNumber, KindBoolean, KindArray, KindObject:
		return true
	default:
		return false
	}
}

// Composite reports whether values of kind k are split on a separator.
func (k Kind) Composite() bool { return k == KindArray || k == KindObject }

// DefaultSeparator returns the separator used for k when the schema does not
// declare one, or "" for scalar kinds.
func (k Kind) DefaultSeparator() string {
	switch k {
	case KindArray:
		return ","
	case KindObject:
		return ":"
	default:
		return ""
	}
}

func (k Kind) String() string { return string(k) }
