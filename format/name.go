package format

import "regexp"

// Name is a decoded compact name.
type Name struct {
	// Ident is the identifier before the brackets.
	Ident string
	// Type is the bracket content, empty when absent or "[]".
	Type string
	// Brackets reports whether a bracket pair follows the identifier.
	Brackets bool
}

var namePattern = regexp.MustCompile(`^(\w+)(\[(\w*)\])?$`)

// ParseName decodes s using the grammar IDENT('['TYPE?']')?, where IDENT and
// TYPE are word characters and the brackets follow IDENT immediately. It
// reports false if s does not match the grammar in full.
func ParseName(s string) (Name, bool) {
	m := namePattern.FindStringSubmatch(s)
	if m == nil {
		return Name{}, false
	}

	return Name{Ident: m[1], Type: m[3], Brackets: m[2] != ""}, true
}

func (n Name) String() string {
	if !n.Brackets {
		return n.Ident
	}

	return n.Ident + "[" + n.Type + "]"
}
