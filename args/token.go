package args

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/qosasa/qosasa/format"
)

// ParseToken parses token against node.
func ParseToken(token string, node *format.Node) (any, error) {
	return New(node).ParseToken(token, node)
}

// ParseToken parses token against node, which is normally the parser's
// schema or one of its descendants.
func (p *Parser) ParseToken(token string, node *format.Node) (any, error) {
	switch node.Kind {
	case format.KindString:
		return token, nil

	case format.KindNumber:
		return ParseNumber(token)

	case format.KindBoolean:
		return ParseBool(token, node.Name).Value(), nil

	case format.KindArray:
		return p.parseArray(token, node)

	case format.KindObject:
		return p.parseObject(token, node)

	default:
		return nil, ErrUnknownFormatType.
			Wrap(fmt.Errorf("'%s'", node.Kind)).
			With(slog.String("kind", string(node.Kind)), slog.String("field", node.Name))
	}
}

// numberPattern accepts an optional sign, digits with an optional fraction
// (either side of the point may be empty, not both) and an optional
// exponent. Whitespace, hexadecimal, and special values such as "Inf" are
// rejected.
var numberPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// ParseNumber parses a decimal literal. Literals without a fraction or
// exponent are int64 (base 10, so "0123" is 123) unless they overflow;
// everything else is float64.
func ParseNumber(token string) (any, error) {
	if !numberPattern.MatchString(token) {
		return nil, notNumeric(token)
	}

	if !strings.ContainsAny(token, ".eE") {
		if i, err := strconv.ParseInt(token, 10, 64); err == nil {
			return i, nil
		}
	}

	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return nil, notNumeric(token)
	}

	return f, nil
}

func notNumeric(token string) error {
	return ErrNotNumeric.
		Wrap(fmt.Errorf("unable to parse '%s' as number", token)).
		With(slog.String("token", token))
}

// Ternary is a three-valued boolean.
type Ternary int8

const (
	Unknown Ternary = iota
	True
	False
)

// Value returns true, false, or nil for Unknown.
func (t Ternary) Value() any {
	switch t {
	case True:
		return true
	case False:
		return false
	default:
		return nil
	}
}

func (t Ternary) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// ParseBool parses a boolean token. "yes", "true", "1" and the field name
// itself are True; "no", "false", "0" and the name prefixed with "!" are
// False. Anything else is Unknown. Name matches apply only when name is
// non-empty.
func ParseBool(token, name string) Ternary {
	switch token {
	case "yes", "true", "1":
		return True
	case "no", "false", "0":
		return False
	}

	if name != "" {
		switch token {
		case name:
			return True
		case "!" + name:
			return False
		}
	}

	return Unknown
}

// parseArray splits token on the separator and parses every piece, empty
// ones included, as the element. Arrays without an element schema hold
// strings.
func (p *Parser) parseArray(token string, node *format.Node) ([]any, error) {
	pieces := strings.Split(token, separator(node))
	out := make([]any, len(pieces))

	for i, piece := range pieces {
		if node.Elem == nil {
			out[i] = piece

			continue
		}

		v, err := p.ParseToken(piece, node.Elem)
		if err != nil {
			return nil, err
		}

		out[i] = v
	}

	return out, nil
}

func separator(node *format.Node) string {
	if node.Separator != "" {
		return node.Separator
	}

	return node.Kind.DefaultSeparator()
}

// parseObject splits token on the separator and assigns the pieces to
// fields. Required fields are always filled; optional fields are filled in
// declaration order while pieces remain, and the rest take their defaults.
// Pieces beyond the last assignable field are ignored.
func (p *Parser) parseObject(token string, node *format.Node) (*Map[any], error) {
	sep := separator(node)
	pieces := strings.Split(token, sep)

	var required []string

	for _, f := range node.Fields {
		if f.Required() {
			required = append(required, f.Name)
		}
	}

	if len(pieces) < len(required) {
		return nil, ErrMissingRequiredFields.
			Wrap(fmt.Errorf("%d given (%s) but %d required (%s)",
				len(pieces), token, len(required), strings.Join(required, sep))).
			With(slog.Int("given", len(pieces)), slog.Int("required", len(required)))
	}

	optional := len(pieces) - len(required)
	out := NewMap[any](len(node.Fields))
	next := 0

	for _, f := range node.Fields {
		if !f.Required() {
			if optional == 0 {
				out.Set(f.Name, defaultValue(f))

				continue
			}

			optional--
		}

		v, err := p.ParseToken(pieces[next], f)
		if err != nil {
			return nil, err
		}

		out.Set(f.Name, v)
		next++
	}

	return out, nil
}

// defaultValue returns a copy of the default of f, so results never share
// lists or maps with the schema.
func defaultValue(f *format.Node) any {
	v, _ := f.Default.Value()

	return format.Normalize(v)
}
