// Package render expands snippet templates with parsed arguments.
//
// A template is plain text with expression blocks delimited by "{{" and
// "}}". Each block holds an expr-lang expression evaluated against the
// parsed arguments: the fields of an object at the top level, plus "data"
// (the whole parsed value) and "flags" (flag name to bool).
//
//	class {{ name }}{{ len(parents) > 0 ? " extends " + join(parents, ", ") : "" }} {
//	{{ join(map(attrs, "    private $" + .name + ";"), "\n") }}
//	}
//
// Results are written as text: nil is empty, lists are joined with ", ",
// maps are written as JSON and everything else with its default format.
package render

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/goccy/go-json"

	"github.com/qosasa/qosasa/args"
	"github.com/qosasa/qosasa/pkg"
)

var (
	ErrTemplateSyntax = pkg.NewError("template syntax error")
	ErrTemplateEval   = pkg.NewError("template evaluation failed")
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// Template is a compiled template. It is safe for concurrent use.
type Template struct {
	parts []part
}

// part is either literal text or a compiled expression.
type part struct {
	text    string
	source  string
	line    int
	program *vm.Program
}

// Parse compiles src.
func Parse(src string) (*Template, error) {
	var (
		t    Template
		line = 1
	)

	for src != "" {
		i := strings.Index(src, openDelim)
		if i < 0 {
			t.parts = append(t.parts, part{text: src})

			break
		}

		if i > 0 {
			t.parts = append(t.parts, part{text: src[:i]})
			line += strings.Count(src[:i], "\n")
		}

		rest := src[i+len(openDelim):]

		j := strings.Index(rest, closeDelim)
		if j < 0 {
			return nil, ErrTemplateSyntax.
				Wrap(fmt.Errorf("line %d: unterminated %q", line, openDelim)).
				With(slog.Int("line", line))
		}

		source := strings.TrimSpace(rest[:j])
		if source == "" {
			return nil, ErrTemplateSyntax.
				Wrap(fmt.Errorf("line %d: empty expression", line)).
				With(slog.Int("line", line))
		}

		program, err := expr.Compile(source, options...)
		if err != nil {
			return nil, ErrTemplateEval.
				Wrap(err).
				With(slog.Int("line", line), slog.String("expr", source))
		}

		t.parts = append(t.parts, part{source: source, line: line, program: program})
		line += strings.Count(rest[:j], "\n")
		src = rest[j+len(closeDelim):]
	}

	return &t, nil
}

// MustParse is like [Parse] but panics on error.
func MustParse(src string) *Template {
	t, err := Parse(src)
	if err != nil {
		panic(err)
	}

	return t
}

// Execute writes the template expanded with result to w.
func (t *Template) Execute(w io.Writer, result args.Result) error {
	env := Env(result)

	for _, p := range t.parts {
		text := p.text

		if p.program != nil {
			v, err := vm.Run(p.program, env)
			if err != nil {
				return ErrTemplateEval.
					Wrap(err).
					With(slog.Int("line", p.line), slog.String("expr", p.source))
			}

			text = Text(v)
		}

		if _, err := io.WriteString(w, text); err != nil {
			return pkg.WrapError(err)
		}
	}

	return nil
}

// String expands the template with result.
func (t *Template) String(result args.Result) (string, error) {
	var sb strings.Builder

	err := t.Execute(&sb, result)

	return sb.String(), err
}

// Env returns the expression environment for result.
func Env(result args.Result) map[string]any {
	data := args.Native(result.Data)
	env := make(map[string]any)

	if m, ok := data.(map[string]any); ok {
		for k, v := range m {
			env[k] = v
		}
	}

	env["data"] = data
	env["flags"] = result.Flags.Native()

	return env
}

// Text formats an expression result.
func Text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []any:
		s := make([]string, len(x))
		for i, e := range x {
			s[i] = Text(e)
		}

		return strings.Join(s, ", ")
	case []string:
		return strings.Join(x, ", ")
	case map[string]any:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}

		return string(b)
	default:
		return fmt.Sprint(v)
	}
}

var options = []expr.Option{
	expr.AllowUndefinedVariables(),
	expr.Function("ucfirst", func(params ...any) (any, error) {
		return mapFirst(params, unicode.ToUpper)
	}, new(func(string) string)),
	expr.Function("lcfirst", func(params ...any) (any, error) {
		return mapFirst(params, unicode.ToLower)
	}, new(func(string) string)),
}

func mapFirst(params []any, f func(rune) rune) (any, error) {
	s, _ := params[0].(string)

	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s, nil
	}

	return string(f(r)) + s[size:], nil
}
