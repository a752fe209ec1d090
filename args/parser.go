package args

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/qosasa/qosasa/format"
	"github.com/qosasa/qosasa/log"
)

// Result is the outcome of parsing one line.
type Result struct {
	// Data mirrors the schema: string, int64, float64, bool, nil (unknown
	// boolean), []any or *Map[any].
	Data any `json:"data" yaml:"data"`
	// Flags holds every declared flag in declaration order.
	Flags *Map[bool] `json:"flags" yaml:"flags"`
}

// Flag reports whether the flag name was given.
func (r Result) Flag(name string) bool {
	v, _ := r.Flags.Get(name)

	return v
}

// Parser parses lines against one compiled schema.
type Parser struct {
	schema *format.Node
	logger log.Logger
	ctx    context.Context
}

// Option configures a [Parser].
type Option func(*Parser)

// WithLogger directs parser diagnostics (trace level) to l.
func WithLogger(l log.Logger) Option {
	return func(p *Parser) { p.logger = l }
}

// WithContext sets the context passed to the logger.
func WithContext(ctx context.Context) Option {
	return func(p *Parser) { p.ctx = ctx }
}

// New returns a parser for schema.
func New(schema *format.Node, opts ...Option) *Parser {
	p := &Parser{schema: schema, ctx: context.Background()}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Parse parses line against schema.
func Parse(line string, schema *format.Node, opts ...Option) (Result, error) {
	return New(schema, opts...).Parse(line)
}

// Schema returns the schema p parses against.
func (p *Parser) Schema() *format.Node { return p.schema }

// Parse splits trailing flags off line and parses the rest against the
// schema.
func (p *Parser) Parse(line string) (Result, error) {
	text, flags, err := p.scanFlags(line)
	if err != nil {
		return Result{}, err
	}

	data, err := p.ParseToken(text, p.schema)
	if err != nil {
		return Result{}, err
	}

	return Result{Data: data, Flags: flags}, nil
}

// scanFlags splits line on single spaces and consumes "--name" tokens from
// the end. The first token is never a flag. Scanning stops at the first
// token that is not a flag; a "--name" token naming an undeclared flag is an
// error.
func (p *Parser) scanFlags(line string) (string, *Map[bool], error) {
	declared := p.schema.Flags
	flags := NewMap[bool](len(declared))

	for _, name := range declared {
		flags.Set(name, false)
	}

	if len(declared) == 0 {
		return line, flags, nil
	}

	tokens := strings.Split(line, " ")

	end := len(tokens)
	for end > 1 {
		tok := tokens[end-1]

		name, ok := strings.CutPrefix(tok, "--")
		if !ok {
			break
		}

		if !p.schema.HasFlag(name) {
			return "", nil, ErrUnknownFlag.
				Wrap(fmt.Errorf("'%s'", name)).
				With(slog.String("flag", name), slog.Int("index", end-1))
		}

		p.logger.TraceContext(p.ctx, "flag",
			slog.String("name", name), slog.Int("index", end-1))

		flags.Set(name, true)
		end--
	}

	return strings.Join(tokens[:end], " "), flags, nil
}
