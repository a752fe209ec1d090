package args

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/qosasa/qosasa/format"
	"github.com/qosasa/qosasa/log"
)

func stringWithFlags() *format.Node {
	return &format.Node{Kind: format.KindString, Flags: []string{"bar", "baz"}}
}

func TestParse_Flags(t *testing.T) {
	tests := []struct {
		line  string
		data  string
		flags map[string]any
	}{
		{
			line:  "my --awesome string --baz",
			data:  "my --awesome string",
			flags: map[string]any{"bar": false, "baz": true},
		},
		{
			line:  "--my awesome string --bar",
			data:  "--my awesome string",
			flags: map[string]any{"bar": true, "baz": false},
		},
		{
			line:  "--bar",
			data:  "--bar",
			flags: map[string]any{"bar": false, "baz": false},
		},
		{
			line:  "x --bar --baz --bar",
			data:  "x",
			flags: map[string]any{"bar": true, "baz": true},
		},
		{
			line:  "a  b --baz",
			data:  "a  b",
			flags: map[string]any{"bar": false, "baz": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			res, err := Parse(tt.line, stringWithFlags())
			if err != nil {
				t.Fatal(err)
			}

			if res.Data != tt.data {
				t.Errorf("data = %q, want %q", res.Data, tt.data)
			}

			if diff := cmp.Diff(tt.flags, res.Flags.Native()); diff != "" {
				t.Errorf("flags (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_UnknownFlag(t *testing.T) {
	_, err := Parse("my --awesome string --foo --baz", stringWithFlags())
	if !errors.Is(err, ErrUnknownFlag) {
		t.Fatalf("error = %v, want ErrUnknownFlag", err)
	}

	if want := "unknown flag: 'foo'"; err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestParse_NoDeclaredFlags(t *testing.T) {
	res, err := Parse("hello --world", &format.Node{Kind: format.KindString})
	if err != nil {
		t.Fatal(err)
	}

	if res.Data != "hello --world" {
		t.Errorf("data = %q", res.Data)
	}

	if res.Flags.Len() != 0 {
		t.Errorf("flags = %v, want empty", res.Flags.Native())
	}

	if res.Flag("world") {
		t.Error("undeclared flag reported as set")
	}
}

func classSchema(t *testing.T) *format.Node {
	t.Helper()

	var raw any

	dec := json.NewDecoder(strings.NewReader(`{
		"type": "object",
		"flags": ["h", "compact"],
		"fields": [
			"name",
			{"name": "parents[array]", "default": []},
			{"name": "interfaces[array]", "default": []},
			{
				"name": "attrs[array]",
				"fields": {
					"type": "object",
					"separator": ".",
					"fields": [
						"name",
						"type",
						{"name": "static", "type": "boolean", "default": false},
						{"name": "initial", "type": "string", "default": ""}
					]
				}
			}
		]
	}`))
	dec.UseNumber()

	if err := dec.Decode(&raw); err != nil {
		t.Fatal(err)
	}

	node, err := format.Compile(raw)
	if err != nil {
		t.Fatal(err)
	}

	return node
}

func TestParse_Class(t *testing.T) {
	attr := func(name, typ string, static bool, initial string) map[string]any {
		return map[string]any{"name": name, "type": typ, "static": static, "initial": initial}
	}

	tests := []struct {
		line  string
		data  map[string]any
		flags map[string]any
	}{
		{
			line: "Baaka:Person:StupidInterface,CrazyInterface:level.int,count.int.static.0,favoriteColor.string.false.blue --compact",
			data: map[string]any{
				"name":       "Baaka",
				"parents":    []any{"Person"},
				"interfaces": []any{"StupidInterface", "CrazyInterface"},
				"attrs": []any{
					attr("level", "int", false, ""),
					attr("count", "int", true, "0"),
					attr("favoriteColor", "string", false, "blue"),
				},
			},
			flags: map[string]any{"h": false, "compact": true},
		},
		{
			line: "Person:name.string,count.int.static,friends.vector< Person* >",
			data: map[string]any{
				"name":       "Person",
				"parents":    []any{},
				"interfaces": []any{},
				"attrs": []any{
					attr("name", "string", false, ""),
					attr("count", "int", true, ""),
					attr("friends", "vector< Person* >", false, ""),
				},
			},
			flags: map[string]any{"h": false, "compact": false},
		},
	}

	schema := classSchema(t)

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			res, err := Parse(tt.line, schema)
			if err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(tt.data, Native(res.Data)); diff != "" {
				t.Errorf("data (-want +got):\n%s", diff)
			}

			if diff := cmp.Diff(tt.flags, res.Flags.Native()); diff != "" {
				t.Errorf("flags (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResult_MarshalJSON(t *testing.T) {
	res, err := Parse("Foo:Bar:I:x.int --h", classSchema(t))
	if err != nil {
		t.Fatal(err)
	}

	got, err := json.Marshal(res)
	if err != nil {
		t.Fatal(err)
	}

	want := `{"data":{"name":"Foo","parents":["Bar"],"interfaces":["I"],` +
		`"attrs":[{"name":"x","type":"int","static":false,"initial":""}]},` +
		`"flags":{"h":true,"compact":false}}`
	if string(got) != want {
		t.Errorf("json:\n got %s\nwant %s", got, want)
	}
}

func TestParser_WithLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := log.Make(&buf, log.WithLevel(log.LevelTrace), log.WithTimeLayout("none"))

	if _, err := New(stringWithFlags(), WithLogger(logger)).Parse("x --baz"); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), "name=baz") {
		t.Errorf("trace output missing flag: %q", buf.String())
	}
}

func TestParser_Concurrent(t *testing.T) {
	parser := New(classSchema(t))
	line := "Baaka:Person:A,B:level.int,count.int.static.0 --compact"

	want, err := parser.Parse(line)
	if err != nil {
		t.Fatal(err)
	}

	wantJSON, _ := json.Marshal(want)

	var wg sync.WaitGroup

	errs := make(chan error, 32)

	for range 32 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			got, err := parser.Parse(line)
			if err != nil {
				errs <- err

				return
			}

			gotJSON, _ := json.Marshal(got)
			if !bytes.Equal(gotJSON, wantJSON) {
				errs <- errors.New("result differs: " + string(gotJSON))
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
