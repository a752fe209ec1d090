// Package format compiles argument schemas.
//
// A schema describes the shape of a single line of snippet arguments. Raw
// schemas come from a [provider] as decoded JSON or YAML values and are
// compiled by [Compile] into an immutable tree of [Node] values that the
// args package walks while parsing input.
//
// # Raw schemas
//
// A raw schema is either a bare name string or a structured map.
//
// Bare names use the compact grammar IDENT('['TYPE?']')?:
//
//	"name"           string field
//	"parents[]"      array of string
//	"count[number]"  array of number
//
// Structured maps accept the keys name, type, default, separator, flags and
// fields:
//
//	{
//	  "type": "object",
//	  "flags": ["compact"],
//	  "fields": [
//	    "name",
//	    {"name": "parents[]", "default": []},
//	    {"name": "attrs[object]", "separator": ".", "fields": ["name", "type"]}
//	  ]
//	}
//
// In a structured map the bracket content of name sets the node kind
// directly, so "attrs[object]" declares an object rather than an array of
// objects. A bare name "attrs[object]" declares an array whose elements are
// objects. An explicit type always wins.
//
// An explicit separator must not be empty; omit it to get the kind's
// default.
//
// A field with a default is optional; a field without one is required. A
// default of null is the same as no default.
//
// [provider]: https://pkg.go.dev/github.com/qosasa/qosasa/provider
package format
