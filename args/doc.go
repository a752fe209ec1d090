// Package args parses a line of snippet arguments against a compiled
// schema.
//
// Parsing has two stages. Trailing "--name" tokens are first stripped from
// the line and recorded as flags; the remaining text is then parsed
// recursively by schema kind:
//
//	string   the text itself
//	number   int64 for integer literals, float64 otherwise
//	boolean  true, false or nil (unknown)
//	array    text split on the separator, each piece parsed as the element
//	object   text split on the separator and assigned to fields
//
// Object fields without a default are required. Optional fields are filled
// from the input in declaration order only after every required field has a
// value, so "amine:25" and "amine:25:!admin" both parse against
// name:age:admin=false.
//
// A compiled schema is never modified, so one [format.Node] may be shared by
// any number of concurrent Parse calls.
package args
