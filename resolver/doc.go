// Package resolver locates snippets by name.
//
// A snippet is a directory holding a format file and a template, stored in a
// package directory under a packages root:
//
//	<root>/<package>/<snippet>/format.json
//	<root>/<package>/<snippet>/template.txt
//
// Names take the form "package.snippet", or just "snippet" when exactly one
// package provides it. Aliases map short names to either form.
//
// Several roots may be searched. When the same package and snippet exist in
// more than one root, the first root wins.
package resolver
