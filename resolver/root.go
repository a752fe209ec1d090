package resolver

import (
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/ardnew/mung"

	"github.com/qosasa/qosasa/pkg"
)

// Root is a packages directory.
type Root struct {
	// Path is the directory on disk. Snippet paths are joined to it.
	Path string
	// FS reads the directory's contents.
	FS fs.FS
}

// DirRoot returns the root for directory path.
func DirRoot(path string) Root {
	return Root{Path: path, FS: os.DirFS(path)}
}

// SearchPath returns the packages directories to search: the entries of
// the QOSASA_PATH environment variable followed by dir. Empty and repeated
// entries are dropped.
func SearchPath(dir string) []string {
	list := mung.Make(
		mung.WithSubjectItems(dir),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(os.Getenv(pkg.Env("PATH"))),
	).String()

	var out []string

	for _, p := range strings.Split(list, string(os.PathListSeparator)) {
		p = pkg.ExpandHome(p)
		if p != "" && !slices.Contains(out, p) {
			out = append(out, p)
		}
	}

	return out
}

// SearchRoots returns a [DirRoot] for each entry of [SearchPath].
func SearchRoots(dir string) []Root {
	paths := SearchPath(dir)
	roots := make([]Root, len(paths))

	for i, p := range paths {
		roots[i] = DirRoot(p)
	}

	return roots
}
