package resolver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

// packages mirrors this layout:
//
//	cpp/class/{format.json,template.twig}
//	cpp/struct/{format.yaml,template.twig}
//	js/contains/{format.yaml,template.twig}
//	php/class/{format.json,template.twig}
//	php/contains/{format.json,template.blade,some-ignored-file.txt}
//	php/some-ignored-file.txt
//	some-ignored-file.txt
func packages() fstest.MapFS {
	file := &fstest.MapFile{}

	return fstest.MapFS{
		"cpp/class/format.json":              file,
		"cpp/class/template.twig":            file,
		"cpp/struct/format.yaml":             file,
		"cpp/struct/template.twig":           file,
		"js/contains/format.yaml":            file,
		"js/contains/template.twig":          file,
		"php/class/format.json":              file,
		"php/class/template.twig":            file,
		"php/contains/format.json":           file,
		"php/contains/some-ignored-file.txt": file,
		"php/contains/template.blade":        file,
		"php/some-ignored-file.txt":          file,
		"some-ignored-file.txt":              file,
	}
}

func newResolver(t *testing.T, aliases map[string]string) *Resolver {
	t.Helper()

	r, err := New(aliases, Root{Path: "/pkgs", FS: packages()})
	if err != nil {
		t.Fatal(err)
	}

	return r
}

func TestResolve(t *testing.T) {
	r := newResolver(t, map[string]string{"cc": "cpp.class", "jsc": "js.contains"})

	tests := map[string]string{
		"php.class": "/pkgs/php/class",
		"cpp.class": "/pkgs/cpp/class",
		"cc":        "/pkgs/cpp/class",
		"jsc":       "/pkgs/js/contains",
		"struct":    "/pkgs/cpp/struct",
	}

	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			s, err := r.Resolve(name)
			if err != nil {
				t.Fatal(err)
			}

			if s.Dir != filepath.FromSlash(want) {
				t.Errorf("Dir = %q, want %q", s.Dir, want)
			}
		})
	}
}

func TestResolve_Errors(t *testing.T) {
	r := newResolver(t, map[string]string{"a": "foo"})

	tests := []struct {
		name string
		want error
		msg  string
	}{
		{"foo", ErrSnippetNotFound, "cannot find the snippet 'foo'"},
		{"a", ErrSnippetNotFound, "cannot find the snippet 'foo'"},
		{"bar.foo", ErrSnippetNotFound, "cannot find the snippet 'foo' on the package 'bar'"},
		{"class", ErrSnippetConflict, "the snippet 'class' exists in multiple packages (cpp, php)"},
		{"a.b.c", ErrInvalidName, "cannot resolve the name 'a.b.c'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(tt.name)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}

			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("message %q does not contain %q", err.Error(), tt.msg)
			}
		})
	}
}

func TestResolve_EmptyRoot(t *testing.T) {
	r, err := New(nil, Root{Path: "/none", FS: fstest.MapFS{}})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := r.Resolve("foo.bar"); !errors.Is(err, ErrSnippetNotFound) {
		t.Fatalf("error = %v", err)
	}
}

func TestResolve_Suggestions(t *testing.T) {
	r := newResolver(t, nil)

	_, err := r.Resolve("php.clas")
	if err == nil || !strings.Contains(err.Error(), "did you mean php.class") {
		t.Fatalf("error = %v, want suggestion", err)
	}
}

func TestList(t *testing.T) {
	var got []string

	for _, s := range newResolver(t, nil).List() {
		got = append(got, s.FullName())
	}

	want := []string{"cpp.class", "cpp.struct", "js.contains", "php.class", "php.contains"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSnippetFiles(t *testing.T) {
	r := newResolver(t, nil)

	tests := []struct {
		name     string
		format   string
		template string
	}{
		{"php.class", "format.json", "template.twig"},
		{"js.contains", "format.yaml", "template.twig"},
		{"php.contains", "format.json", "template.blade"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := r.Resolve(tt.name)
			if err != nil {
				t.Fatal(err)
			}

			f, err := s.FormatFile()
			if err != nil {
				t.Fatal(err)
			}

			if filepath.Base(f) != tt.format || filepath.Dir(f) != s.Dir {
				t.Errorf("FormatFile = %q", f)
			}

			tmpl, err := s.TemplateFile()
			if err != nil {
				t.Fatal(err)
			}

			if filepath.Base(tmpl) != tt.template {
				t.Errorf("TemplateFile = %q", tmpl)
			}
		})
	}
}

func TestSnippetFiles_Missing(t *testing.T) {
	r, err := New(nil, Root{Path: "/p", FS: fstest.MapFS{"x/empty/readme.md": &fstest.MapFile{}}})
	if err != nil {
		t.Fatal(err)
	}

	s, err := r.Resolve("empty")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.FormatFile(); !errors.Is(err, ErrNoFormatFile) {
		t.Errorf("FormatFile error = %v", err)
	}

	if _, err := s.TemplateFile(); !errors.Is(err, ErrNoTemplateFile) {
		t.Errorf("TemplateFile error = %v", err)
	}
}

func TestNew_FirstRootWins(t *testing.T) {
	first := fstest.MapFS{"php/class/format.json": &fstest.MapFile{}}
	second := fstest.MapFS{
		"php/class/format.yaml": &fstest.MapFile{},
		"php/trait/format.yaml": &fstest.MapFile{},
	}

	r, err := New(nil, Root{Path: "/one", FS: first}, Root{Path: "/two", FS: second})
	if err != nil {
		t.Fatal(err)
	}

	s, err := r.Resolve("php.class")
	if err != nil {
		t.Fatal(err)
	}

	if s.Dir != filepath.Join("/one", "php", "class") {
		t.Errorf("Dir = %q", s.Dir)
	}

	if _, err := r.Resolve("trait"); err != nil {
		t.Errorf("second root not searched: %v", err)
	}
}

func TestDirRoot_Missing(t *testing.T) {
	r, err := New(nil, DirRoot(filepath.Join(t.TempDir(), "missing")))
	if err != nil {
		t.Fatal(err)
	}

	if n := len(r.List()); n != 0 {
		t.Errorf("List() has %d snippets", n)
	}
}

func TestSearchPath(t *testing.T) {
	sep := string(os.PathListSeparator)
	t.Setenv("QOSASA_PATH", "/extra"+sep+sep+"/base")

	got := SearchPath("/base")

	want := []string{"/extra", "/base"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchPath_KeepsEnvironmentOrder(t *testing.T) {
	sep := string(os.PathListSeparator)
	t.Setenv("QOSASA_PATH", "/first"+sep+"/second"+sep+"/third")

	got := SearchPath("/pkgs")

	want := []string{"/first", "/second", "/third", "/pkgs"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchPath_Unset(t *testing.T) {
	t.Setenv("QOSASA_PATH", "")

	got := SearchPath("/pkgs")

	if diff := cmp.Diff([]string{"/pkgs"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
