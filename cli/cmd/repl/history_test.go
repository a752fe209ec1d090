package repl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHistoryAdd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repl", baseHistory)
	h := NewHistory(path)

	for _, e := range []HistoryEntry{
		{"Foo --abstract", modeArgs},
		{"show", modeCtrl},
		{"  ", modeArgs},
		{"Bar", modeArgs},
		{"Bar", modeArgs},
		{"Foo --abstract", modeArgs},
		{"Foo --abstract", modeCtrl},
	} {
		if err := h.Add(e.Line, e.Mode); err != nil {
			t.Fatalf("Add(%q) error = %v", e.Line, err)
		}
	}

	want := []HistoryEntry{
		{"show", modeCtrl},
		{"Bar", modeArgs},
		{"Foo --abstract", modeArgs},
		{"Foo --abstract", modeCtrl},
	}

	if diff := cmp.Diff(want, h.Entries()); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	wantFile := "C:show\nA:Bar\nA:Foo --abstract\nC:Foo --abstract\n"
	if string(data) != wantFile {
		t.Errorf("history file = %q, want %q", data, wantFile)
	}

	loaded := NewHistory(path)
	if err := loaded.Load(); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(want, loaded.Entries()); diff != "" {
		t.Errorf("loaded entries mismatch (-want +got):\n%s", diff)
	}
}

func TestHistoryLoadUntagged(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)
	if err := os.WriteFile(path, []byte("Foo\n\nC:quit\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	want := []HistoryEntry{{"Foo", modeArgs}, {"quit", modeCtrl}}
	if diff := cmp.Diff(want, h.Entries()); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}

	if _, err := h.Entry(2); err == nil {
		t.Error("Entry(2) expected ErrOutOfBounds")
	}
}

func TestHistoryLoadMissing(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "missing"))
	if err := h.Load(); err != nil {
		t.Errorf("Load() error = %v, want nil", err)
	}

	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
}
