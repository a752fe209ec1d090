package repl

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/qosasa/qosasa/format"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"second_word", "Foo Bar", 7, "Bar", 4, 7},
		{"flag", "Foo --abs", 9, "--abs", 4, 9},
		{"negated", "Foo !abs", 8, "!abs", 4, 8},
		{"separators_inside", "a:b,c:d", 7, "a:b,c:d", 0, 7},
		{"empty_at_boundary", "Foo ", 4, "", 4, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"cursor_past_end", "foo", 10, "foo", 0, 3},
		{"tab_delimited", "a\tbc", 4, "bc", 2, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestArgCandidates(t *testing.T) {
	schema := &format.Node{
		Kind:      format.KindObject,
		Separator: " ",
		Flags:     []string{"abstract", "final"},
		Fields: []*format.Node{
			{Name: "name", Kind: format.KindString},
			{Name: "public", Kind: format.KindBoolean},
			{Name: "static", Kind: format.KindBoolean},
		},
	}

	tests := []struct {
		name string
		word string
		want []string
	}{
		{"flags", "--a", []string{"--abstract", "--final"}},
		{"single_dash", "-", []string{"--abstract", "--final"}},
		{"booleans", "pub", []string{"public", "!public", "static", "!static"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := argCandidates(schema, tt.word)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("argCandidates(%q) mismatch (-want +got):\n%s", tt.word, diff)
			}
		})
	}

	if got := argCandidates(nil, "--x"); got != nil {
		t.Errorf("argCandidates(nil) = %v, want nil", got)
	}
}

func TestCtrlCandidates(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wordStart int
		want      []string
	}{
		{"command", "ed", 0, ctrlCommands},
		{"edit_target", "edit te", 5, editTargets},
		{"edit_short", "e f", 2, editTargets},
		{"show_format", "show y", 5, []string{"json", "yaml"}},
		{"no_more", "edit format x", 12, nil},
		{"unknown", "quit x", 5, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ctrlCandidates(tt.input, tt.wordStart)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ctrlCandidates(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestEllipsize(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"tiny", 3, "tiny"},
	}

	for _, tt := range tests {
		if got := ellipsize(tt.in, tt.width); got != tt.want {
			t.Errorf("ellipsize(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
