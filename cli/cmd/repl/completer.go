package repl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/qosasa/qosasa/format"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{
	"help", "show", "parse", "edit", "reload", "clear", "quit",
}

// editTargets complete the argument of the edit command.
var editTargets = []string{"format", "template"}

// wordBounds returns the whitespace-delimited word at the cursor and its
// byte boundaries within input. The word is empty when the cursor sits
// between two spaces or at either end of a blank line.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(cursor, len(input))

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if unicode.IsSpace(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if unicode.IsSpace(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// argCandidates returns the completions for word in an argument line:
// "--flag" for every declared flag when word starts with "-", otherwise the
// names of boolean fields and their negations.
func argCandidates(schema *format.Node, word string) []string {
	if schema == nil {
		return nil
	}

	if strings.HasPrefix(word, "-") {
		out := make([]string, len(schema.Flags))
		for i, f := range schema.Flags {
			out[i] = "--" + f
		}

		return out
	}

	var out []string

	for _, field := range schema.Fields {
		if field.Kind == format.KindBoolean {
			out = append(out, field.Name, "!"+field.Name)
		}
	}

	return out
}

// ctrlCandidates returns the completions for the word starting at
// wordStart in a command line.
func ctrlCandidates(input string, wordStart int) []string {
	fields := strings.Fields(input[:wordStart])

	switch {
	case len(fields) == 0:
		return ctrlCommands
	case len(fields) == 1 && (fields[0] == "edit" || fields[0] == "e"):
		return editTargets
	case len(fields) == 1 && (fields[0] == "show" || fields[0] == "parse"):
		return []string{"json", "yaml"}
	}

	return nil
}

// computeMatches returns the fuzzy matches for the word at the cursor,
// ranked best-first, with the candidate list and the word boundaries. An
// empty word has no matches.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())
	if word == "" {
		return nil, nil, wordStart, wordEnd
	}

	if m.mode == modeCtrl {
		candidates = ctrlCandidates(input, wordStart)
	} else {
		candidates = argCandidates(m.schema, word)
	}

	if len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), candidates, wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within width. The selected candidate (when tabbing) uses the selected
// style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if i > 0 && used+entryWidth+ellipsisWidth > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a candidate with its matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}

// ellipsize truncates s to width cells.
func ellipsize(s string, width int) string {
	if width <= 3 || lipgloss.Width(s) <= width {
		return s
	}

	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}

	return string(runes) + "..."
}
