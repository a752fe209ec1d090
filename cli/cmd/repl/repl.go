package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/qosasa/qosasa/format"
	"github.com/qosasa/qosasa/log"
)

// editDoneMsg is sent when a file was edited and passed its check.
type editDoneMsg struct{ path string }

// editDeclinedMsg is sent when the user declined to re-edit a file that
// failed its check.
type editDeclinedMsg struct{ path string }

// editErrorMsg is sent when the editor could not be run.
type editErrorMsg struct{ err error }

const (
	argsPrompt = "➜ "
	ctrlPrompt = " :"
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help              Print this help
  show [json|yaml]  Print the compiled schema
  parse [json|yaml] Print the parsed arguments of the pending line
  edit format       Edit the format file in $EDITOR
  edit template     Edit the template in $EDITOR
  reload            Reload the format file
  clear             Clear screen
  quit              Exit REPL

Usage:
  Type snippet arguments; the parsed data is previewed below the prompt
  Press Enter to render the template with the arguments
  Press Tab / Shift-Tab to cycle through flag and boolean completions
  Press Esc to toggle between argument and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeArgs inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

// echo formats a submitted line with the prompt of its mode.
func echo(input string, mode inputMode) string {
	if mode == modeCtrl {
		return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
	}

	return promptStyle.Render(argsPrompt) + inputStyle.Render(input)
}

// pending is the unsubmitted input of a mode.
type pending struct {
	text   string
	cursor int
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	session      *session
	schema       *format.Node // last schema that compiled
	preview      string       // parsed data of the argument line
	previewErr   error
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	candidates   []string      // backing candidate list
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
	mode         inputMode
	saved        [2]pending
}

// Run starts the REPL for snippet s. History is kept in cacheDir.
func Run(
	ctx context.Context,
	s Snippet,
	cacheDir string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(ctx, "repl start",
		slog.String("snippet", s.Name),
		slog.String("cache_dir", cacheDir),
	)

	sess := newSession(s, logger)

	// Fail early on a broken snippet; later errors are shown in the REPL.
	schema, err := sess.schema(ctx)
	if err != nil {
		return err
	}

	if _, err := sess.template(); err != nil {
		return err
	}

	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history",
			slog.String("error", err.Error()))
	}

	logger.TraceContext(ctx, "repl history loaded",
		slog.Int("entry_count", history.Len()))

	m := newModel(ctx, sess, schema, history, logger)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	sess *session,
	schema *format.Node,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(argsPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	m := model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		session:    sess,
		schema:     schema,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		width:      defaultWidth,
		mode:       modeArgs,
	}

	refresh(&m, false)

	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(argsPrompt) - 2

		return m, nil

	case editDoneMsg:
		m = m.reload()

		m.logger.TraceContext(m.ctxFunc(), "repl edit complete",
			slog.String("path", msg.path))

		return m, tea.Println(resultStyle.Render("✔ " + msg.path + " updated"))

	case editDeclinedMsg:
		m = m.reload()

		return m, tea.Println(hintStyle.Render("🗴 " + msg.path + " saved with errors"))

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("🗴 error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	input := m.input.Value()

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))

	case m.mode == modeCtrl && strings.TrimSpace(input) == "":
		b.WriteString(hintStyle.Render(
			"Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)"))

	case m.mode == modeArgs && m.previewErr != nil:
		b.WriteString(errorStyle.Render(ellipsize(m.previewErr.Error(), m.width)))

	case m.mode == modeArgs:
		b.WriteString(hintStyle.Render(ellipsize(m.preview, m.width)))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()))

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refresh(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.submit()
		}

		// Lock in the current tab candidate without submitting.
		m.tabActive = false
		refresh(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.recall(-1, false), nil

	case tea.KeyDown:
		return m.recall(1, false), nil

	case tea.KeyShiftUp:
		return m.recall(-1, true), nil

	case tea.KeyShiftDown:
		return m.recall(1, true), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refresh(&m, false)

			return m, nil
		}

		if m.mode == modeArgs {
			return m.switchToMode(modeCtrl), nil
		}

		return m.switchToMode(modeArgs), nil

	case tea.KeyRunes, tea.KeySpace:
		// Space breaks out of tab-cycling, keeping the candidate.
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refresh(&m, true)

		return m, cmd
	}

	// Any other key (backspace, delete, arrows) edits without
	// auto-confirming a completion.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refresh(&m, false)

	return m, cmd
}

// cycle moves the tab selection by step, wrapping around. A single
// candidate is completed at once.
func (m model) cycle(step int) model {
	n := len(m.matches)

	switch {
	case n == 0:
		return m

	case n == 1:
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m

	case m.tabActive:
		m.suggIdx = (m.suggIdx + step + n) % n

	default:
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = n - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word in the input with
// replacement and moves the cursor after it.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	cursor := m.wordStart + len(replacement)

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(cursor)

	m.wordEnd = cursor
}

// refresh recomputes the completions and the parse preview for the current
// input. With autoConfirm, a word that already equals the only candidate is
// accepted. autoConfirm is false for deletions and cursor movement so that
// editing never completes unexpectedly.
func refresh(m *model, autoConfirm bool) {
	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if m.mode == modeArgs {
		m.preview, m.previewErr = m.session.preview(m.ctxFunc(), m.input.Value())
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	candidate := m.matches[0].Str
	if m.input.Value()[m.wordStart:m.wordEnd] == candidate {
		replaceCurrentWord(m, candidate)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

// reload recompiles the format file, keeping the previous schema for
// completion when it fails.
func (m model) reload() model {
	if schema, err := m.session.schema(m.ctxFunc()); err == nil {
		m.schema = schema
	}

	refresh(&m, false)

	return m
}

// submit handles Enter: an argument line renders the template, a command
// line runs the command.
func (m model) submit() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	mode := m.mode

	if mode == modeCtrl && input == "" {
		return m, nil
	}

	m.saved[mode] = pending{}
	m.input.SetValue("")

	if err := m.history.Add(input, mode); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not save history",
			slog.String("error", err.Error()))
	}

	m.historyIdx = m.history.Len()

	if mode == modeCtrl {
		m.logger.TraceContext(m.ctxFunc(), "repl command", slog.String("input", input))

		cmd := m.execute(input)
		refresh(&m, false)

		return m, cmd
	}

	m.logger.TraceContext(m.ctxFunc(), "repl render", slog.String("input", input))

	m = m.reload()

	out, err := m.session.render(m.ctxFunc(), input)
	if err != nil {
		return m, tea.Sequence(
			tea.Println(echo(input, mode)),
			tea.Println(errorStyle.Render("error: "+err.Error())),
		)
	}

	return m, tea.Sequence(
		tea.Println(echo(input, mode)),
		tea.Println(resultStyle.Render(strings.TrimRight(out, "\n"))),
	)
}

// execute runs a control command.
func (m *model) execute(input string) tea.Cmd {
	parts := strings.Fields(input)
	name, params := parts[0], parts[1:]
	echoCmd := tea.Println(echo(input, modeCtrl))

	m.logger.TraceContext(m.ctxFunc(), "repl exec command",
		slog.String("command", name),
		slog.Any("args", params),
	)

	asJSON := len(params) > 0 && params[0] == "json"

	switch name {
	case "q", "quit", "exit":
		m.quitting = true

		return tea.Sequence(echoCmd, tea.Quit)

	case "h", "help":
		return tea.Sequence(echoCmd, tea.Println(helpMessage()))

	case "s", "show":
		schema, err := m.session.schema(m.ctxFunc())
		if err != nil {
			return tea.Sequence(echoCmd, printError(err))
		}

		return tea.Sequence(echoCmd, printDump(schema, asJSON))

	case "p", "parse":
		result, err := m.session.parse(m.ctxFunc(), m.saved[modeArgs].text)
		if err != nil {
			return tea.Sequence(echoCmd, printError(err))
		}

		return tea.Sequence(echoCmd, printDump(result, asJSON))

	case "r", "reload":
		*m = m.reload()

		if _, err := m.session.schema(m.ctxFunc()); err != nil {
			return tea.Sequence(echoCmd, printError(err))
		}

		return tea.Sequence(echoCmd, tea.Println(resultStyle.Render("✔ reloaded")))

	case "c", "clear":
		return tea.ClearScreen

	case "e", "edit":
		return tea.Sequence(echoCmd, m.edit(params))

	default:
		return printError(errors.New("unknown command: " + name + " (try 'help')"))
	}
}

// edit opens the format file or template, as named by params, in the
// user's editor.
func (m model) edit(params []string) tea.Cmd {
	target := "format"
	if len(params) > 0 {
		target = params[0]
	}

	cmd := &editFileCommand{
		ctxFunc: m.ctxFunc,
		logger:  m.logger,
	}

	switch target {
	case "format", "f":
		cmd.path = m.session.snippet.FormatFile
		cmd.check = func(ctx context.Context) error {
			_, err := m.session.schema(ctx)

			return err
		}

	case "template", "t":
		cmd.path = m.session.snippet.TemplateFile
		cmd.check = func(context.Context) error {
			_, err := m.session.template()

			return err
		}

	default:
		return printError(errors.New("cannot edit '" + target + "' (format or template)"))
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		switch {
		case errors.Is(err, ErrEditDeclined):
			return editDeclinedMsg{path: cmd.path}
		case err != nil:
			return editErrorMsg{err: err}
		}

		return editDoneMsg{path: cmd.path}
	})
}

func printError(err error) tea.Cmd {
	return tea.Println(errorStyle.Render("error: " + err.Error()))
}

func printDump(v any, asJSON bool) tea.Cmd {
	out, err := dump(v, asJSON)
	if err != nil {
		return printError(err)
	}

	return tea.Println(strings.TrimRight(out, "\n"))
}

// recall moves through history by step. With inMode, entries of the other
// mode are skipped; otherwise the mode follows the entry. Moving past the
// newest entry clears the input.
func (m model) recall(step int, inMode bool) model {
	for i := m.historyIdx + step; i >= 0 && i < m.history.Len(); i += step {
		entry, err := m.history.Entry(i)
		if err != nil {
			break
		}

		if inMode && entry.Mode != m.mode {
			continue
		}

		if entry.Mode != m.mode {
			m = m.switchToMode(entry.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.SetCursor(len(entry.Line))
		refresh(&m, false)

		return m
	}

	if step > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refresh(&m, false)
	}

	return m
}

// switchToMode switches to mode, keeping each mode's pending input.
func (m model) switchToMode(mode inputMode) model {
	m.saved[m.mode] = pending{text: m.input.Value(), cursor: m.input.Position()}

	m.mode = mode
	if mode == modeArgs {
		m.input.Prompt = promptStyle.Render(argsPrompt)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
	}

	m.input.SetValue(m.saved[mode].text)
	m.input.SetCursor(m.saved[mode].cursor)
	refresh(&m, false)

	return m
}
