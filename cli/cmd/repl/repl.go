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

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/interp"
	"github.com/pfgray/ecma-proposal-chainable-do-syntax/log"
)

// editedMsg is sent when the editor returned a block that parses.
type editedMsg struct{ text string }

// editCancelledMsg is sent when the user cleared the editor content.
type editCancelledMsg struct{}

// editDeclinedMsg is sent when the user declined to re-edit after a parse
// error.
type editDeclinedMsg struct{}

// editErrorMsg is sent when the edit process encounters a non-parse error.
type editErrorMsg struct{ err error }

const (
	evalPrompt = "do› "
	ctrlPrompt = "  : "
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help              Print this message
  vars              List variables
  set NAME=VALUE    Bind a variable (VALUE is parsed as YAML)
  unset NAME...     Remove variables
  edit              Edit a multi-line block in $EDITOR and evaluate it
  clear             Clear screen
  quit              Exit REPL

Usage:
  Type a do-block, or just its body, to lower and evaluate it:
    do { x <- some(1); y <- option(user.age); x + y }
    x <- list(1, 2); x * 10
  The result of the last evaluation is bound to _
  Press Tab / Shift-Tab to cycle through completions
  Press Esc to toggle between eval and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeEval inputMode = iota
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
	codeStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = suggestionStyle.Bold(true)
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

func (m inputMode) prompt() string {
	if m == modeCtrl {
		return ctrlPromptStyle.Render(ctrlPrompt)
	}

	return promptStyle.Render(evalPrompt)
}

// echo formats an entered line with the prompt of its mode.
func (m inputMode) echo(input string) string {
	return m.prompt() + inputStyle.Render(input)
}

// draft is the unsubmitted input of one mode.
type draft struct {
	text   string
	cursor int
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	session      *Session
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
	drafts       [2]draft
	lastEval     string
}

// Run starts the REPL. History is kept in cacheDir unless it is blank.
func Run(
	ctx context.Context,
	session *Session,
	cacheDir string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(ctx, "repl start",
		slog.String("cache_dir", cacheDir),
		slog.Int("vars", len(session.Names())),
	)

	var historyPath string
	if cacheDir != "" {
		historyPath = filepath.Join(cacheDir, baseHistory)
	}

	history := NewHistory(historyPath)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history",
			slog.String("path", historyPath),
			slog.Any("error", err),
		)
	}

	logger.TraceContext(ctx, "repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	p := tea.NewProgram(newModel(ctx, session, history, logger), tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	session *Session,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = modeEval.prompt()
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		session:    session,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeEval,
	}
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
		m.input.Width = msg.Width - lipgloss.Width(evalPrompt) - 2

		return m, nil

	case editedMsg:
		return m.evaluate(msg.text)

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("edit cancelled"))

	case editDeclinedMsg:
		m.quitting = true

		return m, tea.Quit

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	return m.input.View() + "\n" + m.hintLine() + "\n"
}

// hintLine renders the line under the input: the history position, a
// usage hint, a signature or the completion candidates.
func (m model) hintLine() string {
	input := m.input.Value()

	if m.historyIdx < m.history.Len() {
		return hintStyle.Render(fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len(),
		))
	}

	if strings.TrimSpace(input) == "" {
		if m.mode == modeEval {
			return hintStyle.Render("Type a do-block or its body, or press Esc for commands")
		}

		return hintStyle.Render("Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)")
	}

	if m.mode == modeEval && !m.tabActive {
		if call := detectFunctionCall(input, m.input.Position()); call.inCall {
			if sig, params := getSignature(call.name); sig != "" {
				return renderSignatureHint(sig, params, call.argIndex)
			}
		}
	}

	return renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width)
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabActive && len(m.matches) > 0 {
			m.tabActive = false
			refreshMatches(&m, true)

			return m, nil
		}

		return m.executeInput()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyStep(-1, false), nil

	case tea.KeyDown:
		return m.historyStep(1, false), nil

	case tea.KeyShiftUp:
		return m.historyStep(-1, true), nil

	case tea.KeyShiftDown:
		return m.historyStep(1, true), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		if m.mode == modeEval {
			return m.switchToMode(modeCtrl), nil
		}

		return m.switchToMode(modeEval), nil
	}

	typing := msg.Type == tea.KeyRunes

	if typing && m.tabActive && msg.String() == " " {
		m.tabActive = false
	} else if !typing {
		m.tabActive = false
	}

	var cmd tea.Cmd

	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, typing)

	return m, cmd
}

// cycle moves the completion selection by step, starting tab-cycling if it
// is not active. A single candidate is accepted immediately.
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

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	cursor := m.wordStart + len(replacement)

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(cursor)

	m.wordEnd = cursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true it also accepts the sole remaining candidate
// once the typed word equals it. Deletions and cursor movement pass false.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.drafts = [2]draft{}
	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Add(input, m.mode); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not save history",
			slog.Any("error", err),
		)
	}

	m.historyIdx = m.history.Len()

	if m.mode == modeCtrl {
		return m.executeCommand(input)
	}

	return m.evaluate(input)
}

// evaluate runs input in the session and prints the lowered code and the
// result.
func (m model) evaluate(input string) (model, tea.Cmd) {
	m.lastEval = input

	m.logger.TraceContext(m.ctxFunc(), "repl eval", slog.String("input", input))

	lines := []tea.Cmd{tea.Println(modeEval.echo(input))}

	out, err := m.session.Eval(m.ctxFunc(), input)
	if out.Code != "" {
		lines = append(lines, tea.Println(codeStyle.Render("  "+out.Code)))
	}

	if err != nil {
		lines = append(lines, tea.Println(errorStyle.Render("error: "+err.Error())))
	} else {
		lines = append(lines, tea.Println(resultStyle.Render(interp.FormatResult(out.Result))))
	}

	return m, tea.Sequence(lines...)
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	name, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	echo := tea.Println(modeCtrl.echo(input))

	m.logger.TraceContext(m.ctxFunc(), "repl command",
		slog.String("command", name),
		slog.String("args", rest),
	)

	switch name {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage()))

	case "v", "vars":
		return m, tea.Sequence(echo, tea.Println(m.listVars()))

	case "s", "set":
		bound, err := m.session.Set(rest)
		if err != nil {
			return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
		}

		v, _ := m.session.Var(bound)

		return m, tea.Sequence(echo, tea.Println(resultStyle.Render(bound+" = "+interp.FormatResult(v))))

	case "u", "unset":
		if err := m.session.Unset(strings.Fields(rest)...); err != nil {
			return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
		}

		return m, echo

	case "c", "clear":
		return m, tea.ClearScreen

	case "e", "edit":
		return m, tea.Sequence(echo, m.edit())

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + name + " (try 'help')"),
		)
	}
}

// edit opens the last evaluated input in the editor.
func (m model) edit() tea.Cmd {
	cmd := &editBlockCommand{
		ctxFunc: m.ctxFunc,
		session: m.session,
		text:    m.lastEval,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		switch {
		case errors.Is(err, ErrEditDeclined):
			return editDeclinedMsg{}
		case err != nil:
			return editErrorMsg{err: err}
		case cmd.edited == "":
			return editCancelledMsg{}
		default:
			return editedMsg{text: cmd.edited}
		}
	})
}

func (m model) listVars() string {
	names := m.session.Names()
	if len(names) == 0 {
		return hintStyle.Render("  (no variables)")
	}

	var b strings.Builder

	for _, name := range names {
		v, _ := m.session.Var(name)
		fmt.Fprintf(&b, "  %s %s\n", name, hintStyle.Render("= "+interp.FormatResult(v)))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// historyStep moves through the history by delta entries, or to the next
// entry of the current mode when sameMode is set. Other entries switch the
// mode to theirs. Stepping past the newest entry clears the input.
func (m model) historyStep(delta int, sameMode bool) model {
	for i := m.historyIdx + delta; i >= 0 && i < m.history.Len(); i += delta {
		entry, err := m.history.GetEntry(i)
		if err != nil || sameMode && entry.Mode != m.mode {
			continue
		}

		if entry.Mode != m.mode {
			m = m.switchToMode(entry.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.SetCursor(len(entry.Line))
		refreshMatches(&m, false)

		return m
	}

	if delta > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m
}

// switchToMode switches to mode, keeping the unsubmitted input of each
// mode.
func (m model) switchToMode(mode inputMode) model {
	m.drafts[m.mode] = draft{text: m.input.Value(), cursor: m.input.Position()}

	m.mode = mode
	m.tabActive = false
	m.input.Prompt = mode.prompt()
	m.input.SetValue(m.drafts[mode].text)
	m.input.SetCursor(m.drafts[mode].cursor)

	refreshMatches(&m, false)

	return m
}
