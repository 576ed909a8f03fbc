package repl

import (
	"context"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/meshdef/log"
	"github.com/ardnew/meshdef/mesh"
)

const evalPrompt = "➜ "

func helpMessage() string {
	return `
Usage:
  Type an expression to evaluate it:           sin(pi/4)^2
  Assign a name to reuse a result:             a = 2*cos(1)
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Esc to dismiss candidates and restore your input
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit

Commands:
  help     Print this cruft
  list     List named constants and functions
  clear    Clear screen
  quit     Exit
`
}

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// formatCommand formats the echo line with prompt and input styled.
func formatCommand(input string) string {
	return promptStyle.Render(evalPrompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc        func() context.Context
	input          textinput.Model
	ns             mesh.Namespace
	candidateNames []string
	logger         log.Logger
	history        *History
	historyIdx     int
	matches        fuzzy.Matches // current fuzzy match results
	wordStart      int           // byte offset of current word start
	wordEnd        int           // byte offset of current word end
	suggIdx        int           // selected candidate index
	tabActive      bool          // whether user is tab-cycling
	preTabText     string        // input text before tab-cycling began
	preTabCursor   int           // cursor position before tab-cycling began
	width          int           // terminal width for ellipsization
	quitting       bool
}

// Run starts the REPL with the given namespace. Session history persists in
// cacheDir across invocations.
func Run(
	ctx context.Context,
	ns mesh.Namespace,
	cacheDir string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(
		ctx,
		"repl start",
		slog.String("cache_dir", cacheDir),
		slog.Int("name_count", len(ns.Names())),
	)

	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history",
			slog.String("error", err.Error()),
		)
	}

	m := newModel(ctx, ns, history, logger)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	ns mesh.Namespace,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:        func() context.Context { return ctx },
		input:          ti,
		ns:             ns,
		candidateNames: ns.Names(),
		logger:         logger,
		history:        history,
		historyIdx:     history.Len(),
		width:          defaultWidth,
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
		m.input.Width = msg.Width - len(evalPrompt) - 2

		return m, nil
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m = m.resetCompletion()

		return m, nil

	case tea.KeyCtrlD:
		m.quitting = true

		return m, tea.Quit

	case tea.KeyEnter:
		return m.submit()

	case tea.KeyTab:
		return m.cycleCandidate(+1), nil

	case tea.KeyShiftTab:
		return m.cycleCandidate(-1), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
		}

		m = m.resetCompletion()

		return m, nil

	case tea.KeyUp:
		return m.recallHistory(-1), nil

	case tea.KeyDown:
		return m.recallHistory(+1), nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	m.tabActive = false
	m.matches, _, m.wordStart, m.wordEnd = m.computeMatches()
	m.suggIdx = 0

	return m, cmd
}

// cycleCandidate advances the candidate selection and applies the selected
// candidate to the input, replacing the word under the cursor.
func (m model) cycleCandidate(dir int) model {
	if !m.tabActive {
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.matches, _, m.wordStart, m.wordEnd = m.computeMatches()
		m.suggIdx = 0
	}

	if len(m.matches) == 0 {
		return m
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + dir + len(m.matches)) % len(m.matches)
	}

	m.tabActive = true

	candidate := m.matches[m.suggIdx].Str
	text := m.preTabText[:m.wordStart] + candidate + m.preTabText[m.wordEnd:]

	m.input.SetValue(text)
	m.input.SetCursor(m.wordStart + len(candidate))

	return m
}

// recallHistory moves through saved history entries. Moving past the newest
// entry restores an empty input line.
func (m model) recallHistory(dir int) model {
	idx := m.historyIdx + dir
	if idx < 0 || idx > m.history.Len() {
		return m
	}

	m.historyIdx = idx

	if idx == m.history.Len() {
		m.input.SetValue("")
	} else {
		line, err := m.history.GetLine(idx)
		if err != nil {
			return m
		}

		m.input.SetValue(line)
		m.input.CursorEnd()
	}

	return m.resetCompletion()
}

func (m model) resetCompletion() model {
	m.tabActive = false
	m.matches = nil
	m.suggIdx = 0

	return m
}

// submit evaluates the current input line.
func (m model) submit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())

	m.input.SetValue("")
	m = m.resetCompletion()

	if input == "" {
		return m, nil
	}

	if _, err := m.history.Write(input); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not save history",
			slog.String("error", err.Error()),
		)
	}

	m.historyIdx = m.history.Len()

	echo := tea.Println(formatCommand(input))

	switch input {
	case "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage()))

	case "list":
		return m, tea.Sequence(
			echo,
			tea.Println(hintStyle.Render(strings.Join(m.ns.Names(), "  "))),
		)

	case "clear":
		return m, tea.ClearScreen

	case "quit", "exit":
		m.quitting = true

		return m, tea.Quit
	}

	if name, expr, ok := splitAssignment(input); ok {
		value, err := mesh.Eval(expr, m.ns)
		if err != nil {
			return m, tea.Sequence(
				echo,
				tea.Println(errorStyle.Render("error: "+err.Error())),
			)
		}

		m.ns = m.ns.WithConstant(name, value)
		m.candidateNames = m.ns.Names()

		return m, tea.Sequence(
			echo,
			tea.Println(resultStyle.Render(
				name+" = "+strconv.FormatFloat(value, 'g', -1, 64),
			)),
		)
	}

	value, err := mesh.Eval(input, m.ns)
	if err != nil {
		return m, tea.Sequence(
			echo,
			tea.Println(errorStyle.Render("error: "+err.Error())),
		)
	}

	return m, tea.Sequence(
		echo,
		tea.Println(resultStyle.Render(
			strconv.FormatFloat(value, 'g', -1, 64),
		)),
	)
}

// splitAssignment splits "name = expr" input into its parts.
// Returns ok false when the input is not an assignment, including when the
// first '=' does not follow a lone identifier.
func splitAssignment(input string) (name, expr string, ok bool) {
	lhs, rhs, found := strings.Cut(input, "=")
	if !found {
		return "", "", false
	}

	name = strings.TrimSpace(lhs)
	if !isIdentifier(name) {
		return "", "", false
	}

	expr = strings.TrimSpace(rhs)

	return name, expr, expr != ""
}

// isIdentifier reports whether s is a valid binding identifier.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}

	return true
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	if bar := renderCandidateBar(
		m.matches, m.suggIdx, m.tabActive, m.width,
	); bar != "" {
		b.WriteString(bar)
	} else if m.input.Value() == "" {
		b.WriteString(hintStyle.Render(
			"type an expression, or help for usage",
		))
	}

	b.WriteString("\n")

	return b.String()
}
