package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/recera/condex/cmd/condex/internal/config"
)

// Step represents the current step in the init flow
type Step int

const (
	StepBasics Step = iota
	StepOptions
	StepSummary
	StepComplete
)

// Indexes into the textInputs slice.
const (
	inputSourceDirs = iota
	inputExtensions
	inputSuffix
	inputPort
)

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Space key.Binding
	Back  key.Binding
	Quit  key.Binding
	Tab   key.Binding
}

var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Space: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "q"),
		key.WithHelp("q", "quit"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	focusedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)
)

// Model represents the TUI application state
type Model struct {
	step Step

	textInputs   []textinput.Model
	currentInput int

	// Option toggles
	cacheEnabled bool
	selectedItem int

	quitting     bool
	errorMessage string
}

// NewModel creates a new TUI model seeded with the default configuration.
func NewModel() Model {
	defaults := config.DefaultConfig()

	dirsInput := textinput.New()
	dirsInput.Placeholder = strings.Join(defaults.SourceDirs, ", ")
	dirsInput.Focus()
	dirsInput.CharLimit = 200
	dirsInput.Width = 40

	extInput := textinput.New()
	extInput.Placeholder = strings.Join(defaults.Extensions, ", ")
	extInput.CharLimit = 60
	extInput.Width = 40

	suffixInput := textinput.New()
	suffixInput.Placeholder = defaults.OutputSuffix
	suffixInput.CharLimit = 20
	suffixInput.Width = 20

	portInput := textinput.New()
	portInput.Placeholder = strconv.Itoa(defaults.Watch.Port)
	portInput.CharLimit = 5
	portInput.Width = 10

	return Model{
		step:         StepBasics,
		textInputs:   []textinput.Model{dirsInput, extInput, suffixInput, portInput},
		cacheEnabled: true,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, DefaultKeyMap.Quit) && !m.anyInputFocused() {
			m.quitting = true
			return m, tea.Quit
		}
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}

		switch m.step {
		case StepBasics:
			return m.updateBasics(msg)
		case StepOptions:
			return m.updateOptions(msg)
		case StepSummary:
			return m.updateSummary(msg)
		}
	}
	return m, nil
}

func (m Model) updateBasics(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Tab), key.Matches(msg, DefaultKeyMap.Down):
		m.focusInput((m.currentInput + 1) % len(m.textInputs))
		return m, nil

	case key.Matches(msg, DefaultKeyMap.Up):
		m.focusInput((m.currentInput + len(m.textInputs) - 1) % len(m.textInputs))
		return m, nil

	case key.Matches(msg, DefaultKeyMap.Enter):
		if m.currentInput < len(m.textInputs)-1 {
			m.focusInput(m.currentInput + 1)
			return m, nil
		}
		if err := m.validateBasics(); err != "" {
			m.errorMessage = err
			return m, nil
		}
		m.errorMessage = ""
		m.step = StepOptions
		return m, nil
	}

	var cmd tea.Cmd
	m.textInputs[m.currentInput], cmd = m.textInputs[m.currentInput].Update(msg)
	return m, cmd
}

func (m Model) updateOptions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Space):
		m.cacheEnabled = !m.cacheEnabled
	case key.Matches(msg, DefaultKeyMap.Back):
		m.step = StepBasics
	case key.Matches(msg, DefaultKeyMap.Enter):
		m.step = StepSummary
	}
	return m, nil
}

func (m Model) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Back):
		m.step = StepOptions
	case key.Matches(msg, DefaultKeyMap.Enter):
		m.step = StepComplete
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) focusInput(i int) {
	m.textInputs[m.currentInput].Blur()
	m.currentInput = i
	m.textInputs[i].Focus()
}

func (m Model) anyInputFocused() bool {
	return m.step == StepBasics
}

func (m Model) validateBasics() string {
	if port := m.textInputs[inputPort].Value(); port != "" {
		if _, err := strconv.Atoi(port); err != nil {
			return "port must be a number"
		}
	}
	if suffix := m.textInputs[inputSuffix].Value(); suffix != "" && !strings.HasPrefix(suffix, ".") {
		return "output suffix must start with '.'"
	}
	return ""
}

// GetConfig builds a Config from the form state, falling back to defaults
// for empty fields.
func (m Model) GetConfig() *config.Config {
	cfg := config.DefaultConfig()

	if dirs := splitList(m.textInputs[inputSourceDirs].Value()); len(dirs) > 0 {
		cfg.SourceDirs = dirs
	}
	if exts := splitList(m.textInputs[inputExtensions].Value()); len(exts) > 0 {
		cfg.Extensions = exts
	}
	if suffix := strings.TrimSpace(m.textInputs[inputSuffix].Value()); suffix != "" {
		cfg.OutputSuffix = suffix
	}
	if port := strings.TrimSpace(m.textInputs[inputPort].Value()); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Watch.Port = p
		}
	}
	cfg.Cache.Enabled = m.cacheEnabled

	return cfg
}

// Cancelled reports whether the user quit before confirming.
func (m Model) Cancelled() bool {
	return m.quitting && m.step != StepComplete
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
