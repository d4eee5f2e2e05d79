// Package ui implements the interactive form behind `condex init`.
package ui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/recera/condex/cmd/condex/internal/config"
)

// RunInitTUI starts the interactive configuration form and returns the
// resulting configuration.
func RunInitTUI() (*config.Config, error) {
	if !isatty() {
		return nil, fmt.Errorf("not running in a terminal, use --defaults flag")
	}

	p := tea.NewProgram(NewModel())

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("TUI error: %w", err)
	}

	m := finalModel.(Model)
	if m.Cancelled() {
		return nil, fmt.Errorf("init cancelled")
	}

	return m.GetConfig(), nil
}

// isatty checks if we're running in a terminal
func isatty() bool {
	fileInfo, _ := os.Stdout.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
