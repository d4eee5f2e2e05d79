package ui

import (
	"fmt"
	"strings"
)

var inputLabels = []string{
	"Source directories (comma separated)",
	"Template extensions",
	"Output suffix",
	"Live-reload port",
}

// View renders the current step
func (m Model) View() string {
	if m.quitting && m.step != StepComplete {
		return "Init cancelled.\n"
	}

	var b strings.Builder

	switch m.step {
	case StepBasics:
		b.WriteString(titleStyle.Render("condex init"))
		b.WriteString("\n")
		for i, input := range m.textInputs {
			label := inputLabels[i]
			if i == m.currentInput {
				b.WriteString(focusedStyle.Render("> " + label))
			} else {
				b.WriteString(labelStyle.Render("  " + label))
			}
			b.WriteString("\n  ")
			b.WriteString(input.View())
			b.WriteString("\n\n")
		}
		if m.errorMessage != "" {
			b.WriteString(errorStyle.Render(m.errorMessage))
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render("tab: next field • enter: continue • ctrl+c: quit"))

	case StepOptions:
		b.WriteString(titleStyle.Render("Options"))
		b.WriteString("\n")
		check := "[ ]"
		if m.cacheEnabled {
			check = "[x]"
		}
		b.WriteString(focusedStyle.Render(fmt.Sprintf("> %s Enable compile cache", check)))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("space: toggle • enter: continue • esc: back • q: quit"))

	case StepSummary:
		cfg := m.GetConfig()
		b.WriteString(titleStyle.Render("Summary"))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Source dirs:   ") + strings.Join(cfg.SourceDirs, ", ") + "\n")
		b.WriteString(labelStyle.Render("Extensions:    ") + strings.Join(cfg.Extensions, ", ") + "\n")
		b.WriteString(labelStyle.Render("Output suffix: ") + cfg.OutputSuffix + "\n")
		b.WriteString(labelStyle.Render("Reload port:   ") + fmt.Sprintf("%d", cfg.Watch.Port) + "\n")
		b.WriteString(labelStyle.Render("Cache:         ") + fmt.Sprintf("%v", cfg.Cache.Enabled) + "\n")
		b.WriteString(helpStyle.Render("enter: write condex.yml • esc: back • q: quit"))

	case StepComplete:
		b.WriteString(titleStyle.Render("✨ Configuration written"))
	}

	b.WriteString("\n")
	return b.String()
}
