package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"market-finder/domain"
)

// styles
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	headerStyle   = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("19")).Bold(true)
	badgeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("27")).Padding(0, 1)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

func (a *App) renderChoices() string {
	var b strings.Builder
	for i, c := range a.choices() {
		marker := " "
		if i == a.cursor {
			marker = cursorStyle.Render("▶")
		}
		label := c.label
		switch {
		case !c.enabled:
			label = dimStyle.Render(label)
		case c.active:
			label = selectedStyle.Render("✓ " + label)
		}
		if c.detail != "" {
			label += "  " + dimStyle.Render(c.detail)
		}
		fmt.Fprintf(&b, "%s %s\n", marker, label)
	}
	return b.String()
}

func (a *App) renderResults() string {
	v := a.view
	var b strings.Builder
	b.WriteString(headerStyle.Render("Available Carriers") + "\n")
	fmt.Fprintf(&b, "Found %d carriers for %s\n", v.Total, v.Selection.LOB)

	if len(v.Results.Online) > 0 {
		b.WriteString("\n" + headerStyle.Render("Online Applications") + "\n")
		b.WriteString(renderCarriers(v.Results.Online))
	}
	if len(v.Results.OfflineOnly) > 0 {
		b.WriteString("\n" + headerStyle.Render("Contact Required") + "\n")
		b.WriteString(renderCarriers(v.Results.OfflineOnly))
	}
	if v.Total == 0 {
		b.WriteString("\n" + headerStyle.Render("No carriers available") + "\n")
		b.WriteString(dimStyle.Render("Try selecting a different line of business or state.") + "\n")
	}
	return b.String()
}

func renderCarriers(carriers []domain.Carrier) string {
	var b strings.Builder
	for _, c := range carriers {
		fmt.Fprintf(&b, "  %s %s\n", badgeStyle.Render(c.Initials()), c.Name)
	}
	return b.String()
}
