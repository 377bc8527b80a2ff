package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmynk/guestlist/pkg/api"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	blueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	leftStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	cursorStyle = lipgloss.NewStyle().Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle = lipgloss.NewStyle().Italic(true)
)

func guestStyle(g *api.Guest) lipgloss.Style {
	if g.IsLeftVenue {
		return leftStyle
	}
	if g.Color == "red" {
		return redStyle
	}
	return blueStyle
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("GUEST LIST"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if len(m.guests) == 0 {
		b.WriteString(helpStyle.Render("No guests yet"))
		b.WriteString("\n")
	}
	for i, g := range m.Guests() {
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}
		b.WriteString(marker)
		b.WriteString(guestStyle(g).Render(g.Name))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter add • ↑/↓ select • ctrl+t left/back • ctrl+d delete • ctrl+r seed • esc quit"))
	return b.String()
}
