package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var helpSections = []struct {
	title string
	binds [][2]string
}{
	{
		title: "Roster",
		binds: [][2]string{
			{"j/k, ↑/↓", "move cursor"},
			{"g / G", "jump to top / bottom"},
			{"enter", "select account (loads tabs, opens session)"},
			{"o", "open account session again"},
			{"n", "new account"},
			{"e", "edit account"},
			{"d", "delete account"},
			{"y", "copy email to clipboard"},
			{"i", "inspect account (JMESPath queries)"},
			{"f", "fuzzy jump to account"},
			{"R", "reload from server"},
		},
	},
	{
		title: "Filters",
		binds: [][2]string{
			{"/", "search by email"},
			{"l", "filter by label"},
			{"s", "filter by status"},
			{"c", "clear all filters"},
			{"esc", "clear filters (in roster view)"},
		},
	},
	{
		title: "Tabs",
		binds: [][2]string{
			{"t", "new tab"},
			{"r", "rename/edit active tab"},
			{"w", "close active tab"},
			{"[ / ]", "previous / next tab"},
			{"{ / }", "move active tab left / right"},
		},
	},
	{
		title: "Session",
		binds: [][2]string{
			{"L", "log in / log out"},
			{"T", "toggle light/dark theme"},
			{"H", "activity log"},
			{"?", "this help"},
			{"q", "quit"},
		},
	},
}

// updateHelpView fills the help viewport
func (m *Model) updateHelpView() {
	var b strings.Builder
	for _, section := range helpSections {
		b.WriteString(styleTitle.Render(section.title))
		b.WriteString("\n")
		for _, bind := range section.binds {
			b.WriteString("  ")
			b.WriteString(styleTitleFocused.Render(padRight(bind[0], 12)))
			b.WriteString(bind[1])
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	m.helpView.SetContent(b.String())
	m.helpView.GotoTop()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// handleHelpKeys handles keyboard input in the help modal
func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q", "?":
		m.mode = ModeNormal

	case "j", "down":
		m.helpView.ScrollDown(1)

	case "k", "up":
		m.helpView.ScrollUp(1)
	}
	return nil
}

// renderHelp renders the key binding reference
func (m *Model) renderHelp() string {
	modalWidth := m.width - ModalWidthMargin
	modalHeight := m.height - ModalHeightMargin

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Width(modalWidth).
		Height(modalHeight).
		Padding(1, 2).
		Render(styleTitle.Render("Help") + "\n\n" + m.helpView.View() + "\n\n" + styleSubtle.Render("↑/↓ scroll [ESC] close"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
