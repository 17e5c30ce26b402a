package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// handleHistoryKeys handles keyboard input in the activity log modal
func (m *Model) handleHistoryKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q", "H":
		m.mode = ModeNormal

	case "j", "down":
		if m.historyIndex < len(m.historyEntries)-1 {
			m.historyIndex++
		}

	case "k", "up":
		if m.historyIndex > 0 {
			m.historyIndex--
		}

	case "g":
		m.historyIndex = 0

	case "G":
		if n := len(m.historyEntries); n > 0 {
			m.historyIndex = n - 1
		}

	case "x":
		m.mode = ModeHistoryClearConfirm
	}

	return nil
}

// renderHistory renders the activity log modal
func (m *Model) renderHistory() string {
	modalWidth := m.width - ModalWidthMargin
	modalHeight := m.height - ModalHeightMargin

	var lines []string
	lines = append(lines, styleTitle.Render("Activity"), "")

	if len(m.historyEntries) == 0 {
		lines = append(lines, styleSubtle.Render("No activity recorded yet"))
	}

	pageSize := modalHeight - 8
	if pageSize < 1 {
		pageSize = 1
	}
	offset := 0
	if m.historyIndex >= pageSize {
		offset = m.historyIndex - pageSize + 1
	}

	end := offset + pageSize
	if end > len(m.historyEntries) {
		end = len(m.historyEntries)
	}

	for i := offset; i < end; i++ {
		entry := m.historyEntries[i]

		outcome := styleSuccess.Render("ok")
		if !entry.OK {
			outcome = styleError.Render("failed")
		}

		line := fmt.Sprintf("%s  %-8s %-30s %s",
			entry.Timestamp.Local().Format("2006-01-02 15:04"),
			entry.Kind,
			entry.AccountEmail,
			outcome,
		)
		if entry.Detail != "" {
			line += "  " + styleSubtle.Render(truncateMessage(entry.Detail))
		}

		if i == m.historyIndex {
			line = styleSelected.Render(line)
		}
		lines = append(lines, line)
	}

	lines = append(lines, "", styleSubtle.Render("↑/↓ move [x] clear [ESC] close"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorYellow).
		Width(modalWidth).
		Height(modalHeight).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
