package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/accli/internal/types"
	"github.com/studiowebux/accli/internal/view"
)

// filterChoice is one entry of a filter picker
type filterChoice struct {
	value string
	label string
}

func labelFilterChoices() []filterChoice {
	choices := []filterChoice{{value: view.FilterAll, label: "All labels"}}
	for _, label := range types.AllowedLabels {
		choices = append(choices, filterChoice{value: label, label: label})
	}
	return choices
}

func statusFilterChoices() []filterChoice {
	return []filterChoice{
		{value: view.FilterAll, label: "All statuses"},
		{value: string(types.StatusActive), label: "active"},
		{value: string(types.StatusInactive), label: "inactive"},
	}
}

// filterPickIndex finds the current pick in the choice list
func filterPickIndex(choices []filterChoice, current string) int {
	for i, choice := range choices {
		if choice.value == current {
			return i
		}
	}
	return 0
}

// handleSearchKeys handles keyboard input while typing in the search field.
// Every keystroke narrows the list live.
func (m *Model) handleSearchKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.filters.SetSearch("")
		m.refreshProjection()
		m.mode = ModeNormal
		return nil

	case "enter":
		m.searchInput.Blur()
		m.mode = ModeNormal
		return nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.filters.SetSearch(m.searchInput.Value())
	m.refreshProjection()
	return cmd
}

// handleFilterKeys handles the label and status picker modals
func (m *Model) handleFilterKeys(msg tea.KeyMsg) tea.Cmd {
	choices := labelFilterChoices()
	pick := &m.labelPickIndex
	if m.mode == ModeFilterStatus {
		choices = statusFilterChoices()
		pick = &m.statusPickIndex
	}

	switch msg.String() {
	case "esc":
		m.mode = ModeNormal

	case "j", "down":
		*pick = (*pick + 1) % len(choices)

	case "k", "up":
		*pick = (*pick - 1 + len(choices)) % len(choices)

	case "enter":
		if m.mode == ModeFilterStatus {
			m.filters.SetStatus(choices[*pick].value)
		} else {
			m.filters.SetLabel(choices[*pick].value)
		}
		m.refreshProjection()
		m.mode = ModeNormal
	}

	return nil
}

// renderFilterPicker renders the label or status picker modal
func (m *Model) renderFilterPicker() string {
	choices := labelFilterChoices()
	pick := m.labelPickIndex
	title := "Filter by Label"
	if m.mode == ModeFilterStatus {
		choices = statusFilterChoices()
		pick = m.statusPickIndex
		title = "Filter by Status"
	}

	var lines []string
	lines = append(lines, styleTitle.Render(title), "")
	for i, choice := range choices {
		marker := "  "
		line := choice.label
		if i == pick {
			marker = "> "
			line = styleSelected.Render(line)
		}
		lines = append(lines, marker+line)
	}
	lines = append(lines, "", styleSubtle.Render("↑/↓ move [Enter] apply [ESC] cancel"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(ConfirmModalWidth).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// filterIndicator summarizes the active filters for the status bar
func (m *Model) filterIndicator() string {
	var parts []string
	if search := m.filters.GetSearch(); search != "" {
		parts = append(parts, fmt.Sprintf("search:%q", search))
	}
	if label := m.filters.GetLabel(); label != view.FilterAll {
		parts = append(parts, "label:"+label)
	}
	if status := m.filters.GetStatus(); status != view.FilterAll {
		parts = append(parts, "status:"+status)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " ")
}
