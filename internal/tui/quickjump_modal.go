package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// openQuickJump opens the fuzzy jump palette over the visible roster
func (m *Model) openQuickJump() {
	m.jumpInput.SetValue("")
	m.jumpInput.Focus()
	m.jumpMatches = nil
	m.jumpIndex = 0
	m.refreshJumpMatches()
	m.mode = ModeQuickJump
}

// refreshJumpMatches recomputes the fuzzy matches for the current pattern
func (m *Model) refreshJumpMatches() {
	emails := make([]string, len(m.projection.Filtered))
	for i, account := range m.projection.Filtered {
		emails[i] = account.NetflixEmail
	}

	pattern := m.jumpInput.Value()
	if pattern == "" {
		// No pattern yet: present everything in roster order
		matches := make([]fuzzy.Match, len(emails))
		for i, email := range emails {
			matches[i] = fuzzy.Match{Str: email, Index: i}
		}
		m.jumpMatches = matches
	} else {
		m.jumpMatches = fuzzy.Find(pattern, emails)
	}

	if m.jumpIndex >= len(m.jumpMatches) {
		m.jumpIndex = len(m.jumpMatches) - 1
	}
	if m.jumpIndex < 0 {
		m.jumpIndex = 0
	}
}

// handleQuickJumpKeys handles keyboard input in the jump palette
func (m *Model) handleQuickJumpKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.jumpInput.Blur()
		m.mode = ModeNormal
		return nil

	case "down", "ctrl+n":
		if m.jumpIndex < len(m.jumpMatches)-1 {
			m.jumpIndex++
		}
		return nil

	case "up", "ctrl+p":
		if m.jumpIndex > 0 {
			m.jumpIndex--
		}
		return nil

	case "enter":
		if m.jumpIndex < len(m.jumpMatches) {
			m.cursor = m.jumpMatches[m.jumpIndex].Index
		}
		m.jumpInput.Blur()
		m.mode = ModeNormal
		return nil
	}

	var cmd tea.Cmd
	m.jumpInput, cmd = m.jumpInput.Update(msg)
	m.refreshJumpMatches()
	return cmd
}

// renderQuickJump renders the jump palette
func (m *Model) renderQuickJump() string {
	var lines []string
	lines = append(lines, styleTitle.Render("Jump to Account"), "")
	lines = append(lines, m.jumpInput.View(), "")

	shown := len(m.jumpMatches)
	if shown > QuickJumpMaxResults {
		shown = QuickJumpMaxResults
	}

	if shown == 0 {
		lines = append(lines, styleSubtle.Render("No matches"))
	}

	for i := 0; i < shown; i++ {
		match := m.jumpMatches[i]
		line := highlightMatch(match)
		if i == m.jumpIndex {
			line = styleSelected.Render(match.Str)
		}
		lines = append(lines, line)
	}

	lines = append(lines, "", styleSubtle.Render("↑/↓ move [Enter] jump [ESC] cancel"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Width(FormModalWidth).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// highlightMatch bolds the characters the pattern matched
func highlightMatch(match fuzzy.Match) string {
	if len(match.MatchedIndexes) == 0 {
		return match.Str
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder
	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(styleTitleFocused.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
