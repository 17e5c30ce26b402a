package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// renderConfirm renders a destructive-action confirmation dialog
func (m *Model) renderConfirm(title, body string, warning string) string {
	lines := []string{
		styleTitle.Render(title),
		"",
		body,
	}
	if warning != "" {
		lines = append(lines, "", styleWarning.Render(warning))
	}
	lines = append(lines, "", styleSubtle.Render("[y] confirm [n/ESC] cancel"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorRed).
		Width(ConfirmModalWidth).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// handleAccountDeleteKeys handles the account delete confirmation
func (m *Model) handleAccountDeleteKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter":
		account, ok := m.store.Find(m.deleteAccountID)
		if !ok {
			m.mode = ModeNormal
			return nil
		}
		return m.deleteAccount(account)

	case "n", "esc":
		m.deleteAccountID = ""
		m.mode = ModeNormal
	}
	return nil
}

func (m *Model) renderAccountDelete() string {
	account, ok := m.store.Find(m.deleteAccountID)
	if !ok {
		return m.renderMain()
	}
	return m.renderConfirm("Delete Account", fmt.Sprintf("Delete %s?", account.NetflixEmail), "This cannot be undone.")
}

// handleTabDeleteKeys handles the tab close confirmation
func (m *Model) handleTabDeleteKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter":
		tabs := m.store.Tabs()
		if m.deleteTabIndex < 0 || m.deleteTabIndex >= len(tabs) {
			m.mode = ModeNormal
			return nil
		}
		accountID := m.selection.GetAccount()
		return m.closeTab(accountID, tabs[m.deleteTabIndex], m.deleteTabIndex)

	case "n", "esc":
		m.deleteTabIndex = -1
		m.mode = ModeNormal
	}
	return nil
}

func (m *Model) renderTabDelete() string {
	tabs := m.store.Tabs()
	if m.deleteTabIndex < 0 || m.deleteTabIndex >= len(tabs) {
		return m.renderMain()
	}
	return m.renderConfirm("Close Tab", fmt.Sprintf("Close tab %q?", tabs[m.deleteTabIndex].Title), "")
}

// handleLogoutConfirmKeys handles the logout confirmation
func (m *Model) handleLogoutConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter":
		return m.logout()

	case "n", "esc":
		m.mode = ModeNormal
	}
	return nil
}

func (m *Model) renderLogoutConfirm() string {
	return m.renderConfirm("Log Out", "End the current session?", "")
}

// handleHistoryClearConfirmKeys handles the activity-log clear confirmation
func (m *Model) handleHistoryClearConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter":
		if m.historyManager != nil {
			if err := m.historyManager.Clear(); err != nil {
				m.setError(fmt.Sprintf("Failed to clear activity: %v", err))
				m.mode = ModeHistory
				return nil
			}
		}
		m.historyEntries = nil
		m.historyIndex = 0
		m.mode = ModeHistory
		return m.setStatus("Activity cleared")

	case "n", "esc":
		m.mode = ModeHistory
	}
	return nil
}

func (m *Model) renderHistoryClearConfirm() string {
	return m.renderConfirm("Clear Activity", "Delete all recorded activity?", "This cannot be undone.")
}
