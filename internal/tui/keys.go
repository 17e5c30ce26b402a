package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/accli/internal/types"
)

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		m.Cleanup()
		return tea.Quit
	}

	switch m.mode {
	case ModeNormal:
		return m.handleNormalKeys(msg)
	case ModeLogin:
		return m.handleLoginKeys(msg)
	case ModeSearch:
		return m.handleSearchKeys(msg)
	case ModeFilterLabel, ModeFilterStatus:
		return m.handleFilterKeys(msg)
	case ModeAccountForm:
		return m.handleAccountFormKeys(msg)
	case ModeAccountDelete:
		return m.handleAccountDeleteKeys(msg)
	case ModeTabForm:
		return m.handleTabFormKeys(msg)
	case ModeTabDelete:
		return m.handleTabDeleteKeys(msg)
	case ModeLogoutConfirm:
		return m.handleLogoutConfirmKeys(msg)
	case ModeInspect:
		return m.handleInspectKeys(msg)
	case ModeQuickJump:
		return m.handleQuickJumpKeys(msg)
	case ModeHistory:
		return m.handleHistoryKeys(msg)
	case ModeHistoryClearConfirm:
		return m.handleHistoryClearConfirmKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	}

	return nil
}

// handleNormalKeys handles keyboard input in the main roster view
func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		m.Cleanup()
		return tea.Quit

	case "j", "down":
		m.navigateAccounts(1)

	case "k", "up":
		m.navigateAccounts(-1)

	case "g":
		m.cursor = 0
		m.listOffset = 0

	case "G":
		if n := len(m.projection.Filtered); n > 0 {
			m.cursor = n - 1
		}

	case "enter":
		account, ok := m.currentAccount()
		if !ok {
			return nil
		}
		previous := m.selection.GetAccount()
		m.selection.SelectAccount(account.ID)
		if previous != account.ID {
			return tea.Batch(m.loadTabs(account.ID), m.openAccount(account))
		}
		return m.openAccount(account)

	case "o":
		account, ok := m.resolveActionTarget()
		if !ok {
			return nil
		}
		return m.openAccount(account)

	case "n":
		m.openAccountForm(nil)

	case "e":
		account, ok := m.resolveActionTarget()
		if !ok {
			return nil
		}
		m.openAccountForm(&account)

	case "d":
		account, ok := m.resolveActionTarget()
		if !ok {
			return nil
		}
		m.deleteAccountID = account.ID
		m.mode = ModeAccountDelete

	case "y":
		account, ok := m.resolveActionTarget()
		if !ok {
			return nil
		}
		return m.copyEmail(account)

	case "/":
		m.mode = ModeSearch
		m.searchInput.SetValue(m.filters.GetSearch())
		m.searchInput.CursorEnd()
		m.searchInput.Focus()

	case "l":
		m.labelPickIndex = filterPickIndex(labelFilterChoices(), m.filters.GetLabel())
		m.mode = ModeFilterLabel

	case "s":
		m.statusPickIndex = filterPickIndex(statusFilterChoices(), m.filters.GetStatus())
		m.mode = ModeFilterStatus

	case "c":
		m.filters.Reset()
		m.searchInput.SetValue("")
		m.refreshProjection()
		return m.setStatus("Filters cleared")

	case "i":
		account, ok := m.resolveActionTarget()
		if !ok {
			return nil
		}
		m.openInspect(account)

	case "f":
		m.openQuickJump()

	case "t":
		if m.selection.GetAccount() == "" {
			m.setError("Select an account before adding tabs")
			return nil
		}
		m.openTabForm(nil)

	case "r":
		tab, _, ok := m.activeTab()
		if !ok {
			return nil
		}
		m.openTabForm(&tab)

	case "w":
		_, idx, ok := m.activeTab()
		if !ok {
			return nil
		}
		m.deleteTabIndex = idx
		m.mode = ModeTabDelete

	case "[":
		m.cycleTab(-1)

	case "]":
		m.cycleTab(1)

	case "{":
		return m.moveTab(-1)

	case "}":
		return m.moveTab(1)

	case "R":
		return m.loadAccounts()

	case "T":
		theme, err := m.sessionMgr.ToggleTheme()
		if err != nil {
			m.setError(err.Error())
			return nil
		}
		lipgloss.SetHasDarkBackground(theme == types.ThemeDark)
		return m.setStatus("Theme: " + string(theme))

	case "H":
		m.mode = ModeHistory
		return m.loadHistory()

	case "L":
		if m.sessionMgr.IsAuthenticated() {
			m.mode = ModeLogoutConfirm
		} else {
			m.mode = ModeLogin
			m.openLoginForm()
		}

	case "?":
		m.mode = ModeHelp
		m.updateHelpView()

	case "esc":
		if m.filters.Active() {
			m.filters.Reset()
			m.searchInput.SetValue("")
			m.refreshProjection()
		}
	}

	return nil
}

// navigateAccounts moves the cursor up or down with wraparound
func (m *Model) navigateAccounts(delta int) {
	n := len(m.projection.Filtered)
	if n == 0 {
		return
	}

	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = n - 1
	} else if m.cursor >= n {
		m.cursor = 0
	}
}

// resolveActionTarget picks the account an action applies to: the active
// selection when present, else the account under the cursor
func (m *Model) resolveActionTarget() (types.Account, bool) {
	if id := m.selection.GetAccount(); id != "" {
		if account, ok := m.store.Find(id); ok {
			return account, true
		}
	}
	return m.currentAccount()
}

// activeTab returns the active tab and its index in the collection
func (m *Model) activeTab() (types.Tab, int, bool) {
	idx := m.activeTabIndex()
	if idx < 0 {
		return types.Tab{}, -1, false
	}
	return m.store.Tabs()[idx], idx, true
}

// cycleTab activates the neighbouring tab, clamped at the edges
func (m *Model) cycleTab(delta int) {
	tabs := m.store.Tabs()
	if len(tabs) == 0 {
		return
	}

	idx := m.activeTabIndex()
	if idx < 0 {
		m.selection.ActivateTab(tabs[0].ID)
		return
	}

	idx += delta
	if idx < 0 || idx >= len(tabs) {
		return
	}
	m.selection.ActivateTab(tabs[idx].ID)
}
