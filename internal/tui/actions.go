package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"
	"github.com/studiowebux/accli/internal/gateway"
	"github.com/studiowebux/accli/internal/history"
	"github.com/studiowebux/accli/internal/types"
)

// RequestTimeout bounds every gateway round trip issued from the TUI
const RequestTimeout = 30 * time.Second

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), RequestTimeout)
}

// rejectBusy builds the command for a submit that lost to an in-flight
// request. requestBusyMsg keeps the guard armed where errorMsg would not.
func rejectBusy() tea.Cmd {
	return func() tea.Msg {
		return requestBusyMsg{}
	}
}

// loadAccounts fetches the roster wholesale
func (m *Model) loadAccounts() tea.Cmd {
	if m.loading {
		return rejectBusy()
	}
	m.loading = true

	store := m.store
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()

		if err := store.Load(ctx); err != nil {
			return errorMsg(fmt.Sprintf("Failed to load accounts: %v", err))
		}
		return accountsLoadedMsg{accounts: store.Accounts()}
	}
}

// saveAccount creates or updates an account from validated draft values.
// An empty id means create.
func (m *Model) saveAccount(id string, draft types.AccountDraft) tea.Cmd {
	if m.loading {
		return rejectBusy()
	}
	m.loading = true

	store := m.store
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()

		if id == "" {
			account, err := store.Create(ctx, draft)
			if err != nil {
				return errorMsg(fmt.Sprintf("Failed to create account: %v", err))
			}
			return accountSavedMsg{account: *account, created: true}
		}

		account, err := store.Update(ctx, id, draft)
		if err != nil {
			return errorMsg(fmt.Sprintf("Failed to update account: %v", err))
		}
		return accountSavedMsg{account: *account}
	}
}

// deleteAccount removes an account after confirmation
func (m *Model) deleteAccount(account types.Account) tea.Cmd {
	if m.loading {
		return rejectBusy()
	}
	m.loading = true

	store := m.store
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()

		if err := store.Delete(ctx, account.ID); err != nil {
			return errorMsg(fmt.Sprintf("Failed to delete account: %v", err))
		}
		return accountDeletedMsg{id: account.ID, email: account.NetflixEmail}
	}
}

// openAccount asks the remote to launch a browser session for the account
func (m *Model) openAccount(account types.Account) tea.Cmd {
	if m.loading {
		return rejectBusy()
	}
	m.loading = true

	store := m.store
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()

		if err := store.Open(ctx, account.ID); err != nil {
			return openFailedMsg{email: account.NetflixEmail, err: err}
		}
		return accountOpenedMsg{email: account.NetflixEmail}
	}
}

// loadTabs fetches the tab collection for the newly selected account
func (m *Model) loadTabs(accountID string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()

		tabs, err := store.LoadTabs(ctx, accountID)
		if err != nil {
			return errorMsg(fmt.Sprintf("Failed to load tabs: %v", err))
		}
		return tabsLoadedMsg{owner: accountID, tabs: tabs}
	}
}

// saveTab creates or updates a tab. An empty tabID means create.
func (m *Model) saveTab(accountID, tabID string, draft types.TabDraft) tea.Cmd {
	if m.loading {
		return rejectBusy()
	}
	m.loading = true

	store := m.store
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()

		if tabID == "" {
			tab, err := store.CreateTab(ctx, accountID, draft)
			if err != nil {
				return errorMsg(fmt.Sprintf("Failed to create tab: %v", err))
			}
			return tabSavedMsg{tab: *tab, created: true}
		}

		tab, err := store.UpdateTab(ctx, accountID, tabID, draft)
		if err != nil {
			return errorMsg(fmt.Sprintf("Failed to update tab: %v", err))
		}
		return tabSavedMsg{tab: *tab}
	}
}

// closeTab removes a tab; index is its position before removal so the
// selection can pick a successor
func (m *Model) closeTab(accountID string, tab types.Tab, index int) tea.Cmd {
	if m.loading {
		return rejectBusy()
	}
	m.loading = true

	store := m.store
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()

		if err := store.DeleteTab(ctx, accountID, tab.ID); err != nil {
			return errorMsg(fmt.Sprintf("Failed to close tab: %v", err))
		}
		return tabDeletedMsg{id: tab.ID, index: index}
	}
}

// moveTab shifts the active tab by delta and pushes the new order
func (m *Model) moveTab(delta int) tea.Cmd {
	accountID := m.selection.GetAccount()
	tabs := m.store.Tabs()
	idx := m.activeTabIndex()
	if accountID == "" || idx < 0 {
		return nil
	}

	target := idx + delta
	if target < 0 || target >= len(tabs) {
		return nil
	}

	order := make([]string, len(tabs))
	for i, tab := range tabs {
		order[i] = tab.ID
	}
	order[idx], order[target] = order[target], order[idx]

	if m.loading {
		return rejectBusy()
	}
	m.loading = true

	store := m.store
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()

		if err := store.ReorderTabs(ctx, accountID, order); err != nil {
			return errorMsg(fmt.Sprintf("Failed to reorder tabs: %v", err))
		}
		return tabsReorderedMsg{}
	}
}

// authenticate logs in or registers, stores the issued token, and arms the
// gateway with it
func (m *Model) authenticate(creds types.Credentials, register bool) tea.Cmd {
	if m.loading {
		return rejectBusy()
	}
	m.loading = true

	gw := m.gw
	mgr := m.sessionMgr
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()

		var token string
		var err error
		if register {
			token, err = gw.Register(ctx, creds)
		} else {
			token, err = gw.Login(ctx, creds)
		}
		if err != nil {
			return errorMsg(describeAuthError(err))
		}

		if err := mgr.SetToken(token); err != nil {
			return errorMsg(fmt.Sprintf("Failed to persist session: %v", err))
		}
		gw.SetToken(token)

		return authCompletedMsg{registered: register}
	}
}

// logout drops the token and resets every piece of roster state. The theme
// preference survives.
func (m *Model) logout() tea.Cmd {
	if err := m.sessionMgr.ClearToken(); err != nil {
		m.setError(fmt.Sprintf("Failed to clear session: %v", err))
		return nil
	}
	m.gw.SetToken("")
	m.store.Clear()
	m.selection.Reset()
	m.filters.Reset()
	m.searchInput.SetValue("")
	m.projection = m.engine.Project(nil, m.filters.Query())
	m.cursor = 0
	m.mode = ModeLogin
	m.openLoginForm()
	m.logActivity(history.KindLogout, "", "", true)
	return m.setStatus("Logged out")
}

// copyEmail puts the account email on the system clipboard
func (m *Model) copyEmail(account types.Account) tea.Cmd {
	if err := clipboard.WriteAll(account.NetflixEmail); err != nil {
		m.setError(fmt.Sprintf("Failed to copy to clipboard: %v", err))
		return nil
	}
	return m.setStatus(fmt.Sprintf("Copied %s", account.NetflixEmail))
}

// loadHistory pulls the recent activity entries
func (m *Model) loadHistory() tea.Cmd {
	mgr := m.historyManager
	return func() tea.Msg {
		if mgr == nil {
			return historyLoadedMsg{}
		}
		entries, err := mgr.Load(HistoryPageLimit)
		if err != nil {
			return errorMsg(fmt.Sprintf("Failed to load activity: %v", err))
		}
		return historyLoadedMsg{entries: entries}
	}
}

// notifyLaunchFailure raises a desktop notification when the remote could
// not launch a session. Best-effort; disabled via settings.
func (m *Model) notifyLaunchFailure(email string, err error) {
	if !m.settings.Notifications {
		return
	}
	message := fmt.Sprintf("Could not open %s: %v", email, err)
	_ = beeep.Notify("accli", message, "")
}

// describeAuthError renders a gateway auth failure for the login footer
func describeAuthError(err error) string {
	var authErr *gateway.AuthError
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	return err.Error()
}
