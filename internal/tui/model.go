package tui

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sahilm/fuzzy"
	"github.com/studiowebux/accli/internal/config"
	"github.com/studiowebux/accli/internal/form"
	"github.com/studiowebux/accli/internal/gateway"
	"github.com/studiowebux/accli/internal/history"
	"github.com/studiowebux/accli/internal/roster"
	"github.com/studiowebux/accli/internal/session"
	"github.com/studiowebux/accli/internal/types"
	"github.com/studiowebux/accli/internal/view"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeLogin
	ModeSearch
	ModeFilterLabel
	ModeFilterStatus
	ModeAccountForm
	ModeAccountDelete
	ModeTabForm
	ModeTabDelete
	ModeLogoutConfirm
	ModeInspect
	ModeQuickJump
	ModeHistory
	ModeHistoryClearConfirm
	ModeHelp
)

// Model represents the TUI state
type Model struct {
	// Core state
	sessionMgr     *session.Manager
	historyManager *history.Manager
	store          *roster.Store
	gw             *gateway.Client
	engine         *view.Engine
	settings       config.Settings
	mode           Mode
	version        string

	// Roster view
	projection view.Projection
	cursor     int // index into projection.Filtered
	listOffset int
	selection  *SelectionState
	filters    *FilterState

	// Search state
	searchInput textinput.Model

	// Filter picker state
	labelPickIndex  int
	statusPickIndex int

	// Modal form state
	modalForm        *form.Form
	modalVersion     int64
	editingAccountID string // "" while creating
	editingTabID     string // "" while creating
	registerMode     bool   // login modal flipped to registration

	// Delete confirmation targets
	deleteAccountID string
	deleteTabIndex  int

	// Inspect state
	inspectView  viewport.Model
	queryInput   textinput.Model
	queryEditing bool
	queryError   string

	// Quick jump state
	jumpInput   textinput.Model
	jumpMatches []fuzzy.Match
	jumpIndex   int

	// History state
	historyEntries []history.Entry
	historyIndex   int

	// UI state
	width        int
	height       int
	statusMsg    string
	errorMsg     string // Truncated error for footer
	fullErrorMsg string // Full error message, kept for the inspect footer
	loading      bool
	helpView     viewport.Model
}

// Messages emitted by async roster and gateway commands
type accountsLoadedMsg struct{ accounts []types.Account }
type accountSavedMsg struct {
	account types.Account
	created bool
}
type accountDeletedMsg struct {
	id    string
	email string
}
type accountOpenedMsg struct{ email string }
type openFailedMsg struct {
	email string
	err   error
}
type tabsLoadedMsg struct {
	owner string
	tabs  []types.Tab
}
type tabSavedMsg struct {
	tab     types.Tab
	created bool
}
type tabDeletedMsg struct {
	id    string
	index int
}
type tabsReorderedMsg struct{}
type authCompletedMsg struct{ registered bool }
type historyLoadedMsg struct{ entries []history.Entry }
type errorMsg string
type clearStatusMsg struct{}

// requestBusyMsg reports a submit that arrived while another request was
// still in flight. It is deliberately not an errorMsg: the errorMsg handler
// marks the in-flight request as settled, and a rejected second submit must
// not do that.
type requestBusyMsg struct{}

// Init initializes the TUI
func (m *Model) Init() tea.Cmd {
	if !m.sessionMgr.IsAuthenticated() {
		return nil
	}
	return m.loadAccounts()
}

// Cleanup closes database connections
func (m *Model) Cleanup() {
	if m.historyManager != nil {
		if err := m.historyManager.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "error closing activity database: %v\n", err)
		}
	}
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.inspectView.Width = m.width - ModalWidthMargin - 6
		m.inspectView.Height = m.height - ContentOffsetStandard
		m.helpView.Width = m.width - ModalWidthMargin - 6
		m.helpView.Height = m.height - ContentOffsetStandard

	case accountsLoadedMsg:
		m.loading = false
		m.refreshProjection()
		m.reconcileSelection()
		return m, m.setStatus(fmt.Sprintf("Loaded %d accounts", len(msg.accounts)))

	case accountSavedMsg:
		m.loading = false
		m.modalForm = nil
		m.mode = ModeNormal
		if msg.created {
			// A fresh entry should be visible immediately
			m.filters.SetSearch("")
			m.searchInput.SetValue("")
		}
		m.refreshProjection()
		m.focusAccount(msg.account.ID)
		kind := history.KindUpdate
		verb := "updated"
		if msg.created {
			kind = history.KindCreate
			verb = "created"
		}
		m.logActivity(kind, msg.account.NetflixEmail, "", true)
		return m, m.setStatus(fmt.Sprintf("Account %s %s", msg.account.NetflixEmail, verb))

	case accountDeletedMsg:
		m.loading = false
		m.mode = ModeNormal
		m.deleteAccountID = ""
		if m.selection.GetAccount() == msg.id {
			m.selection.ClearAccount()
		}
		m.refreshProjection()
		m.logActivity(history.KindDelete, msg.email, "", true)
		return m, m.setStatus(fmt.Sprintf("Account %s deleted", msg.email))

	case accountOpenedMsg:
		m.loading = false
		m.logActivity(history.KindLaunch, msg.email, "", true)
		return m, m.setStatus(fmt.Sprintf("Opened %s", msg.email))

	case openFailedMsg:
		m.loading = false
		m.logActivity(history.KindLaunch, msg.email, msg.err.Error(), false)
		m.notifyLaunchFailure(msg.email, msg.err)
		m.setError(fmt.Sprintf("Failed to open %s: %v (is Chrome installed on the service host?)", msg.email, msg.err))

	case tabsLoadedMsg:
		m.loading = false
		if msg.owner == m.selection.GetAccount() {
			m.selection.SeedTabs(msg.tabs)
		}

	case tabSavedMsg:
		m.loading = false
		m.modalForm = nil
		m.mode = ModeNormal
		if msg.created {
			m.selection.ActivateTab(msg.tab.ID)
		}
		verb := "updated"
		if msg.created {
			verb = "created"
		}
		return m, m.setStatus(fmt.Sprintf("Tab %q %s", msg.tab.Title, verb))

	case tabDeletedMsg:
		m.loading = false
		m.mode = ModeNormal
		m.deleteTabIndex = -1
		m.selection.CloseTab(msg.id, m.store.Tabs(), msg.index)
		return m, m.setStatus("Tab closed")

	case tabsReorderedMsg:
		m.loading = false
		return m, m.setStatus("Tabs reordered")

	case authCompletedMsg:
		m.loading = false
		m.modalForm = nil
		m.mode = ModeNormal
		kind := history.KindLogin
		status := "Logged in"
		if msg.registered {
			kind = history.KindRegister
			status = "Account registered"
		}
		m.logActivity(kind, "", "", true)
		return m, tea.Batch(m.setStatus(status), m.loadAccounts())

	case historyLoadedMsg:
		m.historyEntries = msg.entries
		m.historyIndex = 0

	case errorMsg:
		m.loading = false
		// A failed form submission keeps the modal open so the draft
		// survives; the footer carries the failure
		m.setError(string(msg))

	case requestBusyMsg:
		// The first request is still in flight; leave loading set
		m.setError("Request already in progress")

	case clearStatusMsg:
		m.statusMsg = ""
	}

	return m, cmd
}

// refreshProjection recomputes the grouped view and clamps the cursor
func (m *Model) refreshProjection() {
	m.projection = m.engine.Project(m.store.Accounts(), m.filters.Query())
	if m.cursor >= len(m.projection.Filtered) {
		m.cursor = len(m.projection.Filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// reconcileSelection drops the active account when a reload removed it
func (m *Model) reconcileSelection() {
	id := m.selection.GetAccount()
	if id == "" {
		return
	}
	if _, ok := m.store.Find(id); !ok {
		m.selection.ClearAccount()
		m.store.ClearTabs()
	}
}

// focusAccount moves the cursor onto the given account if it is visible
func (m *Model) focusAccount(id string) {
	for i, account := range m.projection.Filtered {
		if account.ID == id {
			m.cursor = i
			return
		}
	}
}

// currentAccount returns the account under the cursor
func (m *Model) currentAccount() (types.Account, bool) {
	if m.cursor < 0 || m.cursor >= len(m.projection.Filtered) {
		return types.Account{}, false
	}
	return m.projection.Filtered[m.cursor], true
}

// activeTabIndex returns the position of the active tab in the loaded
// collection, or -1 when no tab is active
func (m *Model) activeTabIndex() int {
	id := m.selection.GetTab()
	if id == "" {
		return -1
	}
	for i, tab := range m.store.Tabs() {
		if tab.ID == id {
			return i
		}
	}
	return -1
}

// setStatus sets a transient footer message and schedules its removal
func (m *Model) setStatus(msg string) tea.Cmd {
	m.errorMsg = ""
	m.fullErrorMsg = ""
	m.statusMsg = truncateMessage(msg)
	return tea.Tick(StatusClearSeconds*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// setError sets the footer error message
func (m *Model) setError(msg string) {
	m.statusMsg = ""
	m.fullErrorMsg = msg
	m.errorMsg = truncateMessage(msg)
}

// logActivity records an event, ignoring storage failures
func (m *Model) logActivity(kind, email, detail string, ok bool) {
	if m.historyManager == nil {
		return
	}
	_ = m.historyManager.Save(kind, email, detail, ok)
}

func truncateMessage(msg string) string {
	if len(msg) > StatusMessageMaxLength {
		return msg[:StatusMessageMaxLength-3] + "..."
	}
	return msg
}
