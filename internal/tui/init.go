package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/accli/internal/config"
	"github.com/studiowebux/accli/internal/gateway"
	"github.com/studiowebux/accli/internal/history"
	"github.com/studiowebux/accli/internal/roster"
	"github.com/studiowebux/accli/internal/session"
	"github.com/studiowebux/accli/internal/types"
	"github.com/studiowebux/accli/internal/view"
)

// New creates a new TUI model
func New(mgr *session.Manager, settings config.Settings, version string) (Model, error) {
	gw := gateway.New(config.APIBase(settings))
	gw.SetToken(mgr.Token())

	searchInput := textinput.New()
	searchInput.Placeholder = "email contains..."
	searchInput.CharLimit = 128

	queryInput := textinput.New()
	queryInput.Placeholder = "account.label"
	queryInput.CharLimit = 256

	jumpInput := textinput.New()
	jumpInput.Placeholder = "type to jump"
	jumpInput.CharLimit = 128

	m := Model{
		sessionMgr:     mgr,
		settings:       settings,
		gw:             gw,
		store:          roster.NewStore(gw),
		engine:         view.NewEngine(),
		selection:      NewSelectionState(),
		filters:        NewFilterState(),
		mode:           ModeNormal,
		version:        version,
		searchInput:    searchInput,
		queryInput:     queryInput,
		jumpInput:      jumpInput,
		inspectView:    viewport.New(80, 20),
		helpView:       viewport.New(80, 20),
		deleteTabIndex: -1,
	}

	lipgloss.SetHasDarkBackground(mgr.Theme() == types.ThemeDark)

	historyManager, err := history.NewManager(config.DatabasePath)
	if err != nil {
		// The activity log is optional; the roster works without it
		fmt.Fprintf(os.Stderr, "warning: activity log unavailable: %v\n", err)
	} else {
		m.historyManager = historyManager
	}

	if !mgr.IsAuthenticated() {
		m.openLoginForm()
	}

	return m, nil
}

// Run starts the TUI
func Run(version string) error {
	// Initialize config
	if err := config.Initialize(); err != nil {
		return err
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	// Load session
	mgr := session.NewManager()
	if err := mgr.Load(); err != nil {
		return err
	}

	// Create model
	m, err := New(mgr, settings, version)
	if err != nil {
		return err
	}

	// Start TUI (pass pointer since Update uses pointer receiver)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	m.Cleanup()
	return nil
}
