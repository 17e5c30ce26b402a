package session

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/studiowebux/accli/internal/config"
	"github.com/studiowebux/accli/internal/types"
)

// Manager owns the persisted session state: the bearer credential and the
// theme preference. Every mutation is written back to disk immediately so
// the state survives restarts.
type Manager struct {
	session *types.Session
}

// NewManager creates a new session manager with an empty session
func NewManager() *Manager {
	return &Manager{
		session: &types.Session{
			Theme: types.ThemeLight,
		},
	}
}

// Load loads the session file. A missing file yields a default session.
func (m *Manager) Load() error {
	sessionPath := config.GetSessionFilePath()

	data, err := os.ReadFile(sessionPath)
	if err != nil {
		m.session = &types.Session{Theme: types.ThemeLight}
		return nil
	}

	var session types.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return fmt.Errorf("failed to parse session file: %w", err)
	}

	if session.Theme != types.ThemeDark {
		session.Theme = types.ThemeLight
	}

	m.session = &session
	return nil
}

// Save saves the session to disk
func (m *Manager) Save() error {
	sessionPath := config.GetSessionFilePath()

	data, err := json.MarshalIndent(m.session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(sessionPath, data, config.FilePermissions); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Token returns the stored bearer credential, empty when logged out
func (m *Manager) Token() string {
	return m.session.AuthToken
}

// IsAuthenticated reports whether a bearer credential is stored
func (m *Manager) IsAuthenticated() bool {
	return m.session.AuthToken != ""
}

// SetToken stores the bearer credential and persists it
func (m *Manager) SetToken(token string) error {
	m.session.AuthToken = token
	return m.Save()
}

// ClearToken removes the stored credential. The theme preference survives
// logout; only the credential is dropped.
func (m *Manager) ClearToken() error {
	m.session.AuthToken = ""
	return m.Save()
}

// Theme returns the stored theme preference
func (m *Manager) Theme() types.Theme {
	if m.session.Theme == types.ThemeDark {
		return types.ThemeDark
	}
	return types.ThemeLight
}

// SetTheme stores the theme preference and persists it
func (m *Manager) SetTheme(theme types.Theme) error {
	if theme != types.ThemeDark {
		theme = types.ThemeLight
	}
	m.session.Theme = theme
	return m.Save()
}

// ToggleTheme flips between light and dark and persists the result
func (m *Manager) ToggleTheme() (types.Theme, error) {
	next := types.ThemeLight
	if m.Theme() == types.ThemeLight {
		next = types.ThemeDark
	}
	return next, m.SetTheme(next)
}
