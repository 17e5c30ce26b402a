package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/accli/internal/form"
	"github.com/studiowebux/accli/internal/types"
)

const (
	loginFieldEmail    = "email"
	loginFieldPassword = "password"
)

func loginFormFields() []form.Field {
	return []form.Field{
		{
			Name:        loginFieldEmail,
			Label:       "Email",
			Kind:        form.KindEmail,
			Placeholder: "name@example.com",
			Required:    true,
		},
		{
			Name:     loginFieldPassword,
			Label:    "Password",
			Kind:     form.KindPassword,
			Required: true,
		},
	}
}

// loginValidator only checks presence; the remote is the authority on
// whether the credentials are any good
func loginValidator(values map[string]string) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(values[loginFieldEmail]) == "" {
		errs[loginFieldEmail] = "Email is required"
	}
	if values[loginFieldPassword] == "" {
		errs[loginFieldPassword] = "Password is required"
	}
	return errs
}

// openLoginForm opens the sign-in modal with a fresh draft
func (m *Model) openLoginForm() {
	m.registerMode = false
	m.modalVersion = time.Now().UnixMilli()
	m.modalForm = form.New(loginFormFields(), nil, m.modalVersion)
	m.mode = ModeLogin
}

// handleLoginKeys handles keyboard input in the sign-in modal
func (m *Model) handleLoginKeys(msg tea.KeyMsg) tea.Cmd {
	if m.modalForm == nil {
		m.openLoginForm()
	}

	switch msg.String() {
	case "esc":
		// Staying signed out is allowed; the roster just stays empty
		m.modalForm = nil
		m.mode = ModeNormal
		return nil

	case "tab", "down":
		m.modalForm.Next()
		return nil

	case "shift+tab", "up":
		m.modalForm.Prev()
		return nil

	case "ctrl+r":
		m.registerMode = !m.registerMode
		return nil

	case "enter":
		values := m.modalForm.Submit(loginValidator)
		if values == nil {
			return nil
		}
		creds := types.Credentials{
			Email:    strings.TrimSpace(values[loginFieldEmail]),
			Password: values[loginFieldPassword],
		}
		return m.authenticate(creds, m.registerMode)
	}

	return m.updateFocusedField(msg)
}

// renderLogin renders the sign-in modal
func (m *Model) renderLogin() string {
	if m.modalForm == nil {
		return ""
	}

	title := "Sign In"
	switchHint := "[Ctrl+R] switch to registration"
	if m.registerMode {
		title = "Register"
		switchHint = "[Ctrl+R] switch to sign in"
	}

	var lines []string
	lines = append(lines, styleTitle.Render(title), "")

	for i, field := range m.modalForm.Fields() {
		label := field.Label
		if i == m.modalForm.FocusIndex() {
			label = styleTitleFocused.Render(label)
		} else {
			label = styleSubtle.Render(label)
		}
		lines = append(lines, label)

		if input := m.modalForm.Input(field.Name); input != nil {
			lines = append(lines, input.View())
		}
		if fieldErr := m.modalForm.Error(field.Name); fieldErr != "" {
			lines = append(lines, styleError.Render(fieldErr))
		}
		lines = append(lines, "")
	}

	if m.errorMsg != "" {
		lines = append(lines, styleError.Render(m.errorMsg), "")
	}
	lines = append(lines,
		styleSubtle.Render(switchHint),
		styleSubtle.Render("[Enter] submit [ESC] skip"),
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(FormModalWidth).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
