package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/accli/internal/form"
	"github.com/studiowebux/accli/internal/roster"
	"github.com/studiowebux/accli/internal/types"
)

// accountFormFields is the schema for both create and edit
func accountFormFields() []form.Field {
	labelOptions := make([]form.Option, 0, len(types.AllowedLabels))
	for _, label := range types.AllowedLabels {
		labelOptions = append(labelOptions, form.Option{Value: label, Label: label})
	}

	return []form.Field{
		{
			Name:        roster.FieldEmail,
			Label:       "Netflix Email",
			Kind:        form.KindEmail,
			Placeholder: "name@example.com",
			Required:    true,
		},
		{
			Name:     roster.FieldLabel,
			Label:    "Label",
			Kind:     form.KindSelect,
			Options:  labelOptions,
			Required: true,
		},
		{
			Name:  roster.FieldStatus,
			Label: "Status",
			Kind:  form.KindSelect,
			Options: []form.Option{
				{Value: string(types.StatusActive), Label: "active"},
				{Value: string(types.StatusInactive), Label: "inactive"},
			},
			Required: true,
		},
	}
}

// openAccountForm opens the modal with a fresh draft. A nil account means
// create; otherwise the draft is seeded from the account being edited.
func (m *Model) openAccountForm(account *types.Account) {
	initial := map[string]string{
		roster.FieldStatus: string(types.StatusActive),
	}
	m.editingAccountID = ""
	if account != nil {
		m.editingAccountID = account.ID
		initial[roster.FieldEmail] = account.NetflixEmail
		initial[roster.FieldLabel] = account.Label
		initial[roster.FieldStatus] = string(account.Status)
	}

	m.modalVersion = time.Now().UnixMilli()
	m.modalForm = form.New(accountFormFields(), initial, m.modalVersion)
	m.mode = ModeAccountForm
}

// handleAccountFormKeys handles keyboard input in the account modal
func (m *Model) handleAccountFormKeys(msg tea.KeyMsg) tea.Cmd {
	if m.modalForm == nil {
		m.mode = ModeNormal
		return nil
	}

	switch msg.String() {
	case "esc":
		m.modalForm = nil
		m.mode = ModeNormal
		return nil

	case "tab", "down":
		m.modalForm.Next()
		return nil

	case "shift+tab", "up":
		m.modalForm.Prev()
		return nil

	case "enter":
		values := m.modalForm.Submit(roster.AccountValidator(m.store.Accounts(), m.editingAccountID))
		if values == nil {
			return nil
		}
		return m.saveAccount(m.editingAccountID, roster.DraftFromValues(values))
	}

	return m.updateFocusedField(msg)
}

// updateFocusedField routes a keystroke into the focused form field
func (m *Model) updateFocusedField(msg tea.KeyMsg) tea.Cmd {
	field := m.modalForm.FocusedField()

	if field.Kind == form.KindSelect {
		switch msg.String() {
		case "left", "h":
			m.modalForm.CycleSelect(field.Name, -1)
		case "right", "l", " ":
			m.modalForm.CycleSelect(field.Name, 1)
		}
		return nil
	}

	input := m.modalForm.Input(field.Name)
	if input == nil {
		return nil
	}

	updated, cmd := input.Update(msg)
	*input = updated
	// Route through SetValue so the field's stale error clears on edit
	m.modalForm.SetValue(field.Name, updated.Value())
	return cmd
}

// renderAccountForm renders the account modal
func (m *Model) renderAccountForm() string {
	title := "New Account"
	if m.editingAccountID != "" {
		title = "Edit Account"
	}
	footer := "↑/↓ field  ←/→ choose [Enter] save [ESC] cancel"
	return m.renderFormModal(title, footer)
}

// renderFormModal renders any schema-driven form modal
func (m *Model) renderFormModal(title, footer string) string {
	if m.modalForm == nil {
		return ""
	}

	var lines []string
	lines = append(lines, styleTitle.Render(title), "")

	for i, field := range m.modalForm.Fields() {
		focused := i == m.modalForm.FocusIndex()

		label := field.Label
		if focused {
			label = styleTitleFocused.Render(label)
		} else {
			label = styleSubtle.Render(label)
		}
		lines = append(lines, label)

		if field.Kind == form.KindSelect {
			lines = append(lines, renderSelectRow(field, m.modalForm.SelectCursor(field.Name), focused))
		} else {
			input := m.modalForm.Input(field.Name)
			if input != nil {
				lines = append(lines, input.View())
			}
		}

		if fieldErr := m.modalForm.Error(field.Name); fieldErr != "" {
			lines = append(lines, styleError.Render(fieldErr))
		}
		lines = append(lines, "")
	}

	if m.errorMsg != "" {
		lines = append(lines, styleError.Render(m.errorMsg), "")
	}
	lines = append(lines, styleSubtle.Render(footer))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(FormModalWidth).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderSelectRow renders the options of a select field on one line
func renderSelectRow(field form.Field, cursor int, focused bool) string {
	var parts []string
	for i, opt := range field.Options {
		text := opt.Label
		if i == cursor {
			text = "[" + text + "]"
			if focused {
				text = styleSelected.Render(text)
			}
		} else {
			text = " " + text + " "
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " ")
}
