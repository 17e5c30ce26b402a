package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/accli/internal/form"
	"github.com/studiowebux/accli/internal/roster"
	"github.com/studiowebux/accli/internal/types"
)

func tabFormFields() []form.Field {
	return []form.Field{
		{
			Name:        roster.FieldTitle,
			Label:       "Title",
			Kind:        form.KindText,
			Placeholder: types.DefaultTabTitle,
		},
		{
			Name:        roster.FieldURL,
			Label:       "URL",
			Kind:        form.KindText,
			Placeholder: "https://",
		},
	}
}

// openTabForm opens the tab modal with a fresh draft. A nil tab means
// create; otherwise the draft is seeded from the tab being edited.
func (m *Model) openTabForm(tab *types.Tab) {
	initial := map[string]string{}
	m.editingTabID = ""
	if tab != nil {
		m.editingTabID = tab.ID
		initial[roster.FieldTitle] = tab.Title
		initial[roster.FieldURL] = tab.URL
	}

	m.modalVersion = time.Now().UnixMilli()
	m.modalForm = form.New(tabFormFields(), initial, m.modalVersion)
	m.mode = ModeTabForm
}

// handleTabFormKeys handles keyboard input in the tab modal
func (m *Model) handleTabFormKeys(msg tea.KeyMsg) tea.Cmd {
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
		values := m.modalForm.Submit(roster.TabValidator())
		if values == nil {
			return nil
		}
		accountID := m.selection.GetAccount()
		if accountID == "" {
			m.modalForm = nil
			m.mode = ModeNormal
			m.setError("No account selected")
			return nil
		}
		return m.saveTab(accountID, m.editingTabID, roster.TabDraftFromValues(values))
	}

	return m.updateFocusedField(msg)
}

// renderTabForm renders the tab modal
func (m *Model) renderTabForm() string {
	title := "New Tab"
	if m.editingTabID != "" {
		title = "Edit Tab"
	}
	footer := "↑/↓ field [Enter] save [ESC] cancel"
	return m.renderFormModal(title, footer)
}
