package tui

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jmespath/go-jmespath"
	"github.com/studiowebux/accli/internal/types"
)

// inspectPayload is the document shown and queried in the inspect modal
type inspectPayload struct {
	Account types.Account `json:"account"`
	Tabs    []types.Tab   `json:"tabs,omitempty"`
}

// openInspect opens the inspect modal for an account
func (m *Model) openInspect(account types.Account) {
	m.queryInput.SetValue("")
	m.queryInput.Blur()
	m.queryEditing = false
	m.queryError = ""
	m.mode = ModeInspect
	m.updateInspectView(account)
}

// inspectDocument builds the JSON document for the account under inspection
func (m *Model) inspectDocument(account types.Account) ([]byte, error) {
	payload := inspectPayload{Account: account}
	if m.store.TabsOwner() == account.ID {
		payload.Tabs = m.store.Tabs()
	}
	return json.MarshalIndent(payload, "", "  ")
}

// updateInspectView renders the (optionally filtered) document into the
// modal viewport
func (m *Model) updateInspectView(account types.Account) {
	doc, err := m.inspectDocument(account)
	if err != nil {
		m.inspectView.SetContent(fmt.Sprintf("Failed to render account: %v", err))
		return
	}

	content := string(doc)
	m.queryError = ""

	if expr := m.queryInput.Value(); expr != "" {
		filtered, err := applyQuery(content, expr)
		if err != nil {
			m.queryError = err.Error()
		} else {
			content = filtered
		}
	}

	m.inspectView.SetContent(highlightJSON(content))
	m.inspectView.GotoTop()
}

// applyQuery runs a JMESPath expression against a JSON document
func applyQuery(doc string, expression string) (string, error) {
	var data interface{}
	if err := json.Unmarshal([]byte(doc), &data); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}

	jp, err := jmespath.Compile(expression)
	if err != nil {
		return "", fmt.Errorf("invalid query: %w", err)
	}

	result, err := jp.Search(data)
	if err != nil {
		return "", fmt.Errorf("query failed: %w", err)
	}

	if result == nil {
		return "null", nil
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(output), nil
}

// highlightJSON applies terminal syntax highlighting using chroma
func highlightJSON(content string) string {
	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return content
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return content
	}

	return buf.String()
}

// handleInspectKeys handles keyboard input in the inspect modal
func (m *Model) handleInspectKeys(msg tea.KeyMsg) tea.Cmd {
	account, ok := m.resolveActionTarget()
	if !ok {
		m.mode = ModeNormal
		return nil
	}

	if m.queryEditing {
		switch msg.String() {
		case "esc":
			m.queryEditing = false
			m.queryInput.Blur()
			m.queryInput.SetValue("")
			m.updateInspectView(account)
			return nil

		case "enter":
			m.queryEditing = false
			m.queryInput.Blur()
			m.updateInspectView(account)
			return nil
		}

		var cmd tea.Cmd
		m.queryInput, cmd = m.queryInput.Update(msg)
		return cmd
	}

	switch msg.String() {
	case "esc", "q":
		m.mode = ModeNormal

	case "/":
		m.queryEditing = true
		m.queryInput.Focus()

	case "j", "down":
		m.inspectView.ScrollDown(1)

	case "k", "up":
		m.inspectView.ScrollUp(1)

	case "ctrl+d":
		m.inspectView.HalfPageDown()

	case "ctrl+u":
		m.inspectView.HalfPageUp()

	case "g":
		m.inspectView.GotoTop()

	case "G":
		m.inspectView.GotoBottom()
	}

	return nil
}

// renderInspect renders the account inspection modal
func (m *Model) renderInspect() string {
	modalWidth := m.width - ModalWidthMargin
	modalHeight := m.height - ModalHeightMargin

	footer := styleSubtle.Render("↑/↓ scroll [/] query [ESC] close")
	if m.queryEditing {
		footer = "Query: " + m.queryInput.View()
	} else if expr := m.queryInput.Value(); expr != "" {
		footer = styleSubtle.Render("Query: "+expr) + "  " + footer
	}
	if m.queryError != "" {
		footer = styleError.Render(m.queryError) + "\n" + footer
	}

	inspectBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(modalWidth).
		Height(modalHeight).
		Padding(1, 2).
		Render(styleTitle.Render("Inspect Account") + "\n\n" + m.inspectView.View() + "\n\n" + footer)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		inspectBox,
	)
}
