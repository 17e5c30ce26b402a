package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/accli/internal/types"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#5f87ff"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleTitleFocused = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorGreen)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleGroupHeader = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorBlue)
)

// View renders the TUI
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}

	switch m.mode {
	case ModeLogin:
		return m.renderLogin()
	case ModeFilterLabel, ModeFilterStatus:
		return m.renderFilterPicker()
	case ModeAccountForm:
		return m.renderAccountForm()
	case ModeAccountDelete:
		return m.renderAccountDelete()
	case ModeTabForm:
		return m.renderTabForm()
	case ModeTabDelete:
		return m.renderTabDelete()
	case ModeLogoutConfirm:
		return m.renderLogoutConfirm()
	case ModeInspect:
		return m.renderInspect()
	case ModeQuickJump:
		return m.renderQuickJump()
	case ModeHistory:
		return m.renderHistory()
	case ModeHistoryClearConfirm:
		return m.renderHistoryClearConfirm()
	case ModeHelp:
		return m.renderHelp()
	}

	return m.renderMain()
}

// renderMain renders the main view: grouped roster sidebar + detail panel
func (m *Model) renderMain() string {
	sidebarWidth := max(40, m.width*SidebarWidthPercent/100)
	if m.width < 100 {
		sidebarWidth = m.width / 2
	}
	detailWidth := m.width - sidebarWidth - 4

	sidebar := m.renderRoster(sidebarWidth-2, m.height-3)
	detail := m.renderDetail(detailWidth - 2)

	sidebarBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGreen).
		Width(sidebarWidth).
		Height(m.height - 2).
		Render(sidebar)

	detailBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGray).
		Width(detailWidth).
		Height(m.height - 2).
		Render(detail)

	mainView := lipgloss.JoinHorizontal(
		lipgloss.Top,
		sidebarBox,
		detailBox,
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		mainView,
		m.renderStatusBar(),
	)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// rosterLine is one rendered row of the sidebar: either a group header or
// an account, flattened so scrolling stays simple
type rosterLine struct {
	text      string
	accountIx int // index into projection.Filtered, -1 for headers
}

// rosterLines flattens the grouped projection for rendering
func (m *Model) rosterLines(width int) []rosterLine {
	var lines []rosterLine
	flatIx := 0

	for _, group := range m.projection.Groups {
		lines = append(lines, rosterLine{
			text:      styleGroupHeader.Render(group.Letter),
			accountIx: -1,
		})
		for _, account := range group.Accounts {
			lines = append(lines, rosterLine{
				text:      m.renderAccountRow(account, width),
				accountIx: flatIx,
			})
			flatIx++
		}
	}

	return lines
}

// renderAccountRow renders one account entry
func (m *Model) renderAccountRow(account types.Account, width int) string {
	marker := "  "
	if account.ID == m.selection.GetAccount() {
		marker = "▸ "
	}

	status := styleSuccess.Render("●")
	if account.Status != types.StatusActive {
		status = styleError.Render("●")
	}

	email := account.NetflixEmail
	maxEmail := width - 18
	if maxEmail > 0 && len(email) > maxEmail {
		email = email[:maxEmail-3] + "..."
	}

	return fmt.Sprintf("%s%s %s %s", marker, status, email, styleSubtle.Render(account.Label))
}

// renderRoster renders the grouped account list
func (m *Model) renderRoster(width, height int) string {
	var out []string
	out = append(out, styleTitle.Render("Accounts"), "")

	if len(m.projection.Filtered) == 0 {
		if m.loading {
			out = append(out, styleSubtle.Render("Loading..."))
		} else if m.filters.Active() {
			out = append(out, styleSubtle.Render("No accounts match the current filters"))
		} else if !m.sessionMgr.IsAuthenticated() {
			out = append(out, styleSubtle.Render("Press L to sign in"))
		} else {
			out = append(out, styleSubtle.Render("No accounts yet. Press n to add one."))
		}
		return strings.Join(out, "\n")
	}

	lines := m.rosterLines(width)

	// Find the rendered row carrying the cursor so the scroll window can
	// track it
	cursorRow := 0
	for i, line := range lines {
		if line.accountIx == m.cursor {
			cursorRow = i
			break
		}
	}

	pageSize := height - 4
	if pageSize < 1 {
		pageSize = 1
	}
	if cursorRow < m.listOffset {
		m.listOffset = cursorRow
	} else if cursorRow >= m.listOffset+pageSize {
		m.listOffset = cursorRow - pageSize + 1
	}

	end := m.listOffset + pageSize
	if end > len(lines) {
		end = len(lines)
	}

	for i := m.listOffset; i < end; i++ {
		text := lines[i].text
		if lines[i].accountIx == m.cursor && lines[i].accountIx >= 0 {
			text = styleSelected.Render(text)
		}
		out = append(out, text)
	}

	return strings.Join(out, "\n")
}

// renderDetail renders the selected account panel with its tab bar
func (m *Model) renderDetail(width int) string {
	id := m.selection.GetAccount()
	if id == "" {
		return styleSubtle.Render("\n  Select an account with Enter to see its details and tabs.")
	}

	account, ok := m.store.Find(id)
	if !ok {
		return styleSubtle.Render("\n  Account no longer exists.")
	}

	var out []string
	out = append(out, styleTitle.Render(account.NetflixEmail), "")
	out = append(out, "  Label:  "+account.Label)

	status := styleSuccess.Render(string(account.Status))
	if account.Status != types.StatusActive {
		status = styleError.Render(string(account.Status))
	}
	out = append(out, "  Status: "+status)
	out = append(out, "")
	out = append(out, styleTitle.Render("Tabs"))
	out = append(out, m.renderTabBar(width))
	out = append(out, "")
	out = append(out, styleSubtle.Render("  [o] open  [e] edit  [d] delete  [t] new tab  [i] inspect"))

	return strings.Join(out, "\n")
}

// renderTabBar renders the tab strip for the selected account
func (m *Model) renderTabBar(width int) string {
	tabs := m.store.Tabs()
	if m.store.TabsOwner() != m.selection.GetAccount() || len(tabs) == 0 {
		return styleSubtle.Render("  No tabs. Press t to add one.")
	}

	activeID := m.selection.GetTab()
	var parts []string
	for _, tab := range tabs {
		title := tab.Title
		if title == "" {
			title = types.DefaultTabTitle
		}
		if tab.ID == activeID {
			parts = append(parts, styleSelected.Render(" "+title+" "))
		} else {
			parts = append(parts, styleSubtle.Render(" "+title+" "))
		}
	}

	return "  " + strings.Join(parts, "│")
}

// renderStatusBar renders the bottom status line: summary, filters, and the
// transient status or error message
func (m *Model) renderStatusBar() string {
	s := m.projection.Summary
	summary := fmt.Sprintf("%d accounts · %d active · %d inactive · %d bulanan · %d mingguan",
		s.Total, s.Active, s.Inactive, s.Bulanan, s.Mingguan)

	left := styleSubtle.Render(summary)
	if indicator := m.filterIndicator(); indicator != "" {
		left += "  " + styleWarning.Render(indicator)
	}

	if m.mode == ModeSearch {
		left = "Search: " + m.searchInput.View()
	}

	right := ""
	switch {
	case m.errorMsg != "":
		right = styleError.Render(m.errorMsg)
	case m.statusMsg != "":
		right = styleSuccess.Render(m.statusMsg)
	case m.loading:
		right = styleSubtle.Render("Working...")
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return left + strings.Repeat(" ", gap) + right
}
