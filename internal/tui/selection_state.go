package tui

import (
	"sync"

	"github.com/studiowebux/accli/internal/types"
)

// SelectionState encapsulates the active account and active tab markers.
// At most one account and one of its tabs are active at a time.
type SelectionState struct {
	mu sync.RWMutex

	accountID string
	tabID     string
}

// NewSelectionState creates an empty selection
func NewSelectionState() *SelectionState {
	return &SelectionState{}
}

// GetAccount returns the active account id, or "" when none is selected
func (s *SelectionState) GetAccount() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accountID
}

// GetTab returns the active tab id, or "" when none is active
func (s *SelectionState) GetTab() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tabID
}

// SelectAccount makes the given account active and drops any tab selection
// carried over from the previously active account
func (s *SelectionState) SelectAccount(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.accountID != id {
		s.tabID = ""
	}
	s.accountID = id
}

// ClearAccount drops the account selection along with its tab selection
func (s *SelectionState) ClearAccount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accountID = ""
	s.tabID = ""
}

// SeedTabs picks the first tab of a freshly loaded collection, or none when
// the collection is empty
func (s *SelectionState) SeedTabs(tabs []types.Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(tabs) == 0 {
		s.tabID = ""
		return
	}
	s.tabID = tabs[0].ID
}

// ActivateTab makes the given tab active
func (s *SelectionState) ActivateTab(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tabID = id
}

// CloseTab updates the tab selection after the tab with the given id was
// removed. remaining is the collection after removal, closedIndex the
// position the closed tab held before removal. Closing an inactive tab
// leaves the selection alone. Closing the active tab hands activation to
// the tab now occupying the same index, then to the predecessor, then to
// nothing.
func (s *SelectionState) CloseTab(id string, remaining []types.Tab, closedIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tabID != id {
		return
	}

	if len(remaining) == 0 {
		s.tabID = ""
		return
	}

	idx := closedIndex
	if idx >= len(remaining) {
		idx = len(remaining) - 1
	}
	if idx < 0 {
		idx = 0
	}
	s.tabID = remaining[idx].ID
}

// Reset clears both selections
func (s *SelectionState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accountID = ""
	s.tabID = ""
}
