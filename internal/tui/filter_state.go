package tui

import (
	"sync"

	"github.com/studiowebux/accli/internal/view"
)

// FilterState encapsulates the search text and the label/status filter picks
type FilterState struct {
	mu sync.RWMutex

	search string
	label  string
	status string
}

// NewFilterState creates a filter state with every dimension wide open
func NewFilterState() *FilterState {
	return &FilterState{
		label:  view.FilterAll,
		status: view.FilterAll,
	}
}

// GetSearch returns the current search text
func (s *FilterState) GetSearch() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.search
}

// SetSearch sets the search text
func (s *FilterState) SetSearch(search string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = search
}

// GetLabel returns the label filter pick
func (s *FilterState) GetLabel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.label
}

// SetLabel sets the label filter pick
func (s *FilterState) SetLabel(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if label == "" {
		label = view.FilterAll
	}
	s.label = label
}

// GetStatus returns the status filter pick
func (s *FilterState) GetStatus() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// SetStatus sets the status filter pick
func (s *FilterState) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == "" {
		status = view.FilterAll
	}
	s.status = status
}

// Query snapshots the three dimensions into a projection query
func (s *FilterState) Query() view.Query {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view.Query{
		Search: s.search,
		Label:  s.label,
		Status: s.status,
	}
}

// Active reports whether any dimension narrows the roster
func (s *FilterState) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.search != "" || s.label != view.FilterAll || s.status != view.FilterAll
}

// Reset restores every dimension to wide open
func (s *FilterState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = ""
	s.label = view.FilterAll
	s.status = view.FilterAll
}
