// Package roster owns the authoritative in-memory mirror of the remote
// account store. Mutations are confirm-then-apply: local state changes only
// from server-returned snapshots, never from unconfirmed drafts.
package roster

import (
	"context"
	"sync"

	"github.com/studiowebux/accli/internal/types"
)

// Gateway is the remote surface the store drives. Implemented by
// gateway.Client; tests substitute an in-memory fake.
type Gateway interface {
	ListAccounts(ctx context.Context) ([]types.Account, error)
	CreateAccount(ctx context.Context, draft types.AccountDraft) (*types.Account, error)
	UpdateAccount(ctx context.Context, id string, draft types.AccountDraft) (*types.Account, error)
	DeleteAccount(ctx context.Context, id string) error
	OpenAccount(ctx context.Context, id string) error
	ListTabs(ctx context.Context, accountID string) ([]types.Tab, error)
	CreateTab(ctx context.Context, accountID string, draft types.TabDraft) (*types.Tab, error)
	UpdateTab(ctx context.Context, accountID, tabID string, draft types.TabDraft) (*types.Tab, error)
	DeleteTab(ctx context.Context, accountID, tabID string) error
	ReorderTabs(ctx context.Context, accountID string, order []string) error
}

// Store holds the roster and the tab collection scoped to one account.
// Responses are reconciled last-write-wins, guarded by a monotonic sequence
// per entity id: a response from an older call than the last applied one
// for the same id is discarded instead of clobbering newer state.
type Store struct {
	mu sync.RWMutex

	gw Gateway

	accounts  []types.Account
	tabs      []types.Tab
	tabsOwner string // account id whose tabs are loaded, "" when none

	nextSeq uint64
	applied map[string]uint64 // latest sequence applied per entity id
}

// NewStore creates a roster store backed by the given gateway
func NewStore(gw Gateway) *Store {
	return &Store{
		gw:      gw,
		applied: make(map[string]uint64),
	}
}

// begin issues a sequence number for a mutation against an entity id
func (s *Store) begin(id string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	return s.nextSeq
}

// commit records a sequence as applied. Returns false when a newer
// response for the same id already landed, meaning this one is stale.
func (s *Store) commit(id string, seq uint64) bool {
	if seq < s.applied[id] {
		return false
	}
	s.applied[id] = seq
	return true
}

// Accounts returns a snapshot of the roster
func (s *Store) Accounts() []types.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// Tabs returns a snapshot of the loaded tab collection
func (s *Store) Tabs() []types.Tab {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Tab, len(s.tabs))
	copy(out, s.tabs)
	return out
}

// TabsOwner returns the account id the loaded tabs belong to
func (s *Store) TabsOwner() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tabsOwner
}

// Find returns the account with the given id
func (s *Store) Find(id string) (types.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, account := range s.accounts {
		if account.ID == id {
			return account, true
		}
	}
	return types.Account{}, false
}

// Load fetches the full roster and replaces local state wholesale.
// On failure the prior state is left untouched.
func (s *Store) Load(ctx context.Context) error {
	accounts, err := s.gw.ListAccounts(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if accounts == nil {
		accounts = []types.Account{}
	}
	s.accounts = accounts
	return nil
}

// Create sends the draft and, on success, prepends the server-returned
// entity. The local draft never enters the roster; the snapshot carries
// the server-assigned id and normalized fields.
func (s *Store) Create(ctx context.Context, draft types.AccountDraft) (*types.Account, error) {
	created, err := s.gw.CreateAccount(ctx, draft)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	s.applied[created.ID] = s.nextSeq
	s.accounts = append([]types.Account{*created}, s.accounts...)
	return created, nil
}

// Update sends the draft and replaces the matching roster entry with the
// server snapshot. A stale response (an older in-flight call for the same
// id resolving after a newer one) is discarded.
func (s *Store) Update(ctx context.Context, id string, draft types.AccountDraft) (*types.Account, error) {
	seq := s.begin(id)

	updated, err := s.gw.UpdateAccount(ctx, id, draft)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.commit(id, seq) {
		return updated, nil
	}
	for i := range s.accounts {
		if s.accounts[i].ID == updated.ID {
			s.accounts[i] = *updated
			break
		}
	}
	return updated, nil
}

// Delete removes the account by id after the remote confirms. Callers are
// responsible for the confirmation prompt before invoking this, and for
// clearing selection when the deleted account was selected.
func (s *Store) Delete(ctx context.Context, id string) error {
	seq := s.begin(id)

	if err := s.gw.DeleteAccount(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(id, seq)
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			break
		}
	}
	if s.tabsOwner == id {
		s.tabs = nil
		s.tabsOwner = ""
	}
	return nil
}

// Open fires the external launch side effect. Failure is environmental and
// leaves roster and selection state untouched.
func (s *Store) Open(ctx context.Context, id string) error {
	return s.gw.OpenAccount(ctx, id)
}

// LoadTabs replaces the tab collection with the tabs of the given account.
// The previous collection is discarded even when it belonged to another
// account.
func (s *Store) LoadTabs(ctx context.Context, accountID string) ([]types.Tab, error) {
	tabs, err := s.gw.ListTabs(ctx, accountID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tabs == nil {
		tabs = []types.Tab{}
	}
	s.tabs = tabs
	s.tabsOwner = accountID
	out := make([]types.Tab, len(tabs))
	copy(out, tabs)
	return out, nil
}

// ClearTabs discards the tab collection on deselection
func (s *Store) ClearTabs() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tabs = nil
	s.tabsOwner = ""
}

// CreateTab creates a tab under the account and appends the server snapshot
func (s *Store) CreateTab(ctx context.Context, accountID string, draft types.TabDraft) (*types.Tab, error) {
	draft = NormalizeTabDraft(draft)

	created, err := s.gw.CreateTab(ctx, accountID, draft)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	s.applied[created.ID] = s.nextSeq
	if s.tabsOwner == accountID {
		s.tabs = append(s.tabs, *created)
	}
	return created, nil
}

// UpdateTab updates a tab and replaces it with the server snapshot
func (s *Store) UpdateTab(ctx context.Context, accountID, tabID string, draft types.TabDraft) (*types.Tab, error) {
	draft = NormalizeTabDraft(draft)
	seq := s.begin(tabID)

	updated, err := s.gw.UpdateTab(ctx, accountID, tabID, draft)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.commit(tabID, seq) {
		return updated, nil
	}
	for i := range s.tabs {
		if s.tabs[i].ID == updated.ID {
			s.tabs[i] = *updated
			break
		}
	}
	return updated, nil
}

// DeleteTab removes a tab by id after the remote confirms
func (s *Store) DeleteTab(ctx context.Context, accountID, tabID string) error {
	seq := s.begin(tabID)

	if err := s.gw.DeleteTab(ctx, accountID, tabID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(tabID, seq)
	for i := range s.tabs {
		if s.tabs[i].ID == tabID {
			s.tabs = append(s.tabs[:i], s.tabs[i+1:]...)
			break
		}
	}
	return nil
}

// ReorderTabs persists a new tab order and applies it locally once the
// remote confirms. Ids missing from the order keep their relative position
// at the end.
func (s *Store) ReorderTabs(ctx context.Context, accountID string, order []string) error {
	if err := s.gw.ReorderTabs(ctx, accountID, order); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tabsOwner != accountID {
		return nil
	}

	byID := make(map[string]types.Tab, len(s.tabs))
	for _, tab := range s.tabs {
		byID[tab.ID] = tab
	}

	reordered := make([]types.Tab, 0, len(s.tabs))
	seen := make(map[string]bool, len(order))
	for _, id := range order {
		if tab, ok := byID[id]; ok {
			reordered = append(reordered, tab)
			seen[id] = true
		}
	}
	for _, tab := range s.tabs {
		if !seen[tab.ID] {
			reordered = append(reordered, tab)
		}
	}
	s.tabs = reordered
	return nil
}

// Clear empties the roster, tabs, and reconciliation state. Used on logout.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = nil
	s.tabs = nil
	s.tabsOwner = ""
	s.applied = make(map[string]uint64)
}
