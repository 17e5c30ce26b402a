package roster

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"

	"github.com/studiowebux/accli/internal/types"
)

// fakeGateway is an in-memory Gateway with per-method failure switches
type fakeGateway struct {
	mu sync.Mutex

	accounts []types.Account
	tabs     map[string][]types.Tab
	nextID   int

	failList   error
	failCreate error
	failUpdate error
	failDelete error
	failOpen   error

	opened []string

	// updateHook runs inside UpdateAccount before the response is built,
	// letting tests interleave in-flight calls deterministically
	updateHook func(draft types.AccountDraft)
}

func newFakeGateway(seed ...types.Account) *fakeGateway {
	return &fakeGateway{
		accounts: seed,
		tabs:     make(map[string][]types.Tab),
		nextID:   100,
	}
}

func (f *fakeGateway) ListAccounts(ctx context.Context) ([]types.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList != nil {
		return nil, f.failList
	}
	out := make([]types.Account, len(f.accounts))
	copy(out, f.accounts)
	return out, nil
}

func (f *fakeGateway) CreateAccount(ctx context.Context, draft types.AccountDraft) (*types.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate != nil {
		return nil, f.failCreate
	}
	f.nextID++
	account := types.Account{
		ID:           strconv.Itoa(f.nextID),
		NetflixEmail: draft.NetflixEmail,
		Label:        draft.Label,
		Status:       draft.Status,
	}
	f.accounts = append(f.accounts, account)
	return &account, nil
}

func (f *fakeGateway) UpdateAccount(ctx context.Context, id string, draft types.AccountDraft) (*types.Account, error) {
	if f.updateHook != nil {
		f.updateHook(draft)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate != nil {
		return nil, f.failUpdate
	}
	account := types.Account{
		ID:           id,
		NetflixEmail: draft.NetflixEmail,
		Label:        draft.Label,
		Status:       draft.Status,
	}
	return &account, nil
}

func (f *fakeGateway) DeleteAccount(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failDelete
}

func (f *fakeGateway) OpenAccount(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOpen != nil {
		return f.failOpen
	}
	f.opened = append(f.opened, id)
	return nil
}

func (f *fakeGateway) ListTabs(ctx context.Context, accountID string) ([]types.Tab, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]types.Tab, len(f.tabs[accountID]))
	copy(out, f.tabs[accountID])
	return out, nil
}

func (f *fakeGateway) CreateTab(ctx context.Context, accountID string, draft types.TabDraft) (*types.Tab, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	tab := types.Tab{ID: strconv.Itoa(f.nextID), AccountID: accountID, Title: draft.Title, URL: draft.URL}
	f.tabs[accountID] = append(f.tabs[accountID], tab)
	return &tab, nil
}

func (f *fakeGateway) UpdateTab(ctx context.Context, accountID, tabID string, draft types.TabDraft) (*types.Tab, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tab := types.Tab{ID: tabID, AccountID: accountID, Title: draft.Title, URL: draft.URL}
	return &tab, nil
}

func (f *fakeGateway) DeleteTab(ctx context.Context, accountID, tabID string) error {
	return nil
}

func (f *fakeGateway) ReorderTabs(ctx context.Context, accountID string, order []string) error {
	return nil
}

func seedAccount(id, email string) types.Account {
	return types.Account{ID: id, NetflixEmail: email, Label: types.LabelBulanan, Status: types.StatusActive}
}

func TestLoad_ReplacesStateWholesale(t *testing.T) {
	gw := newFakeGateway(seedAccount("1", "a@x.com"), seedAccount("2", "b@x.com"))
	store := NewStore(gw)

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(store.Accounts()) != 2 {
		t.Fatalf("Accounts = %d, want 2", len(store.Accounts()))
	}

	// Remote changed; next load replaces everything
	gw.mu.Lock()
	gw.accounts = []types.Account{seedAccount("3", "c@x.com")}
	gw.mu.Unlock()

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	accounts := store.Accounts()
	if len(accounts) != 1 || accounts[0].ID != "3" {
		t.Errorf("Accounts = %v, want only id 3", accounts)
	}
}

func TestLoad_FailureLeavesPriorState(t *testing.T) {
	gw := newFakeGateway(seedAccount("1", "a@x.com"))
	store := NewStore(gw)

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	gw.mu.Lock()
	gw.failList = errors.New("boom")
	gw.mu.Unlock()

	if err := store.Load(context.Background()); err == nil {
		t.Fatal("Expected load failure")
	}
	if len(store.Accounts()) != 1 {
		t.Errorf("Prior state lost after failed load: %v", store.Accounts())
	}
}

func TestCreate_PrependsServerSnapshot(t *testing.T) {
	gw := newFakeGateway(seedAccount("1", "old@x.com"))
	store := NewStore(gw)
	store.Load(context.Background())

	created, err := store.Create(context.Background(), types.AccountDraft{
		Label:        types.LabelMingguan,
		NetflixEmail: "new@x.com",
		Status:       types.StatusActive,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	accounts := store.Accounts()
	if accounts[0].ID != created.ID {
		t.Errorf("Created entity not prepended: %v", accounts)
	}
	if accounts[0].ID == "" {
		t.Error("Roster entry missing server-assigned id")
	}
}

func TestCreate_FailureLeavesRosterUnchanged(t *testing.T) {
	gw := newFakeGateway(seedAccount("1", "a@x.com"))
	store := NewStore(gw)
	store.Load(context.Background())

	gw.mu.Lock()
	gw.failCreate = errors.New("email already exists")
	gw.mu.Unlock()

	if _, err := store.Create(context.Background(), types.AccountDraft{NetflixEmail: "dup@x.com"}); err == nil {
		t.Fatal("Expected create failure")
	}
	if len(store.Accounts()) != 1 {
		t.Errorf("Roster changed after failed create: %v", store.Accounts())
	}
}

func TestUpdate_ReplacesEntryWithServerSnapshot(t *testing.T) {
	gw := newFakeGateway(seedAccount("1", "a@x.com"), seedAccount("2", "b@x.com"))
	store := NewStore(gw)
	store.Load(context.Background())

	updated, err := store.Update(context.Background(), "2", types.AccountDraft{
		Label:        types.LabelMingguan,
		NetflixEmail: "b2@x.com",
		Status:       types.StatusInactive,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.NetflixEmail != "b2@x.com" {
		t.Errorf("Snapshot email = %q", updated.NetflixEmail)
	}

	account, ok := store.Find("2")
	if !ok {
		t.Fatal("Account 2 missing after update")
	}
	if account.NetflixEmail != "b2@x.com" || account.Status != types.StatusInactive {
		t.Errorf("Roster entry not replaced by snapshot: %+v", account)
	}
}

func TestUpdate_StaleResponseIsDiscarded(t *testing.T) {
	gw := newFakeGateway(seedAccount("1", "a@x.com"))
	store := NewStore(gw)
	store.Load(context.Background())

	firstIssued := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	// First update blocks inside the gateway until the second completes,
	// so its (older) response lands after the newer one.
	gw.updateHook = func(draft types.AccountDraft) {
		if draft.NetflixEmail == "first@x.com" {
			once.Do(func() { close(firstIssued) })
			<-release
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		store.Update(context.Background(), "1", types.AccountDraft{
			Label: types.LabelBulanan, NetflixEmail: "first@x.com", Status: types.StatusActive,
		})
	}()

	<-firstIssued
	if _, err := store.Update(context.Background(), "1", types.AccountDraft{
		Label: types.LabelBulanan, NetflixEmail: "second@x.com", Status: types.StatusActive,
	}); err != nil {
		t.Fatalf("Second update failed: %v", err)
	}

	close(release)
	<-done

	account, _ := store.Find("1")
	if account.NetflixEmail != "second@x.com" {
		t.Errorf("Stale first response overwrote newer state: %+v", account)
	}
}

func TestDelete_RemovesEntryAndScopedTabs(t *testing.T) {
	gw := newFakeGateway(seedAccount("1", "a@x.com"), seedAccount("2", "b@x.com"))
	gw.tabs["1"] = []types.Tab{{ID: "t1", Title: "Home"}}
	store := NewStore(gw)
	store.Load(context.Background())
	store.LoadTabs(context.Background(), "1")

	if err := store.Delete(context.Background(), "1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, ok := store.Find("1"); ok {
		t.Error("Deleted account still in roster")
	}
	if len(store.Tabs()) != 0 || store.TabsOwner() != "" {
		t.Error("Tab collection not discarded with its owner")
	}
}

func TestDelete_FailureLeavesRosterUnchanged(t *testing.T) {
	gw := newFakeGateway(seedAccount("1", "a@x.com"))
	store := NewStore(gw)
	store.Load(context.Background())

	gw.mu.Lock()
	gw.failDelete = errors.New("boom")
	gw.mu.Unlock()

	if err := store.Delete(context.Background(), "1"); err == nil {
		t.Fatal("Expected delete failure")
	}
	if _, ok := store.Find("1"); !ok {
		t.Error("Account removed despite failed delete")
	}
}

func TestOpen_FailureDoesNotTouchRoster(t *testing.T) {
	gw := newFakeGateway(seedAccount("1", "a@x.com"))
	store := NewStore(gw)
	store.Load(context.Background())

	gw.mu.Lock()
	gw.failOpen = errors.New("no browser available")
	gw.mu.Unlock()

	if err := store.Open(context.Background(), "1"); err == nil {
		t.Fatal("Expected open failure")
	}
	if len(store.Accounts()) != 1 {
		t.Error("Roster changed after environmental failure")
	}
}

func TestCreateThenLoad_RoundTrip(t *testing.T) {
	gw := newFakeGateway()
	store := NewStore(gw)

	created, err := store.Create(context.Background(), types.AccountDraft{
		Label: types.LabelBulanan, NetflixEmail: "rt@x.com", Status: types.StatusActive,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	found := false
	for _, account := range store.Accounts() {
		if account == *created {
			found = true
		}
	}
	if !found {
		t.Errorf("Roster after load misses the created snapshot %+v", *created)
	}
}

func TestLoadTabs_ReplacesCollection(t *testing.T) {
	gw := newFakeGateway(seedAccount("1", "a@x.com"), seedAccount("2", "b@x.com"))
	gw.tabs["1"] = []types.Tab{{ID: "t1", Title: "One"}}
	gw.tabs["2"] = []types.Tab{{ID: "t2", Title: "Two"}, {ID: "t3", Title: "Three"}}
	store := NewStore(gw)

	if _, err := store.LoadTabs(context.Background(), "1"); err != nil {
		t.Fatalf("LoadTabs failed: %v", err)
	}
	if len(store.Tabs()) != 1 || store.TabsOwner() != "1" {
		t.Errorf("Tabs = %v owner = %q", store.Tabs(), store.TabsOwner())
	}

	if _, err := store.LoadTabs(context.Background(), "2"); err != nil {
		t.Fatalf("LoadTabs failed: %v", err)
	}
	if len(store.Tabs()) != 2 || store.TabsOwner() != "2" {
		t.Errorf("Previous collection not replaced: %v", store.Tabs())
	}
}

func TestCreateTab_AppliesBlankTitleDefault(t *testing.T) {
	gw := newFakeGateway(seedAccount("1", "a@x.com"))
	store := NewStore(gw)
	store.LoadTabs(context.Background(), "1")

	created, err := store.CreateTab(context.Background(), "1", types.TabDraft{Title: "   "})
	if err != nil {
		t.Fatalf("CreateTab failed: %v", err)
	}
	if created.Title != types.DefaultTabTitle {
		t.Errorf("Title = %q, want %q", created.Title, types.DefaultTabTitle)
	}
	if len(store.Tabs()) != 1 {
		t.Errorf("Tab not appended: %v", store.Tabs())
	}
}

func TestReorderTabs_AppliesConfirmedOrder(t *testing.T) {
	gw := newFakeGateway(seedAccount("1", "a@x.com"))
	gw.tabs["1"] = []types.Tab{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}, {ID: "c", Title: "C"}}
	store := NewStore(gw)
	store.LoadTabs(context.Background(), "1")

	if err := store.ReorderTabs(context.Background(), "1", []string{"c", "a", "b"}); err != nil {
		t.Fatalf("ReorderTabs failed: %v", err)
	}

	tabs := store.Tabs()
	got := fmt.Sprintf("%s%s%s", tabs[0].ID, tabs[1].ID, tabs[2].ID)
	if got != "cab" {
		t.Errorf("Order = %q, want cab", got)
	}
}

func TestClear_EmptiesEverything(t *testing.T) {
	gw := newFakeGateway(seedAccount("1", "a@x.com"))
	gw.tabs["1"] = []types.Tab{{ID: "t1"}}
	store := NewStore(gw)
	store.Load(context.Background())
	store.LoadTabs(context.Background(), "1")

	store.Clear()

	if len(store.Accounts()) != 0 || len(store.Tabs()) != 0 || store.TabsOwner() != "" {
		t.Error("Clear left state behind")
	}
}
