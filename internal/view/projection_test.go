package view

import (
	"reflect"
	"testing"

	"github.com/studiowebux/accli/internal/types"
)

func account(id, email, label string, status types.Status) types.Account {
	return types.Account{ID: id, NetflixEmail: email, Label: label, Status: status}
}

func TestProject_ScenarioFromTwoAccountRoster(t *testing.T) {
	roster := []types.Account{
		account("1", "bob@x.com", "bulanan", types.StatusActive),
		account("2", "amy@x.com", "mingguan", types.StatusInactive),
	}

	engine := NewEngine()
	result := engine.Project(roster, NewQuery())

	if len(result.Groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(result.Groups))
	}
	if result.Groups[0].Letter != "A" || result.Groups[0].Accounts[0].NetflixEmail != "amy@x.com" {
		t.Errorf("First group = %q with %v", result.Groups[0].Letter, result.Groups[0].Accounts)
	}
	if result.Groups[1].Letter != "B" || result.Groups[1].Accounts[0].NetflixEmail != "bob@x.com" {
		t.Errorf("Second group = %q with %v", result.Groups[1].Letter, result.Groups[1].Accounts)
	}

	want := Summary{Total: 2, Active: 1, Inactive: 1, Bulanan: 1, Mingguan: 1}
	if result.Summary != want {
		t.Errorf("Summary = %+v, want %+v", result.Summary, want)
	}
}

func TestProject_SearchFiltersByEmailSubstring(t *testing.T) {
	roster := []types.Account{
		account("1", "alpha@x.com", "bulanan", types.StatusActive),
		account("2", "beta@x.com", "bulanan", types.StatusActive),
	}

	engine := NewEngine()
	result := engine.Project(roster, Query{Search: "  ALPHA ", Label: FilterAll, Status: FilterAll})

	if len(result.Filtered) != 1 || result.Filtered[0].ID != "1" {
		t.Errorf("Filtered = %v, want only alpha", result.Filtered)
	}

	// Summary stays computed over the unfiltered roster
	if result.Summary.Total != 2 {
		t.Errorf("Summary.Total = %d, want 2", result.Summary.Total)
	}
}

func TestProject_LabelAndStatusFilters(t *testing.T) {
	roster := []types.Account{
		account("1", "a@x.com", " Bulanan ", types.StatusActive),
		account("2", "b@x.com", "mingguan", types.StatusActive),
		account("3", "c@x.com", "bulanan", types.StatusInactive),
	}

	engine := NewEngine()

	byLabel := engine.Project(roster, Query{Label: "bulanan", Status: FilterAll})
	if len(byLabel.Filtered) != 2 {
		t.Errorf("Label filter matched %d, want 2 (labels are trimmed and lowercased)", len(byLabel.Filtered))
	}

	both := engine.Project(roster, Query{Label: "bulanan", Status: "active"})
	if len(both.Filtered) != 1 || both.Filtered[0].ID != "1" {
		t.Errorf("Combined filters = %v, want only account 1", both.Filtered)
	}
}

func TestMatches_QueryValuesAreNormalized(t *testing.T) {
	subject := account("1", "amy@x.com", "bulanan", types.StatusActive)

	// Values typed at a shell prompt arrive with arbitrary case and padding
	if !Matches(subject, Query{Label: "Bulanan", Status: FilterAll}) {
		t.Error("Mixed-case label value did not match")
	}
	if !Matches(subject, Query{Label: " BULANAN ", Status: "Active"}) {
		t.Error("Padded uppercase query values did not match")
	}
	if Matches(subject, Query{Label: "Mingguan", Status: FilterAll}) {
		t.Error("Non-matching label matched after normalization")
	}
}

func TestProject_Idempotent(t *testing.T) {
	roster := []types.Account{
		account("1", "zoe@x.com", "bulanan", types.StatusActive),
		account("2", "amy@x.com", "mingguan", types.StatusInactive),
		account("3", "9digits@x.com", "", types.StatusActive),
	}
	query := Query{Search: "x.com", Label: FilterAll, Status: FilterAll}

	engine := NewEngine()
	first := engine.Project(roster, query)
	second := engine.Project(roster, query)

	if !reflect.DeepEqual(first, second) {
		t.Error("Projection is not idempotent for identical inputs")
	}

	// A separate engine gives the same answer: the derivation is pure
	other := NewEngine().Project(roster, query)
	if !reflect.DeepEqual(first, other) {
		t.Error("Projection differs across engines for identical inputs")
	}
}

func TestProject_GroupingIsAPartition(t *testing.T) {
	roster := []types.Account{
		account("1", "bob@x.com", "bulanan", types.StatusActive),
		account("2", "amy@x.com", "bulanan", types.StatusActive),
		account("3", "ben@x.com", "bulanan", types.StatusActive),
		account("4", "123@x.com", "bulanan", types.StatusActive),
		account("5", "_u@x.com", "bulanan", types.StatusActive),
	}

	engine := NewEngine()
	result := engine.Project(roster, NewQuery())

	seen := map[string]int{}
	total := 0
	for _, group := range result.Groups {
		for _, acct := range group.Accounts {
			seen[acct.ID]++
			total++
		}
	}

	if total != len(roster) {
		t.Errorf("Groups hold %d accounts, want %d", total, len(roster))
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("Account %s appears %d times across buckets", id, count)
		}
	}

	// Non-letter first characters collapse into the "#" bucket
	if result.Groups[0].Letter != "#" {
		t.Errorf("First bucket = %q, want #", result.Groups[0].Letter)
	}
	if len(result.Groups[0].Accounts) != 2 {
		t.Errorf("# bucket holds %d, want 2", len(result.Groups[0].Accounts))
	}

	// Buckets ascend, items inside keep email order
	for i := 1; i < len(result.Groups); i++ {
		if result.Groups[i-1].Letter >= result.Groups[i].Letter && result.Groups[i-1].Letter != "#" {
			t.Errorf("Buckets out of order: %q before %q", result.Groups[i-1].Letter, result.Groups[i].Letter)
		}
	}
	b := result.Groups[len(result.Groups)-1]
	if b.Letter != "B" || b.Accounts[0].NetflixEmail != "ben@x.com" || b.Accounts[1].NetflixEmail != "bob@x.com" {
		t.Errorf("B bucket = %v, want ben then bob", b.Accounts)
	}
}

func TestBucketLetter(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"amy@x.com", "A"},
		{"  Zoe@x.com", "Z"},
		{"9lives@x.com", "#"},
		{"_under@x.com", "#"},
		{"", "#"},
		{"   ", "#"},
	}

	for _, tt := range tests {
		if got := BucketLetter(tt.email); got != tt.want {
			t.Errorf("BucketLetter(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}

func TestSummary_CountersSumConsistently(t *testing.T) {
	roster := []types.Account{
		account("1", "a@x.com", "bulanan", types.StatusActive),
		account("2", "b@x.com", "mingguan", types.StatusInactive),
		account("3", "c@x.com", "other", "unknown"),
	}

	summary := summarize(roster)
	if summary.Active+summary.Inactive > summary.Total {
		t.Errorf("active(%d) + inactive(%d) exceeds total(%d)",
			summary.Active, summary.Inactive, summary.Total)
	}
	// Equality only when every status is one of the recognized values
	if summary.Active+summary.Inactive == summary.Total {
		t.Error("Expected strict inequality with an unrecognized status present")
	}
}

func TestProject_SortIsTotalOverEmails(t *testing.T) {
	roster := []types.Account{
		account("1", "carol@x.com", "bulanan", types.StatusActive),
		account("2", "alice@x.com", "bulanan", types.StatusActive),
		account("3", "bob@x.com", "bulanan", types.StatusActive),
	}

	engine := NewEngine()
	result := engine.Project(roster, NewQuery())

	emails := []string{}
	for _, acct := range result.Filtered {
		emails = append(emails, acct.NetflixEmail)
	}
	want := []string{"alice@x.com", "bob@x.com", "carol@x.com"}
	if !reflect.DeepEqual(emails, want) {
		t.Errorf("Sorted emails = %v, want %v", emails, want)
	}
}

func TestProject_MemoizationDoesNotLeakStaleResults(t *testing.T) {
	engine := NewEngine()
	roster := []types.Account{account("1", "amy@x.com", "bulanan", types.StatusActive)}

	first := engine.Project(roster, NewQuery())
	if len(first.Filtered) != 1 {
		t.Fatalf("Filtered = %d, want 1", len(first.Filtered))
	}

	// Changing an input must invalidate the memo
	grown := append(slicesClone(roster), account("2", "bob@x.com", "mingguan", types.StatusInactive))
	second := engine.Project(grown, NewQuery())
	if len(second.Filtered) != 2 {
		t.Errorf("Filtered = %d after roster change, want 2", len(second.Filtered))
	}

	narrowed := engine.Project(grown, Query{Search: "bob", Label: FilterAll, Status: FilterAll})
	if len(narrowed.Filtered) != 1 || narrowed.Filtered[0].ID != "2" {
		t.Errorf("Filtered = %v after query change, want only bob", narrowed.Filtered)
	}
}

func slicesClone(in []types.Account) []types.Account {
	out := make([]types.Account, len(in))
	copy(out, in)
	return out
}
