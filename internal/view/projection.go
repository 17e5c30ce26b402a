// Package view derives the rendered roster from raw state: free-text search,
// label/status filters, alphabetic grouping, and summary counters. The
// derivation is pure (the same inputs always produce the same projection)
// and the engine memoizes the last result so repeated renders are free.
package view

import (
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/studiowebux/accli/internal/types"
)

// FilterAll disables a label or status filter
const FilterAll = "all"

// Query is the filter input: free-text search plus label/status predicates.
// All three are client-side only and never reach the remote store.
type Query struct {
	Search string
	Label  string
	Status string
}

// NewQuery returns a query with both filters disabled
func NewQuery() Query {
	return Query{Label: FilterAll, Status: FilterAll}
}

// Group is one alphabetic bucket of the filtered roster
type Group struct {
	Letter   string
	Accounts []types.Account
}

// Summary counts over the unfiltered roster
type Summary struct {
	Total    int
	Active   int
	Inactive int
	Bulanan  int
	Mingguan int
}

// Projection is the derived view: the filtered and sorted list, its
// alphabetic grouping, and counters over the whole roster.
type Projection struct {
	Filtered []types.Account
	Groups   []Group
	Summary  Summary
}

// Engine computes projections with locale-aware ordering. It holds the last
// (inputs, result) pair; identical inputs return the cached projection.
type Engine struct {
	collator *collate.Collator

	lastRoster []types.Account
	lastQuery  Query
	lastResult *Projection
}

// NewEngine creates a projection engine
func NewEngine() *Engine {
	return &Engine{
		collator: collate.New(language.English),
	}
}

// Project derives the view for the given roster and query
func (e *Engine) Project(roster []types.Account, query Query) Projection {
	if e.lastResult != nil && query == e.lastQuery && slices.Equal(roster, e.lastRoster) {
		return *e.lastResult
	}

	result := Projection{
		Filtered: e.filter(roster, query),
		Summary:  summarize(roster),
	}
	e.sortByEmail(result.Filtered)
	result.Groups = e.group(result.Filtered)

	e.lastRoster = slices.Clone(roster)
	e.lastQuery = query
	e.lastResult = &result

	return result
}

// Matches reports whether a single account passes the query predicates
func Matches(account types.Account, query Query) bool {
	search := strings.ToLower(strings.TrimSpace(query.Search))
	if search != "" && !strings.Contains(strings.ToLower(account.NetflixEmail), search) {
		return false
	}
	if label := strings.ToLower(strings.TrimSpace(query.Label)); label != FilterAll && label != "" {
		if strings.ToLower(strings.TrimSpace(account.Label)) != label {
			return false
		}
	}
	if status := strings.ToLower(strings.TrimSpace(query.Status)); status != FilterAll && status != "" {
		if string(account.Status) != status {
			return false
		}
	}
	return true
}

func (e *Engine) filter(roster []types.Account, query Query) []types.Account {
	filtered := []types.Account{}
	for _, account := range roster {
		if Matches(account, query) {
			filtered = append(filtered, account)
		}
	}
	return filtered
}

func (e *Engine) sortByEmail(accounts []types.Account) {
	sort.SliceStable(accounts, func(i, j int) bool {
		return e.collator.CompareString(accounts[i].NetflixEmail, accounts[j].NetflixEmail) < 0
	})
}

// BucketLetter returns the group key for an email: the first character of
// the trimmed email, uppercased, or "#" when it is not an ASCII letter.
func BucketLetter(email string) string {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return "#"
	}
	first := trimmed[0]
	switch {
	case first >= 'a' && first <= 'z':
		return strings.ToUpper(string(first))
	case first >= 'A' && first <= 'Z':
		return string(first)
	default:
		return "#"
	}
}

// group buckets a sorted list by first letter. Items keep their sorted
// order inside each bucket; buckets are emitted in ascending key order
// with "#" sorting before the letters.
func (e *Engine) group(sorted []types.Account) []Group {
	buckets := make(map[string][]types.Account)
	for _, account := range sorted {
		letter := BucketLetter(account.NetflixEmail)
		buckets[letter] = append(buckets[letter], account)
	}

	keys := make([]string, 0, len(buckets))
	for letter := range buckets {
		keys = append(keys, letter)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i] == "#" {
			return true
		}
		if keys[j] == "#" {
			return false
		}
		return e.collator.CompareString(keys[i], keys[j]) < 0
	})

	groups := make([]Group, 0, len(keys))
	for _, letter := range keys {
		groups = append(groups, Group{Letter: letter, Accounts: buckets[letter]})
	}
	return groups
}

func summarize(roster []types.Account) Summary {
	summary := Summary{Total: len(roster)}
	for _, account := range roster {
		switch account.Status {
		case types.StatusActive:
			summary.Active++
		case types.StatusInactive:
			summary.Inactive++
		}

		switch strings.ToLower(strings.TrimSpace(account.Label)) {
		case types.LabelBulanan:
			summary.Bulanan++
		case types.LabelMingguan:
			summary.Mingguan++
		}
	}
	return summary
}
