package roster

import (
	"strings"

	"github.com/studiowebux/accli/internal/types"
)

// Field names shared between the account form schema and its validator
const (
	FieldLabel  = "label"
	FieldEmail  = "netflix_email"
	FieldStatus = "status"

	FieldTitle = "title"
	FieldURL   = "url"
)

// AccountValidator returns a validator for the account form. Errors are
// keyed by field name. editingID excludes the entity being edited from the
// duplicate-email check, so saving an account with its own email passes.
func AccountValidator(roster []types.Account, editingID string) func(map[string]string) map[string]string {
	return func(values map[string]string) map[string]string {
		errors := map[string]string{}

		label := strings.ToLower(strings.TrimSpace(values[FieldLabel]))
		email := strings.ToLower(strings.TrimSpace(values[FieldEmail]))
		status := strings.ToLower(strings.TrimSpace(values[FieldStatus]))

		validLabel := false
		for _, allowed := range types.AllowedLabels {
			if label == allowed {
				validLabel = true
				break
			}
		}
		if !validLabel {
			errors[FieldLabel] = "Label is required (choose Bulanan or Mingguan)"
		}

		if email == "" {
			errors[FieldEmail] = "Email is required"
		} else if isDuplicateEmail(roster, email, editingID) {
			errors[FieldEmail] = "Email already exists, duplicates are not allowed"
		}

		if !types.Status(status).Valid() {
			errors[FieldStatus] = "Status is required (active / inactive)"
		}

		return errors
	}
}

// isDuplicateEmail reports whether another roster entry already uses the
// email, case-insensitively. The submission-time check is a courtesy; the
// remote store enforces uniqueness authoritatively.
func isDuplicateEmail(roster []types.Account, email, editingID string) bool {
	for _, account := range roster {
		if strings.ToLower(account.NetflixEmail) != email {
			continue
		}
		if editingID != "" && account.ID == editingID {
			continue
		}
		return true
	}
	return false
}

// TabValidator validates the tab form. Both fields are optional: a blank
// title is defaulted at submission time and a URL may be absent.
func TabValidator() func(map[string]string) map[string]string {
	return func(values map[string]string) map[string]string {
		errors := map[string]string{}
		if url := strings.TrimSpace(values[FieldURL]); url != "" {
			if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
				errors[FieldURL] = "URL must start with http:// or https://"
			}
		}
		return errors
	}
}

// DraftFromValues builds the account write payload from form values
func DraftFromValues(values map[string]string) types.AccountDraft {
	status := types.Status(strings.ToLower(strings.TrimSpace(values[FieldStatus])))
	if !status.Valid() {
		status = types.StatusActive
	}
	return types.AccountDraft{
		Label:        strings.TrimSpace(values[FieldLabel]),
		NetflixEmail: strings.TrimSpace(values[FieldEmail]),
		Status:       status,
	}
}

// TabDraftFromValues builds the tab write payload from form values
func TabDraftFromValues(values map[string]string) types.TabDraft {
	return types.TabDraft{
		Title: strings.TrimSpace(values[FieldTitle]),
		URL:   strings.TrimSpace(values[FieldURL]),
	}
}

// NormalizeTabDraft applies the blank-title default
func NormalizeTabDraft(draft types.TabDraft) types.TabDraft {
	if strings.TrimSpace(draft.Title) == "" {
		draft.Title = types.DefaultTabTitle
	}
	return draft
}
