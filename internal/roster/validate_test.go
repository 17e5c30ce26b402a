package roster

import (
	"testing"

	"github.com/studiowebux/accli/internal/types"
)

func rosterFixture() []types.Account {
	return []types.Account{
		{ID: "1", NetflixEmail: "x@y.com", Label: types.LabelBulanan, Status: types.StatusActive},
		{ID: "2", NetflixEmail: "other@y.com", Label: types.LabelMingguan, Status: types.StatusInactive},
	}
}

func TestAccountValidator_AcceptsValidDraft(t *testing.T) {
	validate := AccountValidator(rosterFixture(), "")

	errors := validate(map[string]string{
		FieldLabel:  "bulanan",
		FieldEmail:  "new@y.com",
		FieldStatus: "active",
	})
	if len(errors) != 0 {
		t.Errorf("Unexpected errors: %v", errors)
	}
}

func TestAccountValidator_RequiredFields(t *testing.T) {
	validate := AccountValidator(rosterFixture(), "")

	errors := validate(map[string]string{})
	if errors[FieldLabel] == "" {
		t.Error("Missing label not rejected")
	}
	if errors[FieldEmail] == "" {
		t.Error("Missing email not rejected")
	}
	if errors[FieldStatus] == "" {
		t.Error("Missing status not rejected")
	}
}

func TestAccountValidator_LabelMustBeInClosedSet(t *testing.T) {
	validate := AccountValidator(rosterFixture(), "")

	errors := validate(map[string]string{
		FieldLabel:  "tahunan",
		FieldEmail:  "new@y.com",
		FieldStatus: "active",
	})
	if errors[FieldLabel] == "" {
		t.Error("Unknown label not rejected")
	}
}

func TestAccountValidator_DuplicateEmailCaseInsensitive(t *testing.T) {
	validate := AccountValidator(rosterFixture(), "")

	errors := validate(map[string]string{
		FieldLabel:  "bulanan",
		FieldEmail:  "X@Y.com",
		FieldStatus: "active",
	})
	if errors[FieldEmail] == "" {
		t.Error("Case-variant duplicate email not rejected")
	}
}

func TestAccountValidator_EditingOwnEmailIsNotADuplicate(t *testing.T) {
	validate := AccountValidator(rosterFixture(), "1")

	errors := validate(map[string]string{
		FieldLabel:  "bulanan",
		FieldEmail:  "x@y.com",
		FieldStatus: "active",
	})
	if errors[FieldEmail] != "" {
		t.Errorf("Own unchanged email rejected: %q", errors[FieldEmail])
	}

	// But someone else's email is still a duplicate while editing
	errors = validate(map[string]string{
		FieldLabel:  "bulanan",
		FieldEmail:  "OTHER@y.com",
		FieldStatus: "active",
	})
	if errors[FieldEmail] == "" {
		t.Error("Duplicate of another entry accepted while editing")
	}
}

func TestAccountValidator_StatusMustBeRecognized(t *testing.T) {
	validate := AccountValidator(rosterFixture(), "")

	errors := validate(map[string]string{
		FieldLabel:  "bulanan",
		FieldEmail:  "new@y.com",
		FieldStatus: "paused",
	})
	if errors[FieldStatus] == "" {
		t.Error("Unrecognized status not rejected")
	}
}

func TestTabValidator_BlankFieldsAreAcceptable(t *testing.T) {
	validate := TabValidator()

	if errors := validate(map[string]string{}); len(errors) != 0 {
		t.Errorf("Blank tab draft rejected: %v", errors)
	}
}

func TestTabValidator_RejectsNonHTTPURL(t *testing.T) {
	validate := TabValidator()

	errors := validate(map[string]string{FieldURL: "ftp://example.com"})
	if errors[FieldURL] == "" {
		t.Error("Non-HTTP URL not rejected")
	}

	if errors := validate(map[string]string{FieldURL: "https://netflix.com"}); len(errors) != 0 {
		t.Errorf("Valid URL rejected: %v", errors)
	}
}

func TestNormalizeTabDraft_DefaultsBlankTitle(t *testing.T) {
	draft := NormalizeTabDraft(types.TabDraft{Title: "  ", URL: "https://x.com"})
	if draft.Title != types.DefaultTabTitle {
		t.Errorf("Title = %q, want %q", draft.Title, types.DefaultTabTitle)
	}

	draft = NormalizeTabDraft(types.TabDraft{Title: "Browse"})
	if draft.Title != "Browse" {
		t.Errorf("Non-blank title rewritten: %q", draft.Title)
	}
}

func TestDraftFromValues_TrimsAndDefaults(t *testing.T) {
	draft := DraftFromValues(map[string]string{
		FieldLabel:  "  Bulanan ",
		FieldEmail:  " amy@x.com ",
		FieldStatus: "",
	})
	if draft.Label != "Bulanan" {
		t.Errorf("Label = %q", draft.Label)
	}
	if draft.NetflixEmail != "amy@x.com" {
		t.Errorf("Email = %q", draft.NetflixEmail)
	}
	if draft.Status != types.StatusActive {
		t.Errorf("Status = %q, want active default", draft.Status)
	}
}
