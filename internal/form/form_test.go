package form

import (
	"testing"
)

func accountSchema() []Field {
	return []Field{
		{Name: "label", Label: "Label", Kind: KindSelect, Options: []Option{
			{Value: "bulanan", Label: "Bulanan"},
			{Value: "mingguan", Label: "Mingguan"},
		}},
		{Name: "netflix_email", Label: "Netflix Email", Kind: KindEmail, Placeholder: "name@example.com"},
		{Name: "status", Label: "Status", Kind: KindSelect, Options: []Option{
			{Value: "active", Label: "Active"},
			{Value: "inactive", Label: "Inactive"},
		}},
	}
}

func TestNew_InitialValuesSeedTheDraft(t *testing.T) {
	f := New(accountSchema(), map[string]string{
		"label":         "mingguan",
		"netflix_email": "amy@x.com",
		"status":        "inactive",
	}, 1)

	if f.Value("label") != "mingguan" {
		t.Errorf("label = %q", f.Value("label"))
	}
	if f.Value("netflix_email") != "amy@x.com" {
		t.Errorf("netflix_email = %q", f.Value("netflix_email"))
	}
	if f.Value("status") != "inactive" {
		t.Errorf("status = %q", f.Value("status"))
	}
}

func TestNew_FreshVersionMeansFreshDraft(t *testing.T) {
	first := New(accountSchema(), nil, 1)
	first.SetValue("netflix_email", "typed-then-cancelled@x.com")

	// Reopening the same modal type builds a new form; the stale draft
	// from the cancelled open must not reappear.
	second := New(accountSchema(), nil, 2)
	if second.Value("netflix_email") != "" {
		t.Errorf("Stale draft leaked into reopened form: %q", second.Value("netflix_email"))
	}
	if second.Version() == first.Version() {
		t.Error("Version stamp did not advance")
	}
}

func TestSubmit_ValidatorErrorsBlockAndMapToFields(t *testing.T) {
	f := New(accountSchema(), nil, 1)
	f.SetValue("netflix_email", "dup@x.com")

	validate := func(values map[string]string) map[string]string {
		return map[string]string{
			"label":         "Label is required",
			"netflix_email": "Email already exists",
		}
	}

	if values := f.Submit(validate); values != nil {
		t.Fatal("Submission should be blocked by validator errors")
	}
	if f.Error("label") != "Label is required" {
		t.Errorf("label error = %q", f.Error("label"))
	}
	if f.Error("netflix_email") != "Email already exists" {
		t.Errorf("netflix_email error = %q", f.Error("netflix_email"))
	}
	if f.Error("status") != "" {
		t.Errorf("Unexpected status error %q", f.Error("status"))
	}
}

func TestSetValue_ClearsOnlyThatFieldsError(t *testing.T) {
	f := New(accountSchema(), nil, 1)
	f.Submit(func(map[string]string) map[string]string {
		return map[string]string{
			"label":         "Label is required",
			"netflix_email": "Email is required",
		}
	})

	f.SetValue("netflix_email", "fixed@x.com")

	if f.Error("netflix_email") != "" {
		t.Error("Edited field error not cleared")
	}
	if f.Error("label") == "" {
		t.Error("Untouched field error was wiped")
	}
}

func TestSubmit_SuccessReturnsDraftAndClearsErrors(t *testing.T) {
	f := New(accountSchema(), nil, 1)
	f.SetValue("label", "bulanan")
	f.SetValue("netflix_email", "ok@x.com")
	f.SetValue("status", "active")

	values := f.Submit(func(map[string]string) map[string]string { return nil })
	if values == nil {
		t.Fatal("Expected successful submission")
	}
	if values["netflix_email"] != "ok@x.com" || values["label"] != "bulanan" {
		t.Errorf("values = %v", values)
	}
	if f.HasErrors() {
		t.Error("Errors remain after successful submit")
	}
}

func TestCycleSelect_WrapsAndClearsError(t *testing.T) {
	f := New(accountSchema(), nil, 1)
	f.Submit(func(map[string]string) map[string]string {
		return map[string]string{"label": "Label is required"}
	})

	f.CycleSelect("label", 1)
	if f.Value("label") != "bulanan" {
		t.Errorf("First cycle = %q, want bulanan", f.Value("label"))
	}
	if f.Error("label") != "" {
		t.Error("Cycling did not clear the field error")
	}

	f.CycleSelect("label", 1)
	if f.Value("label") != "mingguan" {
		t.Errorf("Second cycle = %q, want mingguan", f.Value("label"))
	}

	f.CycleSelect("label", 1)
	if f.Value("label") != "bulanan" {
		t.Errorf("Cycle did not wrap: %q", f.Value("label"))
	}
}

func TestFocusTraversal_Wraps(t *testing.T) {
	f := New(accountSchema(), nil, 1)

	if f.FocusIndex() != 0 {
		t.Fatalf("Initial focus = %d", f.FocusIndex())
	}

	f.Next()
	f.Next()
	if f.FocusedField().Name != "status" {
		t.Errorf("Focus = %q, want status", f.FocusedField().Name)
	}

	f.Next()
	if f.FocusIndex() != 0 {
		t.Errorf("Focus did not wrap forward: %d", f.FocusIndex())
	}

	f.Prev()
	if f.FocusedField().Name != "status" {
		t.Errorf("Focus did not wrap backward: %q", f.FocusedField().Name)
	}
}
