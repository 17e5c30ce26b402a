package tui

import (
	"path/filepath"
	"testing"

	"github.com/studiowebux/accli/internal/config"
	"github.com/studiowebux/accli/internal/session"
	"github.com/studiowebux/accli/internal/types"
)

// CreateTestModel creates a Model instance for testing with minimal
// dependencies
func CreateTestModel(t *testing.T) *Model {
	t.Helper()

	tempDir := t.TempDir()

	// Point config paths at the temp directory
	originalDBPath := config.DatabasePath
	originalSessionFile := config.SessionFile
	config.DatabasePath = filepath.Join(tempDir, "test.db")
	config.SessionFile = filepath.Join(tempDir, "session.json")
	t.Cleanup(func() {
		config.DatabasePath = originalDBPath
		config.SessionFile = originalSessionFile
	})

	mgr := session.NewManager()

	m, err := New(mgr, config.Settings{}, "test-version")
	if err != nil {
		t.Fatalf("Failed to create test model: %v", err)
	}
	t.Cleanup(m.Cleanup)

	return &m
}

// SeedTestRoster pushes accounts straight into the model's projection,
// bypassing the gateway
func SeedTestRoster(t *testing.T, m *Model, accounts []types.Account) {
	t.Helper()
	m.projection = m.engine.Project(accounts, m.filters.Query())
	m.cursor = 0
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}

// AssertNoError verifies that an error is nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

// AssertError verifies that an error occurred
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Error("Expected error but got nil")
	}
}
