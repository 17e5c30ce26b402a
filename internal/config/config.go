package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

const (
	// FilePermissions is the default permission mode for regular files
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories
	DirPermissions = 0755

	// DefaultAPIBase is the local service address used when no override is set
	DefaultAPIBase = "http://localhost:8080"

	// EnvAPIBase overrides the API base URL when set
	EnvAPIBase = "ACCLI_API_BASE"
)

var (
	// ConfigDir is the global configuration directory (~/.accli)
	ConfigDir string

	// SessionFile is the persisted session state file (token + theme)
	SessionFile string

	// DatabasePath is the SQLite database file for the activity log
	DatabasePath string

	// ConfigFile is the optional settings file (JSONC, comments allowed)
	ConfigFile string
)

// Settings holds the optional user configuration from config.jsonc
type Settings struct {
	APIBase       string `json:"apiBase"`
	Notifications bool   `json:"notifications"`
}

// Initialize sets up the configuration directory and files.
// It creates ~/.accli/ if it doesn't exist.
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	ConfigDir = filepath.Join(homeDir, ".accli")
	SessionFile = filepath.Join(ConfigDir, ".session.json")
	DatabasePath = filepath.Join(ConfigDir, "accli.db")
	ConfigFile = filepath.Join(ConfigDir, "config.jsonc")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	// Create empty session file if it doesn't exist
	if _, err := os.Stat(SessionFile); os.IsNotExist(err) {
		defaultSession := []byte(`{"theme":"light"}`)
		if err := os.WriteFile(SessionFile, defaultSession, FilePermissions); err != nil {
			return fmt.Errorf("failed to create session file: %w", err)
		}
	}

	return nil
}

// LoadSettings reads config.jsonc if present. A missing file yields defaults.
func LoadSettings() (Settings, error) {
	settings := Settings{}

	if ConfigFile == "" {
		return settings, nil
	}

	data, err := os.ReadFile(ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(jsonc.ToJSON(data), &settings); err != nil {
		return settings, fmt.Errorf("failed to parse config file: %w", err)
	}

	return settings, nil
}

// APIBase resolves the remote base URL: environment override, then the
// config file, then the fixed local default.
func APIBase(settings Settings) string {
	if base := os.Getenv(EnvAPIBase); base != "" {
		return base
	}
	if settings.APIBase != "" {
		return settings.APIBase
	}
	return DefaultAPIBase
}

// GetSessionFilePath returns the session file path (local or global).
// A .session.json in the working directory takes precedence, which keeps
// scratch environments isolated from the global session.
func GetSessionFilePath() string {
	if _, err := os.Stat(".session.json"); err == nil {
		return ".session.json"
	}
	return SessionFile
}
