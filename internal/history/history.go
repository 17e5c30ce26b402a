// Package history keeps a local activity log in SQLite: launches, auth
// events, and failed mutations. Logging is best-effort; a write failure
// never interrupts the operation that produced the event.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Event kinds recorded in the activity log
const (
	KindLaunch   = "launch"
	KindLogin    = "login"
	KindRegister = "register"
	KindLogout   = "logout"
	KindCreate   = "create"
	KindUpdate   = "update"
	KindDelete   = "delete"
)

// Entry is one recorded activity event
type Entry struct {
	ID           int64
	Timestamp    time.Time
	Kind         string
	AccountEmail string
	Detail       string
	OK           bool
}

// Manager owns the activity database
type Manager struct {
	db *sql.DB
}

// NewManager opens (and if needed creates) the activity database
func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open activity database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to activity database: %w", err)
	}

	m := &Manager{db: db}
	if err := m.initSchema(); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Manager) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS activity (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		kind TEXT NOT NULL,
		account_email TEXT,
		detail TEXT,
		ok INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_activity_timestamp ON activity(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_activity_kind ON activity(kind);
	`

	if _, err := m.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize activity schema: %w", err)
	}

	return nil
}

// Save records one event
func (m *Manager) Save(kind, accountEmail, detail string, ok bool) error {
	_, err := m.db.Exec(
		`INSERT INTO activity (timestamp, kind, account_email, detail, ok) VALUES (?, ?, ?, ?, ?)`,
		time.Now().UTC(), kind, accountEmail, detail, boolToInt(ok),
	)
	if err != nil {
		return fmt.Errorf("failed to save activity entry: %w", err)
	}
	return nil
}

// Load returns the most recent entries, newest first
func (m *Manager) Load(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := m.db.Query(
		`SELECT id, timestamp, kind, account_email, detail, ok
		 FROM activity ORDER BY timestamp DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var entry Entry
		var ok int
		if err := rows.Scan(&entry.ID, &entry.Timestamp, &entry.Kind, &entry.AccountEmail, &entry.Detail, &ok); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entry.OK = ok != 0
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Clear deletes all recorded activity
func (m *Manager) Clear() error {
	if _, err := m.db.Exec(`DELETE FROM activity`); err != nil {
		return fmt.Errorf("failed to clear activity: %w", err)
	}
	return nil
}

// Close closes the database
func (m *Manager) Close() error {
	return m.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
