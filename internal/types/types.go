package types

// Status is the lifecycle state of an account
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Valid reports whether the status is one of the recognized values
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Labels recognized by the service. Accounts are categorized by billing
// cadence: bulanan (monthly) or mingguan (weekly).
const (
	LabelBulanan  = "bulanan"
	LabelMingguan = "mingguan"
)

// AllowedLabels lists the closed label set, in display order
var AllowedLabels = []string{LabelBulanan, LabelMingguan}

// Account is a credential profile mirrored from the remote store.
// NetflixEmail is the natural sort/group key and is unique
// (case-insensitive) across the roster.
type Account struct {
	ID           string `json:"id"`
	NetflixEmail string `json:"netflix_email"`
	Label        string `json:"label"`
	Status       Status `json:"status"`
}

// Tab is a named shortcut link owned by exactly one account
type Tab struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id,omitempty"`
	Title     string `json:"title"`
	URL       string `json:"url,omitempty"`
}

// DefaultTabTitle is used when a tab is created or saved with a blank title
const DefaultTabTitle = "New Tab"

// AccountDraft is the write-path payload for account create/update
type AccountDraft struct {
	Label        string `json:"label"`
	NetflixEmail string `json:"netflix_email"`
	Status       Status `json:"status"`
}

// TabDraft is the write-path payload for tab create/update
type TabDraft struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Credentials is the auth request payload for login and register
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned by the auth endpoints
type TokenResponse struct {
	Token string `json:"token"`
}

// Theme is the persisted UI color preference
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Session is the process-wide persisted state: the bearer credential and
// the theme preference. An empty AuthToken means logged out.
type Session struct {
	AuthToken string `json:"token,omitempty"`
	Theme     Theme  `json:"theme,omitempty"`
}
