package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/studiowebux/accli/internal/types"
)

// APIError is a normalized non-2xx response. Message carries the
// server-provided text when one was present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// AuthError marks a rejected login or register attempt, so callers can
// surface it distinctly from generic remote failures.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// Client wraps all network calls to the account service. It attaches the
// bearer credential when present, normalizes non-2xx responses into
// *APIError, and treats 204 as success with no payload. Every call is a
// single attempt; retry policy belongs to the caller.
type Client struct {
	base   string
	token  string
	client *http.Client
}

// New creates a client for the given base URL
func New(base string) *Client {
	return &Client{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{},
	}
}

// SetToken sets the bearer credential attached to subsequent calls.
// An empty token clears it.
func (c *Client) SetToken(token string) {
	c.token = token
}

// errorBody is the structured error shape the service returns
type errorBody struct {
	Error string `json:"error"`
}

// do performs a single request. body is marshaled as JSON when non-nil;
// out is decoded from the response when non-nil and the status is not 204.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			Status:  resp.StatusCode,
			Message: readErrorMessage(resp.Body),
		}
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// readErrorMessage extracts the server-provided error text, structured or
// plain, falling back to a generic default.
func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return "Request failed"
	}

	var structured errorBody
	if err := json.Unmarshal(data, &structured); err == nil && structured.Error != "" {
		return structured.Error
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "Request failed"
	}
	return text
}

// ListAccounts fetches the full roster
func (c *Client) ListAccounts(ctx context.Context) ([]types.Account, error) {
	var accounts []types.Account
	if err := c.do(ctx, http.MethodGet, "/accounts", nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// CreateAccount creates an account and returns the server snapshot
func (c *Client) CreateAccount(ctx context.Context, draft types.AccountDraft) (*types.Account, error) {
	var account types.Account
	if err := c.do(ctx, http.MethodPost, "/accounts", draft, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateAccount updates an account and returns the server snapshot
func (c *Client) UpdateAccount(ctx context.Context, id string, draft types.AccountDraft) (*types.Account, error) {
	var account types.Account
	if err := c.do(ctx, http.MethodPut, "/accounts/"+id, draft, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// DeleteAccount deletes an account. The service answers 204.
func (c *Client) DeleteAccount(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/accounts/"+id, nil, nil)
}

// OpenAccount fires the external launch side effect for an account.
// The browser profile opens outside the data model; a failure here is
// environmental and leaves the roster untouched.
func (c *Client) OpenAccount(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/accounts/"+id+"/open", nil, nil)
}

// ListTabs fetches the tabs owned by an account
func (c *Client) ListTabs(ctx context.Context, accountID string) ([]types.Tab, error) {
	var tabs []types.Tab
	if err := c.do(ctx, http.MethodGet, "/accounts/"+accountID+"/tabs", nil, &tabs); err != nil {
		return nil, err
	}
	return tabs, nil
}

// CreateTab creates a tab under an account and returns the server snapshot
func (c *Client) CreateTab(ctx context.Context, accountID string, draft types.TabDraft) (*types.Tab, error) {
	var tab types.Tab
	if err := c.do(ctx, http.MethodPost, "/accounts/"+accountID+"/tabs", draft, &tab); err != nil {
		return nil, err
	}
	return &tab, nil
}

// UpdateTab updates a tab and returns the server snapshot
func (c *Client) UpdateTab(ctx context.Context, accountID, tabID string, draft types.TabDraft) (*types.Tab, error) {
	var tab types.Tab
	if err := c.do(ctx, http.MethodPut, "/accounts/"+accountID+"/tabs/"+tabID, draft, &tab); err != nil {
		return nil, err
	}
	return &tab, nil
}

// DeleteTab deletes a tab. The service answers 204.
func (c *Client) DeleteTab(ctx context.Context, accountID, tabID string) error {
	return c.do(ctx, http.MethodDelete, "/accounts/"+accountID+"/tabs/"+tabID, nil, nil)
}

// reorderPayload matches the service's tab reorder body
type reorderPayload struct {
	Order []string `json:"order"`
}

// ReorderTabs persists a new tab order for an account
func (c *Client) ReorderTabs(ctx context.Context, accountID string, order []string) error {
	return c.do(ctx, http.MethodPut, "/accounts/"+accountID+"/tabs/reorder", reorderPayload{Order: order}, nil)
}

// Login exchanges credentials for a bearer token
func (c *Client) Login(ctx context.Context, creds types.Credentials) (string, error) {
	return c.authenticate(ctx, "/auth/login", creds)
}

// Register creates a user and returns a bearer token
func (c *Client) Register(ctx context.Context, creds types.Credentials) (string, error) {
	return c.authenticate(ctx, "/auth/register", creds)
}

func (c *Client) authenticate(ctx context.Context, path string, creds types.Credentials) (string, error) {
	var res types.TokenResponse
	if err := c.do(ctx, http.MethodPost, path, creds, &res); err != nil {
		// A rejected attempt is an auth failure, not a generic remote
		// failure; existing session state is left untouched by callers.
		if apiErr, ok := err.(*APIError); ok {
			return "", &AuthError{Message: apiErr.Message}
		}
		return "", err
	}
	if res.Token == "" {
		return "", &AuthError{Message: "Authentication failed"}
	}
	return res.Token, nil
}
