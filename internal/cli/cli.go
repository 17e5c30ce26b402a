// Package cli implements the headless commands: scripted login, roster
// listing, and session launches without the interactive UI.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/studiowebux/accli/internal/config"
	"github.com/studiowebux/accli/internal/gateway"
	"github.com/studiowebux/accli/internal/history"
	"github.com/studiowebux/accli/internal/roster"
	"github.com/studiowebux/accli/internal/session"
	"github.com/studiowebux/accli/internal/types"
	"github.com/studiowebux/accli/internal/view"
)

// RequestTimeout bounds every gateway round trip issued from the CLI
const RequestTimeout = 30 * time.Second

// runtime bundles the pieces every headless command needs
type runtime struct {
	mgr     *session.Manager
	gw      *gateway.Client
	store   *roster.Store
	history *history.Manager
}

func newRuntime() (*runtime, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}

	mgr := session.NewManager()
	if err := mgr.Load(); err != nil {
		return nil, err
	}

	gw := gateway.New(config.APIBase(settings))
	gw.SetToken(mgr.Token())

	rt := &runtime{
		mgr:   mgr,
		gw:    gw,
		store: roster.NewStore(gw),
	}

	// Activity log is best-effort in headless mode too
	if hm, err := history.NewManager(config.DatabasePath); err == nil {
		rt.history = hm
	}

	return rt, nil
}

func (rt *runtime) close() {
	if rt.history != nil {
		rt.history.Close()
	}
}

func (rt *runtime) log(kind, email, detail string, ok bool) {
	if rt.history != nil {
		_ = rt.history.Save(kind, email, detail, ok)
	}
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), RequestTimeout)
}

// Login authenticates and persists the issued token
func Login(email, password string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx, cancel := requestContext()
	defer cancel()

	token, err := rt.gw.Login(ctx, types.Credentials{Email: email, Password: password})
	if err != nil {
		rt.log(history.KindLogin, email, err.Error(), false)
		return err
	}

	if err := rt.mgr.SetToken(token); err != nil {
		return err
	}

	rt.log(history.KindLogin, email, "", true)
	fmt.Println("Logged in.")
	return nil
}

// Register creates a remote user and persists the issued token
func Register(email, password string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx, cancel := requestContext()
	defer cancel()

	token, err := rt.gw.Register(ctx, types.Credentials{Email: email, Password: password})
	if err != nil {
		rt.log(history.KindRegister, email, err.Error(), false)
		return err
	}

	if err := rt.mgr.SetToken(token); err != nil {
		return err
	}

	rt.log(history.KindRegister, email, "", true)
	fmt.Println("Registered and logged in.")
	return nil
}

// Logout drops the persisted token. The theme preference is kept.
func Logout() error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	if !rt.mgr.IsAuthenticated() {
		fmt.Println("Not logged in.")
		return nil
	}

	if err := rt.mgr.ClearToken(); err != nil {
		return err
	}

	rt.log(history.KindLogout, "", "", true)
	fmt.Println("Logged out.")
	return nil
}

// ListOptions narrows and formats the roster listing
type ListOptions struct {
	Search string
	Label  string
	Status string
	JSON   bool
}

// List prints the roster, grouped the same way the interactive view
// groups it
func List(opts ListOptions) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx, cancel := requestContext()
	defer cancel()

	if err := rt.store.Load(ctx); err != nil {
		return err
	}

	query := view.NewQuery()
	query.Search = opts.Search
	if opts.Label != "" {
		query.Label = opts.Label
	}
	if opts.Status != "" {
		query.Status = opts.Status
	}

	projection := view.NewEngine().Project(rt.store.Accounts(), query)

	if opts.JSON {
		data, err := json.MarshalIndent(projection.Filtered, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	for _, group := range projection.Groups {
		fmt.Println(group.Letter)
		for _, account := range group.Accounts {
			fmt.Printf("  %-40s %-10s %s\n", account.NetflixEmail, account.Label, account.Status)
		}
	}

	s := projection.Summary
	fmt.Printf("\n%d accounts · %d active · %d inactive · %d bulanan · %d mingguan\n",
		s.Total, s.Active, s.Inactive, s.Bulanan, s.Mingguan)
	return nil
}

// Open asks the remote to launch a session for the account with the given
// email
func Open(email string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx, cancel := requestContext()
	defer cancel()

	if err := rt.store.Load(ctx); err != nil {
		return err
	}

	var target *types.Account
	for _, account := range rt.store.Accounts() {
		if strings.EqualFold(account.NetflixEmail, email) {
			target = &account
			break
		}
	}
	if target == nil {
		return fmt.Errorf("no account with email %q", email)
	}

	if err := rt.store.Open(ctx, target.ID); err != nil {
		rt.log(history.KindLaunch, target.NetflixEmail, err.Error(), false)
		return err
	}

	rt.log(history.KindLaunch, target.NetflixEmail, "", true)
	fmt.Printf("Opened %s.\n", target.NetflixEmail)
	return nil
}

// History prints the recent activity log
func History(limit int) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	if rt.history == nil {
		return fmt.Errorf("activity log unavailable")
	}

	entries, err := rt.history.Load(limit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No activity recorded.")
		return nil
	}

	for _, entry := range entries {
		outcome := "ok"
		if !entry.OK {
			outcome = "failed"
		}
		fmt.Fprintf(os.Stdout, "%s  %-8s %-30s %-6s %s\n",
			entry.Timestamp.Local().Format("2006-01-02 15:04"),
			entry.Kind, entry.AccountEmail, outcome, entry.Detail)
	}
	return nil
}
