package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/studiowebux/accli/internal/cli"
	"github.com/studiowebux/accli/internal/config"
	"github.com/studiowebux/accli/internal/tui"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "accli",
	Short: "accli - Netflix account roster manager",
	Long: `accli manages a roster of Netflix credential profiles against a remote
account service.

Run without arguments to start the interactive TUI. Subcommands cover
scripted use: login, list, open, and the activity log.

Examples:
  accli                                # Start interactive TUI
  accli login -u name@example.com      # Sign in (prompts for password via flag)
  accli list --label bulanan           # List monthly accounts
  accli list --status active --json    # Machine-readable listing
  accli open name@example.com          # Launch a session for an account
  accli history                        # Show recent activity
  accli --help                         # Show help`,
	Version: version,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(version)
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the account service",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		if flagEmail == "" || flagPassword == "" {
			return fmt.Errorf("both --email and --password are required")
		}
		return cli.Login(flagEmail, flagPassword)
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a user on the account service",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		if flagEmail == "" || flagPassword == "" {
			return fmt.Errorf("both --email and --password are required")
		}
		return cli.Register(flagEmail, flagPassword)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return cli.Logout()
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts, grouped by first letter",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return cli.List(cli.ListOptions{
			Search: flagSearch,
			Label:  flagLabel,
			Status: flagStatus,
			JSON:   flagJSON,
		})
	},
}

var openCmd = &cobra.Command{
	Use:   "open <email>",
	Short: "Launch a session for the account with the given email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return cli.Open(args[0])
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return cli.History(flagLimit)
	},
}

// Flags for login/register
var (
	flagEmail    string
	flagPassword string
)

// Flags for list
var (
	flagSearch string
	flagLabel  string
	flagStatus string
	flagJSON   bool
)

// Flags for history
var (
	flagLimit int
)

func init() {
	loginCmd.Flags().StringVarP(&flagEmail, "email", "u", "", "Account service email")
	loginCmd.Flags().StringVarP(&flagPassword, "password", "p", "", "Account service password")

	registerCmd.Flags().StringVarP(&flagEmail, "email", "u", "", "Account service email")
	registerCmd.Flags().StringVarP(&flagPassword, "password", "p", "", "Account service password")

	listCmd.Flags().StringVarP(&flagSearch, "search", "s", "", "Substring match on email")
	listCmd.Flags().StringVar(&flagLabel, "label", "", "Filter by label (bulanan/mingguan)")
	listCmd.Flags().StringVar(&flagStatus, "status", "", "Filter by status (active/inactive)")
	listCmd.Flags().BoolVar(&flagJSON, "json", false, "Print accounts as JSON")

	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 50, "Number of entries to show")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(historyCmd)
}
