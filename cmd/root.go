// Package cmd implements the pulse command-line interface.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulsehq/pulse/internal/config"
	"github.com/pulsehq/pulse/internal/habit"
	"github.com/pulsehq/pulse/internal/store"
	"github.com/pulsehq/pulse/internal/streak"
	"github.com/pulsehq/pulse/internal/ui"
	"github.com/pulsehq/pulse/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "pulse",
	Short: "Track habits, streaks, and your day",
	Long:  `pulse keeps your habits, to-dos, and journal in one place and shows you how you're doing.`,
	RunE:  runDashboard,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Err(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(habitCmd)
	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(todoCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// runDashboard shows the at-a-glance status when you just type `pulse`.
func runDashboard(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	username, db, err := openSession(cfg)
	if err != nil {
		fmt.Println(ui.Greet(cfg.User.Name))
		fmt.Println()
		fmt.Printf("  Run %s to create an account, then %s.\n",
			ui.Accent.Render("pulse register <username>"),
			ui.Accent.Render("pulse login <username>"))
		fmt.Println()
		return nil
	}
	defer db.Close()

	data, err := db.Load(username)
	if err != nil {
		return err
	}
	streak.RefreshAll(data, time.Now())

	fmt.Println(ui.Greet(displayName(cfg, username)))
	fmt.Println()

	today := time.Now()
	marked, succeeded := 0, 0
	bestStreak := 0
	bestHabit := ""
	for _, name := range data.Names() {
		if o, ok := data.Outcome(name, today); ok {
			marked++
			if o == habit.Succeeded {
				succeeded++
			}
		}
		if rec := data.Streaks[name]; rec.Current > bestStreak {
			bestStreak = rec.Current
			bestHabit = name
		}
	}

	ui.Kv(ui.IconPulse+"Habits", fmt.Sprintf("%d/%d marked today, %d succeeded", marked, len(data.Habits), succeeded))
	if bestHabit != "" {
		ui.Kv(ui.IconStreak+" Streak", fmt.Sprintf("%s at %d days", bestHabit, bestStreak))
	}
	ui.Kv(ui.IconTodo+" To-dos", fmt.Sprintf("%d open", len(data.Todo.Open())))
	ui.Kv("📅 Today", today.Format("Monday, January 2"))
	ui.Kv("⚙️ Pulse", version.Short())
	fmt.Println()
	return nil
}

func displayName(cfg *config.Config, username string) string {
	if cfg.User.Name != "" {
		return cfg.User.Name
	}
	return username
}

// openDB opens the database with the codec implied by the config.
func openDB(cfg *config.Config) (*store.DB, error) {
	paths := config.GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("creating data dirs: %w", err)
	}

	var codec store.Codec = store.PlainCodec{}
	if cfg.Storage.Encrypt {
		passphrase, err := resolvePassphrase()
		if err != nil {
			return nil, err
		}
		codec = store.AgeCodec{Passphrase: passphrase}
	}
	return store.Open(paths.DBFile, codec)
}

// openSession opens the database and resolves the logged-in user from the
// saved session token.
func openSession(cfg *config.Config) (string, *store.DB, error) {
	db, err := openDB(cfg)
	if err != nil {
		return "", nil, err
	}
	username, err := sessionUser(db)
	if err != nil {
		db.Close()
		return "", nil, err
	}
	return username, db, nil
}
