package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pulsehq/pulse/internal/auth"
	"github.com/pulsehq/pulse/internal/config"
	"github.com/pulsehq/pulse/internal/store"
	"github.com/pulsehq/pulse/internal/ui"
)

var errNotLoggedIn = errors.New("not logged in, run: pulse login <username>")

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create a local account",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		password, err := promptPassword("Choose a password: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return errors.New("passwords do not match")
		}

		if err := auth.New(db).Register(args[0], cfg.User.Name, password); err != nil {
			return err
		}
		ui.Ok(fmt.Sprintf("Account %s created. Log in with: pulse login %s", args[0], args[0]))
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in and start a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}

		svc := auth.New(db)
		name, err := svc.Login(args[0], password)
		if err != nil {
			return err
		}
		token, err := svc.NewSession(args[0])
		if err != nil {
			return err
		}
		if err := saveSessionToken(token); err != nil {
			return err
		}
		ui.Ok(fmt.Sprintf("Welcome back, %s!", name))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if token, err := loadSessionToken(); err == nil {
			if err := auth.New(db).DeleteSession(token); err != nil {
				ui.Warn(err.Error())
			}
		}
		if err := removeSessionToken(); err != nil {
			return err
		}
		ui.Ok("Logged out.")
		return nil
	},
}

// sessionUser resolves the saved session token to a username.
func sessionUser(db *store.DB) (string, error) {
	token, err := loadSessionToken()
	if err != nil {
		return "", errNotLoggedIn
	}
	username, err := auth.New(db).ValidateSession(token)
	if err != nil {
		removeSessionToken()
		return "", errNotLoggedIn
	}
	return username, nil
}

func saveSessionToken(token string) error {
	paths := config.GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return err
	}
	return os.WriteFile(paths.SessionFile, []byte(token), 0o600)
}

func loadSessionToken() (string, error) {
	data, err := os.ReadFile(config.GetPaths().SessionFile)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func removeSessionToken() error {
	err := os.Remove(config.GetPaths().SessionFile)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// promptPassword reads a password without echo. Falls back to PULSE_PASSWORD
// for non-interactive use.
func promptPassword(prompt string) (string, error) {
	if v := os.Getenv("PULSE_PASSWORD"); v != "" {
		return v, nil
	}
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(raw), nil
}

// resolvePassphrase returns the at-rest encryption passphrase.
func resolvePassphrase() (string, error) {
	if v := os.Getenv("PULSE_PASSPHRASE"); v != "" {
		return v, nil
	}
	return promptPassword("Data passphrase: ")
}
