package cmd

import (
	"time"

	"github.com/pulsehq/pulse/internal/config"
	"github.com/pulsehq/pulse/internal/habit"
	"github.com/pulsehq/pulse/internal/store"
	"github.com/pulsehq/pulse/internal/streak"
)

// userSession bundles the open database and the logged-in user's blob for
// a single command invocation.
type userSession struct {
	username string
	cfg      *config.Config
	db       *store.DB
	data     *habit.UserData
}

// refreshStreaks recomputes every habit's cached streak record.
func (s *userSession) refreshStreaks() {
	streak.RefreshAll(s.data, time.Now())
}

// withUserData loads the logged-in user's blob, runs fn, and saves the
// blob back when fn succeeds.
func withUserData(fn func(*userSession) error) error {
	return runSession(fn, true)
}

// withUserDataReadOnly loads the blob without saving it afterwards.
func withUserDataReadOnly(fn func(*userSession) error) error {
	return runSession(fn, false)
}

func runSession(fn func(*userSession) error, save bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	username, db, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	data, err := db.Load(username)
	if err != nil {
		return err
	}

	s := &userSession{username: username, cfg: cfg, db: db, data: data}
	if err := fn(s); err != nil {
		return err
	}
	if save {
		return db.Save(username, data)
	}
	return nil
}
