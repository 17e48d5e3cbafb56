// Package auth handles local accounts: bcrypt password hashes and
// token-based sessions, both persisted in the store's SQLite database.
package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pulsehq/pulse/internal/store"
)

var (
	ErrUserExists         = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidSession     = errors.New("session is invalid or expired")
	ErrEmptyUsername      = errors.New("username cannot be empty")
	ErrWeakPassword       = errors.New("password must be at least 4 characters")
)

// SessionTTL is how long a session token stays valid.
const SessionTTL = 30 * 24 * time.Hour

// Service performs account and session operations against the store.
type Service struct {
	db *store.DB
}

// New returns a Service backed by the given database.
func New(db *store.DB) *Service {
	return &Service{db: db}
}

// Register creates an account. The display name defaults to the username
// when blank.
func (s *Service) Register(username, name, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrEmptyUsername
	}
	if len(password) < 4 {
		return ErrWeakPassword
	}
	if name = strings.TrimSpace(name); name == "" {
		name = username
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	_, err = s.db.Conn().Exec(
		`INSERT INTO credentials (username, name, password_hash) VALUES (?, ?, ?)`,
		username, name, string(hash))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: %s", ErrUserExists, username)
		}
		return fmt.Errorf("creating account: %w", err)
	}
	return nil
}

// Login verifies a password and returns the account's display name.
// Unknown usernames and wrong passwords report the same error.
func (s *Service) Login(username, password string) (string, error) {
	var name, hash string
	err := s.db.Conn().QueryRow(
		`SELECT name, password_hash FROM credentials WHERE username = ?`,
		username).Scan(&name, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("looking up account: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return name, nil
}

// NewSession issues a fresh session token for a logged-in user.
func (s *Service) NewSession(username string) (string, error) {
	token := uuid.NewString()
	now := time.Now().UTC()
	_, err := s.db.Conn().Exec(
		`INSERT INTO sessions (token, username, created_at, expires_at) VALUES (?, ?, ?, ?)`,
		token, username, now, now.Add(SessionTTL))
	if err != nil {
		return "", fmt.Errorf("creating session: %w", err)
	}
	return token, nil
}

// ValidateSession resolves a token to its username. Expired sessions are
// deleted on sight.
func (s *Service) ValidateSession(token string) (string, error) {
	var username string
	var expiresAt time.Time
	err := s.db.Conn().QueryRow(
		`SELECT username, expires_at FROM sessions WHERE token = ?`,
		token).Scan(&username, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrInvalidSession
	}
	if err != nil {
		return "", fmt.Errorf("looking up session: %w", err)
	}

	if time.Now().UTC().After(expiresAt) {
		s.DeleteSession(token)
		return "", ErrInvalidSession
	}
	return username, nil
}

// DeleteSession revokes a token. Deleting an unknown token is not an error.
func (s *Service) DeleteSession(token string) error {
	_, err := s.db.Conn().Exec(`DELETE FROM sessions WHERE token = ?`, token)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
