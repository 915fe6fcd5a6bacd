// Package session owns the authentication lifecycle: where the token and
// cached user live, and how the user moves through onboarding.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zalando/go-keyring"

	"github.com/habitforge/habitctl/internal/constants"
	"github.com/habitforge/habitctl/internal/models"
)

// ErrNoToken is returned when no token is stored.
var ErrNoToken = errors.New("no stored token")

// Store persists the session across runs: the bearer token in the OS
// keyring, everything else in a single JSON document under the config dir.
type Store struct {
	dir     string
	service string
}

// sessionFile is the on-disk shape of session.json.
type sessionFile struct {
	User         *models.User `json:"user,omitempty"`
	PendingEmail string       `json:"pendingEmail,omitempty"`
	LastLoginAt  int64        `json:"lastLoginAt,omitempty"` // Unix seconds
}

// NewStore creates a store rooted at the given config directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir, service: constants.AppName}
}

// Token retrieves the bearer token from the keyring.
func (s *Store) Token() (string, error) {
	tok, err := keyring.Get(s.service, constants.KeyringTokenUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("failed to read token from keyring: %w", err)
	}
	return tok, nil
}

// SaveToken stores the bearer token in the keyring.
func (s *Store) SaveToken(tok string) error {
	if tok == "" {
		return errors.New("token cannot be empty")
	}
	if err := keyring.Set(s.service, constants.KeyringTokenUser, tok); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}
	return nil
}

// DeleteToken removes the token from the keyring. A missing entry is not an
// error.
func (s *Store) DeleteToken() error {
	err := keyring.Delete(s.service, constants.KeyringTokenUser)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete token from keyring: %w", err)
	}
	return nil
}

// User returns the cached user record, or nil if none is cached.
func (s *Store) User() (*models.User, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	return f.User, nil
}

// SaveUser caches the user record. The record is replaced wholesale.
func (s *Store) SaveUser(u models.User) error {
	return s.update(func(f *sessionFile) { f.User = &u })
}

// PendingEmail returns the email awaiting verification, if any.
func (s *Store) PendingEmail() (string, error) {
	f, err := s.load()
	if err != nil {
		return "", err
	}
	return f.PendingEmail, nil
}

// SavePendingEmail records the email awaiting verification.
func (s *Store) SavePendingEmail(email string) error {
	return s.update(func(f *sessionFile) { f.PendingEmail = email })
}

// ClearPendingEmail drops the pending verification email.
func (s *Store) ClearPendingEmail() error {
	return s.update(func(f *sessionFile) { f.PendingEmail = "" })
}

// WelcomeBackDue reports whether the daily nudge should be shown, and
// refreshes the last-login timestamp when it is.
func (s *Store) WelcomeBackDue(now time.Time) (bool, error) {
	f, err := s.load()
	if err != nil {
		return false, err
	}
	last := time.Unix(f.LastLoginAt, 0)
	if f.LastLoginAt != 0 && now.Sub(last) <= constants.WelcomeBackAfter {
		return false, nil
	}
	if err := s.update(func(f *sessionFile) { f.LastLoginAt = now.Unix() }); err != nil {
		return false, err
	}
	return true, nil
}

// Clear wipes the whole session: keyring entry and session file.
func (s *Store) Clear() error {
	if err := s.DeleteToken(); err != nil {
		return err
	}
	err := os.Remove(s.path())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

func (s *Store) path() string {
	return filepath.Join(s.dir, constants.SessionFileName)
}

func (s *Store) load() (sessionFile, error) {
	var f sessionFile
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return f, fmt.Errorf("failed to read session file: %w", err)
	}
	if err := json.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("failed to parse session file: %w", err)
	}
	return f, nil
}

func (s *Store) update(mutate func(*sessionFile)) error {
	f, err := s.load()
	if err != nil {
		return err
	}
	mutate(&f)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session file: %w", err)
	}
	if err := os.WriteFile(s.path(), data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}
