package session

import (
	"errors"
	"testing"
	"time"

	"github.com/zalando/go-keyring"

	"github.com/habitforge/habitctl/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	keyring.MockInit()
	return NewStore(t.TempDir())
}

func TestStore_TokenRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Token(); !errors.Is(err, ErrNoToken) {
		t.Fatalf("Expected ErrNoToken on fresh store, got %v", err)
	}

	if err := s.SaveToken("aaa.bbb.ccc"); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}
	tok, err := s.Token()
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if tok != "aaa.bbb.ccc" {
		t.Errorf("Expected stored token back, got %q", tok)
	}

	if err := s.DeleteToken(); err != nil {
		t.Fatalf("DeleteToken failed: %v", err)
	}
	if _, err := s.Token(); !errors.Is(err, ErrNoToken) {
		t.Errorf("Expected ErrNoToken after delete, got %v", err)
	}

	// Deleting again is not an error.
	if err := s.DeleteToken(); err != nil {
		t.Errorf("Expected idempotent delete, got %v", err)
	}
}

func TestStore_SaveTokenRejectsEmpty(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveToken(""); err == nil {
		t.Error("Expected empty token to be rejected")
	}
}

func TestStore_UserRoundTrip(t *testing.T) {
	s := newTestStore(t)

	u, err := s.User()
	if err != nil {
		t.Fatalf("User failed: %v", err)
	}
	if u != nil {
		t.Errorf("Expected no cached user, got %+v", u)
	}

	want := models.User{Username: "alice", Email: "a@b.co", EmailVerified: true}
	if err := s.SaveUser(want); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}

	u, err = s.User()
	if err != nil {
		t.Fatalf("User failed: %v", err)
	}
	if u == nil || *u != want {
		t.Errorf("Expected cached user %+v, got %+v", want, u)
	}
}

func TestStore_PendingEmail(t *testing.T) {
	s := newTestStore(t)

	if err := s.SavePendingEmail("a@b.co"); err != nil {
		t.Fatalf("SavePendingEmail failed: %v", err)
	}
	email, err := s.PendingEmail()
	if err != nil {
		t.Fatalf("PendingEmail failed: %v", err)
	}
	if email != "a@b.co" {
		t.Errorf("Expected pending email a@b.co, got %q", email)
	}

	if err := s.ClearPendingEmail(); err != nil {
		t.Fatalf("ClearPendingEmail failed: %v", err)
	}
	email, _ = s.PendingEmail()
	if email != "" {
		t.Errorf("Expected cleared pending email, got %q", email)
	}
}

func TestStore_WelcomeBackDue(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	due, err := s.WelcomeBackDue(now)
	if err != nil {
		t.Fatalf("WelcomeBackDue failed: %v", err)
	}
	if !due {
		t.Error("Expected nudge on first run")
	}

	due, err = s.WelcomeBackDue(now.Add(time.Hour))
	if err != nil {
		t.Fatalf("WelcomeBackDue failed: %v", err)
	}
	if due {
		t.Error("Expected no nudge within 24h of last login")
	}

	due, err = s.WelcomeBackDue(now.Add(25 * time.Hour))
	if err != nil {
		t.Fatalf("WelcomeBackDue failed: %v", err)
	}
	if !due {
		t.Error("Expected nudge again after 24h")
	}
}

func TestStore_Clear(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveToken("aaa.bbb.ccc"); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}
	if err := s.SaveUser(models.User{Username: "alice"}); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	if _, err := s.Token(); !errors.Is(err, ErrNoToken) {
		t.Errorf("Expected token gone after clear, got %v", err)
	}
	u, _ := s.User()
	if u != nil {
		t.Errorf("Expected user gone after clear, got %+v", u)
	}
}
