package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func makeToken(t *testing.T, claims Claims) string {
	t.Helper()
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("failed to encode claims: %v", err)
	}
	return "header." + base64.RawURLEncoding.EncodeToString(payload) + ".signature"
}

func TestDecode_RoundTrip(t *testing.T) {
	tok := makeToken(t, Claims{Subject: "alice", IssuedAt: 100, ExpiresAt: 200})

	claims, err := Decode(tok)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if claims.Subject != "alice" {
		t.Errorf("Expected subject alice, got %q", claims.Subject)
	}
	if claims.ExpiresAt != 200 {
		t.Errorf("Expected exp 200, got %d", claims.ExpiresAt)
	}
}

func TestDecode_PaddedPayload(t *testing.T) {
	payload, _ := json.Marshal(Claims{ExpiresAt: 42})
	tok := "h." + base64.URLEncoding.EncodeToString(payload) + ".s"

	claims, err := Decode(tok)
	if err != nil {
		t.Fatalf("Decode failed on padded payload: %v", err)
	}
	if claims.ExpiresAt != 42 {
		t.Errorf("Expected exp 42, got %d", claims.ExpiresAt)
	}
}

func TestDecode_Malformed(t *testing.T) {
	cases := []struct {
		name string
		tok  string
	}{
		{"empty", ""},
		{"two segments", "a.b"},
		{"four segments", "a.b.c.d"},
		{"bad base64", "h.!!!!.s"},
		{"non-json payload", "h." + base64.RawURLEncoding.EncodeToString([]byte("not json")) + ".s"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode(tc.tok); !errors.Is(err, ErrMalformed) {
				t.Errorf("Expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		exp     int64
		expired bool
	}{
		{"future", now.Add(time.Hour).Unix(), false},
		{"past", now.Add(-time.Hour).Unix(), true},
		{"exact boundary counts as expired", now.Unix(), true},
		{"missing exp always expired", 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tok := makeToken(t, Claims{ExpiresAt: tc.exp})
			if got := IsExpired(tok, now); got != tc.expired {
				t.Errorf("IsExpired(exp=%d) = %v, want %v", tc.exp, got, tc.expired)
			}
		})
	}
}

func TestIsExpired_MalformedAlwaysExpired(t *testing.T) {
	if !IsExpired("not-a-token", time.Now()) {
		t.Error("Expected malformed token to be treated as expired")
	}
}
