package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/login" {
			t.Errorf("Unexpected path %q", r.URL.Path)
		}
		fmt.Fprint(w, `{"token":"aaa.bbb.ccc"}`)
	}))
	defer srv.Close()

	tok, err := New(srv.URL, srv.Client()).Login(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if tok != "aaa.bbb.ccc" {
		t.Errorf("Expected token aaa.bbb.ccc, got %q", tok)
	}
}

func TestLogin_VerificationRequired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		fmt.Fprint(w, `{"partialToken":"pending-123"}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL, srv.Client()).Login(context.Background(), "alice", "secret")

	var verr *VerificationRequiredError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected VerificationRequiredError, got %v", err)
	}
	if verr.PartialToken != "pending-123" {
		t.Errorf("Expected partial token pending-123, got %q", verr.PartialToken)
	}
}

func TestLogin_RejectsNonJWTToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"token":"not-a-jwt"}`)
	}))
	defer srv.Close()

	if _, err := New(srv.URL, srv.Client()).Login(context.Background(), "alice", "secret"); err == nil {
		t.Error("Expected error for token without three segments")
	}
}

func TestErrorMessages_SurfacedVerbatim(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"error field", `{"error":"Username already taken"}`, "Username already taken"},
		{"message field", `{"message":"Habit not found"}`, "Habit not found"},
		{"plain text", `something went sideways`, "something went sideways"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprint(w, tc.body)
			}))
			defer srv.Close()

			err := New(srv.URL, srv.Client()).Signup(context.Background(), "alice", "secret")

			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("Expected *Error, got %v", err)
			}
			if apiErr.Message != tc.want {
				t.Errorf("Expected message %q, got %q", tc.want, apiErr.Message)
			}
			if apiErr.Error() != tc.want {
				t.Errorf("Expected error text %q, got %q", tc.want, apiErr.Error())
			}
		})
	}
}

func TestIsUnauthorized(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{&Error{Status: http.StatusUnauthorized}, true},
		{&Error{Status: http.StatusForbidden}, true},
		{&Error{Status: http.StatusBadRequest}, false},
		{&Error{Status: http.StatusInternalServerError}, false},
		{errors.New("network down"), false},
		{fmt.Errorf("wrapped: %w", &Error{Status: http.StatusUnauthorized}), true},
		{nil, false},
	}

	for _, tc := range cases {
		if got := IsUnauthorized(tc.err); got != tc.want {
			t.Errorf("IsUnauthorized(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestRequestHeaders(t *testing.T) {
	var gotAuth, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	if _, err := New(srv.URL, srv.Client()).SortedHabits(context.Background(), "my-token", "startdate"); err != nil {
		t.Fatalf("SortedHabits failed: %v", err)
	}
	if gotAuth != "Bearer my-token" {
		t.Errorf("Expected bearer header, got %q", gotAuth)
	}
	if gotReqID == "" {
		t.Error("Expected an X-Request-ID header on every request")
	}
}

func TestVerifyCode_PlainTextBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "Email verified")
	}))
	defer srv.Close()

	tok, err := New(srv.URL, srv.Client()).VerifyCode(context.Background(), "a@b.co", "123456")
	if err != nil {
		t.Fatalf("VerifyCode failed: %v", err)
	}
	if tok != "" {
		t.Errorf("Expected no token from plain-text body, got %q", tok)
	}
}

func TestHabitChanges_MarshalJSON(t *testing.T) {
	marshal := func(hc HabitChanges) map[string]json.RawMessage {
		t.Helper()
		raw, err := json.Marshal(hc)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		var m map[string]json.RawMessage
		if err := json.Unmarshal(raw, &m); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		return m
	}

	// Unset fields are omitted entirely.
	m := marshal(HabitChanges{Title: String("Read")})
	if string(m["title"]) != `"Read"` {
		t.Errorf("Expected title field, got %v", m)
	}
	if _, ok := m["targetDays"]; ok {
		t.Error("Expected unset targetDays to be omitted")
	}
	if _, ok := m["reminderTime"]; ok {
		t.Error("Expected unset reminderTime to be omitted")
	}

	// ClearReminder sends an explicit null, distinct from omission.
	m = marshal(HabitChanges{ClearReminder: true})
	if string(m["reminderTime"]) != "null" {
		t.Errorf("Expected explicit null reminderTime, got %q", m["reminderTime"])
	}

	// ClearReminder wins over a set time.
	m = marshal(HabitChanges{ReminderTime: String("08:00"), ClearReminder: true})
	if string(m["reminderTime"]) != "null" {
		t.Errorf("Expected null to win over set time, got %q", m["reminderTime"])
	}
}

func TestHabitChangesIsZero(t *testing.T) {
	if !(HabitChanges{}).IsZero() {
		t.Error("Expected empty changes to be zero")
	}
	if (HabitChanges{ClearReminder: true}).IsZero() {
		t.Error("Expected ClearReminder to count as a change")
	}
	if (HabitChanges{Completed: Bool(true)}).IsZero() {
		t.Error("Expected Completed to count as a change")
	}
}
