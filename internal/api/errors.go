package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a request that reached the server and was rejected. Message holds
// the server's own error text, verbatim, so callers can surface it unchanged.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned %d %s", e.Status, http.StatusText(e.Status))
}

// VerificationRequiredError signals a login that was accepted pending email
// verification (HTTP 202). PartialToken identifies the pending credential.
type VerificationRequiredError struct {
	PartialToken string
}

func (e *VerificationRequiredError) Error() string {
	return "email verification required"
}

// IsUnauthorized reports whether err is a 401 or 403 rejection. These force
// a logout, unlike every other server error.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
	}
	return false
}
