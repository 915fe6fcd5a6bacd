// Package validation implements the local input checks that run before any
// network call. A failed check is reported to the user and leaves all state
// untouched.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/habitforge/habitctl/internal/constants"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	codePattern  = regexp.MustCompile(`^\d{6}$`)
)

// HabitTitle checks that a habit title is non-empty after trimming.
func HabitTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("habit title cannot be empty")
	}
	return nil
}

// TargetDays checks that the target is a positive number of days.
func TargetDays(days int) error {
	if days <= 0 {
		return fmt.Errorf("target days must be a positive number, got %d", days)
	}
	return nil
}

// ReminderTime checks that a reminder time is in HH:MM format.
func ReminderTime(timeStr string) error {
	if _, err := time.Parse(constants.TimeFormat, timeStr); err != nil {
		return fmt.Errorf("invalid reminder time %q (expected HH:MM)", timeStr)
	}
	return nil
}

// Email checks that an address is plausibly an email address.
func Email(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email address %q", email)
	}
	return nil
}

// VerificationCode checks that a code is the expected 6-digit form.
func VerificationCode(code string) error {
	if !codePattern.MatchString(code) {
		return fmt.Errorf("verification code must be %d digits", constants.VerificationCodeLength)
	}
	return nil
}

// Password checks the minimum password length.
func Password(password string) error {
	if len(password) < constants.MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", constants.MinPasswordLength)
	}
	return nil
}

// Credentials checks that neither username nor password is blank.
func Credentials(username, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return fmt.Errorf("username and password cannot be empty")
	}
	return nil
}
