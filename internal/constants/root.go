package constants

import "time"

// Stage represents the current position in the authentication and
// onboarding lifecycle
type Stage int

// DashboardState represents the current state of the TUI dashboard
type DashboardState int

const (
	AppName           = "habitctl"
	Version           = "v0.2.0"
	KeyringTokenUser  = "api-token"
	SessionFileName   = "session.json"
	DefaultAPIBaseURL = "http://localhost:8080"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DefaultReminderTime is suggested when the user enables a reminder
	// without having picked a time yet. It is never applied silently.
	DefaultReminderTime = "08:00"

	VerificationCodeLength = 6
	MinPasswordLength      = 6

	// WelcomeBackAfter is how long since the last login before the daily
	// check-in nudge is shown again.
	WelcomeBackAfter = 24 * time.Hour

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "habitctl-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.habitforge.habitctl"
)

// Onboarding stages, in the fixed order the user moves through them
const (
	StageUnauthenticated Stage = iota
	StageNeedsEmail
	StageNeedsVerification
	StageNeedsUsername
	StageNeedsPicture
	StageOnboarded
)

// Dashboard states
const (
	StateList DashboardState = iota
	StateAddHabit
	StateEditHabit
	StatePickTime
	StateConfirmDelete
)
