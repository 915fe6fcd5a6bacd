package constants

// String returns a human-readable name for the stage.
func (s Stage) String() string {
	switch s {
	case StageUnauthenticated:
		return "unauthenticated"
	case StageNeedsEmail:
		return "needs email"
	case StageNeedsVerification:
		return "needs email verification"
	case StageNeedsUsername:
		return "needs username"
	case StageNeedsPicture:
		return "needs profile picture"
	case StageOnboarded:
		return "onboarded"
	default:
		return "unknown"
	}
}

// NextStep returns the command the user should run to advance past the stage.
func (s Stage) NextStep() string {
	switch s {
	case StageUnauthenticated:
		return "habitctl login"
	case StageNeedsEmail:
		return "habitctl set-email"
	case StageNeedsVerification:
		return "habitctl verify"
	case StageNeedsUsername:
		return "habitctl set-username"
	case StageNeedsPicture:
		return "habitctl set-picture (or habitctl skip-picture)"
	default:
		return ""
	}
}
