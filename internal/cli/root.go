package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/habitforge/habitctl/internal/config"
	"github.com/habitforge/habitctl/internal/engine"
	"github.com/habitforge/habitctl/internal/models"
	"github.com/habitforge/habitctl/internal/session"
)

// Context carries the shared application state into every command.
type Context struct {
	Config  config.Config
	Session *session.Controller
	Engine  *engine.Engine
	Out     io.Writer
}

// Printf writes command output.
func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

// Println writes a line of command output.
func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Out, args...)
}

// RequireOnboarded restores the session and refuses the command unless it
// has full dashboard access, naming the next onboarding step otherwise.
func (c *Context) RequireOnboarded(ctx context.Context) error {
	if _, err := c.Session.Restore(ctx); err != nil {
		return err
	}
	return c.Session.RequireOnboarded()
}

// RestoreSession restores the session without requiring full onboarding.
func (c *Context) RestoreSession(ctx context.Context) error {
	_, err := c.Session.Restore(ctx)
	return err
}

// FormatHabit renders one habit as a list line.
func FormatHabit(h models.Habit, today string) string {
	var b strings.Builder

	status := " "
	switch {
	case h.Completed:
		status = "✓"
	case h.CheckedInOn(today):
		status = "•"
	}
	fmt.Fprintf(&b, "#%-4d [%s] %-28s %d/%d days", h.ID, status, h.Title, h.CurrentStreak, h.TargetDays)

	if h.Completed {
		b.WriteString("  completed")
	}
	if h.HasReminder() {
		fmt.Fprintf(&b, "  reminder %s", h.ReminderTime)
	}
	if h.LastCheckInDate != "" {
		fmt.Fprintf(&b, "  last check-in %s", h.LastCheckInDate)
	}

	return b.String()
}
