package habits

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/habitforge/habitctl/internal/cli"
	"github.com/habitforge/habitctl/internal/constants"
	"github.com/habitforge/habitctl/internal/engine"
	"github.com/habitforge/habitctl/internal/logger"
	"github.com/habitforge/habitctl/internal/notifier"
	"github.com/habitforge/habitctl/internal/validation"
)

type RemindCmd struct {
	Set   RemindSetCmd   `cmd:"" help:"Set a habit's daily reminder time."`
	Off   RemindOffCmd   `cmd:"" help:"Turn a habit's daily reminder off."`
	Watch RemindWatchCmd `cmd:"" help:"Run in the foreground and deliver reminders as they come due."`
}

type RemindSetCmd struct {
	ID   int64  `arg:"" help:"Habit id (see 'habitctl habit list')."`
	Time string `arg:"" optional:"" help:"Reminder time (HH:MM)."`
}

func (c *RemindSetCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RequireOnboarded(ctx); err != nil {
		return err
	}

	// Turning a reminder on without a time means the user picks one; the
	// default is only a suggestion, never applied silently.
	if c.Time == "" {
		c.Time = constants.DefaultReminderTime
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Reminder time (HH:MM)").Value(&c.Time).
					Validate(validation.ReminderTime),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}

	if err := appCtx.Engine.SetReminder(ctx, c.ID, c.Time); err != nil {
		return err
	}
	appCtx.Printf("Daily reminder for habit %d set to %s.\n", c.ID, c.Time)
	return nil
}

type RemindOffCmd struct {
	ID int64 `arg:"" help:"Habit id (see 'habitctl habit list')."`
}

func (c *RemindOffCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RequireOnboarded(ctx); err != nil {
		return err
	}

	if err := appCtx.Engine.ClearReminder(ctx, c.ID); err != nil {
		return err
	}
	appCtx.Printf("Daily reminder for habit %d turned off.\n", c.ID)
	return nil
}

type RemindWatchCmd struct {
	Interval time.Duration `help:"How often to re-check reminder times." default:"1s" hidden:""`
}

func (c *RemindWatchCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RequireOnboarded(ctx); err != nil {
		return err
	}

	if _, err := appCtx.Engine.List(ctx, engine.SortStartDate, engine.FilterAll); err != nil {
		return err
	}

	appCtx.Println("Watching reminders. Press Ctrl+C to stop.")

	notify := notifier.New()
	fired := make(map[int64]string) // habit id -> date already notified

	ticker := engine.NewTicker(c.Interval)
	defer ticker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		ticker.Stop()
	}()

	ticker.Run(func(now time.Time) {
		today := now.Format(constants.DateFormat)
		hhmm := now.Format(constants.TimeFormat)

		for id, reminderAt := range appCtx.Engine.ReminderIndex() {
			if reminderAt != hhmm || fired[id] == today {
				continue
			}
			fired[id] = today

			habit, err := appCtx.Engine.Find(ctx, id)
			if err != nil {
				continue
			}
			if habit.Completed || habit.CheckedInOn(today) {
				continue
			}

			text := fmt.Sprintf("Time to check in: %s (%d/%d days)", habit.Title, habit.CurrentStreak, habit.TargetDays)
			appCtx.Println(text)
			if err := notify.Notify(text); err != nil {
				logger.Warn("Failed to deliver notification", "habit", habit.Title, "error", err)
			}
		}

		// Refresh the reminder index once a minute so edits made elsewhere
		// are picked up.
		if now.Second() == 0 {
			if _, err := appCtx.Engine.List(ctx, engine.SortStartDate, engine.FilterAll); err != nil {
				logger.Warn("Failed to refresh habits", "error", err)
			}
		}
	})

	return nil
}
