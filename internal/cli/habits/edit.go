package habits

import (
	"context"

	"github.com/habitforge/habitctl/internal/api"
	"github.com/habitforge/habitctl/internal/cli"
)

type HabitEditCmd struct {
	ID            int64  `arg:"" help:"Habit id (see 'habitctl habit list')."`
	Title         string `help:"New title."`
	TargetDays    int    `short:"t" help:"New target days." default:"0"`
	Completed     *bool  `help:"Mark the habit completed (--completed=false reopens it)."`
	ReminderTime  string `short:"r" help:"New daily reminder time (HH:MM)."`
	ClearReminder bool   `help:"Remove the daily reminder."`
}

func (c *HabitEditCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RequireOnboarded(ctx); err != nil {
		return err
	}

	changes := api.HabitChanges{
		Completed:     c.Completed,
		ClearReminder: c.ClearReminder,
	}
	if c.Title != "" {
		changes.Title = api.String(c.Title)
	}
	if c.TargetDays != 0 {
		changes.TargetDays = api.Int(c.TargetDays)
	}
	if c.ReminderTime != "" && !c.ClearReminder {
		changes.ReminderTime = api.String(c.ReminderTime)
	}

	if err := appCtx.Engine.Edit(ctx, c.ID, changes); err != nil {
		return err
	}

	appCtx.Printf("Habit %d updated.\n", c.ID)
	return nil
}
