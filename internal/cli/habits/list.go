// Package habits holds the commands for managing habits and habit tracking.
package habits

import (
	"context"

	"github.com/habitforge/habitctl/internal/cli"
	"github.com/habitforge/habitctl/internal/engine"
)

type HabitCmd struct {
	List      HabitListCmd      `cmd:"" help:"List habits."`
	Add       HabitAddCmd       `cmd:"" help:"Create a new habit."`
	Edit      HabitEditCmd      `cmd:"" help:"Edit an existing habit."`
	Delete    HabitDeleteCmd    `cmd:"" help:"Delete a habit."`
	CheckIn   HabitCheckInCmd   `cmd:"" name:"check-in" help:"Record today's check-in for a habit."`
	Remind    RemindCmd         `cmd:"" help:"Manage daily reminders."`
	Countdown HabitCountdownCmd `cmd:"" help:"Show time until a habit's next reminder."`
}

type HabitListCmd struct {
	Sort   string `short:"s" help:"Sort order: startdate, streak, or completed." default:"startdate"`
	Filter string `short:"f" help:"Filter: all, active, or completed." default:"all"`
}

func (c *HabitListCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RequireOnboarded(ctx); err != nil {
		return err
	}

	sortBy, err := engine.ParseSortBy(c.Sort)
	if err != nil {
		return err
	}
	filter, err := engine.ParseFilter(c.Filter)
	if err != nil {
		return err
	}

	if appCtx.Session.WelcomeBackDue() {
		appCtx.Println("Welcome back! Remember to check in on your habits daily.")
	}

	habits, err := appCtx.Engine.List(ctx, sortBy, filter)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		appCtx.Println("No habits found. Add one with 'habitctl habit add'.")
		return nil
	}

	today := appCtx.Engine.Today()
	for _, h := range habits {
		appCtx.Println(cli.FormatHabit(h, today))
	}
	return nil
}
