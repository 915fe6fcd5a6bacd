package habits

import (
	"context"

	"github.com/habitforge/habitctl/internal/cli"
)

type HabitCheckInCmd struct {
	ID int64 `arg:"" help:"Habit id (see 'habitctl habit list')."`
}

func (c *HabitCheckInCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RequireOnboarded(ctx); err != nil {
		return err
	}

	result, err := appCtx.Engine.CheckIn(ctx, c.ID)
	if err != nil {
		return err
	}

	h := result.Habit
	appCtx.Printf("Checked in on %q: %d/%d days.\n", h.Title, h.CurrentStreak, h.TargetDays)
	if result.CompletedNow {
		appCtx.Println("🎉 Congrats on completing your habit! 🎉")
	}
	return nil
}
