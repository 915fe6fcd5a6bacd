package habits

import (
	"context"
	"fmt"
	"time"

	"github.com/habitforge/habitctl/internal/cli"
	"github.com/habitforge/habitctl/internal/engine"
)

type HabitCountdownCmd struct {
	ID int64 `arg:"" help:"Habit id (see 'habitctl habit list')."`
}

func (c *HabitCountdownCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RequireOnboarded(ctx); err != nil {
		return err
	}

	habit, err := appCtx.Engine.Find(ctx, c.ID)
	if err != nil {
		return err
	}
	if !habit.HasReminder() {
		return fmt.Errorf("habit %q has no reminder set", habit.Title)
	}

	appCtx.Println(engine.Countdown(time.Now(), habit.ReminderTime))
	return nil
}
