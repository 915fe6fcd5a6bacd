package habits

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/habitforge/habitctl/internal/cli"
)

type HabitDeleteCmd struct {
	ID  int64 `arg:"" help:"Habit id (see 'habitctl habit list')."`
	Yes bool  `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RequireOnboarded(ctx); err != nil {
		return err
	}

	habit, err := appCtx.Engine.Find(ctx, c.ID)
	if err != nil {
		return err
	}

	// Deleting is two-phase: confirm first, then commit.
	if !c.Yes {
		confirmed := false
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Delete habit %q?", habit.Title)).
					Description("This cannot be undone.").
					Value(&confirmed),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			appCtx.Println("Cancelled.")
			return nil
		}
	}

	if err := appCtx.Engine.Delete(ctx, c.ID); err != nil {
		return err
	}

	appCtx.Printf("Deleted habit %q.\n", habit.Title)
	return nil
}
