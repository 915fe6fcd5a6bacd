package habits

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/habitforge/habitctl/internal/cli"
	"github.com/habitforge/habitctl/internal/validation"
)

type HabitAddCmd struct {
	Title      string `arg:"" optional:"" help:"Habit title."`
	TargetDays int    `short:"t" help:"Number of consecutive days to reach." default:"0"`
}

func (c *HabitAddCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RequireOnboarded(ctx); err != nil {
		return err
	}

	if c.Title == "" || c.TargetDays <= 0 {
		days := ""
		if c.TargetDays > 0 {
			days = strconv.Itoa(c.TargetDays)
		}
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Habit title").Value(&c.Title).
					Validate(validation.HabitTitle),
				huh.NewInput().Title("Target days").Value(&days).
					Validate(func(s string) error {
						n, err := strconv.Atoi(s)
						if err != nil {
							return fmt.Errorf("target days must be a number")
						}
						return validation.TargetDays(n)
					}),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
		c.TargetDays, _ = strconv.Atoi(days)
	}

	if err := appCtx.Engine.Create(ctx, c.Title, c.TargetDays); err != nil {
		return err
	}

	appCtx.Printf("Created habit %q with a %d-day target.\n", c.Title, c.TargetDays)
	return nil
}
