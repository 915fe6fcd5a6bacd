package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/habitforge/habitctl/internal/validation"
)

type HabitFormModel struct {
	Title      string
	TargetDays string
}

type TimeFormModel struct {
	Time string
}

func newHabitForm(f *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Habit title").Value(&f.Title).
				Validate(validation.HabitTitle),
			huh.NewInput().Title("Target days").Value(&f.TargetDays).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil {
						return fmt.Errorf("target days must be a number")
					}
					return validation.TargetDays(n)
				}),
		),
	)
}

func newTimeForm(f *TimeFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Reminder time (HH:MM)").Value(&f.Time).
				Validate(validation.ReminderTime),
		),
	)
}
