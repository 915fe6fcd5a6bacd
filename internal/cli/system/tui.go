package system

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/habitforge/habitctl/internal/cli"
	"github.com/habitforge/habitctl/internal/tui"
)

type TuiCmd struct{}

// Run launches the interactive dashboard. It requires a fully onboarded
// session; the habit views are only reachable from that state.
func (c *TuiCmd) Run(appCtx *cli.Context) error {
	if err := appCtx.RequireOnboarded(context.Background()); err != nil {
		return err
	}

	model := tui.New(appCtx.Session, appCtx.Engine)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
