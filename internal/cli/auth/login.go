// Package auth holds the commands for the authentication and onboarding
// lifecycle.
package auth

import (
	"context"

	"github.com/charmbracelet/huh"

	"github.com/habitforge/habitctl/internal/cli"
	"github.com/habitforge/habitctl/internal/constants"
)

type LoginCmd struct {
	Username string `short:"u" help:"Username. Prompted for when omitted."`
	Password string `short:"p" help:"Password. Prompted for when omitted."`
}

func (c *LoginCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()

	if c.Username == "" || c.Password == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Username").Value(&c.Username),
				huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&c.Password),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}

	stage, err := appCtx.Session.Login(ctx, c.Username, c.Password)
	if err != nil {
		return err
	}

	if stage == constants.StageNeedsVerification {
		appCtx.Println("A verification code was sent to your email.")
		appCtx.Println("Run 'habitctl verify' to finish logging in.")
		return nil
	}

	appCtx.Printf("Logged in as %s.\n", appCtx.Session.User().Username)
	if stage != constants.StageOnboarded {
		appCtx.Printf("Onboarding incomplete (%s). Next: %s\n", stage, stage.NextStep())
	}
	return nil
}

type SignupCmd struct {
	Username string `arg:"" help:"Username for the new account."`
	Password string `short:"p" help:"Password. Prompted for when omitted."`
}

func (c *SignupCmd) Run(appCtx *cli.Context) error {
	if c.Password == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&c.Password),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}

	if err := appCtx.Session.Signup(context.Background(), c.Username, c.Password); err != nil {
		return err
	}

	appCtx.Println("Account created. Run 'habitctl login' to sign in.")
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(appCtx *cli.Context) error {
	if err := appCtx.Session.Logout(); err != nil {
		return err
	}
	appCtx.Println("Logged out.")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	stage, err := appCtx.Session.Restore(ctx)
	if err != nil {
		return err
	}
	if stage == constants.StageUnauthenticated {
		appCtx.Println("Not logged in.")
		return nil
	}

	user := appCtx.Session.User()
	appCtx.Printf("Username: %s\n", user.Username)
	if user.Email != "" {
		verified := "unverified"
		if user.EmailVerified {
			verified = "verified"
		}
		appCtx.Printf("Email:    %s (%s)\n", user.Email, verified)
	}
	appCtx.Printf("Stage:    %s\n", stage)
	if stage != constants.StageOnboarded {
		appCtx.Printf("Next:     %s\n", stage.NextStep())
	}
	return nil
}
