package auth

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/habitforge/habitctl/internal/cli"
	"github.com/habitforge/habitctl/internal/constants"
	"github.com/habitforge/habitctl/internal/session"
)

type VerifyCmd struct {
	Email string `short:"e" help:"Email the code was sent to. Defaults to the pending login email."`
	Code  string `arg:"" optional:"" help:"The 6-digit code from the email."`
}

func (c *VerifyCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()

	if c.Email == "" {
		c.Email = appCtx.Session.PendingEmail()
	}
	if c.Email == "" {
		return fmt.Errorf("no email provided: pass --email or start the login process again")
	}

	if c.Code == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Verification code").Description("The 6-digit code from " + c.Email).Value(&c.Code),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}

	stage, err := appCtx.Session.VerifyCode(ctx, c.Email, c.Code, session.PurposeLogin)
	if err != nil {
		return err
	}

	appCtx.Println("Email verified.")
	if stage == constants.StageOnboarded {
		appCtx.Printf("Logged in as %s.\n", appCtx.Session.User().Username)
	} else if stage != constants.StageUnauthenticated {
		appCtx.Printf("Onboarding incomplete (%s). Next: %s\n", stage, stage.NextStep())
	}
	return nil
}

type ResendCodeCmd struct {
	Email string `short:"e" help:"Email to send the code to. Defaults to the pending login email."`
}

func (c *ResendCodeCmd) Run(appCtx *cli.Context) error {
	if c.Email == "" {
		c.Email = appCtx.Session.PendingEmail()
	}
	if c.Email == "" {
		return fmt.Errorf("no email provided: pass --email or start the login process again")
	}

	if err := appCtx.Session.SendCode(context.Background(), c.Email); err != nil {
		return err
	}
	appCtx.Printf("A new verification code was sent to %s.\n", c.Email)
	return nil
}

// EmailLoginCmd starts a login with an email address instead of a username:
// the server mails a code, and 'habitctl verify' completes it.
type EmailLoginCmd struct {
	Email string `arg:"" help:"Email address to log in with."`
}

func (c *EmailLoginCmd) Run(appCtx *cli.Context) error {
	if err := appCtx.Session.SendCode(context.Background(), c.Email); err != nil {
		return err
	}
	appCtx.Printf("Verification code sent to %s. Run 'habitctl verify' to finish logging in.\n", c.Email)
	return nil
}
