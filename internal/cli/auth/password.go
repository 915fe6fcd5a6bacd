package auth

import (
	"context"

	"github.com/charmbracelet/huh"

	"github.com/habitforge/habitctl/internal/cli"
)

type ForgotPasswordCmd struct {
	Email string `arg:"" help:"Email of the account to recover."`
}

func (c *ForgotPasswordCmd) Run(appCtx *cli.Context) error {
	if err := appCtx.Session.ForgotPassword(context.Background(), c.Email); err != nil {
		return err
	}
	appCtx.Printf("A reset code was sent to %s. Run 'habitctl reset-password %s' to continue.\n", c.Email, c.Email)
	return nil
}

type ResetPasswordCmd struct {
	Email    string `arg:"" help:"Email of the account to recover."`
	Code     string `short:"c" help:"Reset code from the email. Prompted for when omitted."`
	Password string `short:"p" help:"New password. Prompted for when omitted."`
}

func (c *ResetPasswordCmd) Run(appCtx *cli.Context) error {
	if c.Code == "" || c.Password == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Reset code").Value(&c.Code),
				huh.NewInput().Title("New password").EchoMode(huh.EchoModePassword).Value(&c.Password),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}

	if err := appCtx.Session.ResetPassword(context.Background(), c.Email, c.Code, c.Password); err != nil {
		return err
	}
	appCtx.Println("Password reset successful. Run 'habitctl login' to sign in.")
	return nil
}
