package main

import (
	"net/http"
	"os"

	"github.com/alecthomas/kong"

	"github.com/habitforge/habitctl/internal/api"
	"github.com/habitforge/habitctl/internal/cli"
	"github.com/habitforge/habitctl/internal/cli/auth"
	"github.com/habitforge/habitctl/internal/cli/habits"
	"github.com/habitforge/habitctl/internal/cli/system"
	"github.com/habitforge/habitctl/internal/config"
	"github.com/habitforge/habitctl/internal/constants"
	"github.com/habitforge/habitctl/internal/engine"
	errs "github.com/habitforge/habitctl/internal/errors"
	"github.com/habitforge/habitctl/internal/logger"
	"github.com/habitforge/habitctl/internal/session"
)

var CLI struct {
	Version kong.VersionFlag
	Debug   bool `help:"Enable debug logging to stderr."`

	Login          auth.LoginCmd          `cmd:"" help:"Log in with username and password."`
	Signup         auth.SignupCmd         `cmd:"" help:"Create a new account."`
	Logout         auth.LogoutCmd         `cmd:"" help:"Log out and discard the stored session."`
	Whoami         auth.WhoamiCmd         `cmd:"" help:"Show the current session."`
	Verify         auth.VerifyCmd         `cmd:"" help:"Submit an email verification code."`
	ResendCode     auth.ResendCodeCmd     `cmd:"" name:"resend-code" help:"Resend the email verification code."`
	EmailLogin     auth.EmailLoginCmd     `cmd:"" name:"email-login" help:"Log in with an email address instead of a username."`
	ForgotPassword auth.ForgotPasswordCmd `cmd:"" name:"forgot-password" help:"Request a password reset code."`
	ResetPassword  auth.ResetPasswordCmd  `cmd:"" name:"reset-password" help:"Reset the password with an emailed code."`
	SetEmail       auth.SetEmailCmd       `cmd:"" name:"set-email" help:"Add an email to the account."`
	SetUsername    auth.SetUsernameCmd    `cmd:"" name:"set-username" help:"Choose a username."`
	SetPicture     auth.SetPictureCmd     `cmd:"" name:"set-picture" help:"Upload a profile picture."`
	SkipPicture    auth.SkipPictureCmd    `cmd:"" name:"skip-picture" help:"Skip the profile picture prompt."`

	Habit  habits.HabitCmd  `cmd:"" help:"Manage habits and habit tracking."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Notify system.NotifyCmd `cmd:"" hidden:"" help:"Send a notification (used internally)."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Terminal client for the HabitForge habit tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load()
	if err != nil {
		errs.Fatal(err)
	}
	if CLI.Debug {
		cfg.Debug = true
	}
	if err := cfg.EnsureConfigDir(); err != nil {
		errs.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.ConfigDir}); err != nil {
		errs.Fatalf("failed to initialize logger: %v", err)
	}

	client := api.New(cfg.APIBaseURL, &http.Client{Timeout: cfg.Timeout})
	controller := session.NewController(client, session.NewStore(cfg.ConfigDir))

	appCtx := &cli.Context{
		Config:  cfg,
		Session: controller,
		Engine:  engine.New(client, controller),
		Out:     os.Stdout,
	}

	if err := ctx.Run(appCtx); err != nil {
		errs.Fatal(err)
	}
}
