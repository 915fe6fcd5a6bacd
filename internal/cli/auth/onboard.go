package auth

import (
	"context"

	"github.com/habitforge/habitctl/internal/cli"
	"github.com/habitforge/habitctl/internal/constants"
)

type SetEmailCmd struct {
	Email string `arg:"" help:"Email address to add to the account."`
}

func (c *SetEmailCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RestoreSession(ctx); err != nil {
		return err
	}

	if _, err := appCtx.Session.SetEmail(ctx, c.Email); err != nil {
		return err
	}
	appCtx.Printf("Verification code sent to %s. Run 'habitctl verify' to confirm it.\n", c.Email)
	return nil
}

type SetUsernameCmd struct {
	Username string `arg:"" help:"The username to claim."`
}

func (c *SetUsernameCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RestoreSession(ctx); err != nil {
		return err
	}

	stage, err := appCtx.Session.SetUsername(ctx, c.Username)
	if err != nil {
		return err
	}
	appCtx.Printf("Username set to %s.\n", c.Username)
	reportNext(appCtx, stage)
	return nil
}

type SetPictureCmd struct {
	Path string `arg:"" type:"existingfile" help:"Path to the image file to upload."`
}

func (c *SetPictureCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RestoreSession(ctx); err != nil {
		return err
	}

	stage, err := appCtx.Session.UploadPicture(ctx, c.Path)
	if err != nil {
		return err
	}
	appCtx.Println("Profile picture uploaded.")
	reportNext(appCtx, stage)
	return nil
}

// SkipPictureCmd records that the user declined to supply a profile
// picture, which satisfies the onboarding requirement without uploading one.
type SkipPictureCmd struct{}

func (c *SkipPictureCmd) Run(appCtx *cli.Context) error {
	ctx := context.Background()
	if err := appCtx.RestoreSession(ctx); err != nil {
		return err
	}

	stage, err := appCtx.Session.MarkPrompted(ctx)
	if err != nil {
		return err
	}
	appCtx.Println("Profile picture skipped.")
	reportNext(appCtx, stage)
	return nil
}

func reportNext(appCtx *cli.Context, stage constants.Stage) {
	if stage == constants.StageOnboarded {
		appCtx.Println("Onboarding complete. Run 'habitctl habit list' to see your habits.")
	} else if stage != constants.StageUnauthenticated {
		appCtx.Printf("Next: %s\n", stage.NextStep())
	}
}
