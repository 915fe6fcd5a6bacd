// Package system holds housekeeping and diagnostic commands.
package system

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/zalando/go-keyring"

	"github.com/habitforge/habitctl/internal/cli"
	"github.com/habitforge/habitctl/internal/constants"
)

type DoctorCmd struct{}

// Run checks the pieces habitctl depends on and reports each one.
func (c *DoctorCmd) Run(appCtx *cli.Context) error {
	failures := 0

	// Config dir writable
	if err := appCtx.Config.EnsureConfigDir(); err != nil {
		appCtx.Printf("✗ config dir %s: %v\n", appCtx.Config.ConfigDir, err)
		failures++
	} else {
		appCtx.Printf("✓ config dir %s\n", appCtx.Config.ConfigDir)
	}

	// OS keyring available
	if keyringAvailable() {
		appCtx.Println("✓ OS keyring available")
	} else {
		appCtx.Println("✗ OS keyring unavailable (the token cannot be stored)")
		failures++
	}

	// API reachable
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, appCtx.Config.APIBaseURL+"/api/users/current", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		appCtx.Printf("✗ API %s unreachable: %v\n", appCtx.Config.APIBaseURL, err)
		failures++
	} else {
		resp.Body.Close()
		appCtx.Printf("✓ API %s reachable\n", appCtx.Config.APIBaseURL)
	}

	// Session state
	stage, err := appCtx.Session.Restore(context.Background())
	switch {
	case err != nil:
		appCtx.Printf("• session: %v\n", err)
	case stage == constants.StageUnauthenticated:
		appCtx.Println("• session: not logged in")
	default:
		appCtx.Printf("✓ session: %s (%s)\n", appCtx.Session.User().Username, stage)
	}

	if failures > 0 {
		os.Exit(1)
	}
	return nil
}

// keyringAvailable is a best-effort probe: a not-found read still proves the
// keyring works.
func keyringAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || err == keyring.ErrNotFound
}

// NotifyCmd sends a notification through the tray companion. Used to test
// the delivery path.
type NotifyCmd struct {
	Text string `arg:"" help:"Notification text."`
}

func (c *NotifyCmd) Run(appCtx *cli.Context) error {
	return notifyWithRetries(c.Text)
}

func notifyWithRetries(text string) error {
	var err error
	for attempt := 0; attempt < constants.NotifyMaxRetries; attempt++ {
		if err = notifyOnce(text); err == nil {
			return nil
		}
		time.Sleep(constants.NotifyRetryDelay)
	}
	return fmt.Errorf("notification failed after %d attempts: %w", constants.NotifyMaxRetries, err)
}
