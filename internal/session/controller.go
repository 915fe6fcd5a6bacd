package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/habitforge/habitctl/internal/api"
	"github.com/habitforge/habitctl/internal/constants"
	"github.com/habitforge/habitctl/internal/logger"
	"github.com/habitforge/habitctl/internal/models"
	"github.com/habitforge/habitctl/internal/token"
	"github.com/habitforge/habitctl/internal/validation"
)

// ErrSessionExpired is returned when a stored session can no longer be used
// and has been discarded.
var ErrSessionExpired = errors.New("session expired, please log in again")

// ErrNotLoggedIn is returned by operations that need an active session.
var ErrNotLoggedIn = errors.New("not logged in")

// Purpose distinguishes why a verification code is being submitted.
type Purpose int

const (
	// PurposeLogin completes authentication and proceeds to onboarding.
	PurposeLogin Purpose = iota
	// PurposeReset only proves ownership of the email; the caller proceeds
	// to ResetPassword and the live session is untouched.
	PurposeReset
)

// Controller is the session state machine. Every operation lands in a
// defined stage; there is no partially-applied session.
type Controller struct {
	client *api.Client
	store  *Store
	now    func() time.Time

	stage constants.Stage
	user  *models.User
}

// NewController wires the controller to its API client and store.
func NewController(client *api.Client, store *Store) *Controller {
	return &Controller{
		client: client,
		store:  store,
		now:    time.Now,
		stage:  constants.StageUnauthenticated,
	}
}

// Stage returns the current lifecycle stage.
func (c *Controller) Stage() constants.Stage { return c.stage }

// User returns the current user record, or nil before authentication.
func (c *Controller) User() *models.User { return c.user }

// Token returns the active bearer token for authorizing habit operations.
func (c *Controller) Token() (string, error) {
	if c.stage == constants.StageUnauthenticated {
		return "", ErrNotLoggedIn
	}
	return c.store.Token()
}

// Store exposes the underlying session store.
func (c *Controller) Store() *Store { return c.store }

// RequireOnboarded returns an error naming the next onboarding step unless
// the session has full dashboard access.
func (c *Controller) RequireOnboarded() error {
	if c.stage == constants.StageOnboarded {
		return nil
	}
	if c.stage == constants.StageUnauthenticated {
		return ErrNotLoggedIn
	}
	return fmt.Errorf("onboarding incomplete (%s): run %q first", c.stage, c.stage.NextStep())
}

// Restore rebuilds the session from persisted state at startup. A missing
// token leaves the controller unauthenticated with no error; an expired or
// rejected token is discarded and reported as ErrSessionExpired.
func (c *Controller) Restore(ctx context.Context) (constants.Stage, error) {
	tok, err := c.store.Token()
	if errors.Is(err, ErrNoToken) {
		c.stage = constants.StageUnauthenticated
		return c.stage, nil
	}
	if err != nil {
		c.stage = constants.StageUnauthenticated
		return c.stage, err
	}

	if token.IsExpired(tok, c.now()) {
		logger.Warn("Stored token expired, clearing session")
		return c.forceLogout(), ErrSessionExpired
	}

	user, err := c.client.CurrentUser(ctx, tok)
	if err != nil {
		if api.IsUnauthorized(err) {
			logger.Warn("Stored token rejected by server, clearing session")
			return c.forceLogout(), ErrSessionExpired
		}
		// Anything else: stay logged out but keep nothing half-open.
		c.stage = constants.StageUnauthenticated
		return c.stage, fmt.Errorf("failed to restore session: %w", err)
	}

	c.adopt(user)
	return c.stage, nil
}

// Login submits credentials. A verification-required response parks the
// session in StageNeedsVerification with the pending email recorded.
func (c *Controller) Login(ctx context.Context, username, password string) (constants.Stage, error) {
	if err := validation.Credentials(username, password); err != nil {
		return c.stage, err
	}

	tok, err := c.client.Login(ctx, username, password)
	if err != nil {
		var verr *api.VerificationRequiredError
		if errors.As(err, &verr) {
			if err := c.store.SavePendingEmail(verr.PartialToken); err != nil {
				return c.stage, err
			}
			c.stage = constants.StageNeedsVerification
			return c.stage, nil
		}
		c.stage = constants.StageUnauthenticated
		return c.stage, err
	}

	if err := c.store.SaveToken(tok); err != nil {
		return c.stage, err
	}
	return c.fetchAndAdopt(ctx)
}

// Signup creates an account. It does not log in; the caller logs in
// separately.
func (c *Controller) Signup(ctx context.Context, username, password string) error {
	if err := validation.Credentials(username, password); err != nil {
		return err
	}
	return c.client.Signup(ctx, username, password)
}

// SendCode asks the server to email a verification code and records the
// pending email.
func (c *Controller) SendCode(ctx context.Context, email string) error {
	if err := validation.Email(email); err != nil {
		return err
	}
	if err := c.client.SendVerificationCode(ctx, email); err != nil {
		return err
	}
	return c.store.SavePendingEmail(email)
}

// PendingEmail returns the email awaiting verification, if one is recorded.
func (c *Controller) PendingEmail() string {
	email, err := c.store.PendingEmail()
	if err != nil {
		return ""
	}
	return email
}

// VerifyCode submits an emailed code. With PurposeLogin a token is required
// and the session is established; with PurposeReset the session is left
// alone and the caller proceeds to ResetPassword.
func (c *Controller) VerifyCode(ctx context.Context, email, code string, purpose Purpose) (constants.Stage, error) {
	if err := validation.VerificationCode(code); err != nil {
		return c.stage, err
	}

	tok, err := c.client.VerifyCode(ctx, email, code)
	if err != nil {
		return c.stage, err
	}

	if purpose == PurposeReset {
		return c.stage, nil
	}

	if tok == "" {
		// Verified while already holding a session (onboarding): refresh.
		if _, terr := c.store.Token(); terr == nil {
			_ = c.store.ClearPendingEmail()
			return c.fetchAndAdopt(ctx)
		}
		return c.stage, errors.New("no token received from server")
	}

	if err := c.store.SaveToken(tok); err != nil {
		return c.stage, err
	}
	_ = c.store.ClearPendingEmail()
	return c.fetchAndAdopt(ctx)
}

// SetEmail records an email on the account; the server sends a code, so the
// session advances to verification.
func (c *Controller) SetEmail(ctx context.Context, email string) (constants.Stage, error) {
	if err := validation.Email(email); err != nil {
		return c.stage, err
	}
	tok, err := c.Token()
	if err != nil {
		return c.stage, err
	}
	if err := c.client.SetEmail(ctx, tok, email); err != nil {
		if api.IsUnauthorized(err) {
			return c.forceLogout(), ErrSessionExpired
		}
		return c.stage, err
	}
	if err := c.store.SavePendingEmail(email); err != nil {
		return c.stage, err
	}
	return c.fetchAndAdopt(ctx)
}

// SetUsername records the chosen username, adopting the rotated token when
// the server issues one.
func (c *Controller) SetUsername(ctx context.Context, username string) (constants.Stage, error) {
	tok, err := c.Token()
	if err != nil {
		return c.stage, err
	}
	rotated, err := c.client.SetUsername(ctx, tok, username)
	if err != nil {
		if api.IsUnauthorized(err) {
			return c.forceLogout(), ErrSessionExpired
		}
		return c.stage, err
	}
	if rotated != "" {
		if err := c.store.SaveToken(rotated); err != nil {
			return c.stage, err
		}
	}
	return c.fetchAndAdopt(ctx)
}

// UploadPicture uploads a profile picture from the given file path.
func (c *Controller) UploadPicture(ctx context.Context, path string) (constants.Stage, error) {
	tok, err := c.Token()
	if err != nil {
		return c.stage, err
	}
	if c.user == nil {
		return c.stage, ErrNotLoggedIn
	}

	f, err := os.Open(path)
	if err != nil {
		return c.stage, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	return c.uploadPicture(ctx, tok, filepath.Base(path), f)
}

func (c *Controller) uploadPicture(ctx context.Context, tok, filename string, r io.Reader) (constants.Stage, error) {
	if _, err := c.client.UploadProfilePicture(ctx, tok, c.user.Username, filename, r); err != nil {
		if api.IsUnauthorized(err) {
			return c.forceLogout(), ErrSessionExpired
		}
		return c.stage, err
	}
	return c.fetchAndAdopt(ctx)
}

// MarkPrompted records that the user declined to supply a profile picture,
// which satisfies the picture requirement without setting one.
func (c *Controller) MarkPrompted(ctx context.Context) (constants.Stage, error) {
	tok, err := c.Token()
	if err != nil {
		return c.stage, err
	}
	if c.user == nil {
		return c.stage, ErrNotLoggedIn
	}
	if err := c.client.MarkPrompted(ctx, tok, c.user.Username); err != nil {
		if api.IsUnauthorized(err) {
			return c.forceLogout(), ErrSessionExpired
		}
		return c.stage, err
	}
	return c.fetchAndAdopt(ctx)
}

// ForgotPassword starts the out-of-band credential recovery. The live
// session, if any, is untouched.
func (c *Controller) ForgotPassword(ctx context.Context, email string) error {
	if err := validation.Email(email); err != nil {
		return err
	}
	return c.client.ForgotPassword(ctx, email)
}

// ResetPassword completes credential recovery. The live session, if any, is
// untouched.
func (c *Controller) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if err := validation.Password(newPassword); err != nil {
		return err
	}
	return c.client.ResetPassword(ctx, email, code, newPassword)
}

// WelcomeBackDue reports whether the daily check-in nudge should be shown.
func (c *Controller) WelcomeBackDue() bool {
	due, err := c.store.WelcomeBackDue(c.now())
	if err != nil {
		logger.Warn("Failed to read last login time", "error", err)
		return false
	}
	return due
}

// Logout discards the session.
func (c *Controller) Logout() error {
	c.stage = constants.StageUnauthenticated
	c.user = nil
	return c.store.Clear()
}

// ForceLogout discards the session in response to a 401/403 from any API
// call, including habit operations.
func (c *Controller) ForceLogout() constants.Stage {
	return c.forceLogout()
}

func (c *Controller) forceLogout() constants.Stage {
	if err := c.store.Clear(); err != nil {
		logger.Warn("Failed to clear session store", "error", err)
	}
	c.stage = constants.StageUnauthenticated
	c.user = nil
	return c.stage
}

// fetchAndAdopt refetches the user record and re-evaluates the onboarding
// stage. State is replaced wholesale, never merged.
func (c *Controller) fetchAndAdopt(ctx context.Context) (constants.Stage, error) {
	tok, err := c.store.Token()
	if err != nil {
		return c.forceLogout(), err
	}
	user, err := c.client.CurrentUser(ctx, tok)
	if err != nil {
		if api.IsUnauthorized(err) {
			return c.forceLogout(), ErrSessionExpired
		}
		return c.stage, fmt.Errorf("failed to fetch user: %w", err)
	}
	c.adopt(user)
	return c.stage, nil
}

func (c *Controller) adopt(user models.User) {
	c.user = &user
	c.stage = StageFor(user)
	if err := c.store.SaveUser(user); err != nil {
		logger.Warn("Failed to cache user record", "error", err)
	}
}
