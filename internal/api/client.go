// Package api implements the REST client for the HabitForge server. Every
// call is a single request with no retries and no cancellation beyond the
// caller's context; a slow response simply resolves late.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/habitforge/habitctl/internal/logger"
	"github.com/habitforge/habitctl/internal/models"
)

// Client talks to the HabitForge API. The bearer token is supplied per call
// by the session layer; the client itself is stateless.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a client for the given base URL. If httpc is nil,
// http.DefaultClient is used.
func New(baseURL string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
	}
}

// loginResponse is the success body of POST /api/users/login.
type loginResponse struct {
	Token        string `json:"token"`
	PartialToken string `json:"partialToken"`
}

// tokenResponse covers endpoints that may rotate or issue a token.
type tokenResponse struct {
	Token string `json:"token"`
}

// Signup creates an account. It does not log the user in.
func (c *Client) Signup(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	resp, err := c.do(ctx, http.MethodPost, "/api/users/signup", "", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// Login exchanges credentials for a bearer token. A 202 response means the
// account's email is not yet verified and is returned as a
// *VerificationRequiredError carrying the partial credential.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	resp, err := c.do(ctx, http.MethodPost, "/api/users/login", "", body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusAccepted {
		var lr loginResponse
		if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
			return "", fmt.Errorf("failed to decode login response: %w", err)
		}
		return "", &VerificationRequiredError{PartialToken: lr.PartialToken}
	}

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return "", fmt.Errorf("failed to decode login response: %w", err)
	}
	if lr.Token == "" || len(strings.Split(lr.Token, ".")) != 3 {
		return "", fmt.Errorf("invalid token received from server")
	}
	return lr.Token, nil
}

// CurrentUser fetches the authenticated user record.
func (c *Client) CurrentUser(ctx context.Context, tok string) (models.User, error) {
	var user models.User
	resp, err := c.do(ctx, http.MethodGet, "/api/users/current", tok, nil)
	if err != nil {
		return user, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return user, err
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return user, fmt.Errorf("failed to decode user: %w", err)
	}
	return user, nil
}

// SendVerificationCode asks the server to email a fresh code.
func (c *Client) SendVerificationCode(ctx context.Context, email string) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/users/send-verification-code", "", map[string]string{"email": email})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// VerifyCode submits an emailed code. In the login flow the response carries
// a full token; in the password-reset flow it does not, and the returned
// token is empty.
func (c *Client) VerifyCode(ctx context.Context, email, code string) (string, error) {
	body := map[string]string{"email": email, "code": code}
	resp, err := c.do(ctx, http.MethodPost, "/api/users/verify-code", "", body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var tr tokenResponse
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read verify response: %w", err)
	}
	// The body may be a plain confirmation string rather than JSON.
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &tr); err != nil {
			return "", fmt.Errorf("failed to decode verify response: %w", err)
		}
	}
	return tr.Token, nil
}

// ForgotPassword asks the server to email a password reset code.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/users/forgot-password", "", map[string]string{"email": email})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// ResetPassword completes the out-of-band password reset.
func (c *Client) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	body := map[string]string{"email": email, "code": code, "newPassword": newPassword}
	resp, err := c.do(ctx, http.MethodPost, "/api/users/reset-password", "", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// SetEmail records an email on the account and triggers a verification code.
func (c *Client) SetEmail(ctx context.Context, tok, email string) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/users/set-email", tok, map[string]string{"email": email})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// SetUsername records the chosen username. The server may rotate the token
// (the subject changes); when it does, the new token is returned.
func (c *Client) SetUsername(ctx context.Context, tok, username string) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/users/set-username", tok, map[string]string{"username": username})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to decode set-username response: %w", err)
	}
	return tr.Token, nil
}

// MarkPrompted records that the user declined the profile picture prompt.
func (c *Client) MarkPrompted(ctx context.Context, tok, username string) error {
	path := fmt.Sprintf("/api/users/%s/mark-prompted", url.PathEscape(username))
	resp, err := c.do(ctx, http.MethodPut, path, tok, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// UploadProfilePicture sends a multipart image upload and returns the
// updated user fields the server reports back.
func (c *Client) UploadProfilePicture(ctx context.Context, tok, username, filename string, image io.Reader) (models.User, error) {
	var user models.User

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return user, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return user, fmt.Errorf("failed to read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return user, fmt.Errorf("failed to finish upload: %w", err)
	}

	path := fmt.Sprintf("/api/users/%s/upload-profile-picture", url.PathEscape(username))
	req, err := c.newRequest(ctx, http.MethodPost, path, tok, &buf)
	if err != nil {
		return user, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return user, fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return user, err
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil && err != io.EOF {
		return user, fmt.Errorf("failed to decode upload response: %w", err)
	}
	return user, nil
}

// SortedHabits fetches all habits for the current user, ordered server-side.
func (c *Client) SortedHabits(ctx context.Context, tok, sortBy string) ([]models.Habit, error) {
	path := "/api/habits/sorted?sortBy=" + url.QueryEscape(sortBy)
	resp, err := c.do(ctx, http.MethodGet, path, tok, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var habits []models.Habit
	if err := json.NewDecoder(resp.Body).Decode(&habits); err != nil {
		return nil, fmt.Errorf("failed to decode habits: %w", err)
	}
	return habits, nil
}

// CreateHabit submits a new habit.
func (c *Client) CreateHabit(ctx context.Context, tok, title string, targetDays int) error {
	body := map[string]any{"title": title, "targetDays": targetDays}
	resp, err := c.do(ctx, http.MethodPost, "/api/habits/create", tok, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// CheckIn records today's check-in for a habit.
func (c *Client) CheckIn(ctx context.Context, tok string, habitID int64) error {
	path := fmt.Sprintf("/api/habits/%d/check-in", habitID)
	resp, err := c.do(ctx, http.MethodPost, path, tok, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// EditHabit submits a partial edit.
func (c *Client) EditHabit(ctx context.Context, tok string, habitID int64, changes HabitChanges) error {
	path := fmt.Sprintf("/api/habits/%d/edit", habitID)
	resp, err := c.do(ctx, http.MethodPut, path, tok, changes)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

// DeleteHabit removes a habit permanently.
func (c *Client) DeleteHabit(ctx context.Context, tok string, habitID int64) error {
	path := fmt.Sprintf("/api/habits/%d", habitID)
	resp, err := c.do(ctx, http.MethodDelete, path, tok, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

func (c *Client) newRequest(ctx context.Context, method, path, tok string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("X-Request-ID", uuid.New().String())
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return req, nil
}

// do issues a JSON request. A nil body sends no payload.
func (c *Client) do(ctx context.Context, method, path, tok string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, path, tok, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		logger.Debug("Request failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// checkStatus converts a non-2xx response into an *Error carrying the
// server's message verbatim. The body is consumed either way.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	raw, _ := io.ReadAll(resp.Body)
	msg := strings.TrimSpace(string(raw))

	// Structured errors come as {"error": ...} or {"message": ...}.
	var structured struct {
		ErrorMsg string `json:"error"`
		Message  string `json:"message"`
	}
	if json.Unmarshal(raw, &structured) == nil {
		if structured.ErrorMsg != "" {
			msg = structured.ErrorMsg
		} else if structured.Message != "" {
			msg = structured.Message
		}
	}

	return &Error{Status: resp.StatusCode, Message: msg}
}
