package platform

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rently-vn/rently/internal/errors"
	"github.com/rently-vn/rently/internal/session"
)

// loginRequest is the body of POST /auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse accepts both token field-name variants alongside the
// optional role and user the backend may return.
type loginResponse struct {
	AccessToken      string        `json:"accessToken"`
	AccessTokenSnake string        `json:"access_token"`
	Role             string        `json:"role"`
	User             *session.User `json:"user"`
}

func (r loginResponse) token() string {
	if r.AccessToken != "" {
		return r.AccessToken
	}
	return r.AccessTokenSnake
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"fullName,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// MessageResponse is the generic `{message}` acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// Login exchanges credentials for a session. A rejected login surfaces the
// backend's message; a 2xx response without a token is a contract violation
// and fails hard. The caller (the session manager) persists the result.
//
// Login bypasses the refresh cycle: a 401 here means wrong credentials, not
// an expired token.
func (c *Client) Login(ctx context.Context, email, password string) (*session.LoginResult, error) {
	resp, err := c.doPublic(ctx, http.MethodPost, "/auth/login", loginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return nil, errors.NewCredentialRejectedError(errResp.text())
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIDecode, "cannot decode login response", err)
	}

	token := lr.token()
	if token == "" {
		return nil, errors.NewMissingTokenError("/auth/login")
	}

	return &session.LoginResult{
		AccessToken: token,
		Role:        lr.Role,
		User:        lr.User,
	}, nil
}

// Logout invalidates the session server-side. The response body is ignored;
// the caller clears the local session regardless of the outcome here.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	if err != nil {
		return err
	}
	return parseResponse(resp, nil)
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*MessageResponse, error) {
	resp, err := c.doPublic(ctx, http.MethodPost, "/auth/register", req)
	if err != nil {
		return nil, err
	}

	var msg MessageResponse
	if err := parseResponse(resp, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// SendOTP asks the backend to deliver a one-time code for the given flow
// (e.g. "register", "reset-password").
func (c *Client) SendOTP(ctx context.Context, email, otpType string) (*MessageResponse, error) {
	resp, err := c.doPublic(ctx, http.MethodPost, "/auth/send-otp", map[string]string{
		"email": email,
		"type":  otpType,
	})
	if err != nil {
		return nil, err
	}

	var msg MessageResponse
	if err := parseResponse(resp, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// VerifyOTP checks a one-time code.
func (c *Client) VerifyOTP(ctx context.Context, email, otpType, otp string) (*MessageResponse, error) {
	resp, err := c.doPublic(ctx, http.MethodPost, "/auth/verify-otp", map[string]string{
		"email": email,
		"type":  otpType,
		"otp":   otp,
	})
	if err != nil {
		return nil, err
	}

	var msg MessageResponse
	if err := parseResponse(resp, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ResetPassword sets a new password after OTP verification.
func (c *Client) ResetPassword(ctx context.Context, email, newPassword string) (*MessageResponse, error) {
	resp, err := c.doPublic(ctx, http.MethodPost, "/auth/reset-password", map[string]string{
		"email":       email,
		"newPassword": newPassword,
	})
	if err != nil {
		return nil, err
	}

	var msg MessageResponse
	if err := parseResponse(resp, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ChangePassword rotates the password of the logged-in user.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) (*MessageResponse, error) {
	resp, err := c.do(ctx, http.MethodPost, "/auth/change-password", nil, map[string]string{
		"oldPassword": oldPassword,
		"newPassword": newPassword,
	})
	if err != nil {
		return nil, err
	}

	var msg MessageResponse
	if err := parseResponse(resp, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
