package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rently-vn/rently/internal/errors"
	"github.com/rently-vn/rently/internal/session"
)

func TestLogin(t *testing.T) {
	tests := []struct {
		name      string
		body      map[string]any
		wantToken string
		wantRole  string
		wantUser  bool
	}{
		{
			name:      "camelCase token with role, no user",
			body:      map[string]any{"accessToken": "tok1", "role": "resident"},
			wantToken: "tok1",
			wantRole:  "resident",
		},
		{
			name:      "snake_case token",
			body:      map[string]any{"access_token": "tok2"},
			wantToken: "tok2",
		},
		{
			name: "token with user object",
			body: map[string]any{
				"accessToken": "tok3",
				"role":        "landlord",
				"user":        map[string]any{"email": "u@x.com", "fullName": "U"},
			},
			wantToken: "tok3",
			wantRole:  "landlord",
			wantUser:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/auth/login", r.URL.Path)
				require.Equal(t, http.MethodPost, r.Method)

				var req map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "u@x.com", req["email"])
				assert.Equal(t, "secret", req["password"])

				writeJSON(t, w, http.StatusOK, tt.body)
			}))

			result, err := client.Login(context.Background(), "u@x.com", "secret")
			require.NoError(t, err)

			assert.Equal(t, tt.wantToken, result.AccessToken)
			assert.Equal(t, tt.wantRole, result.Role)
			if tt.wantUser {
				require.NotNil(t, result.User)
				assert.Equal(t, "u@x.com", result.User.Email)
			} else {
				assert.Nil(t, result.User)
			}
		})
	}
}

func TestLoginRejectedSurfacesBackendMessage(t *testing.T) {
	var refreshCalls int32
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh-token" {
			atomic.AddInt32(&refreshCalls, 1)
			return
		}
		writeJSON(t, w, http.StatusUnauthorized, map[string]any{"message": "Invalid credentials"})
	}))

	_, err := client.Login(context.Background(), "u@x.com", "bad")
	require.Error(t, err)
	assert.True(t, errors.IsCredential(err))
	assert.Contains(t, err.Error(), "Invalid credentials")

	// A 401 on login means wrong credentials, never an expired token
	assert.Equal(t, int32(0), atomic.LoadInt32(&refreshCalls))
	assert.Equal(t, "", store.Token())
}

func TestLoginMissingTokenIsHardFailure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 2xx but neither token variant present
		writeJSON(t, w, http.StatusOK, map[string]any{"role": "resident"})
	}))

	_, err := client.Login(context.Background(), "u@x.com", "secret")
	require.Error(t, err)
	assert.True(t, errors.IsMissingToken(err))
	assert.False(t, errors.IsCredential(err))
}

func TestLogout(t *testing.T) {
	var called bool
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/logout", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		called = true
		writeJSON(t, w, http.StatusOK, map[string]any{"message": "bye"})
	}))
	store.SetToken("tok")

	require.NoError(t, client.Logout(context.Background()))
	assert.True(t, called)
}

func TestLogoutServerFailureReturnsError(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusInternalServerError, map[string]any{"message": "boom"})
	}))
	store.SetToken("tok")

	// The manager swallows this; the client itself reports it faithfully
	err := client.Logout(context.Background())
	require.Error(t, err)
}

func TestRegister(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/register", r.URL.Path)

		var req RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "new@x.com", req.Email)

		writeJSON(t, w, http.StatusCreated, map[string]any{"message": "registered"})
	}))

	msg, err := client.Register(context.Background(), RegisterRequest{
		Email:    "new@x.com",
		Password: "secret",
		FullName: "New User",
	})
	require.NoError(t, err)
	assert.Equal(t, "registered", msg.Message)
}

func TestOTPFlow(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		switch r.URL.Path {
		case "/auth/send-otp":
			assert.Equal(t, "reset-password", req["type"])
			writeJSON(t, w, http.StatusOK, map[string]any{"message": "otp sent"})
		case "/auth/verify-otp":
			assert.Equal(t, "123456", req["otp"])
			writeJSON(t, w, http.StatusOK, map[string]any{"message": "otp verified"})
		case "/auth/reset-password":
			assert.Equal(t, "newpass", req["newPassword"])
			writeJSON(t, w, http.StatusOK, map[string]any{"message": "password reset"})
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))

	ctx := context.Background()

	msg, err := client.SendOTP(ctx, "u@x.com", "reset-password")
	require.NoError(t, err)
	assert.Equal(t, "otp sent", msg.Message)

	msg, err = client.VerifyOTP(ctx, "u@x.com", "reset-password", "123456")
	require.NoError(t, err)
	assert.Equal(t, "otp verified", msg.Message)

	msg, err = client.ResetPassword(ctx, "u@x.com", "newpass")
	require.NoError(t, err)
	assert.Equal(t, "password reset", msg.Message)
}

func TestChangePasswordUsesAuthenticatedPipeline(t *testing.T) {
	var refreshCalls int32
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh-token":
			atomic.AddInt32(&refreshCalls, 1)
			writeJSON(t, w, http.StatusOK, map[string]any{"accessToken": "fresh"})
		case "/auth/change-password":
			if r.Header.Get("Authorization") != "Bearer fresh" {
				writeJSON(t, w, http.StatusUnauthorized, nil)
				return
			}
			writeJSON(t, w, http.StatusOK, map[string]any{"message": "changed"})
		}
	}))
	store.SetToken("expired")

	msg, err := client.ChangePassword(context.Background(), "old", "new")
	require.NoError(t, err)
	assert.Equal(t, "changed", msg.Message)
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshCalls))
}

var _ session.AuthAPI = (*Client)(nil)
