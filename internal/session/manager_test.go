package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rently-vn/rently/internal/errors"
)

// fakeAuthAPI scripts login/logout outcomes for manager tests.
type fakeAuthAPI struct {
	loginResult *LoginResult
	loginErr    error
	logoutErr   error
	logoutCalls int
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResult, nil
}

func (f *fakeAuthAPI) Logout(ctx context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func TestManager_BootstrapWithPersistedToken(t *testing.T) {
	store := NewMemoryStore()
	store.SetToken("persisted")
	store.SetUser(&User{Email: "u@x.com"})
	store.SetRole("resident")

	m := NewManager(store, &fakeAuthAPI{}, nil)
	assert.Equal(t, StateBooting, m.State())

	state := m.Bootstrap()
	assert.Equal(t, StateAuthenticated, state)

	current := m.Current()
	assert.Equal(t, "persisted", current.AccessToken)
	assert.Equal(t, "resident", current.Role)
	require.NotNil(t, current.User)
	assert.Equal(t, "u@x.com", current.User.Email)
}

func TestManager_BootstrapEmptyStore(t *testing.T) {
	m := NewManager(NewMemoryStore(), &fakeAuthAPI{}, nil)

	state := m.Bootstrap()
	assert.Equal(t, StateAnonymous, state)
	assert.False(t, m.Current().Authenticated())
}

func TestManager_LoginPersistsSession(t *testing.T) {
	store := NewMemoryStore()
	api := &fakeAuthAPI{
		loginResult: &LoginResult{AccessToken: "tok1", Role: "resident"},
	}
	m := NewManager(store, api, nil)
	m.Bootstrap()

	sess, err := m.Login(context.Background(), "u@x.com", "good")
	require.NoError(t, err)

	assert.Equal(t, "tok1", sess.AccessToken)
	assert.Equal(t, "resident", sess.Role)
	// No user in the response: a fallback is derived from the email
	require.NotNil(t, sess.User)
	assert.Equal(t, "u@x.com", sess.User.Email)
	assert.Equal(t, "u", sess.User.FullName)

	assert.Equal(t, "tok1", store.Token())
	assert.Equal(t, "resident", store.Role())
	assert.Equal(t, StateAuthenticated, m.State())
}

func TestManager_FailedLoginLeavesStoreUntouched(t *testing.T) {
	store := NewMemoryStore()
	store.SetToken("before")
	api := &fakeAuthAPI{
		loginErr: errors.NewCredentialRejectedError("Invalid credentials"),
	}
	m := NewManager(store, api, nil)
	m.Bootstrap()

	_, err := m.Login(context.Background(), "u@x.com", "bad")
	require.Error(t, err)
	assert.True(t, errors.IsCredential(err))
	assert.Contains(t, err.Error(), "Invalid credentials")

	assert.Equal(t, "before", store.Token())
	assert.Equal(t, StateAuthenticated, m.State())
}

func TestManager_LogoutAlwaysClearsLocally(t *testing.T) {
	tests := []struct {
		name      string
		logoutErr error
	}{
		{"server logout succeeds", nil},
		{"server logout fails", errors.NewNetworkError(context.DeadlineExceeded)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			store.SetToken("tok")
			store.SetRole("resident")
			api := &fakeAuthAPI{logoutErr: tt.logoutErr}
			m := NewManager(store, api, nil)
			m.Bootstrap()

			m.Logout(context.Background())

			assert.Equal(t, 1, api.logoutCalls)
			assert.Equal(t, "", store.Token())
			assert.Equal(t, "", store.Role())
			assert.Equal(t, StateAnonymous, m.State())
			assert.False(t, m.Current().Authenticated())
		})
	}
}

func TestFallbackUser(t *testing.T) {
	user := FallbackUser("alice@example.com")
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "alice", user.FullName)

	// Degenerate input still yields a usable user
	user = FallbackUser("no-at-sign")
	assert.Equal(t, "no-at-sign", user.FullName)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "booting", StateBooting.String())
	assert.Equal(t, "anonymous", StateAnonymous.String())
	assert.Equal(t, "authenticated", StateAuthenticated.String())
}
