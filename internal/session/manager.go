package session

import (
	"context"
	"sync"

	"github.com/rently-vn/rently/internal/log"
)

// State is the lifecycle state of the client session.
type State int

const (
	// StateBooting is the initial state, before the persisted session has
	// been read.
	StateBooting State = iota
	// StateAnonymous means no token is held.
	StateAnonymous
	// StateAuthenticated means a token is held.
	StateAuthenticated
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateBooting:
		return "booting"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// LoginResult is what the backend returns on a successful login.
type LoginResult struct {
	AccessToken string
	Role        string
	User        *User
}

// AuthAPI is the slice of the backend the Manager needs. The platform
// client implements it.
type AuthAPI interface {
	// Login exchanges credentials for a token. Must fail with a
	// missing-token error when the response carries no token.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// Logout invalidates the session server-side.
	Logout(ctx context.Context) error
}

// Manager is the single place application code calls to authenticate,
// deauthenticate, and learn the current session state. Login and Logout are
// the only operations that mutate the store's authentication fields; the
// request pipeline's silent refresh rotates the token but never changes the
// lifecycle state.
type Manager struct {
	mu     sync.RWMutex
	store  Store
	api    AuthAPI
	logger *log.Logger

	state   State
	current Session
}

// NewManager creates a Manager in the Booting state. Call Bootstrap before
// relying on Current or State.
func NewManager(store Store, api AuthAPI, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Manager{
		store:  store,
		api:    api,
		logger: logger.With("component", "session"),
		state:  StateBooting,
	}
}

// Bootstrap restores a previously persisted session. A store read failure
// reads as "no token found" and lands in Anonymous; Bootstrap never fails.
func (m *Manager) Bootstrap() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	token := m.store.Token()
	if token == "" {
		m.state = StateAnonymous
		m.current = Session{}
		return m.state
	}

	m.current = Session{
		AccessToken: token,
		User:        m.store.User(),
		Role:        m.store.Role(),
	}
	m.state = StateAuthenticated
	m.logger.Debug("restored persisted session", "role", m.current.Role)
	return m.state
}

// Login authenticates with the backend and persists the resulting session.
// On backend rejection or a missing token the store is left untouched and
// the error propagates to the caller.
func (m *Manager) Login(ctx context.Context, email, password string) (Session, error) {
	result, err := m.api.Login(ctx, email, password)
	if err != nil {
		return Session{}, err
	}

	user := result.User
	if user == nil {
		user = FallbackUser(email)
	}

	m.store.SetToken(result.AccessToken)
	m.store.SetUser(user)
	m.store.SetRole(result.Role)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = Session{
		AccessToken: result.AccessToken,
		User:        user,
		Role:        result.Role,
	}
	m.state = StateAuthenticated

	m.logger.Info("logged in", "email", email, "role", result.Role)
	return m.current, nil
}

// Logout ends the session. The server-side call is best-effort; the local
// session is always cleared, because the user's intent is to end the local
// session regardless of network state.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.api.Logout(ctx); err != nil {
		m.logger.Debug("server-side logout failed", "error", err.Error())
	}

	m.store.Clear()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = Session{}
	m.state = StateAnonymous

	m.logger.Info("logged out")
}

// Current returns a snapshot of the in-memory session.
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}
