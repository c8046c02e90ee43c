package session

import "sync"

// Store defines the contract for session persistence.
//
// The store is a cache, not a transactional ledger: writes swallow storage
// failures (a lost persistence write must not fail an in-memory-successful
// login) and reads return zero values on any failure. Callers cannot
// distinguish "absent" from "store unavailable", and must not try to.
//
// Implementations must be safe for concurrent use. All writes are
// whole-field overwrites, so concurrent writers resolve to last-write-wins
// without read-modify-write hazards.
type Store interface {
	// SetToken persists the access token. Storage failures are swallowed.
	SetToken(token string)

	// Token reads the persisted access token. Returns "" when absent or on
	// read failure.
	Token() string

	// SetUser persists the cached user snapshot. Storage failures are swallowed.
	SetUser(user *User)

	// User reads the cached user snapshot, or nil.
	User() *User

	// SetRole persists the role label. Storage failures are swallowed.
	SetRole(role string)

	// Role reads the role label, or "".
	Role() string

	// Clear removes token, user, and role together.
	Clear()
}

// MemoryStore is an in-memory Store for tests and ephemeral sessions.
type MemoryStore struct {
	mu      sync.RWMutex
	session Session
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SetToken stores the access token.
func (m *MemoryStore) SetToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.AccessToken = token
}

// Token returns the stored access token.
func (m *MemoryStore) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.AccessToken
}

// SetUser stores the user snapshot.
func (m *MemoryStore) SetUser(user *User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.User = user
}

// User returns the stored user snapshot.
func (m *MemoryStore) User() *User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.User
}

// SetRole stores the role label.
func (m *MemoryStore) SetRole(role string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.Role = role
}

// Role returns the stored role label.
func (m *MemoryStore) Role() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.Role
}

// Clear removes all session fields.
func (m *MemoryStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = Session{}
}
