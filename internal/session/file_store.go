package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/rently-vn/rently/internal/log"
)

// FileStore persists the session as a JSON file.
//
// The whole session is rewritten on every mutation, which keeps concurrent
// writers last-write-wins and makes Clear atomic: one write removes token,
// user, and role together. A corrupt or unreadable file reads as an empty
// session.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger *log.Logger
}

// NewFileStore creates a file-backed store at path.
func NewFileStore(path string, logger *log.Logger) *FileStore {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &FileStore{
		path:   path,
		logger: logger.With("component", "session_store"),
	}
}

// SetToken persists the access token.
func (f *FileStore) SetToken(token string) {
	f.mutate(func(s *Session) { s.AccessToken = token })
}

// Token reads the persisted access token.
func (f *FileStore) Token() string {
	return f.read().AccessToken
}

// SetUser persists the cached user snapshot.
func (f *FileStore) SetUser(user *User) {
	f.mutate(func(s *Session) { s.User = user })
}

// User reads the cached user snapshot.
func (f *FileStore) User() *User {
	return f.read().User
}

// SetRole persists the role label.
func (f *FileStore) SetRole(role string) {
	f.mutate(func(s *Session) { s.Role = role })
}

// Role reads the role label.
func (f *FileStore) Role() string {
	return f.read().Role
}

// Clear removes the session file.
func (f *FileStore) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		f.logger.Debug("failed to remove session file", "path", f.path, "error", err.Error())
	}
}

// Path returns the location of the session file.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) mutate(apply func(*Session)) {
	f.mu.Lock()
	defer f.mu.Unlock()

	session := f.load()
	apply(&session)

	if err := f.save(session); err != nil {
		// The store is a cache; a failed write must not surface.
		f.logger.Debug("failed to persist session", "path", f.path, "error", err.Error())
	}
}

func (f *FileStore) read() Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

func (f *FileStore) load() Session {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.logger.Debug("failed to read session file", "path", f.path, "error", err.Error())
		}
		return Session{}
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		f.logger.Debug("session file is corrupt, treating as empty", "path", f.path, "error", err.Error())
		return Session{}
	}

	return session
}

func (f *FileStore) save(session Session) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(f.path, data, 0o600)
}
