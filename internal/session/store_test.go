package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), ".rently", "session.json"), nil)
}

func TestFileStore_TokenRoundTrip(t *testing.T) {
	store := newTestFileStore(t)

	assert.Equal(t, "", store.Token())

	store.SetToken("abc")
	assert.Equal(t, "abc", store.Token())

	// Session file is private to the user
	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_UserAndRole(t *testing.T) {
	store := newTestFileStore(t)

	store.SetToken("abc")
	store.SetUser(&User{Email: "u@x.com", FullName: "u"})
	store.SetRole("resident")

	assert.Equal(t, "abc", store.Token())
	require.NotNil(t, store.User())
	assert.Equal(t, "u@x.com", store.User().Email)
	assert.Equal(t, "resident", store.Role())
}

func TestFileStore_ClearRemovesEverything(t *testing.T) {
	store := newTestFileStore(t)

	store.SetToken("abc")
	store.SetUser(&User{Email: "u@x.com"})
	store.SetRole("resident")

	store.Clear()

	assert.Equal(t, "", store.Token())
	assert.Nil(t, store.User())
	assert.Equal(t, "", store.Role())

	_, err := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err))

	// Clearing an already-clear store is fine
	store.Clear()
}

func TestFileStore_ReadFailureReadsAsAbsent(t *testing.T) {
	// A directory at the session path makes every read fail
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")
	require.NoError(t, os.Mkdir(path, 0o755))

	store := NewFileStore(path, nil)

	assert.Equal(t, "", store.Token())
	assert.Nil(t, store.User())
	assert.Equal(t, "", store.Role())
}

func TestFileStore_CorruptFileReadsAsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewFileStore(path, nil)
	assert.Equal(t, "", store.Token())

	// A write through the store replaces the corrupt file
	store.SetToken("fresh")
	assert.Equal(t, "fresh", store.Token())
}

func TestFileStore_WriteFailureIsSwallowed(t *testing.T) {
	// Parent "directory" is a regular file, so persisting always fails
	dir := t.TempDir()
	parent := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0o600))

	store := NewFileStore(filepath.Join(parent, "session.json"), nil)

	// Must not panic or error; the value is simply not durable
	store.SetToken("abc")
	assert.Equal(t, "", store.Token())
}

func TestFileStore_PersistedShape(t *testing.T) {
	store := newTestFileStore(t)
	store.SetToken("abc")
	store.SetRole("landlord")

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	var onDisk map[string]any
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, "abc", onDisk["access_token"])
	assert.Equal(t, "landlord", onDisk["role"])
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	assert.Equal(t, "", store.Token())

	store.SetToken("tok")
	store.SetUser(&User{Email: "u@x.com"})
	store.SetRole("resident")

	assert.Equal(t, "tok", store.Token())
	assert.Equal(t, "resident", store.Role())

	store.Clear()
	assert.Equal(t, "", store.Token())
	assert.Nil(t, store.User())
	assert.Equal(t, "", store.Role())
}

func TestLastWriteWins(t *testing.T) {
	store := newTestFileStore(t)

	// Two refreshes racing: each write is a whole-field overwrite, so
	// whichever lands second defines the token.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			store.SetToken("a")
		}
		close(done)
	}()
	for i := 0; i < 50; i++ {
		store.SetToken("b")
	}
	<-done

	got := store.Token()
	assert.Contains(t, []string{"a", "b"}, got)
}
