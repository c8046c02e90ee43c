package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rently-vn/rently/internal/config"
	"github.com/rently-vn/rently/internal/log"
	"github.com/rently-vn/rently/internal/platform"
	"github.com/rently-vn/rently/internal/session"
)

func setupTestApp(t *testing.T, baseURL string) {
	t.Helper()

	cfg := config.Default()
	cfg.API.BaseURL = baseURL
	cfg.API.Timeout = 2 * time.Second

	logger := log.New(log.DefaultConfig())
	store := session.NewMemoryStore()
	client := platform.New(baseURL, store, platform.WithLogger(logger))

	prev := app
	app = &App{
		Config:   cfg,
		Logger:   logger,
		Client:   client,
		Sessions: session.NewManager(store, client, logger),
	}
	t.Cleanup(func() { app = prev })
}

func testCommandContext(t *testing.T) *cobra.Command {
	t.Helper()
	c := &cobra.Command{}
	c.SetContext(context.Background())
	return c
}

func TestRunDoctorBackendReachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	setupTestApp(t, server.URL)
	app.Sessions.Bootstrap()

	report := runDoctor(testCommandContext(t))

	assert.True(t, report.Backend.OK)
	assert.Contains(t, report.Backend.Message, "404")
	assert.True(t, report.Healthy)
	assert.Equal(t, "not logged in", report.Session.Message)
}

func TestRunDoctorBackendUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	setupTestApp(t, server.URL)
	app.Sessions.Bootstrap()

	report := runDoctor(testCommandContext(t))

	assert.False(t, report.Backend.OK)
	assert.Contains(t, report.Backend.Message, "unreachable")
	assert.False(t, report.Healthy)
}

func TestRunDoctorReportsLoggedInUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	setupTestApp(t, server.URL)
	app.Sessions.Bootstrap()

	store := session.NewMemoryStore()
	store.SetToken("tok")
	store.SetUser(&session.User{Email: "user@example.com"})
	logger := log.New(log.DefaultConfig())
	client := platform.New(server.URL, store, platform.WithLogger(logger))
	app.Sessions = session.NewManager(store, client, logger)
	require.Equal(t, session.StateAuthenticated, app.Sessions.Bootstrap())

	report := runDoctor(testCommandContext(t))

	assert.True(t, report.Session.OK)
	assert.Equal(t, "logged in as user@example.com", report.Session.Message)
}

func TestCommandRegistration(t *testing.T) {
	expected := []string{"auth", "rooms", "posts", "buildings", "profile", "config", "doctor", "version"}

	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range expected {
		assert.True(t, names[name], "missing command %q", name)
	}
}

func TestMessageOr(t *testing.T) {
	assert.Equal(t, "fallback", messageOr(nil, "fallback"))
	assert.Equal(t, "fallback", messageOr(&platform.MessageResponse{}, "fallback"))
	assert.Equal(t, "done", messageOr(&platform.MessageResponse{Message: "done"}, "fallback"))
}
