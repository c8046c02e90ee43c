// Package platform is the authenticated client for the rental backend.
//
// Every outbound request carries the persisted bearer token. A 401 response
// triggers one token refresh followed by one replay of the original request;
// concurrent 401s share a single refresh call. A failed refresh clears the
// whole session and surfaces the refresh error to the caller.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/rently-vn/rently/internal/errors"
	"github.com/rently-vn/rently/internal/log"
	"github.com/rently-vn/rently/internal/session"
)

// DefaultTimeout bounds every request, matching the backend's expectations.
const DefaultTimeout = 15 * time.Second

const refreshPath = "/auth/refresh-token"

// Client is the rental backend API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      session.Store
	logger     *log.Logger

	// refresh collapses concurrent token refreshes into one call whose
	// result all waiters share.
	refresh singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a client for the backend at baseURL. The store supplies the
// bearer token for outbound requests and receives refreshed tokens; it is
// cleared in full when a refresh fails.
func New(baseURL string, store session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		store:      store,
		logger:     log.DefaultLogger().With("component", "platform"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do performs an authenticated request with the 401 refresh-and-replay
// cycle. The replay happens at most once per call; a 401 on the replayed
// request passes through to the caller unchanged.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	payload, err := marshalBody(body)
	if err != nil {
		return nil, err
	}

	logger := c.logger.With("request_id", uuid.NewString(), "method", method, "path", path)

	token := c.store.Token()
	if token == "" {
		// Legitimate before login; some endpoints are public.
		logger.Warn("no access token, sending unauthenticated request")
	}

	resp, err := c.send(ctx, method, path, query, payload, token)
	if err != nil {
		return nil, errors.NewNetworkError(err)
	}

	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	drain(resp)

	logger.Debug("received 401, refreshing token")

	newToken, err := c.refreshToken(ctx)
	if err != nil {
		c.store.Clear()
		logger.WithError(err).Warn("token refresh failed, session cleared")
		return nil, errors.NewRefreshFailedError(err)
	}

	retry, err := c.send(ctx, method, path, query, payload, newToken)
	if err != nil {
		return nil, errors.NewNetworkError(err)
	}
	return retry, nil
}

// doPublic performs a request outside the refresh cycle. A token, when
// present, is still attached; a 401 here means the endpoint itself rejected
// the call, not that the token expired.
func (c *Client) doPublic(ctx context.Context, method, path string, body any) (*http.Response, error) {
	payload, err := marshalBody(body)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, method, path, nil, payload, c.store.Token())
	if err != nil {
		return nil, errors.NewNetworkError(err)
	}
	return resp, nil
}

// send builds and transmits one HTTP request. A fresh request is built per
// attempt so the body can be replayed after a refresh.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte, token string) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.httpClient.Do(req)
}

// refreshToken exchanges the stale token for a fresh one and persists it.
// Concurrent callers share one in-flight refresh.
func (c *Client) refreshToken(ctx context.Context) (string, error) {
	v, err, _ := c.refresh.Do("refresh", func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+refreshPath, nil)
		if err != nil {
			return "", fmt.Errorf("create refresh request: %w", err)
		}
		// The stale token rides along, per the backend contract.
		if token := c.store.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return "", errors.NewNetworkError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return "", apiError(resp)
		}

		var tr tokenResponse
		if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
			return "", errors.Wrap(errors.ErrCodeAPIDecode, "cannot decode refresh response", err)
		}

		token := tr.Token()
		if token == "" {
			return "", errors.NewMissingTokenError(refreshPath)
		}

		// Persist before anyone replays a request with it.
		c.store.SetToken(token)
		return token, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// tokenResponse accepts both field-name variants the backend has shipped.
type tokenResponse struct {
	AccessToken      string `json:"accessToken"`
	AccessTokenSnake string `json:"access_token"`
}

// Token returns whichever variant is present.
func (t tokenResponse) Token() string {
	if t.AccessToken != "" {
		return t.AccessToken
	}
	return t.AccessTokenSnake
}

// errorResponse is the backend's error body shape.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e errorResponse) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// parseResponse decodes a 2xx response into target and converts error
// responses into coded errors. target may be nil when the body is ignored.
func parseResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp)
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return errors.Wrap(errors.ErrCodeAPIDecode, "cannot decode response", err)
		}
	}

	return nil
}

// apiError converts a non-2xx response into an error, preferring the
// backend's own message. Consumes the body.
func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var errResp errorResponse
	message := ""
	if err := json.Unmarshal(body, &errResp); err == nil {
		message = errResp.text()
	}

	if resp.StatusCode == http.StatusUnauthorized {
		path := ""
		if resp.Request != nil && resp.Request.URL != nil {
			path = resp.Request.URL.Path
		}
		return errors.NewUnauthorizedError(path)
	}

	if message == "" && len(body) > 0 {
		message = fmt.Sprintf("request failed with status %d: %s", resp.StatusCode, string(body))
	}
	return errors.NewAPIError(resp.StatusCode, message)
}

func marshalBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIDecode, "cannot encode request body", err)
	}
	return payload, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
}
