package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/FarhanAlam-Official/GharSaathi/internal/tokenstore"
	"github.com/FarhanAlam-Official/GharSaathi/pkg/logger"
	"github.com/FarhanAlam-Official/GharSaathi/pkg/metrics"
)

const defaultTimeout = 10 * time.Second

// Client is the single outbound gateway to the backend. It attaches the
// bearer credential when one is stored, normalizes every failure to *APIError
// and performs at most one refresh-and-retry per request on 401.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      tokenstore.Store

	// serializes refresh attempts so concurrent 401s trigger one refresh call
	refreshMu sync.Mutex

	onAuthFailure func()
	onForbidden   func()
}

type Option func(*Client)

// WithTimeout sets the single fixed timeout applied to every outbound call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying transport; mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithAuthFailureHook registers the callback invoked when a refresh cannot
// recover a 401 (the caller typically redirects to login).
func WithAuthFailureHook(f func()) Option {
	return func(c *Client) { c.onAuthFailure = f }
}

// WithForbiddenHook registers the callback invoked on 403 responses.
func WithForbiddenHook(f func()) Option {
	return func(c *Client) { c.onForbidden = f }
}

func New(baseURL string, store tokenstore.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		store:      store,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Get issues a GET request; query may be nil.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST request with a JSON body; body may be nil.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

// Do performs one request through the interception pipeline. The response
// body, when out is non-nil, is JSON-decoded into out. Anonymous requests are
// allowed: when no access token is stored no Authorization header is attached.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = b
	}

	token := c.store.AccessToken()
	logger.Debugf("api: %s %s", method, path)

	status, respBody, err := c.send(ctx, method, path, query, payload, token)
	if err != nil {
		metrics.ClientRequests.WithLabelValues(method, "network").Inc()
		logger.Debugf("api: %s %s network error: %v", method, path, err)
		return newNetworkError()
	}
	metrics.ClientRequests.WithLabelValues(method, statusClass(status)).Inc()

	switch classify(status, false) {
	case passthrough:
		return decode(respBody, out)

	case refreshAndRetry:
		newToken, ok := c.refreshAccessToken(ctx, token)
		if !ok {
			c.store.Clear()
			if c.onAuthFailure != nil {
				c.onAuthFailure()
			}
			return newStatusError(status, respBody)
		}
		metrics.ClientRetries.Inc()
		logger.Debugf("api: retrying %s %s after token refresh", method, path)
		status, respBody, err = c.send(ctx, method, path, query, payload, newToken)
		if err != nil {
			return newNetworkError()
		}
		if classify(status, true) == passthrough {
			return decode(respBody, out)
		}
		return c.failWith(status, respBody)

	default:
		return c.failWith(status, respBody)
	}
}

// failWith builds the normalized error and fires the permission hook on 403.
func (c *Client) failWith(status int, body []byte) error {
	if status == http.StatusForbidden && c.onForbidden != nil {
		c.onForbidden()
	}
	return newStatusError(status, body)
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte, token string) (int, []byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, b, nil
}

// refreshAccessToken performs the single-flight token refresh. usedToken is
// the access token attached to the request that failed: when a waiter
// acquires the lock and finds the stored token already rotated, it reuses
// that token instead of issuing its own refresh call.
func (c *Client) refreshAccessToken(ctx context.Context, usedToken string) (string, bool) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if cur := c.store.AccessToken(); cur != "" && cur != usedToken {
		return cur, true
	}

	refresh := c.store.RefreshToken()
	if refresh == "" {
		metrics.TokenRefreshes.WithLabelValues("missing").Inc()
		return "", false
	}

	payload, _ := json.Marshal(map[string]string{"refreshToken": refresh})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh", bytes.NewReader(payload))
	if err != nil {
		metrics.TokenRefreshes.WithLabelValues("failure").Inc()
		return "", false
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.TokenRefreshes.WithLabelValues("failure").Inc()
		logger.Warnf("api: token refresh failed: %v", err)
		return "", false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		metrics.TokenRefreshes.WithLabelValues("failure").Inc()
		logger.Warnf("api: token refresh rejected with status %d", resp.StatusCode)
		return "", false
	}
	var tr struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil || tr.AccessToken == "" {
		metrics.TokenRefreshes.WithLabelValues("failure").Inc()
		return "", false
	}
	c.store.SetAccessToken(tr.AccessToken)
	if tr.RefreshToken != "" {
		c.store.SetRefreshToken(tr.RefreshToken)
	}
	metrics.TokenRefreshes.WithLabelValues("success").Inc()
	return tr.AccessToken, true
}

func decode(body []byte, out interface{}) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

func statusClass(status int) string {
	switch {
	case status < 300:
		return "2xx"
	case status < 400:
		return "3xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
