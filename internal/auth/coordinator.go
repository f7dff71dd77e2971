package auth

import (
	"context"
	"sync"

	"github.com/FarhanAlam-Official/GharSaathi/internal/api"
	"github.com/FarhanAlam-Official/GharSaathi/internal/tokenstore"
	"github.com/FarhanAlam-Official/GharSaathi/pkg/logger"
)

// Navigator receives route transitions driven by authentication state.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) { f(route) }

// Coordinator owns the in-memory Session and orchestrates login, register,
// logout and token refresh. It is the only component allowed to mutate the
// session; everyone else reads a copy through Session().
type Coordinator struct {
	client *api.Client
	store  tokenstore.Store
	nav    Navigator

	mu      sync.RWMutex
	session *Session
	loading bool
}

func NewCoordinator(client *api.Client, store tokenstore.Store, nav Navigator) *Coordinator {
	return &Coordinator{client: client, store: store, nav: nav, loading: true}
}

// Init performs the startup token-presence probe. A stored access token is
// trusted until the next API call proves otherwise; no validation request is
// made here.
func (c *Coordinator) Init() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store.AccessToken() == "" {
		c.session = nil
	}
	c.loading = false
}

// Session returns a copy of the current session, if any.
func (c *Coordinator) Session() (Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

func (c *Coordinator) IsAuthenticated() bool {
	_, ok := c.Session()
	return ok
}

func (c *Coordinator) IsLoading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

func (c *Coordinator) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}

// Login authenticates with email/password. On success the returned token pair
// is persisted, the session is built from the response and the user is
// navigated to their role's dashboard. The backend's message is surfaced
// unchanged on rejection.
func (c *Coordinator) Login(ctx context.Context, creds LoginRequest) (Session, error) {
	c.setLoading(true)
	defer c.setLoading(false)

	var resp AuthResponse
	if err := c.client.Post(ctx, "/auth/login", creds, &resp); err != nil {
		logger.Warnf("auth: login failed: %v", err)
		return Session{}, err
	}
	return c.establish(&resp), nil
}

// Register creates an account. Same contract as Login; the wire payload
// carries a combined fullName plus role and phone number.
func (c *Coordinator) Register(ctx context.Context, req RegisterRequest) (Session, error) {
	c.setLoading(true)
	defer c.setLoading(false)

	payload := registerPayload{
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FirstName + " " + req.LastName,
		Role:        req.Role,
		PhoneNumber: req.PhoneNumber,
	}
	var resp AuthResponse
	if err := c.client.Post(ctx, "/auth/register", payload, &resp); err != nil {
		logger.Warnf("auth: registration failed: %v", err)
		return Session{}, err
	}
	return c.establish(&resp), nil
}

func (c *Coordinator) establish(resp *AuthResponse) Session {
	c.store.SetAccessToken(resp.AccessToken)
	c.store.SetRefreshToken(resp.RefreshToken)

	sess := sessionFromAuthResponse(resp)
	c.mu.Lock()
	c.session = &sess
	c.mu.Unlock()

	c.nav.Navigate(DashboardRoute(sess.Role))
	return sess
}

// Logout ends the session on this device. The network call is best-effort;
// local state is cleared and the user navigated to login no matter what.
func (c *Coordinator) Logout(ctx context.Context) {
	c.logout(ctx, "/auth/logout")
}

// LogoutAll ends the session on every device.
func (c *Coordinator) LogoutAll(ctx context.Context) {
	c.logout(ctx, "/auth/logout/all")
}

func (c *Coordinator) logout(ctx context.Context, path string) {
	if err := c.client.Post(ctx, path, nil, nil); err != nil {
		logger.Warnf("auth: logout call failed: %v", err)
	}
	c.clearSession()
	c.nav.Navigate(RouteLogin)
}

// RefreshToken renews the access token using the stored refresh token. A
// missing refresh token is a no-op; a rejected one ends the session.
func (c *Coordinator) RefreshToken(ctx context.Context) error {
	refresh := c.store.RefreshToken()
	if refresh == "" {
		return nil
	}
	var resp TokenRefreshResponse
	err := c.client.Post(ctx, "/auth/refresh", map[string]string{"refreshToken": refresh}, &resp)
	if err != nil {
		logger.Warnf("auth: token refresh failed: %v", err)
		c.clearSession()
		c.nav.Navigate(RouteLogin)
		return err
	}
	c.store.SetAccessToken(resp.AccessToken)
	if resp.RefreshToken != "" {
		c.store.SetRefreshToken(resp.RefreshToken)
	}
	return nil
}

func (c *Coordinator) clearSession() {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
	c.store.Clear()
}
