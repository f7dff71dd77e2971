package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/FarhanAlam-Official/GharSaathi/internal/auth"
	"github.com/FarhanAlam-Official/GharSaathi/internal/config"
	"github.com/FarhanAlam-Official/GharSaathi/internal/properties"
	"github.com/FarhanAlam-Official/GharSaathi/internal/sessions"
	"github.com/FarhanAlam-Official/GharSaathi/internal/users"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:          "test-secret",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
	}
}

func newTestRouter(t *testing.T, opts ...Option) (*gin.Engine, *Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := New(
		testConfig(),
		users.NewService(users.NewMemoryRepository()),
		sessions.NewService(sessions.NewMemoryRepository()),
		properties.NewMemoryRepository(),
		opts...,
	)
	return srv.Router(), srv
}

func postJSON(r *gin.Engine, path string, body interface{}, token string) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerTenant(t *testing.T, r *gin.Engine) auth.AuthResponse {
	t.Helper()
	w := postJSON(r, "/api/auth/register", gin.H{
		"email":       "ram@example.com",
		"password":    "secret1",
		"fullName":    "Ram Bahadur Thapa",
		"role":        "TENANT",
		"phoneNumber": "+977-9800000000",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp auth.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRegisterIssuesTokenPair(t *testing.T) {
	r, _ := newTestRouter(t)
	resp := registerTenant(t, r)

	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	require.Equal(t, "Bearer", resp.TokenType)
	require.EqualValues(t, 900, resp.ExpiresIn)
	require.Equal(t, "ram@example.com", resp.Email)
	require.Equal(t, "Ram Bahadur Thapa", resp.FullName)
	require.Equal(t, auth.RoleTenant, resp.Role)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	r, _ := newTestRouter(t)
	registerTenant(t, r)

	w := postJSON(r, "/api/auth/register", gin.H{
		"email":    "ram@example.com",
		"password": "secret2",
		"fullName": "Someone Else",
		"role":     "LANDLORD",
	}, "")
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "Email is already registered")
}

func TestRegisterValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(r, "/api/auth/register", gin.H{"email": "not-an-email", "password": "x"}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginRoundtrip(t *testing.T) {
	r, _ := newTestRouter(t)
	registerTenant(t, r)

	w := postJSON(r, "/api/auth/login", gin.H{"email": "ram@example.com", "password": "secret1"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp auth.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	require.EqualValues(t, 1, resp.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	r, _ := newTestRouter(t)
	registerTenant(t, r)

	w := postJSON(r, "/api/auth/login", gin.H{"email": "ram@example.com", "password": "wrong"}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Invalid email or password")
}

func TestRefreshRotatesSession(t *testing.T) {
	r, _ := newTestRouter(t)
	first := registerTenant(t, r)

	w := postJSON(r, "/api/auth/refresh", gin.H{"refreshToken": first.RefreshToken}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var rotated auth.TokenRefreshResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rotated))
	require.NotEmpty(t, rotated.AccessToken)
	require.NotEqual(t, first.RefreshToken, rotated.RefreshToken)

	// the spent refresh token is no longer accepted
	w = postJSON(r, "/api/auth/refresh", gin.H{"refreshToken": first.RefreshToken}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Invalid refresh token")

	// the rotated one is
	w = postJSON(r, "/api/auth/refresh", gin.H{"refreshToken": rotated.RefreshToken}, "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRefreshRejectsUnknownToken(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(r, "/api/auth/refresh", gin.H{"refreshToken": "bogus"}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutDeletesRefreshSession(t *testing.T) {
	r, _ := newTestRouter(t)
	resp := registerTenant(t, r)

	w := postJSON(r, "/api/auth/logout", gin.H{"refreshToken": resp.RefreshToken}, resp.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(r, "/api/auth/refresh", gin.H{"refreshToken": resp.RefreshToken}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutRequiresAuth(t *testing.T) {
	r, _ := newTestRouter(t)
	w := postJSON(r, "/api/auth/logout", nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutAllEndsEverySession(t *testing.T) {
	r, _ := newTestRouter(t)
	registerTenant(t, r)

	// two devices sign in
	w := postJSON(r, "/api/auth/login", gin.H{"email": "ram@example.com", "password": "secret1"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var dev1 auth.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dev1))

	w = postJSON(r, "/api/auth/login", gin.H{"email": "ram@example.com", "password": "secret1"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var dev2 auth.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dev2))

	w = postJSON(r, "/api/auth/logout/all", nil, dev1.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)

	for _, rt := range []string{dev1.RefreshToken, dev2.RefreshToken} {
		w = postJSON(r, "/api/auth/refresh", gin.H{"refreshToken": rt}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}
}
