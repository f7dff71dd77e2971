package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/FarhanAlam-Official/GharSaathi/internal/auth"
	"github.com/FarhanAlam-Official/GharSaathi/internal/tokens"
	"github.com/FarhanAlam-Official/GharSaathi/internal/users"
	"github.com/FarhanAlam-Official/GharSaathi/pkg/logger"
	"github.com/FarhanAlam-Official/GharSaathi/pkg/middleware"
)

type registerRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	FullName    string `json:"fullName" binding:"required"`
	Role        string `json:"role" binding:"required,oneof=TENANT LANDLORD"`
	PhoneNumber string `json:"phoneNumber"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid registration data", "errors": map[string][]string{"request": {err.Error()}}})
		return
	}
	u, err := s.users.Register(c.Request.Context(), users.RegisterParams{
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		Role:        req.Role,
		PhoneNumber: req.PhoneNumber,
	})
	if err == users.ErrEmailTaken {
		c.JSON(http.StatusConflict, gin.H{"message": "Email is already registered"})
		return
	}
	if err != nil {
		logger.Errorf("server: register failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed"})
		return
	}
	s.respondWithTokens(c, http.StatusCreated, u)
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}
	u, err := s.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err == users.ErrInvalidCredentials {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}
	if err != nil {
		logger.Errorf("server: login failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed"})
		return
	}
	s.respondWithTokens(c, http.StatusOK, u)
}

// respondWithTokens issues the access/refresh pair for an authenticated user.
func (s *Server) respondWithTokens(c *gin.Context, status int, u *users.User) {
	access, err := tokens.Generate(s.cfg.JWT.Secret, u, s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		logger.Errorf("server: access token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create access token"})
		return
	}
	refresh, err := s.sessions.CreateSession(c.Request.Context(), u.ID, s.cfg.JWT.RefreshTokenTTL)
	if err != nil {
		logger.Errorf("server: session creation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create session"})
		return
	}
	c.JSON(status, auth.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.cfg.JWT.AccessTokenTTL.Seconds()),
		UserID:       u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		Role:         auth.Role(u.Role),
	})
}

func (s *Server) handleRefresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Refresh token is required"})
		return
	}
	sess, err := s.sessions.ValidateRefresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		logger.Errorf("server: refresh validation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Validation failed"})
		return
	}
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid refresh token"})
		return
	}
	u, err := s.users.GetByID(c.Request.Context(), sess.UserID)
	if err != nil || u == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "User lookup failed"})
		return
	}
	access, err := tokens.Generate(s.cfg.JWT.Secret, u, s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create access token"})
		return
	}
	rotated, err := s.sessions.Rotate(c.Request.Context(), sess, s.cfg.JWT.RefreshTokenTTL)
	if err != nil {
		logger.Errorf("server: refresh rotation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to rotate session"})
		return
	}
	c.JSON(http.StatusOK, auth.TokenRefreshResponse{
		AccessToken:  access,
		RefreshToken: rotated,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.cfg.JWT.AccessTokenTTL.Seconds()),
	})
}

// handleLogout ends the current device's session. The spent access token is
// blacklisted for its remaining lifetime; the refresh token, when supplied,
// is deleted.
func (s *Server) handleLogout(c *gin.Context) {
	raw := c.GetString("accessToken")
	if exp, err := tokens.ExpiryOf(raw); err == nil {
		if ttl := time.Until(exp); ttl > 0 {
			if err := s.blacklist.Add(c.Request.Context(), raw, ttl); err != nil {
				logger.Warnf("server: failed to blacklist access token: %v", err)
			}
		}
	}

	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.RefreshToken != "" {
		if err := s.sessions.DeleteRefresh(c.Request.Context(), req.RefreshToken); err != nil {
			logger.Warnf("server: failed to delete refresh session: %v", err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// handleLogoutAll ends every session of the authenticated user.
func (s *Server) handleLogoutAll(c *gin.Context) {
	userID := middleware.UserID(c)
	if err := s.sessions.DeleteAllForUser(c.Request.Context(), userID); err != nil {
		logger.Errorf("server: logout-all failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to end sessions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out from all devices"})
}
