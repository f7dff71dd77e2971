// Package server exposes the HTTP API consumed by the client packages: auth,
// property listings and search, and media upload.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/FarhanAlam-Official/GharSaathi/internal/config"
	"github.com/FarhanAlam-Official/GharSaathi/internal/properties"
	"github.com/FarhanAlam-Official/GharSaathi/internal/sessions"
	"github.com/FarhanAlam-Official/GharSaathi/internal/storage"
	"github.com/FarhanAlam-Official/GharSaathi/internal/users"
	"github.com/FarhanAlam-Official/GharSaathi/pkg/middleware"
)

// Server wires handlers to their services.
type Server struct {
	cfg       *config.Config
	users     *users.Service
	sessions  *sessions.Service
	props     properties.Repository
	media     *storage.MediaStore
	blacklist *sessions.Blacklist
	redis     *redis.Client
}

type Option func(*Server)

// WithMediaStore enables the file upload endpoint.
func WithMediaStore(m *storage.MediaStore) Option {
	return func(s *Server) { s.media = m }
}

// WithRedis enables the token blacklist and the Redis-backed rate limiter.
func WithRedis(client *redis.Client) Option {
	return func(s *Server) {
		s.redis = client
		s.blacklist = sessions.NewBlacklist(client)
	}
}

func New(cfg *config.Config, u *users.Service, sess *sessions.Service, props properties.Repository, opts ...Option) *Server {
	s := &Server{cfg: cfg, users: u, sessions: sess, props: props}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	if s.cfg.RateLimit.Enabled {
		if s.cfg.RateLimit.UseRedis && s.redis != nil {
			window := time.Duration(s.cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimit(s.redis, s.cfg.RateLimit.RPS, s.cfg.RateLimit.Burst, window))
		} else {
			r.Use(middleware.RateLimit(s.cfg.RateLimit.RPS, s.cfg.RateLimit.Burst))
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	authRequired := middleware.Auth(s.cfg.JWT.Secret, s.blacklist)

	a := api.Group("/auth")
	a.POST("/register", s.handleRegister)
	a.POST("/login", s.handleLogin)
	a.POST("/refresh", s.handleRefresh)
	a.POST("/logout", authRequired, s.handleLogout)
	a.POST("/logout/all", authRequired, s.handleLogoutAll)

	p := api.Group("/properties")
	p.GET("", s.handleListProperties)
	p.GET("/:id", s.handleGetProperty)
	p.POST("/search", s.handleSearchProperties)
	p.POST("", authRequired, middleware.RequireRoles("LANDLORD", "ADMIN"), s.handleCreateProperty)

	f := api.Group("/files")
	f.POST("/upload", authRequired, middleware.RequireRoles("LANDLORD", "ADMIN"), s.handleUpload)

	return r
}

// corsMiddleware sets permissive CORS headers and answers preflights.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
