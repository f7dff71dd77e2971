package main

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/FarhanAlam-Official/GharSaathi/internal/config"
	"github.com/FarhanAlam-Official/GharSaathi/internal/database"
	"github.com/FarhanAlam-Official/GharSaathi/internal/properties"
	"github.com/FarhanAlam-Official/GharSaathi/internal/server"
	"github.com/FarhanAlam-Official/GharSaathi/internal/sessions"
	"github.com/FarhanAlam-Official/GharSaathi/internal/storage"
	"github.com/FarhanAlam-Official/GharSaathi/internal/users"
	"github.com/FarhanAlam-Official/GharSaathi/pkg/logger"
	"github.com/FarhanAlam-Official/GharSaathi/pkg/metrics"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v minio=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.MinIO.Endpoint != "")

	ctx := context.Background()

	// Redis is optional; it enables the token blacklist, Redis-backed
	// sessions and the distributed rate limiter.
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
		} else {
			redisClient = client
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Session storage: Redis when available, then Mongo, then memory.
	var sessionRepo sessions.Repository
	if redisClient != nil {
		sessionRepo = sessions.NewRedisRepository(redisClient, "session:")
		logger.Infof("using Redis for session storage")
	}

	// Mongo backs users and listings; without it everything runs in memory
	// (dev mode, state is lost on restart).
	var userRepo users.Repository
	var propertyRepo properties.Repository
	if cfg.MongoDB.URI != "" {
		client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5)
		if err != nil {
			logger.Warnf("could not connect to MongoDB: %v", err)
		} else {
			defer func() { _ = client.Disconnect(ctx) }()
			db := client.Database(cfg.MongoDB.Database)
			userRepo = users.NewMongoRepository(db)
			propertyRepo = properties.NewMongoRepository(db)
			if sessionRepo == nil {
				sessionRepo = sessions.NewMongoRepository(db.Collection("sessions"))
			}
			logger.Infof("connected to MongoDB database %q", cfg.MongoDB.Database)
		}
	}
	if userRepo == nil {
		userRepo = users.NewMemoryRepository()
		logger.Warnf("using in-memory user storage")
	}
	if propertyRepo == nil {
		propertyRepo = properties.NewMemoryRepository()
		logger.Warnf("using in-memory property storage")
	}
	if sessionRepo == nil {
		sessionRepo = sessions.NewMemoryRepository()
		logger.Warnf("using in-memory session storage")
	}

	opts := []server.Option{}
	if redisClient != nil {
		opts = append(opts, server.WithRedis(redisClient))
	}
	if cfg.MinIO.Endpoint != "" {
		media, err := storage.NewMediaStore(storage.Config{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			Bucket:    cfg.MinIO.Bucket,
			UseSSL:    cfg.MinIO.UseSSL,
		})
		if err != nil {
			logger.Warnf("failed to initialize MinIO media store: %v", err)
		} else {
			opts = append(opts, server.WithMediaStore(media))
			logger.Infof("media uploads enabled (bucket %q)", cfg.MinIO.Bucket)
		}
	}

	srv := server.New(cfg,
		users.NewService(userRepo),
		sessions.NewService(sessionRepo),
		propertyRepo,
		opts...,
	)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting API server on %s", addr)
	if err := srv.Router().Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
