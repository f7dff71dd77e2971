package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration for both the API client and the dev server.
type Config struct {
	API       APIConfig
	Tokens    TokenStorageConfig
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	MinIO     MinIOConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// TokenStorageConfig controls where and under which keys the client persists tokens.
type TokenStorageConfig struct {
	AccessKey  string
	RefreshKey string
	Path       string
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

type JWTConfig struct {
	Secret          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

// LoadConfig loads configuration from environment variables and a .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("API_BASE_URL", "http://localhost:8080/api")
	viper.SetDefault("API_TIMEOUT", 10)
	viper.SetDefault("TOKEN_KEY", "gharsaathi_token")
	viper.SetDefault("REFRESH_TOKEN_KEY", "gharsaathi_refresh_token")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("MONGODB_DATABASE", "gharsaathi")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("MINIO_BUCKET", "gharsaathi-images")
	viper.SetDefault("JWT_ACCESS_TOKEN_TTL", 15)
	viper.SetDefault("JWT_REFRESH_TOKEN_TTL", 10080)
	viper.SetDefault("RATE_LIMIT_RPS", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)

	cfg := &Config{
		API: APIConfig{
			BaseURL: viper.GetString("API_BASE_URL"),
			Timeout: time.Duration(viper.GetInt("API_TIMEOUT")) * time.Second,
		},
		Tokens: TokenStorageConfig{
			AccessKey:  viper.GetString("TOKEN_KEY"),
			RefreshKey: viper.GetString("REFRESH_TOKEN_KEY"),
			Path:       viper.GetString("TOKEN_STORE_PATH"),
		},
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		MinIO: MinIOConfig{
			Endpoint:  viper.GetString("MINIO_ENDPOINT"),
			AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
			SecretKey: viper.GetString("MINIO_SECRET_KEY"),
			UseSSL:    viper.GetString("MINIO_USE_SSL") == "true",
			Bucket:    viper.GetString("MINIO_BUCKET"),
		},
		JWT: JWTConfig{
			Secret:          os.Getenv("JWT_SECRET"),
			AccessTokenTTL:  time.Duration(viper.GetInt("JWT_ACCESS_TOKEN_TTL")) * time.Minute,
			RefreshTokenTTL: time.Duration(viper.GetInt("JWT_REFRESH_TOKEN_TTL")) * time.Minute,
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetString("RATE_LIMIT_ENABLED") == "true",
			UseRedis:      viper.GetString("RATE_LIMIT_USE_REDIS") == "true",
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}

	// Basic validation
	if cfg.JWT.Secret == "" {
		log.Println("WARNING: JWT_SECRET is not set; set a secure value in production")
	}

	return cfg, nil
}
