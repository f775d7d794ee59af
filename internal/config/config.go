package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration for both services
type Config struct {
	Server     ServerConfig
	Session    SessionConfig
	Token      TokenConfig
	QR         QRConfig
	Upstream   UpstreamConfig
	Proxy      ProxyConfig
	Redis      RedisConfig
	RateLimit  RateLimitConfig
	TokenCache TokenCacheConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	PublicURL    string // base URL embedded into scan URLs
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type SessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

type TokenConfig struct {
	TTL time.Duration
}

type QRConfig struct {
	Size int
}

// UpstreamConfig describes the third-party API the proxy forwards to.
type UpstreamConfig struct {
	BaseURL    string
	Token      string // service-level credential injected upstream
	Timeout    time.Duration
	RetryCount int
	Prefix     string // routing prefix stripped before forwarding
}

// ProxyConfig is the proxy service's own listener plus the location of the
// auth service it validates bearers against.
type ProxyConfig struct {
	Port        string
	Host        string
	AuthBaseURL string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type RateLimitConfig struct {
	Enabled       bool
	RPS           float64
	Burst         int
	UseRedis      bool
	WindowSeconds int
}

type TokenCacheConfig struct {
	Path string
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "3000")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("PUBLIC_BASE_URL", "http://localhost:3000")
	viper.SetDefault("SESSION_TTL_MINUTES", 10)
	viper.SetDefault("SESSION_SWEEP_SECONDS", 60)
	viper.SetDefault("TOKEN_TTL_DAYS", 7)
	viper.SetDefault("QR_SIZE", 256)
	viper.SetDefault("UPSTREAM_BASE_URL", "https://gitlab.com")
	viper.SetDefault("PROXY_TIMEOUT", 30000)
	viper.SetDefault("RETRY_COUNT", 3)
	viper.SetDefault("PROXY_PREFIX", "/api")
	viper.SetDefault("PROXY_PORT", "3001")
	viper.SetDefault("PROXY_HOST", "0.0.0.0")
	viper.SetDefault("AUTH_BASE_URL", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT_RPS", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)

	home, _ := os.UserHomeDir()
	viper.SetDefault("TOKEN_CACHE_PATH", home+"/.qrgate/token.json")

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			PublicURL:    viper.GetString("PUBLIC_BASE_URL"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Session: SessionConfig{
			TTL:           time.Duration(viper.GetInt("SESSION_TTL_MINUTES")) * time.Minute,
			SweepInterval: time.Duration(viper.GetInt("SESSION_SWEEP_SECONDS")) * time.Second,
		},
		Token: TokenConfig{
			TTL: time.Duration(viper.GetInt("TOKEN_TTL_DAYS")) * 24 * time.Hour,
		},
		QR: QRConfig{
			Size: viper.GetInt("QR_SIZE"),
		},
		Upstream: UpstreamConfig{
			BaseURL:    viper.GetString("UPSTREAM_BASE_URL"),
			Token:      os.Getenv("UPSTREAM_TOKEN"),
			Timeout:    time.Duration(viper.GetInt("PROXY_TIMEOUT")) * time.Millisecond,
			RetryCount: viper.GetInt("RETRY_COUNT"),
			Prefix:     viper.GetString("PROXY_PREFIX"),
		},
		Proxy: ProxyConfig{
			Port:        viper.GetString("PROXY_PORT"),
			Host:        viper.GetString("PROXY_HOST"),
			AuthBaseURL: viper.GetString("AUTH_BASE_URL"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		TokenCache: TokenCacheConfig{
			Path: viper.GetString("TOKEN_CACHE_PATH"),
		},
	}

	return cfg, nil
}
