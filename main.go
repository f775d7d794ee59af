package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/qrgate/qrgate/handlers"
	"github.com/qrgate/qrgate/internal/auth"
	"github.com/qrgate/qrgate/internal/config"
	"github.com/qrgate/qrgate/internal/qrcode"
	"github.com/qrgate/qrgate/internal/sessions"
	"github.com/qrgate/qrgate/internal/tokens"
	"github.com/qrgate/qrgate/pkg/logger"
	"github.com/qrgate/qrgate/pkg/metrics"
	"github.com/qrgate/qrgate/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: public_url=%s session_ttl=%s token_ttl=%s", cfg.Server.PublicURL, cfg.Session.TTL, cfg.Token.TTL)

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + recovery
	r.Use(gin.Logger(), gin.Recovery())

	// Connect to Redis early so the rate-limiter can use it when configured
	var importedRedis *redis.Client
	if cfg.Redis.Host != "" {
		importedRedis = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
		if err := importedRedis.Ping(context.Background()).Err(); err == nil {
			logger.Infof("Connected to Redis for rate limiting: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		} else {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			importedRedis = nil
		}
	}

	// Optional global rate limiter (per-user when authenticated, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && importedRedis != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(importedRedis, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// In-memory stores and services; constructed once here and injected so
	// tests can build isolated instances the same way.
	sessionStore := sessions.NewStore()
	tokenStore := tokens.NewStore()
	coordinator := auth.NewCoordinator(sessionStore, tokenStore, cfg.Token.TTL)
	qrService := qrcode.NewService(sessionStore, cfg.Server.PublicURL, cfg.QR.Size)

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   "qrgate-auth",
		})
	})

	// readiness endpoint — reports store liveness and optional dependencies
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]interface{}{
			"sessions": sessionStore.Count(),
			"tokens":   tokenStore.Count(),
			"redis":    importedRedis != nil || cfg.Redis.Host == "",
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": fmt.Sprintf("%s", time.Since(startTime))})
	})

	// Register the QR, scan and token handlers
	rg := r.Group("/")
	handlers.NewQRCodeHandler(qrService, sessionStore, cfg.Session.TTL).Register(rg)
	handlers.NewAuthHandler(coordinator, tokenStore).Register(rg)

	// Minimal Swagger UI + JSON for API documentation
	handlers.RegisterSwagger(r)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Endpoint not found"})
	})

	// Background sweep: lazy expiry in the stores stays authoritative, this
	// just bounds memory between accesses.
	go func() {
		ticker := time.NewTicker(cfg.Session.SweepInterval)
		defer ticker.Stop()
		for range ticker.C {
			if n := sessionStore.SweepExpired(); n > 0 {
				logger.Debugf("swept %d expired sessions", n)
			}
			if n := tokenStore.SweepExpired(); n > 0 {
				logger.Debugf("swept %d expired tokens", n)
			}
			metrics.StoreRecords.WithLabelValues("sessions").Set(float64(sessionStore.Count()))
			metrics.StoreRecords.WithLabelValues("tokens").Set(float64(tokenStore.Count()))
		}
	}()

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting QR auth service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
