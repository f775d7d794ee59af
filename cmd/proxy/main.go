package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/qrgate/qrgate/internal/config"
	"github.com/qrgate/qrgate/internal/proxy"
	"github.com/qrgate/qrgate/pkg/logger"
)

// The proxy is an independent process: it shares no memory with the auth
// service and validates bearers over HTTP against it.
func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if cfg.Upstream.Token == "" {
		logger.Warn("UPSTREAM_TOKEN is not set; upstream calls will be unauthenticated")
	}
	logger.Infof("config loaded: upstream=%s auth=%s prefix=%s retries=%d timeout=%s",
		cfg.Upstream.BaseURL, cfg.Proxy.AuthBaseURL, cfg.Upstream.Prefix, cfg.Upstream.RetryCount, cfg.Upstream.Timeout)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   "qrgate-proxy",
		})
	})

	forwarder := proxy.NewForwarder(cfg.Upstream.BaseURL, cfg.Upstream.Token, cfg.Upstream.Timeout, cfg.Upstream.RetryCount)
	validator := proxy.NewAuthClient(cfg.Proxy.AuthBaseURL, 10*time.Second)
	proxy.NewHandler(forwarder, validator, cfg.Upstream.Prefix).Register(r)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Endpoint not found"})
	})

	addr := fmt.Sprintf("%s:%s", cfg.Proxy.Host, cfg.Proxy.Port)
	logger.Infof("Starting token-gated proxy on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("proxy server failed: %v", err)
	}
}
