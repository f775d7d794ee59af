package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Session.TTL != 10*time.Minute {
		t.Fatalf("unexpected session ttl: %v", cfg.Session.TTL)
	}
	if cfg.Token.TTL != 7*24*time.Hour {
		t.Fatalf("unexpected token ttl: %v", cfg.Token.TTL)
	}
	if cfg.Upstream.RetryCount != 3 {
		t.Fatalf("unexpected retry count: %d", cfg.Upstream.RetryCount)
	}
	if cfg.Upstream.Timeout != 30*time.Second {
		t.Fatalf("unexpected upstream timeout: %v", cfg.Upstream.Timeout)
	}
	if cfg.Upstream.Prefix != "/api" {
		t.Fatalf("unexpected proxy prefix: %q", cfg.Upstream.Prefix)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	os.Setenv("SESSION_TTL_MINUTES", "2")
	os.Setenv("UPSTREAM_BASE_URL", "https://upstream.test")
	os.Setenv("UPSTREAM_TOKEN", "svc-token")
	defer func() {
		os.Unsetenv("SESSION_TTL_MINUTES")
		os.Unsetenv("UPSTREAM_BASE_URL")
		os.Unsetenv("UPSTREAM_TOKEN")
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Session.TTL != 2*time.Minute {
		t.Fatalf("env override not applied: %v", cfg.Session.TTL)
	}
	if cfg.Upstream.BaseURL != "https://upstream.test" || cfg.Upstream.Token != "svc-token" {
		t.Fatalf("unexpected upstream config: %+v", cfg.Upstream)
	}
}
