package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/qrgate/qrgate/internal/config"
	"github.com/qrgate/qrgate/internal/proxy"
	"github.com/qrgate/qrgate/internal/tokenfile"
	"github.com/qrgate/qrgate/pkg/logger"
)

// tokenctl obtains and manages a bearer token for command-line API consumers.
//
//	tokenctl login   — request a QR session, print the scan URL, poll until
//	                   authenticated and cache the token locally
//	tokenctl check   — validate the cached token against the auth service
//	tokenctl logout  — revoke the cached token and clear the cache
func main() {
	pollInterval := flag.Duration("poll", 2*time.Second, "session status poll interval")
	flag.Parse()

	logger.Init(os.Getenv("LOG_LEVEL"))
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	cache := tokenfile.NewCache(cfg.TokenCache.Path)
	base := strings.TrimRight(cfg.Proxy.AuthBaseURL, "/")

	switch flag.Arg(0) {
	case "login":
		if err := login(base, cache, *pollInterval); err != nil {
			logger.Fatalf("login failed: %v", err)
		}
	case "check":
		if err := check(base, cache); err != nil {
			logger.Fatalf("check failed: %v", err)
		}
	case "logout":
		if err := logout(base, cache); err != nil {
			logger.Fatalf("logout failed: %v", err)
		}
	default:
		fmt.Fprintln(os.Stderr, "usage: tokenctl [-poll interval] login|check|logout")
		os.Exit(2)
	}
}

type sessionData struct {
	SessionID string `json:"sessionId"`
	ScanURL   string `json:"scanUrl"`
	ExpiresAt int64  `json:"expiresAt"`
}

type statusData struct {
	Status    string `json:"status"`
	ExpiresAt int64  `json:"expiresAt"`
	Token     string `json:"token"`
}

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func getJSON(url string, out interface{}) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		return fmt.Errorf("auth service error: %s (status %d)", env.Error, resp.StatusCode)
	}
	return json.Unmarshal(env.Data, out)
}

// login drives the QR handshake from the terminal: the user opens the scan
// URL on an authenticated device while we poll the session status.
func login(base string, cache *tokenfile.Cache, pollInterval time.Duration) error {
	var sess sessionData
	if err := getJSON(base+"/api/qrcode", &sess); err != nil {
		return err
	}

	fmt.Printf("Open this URL on your authenticated device to approve the login:\n\n  %s\n\n", sess.ScanURL)
	fmt.Printf("Waiting for scan (session %.8s..., expires %s)\n",
		sess.SessionID, time.UnixMilli(sess.ExpiresAt).Format(time.RFC3339))

	deadline := time.UnixMilli(sess.ExpiresAt)
	for time.Now().Before(deadline) {
		time.Sleep(pollInterval)
		var st statusData
		if err := getJSON(base+"/api/qrcode/status/"+sess.SessionID, &st); err != nil {
			// a 404 here means the session expired under us
			return fmt.Errorf("session no longer available: %w", err)
		}
		if st.Status == "authenticated" && st.Token != "" {
			if err := cache.Save(st.Token); err != nil {
				return err
			}
			fmt.Println("Authenticated. Token saved.")
			return nil
		}
	}
	return fmt.Errorf("session expired before it was scanned")
}

func check(base string, cache *tokenfile.Cache) error {
	token, err := cache.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return fmt.Errorf("no cached token; run 'tokenctl login' first")
	}

	client := proxy.NewAuthClient(base, 10*time.Second)
	v, err := client.Validate(context.Background(), token)
	if err != nil {
		return err
	}
	if !v.Valid {
		// the cache is best-effort; drop the stale entry
		_ = cache.Clear()
		return fmt.Errorf("cached token is not usable (%s)", v.Reason)
	}
	fmt.Printf("Token is valid for %s until %s\n", v.UserID, time.UnixMilli(v.ExpiresAt).Format(time.RFC3339))
	return nil
}

func logout(base string, cache *tokenfile.Cache) error {
	token, err := cache.Load()
	if err != nil {
		return err
	}
	if token != "" {
		req, err := http.NewRequest(http.MethodPost, base+"/api/user/revoke", nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
		if resp, err := http.DefaultClient.Do(req); err != nil {
			logger.Warnf("could not revoke token remotely: %v", err)
		} else {
			resp.Body.Close()
		}
	}
	if err := cache.Clear(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}
