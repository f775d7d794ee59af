package qrcode

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	qr "github.com/skip2/go-qrcode"

	"github.com/qrgate/qrgate/internal/sessions"
)

const (
	DefaultBaseURL = "http://localhost:3000"
	DefaultSize    = 256
)

// Result is what the presentation client needs to render and poll: the QR
// image as a data URL, the raw scan URL, and the session it belongs to.
type Result struct {
	SessionID string
	QRCode    string
	ScanURL   string
	ExpiresAt time.Time
}

// Service creates a session and renders the scan URL as a QR code.
type Service struct {
	store   *sessions.Store
	baseURL string
	size    int
}

func NewService(store *sessions.Store, baseURL string, size int) *Service {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if size <= 0 {
		size = DefaultSize
	}
	return &Service{store: store, baseURL: baseURL, size: size}
}

// BuildScanURL returns the URL encoded into the QR image; the second device
// POSTs to it to complete the handshake.
func (s *Service) BuildScanURL(sessionID string) string {
	return strings.TrimRight(s.baseURL, "/") + "/api/auth/scan/" + sessionID
}

// Generate creates a pending session with the given ttl (zero means the store
// default) and returns its QR code as a base64 PNG data URL.
func (s *Service) Generate(ttl time.Duration) (*Result, error) {
	sess, err := s.store.Create(ttl)
	if err != nil {
		return nil, err
	}
	scanURL := s.BuildScanURL(sess.ID)
	png, err := qr.Encode(scanURL, qr.Medium, s.size)
	if err != nil {
		return nil, fmt.Errorf("generate qr code: %w", err)
	}
	return &Result{
		SessionID: sess.ID,
		QRCode:    "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		ScanURL:   scanURL,
		ExpiresAt: sess.ExpiresAt,
	}, nil
}
