package auth

import (
	"time"

	"github.com/qrgate/qrgate/internal/sessions"
	"github.com/qrgate/qrgate/internal/tokens"
	"github.com/qrgate/qrgate/pkg/logger"
)

// Coordinator orchestrates the scan event: it validates the pending session,
// mints a bearer token and moves the session to authenticated with the token
// linked. Stores are injected so tests get isolated instances.
type Coordinator struct {
	sessions *sessions.Store
	tokens   *tokens.Store
	tokenTTL time.Duration
}

// NewCoordinator wires the stores and the lifetime for minted tokens.
// tokenTTL <= 0 falls back to the token store default.
func NewCoordinator(s *sessions.Store, t *tokens.Store, tokenTTL time.Duration) *Coordinator {
	if tokenTTL < 0 {
		tokenTTL = 0
	}
	return &Coordinator{sessions: s, tokens: t, tokenTTL: tokenTTL}
}

// CompleteScan authenticates a pending session and returns the minted token
// id. Errors are sessions.ErrNotFound (never-existed and expired look the
// same) or *sessions.NotPendingError when the session was already scanned.
// The action is one-shot: a repeat call fails without minting a second token.
func (c *Coordinator) CompleteScan(sessionID, deviceInfo string) (string, error) {
	sess, err := c.sessions.Get(sessionID)
	if err != nil {
		return "", err
	}
	if sess.Status != sessions.StatusPending {
		return "", &sessions.NotPendingError{Status: sess.Status}
	}

	// Issue first: an unlinked token has no externally visible effect.
	tokenID, err := c.tokens.Issue(sessionID, "", c.tokenTTL)
	if err != nil {
		return "", err
	}

	// Transition + link happen as one guarded mutation, so a concurrent
	// status reader sees both or neither.
	if err := c.sessions.Authenticate(sessionID, tokenID); err != nil {
		// Lost a race with another scan or with expiry. The token was never
		// handed out, so drop the record entirely instead of retaining it
		// as revoked.
		c.tokens.Delete(tokenID)
		return "", err
	}

	if deviceInfo != "" {
		logger.Infof("scan completed for session %.8s... (device: %s)", sessionID, deviceInfo)
	} else {
		logger.Infof("scan completed for session %.8s...", sessionID)
	}
	return tokenID, nil
}
