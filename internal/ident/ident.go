package ident

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Opaque identifier sizes in random bytes. Session ids are short-lived and
// public (embedded in scan URLs); token ids are bearer credentials and get
// twice the entropy.
const (
	sessionIDBytes = 16
	tokenIDBytes   = 32
	userIDBytes    = 8
)

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("ident: read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// NewSessionID returns a 32-character hex session identifier.
func NewSessionID() (string, error) {
	return randomHex(sessionIDBytes)
}

// NewTokenID returns a 64-character hex token identifier. The id itself is the
// bearer credential, there is no separate signing step.
func NewTokenID() (string, error) {
	return randomHex(tokenIDBytes)
}

// NewUserID returns a synthesized identity of the form "user_<16 hex chars>".
func NewUserID() (string, error) {
	s, err := randomHex(userIDBytes)
	if err != nil {
		return "", err
	}
	return "user_" + s, nil
}
