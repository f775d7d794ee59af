package tokens

import "time"

// Token is an opaque bearer credential. SessionID is a lookup reference to
// the session that minted it, not an ownership edge.
type Token struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsRevoked bool      `json:"isRevoked"`
}

// Validation is the result of checking a presented bearer token. ExpiresAt is
// milliseconds since epoch to match the wire format shared with the proxy.
type Validation struct {
	Valid     bool   `json:"valid"`
	UserID    string `json:"userId,omitempty"`
	ExpiresAt int64  `json:"expiresAt,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// Validation failure reasons. Unknown and never-issued tokens both report
// ReasonInvalid so ids cannot be probed.
const (
	ReasonInvalid = "invalid"
	ReasonExpired = "expired"
	ReasonRevoked = "revoked"
)
