package sessions

import "time"

// Status is the lifecycle state of an authentication session.
type Status string

const (
	StatusPending       Status = "pending"
	StatusAuthenticated Status = "authenticated"
	StatusExpired       Status = "expired"
)

// Session is a time-bounded authentication handshake record. TokenID is set
// if and only if Status is authenticated.
type Session struct {
	ID        string    `json:"id"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	TokenID   string    `json:"tokenId,omitempty"`
}
