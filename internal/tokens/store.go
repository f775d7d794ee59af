package tokens

import (
	"sync"
	"time"

	"github.com/qrgate/qrgate/internal/ident"
)

// DefaultTTL is applied when Issue is called with a zero ttl.
const DefaultTTL = 7 * 24 * time.Hour

// Store keeps bearer tokens in memory, guarded by a single store-level mutex.
type Store struct {
	mu     sync.Mutex
	tokens map[string]*Token
}

func NewStore() *Store {
	return &Store{tokens: make(map[string]*Token)}
}

// Issue mints a new token and returns its id, which is the bearer credential
// itself. An empty userID gets a freshly synthesized identity; a zero ttl
// means DefaultTTL.
func (s *Store) Issue(sessionID, userID string, ttl time.Duration) (string, error) {
	id, err := ident.NewTokenID()
	if err != nil {
		return "", err
	}
	if userID == "" {
		userID, err = ident.NewUserID()
		if err != nil {
			return "", err
		}
	}
	if ttl == 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	tok := &Token{
		ID:        id,
		SessionID: sessionID,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	s.mu.Lock()
	s.tokens[id] = tok
	s.mu.Unlock()
	return id, nil
}

// Validate checks whether the token is currently usable. Revocation is
// checked before expiry so a revoked token keeps answering "revoked" rather
// than decaying to "invalid"; expired unrevoked tokens are purged on this
// check and report "invalid" afterwards.
func (s *Store) Validate(id string) Validation {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok, ok := s.tokens[id]
	if !ok {
		return Validation{Valid: false, Reason: ReasonInvalid}
	}
	if tok.IsRevoked {
		return Validation{Valid: false, Reason: ReasonRevoked}
	}
	if time.Now().After(tok.ExpiresAt) {
		delete(s.tokens, id)
		return Validation{Valid: false, Reason: ReasonExpired}
	}
	return Validation{Valid: true, UserID: tok.UserID, ExpiresAt: tok.ExpiresAt.UnixMilli()}
}

// Get returns a copy of the stored token record regardless of its state.
func (s *Store) Get(id string) (Token, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok, ok := s.tokens[id]
	if !ok {
		return Token{}, false
	}
	return *tok, true
}

// Delete removes the record outright. Meant for tokens that were never handed
// to a client; revocation is the right call for anything already visible.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, id)
}

// Revoke marks the token revoked. Unknown ids are a no-op; revocation is
// monotonic and idempotent.
func (s *Store) Revoke(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok, ok := s.tokens[id]; ok {
		tok.IsRevoked = true
	}
}

// RevokeAllForUser revokes every token issued to the given user and returns
// how many were newly revoked.
func (s *Store) RevokeAllForUser(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, tok := range s.tokens {
		if tok.UserID == userID && !tok.IsRevoked {
			tok.IsRevoked = true
			n++
		}
	}
	return n
}

// SweepExpired removes every record whose deadline has passed, revoked or
// not. Expiry is the stronger terminal state for storage purposes; the
// revoked-vs-expired distinction only matters for records not yet swept.
func (s *Store) SweepExpired() int {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, tok := range s.tokens {
		if now.After(tok.ExpiresAt) {
			delete(s.tokens, id)
			removed++
		}
	}
	return removed
}

// Count reports the number of stored tokens (monitoring/tests).
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}
