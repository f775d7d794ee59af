package sessions

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/qrgate/qrgate/internal/ident"
)

// DefaultTTL is applied when Create is called with a zero ttl.
const DefaultTTL = 10 * time.Minute

// ErrNotFound covers both never-existed and expired-and-purged sessions; the
// two are deliberately indistinguishable to callers.
var ErrNotFound = errors.New("session not found or expired")

// NotPendingError reports an illegal transition attempt and carries the
// current status for diagnostics.
type NotPendingError struct {
	Status Status
}

func (e *NotPendingError) Error() string {
	return fmt.Sprintf("session is not pending (current: %s)", e.Status)
}

// Store keeps authentication sessions in memory. All mutations happen under a
// single store-level mutex; there are no cross-record invariants.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create registers a new pending session. A zero ttl means DefaultTTL.
func (s *Store) Create(ttl time.Duration) (Session, error) {
	id, err := ident.NewSessionID()
	if err != nil {
		return Session{}, err
	}
	if ttl == 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	sess := &Session{
		ID:        id,
		Status:    StatusPending,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	return *sess, nil
}

// lookup must be called with the lock held. It deletes records whose deadline
// has passed (lazy expiry) and reports them as not found.
func (s *Store) lookup(id string) (*Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(sess.ExpiresAt) {
		delete(s.sessions, id)
		return nil, ErrNotFound
	}
	return sess, nil
}

// Get returns a copy of the session, or ErrNotFound if it does not exist or
// its deadline has passed.
func (s *Store) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookup(id)
	if err != nil {
		return Session{}, err
	}
	return *sess, nil
}

// TransitionToAuthenticated moves a pending session to authenticated. Any
// other current status fails with NotPendingError and does not mutate.
func (s *Store) TransitionToAuthenticated(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookup(id)
	if err != nil {
		return err
	}
	if sess.Status != StatusPending {
		return &NotPendingError{Status: sess.Status}
	}
	sess.Status = StatusAuthenticated
	return nil
}

// LinkToken records the token reference on a live session.
func (s *Store) LinkToken(id, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookup(id)
	if err != nil {
		return err
	}
	sess.TokenID = tokenID
	return nil
}

// Authenticate performs the status transition and the token link as one
// mutation under the store lock, so a concurrent Get never observes an
// authenticated session without its token reference.
func (s *Store) Authenticate(id, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookup(id)
	if err != nil {
		return err
	}
	if sess.Status != StatusPending {
		return &NotPendingError{Status: sess.Status}
	}
	sess.Status = StatusAuthenticated
	sess.TokenID = tokenID
	return nil
}

// SweepExpired removes every record whose deadline has passed and returns the
// number removed. Safe to call from a timer; lazy expiry in Get remains
// authoritative between sweeps.
func (s *Store) SweepExpired() int {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Count reports the number of stored sessions (monitoring/tests).
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
