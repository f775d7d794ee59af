package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	s := NewStore()
	id, err := s.Issue("sess-1", "", 0)
	require.NoError(t, err)
	require.Len(t, id, 64)

	v := s.Validate(id)
	require.True(t, v.Valid)
	require.NotEmpty(t, v.UserID)
	require.Empty(t, v.Reason)

	tok, ok := s.Get(id)
	require.True(t, ok)
	require.Equal(t, "sess-1", tok.SessionID)
	require.Equal(t, v.UserID, tok.UserID)
	// default ttl is 7 days
	require.WithinDuration(t, tok.CreatedAt.Add(7*24*time.Hour), tok.ExpiresAt, time.Second)
	require.Equal(t, tok.ExpiresAt.UnixMilli(), v.ExpiresAt)
}

func TestIssueWithExplicitUser(t *testing.T) {
	s := NewStore()
	id, err := s.Issue("sess-1", "alice", time.Hour)
	require.NoError(t, err)
	v := s.Validate(id)
	require.True(t, v.Valid)
	require.Equal(t, "alice", v.UserID)
}

func TestValidateUnknown(t *testing.T) {
	s := NewStore()
	v := s.Validate("no-such-token")
	require.False(t, v.Valid)
	require.Equal(t, ReasonInvalid, v.Reason)
	require.Empty(t, v.UserID)
}

func TestRevokedAlwaysReportsRevoked(t *testing.T) {
	s := NewStore()
	id, err := s.Issue("sess-1", "bob", time.Hour)
	require.NoError(t, err)

	s.Revoke(id)
	for i := 0; i < 3; i++ {
		v := s.Validate(id)
		require.False(t, v.Valid)
		require.Equal(t, ReasonRevoked, v.Reason)
	}
	// revoked records are never purged by validation
	_, ok := s.Get(id)
	require.True(t, ok)

	// idempotent, including unknown ids
	s.Revoke(id)
	s.Revoke("unknown")
}

func TestExpiredPurgedOnValidate(t *testing.T) {
	s := NewStore()
	id, err := s.Issue("sess-1", "", -time.Second)
	require.NoError(t, err)

	v := s.Validate(id)
	require.False(t, v.Valid)
	require.Equal(t, ReasonExpired, v.Reason)

	// purged on the expired check; it now looks never-issued
	v = s.Validate(id)
	require.Equal(t, ReasonInvalid, v.Reason)
	require.Equal(t, 0, s.Count())
}

func TestDeleteRemovesRecordOutright(t *testing.T) {
	s := NewStore()
	id, err := s.Issue("sess-1", "", time.Hour)
	require.NoError(t, err)

	s.Delete(id)
	require.Equal(t, 0, s.Count())

	// no revoked tombstone: the id looks never-issued
	require.Equal(t, ReasonInvalid, s.Validate(id).Reason)
	_, ok := s.Get(id)
	require.False(t, ok)

	// unknown ids are a no-op
	s.Delete("unknown")
}

func TestRevokeAllForUser(t *testing.T) {
	s := NewStore()
	a1, _ := s.Issue("s1", "alice", time.Hour)
	a2, _ := s.Issue("s2", "alice", time.Hour)
	b1, _ := s.Issue("s3", "bob", time.Hour)

	require.Equal(t, 2, s.RevokeAllForUser("alice"))
	require.Equal(t, ReasonRevoked, s.Validate(a1).Reason)
	require.Equal(t, ReasonRevoked, s.Validate(a2).Reason)
	require.True(t, s.Validate(b1).Valid)

	// already-revoked tokens are not counted again
	require.Equal(t, 0, s.RevokeAllForUser("alice"))
}

func TestSweepRemovesExpiredRegardlessOfRevoked(t *testing.T) {
	s := NewStore()
	expired, _ := s.Issue("s1", "", -time.Second)
	revokedExpired, _ := s.Issue("s2", "", -time.Second)
	s.Revoke(revokedExpired)
	live, _ := s.Issue("s3", "", time.Hour)
	revokedLive, _ := s.Issue("s4", "", time.Hour)
	s.Revoke(revokedLive)

	require.Equal(t, 2, s.SweepExpired())
	require.Equal(t, 2, s.Count())

	_, ok := s.Get(expired)
	require.False(t, ok)
	_, ok = s.Get(revokedExpired)
	require.False(t, ok)
	require.True(t, s.Validate(live).Valid)
	// revoked-but-unexpired survives the sweep and still answers revoked
	require.Equal(t, ReasonRevoked, s.Validate(revokedLive).Reason)
}
