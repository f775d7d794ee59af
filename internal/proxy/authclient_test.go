package proxy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/qrgate/qrgate/internal/tokens"
)

func TestAuthClientValid(t *testing.T) {
	exp := time.Now().Add(time.Hour).UnixMilli()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/user/validate", r.URL.Path)
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(tokens.Validation{Valid: true, UserID: "user_ab", ExpiresAt: exp})
	}))
	defer srv.Close()

	c := NewAuthClient(srv.URL, time.Second)
	v, err := c.Validate(context.Background(), "tok-123")
	require.NoError(t, err)
	require.True(t, v.Valid)
	require.Equal(t, "user_ab", v.UserID)
	require.Equal(t, exp, v.ExpiresAt)
}

func TestAuthClientRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(tokens.Validation{Valid: false, Reason: tokens.ReasonRevoked})
	}))
	defer srv.Close()

	c := NewAuthClient(srv.URL, time.Second)
	v, err := c.Validate(context.Background(), "revoked-token")
	require.NoError(t, err) // a rejection is a verdict, not an error
	require.False(t, v.Valid)
	require.Equal(t, tokens.ReasonRevoked, v.Reason)
}

func TestAuthClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewAuthClient(srv.URL, time.Second)
	_, err := c.Validate(context.Background(), "tok")
	require.Error(t, err)
}

func TestAuthClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	c := NewAuthClient(addr, 200*time.Millisecond)
	_, err := c.Validate(context.Background(), "tok")
	require.Error(t, err)
}
