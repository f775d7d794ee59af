package ident

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSessionID(t *testing.T) {
	id, err := NewSessionID()
	require.NoError(t, err)
	require.Len(t, id, 32)
	_, err = hex.DecodeString(id)
	require.NoError(t, err)
}

func TestNewTokenID(t *testing.T) {
	id, err := NewTokenID()
	require.NoError(t, err)
	require.Len(t, id, 64)
	_, err = hex.DecodeString(id)
	require.NoError(t, err)
}

func TestNewUserID(t *testing.T) {
	id, err := NewUserID()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(id, "user_"))
	require.Len(t, id, len("user_")+16)
}

func TestIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, err := NewTokenID()
		require.NoError(t, err)
		require.False(t, seen[id], "duplicate token id generated")
		seen[id] = true
	}
}
