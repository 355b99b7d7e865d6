package crypto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDeriveKeyIsStablePerUsage(t *testing.T) {
	a, err := DeriveKey([]byte("master"), "usage-a")
	require.NoError(t, err)
	again, err := DeriveKey([]byte("master"), "usage-a")
	require.NoError(t, err)
	b, err := DeriveKey([]byte("master"), "usage-b")
	require.NoError(t, err)
	child, err := DeriveKey([]byte("master"), "usage-a", "child")
	require.NoError(t, err)

	require.Len(t, a, 32)
	require.Equal(t, a, again)
	require.NotEqual(t, a, b)
	require.NotEqual(t, a, child)

	_, err = DeriveKey(nil, "usage-a")
	require.Error(t, err)
}

func TestSealerRoundtrip(t *testing.T) {
	s, err := NewSealer("master", "tokens")
	require.NoError(t, err)

	sealed, err := s.Seal([]byte("svc-abc"))
	require.NoError(t, err)
	require.NotContains(t, string(sealed), "svc-abc")

	plain, err := s.Open(sealed)
	require.NoError(t, err)
	require.Equal(t, "svc-abc", string(plain))

	other, err := NewSealer("other", "tokens")
	require.NoError(t, err)
	_, err = other.Open(sealed)
	require.Error(t, err)

	_, err = s.Open([]byte("short"))
	require.Error(t, err)
}

func TestViewTokensRoundtrip(t *testing.T) {
	v, err := NewViewTokens("master", 15*time.Minute)
	require.NoError(t, err)

	token, err := v.Mint("m1", "u1", "iframe")
	require.NoError(t, err)

	claims, err := v.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "m1", claims.MapID)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, "iframe", claims.Command)
}

func TestViewTokensRejectExpiredAndForeign(t *testing.T) {
	v, err := NewViewTokens("master", time.Minute)
	require.NoError(t, err)
	start := time.Unix(1_700_000_000, 0)
	v.now = func() time.Time { return start }

	token, err := v.Mint("m1", "u1", "url")
	require.NoError(t, err)

	v.now = func() time.Time { return start.Add(2 * time.Minute) }
	_, err = v.Verify(token)
	require.Error(t, err)

	foreign, err := NewViewTokens("someone-else", time.Minute)
	require.NoError(t, err)
	foreignToken, err := foreign.Mint("m1", "u1", "url")
	require.NoError(t, err)
	v.now = time.Now
	_, err = v.Verify(foreignToken)
	require.Error(t, err)
}
