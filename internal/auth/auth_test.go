package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestTokens(now time.Time) *TokenManager {
	tm := NewTokenManager("test-secret", "test-issuer", time.Hour)
	tm.now = func() time.Time { return now }
	return tm
}

func TestGate_Authenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	require.NoError(t, err)
	gate, err := NewGate(string(hash))
	require.NoError(t, err)

	s := NewSession()
	assert.False(t, s.Privileged())

	assert.ErrorIs(t, gate.Authenticate(s, "wrong"), ErrBadPassword)
	assert.False(t, s.Privileged())

	require.NoError(t, gate.Authenticate(s, "letmein"))
	assert.True(t, s.Privileged())

	// a later failure never downgrades
	assert.ErrorIs(t, gate.Authenticate(s, "wrong"), ErrBadPassword)
	assert.True(t, s.Privileged())
}

func TestGate_RejectsInputPastBcryptLimit(t *testing.T) {
	secret := strings.Repeat("a", 72)
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
	require.NoError(t, err)
	gate, err := NewGate(string(hash))
	require.NoError(t, err)

	s := NewSession()
	assert.ErrorIs(t, gate.Authenticate(s, secret+"-not-the-password"), ErrBadPassword)
	assert.ErrorIs(t, gate.Authenticate(s, secret+"a"), ErrBadPassword)
	assert.False(t, s.Privileged())

	require.NoError(t, gate.Authenticate(s, secret))
	assert.True(t, s.Privileged())
}

func TestNewGateFromPassword_RejectsOverlongSecret(t *testing.T) {
	_, err := NewGateFromPassword(strings.Repeat("a", 73))
	assert.Error(t, err)
}

func TestGate_SessionsDoNotSharePrivilege(t *testing.T) {
	gate, err := NewGateFromPassword("letmein")
	require.NoError(t, err)

	a, b := NewSession(), NewSession()
	require.NoError(t, gate.Authenticate(a, "letmein"))
	assert.True(t, a.Privileged())
	assert.False(t, b.Privileged())
}

func TestNewGate_RejectsPlaintext(t *testing.T) {
	_, err := NewGate("not-a-hash")
	assert.Error(t, err)
}

func TestNilSessionIsNotPrivileged(t *testing.T) {
	var s *Session
	assert.False(t, s.Privileged())
}

func TestTokenManager_RoundTrip(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tm := newTestTokens(now)

	token, expiresAt, err := tm.Generate("session-1")
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expiresAt)

	id, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "session-1", id)
}

func TestTokenManager_Rejects(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tm := newTestTokens(now)
	token, _, err := tm.Generate("session-1")
	require.NoError(t, err)

	tests := []struct {
		name  string
		tm    *TokenManager
		token string
	}{
		{name: "garbage", tm: tm, token: "not.a.token"},
		{name: "wrong secret", tm: func() *TokenManager {
			other := NewTokenManager("other-secret", "test-issuer", time.Hour)
			other.now = tm.now
			return other
		}(), token: token},
		{name: "wrong issuer", tm: func() *TokenManager {
			other := NewTokenManager("test-secret", "someone-else", time.Hour)
			other.now = tm.now
			return other
		}(), token: token},
		{name: "expired", tm: newTestTokens(now.Add(2 * time.Hour)), token: token},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.tm.Parse(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestRegistry_OpenAndResolve(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	reg := NewRegistry(newTestTokens(now))

	s, err := reg.Open()
	require.NoError(t, err)
	require.NotEmpty(t, s.Token())
	assert.Equal(t, now.Add(time.Hour), s.ExpiresAt())

	got, err := reg.Resolve(s.Token())
	require.NoError(t, err)
	assert.Same(t, s, got)

	token := s.Token()
	require.NoError(t, reg.Register(s))
	assert.Equal(t, token, s.Token())
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_ResolveUnknownSession(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tokens := newTestTokens(now)
	token, _, err := tokens.Generate("never-registered")
	require.NoError(t, err)

	_, err = NewRegistry(tokens).Resolve(token)
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestRegistry_PrunesExpiredSessions(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tokens := newTestTokens(now)
	reg := NewRegistry(tokens)

	_, err := reg.Open()
	require.NoError(t, err)

	later := now.Add(2 * time.Hour)
	tokens.now = func() time.Time { return later }
	_, err = reg.Open()
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistry_LimitTurnsAwayOnlyUnprivilegedSessions(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tokens := newTestTokens(now)
	reg := NewRegistry(tokens, WithSessionLimit(2))

	for i := 0; i < 2; i++ {
		_, err := reg.Open()
		require.NoError(t, err)
	}
	_, err := reg.Open()
	assert.ErrorIs(t, err, ErrRegistryFull)
	assert.Equal(t, 2, reg.Len())

	admin := NewSession()
	admin.privileged.Store(true)
	require.NoError(t, reg.Register(admin))
	assert.NotEmpty(t, admin.Token())
	assert.Equal(t, 3, reg.Len())

	// expired entries free their slots
	tokens.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = reg.Open()
	require.NoError(t, err)
}
