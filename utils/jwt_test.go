package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenManager_Algorithms(t *testing.T) {
	tests := []struct {
		alg     string
		wantErr bool
	}{
		{"HS256", false},
		{"HS384", false},
		{"HS512", false},
		{"RS256", true},
		{"none", true},
		{"", true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.alg, func(t *testing.T) {
			_, err := NewTokenManager("secret", tc.alg, time.Hour)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewTokenManager_EmptySecret(t *testing.T) {
	_, err := NewTokenManager("", "HS256", time.Hour)
	assert.Error(t, err)
}

func TestTokenManager_TTL(t *testing.T) {
	tm, err := NewTokenManager("secret", "HS512", 30*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, tm.TTL())
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	// GIVEN
	tm, err := NewTokenManager("secret", "HS256", time.Hour)
	require.NoError(t, err)

	// WHEN
	raw, err := tm.Issue("7b0c", "a@b.co")
	require.NoError(t, err)
	claims, err := tm.Verify(raw)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, "7b0c", claims.Subject)
	assert.Equal(t, "a@b.co", claims.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestVerify_Expired(t *testing.T) {
	tm, _ := NewTokenManager("secret", "HS256", time.Minute)
	tm.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	raw, err := tm.Issue("u1", "a@b.co")
	require.NoError(t, err)

	tm.now = time.Now
	_, err = tm.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	a, _ := NewTokenManager("one", "HS256", time.Hour)
	b, _ := NewTokenManager("two", "HS256", time.Hour)
	raw, _ := a.Issue("u1", "a@b.co")

	_, err := b.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_AlgorithmMismatch(t *testing.T) {
	a, _ := NewTokenManager("secret", "HS512", time.Hour)
	b, _ := NewTokenManager("secret", "HS256", time.Hour)
	raw, _ := a.Issue("u1", "a@b.co")

	_, err := b.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_MissingEmail(t *testing.T) {
	tm, _ := NewTokenManager("secret", "HS256", time.Hour)
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = tm.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	tm, _ := NewTokenManager("secret", "HS256", time.Hour)
	_, err := tm.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
