package token

import (
	"testing"
	"time"

	"gigbud/internal/config"

	"github.com/stretchr/testify/assert"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTAccessSecret:  "access-secret",
		JWTRefreshSecret: "refresh-secret",
		AccessTokenTTL:   time.Hour,
		RefreshTokenTTL:  7 * 24 * time.Hour,
	}
}

func TestIssueAndVerifyPair(t *testing.T) {
	m := NewManager(testConfig())

	pair, err := m.IssuePair(42, "john@example.com", "user")
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := m.VerifyAccess(pair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "john@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)

	refreshClaims, err := m.VerifyRefresh(pair.RefreshToken)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), refreshClaims.UserID)
}

func TestAccessAndRefreshSecretsAreIndependent(t *testing.T) {
	m := NewManager(testConfig())

	pair, err := m.IssuePair(1, "a@x.com", "user")
	assert.NoError(t, err)

	// A refresh token must never pass as an access token and vice versa.
	_, err = m.VerifyAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.VerifyRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := NewManager(testConfig())

	_, err := m.VerifyAccess("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	m := NewManager(testConfig())
	other := NewManager(&config.Config{
		JWTAccessSecret:  "different-secret",
		JWTRefreshSecret: "different-refresh",
		AccessTokenTTL:   time.Hour,
		RefreshTokenTTL:  time.Hour,
	})

	pair, err := other.IssuePair(1, "a@x.com", "user")
	assert.NoError(t, err)

	_, err = m.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeExpiredRecoversClaims(t *testing.T) {
	cfg := testConfig()
	cfg.AccessTokenTTL = -time.Minute
	m := NewManager(cfg)

	access, err := m.IssueAccess(7, "stale@example.com", "user")
	assert.NoError(t, err)

	// An expired token fails normal verification but logout still needs
	// its subject and original expiry.
	_, err = m.VerifyAccess(access)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims, err := m.DecodeExpired(access)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.True(t, claims.ExpiresAt.Before(time.Now()))
}
