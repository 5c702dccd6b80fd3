// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vidora/internal/platform/sec"
)

/*
TestTokenService_RoundTrip signs a token and verifies it with the same key pair.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	service := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "vidora.app")
	token, err := service.GenerateAccessToken("user-1", "tai", string(sec.RoleMember), time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "tai", claims.Username)
	assert.Equal(t, "member", claims.Role)
}

/*
TestTokenService_Rejects covers expired tokens, foreign issuers and verify-only mode.
*/
func TestTokenService_Rejects(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		service := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "vidora.app")
		token, err := service.GenerateAccessToken("user-1", "tai", "member", -time.Minute)
		require.NoError(t, err)

		_, err = service.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("foreign_issuer", func(t *testing.T) {
		other := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "elsewhere")
		token, err := other.GenerateAccessToken("user-1", "tai", "member", time.Minute)
		require.NoError(t, err)

		service := sec.NewTokenServiceFromKeys(nil, &key.PublicKey, "vidora.app")
		_, err = service.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("verify_only", func(t *testing.T) {
		service := sec.NewTokenServiceFromKeys(nil, &key.PublicKey, "vidora.app")
		_, err := service.GenerateAccessToken("user-1", "tai", "member", time.Minute)
		assert.ErrorIs(t, err, sec.ErrSigningDisabled)
	})
}

/*
TestUserRole_AtLeast verifies the role hierarchy.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleModerator))
	assert.True(t, sec.RoleMember.AtLeast(sec.RoleMember))
	assert.False(t, sec.RoleMember.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.UserRole("guest").AtLeast(sec.RoleMember))
}

/*
TestSessionDigester checks determinism, keying and part separation.
*/
func TestSessionDigester(t *testing.T) {
	_, err := sec.NewSessionDigester("")
	require.Error(t, err)

	a, err := sec.NewSessionDigester("secret-a")
	require.NoError(t, err)
	b, err := sec.NewSessionDigester("secret-b")
	require.NoError(t, err)

	digest := a.Digest("203.0.113.7", "curl/8.0")
	assert.Len(t, digest, 64)
	assert.Equal(t, digest, a.Digest("203.0.113.7", "curl/8.0"))
	assert.NotEqual(t, digest, b.Digest("203.0.113.7", "curl/8.0"))
	assert.NotEqual(t, a.Digest("ab", "c"), a.Digest("a", "bc"))
	assert.NotContains(t, digest, "203.0.113.7")

	long, err := sec.NewSessionDigester(strings.Repeat("k", 100))
	require.NoError(t, err)
	assert.Len(t, long.Digest("x"), 64)
}
