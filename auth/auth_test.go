package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/elhassanefek/projectify-sub000/errors"
)

func TestTokenManager_GenerateThenValidate(t *testing.T) {
	req := require.New(t)
	manager := NewTokenManager("super-secret", "projectify", time.Hour)

	// Given a signed token for alice
	token, err := manager.Generate("alice", []string{"admin"})
	req.NoError(err)
	req.NotEmpty(token)

	// When the token is validated
	claims, err := manager.Validate(token)

	// Then the identity round-trips
	req.NoError(err)
	req.Equal("alice", claims.UserID)
	req.Equal([]string{"admin"}, claims.Roles)
	req.Equal("projectify", claims.Issuer)
}

func TestTokenManager_RejectsExpiredToken(t *testing.T) {
	req := require.New(t)
	manager := NewTokenManager("super-secret", "projectify", -time.Minute)

	token, err := manager.Generate("alice", nil)
	req.NoError(err)

	_, err = manager.Validate(token)
	req.ErrorIs(err, jwt.ErrTokenExpired)
}

func TestTokenManager_RejectsForeignSignature(t *testing.T) {
	req := require.New(t)
	signer := NewTokenManager("secret-a", "projectify", time.Hour)
	verifier := NewTokenManager("secret-b", "projectify", time.Hour)

	token, err := signer.Generate("alice", nil)
	req.NoError(err)

	_, err = verifier.Validate(token)
	req.Error(err)
}

func TestAuthenticate_TokenQueryField(t *testing.T) {
	req := require.New(t)
	manager := NewTokenManager("super-secret", "projectify", time.Hour)
	token, err := manager.Generate("alice", []string{"member"})
	req.NoError(err)

	r := httptest.NewRequest("GET", "/ws?token="+token, nil)

	identity, err := manager.Authenticate(r)
	req.NoError(err)
	req.Equal("alice", identity.UserID)
	req.Equal([]string{"member"}, identity.Roles)
}

func TestAuthenticate_AuthorizationHeaderFallback(t *testing.T) {
	req := require.New(t)
	manager := NewTokenManager("super-secret", "projectify", time.Hour)
	token, err := manager.Generate("alice", nil)
	req.NoError(err)

	r := httptest.NewRequest("GET", "/ws", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	identity, err := manager.Authenticate(r)
	req.NoError(err)
	req.Equal("alice", identity.UserID)
}

func TestAuthenticate_MissingCredential(t *testing.T) {
	manager := NewTokenManager("super-secret", "projectify", time.Hour)

	_, err := manager.Authenticate(httptest.NewRequest("GET", "/ws", nil))
	require.ErrorIs(t, err, errors.ErrMissingToken)
}

func TestAuthenticate_GarbageToken(t *testing.T) {
	manager := NewTokenManager("super-secret", "projectify", time.Hour)

	_, err := manager.Authenticate(httptest.NewRequest("GET", "/ws?token=garbage", nil))
	require.ErrorIs(t, err, errors.ErrInvalidToken)
}
