package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/elhassanefek/projectify-sub000/errors"
)

// Identity is the authenticated principal bound to a connection for its
// whole lifetime.
type Identity struct {
	UserID string
	Roles  []string
}

// Authenticate resolves the bearer credential of a connection handshake.
// The explicit token query field wins; the Authorization header is the
// fallback. Missing or invalid credentials reject the connection attempt,
// nothing else.
func (m *TokenManager) Authenticate(r *http.Request) (Identity, error) {
	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		header := r.Header.Get("Authorization")
		tokenString = strings.TrimPrefix(header, "Bearer ")
	}
	if tokenString == "" {
		return Identity{}, errors.ErrMissingToken
	}

	claims, err := m.Validate(tokenString)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", errors.ErrInvalidToken, err)
	}
	return Identity{UserID: claims.UserID, Roles: claims.Roles}, nil
}
