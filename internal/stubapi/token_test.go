// internal/stubapi/token_test.go
package stubapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediastore/internal/identity"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := newTokenIssuer("secret", time.Hour)
	user := &identity.User{ID: 7, Username: "alice", Roles: []string{"CUSTOMER", "ADMIN"}}

	signed, err := issuer.Issue(user)
	require.NoError(t, err)

	claims, err := issuer.Validate(signed)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, []string{"CUSTOMER", "ADMIN"}, claims.Roles)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	signed, err := newTokenIssuer("secret", time.Hour).Issue(&identity.User{Username: "alice"})
	require.NoError(t, err)

	_, err = newTokenIssuer("other-secret", time.Hour).Validate(signed)
	assert.Error(t, err)
}

func TestTokenRejectsExpired(t *testing.T) {
	signed, err := newTokenIssuer("secret", -time.Minute).Issue(&identity.User{Username: "alice"})
	require.NoError(t, err)

	_, err = newTokenIssuer("secret", time.Hour).Validate(signed)
	assert.Error(t, err)
}

func TestTokenRejectsGarbage(t *testing.T) {
	_, err := newTokenIssuer("secret", time.Hour).Validate("not-a-token")
	assert.Error(t, err)
}
