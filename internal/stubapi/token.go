// internal/stubapi/token.go
package stubapi

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"mediastore/internal/identity"
)

// tokenClaims is what the stub encodes into its JWTs: enough to identify the
// user and authorize admin endpoints without a database lookup.
type tokenClaims struct {
	UserID   int      `json:"userId"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// tokenIssuer signs and validates the stub's HS256 tokens.
type tokenIssuer struct {
	secret []byte
	expiry time.Duration
}

func newTokenIssuer(secret string, expiry time.Duration) *tokenIssuer {
	return &tokenIssuer{secret: []byte(secret), expiry: expiry}
}

// Issue creates a signed token for the user.
func (t *tokenIssuer) Issue(user *identity.User) (string, error) {
	claims := tokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		Roles:    user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(t.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "mediastore-stubapi",
			Subject:   user.Username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses a token string and returns its claims if the signature and
// expiry check out.
func (t *tokenIssuer) Validate(tokenString string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
