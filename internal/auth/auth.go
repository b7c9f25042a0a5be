// Package auth implements token based authentication for the API.
//
// Tokens are signed JWTs. They are stateless, a token stays valid
// until it expires even if the user record changes.
package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoToken      = errors.New("you need to provide a bearer token in the Authorization header")
	ErrInvalidToken = errors.New("the authentication token is invalid or expired")
)

// TokenLifetime is how long an issued token stays valid.
const TokenLifetime = 24 * time.Hour

// Claims are the JWT claims for an authenticated administrator.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// secret returns the key used to sign and verify tokens. It must be
// set in the JWT_SECRET environment variable for production use.
func secret() []byte {
	if s, ok := os.LookupEnv("JWT_SECRET"); ok {
		return []byte(s)
	}

	return []byte("shulebooks-insecure-development-secret")
}

// IssueToken returns a signed token for the user.
func IssueToken(userID, email, name string) (string, error) {
	now := time.Now()

	claims := Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    "shulebooks",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

// ValidateToken parses and verifies a token string.
func ValidateToken(token string) (*Claims, error) {
	var claims Claims

	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}

		return secret(), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return &claims, nil
}
