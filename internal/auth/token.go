package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the API bearer token claims. The role travels with the token:
// it is immutable for the session once issued at login.
type Claims struct {
	UserID     uint64 `json:"uid"`
	Role       string `json:"role"`
	BranchCode string `json:"branch,omitempty"`
	jwt.RegisteredClaims
}

// IssueToken creates a signed HS256 bearer token for a user session.
func IssueToken(secret string, userID uint64, role Role, branchCode string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		UserID:     userID,
		Role:       role.String(),
		BranchCode: branchCode,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "evcare-admin",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secret)) //nolint:wrapcheck
}

// ParseToken validates a bearer token and returns its claims. Only HS256
// signatures are accepted.
func ParseToken(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(_ *jwt.Token) (any, error) {
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if _, err := ParseRole(claims.Role); err != nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
