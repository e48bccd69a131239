package utils

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ============================================================================
// TOKENS
// ============================================================================
// Two audiences share the signing key: landlord access tokens (scope
// "owner") and tenant portal tokens (scope "tenant"). Refresh tokens are
// opaque random strings stored in the sessions table.
// ============================================================================

const (
	ScopeOwner  = "owner"
	ScopeTenant = "tenant"

	accessTokenTTL = 24 * time.Hour
	portalTokenTTL = 12 * time.Hour
)

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Scope  string `json:"scope"`
	jwt.RegisteredClaims
}

func jwtSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}
	return []byte(secret), nil
}

// GenerateAccessToken signs a landlord access token.
func GenerateAccessToken(userID, email string) (string, error) {
	return signToken(Claims{
		UserID: userID,
		Email:  email,
		Scope:  ScopeOwner,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

// GeneratePortalToken signs a read-only tenant portal token. UserID carries
// the tenant id, not a landlord id.
func GeneratePortalToken(tenantID string) (string, error) {
	return signToken(Claims{
		UserID: tenantID,
		Scope:  ScopeTenant,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(portalTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

func signToken(claims Claims) (string, error) {
	secret, err := jwtSecret()
	if err != nil {
		return "", err
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken validates a token and checks it was issued for the expected
// scope.
func ParseToken(tokenString, scope string) (*Claims, error) {
	secret, err := jwtSecret()
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Scope != scope {
		return nil, fmt.Errorf("token scope %q not valid here", claims.Scope)
	}
	return claims, nil
}

// GenerateRefreshToken mints an opaque random refresh token.
func GenerateRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(buf), nil
}
