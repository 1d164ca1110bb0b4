package jwt

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultExp is used when a JWT instance is constructed with a
// non-positive expiration.
const DefaultExp = 15 * time.Minute

// ErrInvalidToken is returned for every verification failure: bad
// signature, malformed token, wrong signing method, expired token or
// missing subject. Callers never learn which check failed.
var ErrInvalidToken = errors.New("invalid token")

// JWT issues and verifies HS256 bearer tokens carrying a subject claim.
type JWT struct {
	SecretKey string        // Secret key for signing tokens
	Exp       time.Duration // Token lifetime
}

// New creates a new JWT instance. A non-positive expiration falls back
// to DefaultExp.
func New(secretKey string, exp time.Duration) *JWT {
	if exp <= 0 {
		exp = DefaultExp
	}
	return &JWT{
		SecretKey: secretKey,
		Exp:       exp,
	}
}

// Generate creates a signed token for the given subject, expiring
// Exp from now.
func (j *JWT) Generate(ctx context.Context, subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(j.Exp)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.SecretKey))
}

// GetSubject verifies the token and returns its subject claim.
// Any failure yields ErrInvalidToken.
func (j *JWT) GetSubject(ctx context.Context, tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(j.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// GetTokenFromRequest extracts the token string from the Authorization header
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header missing")
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}
