package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature, wrong alg, expired, missing claims.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the access token payload. Subject carries the user id.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HMAC access tokens.
type TokenManager struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager accepts HS256, HS384 or HS512.
func NewTokenManager(secret, algorithm string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("jwt: empty secret")
	}
	m := jwt.GetSigningMethod(algorithm)
	if _, ok := m.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("jwt: unsupported algorithm %q", algorithm)
	}
	return &TokenManager{secret: []byte(secret), method: m, ttl: ttl, now: time.Now}, nil
}

// TTL is the lifetime given to new tokens.
func (tm *TokenManager) TTL() time.Duration { return tm.ttl }

// Issue returns a signed token for the user.
func (tm *TokenManager) Issue(userID, email string) (string, error) {
	now := tm.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}
	return jwt.NewWithClaims(tm.method, claims).SignedString(tm.secret)
}

// Verify parses raw and returns its claims when the signature, algorithm and expiry check out
// and both subject and email are present.
func (tm *TokenManager) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{tm.method.Alg()}), // rejects "none" and algorithm swaps
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.Email == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
