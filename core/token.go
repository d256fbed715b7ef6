package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenMissing      = errors.New("token missing")
	ErrTokenMalformed    = errors.New("token malformed")
	ErrTokenBadSignature = errors.New("token signature invalid")
	ErrTokenExpired      = errors.New("token expired")

	ErrEmptySubject = errors.New("token subject cannot be empty")
)

const tokenIssuer = "wayfarer"

// TokenCodec mints and verifies self-contained bearer tokens (HS256 JWTs).
// The signing secret is injected once at construction and never changes for
// the process lifetime. The codec keeps no other state, so it is safe for
// concurrent use.
type TokenCodec struct {
	secret []byte
}

func NewTokenCodec(secret []byte) *TokenCodec {
	return &TokenCodec{secret: secret}
}

// Issue signs a token for subject valid from now until now+ttl.
func (c *TokenCodec) Issue(subject string, now time.Time, ttl time.Duration) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, ErrEmptySubject
	}

	exp := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return signed, exp, nil
}

// Verify checks token against the codec secret and returns its subject.
// The signature is authenticated before any claim is interpreted: a tampered
// token reports ErrTokenBadSignature regardless of what its payload says.
func (c *TokenCodec) Verify(token string, now time.Time) (string, error) {
	if token == "" {
		return "", ErrTokenMissing
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)

	switch {
	case err == nil && parsed.Valid:
		if claims.Subject == "" {
			return "", ErrTokenMalformed
		}
		return claims.Subject, nil
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "", ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "", ErrTokenBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", ErrTokenExpired
	default:
		return "", ErrTokenMalformed
	}
}
