package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Signer signs session claims into compact JWTs.
type Signer interface {
	Sign(Claims) (string, error)
}

// Verifier parses and verifies compact JWTs into session claims.
type Verifier interface {
	Verify(raw string) (Claims, error)
}

const minSecretBytes = 32

// HS256 is a symmetric HS256 signer/verifier. The social service is the only
// issuer and consumer of its session tokens, so a shared secret is enough; no
// key distribution problem to solve.
type HS256 struct {
	secret []byte
	issuer string
}

// NewHS256 returns a Signer+Verifier using the given shared secret. The
// secret must carry at least 256 bits.
func NewHS256(secret []byte, issuer string) (*HS256, error) {
	if len(secret) < minSecretBytes {
		return nil, fmt.Errorf("jwtx: hs256 secret must be at least %d bytes, got %d", minSecretBytes, len(secret))
	}
	return &HS256{secret: secret, issuer: issuer}, nil
}

func (h *HS256) Sign(c Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(h.secret)
}

func (h *HS256) Verify(raw string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("jwtx: unexpected signing method %q", t.Method.Alg())
		}
		return h.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, err
	}
	if err := claims.ValidateIssuer(h.issuer); err != nil {
		return Claims{}, err
	}
	return claims, nil
}
