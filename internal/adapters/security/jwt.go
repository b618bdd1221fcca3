package security

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mobivas/vas-platform/internal/domain"
	"github.com/mobivas/vas-platform/internal/ports"
)

// JWTSigner implements HS256 session token signing/parsing. Tokens are
// stateless, so every request path validates against the same key; rotating
// the key invalidates all outstanding sessions at once. That is accepted
// operational behavior, not a defect.
type JWTSigner struct {
	secret []byte
}

// NewJWTSigner builds a signer from the configured secret.
func NewJWTSigner(secret string) (*JWTSigner, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &JWTSigner{secret: []byte(secret)}, nil
}

// NewEphemeralJWTSigner generates a random in-memory secret for local/dev
// runs where no static secret is configured. Sessions die with the process.
func NewEphemeralJWTSigner() (*JWTSigner, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate ephemeral secret: %w", err)
	}
	return &JWTSigner{secret: secret}, nil
}

type sessionClaims struct {
	MSISDN string `json:"msisdn"`
	jwt.RegisteredClaims
}

func (s *JWTSigner) Sign(claims ports.AuthClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		MSISDN: claims.MSISDN,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	})
	return token.SignedString(s.secret)
}

// ParseAndValidate maps library failures onto the domain token sentinels.
// All of them unwrap to domain.ErrUnauthorized, so the HTTP layer cannot
// leak which check rejected the token.
func (s *JWTSigner) ParseAndValidate(raw string) (ports.AuthClaims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &sessionClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return ports.AuthClaims{}, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return ports.AuthClaims{}, domain.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return ports.AuthClaims{}, domain.ErrTokenSignature
		default:
			return ports.AuthClaims{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
		}
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return ports.AuthClaims{}, domain.ErrTokenMalformed
	}
	if claims.MSISDN == "" || claims.ExpiresAt == nil {
		return ports.AuthClaims{}, domain.ErrTokenMalformed
	}

	out := ports.AuthClaims{
		MSISDN:    claims.MSISDN,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	return out, nil
}
