package ports

import "time"

// AuthClaims is the validated content of a session token. Tokens are
// stateless: validity is recomputed from these signed claims on every
// request, there is no server-side session record.
type AuthClaims struct {
	MSISDN    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenSigner mints and validates signed session tokens. Implementations
// must return the domain token sentinels so adapters can collapse every
// failure into one unauthenticated response.
type TokenSigner interface {
	Sign(claims AuthClaims) (string, error)
	ParseAndValidate(raw string) (AuthClaims, error)
}
