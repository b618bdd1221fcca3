package security_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mobivas/vas-platform/internal/adapters/security"
	"github.com/mobivas/vas-platform/internal/domain"
	"github.com/mobivas/vas-platform/internal/ports"
)

func newSigner(t *testing.T) *security.JWTSigner {
	t.Helper()
	signer, err := security.NewJWTSigner("unit-test-secret")
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	return signer
}

func TestSignAndValidateRoundTrip(t *testing.T) {
	t.Parallel()

	signer := newSigner(t)
	now := time.Now().UTC().Truncate(time.Second)
	token, err := signer.Sign(ports.AuthClaims{
		MSISDN:    "27821234567",
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := signer.ParseAndValidate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.MSISDN != "27821234567" {
		t.Fatalf("expected msisdn round trip, got %q", claims.MSISDN)
	}
	if !claims.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("expected expiry round trip, got %v", claims.ExpiresAt)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	t.Parallel()

	signer := newSigner(t)
	now := time.Now().UTC()
	token, err := signer.Sign(ports.AuthClaims{
		MSISDN:    "27821234567",
		IssuedAt:  now.Add(-2 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = signer.ParseAndValidate(token)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expired tokens must unwrap to ErrUnauthorized, got %v", err)
	}
}

func TestForeignSignatureRejected(t *testing.T) {
	t.Parallel()

	signer := newSigner(t)
	other, err := security.NewJWTSigner("a-different-secret")
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}

	now := time.Now().UTC()
	token, err := other.Sign(ports.AuthClaims{
		MSISDN:    "27821234567",
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = signer.ParseAndValidate(token)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected an unauthorized error, got %v", err)
	}
}

func TestTamperedPayloadRejected(t *testing.T) {
	t.Parallel()

	signer := newSigner(t)
	now := time.Now().UTC()
	token, err := signer.Sign(ports.AuthClaims{
		MSISDN:    "27821234567",
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	parts := strings.Split(token, ".")
	parts[1] = strings.Map(func(r rune) rune {
		if r == 'a' {
			return 'b'
		}
		return r
	}, parts[1])
	if _, err := signer.ParseAndValidate(strings.Join(parts, ".")); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected an unauthorized error for tampered payload, got %v", err)
	}
}

func TestMalformedTokenRejected(t *testing.T) {
	t.Parallel()

	signer := newSigner(t)
	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := signer.ParseAndValidate(raw); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("expected an unauthorized error for %q, got %v", raw, err)
		}
	}
}

func TestEphemeralSignersDoNotShareKeys(t *testing.T) {
	t.Parallel()

	first, err := security.NewEphemeralJWTSigner()
	if err != nil {
		t.Fatalf("ephemeral signer: %v", err)
	}
	second, err := security.NewEphemeralJWTSigner()
	if err != nil {
		t.Fatalf("ephemeral signer: %v", err)
	}

	now := time.Now().UTC()
	token, err := first.Sign(ports.AuthClaims{MSISDN: "27821234567", IssuedAt: now, ExpiresAt: now.Add(time.Hour)})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := second.ParseAndValidate(token); err == nil {
		t.Fatalf("a token from one ephemeral signer must not validate on another")
	}
}
