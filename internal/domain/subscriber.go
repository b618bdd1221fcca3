package domain

import (
	"fmt"
	"strings"
	"time"
)

// AdminMSISDN is the single privileged subscriber identity. The admin
// dashboard registers under this number; there is no role system beyond it.
const AdminMSISDN = "27820000000"

// NormalizeMSISDN canonicalizes a mobile number into the digit-only form
// used as the primary key across every store. A leading "+" and interior
// whitespace are tolerated; anything else non-numeric is rejected.
func NormalizeMSISDN(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "+")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	if cleaned == "" {
		return "", fmt.Errorf("%w: msisdn is required", ErrInvalidInput)
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: msisdn must be numeric", ErrInvalidInput)
		}
	}
	if len(cleaned) < 7 || len(cleaned) > 15 {
		return "", fmt.Errorf("%w: msisdn length out of range", ErrInvalidInput)
	}
	return cleaned, nil
}

// OneTimeCode is an outstanding login code for one subscriber. At most one
// code exists per MSISDN; a newer issuance overwrites any prior one.
type OneTimeCode struct {
	MSISDN    string
	Code      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the code's validity window has passed.
func (c OneTimeCode) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
