package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput covers malformed request payloads: missing or
	// ill-formed MSISDNs, codes, and service identifiers.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized is the single user-facing authentication failure.
	// Token-level sentinels below wrap it so handlers never leak which
	// check failed.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidOTP hides whether no code was outstanding or the digits
	// mismatched, to prevent probing for pending verifications.
	ErrInvalidOTP = errors.New("invalid otp")

	ErrTokenMalformed = fmt.Errorf("%w: malformed token", ErrUnauthorized)
	ErrTokenSignature = fmt.Errorf("%w: invalid token signature", ErrUnauthorized)
	ErrTokenExpired   = fmt.Errorf("%w: token expired", ErrUnauthorized)

	// ErrAlreadySubscribed is an expected business outcome, not a fault.
	// Billing is never attempted and no transaction is recorded for it.
	ErrAlreadySubscribed = errors.New("already subscribed")
	// ErrUnknownProvider is a configuration defect: the carrier id has no
	// entry in the provider table. Surfaced as a server fault, never as a
	// billing decline.
	ErrUnknownProvider = errors.New("unknown billing provider")
	ErrRateLimited     = errors.New("rate limited")
)

// BillingDeclinedError carries the synthetic receipt of a declined carrier
// billing attempt so callers can return the receipt alongside the failure.
type BillingDeclinedError struct {
	Receipt BillingReceipt
}

func (e *BillingDeclinedError) Error() string {
	return fmt.Sprintf("billing declined by %s (transaction %s)", e.Receipt.Provider, e.Receipt.TransactionID)
}
