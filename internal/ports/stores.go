package ports

import (
	"time"

	"github.com/mobivas/vas-platform/internal/domain"
)

// CodeStore holds outstanding one-time login codes, at most one per MSISDN.
type CodeStore interface {
	// Put stores a code, replacing any prior outstanding one.
	Put(code domain.OneTimeCode)
	// Consume deletes and reports true when an unexpired code matching the
	// given digits is outstanding. On mismatch the stored code survives so
	// the subscriber can retry; an expired code is dropped and never matches.
	Consume(msisdn, code string, now time.Time) bool
}

// SubscriptionStore is the authoritative per-subscriber set of active
// service ids. Membership is unique; order is not significant.
type SubscriptionStore interface {
	List(msisdn string) []string
	Has(msisdn, serviceID string) bool
	Add(msisdn, serviceID string)
	// Remove reports whether the pair was present. Removing an absent pair
	// is a no-op, not an error.
	Remove(msisdn, serviceID string) bool
}

// TransactionLog is the append-only billing/subscription history.
type TransactionLog interface {
	Append(tx domain.Transaction)
	// List returns the full history oldest first.
	List() []domain.Transaction
}

// RateLimiter gates code issuance per subscriber.
type RateLimiter interface {
	Allow(key string, now time.Time) bool
}
