package billing

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mobivas/vas-platform/internal/domain"
)

// Simulator stands in for the carrier billing integration. Attempts are
// synchronous, bounded computations: because nothing suspends between the
// ledger's duplicate check and its mutation, the per-subscriber lock in the
// application layer is the only synchronization the subscribe path needs.
type Simulator struct {
	providers   map[string]domain.Provider
	order       []string
	successRate float64
	randFn      func() float64
	nowFn       func() time.Time
	logger      *slog.Logger
}

// Option overrides simulator internals, mainly for deterministic tests.
type Option func(*Simulator)

// WithOutcomeSource replaces the randomness behind the success draw.
func WithOutcomeSource(fn func() float64) Option {
	return func(s *Simulator) { s.randFn = fn }
}

// WithClock replaces the receipt timestamp source.
func WithClock(fn func() time.Time) Option {
	return func(s *Simulator) { s.nowFn = fn }
}

// NewSimulator builds a simulator over the given rate table. successRate is
// the per-attempt probability of a successful charge, independent per call.
func NewSimulator(providers []domain.Provider, successRate float64, logger *slog.Logger, opts ...Option) *Simulator {
	byID := make(map[string]domain.Provider, len(providers))
	order := make([]string, 0, len(providers))
	for _, p := range providers {
		byID[p.ID] = p
		order = append(order, p.ID)
	}
	s := &Simulator{
		providers:   byID,
		order:       order,
		successRate: successRate,
		randFn:      rand.Float64,
		nowFn:       func() time.Time { return time.Now().UTC() },
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) Attempt(msisdn, serviceID, providerID string) (domain.BillingReceipt, error) {
	provider, ok := s.providers[providerID]
	if !ok {
		return domain.BillingReceipt{}, fmt.Errorf("%w: %q", domain.ErrUnknownProvider, providerID)
	}

	now := s.nowFn()
	receipt := domain.BillingReceipt{
		Success:       s.randFn() < s.successRate,
		TransactionID: newTransactionID(now),
		Provider:      provider.Name,
		Amount:        provider.Rate,
		Currency:      provider.Currency,
		MSISDN:        msisdn,
		Timestamp:     now,
	}

	outcome := "success"
	if !receipt.Success {
		outcome = "declined"
	}
	s.logger.Info("carrier billing attempt",
		"operation", "billing_attempt",
		"outcome", outcome,
		"provider", provider.ID,
		"service_id", serviceID,
		"transaction_id", receipt.TransactionID,
		"amount", receipt.Amount,
		"currency", receipt.Currency,
	)
	return receipt, nil
}

// Providers returns the rate table in configuration order.
func (s *Simulator) Providers() []domain.Provider {
	out := make([]domain.Provider, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.providers[id])
	}
	return out
}

// newTransactionID mirrors the carrier reference format: millisecond
// timestamp plus a random suffix, collision-resistant for the process
// lifetime without needing a counter.
func newTransactionID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("TXN_%d_%s", now.UnixMilli(), suffix)
}
