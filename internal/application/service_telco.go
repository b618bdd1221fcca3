package application

import (
	"context"

	"github.com/mobivas/vas-platform/internal/domain"
)

// ListServices returns the static value-added service catalog.
func (s *Service) ListServices(_ context.Context) []domain.Service {
	return s.catalog.Services()
}

// ListProviders returns the carrier rate table.
func (s *Service) ListProviders(_ context.Context) []domain.Provider {
	return s.billing.Providers()
}

// Bill runs a standalone carrier billing attempt without touching the
// ledger or the transaction history. It exists for billing diagnostics;
// subscription charges go through Subscribe.
func (s *Service) Bill(ctx context.Context, msisdn string, req BillRequest) (domain.BillingReceipt, error) {
	provider := req.Provider
	if provider == "" {
		provider = s.cfg.DefaultCarrier
	}
	receipt, err := s.billing.Attempt(msisdn, req.ServiceID, provider)
	if err != nil {
		return domain.BillingReceipt{}, err
	}
	if !receipt.Success {
		return domain.BillingReceipt{}, &domain.BillingDeclinedError{Receipt: receipt}
	}
	return receipt, nil
}

// IsAdmin reports whether the MSISDN is the privileged dashboard identity.
func (s *Service) IsAdmin(msisdn string) bool {
	return msisdn == domain.AdminMSISDN
}
