package ports

import "github.com/mobivas/vas-platform/internal/domain"

// BillingGateway simulates a carrier billing attempt. A declined attempt is
// an ordinary receipt with Success=false; only an unknown provider id is an
// error. Attempts never block on external I/O.
type BillingGateway interface {
	Attempt(msisdn, serviceID, providerID string) (domain.BillingReceipt, error)
	Providers() []domain.Provider
}
