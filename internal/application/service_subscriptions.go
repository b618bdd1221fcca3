package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mobivas/vas-platform/internal/domain"
)

// ListSubscriptions returns the subscriber's current set of service ids.
// Unknown subscribers get an empty set, never an error.
func (s *Service) ListSubscriptions(_ context.Context, msisdn string) []string {
	return s.subs.List(msisdn)
}

// Subscribe runs the check-bill-mutate-log-emit sequence under the
// per-subscriber lock. An already-subscribed pair short-circuits before
// billing and leaves no transaction; a billing decline is logged with the
// receipt and leaves the ledger untouched.
func (s *Service) Subscribe(ctx context.Context, msisdn string, req SubscribeRequest) (SubscribeResponse, error) {
	if req.ServiceID == "" {
		return SubscribeResponse{}, fmt.Errorf("%w: serviceId is required", domain.ErrInvalidInput)
	}
	provider := req.Provider
	if provider == "" {
		provider = s.cfg.DefaultCarrier
	}

	unlock := s.lockSubscriber(msisdn)
	defer unlock()

	if s.subs.Has(msisdn, req.ServiceID) {
		return SubscribeResponse{}, fmt.Errorf("%w: service %s", domain.ErrAlreadySubscribed, req.ServiceID)
	}

	receipt, err := s.billing.Attempt(msisdn, req.ServiceID, provider)
	if err != nil {
		return SubscribeResponse{}, err
	}

	if !receipt.Success {
		// Billing was attempted and declined: that asymmetry with the
		// already-subscribed case is deliberate, declined attempts belong
		// in the history.
		s.appendTransaction(msisdn, req.ServiceID, domain.TransactionSubscribe, &receipt)
		s.logger.WarnContext(ctx, "subscription billing declined",
			"operation", "subscribe",
			"outcome", "failure",
			"msisdn", msisdn,
			"service_id", req.ServiceID,
			"transaction_id", receipt.TransactionID,
		)
		return SubscribeResponse{}, &domain.BillingDeclinedError{Receipt: receipt}
	}

	s.subs.Add(msisdn, req.ServiceID)
	s.appendTransaction(msisdn, req.ServiceID, domain.TransactionSubscribe, &receipt)

	subscriptions := s.subs.List(msisdn)
	s.broadcaster.Broadcast(domain.SubscriptionChanged(msisdn, subscriptions))

	s.logger.InfoContext(ctx, "subscriber subscribed",
		"operation", "subscribe",
		"outcome", "success",
		"msisdn", msisdn,
		"service_id", req.ServiceID,
		"transaction_id", receipt.TransactionID,
	)
	return SubscribeResponse{Subscriptions: subscriptions, Billing: receipt}, nil
}

// Unsubscribe removes the pair if present. It is idempotent and never
// billed: removing an absent pair still succeeds, still records an
// unsubscribe transaction, and still re-broadcasts ledger truth.
func (s *Service) Unsubscribe(ctx context.Context, msisdn, serviceID string) (UnsubscribeResponse, error) {
	if serviceID == "" {
		return UnsubscribeResponse{}, fmt.Errorf("%w: serviceId is required", domain.ErrInvalidInput)
	}

	unlock := s.lockSubscriber(msisdn)
	defer unlock()

	removed := s.subs.Remove(msisdn, serviceID)
	s.appendTransaction(msisdn, serviceID, domain.TransactionUnsubscribe, nil)

	subscriptions := s.subs.List(msisdn)
	s.broadcaster.Broadcast(domain.SubscriptionChanged(msisdn, subscriptions))

	s.logger.InfoContext(ctx, "subscriber unsubscribed",
		"operation", "unsubscribe",
		"outcome", "success",
		"msisdn", msisdn,
		"service_id", serviceID,
		"was_subscribed", removed,
	)
	return UnsubscribeResponse{Subscriptions: subscriptions}, nil
}

// ListTransactions returns the full history oldest first.
func (s *Service) ListTransactions(_ context.Context) []domain.Transaction {
	return s.txlog.List()
}

func (s *Service) appendTransaction(msisdn, serviceID string, txType domain.TransactionType, receipt *domain.BillingReceipt) {
	s.txlog.Append(domain.Transaction{
		ID:      uuid.NewString(),
		MSISDN:  msisdn,
		Service: s.catalog.ServiceName(serviceID),
		Type:    txType,
		Date:    s.nowFn().Truncate(time.Millisecond),
		Billing: receipt,
	})
}
