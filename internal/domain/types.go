package domain

import "time"

// Service is one entry of the static value-added-service catalog. The
// catalog is immutable for the process lifetime.
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Provider is one carrier in the static billing rate table.
type Provider struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Rate     float64 `json:"rate"`
	Currency string  `json:"currency"`
}

// BillingReceipt records the outcome of one simulated carrier billing
// attempt. Immutable once produced; TransactionID is unique for the
// process lifetime.
type BillingReceipt struct {
	Success       bool      `json:"success"`
	TransactionID string    `json:"transactionId"`
	Provider      string    `json:"provider"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	MSISDN        string    `json:"msisdn"`
	Timestamp     time.Time `json:"timestamp"`
}

type TransactionType string

const (
	TransactionSubscribe   TransactionType = "subscribe"
	TransactionUnsubscribe TransactionType = "unsubscribe"
)

// Transaction is one append-only history record. Subscribe entries carry
// the billing receipt (declined attempts included); unsubscribe entries
// never do.
type Transaction struct {
	ID      string          `json:"id"`
	MSISDN  string          `json:"user"`
	Service string          `json:"service"`
	Type    TransactionType `json:"type"`
	Date    time.Time       `json:"date"`
	Billing *BillingReceipt `json:"billing,omitempty"`
}
