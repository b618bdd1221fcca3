package memory

import (
	"sync"

	"github.com/mobivas/vas-platform/internal/domain"
)

// TransactionLog is the append-only, insertion-ordered history of every
// billed subscribe attempt and every unsubscribe.
type TransactionLog struct {
	mu      sync.RWMutex
	entries []domain.Transaction
}

func NewTransactionLog() *TransactionLog {
	return &TransactionLog{}
}

func (l *TransactionLog) Append(tx domain.Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, tx)
}

// List returns the full history oldest first. The slice is a copy; records
// themselves are never mutated after insertion.
func (l *TransactionLog) List() []domain.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.Transaction, len(l.entries))
	copy(out, l.entries)
	return out
}
