package memory_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/mobivas/vas-platform/internal/adapters/memory"
	"github.com/mobivas/vas-platform/internal/domain"
)

func TestListPreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	log := memory.NewTransactionLog()
	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		log.Append(domain.Transaction{
			ID:     fmt.Sprintf("tx-%d", i),
			MSISDN: "27821234567",
			Type:   domain.TransactionSubscribe,
			Date:   base.Add(time.Duration(i) * time.Second),
		})
	}

	got := log.List()
	if len(got) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(got))
	}
	for i, tx := range got {
		if tx.ID != fmt.Sprintf("tx-%d", i) {
			t.Fatalf("entry %d out of order: %s", i, tx.ID)
		}
	}
}

func TestListReturnsACopy(t *testing.T) {
	t.Parallel()

	log := memory.NewTransactionLog()
	log.Append(domain.Transaction{ID: "tx-0"})

	first := log.List()
	first[0].ID = "mutated"

	if got := log.List(); got[0].ID != "tx-0" {
		t.Fatalf("caller mutation leaked into the log: %s", got[0].ID)
	}
}
