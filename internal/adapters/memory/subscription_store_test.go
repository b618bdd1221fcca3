package memory_test

import (
	"reflect"
	"testing"

	"github.com/mobivas/vas-platform/internal/adapters/memory"
)

func TestListUnknownSubscriberIsEmptyNotNil(t *testing.T) {
	t.Parallel()

	store := memory.NewSubscriptionStore()
	got := store.List("27821234567")
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil set, got %#v", got)
	}
}

func TestAddIsIdempotentOnMembership(t *testing.T) {
	t.Parallel()

	store := memory.NewSubscriptionStore()
	store.Add("27821234567", "1")
	store.Add("27821234567", "1")
	store.Add("27821234567", "2")

	if got := store.List("27821234567"); !reflect.DeepEqual(got, []string{"1", "2"}) {
		t.Fatalf("expected [1 2], got %v", got)
	}
	if !store.Has("27821234567", "1") {
		t.Fatalf("expected membership for service 1")
	}
}

func TestRemoveReportsPresence(t *testing.T) {
	t.Parallel()

	store := memory.NewSubscriptionStore()
	store.Add("27821234567", "1")

	if !store.Remove("27821234567", "1") {
		t.Fatalf("removing an existing pair should report true")
	}
	if store.Remove("27821234567", "1") {
		t.Fatalf("removing an absent pair should report false")
	}
	if store.Remove("27820000001", "1") {
		t.Fatalf("removing for an unknown subscriber should report false")
	}
}

func TestSetsAreIsolatedPerSubscriber(t *testing.T) {
	t.Parallel()

	store := memory.NewSubscriptionStore()
	store.Add("27821111111", "1")
	store.Add("27822222222", "2")

	if store.Has("27821111111", "2") || store.Has("27822222222", "1") {
		t.Fatalf("subscriptions leaked across subscribers")
	}
}
