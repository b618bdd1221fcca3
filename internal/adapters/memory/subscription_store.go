package memory

import (
	"sort"
	"sync"
)

// SubscriptionStore maps each MSISDN to its set of active service ids.
type SubscriptionStore struct {
	mu   sync.RWMutex
	sets map[string]map[string]struct{}
}

func NewSubscriptionStore() *SubscriptionStore {
	return &SubscriptionStore{sets: make(map[string]map[string]struct{})}
}

// List returns a sorted snapshot; never nil, empty for unknown subscribers.
func (s *SubscriptionStore) List(msisdn string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.sets[msisdn]))
	for id := range s.sets[msisdn] {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s *SubscriptionStore) Has(msisdn, serviceID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sets[msisdn][serviceID]
	return ok
}

func (s *SubscriptionStore) Add(msisdn, serviceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sets[msisdn]
	if !ok {
		set = make(map[string]struct{})
		s.sets[msisdn] = set
	}
	set[serviceID] = struct{}{}
}

func (s *SubscriptionStore) Remove(msisdn, serviceID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sets[msisdn]
	if !ok {
		return false
	}
	if _, present := set[serviceID]; !present {
		return false
	}
	delete(set, serviceID)
	return true
}
