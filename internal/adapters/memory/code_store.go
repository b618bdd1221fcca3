package memory

import (
	"sync"
	"time"

	"github.com/mobivas/vas-platform/internal/domain"
)

// CodeStore keeps outstanding one-time codes in process memory. State does
// not survive a restart, which also voids every pending login.
type CodeStore struct {
	mu    sync.Mutex
	codes map[string]domain.OneTimeCode
}

func NewCodeStore() *CodeStore {
	return &CodeStore{codes: make(map[string]domain.OneTimeCode)}
}

func (s *CodeStore) Put(code domain.OneTimeCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[code.MSISDN] = code
}

func (s *CodeStore) Consume(msisdn, code string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.codes[msisdn]
	if !ok {
		return false
	}
	if stored.Expired(now) {
		// Lazy expiry: a stale code is unusable and a fresh issuance would
		// overwrite it anyway, so drop it on first touch.
		delete(s.codes, msisdn)
		return false
	}
	if stored.Code != code {
		return false
	}
	delete(s.codes, msisdn)
	return true
}
