package application

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/mobivas/vas-platform/internal/domain"
	"github.com/mobivas/vas-platform/internal/ports"
)

// Service implements the VAS gateway use-cases: one-time-code login,
// subscription mutations with simulated carrier billing, and realtime
// ledger-delta broadcast.
type Service struct {
	cfg         Config
	catalog     *domain.Catalog
	codes       ports.CodeStore
	subs        ports.SubscriptionStore
	txlog       ports.TransactionLog
	otpLimiter  ports.RateLimiter
	billing     ports.BillingGateway
	tokenSigner ports.TokenSigner
	broadcaster ports.Broadcaster
	logger      *slog.Logger

	nowFn  func() time.Time
	codeFn func() (string, error)

	// subLocks serializes the check-bill-mutate-log-emit sequence per
	// subscriber. Two concurrent subscribes for the same MSISDN cannot both
	// pass the duplicate check; reads never take these locks.
	lockMu   sync.Mutex
	subLocks map[string]*sync.Mutex
}

type Dependencies struct {
	Config       Config
	Catalog      *domain.Catalog
	Codes        ports.CodeStore
	Subs         ports.SubscriptionStore
	Transactions ports.TransactionLog
	OTPLimiter   ports.RateLimiter
	Billing      ports.BillingGateway
	TokenSigner  ports.TokenSigner
	Broadcaster  ports.Broadcaster
	Logger       *slog.Logger

	// Now and CodeGenerator default to the real clock and a uniform
	// 6-digit draw; tests inject deterministic versions.
	Now           func() time.Time
	CodeGenerator func() (string, error)
}

func NewService(deps Dependencies) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	nowFn := deps.Now
	if nowFn == nil {
		nowFn = func() time.Time { return time.Now().UTC() }
	}
	codeFn := deps.CodeGenerator
	if codeFn == nil {
		codeFn = randomCode
	}
	return &Service{
		cfg:         deps.Config,
		catalog:     deps.Catalog,
		codes:       deps.Codes,
		subs:        deps.Subs,
		txlog:       deps.Transactions,
		otpLimiter:  deps.OTPLimiter,
		billing:     deps.Billing,
		tokenSigner: deps.TokenSigner,
		broadcaster: deps.Broadcaster,
		logger:      logger.With("module", "application"),
		nowFn:       nowFn,
		codeFn:      codeFn,
		subLocks:    make(map[string]*sync.Mutex),
	}
}

// lockSubscriber acquires the per-MSISDN mutation lock and returns its
// release func. Lock objects are never removed; the map grows with the set
// of subscribers ever mutated, which is bounded at this scale.
func (s *Service) lockSubscriber(msisdn string) func() {
	s.lockMu.Lock()
	l, ok := s.subLocks[msisdn]
	if !ok {
		l = &sync.Mutex{}
		s.subLocks[msisdn] = l
	}
	s.lockMu.Unlock()

	l.Lock()
	return l.Unlock
}

// randomCode draws a 6-digit code uniformly from 100000-999999.
func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("draw otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
