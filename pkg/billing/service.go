package billing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/onteko/billingkit/pkg/lock"
)

// Service is the purchase orchestration core. It is stateless between
// calls: every purchase runs as one synchronous unit of work over the plan
// and its collaborators, serialized on the user and (package, host) keys.
type Service struct {
	coupons      CouponStore
	transactions TransactionStore
	events       EventSink
	locker       lock.Locker
	config       Config
	messages     *Messages
	prevSub      PreviousSubscriptionResolver
	log          *slog.Logger
	now          func() time.Time
}

// NewService creates the orchestrator with the given stores.
// Panics if a required store is nil to fail fast during initialization.
// Use ServiceOption functions to configure policy, locking, events,
// messages and logging.
func NewService(coupons CouponStore, transactions TransactionStore, opts ...ServiceOption) *Service {
	if coupons == nil {
		panic("billing: CouponStore is required")
	}
	if transactions == nil {
		panic("billing: TransactionStore is required")
	}

	s := &Service{
		coupons:      coupons,
		transactions: transactions,
		events:       noopEventSink{},
		locker:       lock.NewKeyedMutex(),
		config:       DefaultConfig(),
		messages:     DefaultMessages(),
		log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:          func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) currency(plan *Plan) string {
	if plan.Currency != "" {
		return plan.Currency
	}
	return s.config.DefaultCurrency
}

func userLockKey(id uuid.UUID) string {
	return "billing:user:" + id.String()
}

func purchaseLockKey(pkg Package, host Host) string {
	return fmt.Sprintf("billing:purchase:%s:%s", pkg.Name(), host.ID())
}

type noopEventSink struct{}

func (noopEventSink) PurchaseFailed(_ context.Context, _ *Plan, _ *Transaction) {}
