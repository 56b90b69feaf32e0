package billing

import (
	"log/slog"
	"time"

	"github.com/onteko/billingkit/pkg/lock"
)

// ServiceOption configures optional Service settings.
type ServiceOption func(*Service)

// WithConfig sets the billing policy configuration.
func WithConfig(cfg Config) ServiceOption {
	return func(s *Service) { s.config = cfg }
}

// WithLocker replaces the default in-process keyed mutex. Use a
// lock.RedisLock for multi-instance deployments.
func WithLocker(l lock.Locker) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.locker = l
		}
	}
}

// WithEventSink registers a sink for billing lifecycle events.
func WithEventSink(sink EventSink) ServiceOption {
	return func(s *Service) {
		if sink != nil {
			s.events = sink
		}
	}
}

// WithMessages replaces the default English message catalog.
func WithMessages(m *Messages) ServiceOption {
	return func(s *Service) {
		if m != nil {
			s.messages = m
		}
	}
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithPreviousSubscriptionResolver registers the hook that resolves the
// subscription a new plan supersedes, used for proration and refunds.
func WithPreviousSubscriptionResolver(r PreviousSubscriptionResolver) ServiceOption {
	return func(s *Service) { s.prevSub = r }
}

// WithClock overrides the transaction timestamp source. Intended for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
