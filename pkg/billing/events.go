package billing

import (
	"context"
	"log/slog"

	"github.com/onteko/billingkit/pkg/logger"
)

// LogEventSink is an EventSink that records billing events as structured
// log entries. Useful as a default sink until a real event bus is wired.
type LogEventSink struct {
	log *slog.Logger
}

// NewLogEventSink creates a sink writing to the given logger.
func NewLogEventSink(log *slog.Logger) *LogEventSink {
	if log == nil {
		log = slog.Default()
	}
	return &LogEventSink{log: log}
}

func (s *LogEventSink) PurchaseFailed(ctx context.Context, plan *Plan, tx *Transaction) {
	attrs := []any{
		logger.Package(plan.Package.Name()),
		logger.TransactionID(tx.ID),
		logger.Gateway(tx.Gateway),
		logger.Amount(tx.Summary, tx.Currency),
		slog.String("message", tx.Message),
	}
	if plan.User != nil {
		attrs = append(attrs, logger.UserID(plan.User.ID()))
	}
	s.log.ErrorContext(ctx, "purchase failed", attrs...)
}
