// Package logger provides a thin factory around log/slog plus attribute
// constructors shared across the billing services.
//
// New builds a *slog.Logger configured by Option functions: output format
// (text or json), minimum level, static attributes applied to every
// record, and ContextExtractor callbacks that inject request-scoped values
// on each Handle call.
//
// The attribute helpers in attr.go (Error, UserID, PurchaseID,
// TransactionID, Gateway, Amount, ...) keep attribute naming consistent
// across the codebase.
//
//	log := logger.New(
//		logger.WithProduction("billing"),
//		logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.InfoContext(ctx, "purchase completed",
//		logger.UserID(userID), logger.Amount(1099, "USD"))
package logger
