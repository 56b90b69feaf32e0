package billing

import "errors"

var (
	// ErrHostValidation blocks a purchase before any side effect when the
	// host does not satisfy the package prerequisites.
	ErrHostValidation = errors.New("host does not satisfy package requirements")

	// ErrNoSwitchToLifetime blocks switching an active recurring
	// subscription to a one-time plan when policy disallows it.
	ErrNoSwitchToLifetime = errors.New("switching recurring subscription to lifetime is not allowed")

	// ErrNoChargeableUser is returned when a charge is required but no user
	// is bound to the plan. Nothing was charged or mutated; callers must
	// treat the purchase as not made.
	ErrNoChargeableUser = errors.New("no chargeable user bound to plan")

	// ErrActivationFailed wraps the package error raised during activation.
	// Any charge taken for the purchase has already been voided or refunded
	// by the time this error is returned.
	ErrActivationFailed = errors.New("package activation failed")

	// ErrPaymentFailed is returned after a FAILED transaction row has been
	// persisted for a terminal gateway failure. The gateway message is
	// embedded in the error text.
	ErrPaymentFailed = errors.New("payment failed")

	ErrPurchaseNotResolved    = errors.New("purchase record not resolved for plan")
	ErrMissingPaymentResult   = errors.New("payment result missing")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrFailedToLoadMessages   = errors.New("failed to load billing messages")
	ErrFailedToAcquireLock    = errors.New("failed to acquire purchase lock")
	ErrVoidNotSupported       = errors.New("void is not supported by this gateway")
	ErrMissingGatewayCustomer = errors.New("gateway customer ID is required")
)
