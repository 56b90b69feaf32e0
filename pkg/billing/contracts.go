package billing

import (
	"context"

	"github.com/google/uuid"
)

// GatewayResult is the normalized outcome of a payment gateway call.
// Implementations wrap the provider response; Data must return the raw
// provider payload verbatim so the ledger can store it without schema
// assumptions.
type GatewayResult interface {
	Successful() bool
	Pending() bool
	TransactionReference() string
	Message() string
	Data() []byte
}

// ChargeRequest carries everything a gateway needs to take a payment.
type ChargeRequest struct {
	Amount     Money
	Descriptor string // gateway-side product/price identifier
	CustomerID string // gateway-side customer reference
	Order      *Order
}

// Gateway abstracts a payment provider. User implementations typically
// delegate their payment capabilities here (see GatewayUser).
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (GatewayResult, error)
	// Void cancels an unsettled payment. Gateways without a void operation
	// return ErrVoidNotSupported; the orchestrator then falls back to Refund.
	Void(ctx context.Context, reference string) error
	Refund(ctx context.Context, reference string) error
}

// Host is the entity a package is purchased for: a site, a workspace, a
// device. Opaque to this core beyond identity and existence.
type Host interface {
	ID() uuid.UUID
	Exists() bool
}

// User is the paying party. Balance and coupon set are mutated in place
// during a purchase and persisted with Save.
type User interface {
	ID() uuid.UUID
	PaymentGateway() string
	// ReferralID is non-empty when the user is enrolled in a referral
	// program; manual coupons linked to that program are skipped for them.
	ReferralID() string

	Balance() int64
	SetBalance(int64)
	Save(ctx context.Context) error

	// Coupons returns the codes of coupons pre-granted to the user.
	Coupons() []string
	AddCoupons(ctx context.Context, coupons []*Coupon, plan *Plan, host Host) error
	RemoveCoupons(ctx context.Context, coupons []*Coupon) error

	Purchase(ctx context.Context, amount Money, descriptor string, order *Order) (GatewayResult, error)
	Void(ctx context.Context, reference string) error
	Refund(ctx context.Context, reference string) error
}

// Package is the product being purchased. It owns the canonical Purchase
// record per host and performs its own activation.
type Package interface {
	Name() string
	// Descriptor identifies the package on the payment gateway side
	// (e.g. a Paddle price ID).
	Descriptor() string

	// Validate checks the host against the package prerequisites for this
	// user and purchase intent, returning the (possibly enriched) host.
	Validate(ctx context.Context, host Host, user User, forPurchase bool) (Host, error)
	// Prepare is the package-specific preparation hook, run after
	// validation and before any money moves.
	Prepare(ctx context.Context, host Host, plan *Plan) error
	Activate(ctx context.Context, host Host, plan *Plan) error

	InUse(ctx context.Context, host Host) (bool, error)
	TrialConsumed(ctx context.Context, host Host) (bool, error)

	// ResolvePurchase resolves or creates the package's Purchase record for
	// the host.
	ResolvePurchase(ctx context.Context, host Host) (Purchase, error)
}

// Purchase is the persistent link between a package and a host. It owns at
// most one non-terminal subscription at a time plus the transaction history.
type Purchase interface {
	ID() uuid.UUID
	Active() bool

	// Subscription returns the current subscription, or nil.
	Subscription() Subscription
	Subscribe(ctx context.Context, plan *Plan) (Subscription, error)
	Unsubscribe(ctx context.Context) error

	// LastTransactionByStatus returns the most recent transaction with the
	// given status, or nil when none exists.
	LastTransactionByStatus(ctx context.Context, status TransactionStatus) (*Transaction, error)
}

// Subscription is the recurring billing state tied to a Purchase. Status
// vocabulary is opaque to this core beyond trial and active.
type Subscription interface {
	ID() uuid.UUID
	OnTrial() bool
	Active() bool
	BillingFrequency() BillingFrequency

	Renew(ctx context.Context, payment GatewayResult, order *Order) (*Invoice, error)
	SwitchFrequency(ctx context.Context, plan *Plan) (*Invoice, error)
	// CancelAndRefund cancels the subscription and applies its own
	// cancellation/refund logic against the given amount (nil for
	// unspecified), returning the residual amount still owed to the user.
	CancelAndRefund(ctx context.Context, plan *Plan, amount *int64) (int64, error)
}

// EventSink receives billing lifecycle events. Delivery is fire-and-forget
// from the orchestrator's perspective.
type EventSink interface {
	PurchaseFailed(ctx context.Context, plan *Plan, tx *Transaction)
}

// CouponStore persists coupon usage state. MarkUsed records an idempotent
// per-(purchase, host) consumption marker; Save persists counter mutations.
type CouponStore interface {
	IsUsed(ctx context.Context, coupon *Coupon, plan *Plan, host Host) (bool, error)
	MarkUsed(ctx context.Context, coupon *Coupon, plan *Plan, host Host) error
	Save(ctx context.Context, coupon *Coupon) error
}

// TransactionStore persists ledger rows. Rows are append-only: corrections
// are new rows, never updates.
type TransactionStore interface {
	Save(ctx context.Context, tx *Transaction) error
}

// PreviousSubscriptionResolver resolves the subscription, if any, that the
// plan being purchased supersedes. Used for proration and refunds.
type PreviousSubscriptionResolver func(ctx context.Context, plan *Plan) (Subscription, error)
