package billing

// CouponRedeemType describes how a coupon becomes eligible for a purchase.
type CouponRedeemType string

const (
	// RedeemInternal coupons are pre-granted to a user by the issuing system.
	RedeemInternal CouponRedeemType = "internal"
	// RedeemManual coupons require the user to enter the code at checkout.
	RedeemManual CouponRedeemType = "manual"
	// RedeemAutoredeem coupons apply to every eligible purchase automatically.
	RedeemAutoredeem CouponRedeemType = "autoredeem"
)

// TransactionStatus classifies the outcome recorded in a ledger row.
type TransactionStatus string

const (
	StatusPending  TransactionStatus = "pending"
	StatusSuccess  TransactionStatus = "success"
	StatusFailed   TransactionStatus = "failed"
	StatusRefunded TransactionStatus = "refunded"
)

// OrderAction classifies the purchase for downstream reporting.
type OrderAction string

const (
	ActionRenew   OrderAction = "renew"
	ActionUpgrade OrderAction = "upgrade"
)

// BillingFrequency is the billing cadence of a recurring plan.
// Lifetime marks one-time purchases that never recur.
type BillingFrequency string

const (
	FrequencyMonthly   BillingFrequency = "monthly"
	FrequencyQuarterly BillingFrequency = "quarterly"
	FrequencyYearly    BillingFrequency = "yearly"
	FrequencyLifetime  BillingFrequency = "lifetime"
)

// Money represents a monetary amount in the smallest currency unit.
// For example, $10.99 USD would be Amount: 1099, Currency: "USD".
type Money struct {
	Amount   int64  // Amount in smallest currency unit (cents for USD)
	Currency string // ISO 4217 currency code
}

// IsZero reports whether no actual charge is represented.
func (m Money) IsZero() bool {
	return m.Amount == 0
}
