package billing

// Plan is the transient purchase intent for a package/host/user combination.
// It is mutated throughout orchestration and never persisted itself; its
// side effects are the transaction rows and subscription transitions it
// produces.
type Plan struct {
	Name             string
	Package          Package
	User             User
	Host             Host
	BillingFrequency BillingFrequency

	Recurring bool
	Free      bool
	RenewMode bool

	// Price is the base plan price in the smallest currency unit.
	Price    int64
	Currency string

	// TrialDays is the configured trial length. The trial calculator forces
	// it to zero when the package already consumed its trial on the host.
	TrialDays int
	// Trial reports whether this particular purchase is entitled to a free
	// trial. Set by the trial calculator.
	Trial bool

	// Coupons are the discount candidates attached to the plan by the
	// catalog. CouponCode is the redemption code supplied by the caller for
	// manual coupons.
	Coupons    []*Coupon
	CouponCode string
	// Discounts holds the coupons accepted by the evaluator.
	Discounts []*Coupon
	// CouponError surfaces soft coupon rejections ("coupon used", "limit
	// reached") without aborting the purchase of the underlying plan.
	CouponError string
	// AddonCoupons are reward coupons granted to the user after a paid
	// purchase succeeds.
	AddonCoupons []*Coupon

	// AdditionalPlans are dependent plans purchased best-effort after the
	// primary purchase succeeds. They must target a different package than
	// the primary plan.
	AdditionalPlans []*Plan

	// Old marks the plan as representing a previously purchased entity,
	// used for downstream confirmation messaging.
	Old bool

	// Resolved orchestration context.
	Payment              GatewayResult
	Order                *Order
	Purchase             Purchase
	Subscription         Subscription
	PreviousSubscription Subscription

	discountsResolved bool
}

// Discount returns the total coupon discount for the plan, uncapped.
func (p *Plan) Discount() int64 {
	var total int64
	for _, c := range p.Discounts {
		total += c.DiscountFor(p.Price)
	}
	return total
}

// CouponDiscount is an alias kept for symmetry with the refund-to-balance
// computation, which operates on the coupon share of the discount.
func (p *Plan) CouponDiscount() int64 {
	return p.Discount()
}

// Summary returns the amount actually payable: price minus discounts,
// floored at zero.
func (p *Plan) Summary() int64 {
	s := p.Price - p.Discount()
	if s < 0 {
		return 0
	}
	return s
}

// Order is an optional caller-owned context annotated by the orchestrator
// with an action classifier and free-form reporting parameters.
type Order struct {
	Action OrderAction
	params map[string]any
}

// SetParam stores a free-form reporting parameter on the order.
func (o *Order) SetParam(key string, value any) {
	if o.params == nil {
		o.params = make(map[string]any)
	}
	o.params[key] = value
}

// Param returns a previously stored parameter.
func (o *Order) Param(key string) (any, bool) {
	v, ok := o.params[key]
	return v, ok
}

// Invoice is the read-only result of a purchase: the plan for display, the
// primary transaction, and the per-item results of any additional plans.
type Invoice struct {
	Plan        *Plan
	Transaction *Transaction
	// Additional collects one result per additional plan, in the original
	// order, including failed ones. Failures never abort the primary
	// purchase.
	Additional []AdditionalResult
}

// NewInvoice wraps a plan and its primary transaction into an invoice.
func NewInvoice(plan *Plan, tx *Transaction) *Invoice {
	return &Invoice{Plan: plan, Transaction: tx}
}

// AdditionalInvoices returns the invoices of the additional plans that
// succeeded, preserving the original order.
func (i *Invoice) AdditionalInvoices() []*Invoice {
	invoices := make([]*Invoice, 0, len(i.Additional))
	for _, res := range i.Additional {
		if res.Err == nil && res.Invoice != nil {
			invoices = append(invoices, res.Invoice)
		}
	}
	return invoices
}

// AdditionalResult is the explicit best-effort outcome of one additional
// plan purchase.
type AdditionalResult struct {
	Plan    *Plan
	Invoice *Invoice
	Err     error
}
