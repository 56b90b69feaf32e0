package billing

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is an immutable, append-only ledger row recording one payment
// attempt and its outcome. Once written with a terminal status it is never
// mutated; corrections (refunds) are new rows.
type Transaction struct {
	ID             uuid.UUID
	Name           string // package name snapshot
	PurchaseID     uuid.UUID
	SubscriptionID *uuid.UUID
	UserID         uuid.UUID

	Gateway  string
	Price    int64
	Discount int64 // capped at price
	Summary  int64 // populated only on the terminal, non-free path
	Currency string

	// Data holds the serialized raw gateway payload verbatim; no schema is
	// assumed.
	Data      []byte
	Reference string
	Status    TransactionStatus
	Message   string

	// Coupons is a snapshot of the discounts applied to the purchase.
	Coupons []CouponSnapshot

	CreatedAt time.Time
}

// CouponSnapshot freezes the applied coupon state at transaction time, so
// later counter mutations do not rewrite history.
type CouponSnapshot struct {
	ID     uuid.UUID
	Code   string
	Redeem CouponRedeemType
	Amount int64
}

func snapshotCoupons(coupons []*Coupon) []CouponSnapshot {
	if len(coupons) == 0 {
		return nil
	}
	snap := make([]CouponSnapshot, 0, len(coupons))
	for _, c := range coupons {
		snap = append(snap, CouponSnapshot{
			ID:     c.ID,
			Code:   c.Code,
			Redeem: c.Redeem,
			Amount: c.Amount,
		})
	}
	return snap
}
