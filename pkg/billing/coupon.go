package billing

import (
	"context"
	"slices"

	"github.com/google/uuid"
)

// Coupon is a discount entity. Identity is immutable after creation; only
// the usage counter mutates, at purchase time.
type Coupon struct {
	ID     uuid.UUID
	Code   string
	Redeem CouponRedeemType

	// Amount is a flat discount in the smallest currency unit, or a
	// percentage of the plan price when Percent is set.
	Amount  int64
	Percent bool

	// NumberOfCoupons caps total redemptions for manual coupons; zero means
	// no limit. UsedCoupons never exceeds the cap when it is set.
	NumberOfCoupons int
	UsedCoupons     int

	// ConnectedToReferral links the coupon to a referral program. Referral
	// coupons and manual codes are mutually exclusive for enrolled users.
	ConnectedToReferral bool
}

// DiscountFor returns the discount this coupon yields against a price.
func (c *Coupon) DiscountFor(price int64) int64 {
	if c.Percent {
		return price * c.Amount / 100
	}
	return c.Amount
}

// evaluateCoupon decides whether a coupon is eligible and currently
// redeemable for the plan. A nil result with nil error means the coupon is
// simply not applied; soft rejections are surfaced on plan.CouponError.
func (s *Service) evaluateCoupon(ctx context.Context, plan *Plan, coupon *Coupon) (*Coupon, error) {
	switch coupon.Redeem {
	case RedeemInternal:
		// Eligible only when pre-granted to the user. Limits for internal
		// coupons are enforced by the issuing system.
		if plan.User != nil && slices.Contains(plan.User.Coupons(), coupon.Code) {
			return coupon, nil
		}

	case RedeemManual:
		// Referral coupons are skipped entirely for enrolled users.
		if coupon.ConnectedToReferral && plan.User != nil && plan.User.ReferralID() != "" {
			return nil, nil
		}
		if coupon.Code != plan.CouponCode {
			return nil, nil
		}
		used, err := s.coupons.IsUsed(ctx, coupon, plan, plan.Host)
		if err != nil {
			return nil, err
		}
		if used {
			plan.CouponError = s.messages.CouponUsed
			return nil, nil
		}
		if coupon.NumberOfCoupons > 0 && coupon.UsedCoupons >= coupon.NumberOfCoupons {
			plan.CouponError = s.messages.CouponLimitReached
			return nil, nil
		}
		return coupon, nil

	case RedeemAutoredeem:
		return coupon, nil
	}

	// Unknown redeem types are never eligible.
	return nil, nil
}

// resolveDiscounts evaluates the plan's coupon candidates once and collects
// the accepted ones. Safe to call repeatedly.
func (s *Service) resolveDiscounts(ctx context.Context, plan *Plan) error {
	if plan.discountsResolved {
		return nil
	}
	for _, coupon := range plan.Coupons {
		accepted, err := s.evaluateCoupon(ctx, plan, coupon)
		if err != nil {
			return err
		}
		if accepted != nil {
			plan.Discounts = append(plan.Discounts, accepted)
		}
	}
	plan.discountsResolved = true
	return nil
}

// applyCouponUsage runs the post-purchase usage accounting: manual limited
// coupons get their counter incremented outside renew mode, and every
// applied discount is marked consumed for the (purchase, host) pair.
func (s *Service) applyCouponUsage(ctx context.Context, plan *Plan) error {
	for _, discount := range plan.Discounts {
		if !plan.RenewMode && discount.Redeem == RedeemManual && discount.NumberOfCoupons > 0 {
			discount.UsedCoupons++
			if err := s.coupons.Save(ctx, discount); err != nil {
				return err
			}
		}
		if err := s.coupons.MarkUsed(ctx, discount, plan, plan.Host); err != nil {
			return err
		}
	}
	return nil
}
