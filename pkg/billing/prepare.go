package billing

import (
	"context"
	"errors"
)

// Preview prepares the plan for display without purchasing. When a live
// subscription with the same billing frequency already exists, the
// subscription's own plan representation is returned instead, so callers
// never present a duplicate competing plan.
func (s *Service) Preview(ctx context.Context, plan *Plan, host Host) (*Plan, error) {
	sub, err := s.prepare(ctx, plan, host, false)
	if err != nil {
		return nil, err
	}

	if sub != nil && sub.BillingFrequency() == plan.BillingFrequency {
		if existing := planOf(sub); existing != nil {
			return existing, nil
		}
	}
	return plan, nil
}

// prepare resolves the full purchase context before any money moves:
// host validation, package preparation, trial computation, purchase and
// subscription resolution, and the superseded previous subscription.
func (s *Service) prepare(ctx context.Context, plan *Plan, host Host, forPurchase bool) (Subscription, error) {
	validated, err := plan.Package.Validate(ctx, host, plan.User, forPurchase)
	if err != nil {
		return nil, errors.Join(ErrHostValidation, err)
	}
	if validated != nil && validated.Exists() {
		plan.Host = validated
	}
	if plan.Host == nil {
		plan.Host = host
	}

	if err := plan.Package.Prepare(ctx, plan.Host, plan); err != nil {
		return nil, err
	}

	if _, err := s.computeTrial(ctx, plan); err != nil {
		return nil, err
	}

	// The purchase record must be resolved before coupons are evaluated:
	// the used marker is keyed by (purchase, host).
	purchase, err := plan.Package.ResolvePurchase(ctx, plan.Host)
	if err != nil {
		return nil, err
	}
	plan.Purchase = purchase

	if err := s.resolveDiscounts(ctx, plan); err != nil {
		return nil, err
	}

	if s.prevSub != nil && plan.PreviousSubscription == nil {
		prev, err := s.prevSub(ctx, plan)
		if err != nil {
			return nil, err
		}
		plan.PreviousSubscription = prev
	}

	return purchase.Subscription(), nil
}

// planOf extracts a displayable plan from a subscription when the
// implementation exposes one.
func planOf(sub Subscription) *Plan {
	type planner interface{ Plan() *Plan }
	if p, ok := sub.(planner); ok {
		return p.Plan()
	}
	return nil
}
