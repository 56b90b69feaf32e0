package billing

import (
	"context"
	"errors"

	"github.com/onteko/billingkit/pkg/logger"
)

// MakePurchase charges for the plan (unless a payment result is already
// supplied), activates the package with rollback on failure, and writes
// the ledger row. It assumes the purchase scope is already serialized:
// call Purchase for the locked entry point. Exposed so subscription
// implementations can drive renew-mode charges through the same path.
// Renew-mode plans skip preparation and must carry their resolved Purchase.
func (s *Service) MakePurchase(ctx context.Context, plan *Plan, payment GatewayResult, order *Order) (*Invoice, error) {
	// Discounts feed the summary, so they are settled before any charge.
	if err := s.resolveDiscounts(ctx, plan); err != nil {
		return nil, err
	}
	summary := plan.Summary()

	if payment == nil {
		if plan.User == nil {
			return nil, ErrNoChargeableUser
		}

		amount := summary
		if plan.Trial {
			amount = 0
		}

		if order != nil {
			if plan.RenewMode {
				order.Action = ActionRenew
			} else if plan.PreviousSubscription != nil {
				order.Action = ActionUpgrade
			}
			order.SetParam("trial", plan.Trial)
		}

		result, err := plan.User.Purchase(ctx, Money{Amount: amount, Currency: s.currency(plan)}, plan.Package.Descriptor(), order)
		if err != nil {
			return nil, err
		}
		plan.Payment = result
	} else {
		plan.Payment = payment
	}

	plan.Order = order

	return s.processPurchase(ctx, plan)
}

// processPurchase applies the side effects of a settled (or not required)
// payment: balance refund, activation with compensating rollback, coupon
// accounting, addon rewards, subscription transition, ledger write.
func (s *Service) processPurchase(ctx context.Context, plan *Plan) (*Invoice, error) {
	payment := plan.Payment

	if payment == nil || payment.Successful() {
		if err := s.refundToBalance(ctx, plan); err != nil {
			return nil, err
		}

		if err := plan.Package.Activate(ctx, plan.Host, plan); err != nil {
			// The charge must not stand on a failed activation.
			s.rollback(ctx, plan)
			return nil, errors.Join(ErrActivationFailed, err)
		}

		if plan.User != nil && len(plan.Discounts) > 0 {
			if err := plan.User.RemoveCoupons(ctx, plan.Discounts); err != nil {
				return nil, err
			}
		}
		if err := s.applyCouponUsage(ctx, plan); err != nil {
			return nil, err
		}
	}

	// Reward coupons are granted only for an actual successful payment.
	if payment != nil && payment.Successful() && plan.User != nil && len(plan.AddonCoupons) > 0 {
		if err := plan.User.AddCoupons(ctx, plan.AddonCoupons, plan, plan.Host); err != nil {
			return nil, err
		}
	}

	if err := s.processSubscription(ctx, plan); err != nil {
		return nil, err
	}

	return s.createTransaction(ctx, plan, false)
}

// refundToBalance settles what is owed to the user from a superseded
// subscription against their balance. No-op on trial.
func (s *Service) refundToBalance(ctx context.Context, plan *Plan) error {
	if plan.Trial {
		return nil
	}

	owed := plan.Price - plan.CouponDiscount()

	if plan.PreviousSubscription != nil {
		residual, err := plan.PreviousSubscription.CancelAndRefund(ctx, plan, &owed)
		if err != nil {
			return err
		}
		owed = residual
	}

	if plan.User == nil {
		return nil
	}

	balance := plan.User.Balance() - owed
	if balance < 0 {
		balance = 0
	}
	plan.User.SetBalance(balance)
	return plan.User.Save(ctx)
}

// rollback compensates for a made payment: void first, full refund when
// voiding is no longer possible, then a REFUNDED ledger row recording the
// rollback attempt either way.
func (s *Service) rollback(ctx context.Context, plan *Plan) {
	if plan.Payment == nil {
		return
	}
	reference := plan.Payment.TransactionReference()

	if plan.User != nil {
		if err := plan.User.Void(ctx, reference); err != nil {
			if err := plan.User.Refund(ctx, reference); err != nil {
				s.log.ErrorContext(ctx, "failed to void or refund payment",
					logger.Error(err), logger.TransactionRef(reference), logger.UserID(plan.User.ID()))
			}
		}
	}

	if _, err := s.createTransaction(ctx, plan, true); err != nil {
		s.log.ErrorContext(ctx, "failed to record refund transaction",
			logger.Error(err), logger.TransactionRef(reference))
	}
}

// processSubscription runs the subscription transition for the purchase
// outcome. On a failed payment the purchase's last known subscription is
// referenced purely so the failure transaction links to it for reporting.
func (s *Service) processSubscription(ctx context.Context, plan *Plan) error {
	payment := plan.Payment

	if payment == nil || payment.Successful() {
		if plan.Purchase == nil {
			return ErrPurchaseNotResolved
		}
		if plan.Recurring {
			sub, err := plan.Purchase.Subscribe(ctx, plan)
			if err != nil {
				return err
			}
			plan.Subscription = sub
			return nil
		}
		return plan.Purchase.Unsubscribe(ctx)
	}

	if plan.Recurring && plan.Subscription == nil && plan.Purchase != nil {
		plan.Subscription = plan.Purchase.Subscription()
	}
	return nil
}
