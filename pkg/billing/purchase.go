package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/onteko/billingkit/pkg/logger"
)

// Purchase runs the full purchase state machine for the plan on the host.
// The unit of work is serialized on the user key and the (package, host)
// key, in that order, and spans from context resolution through the ledger
// write. The optional payment is a pre-obtained gateway result; when nil,
// the user is charged as needed.
//
// The caller receives an invoice on success, or an error describing why
// the primary purchase did not complete. Additional plans never influence
// the outcome.
func (s *Service) Purchase(ctx context.Context, plan *Plan, host Host, payment GatewayResult, order *Order) (*Invoice, error) {
	if plan.User != nil {
		release, err := s.locker.Acquire(ctx, userLockKey(plan.User.ID()))
		if err != nil {
			return nil, errors.Join(ErrFailedToAcquireLock, err)
		}
		defer release()
	}
	release, err := s.locker.Acquire(ctx, purchaseLockKey(plan.Package, host))
	if err != nil {
		return nil, errors.Join(ErrFailedToAcquireLock, err)
	}
	defer release()

	return s.purchase(ctx, plan, host, payment, order)
}

// purchase is the state machine body. It assumes the user lock is already
// held; additional plan purchases re-enter here under their own
// (package, host) key.
func (s *Service) purchase(ctx context.Context, plan *Plan, host Host, payment GatewayResult, order *Order) (*Invoice, error) {
	// Scheduled renewals bypass discovery and go straight to charging.
	if plan.RenewMode {
		return s.MakePurchase(ctx, plan, payment, order)
	}

	sub, err := s.prepare(ctx, plan, host, true)
	if err != nil {
		return nil, err
	}

	if sub != nil {
		if plan.Recurring {
			inUse, err := plan.Package.InUse(ctx, plan.Host)
			if err != nil {
				return nil, err
			}
			switch {
			case inUse && sub.BillingFrequency() == plan.BillingFrequency:
				return sub.Renew(ctx, payment, order)
			case inUse:
				return sub.SwitchFrequency(ctx, plan)
			case !sub.OnTrial():
				// The purchase was already paid for; reactivate it
				// without charging again.
				return s.useExistingPurchase(ctx, plan)
			}
			// Not in use but still on trial: treat as a fresh purchase.
		} else if !s.config.SwitchRecurringToLifetimeAllowed {
			return nil, fmt.Errorf("%w: %s", ErrNoSwitchToLifetime, s.messages.NoSwitchToLifetime)
		}
	} else if plan.Purchase != nil && plan.Purchase.Active() {
		return s.useExistingPurchase(ctx, plan)
	}

	invoice, err := s.MakePurchase(ctx, plan, payment, order)
	if err != nil {
		return nil, err
	}

	s.purchaseAdditionalPlans(ctx, plan, invoice, payment)
	return invoice, nil
}

// useExistingPurchase reactivates a previously purchased package without
// charging, cancels any superseded subscription, and wraps the purchase's
// last successful transaction (or an empty one) into an invoice.
func (s *Service) useExistingPurchase(ctx context.Context, plan *Plan) (*Invoice, error) {
	plan.Old = true

	if err := plan.Package.Activate(ctx, plan.Host, plan); err != nil {
		return nil, errors.Join(ErrActivationFailed, err)
	}

	if plan.PreviousSubscription != nil {
		if _, err := plan.PreviousSubscription.CancelAndRefund(ctx, plan, nil); err != nil {
			s.log.WarnContext(ctx, "failed to cancel previous subscription",
				logger.Error(err), logger.PurchaseID(plan.Purchase.ID()))
		}
	}

	tx, err := plan.Purchase.LastTransactionByStatus(ctx, StatusSuccess)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		tx = &Transaction{}
	}

	return NewInvoice(plan, tx), nil
}
