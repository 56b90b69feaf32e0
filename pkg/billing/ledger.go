package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/onteko/billingkit/pkg/logger"
)

// createTransaction builds the ledger row for the purchase outcome and
// wraps it into an invoice. Free and trial purchases short-circuit: no
// gateway payload exists, so no row is persisted. A FAILED classification
// emits the purchase-failed event and is terminal for the purchase.
func (s *Service) createTransaction(ctx context.Context, plan *Plan, refund bool) (*Invoice, error) {
	tx := &Transaction{
		ID:        uuid.New(),
		Name:      plan.Package.Name(),
		Price:     plan.Price,
		Discount:  min(plan.Discount(), plan.Price),
		Currency:  s.currency(plan),
		Coupons:   snapshotCoupons(plan.Discounts),
		CreatedAt: s.now(),
	}
	if plan.Purchase != nil {
		tx.PurchaseID = plan.Purchase.ID()
	}
	if plan.Subscription != nil {
		id := plan.Subscription.ID()
		tx.SubscriptionID = &id
	}
	if plan.User != nil {
		tx.UserID = plan.User.ID()
		tx.Gateway = plan.User.PaymentGateway()
	}

	// Free and trial purchases carry no payment to record.
	if plan.Free || plan.Trial {
		return NewInvoice(plan, tx), nil
	}

	payment := plan.Payment
	if payment != nil {
		tx.Data = payment.Data()
		tx.Reference = payment.TransactionReference()
		tx.Message = payment.Message()
	}

	switch {
	case refund:
		tx.Status = StatusRefunded
	case payment == nil:
		// A paid path without a payment result is a terminal failure; the
		// ledger row must still explain itself.
		tx.Status = StatusFailed
		tx.Message = ErrMissingPaymentResult.Error()
	case payment.Pending():
		tx.Status = StatusPending
	case payment.Successful():
		tx.Status = StatusSuccess
	default:
		tx.Status = StatusFailed
	}
	tx.Summary = plan.Summary()

	if err := s.transactions.Save(ctx, tx); err != nil {
		return nil, err
	}

	if tx.Status == StatusFailed {
		s.events.PurchaseFailed(ctx, plan, tx)
		s.log.WarnContext(ctx, "purchase failed",
			logger.TransactionID(tx.ID), logger.Gateway(tx.Gateway), logger.Amount(tx.Summary, tx.Currency))
		return nil, fmt.Errorf("%w: %s: %s", ErrPaymentFailed, s.messages.PaymentProcessor, tx.Message)
	}

	return NewInvoice(plan, tx), nil
}
