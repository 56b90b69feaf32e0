package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/onteko/billingkit/pkg/logger"
)

// purchaseAdditionalPlans buys the dependent plans attached to the primary
// plan, best effort: each runs its own full purchase against the same host
// and the same pre-obtained payment (never a second charge of the primary
// payment), each failure is captured in the invoice and never escalates.
// Results keep the original order.
func (s *Service) purchaseAdditionalPlans(ctx context.Context, plan *Plan, invoice *Invoice, payment GatewayResult) {
	for _, additional := range plan.AdditionalPlans {
		result := AdditionalResult{Plan: additional}
		result.Invoice, result.Err = s.purchaseAdditional(ctx, additional, plan.Host, payment)
		if result.Err != nil {
			s.log.WarnContext(ctx, "additional plan purchase failed",
				logger.Error(result.Err), logger.Package(additional.Package.Name()))
		}
		invoice.Additional = append(invoice.Additional, result)
	}
}

// purchaseAdditional serializes one additional plan on its own
// (package, host) key. The user lock is already held by the primary
// purchase, so additional plans must target a different package.
func (s *Service) purchaseAdditional(ctx context.Context, plan *Plan, host Host, payment GatewayResult) (invoice *Invoice, err error) {
	defer func() {
		if r := recover(); r != nil {
			invoice = nil
			err = errors.Join(errors.New("additional plan purchase panicked"), toError(r))
		}
	}()

	release, lockErr := s.locker.Acquire(ctx, purchaseLockKey(plan.Package, host))
	if lockErr != nil {
		return nil, errors.Join(ErrFailedToAcquireLock, lockErr)
	}
	defer release()

	return s.purchase(ctx, plan, host, payment, nil)
}

func toError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return fmt.Errorf("%v", v)
}
