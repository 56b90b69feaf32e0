package billing

import "context"

// computeTrial decides whether the current purchase is entitled to a free
// trial. Trial consumption is tracked per host across purchases: once the
// package's trial was used on a host, subsequent plans have their trial
// length forced to zero.
func (s *Service) computeTrial(ctx context.Context, plan *Plan) (bool, error) {
	if plan.TrialDays == 0 {
		plan.Trial = false
		return false, nil
	}

	consumed, err := plan.Package.TrialConsumed(ctx, plan.Host)
	if err != nil {
		return false, err
	}
	if consumed {
		plan.TrialDays = 0
		plan.Trial = false
		return false, nil
	}

	plan.Trial = true
	return true, nil
}
