// Package billing implements the purchase and subscription orchestration
// core of a billing platform: coupon evaluation, free trial computation,
// the purchase state machine, payment and activation with rollback on
// failure, an append-only transaction ledger, subscription lifecycle
// transitions, and best-effort purchase of dependent plans.
//
// The orchestrator is a stateless service operating on a transient Plan
// (the purchase intent) and its collaborators (Package, User, Host,
// Purchase, Subscription), all injected through interfaces, so the core
// stays independent of persistence, transport, and gateway specifics.
//
// # Purchase flow
//
// A purchase runs as one synchronous unit of work. The service resolves
// the purchase context, decides the path (fresh purchase, renewal,
// frequency switch, reactivation, or rejection), charges the gateway if
// needed, activates the package, transitions the subscription, and writes
// the ledger row. A failed activation voids or refunds the charge before
// the error propagates; a failed payment persists a FAILED row and fires
// the purchase-failed event before returning ErrPaymentFailed.
//
//	svc := billing.NewService(couponStore, ledger,
//		billing.WithConfig(cfg),
//		billing.WithLogger(log),
//	)
//
//	invoice, err := svc.Purchase(ctx, plan, host, nil, nil)
//
// Concurrent purchases serialize on the user and on the (package, host)
// pair; pass a lock.RedisLock through WithLocker when running more than
// one instance.
//
// # Gateway integration
//
// Payments go through the Gateway interface. A complete Paddle
// implementation is included:
//
//	gw, err := billing.NewPaddleGateway(billing.PaddleConfig{APIKey: key})
//
// Coupons come in three redeem types: internal (pre-granted to the user),
// manual (user-entered code with an optional usage cap), and autoredeem
// (always applied). Manual coupon rejections are soft: they surface on
// the plan's CouponError field so the caller can display them without
// losing the underlying purchase.
package billing
