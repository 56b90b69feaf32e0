package billing_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/onteko/billingkit/pkg/billing"
)

func TestCoupon_DiscountFor(t *testing.T) {
	t.Parallel()

	flat := &billing.Coupon{Amount: 500}
	assert.Equal(t, int64(500), flat.DiscountFor(2000))

	percent := &billing.Coupon{Amount: 25, Percent: true}
	assert.Equal(t, int64(500), percent.DiscountFor(2000))
}

func TestPlan_SummaryFlooredAtZero(t *testing.T) {
	t.Parallel()

	plan := &billing.Plan{
		Price:     1000,
		Discounts: []*billing.Coupon{{Amount: 1500}},
	}

	assert.Equal(t, int64(1500), plan.Discount())
	assert.Equal(t, int64(0), plan.Summary())
}

func previewPlan(t *testing.T, svc *billing.Service, plan *billing.Plan, host billing.Host) {
	t.Helper()
	_, err := svc.Preview(context.Background(), plan, host)
	require.NoError(t, err)
}

func TestCouponEvaluation_Internal(t *testing.T) {
	t.Parallel()

	host := testHost()
	purchase := newPurchase(false)
	pkg := newPackage("pro", host, purchase)

	svc := billing.NewService(billing.NewMemoryCouponStore(), billing.NewMemoryTransactionStore())

	coupon := &billing.Coupon{ID: uuid.New(), Code: "STAFF50", Redeem: billing.RedeemInternal, Amount: 50, Percent: true}

	t.Run("granted to user", func(t *testing.T) {
		user := testUser(&mockGateway{})
		user.CouponCodes = []string{"STAFF50"}

		plan := &billing.Plan{Package: pkg, User: user, Price: 2000, Coupons: []*billing.Coupon{coupon}}
		previewPlan(t, svc, plan, host)

		require.Len(t, plan.Discounts, 1)
		assert.Equal(t, int64(1000), plan.Summary())
	})

	t.Run("not granted", func(t *testing.T) {
		plan := &billing.Plan{Package: pkg, User: testUser(&mockGateway{}), Price: 2000, Coupons: []*billing.Coupon{coupon}}
		previewPlan(t, svc, plan, host)

		assert.Empty(t, plan.Discounts)
		assert.Empty(t, plan.CouponError)
	})
}

func TestCouponEvaluation_Manual(t *testing.T) {
	t.Parallel()

	host := testHost()
	purchase := newPurchase(false)
	pkg := newPackage("pro", host, purchase)

	newSvc := func() (*billing.Service, *billing.MemoryCouponStore) {
		store := billing.NewMemoryCouponStore()
		return billing.NewService(store, billing.NewMemoryTransactionStore()), store
	}

	t.Run("accepted on code match", func(t *testing.T) {
		svc, _ := newSvc()
		coupon := &billing.Coupon{ID: uuid.New(), Code: "SAVE10", Redeem: billing.RedeemManual, Amount: 200}

		plan := &billing.Plan{Package: pkg, Price: 2000, Coupons: []*billing.Coupon{coupon}, CouponCode: "SAVE10"}
		previewPlan(t, svc, plan, host)

		require.Len(t, plan.Discounts, 1)
		assert.Empty(t, plan.CouponError)
	})

	t.Run("ignored on code mismatch", func(t *testing.T) {
		svc, _ := newSvc()
		coupon := &billing.Coupon{ID: uuid.New(), Code: "SAVE10", Redeem: billing.RedeemManual, Amount: 200}

		plan := &billing.Plan{Package: pkg, Price: 2000, Coupons: []*billing.Coupon{coupon}, CouponCode: "OTHER"}
		previewPlan(t, svc, plan, host)

		assert.Empty(t, plan.Discounts)
		assert.Empty(t, plan.CouponError)
	})

	t.Run("soft-rejected when already consumed", func(t *testing.T) {
		svc, store := newSvc()
		coupon := &billing.Coupon{ID: uuid.New(), Code: "SAVE10", Redeem: billing.RedeemManual, Amount: 200}

		plan := &billing.Plan{Package: pkg, Price: 2000, Coupons: []*billing.Coupon{coupon}, CouponCode: "SAVE10"}
		plan.Purchase = purchase
		require.NoError(t, store.MarkUsed(context.Background(), coupon, plan, host))

		previewPlan(t, svc, plan, host)

		assert.Empty(t, plan.Discounts)
		assert.Equal(t, billing.DefaultMessages().CouponUsed, plan.CouponError)
	})

	t.Run("soft-rejected at usage limit", func(t *testing.T) {
		svc, _ := newSvc()
		coupon := &billing.Coupon{
			ID: uuid.New(), Code: "SAVE10", Redeem: billing.RedeemManual, Amount: 200,
			NumberOfCoupons: 3, UsedCoupons: 3,
		}

		plan := &billing.Plan{Package: pkg, Price: 2000, Coupons: []*billing.Coupon{coupon}, CouponCode: "SAVE10"}
		previewPlan(t, svc, plan, host)

		assert.Empty(t, plan.Discounts)
		assert.Equal(t, billing.DefaultMessages().CouponLimitReached, plan.CouponError)
	})

	t.Run("referral coupon skipped for enrolled user", func(t *testing.T) {
		svc, _ := newSvc()
		coupon := &billing.Coupon{
			ID: uuid.New(), Code: "REF15", Redeem: billing.RedeemManual, Amount: 300,
			ConnectedToReferral: true,
		}

		user := testUser(&mockGateway{})
		user.ReferralProgramID = "ref_42"

		plan := &billing.Plan{Package: pkg, User: user, Price: 2000, Coupons: []*billing.Coupon{coupon}, CouponCode: "REF15"}
		previewPlan(t, svc, plan, host)

		assert.Empty(t, plan.Discounts)
		assert.Empty(t, plan.CouponError)
	})
}

func TestCouponEvaluation_Autoredeem(t *testing.T) {
	t.Parallel()

	host := testHost()
	purchase := newPurchase(false)
	pkg := newPackage("pro", host, purchase)

	svc := billing.NewService(billing.NewMemoryCouponStore(), billing.NewMemoryTransactionStore())

	coupon := &billing.Coupon{ID: uuid.New(), Code: "LAUNCH", Redeem: billing.RedeemAutoredeem, Amount: 100}

	plan := &billing.Plan{Package: pkg, Price: 2000, Coupons: []*billing.Coupon{coupon}}
	previewPlan(t, svc, plan, host)

	require.Len(t, plan.Discounts, 1)
	assert.Equal(t, int64(1900), plan.Summary())
}

func TestCouponUsage_CounterNeverExceedsCap(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	coupon := &billing.Coupon{
		ID: uuid.New(), Code: "SAVE10", Redeem: billing.RedeemManual, Amount: 200,
		NumberOfCoupons: 3, UsedCoupons: 2,
	}

	coupons := billing.NewMemoryCouponStore()
	transactions := billing.NewMemoryTransactionStore()
	svc := billing.NewService(coupons, transactions)

	buy := func(host billing.Host) *billing.Plan {
		purchase := newPurchase(false)
		purchase.On("Unsubscribe", mock.Anything).Return(nil).Maybe()

		pkg := newPackage("pro", host, purchase)
		pkg.On("Activate", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		gateway := &mockGateway{}
		gateway.On("Charge", mock.Anything, mock.Anything).
			Return(stubPayment{successful: true, reference: "txn_cap"}, nil).Once()

		plan := &billing.Plan{
			Package: pkg, User: testUser(gateway), Price: 2000,
			Coupons: []*billing.Coupon{coupon}, CouponCode: "SAVE10",
		}
		_, err := svc.Purchase(ctx, plan, host, nil, nil)
		require.NoError(t, err)
		return plan
	}

	// Last redemption within the cap.
	first := buy(testHost())
	require.Len(t, first.Discounts, 1)
	assert.Equal(t, 3, coupon.UsedCoupons)

	// Cap reached: no discount, no counter movement, purchase still goes
	// through at full price.
	second := buy(testHost())
	assert.Empty(t, second.Discounts)
	assert.Equal(t, billing.DefaultMessages().CouponLimitReached, second.CouponError)
	assert.Equal(t, 3, coupon.UsedCoupons)

	rows := transactions.All()
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1800), rows[0].Summary)
	assert.Equal(t, int64(2000), rows[1].Summary)
}

func TestTrial_NotOfferedWithoutTrialDays(t *testing.T) {
	t.Parallel()

	host := testHost()
	purchase := newPurchase(false)
	pkg := newPackage("pro", host, purchase)

	svc := billing.NewService(billing.NewMemoryCouponStore(), billing.NewMemoryTransactionStore())

	plan := &billing.Plan{Package: pkg, Price: 2000}
	previewPlan(t, svc, plan, host)

	assert.False(t, plan.Trial)
	pkg.AssertNotCalled(t, "TrialConsumed", mock.Anything, mock.Anything)
}

func TestTrial_ForcedOffWhenConsumed(t *testing.T) {
	t.Parallel()

	host := testHost()
	purchase := newPurchase(false)
	pkg := newPackage("pro", host, purchase)
	pkg.On("TrialConsumed", mock.Anything, mock.Anything).Return(true, nil).Once()

	svc := billing.NewService(billing.NewMemoryCouponStore(), billing.NewMemoryTransactionStore())

	plan := &billing.Plan{Package: pkg, Price: 2000, TrialDays: 14}
	previewPlan(t, svc, plan, host)

	assert.False(t, plan.Trial)
	assert.Equal(t, 0, plan.TrialDays)
}
