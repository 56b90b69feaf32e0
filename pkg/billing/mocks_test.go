package billing_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/onteko/billingkit/pkg/billing"
)

// Mock implementations

type mockPackage struct {
	mock.Mock
}

func (m *mockPackage) Name() string {
	return m.Called().String(0)
}

func (m *mockPackage) Descriptor() string {
	return m.Called().String(0)
}

func (m *mockPackage) Validate(ctx context.Context, host billing.Host, user billing.User, forPurchase bool) (billing.Host, error) {
	args := m.Called(ctx, host, user, forPurchase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(billing.Host), args.Error(1)
}

func (m *mockPackage) Prepare(ctx context.Context, host billing.Host, plan *billing.Plan) error {
	return m.Called(ctx, host, plan).Error(0)
}

func (m *mockPackage) Activate(ctx context.Context, host billing.Host, plan *billing.Plan) error {
	return m.Called(ctx, host, plan).Error(0)
}

func (m *mockPackage) InUse(ctx context.Context, host billing.Host) (bool, error) {
	args := m.Called(ctx, host)
	return args.Bool(0), args.Error(1)
}

func (m *mockPackage) TrialConsumed(ctx context.Context, host billing.Host) (bool, error) {
	args := m.Called(ctx, host)
	return args.Bool(0), args.Error(1)
}

func (m *mockPackage) ResolvePurchase(ctx context.Context, host billing.Host) (billing.Purchase, error) {
	args := m.Called(ctx, host)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(billing.Purchase), args.Error(1)
}

type mockPurchase struct {
	mock.Mock
}

func (m *mockPurchase) ID() uuid.UUID {
	return m.Called().Get(0).(uuid.UUID)
}

func (m *mockPurchase) Active() bool {
	return m.Called().Bool(0)
}

func (m *mockPurchase) Subscription() billing.Subscription {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(billing.Subscription)
}

func (m *mockPurchase) Subscribe(ctx context.Context, plan *billing.Plan) (billing.Subscription, error) {
	args := m.Called(ctx, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(billing.Subscription), args.Error(1)
}

func (m *mockPurchase) Unsubscribe(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockPurchase) LastTransactionByStatus(ctx context.Context, status billing.TransactionStatus) (*billing.Transaction, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Transaction), args.Error(1)
}

type mockSubscription struct {
	mock.Mock
}

func (m *mockSubscription) ID() uuid.UUID {
	return m.Called().Get(0).(uuid.UUID)
}

func (m *mockSubscription) OnTrial() bool {
	return m.Called().Bool(0)
}

func (m *mockSubscription) Active() bool {
	return m.Called().Bool(0)
}

func (m *mockSubscription) BillingFrequency() billing.BillingFrequency {
	return m.Called().Get(0).(billing.BillingFrequency)
}

func (m *mockSubscription) Renew(ctx context.Context, payment billing.GatewayResult, order *billing.Order) (*billing.Invoice, error) {
	args := m.Called(ctx, payment, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *mockSubscription) SwitchFrequency(ctx context.Context, plan *billing.Plan) (*billing.Invoice, error) {
	args := m.Called(ctx, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *mockSubscription) CancelAndRefund(ctx context.Context, plan *billing.Plan, amount *int64) (int64, error) {
	args := m.Called(ctx, plan, amount)
	return args.Get(0).(int64), args.Error(1)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Charge(ctx context.Context, req billing.ChargeRequest) (billing.GatewayResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(billing.GatewayResult), args.Error(1)
}

func (m *mockGateway) Void(ctx context.Context, reference string) error {
	return m.Called(ctx, reference).Error(0)
}

func (m *mockGateway) Refund(ctx context.Context, reference string) error {
	return m.Called(ctx, reference).Error(0)
}

type mockEventSink struct {
	mock.Mock
}

func (m *mockEventSink) PurchaseFailed(ctx context.Context, plan *billing.Plan, tx *billing.Transaction) {
	m.Called(ctx, plan, tx)
}

// Stubs

type stubHost struct {
	id     uuid.UUID
	exists bool
}

func (h stubHost) ID() uuid.UUID { return h.id }
func (h stubHost) Exists() bool  { return h.exists }

type stubPayment struct {
	successful bool
	pending    bool
	reference  string
	message    string
	data       []byte
}

func (p stubPayment) Successful() bool             { return p.successful }
func (p stubPayment) Pending() bool                { return p.pending }
func (p stubPayment) TransactionReference() string { return p.reference }
func (p stubPayment) Message() string              { return p.message }
func (p stubPayment) Data() []byte                 { return p.data }

// displaySub is a subscription that exposes its own plan representation,
// as live subscription implementations do for preview flows.
type displaySub struct {
	mockSubscription
	plan *billing.Plan
}

func (s *displaySub) Plan() *billing.Plan { return s.plan }

// Test helpers

func testHost() stubHost {
	return stubHost{id: uuid.New(), exists: true}
}

func testUser(gw billing.Gateway) *billing.GatewayUser {
	return &billing.GatewayUser{
		UserID:     uuid.New(),
		CustomerID: "ctm_123",
		GatewayID:  "paddle",
		Gateway:    gw,
	}
}

// newPackage wires a package mock for the happy preparation path: it
// validates to the given host and resolves to the given purchase.
func newPackage(name string, host billing.Host, purchase billing.Purchase) *mockPackage {
	pkg := &mockPackage{}
	pkg.On("Name").Return(name).Maybe()
	pkg.On("Descriptor").Return("pri_" + name).Maybe()
	pkg.On("Validate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(host, nil).Maybe()
	pkg.On("Prepare", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	if purchase != nil {
		pkg.On("ResolvePurchase", mock.Anything, mock.Anything).Return(purchase, nil).Maybe()
	}
	return pkg
}

// newPurchase wires a purchase mock with no live subscription.
func newPurchase(active bool) *mockPurchase {
	purchase := &mockPurchase{}
	purchase.On("ID").Return(uuid.New()).Maybe()
	purchase.On("Active").Return(active).Maybe()
	purchase.On("Subscription").Return(nil).Maybe()
	return purchase
}

func fixedClock() func() time.Time {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return ts }
}
