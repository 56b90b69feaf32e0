package billing

import (
	"context"
	"slices"

	"github.com/google/uuid"
)

// GatewayUser is a ready-made User implementation that keeps its state in
// memory and delegates payment capabilities to a Gateway. Embed it and
// override Save to add persistence.
type GatewayUser struct {
	UserID            uuid.UUID
	CustomerID        string // gateway-side customer reference
	GatewayID         string // gateway identifier, e.g. "paddle"
	ReferralProgramID string
	AccountBalance    int64
	CouponCodes       []string

	Gateway Gateway
}

var _ User = (*GatewayUser)(nil)

func (u *GatewayUser) ID() uuid.UUID          { return u.UserID }
func (u *GatewayUser) PaymentGateway() string { return u.GatewayID }
func (u *GatewayUser) ReferralID() string     { return u.ReferralProgramID }
func (u *GatewayUser) Balance() int64         { return u.AccountBalance }
func (u *GatewayUser) SetBalance(b int64)     { u.AccountBalance = b }

// Save is a no-op for the in-memory base; embedders persist as needed.
func (u *GatewayUser) Save(ctx context.Context) error { return nil }

func (u *GatewayUser) Coupons() []string { return u.CouponCodes }

func (u *GatewayUser) AddCoupons(ctx context.Context, coupons []*Coupon, plan *Plan, host Host) error {
	for _, c := range coupons {
		if !slices.Contains(u.CouponCodes, c.Code) {
			u.CouponCodes = append(u.CouponCodes, c.Code)
		}
	}
	return nil
}

func (u *GatewayUser) RemoveCoupons(ctx context.Context, coupons []*Coupon) error {
	for _, c := range coupons {
		u.CouponCodes = slices.DeleteFunc(u.CouponCodes, func(code string) bool {
			return code == c.Code
		})
	}
	return nil
}

func (u *GatewayUser) Purchase(ctx context.Context, amount Money, descriptor string, order *Order) (GatewayResult, error) {
	return u.Gateway.Charge(ctx, ChargeRequest{
		Amount:     amount,
		Descriptor: descriptor,
		CustomerID: u.CustomerID,
		Order:      order,
	})
}

func (u *GatewayUser) Void(ctx context.Context, reference string) error {
	return u.Gateway.Void(ctx, reference)
}

func (u *GatewayUser) Refund(ctx context.Context, reference string) error {
	return u.Gateway.Refund(ctx, reference)
}
