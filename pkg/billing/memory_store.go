package billing

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// MemoryCouponStore is a mutex-guarded in-memory CouponStore for tests and
// single-process deployments.
type MemoryCouponStore struct {
	mu      sync.RWMutex
	coupons map[uuid.UUID]Coupon
	used    map[string]struct{}
}

// NewMemoryCouponStore returns an empty in-memory coupon store.
func NewMemoryCouponStore() *MemoryCouponStore {
	return &MemoryCouponStore{
		coupons: make(map[uuid.UUID]Coupon),
		used:    make(map[string]struct{}),
	}
}

func usedKey(coupon *Coupon, plan *Plan, host Host) string {
	var hostID uuid.UUID
	if host != nil {
		hostID = host.ID()
	}
	var purchaseID uuid.UUID
	if plan.Purchase != nil {
		purchaseID = plan.Purchase.ID()
	}
	return fmt.Sprintf("%s:%s:%s", coupon.Code, purchaseID, hostID)
}

func (s *MemoryCouponStore) IsUsed(ctx context.Context, coupon *Coupon, plan *Plan, host Host) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.used[usedKey(coupon, plan, host)]
	return ok, nil
}

// MarkUsed records the consumption marker. Marking twice is a no-op.
func (s *MemoryCouponStore) MarkUsed(ctx context.Context, coupon *Coupon, plan *Plan, host Host) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.used[usedKey(coupon, plan, host)] = struct{}{}
	return nil
}

func (s *MemoryCouponStore) Save(ctx context.Context, coupon *Coupon) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coupons[coupon.ID] = *coupon
	return nil
}

// Get returns a copy of a saved coupon, primarily for test assertions.
func (s *MemoryCouponStore) Get(id uuid.UUID) (Coupon, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.coupons[id]
	return c, ok
}

// MemoryTransactionStore is an append-only in-memory TransactionStore.
type MemoryTransactionStore struct {
	mu   sync.RWMutex
	rows []Transaction
}

// NewMemoryTransactionStore returns an empty in-memory ledger.
func NewMemoryTransactionStore() *MemoryTransactionStore {
	return &MemoryTransactionStore{}
}

// Save appends a copy of the row. Rows are never updated in place.
func (s *MemoryTransactionStore) Save(ctx context.Context, tx *Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := *tx
	row.Coupons = slices.Clone(tx.Coupons)
	row.Data = slices.Clone(tx.Data)
	s.rows = append(s.rows, row)
	return nil
}

// All returns a copy of every recorded row in insertion order.
func (s *MemoryTransactionStore) All() []Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.rows)
}

// LastByStatus returns the most recent row for a purchase with the given
// status, or nil.
func (s *MemoryTransactionStore) LastByStatus(purchaseID uuid.UUID, status TransactionStatus) *Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.rows) - 1; i >= 0; i-- {
		if s.rows[i].PurchaseID == purchaseID && s.rows[i].Status == status {
			row := s.rows[i]
			return &row
		}
	}
	return nil
}
