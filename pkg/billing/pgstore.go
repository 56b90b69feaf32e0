package billing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onteko/billingkit/pkg/pg"
)

// PGTransactionStore persists ledger rows in PostgreSQL. The table is
// append-only; see pkg/billing/migrations for the schema.
type PGTransactionStore struct {
	pool *pgxpool.Pool
}

// NewPGTransactionStore creates a ledger store over the given pool.
// Panics on a nil pool to fail fast during initialization.
func NewPGTransactionStore(pool *pgxpool.Pool) *PGTransactionStore {
	if pool == nil {
		panic("billing: pgx pool is required")
	}
	return &PGTransactionStore{pool: pool}
}

var _ TransactionStore = (*PGTransactionStore)(nil)

const insertTransactionSQL = `
INSERT INTO billing_transactions (
	id, name, purchase_id, subscription_id, user_id,
	gateway, price, discount, summary, currency,
	data, reference, status, message, coupons, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

// Save appends one row. Rows are never updated: refunds and corrections
// arrive as new transactions.
func (s *PGTransactionStore) Save(ctx context.Context, tx *Transaction) error {
	coupons, err := json.Marshal(tx.Coupons)
	if err != nil {
		return fmt.Errorf("failed to encode coupon snapshot: %w", err)
	}

	_, err = s.pool.Exec(ctx, insertTransactionSQL,
		tx.ID, tx.Name, tx.PurchaseID, tx.SubscriptionID, tx.UserID,
		tx.Gateway, tx.Price, tx.Discount, tx.Summary, tx.Currency,
		tx.Data, tx.Reference, string(tx.Status), tx.Message, coupons, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

const lastByStatusSQL = `
SELECT id, name, purchase_id, subscription_id, user_id,
	gateway, price, discount, summary, currency,
	data, reference, status, message, coupons, created_at
FROM billing_transactions
WHERE purchase_id = $1 AND status = $2
ORDER BY created_at DESC
LIMIT 1`

// LastByStatus returns the most recent row for a purchase with the given
// status, or nil when none exists. Purchase implementations backed by this
// store use it to serve LastTransactionByStatus.
func (s *PGTransactionStore) LastByStatus(ctx context.Context, purchaseID uuid.UUID, status TransactionStatus) (*Transaction, error) {
	row := s.pool.QueryRow(ctx, lastByStatusSQL, purchaseID, string(status))

	var tx Transaction
	var statusStr string
	var coupons []byte
	err := row.Scan(
		&tx.ID, &tx.Name, &tx.PurchaseID, &tx.SubscriptionID, &tx.UserID,
		&tx.Gateway, &tx.Price, &tx.Discount, &tx.Summary, &tx.Currency,
		&tx.Data, &tx.Reference, &statusStr, &tx.Message, &coupons, &tx.CreatedAt,
	)
	if pg.IsNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}

	tx.Status = TransactionStatus(statusStr)
	if len(coupons) > 0 {
		if err := json.Unmarshal(coupons, &tx.Coupons); err != nil {
			return nil, fmt.Errorf("failed to decode coupon snapshot: %w", err)
		}
	}
	return &tx, nil
}
