package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	paddle "github.com/PaddleHQ/paddle-go-sdk/v4"
)

// PaddleConfig holds configuration for the Paddle gateway.
type PaddleConfig struct {
	APIKey      string `env:"PADDLE_API_KEY,required"`
	Environment string `env:"PADDLE_ENVIRONMENT" envDefault:"production"`
}

// PaddleGateway implements Gateway on top of the Paddle Billing API.
// Charges are catalog transactions against a saved customer; rollbacks go
// through the adjustments API. Paddle has no void for settled payments, so
// Void reports ErrVoidNotSupported and callers fall back to Refund.
type PaddleGateway struct {
	client *paddle.SDK
	config PaddleConfig
}

// NewPaddleGateway creates a Paddle-backed payment gateway.
func NewPaddleGateway(config PaddleConfig) (*PaddleGateway, error) {
	if config.APIKey == "" {
		return nil, errors.New("paddle API key is required")
	}

	var client *paddle.SDK
	var err error

	switch strings.ToLower(config.Environment) {
	case "sandbox":
		client, err = paddle.NewSandbox(config.APIKey)
	case "production", "":
		client, err = paddle.New(config.APIKey)
	default:
		return nil, fmt.Errorf("invalid paddle environment: %s", config.Environment)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create paddle client: %w", err)
	}

	return &PaddleGateway{client: client, config: config}, nil
}

var _ Gateway = (*PaddleGateway)(nil)

// Charge creates a transaction for the customer from the catalog price
// identified by the request descriptor. A zero amount (free trial) returns
// an approved synthetic result without touching the API.
func (g *PaddleGateway) Charge(ctx context.Context, req ChargeRequest) (GatewayResult, error) {
	if req.Amount.IsZero() {
		return freeChargeResult{}, nil
	}
	if req.CustomerID == "" {
		return nil, ErrMissingGatewayCustomer
	}

	item := paddle.NewCreateTransactionItemsTransactionItemFromCatalog(&paddle.TransactionItemFromCatalog{
		PriceID:  req.Descriptor,
		Quantity: 1,
	})

	transactionReq := &paddle.CreateTransactionRequest{
		Items: []paddle.CreateTransactionItems{*item},
		CustomData: paddle.CustomData{
			"customer_id": req.CustomerID,
		},
	}
	if req.Order != nil && req.Order.Action != "" {
		transactionReq.CustomData["order_action"] = string(req.Order.Action)
	}

	transaction, err := g.client.TransactionsClient.CreateTransaction(ctx, transactionReq)
	if err != nil {
		return nil, fmt.Errorf("failed to create paddle transaction: %w", err)
	}

	return newPaddleResult(transaction), nil
}

// Void is not supported by Paddle's billing API.
func (g *PaddleGateway) Void(ctx context.Context, reference string) error {
	return ErrVoidNotSupported
}

// Refund requests a full refund adjustment for the transaction.
func (g *PaddleGateway) Refund(ctx context.Context, reference string) error {
	_, err := g.client.AdjustmentsClient.CreateAdjustment(ctx, &paddle.CreateAdjustmentRequest{
		Action:        paddle.AdjustmentActionRefund,
		TransactionID: reference,
		Reason:        "billing rollback",
		Type:          paddle.PtrTo(paddle.AdjustmentTypeFull),
	})
	if err != nil {
		return fmt.Errorf("failed to refund paddle transaction: %w", err)
	}
	return nil
}

// paddleResult adapts a Paddle transaction to GatewayResult. The raw
// transaction is kept serialized for the ledger.
type paddleResult struct {
	id      string
	status  string
	payload []byte
}

func newPaddleResult(tx *paddle.Transaction) paddleResult {
	payload, _ := json.Marshal(tx)
	return paddleResult{
		id:      tx.ID,
		status:  string(tx.Status),
		payload: payload,
	}
}

func (r paddleResult) Successful() bool {
	return r.status == "completed" || r.status == "paid"
}

func (r paddleResult) Pending() bool {
	return r.status == "billed" || r.status == "ready"
}

func (r paddleResult) TransactionReference() string { return r.id }

func (r paddleResult) Message() string {
	if r.Successful() || r.Pending() {
		return ""
	}
	return "paddle transaction status: " + r.status
}

func (r paddleResult) Data() []byte { return r.payload }

// freeChargeResult is the synthetic approval for zero-amount charges.
type freeChargeResult struct{}

func (freeChargeResult) Successful() bool             { return true }
func (freeChargeResult) Pending() bool                { return false }
func (freeChargeResult) TransactionReference() string { return "" }
func (freeChargeResult) Message() string              { return "" }
func (freeChargeResult) Data() []byte                 { return nil }
