// internal/payment/client.go
package payment

import (
	"context"
	"fmt"
	"net/http"

	"mediastore/internal/api"
)

// client implements Service against the backend's payment endpoints.
type client struct {
	api *api.Client
}

// NewClient creates a payment service backed by the shared API client.
func NewClient(apiClient *api.Client) Service {
	return &client{api: apiClient}
}

// Create opens a transaction for the order and returns the provider
// references plus the VietQR string to display.
func (c *client) Create(ctx context.Context, orderID int) (*Transaction, error) {
	body := struct {
		OrderID int `json:"orderId"`
	}{OrderID: orderID}

	var txn Transaction
	if err := c.api.Do(ctx, http.MethodPost, "/api/v1/payments", body, &txn); err != nil {
		return nil, fmt.Errorf("failed to create payment for order %d: %w", orderID, err)
	}
	return &txn, nil
}

// ConfirmVietQR simulates the bank-side callback confirming the transfer.
// The backend keys the callback by the provider's transaction reference, not
// by its own transactionId.
func (c *client) ConfirmVietQR(ctx context.Context, providerTransactionID string) error {
	body := struct {
		TransactionID string `json:"transactionId"`
	}{TransactionID: providerTransactionID}

	if err := c.api.Do(ctx, http.MethodPost, "/api/v1/payments/vietqr/callback", body, nil); err != nil {
		return fmt.Errorf("failed to confirm VietQR payment: %w", err)
	}
	return nil
}

// CreatePayPal asks the backend to open a PayPal order and hand back the
// approval link. The subsequent confirmation goes through ordering.Confirm.
func (c *client) CreatePayPal(ctx context.Context, orderID int, amount float64) (*PayPalOrder, error) {
	body := struct {
		OrderID       int     `json:"orderId"`
		Amount        float64 `json:"amount"`
		PaymentMethod string  `json:"paymentMethod"`
	}{OrderID: orderID, Amount: amount, PaymentMethod: "PAYPAL"}

	var order PayPalOrder
	if err := c.api.Do(ctx, http.MethodPost, "/payment/paypal/create", body, &order); err != nil {
		return nil, fmt.Errorf("failed to create PayPal order: %w", err)
	}
	return &order, nil
}
