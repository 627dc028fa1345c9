// internal/payment/service.go
package payment

import "context"

// Service defines the mock payment flows. Create opens a transaction for an
// order; ConfirmVietQR simulates the provider's callback with the provider
// transaction reference; CreatePayPal returns the provider approval link.
type Service interface {
	Create(ctx context.Context, orderID int) (*Transaction, error)
	ConfirmVietQR(ctx context.Context, providerTransactionID string) error
	CreatePayPal(ctx context.Context, orderID int, amount float64) (*PayPalOrder, error)
}
