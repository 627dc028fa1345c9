// internal/ordering/client.go
package ordering

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"mediastore/internal/api"
)

// ErrEmptyReason is returned before any network call when a rejection is
// attempted without a reason; the backend requires one.
var ErrEmptyReason = errors.New("rejection reason must not be empty")

// client implements Service against the backend's order endpoints.
type client struct {
	api *api.Client
}

// NewClient creates an ordering service backed by the shared API client.
func NewClient(apiClient *api.Client) Service {
	return &client{api: apiClient}
}

// Place turns the current cart into an order. The backend prices the order
// (subtotal, VAT, weight-based shipping fee) and returns it in PENDING state
// awaiting admin approval.
func (c *client) Place(ctx context.Context, info DeliveryInfo, paymentMethod string) (*Order, error) {
	body := struct {
		DeliveryInfo  DeliveryInfo `json:"deliveryInfo"`
		PaymentMethod string       `json:"paymentMethod"`
	}{DeliveryInfo: info, PaymentMethod: paymentMethod}

	var order Order
	if err := c.api.Do(ctx, http.MethodPost, "/api/v1/orders", body, &order); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	return &order, nil
}

// MyOrders lists the authenticated user's own orders, newest first.
func (c *client) MyOrders(ctx context.Context, page, size int) (*api.Page[Order], error) {
	var result api.Page[Order]
	path := fmt.Sprintf("/orders/my-orders?page=%d&size=%d", page, size)
	if err := c.api.Get(ctx, path, &result); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return &result, nil
}

// Pending lists orders awaiting an admin decision.
func (c *client) Pending(ctx context.Context, page, size int) (*api.Page[Order], error) {
	var result api.Page[Order]
	path := fmt.Sprintf("/orders/pending?page=%d&size=%d", page, size)
	if err := c.api.Get(ctx, path, &result); err != nil {
		return nil, fmt.Errorf("failed to list pending orders: %w", err)
	}
	return &result, nil
}

// Approve accepts a pending order.
func (c *client) Approve(ctx context.Context, id int) error {
	if err := c.api.Do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d/approve", id), nil, nil); err != nil {
		return fmt.Errorf("failed to approve order %d: %w", id, err)
	}
	return nil
}

// Reject refuses a pending order with a mandatory reason.
func (c *client) Reject(ctx context.Context, id int, reason string) error {
	if reason == "" {
		return ErrEmptyReason
	}
	body := struct {
		RejectionReason string `json:"rejectionReason"`
	}{RejectionReason: reason}

	if err := c.api.Do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d/reject", id), body, nil); err != nil {
		return fmt.Errorf("failed to reject order %d: %w", id, err)
	}
	return nil
}

// Confirm marks an order paid after a successful provider payment. The
// PayPal flow calls it directly; the VietQR flow goes through the payment
// provider callback instead.
func (c *client) Confirm(ctx context.Context, id int, transactionID string) error {
	body := struct {
		Confirmed     bool   `json:"confirmed"`
		TransactionID string `json:"transactionId"`
	}{Confirmed: true, TransactionID: transactionID}

	if err := c.api.Do(ctx, http.MethodPost, fmt.Sprintf("/orders/%d/confirm", id), body, nil); err != nil {
		return fmt.Errorf("failed to confirm order %d: %w", id, err)
	}
	return nil
}
