// internal/ordering/service.go
package ordering

import (
	"context"

	"mediastore/internal/api"
)

// Service defines checkout and order management. Place, MyOrders and Confirm
// serve the storefront; Pending, Approve and Reject serve the admin console.
type Service interface {
	Place(ctx context.Context, info DeliveryInfo, paymentMethod string) (*Order, error)
	MyOrders(ctx context.Context, page, size int) (*api.Page[Order], error)
	Pending(ctx context.Context, page, size int) (*api.Page[Order], error)
	Approve(ctx context.Context, id int) error
	Reject(ctx context.Context, id int, reason string) error
	Confirm(ctx context.Context, id int, transactionID string) error
}
