// internal/cart/service.go
package cart

import "context"

// Service defines the cart operations. Every mutation is followed by a fresh
// Get in the consoles rather than patching local state, matching the
// backend-owned cart model.
type Service interface {
	Get(ctx context.Context) (*Cart, error)
	AddItem(ctx context.Context, productID, quantity int) error
	UpdateItem(ctx context.Context, productID, quantity int) error
	RemoveItem(ctx context.Context, productID int) error
}
