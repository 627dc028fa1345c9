// internal/cart/client.go
package cart

import (
	"context"
	"fmt"
	"net/http"

	"mediastore/internal/api"
)

// client implements Service against the backend's cart endpoints.
type client struct {
	api *api.Client
}

// NewClient creates a cart service backed by the shared API client.
func NewClient(apiClient *api.Client) Service {
	return &client{api: apiClient}
}

// Get fetches the authenticated user's cart with server-computed totals.
func (c *client) Get(ctx context.Context) (*Cart, error) {
	var cart Cart
	if err := c.api.Get(ctx, "/cart", &cart); err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return &cart, nil
}

// AddItem puts quantity units of a product into the cart. The backend
// rejects quantities beyond the remaining stock.
func (c *client) AddItem(ctx context.Context, productID, quantity int) error {
	body := struct {
		ProductID int `json:"productId"`
		Quantity  int `json:"quantity"`
	}{ProductID: productID, Quantity: quantity}

	if err := c.api.Do(ctx, http.MethodPost, "/cart/items", body, nil); err != nil {
		return fmt.Errorf("failed to add product %d to cart: %w", productID, err)
	}
	return nil
}

// UpdateItem sets the quantity of an existing cart line.
func (c *client) UpdateItem(ctx context.Context, productID, quantity int) error {
	body := struct {
		Quantity int `json:"quantity"`
	}{Quantity: quantity}

	if err := c.api.Do(ctx, http.MethodPut, fmt.Sprintf("/cart/items/%d", productID), body, nil); err != nil {
		return fmt.Errorf("failed to update cart item %d: %w", productID, err)
	}
	return nil
}

// RemoveItem deletes a cart line.
func (c *client) RemoveItem(ctx context.Context, productID int) error {
	if err := c.api.Do(ctx, http.MethodDelete, fmt.Sprintf("/cart/items/%d", productID), nil, nil); err != nil {
		return fmt.Errorf("failed to remove cart item %d: %w", productID, err)
	}
	return nil
}
