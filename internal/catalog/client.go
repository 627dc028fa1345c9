// internal/catalog/client.go
package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"mediastore/internal/api"
)

// client implements Service against the backend's REST surface.
type client struct {
	api *api.Client
}

// NewClient creates a catalog service backed by the shared API client.
func NewClient(apiClient *api.Client) Service {
	return &client{api: apiClient}
}

// Search queries the catalog with optional free-text query and category
// filters. The backend paginates; page is zero-based.
func (c *client) Search(ctx context.Context, query, category string, page, size int) (*api.Page[Product], error) {
	params := url.Values{}
	if query != "" {
		params.Set("query", query)
	}
	if category != "" {
		params.Set("category", category)
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))

	var result api.Page[Product]
	if err := c.api.Get(ctx, "/products/search?"+params.Encode(), &result); err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return &result, nil
}

// Get fetches one product with its full variant fields.
func (c *client) Get(ctx context.Context, id int) (*Product, error) {
	var product Product
	if err := c.api.Get(ctx, fmt.Sprintf("/products/%d", id), &product); err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &product, nil
}

// Random fetches a sample of active products for the storefront landing list.
func (c *client) Random(ctx context.Context, count int) ([]Product, error) {
	var products []Product
	if err := c.api.Get(ctx, fmt.Sprintf("/api/products/random?count=%d", count), &products); err != nil {
		return nil, fmt.Errorf("failed to fetch random products: %w", err)
	}
	return products, nil
}

// Create submits a creation payload and returns the record the backend made
// of it, including the server-assigned id and audit fields.
func (c *client) Create(ctx context.Context, payload Payload) (*Product, error) {
	var product Product
	if err := c.api.Do(ctx, http.MethodPost, "/api/products", payload, &product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

// Update replaces the full record; the backend does not accept partial
// patches, so payload must always be a complete BuildPayload result.
func (c *client) Update(ctx context.Context, id int, payload Payload) (*Product, error) {
	var product Product
	if err := c.api.Do(ctx, http.MethodPut, fmt.Sprintf("/api/products/%d", id), payload, &product); err != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}
	return &product, nil
}

// Deactivate retires a product. The backend keeps the record (and any
// remaining stock) and flips its status to DEACTIVATED.
func (c *client) Deactivate(ctx context.Context, id int) error {
	if err := c.api.Do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil); err != nil {
		return fmt.Errorf("failed to deactivate product %d: %w", id, err)
	}
	return nil
}

// History fetches the product's change journal, newest first.
func (c *client) History(ctx context.Context, id int) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	if err := c.api.Get(ctx, fmt.Sprintf("/api/products/%d/history", id), &entries); err != nil {
		return nil, fmt.Errorf("failed to get product %d history: %w", id, err)
	}
	return entries, nil
}
