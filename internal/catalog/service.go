// internal/catalog/service.go
package catalog

import (
	"context"

	"mediastore/internal/api"
)

// Service defines the catalog operations the consoles depend on. The only
// implementation talks to the remote backend; the interface exists so console
// code and tests are not welded to HTTP.
type Service interface {
	Search(ctx context.Context, query, category string, page, size int) (*api.Page[Product], error)
	Get(ctx context.Context, id int) (*Product, error)
	Random(ctx context.Context, count int) ([]Product, error)
	Create(ctx context.Context, payload Payload) (*Product, error)
	Update(ctx context.Context, id int, payload Payload) (*Product, error)
	Deactivate(ctx context.Context, id int) error
	History(ctx context.Context, id int) ([]HistoryEntry, error)
}
