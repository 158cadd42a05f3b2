// Package products provides the client-side cache for the product catalog.
// The cache is refreshed from the server on sync and read back when the
// server is unreachable.
package products

import (
	"context"

	"github.com/stocklyhq/stockly/internal/client/models"
)

// Repository describes the operations the catalog service needs from the
// product cache. Implementations are backed by a local SQLite database.
type Repository interface {
	// Upsert inserts the product or replaces the cached copy by id.
	Upsert(ctx context.Context, p *models.Product) error

	// GetAll returns all cached non-archived products ordered by name.
	GetAll(ctx context.Context) ([]models.Product, error)

	// Search returns non-archived products whose name or SKU contains the
	// query, case-insensitively.
	Search(ctx context.Context, query string) ([]models.Product, error)

	// GetByID returns a cached product by its identifier.
	GetByID(ctx context.Context, id int64) (*models.Product, error)

	// Purge removes every cached product, used before a full re-sync.
	Purge(ctx context.Context) error
}
