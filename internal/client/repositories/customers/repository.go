// Package customers provides the client-side cache for customer records,
// mirroring the product cache.
package customers

import (
	"context"

	"github.com/stocklyhq/stockly/internal/client/models"
)

// Repository describes the operations the catalog service needs from the
// customer cache.
type Repository interface {
	Upsert(ctx context.Context, c *models.Customer) error
	GetAll(ctx context.Context) ([]models.Customer, error)
	Search(ctx context.Context, query string) ([]models.Customer, error)
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	Purge(ctx context.Context) error
}
