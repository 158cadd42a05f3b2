// Package services contains application services for the Stockly client.
// This file defines the catalog service: syncing products and customers
// into the local cache and reading them back when the server is offline.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/stocklyhq/stockly/internal/client/client"
	"github.com/stocklyhq/stockly/internal/client/models"
	"github.com/stocklyhq/stockly/internal/client/repositories/customers"
	"github.com/stocklyhq/stockly/internal/client/repositories/products"
	"github.com/stocklyhq/stockly/internal/logging"
)

// CatalogService serves product and customer listings. Reads go to the
// server first; when it is unreachable they fall back to the local cache.
//
// Contract:
//   - Sync: replace the local cache with the server's full catalog.
//   - Products/Customers: list with optional search, cache fallback.
//   - All methods must honor context cancellation/timeouts.
type CatalogService interface {
	Sync(ctx context.Context) (*SyncReport, error)
	Products(ctx context.Context, search string) ([]models.Product, bool, error)
	Customers(ctx context.Context, search string) ([]models.Customer, bool, error)
}

// SyncReport summarizes a completed cache sync.
type SyncReport struct {
	Products  int
	Customers int
}

// TxRunner executes fn against repositories bound to one transaction.
// *storage.Repositories implements it.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, p products.Repository, cu customers.Repository) error) error
}

type catalogService struct {
	client    client.Client
	products  products.Repository
	customers customers.Repository
	tx        TxRunner
	log       logging.Logger
}

// NewCatalogService constructs a CatalogService bound to the API client and
// the cache repositories. tx supplies transactional repositories for Sync.
func NewCatalogService(c client.Client, p products.Repository, cu customers.Repository, tx TxRunner, log logging.Logger) CatalogService {
	if log == nil {
		log = logging.NewNoopLogger()
	}
	return &catalogService{client: c, products: p, customers: cu, tx: tx, log: log}
}

// Sync walks every page of products and customers and upserts them into the
// cache. The cache is purged first so server-side deletions disappear
// locally too. The whole sync runs in one transaction: a failure mid-way
// must not leave the cache purged or half-filled.
func (s *catalogService) Sync(ctx context.Context) (*SyncReport, error) {
	report := &SyncReport{}

	err := s.tx.WithTx(ctx, func(ctx context.Context, prodRepo products.Repository, custRepo customers.Repository) error {
		if err := prodRepo.Purge(ctx); err != nil {
			return err
		}
		n, err := syncPaged(ctx, s.client.Products, func(ctx context.Context, p *models.Product) error {
			return prodRepo.Upsert(ctx, p)
		})
		if err != nil {
			return fmt.Errorf("product sync: %w", err)
		}
		report.Products = n

		if err := custRepo.Purge(ctx); err != nil {
			return err
		}
		n, err = syncPaged(ctx, s.client.Customers, func(ctx context.Context, c *models.Customer) error {
			return custRepo.Upsert(ctx, c)
		})
		if err != nil {
			return fmt.Errorf("customer sync: %w", err)
		}
		report.Customers = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "catalog synced", "products", report.Products, "customers", report.Customers)
	return report, nil
}

// syncPaged fetches every page from fetch and feeds each item to store.
func syncPaged[T any](
	ctx context.Context,
	fetch func(context.Context, client.ListOptions) (*models.Page[T], error),
	store func(context.Context, *T) error,
) (int, error) {
	total := 0
	for page := 1; ; page++ {
		res, err := fetch(ctx, client.ListOptions{Page: page})
		if err != nil {
			return total, err
		}
		for i := range res.Results {
			if err := store(ctx, &res.Results[i]); err != nil {
				return total, err
			}
		}
		total += len(res.Results)
		if !res.HasNext() {
			return total, nil
		}
	}
}

// Products lists products from the server, falling back to the cache when
// the server is unreachable. The bool result reports whether the data came
// from the cache.
func (s *catalogService) Products(ctx context.Context, search string) ([]models.Product, bool, error) {
	page, err := s.client.Products(ctx, client.ListOptions{Search: search})
	if err == nil {
		return page.Results, false, nil
	}
	if !errors.Is(err, client.ErrUnavailable) {
		return nil, false, err
	}

	s.log.Warn(ctx, "server unreachable, serving products from cache", "error", err)
	var cached []models.Product
	var cacheErr error
	if search == "" {
		cached, cacheErr = s.products.GetAll(ctx)
	} else {
		cached, cacheErr = s.products.Search(ctx, search)
	}
	if cacheErr != nil {
		return nil, false, errors.Join(err, cacheErr)
	}
	return cached, true, nil
}

// Customers mirrors Products for customer records.
func (s *catalogService) Customers(ctx context.Context, search string) ([]models.Customer, bool, error) {
	page, err := s.client.Customers(ctx, client.ListOptions{Search: search})
	if err == nil {
		return page.Results, false, nil
	}
	if !errors.Is(err, client.ErrUnavailable) {
		return nil, false, err
	}

	s.log.Warn(ctx, "server unreachable, serving customers from cache", "error", err)
	var cached []models.Customer
	var cacheErr error
	if search == "" {
		cached, cacheErr = s.customers.GetAll(ctx)
	} else {
		cached, cacheErr = s.customers.Search(ctx, search)
	}
	if cacheErr != nil {
		return nil, false, errors.Join(err, cacheErr)
	}
	return cached, true, nil
}
