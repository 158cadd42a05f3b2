package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocklyhq/stockly/internal/client/client"
	"github.com/stocklyhq/stockly/internal/client/models"
	"github.com/stocklyhq/stockly/internal/client/repositories/customers"
	"github.com/stocklyhq/stockly/internal/client/repositories/products"
)

// fakeClient overrides just the catalog listing methods. Anything else the
// service should never touch; the embedded nil interface panics if it does.
type fakeClient struct {
	client.Client

	products  func(ctx context.Context, opts client.ListOptions) (*models.Page[models.Product], error)
	customers func(ctx context.Context, opts client.ListOptions) (*models.Page[models.Customer], error)
}

func (f *fakeClient) Products(ctx context.Context, opts client.ListOptions) (*models.Page[models.Product], error) {
	return f.products(ctx, opts)
}

func (f *fakeClient) Customers(ctx context.Context, opts client.ListOptions) (*models.Page[models.Customer], error) {
	return f.customers(ctx, opts)
}

// passthroughTx hands the service the same in-memory repos instead of a
// real transaction.
type passthroughTx struct {
	products  *memProductRepo
	customers *memCustomerRepo
}

func (tx *passthroughTx) WithTx(ctx context.Context, fn func(ctx context.Context, p products.Repository, cu customers.Repository) error) error {
	return fn(ctx, tx.products, tx.customers)
}

func newTestCatalog(c client.Client, p *memProductRepo, cu *memCustomerRepo) CatalogService {
	return NewCatalogService(c, p, cu, &passthroughTx{products: p, customers: cu}, nil)
}

type memProductRepo struct {
	items  map[int64]models.Product
	purges int
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{items: map[int64]models.Product{}}
}

func (r *memProductRepo) Upsert(_ context.Context, p *models.Product) error {
	r.items[p.ID] = *p
	return nil
}

func (r *memProductRepo) GetAll(context.Context) ([]models.Product, error) {
	var out []models.Product
	for _, p := range r.items {
		out = append(out, p)
	}
	return out, nil
}

func (r *memProductRepo) Search(_ context.Context, q string) ([]models.Product, error) {
	var out []models.Product
	for _, p := range r.items {
		if p.Name == q {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) GetByID(_ context.Context, id int64) (*models.Product, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &p, nil
}

func (r *memProductRepo) Purge(context.Context) error {
	r.purges++
	r.items = map[int64]models.Product{}
	return nil
}

type memCustomerRepo struct {
	items  map[int64]models.Customer
	purges int
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{items: map[int64]models.Customer{}}
}

func (r *memCustomerRepo) Upsert(_ context.Context, c *models.Customer) error {
	r.items[c.ID] = *c
	return nil
}

func (r *memCustomerRepo) GetAll(context.Context) ([]models.Customer, error) {
	var out []models.Customer
	for _, c := range r.items {
		out = append(out, c)
	}
	return out, nil
}

func (r *memCustomerRepo) Search(_ context.Context, q string) ([]models.Customer, error) {
	var out []models.Customer
	for _, c := range r.items {
		if c.Name == q {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCustomerRepo) GetByID(_ context.Context, id int64) (*models.Customer, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &c, nil
}

func (r *memCustomerRepo) Purge(context.Context) error {
	r.purges++
	r.items = map[int64]models.Customer{}
	return nil
}

func pagedProducts(pages ...[]models.Product) func(context.Context, client.ListOptions) (*models.Page[models.Product], error) {
	return func(_ context.Context, opts client.ListOptions) (*models.Page[models.Product], error) {
		idx := opts.Page
		if idx < 1 {
			idx = 1
		}
		if idx > len(pages) {
			return nil, fmt.Errorf("no page %d", idx)
		}
		p := &models.Page[models.Product]{Results: pages[idx-1]}
		if idx < len(pages) {
			next := fmt.Sprintf("/api/v1/products/?page=%d", idx+1)
			p.Next = &next
		}
		return p, nil
	}
}

func TestCatalogService_SyncWalksAllPages(t *testing.T) {
	prodRepo := newMemProductRepo()
	custRepo := newMemCustomerRepo()

	fake := &fakeClient{
		products: pagedProducts(
			[]models.Product{{ID: 1, Name: "Bolt"}, {ID: 2, Name: "Nut"}},
			[]models.Product{{ID: 3, Name: "Washer"}},
		),
		customers: func(_ context.Context, _ client.ListOptions) (*models.Page[models.Customer], error) {
			return &models.Page[models.Customer]{Results: []models.Customer{{ID: 1, Name: "Acme"}}}, nil
		},
	}

	svc := newTestCatalog(fake, prodRepo, custRepo)
	report, err := svc.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Products)
	assert.Equal(t, 1, report.Customers)
	assert.Len(t, prodRepo.items, 3)
	assert.Len(t, custRepo.items, 1)
	assert.Equal(t, 1, prodRepo.purges)
	assert.Equal(t, 1, custRepo.purges)
}

func TestCatalogService_SyncReplacesStaleEntries(t *testing.T) {
	prodRepo := newMemProductRepo()
	custRepo := newMemCustomerRepo()
	prodRepo.items[99] = models.Product{ID: 99, Name: "Deleted on server"}

	fake := &fakeClient{
		products: pagedProducts([]models.Product{{ID: 1, Name: "Bolt"}}),
		customers: func(_ context.Context, _ client.ListOptions) (*models.Page[models.Customer], error) {
			return &models.Page[models.Customer]{}, nil
		},
	}

	svc := newTestCatalog(fake, prodRepo, custRepo)
	_, err := svc.Sync(context.Background())
	require.NoError(t, err)

	_, ok := prodRepo.items[99]
	assert.False(t, ok)
	assert.Contains(t, prodRepo.items, int64(1))
}

func TestCatalogService_SyncPropagatesFetchError(t *testing.T) {
	boom := errors.New("server said no")
	fake := &fakeClient{
		products: func(_ context.Context, _ client.ListOptions) (*models.Page[models.Product], error) {
			return nil, boom
		},
	}

	svc := newTestCatalog(fake, newMemProductRepo(), newMemCustomerRepo())
	_, err := svc.Sync(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestCatalogService_ProductsPrefersServer(t *testing.T) {
	fake := &fakeClient{
		products: func(_ context.Context, opts client.ListOptions) (*models.Page[models.Product], error) {
			assert.Equal(t, "bolt", opts.Search)
			return &models.Page[models.Product]{Results: []models.Product{{ID: 1, Name: "Bolt"}}}, nil
		},
	}

	svc := newTestCatalog(fake, newMemProductRepo(), newMemCustomerRepo())
	got, fromCache, err := svc.Products(context.Background(), "bolt")
	require.NoError(t, err)
	assert.False(t, fromCache)
	require.Len(t, got, 1)
	assert.Equal(t, "Bolt", got[0].Name)
}

func TestCatalogService_ProductsFallsBackToCacheWhenUnavailable(t *testing.T) {
	prodRepo := newMemProductRepo()
	prodRepo.items[1] = models.Product{ID: 1, Name: "Bolt"}

	fake := &fakeClient{
		products: func(_ context.Context, _ client.ListOptions) (*models.Page[models.Product], error) {
			return nil, fmt.Errorf("dial tcp: %w", client.ErrUnavailable)
		},
	}

	svc := newTestCatalog(fake, prodRepo, newMemCustomerRepo())
	got, fromCache, err := svc.Products(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, fromCache)
	require.Len(t, got, 1)
	assert.Equal(t, "Bolt", got[0].Name)
}

func TestCatalogService_ProductsSearchUsesCacheSearch(t *testing.T) {
	prodRepo := newMemProductRepo()
	prodRepo.items[1] = models.Product{ID: 1, Name: "Bolt"}
	prodRepo.items[2] = models.Product{ID: 2, Name: "Nut"}

	fake := &fakeClient{
		products: func(_ context.Context, _ client.ListOptions) (*models.Page[models.Product], error) {
			return nil, client.ErrUnavailable
		},
	}

	svc := newTestCatalog(fake, prodRepo, newMemCustomerRepo())
	got, fromCache, err := svc.Products(context.Background(), "Nut")
	require.NoError(t, err)
	assert.True(t, fromCache)
	require.Len(t, got, 1)
	assert.EqualValues(t, 2, got[0].ID)
}

func TestCatalogService_ProductsOtherErrorsDoNotFallBack(t *testing.T) {
	prodRepo := newMemProductRepo()
	prodRepo.items[1] = models.Product{ID: 1, Name: "Bolt"}

	fake := &fakeClient{
		products: func(_ context.Context, _ client.ListOptions) (*models.Page[models.Product], error) {
			return nil, client.ErrUnauthorized
		},
	}

	svc := newTestCatalog(fake, prodRepo, newMemCustomerRepo())
	_, fromCache, err := svc.Products(context.Background(), "")
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.False(t, fromCache)
}

func TestCatalogService_CustomersFallsBackToCacheWhenUnavailable(t *testing.T) {
	custRepo := newMemCustomerRepo()
	custRepo.items[1] = models.Customer{ID: 1, Name: "Acme"}

	fake := &fakeClient{
		customers: func(_ context.Context, _ client.ListOptions) (*models.Page[models.Customer], error) {
			return nil, client.ErrUnavailable
		},
	}

	svc := newTestCatalog(fake, newMemProductRepo(), custRepo)
	got, fromCache, err := svc.Customers(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, fromCache)
	require.Len(t, got, 1)
	assert.Equal(t, "Acme", got[0].Name)
}
