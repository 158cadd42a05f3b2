package products

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/stocklyhq/stockly/internal/client/models"
	"github.com/stocklyhq/stockly/internal/common"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE products (
		id            INTEGER PRIMARY KEY,
		sku           TEXT NOT NULL DEFAULT '',
		name          TEXT NOT NULL,
		price         TEXT NOT NULL DEFAULT '0',
		stock_qty     INTEGER NOT NULL DEFAULT 0,
		category      INTEGER NOT NULL DEFAULT 0,
		category_name TEXT NOT NULL DEFAULT '',
		unit          TEXT NOT NULL DEFAULT '',
		archived      INTEGER NOT NULL DEFAULT 0,
		synced_at     TEXT NOT NULL DEFAULT ''
	)`)
	require.NoError(t, err)
	return db
}

func sampleProduct(id int64, name string) *models.Product {
	return &models.Product{
		ID:           id,
		SKU:          fmt.Sprintf("SKU-%03d", id),
		Name:         name,
		Price:        models.Amount("149.50"),
		StockQty:     12,
		Category:     2,
		CategoryName: "Fasteners",
		Unit:         "pcs",
	}
}

func TestSQLiteRepository_UpsertInsertsAndUpdates(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(newTestDB(t))

	p := sampleProduct(1, "M8 Bolt")
	require.NoError(t, repo.Upsert(ctx, p))

	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "M8 Bolt", got.Name)
	assert.Equal(t, models.Amount("149.50"), got.Price)
	assert.EqualValues(t, 12, got.StockQty)

	p.Name = "M8 Bolt (zinc)"
	p.StockQty = 7
	require.NoError(t, repo.Upsert(ctx, p))

	got, err = repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "M8 Bolt (zinc)", got.Name)
	assert.EqualValues(t, 7, got.StockQty)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSQLiteRepository_GetAllSkipsArchivedAndOrdersByName(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(newTestDB(t))

	require.NoError(t, repo.Upsert(ctx, sampleProduct(1, "Washer")))
	require.NoError(t, repo.Upsert(ctx, sampleProduct(2, "Anchor")))
	archived := sampleProduct(3, "Discontinued nut")
	archived.Archived = true
	require.NoError(t, repo.Upsert(ctx, archived))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Anchor", all[0].Name)
	assert.Equal(t, "Washer", all[1].Name)
}

func TestSQLiteRepository_SearchMatchesNameAndSKU(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(newTestDB(t))

	require.NoError(t, repo.Upsert(ctx, sampleProduct(1, "M8 Bolt")))
	require.NoError(t, repo.Upsert(ctx, sampleProduct(2, "M10 Nut")))

	byName, err := repo.Search(ctx, "Bolt")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.EqualValues(t, 1, byName[0].ID)

	bySKU, err := repo.Search(ctx, "SKU-002")
	require.NoError(t, err)
	require.Len(t, bySKU, 1)
	assert.EqualValues(t, 2, bySKU[0].ID)

	none, err := repo.Search(ctx, "gasket")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLiteRepository_GetByIDNotFound(t *testing.T) {
	repo := NewSQLiteRepository(newTestDB(t))

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLiteRepository_Purge(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(newTestDB(t))

	require.NoError(t, repo.Upsert(ctx, sampleProduct(1, "M8 Bolt")))
	require.NoError(t, repo.Purge(ctx))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
