package customers

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

	_, err = db.Exec(`CREATE TABLE customers (
		id        INTEGER PRIMARY KEY,
		name      TEXT NOT NULL,
		phone     TEXT NOT NULL DEFAULT '',
		email     TEXT NOT NULL DEFAULT '',
		address   TEXT NOT NULL DEFAULT '',
		archived  INTEGER NOT NULL DEFAULT 0,
		synced_at TEXT NOT NULL DEFAULT ''
	)`)
	require.NoError(t, err)
	return db
}

func sampleCustomer(id int64, name, phone string) *models.Customer {
	return &models.Customer{
		ID:      id,
		Name:    name,
		Phone:   phone,
		Email:   fmt.Sprintf("c%d@example.com", id),
		Address: "Industrial Zone 4",
	}
}

func TestSQLiteRepository_UpsertInsertsAndUpdates(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(newTestDB(t))

	c := sampleCustomer(1, "Acme Hardware", "+90 555 111 2233")
	require.NoError(t, repo.Upsert(ctx, c))

	got, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Acme Hardware", got.Name)
	assert.Equal(t, "+90 555 111 2233", got.Phone)

	c.Name = "Acme Hardware Ltd"
	require.NoError(t, repo.Upsert(ctx, c))

	got, err = repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Acme Hardware Ltd", got.Name)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSQLiteRepository_GetAllSkipsArchivedAndOrdersByName(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(newTestDB(t))

	require.NoError(t, repo.Upsert(ctx, sampleCustomer(1, "Zeta Traders", "")))
	require.NoError(t, repo.Upsert(ctx, sampleCustomer(2, "Alpha Supplies", "")))
	archived := sampleCustomer(3, "Closed Shop", "")
	archived.Archived = true
	require.NoError(t, repo.Upsert(ctx, archived))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Alpha Supplies", all[0].Name)
	assert.Equal(t, "Zeta Traders", all[1].Name)
}

func TestSQLiteRepository_SearchMatchesNameAndPhone(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(newTestDB(t))

	require.NoError(t, repo.Upsert(ctx, sampleCustomer(1, "Acme Hardware", "+90 555 111 2233")))
	require.NoError(t, repo.Upsert(ctx, sampleCustomer(2, "Beta Tools", "+90 555 999 8877")))

	byName, err := repo.Search(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.EqualValues(t, 1, byName[0].ID)

	byPhone, err := repo.Search(ctx, "999 88")
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.EqualValues(t, 2, byPhone[0].ID)
}

func TestSQLiteRepository_GetByIDNotFound(t *testing.T) {
	repo := NewSQLiteRepository(newTestDB(t))

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLiteRepository_Purge(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(newTestDB(t))

	require.NoError(t, repo.Upsert(ctx, sampleCustomer(1, "Acme Hardware", "")))
	require.NoError(t, repo.Purge(ctx))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
