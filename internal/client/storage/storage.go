// Package storage opens the local SQLite cache database, runs migrations,
// and vends the cache repositories.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/stocklyhq/stockly/internal/client/migrations"
	"github.com/stocklyhq/stockly/internal/client/repositories/customers"
	"github.com/stocklyhq/stockly/internal/client/repositories/products"
	"github.com/stocklyhq/stockly/internal/dbx"
)

// Repositories bundles the cache repositories backed by one database.
type Repositories struct {
	Products  products.Repository
	Customers customers.Repository
	DB        *sql.DB
}

// WithTx runs fn against repositories bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (r *Repositories) WithTx(ctx context.Context, fn func(ctx context.Context, p products.Repository, cu customers.Repository) error) error {
	return dbx.WithTx(ctx, r.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, products.NewSQLiteRepository(tx), customers.NewSQLiteRepository(tx))
	})
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return gooseUpContext(ctx, db, ".")
}

// InitDatabase opens the SQLite database at dsn, migrates it, and returns
// the repositories. The caller owns DB and closes it on shutdown.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Repositories{
		Products:  products.NewSQLiteRepository(db),
		Customers: customers.NewSQLiteRepository(db),
		DB:        db,
	}, nil
}
