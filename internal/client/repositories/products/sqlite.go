package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/stocklyhq/stockly/internal/client/models"
	"github.com/stocklyhq/stockly/internal/common"
	"github.com/stocklyhq/stockly/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Upsert replaces the cached product by id.
func (r *SQLiteRepository) Upsert(ctx context.Context, p *models.Product) error {
	query := `INSERT INTO products (id, sku, name, price, stock_qty, category, category_name, unit, archived, synced_at)
			values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET sku = excluded.sku,
				name = excluded.name,
				price = excluded.price,
				stock_qty = excluded.stock_qty,
				category = excluded.category,
				category_name = excluded.category_name,
				unit = excluded.unit,
				archived = excluded.archived,
				synced_at = excluded.synced_at
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.SKU, p.Name, string(p.Price), p.StockQty, p.Category, p.CategoryName,
		p.Unit, p.Archived, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to upsert product: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	query := `select id, sku, name, price, stock_qty, category, category_name, unit, archived
			from products where archived=0 order by name`
	return r.query(ctx, query)
}

func (r *SQLiteRepository) Search(ctx context.Context, q string) ([]models.Product, error) {
	query := `select id, sku, name, price, stock_qty, category, category_name, unit, archived
			from products where archived=0 and (name like ? or sku like ?) order by name`
	pattern := "%" + q + "%"
	return r.query(ctx, query, pattern, pattern)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	query := `select id, sku, name, price, stock_qty, category, category_name, unit, archived
			from products where id=?`
	row := r.db.QueryRowContext(ctx, query, id)

	p, err := scanProduct(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return p, nil
}

func (r *SQLiteRepository) Purge(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `delete from products`); err != nil {
		return fmt.Errorf("failed to purge products: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select products: %w", err)
	}
	defer rows.Close()

	var result []models.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanProduct(scan func(...any) error) (*models.Product, error) {
	var p models.Product
	var price string
	if err := scan(&p.ID, &p.SKU, &p.Name, &price, &p.StockQty, &p.Category,
		&p.CategoryName, &p.Unit, &p.Archived); err != nil {
		return nil, err
	}
	p.Price = models.Amount(price)
	return &p, nil
}
