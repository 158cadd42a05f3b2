package customers

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

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, c *models.Customer) error {
	query := `INSERT INTO customers (id, name, phone, email, address, archived, synced_at)
			values (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name,
				phone = excluded.phone,
				email = excluded.email,
				address = excluded.address,
				archived = excluded.archived,
				synced_at = excluded.synced_at
	`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Phone, c.Email, c.Address, c.Archived,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to upsert customer: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Customer, error) {
	query := `select id, name, phone, email, address, archived
			from customers where archived=0 order by name`
	return r.query(ctx, query)
}

func (r *SQLiteRepository) Search(ctx context.Context, q string) ([]models.Customer, error) {
	query := `select id, name, phone, email, address, archived
			from customers where archived=0 and (name like ? or phone like ?) order by name`
	pattern := "%" + q + "%"
	return r.query(ctx, query, pattern, pattern)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	query := `select id, name, phone, email, address, archived from customers where id=?`
	row := r.db.QueryRowContext(ctx, query, id)

	var c models.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.Archived)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return &c, nil
}

func (r *SQLiteRepository) Purge(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `delete from customers`); err != nil {
		return fmt.Errorf("failed to purge customers: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]models.Customer, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select customers: %w", err)
	}
	defer rows.Close()

	var result []models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.Archived); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
