package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/set-night/invoicedash/internal/domain"
	ierr "github.com/set-night/invoicedash/internal/errors"
)

// DBTX is the subset of pgx shared by *pgxpool.Pool, pgx.Tx and test mocks.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	insertInvoiceSQL = `INSERT INTO invoices (customer_id, amount, status, date)
VALUES ($1, $2, $3, $4)
RETURNING id::text`

	updateInvoiceSQL = `UPDATE invoices
SET customer_id = $1, amount = $2, status = $3
WHERE id = $4`

	deleteInvoiceSQL = `DELETE FROM invoices WHERE id = $1`

	listInvoicesSQL = `SELECT i.id::text, i.customer_id::text, i.amount, i.status, i.date,
       COALESCE(c.name, ''), COALESCE(c.email, '')
FROM invoices i
LEFT JOIN customers c ON c.id = i.customer_id
ORDER BY i.date DESC, i.id
LIMIT $1`
)

type InvoiceRepository struct {
	db DBTX
}

func NewInvoiceRepository(db DBTX) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create inserts a new invoice and returns its generated id.
func (r *InvoiceRepository) Create(ctx context.Context, customerID string, amountMinor int64, status domain.InvoiceStatus, date string) (string, error) {
	var id string
	err := r.db.QueryRow(ctx, insertInvoiceSQL, customerID, amountMinor, string(status), date).Scan(&id)
	if err != nil {
		return "", ierr.WithError(fmt.Errorf("insert invoice: %w", err)).Mark(ierr.ErrDatabase)
	}
	return id, nil
}

// Update rewrites the editable columns of an invoice. The date column is never touched.
// The id is passed through as-is; ids the column type rejects surface as database errors.
func (r *InvoiceRepository) Update(ctx context.Context, id, customerID string, amountMinor int64, status domain.InvoiceStatus) error {
	tag, err := r.db.Exec(ctx, updateInvoiceSQL, customerID, amountMinor, string(status), id)
	if err != nil {
		return ierr.WithError(fmt.Errorf("update invoice: %w", err)).Mark(ierr.ErrDatabase)
	}
	if tag.RowsAffected() == 0 {
		return notFound()
	}
	return nil
}

func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, deleteInvoiceSQL, id)
	if err != nil {
		return ierr.WithError(fmt.Errorf("delete invoice: %w", err)).Mark(ierr.ErrDatabase)
	}
	if tag.RowsAffected() == 0 {
		return notFound()
	}
	return nil
}

// List returns the most recent invoices joined with their customers.
func (r *InvoiceRepository) List(ctx context.Context, limit int) ([]domain.InvoiceListItem, error) {
	rows, err := r.db.Query(ctx, listInvoicesSQL, int32(limit))
	if err != nil {
		return nil, ierr.WithError(fmt.Errorf("list invoices: %w", err)).Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var items []domain.InvoiceListItem
	for rows.Next() {
		var (
			item   domain.InvoiceListItem
			status string
			date   pgtype.Date
		)
		if err := rows.Scan(&item.ID, &item.CustomerID, &item.AmountMinor, &status, &date, &item.CustomerName, &item.CustomerEmail); err != nil {
			return nil, ierr.WithError(fmt.Errorf("scan invoice: %w", err)).Mark(ierr.ErrDatabase)
		}
		item.Status = domain.InvoiceStatus(status)
		item.Date = pgDateToString(date)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, ierr.WithError(fmt.Errorf("list invoices: %w", err)).Mark(ierr.ErrDatabase)
	}
	return items, nil
}

func notFound() error {
	return ierr.WithError(domain.ErrInvoiceNotFound).Mark(ierr.ErrNotFound)
}
