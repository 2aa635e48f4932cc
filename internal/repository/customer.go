package repository

import (
	"context"
	"fmt"

	"github.com/set-night/invoicedash/internal/domain"
	ierr "github.com/set-night/invoicedash/internal/errors"
)

const listCustomersSQL = `SELECT id::text, name, email, image_url
FROM customers
ORDER BY name ASC`

type CustomerRepository struct {
	db DBTX
}

func NewCustomerRepository(db DBTX) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.db.Query(ctx, listCustomersSQL)
	if err != nil {
		return nil, ierr.WithError(fmt.Errorf("list customers: %w", err)).Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL); err != nil {
			return nil, ierr.WithError(fmt.Errorf("scan customer: %w", err)).Mark(ierr.ErrDatabase)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, ierr.WithError(fmt.Errorf("list customers: %w", err)).Mark(ierr.ErrDatabase)
	}
	return customers, nil
}
