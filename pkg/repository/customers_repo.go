package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/portailgestion/portail-admin/pkg/domain"
)

// CustomersRepository handles customer persistence with the same
// reference-clearing delete semantics as profiles.
type CustomersRepository struct {
	db *sql.DB
}

// NewCustomersRepository creates a new customers repository.
func NewCustomersRepository(db *sql.DB) *CustomersRepository {
	return &CustomersRepository{db: db}
}

// Create inserts a new customer.
func (r *CustomersRepository) Create(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (id, code, name, is_active)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query,
		customer.ID, customer.Code, customer.Name, customer.IsActive,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return domain.ErrCodeTaken
	}
	return err
}

// GetByID retrieves a customer by ID.
func (r *CustomersRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	query := `SELECT id, code, name, is_active FROM customers WHERE id = $1`
	customer := &domain.Customer{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&customer.ID, &customer.Code, &customer.Name, &customer.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// GetByCode retrieves a customer by its unique code.
func (r *CustomersRepository) GetByCode(ctx context.Context, code string) (*domain.Customer, error) {
	query := `SELECT id, code, name, is_active FROM customers WHERE code = $1`
	customer := &domain.Customer{}
	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&customer.ID, &customer.Code, &customer.Name, &customer.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// List returns all customers.
func (r *CustomersRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	query := `SELECT id, code, name, is_active FROM customers ORDER BY code`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*domain.Customer
	for rows.Next() {
		customer := &domain.Customer{}
		if err := rows.Scan(&customer.ID, &customer.Code, &customer.Name, &customer.IsActive); err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}

// Delete removes a customer; referencing users get their customer_id nulled
// by the foreign key constraint.
func (r *CustomersRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}
