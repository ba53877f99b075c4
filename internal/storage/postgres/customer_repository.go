package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository создаёт PostgreSQL-реализацию CustomerRepository.
func NewCustomerRepository(store *Store) domain.CustomerRepository {
	return &customerRepository{db: store.DB()}
}

func (r *customerRepository) Create(customer domain.Customer) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (
			id, name, email, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5)
	`,
		customer.ID, customer.Name, customer.Email, customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailInUse
		}
		return fmt.Errorf("insert customer: %w", err)
	}

	return nil
}

func (r *customerRepository) FindByID(id string) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, name, email, created_at, updated_at
		FROM customers
		WHERE id = $1
	`, id))
}

func (r *customerRepository) FindByEmail(email string) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, name, email, created_at, updated_at
		FROM customers
		WHERE email = $1
	`, email))
}

func (r *customerRepository) scanOne(row *sql.Row) (domain.Customer, error) {
	var customer domain.Customer
	err := row.Scan(
		&customer.ID, &customer.Name, &customer.Email, &customer.CreatedAt, &customer.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.ErrCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("select customer: %w", err)
	}
	return customer, nil
}

var _ domain.CustomerRepository = (*customerRepository)(nil)
