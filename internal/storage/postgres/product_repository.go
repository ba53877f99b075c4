package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

type productRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт PostgreSQL-реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{db: store.DB()}
}

func (r *productRepository) Create(product domain.Product) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (
			id, name, price_minor, quantity, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		product.ID, product.Name, product.PriceMinor, product.Quantity,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProductNameInUse
		}
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

func (r *productRepository) FindByName(name string) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var product domain.Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, price_minor, quantity, created_at, updated_at
		FROM products
		WHERE name = $1
	`, name).Scan(
		&product.ID, &product.Name, &product.PriceMinor, &product.Quantity,
		&product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("select product by name: %w", err)
	}

	return product, nil
}

func (r *productRepository) FindAllByID(ids []string) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return []domain.Product{}, nil
	}

	placeholders := make([]string, len(unique))
	args := make([]any, len(unique))
	for i, id := range unique {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, price_minor, quantity, created_at, updated_at
		FROM products
		WHERE id IN (`+strings.Join(placeholders, ",")+`)
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("select products by id: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]domain.Product, len(unique))
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID, &product.Name, &product.PriceMinor, &product.Quantity,
			&product.CreatedAt, &product.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		byID[product.ID] = product
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	// Результат в порядке запрошенных id, отсутствующие пропускаются.
	products := make([]domain.Product, 0, len(byID))
	for _, id := range unique {
		if product, ok := byID[id]; ok {
			products = append(products, product)
		}
	}

	return products, nil
}

func (r *productRepository) UpdateQuantities(updates []domain.StockUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, update := range updates {
		var res sql.Result
		res, err = tx.ExecContext(ctx, `
			UPDATE products
			SET quantity = $1,
			    updated_at = NOW()
			WHERE id = $2
		`, update.Quantity, update.ProductID)
		if err != nil {
			return fmt.Errorf("update product quantity: %w", err)
		}

		var affected int64
		affected, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			err = &domain.ProductNotFoundError{ProductID: update.ProductID}
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit update quantities: %w", err)
	}

	return nil
}

var _ domain.ProductRepository = (*productRepository)(nil)
