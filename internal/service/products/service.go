package products

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// CreateProductInput — данные нового товара каталога.
type CreateProductInput struct {
	Name       string
	PriceMinor int64
	Quantity   int32
}

// Service отвечает за наполнение каталога.
type Service struct {
	products domain.ProductRepository
	logger   *log.Entry
}

// NewService создаёт сервис каталога.
func NewService(products domain.ProductRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "products")
	}
	return &Service{products: products, logger: logger}
}

// CreateProduct добавляет товар с уникальным именем и начальным остатком.
func (s *Service) CreateProduct(ctx context.Context, input CreateProductInput) (domain.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.Product{}, domain.ErrProductNameRequired
	}
	if input.PriceMinor < 0 {
		return domain.Product{}, domain.ErrProductPriceInvalid
	}
	if input.Quantity < 0 {
		return domain.Product{}, domain.ErrProductQuantityNegative
	}

	if _, err := s.products.FindByName(name); err == nil {
		return domain.Product{}, domain.ErrProductNameInUse
	} else if !errors.Is(err, domain.ErrProductNotFound) {
		return domain.Product{}, fmt.Errorf("find product by name: %w", err)
	}

	now := time.Now().UTC()
	product := domain.Product{
		ID:         uuid.NewString(),
		Name:       name,
		PriceMinor: input.PriceMinor,
		Quantity:   input.Quantity,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.products.Create(product); err != nil {
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"product_id": product.ID,
		"name":       product.Name,
		"quantity":   product.Quantity,
	}).Info("product created")

	return product, nil
}
