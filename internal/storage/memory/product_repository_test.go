package memory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/storage/memory"
)

func newProduct(id, name string, qty int32) domain.Product {
	now := time.Now().UTC()
	return domain.Product{
		ID:         id,
		Name:       name,
		PriceMinor: 500,
		Quantity:   qty,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestProductRepository_CreateFindByName(t *testing.T) {
	repo := memory.NewProductRepository()
	product := newProduct("product-1", "keyboard", 10)

	if err := repo.Create(product); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	found, err := repo.FindByName("keyboard")
	if err != nil {
		t.Fatalf("find by name failed: %v", err)
	}
	if found.ID != product.ID {
		t.Fatalf("expected id %s, got %s", product.ID, found.ID)
	}

	if _, err := repo.FindByName("missing"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductRepository_CreateDuplicateName(t *testing.T) {
	repo := memory.NewProductRepository()
	if err := repo.Create(newProduct("product-1", "keyboard", 10)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(newProduct("product-2", "keyboard", 3)); !errors.Is(err, domain.ErrProductNameInUse) {
		t.Fatalf("expected ErrProductNameInUse, got %v", err)
	}
}

func TestProductRepository_FindAllByID(t *testing.T) {
	repo := memory.NewProductRepository()
	if err := repo.Create(newProduct("product-1", "keyboard", 10)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(newProduct("product-2", "mouse", 5)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Неизвестные id молча пропускаются, дубликаты схлопываются.
	products, err := repo.FindAllByID([]string{"product-2", "missing", "product-1", "product-2"})
	if err != nil {
		t.Fatalf("find all failed: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].ID != "product-2" || products[1].ID != "product-1" {
		t.Fatalf("expected request order preserved, got %+v", products)
	}
}

func TestProductRepository_UpdateQuantities(t *testing.T) {
	repo := memory.NewProductRepository()
	if err := repo.Create(newProduct("product-1", "keyboard", 10)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(newProduct("product-2", "mouse", 5)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	err := repo.UpdateQuantities([]domain.StockUpdate{
		{ProductID: "product-1", Quantity: 7},
		{ProductID: "product-2", Quantity: 0},
	})
	if err != nil {
		t.Fatalf("update quantities failed: %v", err)
	}

	products, err := repo.FindAllByID([]string{"product-1", "product-2"})
	if err != nil {
		t.Fatalf("find all failed: %v", err)
	}
	if products[0].Quantity != 7 || products[1].Quantity != 0 {
		t.Fatalf("expected quantities 7 and 0, got %d and %d", products[0].Quantity, products[1].Quantity)
	}
}

func TestProductRepository_UpdateQuantitiesUnknownProduct(t *testing.T) {
	repo := memory.NewProductRepository()
	if err := repo.Create(newProduct("product-1", "keyboard", 10)); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	err := repo.UpdateQuantities([]domain.StockUpdate{
		{ProductID: "product-1", Quantity: 7},
		{ProductID: "missing", Quantity: 1},
	})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	// Батч отклонён целиком: остаток product-1 не изменился.
	products, err := repo.FindAllByID([]string{"product-1"})
	if err != nil {
		t.Fatalf("find all failed: %v", err)
	}
	if products[0].Quantity != 10 {
		t.Fatalf("expected quantity 10, got %d", products[0].Quantity)
	}
}
