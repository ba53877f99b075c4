package memory

import (
	"sync"
	"time"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// productRepositoryInMemory — простая in-memory реализация ProductRepository.
type productRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[string]domain.Product
	byName map[string]string
}

// NewProductRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{
		items:  make(map[string]domain.Product),
		byName: make(map[string]string),
	}
}

// Create сохраняет новый товар, если имя ещё не занято.
func (r *productRepositoryInMemory) Create(product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[product.Name]; exists {
		return domain.ErrProductNameInUse
	}
	r.items[product.ID] = product
	r.byName[product.Name] = product.ID
	return nil
}

// FindByName возвращает товар по имени или ErrProductNotFound.
func (r *productRepositoryInMemory) FindByName(name string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[name]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return r.items[id], nil
}

// FindAllByID возвращает найденные товары в порядке запрошенных id.
// Отсутствующие id пропускаются: результат — подмножество запроса.
func (r *productRepositoryInMemory) FindAllByID(ids []string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if product, ok := r.items[id]; ok {
			result = append(result, product)
		}
	}
	return result, nil
}

// UpdateQuantities выставляет новые абсолютные остатки одним батчем.
// Неизвестные id приводят к ошибке, остальные обновления не применяются.
func (r *productRepositoryInMemory) UpdateQuantities(updates []domain.StockUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, update := range updates {
		if _, ok := r.items[update.ProductID]; !ok {
			return &domain.ProductNotFoundError{ProductID: update.ProductID}
		}
	}

	now := time.Now().UTC()
	for _, update := range updates {
		product := r.items[update.ProductID]
		product.Quantity = update.Quantity
		product.UpdatedAt = now
		r.items[update.ProductID] = product
	}
	return nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
