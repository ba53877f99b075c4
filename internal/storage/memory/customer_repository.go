package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// customerRepositoryInMemory — простая in-memory реализация CustomerRepository.
type customerRepositoryInMemory struct {
	mu      sync.RWMutex
	items   map[string]domain.Customer
	byEmail map[string]string
}

// NewCustomerRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewCustomerRepository() domain.CustomerRepository {
	return &customerRepositoryInMemory{
		items:   make(map[string]domain.Customer),
		byEmail: make(map[string]string),
	}
}

// Create сохраняет нового покупателя, если email ещё не занят.
func (r *customerRepositoryInMemory) Create(customer domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[customer.Email]; exists {
		return domain.ErrEmailInUse
	}
	r.items[customer.ID] = customer
	r.byEmail[customer.Email] = customer.ID
	return nil
}

// FindByID возвращает покупателя или ErrCustomerNotFound, если его нет.
func (r *customerRepositoryInMemory) FindByID(id string) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.items[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return customer, nil
}

// FindByEmail возвращает покупателя по email или ErrCustomerNotFound.
func (r *customerRepositoryInMemory) FindByEmail(email string) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return r.items[id], nil
}

var _ domain.CustomerRepository = (*customerRepositoryInMemory)(nil)
