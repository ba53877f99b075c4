package customers

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

// CreateCustomerInput — данные регистрации покупателя.
type CreateCustomerInput struct {
	Name  string
	Email string
}

// Service отвечает за регистрацию и поиск покупателей.
type Service struct {
	customers domain.CustomerRepository
	logger    *log.Entry
}

// NewService создаёт сервис покупателей.
func NewService(customers domain.CustomerRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "customers")
	}
	return &Service{customers: customers, logger: logger}
}

// CreateCustomer регистрирует покупателя с уникальным email.
func (s *Service) CreateCustomer(ctx context.Context, input CreateCustomerInput) (domain.Customer, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" {
		return domain.Customer{}, domain.ErrCustomerNameRequired
	}
	if email == "" {
		return domain.Customer{}, domain.ErrCustomerEmailRequired
	}

	if _, err := s.customers.FindByEmail(email); err == nil {
		return domain.Customer{}, domain.ErrEmailInUse
	} else if !errors.Is(err, domain.ErrCustomerNotFound) {
		return domain.Customer{}, fmt.Errorf("find customer by email: %w", err)
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.customers.Create(customer); err != nil {
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"customer_id": customer.ID,
		"email":       customer.Email,
	}).Info("customer created")

	return customer, nil
}

// GetCustomer возвращает покупателя по идентификатору.
func (s *Service) GetCustomer(ctx context.Context, id string) (domain.Customer, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return s.customers.FindByID(id)
}
