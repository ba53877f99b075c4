package domain

import (
	"errors"
	"fmt"
)

var (
	// Ошибка отсутствующего идентификатора клиента.
	ErrCustomerRequired = errors.New("customer_id is required")
	// Ошибка отсутствия хотя бы одного товара в заказе.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// Ошибка отрицательной суммы заказа.
	ErrAmountNegative = errors.New("amount_minor must be non-negative")
	// Ошибка при отсутствующем идентификаторе товара в позиции.
	ErrItemProductRequired = errors.New("item product_id is required")
	// Ошибка при некорректном количестве товара (<= 0).
	ErrItemQtyInvalid = errors.New("item qty must be greater than zero")
	// Ошибка, если цена позиции отрицательная.
	ErrItemPriceInvalid = errors.New("item price must be non-negative")
	// Ошибка несоответствия суммы заказа и сумм позиций.
	ErrAmountMismatch = errors.New("order amount does not match items sum")

	// ErrCustomerNotFound возвращается, если клиент с указанным id не существует.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrNoProductsFound возвращается, если ни один из запрошенных товаров не найден.
	ErrNoProductsFound = errors.New("no products found for the given ids")
	// ErrProductNotFound — маркер для ProductNotFoundError (проверка через errors.Is).
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock — маркер для InsufficientStockError (проверка через errors.Is).
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderAlreadyExists сигнализирует о конфликте идентификаторов при создании заказа.
	ErrOrderAlreadyExists = errors.New("order already exists")

	// Ошибка отсутствующего имени клиента.
	ErrCustomerNameRequired = errors.New("customer name is required")
	// Ошибка отсутствующего email клиента.
	ErrCustomerEmailRequired = errors.New("customer email is required")
	// ErrEmailInUse возвращается при попытке занять уже использованный email.
	ErrEmailInUse = errors.New("customer email already in use")
	// Ошибка отсутствующего имени товара.
	ErrProductNameRequired = errors.New("product name is required")
	// ErrProductNameInUse возвращается при попытке создать товар с занятым именем.
	ErrProductNameInUse = errors.New("product name already in use")
	// Ошибка отрицательной цены товара.
	ErrProductPriceInvalid = errors.New("product price must be non-negative")
	// Ошибка отрицательного складского остатка.
	ErrProductQuantityNegative = errors.New("product quantity must be non-negative")
)

// ProductNotFoundError уточняет, какой именно товар из запроса не найден.
// Совместима с errors.Is(err, ErrProductNotFound).
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

func (e *ProductNotFoundError) Is(target error) bool {
	return target == ErrProductNotFound
}

// InsufficientStockError уточняет первую позицию, для которой не хватило остатка.
// Совместима с errors.Is(err, ErrInsufficientStock).
type InsufficientStockError struct {
	ProductID string
	Requested int32
	Available int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// IsNotFound проверяет, относится ли ошибка к семейству "не найдено".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrNoProductsFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrOrderNotFound)
}
