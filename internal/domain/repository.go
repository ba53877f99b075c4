package domain

// CustomerRepository описывает требования к хранилищу покупателей.
type CustomerRepository interface {
	// Create сохраняет нового покупателя. Возвращает ErrEmailInUse,
	// если email уже занят.
	Create(customer Customer) error
	// FindByID возвращает покупателя или ErrCustomerNotFound, если его нет.
	FindByID(id string) (Customer, error)
	// FindByEmail возвращает покупателя по email или ErrCustomerNotFound.
	FindByEmail(email string) (Customer, error)
}

// ProductRepository описывает требования к хранилищу каталога и остатков.
type ProductRepository interface {
	// Create сохраняет новый товар. Возвращает ErrProductNameInUse,
	// если имя уже занято.
	Create(product Product) error
	// FindByName возвращает товар по имени или ErrProductNotFound.
	FindByName(name string) (Product, error)
	// FindAllByID возвращает товары по списку идентификаторов.
	// Отсутствующие id молча пропускаются: результат — подмножество.
	FindAllByID(ids []string) ([]Product, error)
	// UpdateQuantities применяет новые абсолютные остатки одним батчем.
	UpdateQuantities(updates []StockUpdate) error
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create сохраняет новый заказ вместе с позициями.
	// Возвращает ErrOrderAlreadyExists, если запись с таким ID уже существует.
	Create(order Order) error
	// Get возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	Get(id string) (Order, error)
	// ListByCustomer возвращает заказы клиента с опциональным ограничением на количество.
	ListByCustomer(customerID string, limit int) ([]Order, error)
}
