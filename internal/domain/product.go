package domain

import "time"

// Product описывает товар каталога и его складской остаток.
type Product struct {
	ID string
	// Name уникально в пределах каталога.
	Name string
	// PriceMinor — цена за единицу в минимальных денежных единицах.
	PriceMinor int64
	// Quantity — доступный складской остаток.
	Quantity  int32
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StockUpdate задаёт новый абсолютный остаток товара.
// Применяется батчем: склад выставляет ровно те значения, что переданы.
type StockUpdate struct {
	ProductID string
	Quantity  int32
}

// ValidateInvariants проверяет базовые инварианты товара.
func (p *Product) ValidateInvariants() []error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if p.PriceMinor < 0 {
		errs = append(errs, ErrProductPriceInvalid)
	}
	if p.Quantity < 0 {
		errs = append(errs, ErrProductQuantityNegative)
	}

	return errs
}
