package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale venta registrada en una sesión de caja.
type Sale struct {
	ID             string
	CashRegisterID string
	Total          decimal.Decimal
	PaymentMethod  string
	CustomerID     *string
	CreatedBy      string
	SaleDate       time.Time
	Items          []SaleItem
}

// SaleItem línea de venta.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
