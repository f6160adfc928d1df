package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta.
type SaleItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// RecordSaleRequest body para POST /api/sales.
type RecordSaleRequest struct {
	Items         []SaleItemRequest `json:"items" validate:"dive"`
	PaymentMethod string            `json:"payment_method"`
	CustomerID    *string           `json:"customer_id,omitempty"`
}

// SaleItemResponse línea de venta.
type SaleItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta registrada.
type SaleResponse struct {
	ID             string             `json:"id"`
	CashRegisterID string             `json:"cash_register_id"`
	Total          decimal.Decimal    `json:"total"`
	PaymentMethod  string             `json:"payment_method"`
	CustomerID     *string            `json:"customer_id,omitempty"`
	CreatedBy      string             `json:"created_by,omitempty"`
	SaleDate       time.Time          `json:"sale_date"`
	Items          []SaleItemResponse `json:"items"`
}
