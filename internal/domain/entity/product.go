package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la tienda.
// StockQuantity solo se modifica a través del libro de stock (movimientos auditados).
type Product struct {
	ID            string
	SKU           string
	Name          string
	Price         decimal.Decimal // precio de venta
	StockQuantity int
	StockMinimum  int // umbral de alerta de stock bajo
	UpdatedAt     time.Time
}

// IsLowStock indica si el stock actual está en o por debajo del mínimo.
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.StockMinimum
}
