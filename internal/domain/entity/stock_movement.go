package entity

import "time"

// MovementSource origen de un cambio de stock.
type MovementSource string

const (
	MovementSourceAdjustment MovementSource = "ajuste"
	MovementSourceOrderBuy   MovementSource = "orden_compra"
	MovementSourceSale       MovementSource = "venta"
)

// StockMovement registro inmutable de cada delta aplicado al stock de un producto.
type StockMovement struct {
	ID            string
	ProductID     string
	Source        MovementSource
	ReferenceID   string // ajuste, orden de compra o venta que originó el cambio
	Quantity      int    // delta con signo
	PreviousStock int
	NewStock      int
	ActorUserID   string
	CreatedAt     time.Time
}

// StockChange resultado de aplicar un delta: stock antes y después.
type StockChange struct {
	ProductID     string
	Delta         int
	PreviousStock int
	NewStock      int
	StockMinimum  int
}

// IsLowStock indica si el nuevo stock quedó en o por debajo del mínimo del producto.
func (c StockChange) IsLowStock() bool {
	return c.NewStock <= c.StockMinimum
}

// LowStockAlert aviso publicado cuando un producto queda en stock bajo.
type LowStockAlert struct {
	ProductID     string    `json:"product_id"`
	StockQuantity int       `json:"stock_quantity"`
	StockMinimum  int       `json:"stock_minimum"`
	Source        string    `json:"source"`
	ReferenceID   string    `json:"reference_id"`
	DetectedAt    time.Time `json:"detected_at"`
}
