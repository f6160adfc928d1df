package dto

import "time"

// AdjustInventoryRequest body para POST /api/inventory-adjustments/adjust.
type AdjustInventoryRequest struct {
	ProductID         string  `json:"product_id" validate:"required"`
	AdjustmentType    string  `json:"adjustment_type" validate:"required"` // increase | decrease
	Quantity          int     `json:"quantity"`
	Reason            string  `json:"reason"` // merma, conteo, daño, devolucion, correccion, otro
	ReasonDescription *string `json:"reason_description,omitempty"`
}

// AdjustmentResponse salida de un ajuste de inventario.
type AdjustmentResponse struct {
	ID                string    `json:"id"`
	ProductID         string    `json:"product_id"`
	AdjustmentType    string    `json:"adjustment_type"`
	Quantity          int       `json:"quantity"`
	Reason            string    `json:"reason"`
	ReasonDescription *string   `json:"reason_description,omitempty"`
	PreviousStock     int       `json:"previous_stock"`
	NewStock          int       `json:"new_stock"`
	AdjustmentDate    time.Time `json:"adjustment_date"`
	ActorUserID       string    `json:"actor_user_id,omitempty"`
}

// StockResponse stock actual de un producto.
type StockResponse struct {
	ProductID     string    `json:"product_id"`
	SKU           string    `json:"sku"`
	Name          string    `json:"name"`
	StockQuantity int       `json:"stock_quantity"`
	StockMinimum  int       `json:"stock_minimum"`
	LowStock      bool      `json:"low_stock"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StockMovementResponse movimiento del libro de stock.
type StockMovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	Source        string    `json:"source"`
	ReferenceID   string    `json:"reference_id"`
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	ActorUserID   string    `json:"actor_user_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// MovementQuery filtros de GET /api/products/:id/movements.
type MovementQuery struct {
	From   *time.Time `query:"from"`
	To     *time.Time `query:"to"`
	Limit  int        `query:"limit"`
	Offset int        `query:"offset"`
}

// ProviderResponse proveedor.
type ProviderResponse struct {
	ID           string `json:"id"`
	BusinessName string `json:"business_name"`
	TaxID        string `json:"tax_id"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	Address      string `json:"address,omitempty"`
}
