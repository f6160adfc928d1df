package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de una orden de compra.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pendiente"
	OrderStatusReceived  OrderStatus = "recibida"
	OrderStatusCancelled OrderStatus = "cancelada"
)

// Valid indica si el estado es conocido.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusReceived, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo aplica la máquina de estados pendiente → recibida | cancelada.
// Los estados terminales no admiten ninguna transición.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusReceived || next == OrderStatusCancelled
	case OrderStatusReceived, OrderStatusCancelled:
		return false
	}
	return false
}

// OrderBuy orden de compra a un proveedor. Los totales se calculan al crear y no se recalculan.
type OrderBuy struct {
	ID                   string
	ProviderID           string
	OrderDate            time.Time
	ExpectedDeliveryDate *time.Time
	ReceivedAt           *time.Time // fecha de entrega real
	CancelledAt          *time.Time
	Status               OrderStatus
	IGVPercent           decimal.Decimal
	Subtotal             decimal.Decimal
	IGV                  decimal.Decimal
	Total                decimal.Decimal
	Notes                *string
	CancelReason         *string
	CreatedBy            string
	Lines                []OrderBuyLine
}

// OrderBuyLine detalle de la orden: producto, cantidad y precio unitario.
type OrderBuyLine struct {
	ID         string
	OrderBuyID string
	LineNo     int
	ProductID  string
	Quantity   int
	UnitPrice  decimal.Decimal
	Subtotal   decimal.Decimal
}

// OrderTransition datos que acompañan un cambio de estado.
type OrderTransition struct {
	At           time.Time
	CancelReason *string
}
