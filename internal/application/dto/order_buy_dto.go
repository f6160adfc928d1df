package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderBuyLineRequest línea de la orden de compra.
type OrderBuyLineRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateOrderBuyRequest body para POST /api/order-buys/create-order.
// IGVPercent nil aplica el 18% por defecto.
type CreateOrderBuyRequest struct {
	ProviderID           string                `json:"provider_id" validate:"required"`
	ExpectedDeliveryDate *time.Time            `json:"expected_delivery_date,omitempty"`
	IGVPercent           *decimal.Decimal      `json:"igv_percent,omitempty"`
	Notes                *string               `json:"notes,omitempty"`
	Lines                []OrderBuyLineRequest `json:"lines" validate:"dive"`
}

// ReceiveOrderBuyRequest body para POST /api/order-buys/receive.
type ReceiveOrderBuyRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

// CancelOrderBuyRequest body para POST /api/order-buys/cancel.
type CancelOrderBuyRequest struct {
	OrderID string  `json:"order_id" validate:"required"`
	Reason  *string `json:"reason,omitempty"`
}

// OrderBuyQuery filtros del listado.
type OrderBuyQuery struct {
	Status     string `query:"estado"`
	ProviderID string `query:"provider_id"`
	Limit      int    `query:"limit"`
	Offset     int    `query:"offset"`
}

// OrderBuyLineResponse línea de la orden.
type OrderBuyLineResponse struct {
	LineNo    int             `json:"line_no"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderBuyResponse orden de compra con sus líneas.
type OrderBuyResponse struct {
	ID                   string                 `json:"id"`
	ProviderID           string                 `json:"provider_id"`
	OrderDate            time.Time              `json:"order_date"`
	ExpectedDeliveryDate *time.Time             `json:"expected_delivery_date,omitempty"`
	ReceivedAt           *time.Time             `json:"received_at,omitempty"`
	CancelledAt          *time.Time             `json:"cancelled_at,omitempty"`
	Status               string                 `json:"status"`
	IGVPercent           decimal.Decimal        `json:"igv_percent"`
	Subtotal             decimal.Decimal        `json:"subtotal"`
	IGV                  decimal.Decimal        `json:"igv"`
	Total                decimal.Decimal        `json:"total"`
	Notes                *string                `json:"notes,omitempty"`
	CancelReason         *string                `json:"cancel_reason,omitempty"`
	CreatedBy            string                 `json:"created_by,omitempty"`
	Lines                []OrderBuyLineResponse `json:"lines"`
}

// LineReceiptResponse stock antes/después de una línea recibida.
type LineReceiptResponse struct {
	LineNo        int    `json:"line_no"`
	ProductID     string `json:"product_id"`
	Quantity      int    `json:"quantity"`
	PreviousStock int    `json:"previous_stock"`
	NewStock      int    `json:"new_stock"`
}

// LineFailureResponse línea que no pudo aplicarse.
type LineFailureResponse struct {
	LineNo    int    `json:"line_no"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Error     string `json:"error"`
}

// ReceiveOrderBuyResponse resultado de recibir la orden.
type ReceiveOrderBuyResponse struct {
	Order           OrderBuyResponse      `json:"order"`
	UpdatedProducts []LineReceiptResponse `json:"updated_products"`
}

// PartialReceiptResponse cuerpo 409 cuando la recepción no terminó. Failed es nulo si
// todas las líneas se aplicaron y falló el cambio a recibida (TransitionError).
type PartialReceiptResponse struct {
	Code            string                 `json:"code"`
	Message         string                 `json:"message"`
	OrderID         string                 `json:"order_id"`
	Applied         []LineReceiptResponse  `json:"applied"`
	Failed          *LineFailureResponse   `json:"failed"`
	Pending         []OrderBuyLineResponse `json:"pending"`
	TransitionError string                 `json:"transition_error,omitempty"`
}
