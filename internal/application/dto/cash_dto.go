package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenCashRegisterRequest body para POST /api/cash-registers/open.
type OpenCashRegisterRequest struct {
	InitialAmount *decimal.Decimal `json:"initial_amount" validate:"required"`
	Notes         *string          `json:"notes,omitempty"`
}

// CloseCashRegisterRequest body para POST /api/cash-registers/close.
type CloseCashRegisterRequest struct {
	CashRegisterID string           `json:"cash_register_id" validate:"required"`
	ActualAmount   *decimal.Decimal `json:"actual_amount" validate:"required"`
	Notes          *string          `json:"notes,omitempty"`
}

// CashRegisterResponse sesión de caja con el acumulado de ventas.
type CashRegisterResponse struct {
	ID             string           `json:"id"`
	OpeningDate    time.Time        `json:"opening_date"`
	ClosingDate    *time.Time       `json:"closing_date,omitempty"`
	InitialAmount  decimal.Decimal  `json:"initial_amount"`
	ActualAmount   *decimal.Decimal `json:"actual_amount,omitempty"`
	ExpectedAmount *decimal.Decimal `json:"expected_amount,omitempty"`
	Difference     *decimal.Decimal `json:"difference,omitempty"`
	Status         string           `json:"status"`
	Notes          *string          `json:"notes,omitempty"`
	OperatorUserID string           `json:"operator_user_id,omitempty"`
	SalesCount     int              `json:"sales_count"`
	TotalSales     decimal.Decimal  `json:"total_sales"`
}

// CloseSummaryResponse arqueo de cierre.
type CloseSummaryResponse struct {
	InitialAmount  decimal.Decimal `json:"initial_amount"`
	TotalSales     decimal.Decimal `json:"total_sales"`
	SalesCount     int             `json:"sales_count"`
	ExpectedAmount decimal.Decimal `json:"expected_amount"`
	ActualAmount   decimal.Decimal `json:"actual_amount"`
	Difference     decimal.Decimal `json:"difference"`
	Result         string          `json:"result"` // sobrante | faltante | cuadrado
}

// CloseCashRegisterResponse sesión cerrada y su arqueo.
type CloseCashRegisterResponse struct {
	CashRegister CashRegisterResponse `json:"cash_register"`
	Summary      CloseSummaryResponse `json:"summary"`
}
