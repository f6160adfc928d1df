package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashRegisterStatus estado de una sesión de caja.
type CashRegisterStatus string

const (
	CashRegisterOpen   CashRegisterStatus = "open"
	CashRegisterClosed CashRegisterStatus = "closed"
)

// CanTransitionTo solo permite open → closed.
func (s CashRegisterStatus) CanTransitionTo(next CashRegisterStatus) bool {
	return s == CashRegisterOpen && next == CashRegisterClosed
}

// CashRegister sesión de caja: apertura con fondo inicial y cierre con arqueo.
// ActualAmount, ExpectedAmount, Difference y ClosingDate solo existen cuando está cerrada.
type CashRegister struct {
	ID             string
	OpeningDate    time.Time
	ClosingDate    *time.Time
	InitialAmount  decimal.Decimal
	ActualAmount   *decimal.Decimal
	ExpectedAmount *decimal.Decimal
	Difference     *decimal.Decimal
	Status         CashRegisterStatus
	Notes          *string
	OperatorUserID string
}

// IsOpen indica si la sesión sigue abierta.
func (c *CashRegister) IsOpen() bool {
	return c.Status == CashRegisterOpen
}
