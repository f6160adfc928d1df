package entity

import "time"

// AdjustmentType dirección de un ajuste manual.
type AdjustmentType string

const (
	AdjustmentIncrease AdjustmentType = "increase"
	AdjustmentDecrease AdjustmentType = "decrease"
)

// Valid indica si el tipo es uno de los reconocidos.
func (t AdjustmentType) Valid() bool {
	return t == AdjustmentIncrease || t == AdjustmentDecrease
}

// SignedDelta convierte una cantidad positiva en el delta con signo del ajuste.
func (t AdjustmentType) SignedDelta(quantity int) int {
	if t == AdjustmentDecrease {
		return -quantity
	}
	return quantity
}

// AdjustmentReason motivo de un ajuste manual.
type AdjustmentReason string

const (
	ReasonShrinkage  AdjustmentReason = "merma"
	ReasonCount      AdjustmentReason = "conteo"
	ReasonDamage     AdjustmentReason = "daño"
	ReasonReturn     AdjustmentReason = "devolucion"
	ReasonCorrection AdjustmentReason = "correccion"
	ReasonOther      AdjustmentReason = "otro"
)

// AdjustmentReasons lista cerrada de motivos aceptados.
var AdjustmentReasons = []AdjustmentReason{
	ReasonShrinkage, ReasonCount, ReasonDamage, ReasonReturn, ReasonCorrection, ReasonOther,
}

// InventoryAdjustment ajuste manual de stock con instantánea antes/después.
// Inmutable una vez creado.
type InventoryAdjustment struct {
	ID                string
	ProductID         string
	Type              AdjustmentType
	Quantity          int
	Reason            AdjustmentReason
	ReasonDescription *string
	PreviousStock     int
	NewStock          int
	AdjustmentDate    time.Time
	ActorUserID       string
}
