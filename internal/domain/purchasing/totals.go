package purchasing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// DefaultIGVPercent IGV aplicado cuando la orden no indica otro porcentaje.
var DefaultIGVPercent = decimal.NewFromInt(18)

var hundred = decimal.NewFromInt(100)

// Totals resultado del cálculo de una orden.
type Totals struct {
	Subtotal decimal.Decimal
	IGV      decimal.Decimal
	Total    decimal.Decimal
}

// ValidateLines exige al menos una línea y cantidades/precios positivos.
func ValidateLines(lines []entity.OrderBuyLine) error {
	if len(lines) == 0 {
		return domain.ErrEmptyLineSet
	}
	for _, l := range lines {
		if l.ProductID == "" {
			return domain.ErrInvalidInput
		}
		if l.Quantity <= 0 || !l.UnitPrice.IsPositive() {
			return domain.ErrInvalidLineQuantity
		}
	}
	return nil
}

// ComputeTotals llena el subtotal de cada línea y devuelve subtotal, IGV (redondeado a 2) y total.
func ComputeTotals(lines []entity.OrderBuyLine, igvPercent decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for i := range lines {
		lines[i].Subtotal = lines[i].UnitPrice.Mul(decimal.NewFromInt(int64(lines[i].Quantity)))
		subtotal = subtotal.Add(lines[i].Subtotal)
	}
	igv := subtotal.Mul(igvPercent).Div(hundred).Round(2)
	return Totals{Subtotal: subtotal, IGV: igv, Total: subtotal.Add(igv)}
}
