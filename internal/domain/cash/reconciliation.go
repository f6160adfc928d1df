package cash

import "github.com/shopspring/decimal"

// Result clasificación del arqueo según el signo de la diferencia.
type Result string

const (
	ResultSurplus  Result = "sobrante"
	ResultShortage Result = "faltante"
	ResultBalanced Result = "cuadrado"
)

// Summary arqueo de cierre de caja.
type Summary struct {
	InitialAmount  decimal.Decimal
	TotalSales     decimal.Decimal
	SalesCount     int
	ExpectedAmount decimal.Decimal
	ActualAmount   decimal.Decimal
	Difference     decimal.Decimal
	Result         Result
}

// Reconcile calcula esperado = inicial + ventas y diferencia = contado - esperado.
// Diferencia positiva es sobrante, negativa faltante.
func Reconcile(initial, totalSales decimal.Decimal, salesCount int, actual decimal.Decimal) Summary {
	expected := initial.Add(totalSales)
	diff := actual.Sub(expected)
	return Summary{
		InitialAmount:  initial,
		TotalSales:     totalSales,
		SalesCount:     salesCount,
		ExpectedAmount: expected,
		ActualAmount:   actual,
		Difference:     diff,
		Result:         Classify(diff),
	}
}

// Classify devuelve sobrante, faltante o cuadrado.
func Classify(diff decimal.Decimal) Result {
	switch diff.Sign() {
	case 1:
		return ResultSurplus
	case -1:
		return ResultShortage
	}
	return ResultBalanced
}
