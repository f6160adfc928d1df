package cash_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/tienda-api/internal/domain/cash"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestReconcile(t *testing.T) {
	tests := []struct {
		name     string
		actual   string
		wantDiff string
		want     cash.Result
	}{
		{name: "faltante", actual: "345", wantDiff: "-5", want: cash.ResultShortage},
		{name: "sobrante", actual: "355", wantDiff: "5", want: cash.ResultSurplus},
		{name: "cuadrado", actual: "350", wantDiff: "0", want: cash.ResultBalanced},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := cash.Reconcile(d("100"), d("250"), 2, d(tt.actual))
			assert.True(t, s.ExpectedAmount.Equal(d("350")))
			assert.True(t, s.Difference.Equal(d(tt.wantDiff)), s.Difference.String())
			assert.Equal(t, tt.want, s.Result)
			assert.Equal(t, 2, s.SalesCount)
		})
	}
}

func TestReconcile_SinVentas(t *testing.T) {
	s := cash.Reconcile(d("80.50"), decimal.Zero, 0, d("80.50"))
	assert.True(t, s.ExpectedAmount.Equal(d("80.50")))
	assert.Equal(t, cash.ResultBalanced, s.Result)
}
