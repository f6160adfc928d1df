package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/inventory"
)

func TestNextStock(t *testing.T) {
	tests := []struct {
		name    string
		current int
		delta   int
		want    int
		wantErr error
	}{
		{name: "entrada", current: 50, delta: 10, want: 60},
		{name: "salida", current: 60, delta: -7, want: 53},
		{name: "salida que deja cero", current: 5, delta: -5, want: 0},
		{name: "salida mayor al stock", current: 5, delta: -6, want: 5, wantErr: domain.ErrInsufficientStock},
		{name: "delta cero", current: 5, delta: 0, want: 5, wantErr: domain.ErrInvalidQuantity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := inventory.NextStock(tt.current, tt.delta)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextStock_MensajeIncluyeDisponible(t *testing.T) {
	_, err := inventory.NextStock(3, -8)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disponible 3")
	assert.Contains(t, err.Error(), "solicitado 8")
}
