package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/inventory"
)

func TestParseReason(t *testing.T) {
	tests := []struct {
		in   string
		want entity.AdjustmentReason
	}{
		{"merma", entity.ReasonShrinkage},
		{"  Conteo ", entity.ReasonCount},
		{"daño", entity.ReasonDamage},
		{"dan\u0303o", entity.ReasonDamage}, // ñ descompuesta (n + tilde combinante)
		{"DEVOLUCION", entity.ReasonReturn},
		{"correccion", entity.ReasonCorrection},
		{"otro", entity.ReasonOther},
	}
	for _, tt := range tests {
		got, err := inventory.ParseReason(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseReason_Invalido(t *testing.T) {
	for _, in := range []string{"", "robo", "dano"} {
		_, err := inventory.ParseReason(in)
		assert.ErrorIs(t, err, domain.ErrInvalidReason, in)
	}
}

func TestParseAdjustmentType(t *testing.T) {
	got, err := inventory.ParseAdjustmentType("Increase")
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentIncrease, got)
	assert.Equal(t, -4, entity.AdjustmentDecrease.SignedDelta(4))

	_, err = inventory.ParseAdjustmentType("transfer")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalizeDescription(t *testing.T) {
	blank := "   "
	assert.Nil(t, inventory.NormalizeDescription(nil))
	assert.Nil(t, inventory.NormalizeDescription(&blank))

	s := "  caja rota "
	got := inventory.NormalizeDescription(&s)
	require.NotNil(t, got)
	assert.Equal(t, "caja rota", *got)
}
