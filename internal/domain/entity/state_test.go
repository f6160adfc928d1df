package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	all := []entity.OrderStatus{entity.OrderStatusPending, entity.OrderStatusReceived, entity.OrderStatusCancelled}
	allowed := map[[2]entity.OrderStatus]bool{
		{entity.OrderStatusPending, entity.OrderStatusReceived}:  true,
		{entity.OrderStatusPending, entity.OrderStatusCancelled}: true,
	}
	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]entity.OrderStatus{from, to}], from.CanTransitionTo(to), "%s → %s", from, to)
		}
	}
	assert.False(t, entity.OrderStatus("aprobada").Valid())
}

func TestCashRegisterStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, entity.CashRegisterOpen.CanTransitionTo(entity.CashRegisterClosed))
	assert.False(t, entity.CashRegisterClosed.CanTransitionTo(entity.CashRegisterClosed))
	assert.False(t, entity.CashRegisterClosed.CanTransitionTo(entity.CashRegisterOpen))
}

func TestStockChange_IsLowStock(t *testing.T) {
	assert.True(t, entity.StockChange{NewStock: 5, StockMinimum: 5}.IsLowStock())
	assert.False(t, entity.StockChange{NewStock: 6, StockMinimum: 5}.IsLowStock())
}
