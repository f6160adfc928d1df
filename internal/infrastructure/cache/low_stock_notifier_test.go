package cache_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/cache"
)

func newNotifier(t *testing.T) (*cache.LowStockNotifier, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	n := cache.NewLowStockNotifier(cache.NewClient(mr.Addr(), "", 0), time.Hour)
	t.Cleanup(func() { _ = n.Close() })
	return n, mr
}

func alert(id string, qty int) entity.LowStockAlert {
	return entity.LowStockAlert{
		ProductID: id, StockQuantity: qty, StockMinimum: 5,
		Source: "venta", ReferenceID: "v-1", DetectedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestNotifyLowStock_GuardaConTTLYPublica(t *testing.T) {
	ctx := context.Background()
	n, mr := newNotifier(t)
	require.NoError(t, n.Ping(ctx))

	require.NoError(t, n.NotifyLowStock(ctx, alert("p1", 2)))

	assert.True(t, mr.Exists("stock:low:p1"))
	assert.Equal(t, time.Hour, mr.TTL("stock:low:p1"))

	raw, err := mr.Get("stock:low:p1")
	require.NoError(t, err)
	var got entity.LowStockAlert
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	assert.Equal(t, 2, got.StockQuantity)
}

func TestListLowStock_OrdenadoYClear(t *testing.T) {
	ctx := context.Background()
	n, mr := newNotifier(t)

	require.NoError(t, n.NotifyLowStock(ctx, alert("p1", 4)))
	require.NoError(t, n.NotifyLowStock(ctx, alert("p2", 0)))
	require.NoError(t, n.NotifyLowStock(ctx, alert("p3", 4)))

	list, err := n.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"p2", "p1", "p3"}, []string{list[0].ProductID, list[1].ProductID, list[2].ProductID})

	require.NoError(t, n.ClearLowStock(ctx, "p2"))
	assert.False(t, mr.Exists("stock:low:p2"))

	mr.FastForward(2 * time.Hour)
	list, err = n.ListLowStock(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "los avisos expiran con el TTL")
}

func TestNotifyLowStock_RedisCaido(t *testing.T) {
	n, mr := newNotifier(t)
	mr.Close()
	assert.Error(t, n.NotifyLowStock(context.Background(), alert("p1", 1)))
}
