package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/cash"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/application/purchasing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Adjustments *inventory.AdjustmentUseCase
	StockQuery  *inventory.StockQueryUseCase
	OrderBuys   *purchasing.OrderBuyUseCase
	Sessions    *cash.SessionUseCase
	Sales       *cash.SaleUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	warehouse := RequireRole(RoleAdmin, RoleBodeguero)
	cashier := RequireRole(RoleAdmin, RoleVendedor)
	anyRole := RequireRole(RoleAdmin, RoleBodeguero, RoleVendedor)

	inv := NewInventoryHandler(deps.Adjustments, deps.StockQuery)
	adjustments := api.Group("/inventory-adjustments", warehouse)
	adjustments.Post("/adjust", inv.Adjust)
	adjustments.Get("/", inv.ListAll)
	adjustments.Get("/product/:productId/history", inv.History)
	adjustments.Get("/:id", inv.GetByID)

	products := api.Group("/products")
	products.Get("/:id/stock", anyRole, inv.Stock)
	products.Get("/:id/movements", warehouse, inv.Movements)
	api.Get("/inventory/low-stock", warehouse, inv.LowStock)
	api.Get("/providers", warehouse, inv.Providers)

	ob := NewOrderBuyHandler(deps.OrderBuys)
	orders := api.Group("/order-buys", warehouse)
	orders.Post("/create-order", ob.Create)
	orders.Post("/receive", ob.Receive)
	orders.Post("/cancel", ob.Cancel)
	orders.Get("/", ob.List)
	orders.Get("/:id", ob.GetByID)

	cr := NewCashRegisterHandler(deps.Sessions, deps.Sales)
	registers := api.Group("/cash-registers", cashier)
	registers.Post("/open", cr.Open)
	registers.Post("/close", cr.Close)
	registers.Get("/current-open", cr.CurrentOpen)
	registers.Get("/", cr.List)
	registers.Get("/:id", cr.GetByID)
	registers.Get("/:id/sales", cr.Sales)
	api.Post("/sales", cashier, cr.RecordSale)
}
