package repository

// Repositories agrupa los puertos atados a una misma unidad de trabajo (pool o transacción).
type Repositories struct {
	Products      ProductRepository
	Movements     StockMovementRepository
	Adjustments   InventoryAdjustmentRepository
	Orders        OrderBuyRepository
	CashRegisters CashRegisterRepository
	Sales         SaleRepository
	Providers     ProviderRepository
}
