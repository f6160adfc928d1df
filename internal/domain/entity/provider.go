package entity

// Provider proveedor de mercadería (solo lectura en este servicio).
type Provider struct {
	ID           string
	BusinessName string // razón social
	TaxID        string // RUC
	Phone        string
	Email        string
	Address      string
}
