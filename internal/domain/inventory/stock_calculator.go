package inventory

import (
	"fmt"

	"github.com/jhoicas/tienda-api/internal/domain"
)

// NextStock calcula el stock resultante de aplicar un delta con signo (servicio de dominio).
// El stock nunca puede quedar negativo.
func NextStock(current, delta int) (int, error) {
	if delta == 0 {
		return current, domain.ErrInvalidQuantity
	}
	next := current + delta
	if next < 0 {
		return current, fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, current, -delta)
	}
	return next, nil
}
