package inventory

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// ParseReason normaliza (trim, minúsculas, NFC) y valida el motivo de un ajuste.
// Así "Daño" escrito con tilde combinante coincide con entity.ReasonDamage.
func ParseReason(raw string) (entity.AdjustmentReason, error) {
	s := norm.NFC.String(strings.ToLower(strings.TrimSpace(raw)))
	for _, r := range entity.AdjustmentReasons {
		if string(r) == s {
			return r, nil
		}
	}
	return "", domain.ErrInvalidReason
}

// ParseAdjustmentType valida el tipo de ajuste (increase | decrease).
func ParseAdjustmentType(raw string) (entity.AdjustmentType, error) {
	t := entity.AdjustmentType(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", domain.ErrInvalidInput
	}
	return t, nil
}

// NormalizeDescription recorta la descripción; vacía se considera ausente.
func NormalizeDescription(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
