package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	ErrInvalidQuantity     = errors.New("la cantidad debe ser mayor a cero")
	ErrInvalidReason       = errors.New("motivo de ajuste inválido")
	ErrInvalidAmount       = errors.New("el monto no puede ser negativo")
	ErrEmptyLineSet        = errors.New("se requiere al menos una línea")
	ErrInvalidLineQuantity = errors.New("línea con cantidad o precio inválido")

	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrInvalidStateTransition = errors.New("transición de estado no permitida")
	ErrSessionAlreadyOpen     = errors.New("ya existe una caja abierta")
	ErrInvalidSessionState    = errors.New("la caja no está abierta")
	ErrNoOpenSession          = errors.New("no hay una caja abierta")
	ErrPartialReceipt         = errors.New("recepción parcial de la orden")
)

// PersistenceError envuelve cualquier falla del almacenamiento. El núcleo no interpreta la causa.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistencia (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence construye un PersistenceError; devuelve nil si err es nil.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

// IsValidation indica si err pertenece a la familia de errores de validación de entrada.
func IsValidation(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrInvalidReason),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrEmptyLineSet),
		errors.Is(err, ErrInvalidLineQuantity):
		return true
	}
	return false
}
