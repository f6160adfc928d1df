package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/purchasing"
	"github.com/jhoicas/tienda-api/internal/domain"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// El orden importa: los errores de validación específicos van antes que ErrInvalidInput.
var errorMappings = []errorMapping{
	{domain.ErrInvalidQuantity, fiber.StatusBadRequest, "INVALID_QUANTITY"},
	{domain.ErrInvalidReason, fiber.StatusBadRequest, "INVALID_REASON"},
	{domain.ErrInvalidAmount, fiber.StatusBadRequest, "INVALID_AMOUNT"},
	{domain.ErrEmptyLineSet, fiber.StatusBadRequest, "EMPTY_LINE_SET"},
	{domain.ErrInvalidLineQuantity, fiber.StatusBadRequest, "INVALID_LINE_QUANTITY"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrInvalidStateTransition, fiber.StatusConflict, "INVALID_STATE_TRANSITION"},
	{domain.ErrSessionAlreadyOpen, fiber.StatusConflict, "SESSION_ALREADY_OPEN"},
	{domain.ErrInvalidSessionState, fiber.StatusConflict, "INVALID_SESSION_STATE"},
	{domain.ErrNoOpenSession, fiber.StatusConflict, "NO_OPEN_SESSION"},
}

// writeError traduce un error de la capa de aplicación a status + dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	if partial, ok := purchasing.AsPartialReceipt(err); ok {
		return c.Status(fiber.StatusConflict).JSON(purchasing.ToPartialReceiptResponse(partial))
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}

	var perr *domain.PersistenceError
	if errors.As(err, &perr) {
		log.Error().Err(err).Str("path", c.Path()).Msg("fallo de persistencia")
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code: "PERSISTENCE", Message: "almacenamiento no disponible, intente más tarde",
		})
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
}
