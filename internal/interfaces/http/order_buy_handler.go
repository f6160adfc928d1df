package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/purchasing"
	"github.com/jhoicas/tienda-api/internal/domain"
)

// OrderBuyHandler órdenes de compra: creación, recepción, cancelación y consultas.
type OrderBuyHandler struct {
	uc *purchasing.OrderBuyUseCase
}

func NewOrderBuyHandler(uc *purchasing.OrderBuyUseCase) *OrderBuyHandler {
	return &OrderBuyHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de compra
// @Tags         order-buys
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderBuyRequest  true  "provider_id, lines[], igv_percent opcional (18 por defecto)"
// @Success      201   {object}  dto.DataResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/order-buys/create-order [post]
func (h *OrderBuyHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateOrderBuyRequest
	if err := parseBody(c, &in); err != nil {
		return handleBodyErr(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse{Data: out, Message: "orden de compra creada"})
}

// Receive godoc
// @Summary      Recibir orden de compra (ingresa el stock de cada línea)
// @Tags         order-buys
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveOrderBuyRequest  true  "order_id"
// @Success      200   {object}  dto.DataResponse
// @Failure      409   {object}  dto.PartialReceiptResponse
// @Router       /api/order-buys/receive [post]
func (h *OrderBuyHandler) Receive(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.ReceiveOrderBuyRequest
	if err := parseBody(c, &in); err != nil {
		return handleBodyErr(c, err)
	}
	out, err := h.uc.Receive(c.UserContext(), userID, in.OrderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DataResponse{Data: out, Message: "orden recibida"})
}

// Cancel POST /api/order-buys/cancel
func (h *OrderBuyHandler) Cancel(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.CancelOrderBuyRequest
	if err := parseBody(c, &in); err != nil {
		return handleBodyErr(c, err)
	}
	out, err := h.uc.Cancel(c.UserContext(), userID, in.OrderID, in.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DataResponse{Data: out, Message: "orden cancelada"})
}

// List GET /api/order-buys?estado=pendiente
func (h *OrderBuyHandler) List(c *fiber.Ctx) error {
	var q dto.OrderBuyQuery
	if err := c.QueryParser(&q); err != nil {
		return writeError(c, domain.ErrInvalidInput)
	}
	list, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DataResponse{Data: list})
}

// GetByID GET /api/order-buys/:id
func (h *OrderBuyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DataResponse{Data: out})
}
