package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/cash"
	"github.com/jhoicas/tienda-api/internal/application/dto"
)

// CashRegisterHandler sesiones de caja y ventas.
type CashRegisterHandler struct {
	sessions *cash.SessionUseCase
	sales    *cash.SaleUseCase
}

func NewCashRegisterHandler(sessions *cash.SessionUseCase, sales *cash.SaleUseCase) *CashRegisterHandler {
	return &CashRegisterHandler{sessions: sessions, sales: sales}
}

// Open godoc
// @Summary      Abrir caja
// @Tags         cash-registers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenCashRegisterRequest  true  "initial_amount"
// @Success      201   {object}  dto.DataResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cash-registers/open [post]
func (h *CashRegisterHandler) Open(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.OpenCashRegisterRequest
	if err := parseBody(c, &in); err != nil {
		return handleBodyErr(c, err)
	}
	out, err := h.sessions.Open(c.UserContext(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse{Data: out, Message: "caja abierta"})
}

// Close godoc
// @Summary      Cerrar caja con arqueo
// @Tags         cash-registers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CloseCashRegisterRequest  true  "cash_register_id, actual_amount"
// @Success      200   {object}  dto.DataResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cash-registers/close [post]
func (h *CashRegisterHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseCashRegisterRequest
	if err := parseBody(c, &in); err != nil {
		return handleBodyErr(c, err)
	}
	out, err := h.sessions.Close(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DataResponse{Data: out.CashRegister, Message: "caja cerrada", Summary: out.Summary})
}

// CurrentOpen GET /api/cash-registers/current-open; data null si no hay caja abierta.
func (h *CashRegisterHandler) CurrentOpen(c *fiber.Ctx) error {
	out, err := h.sessions.GetCurrentOpen(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.JSON(dto.DataResponse{Data: nil, Message: "no hay caja abierta"})
	}
	return c.JSON(dto.DataResponse{Data: out})
}

// List GET /api/cash-registers
func (h *CashRegisterHandler) List(c *fiber.Ctx) error {
	page, err := pageQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.sessions.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DataResponse{Data: list})
}

// GetByID GET /api/cash-registers/:id
func (h *CashRegisterHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.sessions.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DataResponse{Data: out})
}

// Sales GET /api/cash-registers/:id/sales
func (h *CashRegisterHandler) Sales(c *fiber.Ctx) error {
	list, err := h.sessions.Sales(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DataResponse{Data: list})
}

// RecordSale godoc
// @Summary      Registrar venta en la caja abierta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "items[], payment_method"
// @Success      201   {object}  dto.DataResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *CashRegisterHandler) RecordSale(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.RecordSaleRequest
	if err := parseBody(c, &in); err != nil {
		return handleBodyErr(c, err)
	}
	out, err := h.sales.Record(c.UserContext(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse{Data: out, Message: "venta registrada"})
}
