package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/domain"
)

// InventoryHandler ajustes manuales, stock, movimientos, alertas y proveedores.
type InventoryHandler struct {
	adjustments *inventory.AdjustmentUseCase
	stock       *inventory.StockQueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(adjustments *inventory.AdjustmentUseCase, stock *inventory.StockQueryUseCase) *InventoryHandler {
	return &InventoryHandler{adjustments: adjustments, stock: stock}
}

// Adjust godoc
// @Summary      Ajuste manual de inventario
// @Tags         inventory-adjustments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustInventoryRequest  true  "product_id, adjustment_type (increase|decrease), quantity, reason"
// @Success      201   {object}  dto.DataResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory-adjustments/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.AdjustInventoryRequest
	if err := parseBody(c, &in); err != nil {
		return handleBodyErr(c, err)
	}
	out, err := h.adjustments.Adjust(c.UserContext(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse{Data: out, Message: "ajuste registrado"})
}

// ListAll GET /api/inventory-adjustments
func (h *InventoryHandler) ListAll(c *fiber.Ctx) error {
	page, err := pageQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.adjustments.ListAll(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DataResponse{Data: list})
}

// GetByID GET /api/inventory-adjustments/:id
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.adjustments.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DataResponse{Data: out})
}

// History GET /api/inventory-adjustments/product/:productId/history
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	page, err := pageQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.adjustments.History(c.UserContext(), c.Params("productId"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DataResponse{Data: list})
}

// Stock GET /api/products/:id/stock
func (h *InventoryHandler) Stock(c *fiber.Ctx) error {
	out, err := h.stock.GetStock(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DataResponse{Data: out})
}

// Movements GET /api/products/:id/movements?from=&to=&limit=&offset= (fechas RFC3339)
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	page, err := pageQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	q := dto.MovementQuery{Limit: page.Limit, Offset: page.Offset}
	if q.From, err = timeQuery(c, "from"); err != nil {
		return writeError(c, err)
	}
	if q.To, err = timeQuery(c, "to"); err != nil {
		return writeError(c, err)
	}
	list, err := h.stock.Movements(c.UserContext(), c.Params("id"), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DataResponse{Data: list})
}

// LowStock GET /api/inventory/low-stock
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	list, err := h.stock.LowStock(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DataResponse{Data: list})
}

// Providers GET /api/providers
func (h *InventoryHandler) Providers(c *fiber.Ctx) error {
	list, err := h.stock.Providers(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DataResponse{Data: list})
}

// pageQuery lee limit/offset con valores por defecto y los valida.
func pageQuery(c *fiber.Ctx) (dto.PageRequest, error) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return page, domain.ErrInvalidInput
	}
	page.DefaultPage()
	return page, validateStruct(page)
}

func timeQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &t, nil
}
