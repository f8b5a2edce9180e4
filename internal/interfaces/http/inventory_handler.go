package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Mantenix-api/internal/application/dto"
	"github.com/jhoicas/Mantenix-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP del inventario de repuestos y
// su libro de transacciones de stock.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RegisterPart godoc
// @Summary      Registrar repuesto
// @Description  Crea el repuesto y, si initial_quantity > 0, registra la
// @Description  transacción IN "Initial Stock" en la misma transacción.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterPartRequest  true  "sku (único), name, min_stock_level, costos"
// @Success      201  {object}  dto.InventoryItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/items [post]
func (h *InventoryHandler) RegisterPart(c *fiber.Ctx) error {
	var in dto.RegisterPartRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RegisterPart(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar repuestos
// @Tags         inventory
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.InventoryListResponse
// @Router       /api/inventory/items [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	out, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListLowStock godoc
// @Summary      Repuestos con stock bajo
// @Description  Devuelve los repuestos con cantidad en o por debajo del mínimo.
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  dto.InventoryItemResponse
// @Router       /api/inventory/items/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	out, err := h.uc.ListLowStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener repuesto por ID
// @Tags         inventory
// @Produce      json
// @Param        id  path  string  true  "ID del repuesto"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RegisterTransaction godoc
// @Summary      Registrar transacción de stock
// @Description  Entrada (IN) o salida (OUT) manual. El stock puede quedar
// @Description  negativo: la salida se registra igual como backorder.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string                               true  "ID del repuesto"
// @Param        body  body  dto.RegisterStockTransactionRequest  true  "type (IN | OUT), quantity, reference, actor"
// @Success      201  {object}  dto.InventoryItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/transactions [post]
func (h *InventoryHandler) RegisterTransaction(c *fiber.Ctx) error {
	var in dto.RegisterStockTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RegisterTransaction(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTransactions godoc
// @Summary      Historial de stock de un repuesto
// @Tags         inventory
// @Produce      json
// @Param        id      path   string  true   "ID del repuesto"
// @Param        limit   query  int     false  "Tamaño de página (default 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.StockTransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/transactions [get]
func (h *InventoryHandler) ListTransactions(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	out, err := h.uc.ListTransactions(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
