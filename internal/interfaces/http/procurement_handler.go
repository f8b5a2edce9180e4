package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Mantenix-api/internal/application/dto"
	"github.com/jhoicas/Mantenix-api/internal/application/procurement"
)

// ProcurementHandler maneja las peticiones HTTP del flujo de compras:
// solicitudes, decisión, emisión de orden y recepción de mercancía.
type ProcurementHandler struct {
	uc *procurement.UseCase
}

// NewProcurementHandler construye el handler.
func NewProcurementHandler(uc *procurement.UseCase) *ProcurementHandler {
	return &ProcurementHandler{uc: uc}
}

// CreateRequest godoc
// @Summary      Crear solicitud de compra
// @Tags         procurement
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequestRequest  true  "requester_name, items (nombre, cantidad, costo estimado)"
// @Success      201  {object}  dto.PurchaseRequestResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/procurement/requests [post]
func (h *ProcurementHandler) CreateRequest(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateRequest(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRequests godoc
// @Summary      Listar solicitudes de compra
// @Tags         procurement
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.PurchaseRequestListResponse
// @Router       /api/procurement/requests [get]
func (h *ProcurementHandler) ListRequests(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	out, err := h.uc.ListRequests(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetRequest godoc
// @Summary      Obtener solicitud por ID
// @Tags         procurement
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.PurchaseRequestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/procurement/requests/{id} [get]
func (h *ProcurementHandler) GetRequest(c *fiber.Ctx) error {
	out, err := h.uc.GetRequest(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Decide godoc
// @Summary      Aprobar o rechazar solicitud
// @Description  Solo las solicitudes Pending admiten decisión, y una sola vez.
// @Tags         procurement
// @Accept       json
// @Produce      json
// @Param        id    path  string                            true  "ID de la solicitud"
// @Param        body  body  dto.DecidePurchaseRequestRequest  true  "outcome (Approved | Rejected)"
// @Success      200  {object}  dto.PurchaseRequestResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/procurement/requests/{id}/decision [post]
func (h *ProcurementHandler) Decide(c *fiber.Ctx) error {
	var in dto.DecidePurchaseRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Decide(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ConvertToOrder godoc
// @Summary      Emitir orden de compra desde solicitud aprobada
// @Description  Copia los ítems solicitados como líneas priceadas con el costo
// @Description  estimado y deja la solicitud en "PO Issued".
// @Tags         procurement
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la solicitud"
// @Param        body  body  dto.ConvertToOrderRequest  true  "vendor"
// @Success      201  {object}  dto.PurchaseOrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/procurement/requests/{id}/convert [post]
func (h *ProcurementHandler) ConvertToOrder(c *fiber.Ctx) error {
	var in dto.ConvertToOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ConvertToOrder(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListOrders godoc
// @Summary      Listar órdenes de compra
// @Tags         procurement
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.PurchaseOrderListResponse
// @Router       /api/procurement/orders [get]
func (h *ProcurementHandler) ListOrders(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	out, err := h.uc.ListOrders(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetOrder godoc
// @Summary      Obtener orden de compra por ID
// @Tags         procurement
// @Produce      json
// @Param        id  path  string  true  "ID de la orden de compra"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/procurement/orders/{id} [get]
func (h *ProcurementHandler) GetOrder(c *fiber.Ctx) error {
	out, err := h.uc.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ReceiveGoods godoc
// @Summary      Registrar recepción de mercancía
// @Description  Acredita stock (transacción IN con el N° de la orden como
// @Description  referencia) por cada línea enlazada a inventario y cierra la
// @Description  orden como Received. Solo órdenes Ordered.
// @Tags         procurement
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la orden de compra"
// @Param        body  body  dto.ReceiveGoodsRequest  true  "actor (quien recibe)"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/procurement/orders/{id}/receive [post]
func (h *ProcurementHandler) ReceiveGoods(c *fiber.Ctx) error {
	var in dto.ReceiveGoodsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ReceiveGoods(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CancelOrder godoc
// @Summary      Cancelar orden de compra
// @Description  Solo órdenes Ordered. No toca inventario.
// @Tags         procurement
// @Produce      json
// @Param        id  path  string  true  "ID de la orden de compra"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/procurement/orders/{id}/cancel [post]
func (h *ProcurementHandler) CancelOrder(c *fiber.Ctx) error {
	out, err := h.uc.CancelOrder(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
