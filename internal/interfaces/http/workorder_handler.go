package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Mantenix-api/internal/application/dto"
	"github.com/jhoicas/Mantenix-api/internal/application/workorder"
)

// WorkOrderHandler maneja las peticiones HTTP de órdenes de servicio:
// ciclo de ejecución, checklist, repuestos consumidos y evidencia.
type WorkOrderHandler struct {
	uc *workorder.UseCase
}

// NewWorkOrderHandler construye el handler.
func NewWorkOrderHandler(uc *workorder.UseCase) *WorkOrderHandler {
	return &WorkOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de servicio directa
// @Tags         work-orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWorkOrderRequest  true  "title, client_id, priority, fechas"
// @Success      201  {object}  dto.WorkOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/work-orders [post]
func (h *WorkOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWorkOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar órdenes de servicio
// @Tags         work-orders
// @Produce      json
// @Param        client_id  query  string  false  "Filtrar por cliente"
// @Param        limit      query  int     false  "Tamaño de página (default 20)"
// @Param        offset     query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.WorkOrderListResponse
// @Router       /api/work-orders [get]
func (h *WorkOrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	out, err := h.uc.List(c.Context(), c.Query("client_id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden por ID
// @Tags         work-orders
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.WorkOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id} [get]
func (h *WorkOrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AssignTechnician godoc
// @Summary      Asignar técnico
// @Tags         work-orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID de la orden"
// @Param        body  body  dto.AssignTechnicianRequest  true  "technician_id"
// @Success      200  {object}  dto.WorkOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/technician [put]
func (h *WorkOrderHandler) AssignTechnician(c *fiber.Ctx) error {
	var in dto.AssignTechnicianRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AssignTechnician(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddTask godoc
// @Summary      Agregar tarea al checklist
// @Tags         work-orders
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la orden"
// @Param        body  body  dto.AddTaskRequest  true  "description"
// @Success      200  {object}  dto.WorkOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/tasks [post]
func (h *WorkOrderHandler) AddTask(c *fiber.Ctx) error {
	var in dto.AddTaskRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddTask(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ToggleTask godoc
// @Summary      Alternar tarea del checklist
// @Tags         work-orders
// @Produce      json
// @Param        id      path  string  true  "ID de la orden"
// @Param        taskId  path  string  true  "ID de la tarea"
// @Success      200  {object}  dto.WorkOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/tasks/{taskId}/toggle [patch]
func (h *WorkOrderHandler) ToggleTask(c *fiber.Ctx) error {
	out, err := h.uc.ToggleTask(c.Context(), c.Params("id"), c.Params("taskId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetStatus godoc
// @Summary      Reasignar estado de la orden
// @Description  El estado se puede mover libremente. Completed estampa la
// @Description  fecha de cierre; salir de Completed la limpia.
// @Tags         work-orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "ID de la orden"
// @Param        body  body  dto.SetWorkOrderStatusRequest  true  "status (Open | In Progress | Review | Completed)"
// @Success      200  {object}  dto.WorkOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/status [patch]
func (h *WorkOrderHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.SetWorkOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetStatus(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AttachImage godoc
// @Summary      Adjuntar referencia de imagen
// @Tags         work-orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la orden"
// @Param        body  body  dto.AttachImageRequest  true  "image_ref (URL o clave de storage)"
// @Success      200  {object}  dto.WorkOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/images [post]
func (h *WorkOrderHandler) AttachImage(c *fiber.Ctx) error {
	var in dto.AttachImageRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AttachImage(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddPartUsage godoc
// @Summary      Registrar repuesto consumido
// @Description  Con inventory_item_id descuenta stock (transacción OUT con la
// @Description  orden como referencia); sin él es una entrada manual que no
// @Description  toca inventario.
// @Tags         work-orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la orden"
// @Param        body  body  dto.AddPartUsageRequest  true  "inventory_item_id o part_name + cost, quantity"
// @Success      200  {object}  dto.WorkOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/parts [post]
func (h *WorkOrderHandler) AddPartUsage(c *fiber.Ctx) error {
	var in dto.AddPartUsageRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddPartUsage(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemovePartUsage godoc
// @Summary      Eliminar repuesto consumido
// @Description  Si la línea descontó stock, emite la transacción IN
// @Description  compensatoria en la misma transacción.
// @Tags         work-orders
// @Produce      json
// @Param        id       path  string  true  "ID de la orden"
// @Param        usageId  path  string  true  "ID de la línea de consumo"
// @Success      200  {object}  dto.WorkOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/parts/{usageId} [delete]
func (h *WorkOrderHandler) RemovePartUsage(c *fiber.Ctx) error {
	out, err := h.uc.RemovePartUsage(c.Context(), c.Params("id"), c.Params("usageId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
