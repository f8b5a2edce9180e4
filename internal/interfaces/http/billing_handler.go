package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Mantenix-api/internal/application/billing"
	"github.com/jhoicas/Mantenix-api/internal/application/dto"
)

// BillingHandler maneja las peticiones HTTP de facturación.
type BillingHandler struct {
	uc *billing.UseCase
}

// NewBillingHandler construye el handler.
func NewBillingHandler(uc *billing.UseCase) *BillingHandler {
	return &BillingHandler{uc: uc}
}

// Create godoc
// @Summary      Emitir factura
// @Description  El monto se calcula como la suma de las líneas y el
// @Description  vencimiento queda a 30 días de la emisión.
// @Tags         billing
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "client_id, items (descripción + importe), work_order_ref opcional"
// @Success      201  {object}  dto.InvoiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *BillingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateInvoice(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar facturas
// @Tags         billing
// @Produce      json
// @Param        client_id  query  string  false  "Filtrar por cliente"
// @Param        limit      query  int     false  "Tamaño de página (default 20)"
// @Param        offset     query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.InvoiceListResponse
// @Router       /api/invoices [get]
func (h *BillingHandler) List(c *fiber.Ctx) error {
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
// @Summary      Obtener factura por ID
// @Tags         billing
// @Produce      json
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *BillingHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetStatus godoc
// @Summary      Cambiar estado de cobro
// @Tags         billing
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID de la factura"
// @Param        body  body  dto.SetInvoiceStatusRequest  true  "status (Draft | Pending | Paid | Overdue)"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/status [patch]
func (h *BillingHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.SetInvoiceStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetStatus(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetPDF godoc
// @Summary      Descargar factura en PDF
// @Tags         billing
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *BillingHandler) GetPDF(c *fiber.Ctx) error {
	data, err := h.uc.GetPDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="factura.pdf"`)
	return c.Send(data)
}
