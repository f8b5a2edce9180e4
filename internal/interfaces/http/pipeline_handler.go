package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Mantenix-api/internal/application/dto"
	"github.com/jhoicas/Mantenix-api/internal/application/pipeline"
)

// PipelineHandler maneja las peticiones HTTP del pipeline comercial
// (Request → Survey → Quotation → Won/Lost) y su conversión a orden de
// servicio.
type PipelineHandler struct {
	uc *pipeline.UseCase
}

// NewPipelineHandler construye el handler.
func NewPipelineHandler(uc *pipeline.UseCase) *PipelineHandler {
	return &PipelineHandler{uc: uc}
}

// Create godoc
// @Summary      Abrir caso (etapa Request)
// @Tags         pipeline
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCaseRequest  true  "client_id, title, priority (Low | Medium | High)"
// @Success      201  {object}  dto.PipelineCaseResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/pipeline/cases [post]
func (h *PipelineHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateRequest(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar casos
// @Tags         pipeline
// @Produce      json
// @Param        stage   query  string  false  "Filtrar por etapa"
// @Param        limit   query  int     false  "Tamaño de página (default 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.PipelineListResponse
// @Router       /api/pipeline/cases [get]
func (h *PipelineHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	out, err := h.uc.List(c.Context(), c.Query("stage"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener caso por ID
// @Tags         pipeline
// @Produce      json
// @Param        id  path  string  true  "ID del caso"
// @Success      200  {object}  dto.PipelineCaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pipeline/cases/{id} [get]
func (h *PipelineHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ScheduleSurvey godoc
// @Summary      Agendar visita técnica (Request → Survey)
// @Tags         pipeline
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del caso"
// @Param        body  body  dto.ScheduleSurveyRequest  true  "date (YYYY-MM-DD), surveyor_name"
// @Success      200  {object}  dto.PipelineCaseResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pipeline/cases/{id}/survey [post]
func (h *PipelineHandler) ScheduleSurvey(c *fiber.Ctx) error {
	var in dto.ScheduleSurveyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ScheduleSurvey(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SubmitSurveyReport godoc
// @Summary      Registrar informe de visita (Survey → Quotation)
// @Description  Avanza a Quotation y reinicia la cotización: borra líneas
// @Description  previas y pone quote_amount en cero.
// @Tags         pipeline
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del caso"
// @Param        body  body  dto.SurveyReportRequest  true  "root_cause, proposed_remedy, parts_needed"
// @Success      200  {object}  dto.PipelineCaseResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pipeline/cases/{id}/survey-report [post]
func (h *PipelineHandler) SubmitSurveyReport(c *fiber.Ctx) error {
	var in dto.SurveyReportRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SubmitSurveyReport(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddQuoteLineItem godoc
// @Summary      Agregar línea de cotización
// @Tags         pipeline
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del caso"
// @Param        body  body  dto.AddQuoteLineItemRequest  true  "description, quantity, unit_price"
// @Success      200  {object}  dto.PipelineCaseResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pipeline/cases/{id}/line-items [post]
func (h *PipelineHandler) AddQuoteLineItem(c *fiber.Ctx) error {
	var in dto.AddQuoteLineItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddQuoteLineItem(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoveQuoteLineItem godoc
// @Summary      Eliminar línea de cotización
// @Tags         pipeline
// @Produce      json
// @Param        id      path  string  true  "ID del caso"
// @Param        lineId  path  string  true  "ID de la línea"
// @Success      200  {object}  dto.PipelineCaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pipeline/cases/{id}/line-items/{lineId} [delete]
func (h *PipelineHandler) RemoveQuoteLineItem(c *fiber.Ctx) error {
	out, err := h.uc.RemoveQuoteLineItem(c.Context(), c.Params("id"), c.Params("lineId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// FinalizeQuote godoc
// @Summary      Enviar cotización al cliente
// @Description  Marca quote_sent. Requiere al menos una línea con monto > 0.
// @Tags         pipeline
// @Produce      json
// @Param        id  path  string  true  "ID del caso"
// @Success      200  {object}  dto.PipelineCaseResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pipeline/cases/{id}/finalize-quote [post]
func (h *PipelineHandler) FinalizeQuote(c *fiber.Ctx) error {
	out, err := h.uc.FinalizeQuote(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar cotización (Quotation → Won)
// @Tags         pipeline
// @Produce      json
// @Param        id  path  string  true  "ID del caso"
// @Success      200  {object}  dto.PipelineCaseResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pipeline/cases/{id}/approve [post]
func (h *PipelineHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarkLost godoc
// @Summary      Marcar caso como perdido
// @Tags         pipeline
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del caso"
// @Param        body  body  dto.MarkLostRequest  true  "reason"
// @Success      200  {object}  dto.PipelineCaseResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pipeline/cases/{id}/lose [post]
func (h *PipelineHandler) MarkLost(c *fiber.Ctx) error {
	var in dto.MarkLostRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.MarkLost(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Convert godoc
// @Summary      Convertir caso ganado en orden de servicio
// @Description  Crea la orden con la descripción sintetizada del informe de
// @Description  visita y enlaza el caso. Un caso solo se convierte una vez.
// @Tags         pipeline
// @Produce      json
// @Param        id  path  string  true  "ID del caso"
// @Success      201  {object}  dto.WorkOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pipeline/cases/{id}/convert [post]
func (h *PipelineHandler) Convert(c *fiber.Ctx) error {
	out, err := h.uc.Convert(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
