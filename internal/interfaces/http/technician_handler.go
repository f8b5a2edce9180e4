package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Mantenix-api/internal/application/dto"
	"github.com/jhoicas/Mantenix-api/internal/application/usecase"
)

// TechnicianHandler maneja las peticiones HTTP de técnicos de campo.
type TechnicianHandler struct {
	uc *usecase.TechnicianUseCase
}

// NewTechnicianHandler construye el handler.
func NewTechnicianHandler(uc *usecase.TechnicianUseCase) *TechnicianHandler {
	return &TechnicianHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar técnico
// @Tags         technicians
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTechnicianRequest  true  "name, type (Internal | Subcontractor), role"
// @Success      201  {object}  dto.TechnicianResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/technicians [post]
func (h *TechnicianHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTechnicianRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar técnicos
// @Tags         technicians
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.TechnicianListResponse
// @Router       /api/technicians [get]
func (h *TechnicianHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	out, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener técnico por ID
// @Tags         technicians
// @Produce      json
// @Param        id  path  string  true  "ID del técnico"
// @Success      200  {object}  dto.TechnicianResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/technicians/{id} [get]
func (h *TechnicianHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar técnico
// @Tags         technicians
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del técnico"
// @Param        body  body  dto.UpdateTechnicianRequest  true  "campos a actualizar (parcial)"
// @Success      200  {object}  dto.TechnicianResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/technicians/{id} [put]
func (h *TechnicianHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTechnicianRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar técnico
// @Tags         technicians
// @Param        id  path  string  true  "ID del técnico"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/technicians/{id} [delete]
func (h *TechnicianHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
