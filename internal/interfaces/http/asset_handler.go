package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Mantenix-api/internal/application/dto"
	"github.com/jhoicas/Mantenix-api/internal/application/usecase"
)

// AssetHandler maneja las peticiones HTTP de activos instalados.
type AssetHandler struct {
	uc *usecase.AssetUseCase
}

// NewAssetHandler construye el handler.
func NewAssetHandler(uc *usecase.AssetUseCase) *AssetHandler {
	return &AssetHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar activo
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAssetRequest  true  "client_id, code (único), name, ubicación, ficha técnica"
// @Success      201  {object}  dto.AssetResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/assets [post]
func (h *AssetHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAssetRequest
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
// @Summary      Listar activos
// @Tags         assets
// @Produce      json
// @Param        client_id  query  string  false  "Filtrar por cliente"
// @Param        limit      query  int     false  "Tamaño de página (default 20)"
// @Param        offset     query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.AssetListResponse
// @Router       /api/assets [get]
func (h *AssetHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	out, err := h.uc.List(c.Query("client_id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener activo por ID
// @Tags         assets
// @Produce      json
// @Param        id  path  string  true  "ID del activo"
// @Success      200  {object}  dto.AssetResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assets/{id} [get]
func (h *AssetHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar activo
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del activo"
// @Param        body  body  dto.UpdateAssetRequest  true  "campos a actualizar (parcial)"
// @Success      200  {object}  dto.AssetResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assets/{id} [put]
func (h *AssetHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAssetRequest
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
// @Summary      Eliminar activo
// @Tags         assets
// @Param        id  path  string  true  "ID del activo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assets/{id} [delete]
func (h *AssetHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
