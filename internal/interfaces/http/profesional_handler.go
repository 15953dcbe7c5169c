package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ENEASJO/control-valo-api/internal/application/dto"
	"github.com/ENEASJO/control-valo-api/internal/application/usecase"
	"github.com/ENEASJO/control-valo-api/internal/domain/entity"
)

// ProfesionalHandler maneja el plantel de una obra como sub-recurso directo,
// fila a fila. El reemplazo de colección completa vive en el PUT de la obra.
type ProfesionalHandler struct {
	uc   *usecase.ProfesionalUseCase
	tipo entity.TipoObra
}

// NewProfesionalHandler construye el handler para una variante.
func NewProfesionalHandler(uc *usecase.ProfesionalUseCase, tipo entity.TipoObra) *ProfesionalHandler {
	return &ProfesionalHandler{uc: uc, tipo: tipo}
}

// List godoc
// @Summary      Listar el plantel de la obra
// @Tags         profesionales
// @Produce      json
// @Param        id  path  string  true  "ID de la obra (UUID)"
// @Success      200  {object}  dto.Response
// @Router       /api/{variante}/obras/{id}/profesionales [get]
func (h *ProfesionalHandler) List(c *fiber.Ctx) error {
	obraID, badID := parseID(c, "id")
	if badID != nil {
		return respondBadRequest(c, badID)
	}
	result, err := h.uc.List(c.Context(), h.tipo, obraID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, result)
}

// Create godoc
// @Summary      Agregar un profesional al plantel
// @Description  Rechazado con 400 si la suma de porcentajes resultante excede 100.
// @Tags         profesionales
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la obra (UUID)"
// @Param        body  body  dto.CreateProfesionalRequest  true  "Datos del profesional"
// @Success      201  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Router       /api/{variante}/obras/{id}/profesionales [post]
func (h *ProfesionalHandler) Create(c *fiber.Ctx) error {
	obraID, badID := parseID(c, "id")
	if badID != nil {
		return respondBadRequest(c, badID)
	}
	var req dto.CreateProfesionalRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, &dto.ErrorBody{Code: "INVALID_BODY", Message: "cuerpo de la petición inválido"})
	}
	if bad := validarBody(&req); bad != nil {
		return respondBadRequest(c, bad)
	}
	result, err := h.uc.Create(c.Context(), h.tipo, obraID, req)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, result)
}

// Update godoc
// @Summary      Actualizar un profesional del plantel
// @Tags         profesionales
// @Accept       json
// @Produce      json
// @Param        id      path  string                        true  "ID de la obra (UUID)"
// @Param        profId  path  string                        true  "ID del profesional (UUID)"
// @Param        body    body  dto.UpdateProfesionalRequest  true  "Campos a actualizar"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/{variante}/obras/{id}/profesionales/{profId} [put]
func (h *ProfesionalHandler) Update(c *fiber.Ctx) error {
	obraID, badID := parseID(c, "id")
	if badID != nil {
		return respondBadRequest(c, badID)
	}
	profID, badID := parseID(c, "profId")
	if badID != nil {
		return respondBadRequest(c, badID)
	}
	var req dto.UpdateProfesionalRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, &dto.ErrorBody{Code: "INVALID_BODY", Message: "cuerpo de la petición inválido"})
	}
	if bad := validarBody(&req); bad != nil {
		return respondBadRequest(c, bad)
	}
	result, err := h.uc.Update(c.Context(), h.tipo, obraID, profID, req)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, result)
}

// Delete godoc
// @Summary      Quitar un profesional del plantel
// @Tags         profesionales
// @Produce      json
// @Param        id      path  string  true  "ID de la obra (UUID)"
// @Param        profId  path  string  true  "ID del profesional (UUID)"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/{variante}/obras/{id}/profesionales/{profId} [delete]
func (h *ProfesionalHandler) Delete(c *fiber.Ctx) error {
	obraID, badID := parseID(c, "id")
	if badID != nil {
		return respondBadRequest(c, badID)
	}
	profID, badID := parseID(c, "profId")
	if badID != nil {
		return respondBadRequest(c, badID)
	}
	if err := h.uc.Delete(c.Context(), h.tipo, obraID, profID); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, "profesional eliminado")
}
