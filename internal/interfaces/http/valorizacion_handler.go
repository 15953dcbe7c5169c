package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ENEASJO/control-valo-api/internal/application/dto"
	"github.com/ENEASJO/control-valo-api/internal/application/usecase"
	"github.com/ENEASJO/control-valo-api/internal/domain/entity"
)

// ValorizacionHandler maneja los registros periódicos de valorización de una
// obra como sub-recurso.
type ValorizacionHandler struct {
	uc   *usecase.ValorizacionUseCase
	tipo entity.TipoObra
}

// NewValorizacionHandler construye el handler para una variante.
func NewValorizacionHandler(uc *usecase.ValorizacionUseCase, tipo entity.TipoObra) *ValorizacionHandler {
	return &ValorizacionHandler{uc: uc, tipo: tipo}
}

// List godoc
// @Summary      Listar las valorizaciones de la obra
// @Tags         valorizaciones
// @Produce      json
// @Param        id  path  string  true  "ID de la obra (UUID)"
// @Success      200  {object}  dto.Response
// @Router       /api/{variante}/obras/{id}/valorizaciones [get]
func (h *ValorizacionHandler) List(c *fiber.Ctx) error {
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
// @Summary      Registrar una valorización
// @Description  El número es correlativo único por obra; un duplicado
//               devuelve 409.
// @Tags         valorizaciones
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "ID de la obra (UUID)"
// @Param        body  body  dto.CreateValorizacionRequest  true  "Datos de la valorización"
// @Success      201  {object}  dto.Response
// @Failure      409  {object}  dto.Response
// @Router       /api/{variante}/obras/{id}/valorizaciones [post]
func (h *ValorizacionHandler) Create(c *fiber.Ctx) error {
	obraID, badID := parseID(c, "id")
	if badID != nil {
		return respondBadRequest(c, badID)
	}
	var req dto.CreateValorizacionRequest
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

// Delete godoc
// @Summary      Eliminar una valorización
// @Tags         valorizaciones
// @Produce      json
// @Param        id     path  string  true  "ID de la obra (UUID)"
// @Param        valId  path  string  true  "ID de la valorización (UUID)"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/{variante}/obras/{id}/valorizaciones/{valId} [delete]
func (h *ValorizacionHandler) Delete(c *fiber.Ctx) error {
	obraID, badID := parseID(c, "id")
	if badID != nil {
		return respondBadRequest(c, badID)
	}
	valID, badID := parseID(c, "valId")
	if badID != nil {
		return respondBadRequest(c, badID)
	}
	if err := h.uc.Delete(c.Context(), h.tipo, obraID, valID); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, "valorización eliminada")
}
