package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ENEASJO/control-valo-api/internal/application/dto"
	"github.com/ENEASJO/control-valo-api/internal/application/usecase"
	"github.com/ENEASJO/control-valo-api/internal/domain/entity"
)

// ObraHandler maneja los endpoints de obras. Una instancia por variante:
// el router monta el mismo handler bajo /ejecucion y /supervision con el
// tipo fijado.
type ObraHandler struct {
	uc       *usecase.ObraUseCase
	reportes *usecase.ReporteUseCase
	tipo     entity.TipoObra
}

// NewObraHandler construye el handler para una variante.
func NewObraHandler(uc *usecase.ObraUseCase, reportes *usecase.ReporteUseCase, tipo entity.TipoObra) *ObraHandler {
	return &ObraHandler{uc: uc, reportes: reportes, tipo: tipo}
}

// List godoc
// @Summary      Listar obras de la variante
// @Description  Búsqueda por nombre, contrato o expediente, con orden y paginación.
// @Tags         obras
// @Produce      json
// @Param        search     query  string  false  "Filtro sobre nombre, contrato y expediente"
// @Param        page       query  int     false  "Página (default 1)"
// @Param        limit      query  int     false  "Tamaño de página (default 10, max 100)"
// @Param        sortBy     query  string  false  "nombreObra | numeroContrato | fechaInicio | createdAt"
// @Param        sortOrder  query  string  false  "asc | desc"
// @Success      200  {object}  dto.Response
// @Router       /api/{variante}/obras [get]
func (h *ObraHandler) List(c *fiber.Ctx) error {
	var p dto.ListParams
	if err := c.QueryParser(&p); err != nil {
		return respondBadRequest(c, &dto.ErrorBody{Code: "VALIDATION_ERROR", Message: "parámetros de consulta inválidos"})
	}
	result, err := h.uc.List(c.Context(), h.tipo, p)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, result)
}

// GetByID godoc
// @Summary      Obtener una obra con su plantel
// @Tags         obras
// @Produce      json
// @Param        id  path  string  true  "ID de la obra (UUID)"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/{variante}/obras/{id} [get]
func (h *ObraHandler) GetByID(c *fiber.Ctx) error {
	id, badID := parseID(c, "id")
	if badID != nil {
		return respondBadRequest(c, badID)
	}
	result, err := h.uc.GetByID(c.Context(), h.tipo, id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, result)
}

// Create godoc
// @Summary      Crear una obra con su plantel
// @Description  Exige al menos un profesional y suma de porcentajes ≤ 100.
//               El número de contrato es único dentro de la variante.
// @Tags         obras
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateObraRequest  true  "Datos de la obra"
// @Success      201  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Failure      409  {object}  dto.Response
// @Router       /api/{variante}/obras [post]
func (h *ObraHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateObraRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, &dto.ErrorBody{Code: "INVALID_BODY", Message: "cuerpo de la petición inválido"})
	}
	if bad := validarBody(&req); bad != nil {
		return respondBadRequest(c, bad)
	}
	result, err := h.uc.Create(c.Context(), h.tipo, req)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, result)
}

// Update godoc
// @Summary      Actualizar una obra
// @Description  Actualización parcial. Si el payload trae profesionales, el
//               plantel se reemplaza completo (lista vacía = eliminar todos).
// @Tags         obras
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la obra (UUID)"
// @Param        body  body  dto.UpdateObraRequest  true  "Campos a actualizar"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Failure      409  {object}  dto.Response
// @Router       /api/{variante}/obras/{id} [put]
func (h *ObraHandler) Update(c *fiber.Ctx) error {
	id, badID := parseID(c, "id")
	if badID != nil {
		return respondBadRequest(c, badID)
	}
	var req dto.UpdateObraRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, &dto.ErrorBody{Code: "INVALID_BODY", Message: "cuerpo de la petición inválido"})
	}
	if bad := validarBody(&req); bad != nil {
		return respondBadRequest(c, bad)
	}
	result, err := h.uc.Update(c.Context(), h.tipo, id, req)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, result)
}

// Delete godoc
// @Summary      Eliminar una obra y su plantel
// @Description  Bloqueado con 409 mientras la obra tenga valorizaciones.
// @Tags         obras
// @Produce      json
// @Param        id  path  string  true  "ID de la obra (UUID)"
// @Success      200  {object}  dto.Response
// @Failure      409  {object}  dto.Response
// @Router       /api/{variante}/obras/{id} [delete]
func (h *ObraHandler) Delete(c *fiber.Ctx) error {
	id, badID := parseID(c, "id")
	if badID != nil {
		return respondBadRequest(c, badID)
	}
	if err := h.uc.Delete(c.Context(), h.tipo, id); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, "obra eliminada")
}

// Reporte godoc
// @Summary      Reporte PDF de valorizaciones de la obra
// @Tags         obras
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la obra (UUID)"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.Response
// @Router       /api/{variante}/obras/{id}/reporte [get]
func (h *ObraHandler) Reporte(c *fiber.Ctx) error {
	id, badID := parseID(c, "id")
	if badID != nil {
		return respondBadRequest(c, badID)
	}
	pdf, err := h.reportes.GenerarPDF(c.Context(), h.tipo, id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="reporte-valorizaciones.pdf"`)
	return c.Send(pdf)
}
