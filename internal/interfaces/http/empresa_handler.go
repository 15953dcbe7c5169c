package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ENEASJO/control-valo-api/internal/application/dto"
	"github.com/ENEASJO/control-valo-api/internal/application/usecase"
)

// EmpresaHandler maneja los endpoints de empresas y consorcios.
type EmpresaHandler struct {
	uc *usecase.EmpresaUseCase
}

// NewEmpresaHandler construye el handler.
func NewEmpresaHandler(uc *usecase.EmpresaUseCase) *EmpresaHandler {
	return &EmpresaHandler{uc: uc}
}

// List godoc
// @Summary      Listar empresas
// @Description  Listado con búsqueda por nombre o RUC, orden y paginación.
// @Tags         empresas
// @Produce      json
// @Param        search     query  string  false  "Filtro sobre nombre y RUC"
// @Param        page       query  int     false  "Página (default 1)"
// @Param        limit      query  int     false  "Tamaño de página (default 10, max 100)"
// @Param        sortBy     query  string  false  "nombre | ruc | createdAt"
// @Param        sortOrder  query  string  false  "asc | desc"
// @Success      200  {object}  dto.Response
// @Router       /api/empresas [get]
func (h *EmpresaHandler) List(c *fiber.Ctx) error {
	var p dto.ListParams
	if err := c.QueryParser(&p); err != nil {
		return respondBadRequest(c, &dto.ErrorBody{Code: "VALIDATION_ERROR", Message: "parámetros de consulta inválidos"})
	}
	result, err := h.uc.List(c.Context(), p)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, result)
}

// GetByID godoc
// @Summary      Obtener una empresa con sus integrantes
// @Tags         empresas
// @Produce      json
// @Param        id  path  string  true  "ID de la empresa (UUID)"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/empresas/{id} [get]
func (h *EmpresaHandler) GetByID(c *fiber.Ctx) error {
	id, badID := parseID(c, "id")
	if badID != nil {
		return respondBadRequest(c, badID)
	}
	result, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, result)
}

// Create godoc
// @Summary      Crear una empresa o consorcio
// @Description  Si esConsorcio es true, exige al menos un integrante y que la
//               suma de porcentajes no exceda 100.
// @Tags         empresas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmpresaRequest  true  "Datos de la empresa"
// @Success      201  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Failure      409  {object}  dto.Response
// @Router       /api/empresas [post]
func (h *EmpresaHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateEmpresaRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, &dto.ErrorBody{Code: "INVALID_BODY", Message: "cuerpo de la petición inválido"})
	}
	if bad := validarBody(&req); bad != nil {
		return respondBadRequest(c, bad)
	}
	result, err := h.uc.Create(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, result)
}

// Update godoc
// @Summary      Actualizar una empresa
// @Description  Actualización parcial. Si el payload trae integrantesConsorcio,
//               la colección se reemplaza completa (lista vacía = eliminar todos).
// @Tags         empresas
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la empresa (UUID)"
// @Param        body  body  dto.UpdateEmpresaRequest  true  "Campos a actualizar"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Failure      409  {object}  dto.Response
// @Router       /api/empresas/{id} [put]
func (h *EmpresaHandler) Update(c *fiber.Ctx) error {
	id, badID := parseID(c, "id")
	if badID != nil {
		return respondBadRequest(c, badID)
	}
	var req dto.UpdateEmpresaRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, &dto.ErrorBody{Code: "INVALID_BODY", Message: "cuerpo de la petición inválido"})
	}
	if bad := validarBody(&req); bad != nil {
		return respondBadRequest(c, bad)
	}
	result, err := h.uc.Update(c.Context(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, result)
}

// Delete godoc
// @Summary      Eliminar una empresa
// @Description  Bloqueado con 409 mientras alguna obra la referencie.
// @Tags         empresas
// @Produce      json
// @Param        id  path  string  true  "ID de la empresa (UUID)"
// @Success      200  {object}  dto.Response
// @Failure      409  {object}  dto.Response
// @Router       /api/empresas/{id} [delete]
func (h *EmpresaHandler) Delete(c *fiber.Ctx) error {
	id, badID := parseID(c, "id")
	if badID != nil {
		return respondBadRequest(c, badID)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, "empresa eliminada")
}
