package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/ENEASJO/control-valo-api/internal/application/dto"
	"github.com/ENEASJO/control-valo-api/internal/domain"
	"github.com/ENEASJO/control-valo-api/internal/domain/valuation"
)

// respondOK envía el sobre de éxito con data.
func respondOK(c *fiber.Ctx, data any) error {
	return c.JSON(dto.Response{Success: true, Data: data})
}

// respondCreated envía 201 con data.
func respondCreated(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(dto.Response{Success: true, Data: data})
}

// respondMessage envía éxito sin payload (DELETE).
func respondMessage(c *fiber.Ctx, message string) error {
	return c.JSON(dto.Response{Success: true, Message: message})
}

// respondFail envía el sobre de error con el código de la taxonomía.
func respondFail(c *fiber.Ctx, status int, code, message string, details any) error {
	return c.Status(status).JSON(dto.Response{
		Success: false,
		Error:   &dto.ErrorBody{Code: code, Message: message, Details: details},
	})
}

// respondError traduce errores de dominio al sobre HTTP. Los clientes
// ramifican por error.code, no por el texto del mensaje.
func respondError(c *fiber.Ctx, err error) error {
	var perr *valuation.ErrorPorcentaje
	switch {
	case errors.As(err, &perr):
		details := fiber.Map{"codigo": perr.Codigo}
		if perr.Codigo == valuation.CodigoFueraDeRango {
			details["indice"] = perr.Indice
			details["valor"] = perr.Valor
		}
		if perr.Codigo == valuation.CodigoSumaExcede {
			details["suma"] = perr.Suma
		}
		return respondFail(c, fiber.StatusBadRequest, "VALIDATION_ERROR", perr.Error(), details)
	case errors.Is(err, domain.ErrInvalidInput):
		return respondFail(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, domain.ErrNotFound):
		return respondFail(c, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado", nil)
	case errors.Is(err, domain.ErrObraExists):
		return respondFail(c, fiber.StatusConflict, "OBRA_EXISTS", domain.ErrObraExists.Error(), nil)
	case errors.Is(err, domain.ErrDuplicate):
		return respondFail(c, fiber.StatusConflict, "DUPLICATE_ERROR", "ya existe un registro con esos datos", nil)
	case errors.Is(err, domain.ErrEmpresaReferenced):
		return respondFail(c, fiber.StatusConflict, "CONSTRAINT_ERROR", err.Error(), nil)
	case errors.Is(err, domain.ErrObraHasDependencies):
		return respondFail(c, fiber.StatusConflict, "OBRA_HAS_DEPENDENCIES", err.Error(), nil)
	case errors.Is(err, domain.ErrConflict):
		return respondFail(c, fiber.StatusConflict, "CONSTRAINT_ERROR", "conflicto con el estado actual", nil)
	}
	// Falla inesperada del datastore o del runtime: se registra el detalle y
	// se responde genérico sin filtrar internals.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		log.Error().Err(err).Str("path", c.Path()).Str("sqlstate", pgErr.Code).Msg("fallo de base de datos")
		return respondFail(c, fiber.StatusInternalServerError, "DATABASE_ERROR", "error de base de datos", nil)
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("error no manejado")
	return respondFail(c, fiber.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "error interno del servidor", nil)
}

// ErrorHandler es el manejador global de Fiber: encapsula en el sobre los
// errores que no pasaron por un handler (ruta inexistente, método no
// permitido, body demasiado grande).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "INTERNAL_SERVER_ERROR"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusBadRequest:
			code = "VALIDATION_ERROR"
		}
		return respondFail(c, fe.Code, code, fe.Message, nil)
	}
	return respondError(c, err)
}
