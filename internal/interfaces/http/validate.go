package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ENEASJO/control-valo-api/internal/application/dto"
)

// validate es el validador de esquemas compartido (los tags viven en los DTO).
var validate = validator.New(validator.WithRequiredStructEnabled())

// validarBody aplica los tags de validación del DTO. Devuelve nil si pasa;
// si falla, el cuerpo de error con el detalle campo → regla violada.
func validarBody(in any) *dto.ErrorBody {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		return &dto.ErrorBody{Code: "VALIDATION_ERROR", Message: "datos inválidos", Details: fields}
	}
	return &dto.ErrorBody{Code: "VALIDATION_ERROR", Message: err.Error()}
}

// parseID valida el parámetro de ruta como UUID.
func parseID(c *fiber.Ctx, name string) (string, *dto.ErrorBody) {
	id := c.Params(name)
	if id == "" {
		return "", &dto.ErrorBody{Code: "MISSING_ID", Message: name + " es requerido"}
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", &dto.ErrorBody{Code: "INVALID_ID", Message: name + " no es un UUID válido"}
	}
	return id, nil
}

// respondBadRequest envía 400 con el cuerpo de error dado.
func respondBadRequest(c *fiber.Ctx, body *dto.ErrorBody) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Response{Success: false, Error: body})
}
