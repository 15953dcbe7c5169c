package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrObraExists          = errors.New("ya existe una obra con ese número de contrato")
	ErrEmpresaReferenced   = errors.New("la empresa está referenciada por una o más obras")
	ErrObraHasDependencies = errors.New("la obra tiene valorizaciones registradas")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrConflict            = errors.New("conflicto con el estado actual")
)
