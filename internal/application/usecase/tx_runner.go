package usecase

import (
	"context"

	"github.com/ENEASJO/control-valo-api/internal/domain/repository"
)

// TxRunner ejecuta un callback con repositorios atados a una misma
// transacción. Lo usan las escrituras que deben ser todo-o-nada: insertar
// padre + hijos, y actualizar padre + reemplazar la colección de hijos.
// La implementación vive en infrastructure/postgres.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		empresas repository.EmpresaRepository,
		obras repository.ObraRepository,
	) error) error
}
