package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ENEASJO/control-valo-api/internal/domain"
	"github.com/ENEASJO/control-valo-api/internal/domain/entity"
	"github.com/ENEASJO/control-valo-api/internal/domain/query"
	"github.com/ENEASJO/control-valo-api/internal/domain/repository"
)

// Asegura que EmpresaRepo implementa repository.EmpresaRepository.
var _ repository.EmpresaRepository = (*EmpresaRepo)(nil)

// EmpresaRepo implementación del puerto EmpresaRepository sobre PostgreSQL
// (usable con pool o tx).
type EmpresaRepo struct {
	q Querier
}

// NewEmpresaRepository construye el adaptador de persistencia para empresas.
// Pasar pool o tx (Querier).
func NewEmpresaRepository(q Querier) *EmpresaRepo {
	return &EmpresaRepo{q: q}
}

const empresaColumns = `id, nombre, ruc, telefono, es_consorcio, created_at, updated_at`

// Create persiste la fila de la empresa (los integrantes van por ReplaceIntegrantes).
func (r *EmpresaRepo) Create(ctx context.Context, e *entity.Empresa) error {
	q := `
		INSERT INTO empresas (id, nombre, ruc, telefono, es_consorcio, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, q,
		e.ID, e.Nombre, e.RUC, e.Telefono, e.EsConsorcio, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert empresa: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID con sus integrantes.
func (r *EmpresaRepo) GetByID(ctx context.Context, id string) (*entity.Empresa, error) {
	q := `SELECT ` + empresaColumns + ` FROM empresas WHERE id = $1`
	e, err := r.scanEmpresa(r.q.QueryRow(ctx, q, id))
	if err != nil || e == nil {
		return e, err
	}
	if err := r.cargarIntegrantes(ctx, []*entity.Empresa{e}); err != nil {
		return nil, err
	}
	return e, nil
}

// GetByRUC obtiene una empresa por RUC (pre-chequeo de duplicados). Sin integrantes.
func (r *EmpresaRepo) GetByRUC(ctx context.Context, ruc string) (*entity.Empresa, error) {
	q := `SELECT ` + empresaColumns + ` FROM empresas WHERE ruc = $1`
	return r.scanEmpresa(r.q.QueryRow(ctx, q, ruc))
}

// Update actualiza la fila de la empresa.
func (r *EmpresaRepo) Update(ctx context.Context, e *entity.Empresa) error {
	q := `
		UPDATE empresas
		SET nombre = $2, ruc = $3, telefono = $4, es_consorcio = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, q,
		e.ID, e.Nombre, e.RUC, e.Telefono, e.EsConsorcio, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update empresa: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve empresas con búsqueda, orden y paginación, incluyendo integrantes.
// La columna de orden viene validada contra la allow-list del compositor.
func (r *EmpresaRepo) List(ctx context.Context, shape query.Shape) ([]*entity.Empresa, error) {
	base := `SELECT ` + empresaColumns + ` FROM empresas`
	orden := fmt.Sprintf(" ORDER BY %s %s", shape.OrderBy, shape.Order)

	var rows pgx.Rows
	var err error
	if shape.Search != "" {
		q := base + ` WHERE nombre ILIKE $1 OR ruc ILIKE $1` + orden + ` LIMIT $2 OFFSET $3`
		rows, err = r.q.Query(ctx, q, "%"+shape.Search+"%", shape.Limit, shape.Offset)
	} else {
		q := base + orden + ` LIMIT $1 OFFSET $2`
		rows, err = r.q.Query(ctx, q, shape.Limit, shape.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("list empresas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Empresa
	for rows.Next() {
		var e entity.Empresa
		if err := rows.Scan(&e.ID, &e.Nombre, &e.RUC, &e.Telefono, &e.EsConsorcio, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan empresa: %w", err)
		}
		list = append(list, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.cargarIntegrantes(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Count cuenta empresas con el mismo filtro del listado, sin limit/offset.
func (r *EmpresaRepo) Count(ctx context.Context, search string) (int, error) {
	var total int
	var err error
	if search != "" {
		err = r.q.QueryRow(ctx, `SELECT count(*) FROM empresas WHERE nombre ILIKE $1 OR ruc ILIKE $1`, "%"+search+"%").Scan(&total)
	} else {
		err = r.q.QueryRow(ctx, `SELECT count(*) FROM empresas`).Scan(&total)
	}
	if err != nil {
		return 0, fmt.Errorf("count empresas: %w", err)
	}
	return total, nil
}

// Delete elimina una empresa con sus integrantes.
func (r *EmpresaRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM integrantes_consorcio WHERE empresa_id = $1`, id); err != nil {
		return fmt.Errorf("delete integrantes: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM empresas WHERE id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrEmpresaReferenced
		}
		return fmt.Errorf("delete empresa: %w", err)
	}
	return nil
}

// ReplaceIntegrantes elimina todos los integrantes de la empresa e inserta la
// lista nueva. Diseñado para correr sobre un repo atado a tx: o se aplica el
// conjunto completo o no se aplica nada.
func (r *EmpresaRepo) ReplaceIntegrantes(ctx context.Context, empresaID string, integrantes []entity.IntegranteConsorcio) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM integrantes_consorcio WHERE empresa_id = $1`, empresaID); err != nil {
		return fmt.Errorf("delete integrantes: %w", err)
	}
	q := `
		INSERT INTO integrantes_consorcio (id, empresa_id, nombre, ruc, porcentaje_participacion, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, i := range integrantes {
		_, err := r.q.Exec(ctx, q,
			i.ID, empresaID, i.Nombre, i.RUC, i.PorcentajeParticipacion, i.CreatedAt, i.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert integrante: %w", err)
		}
	}
	return nil
}

func (r *EmpresaRepo) scanEmpresa(row pgx.Row) (*entity.Empresa, error) {
	var e entity.Empresa
	err := row.Scan(&e.ID, &e.Nombre, &e.RUC, &e.Telefono, &e.EsConsorcio, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get empresa: %w", err)
	}
	return &e, nil
}

// cargarIntegrantes puebla Integrantes de las empresas dadas en una sola consulta.
func (r *EmpresaRepo) cargarIntegrantes(ctx context.Context, empresas []*entity.Empresa) error {
	if len(empresas) == 0 {
		return nil
	}
	ids := make([]string, 0, len(empresas))
	porEmpresa := make(map[string]*entity.Empresa, len(empresas))
	for _, e := range empresas {
		ids = append(ids, e.ID)
		porEmpresa[e.ID] = e
		e.Integrantes = []entity.IntegranteConsorcio{}
	}

	q := `
		SELECT id, empresa_id, nombre, ruc, porcentaje_participacion, created_at, updated_at
		FROM integrantes_consorcio
		WHERE empresa_id = ANY($1::uuid[])
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, q, ids)
	if err != nil {
		return fmt.Errorf("list integrantes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var i entity.IntegranteConsorcio
		if err := rows.Scan(&i.ID, &i.EmpresaID, &i.Nombre, &i.RUC, &i.PorcentajeParticipacion, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return fmt.Errorf("scan integrante: %w", err)
		}
		if e, ok := porEmpresa[i.EmpresaID]; ok {
			e.Integrantes = append(e.Integrantes, i)
		}
	}
	return rows.Err()
}
