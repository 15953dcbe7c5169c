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

// Asegura que ObraRepo implementa repository.ObraRepository.
var _ repository.ObraRepository = (*ObraRepo)(nil)

// ObraRepo implementación del puerto ObraRepository sobre PostgreSQL
// (usable con pool o tx). Una sola tabla sirve ambas variantes; la columna
// tipo discrimina.
type ObraRepo struct {
	q Querier
}

// NewObraRepository construye el adaptador de persistencia para obras.
// Pasar pool o tx (Querier).
func NewObraRepository(q Querier) *ObraRepo {
	return &ObraRepo{q: q}
}

const obraColumns = `id, tipo, nombre, numero_contrato, numero_expediente, periodo_valorizacion,
		fecha_inicio, plazo_ejecucion_dias, empresa_ejecutora_id, empresa_supervisora_id, created_at, updated_at`

// Create persiste la fila de la obra (el plantel va por ReplaceProfesionales).
func (r *ObraRepo) Create(ctx context.Context, o *entity.Obra) error {
	q := `
		INSERT INTO obras (id, tipo, nombre, numero_contrato, numero_expediente, periodo_valorizacion,
			fecha_inicio, plazo_ejecucion_dias, empresa_ejecutora_id, empresa_supervisora_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, q,
		o.ID, o.Tipo, o.Nombre, o.NumeroContrato, o.NumeroExpediente, o.PeriodoValorizacion,
		o.FechaInicio, o.PlazoEjecucionDias, o.EmpresaEjecutoraID, o.EmpresaSupervisoraID,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert obra: %w", err)
	}
	return nil
}

// GetByID obtiene una obra de la variante por ID con su plantel.
func (r *ObraRepo) GetByID(ctx context.Context, tipo entity.TipoObra, id string) (*entity.Obra, error) {
	q := `SELECT ` + obraColumns + ` FROM obras WHERE id = $1 AND tipo = $2`
	o, err := r.scanObra(r.q.QueryRow(ctx, q, id, tipo))
	if err != nil || o == nil {
		return o, err
	}
	if err := r.cargarProfesionales(ctx, []*entity.Obra{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// GetByNumeroContrato obtiene una obra por número de contrato dentro de la
// variante (pre-chequeo de duplicados). Sin plantel.
func (r *ObraRepo) GetByNumeroContrato(ctx context.Context, tipo entity.TipoObra, numero string) (*entity.Obra, error) {
	q := `SELECT ` + obraColumns + ` FROM obras WHERE numero_contrato = $1 AND tipo = $2`
	return r.scanObra(r.q.QueryRow(ctx, q, numero, tipo))
}

// Update actualiza la fila de la obra.
func (r *ObraRepo) Update(ctx context.Context, o *entity.Obra) error {
	q := `
		UPDATE obras
		SET nombre = $2, numero_contrato = $3, numero_expediente = $4, periodo_valorizacion = $5,
			fecha_inicio = $6, plazo_ejecucion_dias = $7, empresa_ejecutora_id = $8,
			empresa_supervisora_id = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, q,
		o.ID, o.Nombre, o.NumeroContrato, o.NumeroExpediente, o.PeriodoValorizacion,
		o.FechaInicio, o.PlazoEjecucionDias, o.EmpresaEjecutoraID, o.EmpresaSupervisoraID,
		o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update obra: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve obras de la variante con búsqueda, orden y paginación,
// incluyendo el plantel. La búsqueda cubre nombre, contrato y expediente.
func (r *ObraRepo) List(ctx context.Context, tipo entity.TipoObra, shape query.Shape) ([]*entity.Obra, error) {
	base := `SELECT ` + obraColumns + ` FROM obras WHERE tipo = $1`
	orden := fmt.Sprintf(" ORDER BY %s %s", shape.OrderBy, shape.Order)

	var rows pgx.Rows
	var err error
	if shape.Search != "" {
		q := base + ` AND (nombre ILIKE $2 OR numero_contrato ILIKE $2 OR numero_expediente ILIKE $2)` +
			orden + ` LIMIT $3 OFFSET $4`
		rows, err = r.q.Query(ctx, q, tipo, "%"+shape.Search+"%", shape.Limit, shape.Offset)
	} else {
		q := base + orden + ` LIMIT $2 OFFSET $3`
		rows, err = r.q.Query(ctx, q, tipo, shape.Limit, shape.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("list obras: %w", err)
	}
	defer rows.Close()

	var list []*entity.Obra
	for rows.Next() {
		o, err := scanObraFromRows(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.cargarProfesionales(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Count cuenta obras de la variante con el mismo filtro del listado.
func (r *ObraRepo) Count(ctx context.Context, tipo entity.TipoObra, search string) (int, error) {
	var total int
	var err error
	if search != "" {
		q := `SELECT count(*) FROM obras WHERE tipo = $1 AND (nombre ILIKE $2 OR numero_contrato ILIKE $2 OR numero_expediente ILIKE $2)`
		err = r.q.QueryRow(ctx, q, tipo, "%"+search+"%").Scan(&total)
	} else {
		err = r.q.QueryRow(ctx, `SELECT count(*) FROM obras WHERE tipo = $1`, tipo).Scan(&total)
	}
	if err != nil {
		return 0, fmt.Errorf("count obras: %w", err)
	}
	return total, nil
}

// Delete elimina la obra junto con su plantel. Invocar dentro de una tx.
func (r *ObraRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM profesionales WHERE obra_id = $1`, id); err != nil {
		return fmt.Errorf("delete profesionales: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM obras WHERE id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrObraHasDependencies
		}
		return fmt.Errorf("delete obra: %w", err)
	}
	return nil
}

// CountByEmpresa cuenta obras que referencian a la empresa en cualquiera de
// los dos roles.
func (r *ObraRepo) CountByEmpresa(ctx context.Context, empresaID string) (int, error) {
	var total int
	q := `SELECT count(*) FROM obras WHERE empresa_ejecutora_id = $1 OR empresa_supervisora_id = $1`
	if err := r.q.QueryRow(ctx, q, empresaID).Scan(&total); err != nil {
		return 0, fmt.Errorf("count obras por empresa: %w", err)
	}
	return total, nil
}

// ReplaceProfesionales elimina el plantel actual de la obra e inserta la
// lista nueva. Diseñado para correr sobre un repo atado a tx.
func (r *ObraRepo) ReplaceProfesionales(ctx context.Context, obraID string, profesionales []entity.Profesional) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM profesionales WHERE obra_id = $1`, obraID); err != nil {
		return fmt.Errorf("delete profesionales: %w", err)
	}
	q := `
		INSERT INTO profesionales (id, obra_id, nombre_completo, cargo, porcentaje_participacion, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, p := range profesionales {
		_, err := r.q.Exec(ctx, q,
			p.ID, obraID, p.NombreCompleto, p.Cargo, p.PorcentajeParticipacion, p.CreatedAt, p.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert profesional: %w", err)
		}
	}
	return nil
}

func (r *ObraRepo) scanObra(row pgx.Row) (*entity.Obra, error) {
	var o entity.Obra
	err := row.Scan(
		&o.ID, &o.Tipo, &o.Nombre, &o.NumeroContrato, &o.NumeroExpediente, &o.PeriodoValorizacion,
		&o.FechaInicio, &o.PlazoEjecucionDias, &o.EmpresaEjecutoraID, &o.EmpresaSupervisoraID,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get obra: %w", err)
	}
	return &o, nil
}

func scanObraFromRows(rows pgx.Rows) (*entity.Obra, error) {
	var o entity.Obra
	err := rows.Scan(
		&o.ID, &o.Tipo, &o.Nombre, &o.NumeroContrato, &o.NumeroExpediente, &o.PeriodoValorizacion,
		&o.FechaInicio, &o.PlazoEjecucionDias, &o.EmpresaEjecutoraID, &o.EmpresaSupervisoraID,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan obra: %w", err)
	}
	return &o, nil
}

// cargarProfesionales puebla el plantel de las obras dadas en una sola consulta.
func (r *ObraRepo) cargarProfesionales(ctx context.Context, obras []*entity.Obra) error {
	if len(obras) == 0 {
		return nil
	}
	ids := make([]string, 0, len(obras))
	porObra := make(map[string]*entity.Obra, len(obras))
	for _, o := range obras {
		ids = append(ids, o.ID)
		porObra[o.ID] = o
		o.Profesionales = []entity.Profesional{}
	}

	q := `
		SELECT id, obra_id, nombre_completo, cargo, porcentaje_participacion, created_at, updated_at
		FROM profesionales
		WHERE obra_id = ANY($1::uuid[])
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, q, ids)
	if err != nil {
		return fmt.Errorf("list profesionales: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p entity.Profesional
		if err := rows.Scan(&p.ID, &p.ObraID, &p.NombreCompleto, &p.Cargo, &p.PorcentajeParticipacion, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return fmt.Errorf("scan profesional: %w", err)
		}
		if o, ok := porObra[p.ObraID]; ok {
			o.Profesionales = append(o.Profesionales, p)
		}
	}
	return rows.Err()
}
