package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ENEASJO/control-valo-api/internal/domain"
	"github.com/ENEASJO/control-valo-api/internal/domain/entity"
	"github.com/ENEASJO/control-valo-api/internal/domain/repository"
)

// Asegura que ValorizacionRepo implementa repository.ValorizacionRepository.
var _ repository.ValorizacionRepository = (*ValorizacionRepo)(nil)

// ValorizacionRepo implementación del puerto ValorizacionRepository sobre
// PostgreSQL (usable con pool o tx).
type ValorizacionRepo struct {
	q Querier
}

// NewValorizacionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewValorizacionRepository(q Querier) *ValorizacionRepo {
	return &ValorizacionRepo{q: q}
}

const valorizacionColumns = `id, obra_id, numero, periodo, monto_bruto, avance_fisico, fecha, created_at, updated_at`

// Create persiste una valorización. El par (obra_id, numero) es único.
func (r *ValorizacionRepo) Create(ctx context.Context, v *entity.Valorizacion) error {
	q := `
		INSERT INTO valorizaciones (id, obra_id, numero, periodo, monto_bruto, avance_fisico, fecha, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, q,
		v.ID, v.ObraID, v.Numero, v.Periodo, v.MontoBruto, v.AvanceFisico, v.Fecha, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert valorizacion: %w", err)
	}
	return nil
}

// GetByID obtiene una valorización por ID.
func (r *ValorizacionRepo) GetByID(ctx context.Context, id string) (*entity.Valorizacion, error) {
	q := `SELECT ` + valorizacionColumns + ` FROM valorizaciones WHERE id = $1`
	return r.scan(r.q.QueryRow(ctx, q, id))
}

// GetByObraAndNumero obtiene la valorización con ese correlativo en la obra.
func (r *ValorizacionRepo) GetByObraAndNumero(ctx context.Context, obraID string, numero int) (*entity.Valorizacion, error) {
	q := `SELECT ` + valorizacionColumns + ` FROM valorizaciones WHERE obra_id = $1 AND numero = $2`
	return r.scan(r.q.QueryRow(ctx, q, obraID, numero))
}

// ListByObra devuelve las valorizaciones de la obra ordenadas por número.
func (r *ValorizacionRepo) ListByObra(ctx context.Context, obraID string) ([]entity.Valorizacion, error) {
	q := `SELECT ` + valorizacionColumns + ` FROM valorizaciones WHERE obra_id = $1 ORDER BY numero`
	rows, err := r.q.Query(ctx, q, obraID)
	if err != nil {
		return nil, fmt.Errorf("list valorizaciones: %w", err)
	}
	defer rows.Close()

	lista := []entity.Valorizacion{}
	for rows.Next() {
		var v entity.Valorizacion
		if err := rows.Scan(&v.ID, &v.ObraID, &v.Numero, &v.Periodo, &v.MontoBruto, &v.AvanceFisico, &v.Fecha, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan valorizacion: %w", err)
		}
		lista = append(lista, v)
	}
	return lista, rows.Err()
}

// CountByObra cuenta las valorizaciones de la obra (guarda del DELETE de obras).
func (r *ValorizacionRepo) CountByObra(ctx context.Context, obraID string) (int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM valorizaciones WHERE obra_id = $1`, obraID).Scan(&total); err != nil {
		return 0, fmt.Errorf("count valorizaciones: %w", err)
	}
	return total, nil
}

// Delete elimina una valorización.
func (r *ValorizacionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM valorizaciones WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete valorizacion: %w", err)
	}
	return nil
}

func (r *ValorizacionRepo) scan(row pgx.Row) (*entity.Valorizacion, error) {
	var v entity.Valorizacion
	err := row.Scan(&v.ID, &v.ObraID, &v.Numero, &v.Periodo, &v.MontoBruto, &v.AvanceFisico, &v.Fecha, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get valorizacion: %w", err)
	}
	return &v, nil
}
