package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ENEASJO/control-valo-api/internal/domain/entity"
	"github.com/ENEASJO/control-valo-api/internal/domain/repository"
)

// Asegura que ProfesionalRepo implementa repository.ProfesionalRepository.
var _ repository.ProfesionalRepository = (*ProfesionalRepo)(nil)

// ProfesionalRepo opera profesionales fila a fila (sub-recurso directo).
type ProfesionalRepo struct {
	q Querier
}

// NewProfesionalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProfesionalRepository(q Querier) *ProfesionalRepo {
	return &ProfesionalRepo{q: q}
}

const profesionalColumns = `id, obra_id, nombre_completo, cargo, porcentaje_participacion, created_at, updated_at`

// ListByObra devuelve el plantel de la obra en orden de alta.
func (r *ProfesionalRepo) ListByObra(ctx context.Context, obraID string) ([]entity.Profesional, error) {
	q := `SELECT ` + profesionalColumns + ` FROM profesionales WHERE obra_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, q, obraID)
	if err != nil {
		return nil, fmt.Errorf("list profesionales: %w", err)
	}
	defer rows.Close()

	lista := []entity.Profesional{}
	for rows.Next() {
		var p entity.Profesional
		if err := rows.Scan(&p.ID, &p.ObraID, &p.NombreCompleto, &p.Cargo, &p.PorcentajeParticipacion, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan profesional: %w", err)
		}
		lista = append(lista, p)
	}
	return lista, rows.Err()
}

// GetByID obtiene un profesional por ID.
func (r *ProfesionalRepo) GetByID(ctx context.Context, id string) (*entity.Profesional, error) {
	q := `SELECT ` + profesionalColumns + ` FROM profesionales WHERE id = $1`
	var p entity.Profesional
	err := r.q.QueryRow(ctx, q, id).Scan(
		&p.ID, &p.ObraID, &p.NombreCompleto, &p.Cargo, &p.PorcentajeParticipacion, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profesional: %w", err)
	}
	return &p, nil
}

// Create inserta un profesional.
func (r *ProfesionalRepo) Create(ctx context.Context, p *entity.Profesional) error {
	q := `
		INSERT INTO profesionales (id, obra_id, nombre_completo, cargo, porcentaje_participacion, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, q,
		p.ID, p.ObraID, p.NombreCompleto, p.Cargo, p.PorcentajeParticipacion, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert profesional: %w", err)
	}
	return nil
}

// Update actualiza un profesional.
func (r *ProfesionalRepo) Update(ctx context.Context, p *entity.Profesional) error {
	q := `
		UPDATE profesionales
		SET nombre_completo = $2, cargo = $3, porcentaje_participacion = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, q, p.ID, p.NombreCompleto, p.Cargo, p.PorcentajeParticipacion, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update profesional: %w", err)
	}
	return nil
}

// Delete elimina un profesional.
func (r *ProfesionalRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM profesionales WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete profesional: %w", err)
	}
	return nil
}
