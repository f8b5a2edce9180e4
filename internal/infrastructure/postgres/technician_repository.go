package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

var _ repository.TechnicianRepository = (*TechnicianRepo)(nil)

const technicianColumns = `id, name, type, role, phone, company, created_at, updated_at`

// TechnicianRepo implementación de TechnicianRepository sobre PostgreSQL.
type TechnicianRepo struct {
	q Querier
}

// NewTechnicianRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTechnicianRepository(q Querier) *TechnicianRepo {
	return &TechnicianRepo{q: q}
}

// Create persiste un técnico nuevo.
func (r *TechnicianRepo) Create(t *entity.Technician) error {
	query := `
		INSERT INTO technicians (` + technicianColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Name, t.Type, t.Role, t.Phone, t.Company, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert technician: %w", err)
	}
	return nil
}

// GetByID obtiene un técnico por ID.
func (r *TechnicianRepo) GetByID(id string) (*entity.Technician, error) {
	query := `SELECT ` + technicianColumns + ` FROM technicians WHERE id = $1`
	var t entity.Technician
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.Name, &t.Type, &t.Role, &t.Phone, &t.Company, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get technician: %w", err)
	}
	return &t, nil
}

// Update actualiza los datos del técnico.
func (r *TechnicianRepo) Update(t *entity.Technician) error {
	query := `
		UPDATE technicians
		SET name = $2, type = $3, role = $4, phone = $5, company = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Name, t.Type, t.Role, t.Phone, t.Company, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update technician: %w", err)
	}
	return nil
}

// List lista técnicos con paginación.
func (r *TechnicianRepo) List(limit, offset int) ([]*entity.Technician, error) {
	query := `SELECT ` + technicianColumns + ` FROM technicians ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list technicians: %w", err)
	}
	defer rows.Close()

	var out []*entity.Technician
	for rows.Next() {
		var t entity.Technician
		if err := rows.Scan(&t.ID, &t.Name, &t.Type, &t.Role, &t.Phone, &t.Company, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan technician: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

// Delete elimina un técnico por ID.
func (r *TechnicianRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM technicians WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete technician: %w", err)
	}
	return nil
}
