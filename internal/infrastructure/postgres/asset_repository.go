package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Mantenix-api/internal/domain"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

var _ repository.AssetRepository = (*AssetRepo)(nil)

const assetColumns = `id, client_id, category_id, code, name, location, status, model, serial_number, vendor, purchase_cost, department, created_at, updated_at`

// AssetRepo implementación de AssetRepository sobre PostgreSQL.
type AssetRepo struct {
	q Querier
}

// NewAssetRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssetRepository(q Querier) *AssetRepo {
	return &AssetRepo{q: q}
}

// Create persiste un activo nuevo. El código es único.
func (r *AssetRepo) Create(a *entity.Asset) error {
	query := `
		INSERT INTO assets (` + assetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.ClientID, a.CategoryID, a.Code, a.Name, a.Location, a.Status,
		a.Model, a.SerialNumber, a.Vendor, a.PurchaseCost, a.Department, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

// GetByID obtiene un activo por ID.
func (r *AssetRepo) GetByID(id string) (*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1`
	return r.scanOne(query, id, "get asset")
}

// GetByCode obtiene un activo por su código único.
func (r *AssetRepo) GetByCode(code string) (*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE code = $1`
	return r.scanOne(query, code, "get asset by code")
}

// Update actualiza los datos del activo.
func (r *AssetRepo) Update(a *entity.Asset) error {
	query := `
		UPDATE assets
		SET client_id = $2, category_id = $3, name = $4, location = $5, status = $6,
		    model = $7, serial_number = $8, vendor = $9, purchase_cost = $10,
		    department = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.ClientID, a.CategoryID, a.Name, a.Location, a.Status,
		a.Model, a.SerialNumber, a.Vendor, a.PurchaseCost, a.Department, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update asset: %w", err)
	}
	return nil
}

// ListByClient lista los activos instalados en el sitio de un cliente.
func (r *AssetRepo) ListByClient(clientID string, limit, offset int) ([]*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE client_id = $1 ORDER BY code LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, clientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list assets by client: %w", err)
	}
	defer rows.Close()
	return scanAssets(rows)
}

// List lista activos con paginación.
func (r *AssetRepo) List(limit, offset int) ([]*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()
	return scanAssets(rows)
}

// Delete elimina un activo por ID.
func (r *AssetRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	return nil
}

func (r *AssetRepo) scanOne(query, arg, op string) (*entity.Asset, error) {
	var a entity.Asset
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&a.ID, &a.ClientID, &a.CategoryID, &a.Code, &a.Name, &a.Location, &a.Status,
		&a.Model, &a.SerialNumber, &a.Vendor, &a.PurchaseCost, &a.Department, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &a, nil
}

func scanAssets(rows pgx.Rows) ([]*entity.Asset, error) {
	var out []*entity.Asset
	for rows.Next() {
		var a entity.Asset
		if err := rows.Scan(
			&a.ID, &a.ClientID, &a.CategoryID, &a.Code, &a.Name, &a.Location, &a.Status,
			&a.Model, &a.SerialNumber, &a.Vendor, &a.PurchaseCost, &a.Department, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
