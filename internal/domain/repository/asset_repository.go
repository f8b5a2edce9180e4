package repository

import "github.com/jhoicas/Mantenix-api/internal/domain/entity"

// AssetRepository define el puerto de persistencia para Asset.
type AssetRepository interface {
	Create(asset *entity.Asset) error
	GetByID(id string) (*entity.Asset, error)
	GetByCode(code string) (*entity.Asset, error)
	Update(asset *entity.Asset) error
	ListByClient(clientID string, limit, offset int) ([]*entity.Asset, error)
	List(limit, offset int) ([]*entity.Asset, error)
	Delete(id string) error
}
