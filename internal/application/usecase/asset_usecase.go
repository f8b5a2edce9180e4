package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Mantenix-api/internal/application/dto"
	"github.com/jhoicas/Mantenix-api/internal/domain"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

// AssetUseCase casos de uso CRUD para activos de sitio.
type AssetUseCase struct {
	repo repository.AssetRepository
}

// NewAssetUseCase construye el caso de uso.
func NewAssetUseCase(repo repository.AssetRepository) *AssetUseCase {
	return &AssetUseCase{repo: repo}
}

// Create registra un activo en el sitio de un cliente. El código debe ser
// único; los activos nacen en estado Active.
func (uc *AssetUseCase) Create(in dto.CreateAssetRequest) (*dto.AssetResponse, error) {
	if in.ClientID == "" || in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if existing, _ := uc.repo.GetByCode(in.Code); existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	asset := &entity.Asset{
		ID:           uuid.New().String(),
		ClientID:     in.ClientID,
		CategoryID:   in.CategoryID,
		Code:         in.Code,
		Name:         in.Name,
		Location:     in.Location,
		Status:       entity.AssetStatusActive,
		Model:        in.Model,
		SerialNumber: in.SerialNumber,
		Vendor:       in.Vendor,
		PurchaseCost: in.PurchaseCost,
		Department:   in.Department,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(asset); err != nil {
		return nil, err
	}
	return toAssetResponse(asset), nil
}

// GetByID obtiene un activo por ID.
func (uc *AssetUseCase) GetByID(id string) (*dto.AssetResponse, error) {
	asset, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domain.ErrNotFound
	}
	return toAssetResponse(asset), nil
}

// Update actualiza un activo (campos opcionales).
func (uc *AssetUseCase) Update(id string, in dto.UpdateAssetRequest) (*dto.AssetResponse, error) {
	asset, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		asset.Name = *in.Name
	}
	if in.Location != nil {
		asset.Location = *in.Location
	}
	if in.Status != nil {
		switch *in.Status {
		case entity.AssetStatusActive, entity.AssetStatusMaintenance, entity.AssetStatusDamaged,
			entity.AssetStatusDecommissioned, entity.AssetStatusInStorage:
		default:
			return nil, domain.ErrInvalidInput
		}
		asset.Status = *in.Status
	}
	if in.Model != nil {
		asset.Model = *in.Model
	}
	if in.SerialNumber != nil {
		asset.SerialNumber = *in.SerialNumber
	}
	if in.Vendor != nil {
		asset.Vendor = *in.Vendor
	}
	if in.PurchaseCost != nil {
		asset.PurchaseCost = *in.PurchaseCost
	}
	if in.Department != nil {
		asset.Department = *in.Department
	}
	asset.UpdatedAt = time.Now()
	if err := uc.repo.Update(asset); err != nil {
		return nil, err
	}
	return toAssetResponse(asset), nil
}

// List lista activos; con clientID no vacío filtra por cliente.
func (uc *AssetUseCase) List(clientID string, limit, offset int) (*dto.AssetListResponse, error) {
	var (
		list []*entity.Asset
		err  error
	)
	if clientID != "" {
		list, err = uc.repo.ListByClient(clientID, limit, offset)
	} else {
		list, err = uc.repo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.AssetResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAssetResponse(a))
	}
	return &dto.AssetListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(items)},
	}, nil
}

// Delete elimina un activo por ID.
func (uc *AssetUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toAssetResponse(a *entity.Asset) *dto.AssetResponse {
	return &dto.AssetResponse{
		ID:           a.ID,
		ClientID:     a.ClientID,
		CategoryID:   a.CategoryID,
		Code:         a.Code,
		Name:         a.Name,
		Location:     a.Location,
		Status:       a.Status,
		Model:        a.Model,
		SerialNumber: a.SerialNumber,
		Vendor:       a.Vendor,
		PurchaseCost: a.PurchaseCost,
		Department:   a.Department,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
