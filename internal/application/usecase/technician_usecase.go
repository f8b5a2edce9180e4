package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Mantenix-api/internal/application/dto"
	"github.com/jhoicas/Mantenix-api/internal/domain"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

// TechnicianUseCase casos de uso para técnicos de campo.
type TechnicianUseCase struct {
	repo repository.TechnicianRepository
}

// NewTechnicianUseCase construye el caso de uso.
func NewTechnicianUseCase(repo repository.TechnicianRepository) *TechnicianUseCase {
	return &TechnicianUseCase{repo: repo}
}

// Create registra un técnico interno o subcontratado.
func (uc *TechnicianUseCase) Create(in dto.CreateTechnicianRequest) (*dto.TechnicianResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.TechnicianInternal && in.Type != entity.TechnicianSubcontractor {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	tech := &entity.Technician{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Type:      in.Type,
		Role:      in.Role,
		Phone:     in.Phone,
		Company:   in.Company,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(tech); err != nil {
		return nil, err
	}
	return toTechnicianResponse(tech), nil
}

// GetByID obtiene un técnico por ID.
func (uc *TechnicianUseCase) GetByID(id string) (*dto.TechnicianResponse, error) {
	tech, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tech == nil {
		return nil, domain.ErrNotFound
	}
	return toTechnicianResponse(tech), nil
}

// Update actualiza un técnico (campos opcionales).
func (uc *TechnicianUseCase) Update(id string, in dto.UpdateTechnicianRequest) (*dto.TechnicianResponse, error) {
	tech, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tech == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		tech.Name = *in.Name
	}
	if in.Type != nil {
		if *in.Type != entity.TechnicianInternal && *in.Type != entity.TechnicianSubcontractor {
			return nil, domain.ErrInvalidInput
		}
		tech.Type = *in.Type
	}
	if in.Role != nil {
		tech.Role = *in.Role
	}
	if in.Phone != nil {
		tech.Phone = *in.Phone
	}
	if in.Company != nil {
		tech.Company = *in.Company
	}
	tech.UpdatedAt = time.Now()
	if err := uc.repo.Update(tech); err != nil {
		return nil, err
	}
	return toTechnicianResponse(tech), nil
}

// List lista técnicos con paginación.
func (uc *TechnicianUseCase) List(limit, offset int) (*dto.TechnicianListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TechnicianResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTechnicianResponse(t))
	}
	return &dto.TechnicianListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(items)},
	}, nil
}

// Delete elimina un técnico por ID.
func (uc *TechnicianUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toTechnicianResponse(t *entity.Technician) *dto.TechnicianResponse {
	return &dto.TechnicianResponse{
		ID:        t.ID,
		Name:      t.Name,
		Type:      t.Type,
		Role:      t.Role,
		Phone:     t.Phone,
		Company:   t.Company,
		CreatedAt: t.CreatedAt,
	}
}
