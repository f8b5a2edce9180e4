package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Mantenix-api/internal/application/dto"
	"github.com/jhoicas/Mantenix-api/internal/domain"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

// ClientUseCase casos de uso CRUD para clientes/sitios administrados.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crea un nuevo cliente.
func (uc *ClientUseCase) Create(in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	client := &entity.Client{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Type:          in.Type,
		Location:      in.Location,
		ContactPerson: in.ContactPerson,
		ContactPhone:  in.ContactPhone,
		Description:   in.Description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID obtiene un cliente por ID.
func (uc *ClientUseCase) GetByID(id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(client), nil
}

// Update actualiza un cliente (campos opcionales).
func (uc *ClientUseCase) Update(id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		client.Name = *in.Name
	}
	if in.Type != nil {
		client.Type = *in.Type
	}
	if in.Location != nil {
		client.Location = *in.Location
	}
	if in.ContactPerson != nil {
		client.ContactPerson = *in.ContactPerson
	}
	if in.ContactPhone != nil {
		client.ContactPhone = *in.ContactPhone
	}
	if in.Description != nil {
		client.Description = *in.Description
	}
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// List lista clientes con paginación.
func (uc *ClientUseCase) List(limit, offset int) (*dto.ClientListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return &dto.ClientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(items)},
	}, nil
}

// Delete elimina un cliente por ID.
func (uc *ClientUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:            c.ID,
		Name:          c.Name,
		Type:          c.Type,
		Location:      c.Location,
		ContactPerson: c.ContactPerson,
		ContactPhone:  c.ContactPhone,
		Description:   c.Description,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
