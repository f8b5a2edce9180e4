package dto

import "time"

// CreateClientRequest entrada para crear un cliente/sitio.
type CreateClientRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=200"`
	Type          string `json:"type"`
	Location      string `json:"location"`
	ContactPerson string `json:"contact_person"`
	ContactPhone  string `json:"contact_phone"`
	Description   string `json:"description"`
}

// UpdateClientRequest entrada para actualizar un cliente (campos opcionales).
type UpdateClientRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=200"`
	Type          *string `json:"type"`
	Location      *string `json:"location"`
	ContactPerson *string `json:"contact_person"`
	ContactPhone  *string `json:"contact_phone"`
	Description   *string `json:"description"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	Location      string    `json:"location"`
	ContactPerson string    `json:"contact_person"`
	ContactPhone  string    `json:"contact_phone"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ClientListResponse lista paginada de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
