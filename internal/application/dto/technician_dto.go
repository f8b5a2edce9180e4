package dto

import "time"

// CreateTechnicianRequest entrada para registrar un técnico.
type CreateTechnicianRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Type    string `json:"type" validate:"required"` // Internal | Subcontractor
	Role    string `json:"role"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

// UpdateTechnicianRequest entrada para actualizar un técnico (campos opcionales).
type UpdateTechnicianRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Type    *string `json:"type"`
	Role    *string `json:"role"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
}

// TechnicianResponse salida de un técnico.
type TechnicianResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TechnicianListResponse lista paginada de técnicos.
type TechnicianListResponse struct {
	Items []TechnicianResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
