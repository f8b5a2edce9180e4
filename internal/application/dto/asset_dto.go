package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAssetRequest entrada para registrar un activo en el sitio de un cliente.
type CreateAssetRequest struct {
	ClientID     string          `json:"client_id" validate:"required"`
	CategoryID   string          `json:"category_id"`
	Code         string          `json:"code" validate:"required,min=1,max=50"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Location     string          `json:"location"`
	Model        string          `json:"model"`
	SerialNumber string          `json:"serial_number"`
	Vendor       string          `json:"vendor"`
	PurchaseCost decimal.Decimal `json:"purchase_cost"`
	Department   string          `json:"department"`
}

// UpdateAssetRequest entrada para actualizar un activo.
type UpdateAssetRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Location     *string          `json:"location"`
	Status       *string          `json:"status"`
	Model        *string          `json:"model"`
	SerialNumber *string          `json:"serial_number"`
	Vendor       *string          `json:"vendor"`
	PurchaseCost *decimal.Decimal `json:"purchase_cost"`
	Department   *string          `json:"department"`
}

// AssetResponse salida de un activo.
type AssetResponse struct {
	ID           string          `json:"id"`
	ClientID     string          `json:"client_id"`
	CategoryID   string          `json:"category_id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Location     string          `json:"location"`
	Status       string          `json:"status"`
	Model        string          `json:"model"`
	SerialNumber string          `json:"serial_number"`
	Vendor       string          `json:"vendor"`
	PurchaseCost decimal.Decimal `json:"purchase_cost"`
	Department   string          `json:"department"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// AssetListResponse lista paginada de activos.
type AssetListResponse struct {
	Items []AssetResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
