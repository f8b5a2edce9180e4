package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un activo.
const (
	AssetStatusActive         = "Active"
	AssetStatusMaintenance    = "Under Maintenance"
	AssetStatusDamaged        = "Damaged"
	AssetStatusDecommissioned = "Decommissioned"
	AssetStatusInStorage      = "In Storage"
)

// Asset representa un activo instalado en el sitio de un cliente
// (equipo HVAC, bomba, planta eléctrica, etc.).
type Asset struct {
	ID           string
	ClientID     string
	CategoryID   string
	Code         string // código único de activo (ej: "AST-CHI-001")
	Name         string
	Location     string
	Status       string // ver constantes AssetStatus*
	Model        string
	SerialNumber string
	Vendor       string
	PurchaseCost decimal.Decimal
	Department   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
