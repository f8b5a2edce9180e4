package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateWorkOrderRequest entrada para crear una orden de servicio directa
// (sin pasar por el pipeline).
type CreateWorkOrderRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	ClientID    string     `json:"client_id" validate:"required"`
	AssetID     string     `json:"asset_id"`
	Priority    string     `json:"priority"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	DueDate     *time.Time `json:"due_date"`
}

// AssignTechnicianRequest body para asignar un técnico.
type AssignTechnicianRequest struct {
	TechnicianID string `json:"technician_id" validate:"required"`
}

// AddTaskRequest body para agregar una tarea al checklist.
type AddTaskRequest struct {
	Description string `json:"description" validate:"required"`
}

// AddPartUsageRequest body para registrar un repuesto consumido.
// Con inventory_item_id el costo se captura del inventario al momento del
// registro y se descuenta stock; sin él es una entrada manual.
type AddPartUsageRequest struct {
	InventoryItemID string          `json:"inventory_item_id"`
	PartName        string          `json:"part_name"`
	Quantity        int             `json:"quantity" validate:"required,gt=0"`
	Cost            decimal.Decimal `json:"cost"` // solo entradas manuales
	Actor           string          `json:"actor"`
}

// AttachImageRequest body para adjuntar una referencia de imagen (URL o clave
// de storage; el blob en sí no pasa por esta API).
type AttachImageRequest struct {
	ImageRef string `json:"image_ref" validate:"required"`
}

// SetWorkOrderStatusRequest body para reasignar el estado.
type SetWorkOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Open 'In Progress' Review Completed"`
}

// TaskResponse una tarea del checklist.
type TaskResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	IsCompleted bool   `json:"is_completed"`
}

// PartUsageResponse un repuesto consumido.
type PartUsageResponse struct {
	ID                string          `json:"id"`
	InventoryItemID   string          `json:"inventory_item_id,omitempty"`
	PartName          string          `json:"part_name"`
	Quantity          int             `json:"quantity"`
	Cost              decimal.Decimal `json:"cost"`
	InventoryDeducted bool            `json:"inventory_deducted"`
}

// WorkOrderResponse salida de una orden de servicio.
type WorkOrderResponse struct {
	ID                   string              `json:"id"`
	Number               string              `json:"number"`
	Title                string              `json:"title"`
	ClientID             string              `json:"client_id"`
	AssetID              string              `json:"asset_id,omitempty"`
	AssetName            string              `json:"asset_name,omitempty"`
	Priority             string              `json:"priority"`
	Status               string              `json:"status"`
	Description          string              `json:"description"`
	AssignedTechnicianID string              `json:"assigned_technician_id,omitempty"`
	PipelineCaseID       string              `json:"pipeline_case_id,omitempty"`
	Tasks                []TaskResponse      `json:"tasks"`
	PartsUsed            []PartUsageResponse `json:"parts_used"`
	Images               []string            `json:"images"`
	PartsCost            decimal.Decimal     `json:"parts_cost"`
	CreatedDate          time.Time           `json:"created_date"`
	StartDate            *time.Time          `json:"start_date,omitempty"`
	DueDate              *time.Time          `json:"due_date,omitempty"`
	CompletedDate        *time.Time          `json:"completed_date,omitempty"`
}

// WorkOrderListResponse lista paginada de órdenes.
type WorkOrderListResponse struct {
	Items []WorkOrderResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
