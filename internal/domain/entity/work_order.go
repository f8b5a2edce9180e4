package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de servicio. El operador puede reasignar el estado
// libremente (la progresión estricta no se fuerza).
const (
	WorkOrderOpen       = "Open"
	WorkOrderInProgress = "In Progress"
	WorkOrderReview     = "Review"
	WorkOrderCompleted  = "Completed"
)

// Task es un ítem del checklist de ejecución de una orden de servicio.
type Task struct {
	ID          string
	WorkOrderID string
	Description string
	IsCompleted bool
}

// PartUsage registra un repuesto consumido por la orden.
// InventoryItemID vacío = entrada manual (repuesto fuera de inventario).
// InventoryDeducted marca que la salida de stock ya se registró: el descuento
// ocurre exactamente una vez por línea, y al eliminar una línea descontada se
// emite una transacción IN compensatoria.
type PartUsage struct {
	ID                string
	WorkOrderID       string
	InventoryItemID   string // opcional
	PartName          string
	Quantity          int
	Cost              decimal.Decimal // costo unitario capturado al momento del registro
	InventoryDeducted bool
}

// WorkOrder representa una orden de servicio (SO) para ejecución en campo.
// Puede nacer directa o por conversión de un PipelineCase ganado.
type WorkOrder struct {
	ID                   string
	Number               string // N° visible, ej: "SO-493021"
	Title                string
	ClientID             string
	AssetID              string
	AssetName            string
	Priority             string
	Status               string // ver constantes WorkOrder*
	Description          string
	AssignedTechnicianID string
	PipelineCaseID       string // opcional: caso que originó la orden

	Tasks     []Task
	PartsUsed []PartUsage
	Images    []string // referencias opacas a blobs (URL o clave de storage)

	CreatedDate   time.Time
	StartDate     *time.Time
	DueDate       *time.Time
	CompletedDate *time.Time
	UpdatedAt     time.Time
}

// PartsCost devuelve el costo total de repuestos consumidos (qty * costo capturado).
func (w *WorkOrder) PartsCost() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range w.PartsUsed {
		sum = sum.Add(p.Cost.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	return sum
}
