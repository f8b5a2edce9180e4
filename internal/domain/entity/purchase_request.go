package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una solicitud de compra (PR).
const (
	PRStatusPending  = "Pending"
	PRStatusApproved = "Approved"
	PRStatusPOIssued = "PO Issued"
	PRStatusRejected = "Rejected"
)

// RequestedItem es un ítem solicitado dentro de una PR.
// InventoryID vacío = compra de algo fuera del catálogo de repuestos.
type RequestedItem struct {
	ID                string
	PurchaseRequestID string
	ItemName          string
	Quantity          int
	EstimatedCost     decimal.Decimal
	InventoryID       string // opcional
}

// PurchaseRequest representa una solicitud de compra pendiente de decisión.
// Pending → Approved|Rejected; Approved → PO Issued al emitir la orden.
type PurchaseRequest struct {
	ID             string
	ClientID       string
	WorkOrderID    string // opcional: orden que motivó la compra
	RequesterName  string
	RequestDate    time.Time
	Status         string // ver constantes PRStatus*
	RequestedItems []RequestedItem
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
