package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra (PO).
const (
	POStatusOrdered   = "Ordered"
	POStatusReceived  = "Received"
	POStatusCancelled = "Cancelled"
)

// PurchaseOrderItem es una línea priceada de la orden de compra.
// Invariante: Total == Quantity * UnitPrice.
type PurchaseOrderItem struct {
	ID              string
	PurchaseOrderID string
	ItemName        string
	Quantity        int
	UnitPrice       decimal.Decimal
	Total           decimal.Decimal
	InventoryID     string // opcional; si está, la recepción acredita stock
}

// PurchaseOrder representa la orden de compra emitida a partir de una PR
// aprobada (relación 1:1). Al recibirse, cada ítem ligado a inventario
// genera una transacción IN referenciada por PONumber.
type PurchaseOrder struct {
	ID          string
	PONumber    string // N° visible, ej: "PO-2024-4831"
	PRID        string
	Vendor      string
	DateIssued  time.Time
	Status      string // ver constantes POStatus*
	TotalAmount decimal.Decimal
	Items       []PurchaseOrderItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecalcTotal recalcula TotalAmount como la suma de los totales de línea.
func (po *PurchaseOrder) RecalcTotal() {
	sum := decimal.Zero
	for _, it := range po.Items {
		sum = sum.Add(it.Total)
	}
	po.TotalAmount = sum
}
