package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	InvoiceStatusDraft   = "Draft"
	InvoiceStatusPending = "Pending"
	InvoiceStatusPaid    = "Paid"
	InvoiceStatusOverdue = "Overdue"
)

// Plazo de pago por política: vencimiento = emisión + 30 días.
const InvoiceDueDays = 30

// InvoiceItem es una línea descriptiva de la factura.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	Description string
	Amount      decimal.Decimal
}

// Invoice representa la cabecera de una factura. Se compone a partir del
// estado de pipeline/órdenes/compras y no muta esos libros.
type Invoice struct {
	ID            string
	InvoiceNumber string // N° visible, ej: "FAC-2024-103"
	ClientID      string
	DateIssued    time.Time
	DueDate       time.Time
	Amount        decimal.Decimal
	Status        string // ver constantes InvoiceStatus*
	Items         []InvoiceItem
	WorkOrderRef  string // opcional
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RecalcAmount recalcula Amount como la suma de las líneas.
func (inv *Invoice) RecalcAmount() {
	sum := decimal.Zero
	for _, it := range inv.Items {
		sum = sum.Add(it.Amount)
	}
	inv.Amount = sum
}
