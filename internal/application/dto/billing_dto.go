package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItemDTO línea descriptiva de una factura.
type InvoiceItemDTO struct {
	Description string          `json:"description" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
}

// CreateInvoiceRequest entrada para componer una factura. El monto total se
// deriva de las líneas; el caller nunca lo envía.
type CreateInvoiceRequest struct {
	ClientID     string           `json:"client_id" validate:"required"`
	Items        []InvoiceItemDTO `json:"items" validate:"required,min=1,dive"`
	WorkOrderRef string           `json:"work_order_ref"`
}

// SetInvoiceStatusRequest body para cambiar el estado de cobro.
type SetInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Draft Pending Paid Overdue"`
}

// InvoiceItemResponse línea de factura.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse salida de una factura.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	InvoiceNumber string                `json:"invoice_number"`
	ClientID      string                `json:"client_id"`
	DateIssued    time.Time             `json:"date_issued"`
	DueDate       time.Time             `json:"due_date"`
	Amount        decimal.Decimal       `json:"amount"`
	Status        string                `json:"status"`
	Items         []InvoiceItemResponse `json:"items"`
	WorkOrderRef  string                `json:"work_order_ref,omitempty"`
}

// InvoiceListResponse lista paginada de facturas.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
