package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestedItemDTO ítem de una solicitud de compra.
type RequestedItemDTO struct {
	ItemName      string          `json:"item_name" validate:"required"`
	Quantity      int             `json:"quantity" validate:"required,gt=0"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	InventoryID   string          `json:"inventory_id"`
}

// CreatePurchaseRequestRequest entrada para crear una PR (estado Pending).
type CreatePurchaseRequestRequest struct {
	ClientID      string             `json:"client_id" validate:"required"`
	WorkOrderID   string             `json:"work_order_id"`
	RequesterName string             `json:"requester_name" validate:"required"`
	Items         []RequestedItemDTO `json:"items" validate:"required,min=1,dive"`
}

// DecidePurchaseRequestRequest body para aprobar o rechazar una PR Pending.
type DecidePurchaseRequestRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=Approved Rejected"`
}

// ConvertToOrderRequest body para emitir la PO de una PR aprobada.
type ConvertToOrderRequest struct {
	Vendor string `json:"vendor" validate:"required"`
}

// ReceiveGoodsRequest body para la recepción de mercancía de una PO.
type ReceiveGoodsRequest struct {
	Actor string `json:"actor"`
}

// RequestedItemResponse ítem solicitado.
type RequestedItemResponse struct {
	ID            string          `json:"id"`
	ItemName      string          `json:"item_name"`
	Quantity      int             `json:"quantity"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	InventoryID   string          `json:"inventory_id,omitempty"`
}

// PurchaseRequestResponse salida de una PR.
type PurchaseRequestResponse struct {
	ID             string                  `json:"id"`
	ClientID       string                  `json:"client_id"`
	WorkOrderID    string                  `json:"work_order_id,omitempty"`
	RequesterName  string                  `json:"requester_name"`
	RequestDate    time.Time               `json:"request_date"`
	Status         string                  `json:"status"`
	RequestedItems []RequestedItemResponse `json:"requested_items"`
}

// PurchaseOrderItemResponse línea de una PO.
type PurchaseOrderItemResponse struct {
	ID          string          `json:"id"`
	ItemName    string          `json:"item_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	InventoryID string          `json:"inventory_id,omitempty"`
}

// PurchaseOrderResponse salida de una PO.
type PurchaseOrderResponse struct {
	ID          string                      `json:"id"`
	PONumber    string                      `json:"po_number"`
	PRID        string                      `json:"pr_id"`
	Vendor      string                      `json:"vendor"`
	DateIssued  time.Time                   `json:"date_issued"`
	Status      string                      `json:"status"`
	TotalAmount decimal.Decimal             `json:"total_amount"`
	Items       []PurchaseOrderItemResponse `json:"items"`
}

// PurchaseRequestListResponse lista paginada de PRs.
type PurchaseRequestListResponse struct {
	Items []PurchaseRequestResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}

// PurchaseOrderListResponse lista paginada de POs.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
