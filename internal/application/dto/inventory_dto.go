package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterPartRequest entrada para registrar un repuesto con su stock inicial.
type RegisterPartRequest struct {
	SKU             string          `json:"sku" validate:"required,min=1,max=100"`
	Name            string          `json:"name" validate:"required,min=1,max=200"`
	CategoryID      string          `json:"category_id"`
	Location        string          `json:"location"`
	InitialQuantity int             `json:"initial_quantity" validate:"min=0"`
	MinStockLevel   int             `json:"min_stock_level" validate:"min=0"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	SellingPrice    decimal.Decimal `json:"selling_price"`
	Supplier        string          `json:"supplier"`
	Description     string          `json:"description"`
	Actor           string          `json:"actor"`
}

// RegisterStockTransactionRequest body para POST /inventory/:id/transactions.
type RegisterStockTransactionRequest struct {
	Type      string `json:"type" validate:"required,oneof=IN OUT"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Reference string `json:"reference" validate:"required"`
	Actor     string `json:"actor"`
}

// StockTransactionResponse una entrada del libro de stock.
type StockTransactionResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Reference string    `json:"reference"`
	Actor     string    `json:"actor"`
	CreatedAt time.Time `json:"created_at"`
}

// InventoryItemResponse salida de un repuesto.
type InventoryItemResponse struct {
	ID             string          `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	CategoryID     string          `json:"category_id"`
	Location       string          `json:"location"`
	QuantityOnHand int             `json:"quantity_on_hand"`
	MinStockLevel  int             `json:"min_stock_level"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	Supplier       string          `json:"supplier"`
	Description    string          `json:"description"`
	IsLowStock     bool            `json:"is_low_stock"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// InventoryListResponse lista paginada de repuestos.
type InventoryListResponse struct {
	Items []InventoryItemResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
