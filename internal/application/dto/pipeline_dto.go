package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCaseRequest entrada para abrir un caso de pipeline (etapa Request).
type CreateCaseRequest struct {
	ClientID    string `json:"client_id" validate:"required"`
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description"`
	Priority    string `json:"priority"` // Low | Medium | High
	Category    string `json:"category"`
	AssetID     string `json:"asset_id"`
}

// ScheduleSurveyRequest body para la transición Request → Survey.
type ScheduleSurveyRequest struct {
	Date         string `json:"date" validate:"required"` // YYYY-MM-DD
	SurveyorName string `json:"surveyor_name" validate:"required"`
	AssetID      string `json:"asset_id"`
}

// SurveyReportRequest body para la transición Survey → Quotation.
type SurveyReportRequest struct {
	RootCause      string `json:"root_cause" validate:"required"`
	ProposedRemedy string `json:"proposed_remedy" validate:"required"`
	PartsNeeded    string `json:"parts_needed"`
}

// AddQuoteLineItemRequest body para agregar una línea a la cotización.
// Seleccionar un repuesto del inventario pre-llena descripción y precio en la
// UI, pero la línea sigue siendo editable: inventory_item_id es trazabilidad.
type AddQuoteLineItemRequest struct {
	Description     string          `json:"description" validate:"required"`
	Quantity        int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	InventoryItemID string          `json:"inventory_item_id"`
}

// MarkLostRequest body para marcar un caso como perdido.
type MarkLostRequest struct {
	Reason string `json:"reason"`
}

// QuoteLineItemResponse una línea de cotización.
type QuoteLineItemResponse struct {
	ID              string          `json:"id"`
	Description     string          `json:"description"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Total           decimal.Decimal `json:"total"`
	InventoryItemID string          `json:"inventory_item_id,omitempty"`
}

// PipelineCaseResponse salida de un caso del pipeline.
type PipelineCaseResponse struct {
	ID                  string                  `json:"id"`
	ClientID            string                  `json:"client_id"`
	Title               string                  `json:"title"`
	Description         string                  `json:"description"`
	Priority            string                  `json:"priority"`
	Category            string                  `json:"category"`
	Stage               string                  `json:"stage"`
	Progress            int                     `json:"progress"` // % de avance del flujo
	AssetID             string                  `json:"asset_id,omitempty"`
	SurveyScheduledDate *time.Time              `json:"survey_scheduled_date,omitempty"`
	SurveyorName        string                  `json:"surveyor_name,omitempty"`
	RootCause           string                  `json:"root_cause,omitempty"`
	ProposedRemedy      string                  `json:"proposed_remedy,omitempty"`
	PartsNeeded         string                  `json:"parts_needed,omitempty"`
	QuoteLineItems      []QuoteLineItemResponse `json:"quote_line_items"`
	QuoteAmount         decimal.Decimal         `json:"quote_amount"`
	QuoteSent           bool                    `json:"quote_sent"`
	ConvertedSOID       string                  `json:"converted_so_id,omitempty"`
	LostReason          string                  `json:"lost_reason,omitempty"`
	CreatedAt           time.Time               `json:"created_at"`
	UpdatedAt           time.Time               `json:"updated_at"`
}

// PipelineListResponse lista paginada de casos.
type PipelineListResponse struct {
	Items []PipelineCaseResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
