package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Etapas del pipeline comercial. Request → Survey → Quotation → Won es lineal
// y sin retrocesos; Lost es salida desde cualquier etapa no terminal.
const (
	StageRequest   = "Request"
	StageSurvey    = "Survey"
	StageQuotation = "Quotation"
	StageWon       = "Won"
	StageLost      = "Lost"
)

// Prioridades compartidas por casos de pipeline y órdenes de servicio.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// QuoteLineItem es una línea de la cotización de un caso.
// Invariante: Total == Quantity * UnitPrice.
// InventoryItemID es solo trazabilidad del repuesto que pre-llenó la línea;
// la línea sigue siendo libremente editable y no ata precio al inventario.
type QuoteLineItem struct {
	ID              string
	PipelineCaseID  string
	InventoryItemID string // opcional
	Description     string
	Quantity        int
	UnitPrice       decimal.Decimal
	Total           decimal.Decimal
}

// PipelineCase representa una solicitud de servicio de un cliente a lo largo
// del ciclo comercial Request/Survey/Quotation/Won.
type PipelineCase struct {
	ID          string
	ClientID    string
	Title       string
	Description string
	Priority    string
	Category    string // ej: "HVAC", "Fire Protection"
	Stage       string // ver constantes Stage*
	AssetID     string // opcional

	// Etapa Survey
	SurveyScheduledDate *time.Time
	SurveyorName        string
	RootCause           string
	ProposedRemedy      string
	PartsNeeded         string

	// Etapa Quotation
	QuoteLineItems []QuoteLineItem
	QuoteAmount    decimal.Decimal
	QuoteSent      bool

	// Conversión; se asigna exactamente una vez
	ConvertedSOID string

	LostReason string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsTerminal indica si el caso ya no admite transiciones.
func (p *PipelineCase) IsTerminal() bool {
	return p.Stage == StageWon || p.Stage == StageLost
}

// RecalcQuoteAmount recalcula QuoteAmount como la suma de los totales de línea.
// Debe invocarse en cada alta/baja de línea; los callers nunca calculan el
// total por su cuenta.
func (p *PipelineCase) RecalcQuoteAmount() {
	sum := decimal.Zero
	for _, li := range p.QuoteLineItems {
		sum = sum.Add(li.Total)
	}
	p.QuoteAmount = sum
}
