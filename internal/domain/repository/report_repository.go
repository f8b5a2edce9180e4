package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// PipelineMetrics agregados del pipeline comercial.
type PipelineMetrics struct {
	TotalValue  decimal.Decimal // suma de cotizaciones de casos no perdidos
	ActiveCount int             // casos en etapas no terminales
	WonCount    int
	LostCount   int
}

// StockReportRow fila del reporte de inventario.
type StockReportRow struct {
	SKU            string
	Name           string
	Location       string
	QuantityOnHand int
	MinStockLevel  int
	UnitCost       decimal.Decimal
	StockValue     decimal.Decimal
}

// ReportRepository consultas read-only de agregación para dashboard y
// reportes. No participa en transacciones.
type ReportRepository interface {
	InventoryValuation(ctx context.Context) (decimal.Decimal, error)
	CountLowStock(ctx context.Context) (int, error)
	CountOpenWorkOrders(ctx context.Context) (int, error)
	CountPendingInvoices(ctx context.Context) (int, error)
	PipelineMetrics(ctx context.Context) (*PipelineMetrics, error)
	StockReportRows(ctx context.Context) ([]StockReportRow, error)
}
