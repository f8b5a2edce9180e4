package dto

import "github.com/shopspring/decimal"

// PipelineMetricsDTO proyección de métricas del pipeline comercial.
type PipelineMetricsDTO struct {
	TotalValue  decimal.Decimal `json:"total_value"` // suma de cotizaciones
	ActiveCount int             `json:"active_count"`
	WonCount    int             `json:"won_count"`
	WinRatePct  int             `json:"win_rate_pct"`
}

// DashboardResponse proyección de solo lectura para el tablero.
type DashboardResponse struct {
	InventoryValuation decimal.Decimal    `json:"inventory_valuation"`
	LowStockCount      int                `json:"low_stock_count"`
	OpenWorkOrders     int                `json:"open_work_orders"`
	PendingInvoices    int                `json:"pending_invoices"`
	Pipeline           PipelineMetricsDTO `json:"pipeline"`
}
