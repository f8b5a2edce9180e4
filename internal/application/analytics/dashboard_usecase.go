// Package analytics contiene las proyecciones de solo lectura: el tablero
// operativo y el reporte de inventario exportable.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mantenix-api/internal/application/dto"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

// StockReportExporter renderiza el reporte de inventario en un formato
// descargable (hoja de cálculo).
type StockReportExporter interface {
	StockReport(rows []repository.StockReportRow, valuation decimal.Decimal) ([]byte, error)
}

// DashboardUseCase compone el tablero operativo: valuación de inventario,
// stock bajo, órdenes abiertas, facturas pendientes y métricas del pipeline.
// Todo es lectura; ningún libro se muta desde aquí.
type DashboardUseCase struct {
	reportRepo repository.ReportRepository
	exporter   StockReportExporter
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(reportRepo repository.ReportRepository, exporter StockReportExporter) *DashboardUseCase {
	return &DashboardUseCase{reportRepo: reportRepo, exporter: exporter}
}

// GetSummary construye el DashboardResponse.
//
// Las cinco consultas corren en paralelo; todas son agregaciones
// independientes sobre tablas distintas.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	type valuationResult struct {
		value decimal.Decimal
		err   error
	}
	type countResult struct {
		n   int
		err error
	}
	type metricsResult struct {
		m   *repository.PipelineMetrics
		err error
	}

	valuationCh := make(chan valuationResult, 1)
	lowStockCh := make(chan countResult, 1)
	openWOCh := make(chan countResult, 1)
	pendingInvCh := make(chan countResult, 1)
	pipelineCh := make(chan metricsResult, 1)

	go func() {
		v, err := uc.reportRepo.InventoryValuation(ctx)
		valuationCh <- valuationResult{v, err}
	}()
	go func() {
		n, err := uc.reportRepo.CountLowStock(ctx)
		lowStockCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.reportRepo.CountOpenWorkOrders(ctx)
		openWOCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.reportRepo.CountPendingInvoices(ctx)
		pendingInvCh <- countResult{n, err}
	}()
	go func() {
		m, err := uc.reportRepo.PipelineMetrics(ctx)
		pipelineCh <- metricsResult{m, err}
	}()

	valuation := <-valuationCh
	lowStock := <-lowStockCh
	openWO := <-openWOCh
	pendingInv := <-pendingInvCh
	pipeline := <-pipelineCh

	if valuation.err != nil {
		return nil, fmt.Errorf("dashboard: valuación de inventario: %w", valuation.err)
	}
	if lowStock.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de stock bajo: %w", lowStock.err)
	}
	if openWO.err != nil {
		return nil, fmt.Errorf("dashboard: órdenes abiertas: %w", openWO.err)
	}
	if pendingInv.err != nil {
		return nil, fmt.Errorf("dashboard: facturas pendientes: %w", pendingInv.err)
	}
	if pipeline.err != nil {
		return nil, fmt.Errorf("dashboard: métricas del pipeline: %w", pipeline.err)
	}

	return &dto.DashboardResponse{
		InventoryValuation: valuation.value.Round(2),
		LowStockCount:      lowStock.n,
		OpenWorkOrders:     openWO.n,
		PendingInvoices:    pendingInv.n,
		Pipeline: dto.PipelineMetricsDTO{
			TotalValue:  pipeline.m.TotalValue.Round(2),
			ActiveCount: pipeline.m.ActiveCount,
			WonCount:    pipeline.m.WonCount,
			WinRatePct:  winRatePct(pipeline.m.WonCount, pipeline.m.LostCount),
		},
	}, nil
}

// GetStockReport genera el reporte de inventario exportable con la valuación
// total al pie.
func (uc *DashboardUseCase) GetStockReport(ctx context.Context) ([]byte, error) {
	rows, err := uc.reportRepo.StockReportRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte de stock: filas: %w", err)
	}
	valuation := decimal.Zero
	for _, r := range rows {
		valuation = valuation.Add(r.StockValue)
	}
	return uc.exporter.StockReport(rows, valuation)
}

// winRatePct tasa de ganados sobre casos cerrados, en porcentaje entero.
func winRatePct(won, lost int) int {
	closed := won + lost
	if closed == 0 {
		return 0
	}
	return won * 100 / closed
}
