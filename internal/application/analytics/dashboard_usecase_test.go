package analytics

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

type fakeReportRepo struct {
	valuation decimal.Decimal
	lowStock  int
	openWO    int
	pending   int
	metrics   repository.PipelineMetrics
	rows      []repository.StockReportRow
}

func (f *fakeReportRepo) InventoryValuation(context.Context) (decimal.Decimal, error) {
	return f.valuation, nil
}
func (f *fakeReportRepo) CountLowStock(context.Context) (int, error)        { return f.lowStock, nil }
func (f *fakeReportRepo) CountOpenWorkOrders(context.Context) (int, error)  { return f.openWO, nil }
func (f *fakeReportRepo) CountPendingInvoices(context.Context) (int, error) { return f.pending, nil }
func (f *fakeReportRepo) PipelineMetrics(context.Context) (*repository.PipelineMetrics, error) {
	m := f.metrics
	return &m, nil
}
func (f *fakeReportRepo) StockReportRows(context.Context) ([]repository.StockReportRow, error) {
	return f.rows, nil
}

type fakeExporter struct {
	gotRows      []repository.StockReportRow
	gotValuation decimal.Decimal
}

func (f *fakeExporter) StockReport(rows []repository.StockReportRow, valuation decimal.Decimal) ([]byte, error) {
	f.gotRows = rows
	f.gotValuation = valuation
	return []byte("xlsx"), nil
}

func TestGetSummary(t *testing.T) {
	repo := &fakeReportRepo{
		valuation: decimal.NewFromInt(12500),
		lowStock:  3,
		openWO:    7,
		pending:   2,
		metrics: repository.PipelineMetrics{
			TotalValue:  decimal.NewFromInt(48000),
			ActiveCount: 5,
			WonCount:    3,
			LostCount:   1,
		},
	}
	uc := NewDashboardUseCase(repo, &fakeExporter{})

	got, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.True(t, got.InventoryValuation.Equal(decimal.NewFromInt(12500)))
	assert.Equal(t, 3, got.LowStockCount)
	assert.Equal(t, 7, got.OpenWorkOrders)
	assert.Equal(t, 2, got.PendingInvoices)
	assert.Equal(t, 5, got.Pipeline.ActiveCount)
	// 3 ganados de 4 cerrados
	assert.Equal(t, 75, got.Pipeline.WinRatePct)
}

func TestGetSummary_SinCasosCerrados(t *testing.T) {
	repo := &fakeReportRepo{valuation: decimal.Zero}
	uc := NewDashboardUseCase(repo, &fakeExporter{})

	got, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, got.Pipeline.WinRatePct)
}

func TestGetStockReport_ValuacionTotal(t *testing.T) {
	repo := &fakeReportRepo{
		rows: []repository.StockReportRow{
			{SKU: "FLT-001", QuantityOnHand: 10, UnitCost: decimal.NewFromInt(15), StockValue: decimal.NewFromInt(150)},
			{SKU: "BLT-002", QuantityOnHand: 4, UnitCost: decimal.NewFromInt(25), StockValue: decimal.NewFromInt(100)},
		},
	}
	exp := &fakeExporter{}
	uc := NewDashboardUseCase(repo, exp)

	out, err := uc.GetStockReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), out)
	assert.Len(t, exp.gotRows, 2)
	assert.True(t, exp.gotValuation.Equal(decimal.NewFromInt(250)))
}
