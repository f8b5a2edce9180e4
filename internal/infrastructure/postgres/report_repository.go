package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de agregación read-only para dashboard y reportes.
// Siempre opera sobre el pool, nunca dentro de una transacción.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// InventoryValuation devuelve la valuación total del inventario
// (cantidad por costo unitario de cada repuesto).
func (r *ReportRepo) InventoryValuation(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity_on_hand * unit_cost), 0) FROM inventory_items`,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("inventory valuation: %w", err)
	}
	return total, nil
}

// CountLowStock cuenta los repuestos en o por debajo del mínimo.
func (r *ReportRepo) CountLowStock(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM inventory_items WHERE quantity_on_hand <= min_stock_level`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}

// CountOpenWorkOrders cuenta órdenes no completadas.
func (r *ReportRepo) CountOpenWorkOrders(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM work_orders WHERE status <> $1`, entity.WorkOrderCompleted,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count open work orders: %w", err)
	}
	return n, nil
}

// CountPendingInvoices cuenta facturas pendientes de cobro.
func (r *ReportRepo) CountPendingInvoices(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM invoices WHERE status IN ($1, $2)`,
		entity.InvoiceStatusPending, entity.InvoiceStatusOverdue,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count pending invoices: %w", err)
	}
	return n, nil
}

// PipelineMetrics agrega el pipeline comercial en una sola consulta.
func (r *ReportRepo) PipelineMetrics(ctx context.Context) (*repository.PipelineMetrics, error) {
	query := `
		SELECT
			COALESCE(SUM(quote_amount) FILTER (WHERE stage <> $1), 0),
			COUNT(*) FILTER (WHERE stage NOT IN ($1, $2)),
			COUNT(*) FILTER (WHERE stage = $2),
			COUNT(*) FILTER (WHERE stage = $1)
		FROM pipeline_cases`
	var m repository.PipelineMetrics
	err := r.q.QueryRow(ctx, query, entity.StageLost, entity.StageWon).Scan(
		&m.TotalValue, &m.ActiveCount, &m.WonCount, &m.LostCount,
	)
	if err != nil {
		return nil, fmt.Errorf("pipeline metrics: %w", err)
	}
	return &m, nil
}

// StockReportRows devuelve las filas del reporte de inventario ordenadas
// por SKU, con el valor de stock precalculado.
func (r *ReportRepo) StockReportRows(ctx context.Context) ([]repository.StockReportRow, error) {
	query := `
		SELECT sku, name, location, quantity_on_hand, min_stock_level, unit_cost,
		       quantity_on_hand * unit_cost AS stock_value
		FROM inventory_items ORDER BY sku`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("stock report rows: %w", err)
	}
	defer rows.Close()

	var out []repository.StockReportRow
	for rows.Next() {
		var row repository.StockReportRow
		if err := rows.Scan(&row.SKU, &row.Name, &row.Location, &row.QuantityOnHand, &row.MinStockLevel, &row.UnitCost, &row.StockValue); err != nil {
			return nil, fmt.Errorf("scan stock report row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
