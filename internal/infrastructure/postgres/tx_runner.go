package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Mantenix-api/internal/application/inventory"
	"github.com/jhoicas/Mantenix-api/internal/application/pipeline"
	"github.com/jhoicas/Mantenix-api/internal/application/procurement"
	"github.com/jhoicas/Mantenix-api/internal/application/workorder"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner   = (*TxRunner)(nil)
	_ pipeline.TxRunner    = (*TxRunner)(nil)
	_ workorder.TxRunner   = (*TxRunner)(nil)
	_ procurement.TxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, entregando
// repositorios atados a la tx. Cada método cubre el conjunto de repos que su
// caso de uso necesita mutar atómicamente.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos del libro de stock.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	stockRepo repository.StockTransactionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInventoryItemRepository(tx), NewStockTransactionRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPipeline inicia una transacción con el repo de casos del pipeline.
func (r *TxRunner) RunPipeline(ctx context.Context, fn func(
	caseRepo repository.PipelineCaseRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewPipelineCaseRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunConversion inicia una transacción con casos y órdenes de servicio
// (conversión Won → SO).
func (r *TxRunner) RunConversion(ctx context.Context, fn func(
	caseRepo repository.PipelineCaseRepository,
	woRepo repository.WorkOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewPipelineCaseRepository(tx), NewWorkOrderRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunWorkOrder inicia una transacción con órdenes de servicio e inventario
// (consumo de repuestos con salida OUT atómica).
func (r *TxRunner) RunWorkOrder(ctx context.Context, fn func(
	woRepo repository.WorkOrderRepository,
	itemRepo repository.InventoryItemRepository,
	stockRepo repository.StockTransactionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewWorkOrderRepository(tx), NewInventoryItemRepository(tx), NewStockTransactionRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunProcurement inicia una transacción con PRs, POs e inventario
// (recepción de mercancía con acreditación IN atómica).
func (r *TxRunner) RunProcurement(ctx context.Context, fn func(
	prRepo repository.PurchaseRequestRepository,
	poRepo repository.PurchaseOrderRepository,
	itemRepo repository.InventoryItemRepository,
	stockRepo repository.StockTransactionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewPurchaseRequestRepository(tx),
		NewPurchaseOrderRepository(tx),
		NewInventoryItemRepository(tx),
		NewStockTransactionRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
