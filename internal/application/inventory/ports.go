package inventory

import (
	"context"

	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza el append-and-recompute atómico
// del libro de stock.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		stockRepo repository.StockTransactionRepository,
	) error) error
}
