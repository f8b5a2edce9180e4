package procurement

import (
	"context"
	"time"

	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

// TxRunner ejecuta las mutaciones de compras en una transacción de BD. La
// recepción de mercancía necesita además los repositorios de inventario para
// acreditar stock de forma atómica con el cambio de estado de la PO.
type TxRunner interface {
	RunProcurement(ctx context.Context, fn func(
		prRepo repository.PurchaseRequestRepository,
		poRepo repository.PurchaseOrderRepository,
		itemRepo repository.InventoryItemRepository,
		stockRepo repository.StockTransactionRepository,
	) error) error
}

// StockRecorder registra un movimiento de stock usando los repositorios de la
// transacción del caller. Lo implementa el caso de uso de inventario.
type StockRecorder interface {
	RegisterInTx(
		itemRepo repository.InventoryItemRepository,
		stockRepo repository.StockTransactionRepository,
		itemID, txType string,
		quantity int,
		reference, actor string,
		now time.Time,
	) (*entity.InventoryItem, error)
}
