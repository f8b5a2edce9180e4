package workorder

import (
	"context"
	"time"

	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

// TxRunner ejecuta las mutaciones de órdenes de servicio en una transacción de
// BD. Entrega también los repositorios de inventario para que el consumo de
// repuestos y su salida de stock sean atómicos.
type TxRunner interface {
	RunWorkOrder(ctx context.Context, fn func(
		woRepo repository.WorkOrderRepository,
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
