package repository

import "github.com/jhoicas/Mantenix-api/internal/domain/entity"

// InventoryItemRepository define el puerto de persistencia para repuestos.
// Usado dentro de transacciones para garantizar consistencia del stock.
type InventoryItemRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	GetBySKU(sku string) (*entity.InventoryItem, error)
	// GetByIDForUpdate bloquea la fila del repuesto (SELECT FOR UPDATE) para
	// el ciclo leer-ajustar-escribir de QuantityOnHand.
	GetByIDForUpdate(id string) (*entity.InventoryItem, error)
	Update(item *entity.InventoryItem) error
	UpdateQuantity(id string, quantityOnHand int) error
	List(limit, offset int) ([]*entity.InventoryItem, error)
	ListLowStock() ([]*entity.InventoryItem, error)
	Delete(id string) error
}

// StockTransactionRepository define el puerto para el libro append-only de
// transacciones de stock. No hay Update ni Delete: las entradas son inmutables.
type StockTransactionRepository interface {
	Create(tx *entity.StockTransaction) error
	ListByItem(inventoryItemID string, limit, offset int) ([]*entity.StockTransaction, error)
}
