package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Mantenix-api/internal/domain"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

const inventoryItemColumns = `id, sku, name, category_id, location, quantity_on_hand, min_stock_level, unit_cost, selling_price, supplier, description, created_at, updated_at`

// InventoryItemRepo implementación de InventoryItemRepository sobre
// PostgreSQL (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

// Create persiste un repuesto nuevo. El SKU es único.
func (r *InventoryItemRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + inventoryItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SKU, item.Name, item.CategoryID, item.Location,
		item.QuantityOnHand, item.MinStockLevel, item.UnitCost, item.SellingPrice,
		item.Supplier, item.Description, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un repuesto por ID.
func (r *InventoryItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE id = $1`
	return r.scanOne(query, id, "get inventory item")
}

// GetBySKU obtiene un repuesto por SKU.
func (r *InventoryItemRepo) GetBySKU(sku string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE sku = $1`
	return r.scanOne(query, sku, "get inventory item by sku")
}

// GetByIDForUpdate obtiene un repuesto bloqueando la fila (SELECT FOR UPDATE)
// para el ciclo leer-ajustar-escribir de quantity_on_hand.
func (r *InventoryItemRepo) GetByIDForUpdate(id string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id, "get inventory item for update")
}

// Update actualiza los datos maestros del repuesto. No toca quantity_on_hand:
// eso es exclusivo de UpdateQuantity dentro de una transacción.
func (r *InventoryItemRepo) Update(item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $2, category_id = $3, location = $4, min_stock_level = $5,
		    unit_cost = $6, selling_price = $7, supplier = $8, description = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.CategoryID, item.Location, item.MinStockLevel,
		item.UnitCost, item.SellingPrice, item.Supplier, item.Description, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	return nil
}

// UpdateQuantity fija quantity_on_hand tras aplicar una transacción de stock.
func (r *InventoryItemRepo) UpdateQuantity(id string, quantityOnHand int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE inventory_items SET quantity_on_hand = $2, updated_at = now() WHERE id = $1`,
		id, quantityOnHand,
	)
	if err != nil {
		return fmt.Errorf("update inventory quantity: %w", err)
	}
	return nil
}

// List lista repuestos con paginación.
func (r *InventoryItemRepo) List(limit, offset int) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// ListLowStock devuelve los repuestos en o por debajo del mínimo configurado.
func (r *InventoryItemRepo) ListLowStock() ([]*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE quantity_on_hand <= min_stock_level ORDER BY sku`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list low stock items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// Delete elimina un repuesto por ID.
func (r *InventoryItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	return nil
}

func (r *InventoryItemRepo) scanOne(query, arg, op string) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&it.ID, &it.SKU, &it.Name, &it.CategoryID, &it.Location,
		&it.QuantityOnHand, &it.MinStockLevel, &it.UnitCost, &it.SellingPrice,
		&it.Supplier, &it.Description, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &it, nil
}

func scanItems(rows pgx.Rows) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for rows.Next() {
		var it entity.InventoryItem
		if err := rows.Scan(
			&it.ID, &it.SKU, &it.Name, &it.CategoryID, &it.Location,
			&it.QuantityOnHand, &it.MinStockLevel, &it.UnitCost, &it.SellingPrice,
			&it.Supplier, &it.Description, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

// StockTransactionRepo implementación del libro append-only de transacciones
// de stock. No expone Update ni Delete.
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

// Create agrega una entrada al libro.
func (r *StockTransactionRepo) Create(tx *entity.StockTransaction) error {
	query := `
		INSERT INTO stock_transactions (id, inventory_item_id, type, quantity, reference, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.InventoryItemID, tx.Type, tx.Quantity, tx.Reference, tx.Actor, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock transaction: %w", err)
	}
	return nil
}

// ListByItem devuelve el historial de un repuesto, más reciente primero.
func (r *StockTransactionRepo) ListByItem(inventoryItemID string, limit, offset int) ([]*entity.StockTransaction, error) {
	query := `
		SELECT id, inventory_item_id, type, quantity, reference, actor, created_at
		FROM stock_transactions WHERE inventory_item_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, inventoryItemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock transactions: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockTransaction
	for rows.Next() {
		var tx entity.StockTransaction
		if err := rows.Scan(&tx.ID, &tx.InventoryItemID, &tx.Type, &tx.Quantity, &tx.Reference, &tx.Actor, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock transaction: %w", err)
		}
		out = append(out, &tx)
	}
	return out, rows.Err()
}
