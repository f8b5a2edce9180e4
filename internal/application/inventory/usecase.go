package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mantenix-api/internal/application/dto"
	"github.com/jhoicas/Mantenix-api/internal/domain"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

// Actor por defecto cuando el caller no identifica quién opera.
const defaultActor = "Admin"

// UseCase gestiona el libro de stock: registro de repuestos, transacciones
// IN/OUT y consultas. Toda mutación de QuantityOnHand pasa por una
// transacción de BD con bloqueo de fila; el campo nunca se edita directo.
type UseCase struct {
	txRunner  TxRunner
	itemRepo  repository.InventoryItemRepository
	stockRepo repository.StockTransactionRepository
}

// NewUseCase construye el caso de uso. itemRepo/stockRepo van atados al pool
// (lecturas); las escrituras usan los repos que entrega txRunner.
func NewUseCase(txRunner TxRunner, itemRepo repository.InventoryItemRepository, stockRepo repository.StockTransactionRepository) *UseCase {
	return &UseCase{txRunner: txRunner, itemRepo: itemRepo, stockRepo: stockRepo}
}

// RegisterPart registra un repuesto con su transacción inicial de stock
// (tipo IN, referencia "Initial Stock"). Cantidad inicial cero no genera
// transacción: el libro solo admite cantidades positivas.
func (uc *UseCase) RegisterPart(ctx context.Context, in dto.RegisterPartRequest) (*dto.InventoryItemResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialQuantity < 0 || in.MinStockLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost.LessThan(decimal.Zero) || in.SellingPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if existing, _ := uc.itemRepo.GetBySKU(in.SKU); existing != nil {
		return nil, domain.ErrDuplicate
	}
	actor := in.Actor
	if actor == "" {
		actor = defaultActor
	}

	now := time.Now()
	item := &entity.InventoryItem{
		ID:             uuid.New().String(),
		SKU:            in.SKU,
		Name:           in.Name,
		CategoryID:     in.CategoryID,
		Location:       in.Location,
		QuantityOnHand: 0,
		MinStockLevel:  in.MinStockLevel,
		UnitCost:       in.UnitCost,
		SellingPrice:   in.SellingPrice,
		Supplier:       in.Supplier,
		Description:    in.Description,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		stockRepo repository.StockTransactionRepository,
	) error {
		if err := itemRepo.Create(item); err != nil {
			return err
		}
		if in.InitialQuantity == 0 {
			return nil
		}
		tx := &entity.StockTransaction{
			ID:              uuid.New().String(),
			InventoryItemID: item.ID,
			Type:            entity.TransactionTypeIN,
			Quantity:        in.InitialQuantity,
			Reference:       entity.InitialStockReference,
			Actor:           actor,
			CreatedAt:       now,
		}
		if err := stockRepo.Create(tx); err != nil {
			return err
		}
		item.Apply(*tx)
		return itemRepo.UpdateQuantity(item.ID, item.QuantityOnHand)
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// RegisterTransaction agrega una transacción IN/OUT al libro de un repuesto y
// ajusta QuantityOnHand en la misma transacción de BD (SELECT FOR UPDATE).
// El stock puede quedar negativo (backorder permitido): el caller debe mirar
// is_low_stock antes de actuar, no este método.
func (uc *UseCase) RegisterTransaction(ctx context.Context, itemID string, in dto.RegisterStockTransactionRequest) (*dto.InventoryItemResponse, error) {
	if in.Type != entity.TransactionTypeIN && in.Type != entity.TransactionTypeOUT {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 || in.Reference == "" {
		return nil, domain.ErrInvalidInput
	}
	actor := in.Actor
	if actor == "" {
		actor = defaultActor
	}

	var updated *entity.InventoryItem
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		stockRepo repository.StockTransactionRepository,
	) error {
		item, err := uc.RegisterInTx(itemRepo, stockRepo, itemID, in.Type, in.Quantity, in.Reference, actor, time.Now())
		if err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(updated), nil
}

// RegisterInTx registra una transacción de stock usando los repositorios del
// caller (misma transacción de BD). Lo usan órdenes de servicio (OUT por
// consumo de repuestos) y compras (IN por recepción de mercancía) para que el
// descuento/acreditación sea atómico con su propia escritura.
func (uc *UseCase) RegisterInTx(
	itemRepo repository.InventoryItemRepository,
	stockRepo repository.StockTransactionRepository,
	itemID, txType string,
	quantity int,
	reference, actor string,
	now time.Time,
) (*entity.InventoryItem, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	item, err := itemRepo.GetByIDForUpdate(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	tx := &entity.StockTransaction{
		ID:              uuid.New().String(),
		InventoryItemID: itemID,
		Type:            txType,
		Quantity:        quantity,
		Reference:       reference,
		Actor:           actor,
		CreatedAt:       now,
	}
	if err := stockRepo.Create(tx); err != nil {
		return nil, err
	}
	item.Apply(*tx)
	if err := itemRepo.UpdateQuantity(item.ID, item.QuantityOnHand); err != nil {
		return nil, err
	}
	return item, nil
}

// GetByID obtiene un repuesto por ID.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.InventoryItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// List lista repuestos con paginación.
func (uc *UseCase) List(ctx context.Context, limit, offset int) (*dto.InventoryListResponse, error) {
	items, err := uc.itemRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.InventoryListResponse{
		Items: make([]dto.InventoryItemResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(items)},
	}
	for _, it := range items {
		out.Items = append(out.Items, *toItemResponse(it))
	}
	return out, nil
}

// ListLowStock devuelve los repuestos en o por debajo del mínimo configurado
// (la señal para disparar una solicitud de compra).
func (uc *UseCase) ListLowStock(ctx context.Context) ([]dto.InventoryItemResponse, error) {
	items, err := uc.itemRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *toItemResponse(it))
	}
	return out, nil
}

// ListTransactions devuelve el historial de transacciones de un repuesto,
// ordenado por fecha.
func (uc *UseCase) ListTransactions(ctx context.Context, itemID string, limit, offset int) ([]dto.StockTransactionResponse, error) {
	if item, err := uc.itemRepo.GetByID(itemID); err != nil {
		return nil, err
	} else if item == nil {
		return nil, domain.ErrNotFound
	}
	txs, err := uc.stockRepo.ListByItem(itemID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockTransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, dto.StockTransactionResponse{
			ID:        tx.ID,
			Type:      tx.Type,
			Quantity:  tx.Quantity,
			Reference: tx.Reference,
			Actor:     tx.Actor,
			CreatedAt: tx.CreatedAt,
		})
	}
	return out, nil
}

func toItemResponse(item *entity.InventoryItem) *dto.InventoryItemResponse {
	return &dto.InventoryItemResponse{
		ID:             item.ID,
		SKU:            item.SKU,
		Name:           item.Name,
		CategoryID:     item.CategoryID,
		Location:       item.Location,
		QuantityOnHand: item.QuantityOnHand,
		MinStockLevel:  item.MinStockLevel,
		UnitCost:       item.UnitCost,
		SellingPrice:   item.SellingPrice,
		Supplier:       item.Supplier,
		Description:    item.Description,
		IsLowStock:     item.IsLowStock(),
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}
