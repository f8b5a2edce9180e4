package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mantenix-api/internal/application/dto"
	"github.com/jhoicas/Mantenix-api/internal/domain"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

// Repositorios en memoria para probar los casos de uso sin BD.

type fakeItemRepo struct {
	items map[string]*entity.InventoryItem
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]*entity.InventoryItem)}
}

func (f *fakeItemRepo) Create(item *entity.InventoryItem) error {
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (f *fakeItemRepo) GetBySKU(sku string) (*entity.InventoryItem, error) {
	for _, it := range f.items {
		if it.SKU == sku {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeItemRepo) GetByIDForUpdate(id string) (*entity.InventoryItem, error) {
	return f.GetByID(id)
}

func (f *fakeItemRepo) Update(item *entity.InventoryItem) error {
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeItemRepo) UpdateQuantity(id string, quantityOnHand int) error {
	it, ok := f.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.QuantityOnHand = quantityOnHand
	return nil
}

func (f *fakeItemRepo) List(limit, offset int) ([]*entity.InventoryItem, error) {
	out := make([]*entity.InventoryItem, 0, len(f.items))
	for _, it := range f.items {
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeItemRepo) ListLowStock() ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range f.items {
		if it.IsLowStock() {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeItemRepo) Delete(id string) error {
	delete(f.items, id)
	return nil
}

type fakeStockRepo struct {
	txs []*entity.StockTransaction
}

func (f *fakeStockRepo) Create(tx *entity.StockTransaction) error {
	cp := *tx
	f.txs = append(f.txs, &cp)
	return nil
}

func (f *fakeStockRepo) ListByItem(itemID string, limit, offset int) ([]*entity.StockTransaction, error) {
	var out []*entity.StockTransaction
	for _, tx := range f.txs {
		if tx.InventoryItemID == itemID {
			out = append(out, tx)
		}
	}
	return out, nil
}

type fakeTxRunner struct {
	itemRepo  *fakeItemRepo
	stockRepo *fakeStockRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(repository.InventoryItemRepository, repository.StockTransactionRepository) error) error {
	return fn(f.itemRepo, f.stockRepo)
}

func newTestUseCase() (*UseCase, *fakeItemRepo, *fakeStockRepo) {
	itemRepo := newFakeItemRepo()
	stockRepo := &fakeStockRepo{}
	runner := &fakeTxRunner{itemRepo: itemRepo, stockRepo: stockRepo}
	return NewUseCase(runner, itemRepo, stockRepo), itemRepo, stockRepo
}

func TestRegisterPart_ConStockInicial(t *testing.T) {
	uc, _, stockRepo := newTestUseCase()

	resp, err := uc.RegisterPart(context.Background(), dto.RegisterPartRequest{
		SKU:             "FLT-001",
		Name:            "Filtro HVAC 24x24",
		InitialQuantity: 10,
		MinStockLevel:   3,
		UnitCost:        decimal.NewFromInt(15),
		SellingPrice:    decimal.NewFromInt(25),
	})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.QuantityOnHand)
	assert.False(t, resp.IsLowStock)

	// La transacción inicial queda en el libro con la referencia fija
	require.Len(t, stockRepo.txs, 1)
	assert.Equal(t, entity.TransactionTypeIN, stockRepo.txs[0].Type)
	assert.Equal(t, entity.InitialStockReference, stockRepo.txs[0].Reference)
	assert.Equal(t, "Admin", stockRepo.txs[0].Actor)
}

func TestRegisterPart_CantidadCeroNoGeneraTransaccion(t *testing.T) {
	uc, _, stockRepo := newTestUseCase()

	resp, err := uc.RegisterPart(context.Background(), dto.RegisterPartRequest{
		SKU:  "FLT-002",
		Name: "Correa de ventilador",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.QuantityOnHand)
	assert.Empty(t, stockRepo.txs)
}

func TestRegisterPart_SKUDuplicado(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.RegisterPart(context.Background(), dto.RegisterPartRequest{SKU: "FLT-001", Name: "Filtro"})
	require.NoError(t, err)

	_, err = uc.RegisterPart(context.Background(), dto.RegisterPartRequest{SKU: "FLT-001", Name: "Otro filtro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegisterPart_EntradaInvalida(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.RegisterPart(context.Background(), dto.RegisterPartRequest{Name: "sin sku"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterPart(context.Background(), dto.RegisterPartRequest{
		SKU: "X", Name: "X", InitialQuantity: -1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterTransaction_INyOUT(t *testing.T) {
	uc, _, _ := newTestUseCase()

	created, err := uc.RegisterPart(context.Background(), dto.RegisterPartRequest{
		SKU: "FLT-001", Name: "Filtro", InitialQuantity: 10, MinStockLevel: 3,
	})
	require.NoError(t, err)

	resp, err := uc.RegisterTransaction(context.Background(), created.ID, dto.RegisterStockTransactionRequest{
		Type: entity.TransactionTypeOUT, Quantity: 4, Reference: "SO-493021",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, resp.QuantityOnHand)

	resp, err = uc.RegisterTransaction(context.Background(), created.ID, dto.RegisterStockTransactionRequest{
		Type: entity.TransactionTypeIN, Quantity: 2, Reference: "PO-2024-4831",
	})
	require.NoError(t, err)
	assert.Equal(t, 8, resp.QuantityOnHand)

	// quantityOnHand == inicial + suma firmada del libro
	txs, err := uc.ListTransactions(context.Background(), created.ID, 50, 0)
	require.NoError(t, err)
	assert.Len(t, txs, 3)
}

func TestRegisterTransaction_PermiteStockNegativo(t *testing.T) {
	uc, _, _ := newTestUseCase()

	created, err := uc.RegisterPart(context.Background(), dto.RegisterPartRequest{
		SKU: "FLT-001", Name: "Filtro", InitialQuantity: 2, MinStockLevel: 3,
	})
	require.NoError(t, err)

	// El libro admite backorder: la salida no se rechaza por stock insuficiente
	resp, err := uc.RegisterTransaction(context.Background(), created.ID, dto.RegisterStockTransactionRequest{
		Type: entity.TransactionTypeOUT, Quantity: 5, Reference: "SO-000001",
	})
	require.NoError(t, err)
	assert.Equal(t, -3, resp.QuantityOnHand)
	assert.True(t, resp.IsLowStock)
}

func TestRegisterTransaction_Validaciones(t *testing.T) {
	uc, _, _ := newTestUseCase()

	created, err := uc.RegisterPart(context.Background(), dto.RegisterPartRequest{SKU: "A", Name: "A"})
	require.NoError(t, err)

	_, err = uc.RegisterTransaction(context.Background(), created.ID, dto.RegisterStockTransactionRequest{
		Type: "TRANSFER", Quantity: 1, Reference: "x",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterTransaction(context.Background(), created.ID, dto.RegisterStockTransactionRequest{
		Type: entity.TransactionTypeIN, Quantity: 0, Reference: "x",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterTransaction(context.Background(), created.ID, dto.RegisterStockTransactionRequest{
		Type: entity.TransactionTypeIN, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterTransaction(context.Background(), "no-existe", dto.RegisterStockTransactionRequest{
		Type: entity.TransactionTypeIN, Quantity: 1, Reference: "x",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListLowStock(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.RegisterPart(context.Background(), dto.RegisterPartRequest{
		SKU: "A", Name: "A", InitialQuantity: 1, MinStockLevel: 5,
	})
	require.NoError(t, err)
	_, err = uc.RegisterPart(context.Background(), dto.RegisterPartRequest{
		SKU: "B", Name: "B", InitialQuantity: 20, MinStockLevel: 5,
	})
	require.NoError(t, err)

	low, err := uc.ListLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "A", low[0].SKU)
}
