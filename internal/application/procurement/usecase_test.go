package procurement

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mantenix-api/internal/application/dto"
	"github.com/jhoicas/Mantenix-api/internal/application/inventory"
	"github.com/jhoicas/Mantenix-api/internal/domain"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

// Repositorios en memoria para probar compras sin BD.

type fakePRRepo struct {
	prs map[string]*entity.PurchaseRequest
}

func (f *fakePRRepo) Create(pr *entity.PurchaseRequest) error {
	cp := *pr
	f.prs[pr.ID] = &cp
	return nil
}

func (f *fakePRRepo) GetByID(id string) (*entity.PurchaseRequest, error) {
	pr, ok := f.prs[id]
	if !ok {
		return nil, nil
	}
	cp := *pr
	return &cp, nil
}

func (f *fakePRRepo) GetByIDForUpdate(id string) (*entity.PurchaseRequest, error) {
	return f.GetByID(id)
}

func (f *fakePRRepo) UpdateStatus(id, status string) error {
	pr, ok := f.prs[id]
	if !ok {
		return domain.ErrNotFound
	}
	pr.Status = status
	return nil
}

func (f *fakePRRepo) List(limit, offset int) ([]*entity.PurchaseRequest, error) {
	var out []*entity.PurchaseRequest
	for _, pr := range f.prs {
		cp := *pr
		out = append(out, &cp)
	}
	return out, nil
}

type fakePORepo struct {
	pos map[string]*entity.PurchaseOrder
}

func (f *fakePORepo) Create(po *entity.PurchaseOrder) error {
	cp := *po
	f.pos[po.ID] = &cp
	return nil
}

func (f *fakePORepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	po, ok := f.pos[id]
	if !ok {
		return nil, nil
	}
	cp := *po
	return &cp, nil
}

func (f *fakePORepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	return f.GetByID(id)
}

func (f *fakePORepo) UpdateStatus(id, status string) error {
	po, ok := f.pos[id]
	if !ok {
		return domain.ErrNotFound
	}
	po.Status = status
	return nil
}

func (f *fakePORepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, po := range f.pos {
		cp := *po
		out = append(out, &cp)
	}
	return out, nil
}

type fakeItemRepo struct {
	items map[string]*entity.InventoryItem
}

func (f *fakeItemRepo) Create(item *entity.InventoryItem) error { return nil }

func (f *fakeItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (f *fakeItemRepo) GetBySKU(string) (*entity.InventoryItem, error) { return nil, nil }

func (f *fakeItemRepo) GetByIDForUpdate(id string) (*entity.InventoryItem, error) {
	return f.GetByID(id)
}

func (f *fakeItemRepo) Update(*entity.InventoryItem) error { return nil }

func (f *fakeItemRepo) UpdateQuantity(id string, quantityOnHand int) error {
	it, ok := f.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.QuantityOnHand = quantityOnHand
	return nil
}

func (f *fakeItemRepo) List(int, int) ([]*entity.InventoryItem, error) { return nil, nil }
func (f *fakeItemRepo) ListLowStock() ([]*entity.InventoryItem, error) { return nil, nil }
func (f *fakeItemRepo) Delete(string) error                            { return nil }

type fakeStockRepo struct {
	txs []*entity.StockTransaction
}

func (f *fakeStockRepo) Create(tx *entity.StockTransaction) error {
	cp := *tx
	f.txs = append(f.txs, &cp)
	return nil
}

func (f *fakeStockRepo) ListByItem(string, int, int) ([]*entity.StockTransaction, error) {
	return f.txs, nil
}

type fakeProcTxRunner struct {
	prRepo    *fakePRRepo
	poRepo    *fakePORepo
	itemRepo  *fakeItemRepo
	stockRepo *fakeStockRepo
}

func (f *fakeProcTxRunner) RunProcurement(ctx context.Context, fn func(
	repository.PurchaseRequestRepository,
	repository.PurchaseOrderRepository,
	repository.InventoryItemRepository,
	repository.StockTransactionRepository,
) error) error {
	return fn(f.prRepo, f.poRepo, f.itemRepo, f.stockRepo)
}

func newTestUseCase() (*UseCase, *fakeItemRepo, *fakeStockRepo) {
	prRepo := &fakePRRepo{prs: make(map[string]*entity.PurchaseRequest)}
	poRepo := &fakePORepo{pos: make(map[string]*entity.PurchaseOrder)}
	itemRepo := &fakeItemRepo{items: make(map[string]*entity.InventoryItem)}
	stockRepo := &fakeStockRepo{}
	runner := &fakeProcTxRunner{prRepo: prRepo, poRepo: poRepo, itemRepo: itemRepo, stockRepo: stockRepo}
	stock := inventory.NewUseCase(nil, nil, nil)
	return NewUseCase(runner, prRepo, poRepo, stock), itemRepo, stockRepo
}

func createPR(t *testing.T, uc *UseCase, items ...dto.RequestedItemDTO) *dto.PurchaseRequestResponse {
	t.Helper()
	if len(items) == 0 {
		items = []dto.RequestedItemDTO{
			{ItemName: "Filtro HVAC 24x24", Quantity: 5, EstimatedCost: decimal.NewFromInt(15), InventoryID: "item-1"},
			{ItemName: "Andamio certificado", Quantity: 1, EstimatedCost: decimal.NewFromInt(300)},
		}
	}
	pr, err := uc.CreateRequest(context.Background(), dto.CreatePurchaseRequestRequest{
		ClientID:      "client-1",
		RequesterName: "M. Duarte",
		Items:         items,
	})
	require.NoError(t, err)
	return pr
}

func TestCreateRequest_Pending(t *testing.T) {
	uc, _, _ := newTestUseCase()
	pr := createPR(t, uc)

	assert.Equal(t, entity.PRStatusPending, pr.Status)
	assert.Len(t, pr.RequestedItems, 2)
}

func TestCreateRequest_SinItemsFalla(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.CreateRequest(context.Background(), dto.CreatePurchaseRequestRequest{
		ClientID: "client-1", RequesterName: "M. Duarte",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDecide_SoloDesdePending(t *testing.T) {
	uc, _, _ := newTestUseCase()
	pr := createPR(t, uc)

	got, err := uc.Decide(context.Background(), pr.ID, dto.DecidePurchaseRequestRequest{Outcome: entity.PRStatusApproved})
	require.NoError(t, err)
	assert.Equal(t, entity.PRStatusApproved, got.Status)

	// Una segunda decisión falla
	_, err = uc.Decide(context.Background(), pr.ID, dto.DecidePurchaseRequestRequest{Outcome: entity.PRStatusRejected})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestDecide_ResultadoInvalido(t *testing.T) {
	uc, _, _ := newTestUseCase()
	pr := createPR(t, uc)

	_, err := uc.Decide(context.Background(), pr.ID, dto.DecidePurchaseRequestRequest{Outcome: "Deferred"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConvertToOrder_SoloAprobada(t *testing.T) {
	uc, _, _ := newTestUseCase()
	pr := createPR(t, uc)

	// Pendiente: no se puede emitir PO
	_, err := uc.ConvertToOrder(context.Background(), pr.ID, dto.ConvertToOrderRequest{Vendor: "HVAC Supplies SA"})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = uc.Decide(context.Background(), pr.ID, dto.DecidePurchaseRequestRequest{Outcome: entity.PRStatusApproved})
	require.NoError(t, err)

	po, err := uc.ConvertToOrder(context.Background(), pr.ID, dto.ConvertToOrderRequest{Vendor: "HVAC Supplies SA"})
	require.NoError(t, err)

	assert.Equal(t, entity.POStatusOrdered, po.Status)
	assert.True(t, strings.HasPrefix(po.PONumber, "PO-"))
	assert.Len(t, po.Items, 2)
	// total = 5*15 + 1*300
	assert.True(t, po.TotalAmount.Equal(decimal.NewFromInt(375)))

	gotPR, err := uc.GetRequest(context.Background(), pr.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PRStatusPOIssued, gotPR.Status)
}

func TestReceiveGoods_AcreditaStock(t *testing.T) {
	uc, itemRepo, stockRepo := newTestUseCase()
	itemRepo.items["item-1"] = &entity.InventoryItem{
		ID: "item-1", SKU: "FLT-001", Name: "Filtro HVAC 24x24", QuantityOnHand: 2,
	}

	pr := createPR(t, uc)
	_, err := uc.Decide(context.Background(), pr.ID, dto.DecidePurchaseRequestRequest{Outcome: entity.PRStatusApproved})
	require.NoError(t, err)
	po, err := uc.ConvertToOrder(context.Background(), pr.ID, dto.ConvertToOrderRequest{Vendor: "HVAC Supplies SA"})
	require.NoError(t, err)

	got, err := uc.ReceiveGoods(context.Background(), po.ID, dto.ReceiveGoodsRequest{Actor: "Bodega"})
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusReceived, got.Status)

	// Solo la línea ligada a inventario acredita stock, referenciada por la PO
	assert.Equal(t, 7, itemRepo.items["item-1"].QuantityOnHand)
	require.Len(t, stockRepo.txs, 1)
	assert.Equal(t, entity.TransactionTypeIN, stockRepo.txs[0].Type)
	assert.Equal(t, po.PONumber, stockRepo.txs[0].Reference)
	assert.Equal(t, "Bodega", stockRepo.txs[0].Actor)

	// Una segunda recepción falla
	_, err = uc.ReceiveGoods(context.Background(), po.ID, dto.ReceiveGoodsRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestCancelOrder_SoloOrdered(t *testing.T) {
	uc, _, stockRepo := newTestUseCase()
	pr := createPR(t, uc)
	_, err := uc.Decide(context.Background(), pr.ID, dto.DecidePurchaseRequestRequest{Outcome: entity.PRStatusApproved})
	require.NoError(t, err)
	po, err := uc.ConvertToOrder(context.Background(), pr.ID, dto.ConvertToOrderRequest{Vendor: "HVAC Supplies SA"})
	require.NoError(t, err)

	got, err := uc.CancelOrder(context.Background(), po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusCancelled, got.Status)
	assert.Empty(t, stockRepo.txs)

	// Una PO cancelada no puede recibirse
	_, err = uc.ReceiveGoods(context.Background(), po.ID, dto.ReceiveGoodsRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
