package workorder

import (
	"context"
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

// Repositorios en memoria para probar órdenes de servicio sin BD.

type fakeWORepo struct {
	orders map[string]*entity.WorkOrder
	tasks  map[string]*entity.Task
	usages map[string]*entity.PartUsage
}

func newFakeWORepo() *fakeWORepo {
	return &fakeWORepo{
		orders: make(map[string]*entity.WorkOrder),
		tasks:  make(map[string]*entity.Task),
		usages: make(map[string]*entity.PartUsage),
	}
}

func (f *fakeWORepo) Create(wo *entity.WorkOrder) error {
	cp := *wo
	f.orders[wo.ID] = &cp
	return nil
}

func (f *fakeWORepo) GetByID(id string) (*entity.WorkOrder, error) {
	wo, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *wo
	cp.Tasks = nil
	cp.PartsUsed = nil
	for _, t := range f.tasks {
		if t.WorkOrderID == id {
			cp.Tasks = append(cp.Tasks, *t)
		}
	}
	for _, pu := range f.usages {
		if pu.WorkOrderID == id {
			cp.PartsUsed = append(cp.PartsUsed, *pu)
		}
	}
	return &cp, nil
}

func (f *fakeWORepo) Update(wo *entity.WorkOrder) error {
	if _, ok := f.orders[wo.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *wo
	f.orders[wo.ID] = &cp
	return nil
}

func (f *fakeWORepo) List(limit, offset int) ([]*entity.WorkOrder, error) {
	var out []*entity.WorkOrder
	for id := range f.orders {
		wo, _ := f.GetByID(id)
		out = append(out, wo)
	}
	return out, nil
}

func (f *fakeWORepo) ListByClient(clientID string, limit, offset int) ([]*entity.WorkOrder, error) {
	var out []*entity.WorkOrder
	for id, wo := range f.orders {
		if wo.ClientID == clientID {
			got, _ := f.GetByID(id)
			out = append(out, got)
		}
	}
	return out, nil
}

func (f *fakeWORepo) CreateTask(task *entity.Task) error {
	cp := *task
	f.tasks[task.ID] = &cp
	return nil
}

func (f *fakeWORepo) UpdateTask(task *entity.Task) error {
	cp := *task
	f.tasks[task.ID] = &cp
	return nil
}

func (f *fakeWORepo) GetTask(id string) (*entity.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeWORepo) CreatePartUsage(pu *entity.PartUsage) error {
	cp := *pu
	f.usages[pu.ID] = &cp
	return nil
}

func (f *fakeWORepo) UpdatePartUsage(pu *entity.PartUsage) error {
	cp := *pu
	f.usages[pu.ID] = &cp
	return nil
}

func (f *fakeWORepo) GetPartUsage(id string) (*entity.PartUsage, error) {
	pu, ok := f.usages[id]
	if !ok {
		return nil, nil
	}
	cp := *pu
	return &cp, nil
}

func (f *fakeWORepo) DeletePartUsage(id string) error {
	delete(f.usages, id)
	return nil
}

type fakeItemRepo struct {
	items map[string]*entity.InventoryItem
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

func (f *fakeItemRepo) GetBySKU(string) (*entity.InventoryItem, error) { return nil, nil }

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

func (f *fakeStockRepo) ListByItem(itemID string, limit, offset int) ([]*entity.StockTransaction, error) {
	var out []*entity.StockTransaction
	for _, tx := range f.txs {
		if tx.InventoryItemID == itemID {
			out = append(out, tx)
		}
	}
	return out, nil
}

type fakeWOTxRunner struct {
	woRepo    *fakeWORepo
	itemRepo  *fakeItemRepo
	stockRepo *fakeStockRepo
}

func (f *fakeWOTxRunner) RunWorkOrder(ctx context.Context, fn func(
	repository.WorkOrderRepository,
	repository.InventoryItemRepository,
	repository.StockTransactionRepository,
) error) error {
	return fn(f.woRepo, f.itemRepo, f.stockRepo)
}

func newTestUseCase() (*UseCase, *fakeItemRepo, *fakeStockRepo) {
	woRepo := newFakeWORepo()
	itemRepo := &fakeItemRepo{items: make(map[string]*entity.InventoryItem)}
	stockRepo := &fakeStockRepo{}
	runner := &fakeWOTxRunner{woRepo: woRepo, itemRepo: itemRepo, stockRepo: stockRepo}
	// El registrador de stock real: RegisterInTx opera sobre los repos que
	// recibe, no sobre los del caso de uso de inventario.
	stock := inventory.NewUseCase(nil, nil, nil)
	return NewUseCase(runner, woRepo, stock), itemRepo, stockRepo
}

func seedItem(itemRepo *fakeItemRepo, id string, qty int) {
	itemRepo.items[id] = &entity.InventoryItem{
		ID:             id,
		SKU:            "FLT-001",
		Name:           "Filtro HVAC 24x24",
		QuantityOnHand: qty,
		MinStockLevel:  2,
		UnitCost:       decimal.NewFromInt(15),
	}
}

func createOrder(t *testing.T, uc *UseCase) *dto.WorkOrderResponse {
	t.Helper()
	wo, err := uc.Create(context.Background(), dto.CreateWorkOrderRequest{
		Title:    "Mantenimiento preventivo chiller",
		ClientID: "client-1",
		Priority: entity.PriorityHigh,
	})
	require.NoError(t, err)
	return wo
}

func TestCreate_OrdenDirecta(t *testing.T) {
	uc, _, _ := newTestUseCase()
	wo := createOrder(t, uc)

	assert.Equal(t, entity.WorkOrderOpen, wo.Status)
	assert.NotEmpty(t, wo.Number)
	assert.Empty(t, wo.Tasks)
	assert.Empty(t, wo.PartsUsed)
}

func TestAddTask_YToggle(t *testing.T) {
	uc, _, _ := newTestUseCase()
	wo := createOrder(t, uc)

	got, err := uc.AddTask(context.Background(), wo.ID, dto.AddTaskRequest{Description: "Cambiar filtros"})
	require.NoError(t, err)
	require.Len(t, got.Tasks, 1)
	assert.False(t, got.Tasks[0].IsCompleted)

	got, err = uc.ToggleTask(context.Background(), wo.ID, got.Tasks[0].ID)
	require.NoError(t, err)
	assert.True(t, got.Tasks[0].IsCompleted)

	_, err = uc.ToggleTask(context.Background(), wo.ID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetStatus_CompletedEstampaFecha(t *testing.T) {
	uc, _, _ := newTestUseCase()
	wo := createOrder(t, uc)

	got, err := uc.SetStatus(context.Background(), wo.ID, dto.SetWorkOrderStatusRequest{Status: entity.WorkOrderCompleted})
	require.NoError(t, err)
	require.NotNil(t, got.CompletedDate)

	// Reabrir limpia la fecha de cierre
	got, err = uc.SetStatus(context.Background(), wo.ID, dto.SetWorkOrderStatusRequest{Status: entity.WorkOrderOpen})
	require.NoError(t, err)
	assert.Nil(t, got.CompletedDate)

	_, err = uc.SetStatus(context.Background(), wo.ID, dto.SetWorkOrderStatusRequest{Status: "Archived"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddPartUsage_DesdeInventarioDescuentaStock(t *testing.T) {
	uc, itemRepo, stockRepo := newTestUseCase()
	seedItem(itemRepo, "item-1", 10)
	wo := createOrder(t, uc)

	got, err := uc.AddPartUsage(context.Background(), wo.ID, dto.AddPartUsageRequest{
		InventoryItemID: "item-1",
		Quantity:        3,
	})
	require.NoError(t, err)
	require.Len(t, got.PartsUsed, 1)

	pu := got.PartsUsed[0]
	assert.True(t, pu.InventoryDeducted)
	assert.Equal(t, "Filtro HVAC 24x24", pu.PartName)
	assert.True(t, pu.Cost.Equal(decimal.NewFromInt(15)))
	assert.True(t, got.PartsCost.Equal(decimal.NewFromInt(45)))

	// El descuento ocurre exactamente una vez y queda en el libro
	assert.Equal(t, 7, itemRepo.items["item-1"].QuantityOnHand)
	require.Len(t, stockRepo.txs, 1)
	assert.Equal(t, entity.TransactionTypeOUT, stockRepo.txs[0].Type)
	assert.Equal(t, wo.Number, stockRepo.txs[0].Reference)
}

func TestAddPartUsage_EntradaManualNoTocaStock(t *testing.T) {
	uc, itemRepo, stockRepo := newTestUseCase()
	seedItem(itemRepo, "item-1", 10)
	wo := createOrder(t, uc)

	got, err := uc.AddPartUsage(context.Background(), wo.ID, dto.AddPartUsageRequest{
		PartName: "Sellante de rosca",
		Quantity: 1,
		Cost:     decimal.NewFromInt(8),
	})
	require.NoError(t, err)
	require.Len(t, got.PartsUsed, 1)
	assert.False(t, got.PartsUsed[0].InventoryDeducted)
	assert.Equal(t, 10, itemRepo.items["item-1"].QuantityOnHand)
	assert.Empty(t, stockRepo.txs)
}

func TestRemovePartUsage_CompensaConIN(t *testing.T) {
	uc, itemRepo, stockRepo := newTestUseCase()
	seedItem(itemRepo, "item-1", 10)
	wo := createOrder(t, uc)

	got, err := uc.AddPartUsage(context.Background(), wo.ID, dto.AddPartUsageRequest{
		InventoryItemID: "item-1",
		Quantity:        4,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, itemRepo.items["item-1"].QuantityOnHand)

	after, err := uc.RemovePartUsage(context.Background(), wo.ID, got.PartsUsed[0].ID)
	require.NoError(t, err)
	assert.Empty(t, after.PartsUsed)

	// El stock vuelve vía transacción IN compensatoria, nunca editando el libro
	assert.Equal(t, 10, itemRepo.items["item-1"].QuantityOnHand)
	require.Len(t, stockRepo.txs, 2)
	assert.Equal(t, entity.TransactionTypeIN, stockRepo.txs[1].Type)
	assert.Equal(t, wo.Number, stockRepo.txs[1].Reference)
}

func TestRemovePartUsage_ManualNoCompensa(t *testing.T) {
	uc, itemRepo, stockRepo := newTestUseCase()
	seedItem(itemRepo, "item-1", 10)
	wo := createOrder(t, uc)

	got, err := uc.AddPartUsage(context.Background(), wo.ID, dto.AddPartUsageRequest{
		PartName: "Tornillería varia", Quantity: 1, Cost: decimal.NewFromInt(2),
	})
	require.NoError(t, err)

	_, err = uc.RemovePartUsage(context.Background(), wo.ID, got.PartsUsed[0].ID)
	require.NoError(t, err)
	assert.Empty(t, stockRepo.txs)
	assert.Equal(t, 10, itemRepo.items["item-1"].QuantityOnHand)
}

func TestAssignTechnician(t *testing.T) {
	uc, _, _ := newTestUseCase()
	wo := createOrder(t, uc)

	got, err := uc.AssignTechnician(context.Background(), wo.ID, dto.AssignTechnicianRequest{TechnicianID: "tech-9"})
	require.NoError(t, err)
	assert.Equal(t, "tech-9", got.AssignedTechnicianID)

	_, err = uc.AssignTechnician(context.Background(), "no-existe", dto.AssignTechnicianRequest{TechnicianID: "tech-9"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
