package workorder

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

const defaultActor = "Admin"

// UseCase gestiona la ejecución de órdenes de servicio: checklist de tareas,
// consumo de repuestos con descuento de stock y cambios de estado.
type UseCase struct {
	txRunner TxRunner
	woRepo   repository.WorkOrderRepository
	stock    StockRecorder
}

// NewUseCase construye el caso de uso de órdenes de servicio.
func NewUseCase(txRunner TxRunner, woRepo repository.WorkOrderRepository, stock StockRecorder) *UseCase {
	return &UseCase{txRunner: txRunner, woRepo: woRepo, stock: stock}
}

// Create crea una orden de servicio directa (sin pasar por el pipeline),
// en estado Open y sin tareas ni repuestos.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateWorkOrderRequest) (*dto.WorkOrderResponse, error) {
	if in.Title == "" || in.ClientID == "" {
		return nil, domain.ErrInvalidInput
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}
	if priority != entity.PriorityLow && priority != entity.PriorityMedium && priority != entity.PriorityHigh {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	wo := &entity.WorkOrder{
		ID:          uuid.New().String(),
		Number:      entity.NewWorkOrderNumber(),
		Title:       in.Title,
		ClientID:    in.ClientID,
		AssetID:     in.AssetID,
		Priority:    priority,
		Status:      entity.WorkOrderOpen,
		Description: in.Description,
		Tasks:       []entity.Task{},
		PartsUsed:   []entity.PartUsage{},
		Images:      []string{},
		CreatedDate: now,
		StartDate:   in.StartDate,
		DueDate:     in.DueDate,
		UpdatedAt:   now,
	}
	err := uc.txRunner.RunWorkOrder(ctx, func(
		woRepo repository.WorkOrderRepository,
		_ repository.InventoryItemRepository,
		_ repository.StockTransactionRepository,
	) error {
		return woRepo.Create(wo)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(wo), nil
}

// AssignTechnician asigna (o reasigna) el técnico responsable.
func (uc *UseCase) AssignTechnician(ctx context.Context, woID string, in dto.AssignTechnicianRequest) (*dto.WorkOrderResponse, error) {
	if in.TechnicianID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.mutate(ctx, woID, func(wo *entity.WorkOrder, _ repository.WorkOrderRepository) error {
		wo.AssignedTechnicianID = in.TechnicianID
		return nil
	})
}

// AddTask agrega una tarea al checklist de la orden.
func (uc *UseCase) AddTask(ctx context.Context, woID string, in dto.AddTaskRequest) (*dto.WorkOrderResponse, error) {
	if in.Description == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.mutate(ctx, woID, func(wo *entity.WorkOrder, woRepo repository.WorkOrderRepository) error {
		task := &entity.Task{
			ID:          uuid.New().String(),
			WorkOrderID: wo.ID,
			Description: in.Description,
		}
		if err := woRepo.CreateTask(task); err != nil {
			return err
		}
		wo.Tasks = append(wo.Tasks, *task)
		return nil
	})
}

// ToggleTask invierte el estado de completitud de una tarea.
func (uc *UseCase) ToggleTask(ctx context.Context, woID, taskID string) (*dto.WorkOrderResponse, error) {
	return uc.mutate(ctx, woID, func(wo *entity.WorkOrder, woRepo repository.WorkOrderRepository) error {
		for i := range wo.Tasks {
			if wo.Tasks[i].ID == taskID {
				wo.Tasks[i].IsCompleted = !wo.Tasks[i].IsCompleted
				return woRepo.UpdateTask(&wo.Tasks[i])
			}
		}
		return domain.ErrNotFound
	})
}

// SetStatus reasigna el estado de la orden. La progresión es libre por
// decisión del flujo operativo; Completed estampa la fecha de cierre y salir
// de Completed la limpia.
func (uc *UseCase) SetStatus(ctx context.Context, woID string, in dto.SetWorkOrderStatusRequest) (*dto.WorkOrderResponse, error) {
	switch in.Status {
	case entity.WorkOrderOpen, entity.WorkOrderInProgress, entity.WorkOrderReview, entity.WorkOrderCompleted:
	default:
		return nil, domain.ErrInvalidInput
	}
	return uc.mutate(ctx, woID, func(wo *entity.WorkOrder, _ repository.WorkOrderRepository) error {
		wo.Status = in.Status
		if in.Status == entity.WorkOrderCompleted {
			now := time.Now()
			wo.CompletedDate = &now
		} else {
			wo.CompletedDate = nil
		}
		return nil
	})
}

// AttachImage adjunta una referencia de imagen a la orden.
func (uc *UseCase) AttachImage(ctx context.Context, woID string, in dto.AttachImageRequest) (*dto.WorkOrderResponse, error) {
	if in.ImageRef == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.mutate(ctx, woID, func(wo *entity.WorkOrder, _ repository.WorkOrderRepository) error {
		wo.Images = append(wo.Images, in.ImageRef)
		return nil
	})
}

// AddPartUsage registra un repuesto consumido por la orden. Con
// inventory_item_id el nombre y el costo unitario se capturan del inventario
// al momento del registro y la salida OUT se escribe en la misma transacción,
// marcando la línea como descontada (exactamente una vez). Sin él es una
// entrada manual y el stock no se toca.
func (uc *UseCase) AddPartUsage(ctx context.Context, woID string, in dto.AddPartUsageRequest) (*dto.WorkOrderResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.InventoryItemID == "" && in.PartName == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Cost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	actor := in.Actor
	if actor == "" {
		actor = defaultActor
	}

	var out *entity.WorkOrder
	err := uc.txRunner.RunWorkOrder(ctx, func(
		woRepo repository.WorkOrderRepository,
		itemRepo repository.InventoryItemRepository,
		stockRepo repository.StockTransactionRepository,
	) error {
		wo, err := getOrder(woRepo, woID)
		if err != nil {
			return err
		}

		pu := &entity.PartUsage{
			ID:          uuid.New().String(),
			WorkOrderID: wo.ID,
			PartName:    in.PartName,
			Quantity:    in.Quantity,
			Cost:        in.Cost,
		}
		if in.InventoryItemID != "" {
			item, err := uc.stock.RegisterInTx(
				itemRepo, stockRepo,
				in.InventoryItemID, entity.TransactionTypeOUT,
				in.Quantity, wo.Number, actor, time.Now(),
			)
			if err != nil {
				return err
			}
			pu.InventoryItemID = item.ID
			pu.Cost = item.UnitCost
			pu.InventoryDeducted = true
			if pu.PartName == "" {
				pu.PartName = item.Name
			}
		}
		if err := woRepo.CreatePartUsage(pu); err != nil {
			return err
		}
		wo.PartsUsed = append(wo.PartsUsed, *pu)
		wo.UpdatedAt = time.Now()
		out = wo
		return woRepo.Update(wo)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(out), nil
}

// RemovePartUsage elimina una línea de consumo. Si la línea había descontado
// stock, emite la transacción IN compensatoria en la misma transacción de BD;
// el libro nunca se edita, solo se compensa.
func (uc *UseCase) RemovePartUsage(ctx context.Context, woID, usageID string) (*dto.WorkOrderResponse, error) {
	var out *entity.WorkOrder
	err := uc.txRunner.RunWorkOrder(ctx, func(
		woRepo repository.WorkOrderRepository,
		itemRepo repository.InventoryItemRepository,
		stockRepo repository.StockTransactionRepository,
	) error {
		wo, err := getOrder(woRepo, woID)
		if err != nil {
			return err
		}
		pu, err := woRepo.GetPartUsage(usageID)
		if err != nil {
			return err
		}
		if pu == nil || pu.WorkOrderID != wo.ID {
			return domain.ErrNotFound
		}
		if pu.InventoryDeducted {
			if _, err := uc.stock.RegisterInTx(
				itemRepo, stockRepo,
				pu.InventoryItemID, entity.TransactionTypeIN,
				pu.Quantity, wo.Number, defaultActor, time.Now(),
			); err != nil {
				return err
			}
		}
		if err := woRepo.DeletePartUsage(usageID); err != nil {
			return err
		}
		for i := range wo.PartsUsed {
			if wo.PartsUsed[i].ID == usageID {
				wo.PartsUsed = append(wo.PartsUsed[:i], wo.PartsUsed[i+1:]...)
				break
			}
		}
		wo.UpdatedAt = time.Now()
		out = wo
		return woRepo.Update(wo)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(out), nil
}

// GetByID obtiene una orden con tareas y repuestos.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.WorkOrderResponse, error) {
	wo, err := uc.woRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if wo == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(wo), nil
}

// List lista órdenes; con clientID no vacío filtra por cliente.
func (uc *UseCase) List(ctx context.Context, clientID string, limit, offset int) (*dto.WorkOrderListResponse, error) {
	var (
		orders []*entity.WorkOrder
		err    error
	)
	if clientID != "" {
		orders, err = uc.woRepo.ListByClient(clientID, limit, offset)
	} else {
		orders, err = uc.woRepo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	out := &dto.WorkOrderListResponse{
		Items: make([]dto.WorkOrderResponse, 0, len(orders)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(orders)},
	}
	for _, wo := range orders {
		out.Items = append(out.Items, *toResponse(wo))
	}
	return out, nil
}

// mutate carga la orden, aplica fn y persiste la cabecera, todo en una
// transacción de BD.
func (uc *UseCase) mutate(ctx context.Context, woID string, fn func(wo *entity.WorkOrder, woRepo repository.WorkOrderRepository) error) (*dto.WorkOrderResponse, error) {
	var out *entity.WorkOrder
	err := uc.txRunner.RunWorkOrder(ctx, func(
		woRepo repository.WorkOrderRepository,
		_ repository.InventoryItemRepository,
		_ repository.StockTransactionRepository,
	) error {
		wo, err := getOrder(woRepo, woID)
		if err != nil {
			return err
		}
		if err := fn(wo, woRepo); err != nil {
			return err
		}
		wo.UpdatedAt = time.Now()
		out = wo
		return woRepo.Update(wo)
	})
	if err != nil {
		return nil, err
	}
	return toResponse(out), nil
}

func getOrder(woRepo repository.WorkOrderRepository, id string) (*entity.WorkOrder, error) {
	wo, err := woRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if wo == nil {
		return nil, domain.ErrNotFound
	}
	return wo, nil
}

func toResponse(wo *entity.WorkOrder) *dto.WorkOrderResponse {
	tasks := make([]dto.TaskResponse, 0, len(wo.Tasks))
	for _, t := range wo.Tasks {
		tasks = append(tasks, dto.TaskResponse{ID: t.ID, Description: t.Description, IsCompleted: t.IsCompleted})
	}
	parts := make([]dto.PartUsageResponse, 0, len(wo.PartsUsed))
	for _, p := range wo.PartsUsed {
		parts = append(parts, dto.PartUsageResponse{
			ID:                p.ID,
			InventoryItemID:   p.InventoryItemID,
			PartName:          p.PartName,
			Quantity:          p.Quantity,
			Cost:              p.Cost,
			InventoryDeducted: p.InventoryDeducted,
		})
	}
	return &dto.WorkOrderResponse{
		ID:                   wo.ID,
		Number:               wo.Number,
		Title:                wo.Title,
		ClientID:             wo.ClientID,
		AssetID:              wo.AssetID,
		AssetName:            wo.AssetName,
		Priority:             wo.Priority,
		Status:               wo.Status,
		Description:          wo.Description,
		AssignedTechnicianID: wo.AssignedTechnicianID,
		PipelineCaseID:       wo.PipelineCaseID,
		Tasks:                tasks,
		PartsUsed:            parts,
		Images:               wo.Images,
		PartsCost:            wo.PartsCost(),
		CreatedDate:          wo.CreatedDate,
		StartDate:            wo.StartDate,
		DueDate:              wo.DueDate,
		CompletedDate:        wo.CompletedDate,
	}
}
