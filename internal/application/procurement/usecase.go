package procurement

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

// UseCase gestiona el ciclo de compras: solicitud (PR) → decisión → orden de
// compra (PO) → recepción de mercancía con acreditación de stock.
type UseCase struct {
	txRunner TxRunner
	prRepo   repository.PurchaseRequestRepository
	poRepo   repository.PurchaseOrderRepository
	stock    StockRecorder
}

// NewUseCase construye el caso de uso de compras.
func NewUseCase(txRunner TxRunner, prRepo repository.PurchaseRequestRepository, poRepo repository.PurchaseOrderRepository, stock StockRecorder) *UseCase {
	return &UseCase{txRunner: txRunner, prRepo: prRepo, poRepo: poRepo, stock: stock}
}

// CreateRequest crea una solicitud de compra en estado Pending.
func (uc *UseCase) CreateRequest(ctx context.Context, in dto.CreatePurchaseRequestRequest) (*dto.PurchaseRequestResponse, error) {
	if in.ClientID == "" || in.RequesterName == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.ItemName == "" || it.Quantity <= 0 || it.EstimatedCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	pr := &entity.PurchaseRequest{
		ID:            uuid.New().String(),
		ClientID:      in.ClientID,
		WorkOrderID:   in.WorkOrderID,
		RequesterName: in.RequesterName,
		RequestDate:   now,
		Status:        entity.PRStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, it := range in.Items {
		pr.RequestedItems = append(pr.RequestedItems, entity.RequestedItem{
			ID:                uuid.New().String(),
			PurchaseRequestID: pr.ID,
			ItemName:          it.ItemName,
			Quantity:          it.Quantity,
			EstimatedCost:     it.EstimatedCost,
			InventoryID:       it.InventoryID,
		})
	}

	err := uc.txRunner.RunProcurement(ctx, func(
		prRepo repository.PurchaseRequestRepository,
		_ repository.PurchaseOrderRepository,
		_ repository.InventoryItemRepository,
		_ repository.StockTransactionRepository,
	) error {
		return prRepo.Create(pr)
	})
	if err != nil {
		return nil, err
	}
	return toPRResponse(pr), nil
}

// Decide aprueba o rechaza una solicitud Pending. Una solicitud ya decidida
// no admite una segunda decisión.
func (uc *UseCase) Decide(ctx context.Context, prID string, in dto.DecidePurchaseRequestRequest) (*dto.PurchaseRequestResponse, error) {
	if in.Outcome != entity.PRStatusApproved && in.Outcome != entity.PRStatusRejected {
		return nil, domain.ErrInvalidInput
	}

	var out *entity.PurchaseRequest
	err := uc.txRunner.RunProcurement(ctx, func(
		prRepo repository.PurchaseRequestRepository,
		_ repository.PurchaseOrderRepository,
		_ repository.InventoryItemRepository,
		_ repository.StockTransactionRepository,
	) error {
		pr, err := lockPR(prRepo, prID)
		if err != nil {
			return err
		}
		if pr.Status != entity.PRStatusPending {
			return domain.ErrInvalidState
		}
		if err := prRepo.UpdateStatus(pr.ID, in.Outcome); err != nil {
			return err
		}
		pr.Status = in.Outcome
		out = pr
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPRResponse(out), nil
}

// ConvertToOrder emite la orden de compra de una solicitud aprobada (1:1).
// Las líneas se pricean con el costo estimado de la solicitud; el total es la
// suma de qty × precio. La PR queda en "PO Issued".
func (uc *UseCase) ConvertToOrder(ctx context.Context, prID string, in dto.ConvertToOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if in.Vendor == "" {
		return nil, domain.ErrInvalidInput
	}

	var created *entity.PurchaseOrder
	err := uc.txRunner.RunProcurement(ctx, func(
		prRepo repository.PurchaseRequestRepository,
		poRepo repository.PurchaseOrderRepository,
		_ repository.InventoryItemRepository,
		_ repository.StockTransactionRepository,
	) error {
		pr, err := lockPR(prRepo, prID)
		if err != nil {
			return err
		}
		if pr.Status != entity.PRStatusApproved {
			return domain.ErrInvalidState
		}

		now := time.Now()
		po := &entity.PurchaseOrder{
			ID:         uuid.New().String(),
			PONumber:   entity.NewPONumber(now),
			PRID:       pr.ID,
			Vendor:     in.Vendor,
			DateIssued: now,
			Status:     entity.POStatusOrdered,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		for _, ri := range pr.RequestedItems {
			po.Items = append(po.Items, entity.PurchaseOrderItem{
				ID:              uuid.New().String(),
				PurchaseOrderID: po.ID,
				ItemName:        ri.ItemName,
				Quantity:        ri.Quantity,
				UnitPrice:       ri.EstimatedCost,
				Total:           ri.EstimatedCost.Mul(decimal.NewFromInt(int64(ri.Quantity))),
				InventoryID:     ri.InventoryID,
			})
		}
		po.RecalcTotal()

		if err := poRepo.Create(po); err != nil {
			return err
		}
		if err := prRepo.UpdateStatus(pr.ID, entity.PRStatusPOIssued); err != nil {
			return err
		}
		created = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPOResponse(created), nil
}

// ReceiveGoods registra la recepción de mercancía de una PO emitida. Cada
// línea ligada a inventario acredita stock con una transacción IN referenciada
// por el número de la PO, en la misma transacción de BD que el cambio de
// estado a Received.
func (uc *UseCase) ReceiveGoods(ctx context.Context, poID string, in dto.ReceiveGoodsRequest) (*dto.PurchaseOrderResponse, error) {
	actor := in.Actor
	if actor == "" {
		actor = defaultActor
	}

	var out *entity.PurchaseOrder
	err := uc.txRunner.RunProcurement(ctx, func(
		_ repository.PurchaseRequestRepository,
		poRepo repository.PurchaseOrderRepository,
		itemRepo repository.InventoryItemRepository,
		stockRepo repository.StockTransactionRepository,
	) error {
		po, err := lockPO(poRepo, poID)
		if err != nil {
			return err
		}
		if po.Status != entity.POStatusOrdered {
			return domain.ErrInvalidState
		}
		now := time.Now()
		for _, it := range po.Items {
			if it.InventoryID == "" {
				continue
			}
			if _, err := uc.stock.RegisterInTx(
				itemRepo, stockRepo,
				it.InventoryID, entity.TransactionTypeIN,
				it.Quantity, po.PONumber, actor, now,
			); err != nil {
				return err
			}
		}
		if err := poRepo.UpdateStatus(po.ID, entity.POStatusReceived); err != nil {
			return err
		}
		po.Status = entity.POStatusReceived
		out = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPOResponse(out), nil
}

// CancelOrder cancela una PO aún no recibida (Ordered → Cancelled). No emite
// movimientos de stock: nada se había acreditado.
func (uc *UseCase) CancelOrder(ctx context.Context, poID string) (*dto.PurchaseOrderResponse, error) {
	var out *entity.PurchaseOrder
	err := uc.txRunner.RunProcurement(ctx, func(
		_ repository.PurchaseRequestRepository,
		poRepo repository.PurchaseOrderRepository,
		_ repository.InventoryItemRepository,
		_ repository.StockTransactionRepository,
	) error {
		po, err := lockPO(poRepo, poID)
		if err != nil {
			return err
		}
		if po.Status != entity.POStatusOrdered {
			return domain.ErrInvalidState
		}
		if err := poRepo.UpdateStatus(po.ID, entity.POStatusCancelled); err != nil {
			return err
		}
		po.Status = entity.POStatusCancelled
		out = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPOResponse(out), nil
}

// GetRequest obtiene una solicitud con sus ítems.
func (uc *UseCase) GetRequest(ctx context.Context, id string) (*dto.PurchaseRequestResponse, error) {
	pr, err := uc.prRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pr == nil {
		return nil, domain.ErrNotFound
	}
	return toPRResponse(pr), nil
}

// ListRequests lista solicitudes de compra.
func (uc *UseCase) ListRequests(ctx context.Context, limit, offset int) (*dto.PurchaseRequestListResponse, error) {
	prs, err := uc.prRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.PurchaseRequestListResponse{
		Items: make([]dto.PurchaseRequestResponse, 0, len(prs)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(prs)},
	}
	for _, pr := range prs {
		out.Items = append(out.Items, *toPRResponse(pr))
	}
	return out, nil
}

// GetOrder obtiene una orden de compra con sus líneas.
func (uc *UseCase) GetOrder(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.poRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	return toPOResponse(po), nil
}

// ListOrders lista órdenes de compra.
func (uc *UseCase) ListOrders(ctx context.Context, limit, offset int) (*dto.PurchaseOrderListResponse, error) {
	pos, err := uc.poRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.PurchaseOrderListResponse{
		Items: make([]dto.PurchaseOrderResponse, 0, len(pos)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(pos)},
	}
	for _, po := range pos {
		out.Items = append(out.Items, *toPOResponse(po))
	}
	return out, nil
}

func lockPR(prRepo repository.PurchaseRequestRepository, id string) (*entity.PurchaseRequest, error) {
	pr, err := prRepo.GetByIDForUpdate(id)
	if err != nil {
		return nil, err
	}
	if pr == nil {
		return nil, domain.ErrNotFound
	}
	return pr, nil
}

func lockPO(poRepo repository.PurchaseOrderRepository, id string) (*entity.PurchaseOrder, error) {
	po, err := poRepo.GetByIDForUpdate(id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	return po, nil
}

func toPRResponse(pr *entity.PurchaseRequest) *dto.PurchaseRequestResponse {
	items := make([]dto.RequestedItemResponse, 0, len(pr.RequestedItems))
	for _, it := range pr.RequestedItems {
		items = append(items, dto.RequestedItemResponse{
			ID:            it.ID,
			ItemName:      it.ItemName,
			Quantity:      it.Quantity,
			EstimatedCost: it.EstimatedCost,
			InventoryID:   it.InventoryID,
		})
	}
	return &dto.PurchaseRequestResponse{
		ID:             pr.ID,
		ClientID:       pr.ClientID,
		WorkOrderID:    pr.WorkOrderID,
		RequesterName:  pr.RequesterName,
		RequestDate:    pr.RequestDate,
		Status:         pr.Status,
		RequestedItems: items,
	}
}

func toPOResponse(po *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	items := make([]dto.PurchaseOrderItemResponse, 0, len(po.Items))
	for _, it := range po.Items {
		items = append(items, dto.PurchaseOrderItemResponse{
			ID:          it.ID,
			ItemName:    it.ItemName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Total,
			InventoryID: it.InventoryID,
		})
	}
	return &dto.PurchaseOrderResponse{
		ID:          po.ID,
		PONumber:    po.PONumber,
		PRID:        po.PRID,
		Vendor:      po.Vendor,
		DateIssued:  po.DateIssued,
		Status:      po.Status,
		TotalAmount: po.TotalAmount,
		Items:       items,
	}
}
