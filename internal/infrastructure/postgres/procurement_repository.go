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

var _ repository.PurchaseRequestRepository = (*PurchaseRequestRepo)(nil)

// PurchaseRequestRepo implementación de PurchaseRequestRepository sobre
// PostgreSQL (usable con pool o tx).
type PurchaseRequestRepo struct {
	q Querier
}

// NewPurchaseRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRequestRepository(q Querier) *PurchaseRequestRepo {
	return &PurchaseRequestRepo{q: q}
}

// Create persiste la solicitud y sus ítems.
func (r *PurchaseRequestRepo) Create(pr *entity.PurchaseRequest) error {
	query := `
		INSERT INTO purchase_requests (id, client_id, work_order_id, requester_name, request_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		pr.ID, pr.ClientID, pr.WorkOrderID, pr.RequesterName, pr.RequestDate, pr.Status, pr.CreatedAt, pr.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase request: %w", err)
	}
	for _, it := range pr.RequestedItems {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO requested_items (id, purchase_request_id, item_name, quantity, estimated_cost, inventory_id)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, it.PurchaseRequestID, it.ItemName, it.Quantity, it.EstimatedCost, it.InventoryID,
		)
		if err != nil {
			return fmt.Errorf("insert requested item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una solicitud con sus ítems.
func (r *PurchaseRequestRepo) GetByID(id string) (*entity.PurchaseRequest, error) {
	return r.getOne(`SELECT id, client_id, work_order_id, requester_name, request_date, status, created_at, updated_at
		FROM purchase_requests WHERE id = $1`, id, "get purchase request")
}

// GetByIDForUpdate obtiene una solicitud bloqueando la fila para decisiones y
// emisión de PO.
func (r *PurchaseRequestRepo) GetByIDForUpdate(id string) (*entity.PurchaseRequest, error) {
	return r.getOne(`SELECT id, client_id, work_order_id, requester_name, request_date, status, created_at, updated_at
		FROM purchase_requests WHERE id = $1 FOR UPDATE`, id, "get purchase request for update")
}

// UpdateStatus cambia el estado de la solicitud.
func (r *PurchaseRequestRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_requests SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update purchase request status: %w", err)
	}
	return nil
}

// List lista solicitudes, más recientes primero.
func (r *PurchaseRequestRepo) List(limit, offset int) ([]*entity.PurchaseRequest, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, client_id, work_order_id, requester_name, request_date, status, created_at, updated_at
		 FROM purchase_requests ORDER BY request_date DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase requests: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseRequest
	for rows.Next() {
		var pr entity.PurchaseRequest
		if err := rows.Scan(&pr.ID, &pr.ClientID, &pr.WorkOrderID, &pr.RequesterName, &pr.RequestDate, &pr.Status, &pr.CreatedAt, &pr.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase request: %w", err)
		}
		out = append(out, &pr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, pr := range out {
		if err := r.loadItems(pr); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *PurchaseRequestRepo) getOne(query, id, op string) (*entity.PurchaseRequest, error) {
	var pr entity.PurchaseRequest
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&pr.ID, &pr.ClientID, &pr.WorkOrderID, &pr.RequesterName, &pr.RequestDate, &pr.Status, &pr.CreatedAt, &pr.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := r.loadItems(&pr); err != nil {
		return nil, err
	}
	return &pr, nil
}

func (r *PurchaseRequestRepo) loadItems(pr *entity.PurchaseRequest) error {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, purchase_request_id, item_name, quantity, estimated_cost, inventory_id
		 FROM requested_items WHERE purchase_request_id = $1 ORDER BY id`, pr.ID)
	if err != nil {
		return fmt.Errorf("list requested items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.RequestedItem
		if err := rows.Scan(&it.ID, &it.PurchaseRequestID, &it.ItemName, &it.Quantity, &it.EstimatedCost, &it.InventoryID); err != nil {
			return fmt.Errorf("scan requested item: %w", err)
		}
		pr.RequestedItems = append(pr.RequestedItems, it)
	}
	return rows.Err()
}

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre
// PostgreSQL (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste la orden de compra y sus líneas. po_number es único.
func (r *PurchaseOrderRepo) Create(po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, po_number, pr_id, vendor, date_issued, status, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		po.ID, po.PONumber, po.PRID, po.Vendor, po.DateIssued, po.Status, po.TotalAmount, po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	for _, it := range po.Items {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO purchase_order_items (id, purchase_order_id, item_name, quantity, unit_price, total, inventory_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, it.PurchaseOrderID, it.ItemName, it.Quantity, it.UnitPrice, it.Total, it.InventoryID,
		)
		if err != nil {
			return fmt.Errorf("insert purchase order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una orden con sus líneas.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	return r.getOne(`SELECT id, po_number, pr_id, vendor, date_issued, status, total_amount, created_at, updated_at
		FROM purchase_orders WHERE id = $1`, id, "get purchase order")
}

// GetByIDForUpdate obtiene una orden bloqueando la fila para la recepción.
func (r *PurchaseOrderRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.getOne(`SELECT id, po_number, pr_id, vendor, date_issued, status, total_amount, created_at, updated_at
		FROM purchase_orders WHERE id = $1 FOR UPDATE`, id, "get purchase order for update")
}

// UpdateStatus cambia el estado de la orden.
func (r *PurchaseOrderRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	return nil
}

// List lista órdenes de compra, más recientes primero.
func (r *PurchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, po_number, pr_id, vendor, date_issued, status, total_amount, created_at, updated_at
		 FROM purchase_orders ORDER BY date_issued DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseOrder
	for rows.Next() {
		var po entity.PurchaseOrder
		if err := rows.Scan(&po.ID, &po.PONumber, &po.PRID, &po.Vendor, &po.DateIssued, &po.Status, &po.TotalAmount, &po.CreatedAt, &po.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		out = append(out, &po)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, po := range out {
		if err := r.loadItems(po); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *PurchaseOrderRepo) getOne(query, id, op string) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&po.ID, &po.PONumber, &po.PRID, &po.Vendor, &po.DateIssued, &po.Status, &po.TotalAmount, &po.CreatedAt, &po.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := r.loadItems(&po); err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *PurchaseOrderRepo) loadItems(po *entity.PurchaseOrder) error {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, purchase_order_id, item_name, quantity, unit_price, total, inventory_id
		 FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY id`, po.ID)
	if err != nil {
		return fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.PurchaseOrderID, &it.ItemName, &it.Quantity, &it.UnitPrice, &it.Total, &it.InventoryID); err != nil {
			return fmt.Errorf("scan purchase order item: %w", err)
		}
		po.Items = append(po.Items, it)
	}
	return rows.Err()
}
