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

var _ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)

const workOrderColumns = `id, number, title, client_id, asset_id, asset_name, priority, status, description,
	assigned_technician_id, pipeline_case_id, images, created_date, start_date, due_date, completed_date, updated_at`

// WorkOrderRepo implementación de WorkOrderRepository sobre PostgreSQL
// (usable con pool o tx). Las lecturas de orden cargan tareas y repuestos.
type WorkOrderRepo struct {
	q Querier
}

// NewWorkOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkOrderRepository(q Querier) *WorkOrderRepo {
	return &WorkOrderRepo{q: q}
}

// Create persiste la cabecera de una orden de servicio.
func (r *WorkOrderRepo) Create(wo *entity.WorkOrder) error {
	query := `
		INSERT INTO work_orders (` + workOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		wo.ID, wo.Number, wo.Title, wo.ClientID, wo.AssetID, wo.AssetName, wo.Priority, wo.Status,
		wo.Description, wo.AssignedTechnicianID, wo.PipelineCaseID, wo.Images,
		wo.CreatedDate, wo.StartDate, wo.DueDate, wo.CompletedDate, wo.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert work order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden con sus tareas y repuestos consumidos.
func (r *WorkOrderRepo) GetByID(id string) (*entity.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE id = $1`
	var wo entity.WorkOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&wo.ID, &wo.Number, &wo.Title, &wo.ClientID, &wo.AssetID, &wo.AssetName, &wo.Priority, &wo.Status,
		&wo.Description, &wo.AssignedTechnicianID, &wo.PipelineCaseID, &wo.Images,
		&wo.CreatedDate, &wo.StartDate, &wo.DueDate, &wo.CompletedDate, &wo.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work order: %w", err)
	}
	if err := r.loadChildren(&wo); err != nil {
		return nil, err
	}
	return &wo, nil
}

// Update persiste la cabecera de la orden.
func (r *WorkOrderRepo) Update(wo *entity.WorkOrder) error {
	query := `
		UPDATE work_orders
		SET title = $2, asset_id = $3, asset_name = $4, priority = $5, status = $6, description = $7,
		    assigned_technician_id = $8, images = $9, start_date = $10, due_date = $11,
		    completed_date = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		wo.ID, wo.Title, wo.AssetID, wo.AssetName, wo.Priority, wo.Status, wo.Description,
		wo.AssignedTechnicianID, wo.Images, wo.StartDate, wo.DueDate, wo.CompletedDate, wo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update work order: %w", err)
	}
	return nil
}

// List lista órdenes con paginación, más recientes primero.
func (r *WorkOrderRepo) List(limit, offset int) ([]*entity.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders ORDER BY created_date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list work orders: %w", err)
	}
	defer rows.Close()
	return r.scanOrders(rows)
}

// ListByClient lista órdenes de un cliente.
func (r *WorkOrderRepo) ListByClient(clientID string, limit, offset int) ([]*entity.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE client_id = $1 ORDER BY created_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, clientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list work orders by client: %w", err)
	}
	defer rows.Close()
	return r.scanOrders(rows)
}

// CreateTask agrega una tarea al checklist.
func (r *WorkOrderRepo) CreateTask(task *entity.Task) error {
	query := `INSERT INTO work_order_tasks (id, work_order_id, description, is_completed) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, task.ID, task.WorkOrderID, task.Description, task.IsCompleted)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// UpdateTask persiste el estado de una tarea.
func (r *WorkOrderRepo) UpdateTask(task *entity.Task) error {
	query := `UPDATE work_order_tasks SET description = $2, is_completed = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, task.ID, task.Description, task.IsCompleted)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// GetTask obtiene una tarea por ID.
func (r *WorkOrderRepo) GetTask(id string) (*entity.Task, error) {
	query := `SELECT id, work_order_id, description, is_completed FROM work_order_tasks WHERE id = $1`
	var t entity.Task
	err := r.q.QueryRow(context.Background(), query, id).Scan(&t.ID, &t.WorkOrderID, &t.Description, &t.IsCompleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &t, nil
}

// CreatePartUsage registra un repuesto consumido.
func (r *WorkOrderRepo) CreatePartUsage(pu *entity.PartUsage) error {
	query := `
		INSERT INTO part_usages (id, work_order_id, inventory_item_id, part_name, quantity, cost, inventory_deducted)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		pu.ID, pu.WorkOrderID, pu.InventoryItemID, pu.PartName, pu.Quantity, pu.Cost, pu.InventoryDeducted,
	)
	if err != nil {
		return fmt.Errorf("insert part usage: %w", err)
	}
	return nil
}

// UpdatePartUsage persiste una línea de consumo.
func (r *WorkOrderRepo) UpdatePartUsage(pu *entity.PartUsage) error {
	query := `UPDATE part_usages SET part_name = $2, quantity = $3, cost = $4, inventory_deducted = $5 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, pu.ID, pu.PartName, pu.Quantity, pu.Cost, pu.InventoryDeducted)
	if err != nil {
		return fmt.Errorf("update part usage: %w", err)
	}
	return nil
}

// GetPartUsage obtiene una línea de consumo por ID.
func (r *WorkOrderRepo) GetPartUsage(id string) (*entity.PartUsage, error) {
	query := `SELECT id, work_order_id, inventory_item_id, part_name, quantity, cost, inventory_deducted FROM part_usages WHERE id = $1`
	var pu entity.PartUsage
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&pu.ID, &pu.WorkOrderID, &pu.InventoryItemID, &pu.PartName, &pu.Quantity, &pu.Cost, &pu.InventoryDeducted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part usage: %w", err)
	}
	return &pu, nil
}

// DeletePartUsage elimina una línea de consumo.
func (r *WorkOrderRepo) DeletePartUsage(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM part_usages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete part usage: %w", err)
	}
	return nil
}

func (r *WorkOrderRepo) loadChildren(wo *entity.WorkOrder) error {
	taskRows, err := r.q.Query(context.Background(),
		`SELECT id, work_order_id, description, is_completed FROM work_order_tasks WHERE work_order_id = $1 ORDER BY id`,
		wo.ID,
	)
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}
	defer taskRows.Close()
	for taskRows.Next() {
		var t entity.Task
		if err := taskRows.Scan(&t.ID, &t.WorkOrderID, &t.Description, &t.IsCompleted); err != nil {
			return fmt.Errorf("scan task: %w", err)
		}
		wo.Tasks = append(wo.Tasks, t)
	}
	if err := taskRows.Err(); err != nil {
		return err
	}

	puRows, err := r.q.Query(context.Background(),
		`SELECT id, work_order_id, inventory_item_id, part_name, quantity, cost, inventory_deducted FROM part_usages WHERE work_order_id = $1 ORDER BY id`,
		wo.ID,
	)
	if err != nil {
		return fmt.Errorf("list part usages: %w", err)
	}
	defer puRows.Close()
	for puRows.Next() {
		var pu entity.PartUsage
		if err := puRows.Scan(&pu.ID, &pu.WorkOrderID, &pu.InventoryItemID, &pu.PartName, &pu.Quantity, &pu.Cost, &pu.InventoryDeducted); err != nil {
			return fmt.Errorf("scan part usage: %w", err)
		}
		wo.PartsUsed = append(wo.PartsUsed, pu)
	}
	return puRows.Err()
}

func (r *WorkOrderRepo) scanOrders(rows pgx.Rows) ([]*entity.WorkOrder, error) {
	var out []*entity.WorkOrder
	for rows.Next() {
		var wo entity.WorkOrder
		if err := rows.Scan(
			&wo.ID, &wo.Number, &wo.Title, &wo.ClientID, &wo.AssetID, &wo.AssetName, &wo.Priority, &wo.Status,
			&wo.Description, &wo.AssignedTechnicianID, &wo.PipelineCaseID, &wo.Images,
			&wo.CreatedDate, &wo.StartDate, &wo.DueDate, &wo.CompletedDate, &wo.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan work order: %w", err)
		}
		out = append(out, &wo)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, wo := range out {
		if err := r.loadChildren(wo); err != nil {
			return nil, err
		}
	}
	return out, nil
}
