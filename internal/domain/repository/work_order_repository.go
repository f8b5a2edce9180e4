package repository

import "github.com/jhoicas/Mantenix-api/internal/domain/entity"

// WorkOrderRepository define el puerto de persistencia para órdenes de
// servicio. GetByID carga tareas y repuestos consumidos.
type WorkOrderRepository interface {
	Create(wo *entity.WorkOrder) error
	GetByID(id string) (*entity.WorkOrder, error)
	Update(wo *entity.WorkOrder) error
	List(limit, offset int) ([]*entity.WorkOrder, error)
	ListByClient(clientID string, limit, offset int) ([]*entity.WorkOrder, error)

	CreateTask(task *entity.Task) error
	UpdateTask(task *entity.Task) error
	GetTask(id string) (*entity.Task, error)

	CreatePartUsage(pu *entity.PartUsage) error
	UpdatePartUsage(pu *entity.PartUsage) error
	GetPartUsage(id string) (*entity.PartUsage, error)
	DeletePartUsage(id string) error
}
