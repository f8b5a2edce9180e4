package repository

import "github.com/jhoicas/Mantenix-api/internal/domain/entity"

// PurchaseRequestRepository define el puerto de persistencia para PRs.
// Create persiste cabecera e ítems; GetByID los carga.
type PurchaseRequestRepository interface {
	Create(pr *entity.PurchaseRequest) error
	GetByID(id string) (*entity.PurchaseRequest, error)
	// GetByIDForUpdate bloquea la fila para decisiones y emisión de PO.
	GetByIDForUpdate(id string) (*entity.PurchaseRequest, error)
	UpdateStatus(id, status string) error
	List(limit, offset int) ([]*entity.PurchaseRequest, error)
}

// PurchaseOrderRepository define el puerto de persistencia para POs.
type PurchaseOrderRepository interface {
	Create(po *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetByIDForUpdate bloquea la fila para la recepción de mercancía.
	GetByIDForUpdate(id string) (*entity.PurchaseOrder, error)
	UpdateStatus(id, status string) error
	List(limit, offset int) ([]*entity.PurchaseOrder, error)
}
