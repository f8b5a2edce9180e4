package repository

import "github.com/jhoicas/Mantenix-api/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para facturas.
// Create persiste cabecera y líneas; GetByID las carga.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	UpdateStatus(id, status string) error
	List(limit, offset int) ([]*entity.Invoice, error)
	ListByClient(clientID string, limit, offset int) ([]*entity.Invoice, error)
}
