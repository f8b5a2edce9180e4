package repository

import "github.com/jhoicas/Mantenix-api/internal/domain/entity"

// TechnicianRepository define el puerto de persistencia para Technician.
type TechnicianRepository interface {
	Create(tech *entity.Technician) error
	GetByID(id string) (*entity.Technician, error)
	Update(tech *entity.Technician) error
	List(limit, offset int) ([]*entity.Technician, error)
	Delete(id string) error
}
