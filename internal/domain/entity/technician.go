package entity

import "time"

// Tipos de técnico.
const (
	TechnicianInternal      = "Internal"
	TechnicianSubcontractor = "Subcontractor"
)

// Technician representa un técnico de campo, interno o subcontratado.
type Technician struct {
	ID        string
	Name      string
	Type      string // Internal, Subcontractor
	Role      string // ej: "HVAC Specialist"
	Phone     string
	Company   string // vacío si es interno
	CreatedAt time.Time
	UpdatedAt time.Time
}
