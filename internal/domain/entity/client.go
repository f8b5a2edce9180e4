package entity

import "time"

// Client representa un cliente/sitio administrado (facility management).
type Client struct {
	ID            string
	Name          string
	Type          string // ej: "Office Tower", "Hospital", "Mall"
	Location      string
	ContactPerson string
	ContactPhone  string
	Description   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
