package entity

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Números visibles de documentos. No son claves primarias (eso es el UUID);
// son los identificadores cortos que circulan con clientes y proveedores.

// NewWorkOrderNumber genera un número de orden de servicio, ej: "SO-493021".
func NewWorkOrderNumber() string {
	return fmt.Sprintf("SO-%06d", rand.IntN(1_000_000))
}

// NewPONumber genera un número de orden de compra, ej: "PO-2024-4831".
func NewPONumber(now time.Time) string {
	return fmt.Sprintf("PO-%d-%04d", now.Year(), rand.IntN(10_000))
}

// NewInvoiceNumber genera un número de factura, ej: "FAC-2024-103".
func NewInvoiceNumber(now time.Time) string {
	return fmt.Sprintf("FAC-%d-%03d", now.Year(), rand.IntN(1_000))
}
