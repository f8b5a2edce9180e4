package billing

import (
	"context"

	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
)

// InvoicePDFGenerator renderiza la representación imprimible de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, client *entity.Client) ([]byte, error)
}
