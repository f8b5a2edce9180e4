package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mantenix-api/internal/application/dto"
	"github.com/jhoicas/Mantenix-api/internal/domain"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

// UseCase compone facturas a partir del estado de órdenes y cotizaciones.
// Es lectura pura sobre los otros libros: facturar nunca muta pipeline,
// órdenes ni inventario.
type UseCase struct {
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	pdfGen      InvoicePDFGenerator
}

// NewUseCase construye el caso de uso de facturación.
func NewUseCase(invoiceRepo repository.InvoiceRepository, clientRepo repository.ClientRepository, pdfGen InvoicePDFGenerator) *UseCase {
	return &UseCase{invoiceRepo: invoiceRepo, clientRepo: clientRepo, pdfGen: pdfGen}
}

// CreateInvoice emite una factura en estado Pending. El monto es la suma de
// las líneas y el vencimiento queda a 30 días de la emisión.
func (uc *UseCase) CreateInvoice(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.ClientID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.Description == "" || it.Amount.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}
	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	inv := &entity.Invoice{
		ID:            uuid.New().String(),
		InvoiceNumber: entity.NewInvoiceNumber(now),
		ClientID:      in.ClientID,
		DateIssued:    now,
		DueDate:       now.AddDate(0, 0, entity.InvoiceDueDays),
		Status:        entity.InvoiceStatusPending,
		WorkOrderRef:  in.WorkOrderRef,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, it := range in.Items {
		inv.Items = append(inv.Items, entity.InvoiceItem{
			ID:          uuid.New().String(),
			InvoiceID:   inv.ID,
			Description: it.Description,
			Amount:      it.Amount,
		})
	}
	inv.RecalcAmount()

	if err := uc.invoiceRepo.Create(inv); err != nil {
		return nil, err
	}
	return toResponse(inv), nil
}

// SetStatus cambia el estado de cobro de la factura.
func (uc *UseCase) SetStatus(ctx context.Context, id string, in dto.SetInvoiceStatusRequest) (*dto.InvoiceResponse, error) {
	switch in.Status {
	case entity.InvoiceStatusDraft, entity.InvoiceStatusPending, entity.InvoiceStatusPaid, entity.InvoiceStatusOverdue:
	default:
		return nil, domain.ErrInvalidInput
	}
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.invoiceRepo.UpdateStatus(id, in.Status); err != nil {
		return nil, err
	}
	inv.Status = in.Status
	return toResponse(inv), nil
}

// GetByID obtiene una factura con sus líneas.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(inv), nil
}

// List lista facturas; con clientID no vacío filtra por cliente.
func (uc *UseCase) List(ctx context.Context, clientID string, limit, offset int) (*dto.InvoiceListResponse, error) {
	var (
		invs []*entity.Invoice
		err  error
	)
	if clientID != "" {
		invs, err = uc.invoiceRepo.ListByClient(clientID, limit, offset)
	} else {
		invs, err = uc.invoiceRepo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	out := &dto.InvoiceListResponse{
		Items: make([]dto.InvoiceResponse, 0, len(invs)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(invs)},
	}
	for _, inv := range invs {
		out.Items = append(out.Items, *toResponse(inv))
	}
	return out, nil
}

// GetPDF genera la representación PDF de una factura.
func (uc *UseCase) GetPDF(ctx context.Context, id string) ([]byte, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	client, err := uc.clientRepo.GetByID(inv.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return uc.pdfGen.GenerateInvoicePDF(ctx, inv, client)
}

func toResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	items := make([]dto.InvoiceItemResponse, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, dto.InvoiceItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Amount:      it.Amount,
		})
	}
	return &dto.InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		ClientID:      inv.ClientID,
		DateIssued:    inv.DateIssued,
		DueDate:       inv.DueDate,
		Amount:        inv.Amount,
		Status:        inv.Status,
		Items:         items,
		WorkOrderRef:  inv.WorkOrderRef,
	}
}
