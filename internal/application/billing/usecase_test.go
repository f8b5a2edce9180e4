package billing

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mantenix-api/internal/application/dto"
	"github.com/jhoicas/Mantenix-api/internal/domain"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
)

type fakeInvoiceRepo struct {
	invoices map[string]*entity.Invoice
}

func (f *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	cp := *inv
	f.invoices[inv.ID] = &cp
	return nil
}

func (f *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInvoiceRepo) UpdateStatus(id, status string) error {
	inv, ok := f.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Status = status
	return nil
}

func (f *fakeInvoiceRepo) List(limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range f.invoices {
		cp := *inv
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeInvoiceRepo) ListByClient(clientID string, limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range f.invoices {
		if inv.ClientID == clientID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func (f *fakeClientRepo) Create(c *entity.Client) error {
	cp := *c
	f.clients[c.ID] = &cp
	return nil
}

func (f *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeClientRepo) Update(*entity.Client) error                 { return nil }
func (f *fakeClientRepo) List(int, int) ([]*entity.Client, error)     { return nil, nil }
func (f *fakeClientRepo) Delete(string) error                         { return nil }

type fakePDFGen struct{}

func (fakePDFGen) GenerateInvoicePDF(ctx context.Context, inv *entity.Invoice, client *entity.Client) ([]byte, error) {
	return []byte("%PDF " + inv.InvoiceNumber + " " + client.Name), nil
}

func newTestUseCase() *UseCase {
	invoiceRepo := &fakeInvoiceRepo{invoices: make(map[string]*entity.Invoice)}
	clientRepo := &fakeClientRepo{clients: map[string]*entity.Client{
		"client-1": {ID: "client-1", Name: "Torre Empresarial Norte"},
	}}
	return NewUseCase(invoiceRepo, clientRepo, fakePDFGen{})
}

func TestCreateInvoice_MontoYVencimiento(t *testing.T) {
	uc := newTestUseCase()

	inv, err := uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		ClientID: "client-1",
		Items: []dto.InvoiceItemDTO{
			{Description: "Reemplazo de compresor", Amount: decimal.NewFromInt(850)},
			{Description: "Mano de obra", Amount: decimal.NewFromInt(200)},
		},
		WorkOrderRef: "SO-493021",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.InvoiceStatusPending, inv.Status)
	assert.True(t, strings.HasPrefix(inv.InvoiceNumber, "FAC-"))
	assert.True(t, inv.Amount.Equal(decimal.NewFromInt(1050)))
	assert.Equal(t, "SO-493021", inv.WorkOrderRef)

	// Vencimiento = emisión + 30 días
	wantDue := inv.DateIssued.AddDate(0, 0, 30)
	assert.WithinDuration(t, wantDue, inv.DueDate, time.Second)
}

func TestCreateInvoice_SinLineasFalla(t *testing.T) {
	uc := newTestUseCase()

	_, err := uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{ClientID: "client-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateInvoice_ClienteInexistente(t *testing.T) {
	uc := newTestUseCase()

	_, err := uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		ClientID: "no-existe",
		Items:    []dto.InvoiceItemDTO{{Description: "x", Amount: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSetStatus(t *testing.T) {
	uc := newTestUseCase()
	inv, err := uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		ClientID: "client-1",
		Items:    []dto.InvoiceItemDTO{{Description: "Servicio", Amount: decimal.NewFromInt(100)}},
	})
	require.NoError(t, err)

	got, err := uc.SetStatus(context.Background(), inv.ID, dto.SetInvoiceStatusRequest{Status: entity.InvoiceStatusPaid})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, got.Status)

	_, err = uc.SetStatus(context.Background(), inv.ID, dto.SetInvoiceStatusRequest{Status: "Void"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetPDF(t *testing.T) {
	uc := newTestUseCase()
	inv, err := uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		ClientID: "client-1",
		Items:    []dto.InvoiceItemDTO{{Description: "Servicio", Amount: decimal.NewFromInt(100)}},
	})
	require.NoError(t, err)

	pdf, err := uc.GetPDF(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Contains(t, string(pdf), inv.InvoiceNumber)

	_, err = uc.GetPDF(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
