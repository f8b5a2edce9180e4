package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mantenix-api/internal/application/dto"
	"github.com/jhoicas/Mantenix-api/internal/domain"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

// Repositorios en memoria para probar el pipeline sin BD.

type fakeCaseRepo struct {
	cases map[string]*entity.PipelineCase
	lines map[string]*entity.QuoteLineItem
}

func newFakeCaseRepo() *fakeCaseRepo {
	return &fakeCaseRepo{
		cases: make(map[string]*entity.PipelineCase),
		lines: make(map[string]*entity.QuoteLineItem),
	}
}

func (f *fakeCaseRepo) Create(pc *entity.PipelineCase) error {
	cp := *pc
	f.cases[pc.ID] = &cp
	return nil
}

func (f *fakeCaseRepo) GetByID(id string) (*entity.PipelineCase, error) {
	pc, ok := f.cases[id]
	if !ok {
		return nil, nil
	}
	cp := *pc
	cp.QuoteLineItems = nil
	for _, li := range f.lines {
		if li.PipelineCaseID == id {
			cp.QuoteLineItems = append(cp.QuoteLineItems, *li)
		}
	}
	return &cp, nil
}

func (f *fakeCaseRepo) GetByIDForUpdate(id string) (*entity.PipelineCase, error) {
	return f.GetByID(id)
}

func (f *fakeCaseRepo) Update(pc *entity.PipelineCase) error {
	if _, ok := f.cases[pc.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *pc
	f.cases[pc.ID] = &cp
	return nil
}

func (f *fakeCaseRepo) CreateLineItem(li *entity.QuoteLineItem) error {
	cp := *li
	f.lines[li.ID] = &cp
	return nil
}

func (f *fakeCaseRepo) DeleteLineItem(id string) error {
	delete(f.lines, id)
	return nil
}

func (f *fakeCaseRepo) ListLineItems(caseID string) ([]entity.QuoteLineItem, error) {
	var out []entity.QuoteLineItem
	for _, li := range f.lines {
		if li.PipelineCaseID == caseID {
			out = append(out, *li)
		}
	}
	return out, nil
}

func (f *fakeCaseRepo) ListByStage(stage string, limit, offset int) ([]*entity.PipelineCase, error) {
	var out []*entity.PipelineCase
	for id, pc := range f.cases {
		if pc.Stage == stage {
			got, _ := f.GetByID(id)
			out = append(out, got)
		}
	}
	return out, nil
}

func (f *fakeCaseRepo) List(limit, offset int) ([]*entity.PipelineCase, error) {
	var out []*entity.PipelineCase
	for id := range f.cases {
		got, _ := f.GetByID(id)
		out = append(out, got)
	}
	return out, nil
}

type fakeWORepo struct {
	orders map[string]*entity.WorkOrder
}

func newFakeWORepo() *fakeWORepo {
	return &fakeWORepo{orders: make(map[string]*entity.WorkOrder)}
}

func (f *fakeWORepo) Create(wo *entity.WorkOrder) error {
	cp := *wo
	f.orders[wo.ID] = &cp
	return nil
}

func (f *fakeWORepo) GetByID(id string) (*entity.WorkOrder, error) {
	wo, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *wo
	return &cp, nil
}

func (f *fakeWORepo) Update(wo *entity.WorkOrder) error {
	cp := *wo
	f.orders[wo.ID] = &cp
	return nil
}

func (f *fakeWORepo) List(limit, offset int) ([]*entity.WorkOrder, error)         { return nil, nil }
func (f *fakeWORepo) ListByClient(string, int, int) ([]*entity.WorkOrder, error)  { return nil, nil }
func (f *fakeWORepo) CreateTask(*entity.Task) error                               { return nil }
func (f *fakeWORepo) UpdateTask(*entity.Task) error                               { return nil }
func (f *fakeWORepo) GetTask(string) (*entity.Task, error)                        { return nil, nil }
func (f *fakeWORepo) CreatePartUsage(*entity.PartUsage) error                     { return nil }
func (f *fakeWORepo) UpdatePartUsage(*entity.PartUsage) error                     { return nil }
func (f *fakeWORepo) GetPartUsage(string) (*entity.PartUsage, error)              { return nil, nil }
func (f *fakeWORepo) DeletePartUsage(string) error                                { return nil }

type fakePipelineTxRunner struct {
	caseRepo *fakeCaseRepo
	woRepo   *fakeWORepo
}

func (f *fakePipelineTxRunner) RunPipeline(ctx context.Context, fn func(repository.PipelineCaseRepository) error) error {
	return fn(f.caseRepo)
}

func (f *fakePipelineTxRunner) RunConversion(ctx context.Context, fn func(repository.PipelineCaseRepository, repository.WorkOrderRepository) error) error {
	return fn(f.caseRepo, f.woRepo)
}

func newTestUseCase() (*UseCase, *fakeCaseRepo, *fakeWORepo) {
	caseRepo := newFakeCaseRepo()
	woRepo := newFakeWORepo()
	runner := &fakePipelineTxRunner{caseRepo: caseRepo, woRepo: woRepo}
	return NewUseCase(runner, caseRepo), caseRepo, woRepo
}

func createCase(t *testing.T, uc *UseCase) *dto.PipelineCaseResponse {
	t.Helper()
	pc, err := uc.CreateRequest(context.Background(), dto.CreateCaseRequest{
		ClientID:    "client-1",
		Title:       "AC no enfría en piso 3",
		Description: "Unidad split gotea y no enfría",
		Priority:    entity.PriorityHigh,
		Category:    "HVAC",
	})
	require.NoError(t, err)
	return pc
}

// advanceToQuotation lleva un caso recién creado hasta la etapa Quotation.
func advanceToQuotation(t *testing.T, uc *UseCase, id string) {
	t.Helper()
	_, err := uc.ScheduleSurvey(context.Background(), id, dto.ScheduleSurveyRequest{
		Date: "2026-09-15", SurveyorName: "C. Ramos",
	})
	require.NoError(t, err)
	_, err = uc.SubmitSurveyReport(context.Background(), id, dto.SurveyReportRequest{
		RootCause: "Compresor degradado", ProposedRemedy: "Reemplazo de compresor",
	})
	require.NoError(t, err)
}

func TestCreateRequest_EtapaInicial(t *testing.T) {
	uc, _, _ := newTestUseCase()
	pc := createCase(t, uc)

	assert.Equal(t, entity.StageRequest, pc.Stage)
	assert.Equal(t, 25, pc.Progress)
	assert.True(t, pc.QuoteAmount.IsZero())
}

func TestFlujoFeliz_RequestHastaWon(t *testing.T) {
	uc, _, _ := newTestUseCase()
	pc := createCase(t, uc)
	advanceToQuotation(t, uc, pc.ID)

	_, err := uc.AddQuoteLineItem(context.Background(), pc.ID, dto.AddQuoteLineItemRequest{
		Description: "Compresor 3HP", Quantity: 1, UnitPrice: decimal.NewFromInt(850),
	})
	require.NoError(t, err)
	got, err := uc.AddQuoteLineItem(context.Background(), pc.ID, dto.AddQuoteLineItemRequest{
		Description: "Mano de obra", Quantity: 4, UnitPrice: decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	assert.True(t, got.QuoteAmount.Equal(decimal.NewFromInt(1050)))

	_, err = uc.FinalizeQuote(context.Background(), pc.ID)
	require.NoError(t, err)

	won, err := uc.Approve(context.Background(), pc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StageWon, won.Stage)
	assert.Equal(t, 100, won.Progress)
}

func TestApprove_SinLineasDeCotizacion(t *testing.T) {
	uc, _, _ := newTestUseCase()
	pc := createCase(t, uc)
	advanceToQuotation(t, uc, pc.ID)

	// El cliente puede aceptar aunque la cotización no tenga líneas
	won, err := uc.Approve(context.Background(), pc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StageWon, won.Stage)
	assert.True(t, won.QuoteAmount.IsZero())
}

func TestApprove_DesdeRequestFalla(t *testing.T) {
	uc, _, _ := newTestUseCase()
	pc := createCase(t, uc)

	_, err := uc.Approve(context.Background(), pc.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestScheduleSurvey_NoRetrocede(t *testing.T) {
	uc, _, _ := newTestUseCase()
	pc := createCase(t, uc)
	advanceToQuotation(t, uc, pc.ID)

	// Un caso en Quotation no puede volver a Survey
	_, err := uc.ScheduleSurvey(context.Background(), pc.ID, dto.ScheduleSurveyRequest{
		Date: "2026-09-20", SurveyorName: "C. Ramos",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestSubmitSurveyReport_ReiniciaCotizacion(t *testing.T) {
	uc, caseRepo, _ := newTestUseCase()
	pc := createCase(t, uc)
	advanceToQuotation(t, uc, pc.ID)

	_, err := uc.AddQuoteLineItem(context.Background(), pc.ID, dto.AddQuoteLineItemRequest{
		Description: "Repuesto", Quantity: 2, UnitPrice: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	// Forzamos el caso de vuelta a Survey para simular un informe corregido
	raw := caseRepo.cases[pc.ID]
	raw.Stage = entity.StageSurvey

	got, err := uc.SubmitSurveyReport(context.Background(), pc.ID, dto.SurveyReportRequest{
		RootCause: "Diagnóstico corregido", ProposedRemedy: "Limpieza de serpentín",
	})
	require.NoError(t, err)
	assert.Empty(t, got.QuoteLineItems)
	assert.True(t, got.QuoteAmount.IsZero())
	assert.False(t, got.QuoteSent)
}

func TestQuoteAmount_RecalculoAltaYBaja(t *testing.T) {
	uc, _, _ := newTestUseCase()
	pc := createCase(t, uc)
	advanceToQuotation(t, uc, pc.ID)

	first, err := uc.AddQuoteLineItem(context.Background(), pc.ID, dto.AddQuoteLineItemRequest{
		Description: "Filtro", Quantity: 3, UnitPrice: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	assert.True(t, first.QuoteAmount.Equal(decimal.NewFromInt(60)))

	lineID := first.QuoteLineItems[0].ID
	after, err := uc.RemoveQuoteLineItem(context.Background(), pc.ID, lineID)
	require.NoError(t, err)
	assert.True(t, after.QuoteAmount.IsZero())
}

func TestFinalizeQuote_VaciaFalla(t *testing.T) {
	uc, _, _ := newTestUseCase()
	pc := createCase(t, uc)
	advanceToQuotation(t, uc, pc.ID)

	_, err := uc.FinalizeQuote(context.Background(), pc.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestMarkLost_DesdeNoTerminal(t *testing.T) {
	uc, _, _ := newTestUseCase()
	pc := createCase(t, uc)

	lost, err := uc.MarkLost(context.Background(), pc.ID, dto.MarkLostRequest{Reason: "Presupuesto insuficiente"})
	require.NoError(t, err)
	assert.Equal(t, entity.StageLost, lost.Stage)
	assert.Equal(t, "Presupuesto insuficiente", lost.LostReason)

	// Un caso perdido es terminal
	_, err = uc.MarkLost(context.Background(), pc.ID, dto.MarkLostRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func winCase(t *testing.T, uc *UseCase) *dto.PipelineCaseResponse {
	t.Helper()
	pc := createCase(t, uc)
	advanceToQuotation(t, uc, pc.ID)
	_, err := uc.AddQuoteLineItem(context.Background(), pc.ID, dto.AddQuoteLineItemRequest{
		Description: "Compresor 3HP", Quantity: 1, UnitPrice: decimal.NewFromInt(850),
	})
	require.NoError(t, err)
	_, err = uc.FinalizeQuote(context.Background(), pc.ID)
	require.NoError(t, err)
	won, err := uc.Approve(context.Background(), pc.ID)
	require.NoError(t, err)
	return won
}

func TestConvert_CasoGanado(t *testing.T) {
	uc, _, woRepo := newTestUseCase()
	won := winCase(t, uc)

	wo, err := uc.Convert(context.Background(), won.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.WorkOrderOpen, wo.Status)
	assert.True(t, strings.HasPrefix(wo.Number, "SO-"))
	assert.Equal(t, won.Title, wo.Title)
	assert.Equal(t, "HVAC", wo.AssetName)
	assert.Empty(t, wo.Tasks)
	assert.Empty(t, wo.PartsUsed)
	assert.Contains(t, wo.Description, "SOURCED FROM QUOTE")
	assert.Contains(t, wo.Description, "Compresor degradado - Reemplazo de compresor")
	assert.Contains(t, wo.Description, "Agreed Value: $850.00")

	// El caso queda ligado a la orden creada
	got, err := uc.GetByID(context.Background(), won.ID)
	require.NoError(t, err)
	assert.Equal(t, wo.ID, got.ConvertedSOID)
	_, ok := woRepo.orders[wo.ID]
	assert.True(t, ok)
}

func TestConvert_DobleConversionFalla(t *testing.T) {
	uc, _, _ := newTestUseCase()
	won := winCase(t, uc)

	first, err := uc.Convert(context.Background(), won.ID)
	require.NoError(t, err)

	_, err = uc.Convert(context.Background(), won.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyConverted)

	// El vínculo original no cambia
	got, err := uc.GetByID(context.Background(), won.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ConvertedSOID)
}

func TestConvert_NoGanadoFalla(t *testing.T) {
	uc, _, _ := newTestUseCase()
	pc := createCase(t, uc)

	_, err := uc.Convert(context.Background(), pc.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
