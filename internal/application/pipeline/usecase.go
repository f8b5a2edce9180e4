package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Mantenix-api/internal/application/dto"
	"github.com/jhoicas/Mantenix-api/internal/domain"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/pipeline"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

// UseCase gestiona el ciclo comercial Request → Survey → Quotation → Won.
// Cada transición valida la etapa actual bajo bloqueo de fila; el flujo es
// unidireccional y sin retrocesos.
type UseCase struct {
	txRunner TxRunner
	caseRepo repository.PipelineCaseRepository
}

// NewUseCase construye el caso de uso del pipeline comercial.
func NewUseCase(txRunner TxRunner, caseRepo repository.PipelineCaseRepository) *UseCase {
	return &UseCase{txRunner: txRunner, caseRepo: caseRepo}
}

// CreateRequest abre un caso nuevo en etapa Request.
func (uc *UseCase) CreateRequest(ctx context.Context, in dto.CreateCaseRequest) (*dto.PipelineCaseResponse, error) {
	if in.ClientID == "" || in.Title == "" {
		return nil, domain.ErrInvalidInput
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}
	if priority != entity.PriorityLow && priority != entity.PriorityMedium && priority != entity.PriorityHigh {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	pc := &entity.PipelineCase{
		ID:          uuid.New().String(),
		ClientID:    in.ClientID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    priority,
		Category:    in.Category,
		AssetID:     in.AssetID,
		Stage:       entity.StageRequest,
		QuoteAmount: decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.txRunner.RunPipeline(ctx, func(caseRepo repository.PipelineCaseRepository) error {
		return caseRepo.Create(pc)
	})
	if err != nil {
		return nil, err
	}
	return toCaseResponse(pc), nil
}

// ScheduleSurvey agenda la visita técnica: transición Request → Survey.
// La fecha llega como YYYY-MM-DD.
func (uc *UseCase) ScheduleSurvey(ctx context.Context, id string, in dto.ScheduleSurveyRequest) (*dto.PipelineCaseResponse, error) {
	if in.SurveyorName == "" {
		return nil, domain.ErrInvalidInput
	}
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	var out *entity.PipelineCase
	err = uc.transition(ctx, id, entity.StageSurvey, func(pc *entity.PipelineCase) error {
		pc.SurveyScheduledDate = &date
		pc.SurveyorName = in.SurveyorName
		if in.AssetID != "" {
			pc.AssetID = in.AssetID
		}
		out = pc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCaseResponse(out), nil
}

// SubmitSurveyReport registra el informe de la visita: transición
// Survey → Quotation. Reinicia las líneas de cotización y deja el monto en
// cero; la cotización se construye desde el informe, nunca lo precede.
func (uc *UseCase) SubmitSurveyReport(ctx context.Context, id string, in dto.SurveyReportRequest) (*dto.PipelineCaseResponse, error) {
	if in.RootCause == "" || in.ProposedRemedy == "" {
		return nil, domain.ErrInvalidInput
	}

	var out *entity.PipelineCase
	err := uc.txRunner.RunPipeline(ctx, func(caseRepo repository.PipelineCaseRepository) error {
		pc, err := lockCase(caseRepo, id)
		if err != nil {
			return err
		}
		if !pipeline.CanAdvance(pc.Stage, entity.StageQuotation) {
			return domain.ErrInvalidState
		}
		for _, li := range pc.QuoteLineItems {
			if err := caseRepo.DeleteLineItem(li.ID); err != nil {
				return err
			}
		}
		pc.QuoteLineItems = nil
		pc.QuoteAmount = decimal.Zero
		pc.QuoteSent = false
		pc.Stage = entity.StageQuotation
		pc.RootCause = in.RootCause
		pc.ProposedRemedy = in.ProposedRemedy
		pc.PartsNeeded = in.PartsNeeded
		pc.UpdatedAt = time.Now()
		out = pc
		return caseRepo.Update(pc)
	})
	if err != nil {
		return nil, err
	}
	return toCaseResponse(out), nil
}

// AddQuoteLineItem agrega una línea a la cotización de un caso en etapa
// Quotation y recalcula el monto total. Total de línea = cantidad × precio.
func (uc *UseCase) AddQuoteLineItem(ctx context.Context, caseID string, in dto.AddQuoteLineItemRequest) (*dto.PipelineCaseResponse, error) {
	if in.Description == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var out *entity.PipelineCase
	err := uc.txRunner.RunPipeline(ctx, func(caseRepo repository.PipelineCaseRepository) error {
		pc, err := lockCase(caseRepo, caseID)
		if err != nil {
			return err
		}
		if pc.Stage != entity.StageQuotation {
			return domain.ErrInvalidState
		}
		li := &entity.QuoteLineItem{
			ID:              uuid.New().String(),
			PipelineCaseID:  pc.ID,
			InventoryItemID: in.InventoryItemID,
			Description:     in.Description,
			Quantity:        in.Quantity,
			UnitPrice:       in.UnitPrice,
			Total:           in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity))),
		}
		if err := caseRepo.CreateLineItem(li); err != nil {
			return err
		}
		pc.QuoteLineItems = append(pc.QuoteLineItems, *li)
		pc.RecalcQuoteAmount()
		pc.UpdatedAt = time.Now()
		out = pc
		return caseRepo.Update(pc)
	})
	if err != nil {
		return nil, err
	}
	return toCaseResponse(out), nil
}

// RemoveQuoteLineItem elimina una línea de la cotización y recalcula el monto.
func (uc *UseCase) RemoveQuoteLineItem(ctx context.Context, caseID, lineID string) (*dto.PipelineCaseResponse, error) {
	var out *entity.PipelineCase
	err := uc.txRunner.RunPipeline(ctx, func(caseRepo repository.PipelineCaseRepository) error {
		pc, err := lockCase(caseRepo, caseID)
		if err != nil {
			return err
		}
		if pc.Stage != entity.StageQuotation {
			return domain.ErrInvalidState
		}
		idx := -1
		for i, li := range pc.QuoteLineItems {
			if li.ID == lineID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return domain.ErrNotFound
		}
		if err := caseRepo.DeleteLineItem(lineID); err != nil {
			return err
		}
		pc.QuoteLineItems = append(pc.QuoteLineItems[:idx], pc.QuoteLineItems[idx+1:]...)
		pc.RecalcQuoteAmount()
		pc.UpdatedAt = time.Now()
		out = pc
		return caseRepo.Update(pc)
	})
	if err != nil {
		return nil, err
	}
	return toCaseResponse(out), nil
}

// FinalizeQuote marca la cotización como enviada al cliente. Falla con
// ErrInvalidState si el caso no está en Quotation o la cotización está vacía.
func (uc *UseCase) FinalizeQuote(ctx context.Context, id string) (*dto.PipelineCaseResponse, error) {
	var out *entity.PipelineCase
	err := uc.txRunner.RunPipeline(ctx, func(caseRepo repository.PipelineCaseRepository) error {
		pc, err := lockCase(caseRepo, id)
		if err != nil {
			return err
		}
		if pc.Stage != entity.StageQuotation {
			return domain.ErrInvalidState
		}
		if !pc.QuoteAmount.IsPositive() {
			return domain.ErrInvalidState
		}
		pc.QuoteSent = true
		pc.UpdatedAt = time.Now()
		out = pc
		return caseRepo.Update(pc)
	})
	if err != nil {
		return nil, err
	}
	return toCaseResponse(out), nil
}

// Approve registra la aceptación del cliente: transición Quotation → Won.
func (uc *UseCase) Approve(ctx context.Context, id string) (*dto.PipelineCaseResponse, error) {
	var out *entity.PipelineCase
	err := uc.transition(ctx, id, entity.StageWon, func(pc *entity.PipelineCase) error {
		out = pc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCaseResponse(out), nil
}

// MarkLost cierra un caso como perdido desde cualquier etapa no terminal.
func (uc *UseCase) MarkLost(ctx context.Context, id string, in dto.MarkLostRequest) (*dto.PipelineCaseResponse, error) {
	var out *entity.PipelineCase
	err := uc.txRunner.RunPipeline(ctx, func(caseRepo repository.PipelineCaseRepository) error {
		pc, err := lockCase(caseRepo, id)
		if err != nil {
			return err
		}
		if !pipeline.CanMarkLost(pc.Stage) {
			return domain.ErrInvalidState
		}
		pc.Stage = entity.StageLost
		pc.LostReason = in.Reason
		pc.UpdatedAt = time.Now()
		out = pc
		return caseRepo.Update(pc)
	})
	if err != nil {
		return nil, err
	}
	return toCaseResponse(out), nil
}

// GetByID obtiene un caso con sus líneas de cotización.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.PipelineCaseResponse, error) {
	pc, err := uc.caseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pc == nil {
		return nil, domain.ErrNotFound
	}
	return toCaseResponse(pc), nil
}

// List lista casos; con stage no vacío filtra por etapa.
func (uc *UseCase) List(ctx context.Context, stage string, limit, offset int) (*dto.PipelineListResponse, error) {
	var (
		cases []*entity.PipelineCase
		err   error
	)
	if stage != "" {
		cases, err = uc.caseRepo.ListByStage(stage, limit, offset)
	} else {
		cases, err = uc.caseRepo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	out := &dto.PipelineListResponse{
		Items: make([]dto.PipelineCaseResponse, 0, len(cases)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(cases)},
	}
	for _, pc := range cases {
		out.Items = append(out.Items, *toCaseResponse(pc))
	}
	return out, nil
}

// transition aplica una transición de etapa simple bajo bloqueo de fila.
// mutate corre después de validar la transición y antes de persistir.
func (uc *UseCase) transition(ctx context.Context, id, target string, mutate func(pc *entity.PipelineCase) error) error {
	return uc.txRunner.RunPipeline(ctx, func(caseRepo repository.PipelineCaseRepository) error {
		pc, err := lockCase(caseRepo, id)
		if err != nil {
			return err
		}
		if !pipeline.CanAdvance(pc.Stage, target) {
			return domain.ErrInvalidState
		}
		if err := mutate(pc); err != nil {
			return err
		}
		pc.Stage = target
		pc.UpdatedAt = time.Now()
		return caseRepo.Update(pc)
	})
}

func lockCase(caseRepo repository.PipelineCaseRepository, id string) (*entity.PipelineCase, error) {
	pc, err := caseRepo.GetByIDForUpdate(id)
	if err != nil {
		return nil, err
	}
	if pc == nil {
		return nil, domain.ErrNotFound
	}
	return pc, nil
}

func toCaseResponse(pc *entity.PipelineCase) *dto.PipelineCaseResponse {
	lines := make([]dto.QuoteLineItemResponse, 0, len(pc.QuoteLineItems))
	for _, li := range pc.QuoteLineItems {
		lines = append(lines, dto.QuoteLineItemResponse{
			ID:              li.ID,
			Description:     li.Description,
			Quantity:        li.Quantity,
			UnitPrice:       li.UnitPrice,
			Total:           li.Total,
			InventoryItemID: li.InventoryItemID,
		})
	}
	return &dto.PipelineCaseResponse{
		ID:                  pc.ID,
		ClientID:            pc.ClientID,
		Title:               pc.Title,
		Description:         pc.Description,
		Priority:            pc.Priority,
		Category:            pc.Category,
		Stage:               pc.Stage,
		Progress:            pipeline.Progress(pc.Stage),
		AssetID:             pc.AssetID,
		SurveyScheduledDate: pc.SurveyScheduledDate,
		SurveyorName:        pc.SurveyorName,
		RootCause:           pc.RootCause,
		ProposedRemedy:      pc.ProposedRemedy,
		PartsNeeded:         pc.PartsNeeded,
		QuoteLineItems:      lines,
		QuoteAmount:         pc.QuoteAmount,
		QuoteSent:           pc.QuoteSent,
		ConvertedSOID:       pc.ConvertedSOID,
		LostReason:          pc.LostReason,
		CreatedAt:           pc.CreatedAt,
		UpdatedAt:           pc.UpdatedAt,
	}
}
