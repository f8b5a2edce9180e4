package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Mantenix-api/internal/application/dto"
	"github.com/jhoicas/Mantenix-api/internal/domain"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

// Nombre de activo por defecto cuando el caso no referencia categoría alguna.
const fallbackAssetName = "General Asset"

// Convert convierte un caso ganado en una orden de servicio.
// Precondiciones: etapa Won y conversión no realizada antes; la creación de la
// orden y la marca ConvertedSOID se escriben en la misma transacción de BD,
// así el caso nunca queda convertido dos veces.
func (uc *UseCase) Convert(ctx context.Context, caseID string) (*dto.WorkOrderResponse, error) {
	var created *entity.WorkOrder
	err := uc.txRunner.RunConversion(ctx, func(
		caseRepo repository.PipelineCaseRepository,
		woRepo repository.WorkOrderRepository,
	) error {
		pc, err := lockCase(caseRepo, caseID)
		if err != nil {
			return err
		}
		if pc.ConvertedSOID != "" {
			return domain.ErrAlreadyConverted
		}
		if pc.Stage != entity.StageWon {
			return domain.ErrInvalidState
		}

		now := time.Now()
		wo := &entity.WorkOrder{
			ID:             uuid.New().String(),
			Number:         entity.NewWorkOrderNumber(),
			Title:          pc.Title,
			ClientID:       pc.ClientID,
			AssetID:        pc.AssetID,
			AssetName:      assetNameFor(pc),
			Priority:       pc.Priority,
			Status:         entity.WorkOrderOpen,
			Description:    synthesizeDescription(pc),
			PipelineCaseID: pc.ID,
			Tasks:          []entity.Task{},
			PartsUsed:      []entity.PartUsage{},
			Images:         []string{},
			CreatedDate:    now,
			UpdatedAt:      now,
		}
		if err := woRepo.Create(wo); err != nil {
			return err
		}
		pc.ConvertedSOID = wo.ID
		pc.UpdatedAt = now
		if err := caseRepo.Update(pc); err != nil {
			return err
		}
		created = wo
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toWorkOrderResponse(created), nil
}

// synthesizeDescription compone la descripción de la orden a partir del caso:
// problema reportado, notas técnicas del survey y valor acordado.
func synthesizeDescription(pc *entity.PipelineCase) string {
	return fmt.Sprintf(
		"SOURCED FROM QUOTE\n\nIssue: %s\nTechnical Notes: %s - %s\n\nAgreed Value: $%s",
		pc.Description, pc.RootCause, pc.ProposedRemedy, pc.QuoteAmount.StringFixed(2),
	)
}

func assetNameFor(pc *entity.PipelineCase) string {
	if pc.Category != "" {
		return pc.Category
	}
	return fallbackAssetName
}

func toWorkOrderResponse(wo *entity.WorkOrder) *dto.WorkOrderResponse {
	tasks := make([]dto.TaskResponse, 0, len(wo.Tasks))
	for _, t := range wo.Tasks {
		tasks = append(tasks, dto.TaskResponse{ID: t.ID, Description: t.Description, IsCompleted: t.IsCompleted})
	}
	parts := make([]dto.PartUsageResponse, 0, len(wo.PartsUsed))
	for _, p := range wo.PartsUsed {
		parts = append(parts, dto.PartUsageResponse{
			ID:                p.ID,
			InventoryItemID:   p.InventoryItemID,
			PartName:          p.PartName,
			Quantity:          p.Quantity,
			Cost:              p.Cost,
			InventoryDeducted: p.InventoryDeducted,
		})
	}
	return &dto.WorkOrderResponse{
		ID:                   wo.ID,
		Number:               wo.Number,
		Title:                wo.Title,
		ClientID:             wo.ClientID,
		AssetID:              wo.AssetID,
		AssetName:            wo.AssetName,
		Priority:             wo.Priority,
		Status:               wo.Status,
		Description:          wo.Description,
		AssignedTechnicianID: wo.AssignedTechnicianID,
		PipelineCaseID:       wo.PipelineCaseID,
		Tasks:                tasks,
		PartsUsed:            parts,
		Images:               wo.Images,
		PartsCost:            wo.PartsCost(),
		CreatedDate:          wo.CreatedDate,
		StartDate:            wo.StartDate,
		DueDate:              wo.DueDate,
		CompletedDate:        wo.CompletedDate,
	}
}
