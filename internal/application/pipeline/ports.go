package pipeline

import (
	"context"

	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

// TxRunner ejecuta las mutaciones del pipeline dentro de una transacción de BD.
// RunConversion entrega además el repositorio de órdenes de servicio para que
// la conversión Won → SO escriba el caso y la orden de forma atómica.
type TxRunner interface {
	RunPipeline(ctx context.Context, fn func(caseRepo repository.PipelineCaseRepository) error) error
	RunConversion(ctx context.Context, fn func(
		caseRepo repository.PipelineCaseRepository,
		woRepo repository.WorkOrderRepository,
	) error) error
}
