package repository

import "github.com/jhoicas/Mantenix-api/internal/domain/entity"

// PipelineCaseRepository define el puerto de persistencia para casos del
// pipeline comercial. GetByID carga las líneas de cotización del caso.
type PipelineCaseRepository interface {
	Create(pc *entity.PipelineCase) error
	GetByID(id string) (*entity.PipelineCase, error)
	// GetByIDForUpdate bloquea la fila del caso para transiciones de etapa y
	// recálculo de QuoteAmount (leer-modificar-escribir serializado).
	GetByIDForUpdate(id string) (*entity.PipelineCase, error)
	// Update persiste la cabecera (etapa, campos de survey, QuoteAmount,
	// ConvertedSOID). Las líneas se manejan con CreateLineItem/DeleteLineItem.
	Update(pc *entity.PipelineCase) error
	CreateLineItem(li *entity.QuoteLineItem) error
	DeleteLineItem(id string) error
	ListLineItems(caseID string) ([]entity.QuoteLineItem, error)
	ListByStage(stage string, limit, offset int) ([]*entity.PipelineCase, error)
	List(limit, offset int) ([]*entity.PipelineCase, error)
}
