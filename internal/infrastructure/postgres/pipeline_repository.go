package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

var _ repository.PipelineCaseRepository = (*PipelineCaseRepo)(nil)

const pipelineCaseColumns = `id, client_id, title, description, priority, category, stage, asset_id,
	survey_scheduled_date, surveyor_name, root_cause, proposed_remedy, parts_needed,
	quote_amount, quote_sent, converted_so_id, lost_reason, created_at, updated_at`

// PipelineCaseRepo implementación de PipelineCaseRepository sobre PostgreSQL
// (usable con pool o tx). GetByID y GetByIDForUpdate cargan las líneas de
// cotización del caso.
type PipelineCaseRepo struct {
	q Querier
}

// NewPipelineCaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPipelineCaseRepository(q Querier) *PipelineCaseRepo {
	return &PipelineCaseRepo{q: q}
}

// Create persiste un caso nuevo (sin líneas: nace en Request).
func (r *PipelineCaseRepo) Create(pc *entity.PipelineCase) error {
	query := `
		INSERT INTO pipeline_cases (` + pipelineCaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(context.Background(), query,
		pc.ID, pc.ClientID, pc.Title, pc.Description, pc.Priority, pc.Category, pc.Stage, pc.AssetID,
		pc.SurveyScheduledDate, pc.SurveyorName, pc.RootCause, pc.ProposedRemedy, pc.PartsNeeded,
		pc.QuoteAmount, pc.QuoteSent, pc.ConvertedSOID, pc.LostReason, pc.CreatedAt, pc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pipeline case: %w", err)
	}
	return nil
}

// GetByID obtiene un caso con sus líneas de cotización.
func (r *PipelineCaseRepo) GetByID(id string) (*entity.PipelineCase, error) {
	query := `SELECT ` + pipelineCaseColumns + ` FROM pipeline_cases WHERE id = $1`
	return r.getOne(query, id, "get pipeline case")
}

// GetByIDForUpdate obtiene un caso bloqueando la fila para transiciones de
// etapa y recálculo de quote_amount.
func (r *PipelineCaseRepo) GetByIDForUpdate(id string) (*entity.PipelineCase, error) {
	query := `SELECT ` + pipelineCaseColumns + ` FROM pipeline_cases WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id, "get pipeline case for update")
}

// Update persiste la cabecera del caso. Las líneas se manejan con
// CreateLineItem/DeleteLineItem.
func (r *PipelineCaseRepo) Update(pc *entity.PipelineCase) error {
	query := `
		UPDATE pipeline_cases
		SET title = $2, description = $3, priority = $4, category = $5, stage = $6, asset_id = $7,
		    survey_scheduled_date = $8, surveyor_name = $9, root_cause = $10, proposed_remedy = $11,
		    parts_needed = $12, quote_amount = $13, quote_sent = $14, converted_so_id = $15,
		    lost_reason = $16, updated_at = $17
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		pc.ID, pc.Title, pc.Description, pc.Priority, pc.Category, pc.Stage, pc.AssetID,
		pc.SurveyScheduledDate, pc.SurveyorName, pc.RootCause, pc.ProposedRemedy,
		pc.PartsNeeded, pc.QuoteAmount, pc.QuoteSent, pc.ConvertedSOID, pc.LostReason, pc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update pipeline case: %w", err)
	}
	return nil
}

// CreateLineItem agrega una línea de cotización.
func (r *PipelineCaseRepo) CreateLineItem(li *entity.QuoteLineItem) error {
	query := `
		INSERT INTO quote_line_items (id, pipeline_case_id, inventory_item_id, description, quantity, unit_price, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		li.ID, li.PipelineCaseID, li.InventoryItemID, li.Description, li.Quantity, li.UnitPrice, li.Total,
	)
	if err != nil {
		return fmt.Errorf("insert quote line item: %w", err)
	}
	return nil
}

// DeleteLineItem elimina una línea de cotización.
func (r *PipelineCaseRepo) DeleteLineItem(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM quote_line_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete quote line item: %w", err)
	}
	return nil
}

// ListLineItems devuelve las líneas de cotización de un caso.
func (r *PipelineCaseRepo) ListLineItems(caseID string) ([]entity.QuoteLineItem, error) {
	query := `
		SELECT id, pipeline_case_id, inventory_item_id, description, quantity, unit_price, total
		FROM quote_line_items WHERE pipeline_case_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, caseID)
	if err != nil {
		return nil, fmt.Errorf("list quote line items: %w", err)
	}
	defer rows.Close()

	var out []entity.QuoteLineItem
	for rows.Next() {
		var li entity.QuoteLineItem
		if err := rows.Scan(&li.ID, &li.PipelineCaseID, &li.InventoryItemID, &li.Description, &li.Quantity, &li.UnitPrice, &li.Total); err != nil {
			return nil, fmt.Errorf("scan quote line item: %w", err)
		}
		out = append(out, li)
	}
	return out, rows.Err()
}

// ListByStage lista casos de una etapa, más recientes primero.
func (r *PipelineCaseRepo) ListByStage(stage string, limit, offset int) ([]*entity.PipelineCase, error) {
	query := `SELECT ` + pipelineCaseColumns + ` FROM pipeline_cases WHERE stage = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, stage, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list pipeline cases by stage: %w", err)
	}
	defer rows.Close()
	return r.scanCases(rows)
}

// List lista casos con paginación, más recientes primero.
func (r *PipelineCaseRepo) List(limit, offset int) ([]*entity.PipelineCase, error) {
	query := `SELECT ` + pipelineCaseColumns + ` FROM pipeline_cases ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list pipeline cases: %w", err)
	}
	defer rows.Close()
	return r.scanCases(rows)
}

func (r *PipelineCaseRepo) getOne(query, id, op string) (*entity.PipelineCase, error) {
	var pc entity.PipelineCase
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&pc.ID, &pc.ClientID, &pc.Title, &pc.Description, &pc.Priority, &pc.Category, &pc.Stage, &pc.AssetID,
		&pc.SurveyScheduledDate, &pc.SurveyorName, &pc.RootCause, &pc.ProposedRemedy, &pc.PartsNeeded,
		&pc.QuoteAmount, &pc.QuoteSent, &pc.ConvertedSOID, &pc.LostReason, &pc.CreatedAt, &pc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	lines, err := r.ListLineItems(pc.ID)
	if err != nil {
		return nil, err
	}
	pc.QuoteLineItems = lines
	return &pc, nil
}

func (r *PipelineCaseRepo) scanCases(rows pgx.Rows) ([]*entity.PipelineCase, error) {
	var out []*entity.PipelineCase
	for rows.Next() {
		var pc entity.PipelineCase
		if err := rows.Scan(
			&pc.ID, &pc.ClientID, &pc.Title, &pc.Description, &pc.Priority, &pc.Category, &pc.Stage, &pc.AssetID,
			&pc.SurveyScheduledDate, &pc.SurveyorName, &pc.RootCause, &pc.ProposedRemedy, &pc.PartsNeeded,
			&pc.QuoteAmount, &pc.QuoteSent, &pc.ConvertedSOID, &pc.LostReason, &pc.CreatedAt, &pc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan pipeline case: %w", err)
		}
		out = append(out, &pc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, pc := range out {
		lines, err := r.ListLineItems(pc.ID)
		if err != nil {
			return nil, err
		}
		pc.QuoteLineItems = lines
	}
	return out, nil
}
