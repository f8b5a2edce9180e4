package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Mantenix-api/internal/domain"
	"github.com/jhoicas/Mantenix-api/internal/domain/entity"
	"github.com/jhoicas/Mantenix-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, invoice_number, client_id, date_issued, due_date, amount, status, work_order_ref, created_at, updated_at`

// InvoiceRepo implementación de InvoiceRepository sobre PostgreSQL
// (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la factura y sus líneas. invoice_number es único.
func (r *InvoiceRepo) Create(inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.InvoiceNumber, inv.ClientID, inv.DateIssued, inv.DueDate,
		inv.Amount, inv.Status, inv.WorkOrderRef, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	for _, it := range inv.Items {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO invoice_items (id, invoice_id, description, amount) VALUES ($1, $2, $3, $4)`,
			it.ID, it.InvoiceID, it.Description, it.Amount,
		)
		if err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una factura con sus líneas.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.ClientID, &inv.DateIssued, &inv.DueDate,
		&inv.Amount, &inv.Status, &inv.WorkOrderRef, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if err := r.loadItems(&inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// UpdateStatus cambia el estado de cobro.
func (r *InvoiceRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE invoices SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	return nil
}

// List lista facturas, más recientes primero.
func (r *InvoiceRepo) List(limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY date_issued DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	return r.scanInvoices(rows)
}

// ListByClient lista facturas de un cliente.
func (r *InvoiceRepo) ListByClient(clientID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE client_id = $1 ORDER BY date_issued DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, clientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices by client: %w", err)
	}
	defer rows.Close()
	return r.scanInvoices(rows)
}

func (r *InvoiceRepo) scanInvoices(rows pgx.Rows) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.InvoiceNumber, &inv.ClientID, &inv.DateIssued, &inv.DueDate,
			&inv.Amount, &inv.Status, &inv.WorkOrderRef, &inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		out = append(out, &inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, inv := range out {
		if err := r.loadItems(inv); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *InvoiceRepo) loadItems(inv *entity.Invoice) error {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, invoice_id, description, amount FROM invoice_items WHERE invoice_id = $1 ORDER BY id`, inv.ID)
	if err != nil {
		return fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Description, &it.Amount); err != nil {
			return fmt.Errorf("scan invoice item: %w", err)
		}
		inv.Items = append(inv.Items, it)
	}
	return rows.Err()
}
