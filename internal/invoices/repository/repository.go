package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clearing_ops_backend/platform/apperr"
)

const invoiceNotFoundMessage = "invoice not found"

const invoiceColumns = `id, quote_id, work_order_id, invoice_number, kind, status, amount,
	issued_at, paid_at, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new invoices repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create issues an invoice. Invoice numbers come from a dedicated
// sequence so numbering stays gapless across kinds.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Invoice, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Invoice{}, fmt.Errorf("begin create invoice: %w", err)
	}
	defer tx.Rollback(ctx)

	var seq int64
	if err := tx.QueryRow(ctx, `SELECT nextval('invoice_number_seq')`).Scan(&seq); err != nil {
		return Invoice{}, fmt.Errorf("allocate invoice number: %w", err)
	}

	query := `
		INSERT INTO invoices (quote_id, work_order_id, invoice_number, kind, amount, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + invoiceColumns

	invoice, err := scanInvoice(tx.QueryRow(ctx, query,
		params.QuoteID, params.WorkOrderID, fmt.Sprintf("INV-%05d", seq),
		params.Kind, params.Amount, params.IssuedAt,
	))
	if err != nil {
		return Invoice{}, fmt.Errorf("create invoice: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Invoice{}, fmt.Errorf("commit create invoice: %w", err)
	}

	return invoice, nil
}

// GetByID retrieves an invoice by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`

	invoice, err := scanInvoice(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Invoice{}, apperr.NotFound(invoiceNotFoundMessage)
		}
		return Invoice{}, fmt.Errorf("get invoice by id: %w", err)
	}

	return invoice, nil
}

// List retrieves invoices with optional filters, newest first.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Invoice, int, error) {
	var statusParam, kindParam interface{}
	if params.Status != "" {
		statusParam = params.Status
	}
	if params.Kind != "" {
		kindParam = params.Kind
	}

	countQuery := `
		SELECT COUNT(*)
		FROM invoices
		WHERE ($1::text IS NULL OR status = $1)
			AND ($2::text IS NULL OR kind = $2)
			AND ($3::uuid IS NULL OR quote_id = $3)`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, statusParam, kindParam, params.QuoteID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}

	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE ($1::text IS NULL OR status = $1)
			AND ($2::text IS NULL OR kind = $2)
			AND ($3::uuid IS NULL OR quote_id = $3)
		ORDER BY issued_at DESC
		LIMIT $4 OFFSET $5`

	rows, err := r.pool.Query(ctx, query, statusParam, kindParam, params.QuoteID, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate invoices: %w", err)
	}

	return invoices, total, nil
}

// ListByQuote retrieves all invoices against a quote, oldest first.
func (r *Repo) ListByQuote(ctx context.Context, quoteID uuid.UUID) ([]Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE quote_id = $1
		ORDER BY issued_at ASC`

	rows, err := r.pool.Query(ctx, query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("list quote invoices: %w", err)
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoices: %w", err)
	}

	return invoices, nil
}

// SumPaidDeposits totals paid deposit invoices against a quote.
func (r *Repo) SumPaidDeposits(ctx context.Context, quoteID uuid.UUID) (int64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM invoices
		WHERE quote_id = $1 AND kind = $2 AND status = $3`

	var sum int64
	if err := r.pool.QueryRow(ctx, query, quoteID, KindDeposit, StatusPaid).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum paid deposits: %w", err)
	}

	return sum, nil
}

// MarkPaid moves an invoice to "paid".
func (r *Repo) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) (Invoice, error) {
	query := `
		UPDATE invoices SET status = $2, paid_at = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + invoiceColumns

	invoice, err := scanInvoice(r.pool.QueryRow(ctx, query, id, StatusPaid, paidAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Invoice{}, apperr.NotFound(invoiceNotFoundMessage)
		}
		return Invoice{}, fmt.Errorf("mark invoice paid: %w", err)
	}

	return invoice, nil
}

// MarkVoid moves an invoice to "void".
func (r *Repo) MarkVoid(ctx context.Context, id uuid.UUID) (Invoice, error) {
	query := `
		UPDATE invoices SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + invoiceColumns

	invoice, err := scanInvoice(r.pool.QueryRow(ctx, query, id, StatusVoid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Invoice{}, apperr.NotFound(invoiceNotFoundMessage)
		}
		return Invoice{}, fmt.Errorf("mark invoice void: %w", err)
	}

	return invoice, nil
}

func scanInvoice(row pgx.Row) (Invoice, error) {
	var inv Invoice
	err := row.Scan(
		&inv.ID, &inv.QuoteID, &inv.WorkOrderID, &inv.InvoiceNumber, &inv.Kind, &inv.Status,
		&inv.Amount, &inv.IssuedAt, &inv.PaidAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	return inv, err
}
