package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clearing_ops_backend/internal/pricing"
	"clearing_ops_backend/platform/apperr"
)

const quoteNotFoundMessage = "quote not found"

const quoteColumns = `id, lead_id, quote_number, status, public_token, customer_name, customer_email,
	customer_phone, site_address, signature_name, decline_reason, sent_at, decided_at, created_at, updated_at`

const revisionColumns = `id, quote_id, revision, service_type, acreage, package_slug, include_hauling,
	labor_cost, hauling_cost, total, deposit, breakdown, created_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new quotes repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a quote in status "draft" together with revision 1. The
// quote number comes from a dedicated sequence so numbering survives deletes.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Quote, Revision, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Quote{}, Revision{}, fmt.Errorf("begin create quote: %w", err)
	}
	defer tx.Rollback(ctx)

	var seq int64
	if err := tx.QueryRow(ctx, `SELECT nextval('quote_number_seq')`).Scan(&seq); err != nil {
		return Quote{}, Revision{}, fmt.Errorf("allocate quote number: %w", err)
	}

	query := `
		INSERT INTO quotes (lead_id, quote_number, public_token, customer_name, customer_email,
			customer_phone, site_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + quoteColumns

	quote, err := scanQuote(tx.QueryRow(ctx, query,
		params.LeadID, fmt.Sprintf("Q-%05d", seq), params.PublicToken,
		params.CustomerName, params.CustomerEmail, params.CustomerPhone, params.SiteAddress,
	))
	if err != nil {
		return Quote{}, Revision{}, fmt.Errorf("create quote: %w", err)
	}

	revision, err := insertRevision(ctx, tx, quote.ID, 1, params.Revision)
	if err != nil {
		return Quote{}, Revision{}, fmt.Errorf("create quote revision: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Quote{}, Revision{}, fmt.Errorf("commit create quote: %w", err)
	}

	return quote, revision, nil
}

// AddRevision appends the next pricing revision for a quote.
func (r *Repo) AddRevision(ctx context.Context, quoteID uuid.UUID, params RevisionParams) (Revision, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Revision{}, fmt.Errorf("begin add revision: %w", err)
	}
	defer tx.Rollback(ctx)

	var next int
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(revision), 0) + 1 FROM quote_revisions WHERE quote_id = $1`,
		quoteID,
	).Scan(&next)
	if err != nil {
		return Revision{}, fmt.Errorf("number revision: %w", err)
	}

	revision, err := insertRevision(ctx, tx, quoteID, next, params)
	if err != nil {
		return Revision{}, fmt.Errorf("insert revision: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE quotes SET updated_at = now() WHERE id = $1`, quoteID); err != nil {
		return Revision{}, fmt.Errorf("touch quote: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Revision{}, fmt.Errorf("commit add revision: %w", err)
	}

	return revision, nil
}

// GetByID retrieves a quote by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1`

	quote, err := scanQuote(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Quote{}, apperr.NotFound(quoteNotFoundMessage)
		}
		return Quote{}, fmt.Errorf("get quote by id: %w", err)
	}

	return quote, nil
}

// GetByToken retrieves a quote by its public token.
func (r *Repo) GetByToken(ctx context.Context, token string) (Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE public_token = $1`

	quote, err := scanQuote(r.pool.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Quote{}, apperr.NotFound(quoteNotFoundMessage)
		}
		return Quote{}, fmt.Errorf("get quote by token: %w", err)
	}

	return quote, nil
}

// List retrieves quotes with optional status and lead filters, newest first.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Quote, int, error) {
	var statusParam interface{}
	if params.Status != "" {
		statusParam = params.Status
	}

	countQuery := `
		SELECT COUNT(*)
		FROM quotes
		WHERE ($1::text IS NULL OR status = $1)
			AND ($2::uuid IS NULL OR lead_id = $2)`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, statusParam, params.LeadID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count quotes: %w", err)
	}

	query := `
		SELECT ` + quoteColumns + `
		FROM quotes
		WHERE ($1::text IS NULL OR status = $1)
			AND ($2::uuid IS NULL OR lead_id = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`

	rows, err := r.pool.Query(ctx, query, statusParam, params.LeadID, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	var quotes []Quote
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan quote: %w", err)
		}
		quotes = append(quotes, quote)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate quotes: %w", err)
	}

	return quotes, total, nil
}

// CurrentRevision returns the latest pricing revision for a quote.
func (r *Repo) CurrentRevision(ctx context.Context, quoteID uuid.UUID) (Revision, error) {
	query := `
		SELECT ` + revisionColumns + `
		FROM quote_revisions
		WHERE quote_id = $1
		ORDER BY revision DESC
		LIMIT 1`

	revision, err := scanRevision(r.pool.QueryRow(ctx, query, quoteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Revision{}, apperr.NotFound("quote revision not found")
		}
		return Revision{}, fmt.Errorf("get current revision: %w", err)
	}

	return revision, nil
}

// ListRevisions returns all pricing revisions for a quote, oldest first.
func (r *Repo) ListRevisions(ctx context.Context, quoteID uuid.UUID) ([]Revision, error) {
	query := `
		SELECT ` + revisionColumns + `
		FROM quote_revisions
		WHERE quote_id = $1
		ORDER BY revision ASC`

	rows, err := r.pool.Query(ctx, query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	defer rows.Close()

	var revisions []Revision
	for rows.Next() {
		revision, err := scanRevision(rows)
		if err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		revisions = append(revisions, revision)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate revisions: %w", err)
	}

	return revisions, nil
}

// MarkSent moves a quote to status "sent".
func (r *Repo) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) (Quote, error) {
	query := `
		UPDATE quotes SET status = $2, sent_at = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + quoteColumns

	quote, err := scanQuote(r.pool.QueryRow(ctx, query, id, StatusSent, sentAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Quote{}, apperr.NotFound(quoteNotFoundMessage)
		}
		return Quote{}, fmt.Errorf("mark quote sent: %w", err)
	}

	return quote, nil
}

// RecordDecision stores a customer accept or decline.
func (r *Repo) RecordDecision(ctx context.Context, params DecisionParams) (Quote, error) {
	query := `
		UPDATE quotes SET status = $2, signature_name = $3, decline_reason = $4,
			decided_at = $5, updated_at = now()
		WHERE id = $1
		RETURNING ` + quoteColumns

	quote, err := scanQuote(r.pool.QueryRow(ctx, query,
		params.ID, params.Status, params.SignatureName, params.DeclineReason, params.DecidedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Quote{}, apperr.NotFound(quoteNotFoundMessage)
		}
		return Quote{}, fmt.Errorf("record quote decision: %w", err)
	}

	return quote, nil
}

func insertRevision(ctx context.Context, tx pgx.Tx, quoteID uuid.UUID, number int, params RevisionParams) (Revision, error) {
	breakdown, err := json.Marshal(params.Estimate.Breakdown)
	if err != nil {
		return Revision{}, fmt.Errorf("marshal breakdown: %w", err)
	}

	query := `
		INSERT INTO quote_revisions (quote_id, revision, service_type, acreage, package_slug,
			include_hauling, labor_cost, hauling_cost, total, deposit, breakdown)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + revisionColumns

	return scanRevision(tx.QueryRow(ctx, query,
		quoteID, number, params.ServiceType, params.Acreage, params.PackageSlug,
		params.IncludeHauling, params.Estimate.LaborCost, params.Estimate.HaulingCost,
		params.Estimate.Total, params.Estimate.Deposit, breakdown,
	))
}

func scanQuote(row pgx.Row) (Quote, error) {
	var q Quote
	err := row.Scan(
		&q.ID, &q.LeadID, &q.QuoteNumber, &q.Status, &q.PublicToken,
		&q.CustomerName, &q.CustomerEmail, &q.CustomerPhone, &q.SiteAddress,
		&q.SignatureName, &q.DeclineReason, &q.SentAt, &q.DecidedAt,
		&q.CreatedAt, &q.UpdatedAt,
	)
	return q, err
}

func scanRevision(row pgx.Row) (Revision, error) {
	var rev Revision
	var breakdown []byte
	err := row.Scan(
		&rev.ID, &rev.QuoteID, &rev.Revision, &rev.ServiceType, &rev.Acreage,
		&rev.PackageSlug, &rev.IncludeHauling, &rev.LaborCost, &rev.HaulingCost,
		&rev.Total, &rev.Deposit, &breakdown, &rev.CreatedAt,
	)
	if err != nil {
		return Revision{}, err
	}

	if err := json.Unmarshal(breakdown, &rev.Breakdown); err != nil {
		return Revision{}, fmt.Errorf("unmarshal breakdown: %w", err)
	}
	if rev.Breakdown == nil {
		rev.Breakdown = []pricing.LineItem{}
	}

	return rev, nil
}
