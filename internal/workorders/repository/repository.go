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

const workOrderNotFoundMessage = "work order not found"

const workOrderColumns = `id, quote_id, status, customer_name, site_address, crew_lead, crew, equipment,
	scheduled_start, scheduled_end, estimated_hours, notes, started_at, completed_at, completed_by,
	cancel_reason, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new work orders repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a work order in status "scheduled". One work order per
// quote; a second insert trips the unique constraint.
func (r *Repo) Create(ctx context.Context, params CreateParams) (WorkOrder, error) {
	query := `
		INSERT INTO work_orders (quote_id, customer_name, site_address, crew_lead, crew, equipment,
			scheduled_start, scheduled_end, estimated_hours, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + workOrderColumns

	order, err := scanWorkOrder(r.pool.QueryRow(ctx, query,
		params.QuoteID, params.CustomerName, params.SiteAddress, params.CrewLead, params.Crew,
		params.Equipment, params.ScheduledStart, params.ScheduledEnd, params.EstimatedHours, params.Notes,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return WorkOrder{}, apperr.Conflict("quote already has a work order")
		}
		return WorkOrder{}, fmt.Errorf("create work order: %w", err)
	}

	return order, nil
}

// GetByID retrieves a work order by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE id = $1`

	order, err := scanWorkOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return WorkOrder{}, apperr.NotFound(workOrderNotFoundMessage)
		}
		return WorkOrder{}, fmt.Errorf("get work order by id: %w", err)
	}

	return order, nil
}

// GetByQuoteID retrieves the work order for a quote.
func (r *Repo) GetByQuoteID(ctx context.Context, quoteID uuid.UUID) (WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE quote_id = $1`

	order, err := scanWorkOrder(r.pool.QueryRow(ctx, query, quoteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return WorkOrder{}, apperr.NotFound(workOrderNotFoundMessage)
		}
		return WorkOrder{}, fmt.Errorf("get work order by quote id: %w", err)
	}

	return order, nil
}

// List retrieves work orders filtered by status and schedule window,
// soonest first.
func (r *Repo) List(ctx context.Context, params ListParams) ([]WorkOrder, int, error) {
	var statusParam interface{}
	if params.Status != "" {
		statusParam = params.Status
	}

	countQuery := `
		SELECT COUNT(*)
		FROM work_orders
		WHERE ($1::text IS NULL OR status = $1)
			AND ($2::timestamptz IS NULL OR scheduled_start >= $2)
			AND ($3::timestamptz IS NULL OR scheduled_start <= $3)`

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, statusParam, params.From, params.To).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count work orders: %w", err)
	}

	query := `
		SELECT ` + workOrderColumns + `
		FROM work_orders
		WHERE ($1::text IS NULL OR status = $1)
			AND ($2::timestamptz IS NULL OR scheduled_start >= $2)
			AND ($3::timestamptz IS NULL OR scheduled_start <= $3)
		ORDER BY scheduled_start ASC
		LIMIT $4 OFFSET $5`

	rows, err := r.pool.Query(ctx, query, statusParam, params.From, params.To, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list work orders: %w", err)
	}
	defer rows.Close()

	var orders []WorkOrder
	for rows.Next() {
		order, err := scanWorkOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan work order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate work orders: %w", err)
	}

	return orders, total, nil
}

// Update reschedules or restaffs a work order.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (WorkOrder, error) {
	query := `
		UPDATE work_orders SET
			crew_lead = COALESCE($2, crew_lead),
			crew = COALESCE($3, crew),
			equipment = COALESCE($4, equipment),
			scheduled_start = COALESCE($5, scheduled_start),
			scheduled_end = COALESCE($6, scheduled_end),
			estimated_hours = COALESCE($7, estimated_hours),
			notes = COALESCE($8, notes),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + workOrderColumns

	order, err := scanWorkOrder(r.pool.QueryRow(ctx, query,
		params.ID, params.CrewLead, params.Crew, params.Equipment,
		params.ScheduledStart, params.ScheduledEnd, params.EstimatedHours, params.Notes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return WorkOrder{}, apperr.NotFound(workOrderNotFoundMessage)
		}
		return WorkOrder{}, fmt.Errorf("update work order: %w", err)
	}

	return order, nil
}

// MarkStarted moves a work order to "in_progress".
func (r *Repo) MarkStarted(ctx context.Context, id uuid.UUID, startedAt time.Time) (WorkOrder, error) {
	query := `
		UPDATE work_orders SET status = $2, started_at = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + workOrderColumns

	order, err := scanWorkOrder(r.pool.QueryRow(ctx, query, id, StatusInProgress, startedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return WorkOrder{}, apperr.NotFound(workOrderNotFoundMessage)
		}
		return WorkOrder{}, fmt.Errorf("mark work order started: %w", err)
	}

	return order, nil
}

// MarkCompleted moves a work order to "completed".
func (r *Repo) MarkCompleted(ctx context.Context, id uuid.UUID, completedAt time.Time, completedBy uuid.UUID) (WorkOrder, error) {
	query := `
		UPDATE work_orders SET status = $2, completed_at = $3, completed_by = $4, updated_at = now()
		WHERE id = $1
		RETURNING ` + workOrderColumns

	order, err := scanWorkOrder(r.pool.QueryRow(ctx, query, id, StatusCompleted, completedAt, completedBy))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return WorkOrder{}, apperr.NotFound(workOrderNotFoundMessage)
		}
		return WorkOrder{}, fmt.Errorf("mark work order completed: %w", err)
	}

	return order, nil
}

// MarkCancelled moves a work order to "cancelled".
func (r *Repo) MarkCancelled(ctx context.Context, id uuid.UUID, reason *string) (WorkOrder, error) {
	query := `
		UPDATE work_orders SET status = $2, cancel_reason = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + workOrderColumns

	order, err := scanWorkOrder(r.pool.QueryRow(ctx, query, id, StatusCancelled, reason))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return WorkOrder{}, apperr.NotFound(workOrderNotFoundMessage)
		}
		return WorkOrder{}, fmt.Errorf("mark work order cancelled: %w", err)
	}

	return order, nil
}

func scanWorkOrder(row pgx.Row) (WorkOrder, error) {
	var w WorkOrder
	err := row.Scan(
		&w.ID, &w.QuoteID, &w.Status, &w.CustomerName, &w.SiteAddress, &w.CrewLead, &w.Crew,
		&w.Equipment, &w.ScheduledStart, &w.ScheduledEnd, &w.EstimatedHours, &w.Notes,
		&w.StartedAt, &w.CompletedAt, &w.CompletedBy, &w.CancelReason, &w.CreatedAt, &w.UpdatedAt,
	)
	return w, err
}

func isUniqueViolation(err error) bool {
	var sqlErr interface{ SQLState() string }
	return errors.As(err, &sqlErr) && sqlErr.SQLState() == "23505"
}
