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

const entryNotFoundMessage = "time entry not found"

const entryColumns = `id, work_order_id, user_id, clock_in, clock_out, notes, created_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new timesheets repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create opens a new time entry.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Entry, error) {
	query := `
		INSERT INTO time_entries (work_order_id, user_id, clock_in, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + entryColumns

	entry, err := scanEntry(r.pool.QueryRow(ctx, query,
		params.WorkOrderID, params.UserID, params.ClockIn, params.Notes,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return Entry{}, apperr.Conflict("already clocked in")
		}
		return Entry{}, fmt.Errorf("create time entry: %w", err)
	}

	return entry, nil
}

// GetOpenEntryByUser retrieves the crew member's open entry on any work
// order. A crew member holds at most one open entry at a time.
func (r *Repo) GetOpenEntryByUser(ctx context.Context, userID uuid.UUID) (Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM time_entries
		WHERE user_id = $1 AND clock_out IS NULL`

	entry, err := scanEntry(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, apperr.NotFound("no open time entry")
		}
		return Entry{}, fmt.Errorf("get open time entry by user: %w", err)
	}

	return entry, nil
}

// GetByID retrieves a time entry by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries WHERE id = $1`

	entry, err := scanEntry(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, apperr.NotFound(entryNotFoundMessage)
		}
		return Entry{}, fmt.Errorf("get time entry by id: %w", err)
	}

	return entry, nil
}

// GetOpenEntry retrieves the crew member's open entry on a work order.
func (r *Repo) GetOpenEntry(ctx context.Context, workOrderID, userID uuid.UUID) (Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM time_entries
		WHERE work_order_id = $1 AND user_id = $2 AND clock_out IS NULL`

	entry, err := scanEntry(r.pool.QueryRow(ctx, query, workOrderID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, apperr.NotFound("no open time entry")
		}
		return Entry{}, fmt.Errorf("get open time entry: %w", err)
	}

	return entry, nil
}

// ListByWorkOrder retrieves all time entries on a work order, oldest first.
func (r *Repo) ListByWorkOrder(ctx context.Context, workOrderID uuid.UUID) ([]Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM time_entries
		WHERE work_order_id = $1
		ORDER BY clock_in ASC`

	rows, err := r.pool.Query(ctx, query, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan time entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate time entries: %w", err)
	}

	return entries, nil
}

// HoursByWorkOrder sums closed entries per crew member.
func (r *Repo) HoursByWorkOrder(ctx context.Context, workOrderID uuid.UUID) ([]MemberHours, error) {
	query := `
		SELECT user_id, SUM(EXTRACT(EPOCH FROM clock_out - clock_in)) / 3600.0
		FROM time_entries
		WHERE work_order_id = $1 AND clock_out IS NOT NULL
		GROUP BY user_id
		ORDER BY user_id`

	rows, err := r.pool.Query(ctx, query, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("sum work order hours: %w", err)
	}
	defer rows.Close()

	var totals []MemberHours
	for rows.Next() {
		var m MemberHours
		if err := rows.Scan(&m.UserID, &m.Hours); err != nil {
			return nil, fmt.Errorf("scan member hours: %w", err)
		}
		totals = append(totals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate member hours: %w", err)
	}

	return totals, nil
}

// Close stamps the clock-out on an entry.
func (r *Repo) Close(ctx context.Context, id uuid.UUID, clockOut time.Time, notes *string) (Entry, error) {
	query := `
		UPDATE time_entries SET clock_out = $2, notes = COALESCE($3, notes)
		WHERE id = $1
		RETURNING ` + entryColumns

	entry, err := scanEntry(r.pool.QueryRow(ctx, query, id, clockOut, notes))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, apperr.NotFound(entryNotFoundMessage)
		}
		return Entry{}, fmt.Errorf("close time entry: %w", err)
	}

	return entry, nil
}

// Delete removes a time entry.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM time_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete time entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(entryNotFoundMessage)
	}

	return nil
}

func scanEntry(row pgx.Row) (Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.WorkOrderID, &e.UserID, &e.ClockIn, &e.ClockOut, &e.Notes, &e.CreatedAt)
	return e, err
}

func isUniqueViolation(err error) bool {
	var sqlErr interface{ SQLState() string }
	return errors.As(err, &sqlErr) && sqlErr.SQLState() == "23505"
}
