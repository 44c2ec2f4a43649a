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

const packageNotFoundMessage = "package not found"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// ListPackages retrieves packages ordered by diameter limit.
func (r *Repo) ListPackages(ctx context.Context, activeOnly bool) ([]PackageRecord, error) {
	query := `
		SELECT id, slug, name, description, max_diameter_in, price_per_acre, base_price, is_active, created_at, updated_at
		FROM packages
		WHERE ($1::boolean = false OR is_active = true)
		ORDER BY max_diameter_in ASC`

	rows, err := r.pool.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer rows.Close()

	return scanPackages(rows)
}

// GetPackage retrieves a package by its ID.
func (r *Repo) GetPackage(ctx context.Context, id uuid.UUID) (PackageRecord, error) {
	query := `
		SELECT id, slug, name, description, max_diameter_in, price_per_acre, base_price, is_active, created_at, updated_at
		FROM packages
		WHERE id = $1`

	var p PackageRecord
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Slug, &p.Name, &p.Description, &p.MaxDiameterIn, &p.PricePerAcre, &p.BasePrice,
		&p.IsActive, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PackageRecord{}, apperr.NotFound(packageNotFoundMessage)
		}
		return PackageRecord{}, fmt.Errorf("get package: %w", err)
	}

	p.CreatedAt = createdAt.Format(time.RFC3339)
	p.UpdatedAt = updatedAt.Format(time.RFC3339)

	return p, nil
}

// CountPackages returns the total number of packages, active or not.
func (r *Repo) CountPackages(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM packages`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count packages: %w", err)
	}
	return count, nil
}

// CreatePackage creates a new package.
func (r *Repo) CreatePackage(ctx context.Context, params CreatePackageParams) (PackageRecord, error) {
	query := `
		INSERT INTO packages (slug, name, description, max_diameter_in, price_per_acre, base_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, slug, name, description, max_diameter_in, price_per_acre, base_price, is_active, created_at, updated_at`

	var p PackageRecord
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query,
		params.Slug, params.Name, params.Description, params.MaxDiameterIn, params.PricePerAcre, params.BasePrice,
	).Scan(
		&p.ID, &p.Slug, &p.Name, &p.Description, &p.MaxDiameterIn, &p.PricePerAcre, &p.BasePrice,
		&p.IsActive, &createdAt, &updatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return PackageRecord{}, apperr.Conflict("package slug already exists")
		}
		return PackageRecord{}, fmt.Errorf("create package: %w", err)
	}

	p.CreatedAt = createdAt.Format(time.RFC3339)
	p.UpdatedAt = updatedAt.Format(time.RFC3339)

	return p, nil
}

// UpdatePackage updates an existing package.
func (r *Repo) UpdatePackage(ctx context.Context, params UpdatePackageParams) (PackageRecord, error) {
	query := `
		UPDATE packages SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			max_diameter_in = COALESCE($4, max_diameter_in),
			price_per_acre = COALESCE($5, price_per_acre),
			base_price = COALESCE($6, base_price),
			updated_at = now()
		WHERE id = $1
		RETURNING id, slug, name, description, max_diameter_in, price_per_acre, base_price, is_active, created_at, updated_at`

	var p PackageRecord
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query,
		params.ID, params.Name, params.Description, params.MaxDiameterIn, params.PricePerAcre, params.BasePrice,
	).Scan(
		&p.ID, &p.Slug, &p.Name, &p.Description, &p.MaxDiameterIn, &p.PricePerAcre, &p.BasePrice,
		&p.IsActive, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PackageRecord{}, apperr.NotFound(packageNotFoundMessage)
		}
		return PackageRecord{}, fmt.Errorf("update package: %w", err)
	}

	p.CreatedAt = createdAt.Format(time.RFC3339)
	p.UpdatedAt = updatedAt.Format(time.RFC3339)

	return p, nil
}

// SetPackageActive sets the is_active flag for a package.
func (r *Repo) SetPackageActive(ctx context.Context, id uuid.UUID, isActive bool) error {
	query := `UPDATE packages SET is_active = $2, updated_at = now() WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, isActive)
	if err != nil {
		return fmt.Errorf("set package active: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(packageNotFoundMessage)
	}

	return nil
}

// GetRateSettings retrieves the land clearing and deposit configuration.
func (r *Repo) GetRateSettings(ctx context.Context) (RateSettings, error) {
	query := `
		SELECT days_per_quarter_acre, equipment_day_rate, avg_debris_yards_per_acre, debris_rate_per_yard,
			deposit_percent, deposit_minimum
		FROM rate_settings
		WHERE id = 1`

	var s RateSettings
	err := r.pool.QueryRow(ctx, query).Scan(
		&s.DaysPerQuarterAcre, &s.EquipmentDayRate, &s.AvgDebrisYardsPerAcre, &s.DebrisRatePerYard,
		&s.DepositPercent, &s.DepositMinimum,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return RateSettings{}, apperr.NotFound("rate settings not configured")
		}
		return RateSettings{}, fmt.Errorf("get rate settings: %w", err)
	}

	return s, nil
}

// UpsertRateSettings writes the single-row rate configuration.
func (r *Repo) UpsertRateSettings(ctx context.Context, settings RateSettings) error {
	query := `
		INSERT INTO rate_settings (id, days_per_quarter_acre, equipment_day_rate, avg_debris_yards_per_acre,
			debris_rate_per_yard, deposit_percent, deposit_minimum)
		VALUES (1, $1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			days_per_quarter_acre = EXCLUDED.days_per_quarter_acre,
			equipment_day_rate = EXCLUDED.equipment_day_rate,
			avg_debris_yards_per_acre = EXCLUDED.avg_debris_yards_per_acre,
			debris_rate_per_yard = EXCLUDED.debris_rate_per_yard,
			deposit_percent = EXCLUDED.deposit_percent,
			deposit_minimum = EXCLUDED.deposit_minimum,
			updated_at = now()`

	if _, err := r.pool.Exec(ctx, query,
		settings.DaysPerQuarterAcre, settings.EquipmentDayRate, settings.AvgDebrisYardsPerAcre,
		settings.DebrisRatePerYard, settings.DepositPercent, settings.DepositMinimum,
	); err != nil {
		return fmt.Errorf("upsert rate settings: %w", err)
	}

	return nil
}

func scanPackages(rows pgx.Rows) ([]PackageRecord, error) {
	var results []PackageRecord

	for rows.Next() {
		var p PackageRecord
		var createdAt, updatedAt time.Time

		err := rows.Scan(
			&p.ID, &p.Slug, &p.Name, &p.Description, &p.MaxDiameterIn, &p.PricePerAcre, &p.BasePrice,
			&p.IsActive, &createdAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan package: %w", err)
		}

		p.CreatedAt = createdAt.Format(time.RFC3339)
		p.UpdatedAt = updatedAt.Format(time.RFC3339)

		results = append(results, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate packages: %w", err)
	}

	return results, nil
}

// isUniqueViolation reports whether the error is a Postgres unique
// constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
