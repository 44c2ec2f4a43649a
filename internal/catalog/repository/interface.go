package repository

import (
	"context"

	"clearing_ops_backend/internal/pricing"

	"github.com/google/uuid"
)

// PackageRecord is a stored forestry mulching tier.
type PackageRecord struct {
	ID            uuid.UUID `json:"id"`
	Slug          string    `json:"slug"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	MaxDiameterIn int       `json:"maxDiameterIn"`
	PricePerAcre  int64     `json:"pricePerAcre"`
	BasePrice     int64     `json:"basePrice"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     string    `json:"createdAt"`
	UpdatedAt     string    `json:"updatedAt"`
}

// RateSettings is the single-row land clearing and deposit configuration.
type RateSettings struct {
	DaysPerQuarterAcre    float64 `json:"daysPerQuarterAcre"`
	EquipmentDayRate      int64   `json:"equipmentDayRate"`
	AvgDebrisYardsPerAcre float64 `json:"avgDebrisYardsPerAcre"`
	DebrisRatePerYard     int64   `json:"debrisRatePerYard"`
	DepositPercent        float64 `json:"depositPercent"`
	DepositMinimum        int64   `json:"depositMinimum"`
}

// CreatePackageParams contains parameters for creating a package.
type CreatePackageParams struct {
	Slug          string
	Name          string
	Description   string
	MaxDiameterIn int
	PricePerAcre  int64
	BasePrice     int64
}

// UpdatePackageParams contains parameters for updating a package.
// Nil fields are left unchanged.
type UpdatePackageParams struct {
	ID            uuid.UUID
	Name          *string
	Description   *string
	MaxDiameterIn *int
	PricePerAcre  *int64
	BasePrice     *int64
}

// PackageReader provides read operations for packages.
type PackageReader interface {
	ListPackages(ctx context.Context, activeOnly bool) ([]PackageRecord, error)
	GetPackage(ctx context.Context, id uuid.UUID) (PackageRecord, error)
	CountPackages(ctx context.Context) (int, error)
}

// PackageWriter provides write operations for packages.
type PackageWriter interface {
	CreatePackage(ctx context.Context, params CreatePackageParams) (PackageRecord, error)
	UpdatePackage(ctx context.Context, params UpdatePackageParams) (PackageRecord, error)
	SetPackageActive(ctx context.Context, id uuid.UUID, isActive bool) error
}

// RateReader provides access to the clearing and deposit rates.
type RateReader interface {
	GetRateSettings(ctx context.Context) (RateSettings, error)
}

// RateWriter updates the clearing and deposit rates.
type RateWriter interface {
	UpsertRateSettings(ctx context.Context, settings RateSettings) error
}

// Repository combines all catalog repository operations.
type Repository interface {
	PackageReader
	PackageWriter
	RateReader
	RateWriter
}

// ToPricingPackage converts a stored record to the pricing engine's
// package shape. The engine keys packages by slug.
func (p PackageRecord) ToPricingPackage() pricing.Package {
	return pricing.Package{
		ID:            p.Slug,
		Name:          p.Name,
		Description:   p.Description,
		MaxDiameterIn: p.MaxDiameterIn,
		PricePerAcre:  p.PricePerAcre,
		BasePrice:     p.BasePrice,
	}
}
