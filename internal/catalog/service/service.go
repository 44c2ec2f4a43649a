// Package service implements catalog business logic: the package tiers
// and rate settings that drive the pricing engine.
package service

import (
	"context"

	"clearing_ops_backend/internal/catalog/repository"
	"clearing_ops_backend/internal/catalog/transport"
	"clearing_ops_backend/internal/pricing"
	"clearing_ops_backend/platform/logger"

	"github.com/google/uuid"
)

// Service coordinates catalog operations.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new catalog service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// LoadRateTable assembles the full pricing configuration from storage.
// Only active packages participate in pricing.
func (s *Service) LoadRateTable(ctx context.Context) (pricing.RateTable, error) {
	records, err := s.repo.ListPackages(ctx, true)
	if err != nil {
		return pricing.RateTable{}, err
	}

	settings, err := s.repo.GetRateSettings(ctx)
	if err != nil {
		return pricing.RateTable{}, err
	}

	packages := make([]pricing.Package, 0, len(records))
	for _, record := range records {
		packages = append(packages, record.ToPricingPackage())
	}

	return pricing.RateTable{
		Packages: packages,
		Clearing: pricing.ClearingRates{
			DaysPerQuarterAcre:    settings.DaysPerQuarterAcre,
			EquipmentDayRate:      settings.EquipmentDayRate,
			AvgDebrisYardsPerAcre: settings.AvgDebrisYardsPerAcre,
			DebrisRatePerYard:     settings.DebrisRatePerYard,
		},
		Deposit: pricing.DepositPolicy{
			Percent: settings.DepositPercent,
			Minimum: settings.DepositMinimum,
		},
	}, nil
}

// ListPackages returns all packages, optionally including inactive tiers.
func (s *Service) ListPackages(ctx context.Context, includeInactive bool) ([]repository.PackageRecord, error) {
	return s.repo.ListPackages(ctx, !includeInactive)
}

// GetPackage returns a single package by ID.
func (s *Service) GetPackage(ctx context.Context, id uuid.UUID) (repository.PackageRecord, error) {
	return s.repo.GetPackage(ctx, id)
}

// CreatePackage adds a new package tier.
func (s *Service) CreatePackage(ctx context.Context, req transport.CreatePackageRequest) (repository.PackageRecord, error) {
	return s.repo.CreatePackage(ctx, repository.CreatePackageParams{
		Slug:          req.Slug,
		Name:          req.Name,
		Description:   req.Description,
		MaxDiameterIn: req.MaxDiameterIn,
		PricePerAcre:  req.PricePerAcre,
		BasePrice:     req.BasePrice,
	})
}

// UpdatePackage modifies an existing package tier.
func (s *Service) UpdatePackage(ctx context.Context, id uuid.UUID, req transport.UpdatePackageRequest) (repository.PackageRecord, error) {
	return s.repo.UpdatePackage(ctx, repository.UpdatePackageParams{
		ID:            id,
		Name:          req.Name,
		Description:   req.Description,
		MaxDiameterIn: req.MaxDiameterIn,
		PricePerAcre:  req.PricePerAcre,
		BasePrice:     req.BasePrice,
	})
}

// SetPackageActive toggles a package tier without deleting its history.
func (s *Service) SetPackageActive(ctx context.Context, id uuid.UUID, isActive bool) error {
	return s.repo.SetPackageActive(ctx, id, isActive)
}

// GetRateSettings returns the land clearing and deposit configuration.
func (s *Service) GetRateSettings(ctx context.Context) (repository.RateSettings, error) {
	return s.repo.GetRateSettings(ctx)
}

// UpdateRateSettings replaces the land clearing and deposit configuration.
func (s *Service) UpdateRateSettings(ctx context.Context, req transport.UpdateRateSettingsRequest) (repository.RateSettings, error) {
	settings := repository.RateSettings{
		DaysPerQuarterAcre:    req.DaysPerQuarterAcre,
		EquipmentDayRate:      req.EquipmentDayRate,
		AvgDebrisYardsPerAcre: req.AvgDebrisYardsPerAcre,
		DebrisRatePerYard:     req.DebrisRatePerYard,
		DepositPercent:        req.DepositPercent,
		DepositMinimum:        req.DepositMinimum,
	}
	if err := s.repo.UpsertRateSettings(ctx, settings); err != nil {
		return repository.RateSettings{}, err
	}
	return settings, nil
}
