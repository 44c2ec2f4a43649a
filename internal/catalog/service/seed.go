package service

import (
	"context"
	"fmt"
	"os"

	"clearing_ops_backend/internal/catalog/repository"
	"clearing_ops_backend/internal/pricing"

	"gopkg.in/yaml.v3"
)

// Seed loads the rate card from a YAML file and writes it to storage if
// the catalog is still empty. An existing catalog is never overwritten;
// rate changes after go-live happen through the admin API.
func (s *Service) Seed(ctx context.Context, path string) error {
	count, err := s.repo.CountPackages(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.log.Debug("catalog already seeded, skipping", "packages", count)
		return nil
	}

	table, err := loadSeedFile(path)
	if err != nil {
		return err
	}

	for _, pkg := range table.Packages {
		if _, err := s.repo.CreatePackage(ctx, repository.CreatePackageParams{
			Slug:          pkg.ID,
			Name:          pkg.Name,
			Description:   pkg.Description,
			MaxDiameterIn: pkg.MaxDiameterIn,
			PricePerAcre:  pkg.PricePerAcre,
			BasePrice:     pkg.BasePrice,
		}); err != nil {
			return fmt.Errorf("seed package %s: %w", pkg.ID, err)
		}
	}

	if err := s.repo.UpsertRateSettings(ctx, repository.RateSettings{
		DaysPerQuarterAcre:    table.Clearing.DaysPerQuarterAcre,
		EquipmentDayRate:      table.Clearing.EquipmentDayRate,
		AvgDebrisYardsPerAcre: table.Clearing.AvgDebrisYardsPerAcre,
		DebrisRatePerYard:     table.Clearing.DebrisRatePerYard,
		DepositPercent:        table.Deposit.Percent,
		DepositMinimum:        table.Deposit.Minimum,
	}); err != nil {
		return fmt.Errorf("seed rate settings: %w", err)
	}

	s.log.Info("catalog seeded from rate file", "path", path, "packages", len(table.Packages))
	return nil
}

// loadSeedFile parses a YAML rate card. A missing file falls back to the
// built-in default table so a fresh checkout still boots.
func loadSeedFile(path string) (pricing.RateTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return pricing.DefaultRateTable(), nil
		}
		return pricing.RateTable{}, fmt.Errorf("read rate seed file: %w", err)
	}

	var table pricing.RateTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return pricing.RateTable{}, fmt.Errorf("parse rate seed file: %w", err)
	}

	if len(table.Packages) == 0 {
		return pricing.RateTable{}, fmt.Errorf("rate seed file %s contains no packages", path)
	}
	for _, pkg := range table.Packages {
		if pkg.ID == "" {
			return pricing.RateTable{}, fmt.Errorf("rate seed file %s: package with empty id", path)
		}
		if pkg.PricePerAcre <= 0 || pkg.BasePrice <= 0 {
			return pricing.RateTable{}, fmt.Errorf("rate seed file %s: package %s has non-positive pricing", path, pkg.ID)
		}
	}

	return table, nil
}
