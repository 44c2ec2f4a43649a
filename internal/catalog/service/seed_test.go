package service

import (
	"os"
	"path/filepath"
	"testing"
)

const validSeed = `
packages:
  - id: fm-8dbh
    name: Standard Mulching
    description: Brush and small trees
    max_diameter_in: 8
    price_per_acre: 2200
    base_price: 2200
clearing:
  days_per_quarter_acre: 2
  equipment_day_rate: 4500
  avg_debris_yards_per_acre: 85
  debris_rate_per_yard: 23
deposit:
  percent: 0.25
  minimum: 250
`

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rates.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	return path
}

func TestLoadSeedFile(t *testing.T) {
	path := writeSeedFile(t, validSeed)

	table, err := loadSeedFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(table.Packages) != 1 {
		t.Fatalf("expected 1 package, got %d", len(table.Packages))
	}
	pkg := table.Packages[0]
	if pkg.ID != "fm-8dbh" || pkg.PricePerAcre != 2200 || pkg.BasePrice != 2200 || pkg.MaxDiameterIn != 8 {
		t.Errorf("unexpected package: %+v", pkg)
	}
	if table.Clearing.DaysPerQuarterAcre != 2 || table.Clearing.EquipmentDayRate != 4500 {
		t.Errorf("unexpected clearing rates: %+v", table.Clearing)
	}
	if table.Deposit.Percent != 0.25 || table.Deposit.Minimum != 250 {
		t.Errorf("unexpected deposit policy: %+v", table.Deposit)
	}
}

func TestLoadSeedFileMissingFallsBackToDefaults(t *testing.T) {
	table, err := loadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Packages) == 0 {
		t.Fatal("expected default packages")
	}
	if table.Deposit.Minimum != 250 {
		t.Errorf("expected default deposit minimum 250, got %d", table.Deposit.Minimum)
	}
}

func TestLoadSeedFileRejectsEmptyPackages(t *testing.T) {
	path := writeSeedFile(t, "packages: []\n")

	if _, err := loadSeedFile(path); err == nil {
		t.Fatal("expected error for empty package list")
	}
}

func TestLoadSeedFileRejectsBadPricing(t *testing.T) {
	path := writeSeedFile(t, `
packages:
  - id: fm-8dbh
    name: Standard Mulching
    max_diameter_in: 8
    price_per_acre: 0
    base_price: 2200
`)

	if _, err := loadSeedFile(path); err == nil {
		t.Fatal("expected error for non-positive price per acre")
	}
}

func TestLoadSeedFileRejectsMalformedYAML(t *testing.T) {
	path := writeSeedFile(t, "packages: [unclosed")

	if _, err := loadSeedFile(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
