// Package pricing computes itemized estimates for clearing jobs.
// The engine is pure: all rates come from the injected table and every
// call builds a fresh Estimate.
package pricing

import (
	"fmt"
	"math"

	"clearing_ops_backend/platform/apperr"
)

// Service type identifiers accepted by Quote.
const (
	ServiceForestryMulching = "forestry-mulching"
	ServiceLandClearing     = "land-clearing"
)

// quarterAcre is the billing granularity for land clearing day counts.
const quarterAcre = 0.25

// Package is a forestry mulching tier with a fixed per-acre rate and a
// flat minimum that protects against unprofitable small jobs.
type Package struct {
	ID            string `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	Description   string `json:"description" yaml:"description"`
	MaxDiameterIn int    `json:"maxDiameterIn" yaml:"max_diameter_in"`
	PricePerAcre  int64  `json:"pricePerAcre" yaml:"price_per_acre"`
	BasePrice     int64  `json:"basePrice" yaml:"base_price"`
}

// ClearingRates holds the day-rate model for land clearing jobs.
type ClearingRates struct {
	DaysPerQuarterAcre    float64 `json:"daysPerQuarterAcre" yaml:"days_per_quarter_acre"`
	EquipmentDayRate      int64   `json:"equipmentDayRate" yaml:"equipment_day_rate"`
	AvgDebrisYardsPerAcre float64 `json:"avgDebrisYardsPerAcre" yaml:"avg_debris_yards_per_acre"`
	DebrisRatePerYard     int64   `json:"debrisRatePerYard" yaml:"debris_rate_per_yard"`
}

// DepositPolicy defines the upfront payment rule: a percentage of the
// total with a flat floor, whichever is greater.
type DepositPolicy struct {
	Percent float64 `json:"percent" yaml:"percent"`
	Minimum int64   `json:"minimum" yaml:"minimum"`
}

// RateTable is the full pricing configuration. It is versionable business
// data owned by the catalog module and treated as read-only here.
type RateTable struct {
	Packages []Package     `json:"packages" yaml:"packages"`
	Clearing ClearingRates `json:"clearing" yaml:"clearing"`
	Deposit  DepositPolicy `json:"deposit" yaml:"deposit"`
}

// LineItem is one row of an estimate breakdown.
type LineItem struct {
	Label       string  `json:"label"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   int64   `json:"unitPrice"`
	LineTotal   int64   `json:"lineTotal"`
}

// Estimate is an immutable priced breakdown. Amounts are whole US dollars.
type Estimate struct {
	LaborCost   int64      `json:"laborCost"`
	HaulingCost int64      `json:"haulingCost"`
	Total       int64      `json:"total"`
	Deposit     int64      `json:"deposit"`
	Breakdown   []LineItem `json:"breakdown"`
}

// QuoteRequest selects a service type and its inputs.
type QuoteRequest struct {
	ServiceType    string  `json:"serviceType"`
	Acreage        float64 `json:"acreage"`
	PackageID      string  `json:"packageId"`
	IncludeHauling bool    `json:"includeHauling"`
}

// Engine prices quote requests against a rate table.
type Engine struct {
	table RateTable
}

// New creates a pricing engine bound to the given rate table.
func New(table RateTable) *Engine {
	return &Engine{table: table}
}

// Quote dispatches on service type and returns a full estimate including
// the required deposit.
func (e *Engine) Quote(req QuoteRequest) (*Estimate, error) {
	var (
		est *Estimate
		err error
	)

	switch req.ServiceType {
	case ServiceForestryMulching:
		est, err = e.ForestryMulching(req.PackageID, req.Acreage)
	case ServiceLandClearing:
		est, err = e.LandClearing(req.Acreage, req.IncludeHauling)
	default:
		return nil, apperr.Validation(fmt.Sprintf("unknown service type %q", req.ServiceType))
	}
	if err != nil {
		return nil, err
	}

	est.Deposit = e.ComputeDeposit(est.Total)
	return est, nil
}

// ForestryMulching prices a package job: the greater of the package's
// flat minimum or its per-acre rate times acreage, rounded to the dollar.
func (e *Engine) ForestryMulching(packageID string, acreage float64) (*Estimate, error) {
	if acreage <= 0 {
		return nil, apperr.Validation("acreage must be positive")
	}

	pkg, ok := e.lookupPackage(packageID)
	if !ok {
		return nil, apperr.NotFound(fmt.Sprintf("package %q not found", packageID))
	}

	perAcre := roundDollars(pkg.PricePerAcre, acreage)
	price := pkg.BasePrice
	if perAcre > price {
		price = perAcre
	}

	return &Estimate{
		LaborCost:   price,
		HaulingCost: 0,
		Total:       price,
		Breakdown: []LineItem{{
			Label:       pkg.Name,
			Description: fmt.Sprintf("Forestry mulching, trees up to %d\" DBH", pkg.MaxDiameterIn),
			Quantity:    acreage,
			Unit:        "acres",
			UnitPrice:   pkg.PricePerAcre,
			LineTotal:   price,
		}},
	}, nil
}

// LandClearing prices a day-rate job. Fractional acreage always rounds the
// day count up; there is no partial-day billing.
func (e *Engine) LandClearing(acreage float64, includeHauling bool) (*Estimate, error) {
	if acreage <= 0 {
		return nil, apperr.Validation("acreage must be positive")
	}

	rates := e.table.Clearing
	days := math.Ceil(acreage / quarterAcre * rates.DaysPerQuarterAcre)
	labor := int64(days) * rates.EquipmentDayRate

	breakdown := []LineItem{{
		Label:       "Land Clearing & Grubbing",
		Description: "Full clearing with stump grubbing, billed per equipment day",
		Quantity:    days,
		Unit:        "days",
		UnitPrice:   rates.EquipmentDayRate,
		LineTotal:   labor,
	}}

	var hauling int64
	if includeHauling {
		// Hauling is billed on the exact estimated volume; the yard count on
		// the line is rounded for display only. On fractional acreage the
		// line total therefore differs from quantity times unit price.
		yards := math.Round(acreage * rates.AvgDebrisYardsPerAcre)
		hauling = roundDollars(rates.DebrisRatePerYard, acreage*rates.AvgDebrisYardsPerAcre)
		breakdown = append(breakdown, LineItem{
			Label:       "Debris Hauling",
			Description: "Haul-off of cleared debris, billed per cubic yard",
			Quantity:    yards,
			Unit:        "cubic yards",
			UnitPrice:   rates.DebrisRatePerYard,
			LineTotal:   hauling,
		})
	}

	return &Estimate{
		LaborCost:   labor,
		HaulingCost: hauling,
		Total:       labor + hauling,
		Breakdown:   breakdown,
	}, nil
}

// ComputeDeposit applies the deposit policy: percentage of total or the
// flat minimum, whichever is greater.
func (e *Engine) ComputeDeposit(total int64) int64 {
	pct := int64(math.Round(float64(total) * e.table.Deposit.Percent))
	if pct < e.table.Deposit.Minimum {
		return e.table.Deposit.Minimum
	}
	return pct
}

// Packages returns the configured forestry mulching tiers.
func (e *Engine) Packages() []Package {
	return e.table.Packages
}

func (e *Engine) lookupPackage(id string) (Package, bool) {
	for _, pkg := range e.table.Packages {
		if pkg.ID == id {
			return pkg, true
		}
	}
	return Package{}, false
}

// roundDollars rounds rate * quantity to the nearest whole dollar.
func roundDollars(rate int64, quantity float64) int64 {
	return int64(math.Round(float64(rate) * quantity))
}

// DefaultRateTable returns the standard rate card used when no table has
// been configured yet.
func DefaultRateTable() RateTable {
	return RateTable{
		Packages: []Package{
			{
				ID:            "fm-4dbh",
				Name:          "Light Mulching",
				Description:   "Brush and saplings",
				MaxDiameterIn: 4,
				PricePerAcre:  1800,
				BasePrice:     1800,
			},
			{
				ID:            "fm-8dbh",
				Name:          "Standard Mulching",
				Description:   "Brush and small trees",
				MaxDiameterIn: 8,
				PricePerAcre:  2200,
				BasePrice:     2200,
			},
			{
				ID:            "fm-12dbh",
				Name:          "Heavy Mulching",
				Description:   "Dense growth and mid-size trees",
				MaxDiameterIn: 12,
				PricePerAcre:  2800,
				BasePrice:     2800,
			},
		},
		Clearing: ClearingRates{
			DaysPerQuarterAcre:    2,
			EquipmentDayRate:      4500,
			AvgDebrisYardsPerAcre: 85,
			DebrisRatePerYard:     23,
		},
		Deposit: DepositPolicy{
			Percent: 0.25,
			Minimum: 250,
		},
	}
}
