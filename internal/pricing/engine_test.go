package pricing

import (
	"testing"

	"clearing_ops_backend/platform/apperr"
)

func newTestEngine() *Engine {
	return New(DefaultRateTable())
}

func TestForestryMulchingMinimumGoverns(t *testing.T) {
	e := newTestEngine()

	// Half an acre at 2200/acre is 1100, below the 2200 floor.
	est, err := e.ForestryMulching("fm-8dbh", 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if est.Total != 2200 {
		t.Errorf("expected total 2200, got %d", est.Total)
	}
	if est.LaborCost != 2200 || est.HaulingCost != 0 {
		t.Errorf("expected labor 2200 hauling 0, got %d/%d", est.LaborCost, est.HaulingCost)
	}
	if len(est.Breakdown) != 1 {
		t.Fatalf("expected 1 breakdown line, got %d", len(est.Breakdown))
	}
	line := est.Breakdown[0]
	if line.Quantity != 0.5 || line.Unit != "acres" || line.UnitPrice != 2200 || line.LineTotal != 2200 {
		t.Errorf("unexpected breakdown line: %+v", line)
	}
}

func TestForestryMulchingPerAcreGoverns(t *testing.T) {
	e := newTestEngine()

	est, err := e.ForestryMulching("fm-8dbh", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if est.Total != 6600 {
		t.Errorf("expected total 6600, got %d", est.Total)
	}
}

func TestForestryMulchingAllPackages(t *testing.T) {
	e := newTestEngine()

	for _, pkg := range e.Packages() {
		est, err := e.ForestryMulching(pkg.ID, 2.5)
		if err != nil {
			t.Fatalf("package %s: unexpected error: %v", pkg.ID, err)
		}
		want := roundDollars(pkg.PricePerAcre, 2.5)
		if want < pkg.BasePrice {
			want = pkg.BasePrice
		}
		if est.Total != want {
			t.Errorf("package %s: expected total %d, got %d", pkg.ID, want, est.Total)
		}
	}
}

func TestForestryMulchingUnknownPackage(t *testing.T) {
	e := newTestEngine()

	_, err := e.ForestryMulching("fm-99dbh", 1)
	if err == nil {
		t.Fatal("expected error for unknown package")
	}
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Errorf("expected not-found kind, got %v", apperr.GetKind(err))
	}
}

func TestForestryMulchingInvalidAcreage(t *testing.T) {
	e := newTestEngine()

	for _, acreage := range []float64{0, -1.5} {
		_, err := e.ForestryMulching("fm-8dbh", acreage)
		if err == nil {
			t.Fatalf("acreage %v: expected error", acreage)
		}
		if apperr.GetKind(err) != apperr.KindValidation {
			t.Errorf("acreage %v: expected validation kind, got %v", acreage, apperr.GetKind(err))
		}
	}
}

func TestLandClearingWithHauling(t *testing.T) {
	e := newTestEngine()

	est, err := e.LandClearing(1.0, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 1 acre / 0.25 * 2 days per quarter acre = 8 days
	if est.LaborCost != 36000 {
		t.Errorf("expected labor 36000, got %d", est.LaborCost)
	}
	// 1 * 85 yards * 23/yard = 1955
	if est.HaulingCost != 1955 {
		t.Errorf("expected hauling 1955, got %d", est.HaulingCost)
	}
	if est.Total != 37955 {
		t.Errorf("expected total 37955, got %d", est.Total)
	}

	if len(est.Breakdown) != 2 {
		t.Fatalf("expected 2 breakdown lines, got %d", len(est.Breakdown))
	}
	if est.Breakdown[0].Quantity != 8 || est.Breakdown[0].Unit != "days" {
		t.Errorf("unexpected labor line: %+v", est.Breakdown[0])
	}
	if est.Breakdown[1].Quantity != 85 || est.Breakdown[1].Unit != "cubic yards" {
		t.Errorf("unexpected hauling line: %+v", est.Breakdown[1])
	}

	var sum int64
	for _, line := range est.Breakdown {
		sum += line.LineTotal
	}
	if sum != est.Total {
		t.Errorf("breakdown lines sum to %d, total is %d", sum, est.Total)
	}
}

func TestLandClearingFractionalAcreageHauling(t *testing.T) {
	e := newTestEngine()

	est, err := e.LandClearing(0.5, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Hauling is billed on the exact volume: round(0.5 * 85 * 23) = 978.
	if est.HaulingCost != 978 {
		t.Errorf("expected hauling 978, got %d", est.HaulingCost)
	}
	if est.Total != 18978 {
		t.Errorf("expected total 18978, got %d", est.Total)
	}

	line := est.Breakdown[1]
	if line.Quantity != 43 {
		t.Errorf("expected displayed quantity 43, got %v", line.Quantity)
	}
	if line.LineTotal != 978 {
		t.Errorf("expected line total 978, got %d", line.LineTotal)
	}
	// The displayed yard count is rounded, so quantity times unit price
	// (43 * 23 = 989) must not leak into the billed amount.
	if rounded := int64(line.Quantity) * line.UnitPrice; rounded == line.LineTotal {
		t.Errorf("line total %d tracks the rounded quantity, expected exact-volume pricing", line.LineTotal)
	}
}

func TestLandClearingWithoutHauling(t *testing.T) {
	e := newTestEngine()

	est, err := e.LandClearing(1.0, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if est.HaulingCost != 0 {
		t.Errorf("expected hauling 0, got %d", est.HaulingCost)
	}
	if est.Total != 36000 {
		t.Errorf("expected total 36000, got %d", est.Total)
	}
	if len(est.Breakdown) != 1 {
		t.Errorf("expected 1 breakdown line, got %d", len(est.Breakdown))
	}
}

func TestLandClearingRoundsDaysUp(t *testing.T) {
	e := newTestEngine()

	cases := []struct {
		acreage  float64
		wantDays float64
	}{
		{0.25, 2},
		{0.3, 3},  // 0.3/0.25*2 = 2.4 -> 3
		{0.5, 4},
		{1.1, 9},  // 1.1/0.25*2 = 8.8 -> 9
		{2.0, 16},
	}

	for _, tc := range cases {
		est, err := e.LandClearing(tc.acreage, false)
		if err != nil {
			t.Fatalf("acreage %v: unexpected error: %v", tc.acreage, err)
		}
		if est.Breakdown[0].Quantity != tc.wantDays {
			t.Errorf("acreage %v: expected %v days, got %v", tc.acreage, tc.wantDays, est.Breakdown[0].Quantity)
		}
	}
}

func TestComputeDeposit(t *testing.T) {
	e := newTestEngine()

	cases := []struct {
		total int64
		want  int64
	}{
		{37955, 9489}, // round(9488.75)
		{2200, 550},
		{800, 250},  // 25% is 200, floor wins
		{0, 250},
		{1000, 250}, // exactly at the floor
	}

	for _, tc := range cases {
		if got := e.ComputeDeposit(tc.total); got != tc.want {
			t.Errorf("total %d: expected deposit %d, got %d", tc.total, tc.want, got)
		}
	}
}

func TestQuoteDispatch(t *testing.T) {
	e := newTestEngine()

	est, err := e.Quote(QuoteRequest{
		ServiceType:    ServiceLandClearing,
		Acreage:        1.0,
		IncludeHauling: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if est.Total != 37955 {
		t.Errorf("expected total 37955, got %d", est.Total)
	}
	if est.Deposit != 9489 {
		t.Errorf("expected deposit 9489, got %d", est.Deposit)
	}

	_, err = e.Quote(QuoteRequest{ServiceType: "demolition", Acreage: 1})
	if err == nil {
		t.Fatal("expected error for unknown service type")
	}
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Errorf("expected validation kind, got %v", apperr.GetKind(err))
	}
}
