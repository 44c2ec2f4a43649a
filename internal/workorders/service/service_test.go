package service

import (
	"testing"

	"clearing_ops_backend/internal/pricing"
	quotesrepo "clearing_ops_backend/internal/quotes/repository"
	quotestransport "clearing_ops_backend/internal/quotes/transport"
	"clearing_ops_backend/internal/workorders/repository"
)

func TestEstimateFromBreakdown(t *testing.T) {
	quote := quotestransport.QuoteResponse{
		Pricing: quotesrepo.Revision{
			Breakdown: []pricing.LineItem{
				{Label: "Land Clearing & Grubbing", Quantity: 8, Unit: "days"},
				{Label: "Debris Hauling", Quantity: 85, Unit: "cubic yards"},
			},
		},
	}

	hours := estimateFromBreakdown(quote)
	if hours == nil {
		t.Fatal("expected an estimate")
	}
	if *hours != 64 {
		t.Errorf("expected 64 hours, got %v", *hours)
	}
}

func TestEstimateFromBreakdownNoDays(t *testing.T) {
	quote := quotestransport.QuoteResponse{
		Pricing: quotesrepo.Revision{
			Breakdown: []pricing.LineItem{
				{Label: "Forestry Mulching", Quantity: 2.5, Unit: "acres"},
			},
		},
	}

	if estimateFromBreakdown(quote) != nil {
		t.Error("acre-priced work has no day estimate")
	}
}

func TestClosed(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{repository.StatusScheduled, false},
		{repository.StatusInProgress, false},
		{repository.StatusCompleted, true},
		{repository.StatusCancelled, true},
	}

	for _, tc := range cases {
		if got := closed(tc.status); got != tc.want {
			t.Errorf("closed(%s): expected %v, got %v", tc.status, tc.want, got)
		}
	}
}
