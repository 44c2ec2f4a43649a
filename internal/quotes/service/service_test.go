package service

import (
	"context"
	"strings"
	"testing"

	"clearing_ops_backend/internal/pricing"
)

type staticRates struct{}

func (staticRates) LoadRateTable(context.Context) (pricing.RateTable, error) {
	return pricing.DefaultRateTable(), nil
}

func TestPriceBuildsRevisionParams(t *testing.T) {
	svc := &Service{rates: staticRates{}}

	params, err := svc.price(context.Background(), pricing.ServiceLandClearing, 2.0, "", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if params.ServiceType != pricing.ServiceLandClearing {
		t.Errorf("expected service type %q, got %q", pricing.ServiceLandClearing, params.ServiceType)
	}
	if params.PackageSlug != nil {
		t.Errorf("expected nil package slug, got %v", *params.PackageSlug)
	}
	if params.Estimate.Total != 75910 {
		t.Errorf("expected total 75910, got %d", params.Estimate.Total)
	}
	if params.Estimate.Deposit != 18978 {
		t.Errorf("expected deposit 18978, got %d", params.Estimate.Deposit)
	}
}

func TestPriceForestryPackage(t *testing.T) {
	svc := &Service{rates: staticRates{}}

	params, err := svc.price(context.Background(), pricing.ServiceForestryMulching, 3.0, "fm-8dbh", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if params.PackageSlug == nil || *params.PackageSlug != "fm-8dbh" {
		t.Errorf("expected package slug fm-8dbh, got %v", params.PackageSlug)
	}
	if params.Estimate.Total != 6600 {
		t.Errorf("expected total 6600, got %d", params.Estimate.Total)
	}
}

func TestNewPublicToken(t *testing.T) {
	first, err := newPublicToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := newPublicToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != publicTokenBytes*2 {
		t.Errorf("expected %d hex chars, got %d", publicTokenBytes*2, len(first))
	}
	if first == second {
		t.Error("tokens should not repeat")
	}
}

func TestPublicURL(t *testing.T) {
	svc := New(nil, nil, nil, nil, "https://example.com/", nil)

	got := svc.PublicURL("abc123")
	if got != "https://example.com/proposals/abc123" {
		t.Errorf("unexpected public URL: %s", got)
	}
	if strings.Contains(got, "//proposals") {
		t.Error("base URL trailing slash should be trimmed")
	}
}

func TestFallback(t *testing.T) {
	if fallback("a", "b") != "a" {
		t.Error("explicit value should win")
	}
	if fallback("", "b") != "b" {
		t.Error("empty value should fall back")
	}
}
