package email

import (
	"strings"
	"testing"
)

func TestDollars(t *testing.T) {
	cases := []struct {
		amount int64
		want   string
	}{
		{0, "$0"},
		{250, "$250"},
		{2200, "$2,200"},
		{37955, "$37,955"},
		{1234567, "$1,234,567"},
		{-500, "-$500"},
	}

	for _, tc := range cases {
		if got := Dollars(tc.amount); got != tc.want {
			t.Errorf("Dollars(%d): expected %s, got %s", tc.amount, tc.want, got)
		}
	}
}

func TestRenderProposal(t *testing.T) {
	html, err := Render("proposal.html", map[string]interface{}{
		"CustomerName": "Sarah Miller",
		"QuoteNumber":  "Q-00042",
		"Total":        int64(37955),
		"Deposit":      int64(9489),
		"ProposalURL":  "https://example.com/proposals/abc",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"Sarah Miller", "Q-00042", "$37,955", "$9,489", "https://example.com/proposals/abc"} {
		if !strings.Contains(html, want) {
			t.Errorf("expected rendered proposal to contain %q", want)
		}
	}
}

func TestRenderHotLead(t *testing.T) {
	html, err := Render("hot_lead.html", map[string]interface{}{
		"Name":   "Tom Hale",
		"Phone":  "+15125550147",
		"Email":  "tom@example.com",
		"Source": "referral",
		"Grade":  "A",
		"Score":  89,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(html, "Tom Hale") || !strings.Contains(html, "+15125550147") {
		t.Error("expected rendered alert to contain lead contact details")
	}
}
