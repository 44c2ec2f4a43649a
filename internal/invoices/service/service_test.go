package service

import "testing"

func TestFinalAmount(t *testing.T) {
	cases := []struct {
		name        string
		total       int64
		depositPaid int64
		billable    float64
		estimated   float64
		dayRate     int64
		want        int64
	}{
		{"on estimate", 37955, 9489, 64, 64, 4500, 28466},
		{"no deposit paid", 37955, 0, 64, 64, 4500, 37955},
		{"four hours over", 37955, 9489, 68, 64, 4500, 30716},
		{"under estimate bills nothing extra", 37955, 9489, 60, 64, 4500, 28466},
		{"half hour over rounds", 37955, 9489, 64.5, 64, 4500, 28747},
		{"no estimate skips overrun billing", 37955, 9489, 100, 0, 4500, 28466},
		{"deposit exceeds total floors at zero", 2200, 2500, 0, 0, 4500, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := finalAmount(tc.total, tc.depositPaid, tc.billable, tc.estimated, tc.dayRate)
			if got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}
