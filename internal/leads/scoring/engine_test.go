package scoring

import (
	"testing"
	"time"
)

func ptrF(v float64) *float64 { return &v }
func ptrI64(v int64) *int64   { return &v }
func ptrInt(v int) *int       { return &v }

// now is fixed to mid April so the seasonal bonus applies and tests are
// deterministic.
var aprilNow = time.Date(2026, time.April, 15, 12, 0, 0, 0, time.UTC)

// januaryNow falls outside the peak seasons.
var januaryNow = time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

func TestScoreReferralHotLead(t *testing.T) {
	in := Input{
		Email:          "owner@example.com",
		Phone:          "+15125550134",
		Acreage:        ptrF(6),
		PackageID:      "fm-8dbh",
		EstimatedValue: ptrI64(55000),
		Notes:          "Wants the back 6 acres mulched before summer",
		Source:         "referral",
		SubmittedAt:    aprilNow.Add(-30 * time.Minute),
	}

	result := Score(in, aprilNow)

	if result.Factors.ContactCompleteness != 18 {
		t.Errorf("expected contact 18, got %d", result.Factors.ContactCompleteness)
	}
	// 10 known + 10 size tier + 8 package + 7 value tier + 2 notes. The
	// raw subtotal exceeds the nominal 35 and is preserved.
	if result.Factors.ProjectQuality != 37 {
		t.Errorf("expected project 37, got %d", result.Factors.ProjectQuality)
	}
	if result.Factors.Engagement != 12 {
		t.Errorf("expected engagement 12, got %d", result.Factors.Engagement)
	}
	// 20 for under an hour plus the spring bonus.
	if result.Factors.Timing != 22 {
		t.Errorf("expected timing 22, got %d", result.Factors.Timing)
	}
	if result.Total != 89 {
		t.Errorf("expected total 89, got %d", result.Total)
	}
	if result.Grade != GradeA {
		t.Errorf("expected grade A, got %s", result.Grade)
	}
}

func TestScoreEmptyLead(t *testing.T) {
	in := Input{SubmittedAt: januaryNow.Add(-30 * 24 * time.Hour)}

	result := Score(in, januaryNow)

	if result.Factors.ContactCompleteness != 0 {
		t.Errorf("expected contact 0, got %d", result.Factors.ContactCompleteness)
	}
	if result.Factors.ProjectQuality != 0 {
		t.Errorf("expected project 0, got %d", result.Factors.ProjectQuality)
	}
	// Unknown source still earns the default engagement base.
	if result.Factors.Engagement != defaultSourcePoints {
		t.Errorf("expected engagement %d, got %d", defaultSourcePoints, result.Factors.Engagement)
	}
	if result.Factors.Timing != 0 {
		t.Errorf("expected timing 0, got %d", result.Factors.Timing)
	}
	if result.Grade != GradeF {
		t.Errorf("expected grade F, got %s", result.Grade)
	}
}

func TestScoreTotalEqualsFactorSum(t *testing.T) {
	in := Input{
		Name:        "Dale Murphy",
		Phone:       "+15125550134",
		Acreage:     ptrF(2.5),
		Source:      "regional site",
		SubmittedAt: januaryNow.Add(-36 * time.Hour),
	}

	result := Score(in, januaryNow)

	sum := result.Factors.ContactCompleteness + result.Factors.ProjectQuality +
		result.Factors.Engagement + result.Factors.Timing
	if result.Total != sum {
		t.Errorf("total %d does not equal factor sum %d", result.Total, sum)
	}
	if result.Total < 0 || result.Total > 100 {
		t.Errorf("total %d out of range", result.Total)
	}
}

func TestGradeBoundaries(t *testing.T) {
	cases := []struct {
		total int
		want  Grade
	}{
		{85, GradeA},
		{84, GradeB},
		{70, GradeB},
		{69, GradeC},
		{55, GradeC},
		{54, GradeD},
		{40, GradeD},
		{39, GradeF},
		{0, GradeF},
		{100, GradeA},
	}

	for _, tc := range cases {
		if got := gradeFor(tc.total); got != tc.want {
			t.Errorf("total %d: expected %s, got %s", tc.total, tc.want, got)
		}
	}
}

func TestScoreSource(t *testing.T) {
	cases := []struct {
		source string
		want   int
	}{
		{"referral", 12},
		{"Referral from neighbor", 12},
		{"direct site", 10},
		{"website", 10},
		{"regional site", 8},
		{"facebook", defaultSourcePoints},
		{"", defaultSourcePoints},
	}

	for _, tc := range cases {
		if got := scoreSource(tc.source); got != tc.want {
			t.Errorf("source %q: expected %d, got %d", tc.source, tc.want, got)
		}
	}
}

func TestTierPointsHighestTierWins(t *testing.T) {
	cases := []struct {
		value float64
		tiers []tier
		want  int
	}{
		{6, acreageTiers, 10},
		{5, acreageTiers, 10},
		{4.9, acreageTiers, 5},
		{2, acreageTiers, 5},
		{1, acreageTiers, 2},
		{0.5, acreageTiers, 0},
		{55000, valueTiers, 7},
		{20000, valueTiers, 5},
		{4999, valueTiers, 0},
		{300, timeOnSiteTiers, 5},
		{119, timeOnSiteTiers, 1},
		{59, timeOnSiteTiers, 0},
		{5, pagesViewedTiers, 3},
		{2, pagesViewedTiers, 1},
		{1, pagesViewedTiers, 0},
	}

	for _, tc := range cases {
		if got := tierPoints(tc.value, tc.tiers); got != tc.want {
			t.Errorf("value %v: expected %d, got %d", tc.value, tc.want, got)
		}
	}
}

func TestScoreTimingTiers(t *testing.T) {
	cases := []struct {
		age        time.Duration
		wantPoints int
		wantHot    bool
	}{
		{30 * time.Minute, 20, true},
		{3 * time.Hour, 15, false},
		{20 * time.Hour, 10, false},
		{40 * time.Hour, 5, false},
		{5 * 24 * time.Hour, 2, false},
		{10 * 24 * time.Hour, 0, false},
	}

	for _, tc := range cases {
		points, advisory := scoreTiming(januaryNow.Add(-tc.age), januaryNow)
		if points != tc.wantPoints {
			t.Errorf("age %v: expected %d points, got %d", tc.age, tc.wantPoints, points)
		}
		hot := advisory == "HOT LEAD: contact immediately"
		if hot != tc.wantHot {
			t.Errorf("age %v: hot advisory mismatch, got %q", tc.age, advisory)
		}
	}
}

func TestSeasonalBonus(t *testing.T) {
	submitted := aprilNow.Add(-30 * time.Minute)

	spring, _ := scoreTiming(submitted, aprilNow)
	if spring != 22 {
		t.Errorf("expected 22 in April, got %d", spring)
	}

	winter, _ := scoreTiming(januaryNow.Add(-30*time.Minute), januaryNow)
	if winter != 20 {
		t.Errorf("expected 20 in January, got %d", winter)
	}

	fall := time.Date(2026, time.October, 1, 9, 0, 0, 0, time.UTC)
	autumn, _ := scoreTiming(fall.Add(-30*time.Minute), fall)
	if autumn != 22 {
		t.Errorf("expected 22 in October, got %d", autumn)
	}
}

func TestRecommendationsCappedAndOrdered(t *testing.T) {
	// An empty lead generates the most advisories: grade framing, the
	// cold-lead urgency note, then per-field requests.
	in := Input{SubmittedAt: januaryNow.Add(-30 * 24 * time.Hour)}

	result := Score(in, januaryNow)

	if len(result.Recommendations) > 5 {
		t.Fatalf("expected at most 5 recommendations, got %d", len(result.Recommendations))
	}
	if result.Recommendations[0] != gradeFraming[GradeF] {
		t.Errorf("expected grade framing first, got %q", result.Recommendations[0])
	}
	if result.Recommendations[1] != coldLeadAdvisory {
		t.Errorf("expected cold lead advisory second, got %q", result.Recommendations[1])
	}
}

func TestRecommendationsForHotCompleteLead(t *testing.T) {
	in := Input{
		Name:           "Dale Murphy",
		Email:          "dale@example.com",
		Phone:          "+15125550134",
		Address:        "4811 Ranch Rd, Dripping Springs TX",
		Acreage:        ptrF(6),
		PackageID:      "fm-12dbh",
		EstimatedValue: ptrI64(55000),
		Notes:          "cedar removal across the whole parcel",
		Source:         "referral",
		SubmittedAt:    aprilNow.Add(-30 * time.Minute),
		TimeOnSiteSec:  ptrInt(400),
		PagesViewed:    ptrInt(6),
	}

	result := Score(in, aprilNow)

	if result.Grade != GradeA {
		t.Fatalf("expected grade A, got %s", result.Grade)
	}
	// Complete lead: only framing and urgency remain.
	want := []string{gradeFraming[GradeA], "HOT LEAD: contact immediately"}
	if len(result.Recommendations) != len(want) {
		t.Fatalf("expected %d recommendations, got %v", len(want), result.Recommendations)
	}
	for i, rec := range want {
		if result.Recommendations[i] != rec {
			t.Errorf("recommendation %d: expected %q, got %q", i, rec, result.Recommendations[i])
		}
	}
}

func TestScoreIsClampedAtHundred(t *testing.T) {
	in := Input{
		Name:           "Dale Murphy",
		Email:          "dale@example.com",
		Phone:          "+15125550134",
		Address:        "4811 Ranch Rd",
		Acreage:        ptrF(10),
		PackageID:      "fm-12dbh",
		EstimatedValue: ptrI64(80000),
		Notes:          "full clear",
		Source:         "referral",
		SubmittedAt:    aprilNow.Add(-10 * time.Minute),
		TimeOnSiteSec:  ptrInt(600),
		PagesViewed:    ptrInt(9),
	}

	result := Score(in, aprilNow)

	// Raw sum is 25+37+20+22 = 104.
	if result.Total != 100 {
		t.Errorf("expected total clamped to 100, got %d", result.Total)
	}
	if result.Grade != GradeA {
		t.Errorf("expected grade A, got %s", result.Grade)
	}
}
