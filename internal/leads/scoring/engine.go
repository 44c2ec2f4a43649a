// Package scoring converts a lead snapshot into a prioritization signal:
// a 0-100 score, a letter grade, and a short ranked action list for the
// sales follow-up queue.
package scoring

import (
	"strings"
	"time"
)

const (
	// Maximum contribution from each factor category. Contact, engagement
	// and the timing step sum to their maxima by construction; project
	// quality can exceed its nominal 35 when every bonus lands, and that
	// overflow is preserved rather than clamped. The final total is still
	// clamped to 0-100.
	maxContactContribution    = 25
	maxProjectContribution    = 35
	maxEngagementContribution = 20
	maxTimingContribution     = 20

	// Flat bonus applied during spring and fall, the peak seasons for
	// tree work.
	seasonalBonus = 2

	// maxRecommendations caps the advisory list.
	maxRecommendations = 5
)

// Grade is the letter grade derived from the total score.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Input is a point-in-time snapshot of a lead. Every field is optional;
// absent fields simply earn no credit for their factor.
type Input struct {
	Name    string
	Email   string
	Phone   string
	Address string

	Acreage        *float64
	PackageID      string
	EstimatedValue *int64
	Notes          string

	Source      string
	SubmittedAt time.Time

	TimeOnSiteSec *int
	PagesViewed   *int
}

// Factors holds the four component subscores.
type Factors struct {
	ContactCompleteness int `json:"contactCompleteness"`
	ProjectQuality      int `json:"projectQuality"`
	Engagement          int `json:"engagement"`
	Timing              int `json:"timing"`
}

// Result is the scoring output. It is a derived view, recomputed whenever
// the lead or the clock changes, and never stored as lead identity.
type Result struct {
	Total           int      `json:"total"`
	Grade           Grade    `json:"grade"`
	Factors         Factors  `json:"factors"`
	Recommendations []string `json:"recommendations"`
}

// tier is one rung of a descending threshold ladder.
type tier struct {
	threshold float64
	points    int
}

// tierPoints returns the points of the first tier whose threshold the
// value meets, scanning highest first. Tiers are mutually exclusive.
func tierPoints(value float64, tiers []tier) int {
	for _, t := range tiers {
		if value >= t.threshold {
			return t.points
		}
	}
	return 0
}

var (
	acreageTiers = []tier{
		{5, 10},
		{2, 5},
		{1, 2},
	}
	valueTiers = []tier{
		{50000, 7},
		{20000, 5},
		{10000, 3},
		{5000, 1},
	}
	timeOnSiteTiers = []tier{
		{300, 5},
		{120, 3},
		{60, 1},
	}
	pagesViewedTiers = []tier{
		{5, 3},
		{3, 2},
		{2, 1},
	}
)

// sourceScoreTable maps source keywords to engagement base points.
// Referrals convert best for this business; anything unrecognized gets
// the default.
var sourceScoreTable = []struct {
	keywords []string
	points   int
}{
	{[]string{"referral"}, 12},
	{[]string{"direct", "website"}, 10},
	{[]string{"regional"}, 8},
}

const defaultSourcePoints = 5

// timingTier maps elapsed hours since submission to urgency points and an
// optional urgency advisory.
type timingTier struct {
	maxHours float64
	points   int
	advisory string
}

var timingTiers = []timingTier{
	{1, 20, "HOT LEAD: contact immediately"},
	{4, 15, "Contact within the hour"},
	{24, 10, "Follow up today"},
	{48, 5, ""},
	{168, 2, "Lead is cooling, contact ASAP"},
}

const coldLeadAdvisory = "Cold lead, needs re-engagement"

// gradeFraming is prepended to the recommendation list per grade.
var gradeFraming = map[Grade]string{
	GradeA: "Premium lead: prioritize immediately",
	GradeB: "Strong lead: high priority",
	GradeC: "Solid lead: standard follow-up",
	GradeD: "Low priority: qualify further",
	GradeF: "Poor fit: minimal effort",
}

// Score computes the lead score at the given instant. The clock is a
// parameter so timing and seasonality are deterministic under test.
func Score(in Input, now time.Time) Result {
	var advisories []string

	contact := scoreContact(in, &advisories)
	project := scoreProject(in, &advisories)
	engagement := scoreEngagement(in)
	timing, urgency := scoreTiming(in.SubmittedAt, now)

	total := clampScore(contact + project + engagement + timing)
	grade := gradeFor(total)

	// Urgency framing goes ahead of the per-factor advisories, and the
	// grade framing ahead of everything. Prepend in reverse priority so
	// truncation keeps the most urgent entries.
	recommendations := advisories
	if urgency != "" {
		recommendations = append([]string{urgency}, recommendations...)
	}
	recommendations = append([]string{gradeFraming[grade]}, recommendations...)
	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}

	return Result{
		Total: total,
		Grade: grade,
		Factors: Factors{
			ContactCompleteness: contact,
			ProjectQuality:      project,
			Engagement:          engagement,
			Timing:              timing,
		},
		Recommendations: recommendations,
	}
}

// scoreContact awards fixed points per present contact field. Phone is
// the highest-value channel for this business.
func scoreContact(in Input, advisories *[]string) int {
	score := 0

	if strings.TrimSpace(in.Email) != "" {
		score += 8
	} else {
		*advisories = append(*advisories, "Request email address")
	}
	if strings.TrimSpace(in.Phone) != "" {
		score += 10
	} else {
		*advisories = append(*advisories, "Request phone number")
	}
	if strings.TrimSpace(in.Address) != "" {
		score += 5
	} else {
		*advisories = append(*advisories, "Request property address")
	}
	if strings.TrimSpace(in.Name) != "" {
		score += 2
	} else {
		*advisories = append(*advisories, "Request contact name")
	}

	return score
}

// scoreProject rewards known scope: acreage with a size bonus, a selected
// package, an estimated value bonus, and free-text notes.
func scoreProject(in Input, advisories *[]string) int {
	score := 0

	if in.Acreage != nil {
		score += 10
		score += tierPoints(*in.Acreage, acreageTiers)
	} else {
		*advisories = append(*advisories, "Ask for property acreage")
	}

	if strings.TrimSpace(in.PackageID) != "" {
		score += 8
	} else {
		*advisories = append(*advisories, "Help select a service package")
	}

	if in.EstimatedValue != nil {
		score += tierPoints(float64(*in.EstimatedValue), valueTiers)
	}

	if strings.TrimSpace(in.Notes) != "" {
		score += 2
	}

	return score
}

// scoreEngagement combines source channel quality with optional site
// telemetry. Absent telemetry contributes zero.
func scoreEngagement(in Input) int {
	score := scoreSource(in.Source)

	if in.TimeOnSiteSec != nil {
		score += tierPoints(float64(*in.TimeOnSiteSec), timeOnSiteTiers)
	}
	if in.PagesViewed != nil {
		score += tierPoints(float64(*in.PagesViewed), pagesViewedTiers)
	}

	return score
}

func scoreSource(source string) int {
	normalized := strings.ToLower(strings.TrimSpace(source))
	for _, entry := range sourceScoreTable {
		if containsAny(normalized, entry.keywords) {
			return entry.points
		}
	}
	return defaultSourcePoints
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// scoreTiming is an urgency-decaying step function of hours since
// submission, plus a flat seasonal bonus in spring and fall.
func scoreTiming(submittedAt, now time.Time) (int, string) {
	hours := now.Sub(submittedAt).Hours()

	points := 0
	advisory := coldLeadAdvisory
	for _, t := range timingTiers {
		if hours <= t.maxHours {
			points = t.points
			advisory = t.advisory
			break
		}
	}

	if isPeakSeason(now.Month()) {
		points += seasonalBonus
	}

	return points, advisory
}

// isPeakSeason reports whether the month falls in spring or fall.
func isPeakSeason(month time.Month) bool {
	switch month {
	case time.March, time.April, time.May, time.September, time.October, time.November:
		return true
	default:
		return false
	}
}

// gradeFor maps a total to its letter grade. Boundaries are closed: a
// score of exactly 85 is an A.
func gradeFor(total int) Grade {
	switch {
	case total >= 85:
		return GradeA
	case total >= 70:
		return GradeB
	case total >= 55:
		return GradeC
	case total >= 40:
		return GradeD
	default:
		return GradeF
	}
}

func clampScore(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
