package portal

import (
	"math"
	"time"

	"github.com/asaidimu/go-portal/core/query"
)

// ResolveTier returns the highest tier whose point and seniority thresholds
// are both met. Tiers are ranked by MinPoints, then MinSeniorityMonths.
func ResolveTier(tiers []TierConfig, points, seniorityMonths int) (TierConfig, bool) {
	var best TierConfig
	found := false
	for _, t := range tiers {
		if points < t.MinPoints || seniorityMonths < t.MinSeniorityMonths {
			continue
		}
		if !found || outranks(t, best) {
			best, found = t, true
		}
	}
	return best, found
}

func outranks(a, b TierConfig) bool {
	if a.MinPoints != b.MinPoints {
		return a.MinPoints > b.MinPoints
	}
	return a.MinSeniorityMonths > b.MinSeniorityMonths
}

// SeniorityMonths returns the number of whole months between joinDate and now,
// counting years as query.DaysPerYear days. Unparsable or future dates give 0.
func SeniorityMonths(joinDate string, now time.Time) int {
	from, ok := query.ToTime(joinDate)
	if !ok {
		return 0
	}
	months := math.Floor(query.ElapsedYears(from, now) * 12)
	if months < 0 {
		return 0
	}
	return int(months)
}

// EmployeeTier resolves the tier an employee qualifies for at now.
func EmployeeTier(tiers []TierConfig, e Employee, now time.Time) (TierConfig, bool) {
	return ResolveTier(tiers, e.Points, SeniorityMonths(e.JoinDate, now))
}
