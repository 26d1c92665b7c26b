package reconciler

// Tier names the rule that picked the display year.
type Tier string

const (
	// TierFullCoverage is the most recent year at or after the threshold
	// in which every joined country has an observation.
	TierFullCoverage Tier = "full_coverage"

	// TierBestCoverage is the year at or after the threshold with the most
	// countries; ties go to the most recent year.
	TierBestCoverage Tier = "best_coverage"

	// TierLatestFallback is the most recent year overall, used when no year
	// reaches the threshold.
	TierLatestFallback Tier = "latest_fallback"
)

// String returns the string representation of a tier.
func (t Tier) String() string {
	return string(t)
}

// Description returns a human-readable description of the tier.
func (t Tier) Description() string {
	switch t {
	case TierFullCoverage:
		return "most recent year with data for every country"
	case TierBestCoverage:
		return "year with the most countries reporting"
	case TierLatestFallback:
		return "most recent year available (none reached the threshold)"
	default:
		return "unknown"
	}
}

// SelectYear applies the selection tiers in order to per-year coverage.
// total is the number of distinct countries across all years. coverage must
// be non-empty; the zero year is returned otherwise.
func SelectYear(coverage []YearCoverage, total, threshold int) (int, Tier) {
	var (
		fullYear  int
		hasFull   bool
		bestYear  int
		bestCount = -1
		latest    int
	)

	for i, c := range coverage {
		if i == 0 || c.Year > latest {
			latest = c.Year
		}
		if c.Year < threshold {
			continue
		}
		if c.Countries == total && (!hasFull || c.Year > fullYear) {
			fullYear, hasFull = c.Year, true
		}
		if c.Countries > bestCount || (c.Countries == bestCount && c.Year > bestYear) {
			bestYear, bestCount = c.Year, c.Countries
		}
	}

	switch {
	case hasFull:
		return fullYear, TierFullCoverage
	case bestCount >= 0:
		return bestYear, TierBestCoverage
	default:
		return latest, TierLatestFallback
	}
}
