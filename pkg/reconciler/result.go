package reconciler

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/agentstation/inetmap/pkg/boundary"
)

// Record is one usage observation joined to its boundary.
type Record struct {
	ISOA3        string       `json:"iso_a3" yaml:"iso_a3"`
	AdminName    string       `json:"admin_name" yaml:"admin_name"`
	Year         int          `json:"year" yaml:"year"`
	UsagePercent *float64     `json:"usage_percent" yaml:"usage_percent"`
	Geometry     orb.Geometry `json:"-" yaml:"-"`
}

// HasValue reports whether the record carries a usage percentage.
func (r Record) HasValue() bool {
	return r.UsagePercent != nil
}

// YearCoverage is the number of distinct countries observed in a year.
type YearCoverage struct {
	Year      int `json:"year" yaml:"year"`
	Countries int `json:"countries" yaml:"countries"`
}

// Result represents the outcome of a reconciliation.
type Result struct {
	// Year is the selected display year and Tier the rule that chose it.
	Year      int  `json:"year" yaml:"year"`
	Tier      Tier `json:"tier" yaml:"tier"`
	Threshold int  `json:"threshold" yaml:"threshold"`

	// TotalCountries is the distinct country count across all joined years.
	TotalCountries int            `json:"total_countries" yaml:"total_countries"`
	Coverage       []YearCoverage `json:"coverage" yaml:"coverage"`

	// Records holds the joined rows of Year, ordered by identifier.
	Records []Record `json:"records" yaml:"records"`

	// Boundaries is the full, unfiltered boundary collection.
	Boundaries boundary.Collection `json:"-" yaml:"-"`

	Stats Statistics `json:"stats" yaml:"stats"`
}

// Statistics counts rows at each reconciliation step.
type Statistics struct {
	UsageRows           int `json:"usage_rows" yaml:"usage_rows"`
	ExcludedRows        int `json:"excluded_rows" yaml:"excluded_rows"`
	BoundaryRows        int `json:"boundary_rows" yaml:"boundary_rows"`
	CandidateBoundaries int `json:"candidate_boundaries" yaml:"candidate_boundaries"`
	JoinedRows          int `json:"joined_rows" yaml:"joined_rows"`
}

// ByISO indexes the selected records by identifier.
func (r *Result) ByISO() map[string]Record {
	out := make(map[string]Record, len(r.Records))
	for _, rec := range r.Records {
		out[rec.ISOA3] = rec
	}
	return out
}

// CoverageFor returns the country count of year.
func (r *Result) CoverageFor(year int) (int, bool) {
	for _, c := range r.Coverage {
		if c.Year == year {
			return c.Countries, true
		}
	}
	return 0, false
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	countries, _ := r.CoverageFor(r.Year)
	return fmt.Sprintf("Selected %d (%s): %d of %d countries, threshold %d",
		r.Year, r.Tier.Description(), countries, r.TotalCountries, r.Threshold)
}
