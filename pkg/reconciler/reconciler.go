// Package reconciler joins the usage dataset to the boundary dataset and
// selects the single year the map displays. It handles aggregate exclusion,
// identifier normalization, join cardinality validation, per-year coverage
// counting and threshold-based year selection with fallback tiers.
package reconciler

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/inetmap/pkg/boundary"
	"github.com/agentstation/inetmap/pkg/constants"
	"github.com/agentstation/inetmap/pkg/errors"
	"github.com/agentstation/inetmap/pkg/logging"
	"github.com/agentstation/inetmap/pkg/usage"
)

// Reconciler is the main interface for reconciling the two datasets.
type Reconciler interface {
	// Reconcile cleans and joins the datasets and returns the records of
	// the selected year together with the full boundary collection.
	Reconcile(ctx context.Context, rows []usage.Record, boundaries boundary.Collection) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	threshold int
	logger    *zerolog.Logger
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{
		threshold: options.threshold,
		logger:    options.logger,
	}, nil
}

// Reconcile is a convenience wrapper creating a Reconciler and running it once.
func Reconcile(ctx context.Context, rows []usage.Record, boundaries boundary.Collection, opts ...Option) (*Result, error) {
	r, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return r.Reconcile(ctx, rows, boundaries)
}

// Reconcile performs reconciliation with a clean step-by-step flow.
func (r *reconciler) Reconcile(ctx context.Context, rows []usage.Record, boundaries boundary.Collection) (*Result, error) {
	logger := r.logger
	if logger == nil {
		logger = logging.FromContext(logging.WithThreshold(ctx, r.threshold))
	}

	result := &Result{
		Threshold:  r.threshold,
		Boundaries: boundaries,
	}
	result.Stats.UsageRows = len(rows)
	result.Stats.BoundaryRows = len(boundaries)

	// Step 1: drop aggregates and rows without an identifier
	cleaned := cleanUsage(rows)
	result.Stats.ExcludedRows = len(rows) - len(cleaned)
	if len(cleaned) == 0 {
		return nil, errors.NewEmptyDatasetError("usage", "no country rows remain after removing aggregates and missing codes")
	}
	logger.Debug().
		Int("rows", len(rows)).
		Int("excluded", result.Stats.ExcludedRows).
		Msg("Cleaned usage rows")

	identified := identifiedBoundaries(boundaries)
	if len(identified) == 0 {
		return nil, errors.NewEmptyDatasetError("boundary", "no territory carries an "+constants.BoundaryISOProperty+" identifier")
	}

	// Step 2: keep boundaries whose identifier appears in the usage data
	codes := codeSet(cleaned)
	candidates := candidateBoundaries(identified, codes)
	result.Stats.CandidateBoundaries = len(candidates)

	// Step 3: join, validating one boundary per identifier
	index, err := indexBoundaries(candidates)
	if err != nil {
		return nil, err
	}
	joined := join(cleaned, index)
	result.Stats.JoinedRows = len(joined)
	if len(joined) == 0 {
		return nil, errors.NewNoJoinableDataError(len(codes), len(identified))
	}

	// Step 4: coverage per year
	result.Coverage, result.TotalCountries = computeCoverage(joined)

	// Step 5: select the display year
	result.Year, result.Tier = SelectYear(result.Coverage, result.TotalCountries, r.threshold)
	logger.Info().
		Int("year", result.Year).
		Str("tier", string(result.Tier)).
		Int("countries", result.TotalCountries).
		Msg("Selected display year")

	// Step 6: keep the selected year only
	result.Records = FilterYear(joined, result.Year)
	return result, nil
}

// normalizeCode upper-cases and trims an identifier.
func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// cleanUsage removes aggregate and unidentified rows and normalizes codes.
func cleanUsage(rows []usage.Record) []usage.Record {
	cleaned := make([]usage.Record, 0, len(rows))
	for _, row := range rows {
		code := normalizeCode(row.Code)
		if code == "" || IsAggregate(code) {
			continue
		}
		row.Code = code
		cleaned = append(cleaned, row)
	}
	return cleaned
}

// identifiedBoundaries returns boundaries carrying a non-empty identifier.
func identifiedBoundaries(boundaries boundary.Collection) boundary.Collection {
	out := make(boundary.Collection, 0, len(boundaries))
	for _, b := range boundaries {
		if normalizeCode(b.ISOA3) == "" {
			continue
		}
		out = append(out, b)
	}
	return out
}

// codeSet returns the distinct identifiers of cleaned usage rows.
func codeSet(rows []usage.Record) map[string]struct{} {
	set := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		set[row.Code] = struct{}{}
	}
	return set
}

// candidateBoundaries keeps boundaries whose identifier is in codes.
func candidateBoundaries(boundaries boundary.Collection, codes map[string]struct{}) boundary.Collection {
	var out boundary.Collection
	for _, b := range boundaries {
		if _, ok := codes[normalizeCode(b.ISOA3)]; ok {
			out = append(out, b)
		}
	}
	return out
}

// indexBoundaries maps identifiers to candidates and rejects duplicates.
func indexBoundaries(candidates boundary.Collection) (map[string]boundary.Record, error) {
	index := make(map[string]boundary.Record, len(candidates))
	var duplicates []string
	seen := make(map[string]bool)
	for _, b := range candidates {
		code := normalizeCode(b.ISOA3)
		if _, exists := index[code]; exists {
			if !seen[code] {
				duplicates = append(duplicates, code)
				seen[code] = true
			}
			continue
		}
		index[code] = b
	}
	if len(duplicates) > 0 {
		sort.Strings(duplicates)
		return nil, errors.NewDuplicateIdentifierError("boundary", constants.BoundaryISOProperty, duplicates)
	}
	return index, nil
}

// join inner-joins usage rows to boundaries, preserving usage row order.
func join(rows []usage.Record, index map[string]boundary.Record) []Record {
	var joined []Record
	for _, row := range rows {
		b, ok := index[row.Code]
		if !ok {
			continue
		}
		joined = append(joined, Record{
			ISOA3:        row.Code,
			AdminName:    b.AdminName,
			Year:         row.Year,
			UsagePercent: row.UsagePercent,
			Geometry:     b.Geometry,
		})
	}
	return joined
}

// computeCoverage counts distinct countries per year, ascending by year,
// and the distinct country total across all years.
func computeCoverage(records []Record) ([]YearCoverage, int) {
	perYear := make(map[int]map[string]struct{})
	all := make(map[string]struct{})
	for _, rec := range records {
		countries, ok := perYear[rec.Year]
		if !ok {
			countries = make(map[string]struct{})
			perYear[rec.Year] = countries
		}
		countries[rec.ISOA3] = struct{}{}
		all[rec.ISOA3] = struct{}{}
	}

	coverage := make([]YearCoverage, 0, len(perYear))
	for year, countries := range perYear {
		coverage = append(coverage, YearCoverage{Year: year, Countries: len(countries)})
	}
	sort.Slice(coverage, func(i, j int) bool {
		return coverage[i].Year < coverage[j].Year
	})
	return coverage, len(all)
}

// FilterYear returns the records observed in year, ordered by identifier.
// Applying it to its own output returns the same set.
func FilterYear(records []Record, year int) []Record {
	var out []Record
	for _, rec := range records {
		if rec.Year == year {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ISOA3 < out[j].ISOA3
	})
	return out
}
