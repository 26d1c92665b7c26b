package reconciler_test

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/agentstation/inetmap/pkg/boundary"
	"github.com/agentstation/inetmap/pkg/usage"
)

func pct(v float64) *float64 {
	return &v
}

func row(code string, year int, value float64) usage.Record {
	return usage.Record{Code: code, Entity: code, Year: year, UsagePercent: pct(value)}
}

func square(x, y float64) orb.Polygon {
	return orb.Polygon{orb.Ring{{x, y}, {x + 1, y}, {x + 1, y + 1}, {x, y + 1}, {x, y}}}
}

func territory(code, name string) boundary.Record {
	return boundary.Record{ISOA3: code, AdminName: name, Geometry: square(0, 0)}
}

// countryCodes returns n synthetic identifiers C00, C01, ...
func countryCodes(n int) []string {
	codes := make([]string, n)
	for i := range codes {
		codes[i] = fmt.Sprintf("C%02d", i)
	}
	return codes
}

// synthetic builds boundaries for codes and usage rows for every year in
// years, where reporting[year] is the number of leading codes observed.
func synthetic(codes []string, reporting map[int]int) ([]usage.Record, boundary.Collection) {
	var rows []usage.Record
	for year, n := range reporting {
		for i := 0; i < n && i < len(codes); i++ {
			rows = append(rows, row(codes[i], year, float64(i)))
		}
	}
	boundaries := make(boundary.Collection, 0, len(codes))
	for _, code := range codes {
		boundaries = append(boundaries, territory(code, "Country "+code))
	}
	return rows, boundaries
}
