package output

import (
	"strconv"

	"github.com/agentstation/inetmap/pkg/reconciler"
)

// CoverageRow is one year of the coverage listing.
type CoverageRow struct {
	Year      int    `json:"year" yaml:"year"`
	Countries int    `json:"countries" yaml:"countries"`
	Total     int    `json:"total" yaml:"total"`
	Eligible  bool   `json:"eligible" yaml:"eligible"`
	Selected  bool   `json:"selected" yaml:"selected"`
	Tier      string `json:"tier,omitempty" yaml:"tier,omitempty"`
}

// CoverageReport is the machine-readable coverage view of a result.
type CoverageReport struct {
	Year           int           `json:"year" yaml:"year"`
	Tier           string        `json:"tier" yaml:"tier"`
	Threshold      int           `json:"threshold" yaml:"threshold"`
	TotalCountries int           `json:"total_countries" yaml:"total_countries"`
	Years          []CoverageRow `json:"years" yaml:"years"`
}

// NewCoverageReport builds the coverage view of result.
func NewCoverageReport(result *reconciler.Result) CoverageReport {
	report := CoverageReport{
		Year:           result.Year,
		Tier:           string(result.Tier),
		Threshold:      result.Threshold,
		TotalCountries: result.TotalCountries,
		Years:          make([]CoverageRow, 0, len(result.Coverage)),
	}
	for _, c := range result.Coverage {
		row := CoverageRow{
			Year:      c.Year,
			Countries: c.Countries,
			Total:     result.TotalCountries,
			Eligible:  c.Year >= result.Threshold,
			Selected:  c.Year == result.Year,
		}
		if row.Selected {
			row.Tier = string(result.Tier)
		}
		report.Years = append(report.Years, row)
	}
	return report
}

// TableData implements Tabular.
func (r CoverageReport) TableData() Data {
	data := Data{
		Headers:         []string{"Year", "Countries", "Coverage", "Eligible", "Selected"},
		ColumnAlignment: []Align{AlignRight, AlignRight, AlignRight, AlignLeft, AlignLeft},
	}
	for _, y := range r.Years {
		coverage := "-"
		if y.Total > 0 {
			coverage = strconv.FormatFloat(100*float64(y.Countries)/float64(y.Total), 'f', 1, 64) + "%"
		}
		eligible := ""
		if y.Eligible {
			eligible = "yes"
		}
		selected := ""
		if y.Selected {
			selected = "* " + y.Tier
		}
		data.Rows = append(data.Rows, []string{
			strconv.Itoa(y.Year),
			strconv.Itoa(y.Countries) + "/" + strconv.Itoa(y.Total),
			coverage,
			eligible,
			selected,
		})
	}
	return data
}
