// Package report writes the markdown version of the map page: title,
// description, map image, caption and the per-year coverage table.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/agentstation/utc"
	md "github.com/nao1215/markdown"

	"github.com/agentstation/inetmap/pkg/constants"
	"github.com/agentstation/inetmap/pkg/reconciler"
)

// Options configures a report.
type Options struct {
	// MapPath is the image reference embedded in the report.
	MapPath string
	// GeneratedAt stamps the report footer. Zero omits the footer.
	GeneratedAt utc.Time
}

// Write renders result as markdown to w.
func Write(w io.Writer, result *reconciler.Result, opts Options) error {
	title := fmt.Sprintf(constants.MapTitleFormat, result.Year)
	caption := fmt.Sprintf(constants.MapCaptionFormat, result.Year)

	doc := md.NewMarkdown(w).
		H1(title).
		PlainText(constants.MapDescription).
		LF()

	if opts.MapPath != "" {
		doc.PlainText(md.Image(title, opts.MapPath)).LF()
	}
	doc.PlainText(md.Italic(caption)).LF()

	countries, _ := result.CoverageFor(result.Year)
	doc.H2("Year selection").
		BulletList(
			fmt.Sprintf("Selected year: %s", md.Bold(strconv.Itoa(result.Year))),
			fmt.Sprintf("Rule: %s", result.Tier.Description()),
			fmt.Sprintf("Countries reporting: %d of %d", countries, result.TotalCountries),
			fmt.Sprintf("Threshold: %d", result.Threshold),
		)

	doc.H2("Coverage by year").Table(coverageTable(result))

	if !opts.GeneratedAt.IsZero() {
		doc.PlainText(md.Italic("Generated " + opts.GeneratedAt.Format("2006-01-02 15:04 MST"))).LF()
	}
	return doc.Build()
}

func coverageTable(result *reconciler.Result) md.TableSet {
	table := md.TableSet{
		Header: []string{"Year", "Countries", "Coverage", "Selected"},
	}
	for _, c := range result.Coverage {
		coverage := "-"
		if result.TotalCountries > 0 {
			coverage = strconv.FormatFloat(100*float64(c.Countries)/float64(result.TotalCountries), 'f', 1, 64) + "%"
		}
		selected := ""
		if c.Year == result.Year {
			selected = "yes"
		}
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(c.Year),
			strconv.Itoa(c.Countries),
			coverage,
			selected,
		})
	}
	return table
}
