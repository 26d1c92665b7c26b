// Package coverage provides the command that prints per-year coverage.
package coverage

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/inetmap/cmd/application"
	"github.com/agentstation/inetmap/internal/cmd/cmdutil"
	"github.com/agentstation/inetmap/internal/cmd/output"
)

// NewCommand creates the coverage command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "coverage",
		GroupID: "core",
		Short:   "Show how many countries report data in each year",
		Long: `Coverage reconciles the datasets and lists every year present in the
join with the number of countries reporting a row for it. The selected
year is marked together with the rule that picked it.`,
		Example: `  inetmap coverage
  inetmap coverage --threshold 2010 -o json`,
		Args: cobra.NoArgs,
	}
	dataset := cmdutil.AddDatasetFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		result, err := app.Preparer().Prepare(cmd.Context(), dataset.Apply(app.Request()))
		if err != nil {
			return err
		}

		app.Logger().Debug().Str("summary", result.Summary()).Msg("Coverage computed")

		format := output.DetectFormat(app.OutputFormat())
		formatter := output.NewFormatter(format)

		if err := formatter.Format(cmd.OutOrStdout(), output.NewCoverageReport(result)); err != nil {
			return err
		}
		if format == output.FormatTable {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
		}
		return nil
	}

	return cmd
}
