// Package report provides the command that writes the markdown map page.
package report

import (
	"fmt"
	"os"

	"github.com/agentstation/utc"
	"github.com/spf13/cobra"

	"github.com/agentstation/inetmap/cmd/application"
	"github.com/agentstation/inetmap/internal/cmd/cmdutil"
	"github.com/agentstation/inetmap/internal/report"
	"github.com/agentstation/inetmap/pkg/constants"
	"github.com/agentstation/inetmap/pkg/errors"
)

// NewCommand creates the report command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		out         string
		mapPath     string
		noTimestamp bool
	)

	cmd := &cobra.Command{
		Use:     "report",
		GroupID: "core",
		Short:   "Write the map page as markdown",
		Long: `Report writes a markdown page with the map title, description, an
image link to a rendered map, the caption, and the coverage table
explaining which year was selected.`,
		Example: `  inetmap render --out docs/map.svg
  inetmap report --map map.svg --out docs/README.md`,
		Args: cobra.NoArgs,
	}
	dataset := cmdutil.AddDatasetFlags(cmd)

	cmd.Flags().StringVar(&out, "out", "-", `Output file ("-" for stdout)`)
	cmd.Flags().StringVar(&mapPath, "map", "map.svg", "Image path referenced by the page (empty to omit)")
	cmd.Flags().BoolVar(&noTimestamp, "no-timestamp", false, "Omit the generated-at footer")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		result, err := app.Preparer().Prepare(cmd.Context(), dataset.Apply(app.Request()))
		if err != nil {
			return fmt.Errorf("unable to build report: %w", err)
		}

		opts := report.Options{MapPath: mapPath}
		if !noTimestamp {
			opts.GeneratedAt = utc.Now()
		}

		if out == "-" {
			return report.Write(cmd.OutOrStdout(), result, opts)
		}

		f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions)
		if err != nil {
			return errors.WrapIO("create", out, err)
		}
		defer func() { _ = f.Close() }()

		if err := report.Write(f, result, opts); err != nil {
			return err
		}

		app.Logger().Info().Str("out", out).Int("year", result.Year).Msg("Report written")
		return errors.WrapIO("close", out, f.Close())
	}

	return cmd
}
