// Package cmdutil provides shared flags for inetmap commands.
package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/inetmap/pkg/prepare"
)

// DatasetFlags holds the input selection flags shared by data commands.
type DatasetFlags struct {
	UsagePath    string
	BoundaryPath string
	Threshold    int
	ValueColumn  string
}

// AddDatasetFlags adds the dataset flags to cmd.
func AddDatasetFlags(cmd *cobra.Command) *DatasetFlags {
	flags := &DatasetFlags{}

	cmd.Flags().StringVar(&flags.UsagePath, "usage", "",
		"Path to the internet usage CSV")
	cmd.Flags().StringVar(&flags.BoundaryPath, "boundaries", "",
		"Path to the country boundaries GeoJSON")
	cmd.Flags().IntVar(&flags.Threshold, "threshold", 0,
		"Earliest year eligible for display (0 keeps the configured default)")
	cmd.Flags().StringVar(&flags.ValueColumn, "value-column", "",
		"Header of the usage percentage column")

	return flags
}

// Apply overlays the flags that were set onto base.
func (f *DatasetFlags) Apply(base prepare.Request) prepare.Request {
	if f.UsagePath != "" {
		base.UsagePath = f.UsagePath
	}
	if f.BoundaryPath != "" {
		base.BoundaryPath = f.BoundaryPath
	}
	if f.Threshold != 0 {
		base.Threshold = f.Threshold
	}
	if f.ValueColumn != "" {
		base.ValueColumn = f.ValueColumn
	}
	return base
}
