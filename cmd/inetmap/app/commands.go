package app

import (
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/agentstation/inetmap/cmd/inetmap/cmd/coverage"
	"github.com/agentstation/inetmap/cmd/inetmap/cmd/render"
	"github.com/agentstation/inetmap/cmd/inetmap/cmd/report"
	"github.com/agentstation/inetmap/cmd/inetmap/cmd/serve"
)

// NewRenderCommand creates the render command with app dependencies.
func (a *App) NewRenderCommand() *cobra.Command {
	return render.NewCommand(a)
}

// NewCoverageCommand creates the coverage command with app dependencies.
func (a *App) NewCoverageCommand() *cobra.Command {
	return coverage.NewCommand(a)
}

// NewReportCommand creates the report command with app dependencies.
func (a *App) NewReportCommand() *cobra.Command {
	return report.NewCommand(a)
}

// NewServeCommand creates the serve command with app dependencies.
func (a *App) NewServeCommand() *cobra.Command {
	return serve.NewCommand(a)
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("inetmap %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}

// NewManCommand creates the hidden man page generator.
func (a *App) NewManCommand() *cobra.Command {
	return &cobra.Command{
		Use:    "man",
		Short:  "Generate man page",
		Long:   `Generate man page for the inetmap CLI tool.`,
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "INETMAP",
				Section: "1",
				Source:  "inetmap " + a.version,
				Manual:  "inetmap Manual",
			}
			return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
		},
	}
}
