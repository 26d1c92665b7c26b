// Package serve provides the command that serves the map page over HTTP.
package serve

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/inetmap/cmd/application"
	"github.com/agentstation/inetmap/internal/server"
	"github.com/agentstation/inetmap/pkg/constants"
	"github.com/agentstation/inetmap/pkg/errors"
)

// NewCommand creates the serve command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		GroupID: "core",
		Short:   "Serve the map page and coverage API",
		Long: `Serve starts an HTTP server exposing:

  /                  HTML page with title, description, map and caption
  /map.svg           the map as SVG
  /map.png           the map as PNG
  /api/v1/coverage   per-year coverage as JSON
  /api/v1/records    records of the selected year as JSON
  /health            liveness probe
  /metrics           Prometheus metrics

Every request reconciles the configured datasets through the shared
cache, so edits to the input files are picked up on the next request.
A ?threshold=YEAR query overrides the configured threshold.`,
		Example: `  inetmap serve
  inetmap serve --host 0.0.0.0 --port 3000 --cors`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := parseConfig(cmd)
			if err != nil {
				return err
			}

			srv, err := server.New(app, cfg)
			if err != nil {
				return fmt.Errorf("creating server: %w", err)
			}

			app.Logger().Info().
				Str("host", cfg.Host).
				Int("port", cfg.Port).
				Str("prefix", cfg.PathPrefix).
				Bool("cors", cfg.CORSEnabled).
				Msg("Starting map server")

			return srv.ListenAndServe(cmd.Context(), constants.ShutdownTimeout)
		},
	}

	defaults := server.DefaultConfig()
	cmd.Flags().Int("port", defaults.Port, "Server port")
	cmd.Flags().String("host", defaults.Host, "Bind address")
	cmd.Flags().String("prefix", defaults.PathPrefix, "API path prefix")
	cmd.Flags().Bool("cors", false, "Enable CORS for all origins")
	cmd.Flags().StringSlice("cors-origins", []string{}, "Allowed CORS origins (comma-separated)")
	cmd.Flags().Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", defaults.WriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")

	return cmd
}

// parseConfig parses command flags into server configuration.
func parseConfig(cmd *cobra.Command) (server.Config, error) {
	flags := cmd.Flags()
	cfg := server.DefaultConfig()

	cfg.Port, _ = flags.GetInt("port")
	cfg.Host, _ = flags.GetString("host")
	cfg.PathPrefix, _ = flags.GetString("prefix")
	cfg.CORSEnabled, _ = flags.GetBool("cors")
	cfg.CORSOrigins, _ = flags.GetStringSlice("cors-origins")
	cfg.ReadTimeout, _ = flags.GetDuration("read-timeout")
	cfg.WriteTimeout, _ = flags.GetDuration("write-timeout")
	cfg.IdleTimeout, _ = flags.GetDuration("idle-timeout")

	// Specific origins imply CORS.
	if len(cfg.CORSOrigins) > 0 {
		cfg.CORSEnabled = true
	}

	if cfg.Port < 0 || cfg.Port > 65535 {
		return cfg, errors.NewValidationError("port", cfg.Port, "must be between 0 and 65535")
	}
	return cfg, nil
}
