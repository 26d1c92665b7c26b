// Package render provides the command that draws the internet usage map.
package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/inetmap/cmd/application"
	"github.com/agentstation/inetmap/internal/cmd/cmdutil"
	"github.com/agentstation/inetmap/pkg/constants"
	"github.com/agentstation/inetmap/pkg/errors"
	"github.com/agentstation/inetmap/pkg/render"
)

// NewCommand creates the render command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		out    string
		format string
		width  int
		height int
	)

	cmd := &cobra.Command{
		Use:     "render",
		GroupID: "core",
		Short:   "Render the choropleth map as SVG or PNG",
		Long: `Render reconciles the usage and boundary datasets, selects the display
year and writes the choropleth map. The encoding follows the --out
extension (.svg or .png) unless --image-format is given. Use "-" to
write to stdout.`,
		Example: `  # Render with defaults from configuration
  inetmap render --out map.svg

  # PNG with a custom canvas and threshold
  inetmap render --threshold 2018 --width 1600 --height 900 --out map.png`,
		Args: cobra.NoArgs,
	}
	dataset := cmdutil.AddDatasetFlags(cmd)

	cmd.Flags().StringVar(&out, "out", "map.svg", `Output file ("-" for stdout)`)
	cmd.Flags().StringVar(&format, "image-format", "", "Image encoding: svg or png (default from --out extension)")
	cmd.Flags().IntVar(&width, "width", 0, "Canvas width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "Canvas height in pixels")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		encoding, err := resolveEncoding(out, format)
		if err != nil {
			return err
		}

		result, err := app.Preparer().Prepare(cmd.Context(), dataset.Apply(app.Request()))
		if err != nil {
			return fmt.Errorf("unable to render map: %w", err)
		}

		w, h := app.MapSize()
		if width > 0 {
			w = width
		}
		if height > 0 {
			h = height
		}

		choropleth := render.NewChoropleth(result,
			render.WithSize(w, h),
			render.WithTitle(fmt.Sprintf(constants.MapTitleFormat, result.Year)),
			render.WithCaption(fmt.Sprintf(constants.MapCaptionFormat, result.Year)),
		)

		if err := write(cmd, out, encoding, choropleth); err != nil {
			return fmt.Errorf("unable to render map: %w", err)
		}

		app.Logger().Info().
			Int("year", result.Year).
			Str("tier", result.Tier.String()).
			Int("regions", len(choropleth.Regions)).
			Str("out", out).
			Msg("Map rendered")
		return nil
	}

	return cmd
}

// resolveEncoding picks svg or png from the explicit format or the file extension.
func resolveEncoding(out, format string) (string, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(out)) {
		case ".png":
			format = "png"
		default:
			format = "svg"
		}
	}

	format = strings.ToLower(format)
	if format != "svg" && format != "png" {
		return "", errors.NewValidationError("image-format", format, "must be svg or png")
	}
	return format, nil
}

func write(cmd *cobra.Command, out, encoding string, c *render.Choropleth) error {
	if out == "-" {
		return encode(cmd.OutOrStdout(), encoding, c)
	}

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("create", dir, err)
		}
	}

	f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", out, err)
	}
	defer func() { _ = f.Close() }()

	buf := bufio.NewWriter(f)
	if err := encode(buf, encoding, c); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return errors.WrapIO("write", out, err)
	}
	return errors.WrapIO("close", out, f.Close())
}

func encode(w io.Writer, encoding string, c *render.Choropleth) error {
	if encoding == "png" {
		return render.WritePNG(w, c)
	}
	return render.WriteSVG(w, c)
}
