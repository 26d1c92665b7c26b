package render

import (
	"io"

	"github.com/fogleman/gg"
)

// WritePNG rasterizes the map and encodes it as PNG. Polygon holes are
// filled with the even-odd rule.
func WritePNG(w io.Writer, c *Choropleth) error {
	dc := gg.NewContext(c.Width, c.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	proj := c.projection()
	dc.SetFillRule(gg.FillRuleEvenOdd)
	dc.SetLineWidth(0.5)
	for _, region := range c.Regions {
		if !tracePath(dc, proj, region) {
			continue
		}
		dc.SetColor(region.Fill)
		dc.FillPreserve()
		dc.SetColor(StrokeColor)
		dc.Stroke()
	}

	dc.SetRGB(0.13, 0.13, 0.13)
	dc.DrawStringAnchored(c.Title, float64(c.Width)/2, 24, 0.5, 0.5)
	drawPNGLegend(dc, c)
	dc.SetRGB(0.33, 0.33, 0.33)
	dc.DrawStringAnchored(c.Caption, float64(c.Width)/2, float64(c.Height)-14, 0.5, 0.5)

	return dc.EncodePNG(w)
}

// tracePath adds the rings of region to the current path. It reports false
// when the region has nothing to draw.
func tracePath(dc *gg.Context, proj Projection, region Region) bool {
	drawn := false
	for _, poly := range polygons(region.Geometry) {
		for _, ring := range poly {
			if len(ring) < 3 {
				continue
			}
			dc.NewSubPath()
			for i, pt := range ring {
				x, y := proj.Project(pt)
				if i == 0 {
					dc.MoveTo(x, y)
				} else {
					dc.LineTo(x, y)
				}
			}
			dc.ClosePath()
			drawn = true
		}
	}
	return drawn
}

func drawPNGLegend(dc *gg.Context, c *Choropleth) {
	const (
		barW  = 240.0
		barH  = 10.0
		steps = 48
	)
	x := (float64(c.Width) - barW) / 2
	y := float64(c.Height) - 58
	stepW := barW / steps
	for i := 0; i < steps; i++ {
		dc.SetColor(Interpolate(float64(i) / float64(steps-1)))
		dc.DrawRectangle(x+float64(i)*stepW, y, stepW+0.5, barH)
		dc.Fill()
	}

	low, high := c.legendStops()
	dc.SetRGB(0.2, 0.2, 0.2)
	dc.DrawStringAnchored(low, x, y+barH+12, 0, 0.5)
	dc.DrawStringAnchored(high, x+barW, y+barH+12, 1, 0.5)

	dc.SetColor(NoDataColor)
	dc.DrawRectangle(x+barW+24, y, barH, barH)
	dc.Fill()
	dc.SetRGB(0.2, 0.2, 0.2)
	dc.DrawStringAnchored("No data", x+barW+24+barH+6, y+barH/2, 0, 0.5)
}
