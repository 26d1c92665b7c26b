package render

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// errWriter records the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// WriteSVG encodes the map as SVG. Each region carries a <title> element
// shown as hover text by browsers.
func WriteSVG(w io.Writer, c *Choropleth) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(c.Width, c.Height)
	canvas.Title(c.Title)
	canvas.Rect(0, 0, c.Width, c.Height, `fill="#ffffff"`)
	canvas.Text(c.Width/2, 28, c.Title,
		`text-anchor="middle"`, `font-family="sans-serif"`, `font-size="20"`, `fill="#222222"`)

	proj := c.projection()
	canvas.Group(`id="regions"`, fmt.Sprintf(`stroke="%s"`, Hex(StrokeColor)), `stroke-width="0.5"`)
	for _, region := range c.Regions {
		d := svgPath(proj, region)
		if d == "" {
			continue
		}
		canvas.Group(fmt.Sprintf(`data-iso="%s"`, region.ISOA3))
		canvas.Title(region.Label())
		canvas.Path(d, fmt.Sprintf(`fill="%s"`, Hex(region.Fill)), `fill-rule="evenodd"`)
		canvas.Gend()
	}
	canvas.Gend()

	writeSVGLegend(canvas, c)
	canvas.Text(c.Width/2, c.Height-12, c.Caption,
		`text-anchor="middle"`, `font-family="sans-serif"`, `font-size="13"`, `fill="#555555"`)
	canvas.End()
	return ew.err
}

func writeSVGLegend(canvas *svg.SVG, c *Choropleth) {
	const (
		barW  = 240
		barH  = 10
		steps = 24
	)
	x := (c.Width - barW) / 2
	y := c.Height - 58
	for i := 0; i < steps; i++ {
		col := Interpolate(float64(i) / float64(steps-1))
		canvas.Rect(x+i*barW/steps, y, barW/steps+1, barH, fmt.Sprintf(`fill="%s"`, Hex(col)))
	}
	low, high := c.legendStops()
	style := []string{`font-family="sans-serif"`, `font-size="11"`, `fill="#333333"`}
	canvas.Text(x, y+barH+14, low, append([]string{`text-anchor="start"`}, style...)...)
	canvas.Text(x+barW, y+barH+14, high, append([]string{`text-anchor="end"`}, style...)...)
	canvas.Rect(x+barW+24, y, barH, barH, fmt.Sprintf(`fill="%s"`, Hex(NoDataColor)))
	canvas.Text(x+barW+24+barH+6, y+barH, "No data", append([]string{`text-anchor="start"`}, style...)...)
}

// svgPath returns the path data of region, one subpath per ring.
func svgPath(proj Projection, region Region) string {
	var b strings.Builder
	for _, poly := range polygons(region.Geometry) {
		for _, ring := range poly {
			if len(ring) < 3 {
				continue
			}
			for i, pt := range ring {
				x, y := proj.Project(pt)
				if i == 0 {
					fmt.Fprintf(&b, "M%.2f %.2f", x, y)
				} else {
					fmt.Fprintf(&b, "L%.2f %.2f", x, y)
				}
			}
			b.WriteString("Z")
		}
	}
	return b.String()
}
