// Package render turns a reconciled result into a choropleth map. Regions
// are built for the full boundary set; territories without a value for the
// selected year are filled with a neutral no-data color.
package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/paulmach/orb"

	"github.com/agentstation/inetmap/pkg/constants"
	"github.com/agentstation/inetmap/pkg/reconciler"
)

// Region is one drawable territory.
type Region struct {
	ISOA3 string
	Name  string
	// Value is nil for territories without data.
	Value    *float64
	Fill     color.RGBA
	Geometry orb.Geometry
}

// HasData reports whether the region carries a usage value.
func (r Region) HasData() bool {
	return r.Value != nil
}

// Label returns the hover text of the region.
func (r Region) Label() string {
	name := r.Name
	if name == "" {
		name = r.ISOA3
	}
	if r.Value == nil {
		return name + ": no data"
	}
	return fmt.Sprintf("%s: %.1f%%", name, *r.Value)
}

// Choropleth is a renderable map.
type Choropleth struct {
	Title   string
	Caption string
	Year    int
	Width   int
	Height  int
	Padding float64
	Scale   Scale
	Regions []Region
	Bound   orb.Bound
}

type options struct {
	width   int
	height  int
	padding float64
	title   string
	caption string
}

// Option configures a Choropleth.
type Option func(*options)

// WithSize sets the canvas size in pixels. Non-positive values are ignored.
func WithSize(width, height int) Option {
	return func(o *options) {
		if width > 0 {
			o.width = width
		}
		if height > 0 {
			o.height = height
		}
	}
}

// WithTitle overrides the map title.
func WithTitle(title string) Option {
	return func(o *options) {
		o.title = title
	}
}

// WithCaption overrides the map caption.
func WithCaption(caption string) Option {
	return func(o *options) {
		o.caption = caption
	}
}

// NewChoropleth builds one region per boundary in result.
func NewChoropleth(result *reconciler.Result, opts ...Option) *Choropleth {
	o := &options{
		width:   constants.DefaultMapWidth,
		height:  constants.DefaultMapHeight,
		padding: 16,
		title:   fmt.Sprintf(constants.MapTitleFormat, result.Year),
		caption: fmt.Sprintf(constants.MapCaptionFormat, result.Year),
	}
	for _, opt := range opts {
		opt(o)
	}

	var values []float64
	for _, rec := range result.Records {
		if rec.UsagePercent != nil && isFinite(*rec.UsagePercent) {
			values = append(values, *rec.UsagePercent)
		}
	}
	scale := NewScale(values)
	byISO := result.ByISO()

	regions := make([]Region, 0, len(result.Boundaries))
	for _, b := range result.Boundaries {
		region := Region{
			ISOA3:    strings.ToUpper(strings.TrimSpace(b.ISOA3)),
			Name:     b.AdminName,
			Fill:     NoDataColor,
			Geometry: b.Geometry,
		}
		if rec, ok := byISO[region.ISOA3]; ok && region.ISOA3 != "" && rec.UsagePercent != nil && isFinite(*rec.UsagePercent) {
			v := *rec.UsagePercent
			region.Value = &v
			region.Fill = scale.Color(v)
		}
		regions = append(regions, region)
	}

	return &Choropleth{
		Title:   o.title,
		Caption: o.caption,
		Year:    result.Year,
		Width:   o.width,
		Height:  o.height,
		Padding: o.padding,
		Scale:   scale,
		Regions: regions,
		Bound:   result.Boundaries.Bound(),
	}
}

// mapArea returns the canvas area reserved for territories, leaving room for
// the title above and the legend and caption below.
func (c *Choropleth) mapArea() (top, height float64) {
	top = 40
	height = float64(c.Height) - top - 70
	if height < 1 {
		height = 1
	}
	return top, height
}

// projection returns the projection of the map area.
func (c *Choropleth) projection() Projection {
	top, height := c.mapArea()
	p := NewProjection(c.Bound, float64(c.Width), height, c.Padding)
	p.offsetY += top
	return p
}

// legendStops returns the value labels shown under the legend bar.
func (c *Choropleth) legendStops() (low, high string) {
	return fmt.Sprintf("%.0f%%", c.Scale.Min), fmt.Sprintf("%.0f%%", c.Scale.Max)
}
