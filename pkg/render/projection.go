package render

import (
	"math"

	"github.com/paulmach/orb"
)

// Projection maps planar x/y coordinates into a canvas, preserving aspect
// ratio and flipping y so north is up.
type Projection struct {
	bound   orb.Bound
	scale   float64
	offsetX float64
	offsetY float64
}

// NewProjection fits bound into the width x height area inside padding.
func NewProjection(bound orb.Bound, width, height, padding float64) Projection {
	innerW := math.Max(width-2*padding, 1)
	innerH := math.Max(height-2*padding, 1)

	if bound.IsEmpty() {
		bound = orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}
	}
	spanX := bound.Max[0] - bound.Min[0]
	spanY := bound.Max[1] - bound.Min[1]

	scale := 1.0
	switch {
	case spanX > 0 && spanY > 0:
		scale = math.Min(innerW/spanX, innerH/spanY)
	case spanX > 0:
		scale = innerW / spanX
	case spanY > 0:
		scale = innerH / spanY
	}

	return Projection{
		bound:   bound,
		scale:   scale,
		offsetX: padding + (innerW-spanX*scale)/2,
		offsetY: padding + (innerH-spanY*scale)/2,
	}
}

// Project returns the canvas position of p.
func (p Projection) Project(pt orb.Point) (float64, float64) {
	x := p.offsetX + (pt[0]-p.bound.Min[0])*p.scale
	y := p.offsetY + (p.bound.Max[1]-pt[1])*p.scale
	return x, y
}

// polygons flattens the areal parts of g. Points and lines are skipped.
func polygons(g orb.Geometry) []orb.Polygon {
	switch geom := g.(type) {
	case orb.Polygon:
		return []orb.Polygon{geom}
	case orb.MultiPolygon:
		return geom
	case orb.Ring:
		return []orb.Polygon{{geom}}
	case orb.Bound:
		return []orb.Polygon{geom.ToPolygon()}
	case orb.Collection:
		var out []orb.Polygon
		for _, child := range geom {
			out = append(out, polygons(child)...)
		}
		return out
	default:
		return nil
	}
}
