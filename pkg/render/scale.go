package render

import (
	"fmt"
	"image/color"
	"math"
)

// Palette is the sequential YlGnBu ramp, light to dark. Luma decreases
// strictly from one stop to the next.
var Palette = []color.RGBA{
	{0xff, 0xff, 0xd9, 0xff},
	{0xed, 0xf8, 0xb1, 0xff},
	{0xc7, 0xe9, 0xb4, 0xff},
	{0x7f, 0xcd, 0xbb, 0xff},
	{0x41, 0xb6, 0xc4, 0xff},
	{0x1d, 0x91, 0xc0, 0xff},
	{0x22, 0x5e, 0xa8, 0xff},
	{0x25, 0x34, 0x94, 0xff},
	{0x08, 0x1d, 0x58, 0xff},
}

// NoDataColor fills territories without a value for the selected year.
var NoDataColor = color.RGBA{0xd9, 0xd9, 0xd9, 0xff}

// StrokeColor outlines every territory.
var StrokeColor = color.RGBA{0xff, 0xff, 0xff, 0xff}

// Scale maps usage percentages linearly onto Palette.
type Scale struct {
	Min float64
	Max float64
}

// NewScale returns the scale spanning values. NaN and infinite entries
// are ignored.
func NewScale(values []float64) Scale {
	s := Scale{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, v := range values {
		if !isFinite(v) {
			continue
		}
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	if math.IsInf(s.Min, 1) {
		return Scale{Min: 0, Max: 100}
	}
	return s
}

// Position returns where v falls on the scale, clamped to [0, 1].
// A degenerate range or a NaN value lands in the middle.
func (s Scale) Position(v float64) float64 {
	if s.Max <= s.Min || math.IsNaN(v) {
		return 0.5
	}
	t := (v - s.Min) / (s.Max - s.Min)
	return math.Max(0, math.Min(1, t))
}

// Color returns the palette color of v. Higher values get darker colors.
func (s Scale) Color(v float64) color.RGBA {
	return Interpolate(s.Position(v))
}

// Interpolate blends the two palette stops around t in [0, 1].
// NaN is treated as the middle of the palette.
func Interpolate(t float64) color.RGBA {
	if math.IsNaN(t) {
		t = 0.5
	}
	t = math.Max(0, math.Min(1, t))
	pos := t * float64(len(Palette)-1)
	i := int(math.Floor(pos))
	if i >= len(Palette)-1 {
		return Palette[len(Palette)-1]
	}
	frac := pos - float64(i)
	a, b := Palette[i], Palette[i+1]
	return color.RGBA{
		R: lerp(a.R, b.R, frac),
		G: lerp(a.G, b.G, frac),
		B: lerp(a.B, b.B, frac),
		A: 0xff,
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

// Luma returns the Rec. 601 luma of c in [0, 255].
func Luma(c color.RGBA) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
