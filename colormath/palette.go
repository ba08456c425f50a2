package colormath

import (
	"math"
	"sort"
	"time"
)

// PaletteType records where a palette came from.
type PaletteType string

// Palette origins.
const (
	PaletteCustom    PaletteType = "custom"
	PaletteExtracted PaletteType = "extracted"
	PaletteHarmony   PaletteType = "harmony"
)

// Palette is a named, ordered collection of colors. It is purely data;
// palette lifecycle lives in the studio session.
type Palette struct {
	ID        string
	Name      string
	Colors    []Value
	Type      PaletteType
	CreatedAt time.Time
	Tags      []string
}

// GradientType selects a gradient geometry.
type GradientType string

// Gradient geometries.
const (
	GradientLinear GradientType = "linear"
	GradientRadial GradientType = "radial"
	GradientConic  GradientType = "conic"
)

// GradientStop is a color at a position along a gradient.
type GradientStop struct {
	Position float64 // [0, 1]
	Color    string  // hex
	Opacity  float64 // [0, 100]
}

// Point is a normalized coordinate in [0, 1] gradient space.
type Point struct {
	X, Y float64
}

// Gradient is an ordered stop list with geometry parameters.
// Angle applies to linear gradients (degrees), Center to radial and conic,
// Radius to radial (normalized to the shorter canvas dimension).
type Gradient struct {
	ID     string
	Name   string
	Type   GradientType
	Stops  []GradientStop
	Angle  float64
	Center Point
	Radius float64
}

// ColorAt evaluates the gradient's stop list at position t in [0, 1],
// returning the interpolated color and opacity. The stop list need not be
// sorted. Stops are interpolated pairwise in RGB; positions outside the
// stop range clamp to the nearest stop, matching pad extension.
func (g *Gradient) ColorAt(t float64) (RGB, float64) {
	stops := sortedStops(g.Stops)
	if len(stops) == 0 {
		return RGB{}, 0
	}
	if len(stops) == 1 {
		return HexToRGB(stops[0].Color), stops[0].Opacity
	}

	if t <= stops[0].Position {
		return HexToRGB(stops[0].Color), stops[0].Opacity
	}
	last := stops[len(stops)-1]
	if t >= last.Position {
		return HexToRGB(last.Color), last.Opacity
	}

	for i := 1; i < len(stops); i++ {
		if t > stops[i].Position {
			continue
		}
		s0, s1 := stops[i-1], stops[i]
		span := s1.Position - s0.Position
		var local float64
		if span > 0 {
			local = (t - s0.Position) / span
		}
		c0 := HexToRGB(s0.Color)
		c1 := HexToRGB(s1.Color)
		return RGB{
			R: lerpInt(c0.R, c1.R, local),
			G: lerpInt(c0.G, c1.G, local),
			B: lerpInt(c0.B, c1.B, local),
		}, s0.Opacity + (s1.Opacity-s0.Opacity)*local
	}
	return HexToRGB(last.Color), last.Opacity
}

// sortedStops orders stops by position, copying only when the input is out
// of order so the common pre-sorted case stays allocation-free.
func sortedStops(stops []GradientStop) []GradientStop {
	inOrder := sort.SliceIsSorted(stops, func(i, j int) bool {
		return stops[i].Position < stops[j].Position
	})
	if inOrder {
		return stops
	}
	sorted := make([]GradientStop, len(stops))
	copy(sorted, stops)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	return sorted
}

func lerpInt(a, b int, t float64) int {
	return a + int(math.Round(float64(b-a)*t))
}
