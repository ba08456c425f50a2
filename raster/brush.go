package raster

import "math"

// Brush describes a round paint stamp with a radial falloff.
// Hardness and Opacity are percentages in [0, 100]: at hardness 100 the
// stamp has a hard edge; below that, coverage fades from full at
// hardness*radius out to zero at the radius.
type Brush struct {
	Size     float64 // diameter in pixels
	Hardness float64
	Opacity  float64
}

// coverage returns the stamp coverage in [0, 1] at distance d from the
// brush center, before opacity scaling.
func (b Brush) coverage(d float64) float64 {
	radius := b.Size / 2
	if radius <= 0 || d >= radius {
		return 0
	}
	hard := clampFrac(b.Hardness / 100)
	inner := radius * hard
	if d <= inner {
		return 1
	}
	// Linear falloff between the hard core and the rim, matching a radial
	// gradient with stops at hardness and 1.
	return 1 - (d-inner)/(radius-inner)
}

// Stamp paints one brush dab centered at (cx, cy) onto the plane.
// When erase is false the dab adds coverage (source-over); when erase is
// true it removes it (destination-out).
func (a *Alpha) Stamp(cx, cy float64, b Brush, erase bool) {
	radius := b.Size / 2
	if radius <= 0 {
		return
	}
	opacity := clampFrac(b.Opacity / 100)

	minX := clampi(int(math.Floor(cx-radius)), 0, a.width)
	maxX := clampi(int(math.Ceil(cx+radius))+1, 0, a.width)
	minY := clampi(int(math.Floor(cy-radius)), 0, a.height)
	maxY := clampi(int(math.Ceil(cy+radius))+1, 0, a.height)

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			cov := b.coverage(math.Sqrt(dx*dx+dy*dy)) * opacity
			if cov <= 0 {
				continue
			}
			i := y*a.width + x
			src := float64(a.data[i]) / 255
			var out float64
			if erase {
				out = src * (1 - cov)
			} else {
				out = cov + src*(1-cov)
			}
			a.data[i] = clampU8(out * 255)
		}
	}
}

func clampFrac(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
