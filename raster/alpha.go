package raster

import "image"

// Alpha is an 8-bit coverage plane used for mask rasterization.
// Values range from 0 (fully transparent) to 255 (fully opaque).
type Alpha struct {
	width  int
	height int
	data   []uint8
}

// NewAlpha creates a new plane with all values 0.
func NewAlpha(width, height int) *Alpha {
	return &Alpha{
		width:  width,
		height: height,
		data:   make([]uint8, width*height),
	}
}

// Width returns the plane width.
func (a *Alpha) Width() int { return a.width }

// Height returns the plane height.
func (a *Alpha) Height() int { return a.height }

// Bounds returns the plane dimensions as an image.Rectangle.
func (a *Alpha) Bounds() image.Rectangle {
	return image.Rect(0, 0, a.width, a.height)
}

// At returns the value at (x, y), 0 outside the bounds.
func (a *Alpha) At(x, y int) uint8 {
	if x < 0 || x >= a.width || y < 0 || y >= a.height {
		return 0
	}
	return a.data[y*a.width+x]
}

// Set sets the value at (x, y). Out-of-bounds coordinates are ignored.
func (a *Alpha) Set(x, y int, v uint8) {
	if x < 0 || x >= a.width || y < 0 || y >= a.height {
		return
	}
	a.data[y*a.width+x] = v
}

// Fill fills the entire plane with a value.
func (a *Alpha) Fill(v uint8) {
	for i := range a.data {
		a.data[i] = v
	}
}

// Invert inverts all values (255 - v).
func (a *Alpha) Invert() {
	for i := range a.data {
		a.data[i] = 255 - a.data[i]
	}
}

// Scale multiplies every value by factor in [0, 1], saturating at the
// range bounds.
func (a *Alpha) Scale(factor float64) {
	if factor < 0 {
		factor = 0
	}
	if factor > 1 {
		factor = 1
	}
	for i, v := range a.data {
		a.data[i] = uint8(float64(v)*factor + 0.5)
	}
}

// Multiply combines another plane into this one by per-value alpha
// multiplication. A nil or mismatched plane is ignored.
func (a *Alpha) Multiply(other *Alpha) {
	if other == nil || other.width != a.width || other.height != a.height {
		return
	}
	for i := range a.data {
		a.data[i] = mul255(a.data[i], other.data[i])
	}
}

// Clone creates a copy of the plane.
func (a *Alpha) Clone() *Alpha {
	c := NewAlpha(a.width, a.height)
	copy(c.data, a.data)
	return c
}

// Data returns the underlying data slice.
func (a *Alpha) Data() []uint8 { return a.data }
