// Package raster provides the pixel buffers the studio engine composes
// into: RGBA pixmaps for layer content and 8-bit alpha planes for masks,
// together with the small set of raster operations the mask and compositor
// packages need (Gaussian blur, brush stamps, inversion).
//
// Everything here is headless and deterministic; the Surface interface
// defines the capability seam a rendering backend (browser canvas, GPU)
// would implement instead.
package raster

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// Pixmap represents a rectangular RGBA pixel buffer, 4 bytes per pixel,
// non-premultiplied.
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

// NewPixmap creates a new transparent pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int { return p.width }

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int { return p.height }

// Data returns the raw pixel data (RGBA order).
func (p *Pixmap) Data() []uint8 { return p.data }

// SetPixel sets a single pixel. Out-of-bounds coordinates are ignored.
func (p *Pixmap) SetPixel(x, y int, r, g, b, a uint8) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = r
	p.data[i+1] = g
	p.data[i+2] = b
	p.data[i+3] = a
}

// Pixel returns a single pixel. Out-of-bounds coordinates read as
// transparent black.
func (p *Pixmap) Pixel(x, y int) (r, g, b, a uint8) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return 0, 0, 0, 0
	}
	i := (y*p.width + x) * 4
	return p.data[i+0], p.data[i+1], p.data[i+2], p.data[i+3]
}

// Fill fills the entire pixmap with a color.
func (p *Pixmap) Fill(r, g, b, a uint8) {
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// Clone creates a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	c := NewPixmap(p.width, p.height)
	copy(c.data, p.data)
	return c
}

// MultiplyAlpha scales every pixel's alpha by the corresponding value of
// the alpha plane. The plane must have the same dimensions; a mismatched
// plane is ignored.
func (p *Pixmap) MultiplyAlpha(a *Alpha) {
	if a == nil || a.width != p.width || a.height != p.height {
		return
	}
	for i := 0; i < len(a.data); i++ {
		p.data[i*4+3] = mul255(p.data[i*4+3], a.data[i])
	}
}

// ToImage converts the pixmap to an image.NRGBA.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// FromImage creates a pixmap from an image.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pm := NewPixmap(width, height)

	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Stride == width*4 {
		copy(pm.data, nrgba.Pix)
		return pm
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			pm.SetPixel(x, y, c.R, c.G, c.B, c.A)
		}
	}
	return pm
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, p.ToImage())
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	r, g, b, a := p.Pixel(x, y)
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}

// mul255 multiplies two 8-bit values treating them as fractions of 255.
func mul255(a, b uint8) uint8 {
	t := uint32(a)*uint32(b) + 127
	return uint8((t + t>>8) >> 8)
}
