package raster

// Surface is the capability seam between the headless engine and a raster
// backend: pixel-buffer and coverage-plane allocation, Gaussian blur, and
// brush stamping. The mask engine and the compositor allocate and
// post-process through it, so an accelerated backend can substitute
// without touching either.
type Surface interface {
	// NewBuffer allocates a transparent pixel buffer of the given size.
	NewBuffer(width, height int) *Pixmap

	// NewPlane allocates a zeroed alpha coverage plane of the given size.
	NewPlane(width, height int) *Alpha

	// ReadPixels returns the buffer's raw RGBA bytes.
	ReadPixels(p *Pixmap) []uint8

	// BlurPlane blurs the plane in place with a Gaussian of the given
	// radius.
	BlurPlane(a *Alpha, radius float64)

	// Stamp paints one brush dab centered at (cx, cy) onto the plane;
	// erase removes coverage instead of adding it.
	Stamp(a *Alpha, cx, cy float64, b Brush, erase bool)
}

// SoftwareSurface is the in-process Surface implementation used by
// default.
type SoftwareSurface struct{}

// NewBuffer allocates a transparent pixmap.
func (SoftwareSurface) NewBuffer(width, height int) *Pixmap {
	return NewPixmap(width, height)
}

// NewPlane allocates a zeroed alpha plane.
func (SoftwareSurface) NewPlane(width, height int) *Alpha {
	return NewAlpha(width, height)
}

// ReadPixels returns the pixmap's backing bytes without copying.
func (SoftwareSurface) ReadPixels(p *Pixmap) []uint8 {
	return p.Data()
}

// BlurPlane applies the separable Gaussian blur.
func (SoftwareSurface) BlurPlane(a *Alpha, radius float64) {
	a.Blur(radius)
}

// Stamp applies the brush dab.
func (SoftwareSurface) Stamp(a *Alpha, cx, cy float64, b Brush, erase bool) {
	a.Stamp(cx, cy, b, erase)
}
