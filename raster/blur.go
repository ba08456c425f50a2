package raster

import "math"

// gaussianKernel generates a normalized 1D Gaussian kernel using the radius
// as sigma. Kernel size is 2*ceil(3*sigma)+1, covering three standard
// deviations on each side.
func gaussianKernel(radius float64) []float64 {
	if radius <= 0 {
		return []float64{1}
	}
	half := int(math.Ceil(radius * 3))
	size := half*2 + 1
	kernel := make([]float64, size)

	twoSigmaSq := 2 * radius * radius
	sum := 0.0
	for i := 0; i < size; i++ {
		x := float64(i - half)
		v := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// Blur applies a separable Gaussian blur of the given radius to the plane
// in place. The separable two-pass form runs in O(w*h*r) instead of
// O(w*h*r²). Edges extend: samples past the border clamp to the border
// value, so a uniform plane stays uniform.
func (a *Alpha) Blur(radius float64) {
	if radius <= 0 || len(a.data) == 0 {
		return
	}
	kernel := gaussianKernel(radius)
	half := len(kernel) / 2
	w, h := a.width, a.height

	tmp := make([]float64, len(a.data))

	// Horizontal pass.
	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			var acc float64
			for k, weight := range kernel {
				kx := clampi(x+k-half, 0, w-1)
				acc += float64(a.data[row+kx]) * weight
			}
			tmp[row+x] = acc
		}
	}

	// Vertical pass.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc float64
			for k, weight := range kernel {
				ky := clampi(y+k-half, 0, h-1)
				acc += tmp[ky*w+x] * weight
			}
			a.data[y*w+x] = clampU8(acc)
		}
	}
}

// Blur applies a separable Gaussian blur to all four channels in place.
func (p *Pixmap) Blur(radius float64) {
	if radius <= 0 || len(p.data) == 0 {
		return
	}
	kernel := gaussianKernel(radius)
	half := len(kernel) / 2
	w, h := p.width, p.height

	tmp := make([]float64, len(p.data))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b, a float64
			for k, weight := range kernel {
				kx := clampi(x+k-half, 0, w-1)
				i := (y*w + kx) * 4
				r += float64(p.data[i+0]) * weight
				g += float64(p.data[i+1]) * weight
				b += float64(p.data[i+2]) * weight
				a += float64(p.data[i+3]) * weight
			}
			i := (y*w + x) * 4
			tmp[i+0], tmp[i+1], tmp[i+2], tmp[i+3] = r, g, b, a
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b, a float64
			for k, weight := range kernel {
				ky := clampi(y+k-half, 0, h-1)
				i := (ky*w + x) * 4
				r += tmp[i+0] * weight
				g += tmp[i+1] * weight
				b += tmp[i+2] * weight
				a += tmp[i+3] * weight
			}
			i := (y*w + x) * 4
			p.data[i+0] = clampU8(r)
			p.data[i+1] = clampU8(g)
			p.data[i+2] = clampU8(b)
			p.data[i+3] = clampU8(a)
		}
	}
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampU8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
