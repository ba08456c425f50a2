// Package filter provides pixel-level adjustment filters for the
// compositor: 4x5 color matrix transforms and a CSS-style filter chain
// parser on top of them.
package filter

import (
	"math"

	"github.com/gogpu/studio/raster"
)

// ColorMatrix is a 4x5 color transformation in row-major order:
//
//	[R']   [m0  m1  m2  m3  m4 ]   [R]
//	[G'] = [m5  m6  m7  m8  m9 ] * [G]
//	[B']   [m10 m11 m12 m13 m14]   [B]
//	[A']   [m15 m16 m17 m18 m19]   [A]
//	                               [1]
//
// The fifth column is a bias in the 0-255 range. Colors are straight
// (non-premultiplied) during the transform and clamped on write.
type ColorMatrix [20]float64

// Identity returns the pass-through matrix.
func Identity() ColorMatrix {
	return ColorMatrix{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Brightness scales all color channels. factor 1 is unchanged, 0 is black.
func Brightness(factor float64) ColorMatrix {
	return ColorMatrix{
		factor, 0, 0, 0, 0,
		0, factor, 0, 0, 0,
		0, 0, factor, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Contrast scales channels around mid-gray: (c - 128)*factor + 128.
func Contrast(factor float64) ColorMatrix {
	offset := 128 * (1 - factor)
	return ColorMatrix{
		factor, 0, 0, 0, offset,
		0, factor, 0, 0, offset,
		0, 0, factor, 0, offset,
		0, 0, 0, 1, 0,
	}
}

// Saturate blends between the Rec. 709 grayscale projection (factor 0) and
// identity (factor 1); factors above 1 oversaturate.
func Saturate(factor float64) ColorMatrix {
	const (
		lumR = 0.2126
		lumG = 0.7152
		lumB = 0.0722
	)
	inv := 1 - factor
	return ColorMatrix{
		lumR*inv + factor, lumG * inv, lumB * inv, 0, 0,
		lumR * inv, lumG*inv + factor, lumB * inv, 0, 0,
		lumR * inv, lumG * inv, lumB*inv + factor, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Grayscale is full desaturation.
func Grayscale() ColorMatrix {
	return Saturate(0)
}

// Sepia applies the standard sepia tone matrix.
func Sepia() ColorMatrix {
	return ColorMatrix{
		0.393, 0.769, 0.189, 0, 0,
		0.349, 0.686, 0.168, 0, 0,
		0.272, 0.534, 0.131, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Invert flips color channels, leaving alpha unchanged.
func Invert() ColorMatrix {
	return ColorMatrix{
		-1, 0, 0, 0, 255,
		0, -1, 0, 0, 255,
		0, 0, -1, 0, 255,
		0, 0, 0, 1, 0,
	}
}

// HueRotate rotates hue by the given angle in degrees, approximated by
// rotation in YIQ space.
func HueRotate(degrees float64) ColorMatrix {
	rad := degrees * math.Pi / 180
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	const (
		lumR = 0.213
		lumG = 0.715
		lumB = 0.072
	)
	return ColorMatrix{
		lumR + cos*(1-lumR) - sin*lumR, lumG - cos*lumG - sin*lumG, lumB - cos*lumB + sin*(1-lumB), 0, 0,
		lumR - cos*lumR + sin*0.143, lumG + cos*(1-lumG) + sin*0.140, lumB - cos*lumB - sin*0.283, 0, 0,
		lumR - cos*lumR - sin*(1-lumR), lumG - cos*lumG + sin*lumG, lumB + cos*(1-lumB) + sin*lumB, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// Opacity multiplies alpha by factor.
func Opacity(factor float64) ColorMatrix {
	return ColorMatrix{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, factor, 0,
	}
}

// Compose returns a matrix applying m first, then other.
func (m ColorMatrix) Compose(other ColorMatrix) ColorMatrix {
	var r ColorMatrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += other[row*5+k] * m[k*5+col]
			}
			r[row*5+col] = sum
		}
		r[row*5+4] = other[row*5+0]*m[4] + other[row*5+1]*m[9] +
			other[row*5+2]*m[14] + other[row*5+3]*m[19] + other[row*5+4]
	}
	return r
}

// Apply transforms every pixel of p in place.
func (m ColorMatrix) Apply(p *raster.Pixmap) {
	data := p.Data()
	for i := 0; i < len(data); i += 4 {
		r := float64(data[i])
		g := float64(data[i+1])
		b := float64(data[i+2])
		a := float64(data[i+3])

		data[i] = clampU8(m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4])
		data[i+1] = clampU8(m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9])
		data[i+2] = clampU8(m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14])
		data[i+3] = clampU8(m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19])
	}
}

func clampU8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
