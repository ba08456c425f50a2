package colormath

import (
	"fmt"
	"math"
)

// HexToRGB parses a 24-bit hex color, with or without a leading '#'.
// Parsing is case-insensitive. Malformed input returns black rather than an
// error: color fields arrive from free-form user input and a bad string
// must not abort an edit.
func HexToRGB(hex string) RGB {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return RGB{}
	}
	var c [3]int
	for i := 0; i < 3; i++ {
		hi, ok1 := hexNibble(hex[i*2])
		lo, ok2 := hexNibble(hex[i*2+1])
		if !ok1 || !ok2 {
			return RGB{}
		}
		c[i] = hi<<4 | lo
	}
	return RGB{R: c[0], G: c[1], B: c[2]}
}

func hexNibble(c byte) (int, bool) {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0'), true
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10, true
	case 'A' <= c && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}

// RGBToHex formats 8-bit channels as a lowercase "#rrggbb" string.
// Channels are clamped to [0, 255].
func RGBToHex(r, g, b int) string {
	r = clampInt(r, 0, 255)
	g = clampInt(g, 0, 255)
	b = clampInt(b, 0, 255)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// RGBToHSL converts 8-bit RGB to hue [0, 360), saturation and lightness in
// percent. Achromatic input (r == g == b) yields h = 0, s = 0.
func RGBToHSL(r, g, b int) HSL {
	rf := float64(r) / 255
	gf := float64(g) / 255
	bf := float64(b) / 255

	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))
	l := (max + min) / 2

	var h, s float64
	if max != min {
		d := max - min
		if l > 0.5 {
			s = d / (2 - max - min)
		} else {
			s = d / (max + min)
		}
		switch max {
		case rf:
			h = (gf - bf) / d
			if gf < bf {
				h += 6
			}
		case gf:
			h = (bf-rf)/d + 2
		case bf:
			h = (rf-gf)/d + 4
		}
		h /= 6
	}

	return HSL{H: h * 360, S: s * 100, L: l * 100}
}

// HSLToRGB converts hue in degrees and saturation/lightness in percent back
// to 8-bit RGB, rounding each channel.
func HSLToRGB(h, s, l float64) RGB {
	h /= 360
	s /= 100
	l /= 100

	var r, g, b float64
	if s == 0 {
		r, g, b = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		r = hueToChannel(p, q, h+1.0/3)
		g = hueToChannel(p, q, h)
		b = hueToChannel(p, q, h-1.0/3)
	}

	return RGB{
		R: int(math.Round(r * 255)),
		G: int(math.Round(g * 255)),
		B: int(math.Round(b * 255)),
	}
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

// HSLToHex converts HSL components directly to a hex string.
func HSLToHex(h, s, l float64) string {
	rgb := HSLToRGB(h, s, l)
	return RGBToHex(rgb.R, rgb.G, rgb.B)
}

// RGBToHSV converts 8-bit RGB to hue in degrees and saturation/value in
// percent.
func RGBToHSV(r, g, b int) HSV {
	rf := float64(r) / 255
	gf := float64(g) / 255
	bf := float64(b) / 255

	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))
	diff := max - min

	var h, s float64
	if max != 0 {
		s = diff / max
	}
	if diff != 0 {
		switch max {
		case rf:
			h = (gf - bf) / diff
			if gf < bf {
				h += 6
			}
		case gf:
			h = (bf-rf)/diff + 2
		case bf:
			h = (rf-gf)/diff + 4
		}
		h /= 6
	}

	return HSV{H: h * 360, S: s * 100, V: max * 100}
}

// RGBToCMYK converts 8-bit RGB to CMYK percentages. Pure black (k = 1)
// yields c = m = y = 0 to avoid dividing by zero.
func RGBToCMYK(r, g, b int) CMYK {
	rf := float64(r) / 255
	gf := float64(g) / 255
	bf := float64(b) / 255

	k := 1 - math.Max(rf, math.Max(gf, bf))
	var c, m, y float64
	if k != 1 {
		c = (1 - rf - k) / (1 - k)
		m = (1 - gf - k) / (1 - k)
		y = (1 - bf - k) / (1 - k)
	}

	return CMYK{
		C: int(math.Round(c * 100)),
		M: int(math.Round(m * 100)),
		Y: int(math.Round(y * 100)),
		K: int(math.Round(k * 100)),
	}
}

// RGBToLab converts 8-bit RGB to CIE-LAB through the gamma-corrected
// sRGB -> XYZ (D65) pipeline, rounding the result to integers.
func RGBToLab(r, g, b int) Lab {
	rf := srgbToLinear(float64(r) / 255)
	gf := srgbToLinear(float64(g) / 255)
	bf := srgbToLinear(float64(b) / 255)

	x := rf*0.4124564 + gf*0.3575761 + bf*0.1804375
	y := rf*0.2126729 + gf*0.7151522 + bf*0.0721750
	z := rf*0.0193339 + gf*0.1191920 + bf*0.9503041

	// D65 reference white.
	x /= 0.95047
	y /= 1.0
	z /= 1.08883

	x = labF(x)
	y = labF(y)
	z = labF(z)

	return Lab{
		L: int(math.Round(116*y - 16)),
		A: int(math.Round(500 * (x - y))),
		B: int(math.Round(200 * (y - z))),
	}
}

func labF(t float64) float64 {
	if t > 0.008856 {
		return math.Cbrt(t)
	}
	return 7.787*t + 16.0/116
}

// srgbToLinear removes sRGB gamma from a channel in [0, 1].
func srgbToLinear(c float64) float64 {
	if c > 0.04045 {
		return math.Pow((c+0.055)/1.055, 2.4)
	}
	return c / 12.92
}
