// Package colormath provides pure color-space conversions and derived color
// tooling for the studio core: hex/RGB/HSL/HSV/CMYK/LAB conversion, color
// harmony generation, WCAG contrast ratios, and dominant-color extraction.
//
// All functions are stateless. A Value carries every representation of one
// color sample; any path that changes a color must rebuild the Value through
// New (or an equivalent full recompute) so the representations never drift.
package colormath

// RGB holds 8-bit color channels in the range [0, 255].
type RGB struct {
	R, G, B int
}

// HSL holds hue in degrees [0, 360) and saturation/lightness in percent
// [0, 100].
type HSL struct {
	H, S, L float64
}

// HSV holds hue in degrees [0, 360) and saturation/value in percent [0, 100].
type HSV struct {
	H, S, V float64
}

// CMYK holds process color components in percent [0, 100].
type CMYK struct {
	C, M, Y, K int
}

// Lab holds CIE-LAB components rounded to integers (D65 reference white).
type Lab struct {
	L, A, B int
}

// Value is a fully denormalized color sample: the same color expressed in
// every supported representation, plus an alpha in [0, 1].
type Value struct {
	Hex   string
	RGB   RGB
	HSL   HSL
	HSV   HSV
	CMYK  CMYK
	Lab   Lab
	Alpha float64
}

// New builds a Value from a hex string, deriving all representations from
// the parsed RGB. Malformed hex parses as black, matching HexToRGB.
// This is the single constructor; color mutation paths route through it.
func New(hex string, alpha float64) Value {
	rgb := HexToRGB(hex)
	return Value{
		Hex:   hex,
		RGB:   rgb,
		HSL:   RGBToHSL(rgb.R, rgb.G, rgb.B),
		HSV:   RGBToHSV(rgb.R, rgb.G, rgb.B),
		CMYK:  RGBToCMYK(rgb.R, rgb.G, rgb.B),
		Lab:   RGBToLab(rgb.R, rgb.G, rgb.B),
		Alpha: alpha,
	}
}

// FromRGB builds a Value from 8-bit channels.
func FromRGB(r, g, b int, alpha float64) Value {
	return New(RGBToHex(r, g, b), alpha)
}

// FromHSL builds a Value from HSL components.
func FromHSL(h, s, l float64, alpha float64) Value {
	return New(HSLToHex(h, s, l), alpha)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
