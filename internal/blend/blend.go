// Package blend implements pixel blending for the compositor: the normal
// source-over operator plus the separable and non-separable blend modes of
// the W3C Compositing and Blending Level 1 specification.
//
// All functions operate on straight (non-premultiplied) RGBA bytes, matching
// the raster buffers they are applied to.
//
// References:
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// Mode selects a blend function.
type Mode int

const (
	Normal Mode = iota
	Multiply
	Screen
	Overlay
	SoftLight
	HardLight
	ColorDodge
	ColorBurn
	Darken
	Lighten
	Difference
	Exclusion
	Hue
	Saturation
	Color
	Luminosity
)

var modeNames = map[string]Mode{
	"normal":      Normal,
	"multiply":    Multiply,
	"screen":      Screen,
	"overlay":     Overlay,
	"soft-light":  SoftLight,
	"hard-light":  HardLight,
	"color-dodge": ColorDodge,
	"color-burn":  ColorBurn,
	"darken":      Darken,
	"lighten":     Lighten,
	"difference":  Difference,
	"exclusion":   Exclusion,
	"hue":         Hue,
	"saturation":  Saturation,
	"color":       Color,
	"luminosity":  Luminosity,
}

// ModeFromName maps a CSS-style blend mode name to a Mode. Unknown names
// fall back to Normal.
func ModeFromName(name string) Mode {
	if m, ok := modeNames[name]; ok {
		return m
	}
	return Normal
}

// Pixel composites a straight-alpha source pixel over a backdrop pixel.
//
// The general formula, with B the per-mode blend function on unmultiplied
// colors:
//
//	ao = as + ab*(1 - as)
//	Co = ((1-ab)*as*Cs + (1-as)*ab*Cb + as*ab*B(Cb, Cs)) / ao
//
// For Normal, B(Cb, Cs) = Cs and this reduces to source-over.
func Pixel(mode Mode, sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	if sa == 0 {
		return dr, dg, db, da
	}
	if da == 0 {
		return sr, sg, sb, sa
	}

	as := float64(sa) / 255
	ab := float64(da) / 255
	cs := [3]float64{float64(sr) / 255, float64(sg) / 255, float64(sb) / 255}
	cb := [3]float64{float64(dr) / 255, float64(dg) / 255, float64(db) / 255}

	var blended [3]float64
	switch mode {
	case Hue, Saturation, Color, Luminosity:
		blended = blendNonSeparable(mode, cb, cs)
	default:
		f := separable(mode)
		for i := 0; i < 3; i++ {
			blended[i] = f(cb[i], cs[i])
		}
	}

	ao := as + ab*(1-as)
	var out [3]float64
	for i := 0; i < 3; i++ {
		co := (1-ab)*as*cs[i] + (1-as)*ab*cb[i] + as*ab*blended[i]
		out[i] = co / ao
	}

	return toByte(out[0]), toByte(out[1]), toByte(out[2]), toByte(ao)
}

func toByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
