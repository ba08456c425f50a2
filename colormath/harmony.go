package colormath

import "math"

// HarmonyType selects a color harmony scheme.
type HarmonyType string

// Harmony schemes. Each derives companion hues from the base hue by fixed
// degree offsets, holding saturation and lightness constant (monochromatic
// varies lightness instead).
const (
	Complementary      HarmonyType = "complementary"
	Analogous          HarmonyType = "analogous"
	Triadic            HarmonyType = "triadic"
	Tetradic           HarmonyType = "tetradic"
	SplitComplementary HarmonyType = "split-complementary"
	Monochromatic      HarmonyType = "monochromatic"
)

// Harmony is a base color together with its derived companions.
// Colors[0] is always the base color itself.
type Harmony struct {
	Type   HarmonyType
	Base   Value
	Colors []Value
}

// GenerateHarmony derives companion colors for the given scheme.
// An unknown scheme returns just the base color.
func GenerateHarmony(base Value, t HarmonyType) Harmony {
	h, s, l := base.HSL.H, base.HSL.S, base.HSL.L
	colors := []Value{base}

	hue := func(offset float64) Value {
		return New(HSLToHex(wrapHue(h+offset), s, l), 1)
	}

	switch t {
	case Complementary:
		colors = append(colors, hue(180))
	case Analogous:
		colors = append(colors, hue(30), hue(-30))
	case Triadic:
		colors = append(colors, hue(120), hue(240))
	case Tetradic:
		colors = append(colors, hue(90), hue(180), hue(270))
	case SplitComplementary:
		colors = append(colors, hue(150), hue(210))
	case Monochromatic:
		colors = append(colors,
			New(HSLToHex(h, s, math.Max(0, l-20)), 1),
			New(HSLToHex(h, s, math.Max(0, l-40)), 1),
			New(HSLToHex(h, s, math.Min(100, l+20)), 1),
			New(HSLToHex(h, s, math.Min(100, l+40)), 1),
		)
	}

	return Harmony{Type: t, Base: base, Colors: colors}
}

// wrapHue normalizes a hue angle into [0, 360).
func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}
