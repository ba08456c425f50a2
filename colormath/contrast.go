package colormath

import "math"

// relativeLuminance computes the WCAG relative luminance of a color,
// linearizing each sRGB channel and weighting by the Rec. 709 coefficients.
func relativeLuminance(c Value) float64 {
	lin := func(v int) float64 {
		f := float64(v) / 255
		if f <= 0.03928 {
			return f / 12.92
		}
		return math.Pow((f+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(c.RGB.R) + 0.7152*lin(c.RGB.G) + 0.0722*lin(c.RGB.B)
}

// ContrastRatio returns the WCAG contrast ratio between two colors,
// (lighter + 0.05) / (darker + 0.05). The result ranges from 1 (identical
// colors) to 21 (white on black).
func ContrastRatio(c1, c2 Value) float64 {
	l1 := relativeLuminance(c1)
	l2 := relativeLuminance(c2)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}
