// Non-separable blend modes (Hue, Saturation, Color, Luminosity) per W3C
// Compositing and Blending Level 1, section 8. These operate on the whole
// RGB triplet via the Lum/Sat/ClipColor helper algorithms the W3C defines.
package blend

// lum returns the luminance of a color using BT.601 coefficients.
func lum(c [3]float64) float64 {
	return 0.30*c[0] + 0.59*c[1] + 0.11*c[2]
}

// sat returns max - min of the components.
func sat(c [3]float64) float64 {
	return max3(c) - min3(c)
}

// clipColor scales out-of-range components towards the luminance so the
// color stays in [0, 1] with its luminance preserved.
func clipColor(c [3]float64) [3]float64 {
	l := lum(c)
	n := min3(c)
	x := max3(c)
	if n < 0 {
		for i := range c {
			c[i] = l + (c[i]-l)*l/(l-n)
		}
	}
	if x > 1 {
		for i := range c {
			c[i] = l + (c[i]-l)*(1-l)/(x-l)
		}
	}
	return c
}

// setLum shifts the color to the target luminance, then clips.
func setLum(c [3]float64, l float64) [3]float64 {
	d := l - lum(c)
	for i := range c {
		c[i] += d
	}
	return clipColor(c)
}

// setSat rescales min/mid/max so the saturation becomes s while the
// component ordering is preserved. Grayscale input stays grayscale zero.
func setSat(c [3]float64, s float64) [3]float64 {
	mi, md, mx := 0, 1, 2
	if c[mi] > c[md] {
		mi, md = md, mi
	}
	if c[md] > c[mx] {
		md, mx = mx, md
	}
	if c[mi] > c[md] {
		mi, md = md, mi
	}

	if c[mx] > c[mi] {
		c[md] = (c[md] - c[mi]) * s / (c[mx] - c[mi])
		c[mx] = s
	} else {
		c[md] = 0
		c[mx] = 0
	}
	c[mi] = 0
	return c
}

func blendNonSeparable(mode Mode, cb, cs [3]float64) [3]float64 {
	switch mode {
	case Hue:
		return setLum(setSat(cs, sat(cb)), lum(cb))
	case Saturation:
		return setLum(setSat(cb, sat(cs)), lum(cb))
	case Color:
		return setLum(cs, lum(cb))
	case Luminosity:
		return setLum(cb, lum(cs))
	default:
		return cs
	}
}

func min3(c [3]float64) float64 {
	m := c[0]
	if c[1] < m {
		m = c[1]
	}
	if c[2] < m {
		m = c[2]
	}
	return m
}

func max3(c [3]float64) float64 {
	m := c[0]
	if c[1] > m {
		m = c[1]
	}
	if c[2] > m {
		m = c[2]
	}
	return m
}
