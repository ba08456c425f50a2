package compositor

import (
	"math"

	"github.com/gogpu/studio/colormath"
	"github.com/gogpu/studio/effect"
	"github.com/gogpu/studio/layer"
	"github.com/gogpu/studio/raster"
)

// renderEffects renders a layer's enabled effects. Shadows and outer glows
// accumulate into a separate underlay that merges beneath the layer;
// inner shadows, inner glows, strokes, and gradient overlays draw directly
// onto the layer buffer. Returns the underlay, or nil when no effect needs
// one.
func (c *Compositor) renderEffects(l *layer.Layer, buf *raster.Pixmap) *raster.Pixmap {
	var under *raster.Pixmap
	content := c.coverageOf(buf)

	for _, e := range l.Effects {
		if !e.Enabled {
			continue
		}
		st := e.Settings
		switch e.Type {
		case effect.DropShadow:
			if under == nil {
				under = c.surface.NewBuffer(buf.Width(), buf.Height())
			}
			m := content.Clone()
			if st.Spread > 0 {
				m.Dilate(int(st.Spread + 0.5))
			}
			dx, dy := shadowOffset(st.Angle, st.Distance)
			m = c.offsetAlpha(m, dx, dy)
			if st.Blur > 0 {
				c.surface.BlurPlane(m, st.Blur)
			}
			colorizeOver(under, m, st.Color, st.Opacity)

		case effect.InnerShadow:
			m := content.Clone()
			m.Invert()
			if st.Choke > 0 {
				m.Dilate(int(st.Choke + 0.5))
			}
			dx, dy := shadowOffset(st.Angle, st.Distance)
			m = c.offsetAlpha(m, dx, dy)
			if st.Blur > 0 {
				c.surface.BlurPlane(m, st.Blur)
			}
			m.Multiply(content)
			colorizeOver(buf, m, st.Color, st.Opacity)

		case effect.Glow:
			m := content.Clone()
			if st.Direction == effect.GlowInner {
				m.Invert()
				if st.Blur > 0 {
					c.surface.BlurPlane(m, st.Blur)
				}
				m.Multiply(content)
				colorizeOver(buf, m, st.Color, st.Opacity)
			} else {
				if under == nil {
					under = c.surface.NewBuffer(buf.Width(), buf.Height())
				}
				if st.Spread > 0 {
					m.Dilate(int(st.Spread + 0.5))
				}
				if st.Blur > 0 {
					c.surface.BlurPlane(m, st.Blur)
				}
				colorizeOver(under, m, st.Color, st.Opacity)
			}

		case effect.Stroke:
			m := c.strokeBand(content, st)
			colorizeOver(buf, m, st.Color, st.Opacity)

		case effect.GradientOverlay:
			drawGradientOverlay(buf, content, st)
		}
	}
	return under
}

// shadowOffset converts an angle in degrees and a distance in pixels to a
// pixel offset.
func shadowOffset(angle, distance float64) (int, int) {
	rad := angle * math.Pi / 180
	return int(math.Round(math.Cos(rad) * distance)),
		int(math.Round(math.Sin(rad) * distance))
}

// offsetAlpha returns a translated copy of the plane.
func (c *Compositor) offsetAlpha(a *raster.Alpha, dx, dy int) *raster.Alpha {
	if dx == 0 && dy == 0 {
		return a
	}
	out := c.surface.NewPlane(a.Width(), a.Height())
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			v := a.At(x, y)
			if v != 0 {
				out.Set(x+dx, y+dy, v)
			}
		}
	}
	return out
}

// colorizeOver source-over composites a solid color shaped by the matte
// onto dst. opacity is the effect's [0, 100] opacity.
func colorizeOver(dst *raster.Pixmap, matte *raster.Alpha, hex string, opacity int) {
	if opacity <= 0 {
		return
	}
	if opacity > 100 {
		opacity = 100
	}
	c := colormath.HexToRGB(hex)
	sr, sg, sb := uint8(c.R), uint8(c.G), uint8(c.B)

	data := dst.Data()
	for y := 0; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			sa := int(matte.At(x, y)) * opacity / 100
			if sa == 0 {
				continue
			}
			i := (y*dst.Width() + x) * 4
			r, g, b, a := sourceOver(sr, sg, sb, uint8(sa), data[i], data[i+1], data[i+2], data[i+3])
			data[i], data[i+1], data[i+2], data[i+3] = r, g, b, a
		}
	}
}

// sourceOver composites straight-alpha src over dst.
func sourceOver(sr, sg, sb, sa, dr, dg, db, da uint8) (uint8, uint8, uint8, uint8) {
	if sa == 255 || da == 0 {
		return sr, sg, sb, sa
	}
	as := float64(sa) / 255
	ab := float64(da) / 255
	ao := as + ab*(1-as)
	if ao == 0 {
		return 0, 0, 0, 0
	}
	mix := func(s, d uint8) uint8 {
		v := (float64(s)*as + float64(d)*ab*(1-as)) / ao
		return uint8(v + 0.5)
	}
	return mix(sr, dr), mix(sg, dg), mix(sb, db), uint8(ao*255 + 0.5)
}

// strokeBand builds the stroke matte: the band between a dilated and an
// eroded copy of the content coverage, split per stroke position.
func (c *Compositor) strokeBand(content *raster.Alpha, st effect.Settings) *raster.Alpha {
	w := int(st.Width + 0.5)
	if w < 1 {
		w = 1
	}
	outer := content.Clone()
	inner := content.Clone()
	switch st.Position {
	case effect.StrokeInside:
		inner.Erode(w)
	case effect.StrokeCenter:
		half := (w + 1) / 2
		outer.Dilate(half)
		inner.Erode(half)
	default: // outside
		outer.Dilate(w)
	}

	band := c.surface.NewPlane(content.Width(), content.Height())
	for y := 0; y < content.Height(); y++ {
		for x := 0; x < content.Width(); x++ {
			o := outer.At(x, y)
			i := inner.At(x, y)
			if o > i {
				band.Set(x, y, o-i)
			}
		}
	}
	return band
}

// drawGradientOverlay fills the content's bounding box with the overlay
// gradient, masked by the content alpha and blended per the overlay's own
// blend mode.
func drawGradientOverlay(buf *raster.Pixmap, content *raster.Alpha, st effect.Settings) {
	if len(st.Colors) == 0 || st.Opacity <= 0 {
		return
	}
	minX, minY, maxX, maxY, ok := coverageBounds(content)
	if !ok {
		return
	}

	g := colormath.Gradient{
		Type:  colormath.GradientLinear,
		Angle: st.Angle,
		Stops: make([]colormath.GradientStop, len(st.Colors)),
	}
	for i, hex := range st.Colors {
		pos := 0.0
		if len(st.Colors) > 1 {
			pos = float64(i) / float64(len(st.Colors)-1)
		}
		g.Stops[i] = colormath.GradientStop{Position: pos, Color: hex, Opacity: 100}
	}

	rad := st.Angle * math.Pi / 180
	dirX := math.Cos(rad)
	dirY := math.Sin(rad)
	spanW := float64(maxX - minX + 1)
	spanH := float64(maxY - minY + 1)
	span := abs64(dirX)*spanW + abs64(dirY)*spanH
	if span == 0 {
		span = 1
	}

	opacity := st.Opacity
	if opacity > 100 {
		opacity = 100
	}
	data := buf.Data()
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			ca := content.At(x, y)
			if ca == 0 {
				continue
			}
			// Project onto the gradient axis, normalized to [0, 1]
			// across the covered box.
			px := float64(x-minX) - spanW/2
			py := float64(y-minY) - spanH/2
			t := (px*dirX+py*dirY)/span + 0.5
			rgb, stopOpacity := g.ColorAt(t)

			sa := int(float64(ca) * float64(opacity) / 100 * stopOpacity / 100)
			if sa == 0 {
				continue
			}
			i := (y*buf.Width() + x) * 4
			r, gg, b, a := sourceOver(uint8(rgb.R), uint8(rgb.G), uint8(rgb.B), uint8(sa),
				data[i], data[i+1], data[i+2], data[i+3])
			data[i], data[i+1], data[i+2], data[i+3] = r, gg, b, a
		}
	}
}

// coverageBounds returns the bounding box of nonzero coverage.
func coverageBounds(a *raster.Alpha) (minX, minY, maxX, maxY int, ok bool) {
	minX, minY = a.Width(), a.Height()
	maxX, maxY = -1, -1
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			if a.At(x, y) != 0 {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}
	return minX, minY, maxX, maxY, maxY >= 0
}
