// Package compositor renders a layer scene into a raster canvas.
//
// Per visible layer, ascending z-order, the pipeline is: rasterize content,
// apply the layer transform (translate + rotate), apply the filter chain,
// apply each mask in list order by alpha multiplication, render the effect
// stack (shadows and glows behind, strokes and overlays atop), then merge
// into the accumulated canvas with the layer's opacity and blend mode.
package compositor

import (
	"github.com/gogpu/studio/internal/blend"
	"github.com/gogpu/studio/internal/filter"
	"github.com/gogpu/studio/layer"
	"github.com/gogpu/studio/mask"
	"github.com/gogpu/studio/raster"
)

// Compositor composites a layer scene at a fixed canvas size.
type Compositor struct {
	width      int
	height     int
	background [4]uint8
	surface    raster.Surface
	sources    map[string]*raster.Pixmap
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithBackground sets an opaque background fill. The default canvas is
// transparent.
func WithBackground(r, g, b, a uint8) Option {
	return func(c *Compositor) {
		c.background = [4]uint8{r, g, b, a}
	}
}

// WithSource registers decoded pixels for an image layer source reference.
func WithSource(src string, pm *raster.Pixmap) Option {
	return func(c *Compositor) {
		c.sources[src] = pm
	}
}

// WithSurface selects the raster backend buffers are allocated on and
// post-processed through. The default is the software backend.
func WithSurface(s raster.Surface) Option {
	return func(c *Compositor) {
		if s != nil {
			c.surface = s
		}
	}
}

// New creates a compositor for the given canvas size.
func New(width, height int, opts ...Option) *Compositor {
	c := &Compositor{
		width:   width,
		height:  height,
		surface: raster.SoftwareSurface{},
		sources: make(map[string]*raster.Pixmap),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Width returns the canvas width.
func (c *Compositor) Width() int { return c.width }

// Height returns the canvas height.
func (c *Compositor) Height() int { return c.height }

// RegisterSource registers decoded pixels for an image layer source
// reference. Image layers whose source has not been registered render
// nothing.
func (c *Compositor) RegisterSource(src string, pm *raster.Pixmap) {
	c.sources[src] = pm
}

// Render composites all visible layers of the store into a new canvas.
func (c *Compositor) Render(s *layer.Store) *raster.Pixmap {
	dst := c.surface.NewBuffer(c.width, c.height)
	if c.background[3] != 0 {
		dst.Fill(c.background[0], c.background[1], c.background[2], c.background[3])
	}

	// Alpha of the previously merged layer, for clipping masks.
	var below *raster.Alpha

	for _, l := range s.VisibleLayers() {
		switch l.Type {
		case layer.TypeGroup:
			// Groups are organizational; their members composite
			// individually.
			continue
		case layer.TypeAdjustment:
			applyAdjustment(dst, l)
			continue
		}

		buf := c.placeLayer(l)
		if buf == nil {
			continue
		}
		if len(l.Data.Filters) > 0 {
			filter.ApplyChain(buf, l.Data.Filters)
		}
		c.applyMasks(l, buf, below)

		// Snapshot the content alpha before effects draw on the buffer;
		// clipping masks clip to content, not to strokes or overlays.
		next := c.coverageOf(buf)

		if under := c.renderEffects(l, buf); under != nil {
			c.merge(dst, under, blend.Normal, 100)
		}
		c.merge(dst, buf, blend.ModeFromName(string(l.BlendMode)), l.Opacity)

		below = next
	}
	return dst
}

// applyMasks multiplies the layer buffer's alpha by each enabled mask in
// list order. Clipping masks borrow the alpha of the layer below; with no
// layer below the layer is fully hidden.
func (c *Compositor) applyMasks(l *layer.Layer, buf *raster.Pixmap, below *raster.Alpha) {
	for _, m := range l.Masks {
		if m == nil || !m.Enabled {
			continue
		}
		if _, ok := m.Data.(mask.ClippingData); ok {
			if below == nil {
				c.clearAlpha(buf)
			} else {
				buf.MultiplyAlpha(below)
			}
			continue
		}
		if matte := m.Rasterize(c.width, c.height); matte != nil {
			buf.MultiplyAlpha(matte)
		}
	}
}

// applyAdjustment applies an adjustment layer to the accumulated canvas.
// AdjustmentValue is a percentage where 100 is neutral, except hue where
// it is an angle in degrees.
func applyAdjustment(dst *raster.Pixmap, l *layer.Layer) {
	v := l.Data.AdjustmentValue
	var m filter.ColorMatrix
	switch l.Data.Adjustment {
	case layer.AdjustBrightness:
		m = filter.Brightness(v / 100)
	case layer.AdjustContrast:
		m = filter.Contrast(v / 100)
	case layer.AdjustSaturation:
		m = filter.Saturate(v / 100)
	case layer.AdjustHue:
		m = filter.HueRotate(v)
	default:
		return
	}
	m.Apply(dst)
}

// merge composites src onto dst pixel by pixel. opacity in [0, 100] scales
// the source alpha before blending.
func (c *Compositor) merge(dst, src *raster.Pixmap, mode blend.Mode, opacity int) {
	if opacity <= 0 {
		return
	}
	if opacity > 100 {
		opacity = 100
	}
	dd := c.surface.ReadPixels(dst)
	sd := c.surface.ReadPixels(src)
	n := len(dd)
	if len(sd) < n {
		n = len(sd)
	}
	for i := 0; i+3 < n; i += 4 {
		sa := sd[i+3]
		if opacity < 100 {
			sa = uint8(int(sa) * opacity / 100)
		}
		if sa == 0 {
			continue
		}
		r, g, b, a := blend.Pixel(mode, sd[i], sd[i+1], sd[i+2], sa, dd[i], dd[i+1], dd[i+2], dd[i+3])
		dd[i], dd[i+1], dd[i+2], dd[i+3] = r, g, b, a
	}
}

func (c *Compositor) clearAlpha(p *raster.Pixmap) {
	data := c.surface.ReadPixels(p)
	for i := 3; i < len(data); i += 4 {
		data[i] = 0
	}
}
