package compositor

import (
	"math"

	"github.com/gogpu/studio/layer"
	"github.com/gogpu/studio/raster"
)

// placeLayer rasterizes a layer's content and maps it into canvas space,
// applying the translate + rotate transform. The result is a canvas-sized
// buffer, or nil when the layer has nothing to draw.
func (c *Compositor) placeLayer(l *layer.Layer) *raster.Pixmap {
	content := c.renderContent(l)
	if content == nil {
		return nil
	}

	out := c.surface.NewBuffer(c.width, c.height)
	rot := math.Mod(l.Rotation, 360)
	if rot == 0 {
		blit(out, content, int(math.Round(l.Position.X)), int(math.Round(l.Position.Y)))
		return out
	}

	// Rotation about the layer center, sampled by inverse mapping so every
	// destination pixel gets exactly one sample.
	rad := rot * math.Pi / 180
	sin, cos := math.Sincos(rad)
	cw := float64(content.Width())
	ch := float64(content.Height())
	cx := l.Position.X + cw/2
	cy := l.Position.Y + ch/2

	// Bounding box of the rotated rect, clamped to the canvas.
	half := math.Hypot(cw, ch) / 2
	minX := clampi(int(cx-half)-1, 0, c.width)
	maxX := clampi(int(cx+half)+2, 0, c.width)
	minY := clampi(int(cy-half)-1, 0, c.height)
	maxY := clampi(int(cy+half)+2, 0, c.height)

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			sx := cos*dx + sin*dy + cw/2
			sy := -sin*dx + cos*dy + ch/2
			ix := int(sx)
			iy := int(sy)
			if ix < 0 || ix >= content.Width() || iy < 0 || iy >= content.Height() {
				continue
			}
			r, g, b, a := content.Pixel(ix, iy)
			if a != 0 {
				out.SetPixel(x, y, r, g, b, a)
			}
		}
	}
	return out
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
