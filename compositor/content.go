package compositor

import (
	"image"
	"image/color"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/studio/colormath"
	"github.com/gogpu/studio/layer"
	"github.com/gogpu/studio/raster"
)

// renderContent rasterizes a layer's payload at its own size, before any
// transform or masking.
func (c *Compositor) renderContent(l *layer.Layer) *raster.Pixmap {
	w := int(l.Size.Width + 0.5)
	h := int(l.Size.Height + 0.5)
	if w < 1 || h < 1 {
		return nil
	}

	switch l.Type {
	case layer.TypeImage:
		src, ok := c.sources[l.Data.Src]
		if !ok || src == nil {
			return nil
		}
		return scalePixmap(src, w, h)
	case layer.TypeShape:
		return c.renderShape(l.Data, w, h)
	case layer.TypeText:
		return c.renderText(l.Data, w, h)
	default:
		return nil
	}
}

// scalePixmap resamples src to the given size.
func scalePixmap(src *raster.Pixmap, w, h int) *raster.Pixmap {
	if src.Width() == w && src.Height() == h {
		return src.Clone()
	}
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(out, out.Bounds(), src.ToImage(), src.Bounds(), xdraw.Src, nil)
	return raster.FromImage(out)
}

func (c *Compositor) renderShape(d layer.Data, w, h int) *raster.Pixmap {
	p := c.surface.NewBuffer(w, h)
	fill := colormath.HexToRGB(d.Fill)
	fr, fg, fb := uint8(fill.R), uint8(fill.G), uint8(fill.B)

	switch d.Shape {
	case layer.ShapeCircle:
		fillEllipse(p, w, h, fr, fg, fb)
	case layer.ShapePolygon:
		// Without an explicit point list a polygon renders as the
		// inscribed diamond.
		fillDiamond(p, w, h, fr, fg, fb)
	default:
		p.Fill(fr, fg, fb, 255)
	}

	if d.Stroke != "" && d.StrokeWidth > 0 {
		c.strokeOutline(p, d, w, h)
	}
	return p
}

func fillEllipse(p *raster.Pixmap, w, h int, r, g, b uint8) {
	cx := float64(w) / 2
	cy := float64(h) / 2
	rx := cx
	ry := cy
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			if dx*dx+dy*dy <= 1 {
				p.SetPixel(x, y, r, g, b, 255)
			}
		}
	}
}

func fillDiamond(p *raster.Pixmap, w, h int, r, g, b uint8) {
	cx := float64(w) / 2
	cy := float64(h) / 2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := abs64(float64(x)+0.5-cx) / cx
			dy := abs64(float64(y)+0.5-cy) / cy
			if dx+dy <= 1 {
				p.SetPixel(x, y, r, g, b, 255)
			}
		}
	}
}

// strokeOutline draws the shape border as the band between the filled
// coverage and its erosion by the stroke width.
func (c *Compositor) strokeOutline(p *raster.Pixmap, d layer.Data, w, h int) {
	cov := c.coverageOf(p)
	inner := cov.Clone()
	inner.Erode(int(d.StrokeWidth + 0.5))

	sc := colormath.HexToRGB(d.Stroke)
	sr, sg, sb := uint8(sc.R), uint8(sc.G), uint8(sc.B)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if cov.At(x, y) > 0 && inner.At(x, y) == 0 {
				p.SetPixel(x, y, sr, sg, sb, 255)
			}
		}
	}
}

// regularFont parses the bundled Go Regular face once; nil means the embed
// is unusable and text falls back to the bitmap face.
var regularFont = sync.OnceValue(func() *sfnt.Font {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil
	}
	return f
})

// textFace returns a face rendered at the given pixel size. FontFamily is
// advisory only; the compositor ships one vector face.
func textFace(size float64) font.Face {
	if size <= 0 {
		size = 16
	}
	if f := regularFont(); f != nil {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			return face
		}
	}
	return basicfont.Face7x13
}

// renderText draws the text at its font size and aligns the line inside the
// layer box: horizontally per TextAlign, vertically centered.
func (c *Compositor) renderText(d layer.Data, w, h int) *raster.Pixmap {
	if d.Text == "" {
		return c.surface.NewBuffer(w, h)
	}
	face := textFace(d.FontSize)

	col := colormath.HexToRGB(d.Color)
	drawer := &font.Drawer{
		Src:  image.NewUniform(color.NRGBA{R: uint8(col.R), G: uint8(col.G), B: uint8(col.B), A: 255}),
		Face: face,
	}
	textW := drawer.MeasureString(d.Text).Ceil()
	if textW < 1 {
		return c.surface.NewBuffer(w, h)
	}
	lineH := face.Metrics().Height.Ceil()
	img := image.NewNRGBA(image.Rect(0, 0, textW, lineH))
	drawer.Dst = img
	drawer.Dot = fixed.P(0, face.Metrics().Ascent.Ceil())
	drawer.DrawString(d.Text)

	var ox int
	switch d.TextAlign {
	case layer.AlignCenter:
		ox = (w - textW) / 2
	case layer.AlignRight:
		ox = w - textW
	}
	oy := (h - lineH) / 2

	out := c.surface.NewBuffer(w, h)
	blit(out, raster.FromImage(img), ox, oy)
	return out
}

// blit copies src into dst at the given offset, replacing pixels.
func blit(dst, src *raster.Pixmap, ox, oy int) {
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			r, g, b, a := src.Pixel(x, y)
			if a == 0 {
				continue
			}
			dst.SetPixel(x+ox, y+oy, r, g, b, a)
		}
	}
}

// coverageOf extracts the alpha plane of a pixmap.
func (c *Compositor) coverageOf(p *raster.Pixmap) *raster.Alpha {
	a := c.surface.NewPlane(p.Width(), p.Height())
	data := c.surface.ReadPixels(p)
	for y := 0; y < p.Height(); y++ {
		for x := 0; x < p.Width(); x++ {
			a.Set(x, y, data[(y*p.Width()+x)*4+3])
		}
	}
	return a
}

func abs64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
