package mask

import (
	"math"

	"github.com/gogpu/studio/colormath"
	"github.com/gogpu/studio/raster"
)

// Rasterize renders the mask to an alpha plane of the given size and runs
// the post-processing chain: feather blur first, then inversion, then the
// mask's own opacity. Clipping masks return nil — they carry no geometry
// and the compositor resolves them against the layer below.
func (m *Mask) Rasterize(width, height int) *raster.Alpha {
	if width <= 0 || height <= 0 {
		return nil
	}
	srf := m.backend()

	plane := srf.NewPlane(width, height)
	switch d := m.Data.(type) {
	case AlphaData:
		resampleAlpha(plane, d.Buffer)
	case VectorData:
		rasterizeShapes(plane, d.Shapes)
	case ClippingData:
		return nil
	case GradientData:
		rasterizeGradient(plane, &d)
	case SelectionData:
		rasterizeSelection(plane, &d)
	default:
		return nil
	}

	if m.Feather > 0 {
		srf.BlurPlane(plane, m.Feather)
	}
	if m.Inverted {
		plane.Invert()
	}
	if m.Opacity < 100 {
		plane.Scale(float64(m.Opacity) / 100)
	}
	return plane
}

// resampleAlpha copies the painted buffer into out, using nearest-neighbor
// sampling when the sizes differ. A missing buffer reads as fully opaque,
// matching a freshly created mask.
func resampleAlpha(out, buf *raster.Alpha) {
	width := out.Width()
	height := out.Height()
	if buf == nil {
		out.Fill(255)
		return
	}
	if buf.Width() == width && buf.Height() == height {
		copy(out.Data(), buf.Data())
		return
	}
	for y := 0; y < height; y++ {
		sy := y * buf.Height() / height
		for x := 0; x < width; x++ {
			sx := x * buf.Width() / width
			out.Set(x, y, buf.At(sx, sy))
		}
	}
}

// rasterizeShapes fills the shape list white on a black background,
// producing a matte. Overlapping shapes accumulate to white; there is no
// winding interaction between shapes.
func rasterizeShapes(out *raster.Alpha, shapes []Shape) {
	for _, sh := range shapes {
		switch sh.Type {
		case ShapeRectangle:
			fillRect(out, sh.Bounds)
		case ShapeEllipse:
			fillEllipse(out, sh.Bounds)
		case ShapePolygon:
			fillPolygon(out, sh.Points)
		}
	}
}

func rasterizeSelection(out *raster.Alpha, d *SelectionData) {
	switch d.Shape {
	case SelectRectangle:
		fillRect(out, d.Bounds)
	case SelectEllipse:
		fillEllipse(out, d.Bounds)
	case SelectPolygon, SelectFreehand:
		// Freehand point lists close implicitly, like a polygon.
		fillPolygon(out, d.Points)
	}
}

func fillRect(out *raster.Alpha, r Rect) {
	minX := int(math.Floor(r.X))
	minY := int(math.Floor(r.Y))
	maxX := int(math.Ceil(r.X + r.Width))
	maxY := int(math.Ceil(r.Y + r.Height))
	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			out.Set(x, y, 255)
		}
	}
}

func fillEllipse(out *raster.Alpha, r Rect) {
	rx := r.Width / 2
	ry := r.Height / 2
	if rx <= 0 || ry <= 0 {
		return
	}
	cx := r.X + rx
	cy := r.Y + ry
	minX := int(math.Floor(r.X))
	minY := int(math.Floor(r.Y))
	maxX := int(math.Ceil(r.X + r.Width))
	maxY := int(math.Ceil(r.Y + r.Height))
	for y := minY; y < maxY; y++ {
		dy := (float64(y) + 0.5 - cy) / ry
		for x := minX; x < maxX; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			if dx*dx+dy*dy <= 1 {
				out.Set(x, y, 255)
			}
		}
	}
}

// fillPolygon rasterizes a closed polygon with the even-odd rule.
func fillPolygon(out *raster.Alpha, pts []Point) {
	if len(pts) < 3 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		py := float64(y) + 0.5
		for x := int(math.Floor(minX)); x <= int(math.Ceil(maxX)); x++ {
			if pointInPolygon(float64(x)+0.5, py, pts) {
				out.Set(x, y, 255)
			}
		}
	}
}

func pointInPolygon(x, y float64, pts []Point) bool {
	inside := false
	j := len(pts) - 1
	for i := 0; i < len(pts); i++ {
		pi, pj := pts[i], pts[j]
		if (pi.Y > y) != (pj.Y > y) &&
			x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// rasterizeGradient evaluates the gradient at every pixel. The matte value
// is the Rec. 709 luma of the stop color scaled by the stop opacity, so a
// black-to-white ramp produces a 0-to-255 alpha ramp.
func rasterizeGradient(out *raster.Alpha, d *GradientData) {
	width := out.Width()
	height := out.Height()
	g := &d.Gradient

	w := float64(width)
	h := float64(height)
	cx := g.Center.X * w
	cy := g.Center.Y * h
	angle := g.Angle * math.Pi / 180

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := float64(x) + 0.5
			py := float64(y) + 0.5

			var t float64
			switch g.Type {
			case colormath.GradientRadial:
				r := g.Radius * math.Min(w, h)
				if r <= 0 {
					r = math.Min(w, h) / 2
				}
				dx := px - cx
				dy := py - cy
				t = math.Sqrt(dx*dx+dy*dy) / r
			case colormath.GradientConic:
				t = (math.Atan2(py-cy, px-cx) - angle) / (2 * math.Pi)
				t -= math.Floor(t)
			default: // linear
				// Project onto the gradient axis; angle 0 runs left to
				// right, angle 90 top to bottom.
				dirX := math.Cos(angle)
				dirY := math.Sin(angle)
				proj := px*dirX + py*dirY
				span := math.Abs(w*dirX) + math.Abs(h*dirY)
				if span <= 0 {
					span = 1
				}
				var origin float64
				if dirX < 0 {
					origin += w * dirX
				}
				if dirY < 0 {
					origin += h * dirY
				}
				t = (proj - origin) / span
			}

			if t < 0 {
				t = 0
			}
			if t > 1 {
				t = 1
			}

			rgb, opacity := g.ColorAt(t)
			luma := 0.2126*float64(rgb.R) + 0.7152*float64(rgb.G) + 0.0722*float64(rgb.B)
			out.Set(x, y, uint8(luma*opacity/100+0.5))
		}
	}
}
