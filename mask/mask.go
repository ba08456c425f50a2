// Package mask implements the five non-destructive layer mask variants:
// alpha (painted raster), vector (shape matte), clipping (alpha borrowed
// from the layer below), gradient, and selection masks.
//
// A mask's payload is a tagged union keyed by its Type; every consumption
// site switches exhaustively over the variants. Masks on a layer apply in
// list order, each alpha-multiplied onto the previous result.
package mask

import (
	"fmt"

	"github.com/gogpu/studio/colormath"
	"github.com/gogpu/studio/raster"
)

// Type identifies a mask variant.
type Type string

// Mask variants.
const (
	Alpha     Type = "alpha"
	Vector    Type = "vector"
	Clipping  Type = "clipping"
	Gradient  Type = "gradient"
	Selection Type = "selection"
)

// BlendMode is a mask blend mode, a subset of the layer blend modes.
type BlendMode string

// Mask blend modes.
const (
	BlendNormal    BlendMode = "normal"
	BlendMultiply  BlendMode = "multiply"
	BlendScreen    BlendMode = "screen"
	BlendOverlay   BlendMode = "overlay"
	BlendSoftLight BlendMode = "soft-light"
	BlendHardLight BlendMode = "hard-light"
)

// Point is a canvas-space coordinate.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned canvas-space rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// Data is the variant payload of a mask. It is a sealed union: exactly the
// five payload types below implement it.
type Data interface {
	maskData()
}

// AlphaData is the payload of an alpha mask: a persistent coverage plane
// painted by brush strokes.
type AlphaData struct {
	Buffer *raster.Alpha
}

// ShapeType identifies a vector mask shape.
type ShapeType string

// Vector shapes.
const (
	ShapeRectangle ShapeType = "rectangle"
	ShapeEllipse   ShapeType = "ellipse"
	ShapePolygon   ShapeType = "polygon"
)

// Shape is one filled shape in a vector mask matte.
// Rectangle and ellipse shapes use Bounds; polygons use Points.
type Shape struct {
	Type   ShapeType
	Bounds Rect
	Points []Point
}

// VectorData is the payload of a vector mask: a shape list filled white on
// a black background.
type VectorData struct {
	Shapes []Shape
}

// ClippingData is the payload of a clipping mask. It is intentionally
// empty: a clipping mask stores no geometry of its own, it marks a
// relationship ("take alpha from the layer below") that the compositor
// resolves.
type ClippingData struct{}

// GradientData is the payload of a gradient mask.
type GradientData struct {
	Gradient colormath.Gradient
}

// SelectionShape identifies a selection region geometry.
type SelectionShape string

// Selection geometries.
const (
	SelectRectangle SelectionShape = "rectangle"
	SelectEllipse   SelectionShape = "ellipse"
	SelectPolygon   SelectionShape = "polygon"
	SelectFreehand  SelectionShape = "freehand"
)

// SelectionData is the payload of a selection mask: a geometric region
// filled white on black.
type SelectionData struct {
	Shape  SelectionShape
	Points []Point
	Bounds Rect
}

func (AlphaData) maskData()     {}
func (VectorData) maskData()    {}
func (ClippingData) maskData()  {}
func (GradientData) maskData()  {}
func (SelectionData) maskData() {}

// Mask is a non-destructive visibility modifier scoped to one layer.
type Mask struct {
	ID        string
	Type      Type
	Name      string
	Enabled   bool
	Inverted  bool
	Opacity   int // [0, 100]
	Feather   float64
	BlendMode BlendMode
	Data      Data

	surface raster.Surface
}

// backend returns the raster backend the mask was created on. Zero-value
// masks fall back to the software backend.
func (m *Mask) backend() raster.Surface {
	if m.surface == nil {
		return raster.SoftwareSurface{}
	}
	return m.surface
}

// Source creates masks and owns the id counter, so independent studio
// sessions never collide on mask ids. Masks allocate, blur, and paint
// through the source's raster backend.
type Source struct {
	nextID  int
	surface raster.Surface
}

// NewSource creates a mask factory on the software raster backend.
func NewSource() *Source {
	return NewSourceOn(nil)
}

// NewSourceOn creates a mask factory on the given raster backend. A nil
// surface selects the software backend.
func NewSourceOn(s raster.Surface) *Source {
	if s == nil {
		s = raster.SoftwareSurface{}
	}
	return &Source{surface: s}
}

func (s *Source) newID() string {
	s.nextID++
	return fmt.Sprintf("mask_%d", s.nextID)
}

func (s *Source) base(t Type, name string, data Data) *Mask {
	return &Mask{
		ID:        s.newID(),
		Type:      t,
		Name:      name,
		Enabled:   true,
		Inverted:  false,
		Opacity:   100,
		Feather:   0,
		BlendMode: BlendNormal,
		Data:      data,
		surface:   s.surface,
	}
}

// NewAlphaMask creates an alpha mask with a same-size, fully opaque
// (white-filled) coverage plane, so a freshly added mask hides nothing.
func (s *Source) NewAlphaMask(width, height int) *Mask {
	buf := s.surface.NewPlane(width, height)
	buf.Fill(255)
	return s.base(Alpha, "Alpha Mask", AlphaData{Buffer: buf})
}

// NewVectorMask creates a vector mask from a shape list.
func (s *Source) NewVectorMask(shapes ...Shape) *Mask {
	return s.base(Vector, "Vector Mask", VectorData{Shapes: shapes})
}

// NewClippingMask creates a clipping mask.
func (s *Source) NewClippingMask() *Mask {
	return s.base(Clipping, "Clipping Mask", ClippingData{})
}

// NewGradientMask creates a gradient mask. A nil stop list defaults to a
// black-to-white ramp.
func (s *Source) NewGradientMask(gt colormath.GradientType, stops []colormath.GradientStop) *Mask {
	if stops == nil {
		stops = []colormath.GradientStop{
			{Position: 0, Color: "#000000", Opacity: 100},
			{Position: 1, Color: "#ffffff", Opacity: 100},
		}
	}
	g := colormath.Gradient{
		Type:   gt,
		Stops:  stops,
		Angle:  0,
		Center: colormath.Point{X: 0.5, Y: 0.5},
		Radius: 0.5,
	}
	return s.base(Gradient, "Gradient Mask", GradientData{Gradient: g})
}

// NewSelectionMask creates a selection mask from a geometric region.
func (s *Source) NewSelectionMask(shape SelectionShape, points []Point, bounds Rect) *Mask {
	return s.base(Selection, "Selection Mask", SelectionData{
		Shape:  shape,
		Points: points,
		Bounds: bounds,
	})
}

// Duplicate deep-copies a mask under a new id, suffixing the name with
// " copy".
func (s *Source) Duplicate(m *Mask) *Mask {
	c := *m
	c.ID = s.newID()
	c.Name = m.Name + " copy"
	c.Data = cloneData(m.Data)
	return &c
}

func cloneData(d Data) Data {
	switch v := d.(type) {
	case AlphaData:
		if v.Buffer != nil {
			return AlphaData{Buffer: v.Buffer.Clone()}
		}
		return AlphaData{}
	case VectorData:
		shapes := make([]Shape, len(v.Shapes))
		for i, sh := range v.Shapes {
			sh.Points = append([]Point(nil), sh.Points...)
			shapes[i] = sh
		}
		return VectorData{Shapes: shapes}
	case ClippingData:
		return ClippingData{}
	case GradientData:
		g := v.Gradient
		g.Stops = append([]colormath.GradientStop(nil), g.Stops...)
		return GradientData{Gradient: g}
	case SelectionData:
		v.Points = append([]Point(nil), v.Points...)
		return v
	}
	return d
}

// Update is a partial mask mutation; nil fields are left unchanged.
// Opacity saturates to [0, 100] and Feather to >= 0 rather than erroring.
type Update struct {
	Name      *string
	Enabled   *bool
	Inverted  *bool
	Opacity   *int
	Feather   *float64
	BlendMode *BlendMode
}

// Apply merges the update into the mask.
func (m *Mask) Apply(u Update) {
	if u.Name != nil {
		m.Name = *u.Name
	}
	if u.Enabled != nil {
		m.Enabled = *u.Enabled
	}
	if u.Inverted != nil {
		m.Inverted = *u.Inverted
	}
	if u.Opacity != nil {
		m.Opacity = clampInt(*u.Opacity, 0, 100)
	}
	if u.Feather != nil {
		f := *u.Feather
		if f < 0 {
			f = 0
		}
		m.Feather = f
	}
	if u.BlendMode != nil {
		m.BlendMode = *u.BlendMode
	}
}

// Paint applies one brush dab to an alpha mask's coverage plane.
// Non-alpha masks (and alpha masks without a buffer) absorb the call as a
// no-op: painting targets arrive from UI state that may be stale.
func (m *Mask) Paint(x, y float64, b raster.Brush, erase bool) {
	d, ok := m.Data.(AlphaData)
	if !ok || d.Buffer == nil {
		return
	}
	m.backend().Stamp(d.Buffer, x, y, b, erase)
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
