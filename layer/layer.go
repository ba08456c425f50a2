// Package layer defines the studio scene model: an ordered collection of
// layers and groups with dense z-ordering, selection state, and the
// mutation operations the editing surface performs on them.
//
// All operations are total over the in-memory state: mutations that target
// an id that no longer exists are absorbed as no-ops, because ids can go
// stale between a render snapshot and the user action that references them.
package layer

import (
	"github.com/gogpu/studio/effect"
	"github.com/gogpu/studio/mask"
)

// Type identifies the kind of content a layer holds.
type Type string

// Layer kinds.
const (
	TypeImage      Type = "image"
	TypeText       Type = "text"
	TypeShape      Type = "shape"
	TypeAdjustment Type = "adjustment"
	TypeGroup      Type = "group"
)

// BlendMode selects how a layer merges into the composition beneath it,
// following the W3C compositing spec's sixteen modes.
type BlendMode string

// Blend modes.
const (
	BlendNormal     BlendMode = "normal"
	BlendMultiply   BlendMode = "multiply"
	BlendScreen     BlendMode = "screen"
	BlendOverlay    BlendMode = "overlay"
	BlendSoftLight  BlendMode = "soft-light"
	BlendHardLight  BlendMode = "hard-light"
	BlendColorDodge BlendMode = "color-dodge"
	BlendColorBurn  BlendMode = "color-burn"
	BlendDarken     BlendMode = "darken"
	BlendLighten    BlendMode = "lighten"
	BlendDifference BlendMode = "difference"
	BlendExclusion  BlendMode = "exclusion"
	BlendHue        BlendMode = "hue"
	BlendSaturation BlendMode = "saturation"
	BlendColor      BlendMode = "color"
	BlendLuminosity BlendMode = "luminosity"
)

// Point is a canvas-space position.
type Point struct {
	X, Y float64
}

// Size is a canvas-space extent; both dimensions are positive.
type Size struct {
	Width, Height float64
}

// TextAlign positions text within a text layer.
type TextAlign string

// Text alignments.
const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

// ShapeKind identifies a shape layer's geometry.
type ShapeKind string

// Shape kinds.
const (
	ShapeRectangle ShapeKind = "rectangle"
	ShapeCircle    ShapeKind = "circle"
	ShapePolygon   ShapeKind = "polygon"
)

// AdjustmentKind identifies an adjustment layer's parameter.
type AdjustmentKind string

// Adjustment kinds.
const (
	AdjustBrightness AdjustmentKind = "brightness"
	AdjustContrast   AdjustmentKind = "contrast"
	AdjustSaturation AdjustmentKind = "saturation"
	AdjustHue        AdjustmentKind = "hue"
)

// Data is a layer's type-specific payload. Only the fields for the layer's
// Type are meaningful; the rest stay zero.
type Data struct {
	// Image layers.
	Src     string
	Filters []string

	// Text layers.
	Text       string
	FontSize   float64
	FontFamily string
	Color      string
	TextAlign  TextAlign

	// Shape layers.
	Shape       ShapeKind
	Fill        string
	Stroke      string
	StrokeWidth float64

	// Adjustment layers.
	Adjustment      AdjustmentKind
	AdjustmentValue float64
}

// Layer is a positioned, transformable visual unit in the scene.
type Layer struct {
	ID        string
	Name      string
	Type      Type
	Visible   bool
	Locked    bool
	Opacity   int // [0, 100]
	BlendMode BlendMode
	Position  Point
	Size      Size
	Rotation  float64 // degrees, unbounded; normalized for display only
	Data      Data
	Effects   []effect.Effect
	Masks     []*mask.Mask
	ParentID  string // containing group id, empty when ungrouped
	ZIndex    int    // dense, ascending paint order
}

// Group is a named, orderable container of layer ids. Children are
// referenced, not owned: membership is the pair of the group's Children
// list and each child's ParentID.
type Group struct {
	ID        string
	Name      string
	Visible   bool
	Locked    bool
	Opacity   int
	BlendMode BlendMode
	Children  []string
	Expanded  bool // UI state only
}

// clone deep-copies a layer, including masks and effects, so duplicates
// never share mutable payloads with their source.
func (l *Layer) clone(src *mask.Source) *Layer {
	c := *l
	c.Effects = make([]effect.Effect, len(l.Effects))
	for i, e := range l.Effects {
		c.Effects[i] = e.Clone()
	}
	c.Masks = make([]*mask.Mask, len(l.Masks))
	for i, m := range l.Masks {
		d := src.Duplicate(m)
		d.Name = m.Name // " copy" suffixing applies to explicit mask duplication only
		c.Masks[i] = d
	}
	if l.Data.Filters != nil {
		c.Data.Filters = append([]string(nil), l.Data.Filters...)
	}
	return &c
}
