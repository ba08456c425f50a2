package compositor

import (
	"bytes"
	"testing"

	"github.com/gogpu/studio/effect"
	"github.com/gogpu/studio/layer"
	"github.com/gogpu/studio/raster"
)

// redSquare adds a 10x10 red rectangle layer at the given position.
func redSquare(s *layer.Store, x, y float64, opts ...layer.Option) string {
	base := []layer.Option{
		layer.WithType(layer.TypeShape),
		layer.WithPosition(x, y),
		layer.WithSize(10, 10),
		layer.WithData(layer.Data{Shape: layer.ShapeRectangle, Fill: "#ff0000"}),
	}
	return s.AddLayer(append(base, opts...)...)
}

func TestRenderEmptyScene(t *testing.T) {
	c := New(8, 8)
	out := c.Render(layer.NewStore())
	if _, _, _, a := out.Pixel(4, 4); a != 0 {
		t.Errorf("empty scene should be transparent, alpha = %d", a)
	}
}

func TestRenderBackground(t *testing.T) {
	c := New(8, 8, WithBackground(0, 0, 255, 255))
	out := c.Render(layer.NewStore())
	if r, _, b, a := out.Pixel(0, 0); r != 0 || b != 255 || a != 255 {
		t.Errorf("background not applied: %d,%d,%d", r, b, a)
	}
}

func TestRenderShapeLayer(t *testing.T) {
	s := layer.NewStore()
	redSquare(s, 2, 2)

	out := New(20, 20).Render(s)
	if r, g, b, a := out.Pixel(5, 5); r != 255 || g != 0 || b != 0 || a != 255 {
		t.Errorf("inside shape: %d,%d,%d,%d", r, g, b, a)
	}
	if _, _, _, a := out.Pixel(15, 15); a != 0 {
		t.Errorf("outside shape should be empty, alpha = %d", a)
	}
}

func TestRenderSkipsInvisible(t *testing.T) {
	s := layer.NewStore()
	redSquare(s, 0, 0, layer.WithVisible(false))

	out := New(20, 20).Render(s)
	if _, _, _, a := out.Pixel(5, 5); a != 0 {
		t.Error("invisible layer must not render")
	}
}

func TestZOrderTopWins(t *testing.T) {
	s := layer.NewStore()
	redSquare(s, 0, 0)
	s.AddLayer(
		layer.WithType(layer.TypeShape),
		layer.WithSize(10, 10),
		layer.WithData(layer.Data{Shape: layer.ShapeRectangle, Fill: "#00ff00"}),
	)

	out := New(20, 20).Render(s)
	if r, g, _, _ := out.Pixel(5, 5); r != 0 || g != 255 {
		t.Errorf("top layer should win: r=%d g=%d", r, g)
	}
}

func TestLayerOpacityBlends(t *testing.T) {
	s := layer.NewStore()
	// White base, then 50% black atop: mid gray.
	s.AddLayer(
		layer.WithType(layer.TypeShape),
		layer.WithSize(10, 10),
		layer.WithData(layer.Data{Shape: layer.ShapeRectangle, Fill: "#ffffff"}),
	)
	s.AddLayer(
		layer.WithType(layer.TypeShape),
		layer.WithSize(10, 10),
		layer.WithOpacity(50),
		layer.WithData(layer.Data{Shape: layer.ShapeRectangle, Fill: "#000000"}),
	)

	out := New(20, 20).Render(s)
	r, _, _, _ := out.Pixel(5, 5)
	if r < 120 || r > 135 {
		t.Errorf("r = %d, want about 128", r)
	}
}

func TestMultiplyBlendMode(t *testing.T) {
	s := layer.NewStore()
	s.AddLayer(
		layer.WithType(layer.TypeShape),
		layer.WithSize(10, 10),
		layer.WithData(layer.Data{Shape: layer.ShapeRectangle, Fill: "#808080"}),
	)
	s.AddLayer(
		layer.WithType(layer.TypeShape),
		layer.WithSize(10, 10),
		layer.WithBlendMode(layer.BlendMultiply),
		layer.WithData(layer.Data{Shape: layer.ShapeRectangle, Fill: "#808080"}),
	)

	out := New(20, 20).Render(s)
	r, _, _, _ := out.Pixel(5, 5)
	// 0.5 * 0.5 = 0.25
	if r < 60 || r > 70 {
		t.Errorf("r = %d, want about 64", r)
	}
}

func TestImageLayerSources(t *testing.T) {
	src := raster.NewPixmap(10, 10)
	src.Fill(0, 255, 0, 255)

	s := layer.NewStore()
	s.AddLayer(
		layer.WithType(layer.TypeImage),
		layer.WithSize(10, 10),
		layer.WithData(layer.Data{Src: "mem://green"}),
	)

	// Unregistered source renders nothing.
	out := New(20, 20).Render(s)
	if _, _, _, a := out.Pixel(5, 5); a != 0 {
		t.Error("unregistered source must render nothing")
	}

	out = New(20, 20, WithSource("mem://green", src)).Render(s)
	if _, g, _, a := out.Pixel(5, 5); g != 255 || a != 255 {
		t.Errorf("registered source: g=%d a=%d", g, a)
	}
}

func TestRotationQuarterTurn(t *testing.T) {
	s := layer.NewStore()
	// A wide, short bar rotated 90 degrees becomes tall and narrow.
	s.AddLayer(
		layer.WithType(layer.TypeShape),
		layer.WithPosition(10, 14),
		layer.WithSize(20, 4),
		layer.WithRotation(90),
		layer.WithData(layer.Data{Shape: layer.ShapeRectangle, Fill: "#ff0000"}),
	)

	out := New(40, 40).Render(s)
	// Center of the bar stays put.
	if _, _, _, a := out.Pixel(20, 16); a == 0 {
		t.Error("center should stay covered after rotation")
	}
	// The original horizontal extent is vacated.
	if _, _, _, a := out.Pixel(11, 16); a != 0 {
		t.Error("horizontal extent should be vacated by the rotation")
	}
	// The vertical extent is now covered.
	if _, _, _, a := out.Pixel(20, 8); a == 0 {
		t.Error("vertical extent should be covered after rotation")
	}
}

// A full-coverage, non-inverted, non-feathered mask must not change the
// render.
func TestOpaqueMaskIsIdentity(t *testing.T) {
	plain := layer.NewStore()
	redSquare(plain, 2, 2)

	masked := layer.NewStore()
	id := redSquare(masked, 2, 2)
	masked.AddMask(id, masked.Masks().NewAlphaMask(20, 20))

	a := New(20, 20).Render(plain)
	b := New(20, 20).Render(masked)
	for i, v := range a.Data() {
		if b.Data()[i] != v {
			t.Fatalf("byte %d differs: %d vs %d", i, v, b.Data()[i])
		}
	}
}

func TestDisabledMaskIgnored(t *testing.T) {
	s := layer.NewStore()
	id := redSquare(s, 0, 0)
	m := s.Masks().NewAlphaMask(20, 20)
	m.Enabled = false
	m.Inverted = true // would hide everything if applied
	s.AddMask(id, m)

	out := New(20, 20).Render(s)
	if _, _, _, a := out.Pixel(5, 5); a == 0 {
		t.Error("disabled mask must not hide the layer")
	}
}

func TestInvertedMaskHidesLayer(t *testing.T) {
	s := layer.NewStore()
	id := redSquare(s, 0, 0)
	m := s.Masks().NewAlphaMask(20, 20)
	m.Inverted = true
	s.AddMask(id, m)

	out := New(20, 20).Render(s)
	if _, _, _, a := out.Pixel(5, 5); a != 0 {
		t.Errorf("inverted full mask should hide the layer, alpha = %d", a)
	}
}

func TestClippingMaskUsesLayerBelow(t *testing.T) {
	s := layer.NewStore()
	// Small base shape, then a large clipped layer above it.
	s.AddLayer(
		layer.WithType(layer.TypeShape),
		layer.WithPosition(5, 5),
		layer.WithSize(5, 5),
		layer.WithData(layer.Data{Shape: layer.ShapeRectangle, Fill: "#0000ff"}),
	)
	top := s.AddLayer(
		layer.WithType(layer.TypeShape),
		layer.WithSize(20, 20),
		layer.WithData(layer.Data{Shape: layer.ShapeRectangle, Fill: "#ff0000"}),
	)
	s.AddMask(top, s.Masks().NewClippingMask())

	out := New(20, 20).Render(s)
	// Inside the base footprint the clipped layer shows.
	if r, _, _, _ := out.Pixel(7, 7); r != 255 {
		t.Errorf("inside base: r = %d, want clipped layer", r)
	}
	// Outside the base footprint the clipped layer is cut away.
	if _, _, _, a := out.Pixel(15, 15); a != 0 {
		t.Errorf("outside base: alpha = %d, want 0", a)
	}
}

func TestClippingMaskWithNothingBelow(t *testing.T) {
	s := layer.NewStore()
	id := redSquare(s, 0, 0)
	s.AddMask(id, s.Masks().NewClippingMask())

	out := New(20, 20).Render(s)
	if _, _, _, a := out.Pixel(5, 5); a != 0 {
		t.Error("clipping with no layer below hides the layer")
	}
}

func TestAdjustmentLayerAffectsCanvas(t *testing.T) {
	s := layer.NewStore()
	s.AddLayer(
		layer.WithType(layer.TypeShape),
		layer.WithSize(10, 10),
		layer.WithData(layer.Data{Shape: layer.ShapeRectangle, Fill: "#646464"}),
	)
	s.AddLayer(
		layer.WithType(layer.TypeAdjustment),
		layer.WithData(layer.Data{Adjustment: layer.AdjustBrightness, AdjustmentValue: 150}),
	)

	out := New(20, 20).Render(s)
	r, _, _, _ := out.Pixel(5, 5)
	if r != 150 {
		t.Errorf("r = %d, want 100 * 1.5 = 150", r)
	}
}

func TestFilterChainOnLayer(t *testing.T) {
	s := layer.NewStore()
	src := raster.NewPixmap(10, 10)
	src.Fill(100, 100, 100, 255)
	s.AddLayer(
		layer.WithType(layer.TypeImage),
		layer.WithSize(10, 10),
		layer.WithData(layer.Data{Src: "mem://gray", Filters: []string{"invert(1)"}}),
	)

	out := New(20, 20, WithSource("mem://gray", src)).Render(s)
	if r, _, _, _ := out.Pixel(5, 5); r != 155 {
		t.Errorf("r = %d, want inverted 155", r)
	}
}

func TestDropShadowRendersBehind(t *testing.T) {
	s := layer.NewStore()
	id := redSquare(s, 5, 5)
	s.AddEffect(id, effect.New(effect.DropShadow))

	out := New(30, 30).Render(s)
	// Default angle 135, distance 5: the shadow falls down-left of the
	// square; with blur it reaches below the content footprint.
	if _, _, _, a := out.Pixel(8, 18); a == 0 {
		t.Error("expected shadow coverage below the square")
	}
	// Content itself stays red on top of its own shadow.
	if r, g, _, _ := out.Pixel(10, 10); r != 255 || g != 0 {
		t.Errorf("content overdrawn: r=%d g=%d", r, g)
	}
}

func TestStrokeOutsideContent(t *testing.T) {
	s := layer.NewStore()
	id := redSquare(s, 10, 10)
	e := effect.New(effect.Stroke)
	e.Settings.Width = 2
	e.Settings.Color = "#00ff00"
	s.AddEffect(id, e)

	out := New(30, 30).Render(s)
	// Just outside the square's left edge.
	if _, g, _, a := out.Pixel(8, 15); g != 255 || a == 0 {
		t.Errorf("stroke not drawn outside: g=%d a=%d", g, a)
	}
	// Content interior untouched.
	if r, g, _, _ := out.Pixel(15, 15); r != 255 || g != 0 {
		t.Errorf("interior changed: r=%d g=%d", r, g)
	}
}

func TestGradientOverlayAtopContent(t *testing.T) {
	s := layer.NewStore()
	id := redSquare(s, 0, 0)
	e := effect.New(effect.GradientOverlay)
	e.Settings.Colors = []string{"#0000ff", "#0000ff"}
	e.Settings.Opacity = 100
	e.Settings.BlendMode = "normal"
	s.AddEffect(id, e)

	out := New(20, 20).Render(s)
	if r, _, b, _ := out.Pixel(5, 5); b != 255 || r != 0 {
		t.Errorf("overlay should cover content: r=%d b=%d", r, b)
	}
	// Overlay is masked by content alpha.
	if _, _, _, a := out.Pixel(15, 15); a != 0 {
		t.Error("overlay must not leak outside the content")
	}
}

func TestDisabledEffectIgnored(t *testing.T) {
	s := layer.NewStore()
	id := redSquare(s, 10, 10)
	e := effect.New(effect.DropShadow)
	e.Enabled = false
	s.AddEffect(id, e)

	out := New(30, 30).Render(s)
	if _, _, _, a := out.Pixel(7, 18); a != 0 {
		t.Error("disabled effect must not render")
	}
}

func TestTextLayerRenders(t *testing.T) {
	s := layer.NewStore()
	s.AddLayer(
		layer.WithType(layer.TypeText),
		layer.WithPosition(0, 0),
		layer.WithSize(120, 40),
		layer.WithData(layer.Data{Text: "Hello", FontSize: 24, Color: "#ff0000", TextAlign: layer.AlignLeft}),
	)

	out := New(120, 40).Render(s)
	var inked int
	for y := 0; y < 40; y++ {
		for x := 0; x < 120; x++ {
			if r, _, _, a := out.Pixel(x, y); a > 0 && r > 128 {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Error("text layer produced no glyph pixels")
	}

	// Empty text renders nothing.
	s2 := layer.NewStore()
	s2.AddLayer(
		layer.WithType(layer.TypeText),
		layer.WithSize(50, 20),
		layer.WithData(layer.Data{Text: "", FontSize: 24, Color: "#ff0000"}),
	)
	if _, _, _, a := New(50, 20).Render(s2).Pixel(25, 10); a != 0 {
		t.Error("empty text should render transparent")
	}
}

// countingSurface wraps the software backend and counts the calls reaching
// it, so tests can verify rendering goes through the configured backend.
type countingSurface struct {
	raster.SoftwareSurface
	buffers int
	planes  int
	reads   int
	blurs   int
}

func (s *countingSurface) NewBuffer(w, h int) *raster.Pixmap {
	s.buffers++
	return s.SoftwareSurface.NewBuffer(w, h)
}

func (s *countingSurface) NewPlane(w, h int) *raster.Alpha {
	s.planes++
	return s.SoftwareSurface.NewPlane(w, h)
}

func (s *countingSurface) ReadPixels(p *raster.Pixmap) []uint8 {
	s.reads++
	return s.SoftwareSurface.ReadPixels(p)
}

func (s *countingSurface) BlurPlane(a *raster.Alpha, radius float64) {
	s.blurs++
	s.SoftwareSurface.BlurPlane(a, radius)
}

func TestRenderUsesSurface(t *testing.T) {
	scene := func() *layer.Store {
		s := layer.NewStore()
		id := redSquare(s, 5, 5)
		s.AddEffect(id, effect.New(effect.DropShadow))
		return s
	}

	srf := &countingSurface{}
	out := New(30, 30, WithSurface(srf)).Render(scene())

	// Canvas, shape content, transform placement, and the shadow underlay
	// all allocate on the backend.
	if srf.buffers < 4 {
		t.Errorf("buffers = %d, want >= 4", srf.buffers)
	}
	if srf.planes == 0 {
		t.Error("coverage planes must come from the backend")
	}
	if srf.reads == 0 {
		t.Error("pixel reads must go through the backend")
	}
	// The default drop shadow carries a 5px blur.
	if srf.blurs == 0 {
		t.Error("shadow blur must go through the backend")
	}

	// A wrapped backend changes accounting, not pixels.
	want := New(30, 30).Render(scene())
	if !bytes.Equal(out.Data(), want.Data()) {
		t.Error("surface-wrapped render differs from software render")
	}
}
