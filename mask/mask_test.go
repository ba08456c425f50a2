package mask

import (
	"testing"

	"github.com/gogpu/studio/colormath"
	"github.com/gogpu/studio/raster"
)

func TestSourceIDsUnique(t *testing.T) {
	s := NewSource()
	a := s.NewAlphaMask(4, 4)
	b := s.NewClippingMask()
	if a.ID == b.ID {
		t.Errorf("ids collide: %s", a.ID)
	}

	// Independent sources restart their counters without sharing state.
	s2 := NewSource()
	if c := s2.NewAlphaMask(4, 4); c.ID != a.ID {
		t.Errorf("fresh source first id = %s, want %s", c.ID, a.ID)
	}
}

func TestNewAlphaMaskWhiteFilled(t *testing.T) {
	s := NewSource()
	m := s.NewAlphaMask(8, 8)

	d, ok := m.Data.(AlphaData)
	if !ok {
		t.Fatalf("payload = %T, want AlphaData", m.Data)
	}
	if d.Buffer.At(3, 3) != 255 {
		t.Error("fresh alpha mask must be fully opaque")
	}
	if !m.Enabled || m.Inverted || m.Opacity != 100 || m.Feather != 0 {
		t.Errorf("defaults wrong: %+v", m)
	}
	if m.BlendMode != BlendNormal {
		t.Errorf("blend mode = %s", m.BlendMode)
	}
}

func TestClippingMaskHasNoGeometry(t *testing.T) {
	s := NewSource()
	m := s.NewClippingMask()
	if _, ok := m.Data.(ClippingData); !ok {
		t.Fatalf("payload = %T, want ClippingData", m.Data)
	}
	if m.Rasterize(8, 8) != nil {
		t.Error("clipping masks must not rasterize to a plane")
	}
}

func TestGradientMaskDefaultStops(t *testing.T) {
	s := NewSource()
	m := s.NewGradientMask(colormath.GradientLinear, nil)
	d := m.Data.(GradientData)
	if len(d.Gradient.Stops) != 2 {
		t.Fatalf("stops = %d, want 2", len(d.Gradient.Stops))
	}
	if d.Gradient.Stops[0].Color != "#000000" || d.Gradient.Stops[1].Color != "#ffffff" {
		t.Error("default stops must be black to white")
	}
}

func TestDuplicate(t *testing.T) {
	s := NewSource()
	m := s.NewAlphaMask(4, 4)
	m.Paint(2, 2, raster.Brush{Size: 2, Hardness: 100, Opacity: 100}, true)

	c := s.Duplicate(m)
	if c.ID == m.ID {
		t.Error("duplicate must get a new id")
	}
	if c.Name != "Alpha Mask copy" {
		t.Errorf("name = %q", c.Name)
	}

	// Deep copy: painting the duplicate leaves the source untouched.
	c.Paint(0, 0, raster.Brush{Size: 8, Hardness: 100, Opacity: 100}, true)
	src := m.Data.(AlphaData).Buffer
	if src.At(0, 0) != 255 {
		t.Error("duplicate shares the source buffer")
	}
}

func TestApplyClampsOpacityAndFeather(t *testing.T) {
	s := NewSource()
	m := s.NewAlphaMask(2, 2)

	over := 150
	neg := -3.0
	m.Apply(Update{Opacity: &over, Feather: &neg})
	if m.Opacity != 100 {
		t.Errorf("opacity = %d, want 100", m.Opacity)
	}
	if m.Feather != 0 {
		t.Errorf("feather = %v, want 0", m.Feather)
	}

	under := -10
	m.Apply(Update{Opacity: &under})
	if m.Opacity != 0 {
		t.Errorf("opacity = %d, want 0", m.Opacity)
	}
}

func TestPaintNonAlphaNoOp(t *testing.T) {
	s := NewSource()
	m := s.NewClippingMask()
	// Must not panic or mutate anything.
	m.Paint(1, 1, raster.Brush{Size: 4, Hardness: 100, Opacity: 100}, false)
}

// countingSurface wraps the software backend and counts the calls reaching
// it, so tests can verify masks go through their source's backend.
type countingSurface struct {
	raster.SoftwareSurface
	planes int
	blurs  int
	stamps int
}

func (s *countingSurface) NewPlane(w, h int) *raster.Alpha {
	s.planes++
	return s.SoftwareSurface.NewPlane(w, h)
}

func (s *countingSurface) BlurPlane(a *raster.Alpha, radius float64) {
	s.blurs++
	s.SoftwareSurface.BlurPlane(a, radius)
}

func (s *countingSurface) Stamp(a *raster.Alpha, cx, cy float64, b raster.Brush, erase bool) {
	s.stamps++
	s.SoftwareSurface.Stamp(a, cx, cy, b, erase)
}

func TestMasksUseSourceBackend(t *testing.T) {
	srf := &countingSurface{}
	s := NewSourceOn(srf)

	m := s.NewAlphaMask(8, 8)
	if srf.planes != 1 {
		t.Fatalf("planes after create = %d, want 1", srf.planes)
	}

	m.Paint(4, 4, raster.Brush{Size: 4, Hardness: 100, Opacity: 100}, true)
	if srf.stamps != 1 {
		t.Errorf("stamps = %d, want 1", srf.stamps)
	}

	f := 2.0
	m.Apply(Update{Feather: &f})
	if m.Rasterize(8, 8) == nil {
		t.Fatal("alpha mask must rasterize")
	}
	if srf.planes != 2 {
		t.Errorf("planes after rasterize = %d, want 2", srf.planes)
	}
	if srf.blurs != 1 {
		t.Errorf("feather blurs = %d, want 1", srf.blurs)
	}

	// Duplicates stay on the same backend.
	c := s.Duplicate(m)
	c.Paint(0, 0, raster.Brush{Size: 2, Hardness: 100, Opacity: 100}, false)
	if srf.stamps != 2 {
		t.Errorf("stamps after duplicate paint = %d, want 2", srf.stamps)
	}
}

func TestNewSourceOnNilFallsBack(t *testing.T) {
	s := NewSourceOn(nil)
	m := s.NewAlphaMask(4, 4)
	if m.Rasterize(4, 4) == nil {
		t.Error("nil backend must fall back to software")
	}
}
