package studio

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/studio/colormath"
)

func TestColorsDefault(t *testing.T) {
	c := NewColors()
	if got := c.Current().Hex; got != "#3B82F6" {
		t.Errorf("default color = %q, want #3B82F6", got)
	}
	if len(c.History()) != 0 {
		t.Error("history should start empty")
	}
}

func TestColorHistoryDedupAndCap(t *testing.T) {
	c := NewColors()
	c.SetHex("#ff0000")
	c.SetHex("#00ff00")
	c.SetHex("#ff0000") // moves to front, no duplicate
	h := c.History()
	if len(h) != 2 {
		t.Fatalf("history length = %d, want 2", len(h))
	}
	if h[0].Hex != "#ff0000" || h[1].Hex != "#00ff00" {
		t.Errorf("history order = %q, %q", h[0].Hex, h[1].Hex)
	}

	for i := 0; i < 30; i++ {
		c.SetRGB(i, 0, 0)
	}
	if len(c.History()) != maxColorHistory {
		t.Errorf("history length = %d, want %d", len(c.History()), maxColorHistory)
	}

	c.ClearHistory()
	if len(c.History()) != 0 {
		t.Error("ClearHistory left entries")
	}
}

func TestSetAlphaPreservesHex(t *testing.T) {
	c := NewColors()
	c.SetHex("#112233")
	c.SetAlpha(0.5)
	cur := c.Current()
	if cur.Hex != "#112233" || cur.Alpha != 0.5 {
		t.Errorf("current = %q alpha %g", cur.Hex, cur.Alpha)
	}
	c.SetHex("#445566")
	if c.Current().Alpha != 0.5 {
		t.Error("SetHex should preserve alpha")
	}
}

func TestGenerateHarmonyDefaultsToCurrent(t *testing.T) {
	c := NewColors()
	c.SetHex("#ff0000")
	h := c.GenerateHarmony(colormath.Complementary, nil)
	if h.Base.Hex != "#ff0000" {
		t.Errorf("harmony base = %q", h.Base.Hex)
	}
	if c.CurrentHarmony() == nil || c.CurrentHarmony().Type != colormath.Complementary {
		t.Error("harmony should be remembered")
	}
}

func TestPaletteLifecycle(t *testing.T) {
	c := NewColors()
	p := c.CreatePalette("Brand", []colormath.Value{colormath.New("#ff0000", 1)}, colormath.PaletteCustom)
	if p.ID != "palette_1" {
		t.Errorf("palette id = %q, want palette_1", p.ID)
	}

	c.AddToPalette(p.ID, colormath.New("#00ff00", 1))
	if got := c.Palette(p.ID); len(got.Colors) != 2 {
		t.Fatalf("palette colors = %d, want 2", len(got.Colors))
	}

	c.RemoveFromPalette(p.ID, 0)
	if got := c.Palette(p.ID); len(got.Colors) != 1 || got.Colors[0].Hex != "#00ff00" {
		t.Errorf("remove by index kept %v", got.Colors)
	}
	c.RemoveFromPalette(p.ID, 99) // out of range: no-op
	if len(c.Palette(p.ID).Colors) != 1 {
		t.Error("out-of-range removal changed the palette")
	}

	c.DeletePalette(p.ID)
	if c.Palette(p.ID) != nil {
		t.Error("palette should be gone")
	}
	c.DeletePalette("missing") // no-op
}

func TestExtractPalette(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	c := NewColors()
	p := c.ExtractPalette(img, 4)
	if p.Name != "Extracted from image" {
		t.Errorf("name = %q", p.Name)
	}
	if p.Type != colormath.PaletteExtracted {
		t.Errorf("type = %q", p.Type)
	}
	if len(p.Colors) == 0 {
		t.Error("extraction found no colors")
	}
}

func TestGradientLifecycle(t *testing.T) {
	c := NewColors()
	stops := []colormath.GradientStop{
		{Position: 0, Color: "#000000", Opacity: 100},
		{Position: 1, Color: "#ffffff", Opacity: 100},
	}
	lin := c.CreateGradient("Fade", colormath.GradientLinear, stops)
	if lin.ID != "gradient_1" || lin.Angle != 0 || lin.Center != (colormath.Point{}) {
		t.Errorf("linear defaults wrong: %+v", lin)
	}

	rad := c.CreateGradient("Spot", colormath.GradientRadial, stops)
	if rad.Center.X != 0.5 || rad.Center.Y != 0.5 || rad.Radius != 0.5 {
		t.Errorf("radial defaults wrong: %+v", rad)
	}

	// Gradients are edited through the live pointer.
	c.Gradient(lin.ID).Angle = 45
	if c.Gradient(lin.ID).Angle != 45 {
		t.Error("gradient edit did not stick")
	}

	c.DeleteGradient(lin.ID)
	if c.Gradient(lin.ID) != nil || len(c.Gradients()) != 1 {
		t.Error("delete left the gradient behind")
	}
}

func TestPickDegradesWithoutPicker(t *testing.T) {
	c := NewColors()
	c.SetHex("#123456")
	if c.Pick() {
		t.Error("Pick without a sampler should report false")
	}
	if c.Current().Hex != "#123456" {
		t.Error("failed pick must not change the color")
	}

	c.SetPicker(func() (string, error) { return "", errors.New("denied") })
	if c.Pick() {
		t.Error("failing sampler should report false")
	}

	c.SetPicker(func() (string, error) { return "#abcdef", nil })
	if !c.Pick() {
		t.Error("sampler should succeed")
	}
	if c.Current().Hex != "#abcdef" {
		t.Errorf("picked color = %q", c.Current().Hex)
	}
}
