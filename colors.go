package studio

import (
	"fmt"
	"image"
	"time"

	"github.com/gogpu/studio/colormath"
)

// maxColorHistory caps the recent-color ring.
const maxColorHistory = 20

// defaultColor is the session's starting color.
const defaultColor = "#3B82F6"

// PickerFunc samples a color from the host environment, returning its hex
// value. A session without one degrades gracefully: picking warns and no-ops.
type PickerFunc func() (string, error)

// Colors is the session color state: the current color, a deduplicated
// recent-color ring, and the palette and gradient collections.
// Not safe for concurrent use; it belongs to the session event loop.
type Colors struct {
	current colormath.Value
	history []colormath.Value
	harmony *colormath.Harmony

	palettes  []colormath.Palette
	gradients []*colormath.Gradient

	paletteSeq  int
	gradientSeq int

	picker PickerFunc
}

// NewColors returns color state with the default blue selected.
func NewColors() *Colors {
	return &Colors{current: colormath.New(defaultColor, 1)}
}

// Current returns the active color.
func (c *Colors) Current() colormath.Value { return c.current }

// SetColor makes v the active color and records it in the history ring.
// A hex already present moves to the front instead of duplicating.
func (c *Colors) SetColor(v colormath.Value) {
	c.current = v

	kept := c.history[:0]
	for _, h := range c.history {
		if h.Hex != v.Hex {
			kept = append(kept, h)
		}
	}
	c.history = append([]colormath.Value{v}, kept...)
	if len(c.history) > maxColorHistory {
		c.history = c.history[:maxColorHistory]
	}
}

// SetHex selects a color by hex string, preserving the current alpha.
func (c *Colors) SetHex(hex string) {
	c.SetColor(colormath.New(hex, c.current.Alpha))
}

// SetRGB selects a color by components, preserving the current alpha.
func (c *Colors) SetRGB(r, g, b int) {
	c.SetHex(colormath.RGBToHex(r, g, b))
}

// SetHSL selects a color by hue/saturation/lightness, preserving alpha.
func (c *Colors) SetHSL(h, s, l float64) {
	c.SetHex(colormath.HSLToHex(h, s, l))
}

// SetAlpha changes only the alpha of the current color.
func (c *Colors) SetAlpha(alpha float64) {
	v := c.current
	v.Alpha = alpha
	c.SetColor(v)
}

// History returns the recent colors, most recent first.
func (c *Colors) History() []colormath.Value {
	out := make([]colormath.Value, len(c.history))
	copy(out, c.history)
	return out
}

// ClearHistory empties the recent-color ring.
func (c *Colors) ClearHistory() { c.history = nil }

// GenerateHarmony derives a harmony from base, or from the current color
// when base is nil, and remembers it as the active harmony.
func (c *Colors) GenerateHarmony(t colormath.HarmonyType, base *colormath.Value) colormath.Harmony {
	b := c.current
	if base != nil {
		b = *base
	}
	h := colormath.GenerateHarmony(b, t)
	c.harmony = &h
	return h
}

// CurrentHarmony returns the last generated harmony, or nil.
func (c *Colors) CurrentHarmony() *colormath.Harmony { return c.harmony }

// CreatePalette stores a new named palette and returns it.
func (c *Colors) CreatePalette(name string, colors []colormath.Value, t colormath.PaletteType) colormath.Palette {
	c.paletteSeq++
	p := colormath.Palette{
		ID:        fmt.Sprintf("palette_%d", c.paletteSeq),
		Name:      name,
		Colors:    colors,
		Type:      t,
		CreatedAt: time.Now(),
		Tags:      []string{},
	}
	c.palettes = append(c.palettes, p)
	return p
}

// DeletePalette removes a palette; an unknown id is a no-op.
func (c *Colors) DeletePalette(id string) {
	for i, p := range c.palettes {
		if p.ID == id {
			c.palettes = append(c.palettes[:i], c.palettes[i+1:]...)
			return
		}
	}
}

// AddToPalette appends a color to the palette with the given id.
func (c *Colors) AddToPalette(id string, v colormath.Value) {
	for i := range c.palettes {
		if c.palettes[i].ID == id {
			c.palettes[i].Colors = append(c.palettes[i].Colors, v)
			return
		}
	}
}

// RemoveFromPalette deletes the color at index; out-of-range is a no-op.
func (c *Colors) RemoveFromPalette(id string, index int) {
	for i := range c.palettes {
		if c.palettes[i].ID != id {
			continue
		}
		cs := c.palettes[i].Colors
		if index < 0 || index >= len(cs) {
			return
		}
		c.palettes[i].Colors = append(cs[:index], cs[index+1:]...)
		return
	}
}

// Palettes returns the stored palettes in creation order.
func (c *Colors) Palettes() []colormath.Palette {
	out := make([]colormath.Palette, len(c.palettes))
	copy(out, c.palettes)
	return out
}

// Palette returns a stored palette by id, or nil.
func (c *Colors) Palette(id string) *colormath.Palette {
	for i := range c.palettes {
		if c.palettes[i].ID == id {
			return &c.palettes[i]
		}
	}
	return nil
}

// ExtractPalette quantizes the image's dominant colors into a new palette
// named "Extracted from image".
func (c *Colors) ExtractPalette(img image.Image, maxColors int) colormath.Palette {
	colors := colormath.ExtractColors(img, maxColors)
	return c.CreatePalette("Extracted from image", colors, colormath.PaletteExtracted)
}

// CreateGradient stores a new gradient with the geometry defaults for its
// type: linear gradients start at angle 0, radial and conic ones center at
// (0.5, 0.5), and radial ones get radius 0.5.
func (c *Colors) CreateGradient(name string, t colormath.GradientType, stops []colormath.GradientStop) *colormath.Gradient {
	c.gradientSeq++
	g := &colormath.Gradient{
		ID:    fmt.Sprintf("gradient_%d", c.gradientSeq),
		Name:  name,
		Type:  t,
		Stops: stops,
	}
	if t != colormath.GradientLinear {
		g.Center = colormath.Point{X: 0.5, Y: 0.5}
	}
	if t == colormath.GradientRadial {
		g.Radius = 0.5
	}
	c.gradients = append(c.gradients, g)
	return g
}

// Gradient returns a stored gradient by id, or nil. The pointer is live:
// callers edit stops and geometry in place.
func (c *Colors) Gradient(id string) *colormath.Gradient {
	for _, g := range c.gradients {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// DeleteGradient removes a gradient; an unknown id is a no-op.
func (c *Colors) DeleteGradient(id string) {
	for i, g := range c.gradients {
		if g.ID == id {
			c.gradients = append(c.gradients[:i], c.gradients[i+1:]...)
			return
		}
	}
}

// Gradients returns the stored gradients in creation order.
func (c *Colors) Gradients() []*colormath.Gradient {
	out := make([]*colormath.Gradient, len(c.gradients))
	copy(out, c.gradients)
	return out
}

// SetPicker installs the host's color sampler.
func (c *Colors) SetPicker(p PickerFunc) { c.picker = p }

// Pick samples a color from the host and selects it. It reports whether a
// color was picked; a missing or failing sampler warns and leaves the
// current color alone.
func (c *Colors) Pick() bool {
	if c.picker == nil {
		Logger().Warn("color picker not supported in this environment")
		return false
	}
	hex, err := c.picker()
	if err != nil {
		Logger().Warn("color pick failed", "error", err)
		return false
	}
	c.SetHex(hex)
	return true
}
