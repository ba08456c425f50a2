// Package effect defines the non-destructive per-layer effect stack:
// drop shadow, inner shadow, glow, stroke, and gradient overlay, each with
// a fixed default parameter set. Effects are data; the compositor renders
// them, shadows and glows behind the layer's own content and strokes and
// overlays atop it.
package effect

import "github.com/google/uuid"

// Type identifies an effect variant.
type Type string

// Effect variants.
const (
	DropShadow      Type = "drop-shadow"
	InnerShadow     Type = "inner-shadow"
	Glow            Type = "glow"
	Stroke          Type = "stroke"
	GradientOverlay Type = "gradient-overlay"
)

// GlowDirection selects inner or outer glow.
type GlowDirection string

// Glow directions.
const (
	GlowOuter GlowDirection = "outer"
	GlowInner GlowDirection = "inner"
)

// StrokePosition selects where a stroke sits relative to the layer edge.
type StrokePosition string

// Stroke positions.
const (
	StrokeOutside StrokePosition = "outside"
	StrokeInside  StrokePosition = "inside"
	StrokeCenter  StrokePosition = "center"
)

// Settings carries the parameters of one effect. Which fields apply depends
// on the effect type; DefaultSettings always initializes every field the
// type uses, so settings are never partially populated.
type Settings struct {
	Color    string  // shadow/glow/stroke color, hex
	Opacity  int     // [0, 100]
	Angle    float64 // light angle in degrees (shadows, gradient overlay)
	Distance float64 // shadow offset in pixels
	Spread   float64 // shadow/glow expansion in pixels
	Choke    float64 // inner-shadow contraction in pixels
	Blur     float64 // blur radius in pixels

	Width    float64        // stroke width in pixels
	Position StrokePosition // stroke placement

	Direction GlowDirection // glow direction

	Colors    []string // gradient overlay stops, hex
	BlendMode string   // gradient overlay blend mode
}

// Effect is one entry in a layer's effect stack.
type Effect struct {
	ID       string
	Type     Type
	Enabled  bool
	Settings Settings
}

// New creates an enabled effect of the given type with its full default
// settings.
func New(t Type) Effect {
	return Effect{
		ID:       uuid.NewString(),
		Type:     t,
		Enabled:  true,
		Settings: DefaultSettings(t),
	}
}

// DefaultSettings returns the default parameter set for an effect type.
// The values must stay in behavioral parity with the studio's preset table;
// changing them changes every newly created effect.
func DefaultSettings(t Type) Settings {
	switch t {
	case DropShadow:
		return Settings{
			Color:    "#000000",
			Opacity:  75,
			Angle:    135,
			Distance: 5,
			Spread:   0,
			Blur:     5,
		}
	case InnerShadow:
		return Settings{
			Color:    "#000000",
			Opacity:  75,
			Angle:    135,
			Distance: 5,
			Choke:    0,
			Blur:     5,
		}
	case Glow:
		return Settings{
			Color:     "#ffffff",
			Opacity:   75,
			Spread:    0,
			Blur:      5,
			Direction: GlowOuter,
		}
	case Stroke:
		return Settings{
			Color:    "#000000",
			Opacity:  100,
			Width:    1,
			Position: StrokeOutside,
		}
	case GradientOverlay:
		return Settings{
			Colors:    []string{"#000000", "#ffffff"},
			Angle:     90,
			Opacity:   100,
			BlendMode: "normal",
		}
	}
	return Settings{}
}

// Clone returns a deep copy of the effect.
func (e Effect) Clone() Effect {
	c := e
	if e.Settings.Colors != nil {
		c.Settings.Colors = append([]string(nil), e.Settings.Colors...)
	}
	return c
}
