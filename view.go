package studio

import (
	"fmt"
	"strings"
)

// Zoom limits and step sizes, in percent.
const (
	minZoom       = 25
	maxZoom       = 500
	zoomStep      = 25
	zoomWheelStep = 10
	defaultZoom   = 100
)

// View is the presentation state of the canvas viewport: zoom, pan,
// rotation, and the global display adjustments. It never touches layer
// pixels; a frontend applies it while rendering the composited result.
type View struct {
	Zoom       int     // percent, [25, 500]
	PanX, PanY float64 // pixels
	Rotation   float64 // degrees

	Brightness int     // percent, 100 = neutral
	Contrast   int     // percent, 100 = neutral
	Saturation int     // percent, 100 = neutral
	Blur       float64 // pixels

	// Filters holds extra filter functions appended after the built-in
	// adjustments, e.g. "sepia(40%)".
	Filters []string
}

// NewView returns the neutral viewport.
func NewView() *View {
	return &View{
		Zoom:       defaultZoom,
		Brightness: 100,
		Contrast:   100,
		Saturation: 100,
	}
}

// Reset restores the neutral viewport.
func (v *View) Reset() { *v = *NewView() }

// ZoomIn steps the zoom up by 25, capped at 500.
func (v *View) ZoomIn() { v.Zoom = clampZoom(v.Zoom + zoomStep) }

// ZoomOut steps the zoom down by 25, floored at 25.
func (v *View) ZoomOut() { v.Zoom = clampZoom(v.Zoom - zoomStep) }

// ZoomWheel applies a scroll-wheel zoom: 10 up for a negative delta,
// 10 down for a positive one.
func (v *View) ZoomWheel(delta float64) {
	if delta > 0 {
		v.Zoom = clampZoom(v.Zoom - zoomWheelStep)
	} else if delta < 0 {
		v.Zoom = clampZoom(v.Zoom + zoomWheelStep)
	}
}

// ZoomReset restores zoom and pan, leaving adjustments alone.
func (v *View) ZoomReset() {
	v.Zoom = defaultZoom
	v.PanX, v.PanY = 0, 0
}

// Pan moves the viewport to an absolute offset.
func (v *View) Pan(x, y float64) {
	v.PanX, v.PanY = x, y
}

// FilterChain lists the viewport adjustments as filter functions, the
// built-ins first and then any extras, in application order.
func (v *View) FilterChain() []string {
	chain := []string{
		fmt.Sprintf("brightness(%d%%)", v.Brightness),
		fmt.Sprintf("contrast(%d%%)", v.Contrast),
		fmt.Sprintf("saturate(%d%%)", v.Saturation),
		fmt.Sprintf("blur(%spx)", trimFloat(v.Blur)),
	}
	return append(chain, v.Filters...)
}

// FilterString is FilterChain joined the way a style attribute expects.
func (v *View) FilterString() string {
	return strings.Join(v.FilterChain(), " ")
}

// TransformString describes the viewport placement as a transform list:
// translate, then scale, then rotate.
func (v *View) TransformString() string {
	return fmt.Sprintf("translate(%spx, %spx) scale(%s) rotate(%sdeg)",
		trimFloat(v.PanX), trimFloat(v.PanY),
		trimFloat(float64(v.Zoom)/100), trimFloat(v.Rotation))
}

func clampZoom(z int) int {
	if z < minZoom {
		return minZoom
	}
	if z > maxZoom {
		return maxZoom
	}
	return z
}

// trimFloat formats without trailing zeros, so 1.0 prints as "1".
func trimFloat(f float64) string {
	s := strings.TrimRight(fmt.Sprintf("%.4f", f), "0")
	return strings.TrimRight(s, ".")
}
