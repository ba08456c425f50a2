package blend

import (
	"math"
	"testing"
)

// near reports whether two bytes are within tolerance of each other.
// Blending quantizes through float math, so exact equality is too strict.
func near(a, b uint8, tol int) bool {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d <= tol
}

func TestModeFromName(t *testing.T) {
	tests := []struct {
		name string
		want Mode
	}{
		{"normal", Normal},
		{"multiply", Multiply},
		{"soft-light", SoftLight},
		{"color-dodge", ColorDodge},
		{"luminosity", Luminosity},
		{"bogus", Normal},
		{"", Normal},
	}
	for _, tt := range tests {
		if got := ModeFromName(tt.name); got != tt.want {
			t.Errorf("ModeFromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPixelTransparentOperands(t *testing.T) {
	// Transparent source leaves the backdrop untouched.
	r, g, b, a := Pixel(Multiply, 10, 20, 30, 0, 100, 110, 120, 200)
	if r != 100 || g != 110 || b != 120 || a != 200 {
		t.Errorf("transparent source: got %d,%d,%d,%d", r, g, b, a)
	}
	// Transparent backdrop yields the source.
	r, g, b, a = Pixel(Screen, 10, 20, 30, 128, 0, 0, 0, 0)
	if r != 10 || g != 20 || b != 30 || a != 128 {
		t.Errorf("transparent backdrop: got %d,%d,%d,%d", r, g, b, a)
	}
}

func TestPixelNormalOpaque(t *testing.T) {
	// Opaque source over anything is the source.
	r, g, b, a := Pixel(Normal, 40, 50, 60, 255, 200, 200, 200, 255)
	if r != 40 || g != 50 || b != 60 || a != 255 {
		t.Errorf("got %d,%d,%d,%d", r, g, b, a)
	}
}

func TestPixelNormalHalfAlpha(t *testing.T) {
	// 50% white over opaque black = mid gray.
	r, g, b, a := Pixel(Normal, 255, 255, 255, 128, 0, 0, 0, 255)
	if !near(r, 128, 1) || !near(g, 128, 1) || !near(b, 128, 1) || a != 255 {
		t.Errorf("got %d,%d,%d,%d", r, g, b, a)
	}
}

func TestSeparableModesOpaque(t *testing.T) {
	// With both operands opaque, the result is B(Cb, Cs) directly.
	tests := []struct {
		mode    Mode
		src, dst uint8 // gray levels
		want    uint8
	}{
		{Multiply, 128, 128, 64},
		{Multiply, 255, 77, 77},    // multiply by white is identity
		{Screen, 0, 77, 77},        // screen with black is identity
		{Screen, 128, 128, 191},    // 1 - 0.5*0.5
		{Darken, 100, 200, 100},
		{Lighten, 100, 200, 200},
		{Difference, 200, 50, 150},
		{Exclusion, 255, 255, 0},
		{ColorDodge, 0, 90, 90},     // dodge by black is identity
		{ColorBurn, 255, 90, 90},    // burn by white is identity
		{HardLight, 255, 10, 255},   // hard light with white source screens to white
		{Overlay, 10, 255, 255},     // overlay keeps a white backdrop white
	}
	for _, tt := range tests {
		r, g, b, a := Pixel(tt.mode, tt.src, tt.src, tt.src, 255, tt.dst, tt.dst, tt.dst, 255)
		if !near(r, tt.want, 1) || g != r || b != r || a != 255 {
			t.Errorf("mode %v src %d dst %d: got %d,%d,%d,%d want %d",
				tt.mode, tt.src, tt.dst, r, g, b, a, tt.want)
		}
	}
}

func TestSoftLightNeutral(t *testing.T) {
	// Mid-gray source leaves the backdrop unchanged.
	for _, d := range []uint8{0, 30, 128, 200, 255} {
		r, _, _, _ := Pixel(SoftLight, 128, 128, 128, 255, d, d, d, 255)
		if !near(r, d, 2) {
			t.Errorf("soft light neutral: dst %d got %d", d, r)
		}
	}
}

func TestLuminosityPreservesSourceLum(t *testing.T) {
	// Opaque luminosity blend keeps the source's BT.601 luminance.
	sr, sg, sb := uint8(200), uint8(40), uint8(90)
	r, g, b, _ := Pixel(Luminosity, sr, sg, sb, 255, 30, 180, 60, 255)

	srcLum := lum([3]float64{float64(sr) / 255, float64(sg) / 255, float64(sb) / 255})
	outLum := lum([3]float64{float64(r) / 255, float64(g) / 255, float64(b) / 255})
	if math.Abs(srcLum-outLum) > 0.02 {
		t.Errorf("luminance %f -> %f", srcLum, outLum)
	}
}

func TestColorPreservesBackdropLum(t *testing.T) {
	dr, dg, db := uint8(30), uint8(180), uint8(60)
	r, g, b, _ := Pixel(Color, 200, 40, 90, 255, dr, dg, db, 255)

	dstLum := lum([3]float64{float64(dr) / 255, float64(dg) / 255, float64(db) / 255})
	outLum := lum([3]float64{float64(r) / 255, float64(g) / 255, float64(b) / 255})
	if math.Abs(dstLum-outLum) > 0.02 {
		t.Errorf("luminance %f -> %f", dstLum, outLum)
	}
}

func TestHueGrayscaleSource(t *testing.T) {
	// A gray source has no hue; the result collapses to the backdrop's
	// luminance as gray.
	r, g, b, _ := Pixel(Hue, 128, 128, 128, 255, 30, 180, 60, 255)
	if r != g || g != b {
		t.Errorf("expected gray, got %d,%d,%d", r, g, b)
	}
}

func TestSetSatOrdering(t *testing.T) {
	c := setSat([3]float64{0.8, 0.2, 0.5}, 0.3)
	if !(c[1] <= c[2] && c[2] <= c[0]) {
		t.Errorf("component ordering not preserved: %v", c)
	}
	if math.Abs((max3(c)-min3(c))-0.3) > 1e-9 {
		t.Errorf("saturation = %f, want 0.3", max3(c)-min3(c))
	}
}

func TestClipColorRange(t *testing.T) {
	c := clipColor([3]float64{1.4, 0.5, -0.2})
	for i, v := range c {
		if v < 0 || v > 1 {
			t.Errorf("component %d out of range: %f", i, v)
		}
	}
}
