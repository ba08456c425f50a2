package effect

import (
	"reflect"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	tests := []struct {
		typ  Type
		want Settings
	}{
		{DropShadow, Settings{Color: "#000000", Opacity: 75, Angle: 135, Distance: 5, Spread: 0, Blur: 5}},
		{InnerShadow, Settings{Color: "#000000", Opacity: 75, Angle: 135, Distance: 5, Choke: 0, Blur: 5}},
		{Glow, Settings{Color: "#ffffff", Opacity: 75, Spread: 0, Blur: 5, Direction: GlowOuter}},
		{Stroke, Settings{Color: "#000000", Opacity: 100, Width: 1, Position: StrokeOutside}},
		{GradientOverlay, Settings{Colors: []string{"#000000", "#ffffff"}, Angle: 90, Opacity: 100, BlendMode: "normal"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			got := DefaultSettings(tt.typ)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DefaultSettings(%s) = %+v, want %+v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	e := New(DropShadow)
	if e.ID == "" {
		t.Error("ID not assigned")
	}
	if !e.Enabled {
		t.Error("new effects start enabled")
	}
	if !reflect.DeepEqual(e.Settings, DefaultSettings(DropShadow)) {
		t.Errorf("settings = %+v", e.Settings)
	}

	if New(Glow).ID == e.ID {
		t.Error("ids must be unique")
	}
}

func TestCloneIndependentColors(t *testing.T) {
	e := New(GradientOverlay)
	c := e.Clone()
	c.Settings.Colors[0] = "#ff0000"
	if e.Settings.Colors[0] != "#000000" {
		t.Error("Clone shares the Colors slice with the source")
	}
}
