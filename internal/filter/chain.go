package filter

import (
	"strconv"
	"strings"

	"github.com/gogpu/studio/raster"
)

// ApplyChain applies a CSS-style filter chain to p in order. Each entry has
// the form name(value), e.g. "brightness(110%)", "saturate(1.2)",
// "hue-rotate(90deg)", "blur(2px)". Unknown names and malformed values are
// skipped.
func ApplyChain(p *raster.Pixmap, filters []string) {
	for _, f := range filters {
		name, arg, ok := splitFunc(f)
		if !ok {
			continue
		}
		switch name {
		case "brightness":
			m := Brightness(parseFactor(arg, 1))
			m.Apply(p)
		case "contrast":
			m := Contrast(parseFactor(arg, 1))
			m.Apply(p)
		case "saturate":
			m := Saturate(parseFactor(arg, 1))
			m.Apply(p)
		case "grayscale":
			if parseFactor(arg, 0) > 0 {
				m := Grayscale()
				m.Apply(p)
			}
		case "sepia":
			if parseFactor(arg, 0) > 0 {
				m := Sepia()
				m.Apply(p)
			}
		case "invert":
			if parseFactor(arg, 0) > 0 {
				m := Invert()
				m.Apply(p)
			}
		case "hue-rotate":
			m := HueRotate(parseNumber(strings.TrimSuffix(arg, "deg"), 0))
			m.Apply(p)
		case "opacity":
			m := Opacity(parseFactor(arg, 1))
			m.Apply(p)
		case "blur":
			r := parseNumber(strings.TrimSuffix(arg, "px"), 0)
			if r > 0 {
				p.Blur(r)
			}
		}
	}
}

// splitFunc breaks "name(arg)" into its parts.
func splitFunc(s string) (name, arg string, ok bool) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return "", "", false
	}
	name = strings.ToLower(strings.TrimSpace(s[:open]))
	arg = strings.TrimSpace(s[open+1 : len(s)-1])
	return name, arg, true
}

// parseFactor reads a factor that may be a percentage ("110%") or a plain
// number ("1.1").
func parseFactor(s string, fallback float64) float64 {
	if strings.HasSuffix(s, "%") {
		return parseNumber(strings.TrimSuffix(s, "%"), fallback*100) / 100
	}
	return parseNumber(s, fallback)
}

func parseNumber(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fallback
	}
	return v
}
