package colormath

import (
	"image"
	"sort"
)

// ExtractColors finds the dominant colors of an image by frequency.
//
// It samples every 4th pixel, skips pixels with alpha below 50%, and counts
// exact hex occurrences, returning the top maxColors as full Values in
// descending frequency order. This is a coarse quantizer, not a perceptual
// clustering pass: it trades accuracy on smooth gradients for speed and
// determinism, which is what the palette-extraction tool needs.
func ExtractColors(img image.Image, maxColors int) []Value {
	if img == nil || maxColors <= 0 {
		return nil
	}

	counts := make(map[string]int)
	bounds := img.Bounds()
	idx := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if idx%4 != 0 {
				idx++
				continue
			}
			idx++
			r, g, b, a := img.At(x, y).RGBA()
			if a>>8 <= 128 {
				continue
			}
			hex := RGBToHex(int(r>>8), int(g>>8), int(b>>8))
			counts[hex]++
		}
	}

	type entry struct {
		hex   string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for hex, n := range counts {
		entries = append(entries, entry{hex, n})
	}
	// Ties break on hex so extraction is deterministic across runs.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].hex < entries[j].hex
	})

	if len(entries) > maxColors {
		entries = entries[:maxColors]
	}
	out := make([]Value, len(entries))
	for i, e := range entries {
		out[i] = New(e.hex, 1)
	}
	return out
}
