package raster

// Dilate grows the coverage of the plane: each pixel takes the maximum
// value within a square window of the given radius. A radius of zero or
// less is a no-op.
func (a *Alpha) Dilate(radius int) {
	a.morph(radius, true)
}

// Erode shrinks the coverage of the plane: each pixel takes the minimum
// value within a square window of the given radius.
func (a *Alpha) Erode(radius int) {
	a.morph(radius, false)
}

func (a *Alpha) morph(radius int, grow bool) {
	if radius <= 0 {
		return
	}
	src := append([]uint8(nil), a.data...)

	// Horizontal pass, then vertical, over the intermediate result. A
	// square window separates the same way a box blur does.
	tmp := make([]uint8, len(src))
	for y := 0; y < a.height; y++ {
		row := y * a.width
		for x := 0; x < a.width; x++ {
			v := src[row+x]
			for dx := -radius; dx <= radius; dx++ {
				nx := x + dx
				if nx < 0 || nx >= a.width {
					continue
				}
				s := src[row+nx]
				if grow == (s > v) {
					v = s
				}
			}
			tmp[row+x] = v
		}
	}
	for x := 0; x < a.width; x++ {
		for y := 0; y < a.height; y++ {
			v := tmp[y*a.width+x]
			for dy := -radius; dy <= radius; dy++ {
				ny := y + dy
				if ny < 0 || ny >= a.height {
					continue
				}
				s := tmp[ny*a.width+x]
				if grow == (s > v) {
					v = s
				}
			}
			a.data[y*a.width+x] = v
		}
	}
}
